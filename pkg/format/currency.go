// Package format renders prices, costs and quantities for people and for
// machine-readable exports.
package format

import (
	"github.com/dustin/go-humanize"
	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/pkg/constants"
	"github.com/shopspring/decimal"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(constants.CurrencyPlaces)
	abs := d.Abs()
	whole := abs.Truncate(0)
	// "0.50" -> ".50"
	frac := abs.Sub(whole).StringFixed(constants.CurrencyPlaces)[1:]
	formatted := humanize.Comma(whole.IntPart()) + frac
	if d.IsNegative() {
		return "-$" + formatted
	}
	return "$" + formatted
}

// NumericCurrency returns a fixed two-decimal string without separators (e.g., "-1234.56"),
// suitable for CSV.
func NumericCurrency(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(constants.CurrencyPlaces)
}

// Quantity returns a resource quantity with thousands separators and at most
// three decimals, trailing zeros trimmed (e.g., "12,500" or "0.125").
func Quantity(amount float64) string {
	rounded := decimal.NewFromFloat(amount).Round(constants.QuantityPlaces)
	return humanize.Commaf(rounded.InexactFloat64())
}

// NumericQuantity returns a quantity without separators, trailing zeros trimmed.
func NumericQuantity(amount float64) string {
	return decimal.NewFromFloat(amount).Round(constants.QuantityPlaces).String()
}
