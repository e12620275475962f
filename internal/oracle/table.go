package oracle

import (
	"context"
	"fmt"
	"sort"
)

// Table is a fixed price and reward table. It answers both oracle interfaces
// and is what configuration files and request payloads resolve to.
type Table struct {
	Prices    map[string]float64
	Points    map[string]float64
	Secondary map[string]float64
}

// NewTable builds a Table; nil maps are treated as empty.
func NewTable(prices, points, secondary map[string]float64) *Table {
	return &Table{
		Prices:    copyMap(prices),
		Points:    copyMap(points),
		Secondary: copyMap(secondary),
	}
}

// Price implements PriceOracle.
func (t *Table) Price(_ context.Context, symbol string) (float64, error) {
	price, ok := t.Prices[symbol]
	if !ok {
		return 0, fmt.Errorf("%s: %w", symbol, ErrUnknownSymbol)
	}
	return price, nil
}

// Reward implements RewardOracle. The same table is used for every target.
func (t *Table) Reward(_ context.Context, _ string, contributions []Contribution) (RewardTotals, error) {
	var totals RewardTotals
	for _, c := range contributions {
		points, ok := t.Points[c.Symbol]
		if !ok {
			return RewardTotals{}, fmt.Errorf("%s: %w", c.Symbol, ErrUnknownSymbol)
		}
		totals.Points += points * c.Amount
		totals.Secondary += t.Secondary[c.Symbol] * c.Amount
	}
	return totals, nil
}

// PriceLookup returns a copy of the price table for the layout selector.
func (t *Table) PriceLookup() map[string]float64 {
	return copyMap(t.Prices)
}

// Symbols lists every symbol that has both a price and a reward, sorted.
func (t *Table) Symbols() []string {
	symbols := make([]string, 0, len(t.Points))
	for symbol := range t.Points {
		if _, ok := t.Prices[symbol]; ok {
			symbols = append(symbols, symbol)
		}
	}
	sort.Strings(symbols)
	return symbols
}

// Merge returns a new table where entries from override replace those in t.
func (t *Table) Merge(override *Table) *Table {
	merged := NewTable(t.Prices, t.Points, t.Secondary)
	if override == nil {
		return merged
	}
	for k, v := range override.Prices {
		merged.Prices[k] = v
	}
	for k, v := range override.Points {
		merged.Points[k] = v
	}
	for k, v := range override.Secondary {
		merged.Secondary[k] = v
	}
	return merged
}

func copyMap(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
