package oracle

import "github.com/mattyoungaviation-collab/craftworld-tools-sub000/pkg/mathutil"

// Inventory maps a resource symbol to the quantity on hand.
type Inventory map[string]float64

// Clone returns an independent copy.
func (inv Inventory) Clone() Inventory {
	return Inventory(copyMap(inv))
}

// WithDelta returns a copy with amount added to symbol, for "what if I had N
// more" simulations. Quantities never drop below zero.
func (inv Inventory) WithDelta(symbol string, amount float64) Inventory {
	out := inv.Clone()
	if symbol == "" || amount == 0 {
		return out
	}
	out[symbol] = mathutil.Max(0, out[symbol]+amount)
	return out
}

// Caps restricts the inventory to symbols, for use as bundle caps. Explicit
// overrides win over quantities on hand.
func (inv Inventory) Caps(symbols []string, overrides map[string]float64) map[string]float64 {
	caps := make(map[string]float64, len(symbols))
	for _, symbol := range symbols {
		if v, ok := overrides[symbol]; ok {
			caps[symbol] = v
			continue
		}
		caps[symbol] = inv[symbol]
	}
	return caps
}
