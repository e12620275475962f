package oracle

import "testing"

func TestInventoryWithDelta(t *testing.T) {
	inv := Inventory{"WOOD": 10, "ORE": 2}

	tests := []struct {
		name   string
		symbol string
		amount float64
		want   float64
	}{
		{"Add to existing", "WOOD", 5, 15},
		{"Add new symbol", "GEM", 3, 3},
		{"Remove floors at zero", "ORE", -10, 0},
		{"No change", "WOOD", 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := inv.WithDelta(tt.symbol, tt.amount)
			if out[tt.symbol] != tt.want {
				t.Errorf("WithDelta(%s, %v)[%s] = %v, want %v", tt.symbol, tt.amount, tt.symbol, out[tt.symbol], tt.want)
			}
		})
	}

	if inv["WOOD"] != 10 || inv["ORE"] != 2 {
		t.Errorf("WithDelta mutated the original inventory: %+v", inv)
	}
}

func TestInventoryCaps(t *testing.T) {
	inv := Inventory{"WOOD": 10, "ORE": 2}
	caps := inv.Caps([]string{"WOOD", "ORE", "GEM"}, map[string]float64{"ORE": 50})

	if caps["WOOD"] != 10 || caps["ORE"] != 50 || caps["GEM"] != 0 {
		t.Errorf("unexpected caps %+v", caps)
	}
	if len(caps) != 3 {
		t.Errorf("expected 3 caps, got %d", len(caps))
	}
}
