package planner

import (
	"math"
	"sort"

	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/pkg/constants"
	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/pkg/mathutil"
)

// SelectLayout fills slot groups, in the order given by batchSizes, with the
// most profitable candidate that can still be funded.
//
// A candidate is fundable for a batch when the market cost of its shortfall
// (requirement times batch size, less what is on hand) fits in the remaining
// budget. Committing a candidate removes the whole requirement from the
// running inventory and the shortfall cost from the budget, so later batches
// see the depleted state. A shortfall on a symbol without a positive price
// makes the candidate unfundable. The first batch that nothing can fund ends
// the selection; it and every batch after it are reported as unassigned.
//
// inventory and prices are read only; the remaining inventory is returned in
// the Layout.
func SelectLayout(batchSizes []int, candidates []UpgradeCandidate, inventory map[string]float64, budget float64, prices map[string]float64) (Layout, error) {
	if !mathutil.IsFinite(budget) || budget < 0 {
		return Layout{}, invalidf("budget %v must be a finite non-negative number", budget)
	}
	for i, size := range batchSizes {
		if size <= 0 {
			return Layout{}, invalidf("batch %d has non-positive size %d", i, size)
		}
	}
	if err := validateCandidates(candidates); err != nil {
		return Layout{}, err
	}
	if err := validateQuantities("inventory", inventory); err != nil {
		return Layout{}, err
	}
	if err := validateQuantities("price", prices); err != nil {
		return Layout{}, err
	}

	ordered := make([]UpgradeCandidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ProfitRate > ordered[j].ProfitRate
	})

	onHand := make(map[string]float64, len(inventory))
	for symbol, qty := range inventory {
		onHand[symbol] = qty
	}

	layout := Layout{
		Assignments:     []LayoutAssignment{},
		StartingBudget:  budget,
		RemainingBudget: budget,
		Inventory:       onHand,
	}

	for i, size := range batchSizes {
		chosen, cost, ok := firstFundable(ordered, size, onHand, layout.RemainingBudget, prices)
		if !ok {
			layout.UnassignedBatches = len(batchSizes) - i
			break
		}

		consume(onHand, chosen, size)
		layout.Spent += cost
		layout.RemainingBudget = math.Max(0, budget-layout.Spent)
		layout.Assignments = append(layout.Assignments, LayoutAssignment{
			SlotGroupIndex:      i,
			BatchSize:           size,
			CandidateIdentifier: chosen.Identifier,
			CostIncurred:        cost,
		})
	}

	return layout, nil
}

func firstFundable(ordered []UpgradeCandidate, size int, onHand map[string]float64, budget float64, prices map[string]float64) (UpgradeCandidate, float64, bool) {
	for _, candidate := range ordered {
		cost, ok := ShortfallCost(candidate, size, onHand, prices)
		if !ok || cost > budget {
			continue
		}
		return candidate, cost, true
	}
	return UpgradeCandidate{}, 0, false
}

// ShortfallCost prices what is missing from onHand to build size units of the
// candidate. ok is false when a missing resource has no usable price.
func ShortfallCost(candidate UpgradeCandidate, size int, onHand map[string]float64, prices map[string]float64) (cost float64, ok bool) {
	for _, symbol := range sortedKeys(candidate.UnitRequirements) {
		need := candidate.UnitRequirements[symbol] * float64(size)
		shortfall := need - onHand[symbol]
		if shortfall <= constants.UnitEpsilon {
			continue
		}
		price, known := prices[symbol]
		if !known || price <= 0 {
			return 0, false
		}
		cost += shortfall * price
	}
	return cost, true
}

func consume(onHand map[string]float64, candidate UpgradeCandidate, size int) {
	for symbol, perUnit := range candidate.UnitRequirements {
		need := perUnit * float64(size)
		if need <= 0 {
			continue
		}
		onHand[symbol] = math.Max(0, onHand[symbol]-need)
	}
}

func validateCandidates(candidates []UpgradeCandidate) error {
	for i, candidate := range candidates {
		if candidate.Identifier == "" {
			return invalidf("candidate %d has no identifier", i)
		}
		if math.IsNaN(candidate.ProfitRate) {
			return invalidf("candidate %s has a NaN profit rate", candidate.Identifier)
		}
		for symbol, qty := range candidate.UnitRequirements {
			if !mathutil.IsFinite(qty) || qty < 0 {
				return invalidf("candidate %s requires %v of %s", candidate.Identifier, qty, symbol)
			}
		}
	}
	return nil
}

func validateQuantities(kind string, values map[string]float64) error {
	for symbol, v := range values {
		if math.IsNaN(v) || v < 0 {
			return invalidf("%s for %s is %v", kind, symbol, v)
		}
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
