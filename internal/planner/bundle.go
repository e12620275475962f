package planner

import (
	"fmt"
	"math"
	"sort"

	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/pkg/constants"
	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/pkg/mathutil"
)

// PlanBundle selects the cheapest mix of resources whose combined reward
// reaches targetReward.
//
// Options are ranked by price per point of reward, cheapest first, with ties
// kept in input order. Each option is drawn down in whole units until the
// target is covered or the option's cap is exhausted. Only the last row can
// overshoot the target, and by less than one unit's reward. When the options
// cannot cover the target the partial bundle is returned with TargetMet set to
// false; that is not an error.
func PlanBundle(targetReward float64, options []ResourceOption) (Bundle, error) {
	if !mathutil.IsFinite(targetReward) || targetReward < 0 {
		return Bundle{}, invalidf("target reward %v must be a finite non-negative number", targetReward)
	}

	ranked, err := rankOptions(options)
	if err != nil {
		return Bundle{}, err
	}

	bundle := Bundle{
		TargetReward: targetReward,
		Rows:         []BundleRow{},
	}

	remaining := targetReward
	for _, opt := range ranked {
		if remaining <= 0 {
			break
		}

		limit := mathutil.WholeUnits(opt.RemainingAffordableUnits)
		reward := math.Min(remaining, limit*opt.RewardPerUnit)
		units := math.Min(mathutil.CeilUnits(reward, opt.RewardPerUnit), limit)
		if units <= 0 {
			continue
		}
		reward = units * opt.RewardPerUnit

		row := BundleRow{
			Symbol:         opt.Symbol,
			Units:          units,
			RewardAchieved: reward,
			CostIncurred:   units * opt.PricePerUnit,
			SecondaryCost:  units * opt.SecondaryCostPerUnit,
		}
		bundle.Rows = append(bundle.Rows, row)
		bundle.TotalCost += row.CostIncurred
		bundle.TotalSecondaryCost += row.SecondaryCost

		remaining -= reward
		// Left over from a snapped unit count; smaller than any real shortfall.
		if remaining <= constants.UnitEpsilon*opt.RewardPerUnit {
			remaining = 0
		}
	}

	bundle.AchievedReward = targetReward - math.Max(0, remaining)
	bundle.TargetMet = remaining <= 0
	return bundle, nil
}

// rankOptions validates the options and returns the usable ones ordered by
// cost per reward. Options without a positive reward, a positive price or at
// least one whole unit cannot be ranked and are dropped.
func rankOptions(options []ResourceOption) ([]ResourceOption, error) {
	ranked := make([]ResourceOption, 0, len(options))
	for i, opt := range options {
		if err := validateOption(opt); err != nil {
			return nil, invalidf("option %d (%s): %v", i, opt.Symbol, err)
		}
		if opt.RewardPerUnit <= 0 || opt.PricePerUnit <= 0 {
			continue
		}
		if mathutil.WholeUnits(opt.RemainingAffordableUnits) <= 0 {
			continue
		}
		ranked = append(ranked, opt)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CostPerReward() < ranked[j].CostPerReward()
	})
	return ranked, nil
}

func validateOption(opt ResourceOption) error {
	switch {
	case !mathutil.IsFinite(opt.RewardPerUnit) || opt.RewardPerUnit < 0:
		return fmt.Errorf("reward per unit %v must be a non-negative number", opt.RewardPerUnit)
	case !mathutil.IsFinite(opt.PricePerUnit) || opt.PricePerUnit < 0:
		return fmt.Errorf("price per unit %v must be a non-negative number", opt.PricePerUnit)
	case math.IsNaN(opt.RemainingAffordableUnits) || opt.RemainingAffordableUnits < 0:
		return fmt.Errorf("remaining units %v must be a non-negative number", opt.RemainingAffordableUnits)
	case !mathutil.IsFinite(opt.SecondaryCostPerUnit) || opt.SecondaryCostPerUnit < 0:
		return fmt.Errorf("secondary cost per unit %v must be a non-negative number", opt.SecondaryCostPerUnit)
	}
	return nil
}
