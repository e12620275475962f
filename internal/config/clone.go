package config

import "github.com/mattyoungaviation-collab/craftworld-tools-sub000/internal/planner"

// Clone returns a deep copy so request handlers can overlay their own values
// on shared defaults.
func (c *Configuration) Clone() *Configuration {
	if c == nil {
		return &Configuration{}
	}

	out := *c
	out.Market.Prices = copyMap(c.Market.Prices)
	out.Market.Points = copyMap(c.Market.Points)
	out.Market.Secondary = copyMap(c.Market.Secondary)
	out.Inventory = copyMap(c.Inventory)

	if c.Bundle.TargetReward != nil {
		target := *c.Bundle.TargetReward
		out.Bundle.TargetReward = &target
	}
	out.Bundle.Symbols = append([]string(nil), c.Bundle.Symbols...)
	out.Bundle.Caps = copyMap(c.Bundle.Caps)
	if c.Bundle.Leaderboard != nil {
		lb := *c.Bundle.Leaderboard
		lb.Points = append([]float64(nil), c.Bundle.Leaderboard.Points...)
		out.Bundle.Leaderboard = &lb
	}

	out.Layout.BatchSizes = append([]int(nil), c.Layout.BatchSizes...)
	out.Layout.Candidates = make([]planner.UpgradeCandidate, len(c.Layout.Candidates))
	for i, candidate := range c.Layout.Candidates {
		candidate.UnitRequirements = copyMap(candidate.UnitRequirements)
		out.Layout.Candidates[i] = candidate
	}
	out.Layout.Recipes = make([]planner.Recipe, len(c.Layout.Recipes))
	for i, recipe := range c.Layout.Recipes {
		recipe.InputsPerHour = copyMap(recipe.InputsPerHour)
		recipe.UnitRequirements = copyMap(recipe.UnitRequirements)
		out.Layout.Recipes[i] = recipe
	}

	return &out
}

func copyMap(in map[string]float64) map[string]float64 {
	if in == nil {
		return nil
	}
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
