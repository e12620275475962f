package config

import (
	"fmt"
	"sort"
)

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Warnings never stop a run; they explain why parts of a
// plan may come back empty.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.Market.Prices) == 0 {
		warnings = append(warnings, "market has no prices; every option and shortfall will be unfundable")
	}

	if !c.Bundle.Enabled() && !c.Layout.Enabled() {
		warnings = append(warnings, "neither bundle nor layout planning is configured")
	}

	if c.Bundle.Enabled() {
		if c.Bundle.TargetReward != nil && c.Bundle.Leaderboard != nil {
			warnings = append(warnings, "bundle has both targetReward and leaderboard; leaderboard is ignored")
		}
		for _, symbol := range c.Bundle.Symbols {
			if _, ok := c.Market.Prices[symbol]; !ok {
				warnings = append(warnings, fmt.Sprintf("bundle symbol %s has no price and will be skipped", symbol))
			}
			if _, ok := c.Market.Points[symbol]; !ok {
				warnings = append(warnings, fmt.Sprintf("bundle symbol %s has no reward and will be skipped", symbol))
			}
		}
	}

	if c.Layout.Enabled() {
		missing := make(map[string]struct{})
		for _, candidate := range c.Layout.Candidates {
			for symbol := range candidate.UnitRequirements {
				if _, ok := c.Market.Prices[symbol]; !ok {
					missing[symbol] = struct{}{}
				}
			}
		}
		for _, recipe := range c.Layout.Recipes {
			for symbol := range recipe.UnitRequirements {
				if _, ok := c.Market.Prices[symbol]; !ok {
					missing[symbol] = struct{}{}
				}
			}
		}
		symbols := make([]string, 0, len(missing))
		for symbol := range missing {
			symbols = append(symbols, symbol)
		}
		sort.Strings(symbols)
		for _, symbol := range symbols {
			warnings = append(warnings, fmt.Sprintf("layout requirement %s has no price; any shortfall makes its candidates unfundable", symbol))
		}

		if len(c.Layout.Candidates) == 0 && len(c.Layout.Recipes) == 0 {
			warnings = append(warnings, "layout has batch sizes but no candidates or recipes")
		}
	}

	return warnings
}
