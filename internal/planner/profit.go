package planner

// Recipe describes a factory upgrade by what it consumes and produces per
// hour. UnitRequirements is the one-off resource cost of building one unit.
type Recipe struct {
	Identifier       string             `json:"identifier" yaml:"identifier" mapstructure:"identifier"`
	OutputSymbol     string             `json:"outputSymbol" yaml:"outputSymbol" mapstructure:"outputSymbol"`
	OutputPerHour    float64            `json:"outputPerHour" yaml:"outputPerHour" mapstructure:"outputPerHour"`
	InputsPerHour    map[string]float64 `json:"inputsPerHour,omitempty" yaml:"inputsPerHour,omitempty" mapstructure:"inputsPerHour"`
	UnitRequirements map[string]float64 `json:"unitRequirements" yaml:"unitRequirements" mapstructure:"unitRequirements"`
}

// ProfitRate returns the hourly value of the recipe's output minus the value
// of its inputs. ok is false when any involved symbol lacks a positive price.
func ProfitRate(recipe Recipe, prices map[string]float64) (rate float64, ok bool) {
	outPrice, known := prices[recipe.OutputSymbol]
	if !known || outPrice <= 0 {
		return 0, false
	}
	rate = recipe.OutputPerHour * outPrice
	for _, symbol := range sortedKeys(recipe.InputsPerHour) {
		price, known := prices[symbol]
		if !known || price <= 0 {
			return 0, false
		}
		rate -= recipe.InputsPerHour[symbol] * price
	}
	return rate, true
}

// CandidatesFromRecipes prices each recipe and turns it into an
// UpgradeCandidate. Recipes that cannot be priced are returned separately by
// identifier so the caller can report them.
func CandidatesFromRecipes(recipes []Recipe, prices map[string]float64) (candidates []UpgradeCandidate, unpriced []string) {
	for _, recipe := range recipes {
		rate, ok := ProfitRate(recipe, prices)
		if !ok {
			unpriced = append(unpriced, recipe.Identifier)
			continue
		}
		candidates = append(candidates, UpgradeCandidate{
			Identifier:       recipe.Identifier,
			ProfitRate:       rate,
			UnitRequirements: recipe.UnitRequirements,
		})
	}
	return candidates, unpriced
}
