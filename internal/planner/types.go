// Package planner holds the greedy planners behind the dashboard: the
// cost-minimal bundle planner for reward targets and the budgeted layout
// selector for factory upgrades. Both are pure functions over already
// resolved prices, rewards and inventory.
package planner

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is wrapped by every error the planners return.
var ErrInvalidInput = errors.New("invalid input")

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// ResourceOption is the marginal economics of one resource for a single
// planning pass.
type ResourceOption struct {
	Symbol                   string  `json:"symbol"`
	RewardPerUnit            float64 `json:"rewardPerUnit"`
	PricePerUnit             float64 `json:"pricePerUnit"`
	RemainingAffordableUnits float64 `json:"remainingAffordableUnits"`
	SecondaryCostPerUnit     float64 `json:"secondaryCostPerUnit,omitempty"`
}

// CostPerReward is the price paid for one point of reward.
func (o ResourceOption) CostPerReward() float64 {
	return o.PricePerUnit / o.RewardPerUnit
}

// BundleRow is the draw from a single option.
type BundleRow struct {
	Symbol         string  `json:"symbol"`
	Units          float64 `json:"units"`
	RewardAchieved float64 `json:"rewardAchieved"`
	CostIncurred   float64 `json:"costIncurred"`
	SecondaryCost  float64 `json:"secondaryCost,omitempty"`
}

// Bundle is a planned multi-resource purchase reaching a reward target.
type Bundle struct {
	TargetReward       float64     `json:"targetReward"`
	AchievedReward     float64     `json:"achievedReward"`
	TargetMet          bool        `json:"targetMet"`
	TotalCost          float64     `json:"totalCost"`
	TotalSecondaryCost float64     `json:"totalSecondaryCost"`
	Rows               []BundleRow `json:"rows"`
}

// UpgradeCandidate is one thing a slot group can be filled with.
// UnitRequirements is the resource vector for a single unit; a batch needs
// it scaled by the batch size.
type UpgradeCandidate struct {
	Identifier       string             `json:"identifier" yaml:"identifier" mapstructure:"identifier"`
	ProfitRate       float64            `json:"profitRate" yaml:"profitRate" mapstructure:"profitRate"`
	UnitRequirements map[string]float64 `json:"unitRequirements" yaml:"unitRequirements" mapstructure:"unitRequirements"`
}

// LayoutAssignment records which candidate filled a slot group.
type LayoutAssignment struct {
	SlotGroupIndex      int     `json:"slotGroupIndex"`
	BatchSize           int     `json:"batchSize"`
	CandidateIdentifier string  `json:"candidateIdentifier"`
	CostIncurred        float64 `json:"costIncurred"`
}

// Layout is the outcome of SelectLayout. Inventory is what remains on hand
// after every committed batch.
type Layout struct {
	Assignments       []LayoutAssignment `json:"assignments"`
	StartingBudget    float64            `json:"startingBudget"`
	Spent             float64            `json:"spent"`
	RemainingBudget   float64            `json:"remainingBudget"`
	UnassignedBatches int                `json:"unassignedBatches"`
	Inventory         map[string]float64 `json:"inventory"`
}

// Complete reports whether every batch received a candidate.
func (l Layout) Complete() bool {
	return l.UnassignedBatches == 0
}
