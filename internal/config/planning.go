package config

import (
	"fmt"

	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/internal/planner"
	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/pkg/mathutil"
)

// BundleConfig configures the reward bundle planner. The target is either
// set directly or derived from a leaderboard; with neither the bundle
// planner is skipped.
type BundleConfig struct {
	TargetReward *float64           `yaml:"targetReward,omitempty" mapstructure:"targetReward"`
	Symbols      []string           `yaml:"symbols,omitempty" mapstructure:"symbols"`
	Caps         map[string]float64 `yaml:"caps,omitempty" mapstructure:"caps"`
	Leaderboard  *LeaderboardConfig `yaml:"leaderboard,omitempty" mapstructure:"leaderboard"`
}

// LeaderboardConfig describes a rank to overtake.
type LeaderboardConfig struct {
	CurrentPoints float64   `yaml:"currentPoints" mapstructure:"currentPoints"`
	Points        []float64 `yaml:"points" mapstructure:"points"`
	DesiredRank   int       `yaml:"desiredRank" mapstructure:"desiredRank"`
}

// LayoutConfig configures the budgeted layout selector. With no batch sizes
// the layout selector is skipped.
type LayoutConfig struct {
	Budget     float64                    `yaml:"budget,omitempty" mapstructure:"budget"`
	BatchSizes []int                      `yaml:"batchSizes,omitempty" mapstructure:"batchSizes"`
	Candidates []planner.UpgradeCandidate `yaml:"candidates,omitempty" mapstructure:"candidates"`
	Recipes    []planner.Recipe           `yaml:"recipes,omitempty" mapstructure:"recipes"`
}

// Enabled reports whether a bundle should be planned.
func (b *BundleConfig) Enabled() bool {
	return b.TargetReward != nil || b.Leaderboard != nil
}

// Target resolves the reward target, preferring an explicit value over the
// leaderboard.
func (b *BundleConfig) Target() (float64, error) {
	if b.TargetReward != nil {
		return *b.TargetReward, nil
	}
	if b.Leaderboard != nil {
		return planner.PointsToRank(b.Leaderboard.CurrentPoints, b.Leaderboard.Points, b.Leaderboard.DesiredRank)
	}
	return 0, fmt.Errorf("no bundle target configured")
}

func (b *BundleConfig) normalize() {
	if len(b.Symbols) > 0 {
		seen := make(map[string]struct{}, len(b.Symbols))
		symbols := make([]string, 0, len(b.Symbols))
		for _, s := range b.Symbols {
			s = CanonicalSymbol(s)
			if _, dup := seen[s]; dup || s == "" {
				continue
			}
			seen[s] = struct{}{}
			symbols = append(symbols, s)
		}
		b.Symbols = symbols
	}
	b.Caps = canonicalMap(b.Caps)
}

// Validate returns an error when the bundle configuration is unusable.
func (b *BundleConfig) Validate() error {
	if b.TargetReward != nil && (*b.TargetReward < 0 || !mathutil.IsFinite(*b.TargetReward)) {
		return fmt.Errorf("target reward %v must be a finite non-negative number", *b.TargetReward)
	}
	for symbol, limit := range b.Caps {
		if limit < 0 || !mathutil.IsFinite(limit) {
			return fmt.Errorf("cap for %s must be a finite non-negative number, got %v", symbol, limit)
		}
	}
	if b.Leaderboard != nil && b.Leaderboard.DesiredRank < 1 {
		return fmt.Errorf("leaderboard desired rank %d must be at least 1", b.Leaderboard.DesiredRank)
	}
	return nil
}

// Enabled reports whether a layout should be selected.
func (l *LayoutConfig) Enabled() bool {
	return len(l.BatchSizes) > 0
}

func (l *LayoutConfig) normalize() {
	for i := range l.Candidates {
		l.Candidates[i].UnitRequirements = canonicalMap(l.Candidates[i].UnitRequirements)
	}
	for i := range l.Recipes {
		r := &l.Recipes[i]
		r.OutputSymbol = CanonicalSymbol(r.OutputSymbol)
		r.InputsPerHour = canonicalMap(r.InputsPerHour)
		r.UnitRequirements = canonicalMap(r.UnitRequirements)
	}
}

// Validate returns an error when the layout configuration is unusable.
func (l *LayoutConfig) Validate() error {
	if l.Budget < 0 || !mathutil.IsFinite(l.Budget) {
		return fmt.Errorf("budget %v must be a finite non-negative number", l.Budget)
	}
	for i, size := range l.BatchSizes {
		if size <= 0 {
			return fmt.Errorf("batch size %d at position %d must be positive", size, i)
		}
	}

	seen := make(map[string]struct{})
	check := func(id string) error {
		if id == "" {
			return fmt.Errorf("candidate without an identifier")
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("duplicate candidate %q", id)
		}
		seen[id] = struct{}{}
		return nil
	}
	for _, c := range l.Candidates {
		if err := check(c.Identifier); err != nil {
			return err
		}
		for symbol, qty := range c.UnitRequirements {
			if qty < 0 {
				return fmt.Errorf("candidate %s requires %v of %s", c.Identifier, qty, symbol)
			}
		}
	}
	for _, r := range l.Recipes {
		if err := check(r.Identifier); err != nil {
			return err
		}
		if r.OutputSymbol == "" {
			return fmt.Errorf("recipe %s has no output symbol", r.Identifier)
		}
	}
	return nil
}
