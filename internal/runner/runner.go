// Package runner turns a loaded configuration into a planning report: it
// resolves targets, asks the oracle for options and runs both planners.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/internal/config"
	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/internal/oracle"
	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/internal/planner"
	"go.uber.org/zap"
)

// Runner executes the planners configured in a Configuration.
type Runner struct {
	logger  *zap.Logger
	conf    *config.Configuration
	prices  oracle.PriceOracle
	rewards oracle.RewardOracle
	table   *oracle.Table
}

// Report is the outcome of a planning run. Bundle and Layout are nil when
// the corresponding planner is not configured.
type Report struct {
	TargetID        string                   `json:"targetId"`
	Bundle          *planner.Bundle          `json:"bundle,omitempty"`
	Layout          *planner.Layout          `json:"layout,omitempty"`
	Options         []planner.ResourceOption `json:"options,omitempty"`
	UnpricedRecipes []string                 `json:"unpricedRecipes,omitempty"`
	Warnings        []string                 `json:"warnings,omitempty"`
	Duration        time.Duration            `json:"-"`
}

// Option customizes a Runner.
type Option func(*Runner)

// WithOracles replaces the configured price table with live oracles for the
// bundle planner. The layout selector keeps using the configured prices.
func WithOracles(prices oracle.PriceOracle, rewards oracle.RewardOracle) Option {
	return func(r *Runner) {
		r.prices = prices
		r.rewards = rewards
	}
}

// NewRunner constructs a Runner for the provided configuration.
func NewRunner(logger *zap.Logger, conf *config.Configuration, opts ...Option) (*Runner, error) {
	if conf == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	conf.Normalize()
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	table := oracle.NewTable(conf.Market.Prices, conf.Market.Points, conf.Market.Secondary)
	r := &Runner{
		logger:  logger,
		conf:    conf,
		prices:  table,
		rewards: table,
		table:   table,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run executes every configured planner.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{
		TargetID: r.conf.Market.TargetID,
		Warnings: r.conf.ValidateConfiguration(),
	}

	inventory := oracle.Inventory(r.conf.Inventory).WithDelta(r.conf.Simulate.Symbol, r.conf.Simulate.Amount)
	if r.conf.Simulate.Symbol != "" {
		r.logger.Debug("simulating inventory delta",
			zap.String("op", "runner.Run"),
			zap.String("symbol", r.conf.Simulate.Symbol),
			zap.Float64("amount", r.conf.Simulate.Amount),
		)
	}

	if r.conf.Bundle.Enabled() {
		bundle, options, err := r.planBundle(ctx, inventory)
		if err != nil {
			return nil, err
		}
		report.Bundle = &bundle
		report.Options = options
	}

	if r.conf.Layout.Enabled() {
		layout, unpriced, err := r.selectLayout(inventory)
		if err != nil {
			return nil, err
		}
		report.Layout = &layout
		report.UnpricedRecipes = unpriced
	}

	report.Duration = time.Since(start)
	return report, nil
}

func (r *Runner) planBundle(ctx context.Context, inventory oracle.Inventory) (planner.Bundle, []planner.ResourceOption, error) {
	target, err := r.conf.Bundle.Target()
	if err != nil {
		return planner.Bundle{}, nil, fmt.Errorf("bundle target: %w", err)
	}

	symbols := r.conf.Bundle.Symbols
	if len(symbols) == 0 {
		symbols = r.table.Symbols()
	}
	// Without an explicit cap a symbol is limited to what is on hand, valued
	// at market price; bundle.caps opens up symbols bought from the market.
	caps := inventory.Caps(symbols, r.conf.Bundle.Caps)

	options := oracle.BuildOptions(ctx, r.logger, r.prices, r.rewards, r.conf.Market.TargetID, symbols, caps)
	bundle, err := planner.PlanBundle(target, options)
	if err != nil {
		return planner.Bundle{}, nil, fmt.Errorf("bundle planner: %w", err)
	}

	r.logger.Info("bundle planned",
		zap.String("op", "runner.planBundle"),
		zap.String("target", r.conf.Market.TargetID),
		zap.Float64("targetReward", target),
		zap.Float64("achievedReward", bundle.AchievedReward),
		zap.Bool("targetMet", bundle.TargetMet),
		zap.Float64("totalCost", bundle.TotalCost),
		zap.Int("options", len(options)),
		zap.Int("rows", len(bundle.Rows)),
	)
	return bundle, options, nil
}

func (r *Runner) selectLayout(inventory oracle.Inventory) (planner.Layout, []string, error) {
	candidates, unpriced := r.conf.Candidates()
	for _, id := range unpriced {
		r.logger.Warn("recipe skipped because its profit cannot be priced",
			zap.String("op", "runner.selectLayout"),
			zap.String("recipe", id),
		)
	}

	layout, err := planner.SelectLayout(r.conf.Layout.BatchSizes, candidates, inventory, r.conf.Layout.Budget, r.table.PriceLookup())
	if err != nil {
		return planner.Layout{}, nil, fmt.Errorf("layout selector: %w", err)
	}

	r.logger.Info("layout selected",
		zap.String("op", "runner.selectLayout"),
		zap.Int("batches", len(r.conf.Layout.BatchSizes)),
		zap.Int("assigned", len(layout.Assignments)),
		zap.Int("unassigned", layout.UnassignedBatches),
		zap.Float64("budget", layout.StartingBudget),
		zap.Float64("spent", layout.Spent),
	)
	return layout, unpriced, nil
}
