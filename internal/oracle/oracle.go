// Package oracle is the boundary between the planners and the services that
// know market prices and game rewards. Everything that can fail lives here;
// failures are logged and turned into missing options so the planners only
// ever see resolved numbers.
package oracle

import (
	"context"
	"errors"
	"fmt"

	"github.com/mattyoungaviation-collab/craftworld-tools-sub000/internal/planner"
	"go.uber.org/zap"
)

var (
	// ErrNoPrice is returned when a symbol has no usable price.
	ErrNoPrice = errors.New("no price available")
	// ErrUnknownSymbol is returned when an oracle does not know a symbol.
	ErrUnknownSymbol = errors.New("unknown symbol")
)

// PriceOracle returns the per-unit price of a symbol in the common currency.
type PriceOracle interface {
	Price(ctx context.Context, symbol string) (float64, error)
}

// RewardOracle predicts the reward for contributing resources to a target.
type RewardOracle interface {
	Reward(ctx context.Context, targetID string, contributions []Contribution) (RewardTotals, error)
}

// Contribution is an amount of one resource offered to a target.
type Contribution struct {
	Symbol string  `json:"symbol"`
	Amount float64 `json:"amount"`
}

// RewardTotals is what a contribution list earns.
type RewardTotals struct {
	Points    float64 `json:"points"`
	Secondary float64 `json:"secondary"`
}

// Quote is the per-unit economics of a symbol.
type Quote struct {
	Symbol               string  `json:"symbol"`
	Price                float64 `json:"price"`
	PointsPerUnit        float64 `json:"pointsPerUnit"`
	SecondaryCostPerUnit float64 `json:"secondaryCostPerUnit"`
}

// QuoteSymbol prices symbol and derives its per-unit reward by asking the
// reward oracle about a single unit. A zero price is reported as ErrNoPrice
// rather than being treated as free.
func QuoteSymbol(ctx context.Context, prices PriceOracle, rewards RewardOracle, targetID, symbol string) (Quote, error) {
	price, err := prices.Price(ctx, symbol)
	if err != nil {
		return Quote{}, fmt.Errorf("price %s: %w", symbol, err)
	}
	if price <= 0 {
		return Quote{}, fmt.Errorf("price %s: %w", symbol, ErrNoPrice)
	}

	totals, err := rewards.Reward(ctx, targetID, []Contribution{{Symbol: symbol, Amount: 1}})
	if err != nil {
		return Quote{}, fmt.Errorf("reward %s: %w", symbol, err)
	}

	return Quote{
		Symbol:               symbol,
		Price:                price,
		PointsPerUnit:        totals.Points,
		SecondaryCostPerUnit: totals.Secondary,
	}, nil
}

// BuildOptions quotes every symbol and pairs it with its cap. Symbols that
// cannot be quoted, or that have no cap entry, are logged and left out.
func BuildOptions(ctx context.Context, logger *zap.Logger, prices PriceOracle, rewards RewardOracle, targetID string, symbols []string, caps map[string]float64) []planner.ResourceOption {
	if logger == nil {
		logger = zap.NewNop()
	}

	options := make([]planner.ResourceOption, 0, len(symbols))
	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			logger.Warn("option building cancelled",
				zap.String("op", "oracle.BuildOptions"),
				zap.Error(err),
			)
			break
		}

		limit, ok := caps[symbol]
		if !ok || limit <= 0 {
			logger.Debug("skipping symbol without affordable units",
				zap.String("op", "oracle.BuildOptions"),
				zap.String("symbol", symbol),
			)
			continue
		}

		quote, err := QuoteSymbol(ctx, prices, rewards, targetID, symbol)
		if err != nil {
			logger.Warn("skipping symbol that could not be quoted",
				zap.String("op", "oracle.BuildOptions"),
				zap.String("symbol", symbol),
				zap.String("target", targetID),
				zap.Error(err),
			)
			continue
		}

		options = append(options, planner.ResourceOption{
			Symbol:                   symbol,
			RewardPerUnit:            quote.PointsPerUnit,
			PricePerUnit:             quote.Price,
			RemainingAffordableUnits: limit,
			SecondaryCostPerUnit:     quote.SecondaryCostPerUnit,
		})
	}
	return options
}
