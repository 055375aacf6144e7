/*
store.go - Persistence interfaces for strategies and price data

PURPOSE:
  Defines the boundary between the engine and its data sources. The
  engine only ever reads through these interfaces during evaluation;
  Save/Delete exist for configuration surfaces, never for the pricing
  path. Implementations:

    store/memory: in-memory maps for tests and demos
    store/sqlite: production SQLite

SNAPSHOT CONTRACT:
  Everything a store returns is treated as an immutable snapshot for the
  duration of one pricing call; the engine never re-reads mid
  calculation. The single exception is flash-sale quota counters, which
  are intentionally shared across calls and live as long as the strategy
  object. Stores must therefore return the SAME MarketingStrategy
  pointers across reads, not fresh copies, or concurrent reservations
  would race against different counters.
*/
package pricing

import (
	"context"

	"github.com/shopspring/decimal"
)

// =============================================================================
// STRATEGY STORES
// =============================================================================

// UserStrategyStore loads and manages per-user discount strategies.
type UserStrategyStore interface {
	// ApplicableStrategies returns strategies with at least one entry
	// matching the user context. Window filtering happens at evaluation
	// time, not here.
	ApplicableStrategies(ctx context.Context, user UserContext) ([]*UserStrategy, error)

	// StrategyByID returns one strategy or ErrStrategyNotFound.
	StrategyByID(ctx context.Context, id StrategyID) (*UserStrategy, error)

	// ActiveStrategies returns every strategy whose active flag is set.
	ActiveStrategies(ctx context.Context) ([]*UserStrategy, error)

	SaveStrategy(ctx context.Context, s *UserStrategy) error
	DeleteStrategy(ctx context.Context, id StrategyID) error
}

// MarketingStrategyStore loads and manages marketing strategies.
type MarketingStrategyStore interface {
	// EffectiveStrategies returns strategies effective on the target date
	// for the offer.
	EffectiveStrategies(ctx context.Context, target Day, offerNo string) ([]*MarketingStrategy, error)

	// StrategiesInRange returns strategies whose effective period overlaps
	// [from, to] for the offer.
	StrategiesInRange(ctx context.Context, from, to Day, offerNo string) ([]*MarketingStrategy, error)

	// StrategyByID returns one strategy or ErrStrategyNotFound.
	StrategyByID(ctx context.Context, id StrategyID) (*MarketingStrategy, error)

	// ActiveStrategies returns every strategy whose active flag is set.
	ActiveStrategies(ctx context.Context) ([]*MarketingStrategy, error)

	// StrategiesByType filters active strategies by marketing type.
	StrategiesByType(ctx context.Context, t MarketingType) ([]*MarketingStrategy, error)

	SaveStrategy(ctx context.Context, s *MarketingStrategy) error
	DeleteStrategy(ctx context.Context, id StrategyID) error
}

// =============================================================================
// PRICE DATA STORE
// =============================================================================

// DailyPriceRecord is one stored unit/day price observation. A unit may
// have several observations per day (morning and evening rates); the
// minimum is what the engine prices against.
type DailyPriceRecord struct {
	UnitID UnitID
	Day    Day
	Price  decimal.Decimal
}

// PriceStore persists daily unit prices and serves them as a PriceSource.
type PriceStore interface {
	PriceSource

	// SavePrices records price observations, replacing nothing: lookups
	// always take the day's minimum.
	SavePrices(ctx context.Context, records []DailyPriceRecord) error
}
