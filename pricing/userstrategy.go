/*
userstrategy.go - Per-user discount strategies

PURPOSE:
  A UserStrategy is a configurable, time-bounded set of discount rules
  keyed by the buyer's level, region, and sales channel. Strategies are
  loaded by a store, read-only during evaluation, and never mutated by
  the engine.

WINDOW EFFECTIVENESS (checked in order):
  1. inactive strategies are never effective
  2. reference time before effective-start -> not effective
  3. reference time after effective-end    -> not effective
  4. if a date-range restriction is set, the reference date must be inside
  5. otherwise effective; a strategy with no temporal fields at all is
     permanently effective

DISCOUNT LAYERING:
  The priority rule gates which of the three adjustment axes apply; the
  applied ones run sequentially level -> region -> channel, each operating
  on the previous output. This is intentional layering, not independent
  alternatives.

SEE ALSO:
  - selector.go: choosing one winner among many candidates
  - marketing.go: the second, event-driven strategy layer
*/
package pricing

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// DISCOUNT ENTITIES - The three adjustment axes
// =============================================================================

type DiscountType string

const (
	DiscountPercentage  DiscountType = "percentage"
	DiscountFixedAmount DiscountType = "fixed_amount"
)

// LevelDiscount reduces the price for one user level. Percentage discounts
// are capped by MaxDiscountAmount when set; the discount only applies when
// the price reaches MinOrderAmount; the result never goes below zero.
type LevelDiscount struct {
	ID                string
	TargetLevel       UserLevel
	Type              DiscountType
	Value             decimal.Decimal
	MaxDiscountAmount *decimal.Decimal
	MinOrderAmount    decimal.Decimal
}

func (d LevelDiscount) Matches(level UserLevel) bool { return d.TargetLevel == level }

func (d LevelDiscount) Apply(price decimal.Decimal) decimal.Decimal {
	if price.LessThan(d.MinOrderAmount) {
		return price
	}

	var discount decimal.Decimal
	switch d.Type {
	case DiscountPercentage:
		discount = price.Mul(d.Value).Div(hundred).Round(2)
		if d.MaxDiscountAmount != nil && discount.GreaterThan(*d.MaxDiscountAmount) {
			discount = *d.MaxDiscountAmount
		}
	case DiscountFixedAmount:
		discount = d.Value
	default:
		return price
	}

	final := price.Sub(discount)
	if final.IsNegative() {
		return zero
	}
	return final
}

// RegionPricing adjusts the price for buyers from one region.
type RegionPricing struct {
	ID           string
	TargetRegion Region
	Adjustment   Adjustment
}

func (p RegionPricing) Matches(region Region) bool { return p.TargetRegion == region }

// ChannelPricing adjusts the price for one sales channel.
type ChannelPricing struct {
	ID            string
	TargetChannel Channel
	Adjustment    Adjustment
}

func (p ChannelPricing) Matches(channel Channel) bool { return p.TargetChannel == channel }

// PriorityRule gates which adjustment axes a strategy actually applies.
type PriorityRule struct {
	ApplyLevel   bool
	ApplyRegion  bool
	ApplyChannel bool
}

// =============================================================================
// USER STRATEGY
// =============================================================================

// UserStrategy bundles the three adjustment axes with an activation window
// and a selection priority.
type UserStrategy struct {
	ID       StrategyID
	Name     string
	Active   bool
	Priority PriorityLevel

	// Activation window; zero values mean "not set".
	EffectiveStart Timestamp
	EffectiveEnd   Timestamp
	ValidDateRange *DateRange

	LevelDiscounts  []LevelDiscount
	RegionPricings  []RegionPricing
	ChannelPricings []ChannelPricing
	PriorityRule    PriorityRule
}

// EffectiveAt implements the strategy window filter against a reference
// timestamp. See the package comment for the check order.
func (s *UserStrategy) EffectiveAt(at Timestamp) bool {
	if !s.Active {
		return false
	}
	if !s.EffectiveStart.IsZero() && at.Before(s.EffectiveStart) {
		return false
	}
	if !s.EffectiveEnd.IsZero() && at.After(s.EffectiveEnd) {
		return false
	}
	if s.ValidDateRange != nil {
		return s.ValidDateRange.Contains(at.Day())
	}
	return true
}

// ApplicableTo reports whether the strategy has anything to offer this
// buyer: it must be window-effective and at least one of its entries must
// match the user's level, region, or channel.
func (s *UserStrategy) ApplicableTo(user UserContext, at Timestamp) bool {
	return s.EffectiveAt(at) &&
		(s.hasMatchingLevel(user.Level) ||
			s.hasMatchingRegion(user.Region) ||
			s.hasMatchingChannel(user.Channel))
}

// Evaluate computes this strategy's price for the buyer. Axes gated off by
// the priority rule are skipped; the rest layer sequentially.
func (s *UserStrategy) Evaluate(basePrice decimal.Decimal, user UserContext, at Timestamp) decimal.Decimal {
	if !s.EffectiveAt(at) {
		return basePrice
	}

	price := basePrice
	if s.PriorityRule.ApplyLevel {
		price = s.applyLevelDiscount(price, user.Level)
	}
	if s.PriorityRule.ApplyRegion {
		price = s.applyRegionPricing(price, user.Region)
	}
	if s.PriorityRule.ApplyChannel {
		price = s.applyChannelPricing(price, user.Channel)
	}
	return price
}

// RemainingValidHours reports how long the strategy stays effective from
// the reference time. Strategies without an end time never expire; the
// sentinel -1 encodes that.
func (s *UserStrategy) RemainingValidHours(at Timestamp) int64 {
	if !s.Active {
		return 0
	}
	if s.EffectiveEnd.IsZero() {
		return -1
	}
	if at.After(s.EffectiveEnd) {
		return 0
	}
	return int64(s.EffectiveEnd.Time().Sub(at.Time()).Hours())
}

func (s *UserStrategy) applyLevelDiscount(price decimal.Decimal, level UserLevel) decimal.Decimal {
	for _, d := range s.LevelDiscounts {
		if d.Matches(level) {
			return d.Apply(price)
		}
	}
	return price
}

func (s *UserStrategy) applyRegionPricing(price decimal.Decimal, region Region) decimal.Decimal {
	for _, p := range s.RegionPricings {
		if p.Matches(region) {
			return p.Adjustment.Apply(price)
		}
	}
	return price
}

func (s *UserStrategy) applyChannelPricing(price decimal.Decimal, channel Channel) decimal.Decimal {
	for _, p := range s.ChannelPricings {
		if p.Matches(channel) {
			return p.Adjustment.Apply(price)
		}
	}
	return price
}

func (s *UserStrategy) hasMatchingLevel(level UserLevel) bool {
	for _, d := range s.LevelDiscounts {
		if d.Matches(level) {
			return true
		}
	}
	return false
}

func (s *UserStrategy) hasMatchingRegion(region Region) bool {
	for _, p := range s.RegionPricings {
		if p.Matches(region) {
			return true
		}
	}
	return false
}

func (s *UserStrategy) hasMatchingChannel(channel Channel) bool {
	for _, p := range s.ChannelPricings {
		if p.Matches(channel) {
			return true
		}
	}
	return false
}
