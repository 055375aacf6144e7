/*
Package pricing provides the core travel-offer pricing engine.

PURPOSE:
  This package contains the domain types and algorithms for computing a
  final sellable price from three independent layers: base occupancy
  pricing, per-user discount strategies, and time-bounded marketing
  promotions. The engine reconciles the layers into one auditable result
  with a full discount breakdown.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money arithmetic: decimal.Decimal everywhere, never floats
  - UserContext: who is buying (level, region, channel)
  - MarketingContext: the circumstances of one pricing call
  - CustomerChoice: pay for the cheapest unit, or for all of them
  - PriorityLevel: ordered strategy priorities

DESIGN PRINCIPLES:
  1. Immutability: all inputs are read-only snapshots for one call
  2. Precision: decimal.Decimal avoids floating-point price drift
  3. Type safety: enumerated levels/regions/channels, typed IDs
  4. Auditability: every result carries its full discount breakdown

SEE ALSO:
  - time.go: Day and DateRange calendar types
  - rule.go: price rules, reduction and day aggregation
  - userstrategy.go, marketing.go: the two strategy layers
  - composer.go: the comprehensive pipeline and PricingResult
*/
package pricing

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY HELPERS
// =============================================================================

var (
	zero    = decimal.Zero
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// Price constructs a decimal price from a float literal. Test and seed
// convenience; domain code passes decimals through untouched.
func Price(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// MustParsePrice parses a decimal string, returning zero on bad input.
func MustParsePrice(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// minPrice returns the smaller of two prices.
func minPrice(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// =============================================================================
// IDENTIFIERS
// =============================================================================

type StrategyID string
type RuleID string
type UnitID string // room number or ticket product number

// =============================================================================
// USER CONTEXT - Who is buying
// =============================================================================

type UserLevel int

const (
	LevelBronze UserLevel = iota
	LevelSilver
	LevelGold
	LevelPlatinum
	LevelDiamond
)

func (l UserLevel) String() string {
	switch l {
	case LevelBronze:
		return "BRONZE"
	case LevelSilver:
		return "SILVER"
	case LevelGold:
		return "GOLD"
	case LevelPlatinum:
		return "PLATINUM"
	case LevelDiamond:
		return "DIAMOND"
	default:
		return "UNKNOWN"
	}
}

// ParseUserLevel maps a level name to its UserLevel, defaulting to bronze.
func ParseUserLevel(s string) UserLevel {
	switch s {
	case "SILVER":
		return LevelSilver
	case "GOLD":
		return LevelGold
	case "PLATINUM":
		return LevelPlatinum
	case "DIAMOND":
		return LevelDiamond
	default:
		return LevelBronze
	}
}

type Region string

const (
	RegionNorth         Region = "NORTH"
	RegionSouth         Region = "SOUTH"
	RegionEast          Region = "EAST"
	RegionWest          Region = "WEST"
	RegionInternational Region = "INTERNATIONAL"
)

type Channel string

const (
	ChannelWebsite  Channel = "OFFICIAL_WEBSITE"
	ChannelApp      Channel = "MOBILE_APP"
	ChannelOTA      Channel = "THIRD_PARTY_OTA"
	ChannelOffline  Channel = "OFFLINE_STORE"
	ChannelCorporate Channel = "CORPORATE"
)

// UserContext identifies the buyer for one pricing call.
// Equality is by user id only.
type UserContext struct {
	UserID       string
	Level        UserLevel
	Region       Region
	Channel      Channel
	MembershipID string
}

func (u UserContext) Equal(other UserContext) bool { return u.UserID == other.UserID }

// =============================================================================
// MARKETING CONTEXT - The circumstances of one call
// =============================================================================

// MarketingContext carries the per-call inputs the marketing layer needs.
// Immutable, supplied fresh on every call.
type MarketingContext struct {
	CurrentTime       Timestamp
	SessionID         string
	RequestedQuantity int
	SourceSystem      string
}

// =============================================================================
// CUSTOMER CHOICE - Reduction policy across interchangeable units
// =============================================================================

// CustomerChoice governs how per-unit prices combine into one day price.
// SINGLE and MULTIPLE pay for the cheapest eligible unit; FIXED commits the
// customer to every listed unit.
type CustomerChoice string

const (
	ChoiceSingle   CustomerChoice = "Single"
	ChoiceMultiple CustomerChoice = "Multiple"
	ChoiceFixed    CustomerChoice = "Fixed"
)

// ParseCustomerChoice maps a wire code to its CustomerChoice.
// Unknown codes fall back to Single, the cheapest-of behavior.
func ParseCustomerChoice(code string) CustomerChoice {
	switch code {
	case string(ChoiceMultiple):
		return ChoiceMultiple
	case string(ChoiceFixed):
		return ChoiceFixed
	default:
		return ChoiceSingle
	}
}

// =============================================================================
// PRIORITY LEVEL - Ordered strategy priorities
// =============================================================================

type PriorityLevel int

const (
	PriorityLow PriorityLevel = iota + 1
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

func (p PriorityLevel) HigherThan(other PriorityLevel) bool { return p > other }

func (p PriorityLevel) String() string {
	switch p {
	case PriorityLow:
		return "LOW"
	case PriorityMedium:
		return "MEDIUM"
	case PriorityHigh:
		return "HIGH"
	case PriorityUrgent:
		return "URGENT"
	default:
		return "UNKNOWN"
	}
}

// ParsePriorityLevel maps a name to its PriorityLevel, defaulting to low.
func ParsePriorityLevel(s string) PriorityLevel {
	switch s {
	case "MEDIUM":
		return PriorityMedium
	case "HIGH":
		return PriorityHigh
	case "URGENT":
		return PriorityUrgent
	default:
		return PriorityLow
	}
}

// =============================================================================
// PRICING TYPE - Labels which layer produced a price
// =============================================================================

type PricingType string

const (
	PricingStandard     PricingType = "STANDARD"
	PricingHoliday      PricingType = "HOLIDAY"
	PricingFlashSale    PricingType = "FLASH_SALE"
	PricingSeasonal     PricingType = "SEASONAL"
	PricingUserDiscount PricingType = "USER_DISCOUNT"
)

// =============================================================================
// ADJUSTMENT - Shared markup/discount/fixed-price arithmetic
// =============================================================================

// AdjustmentType selects how an adjustment value transforms a price.
type AdjustmentType string

const (
	AdjustMarkup     AdjustmentType = "markup"      // price * (1 + value/100)
	AdjustDiscount   AdjustmentType = "discount"    // price * (1 - value/100)
	AdjustFixedPrice AdjustmentType = "fixed_price" // replace with value
)

// Adjustment is the shared price transformation used by region pricing,
// channel pricing, and every marketing sub-rule.
type Adjustment struct {
	Type  AdjustmentType
	Value decimal.Decimal
}

// Apply transforms the price. Unknown types leave it unchanged.
func (a Adjustment) Apply(price decimal.Decimal) decimal.Decimal {
	switch a.Type {
	case AdjustMarkup:
		return price.Mul(one.Add(a.Value.Div(hundred)))
	case AdjustDiscount:
		return price.Mul(one.Sub(a.Value.Div(hundred)))
	case AdjustFixedPrice:
		return a.Value
	default:
		return price
	}
}
