/*
composer.go - The comprehensive pricing pipeline and its result model

PURPOSE:
  Composes the three pricing layers into one auditable result:

    base price -> best user-strategy price -> best marketing price

  The base price is supplied as a function so the composer stays
  independent of how offers are structured (hotel stay, hybrid bundle);
  catalog offers plug their own calculation in. Base-price failure is
  fatal and propagates. The strategy layers never fail the call: an
  inapplicable or erroring strategy simply does not improve the price.

INVARIANT:
  totalDiscount = base - final = userDiscount + marketingDiscount
  holds for every result the composer builds (within cent rounding).
*/
package pricing

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// PRICING RESULT - Derived, immutable once built
// =============================================================================

// PricingResult is the full outcome of one comprehensive pricing call.
type PricingResult struct {
	BasePrice           decimal.Decimal
	UserDiscountedPrice decimal.Decimal
	FinalPrice          decimal.Decimal

	UserDiscountAmount      decimal.Decimal
	MarketingDiscountAmount decimal.Decimal
	TotalDiscountAmount     decimal.Decimal
	DiscountRate            decimal.Decimal // percent of base, 0 when base is 0

	CheckInDay      Day
	UserID          string
	UserLevel       UserLevel
	CalculationTime Timestamp

	// Selection is the user-strategy audit trail.
	Selection Selection
}

// =============================================================================
// QUOTE INPUT
// =============================================================================

// BasePriceFunc computes the base price of an offer for a check-in day.
// Catalog offers provide this; tests supply literals.
type BasePriceFunc func(checkIn Day) (decimal.Decimal, error)

// QuoteInput bundles everything one comprehensive pricing call needs.
// All fields are read-only snapshots for the duration of the call.
type QuoteInput struct {
	CheckIn   Day
	BasePrice BasePriceFunc

	User      UserContext
	Marketing MarketingContext

	UserStrategies      []*UserStrategy
	MarketingStrategies []*MarketingStrategy

	// Mode defaults to BestPrice when empty.
	Mode SelectionMode
}

// =============================================================================
// COMPREHENSIVE COMPOSER
// =============================================================================

// ComputePrice runs the full pipeline and builds the result. Only the base
// price computation can fail; the user and marketing layers degrade to
// "no discount".
func ComputePrice(in QuoteInput) (*PricingResult, error) {
	base, err := in.BasePrice(in.CheckIn)
	if err != nil {
		return nil, err
	}

	mode := in.Mode
	if mode == "" {
		mode = BestPrice
	}
	sel := SelectUserPrice(base, in.User, in.UserStrategies, mode, in.Marketing.CurrentTime)
	userPrice := sel.Price

	finalPrice := BestMarketingPrice(userPrice, in.CheckIn, in.Marketing, in.MarketingStrategies)

	return buildResult(base, userPrice, finalPrice, sel, in), nil
}

func buildResult(base, userPrice, finalPrice decimal.Decimal, sel Selection, in QuoteInput) *PricingResult {
	result := &PricingResult{
		BasePrice:           base,
		UserDiscountedPrice: userPrice,
		FinalPrice:          finalPrice,

		UserDiscountAmount:      base.Sub(userPrice),
		MarketingDiscountAmount: userPrice.Sub(finalPrice),
		TotalDiscountAmount:     base.Sub(finalPrice),

		CheckInDay:      in.CheckIn,
		UserID:          in.User.UserID,
		UserLevel:       in.User.Level,
		CalculationTime: in.Marketing.CurrentTime,
		Selection:       sel,
	}

	if base.IsPositive() {
		result.DiscountRate = result.TotalDiscountAmount.
			Div(base).Round(4).Mul(hundred)
	}
	return result
}

// =============================================================================
// PRICE TREND - Per-day series over a date range
// =============================================================================

// DailyPrice is one point of a price-trend series.
type DailyPrice struct {
	Date       Day
	BasePrice  decimal.Decimal
	FinalPrice decimal.Decimal
	Type       PricingType
}

// PriceTrend summarizes a per-day series: the extremes and the date with
// the cheapest final price.
type PriceTrend struct {
	Daily        []DailyPrice
	LowestPrice  decimal.Decimal
	HighestPrice decimal.Decimal
	BestDealDate Day
}

// NewPriceTrend derives the summary statistics from a daily series.
func NewPriceTrend(daily []DailyPrice) PriceTrend {
	trend := PriceTrend{Daily: daily}
	if len(daily) == 0 {
		return trend
	}

	trend.LowestPrice = daily[0].FinalPrice
	trend.HighestPrice = daily[0].FinalPrice
	trend.BestDealDate = daily[0].Date
	for _, p := range daily[1:] {
		if p.FinalPrice.LessThan(trend.LowestPrice) {
			trend.LowestPrice = p.FinalPrice
			trend.BestDealDate = p.Date
		}
		if p.FinalPrice.GreaterThan(trend.HighestPrice) {
			trend.HighestPrice = p.FinalPrice
		}
	}
	return trend
}

// AnalyzeTrend prices every day in the range through the full pipeline and
// labels each point with the marketing layer that won it. Days whose base
// price cannot be computed are skipped: a trend is a best-effort series,
// unlike a single quote.
func AnalyzeTrend(
	rng DateRange,
	base BasePriceFunc,
	user UserContext,
	ctx MarketingContext,
	userStrategies []*UserStrategy,
	marketingStrategies []*MarketingStrategy,
) PriceTrend {

	daily := make([]DailyPrice, 0, rng.Len())
	for _, day := range rng.Days() {
		result, err := ComputePrice(QuoteInput{
			CheckIn:             day,
			BasePrice:           base,
			User:                user,
			Marketing:           ctx,
			UserStrategies:      userStrategies,
			MarketingStrategies: marketingStrategies,
		})
		if err != nil {
			continue
		}
		daily = append(daily, DailyPrice{
			Date:       day,
			BasePrice:  result.BasePrice,
			FinalPrice: result.FinalPrice,
			Type:       labelPricingType(result, day, ctx, marketingStrategies),
		})
	}
	return NewPriceTrend(daily)
}

// labelPricingType names the layer that produced the final price: the
// winning marketing family when marketing discounted, the user layer when
// only it did, standard otherwise.
func labelPricingType(r *PricingResult, day Day, ctx MarketingContext, strategies []*MarketingStrategy) PricingType {
	if r.MarketingDiscountAmount.IsPositive() {
		for _, s := range strategies {
			if t := s.BestPricingType(day, ctx); t != PricingStandard {
				return t
			}
		}
	}
	if r.UserDiscountAmount.IsPositive() {
		return PricingUserDiscount
	}
	return PricingStandard
}
