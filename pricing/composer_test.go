/*
composer_test.go - Behavior tests for the comprehensive pipeline

ORGANIZATION:
  1. The full pipeline - base -> user -> marketing, result invariants
  2. Price trend - per-day series, summary statistics, layer labeling
*/
package pricing_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/pricing-engine/pricing"
)

// =============================================================================
// TEST INFRASTRUCTURE
// =============================================================================

func literalBase(v float64) pricing.BasePriceFunc {
	return func(pricing.Day) (decimal.Decimal, error) {
		return pricing.Price(v), nil
	}
}

func diamondBuyer() pricing.UserContext {
	return pricing.UserContext{
		UserID:  "u-777",
		Level:   pricing.LevelDiamond,
		Region:  pricing.RegionNorth,
		Channel: pricing.ChannelApp,
	}
}

func marketingAt(at pricing.Timestamp) pricing.MarketingContext {
	return pricing.MarketingContext{CurrentTime: at, SessionID: "s-1", RequestedQuantity: 1, SourceSystem: "test"}
}

// checkResultInvariants asserts the arithmetic every result must satisfy.
func checkResultInvariants(t *testing.T, r *pricing.PricingResult) {
	t.Helper()

	if r.FinalPrice.GreaterThan(r.UserDiscountedPrice) {
		t.Errorf("final %s exceeds user-discounted %s", r.FinalPrice, r.UserDiscountedPrice)
	}
	if r.UserDiscountedPrice.GreaterThan(r.BasePrice) {
		t.Errorf("user-discounted %s exceeds base %s", r.UserDiscountedPrice, r.BasePrice)
	}
	wantTotal := r.UserDiscountAmount.Add(r.MarketingDiscountAmount)
	if !r.TotalDiscountAmount.Equal(wantTotal) {
		t.Errorf("total discount %s != user %s + marketing %s",
			r.TotalDiscountAmount, r.UserDiscountAmount, r.MarketingDiscountAmount)
	}
	if !r.BasePrice.Sub(r.FinalPrice).Equal(r.TotalDiscountAmount) {
		t.Errorf("base %s - final %s != total discount %s", r.BasePrice, r.FinalPrice, r.TotalDiscountAmount)
	}
}

// =============================================================================
// 1. THE FULL PIPELINE
// =============================================================================

// A diamond member buying a 1000 offer under a 15% level discount pays
// 850, with a fully populated audit trail.
func TestComputePriceDiamondMember(t *testing.T) {
	// GIVEN a 1000 base price and a 15% diamond discount
	now := ts(2026, time.June, 1, 10)
	in := pricing.QuoteInput{
		CheckIn:        day(2026, time.June, 15),
		BasePrice:      literalBase(1000),
		User:           diamondBuyer(),
		Marketing:      marketingAt(now),
		UserStrategies: []*pricing.UserStrategy{levelStrategy("member-diamond", pricing.LevelDiamond, 15, pricing.PriorityHigh)},
	}

	// WHEN computing the comprehensive price
	result, err := pricing.ComputePrice(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// THEN every layer of the breakdown is accounted for
	assertPrice(t, result.BasePrice, 1000, "base price")
	assertPrice(t, result.UserDiscountedPrice, 850, "user-discounted price")
	assertPrice(t, result.FinalPrice, 850, "final price")
	assertPrice(t, result.UserDiscountAmount, 150, "user discount amount")
	assertPrice(t, result.MarketingDiscountAmount, 0, "marketing discount amount")
	assertPrice(t, result.DiscountRate, 15, "discount rate")
	if result.Selection.WinnerID != "member-diamond" {
		t.Errorf("selection winner = %s, want member-diamond", result.Selection.WinnerID)
	}
	checkResultInvariants(t, result)
}

// The marketing layer discounts the user-discounted price, not the base,
// and the breakdown attributes each layer's share correctly.
func TestComputePriceLayersMarketingOverUserDiscount(t *testing.T) {
	// GIVEN a 15% diamond discount and a 20% flash sale
	now := ts(2026, time.June, 10, 10)
	period := pricing.NewDateRange(day(2026, time.June, 1), day(2026, time.June, 30))
	in := pricing.QuoteInput{
		CheckIn:        day(2026, time.June, 15),
		BasePrice:      literalBase(1000),
		User:           diamondBuyer(),
		Marketing:      marketingAt(now),
		UserStrategies: []*pricing.UserStrategy{levelStrategy("member-diamond", pricing.LevelDiamond, 15, pricing.PriorityHigh)},
		MarketingStrategies: []*pricing.MarketingStrategy{
			flashCampaign("fs-20", 20, 100, ts(2026, time.June, 1, 0), ts(2026, time.June, 30, 0), period),
		},
	}

	// WHEN computing
	result, err := pricing.ComputePrice(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// THEN 1000 -> 850 (user) -> 680 (20% off 850, not off 1000)
	assertPrice(t, result.UserDiscountedPrice, 850, "user-discounted price")
	assertPrice(t, result.FinalPrice, 680, "final price")
	assertPrice(t, result.UserDiscountAmount, 150, "user share")
	assertPrice(t, result.MarketingDiscountAmount, 170, "marketing share")
	assertPrice(t, result.TotalDiscountAmount, 320, "total discount")
	assertPrice(t, result.DiscountRate, 32, "discount rate")
	checkResultInvariants(t, result)
}

// A base-price failure is fatal: no partial result leaks out.
func TestComputePricePropagatesBaseFailure(t *testing.T) {
	failing := func(d pricing.Day) (decimal.Decimal, error) {
		return decimal.Zero, &pricing.PriceLookupError{UnitID: "R-404", Day: d}
	}

	result, err := pricing.ComputePrice(pricing.QuoteInput{
		CheckIn:   day(2026, time.June, 15),
		BasePrice: failing,
		User:      diamondBuyer(),
		Marketing: marketingAt(ts(2026, time.June, 1, 0)),
	})
	if !errors.Is(err, pricing.ErrPriceUnavailable) {
		t.Fatalf("expected ErrPriceUnavailable, got %v", err)
	}
	if result != nil {
		t.Errorf("expected nil result on failure, got %+v", result)
	}
}

// An empty selection mode defaults to BestPrice.
func TestComputePriceDefaultsToBestPrice(t *testing.T) {
	result, err := pricing.ComputePrice(pricing.QuoteInput{
		CheckIn:   day(2026, time.June, 15),
		BasePrice: literalBase(500),
		User:      diamondBuyer(),
		Marketing: marketingAt(ts(2026, time.June, 1, 0)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Selection.Mode != pricing.BestPrice {
		t.Errorf("default mode = %s, want %s", result.Selection.Mode, pricing.BestPrice)
	}
	assertPrice(t, result.FinalPrice, 500, "price with no strategies at all")
}

// A zero base price yields a zero discount rate rather than dividing by
// zero.
func TestComputePriceZeroBaseHasZeroRate(t *testing.T) {
	result, err := pricing.ComputePrice(pricing.QuoteInput{
		CheckIn:   day(2026, time.June, 15),
		BasePrice: literalBase(0),
		User:      diamondBuyer(),
		Marketing: marketingAt(ts(2026, time.June, 1, 0)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.DiscountRate.IsZero() {
		t.Errorf("discount rate on zero base = %s, want 0", result.DiscountRate)
	}
}

// =============================================================================
// 2. PRICE TREND
// =============================================================================

// The trend prices every day in the range and derives the extremes and
// the best-deal date.
func TestAnalyzeTrendDerivesSummary(t *testing.T) {
	// GIVEN per-day base prices with a dip on June 17
	prices := map[string]float64{
		"2026-06-15": 1000,
		"2026-06-16": 1100,
		"2026-06-17": 900,
		"2026-06-18": 1200,
	}
	base := func(d pricing.Day) (decimal.Decimal, error) {
		return pricing.Price(prices[d.String()]), nil
	}
	rng := pricing.NewDateRange(day(2026, time.June, 15), day(2026, time.June, 18))

	// WHEN analyzing the trend with no strategies
	trend := pricing.AnalyzeTrend(rng, base, diamondBuyer(), marketingAt(ts(2026, time.June, 1, 0)), nil, nil)

	// THEN every day is present and the summary picks out the dip
	if len(trend.Daily) != 4 {
		t.Fatalf("trend has %d points, want 4", len(trend.Daily))
	}
	assertPrice(t, trend.LowestPrice, 900, "lowest price")
	assertPrice(t, trend.HighestPrice, 1200, "highest price")
	if !trend.BestDealDate.Equal(day(2026, time.June, 17)) {
		t.Errorf("best deal date = %s, want 2026-06-17", trend.BestDealDate)
	}
}

// Days whose base price cannot be computed are skipped: a trend is a
// best-effort series, unlike a single quote.
func TestAnalyzeTrendSkipsUnpriceableDays(t *testing.T) {
	base := func(d pricing.Day) (decimal.Decimal, error) {
		if d.Equal(day(2026, time.June, 16)) {
			return decimal.Zero, &pricing.PriceLookupError{UnitID: "R-101", Day: d}
		}
		return pricing.Price(1000), nil
	}
	rng := pricing.NewDateRange(day(2026, time.June, 15), day(2026, time.June, 17))

	trend := pricing.AnalyzeTrend(rng, base, diamondBuyer(), marketingAt(ts(2026, time.June, 1, 0)), nil, nil)

	if len(trend.Daily) != 2 {
		t.Fatalf("trend has %d points, want 2 (the failing day skipped)", len(trend.Daily))
	}
	for _, p := range trend.Daily {
		if p.Date.Equal(day(2026, time.June, 16)) {
			t.Errorf("unpriceable day %s appears in the series", p.Date)
		}
	}
}

// Each trend point is labeled with the layer that won it.
func TestAnalyzeTrendLabelsWinningLayer(t *testing.T) {
	// GIVEN a flash sale covering only June 16
	period := pricing.NewDateRange(day(2026, time.June, 16), day(2026, time.June, 16))
	campaign := flashCampaign("fs-label", 20, 100, ts(2026, time.June, 1, 0), ts(2026, time.June, 30, 0), period)

	rng := pricing.NewDateRange(day(2026, time.June, 15), day(2026, time.June, 17))
	userStrategies := []*pricing.UserStrategy{levelStrategy("member-diamond", pricing.LevelDiamond, 15, pricing.PriorityHigh)}

	// WHEN analyzing
	trend := pricing.AnalyzeTrend(rng, literalBase(1000), diamondBuyer(),
		marketingAt(ts(2026, time.June, 10, 0)), userStrategies,
		[]*pricing.MarketingStrategy{campaign})

	// THEN the sale day is labeled flash sale, the rest user discount
	if len(trend.Daily) != 3 {
		t.Fatalf("trend has %d points, want 3", len(trend.Daily))
	}
	for _, p := range trend.Daily {
		want := pricing.PricingUserDiscount
		if p.Date.Equal(day(2026, time.June, 16)) {
			want = pricing.PricingFlashSale
		}
		if p.Type != want {
			t.Errorf("day %s labeled %s, want %s", p.Date, p.Type, want)
		}
	}
}

// An empty series yields an empty summary.
func TestPriceTrendFromEmptySeries(t *testing.T) {
	trend := pricing.NewPriceTrend(nil)

	if len(trend.Daily) != 0 {
		t.Errorf("empty trend has %d points", len(trend.Daily))
	}
	if !trend.LowestPrice.IsZero() || !trend.HighestPrice.IsZero() {
		t.Errorf("empty trend carries prices %s/%s", trend.LowestPrice, trend.HighestPrice)
	}
}
