/*
strategy_test.go - Behavior tests for JSON strategy and offer construction

ORGANIZATION:
  1. User strategies - parsing, defaults, round-trip
  2. Marketing strategies - type validation, quota rehydration
  3. Offers - hotel and hybrid construction, validation
*/
package factory_test

import (
	"testing"
	"time"

	"github.com/warp/pricing-engine/factory"
	"github.com/warp/pricing-engine/pricing"
)

// =============================================================================
// 1. USER STRATEGIES
// =============================================================================

func TestParseUserStrategy(t *testing.T) {
	// GIVEN a full JSON definition
	input := `{
		"id": "vip-summer",
		"name": "VIP Summer Discount",
		"active": true,
		"priority": 3,
		"effective_start": "2026-06-01T00:00:00Z",
		"effective_end": "2026-09-01T00:00:00Z",
		"level_discounts": [
			{"target_level": "DIAMOND", "type": "percentage", "value": 15, "max_discount_amount": 200}
		],
		"region_pricings": [
			{"region": "NORTH", "adjustment": {"type": "discount", "value": 5}}
		],
		"channel_pricings": [
			{"channel": "MOBILE_APP", "adjustment": {"type": "markup", "value": 3}}
		]
	}`

	// WHEN parsing it
	f := factory.NewStrategyFactory()
	s, err := f.ParseUserStrategy(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// THEN every field lands in the right place
	if s.ID != "vip-summer" || s.Name != "VIP Summer Discount" {
		t.Errorf("identity = %s/%s", s.ID, s.Name)
	}
	if s.Priority != pricing.PriorityHigh {
		t.Errorf("priority = %v, want HIGH", s.Priority)
	}
	if s.EffectiveStart.IsZero() || s.EffectiveEnd.IsZero() {
		t.Error("effective window not parsed")
	}
	if len(s.LevelDiscounts) != 1 || s.LevelDiscounts[0].TargetLevel != pricing.LevelDiamond {
		t.Fatalf("level discounts = %+v", s.LevelDiscounts)
	}
	if s.LevelDiscounts[0].MaxDiscountAmount == nil || !s.LevelDiscounts[0].MaxDiscountAmount.Equal(pricing.Price(200)) {
		t.Errorf("max discount cap not carried over")
	}
	if len(s.RegionPricings) != 1 || s.RegionPricings[0].TargetRegion != pricing.RegionNorth {
		t.Errorf("region pricings = %+v", s.RegionPricings)
	}
	if len(s.ChannelPricings) != 1 || s.ChannelPricings[0].TargetChannel != pricing.ChannelApp {
		t.Errorf("channel pricings = %+v", s.ChannelPricings)
	}
}

// A definition without a priority rule applies every axis.
func TestUserStrategyDefaultsToAllAxes(t *testing.T) {
	f := factory.NewStrategyFactory()
	s, err := f.ParseUserStrategy(`{"id": "bare", "name": "Bare", "active": true, "priority": 1}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rule := s.PriorityRule
	if !rule.ApplyLevel || !rule.ApplyRegion || !rule.ApplyChannel {
		t.Errorf("default priority rule = %+v, want all axes on", rule)
	}
}

// Out-of-range priorities clamp to the lowest level instead of failing.
func TestUserStrategyClampsPriority(t *testing.T) {
	f := factory.NewStrategyFactory()
	for _, priority := range []int{0, -3, 99} {
		s, err := f.UserStrategyFromJSON(factory.UserStrategyJSON{ID: "p", Priority: priority})
		if err != nil {
			t.Fatalf("priority %d: unexpected error: %v", priority, err)
		}
		if s.Priority != pricing.PriorityLow {
			t.Errorf("priority %d parsed to %v, want LOW", priority, s.Priority)
		}
	}
}

func TestUserStrategyRejectsMalformedTimestamp(t *testing.T) {
	f := factory.NewStrategyFactory()
	_, err := f.ParseUserStrategy(`{"id": "bad", "effective_start": "June 1st"}`)
	if err == nil {
		t.Fatal("expected an error for a malformed timestamp")
	}
}

// Serializing a parsed strategy and parsing it again yields the same
// strategy. Stores rely on this to persist configs as JSON.
func TestUserStrategyRoundTrip(t *testing.T) {
	f := factory.NewStrategyFactory()
	original, err := f.ParseUserStrategy(`{
		"id": "rt",
		"name": "Round Trip",
		"active": true,
		"priority": 2,
		"effective_end": "2026-12-31T23:59:00Z",
		"valid_date_range": {"start": "2026-06-01", "end": "2026-08-31"},
		"level_discounts": [{"target_level": "GOLD", "type": "fixed_amount", "value": 50, "min_order_amount": 300}]
	}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	restored, err := f.UserStrategyFromJSON(f.UserStrategyToJSON(original))
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}

	if restored.ID != original.ID || restored.Priority != original.Priority {
		t.Errorf("identity drifted: %s/%v vs %s/%v", restored.ID, restored.Priority, original.ID, original.Priority)
	}
	if !restored.EffectiveEnd.Time().Equal(original.EffectiveEnd.Time()) {
		t.Errorf("effective end drifted: %s vs %s", restored.EffectiveEnd, original.EffectiveEnd)
	}
	if restored.ValidDateRange == nil || !restored.ValidDateRange.Start.Equal(original.ValidDateRange.Start) {
		t.Errorf("date range drifted: %v vs %v", restored.ValidDateRange, original.ValidDateRange)
	}
	if len(restored.LevelDiscounts) != 1 {
		t.Fatalf("level discounts lost in round trip")
	}
	if !restored.LevelDiscounts[0].MinOrderAmount.Equal(original.LevelDiscounts[0].MinOrderAmount) {
		t.Errorf("min order amount drifted")
	}

	// Behavioral equivalence: both price the same buyer identically.
	buyer := pricing.UserContext{UserID: "u", Level: pricing.LevelGold}
	at := pricing.NewTimestamp(2026, time.July, 1, 12, 0)
	a := original.Evaluate(pricing.Price(400), buyer, at)
	b := restored.Evaluate(pricing.Price(400), buyer, at)
	if !a.Equal(b) {
		t.Errorf("round-tripped strategy prices differently: %s vs %s", a, b)
	}
}

// =============================================================================
// 2. MARKETING STRATEGIES
// =============================================================================

func TestParseMarketingStrategy(t *testing.T) {
	input := `{
		"id": "summer-flash",
		"name": "Summer Flash",
		"type": "flash_sale",
		"active": true,
		"priority": 3,
		"effective_period": {"start": "2026-06-01", "end": "2026-06-30"},
		"flash_sales": [{
			"id": "fs-48h",
			"name": "48 Hour Sale",
			"start_time": "2026-06-10T00:00:00Z",
			"end_time": "2026-06-12T00:00:00Z",
			"discount_percent": 20,
			"total_quota": 100
		}]
	}`

	f := factory.NewStrategyFactory()
	m, err := f.ParseMarketingStrategy(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Type != pricing.MarketingFlashSale {
		t.Errorf("type = %s, want flash_sale", m.Type)
	}
	if !m.EffectivePeriod.Contains(pricing.NewDay(2026, time.June, 15)) {
		t.Errorf("effective period %s misses June 15", m.EffectivePeriod)
	}
	if len(m.FlashSales) != 1 || m.FlashSales[0].TotalQuota != 100 {
		t.Fatalf("flash sales = %+v", m.FlashSales)
	}
}

func TestMarketingStrategyRejectsUnknownType(t *testing.T) {
	f := factory.NewStrategyFactory()
	_, err := f.ParseMarketingStrategy(`{"id": "x", "type": "coupon_stack", "effective_period": {"start": "2026-06-01", "end": "2026-06-30"}}`)
	if err == nil {
		t.Fatal("expected an error for an unknown strategy type")
	}
}

func TestMarketingStrategyRequiresEffectivePeriod(t *testing.T) {
	f := factory.NewStrategyFactory()
	_, err := f.ParseMarketingStrategy(`{"id": "x", "type": "flash_sale"}`)
	if err == nil {
		t.Fatal("expected an error for a missing effective period")
	}
}

func TestMarketingStrategyRejectsNegativeQuota(t *testing.T) {
	f := factory.NewStrategyFactory()
	_, err := f.ParseMarketingStrategy(`{
		"id": "x", "type": "flash_sale",
		"effective_period": {"start": "2026-06-01", "end": "2026-06-30"},
		"flash_sales": [{"id": "fs", "start_time": "2026-06-01T00:00:00Z", "end_time": "2026-06-02T00:00:00Z", "discount_percent": 10, "total_quota": -5}]
	}`)
	if err == nil {
		t.Fatal("expected an error for a negative quota")
	}
}

// Consumed quota survives serialization so a restarted store does not
// resurrect sold-out sales.
func TestMarketingStrategyRoundTripPreservesUsedQuota(t *testing.T) {
	f := factory.NewStrategyFactory()
	m, err := f.ParseMarketingStrategy(`{
		"id": "rt", "name": "RT", "type": "flash_sale", "active": true, "priority": 2,
		"effective_period": {"start": "2026-06-01", "end": "2026-06-30"},
		"flash_sales": [{"id": "fs", "name": "fs", "start_time": "2026-06-01T00:00:00Z", "end_time": "2026-06-30T00:00:00Z", "discount_percent": 20, "total_quota": 10}]
	}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := m.Reserve("fs", 7); err != nil {
		t.Fatalf("reservation failed: %v", err)
	}

	restored, err := f.MarketingStrategyFromJSON(f.MarketingStrategyToJSON(m))
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}

	if got := restored.FlashSales[0].UsedQuota(); got != 7 {
		t.Errorf("restored used quota = %d, want 7", got)
	}
	if got := restored.FlashSales[0].RemainingQuota(); got != 3 {
		t.Errorf("restored remaining quota = %d, want 3", got)
	}
}

// =============================================================================
// 3. OFFERS
// =============================================================================

func TestParseHotelOffer(t *testing.T) {
	input := `{
		"offer_no": "HOTEL-SEASIDE",
		"name": "Seaside Escape",
		"customer_choice": "Single",
		"hotel": {
			"min_nights": 2, "max_nights": 7,
			"rooms": [
				{"room_no": "SEA-101", "room_type": "Ocean View", "capacity": 2},
				{"room_no": "SEA-102", "room_type": "Garden View", "capacity": 2}
			]
		},
		"price_rules": [{"id": "rack", "name": "Rack Rate", "kind": "passthrough", "default_rate": true}],
		"validity": {
			"visiting_period": {"start": "2026-06-01", "end": "2026-09-30"},
			"advance_booking_days": 2,
			"blackout_dates": ["2026-07-04"]
		}
	}`

	f := factory.NewStrategyFactory()
	offer, err := f.ParseHotelOffer(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if offer.OfferNo != "HOTEL-SEASIDE" {
		t.Errorf("offer no = %s", offer.OfferNo)
	}
	if offer.CustomerChoice != pricing.ChoiceSingle {
		t.Errorf("customer choice = %s, want Single", offer.CustomerChoice)
	}
	if got := offer.RoomNos(); len(got) != 2 || got[0] != "SEA-101" {
		t.Errorf("room nos = %v", got)
	}
	if offer.Products.Nights.Min != 2 || offer.Products.Nights.Max != 7 {
		t.Errorf("nights = %+v", offer.Products.Nights)
	}
	if len(offer.PriceRules) != 1 || !offer.PriceRules[0].DefaultRate {
		t.Errorf("price rules = %+v", offer.PriceRules)
	}
	if len(offer.Validity.BlackoutDates) != 1 {
		t.Errorf("blackout dates = %v", offer.Validity.BlackoutDates)
	}
}

func TestHotelOfferRequiresRooms(t *testing.T) {
	f := factory.NewStrategyFactory()
	_, err := f.ParseHotelOffer(`{"offer_no": "EMPTY", "customer_choice": "Single", "hotel": {"min_nights": 1, "max_nights": 2, "rooms": []}, "price_rules": []}`)
	if err == nil {
		t.Fatal("expected an error for an offer without rooms")
	}
}

func TestParseHybridOffer(t *testing.T) {
	input := `{
		"offer_no": "BUNDLE-PARK",
		"name": "Park Stay & Play",
		"customer_choice": "Fixed",
		"hotel": {
			"min_nights": 2, "max_nights": 5,
			"rooms": [{"room_no": "PARK-201"}]
		},
		"attraction": {
			"min_quantity": 1, "max_quantity": 4,
			"tickets": [{"product_number": "TICKET-DAY", "ticket_code": "DAY", "name": "Day Pass"}]
		},
		"price_rules": [{"id": "rack", "name": "Rack Rate", "kind": "passthrough"}]
	}`

	f := factory.NewStrategyFactory()
	offer, err := f.ParseHybridOffer(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if offer.CustomerChoice != pricing.ChoiceFixed {
		t.Errorf("customer choice = %s, want Fixed", offer.CustomerChoice)
	}
	if got := offer.TicketNos(); len(got) != 1 || got[0] != "TICKET-DAY" {
		t.Errorf("ticket nos = %v", got)
	}
	if offer.Groups.Attraction.ValidQuantity.Max != 4 {
		t.Errorf("quantity range = %+v", offer.Groups.Attraction.ValidQuantity)
	}
}

func TestOfferRejectsUnknownRuleKind(t *testing.T) {
	f := factory.NewStrategyFactory()
	_, err := f.ParseHotelOffer(`{
		"offer_no": "BAD", "customer_choice": "Single",
		"hotel": {"min_nights": 1, "max_nights": 2, "rooms": [{"room_no": "R-1"}]},
		"price_rules": [{"id": "x", "kind": "loyalty_points"}]
	}`)
	if err == nil {
		t.Fatal("expected an error for an unknown rule kind")
	}
}
