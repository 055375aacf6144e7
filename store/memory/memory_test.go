/*
memory_test.go - Behavior tests for the in-memory stores

ORGANIZATION:
  1. User strategies - axis filtering, ordering, CRUD
  2. Marketing strategies - effectiveness, offer bindings, shared quota
  3. Prices - minimum-of-observations lookups
  4. Offers - lookup and listing
*/
package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/warp/pricing-engine/catalog"
	"github.com/warp/pricing-engine/pricing"
	"github.com/warp/pricing-engine/store/memory"
)

// =============================================================================
// TEST INFRASTRUCTURE
// =============================================================================

func day(y int, m time.Month, d int) pricing.Day {
	return pricing.NewDay(y, m, d)
}

func goldDiscount(id string, priority pricing.PriorityLevel) *pricing.UserStrategy {
	return &pricing.UserStrategy{
		ID:       pricing.StrategyID(id),
		Name:     id,
		Active:   true,
		Priority: priority,
		LevelDiscounts: []pricing.LevelDiscount{{
			ID:          id + "-ld",
			TargetLevel: pricing.LevelGold,
			Type:        pricing.DiscountPercentage,
			Value:       pricing.Price(10),
		}},
		PriorityRule: pricing.PriorityRule{ApplyLevel: true},
	}
}

func juneCampaign(id string) *pricing.MarketingStrategy {
	return &pricing.MarketingStrategy{
		ID:              pricing.StrategyID(id),
		Name:            id,
		Type:            pricing.MarketingFlashSale,
		Active:          true,
		EffectivePeriod: pricing.NewDateRange(day(2026, time.June, 1), day(2026, time.June, 30)),
		Priority:        pricing.PriorityMedium,
		FlashSales: []*pricing.FlashSale{{
			ID:              id + "-fs",
			StartTime:       pricing.NewTimestamp(2026, time.June, 1, 0, 0),
			EndTime:         pricing.NewTimestamp(2026, time.June, 30, 0, 0),
			DiscountPercent: pricing.Price(20),
			TotalQuota:      10,
		}},
	}
}

// =============================================================================
// 1. USER STRATEGIES
// =============================================================================

// ApplicableStrategies returns strategies touching any of the buyer's
// axes; the window filter is evaluation-time business, not the store's.
func TestUserStrategiesFilterByAxis(t *testing.T) {
	ctx := context.Background()
	store := memory.NewUserStrategies()

	// GIVEN a gold discount and a region adjustment for the south
	if err := store.SaveStrategy(ctx, goldDiscount("gold-10", pricing.PriorityMedium)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	south := &pricing.UserStrategy{
		ID:     "south-adj",
		Active: true,
		RegionPricings: []pricing.RegionPricing{{
			ID:           "south",
			TargetRegion: pricing.RegionSouth,
			Adjustment:   pricing.Adjustment{Type: pricing.AdjustDiscount, Value: pricing.Price(5)},
		}},
	}
	if err := store.SaveStrategy(ctx, south); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// WHEN loading for a gold buyer from the north
	got, err := store.ApplicableStrategies(ctx, pricing.UserContext{
		UserID: "u", Level: pricing.LevelGold, Region: pricing.RegionNorth,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// THEN only the level strategy applies
	if len(got) != 1 || got[0].ID != "gold-10" {
		t.Errorf("applicable strategies = %v, want [gold-10]", got)
	}

	// AND an inactive window does not hide it at the store level: an
	// expired strategy still loads, the engine decides effectiveness.
	expired := goldDiscount("gold-expired", pricing.PriorityLow)
	expired.EffectiveEnd = pricing.NewTimestamp(2000, time.January, 1, 0, 0)
	if err := store.SaveStrategy(ctx, expired); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err = store.ApplicableStrategies(ctx, pricing.UserContext{UserID: "u", Level: pricing.LevelGold})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected the expired strategy to still load, got %d strategies", len(got))
	}
}

// Results come back highest priority first so callers can rely on the
// order without re-sorting.
func TestUserStrategiesSortByPriority(t *testing.T) {
	ctx := context.Background()
	store := memory.NewUserStrategies()

	for _, s := range []*pricing.UserStrategy{
		goldDiscount("low", pricing.PriorityLow),
		goldDiscount("urgent", pricing.PriorityUrgent),
		goldDiscount("medium", pricing.PriorityMedium),
	} {
		if err := store.SaveStrategy(ctx, s); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	got, err := store.ApplicableStrategies(ctx, pricing.UserContext{UserID: "u", Level: pricing.LevelGold})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 || got[0].ID != "urgent" || got[2].ID != "low" {
		ids := make([]pricing.StrategyID, len(got))
		for i, s := range got {
			ids[i] = s.ID
		}
		t.Errorf("order = %v, want [urgent medium low]", ids)
	}
}

func TestUserStrategiesCRUD(t *testing.T) {
	ctx := context.Background()
	store := memory.NewUserStrategies()

	if _, err := store.StrategyByID(ctx, "nope"); !errors.Is(err, pricing.ErrStrategyNotFound) {
		t.Fatalf("expected ErrStrategyNotFound, got %v", err)
	}

	s := goldDiscount("gold-10", pricing.PriorityMedium)
	if err := store.SaveStrategy(ctx, s); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := store.StrategyByID(ctx, "gold-10")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded != s {
		t.Error("store returned a different pointer than it was given")
	}

	if err := store.DeleteStrategy(ctx, "gold-10"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.StrategyByID(ctx, "gold-10"); !errors.Is(err, pricing.ErrStrategyNotFound) {
		t.Errorf("deleted strategy still loads: %v", err)
	}
}

// =============================================================================
// 2. MARKETING STRATEGIES
// =============================================================================

// EffectiveStrategies honors the activation period and the active flag.
func TestMarketingEffectiveStrategies(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMarketingStrategies()

	campaign := juneCampaign("june-flash")
	dormant := juneCampaign("dormant")
	dormant.Active = false
	for _, s := range []*pricing.MarketingStrategy{campaign, dormant} {
		if err := store.SaveStrategy(ctx, s); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	inJune, err := store.EffectiveStrategies(ctx, day(2026, time.June, 15), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inJune) != 1 || inJune[0].ID != "june-flash" {
		t.Errorf("effective in June = %v, want [june-flash]", inJune)
	}

	inJuly, err := store.EffectiveStrategies(ctx, day(2026, time.July, 15), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inJuly) != 0 {
		t.Errorf("effective in July = %v, want none", inJuly)
	}
}

// A strategy bound to an offer only surfaces for that offer; unbound
// strategies apply everywhere.
func TestMarketingOfferBindings(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMarketingStrategies()

	bound := juneCampaign("seaside-only")
	global := juneCampaign("sitewide")
	for _, s := range []*pricing.MarketingStrategy{bound, global} {
		if err := store.SaveStrategy(ctx, s); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}
	if err := store.BindOffer(ctx, "seaside-only", "HOTEL-SEASIDE"); err != nil {
		t.Fatalf("bind failed: %v", err)
	}

	target := day(2026, time.June, 15)

	forSeaside, err := store.EffectiveStrategies(ctx, target, "HOTEL-SEASIDE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(forSeaside) != 2 {
		t.Errorf("seaside sees %d strategies, want 2", len(forSeaside))
	}

	forOther, err := store.EffectiveStrategies(ctx, target, "BUNDLE-PARK")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(forOther) != 1 || forOther[0].ID != "sitewide" {
		t.Errorf("other offer sees %v, want [sitewide]", forOther)
	}
}

// StrategiesInRange returns strategies whose period overlaps the window,
// including partial overlaps at either edge.
func TestMarketingStrategiesInRange(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMarketingStrategies()
	if err := store.SaveStrategy(ctx, juneCampaign("june-flash")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	cases := []struct {
		name     string
		from, to pricing.Day
		want     int
	}{
		{"fully inside", day(2026, time.June, 10), day(2026, time.June, 20), 1},
		{"overlaps the start", day(2026, time.May, 20), day(2026, time.June, 5), 1},
		{"overlaps the end", day(2026, time.June, 25), day(2026, time.July, 10), 1},
		{"entirely before", day(2026, time.May, 1), day(2026, time.May, 31), 0},
		{"entirely after", day(2026, time.July, 1), day(2026, time.July, 31), 0},
	}
	for _, tc := range cases {
		got, err := store.StrategiesInRange(ctx, tc.from, tc.to, "")
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if len(got) != tc.want {
			t.Errorf("%s: %d strategies, want %d", tc.name, len(got), tc.want)
		}
	}
}

// The store hands out the same strategy pointer on every read so all
// callers share one quota counter.
func TestMarketingStoreSharesQuotaCounters(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMarketingStrategies()
	campaign := juneCampaign("june-flash")
	if err := store.SaveStrategy(ctx, campaign); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// GIVEN one caller reserving through a loaded snapshot
	first, err := store.StrategyByID(ctx, "june-flash")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := first.Reserve("june-flash-fs", 4); err != nil {
		t.Fatalf("reservation failed: %v", err)
	}

	// WHEN another caller loads the strategy
	second, err := store.StrategyByID(ctx, "june-flash")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	// THEN it observes the consumed quota
	if second != first {
		t.Fatal("store returned distinct pointers; quota counters would diverge")
	}
	if got := second.FlashSales[0].UsedQuota(); got != 4 {
		t.Errorf("second read sees %d used quota, want 4", got)
	}
}

func TestMarketingStrategiesByType(t *testing.T) {
	ctx := context.Background()
	store := memory.NewMarketingStrategies()

	seasonal := &pricing.MarketingStrategy{
		ID:              "shoulder",
		Type:            pricing.MarketingSeasonal,
		Active:          true,
		EffectivePeriod: pricing.NewDateRange(day(2026, time.September, 1), day(2026, time.October, 31)),
	}
	for _, s := range []*pricing.MarketingStrategy{juneCampaign("june-flash"), seasonal} {
		if err := store.SaveStrategy(ctx, s); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	got, err := store.StrategiesByType(ctx, pricing.MarketingSeasonal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "shoulder" {
		t.Errorf("seasonal strategies = %v, want [shoulder]", got)
	}
}

// =============================================================================
// 3. PRICES
// =============================================================================

// Lookups take the minimum across a day's observations; absence of data
// is an error, never a zero price.
func TestPricesMinimumOfObservations(t *testing.T) {
	ctx := context.Background()
	store := memory.NewPrices()
	d := day(2026, time.June, 15)

	if err := store.SavePrices(ctx, []pricing.DailyPriceRecord{
		{UnitID: "SEA-101", Day: d, Price: pricing.Price(120)},
		{UnitID: "SEA-101", Day: d, Price: pricing.Price(95)},
		{UnitID: "SEA-101", Day: d, Price: pricing.Price(110)},
	}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.MinPriceForDay("SEA-101", d)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if !got.Equal(pricing.Price(95)) {
		t.Errorf("minimum = %s, want 95", got)
	}

	_, err = store.MinPriceForDay("SEA-101", d.AddDays(1))
	if !errors.Is(err, pricing.ErrPriceUnavailable) {
		t.Errorf("expected ErrPriceUnavailable for a day without data, got %v", err)
	}
}

// =============================================================================
// 4. OFFERS
// =============================================================================

func TestOffersStore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewOffers()

	if _, err := store.OfferByNo(ctx, "nope"); !errors.Is(err, pricing.ErrOfferNotFound) {
		t.Fatalf("expected ErrOfferNotFound, got %v", err)
	}

	offers := []catalog.Offer{
		&catalog.HotelOffer{OfferNo: "HOTEL-B", Name: "B"},
		&catalog.HotelOffer{OfferNo: "HOTEL-A", Name: "A"},
	}
	for _, o := range offers {
		if err := store.SaveOffer(ctx, o); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	loaded, err := store.OfferByNo(ctx, "HOTEL-A")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Title() != "A" {
		t.Errorf("loaded offer = %s", loaded.Title())
	}

	all, err := store.ListOffers(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 || all[0].Number() != "HOTEL-A" || all[1].Number() != "HOTEL-B" {
		t.Errorf("listing is not sorted by offer number: %v", all)
	}

	if err := store.DeleteOffer(ctx, "HOTEL-A"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.OfferByNo(ctx, "HOTEL-A"); !errors.Is(err, pricing.ErrOfferNotFound) {
		t.Errorf("deleted offer still loads: %v", err)
	}
}

// =============================================================================
// 5. RESET
// =============================================================================

// Every store type supports Reset so scenario loaders can start clean.
func TestStoresReset(t *testing.T) {
	ctx := context.Background()

	users := memory.NewUserStrategies()
	if err := users.SaveStrategy(ctx, goldDiscount("gold-10", pricing.PriorityMedium)); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := users.Reset(ctx); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if _, err := users.StrategyByID(ctx, "gold-10"); !errors.Is(err, pricing.ErrStrategyNotFound) {
		t.Errorf("user strategy survived reset: %v", err)
	}

	campaigns := memory.NewMarketingStrategies()
	if err := campaigns.SaveStrategy(ctx, juneCampaign("june")); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := campaigns.BindOffer(ctx, "june", "HOTEL-A"); err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if err := campaigns.Reset(ctx); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if _, err := campaigns.StrategyByID(ctx, "june"); !errors.Is(err, pricing.ErrStrategyNotFound) {
		t.Errorf("campaign survived reset: %v", err)
	}

	prices := memory.NewPrices()
	d := day(2026, time.June, 15)
	if err := prices.SavePrices(ctx, []pricing.DailyPriceRecord{
		{UnitID: "SEA-101", Day: d, Price: pricing.Price(120)},
	}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := prices.Reset(ctx); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if _, err := prices.MinPriceForDay("SEA-101", d); !errors.Is(err, pricing.ErrPriceUnavailable) {
		t.Errorf("price observation survived reset: %v", err)
	}

	offers := memory.NewOffers()
	if err := offers.SaveOffer(ctx, &catalog.HotelOffer{OfferNo: "HOTEL-A", Name: "A"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := offers.Reset(ctx); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if _, err := offers.OfferByNo(ctx, "HOTEL-A"); !errors.Is(err, pricing.ErrOfferNotFound) {
		t.Errorf("offer survived reset: %v", err)
	}
}
