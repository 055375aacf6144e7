/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario creates offers, price data,
	and strategies that demonstrate specific features.

AVAILABLE SCENARIOS:

	city-hotel:          Three rooms and two price rules on one downtown hotel
	member-tiers:        A discount strategy per membership level
	holiday-flash-sale:  Holiday markup with a quota-limited flash sale on top
	theme-park-bundle:   Hotel + attraction bundle with fixed room choice

HOW SCENARIOS WORK:
 1. Reset the store, wiping whatever the previous scenario seeded
 2. Create offers via factory JSON
 3. Upload daily room/ticket prices
 4. Create user strategies and campaigns
 5. Quote endpoints then demonstrate the feature

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "holiday-flash-sale"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx)
 3. Add case to LoadScenario handler

SEE ALSO:
  - handlers.go: LoadScenario, ListScenarios handlers
  - factory/strategy.go: Strategy JSON definitions
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/pricing-engine/factory"
	"github.com/warp/pricing-engine/pricing"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "city-hotel",
		Name:        "City Hotel",
		Description: "Downtown hotel with three rooms and competing price rules",
		Category:    "offers",
	},
	{
		ID:          "member-tiers",
		Name:        "Member Tiers",
		Description: "A level discount per membership tier with best-price selection",
		Category:    "user-pricing",
	},
	{
		ID:          "holiday-flash-sale",
		Name:        "Holiday Flash Sale",
		Description: "Holiday markup and a quota-limited flash sale on member pricing",
		Category:    "marketing",
	},
	{
		ID:          "theme-park-bundle",
		Name:        "Theme Park Bundle",
		Description: "Hotel + attraction bundle with fixed room commitment",
		Category:    "offers",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, nil)
}

// LoadScenario resets the store and populates it with one scenario's data.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	// Reset first
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset store", err)
		return
	}
	h.currentScenario = ""

	var err error
	switch req.ScenarioID {
	case "city-hotel":
		err = h.loadCityHotelScenario(ctx)
	case "member-tiers":
		err = h.loadMemberTiersScenario(ctx)
	case "holiday-flash-sale":
		err = h.loadHolidayFlashSaleScenario(ctx)
	case "theme-park-bundle":
		err = h.loadThemeParkBundleScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scenario: %s", req.ScenarioID), nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	writeJSON(w, http.StatusOK, map[string]string{"loaded": req.ScenarioID})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// scenarioWindow returns a one-year date window starting today, used so
// demo data stays bookable no matter when it is loaded.
func scenarioWindow() (pricing.Day, pricing.Day) {
	start := pricing.Today()
	return start, start.AddDays(365)
}

// loadCityHotelScenario: one downtown hotel with three rooms and two
// price rules; the advance-purchase rule undercuts the rack rate, so the
// engine's min-across-rules always quotes the discounted price.
func (h *Handler) loadCityHotelScenario(ctx context.Context) error {
	from, to := scenarioWindow()

	offer, err := h.Factory.HotelOfferFromJSON(factory.HotelOfferJSON{
		OfferNo:        "HOTEL-CITY",
		Name:           "City Central Hotel",
		CustomerChoice: "Single",
		Hotel: factory.HotelProductJSON{
			MinNights: 1,
			MaxNights: 7,
			Rooms: []factory.RoomInfoJSON{
				{RoomNo: "CITY-301", RoomType: "standard", Capacity: 2},
				{RoomNo: "CITY-302", RoomType: "standard", Capacity: 2},
				{RoomNo: "CITY-303", RoomType: "suite", Capacity: 4},
			},
		},
		PriceRules: []factory.PriceRuleJSON{
			{ID: "rack", Name: "Rack rate", Kind: "passthrough", DefaultRate: true},
			{ID: "advance", Name: "Advance purchase", Kind: "percent_off", Value: 10},
		},
		Validity: &factory.ValidityJSON{
			VisitingPeriod: &factory.DateRangeJSON{Start: from.String(), End: to.String()},
		},
	})
	if err != nil {
		return err
	}
	if err := h.Store.SaveOffer(ctx, offer); err != nil {
		return err
	}

	return h.seedFlatPrices(ctx, []string{"CITY-301", "CITY-302", "CITY-303"}, from, 30, 1000, 1100)
}

// loadMemberTiersScenario: the city hotel plus one discount strategy per
// membership level. BEST_PRICE picks the deepest tier the buyer holds,
// e.g. a DIAMOND quote takes the 15% strategy.
func (h *Handler) loadMemberTiersScenario(ctx context.Context) error {
	if err := h.loadCityHotelScenario(ctx); err != nil {
		return err
	}

	tiers := []struct {
		id, name, level string
		pct             float64
		priority        int
	}{
		{"member-silver", "Silver Member Discount", "SILVER", 5, 1},
		{"member-gold", "Gold Member Discount", "GOLD", 10, 2},
		{"member-platinum", "Platinum Member Discount", "PLATINUM", 12, 2},
		{"member-diamond", "Diamond Member Discount", "DIAMOND", 15, 3},
	}
	for _, tier := range tiers {
		st, err := h.Factory.UserStrategyFromJSON(factory.UserStrategyJSON{
			ID:       tier.id,
			Name:     tier.name,
			Active:   true,
			Priority: tier.priority,
			LevelDiscounts: []factory.LevelDiscountJSON{
				{TargetLevel: tier.level, Type: "percentage", Value: tier.pct},
			},
		})
		if err != nil {
			return err
		}
		if err := h.Store.SaveStrategy(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// loadHolidayFlashSaleScenario: member tiers plus one combined campaign -
// a holiday-week markup, a shoulder-season discount, and a 48-hour flash
// sale with a small quota demonstrating atomic reservation.
func (h *Handler) loadHolidayFlashSaleScenario(ctx context.Context) error {
	if err := h.loadMemberTiersScenario(ctx); err != nil {
		return err
	}
	from, to := scenarioWindow()
	holidayStart := from.AddDays(10)

	now := time.Now().UTC()
	campaign, err := h.Factory.MarketingStrategyFromJSON(factory.MarketingStrategyJSON{
		ID:              "holiday-flash",
		Name:            "Holiday Flash Sale",
		Type:            "combined",
		Active:          true,
		Priority:        3,
		EffectivePeriod: &factory.DateRangeJSON{Start: from.String(), End: to.String()},
		Holidays: []factory.HolidayPricingJSON{{
			ID:   "holiday-week",
			Name: "Holiday Week",
			Period: &factory.DateRangeJSON{
				Start: holidayStart.String(),
				End:   holidayStart.AddDays(6).String(),
			},
			Adjustment: factory.AdjustmentJSON{Type: "markup", Value: 25},
		}},
		FlashSales: []factory.FlashSaleJSON{{
			ID:              "flash-48h",
			Name:            "48 Hour Sale",
			StartTime:       now.Add(-time.Hour).Format(time.RFC3339),
			EndTime:         now.Add(48 * time.Hour).Format(time.RFC3339),
			DiscountPercent: 20,
			TotalQuota:      5,
		}},
		Seasons: []factory.SeasonalPricingJSON{{
			ID:   "shoulder",
			Name: "Shoulder Season",
			Period: factory.DateRangeJSON{
				Start: holidayStart.AddDays(7).String(),
				End:   to.String(),
			},
			Adjustment: factory.AdjustmentJSON{Type: "discount", Value: 10},
		}},
	})
	if err != nil {
		return err
	}
	return h.Marketing.SaveStrategy(ctx, campaign)
}

// loadThemeParkBundleScenario: a park hotel bundled with entry tickets,
// the rooms sold as a fixed pair.
func (h *Handler) loadThemeParkBundleScenario(ctx context.Context) error {
	from, to := scenarioWindow()

	offer, err := h.Factory.HybridOfferFromJSON(factory.HybridOfferJSON{
		OfferNo:        "BUNDLE-PARK",
		Name:           "Park Hotel + Tickets",
		CustomerChoice: "Fixed",
		Hotel: factory.HotelProductJSON{
			MinNights: 2,
			MaxNights: 5,
			Rooms: []factory.RoomInfoJSON{
				{RoomNo: "PARK-201", RoomType: "family", Capacity: 4},
				{RoomNo: "PARK-202", RoomType: "family", Capacity: 4},
			},
		},
		Attraction: factory.AttractionProductJSON{
			MinQuantity: 1,
			MaxQuantity: 4,
			Tickets: []factory.TicketItemJSON{
				{ProductNumber: "TICKET-DAY", TicketCode: "DAY", Name: "Day Pass", ThemeParks: []string{"main-park"}},
			},
		},
		PriceRules: []factory.PriceRuleJSON{{ID: "rack", Name: "Rack rate", Kind: "passthrough"}},
		Validity: &factory.ValidityJSON{
			VisitingPeriod: &factory.DateRangeJSON{Start: from.String(), End: to.String()},
		},
	})
	if err != nil {
		return err
	}
	if err := h.Store.SaveOffer(ctx, offer); err != nil {
		return err
	}

	if err := h.seedFlatPrices(ctx, []string{"PARK-201", "PARK-202"}, from, 30, 400, 450); err != nil {
		return err
	}
	return h.seedFlatPrices(ctx, []string{"TICKET-DAY"}, from, 30, 120, 120)
}

// seedFlatPrices uploads days of price data alternating weekday/weekend
// rates for each unit.
func (h *Handler) seedFlatPrices(ctx context.Context, units []string, from pricing.Day, days int, weekday, weekend float64) error {
	var records []pricing.DailyPriceRecord
	for i := 0; i < days; i++ {
		day := from.AddDays(i)
		rate := weekday
		if day.IsWeekend() {
			rate = weekend
		}
		for _, unit := range units {
			records = append(records, pricing.DailyPriceRecord{
				UnitID: pricing.UnitID(unit),
				Day:    day,
				Price:  decimal.NewFromFloat(rate),
			})
		}
	}
	return h.Store.SavePrices(ctx, records)
}
