/*
Package factory provides JSON to Go strategy and offer conversion.

PURPOSE:
  Converts JSON strategy definitions into pricing.UserStrategy,
  pricing.MarketingStrategy, and catalog offer objects. This enables
  pricing configuration without code changes - operations teams can
  define campaigns in JSON, and the factory creates the proper Go
  structs.

WHY JSON?
  - Non-developers can modify campaigns
  - Easy integration with admin UI
  - Version control for strategy definitions
  - Database storage of strategy configs

JSON SCHEMA (user strategy):
  {
    "id": "vip-summer",
    "name": "VIP Summer Discount",
    "active": true,
    "priority": 3,
    "effective_start": "2026-06-01T00:00:00Z",
    "effective_end": "2026-09-01T00:00:00Z",
    "level_discounts": [
      {"target_level": "DIAMOND", "type": "percentage", "value": 15}
    ],
    "region_pricings": [
      {"region": "CN", "adjustment": {"type": "markup", "value": 5}}
    ]
  }

USAGE:
  factory := NewStrategyFactory()
  strategy, err := factory.ParseUserStrategy(jsonString)
  campaign, err := factory.ParseMarketingStrategy(jsonString)
  offer, err := factory.ParseHotelOffer(jsonString)

SEE ALSO:
  - pricing/userstrategy.go: UserStrategy type definition
  - pricing/marketing.go: MarketingStrategy type definition
  - catalog/offer.go: HotelOffer and HybridOffer definitions
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/pricing-engine/catalog"
	"github.com/warp/pricing-engine/pricing"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// UserStrategyJSON is the JSON representation of a user pricing strategy.
type UserStrategyJSON struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Active         bool                 `json:"active"`
	Priority       int                  `json:"priority"`
	EffectiveStart string               `json:"effective_start,omitempty"`
	EffectiveEnd   string               `json:"effective_end,omitempty"`
	ValidDateRange *DateRangeJSON       `json:"valid_date_range,omitempty"`
	LevelDiscounts []LevelDiscountJSON  `json:"level_discounts,omitempty"`
	RegionPricings []RegionPricingJSON  `json:"region_pricings,omitempty"`
	ChannelPricing []ChannelPricingJSON `json:"channel_pricings,omitempty"`
	PriorityRule   *PriorityRuleJSON    `json:"priority_rule,omitempty"`
}

// DateRangeJSON represents an inclusive day range.
type DateRangeJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// LevelDiscountJSON represents a membership-level discount.
type LevelDiscountJSON struct {
	ID                string   `json:"id,omitempty"`
	TargetLevel       string   `json:"target_level"`
	Type              string   `json:"type"` // percentage, fixed_amount
	Value             float64  `json:"value"`
	MaxDiscountAmount *float64 `json:"max_discount_amount,omitempty"`
	MinOrderAmount    *float64 `json:"min_order_amount,omitempty"`
}

// RegionPricingJSON represents a region price adjustment.
type RegionPricingJSON struct {
	Region     string         `json:"region"`
	Adjustment AdjustmentJSON `json:"adjustment"`
}

// ChannelPricingJSON represents a sales-channel price adjustment.
type ChannelPricingJSON struct {
	Channel    string         `json:"channel"`
	Adjustment AdjustmentJSON `json:"adjustment"`
}

// AdjustmentJSON represents a price adjustment.
type AdjustmentJSON struct {
	Type  string  `json:"type"` // markup, discount, fixed_price
	Value float64 `json:"value"`
}

// PriorityRuleJSON controls which strategy axes participate.
type PriorityRuleJSON struct {
	ApplyLevel   bool `json:"apply_level"`
	ApplyRegion  bool `json:"apply_region"`
	ApplyChannel bool `json:"apply_channel"`
}

// MarketingStrategyJSON is the JSON representation of a marketing campaign.
type MarketingStrategyJSON struct {
	ID              string                `json:"id"`
	Name            string                `json:"name"`
	Type            string                `json:"type"` // holiday_pricing, flash_sale, seasonal_pricing, combined
	Active          bool                  `json:"active"`
	Priority        int                   `json:"priority"`
	EffectivePeriod *DateRangeJSON        `json:"effective_period,omitempty"`
	Holidays        []HolidayPricingJSON  `json:"holidays,omitempty"`
	FlashSales      []FlashSaleJSON       `json:"flash_sales,omitempty"`
	Seasons         []SeasonalPricingJSON `json:"seasons,omitempty"`
}

// HolidayPricingJSON represents holiday markup configuration.
type HolidayPricingJSON struct {
	ID         string         `json:"id,omitempty"`
	Name       string         `json:"name"`
	Dates      []string       `json:"dates,omitempty"`
	Period     *DateRangeJSON `json:"period,omitempty"`
	Adjustment AdjustmentJSON `json:"adjustment"`
}

// FlashSaleJSON represents a quota-limited flash sale activity.
type FlashSaleJSON struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	ApplicableDates []string `json:"applicable_dates,omitempty"`
	DiscountPercent float64  `json:"discount_percent"`
	MaxDiscount     *float64 `json:"max_discount,omitempty"`
	TotalQuota      int64    `json:"total_quota"`
	UsedQuota       int64    `json:"used_quota,omitempty"`
}

// SeasonalPricingJSON represents seasonal adjustment configuration.
type SeasonalPricingJSON struct {
	ID         string         `json:"id,omitempty"`
	Name       string         `json:"name"`
	Period     DateRangeJSON  `json:"period"`
	Adjustment AdjustmentJSON `json:"adjustment"`
}

// PriceRuleJSON represents an offer price rule.
type PriceRuleJSON struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Kind        string  `json:"kind"` // passthrough, percent_off, amount_off, weekend_markup
	Value       float64 `json:"value,omitempty"`
	DefaultRate bool    `json:"default_rate,omitempty"`
}

// HotelOfferJSON is the JSON representation of a hotel offer.
type HotelOfferJSON struct {
	OfferNo        string           `json:"offer_no"`
	Name           string           `json:"name"`
	CustomerChoice string           `json:"customer_choice"`
	Hotel          HotelProductJSON `json:"hotel"`
	PriceRules     []PriceRuleJSON  `json:"price_rules"`
	Validity       *ValidityJSON    `json:"validity,omitempty"`
}

// HybridOfferJSON is the JSON representation of a hotel+attraction bundle.
type HybridOfferJSON struct {
	OfferNo        string                `json:"offer_no"`
	Name           string                `json:"name"`
	CustomerChoice string                `json:"customer_choice"`
	Hotel          HotelProductJSON      `json:"hotel"`
	Attraction     AttractionProductJSON `json:"attraction"`
	PriceRules     []PriceRuleJSON       `json:"price_rules"`
	Validity       *ValidityJSON         `json:"validity,omitempty"`
}

// HotelProductJSON represents the hotel room group of an offer.
type HotelProductJSON struct {
	AdvanceBookingDays int            `json:"advance_booking_days,omitempty"`
	MinNights          int            `json:"min_nights"`
	MaxNights          int            `json:"max_nights"`
	Rooms              []RoomInfoJSON `json:"rooms"`
}

// RoomInfoJSON represents one bookable room.
type RoomInfoJSON struct {
	RoomNo   string `json:"room_no"`
	RoomType string `json:"room_type,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
}

// AttractionProductJSON represents the ticket group of a bundle.
type AttractionProductJSON struct {
	MinQuantity int              `json:"min_quantity"`
	MaxQuantity int              `json:"max_quantity"`
	Tickets     []TicketItemJSON `json:"tickets"`
}

// TicketItemJSON represents one attraction ticket.
type TicketItemJSON struct {
	ProductNumber string   `json:"product_number"`
	TicketCode    string   `json:"ticket_code,omitempty"`
	ThemeParks    []string `json:"theme_parks,omitempty"`
	Name          string   `json:"name,omitempty"`
	Description   string   `json:"description,omitempty"`
}

// ValidityJSON represents offer availability rules.
type ValidityJSON struct {
	VisitingPeriod     *DateRangeJSON `json:"visiting_period,omitempty"`
	SalesPeriod        *DateRangeJSON `json:"sales_period,omitempty"`
	PublishTime        string         `json:"publish_time,omitempty"`
	UnpublishTime      string         `json:"unpublish_time,omitempty"`
	AdvanceBookingDays int            `json:"advance_booking_days,omitempty"`
	BlackoutDates      []string       `json:"blackout_dates,omitempty"`
}

// =============================================================================
// STRATEGY FACTORY
// =============================================================================

// StrategyFactory converts JSON strategy and offer definitions to Go structs.
type StrategyFactory struct{}

// NewStrategyFactory creates a new strategy factory.
func NewStrategyFactory() *StrategyFactory {
	return &StrategyFactory{}
}

// ParseUserStrategy parses a JSON string into a UserStrategy.
func (f *StrategyFactory) ParseUserStrategy(jsonStr string) (*pricing.UserStrategy, error) {
	var sj UserStrategyJSON
	if err := json.Unmarshal([]byte(jsonStr), &sj); err != nil {
		return nil, fmt.Errorf("failed to parse user strategy JSON: %w", err)
	}
	return f.UserStrategyFromJSON(sj)
}

// UserStrategyFromJSON converts UserStrategyJSON to a UserStrategy.
func (f *StrategyFactory) UserStrategyFromJSON(sj UserStrategyJSON) (*pricing.UserStrategy, error) {
	s := &pricing.UserStrategy{
		ID:       pricing.StrategyID(sj.ID),
		Name:     sj.Name,
		Active:   sj.Active,
		Priority: parsePriority(sj.Priority),
	}

	var err error
	if s.EffectiveStart, err = parseTimestamp(sj.EffectiveStart); err != nil {
		return nil, fmt.Errorf("strategy %s: invalid effective_start: %w", sj.ID, err)
	}
	if s.EffectiveEnd, err = parseTimestamp(sj.EffectiveEnd); err != nil {
		return nil, fmt.Errorf("strategy %s: invalid effective_end: %w", sj.ID, err)
	}
	if s.ValidDateRange, err = parseDateRangePtr(sj.ValidDateRange); err != nil {
		return nil, fmt.Errorf("strategy %s: invalid valid_date_range: %w", sj.ID, err)
	}

	for _, dj := range sj.LevelDiscounts {
		d, err := parseLevelDiscount(dj)
		if err != nil {
			return nil, fmt.Errorf("strategy %s: %w", sj.ID, err)
		}
		s.LevelDiscounts = append(s.LevelDiscounts, d)
	}
	for _, rj := range sj.RegionPricings {
		s.RegionPricings = append(s.RegionPricings, pricing.RegionPricing{
			TargetRegion: pricing.Region(rj.Region),
			Adjustment:   parseAdjustment(rj.Adjustment),
		})
	}
	for _, cj := range sj.ChannelPricing {
		s.ChannelPricings = append(s.ChannelPricings, pricing.ChannelPricing{
			TargetChannel: pricing.Channel(cj.Channel),
			Adjustment:    parseAdjustment(cj.Adjustment),
		})
	}

	if sj.PriorityRule != nil {
		s.PriorityRule = pricing.PriorityRule{
			ApplyLevel:   sj.PriorityRule.ApplyLevel,
			ApplyRegion:  sj.PriorityRule.ApplyRegion,
			ApplyChannel: sj.PriorityRule.ApplyChannel,
		}
	} else {
		// All axes participate unless configured otherwise.
		s.PriorityRule = pricing.PriorityRule{ApplyLevel: true, ApplyRegion: true, ApplyChannel: true}
	}

	return s, nil
}

// UserStrategyToJSON converts a UserStrategy back to its JSON form.
func (f *StrategyFactory) UserStrategyToJSON(s *pricing.UserStrategy) UserStrategyJSON {
	sj := UserStrategyJSON{
		ID:       string(s.ID),
		Name:     s.Name,
		Active:   s.Active,
		Priority: int(s.Priority),
	}
	if !s.EffectiveStart.IsZero() {
		sj.EffectiveStart = s.EffectiveStart.String()
	}
	if !s.EffectiveEnd.IsZero() {
		sj.EffectiveEnd = s.EffectiveEnd.String()
	}
	if s.ValidDateRange != nil {
		sj.ValidDateRange = &DateRangeJSON{Start: s.ValidDateRange.Start.String(), End: s.ValidDateRange.End.String()}
	}
	for _, d := range s.LevelDiscounts {
		dj := LevelDiscountJSON{
			ID:          d.ID,
			TargetLevel: d.TargetLevel.String(),
			Type:        string(d.Type),
		}
		dj.Value, _ = d.Value.Float64()
		if d.MaxDiscountAmount != nil {
			v, _ := d.MaxDiscountAmount.Float64()
			dj.MaxDiscountAmount = &v
		}
		if d.MinOrderAmount.IsPositive() {
			v, _ := d.MinOrderAmount.Float64()
			dj.MinOrderAmount = &v
		}
		sj.LevelDiscounts = append(sj.LevelDiscounts, dj)
	}
	for _, r := range s.RegionPricings {
		sj.RegionPricings = append(sj.RegionPricings, RegionPricingJSON{
			Region:     string(r.TargetRegion),
			Adjustment: adjustmentToJSON(r.Adjustment),
		})
	}
	for _, c := range s.ChannelPricings {
		sj.ChannelPricing = append(sj.ChannelPricing, ChannelPricingJSON{
			Channel:    string(c.TargetChannel),
			Adjustment: adjustmentToJSON(c.Adjustment),
		})
	}
	sj.PriorityRule = &PriorityRuleJSON{
		ApplyLevel:   s.PriorityRule.ApplyLevel,
		ApplyRegion:  s.PriorityRule.ApplyRegion,
		ApplyChannel: s.PriorityRule.ApplyChannel,
	}
	return sj
}

// ParseMarketingStrategy parses a JSON string into a MarketingStrategy.
func (f *StrategyFactory) ParseMarketingStrategy(jsonStr string) (*pricing.MarketingStrategy, error) {
	var mj MarketingStrategyJSON
	if err := json.Unmarshal([]byte(jsonStr), &mj); err != nil {
		return nil, fmt.Errorf("failed to parse marketing strategy JSON: %w", err)
	}
	return f.MarketingStrategyFromJSON(mj)
}

// MarketingStrategyFromJSON converts MarketingStrategyJSON to a
// MarketingStrategy.
func (f *StrategyFactory) MarketingStrategyFromJSON(mj MarketingStrategyJSON) (*pricing.MarketingStrategy, error) {
	mt, err := parseMarketingType(mj.Type)
	if err != nil {
		return nil, fmt.Errorf("strategy %s: %w", mj.ID, err)
	}

	m := &pricing.MarketingStrategy{
		ID:       pricing.StrategyID(mj.ID),
		Name:     mj.Name,
		Type:     mt,
		Active:   mj.Active,
		Priority: parsePriority(mj.Priority),
	}
	period, err := parseDateRangePtr(mj.EffectivePeriod)
	if err != nil {
		return nil, fmt.Errorf("strategy %s: invalid effective_period: %w", mj.ID, err)
	}
	if period == nil {
		return nil, fmt.Errorf("strategy %s: effective_period is required", mj.ID)
	}
	m.EffectivePeriod = *period

	for _, hj := range mj.Holidays {
		h, err := parseHolidayPricing(hj)
		if err != nil {
			return nil, fmt.Errorf("strategy %s: %w", mj.ID, err)
		}
		m.Holidays = append(m.Holidays, h)
	}
	for _, fj := range mj.FlashSales {
		fs, err := parseFlashSale(fj)
		if err != nil {
			return nil, fmt.Errorf("strategy %s: %w", mj.ID, err)
		}
		m.FlashSales = append(m.FlashSales, fs)
	}
	for _, sj := range mj.Seasons {
		season, err := parseSeasonalPricing(sj)
		if err != nil {
			return nil, fmt.Errorf("strategy %s: %w", mj.ID, err)
		}
		m.Seasons = append(m.Seasons, season)
	}

	return m, nil
}

// MarketingStrategyToJSON converts a MarketingStrategy back to its JSON form.
func (f *StrategyFactory) MarketingStrategyToJSON(m *pricing.MarketingStrategy) MarketingStrategyJSON {
	mj := MarketingStrategyJSON{
		ID:       string(m.ID),
		Name:     m.Name,
		Type:     string(m.Type),
		Active:   m.Active,
		Priority: int(m.Priority),
	}
	mj.EffectivePeriod = &DateRangeJSON{Start: m.EffectivePeriod.Start.String(), End: m.EffectivePeriod.End.String()}
	for _, h := range m.Holidays {
		hj := HolidayPricingJSON{
			ID:         h.ID,
			Name:       h.Name,
			Adjustment: adjustmentToJSON(h.Adjustment),
		}
		for _, d := range h.Dates {
			hj.Dates = append(hj.Dates, d.String())
		}
		if h.Period != nil {
			hj.Period = &DateRangeJSON{Start: h.Period.Start.String(), End: h.Period.End.String()}
		}
		mj.Holidays = append(mj.Holidays, hj)
	}
	for _, fs := range m.FlashSales {
		fj := FlashSaleJSON{
			ID:              fs.ID,
			Name:            fs.Name,
			StartTime:       fs.StartTime.String(),
			EndTime:         fs.EndTime.String(),
			TotalQuota:      fs.TotalQuota,
			UsedQuota:       fs.UsedQuota(),
		}
		fj.DiscountPercent, _ = fs.DiscountPercent.Float64()
		if fs.MaxDiscount != nil {
			v, _ := fs.MaxDiscount.Float64()
			fj.MaxDiscount = &v
		}
		for _, d := range fs.ApplicableDates {
			fj.ApplicableDates = append(fj.ApplicableDates, d.String())
		}
		mj.FlashSales = append(mj.FlashSales, fj)
	}
	for _, s := range m.Seasons {
		mj.Seasons = append(mj.Seasons, SeasonalPricingJSON{
			ID:         s.ID,
			Name:       s.Name,
			Period:     DateRangeJSON{Start: s.Period.Start.String(), End: s.Period.End.String()},
			Adjustment: adjustmentToJSON(s.Adjustment),
		})
	}
	return mj
}

// ParseHotelOffer parses a JSON string into a HotelOffer.
func (f *StrategyFactory) ParseHotelOffer(jsonStr string) (*catalog.HotelOffer, error) {
	var oj HotelOfferJSON
	if err := json.Unmarshal([]byte(jsonStr), &oj); err != nil {
		return nil, fmt.Errorf("failed to parse hotel offer JSON: %w", err)
	}
	return f.HotelOfferFromJSON(oj)
}

// HotelOfferFromJSON converts HotelOfferJSON to a HotelOffer.
func (f *StrategyFactory) HotelOfferFromJSON(oj HotelOfferJSON) (*catalog.HotelOffer, error) {
	hotel, err := parseHotelProduct(oj.Hotel)
	if err != nil {
		return nil, fmt.Errorf("offer %s: %w", oj.OfferNo, err)
	}
	validity, err := parseValidity(oj.Validity)
	if err != nil {
		return nil, fmt.Errorf("offer %s: %w", oj.OfferNo, err)
	}
	o := &catalog.HotelOffer{
		OfferNo:        oj.OfferNo,
		Name:           oj.Name,
		Products:       hotel,
		CustomerChoice: pricing.ParseCustomerChoice(oj.CustomerChoice),
		Validity:       validity,
	}
	for _, rj := range oj.PriceRules {
		rule, err := parsePriceRule(rj)
		if err != nil {
			return nil, fmt.Errorf("offer %s: %w", oj.OfferNo, err)
		}
		o.PriceRules = append(o.PriceRules, rule)
	}
	return o, nil
}

// ParseHybridOffer parses a JSON string into a HybridOffer.
func (f *StrategyFactory) ParseHybridOffer(jsonStr string) (*catalog.HybridOffer, error) {
	var oj HybridOfferJSON
	if err := json.Unmarshal([]byte(jsonStr), &oj); err != nil {
		return nil, fmt.Errorf("failed to parse hybrid offer JSON: %w", err)
	}
	return f.HybridOfferFromJSON(oj)
}

// HybridOfferFromJSON converts HybridOfferJSON to a HybridOffer.
func (f *StrategyFactory) HybridOfferFromJSON(oj HybridOfferJSON) (*catalog.HybridOffer, error) {
	hotel, err := parseHotelProduct(oj.Hotel)
	if err != nil {
		return nil, fmt.Errorf("offer %s: %w", oj.OfferNo, err)
	}
	validity, err := parseValidity(oj.Validity)
	if err != nil {
		return nil, fmt.Errorf("offer %s: %w", oj.OfferNo, err)
	}
	o := &catalog.HybridOffer{
		OfferNo:        oj.OfferNo,
		Name:           oj.Name,
		CustomerChoice: pricing.ParseCustomerChoice(oj.CustomerChoice),
		Validity:       validity,
		Groups: catalog.ProductGroups{
			Hotel:      hotel,
			Attraction: parseAttractionProduct(oj.Attraction),
		},
	}
	for _, rj := range oj.PriceRules {
		rule, err := parsePriceRule(rj)
		if err != nil {
			return nil, fmt.Errorf("offer %s: %w", oj.OfferNo, err)
		}
		o.PriceRules = append(o.PriceRules, rule)
	}
	return o, nil
}

// HotelOfferToJSON converts a HotelOffer back to its JSON form.
func (f *StrategyFactory) HotelOfferToJSON(o *catalog.HotelOffer) HotelOfferJSON {
	return HotelOfferJSON{
		OfferNo:        o.OfferNo,
		Name:           o.Name,
		CustomerChoice: string(o.CustomerChoice),
		Hotel:          hotelProductToJSON(o.Products),
		PriceRules:     priceRulesToJSON(o.PriceRules),
		Validity:       validityToJSON(o.Validity),
	}
}

// HybridOfferToJSON converts a HybridOffer back to its JSON form.
func (f *StrategyFactory) HybridOfferToJSON(o *catalog.HybridOffer) HybridOfferJSON {
	oj := HybridOfferJSON{
		OfferNo:        o.OfferNo,
		Name:           o.Name,
		CustomerChoice: string(o.CustomerChoice),
		Hotel:          hotelProductToJSON(o.Groups.Hotel),
		PriceRules:     priceRulesToJSON(o.PriceRules),
		Validity:       validityToJSON(o.Validity),
	}
	oj.Attraction.MinQuantity = o.Groups.Attraction.ValidQuantity.Min
	oj.Attraction.MaxQuantity = o.Groups.Attraction.ValidQuantity.Max
	for _, t := range o.Groups.Attraction.Tickets {
		oj.Attraction.Tickets = append(oj.Attraction.Tickets, TicketItemJSON{
			ProductNumber: string(t.ProductNumber),
			TicketCode:    t.TicketCode,
			ThemeParks:    t.ThemeParks,
			Name:          t.Name,
			Description:   t.Description,
		})
	}
	return oj
}

func hotelProductToJSON(p catalog.HotelProduct) HotelProductJSON {
	hj := HotelProductJSON{
		AdvanceBookingDays: p.AdvanceBookingDays,
		MinNights:          p.Nights.Min,
		MaxNights:          p.Nights.Max,
	}
	for _, r := range p.Rooms {
		hj.Rooms = append(hj.Rooms, RoomInfoJSON{
			RoomNo:   string(r.RoomNo),
			RoomType: r.RoomType,
			Capacity: r.Capacity,
		})
	}
	return hj
}

func priceRulesToJSON(rules []pricing.PriceRule) []PriceRuleJSON {
	var result []PriceRuleJSON
	for _, r := range rules {
		rj := PriceRuleJSON{
			ID:   string(r.ID),
			Name: r.Name,
			Kind: string(r.Kind),
		}
		rj.Value, _ = r.Value.Float64()
		rj.DefaultRate = r.DefaultRate
		result = append(result, rj)
	}
	return result
}

func validityToJSON(v catalog.Validity) *ValidityJSON {
	vj := &ValidityJSON{AdvanceBookingDays: v.AdvanceBookingDays}
	if v.VisitingPeriod != nil {
		vj.VisitingPeriod = &DateRangeJSON{
			Start: v.VisitingPeriod.Start.String(),
			End:   v.VisitingPeriod.End.String(),
		}
	}
	if v.SalesPeriod != nil {
		vj.SalesPeriod = &DateRangeJSON{
			Start: v.SalesPeriod.Start.String(),
			End:   v.SalesPeriod.End.String(),
		}
	}
	if !v.PublishTime.IsZero() {
		vj.PublishTime = v.PublishTime.String()
	}
	if !v.UnpublishTime.IsZero() {
		vj.UnpublishTime = v.UnpublishTime.String()
	}
	for _, d := range v.BlackoutDates {
		vj.BlackoutDates = append(vj.BlackoutDates, d.String())
	}
	return vj
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parsePriority(n int) pricing.PriorityLevel {
	if n < int(pricing.PriorityLow) || n > int(pricing.PriorityUrgent) {
		return pricing.PriorityLow
	}
	return pricing.PriorityLevel(n)
}

func parseTimestamp(s string) (pricing.Timestamp, error) {
	if s == "" {
		return pricing.Timestamp{}, nil
	}
	return pricing.ParseTimestamp(s)
}

func parseDateRangePtr(rj *DateRangeJSON) (*pricing.DateRange, error) {
	if rj == nil {
		return nil, nil
	}
	start, err := pricing.ParseDay(rj.Start)
	if err != nil {
		return nil, err
	}
	end, err := pricing.ParseDay(rj.End)
	if err != nil {
		return nil, err
	}
	rng := pricing.NewDateRange(start, end)
	return &rng, nil
}

func parseLevelDiscount(dj LevelDiscountJSON) (pricing.LevelDiscount, error) {
	d := pricing.LevelDiscount{
		ID:          dj.ID,
		TargetLevel: pricing.ParseUserLevel(dj.TargetLevel),
		Type:        pricing.DiscountType(dj.Type),
		Value:       decimal.NewFromFloat(dj.Value),
	}
	if d.Type != pricing.DiscountPercentage && d.Type != pricing.DiscountFixedAmount {
		return pricing.LevelDiscount{}, fmt.Errorf("unknown discount type: %s", dj.Type)
	}
	if dj.MaxDiscountAmount != nil {
		v := decimal.NewFromFloat(*dj.MaxDiscountAmount)
		d.MaxDiscountAmount = &v
	}
	if dj.MinOrderAmount != nil {
		d.MinOrderAmount = decimal.NewFromFloat(*dj.MinOrderAmount)
	}
	return d, nil
}

func parseAdjustment(aj AdjustmentJSON) pricing.Adjustment {
	return pricing.Adjustment{
		Type:  pricing.AdjustmentType(aj.Type),
		Value: decimal.NewFromFloat(aj.Value),
	}
}

func adjustmentToJSON(a pricing.Adjustment) AdjustmentJSON {
	v, _ := a.Value.Float64()
	return AdjustmentJSON{Type: string(a.Type), Value: v}
}

func parseMarketingType(s string) (pricing.MarketingType, error) {
	switch pricing.MarketingType(s) {
	case pricing.MarketingHoliday, pricing.MarketingFlashSale,
		pricing.MarketingSeasonal, pricing.MarketingCombined:
		return pricing.MarketingType(s), nil
	default:
		return "", fmt.Errorf("unknown marketing type: %s", s)
	}
}

func parseDays(ss []string) ([]pricing.Day, error) {
	var days []pricing.Day
	for _, s := range ss {
		d, err := pricing.ParseDay(s)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}

func parseHolidayPricing(hj HolidayPricingJSON) (pricing.HolidayPricing, error) {
	dates, err := parseDays(hj.Dates)
	if err != nil {
		return pricing.HolidayPricing{}, fmt.Errorf("holiday %s: %w", hj.Name, err)
	}
	period, err := parseDateRangePtr(hj.Period)
	if err != nil {
		return pricing.HolidayPricing{}, fmt.Errorf("holiday %s: %w", hj.Name, err)
	}
	return pricing.HolidayPricing{
		ID:         hj.ID,
		Name:       hj.Name,
		Dates:      dates,
		Period:     period,
		Adjustment: parseAdjustment(hj.Adjustment),
	}, nil
}

func parseFlashSale(fj FlashSaleJSON) (*pricing.FlashSale, error) {
	start, err := parseTimestamp(fj.StartTime)
	if err != nil {
		return nil, fmt.Errorf("flash sale %s: invalid start_time: %w", fj.ID, err)
	}
	end, err := parseTimestamp(fj.EndTime)
	if err != nil {
		return nil, fmt.Errorf("flash sale %s: invalid end_time: %w", fj.ID, err)
	}
	dates, err := parseDays(fj.ApplicableDates)
	if err != nil {
		return nil, fmt.Errorf("flash sale %s: %w", fj.ID, err)
	}
	if fj.TotalQuota < 0 {
		return nil, fmt.Errorf("flash sale %s: negative quota", fj.ID)
	}

	fs := &pricing.FlashSale{
		ID:              fj.ID,
		Name:            fj.Name,
		StartTime:       start,
		EndTime:         end,
		ApplicableDates: dates,
		DiscountPercent: decimal.NewFromFloat(fj.DiscountPercent),
		TotalQuota:      fj.TotalQuota,
	}
	if fj.MaxDiscount != nil {
		v := decimal.NewFromFloat(*fj.MaxDiscount)
		fs.MaxDiscount = &v
	}
	if fj.UsedQuota > 0 {
		fs.SetUsedQuota(fj.UsedQuota)
	}
	return fs, nil
}

func parseSeasonalPricing(sj SeasonalPricingJSON) (pricing.SeasonalPricing, error) {
	period, err := parseDateRangePtr(&sj.Period)
	if err != nil {
		return pricing.SeasonalPricing{}, fmt.Errorf("season %s: %w", sj.Name, err)
	}
	return pricing.SeasonalPricing{
		ID:         sj.ID,
		Name:       sj.Name,
		Period:     *period,
		Adjustment: parseAdjustment(sj.Adjustment),
	}, nil
}

func parsePriceRule(rj PriceRuleJSON) (pricing.PriceRule, error) {
	switch pricing.RuleKind(rj.Kind) {
	case pricing.RulePassthrough, pricing.RulePercentOff,
		pricing.RuleAmountOff, pricing.RuleWeekendMarkup:
	default:
		return pricing.PriceRule{}, fmt.Errorf("unknown rule kind: %s", rj.Kind)
	}
	return pricing.PriceRule{
		ID:          pricing.RuleID(rj.ID),
		Name:        rj.Name,
		Kind:        pricing.RuleKind(rj.Kind),
		Value:       decimal.NewFromFloat(rj.Value),
		DefaultRate: rj.DefaultRate,
	}, nil
}

func parseHotelProduct(hj HotelProductJSON) (catalog.HotelProduct, error) {
	if len(hj.Rooms) == 0 {
		return catalog.HotelProduct{}, fmt.Errorf("hotel product requires at least one room")
	}
	p := catalog.HotelProduct{
		AdvanceBookingDays: hj.AdvanceBookingDays,
		Nights:             pricing.NumberOfNights{Min: hj.MinNights, Max: hj.MaxNights},
	}
	for _, rj := range hj.Rooms {
		p.Rooms = append(p.Rooms, catalog.RoomInfo{
			RoomNo:   pricing.UnitID(rj.RoomNo),
			RoomType: rj.RoomType,
			Capacity: rj.Capacity,
		})
	}
	return p, nil
}

func parseAttractionProduct(aj AttractionProductJSON) catalog.AttractionProduct {
	p := catalog.AttractionProduct{
		ValidQuantity: catalog.QuantityRange{Min: aj.MinQuantity, Max: aj.MaxQuantity},
	}
	for _, tj := range aj.Tickets {
		p.Tickets = append(p.Tickets, catalog.TicketItem{
			ProductNumber: pricing.UnitID(tj.ProductNumber),
			TicketCode:    tj.TicketCode,
			ThemeParks:    tj.ThemeParks,
			Name:          tj.Name,
			Description:   tj.Description,
		})
	}
	return p
}

func parseValidity(vj *ValidityJSON) (catalog.Validity, error) {
	if vj == nil {
		return catalog.Validity{}, nil
	}
	v := catalog.Validity{AdvanceBookingDays: vj.AdvanceBookingDays}

	var err error
	if v.VisitingPeriod, err = parseDateRangePtr(vj.VisitingPeriod); err != nil {
		return catalog.Validity{}, fmt.Errorf("invalid visiting_period: %w", err)
	}
	if v.SalesPeriod, err = parseDateRangePtr(vj.SalesPeriod); err != nil {
		return catalog.Validity{}, fmt.Errorf("invalid sales_period: %w", err)
	}
	if v.PublishTime, err = parseTimestamp(vj.PublishTime); err != nil {
		return catalog.Validity{}, fmt.Errorf("invalid publish_time: %w", err)
	}
	if v.UnpublishTime, err = parseTimestamp(vj.UnpublishTime); err != nil {
		return catalog.Validity{}, fmt.Errorf("invalid unpublish_time: %w", err)
	}
	if v.BlackoutDates, err = parseDays(vj.BlackoutDates); err != nil {
		return catalog.Validity{}, fmt.Errorf("invalid blackout_dates: %w", err)
	}
	return v, nil
}
