/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Quotes:
    QuoteRequest, QuoteDTO, CandidateDTO

  Offers:
    OfferDTO, CreateOfferRequest, OfferPriceDTO, TrendDTO, DailyPriceDTO

  Strategies:
    UserStrategyDTO (wraps factory.UserStrategyJSON)
    MarketingStrategyDTO (wraps factory.MarketingStrategyJSON)
    ReserveQuotaRequest, BindOfferRequest

  Prices:
    SavePricesRequest, PriceRecordDTO

  Scenarios:
    ScenarioDTO, LoadScenarioRequest

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/strategy.go: Strategy JSON types
*/
package api

import (
	"github.com/warp/pricing-engine/factory"
)

// =============================================================================
// QUOTE TYPES
// =============================================================================

// QuoteRequest asks for a fully composed price for one user and check-in.
type QuoteRequest struct {
	OfferNo  string `json:"offer_no"`
	CheckIn  string `json:"check_in"`
	Quantity int    `json:"quantity,omitempty"`

	UserID       string `json:"user_id"`
	UserLevel    string `json:"user_level"`
	Region       string `json:"region,omitempty"`
	Channel      string `json:"channel,omitempty"`
	MembershipID string `json:"membership_id,omitempty"`

	// BEST_PRICE, HIGHEST_PRIORITY, or FIRST_APPLICABLE
	SelectionMode string `json:"selection_mode,omitempty"`
}

// QuoteDTO is the composed pricing result returned to clients.
type QuoteDTO struct {
	QuoteID   string `json:"quote_id"`
	OfferNo   string `json:"offer_no"`
	CheckIn   string `json:"check_in"`
	UserID    string `json:"user_id"`
	UserLevel string `json:"user_level"`

	BasePrice               float64 `json:"base_price"`
	UserDiscountedPrice     float64 `json:"user_discounted_price"`
	FinalPrice              float64 `json:"final_price"`
	UserDiscountAmount      float64 `json:"user_discount_amount"`
	MarketingDiscountAmount float64 `json:"marketing_discount_amount"`
	TotalDiscountAmount     float64 `json:"total_discount_amount"`
	DiscountRate            float64 `json:"discount_rate"`

	SelectionMode    string         `json:"selection_mode"`
	WinnerStrategyID string         `json:"winner_strategy_id,omitempty"`
	WinnerName       string         `json:"winner_name,omitempty"`
	Candidates       []CandidateDTO `json:"candidates,omitempty"`

	CalculationTime string `json:"calculation_time"`
}

// CandidateDTO is one strategy's price in the selection trace.
type CandidateDTO struct {
	StrategyID string  `json:"strategy_id"`
	Name       string  `json:"name"`
	Priority   string  `json:"priority"`
	Price      float64 `json:"price"`
}

// =============================================================================
// OFFER TYPES
// =============================================================================

// OfferDTO summarizes an offer in listings.
type OfferDTO struct {
	OfferNo string `json:"offer_no"`
	Name    string `json:"name"`
	Kind    string `json:"kind"`
}

// OfferDetailDTO is one offer's full configuration; the config field
// matching Kind is populated.
type OfferDetailDTO struct {
	OfferNo string                   `json:"offer_no"`
	Name    string                   `json:"name"`
	Kind    string                   `json:"kind"`
	Hotel   *factory.HotelOfferJSON  `json:"hotel,omitempty"`
	Hybrid  *factory.HybridOfferJSON `json:"hybrid,omitempty"`
}

// CreateOfferRequest creates a hotel or hybrid offer. Exactly one of the
// config fields must be set, matching Kind.
type CreateOfferRequest struct {
	Kind   string                   `json:"kind"` // hotel, hybrid
	Hotel  *factory.HotelOfferJSON  `json:"hotel,omitempty"`
	Hybrid *factory.HybridOfferJSON `json:"hybrid,omitempty"`
}

// OfferPriceDTO is the minimum achievable price for one check-in day.
type OfferPriceDTO struct {
	OfferNo string  `json:"offer_no"`
	CheckIn string  `json:"check_in"`
	Price   float64 `json:"price"`
}

// DailyPriceDTO is one day in a trend response.
type DailyPriceDTO struct {
	Date       string  `json:"date"`
	BasePrice  float64 `json:"base_price"`
	FinalPrice float64 `json:"final_price"`
	Type       string  `json:"type"`
}

// TrendDTO is the per-day price analysis over a date range.
type TrendDTO struct {
	OfferNo      string          `json:"offer_no"`
	From         string          `json:"from"`
	To           string          `json:"to"`
	Daily        []DailyPriceDTO `json:"daily"`
	LowestPrice  float64         `json:"lowest_price"`
	HighestPrice float64         `json:"highest_price"`
	BestDealDate string          `json:"best_deal_date,omitempty"`
}

// =============================================================================
// STRATEGY TYPES
// =============================================================================

// UserStrategyDTO represents a user pricing strategy in API responses.
type UserStrategyDTO struct {
	Config         factory.UserStrategyJSON `json:"config"`
	RemainingHours int64                    `json:"remaining_valid_hours"`
}

// CreateUserStrategyRequest creates or replaces a user strategy.
type CreateUserStrategyRequest struct {
	Config factory.UserStrategyJSON `json:"config"`
}

// AnalyzeStrategiesRequest asks which applicable strategy yields the best
// price for a base amount.
type AnalyzeStrategiesRequest struct {
	BasePrice float64 `json:"base_price"`
	UserID    string  `json:"user_id"`
	UserLevel string  `json:"user_level"`
	Region    string  `json:"region,omitempty"`
	Channel   string  `json:"channel,omitempty"`
}

// AnalyzeStrategiesDTO is the selection trace for an analysis call.
type AnalyzeStrategiesDTO struct {
	BasePrice        float64        `json:"base_price"`
	BestPrice        float64        `json:"best_price"`
	WinnerStrategyID string         `json:"winner_strategy_id,omitempty"`
	WinnerName       string         `json:"winner_name,omitempty"`
	Candidates       []CandidateDTO `json:"candidates,omitempty"`
}

// MarketingStrategyDTO represents a campaign in API responses.
type MarketingStrategyDTO struct {
	Config factory.MarketingStrategyJSON `json:"config"`
}

// CreateMarketingStrategyRequest creates or replaces a campaign.
type CreateMarketingStrategyRequest struct {
	Config  factory.MarketingStrategyJSON `json:"config"`
	OfferNo string                        `json:"offer_no,omitempty"`
}

// ReserveQuotaRequest reserves flash-sale quota on one activity.
type ReserveQuotaRequest struct {
	ActivityID string `json:"activity_id"`
	Quantity   int    `json:"quantity"`
}

// ReserveQuotaDTO reports the quota state after a reservation.
type ReserveQuotaDTO struct {
	ActivityID string `json:"activity_id"`
	Reserved   int    `json:"reserved"`
	Remaining  int64  `json:"remaining"`
}

// BindOfferRequest scopes a campaign to one offer.
type BindOfferRequest struct {
	OfferNo string `json:"offer_no"`
}

// =============================================================================
// PRICE DATA TYPES
// =============================================================================

// PriceRecordDTO is one unit/day price observation.
type PriceRecordDTO struct {
	UnitID string  `json:"unit_id"`
	Day    string  `json:"day"`
	Price  float64 `json:"price"`
}

// SavePricesRequest uploads a batch of price observations.
type SavePricesRequest struct {
	Records []PriceRecordDTO `json:"records"`
}

// =============================================================================
// SCENARIO TYPES
// =============================================================================

// ScenarioDTO describes a loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// LoadScenarioRequest selects a scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
