/*
handlers.go - HTTP API handlers for the pricing engine

PURPOSE:
  Exposes the pricing engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Quotes:
    POST   /api/quotes                       Comprehensive price quote

  Offers:
    GET    /api/offers                       List all offers
    POST   /api/offers                       Create offer from JSON
    GET    /api/offers/{offerNo}/price       Minimum price for a check-in
    GET    /api/offers/{offerNo}/trend       Per-day price trend
    DELETE /api/offers/{offerNo}             Delete offer

  User strategies:
    GET    /api/strategies/user              List active strategies
    POST   /api/strategies/user              Create strategy from JSON
    GET    /api/strategies/user/{id}         Get strategy
    DELETE /api/strategies/user/{id}         Delete strategy
    POST   /api/strategies/user/analyze      Compare applicable strategies

  Marketing strategies:
    GET    /api/strategies/marketing         List active campaigns
    POST   /api/strategies/marketing         Create campaign from JSON
    GET    /api/strategies/marketing/{id}    Get campaign
    DELETE /api/strategies/marketing/{id}    Delete campaign
    POST   /api/strategies/marketing/{id}/reserve  Reserve flash-sale quota
    POST   /api/strategies/marketing/{id}/bind     Scope campaign to offer

  Prices:
    POST   /api/prices                       Upload price observations

  Scenarios:
    GET    /api/scenarios                    List demo scenarios
    POST   /api/scenarios/load               Load a demo scenario

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Database access (user strategies, prices, offers)
  - Marketing: Campaign store view with the quota cache
  - Factory: JSON to strategy conversion

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input, unavailable check-in
  - 404: Offer or strategy not found
  - 409: Quota conflicts
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/warp/pricing-engine/catalog"
	"github.com/warp/pricing-engine/factory"
	"github.com/warp/pricing-engine/pricing"
	"github.com/warp/pricing-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     *sqlite.Store
	Marketing *sqlite.Marketing
	Factory   *factory.StrategyFactory

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store:     store,
		Marketing: store.Marketing(),
		Factory:   factory.NewStrategyFactory(),
	}
}

// =============================================================================
// QUOTE HANDLERS
// =============================================================================

// CreateQuote computes a comprehensive price for one offer, user, and
// check-in day.
func (h *Handler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	checkIn, err := pricing.ParseDay(req.CheckIn)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid check_in format (use YYYY-MM-DD)", err)
		return
	}
	level := pricing.ParseUserLevel(req.UserLevel)

	ctx := r.Context()
	offer, err := h.Store.OfferByNo(ctx, req.OfferNo)
	if err != nil {
		writeDomainError(w, "Failed to load offer", err)
		return
	}

	user := pricing.UserContext{
		UserID:       req.UserID,
		Level:        level,
		Region:       pricing.Region(req.Region),
		Channel:      pricing.Channel(req.Channel),
		MembershipID: req.MembershipID,
	}
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	marketingCtx := pricing.MarketingContext{
		CurrentTime:       pricing.Now(),
		SessionID:         uuid.NewString(),
		RequestedQuantity: quantity,
		SourceSystem:      "api",
	}

	userStrategies, err := h.Store.ApplicableStrategies(ctx, user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load user strategies", err)
		return
	}
	marketingStrategies, err := h.Marketing.EffectiveStrategies(ctx, checkIn, req.OfferNo)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load marketing strategies", err)
		return
	}

	result, err := pricing.ComputePrice(pricing.QuoteInput{
		CheckIn:             checkIn,
		BasePrice:           offer.BasePriceFunc(marketingCtx.CurrentTime, h.Store),
		User:                user,
		Marketing:           marketingCtx,
		UserStrategies:      userStrategies,
		MarketingStrategies: marketingStrategies,
		Mode:                parseSelectionMode(req.SelectionMode),
	})
	if err != nil {
		writeDomainError(w, "Failed to compute price", err)
		return
	}

	writeJSON(w, http.StatusOK, toQuoteDTO(uuid.NewString(), req.OfferNo, result))
}

func toQuoteDTO(quoteID, offerNo string, r *pricing.PricingResult) QuoteDTO {
	dto := QuoteDTO{
		QuoteID:   quoteID,
		OfferNo:   offerNo,
		CheckIn:   r.CheckInDay.String(),
		UserID:    r.UserID,
		UserLevel: r.UserLevel.String(),

		BasePrice:               toFloat(r.BasePrice),
		UserDiscountedPrice:     toFloat(r.UserDiscountedPrice),
		FinalPrice:              toFloat(r.FinalPrice),
		UserDiscountAmount:      toFloat(r.UserDiscountAmount),
		MarketingDiscountAmount: toFloat(r.MarketingDiscountAmount),
		TotalDiscountAmount:     toFloat(r.TotalDiscountAmount),
		DiscountRate:            toFloat(r.DiscountRate),

		SelectionMode:    string(r.Selection.Mode),
		WinnerStrategyID: string(r.Selection.WinnerID),
		WinnerName:       r.Selection.WinnerName,
		Candidates:       toCandidateDTOs(r.Selection.Candidates),

		CalculationTime: r.CalculationTime.String(),
	}
	return dto
}

func toCandidateDTOs(candidates []pricing.CandidatePrice) []CandidateDTO {
	dtos := make([]CandidateDTO, len(candidates))
	for i, c := range candidates {
		dtos[i] = CandidateDTO{
			StrategyID: string(c.StrategyID),
			Name:       c.StrategyName,
			Priority:   c.Priority.String(),
			Price:      toFloat(c.Price),
		}
	}
	return dtos
}

// =============================================================================
// OFFER HANDLERS
// =============================================================================

// ListOffers returns all offers.
func (h *Handler) ListOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.Store.ListOffers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list offers", err)
		return
	}

	dtos := make([]OfferDTO, len(offers))
	for i, o := range offers {
		dtos[i] = OfferDTO{OfferNo: o.Number(), Name: o.Title(), Kind: offerKind(o)}
	}
	writeJSON(w, http.StatusOK, dtos)
}

func offerKind(o catalog.Offer) string {
	switch o.(type) {
	case *catalog.HybridOffer:
		return "hybrid"
	default:
		return "hotel"
	}
}

// GetOffer returns one offer's full configuration.
func (h *Handler) GetOffer(w http.ResponseWriter, r *http.Request) {
	offerNo := chi.URLParam(r, "offerNo")
	offer, err := h.Store.OfferByNo(r.Context(), offerNo)
	if err != nil {
		writeDomainError(w, "Failed to load offer", err)
		return
	}

	dto := OfferDetailDTO{OfferNo: offer.Number(), Name: offer.Title(), Kind: offerKind(offer)}
	switch o := offer.(type) {
	case *catalog.HotelOffer:
		oj := h.Factory.HotelOfferToJSON(o)
		dto.Hotel = &oj
	case *catalog.HybridOffer:
		oj := h.Factory.HybridOfferToJSON(o)
		dto.Hybrid = &oj
	}
	writeJSON(w, http.StatusOK, dto)
}

// CreateOffer creates a hotel or hybrid offer from JSON config.
func (h *Handler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	var req CreateOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var offer catalog.Offer
	var err error
	switch req.Kind {
	case "hotel":
		if req.Hotel == nil {
			writeError(w, http.StatusBadRequest, "Missing hotel config", nil)
			return
		}
		offer, err = h.Factory.HotelOfferFromJSON(*req.Hotel)
	case "hybrid":
		if req.Hybrid == nil {
			writeError(w, http.StatusBadRequest, "Missing hybrid config", nil)
			return
		}
		offer, err = h.Factory.HybridOfferFromJSON(*req.Hybrid)
	default:
		writeError(w, http.StatusBadRequest, "Unknown offer kind (use hotel or hybrid)", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid offer config", err)
		return
	}

	if err := h.Store.SaveOffer(r.Context(), offer); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save offer", err)
		return
	}
	writeJSON(w, http.StatusCreated, OfferDTO{OfferNo: offer.Number(), Name: offer.Title(), Kind: req.Kind})
}

// GetOfferPrice returns the minimum achievable price for a check-in day.
func (h *Handler) GetOfferPrice(w http.ResponseWriter, r *http.Request) {
	offerNo := chi.URLParam(r, "offerNo")
	checkIn, err := pricing.ParseDay(r.URL.Query().Get("check_in"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid check_in format (use YYYY-MM-DD)", err)
		return
	}

	offer, err := h.Store.OfferByNo(r.Context(), offerNo)
	if err != nil {
		writeDomainError(w, "Failed to load offer", err)
		return
	}

	price, err := offer.BasePriceFunc(pricing.Now(), h.Store)(checkIn)
	if err != nil {
		writeDomainError(w, "Failed to price offer", err)
		return
	}

	writeJSON(w, http.StatusOK, OfferPriceDTO{
		OfferNo: offerNo,
		CheckIn: checkIn.String(),
		Price:   toFloat(price),
	})
}

// GetOfferTrend returns the per-day price analysis over a date range.
func (h *Handler) GetOfferTrend(w http.ResponseWriter, r *http.Request) {
	offerNo := chi.URLParam(r, "offerNo")

	from, err := pricing.ParseDay(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid from format (use YYYY-MM-DD)", err)
		return
	}
	to, err := pricing.ParseDay(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid to format (use YYYY-MM-DD)", err)
		return
	}
	level := pricing.LevelBronze
	if q := r.URL.Query().Get("user_level"); q != "" {
		level = pricing.ParseUserLevel(q)
	}

	ctx := r.Context()
	offer, err := h.Store.OfferByNo(ctx, offerNo)
	if err != nil {
		writeDomainError(w, "Failed to load offer", err)
		return
	}

	user := pricing.UserContext{
		UserID:  r.URL.Query().Get("user_id"),
		Level:   level,
		Region:  pricing.Region(r.URL.Query().Get("region")),
		Channel: pricing.Channel(r.URL.Query().Get("channel")),
	}
	marketingCtx := pricing.MarketingContext{
		CurrentTime:       pricing.Now(),
		SessionID:         uuid.NewString(),
		RequestedQuantity: 1,
		SourceSystem:      "api",
	}

	userStrategies, err := h.Store.ApplicableStrategies(ctx, user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load user strategies", err)
		return
	}
	rng := pricing.NewDateRange(from, to)
	marketingStrategies, err := h.Marketing.StrategiesInRange(ctx, rng.Start, rng.End, offerNo)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load marketing strategies", err)
		return
	}

	trend := pricing.AnalyzeTrend(rng,
		offer.BasePriceFunc(marketingCtx.CurrentTime, h.Store),
		user, marketingCtx, userStrategies, marketingStrategies)

	dto := TrendDTO{
		OfferNo:      offerNo,
		From:         rng.Start.String(),
		To:           rng.End.String(),
		LowestPrice:  toFloat(trend.LowestPrice),
		HighestPrice: toFloat(trend.HighestPrice),
	}
	if !trend.BestDealDate.IsZero() {
		dto.BestDealDate = trend.BestDealDate.String()
	}
	dto.Daily = make([]DailyPriceDTO, len(trend.Daily))
	for i, d := range trend.Daily {
		dto.Daily[i] = DailyPriceDTO{
			Date:       d.Date.String(),
			BasePrice:  toFloat(d.BasePrice),
			FinalPrice: toFloat(d.FinalPrice),
			Type:       string(d.Type),
		}
	}
	writeJSON(w, http.StatusOK, dto)
}

// DeleteOffer removes an offer.
func (h *Handler) DeleteOffer(w http.ResponseWriter, r *http.Request) {
	offerNo := chi.URLParam(r, "offerNo")
	if err := h.Store.DeleteOffer(r.Context(), offerNo); err != nil {
		writeDomainError(w, "Failed to delete offer", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// USER STRATEGY HANDLERS
// =============================================================================

// ListUserStrategies returns all active user strategies.
func (h *Handler) ListUserStrategies(w http.ResponseWriter, r *http.Request) {
	strategies, err := h.Store.ActiveStrategies(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list strategies", err)
		return
	}

	now := pricing.Now()
	dtos := make([]UserStrategyDTO, len(strategies))
	for i, s := range strategies {
		dtos[i] = UserStrategyDTO{
			Config:         h.Factory.UserStrategyToJSON(s),
			RemainingHours: s.RemainingValidHours(now),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateUserStrategy creates or replaces a user strategy.
func (h *Handler) CreateUserStrategy(w http.ResponseWriter, r *http.Request) {
	var req CreateUserStrategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	strategy, err := h.Factory.UserStrategyFromJSON(req.Config)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid strategy config", err)
		return
	}
	if err := h.Store.SaveStrategy(r.Context(), strategy); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save strategy", err)
		return
	}
	writeJSON(w, http.StatusCreated, UserStrategyDTO{
		Config:         h.Factory.UserStrategyToJSON(strategy),
		RemainingHours: strategy.RemainingValidHours(pricing.Now()),
	})
}

// GetUserStrategy returns one user strategy.
func (h *Handler) GetUserStrategy(w http.ResponseWriter, r *http.Request) {
	id := pricing.StrategyID(chi.URLParam(r, "id"))
	strategy, err := h.Store.StrategyByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to get strategy", err)
		return
	}
	writeJSON(w, http.StatusOK, UserStrategyDTO{
		Config:         h.Factory.UserStrategyToJSON(strategy),
		RemainingHours: strategy.RemainingValidHours(pricing.Now()),
	})
}

// DeleteUserStrategy removes a user strategy.
func (h *Handler) DeleteUserStrategy(w http.ResponseWriter, r *http.Request) {
	id := pricing.StrategyID(chi.URLParam(r, "id"))
	if err := h.Store.DeleteStrategy(r.Context(), id); err != nil {
		writeDomainError(w, "Failed to delete strategy", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AnalyzeUserStrategies compares every applicable strategy for a buyer.
func (h *Handler) AnalyzeUserStrategies(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeStrategiesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	level := pricing.ParseUserLevel(req.UserLevel)

	user := pricing.UserContext{
		UserID:  req.UserID,
		Level:   level,
		Region:  pricing.Region(req.Region),
		Channel: pricing.Channel(req.Channel),
	}
	strategies, err := h.Store.ApplicableStrategies(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load strategies", err)
		return
	}

	sel := pricing.AnalyzeStrategies(decimal.NewFromFloat(req.BasePrice), user, strategies, pricing.Now())
	writeJSON(w, http.StatusOK, AnalyzeStrategiesDTO{
		BasePrice:        req.BasePrice,
		BestPrice:        toFloat(sel.Price),
		WinnerStrategyID: string(sel.WinnerID),
		WinnerName:       sel.WinnerName,
		Candidates:       toCandidateDTOs(sel.Candidates),
	})
}

// =============================================================================
// MARKETING STRATEGY HANDLERS
// =============================================================================

// ListMarketingStrategies returns all active campaigns, optionally filtered
// by type.
func (h *Handler) ListMarketingStrategies(w http.ResponseWriter, r *http.Request) {
	var strategies []*pricing.MarketingStrategy
	var err error
	if t := r.URL.Query().Get("type"); t != "" {
		strategies, err = h.Marketing.StrategiesByType(r.Context(), pricing.MarketingType(t))
	} else {
		strategies, err = h.Marketing.ActiveStrategies(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list campaigns", err)
		return
	}

	dtos := make([]MarketingStrategyDTO, len(strategies))
	for i, s := range strategies {
		dtos[i] = MarketingStrategyDTO{Config: h.Factory.MarketingStrategyToJSON(s)}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateMarketingStrategy creates or replaces a campaign.
func (h *Handler) CreateMarketingStrategy(w http.ResponseWriter, r *http.Request) {
	var req CreateMarketingStrategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	strategy, err := h.Factory.MarketingStrategyFromJSON(req.Config)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid campaign config", err)
		return
	}
	ctx := r.Context()
	if err := h.Marketing.SaveStrategy(ctx, strategy); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save campaign", err)
		return
	}
	if req.OfferNo != "" {
		if err := h.Marketing.BindOffer(ctx, strategy.ID, req.OfferNo); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to bind campaign to offer", err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, MarketingStrategyDTO{Config: h.Factory.MarketingStrategyToJSON(strategy)})
}

// GetMarketingStrategy returns one campaign.
func (h *Handler) GetMarketingStrategy(w http.ResponseWriter, r *http.Request) {
	id := pricing.StrategyID(chi.URLParam(r, "id"))
	strategy, err := h.Marketing.StrategyByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, "Failed to get campaign", err)
		return
	}
	writeJSON(w, http.StatusOK, MarketingStrategyDTO{Config: h.Factory.MarketingStrategyToJSON(strategy)})
}

// DeleteMarketingStrategy removes a campaign.
func (h *Handler) DeleteMarketingStrategy(w http.ResponseWriter, r *http.Request) {
	id := pricing.StrategyID(chi.URLParam(r, "id"))
	if err := h.Marketing.DeleteStrategy(r.Context(), id); err != nil {
		writeDomainError(w, "Failed to delete campaign", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReserveQuota reserves flash-sale quota on a campaign activity.
func (h *Handler) ReserveQuota(w http.ResponseWriter, r *http.Request) {
	id := pricing.StrategyID(chi.URLParam(r, "id"))
	var req ReserveQuotaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "Quantity must be positive", nil)
		return
	}

	ctx := r.Context()
	strategy, err := h.Marketing.StrategyByID(ctx, id)
	if err != nil {
		writeDomainError(w, "Failed to get campaign", err)
		return
	}

	if err := strategy.Reserve(req.ActivityID, req.Quantity); err != nil {
		writeDomainError(w, "Failed to reserve quota", err)
		return
	}
	// Reservation succeeded in memory; persistence failure is not a reason
	// to give the units back.
	if err := h.Marketing.PersistQuota(ctx, id); err != nil {
		writeError(w, http.StatusInternalServerError, "Reserved but failed to persist quota", err)
		return
	}

	remaining := int64(0)
	for _, f := range strategy.FlashSales {
		if f.ID == req.ActivityID {
			remaining = f.RemainingQuota()
		}
	}
	writeJSON(w, http.StatusOK, ReserveQuotaDTO{
		ActivityID: req.ActivityID,
		Reserved:   req.Quantity,
		Remaining:  remaining,
	})
}

// BindOffer scopes a campaign to one offer.
func (h *Handler) BindOffer(w http.ResponseWriter, r *http.Request) {
	id := pricing.StrategyID(chi.URLParam(r, "id"))
	var req BindOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.Marketing.BindOffer(r.Context(), id, req.OfferNo); err != nil {
		writeDomainError(w, "Failed to bind campaign to offer", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// PRICE DATA HANDLERS
// =============================================================================

// SavePrices uploads a batch of unit/day price observations.
func (h *Handler) SavePrices(w http.ResponseWriter, r *http.Request) {
	var req SavePricesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	records := make([]pricing.DailyPriceRecord, len(req.Records))
	for i, rec := range req.Records {
		day, err := pricing.ParseDay(rec.Day)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid day format (use YYYY-MM-DD)", err)
			return
		}
		records[i] = pricing.DailyPriceRecord{
			UnitID: pricing.UnitID(rec.UnitID),
			Day:    day,
			Price:  decimal.NewFromFloat(rec.Price),
		}
	}

	if err := h.Store.SavePrices(r.Context(), records); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save prices", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"saved": len(records)})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps engine errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case pricing.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, pricing.ErrQuotaExhausted):
		writeError(w, http.StatusConflict, message, err)
	case pricing.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func parseSelectionMode(s string) pricing.SelectionMode {
	switch s {
	case "HIGHEST_PRIORITY", string(pricing.HighestPriority):
		return pricing.HighestPriority
	case "FIRST_APPLICABLE", string(pricing.FirstApplicable):
		return pricing.FirstApplicable
	case "BEST_PRICE", string(pricing.BestPrice), "":
		return pricing.BestPrice
	default:
		return pricing.BestPrice
	}
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
