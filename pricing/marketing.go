/*
marketing.go - Event-driven marketing strategies and flash-sale quota

PURPOSE:
  Marketing strategies adjust the already user-discounted price for
  holidays, flash sales, and seasons. Each strategy carries sub-rule
  collections for its type; a combined type tries flash sale, then
  holiday, then seasonal, stopping at the first sub-rule that changes
  the price.

QUOTA RESERVATION:
  Flash sales carry a finite quota consumed by concurrent buyers. The
  counter is the only shared mutable state in the engine: reservation is
  a compare-and-retry loop over an atomic counter, so no interleaving
  can push used quota over the total. A plain read-then-write here would
  over-sell inventory.

  The counters live as long as the strategy; they are reset only by
  explicit administrative action, never by the engine.

SEE ALSO:
  - composer.go: where the marketing layer slots into the pipeline
*/
package pricing

import (
	"sync/atomic"

	"github.com/shopspring/decimal"
)

// =============================================================================
// STRATEGY TYPE
// =============================================================================

type MarketingType string

const (
	MarketingHoliday   MarketingType = "holiday_pricing"
	MarketingFlashSale MarketingType = "flash_sale"
	MarketingSeasonal  MarketingType = "seasonal_pricing"
	MarketingCombined  MarketingType = "combined"
)

// =============================================================================
// SUB-RULES
// =============================================================================

// HolidayPricing adjusts the price on specific dates or a holiday period.
type HolidayPricing struct {
	ID         string
	Name       string
	Dates      []Day      // exact dates, may be empty
	Period     *DateRange // alternative containment period
	Adjustment Adjustment
}

// AppliesTo reports whether the target date is one of the holiday dates or
// falls inside the holiday period.
func (h HolidayPricing) AppliesTo(target Day) bool {
	for _, d := range h.Dates {
		if d.Equal(target) {
			return true
		}
	}
	return h.Period != nil && h.Period.Contains(target)
}

// SeasonalPricing adjusts the price inside a season.
type SeasonalPricing struct {
	ID         string
	Name       string
	Period     DateRange
	Adjustment Adjustment
}

func (s SeasonalPricing) InSeason(target Day) bool { return s.Period.Contains(target) }

// FlashSale is a time-windowed promotion with a finite, concurrently
// consumed quota.
type FlashSale struct {
	ID              string
	Name            string
	StartTime       Timestamp
	EndTime         Timestamp
	ApplicableDates []Day // nil means every date qualifies
	DiscountPercent decimal.Decimal
	MaxDiscount     *decimal.Decimal

	TotalQuota int64
	usedQuota  atomic.Int64
}

// ActiveFor reports whether the sale window contains the current time and
// the target date qualifies.
func (f *FlashSale) ActiveFor(now Timestamp, target Day) bool {
	if !now.After(f.StartTime) || !now.Before(f.EndTime) {
		return false
	}
	if f.ApplicableDates == nil {
		return true
	}
	for _, d := range f.ApplicableDates {
		if d.Equal(target) {
			return true
		}
	}
	return false
}

// HasAvailableQuota reports whether at least one unit remains.
func (f *FlashSale) HasAvailableQuota() bool { return f.usedQuota.Load() < f.TotalQuota }

// UsedQuota returns the consumed quota count.
func (f *FlashSale) UsedQuota() int64 { return f.usedQuota.Load() }

// RemainingQuota returns how many units are still reservable.
func (f *FlashSale) RemainingQuota() int64 {
	remaining := f.TotalQuota - f.usedQuota.Load()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SalePrice computes the flash-sale price: the percentage discount, capped
// by MaxDiscount when set.
func (f *FlashSale) SalePrice(price decimal.Decimal) decimal.Decimal {
	discount := price.Mul(f.DiscountPercent).Div(hundred)
	if f.MaxDiscount != nil && discount.GreaterThan(*f.MaxDiscount) {
		discount = *f.MaxDiscount
	}
	return price.Sub(discount)
}

// ReserveQuota atomically reserves quantity units. The compare-and-retry
// loop guarantees usedQuota never exceeds TotalQuota under any
// interleaving: a lost race re-reads and retries, an insufficient
// remainder fails with no state change.
func (f *FlashSale) ReserveQuota(quantity int) bool {
	if quantity <= 0 {
		return false
	}
	for {
		current := f.usedQuota.Load()
		next := current + int64(quantity)
		if next > f.TotalQuota {
			return false
		}
		if f.usedQuota.CompareAndSwap(current, next) {
			return true
		}
	}
}

// SetUsedQuota force-sets the counter. Administrative resets and store
// rehydration only; never called on the evaluation path.
func (f *FlashSale) SetUsedQuota(used int64) { f.usedQuota.Store(used) }

// =============================================================================
// MARKETING STRATEGY
// =============================================================================

// MarketingStrategy bundles sub-rule collections under one activation
// period and priority.
type MarketingStrategy struct {
	ID              StrategyID
	Name            string
	Type            MarketingType
	Active          bool
	EffectivePeriod DateRange
	Priority        PriorityLevel

	Holidays   []HolidayPricing
	FlashSales []*FlashSale
	Seasons    []SeasonalPricing
}

// EffectiveOn reports whether the strategy is active and the target date
// falls inside its effective period.
func (m *MarketingStrategy) EffectiveOn(target Day) bool {
	return m.Active && m.EffectivePeriod.Contains(target)
}

// Evaluate computes the strategy's price for the target date. Ineffective
// strategies and non-matching sub-rules leave the price unchanged.
func (m *MarketingStrategy) Evaluate(price decimal.Decimal, target Day, ctx MarketingContext) decimal.Decimal {
	if !m.EffectiveOn(target) {
		return price
	}

	switch m.Type {
	case MarketingHoliday:
		return m.applyHoliday(price, target)
	case MarketingFlashSale:
		return m.applyFlashSale(price, target, ctx)
	case MarketingSeasonal:
		return m.applySeasonal(price, target)
	case MarketingCombined:
		return m.applyCombined(price, target, ctx)
	default:
		return price
	}
}

// BestPricingType labels which sub-rule family would fire for the target
// date, in fixed precedence flash sale > holiday > seasonal.
func (m *MarketingStrategy) BestPricingType(target Day, ctx MarketingContext) PricingType {
	if !m.EffectiveOn(target) {
		return PricingStandard
	}
	for _, f := range m.FlashSales {
		if f.ActiveFor(ctx.CurrentTime, target) {
			return PricingFlashSale
		}
	}
	for _, h := range m.Holidays {
		if h.AppliesTo(target) {
			return PricingHoliday
		}
	}
	for _, s := range m.Seasons {
		if s.InSeason(target) {
			return PricingSeasonal
		}
	}
	return PricingStandard
}

// Reserve reserves flash-sale quota on the named activity. Unknown
// activity ids and exhausted quotas report a QuotaError.
func (m *MarketingStrategy) Reserve(activityID string, quantity int) error {
	for _, f := range m.FlashSales {
		if f.ID != activityID {
			continue
		}
		if f.ReserveQuota(quantity) {
			return nil
		}
		return &QuotaError{ActivityID: activityID, Requested: quantity, Remaining: f.RemainingQuota()}
	}
	return ErrStrategyNotFound
}

func (m *MarketingStrategy) applyHoliday(price decimal.Decimal, target Day) decimal.Decimal {
	for _, h := range m.Holidays {
		if h.AppliesTo(target) {
			return h.Adjustment.Apply(price)
		}
	}
	return price
}

func (m *MarketingStrategy) applyFlashSale(price decimal.Decimal, target Day, ctx MarketingContext) decimal.Decimal {
	for _, f := range m.FlashSales {
		if f.ActiveFor(ctx.CurrentTime, target) && f.HasAvailableQuota() {
			return f.SalePrice(price)
		}
	}
	return price
}

func (m *MarketingStrategy) applySeasonal(price decimal.Decimal, target Day) decimal.Decimal {
	for _, s := range m.Seasons {
		if s.InSeason(target) {
			return s.Adjustment.Apply(price)
		}
	}
	return price
}

// applyCombined tries the sub-rule families in fixed precedence, stopping
// at the first one that changes the price.
func (m *MarketingStrategy) applyCombined(price decimal.Decimal, target Day, ctx MarketingContext) decimal.Decimal {
	final := m.applyFlashSale(price, target, ctx)
	if final.Equal(price) {
		final = m.applyHoliday(price, target)
	}
	if final.Equal(price) {
		final = m.applySeasonal(price, target)
	}
	return final
}

// =============================================================================
// MARKETING ENGINE - Best price across strategies
// =============================================================================

// BestMarketingPrice evaluates every effective strategy in priority order
// and returns the running minimum. Strategies that do not reduce the price
// are ignored; the result is never worse than the input price.
func BestMarketingPrice(
	price decimal.Decimal,
	target Day,
	ctx MarketingContext,
	strategies []*MarketingStrategy,
) decimal.Decimal {

	if len(strategies) == 0 {
		return price
	}

	ordered := make([]*MarketingStrategy, len(strategies))
	copy(ordered, strategies)
	sortByPriorityDesc(ordered)

	best := price
	for _, s := range ordered {
		if !s.EffectiveOn(target) {
			continue
		}
		candidate := s.Evaluate(price, target, ctx)
		if candidate.LessThan(best) {
			best = candidate
		}
	}
	return best
}

// sortByPriorityDesc orders strategies highest priority first, keeping the
// input order among equals.
func sortByPriorityDesc(strategies []*MarketingStrategy) {
	// Insertion sort: candidate lists are short and stability matters.
	for i := 1; i < len(strategies); i++ {
		for j := i; j > 0 && strategies[j].Priority.HigherThan(strategies[j-1].Priority); j-- {
			strategies[j], strategies[j-1] = strategies[j-1], strategies[j]
		}
	}
}
