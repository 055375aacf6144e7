// Package memory provides in-memory store implementations (for testing/dev).
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/warp/pricing-engine/catalog"
	"github.com/warp/pricing-engine/pricing"
)

// =============================================================================
// USER STRATEGY STORE
// =============================================================================

type UserStrategies struct {
	mu         sync.RWMutex
	strategies map[pricing.StrategyID]*pricing.UserStrategy
}

func NewUserStrategies() *UserStrategies {
	return &UserStrategies{strategies: make(map[pricing.StrategyID]*pricing.UserStrategy)}
}

// Reset removes every stored strategy.
func (s *UserStrategies) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strategies = make(map[pricing.StrategyID]*pricing.UserStrategy)
	return nil
}

func (s *UserStrategies) ApplicableStrategies(_ context.Context, user pricing.UserContext) ([]*pricing.UserStrategy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*pricing.UserStrategy
	for _, st := range s.strategies {
		if matchesAnyAxis(st, user) {
			result = append(result, st)
		}
	}
	sortUserStrategies(result)
	return result, nil
}

// matchesAnyAxis checks the user against the strategy's configured axes
// without any window filtering; that happens at evaluation time.
func matchesAnyAxis(st *pricing.UserStrategy, user pricing.UserContext) bool {
	for _, d := range st.LevelDiscounts {
		if d.Matches(user.Level) {
			return true
		}
	}
	for _, p := range st.RegionPricings {
		if p.Matches(user.Region) {
			return true
		}
	}
	for _, p := range st.ChannelPricings {
		if p.Matches(user.Channel) {
			return true
		}
	}
	return false
}

func (s *UserStrategies) StrategyByID(_ context.Context, id pricing.StrategyID) (*pricing.UserStrategy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.strategies[id]
	if !ok {
		return nil, pricing.ErrStrategyNotFound
	}
	return st, nil
}

func (s *UserStrategies) ActiveStrategies(_ context.Context) ([]*pricing.UserStrategy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*pricing.UserStrategy
	for _, st := range s.strategies {
		if st.Active {
			result = append(result, st)
		}
	}
	sortUserStrategies(result)
	return result, nil
}

func (s *UserStrategies) SaveStrategy(_ context.Context, st *pricing.UserStrategy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strategies[st.ID] = st
	return nil
}

func (s *UserStrategies) DeleteStrategy(_ context.Context, id pricing.StrategyID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.strategies[id]; !ok {
		return pricing.ErrStrategyNotFound
	}
	delete(s.strategies, id)
	return nil
}

// sortUserStrategies orders by priority descending, then id for stable
// listings.
func sortUserStrategies(strategies []*pricing.UserStrategy) {
	sort.Slice(strategies, func(i, j int) bool {
		if strategies[i].Priority != strategies[j].Priority {
			return strategies[i].Priority.HigherThan(strategies[j].Priority)
		}
		return strategies[i].ID < strategies[j].ID
	})
}

// =============================================================================
// MARKETING STRATEGY STORE
// =============================================================================

// MarketingStrategies keeps campaign objects and their offer bindings. It
// returns the stored pointers, never copies, so flash-sale quota counters
// stay shared across readers.
type MarketingStrategies struct {
	mu         sync.RWMutex
	strategies map[pricing.StrategyID]*pricing.MarketingStrategy
	bindings   map[pricing.StrategyID]string // strategy -> offer no; "" means all offers
}

func NewMarketingStrategies() *MarketingStrategies {
	return &MarketingStrategies{
		strategies: make(map[pricing.StrategyID]*pricing.MarketingStrategy),
		bindings:   make(map[pricing.StrategyID]string),
	}
}

// Reset removes every stored campaign and offer binding.
func (s *MarketingStrategies) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strategies = make(map[pricing.StrategyID]*pricing.MarketingStrategy)
	s.bindings = make(map[pricing.StrategyID]string)
	return nil
}

func (s *MarketingStrategies) EffectiveStrategies(_ context.Context, target pricing.Day, offerNo string) ([]*pricing.MarketingStrategy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*pricing.MarketingStrategy
	for id, st := range s.strategies {
		if s.boundTo(id, offerNo) && st.EffectiveOn(target) {
			result = append(result, st)
		}
	}
	sortMarketingStrategies(result)
	return result, nil
}

func (s *MarketingStrategies) StrategiesInRange(_ context.Context, from, to pricing.Day, offerNo string) ([]*pricing.MarketingStrategy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*pricing.MarketingStrategy
	for id, st := range s.strategies {
		if !s.boundTo(id, offerNo) || !st.Active {
			continue
		}
		overlaps := !st.EffectivePeriod.End.Before(from) && !st.EffectivePeriod.Start.After(to)
		if overlaps {
			result = append(result, st)
		}
	}
	sortMarketingStrategies(result)
	return result, nil
}

func (s *MarketingStrategies) StrategyByID(_ context.Context, id pricing.StrategyID) (*pricing.MarketingStrategy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.strategies[id]
	if !ok {
		return nil, pricing.ErrStrategyNotFound
	}
	return st, nil
}

func (s *MarketingStrategies) ActiveStrategies(_ context.Context) ([]*pricing.MarketingStrategy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*pricing.MarketingStrategy
	for _, st := range s.strategies {
		if st.Active {
			result = append(result, st)
		}
	}
	sortMarketingStrategies(result)
	return result, nil
}

func (s *MarketingStrategies) StrategiesByType(_ context.Context, t pricing.MarketingType) ([]*pricing.MarketingStrategy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*pricing.MarketingStrategy
	for _, st := range s.strategies {
		if st.Active && st.Type == t {
			result = append(result, st)
		}
	}
	sortMarketingStrategies(result)
	return result, nil
}

func (s *MarketingStrategies) SaveStrategy(_ context.Context, st *pricing.MarketingStrategy) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strategies[st.ID] = st
	return nil
}

func (s *MarketingStrategies) DeleteStrategy(_ context.Context, id pricing.StrategyID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.strategies[id]; !ok {
		return pricing.ErrStrategyNotFound
	}
	delete(s.strategies, id)
	delete(s.bindings, id)
	return nil
}

// BindOffer scopes a strategy to one offer. Unbound strategies apply to
// every offer.
func (s *MarketingStrategies) BindOffer(_ context.Context, id pricing.StrategyID, offerNo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.strategies[id]; !ok {
		return pricing.ErrStrategyNotFound
	}
	s.bindings[id] = offerNo
	return nil
}

func (s *MarketingStrategies) boundTo(id pricing.StrategyID, offerNo string) bool {
	bound := s.bindings[id]
	return bound == "" || bound == offerNo
}

func sortMarketingStrategies(strategies []*pricing.MarketingStrategy) {
	sort.Slice(strategies, func(i, j int) bool {
		if strategies[i].Priority != strategies[j].Priority {
			return strategies[i].Priority.HigherThan(strategies[j].Priority)
		}
		return strategies[i].ID < strategies[j].ID
	})
}

// =============================================================================
// PRICE STORE
// =============================================================================

type priceKey struct {
	UnitID pricing.UnitID
	Day    string
}

// Prices keeps daily unit price observations. Multiple observations per
// unit/day are kept; lookups return the minimum.
type Prices struct {
	mu     sync.RWMutex
	prices map[priceKey][]decimal.Decimal
}

func NewPrices() *Prices {
	return &Prices{prices: make(map[priceKey][]decimal.Decimal)}
}

// Reset drops every price observation.
func (p *Prices) Reset(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prices = make(map[priceKey][]decimal.Decimal)
	return nil
}

func (p *Prices) MinPriceForDay(unit pricing.UnitID, day pricing.Day) (decimal.Decimal, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	observations := p.prices[priceKey{UnitID: unit, Day: day.String()}]
	if len(observations) == 0 {
		return decimal.Zero, &pricing.PriceLookupError{UnitID: unit, Day: day}
	}
	min := observations[0]
	for _, obs := range observations[1:] {
		if obs.LessThan(min) {
			min = obs
		}
	}
	return min, nil
}

func (p *Prices) SavePrices(_ context.Context, records []pricing.DailyPriceRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, r := range records {
		k := priceKey{UnitID: r.UnitID, Day: r.Day.String()}
		p.prices[k] = append(p.prices[k], r.Price)
	}
	return nil
}

// =============================================================================
// OFFER STORE
// =============================================================================

type Offers struct {
	mu     sync.RWMutex
	offers map[string]catalog.Offer
}

func NewOffers() *Offers {
	return &Offers{offers: make(map[string]catalog.Offer)}
}

// Reset removes every stored offer.
func (s *Offers) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offers = make(map[string]catalog.Offer)
	return nil
}

func (s *Offers) OfferByNo(_ context.Context, offerNo string) (catalog.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.offers[offerNo]
	if !ok {
		return nil, pricing.ErrOfferNotFound
	}
	return o, nil
}

func (s *Offers) ListOffers(_ context.Context) ([]catalog.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]catalog.Offer, 0, len(s.offers))
	for _, o := range s.offers {
		result = append(result, o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Number() < result[j].Number() })
	return result, nil
}

func (s *Offers) SaveOffer(_ context.Context, o catalog.Offer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offers[o.Number()] = o
	return nil
}

func (s *Offers) DeleteOffer(_ context.Context, offerNo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.offers[offerNo]; !ok {
		return pricing.ErrOfferNotFound
	}
	delete(s.offers, offerNo)
	return nil
}
