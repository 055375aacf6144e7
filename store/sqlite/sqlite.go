/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Implements all persistence interfaces (UserStrategyStore,
  MarketingStrategyStore, PriceStore, OfferStore) using SQLite. In
  production, the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

KEY TABLES:
  user_strategies:      User pricing strategy configs (JSON column)
  marketing_strategies: Marketing campaign configs (JSON column)
  offer_bindings:       Campaign-to-offer scoping
  daily_prices:         Unit price observations per day
  offers:               Offer configs with a kind discriminator

QUOTA CACHING:
  Marketing strategies carry flash-sale quota counters that must be
  shared across readers (see pricing.MarketingStrategyStore docs). The
  store therefore keeps every loaded strategy in an in-process cache
  and always returns the cached pointer; the database holds the
  serialized config plus the last persisted quota. PersistQuota writes
  a counter back after reservations.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/pricing.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - pricing/store.go: Interface definitions
  - catalog/store.go: Offer store interface
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/pricing-engine/catalog"
	"github.com/warp/pricing-engine/factory"
	"github.com/warp/pricing-engine/pricing"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db      *sql.DB
	mu      sync.RWMutex
	factory *factory.StrategyFactory

	// Loaded marketing strategies, keyed by id. Cached so every reader
	// shares the same quota counters.
	marketingCache map[pricing.StrategyID]*pricing.MarketingStrategy
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{
		db:             db,
		factory:        factory.NewStrategyFactory(),
		marketingCache: make(map[pricing.StrategyID]*pricing.MarketingStrategy),
	}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Reset clears every table and the in-process strategy cache. Used by the
// scenario loaders, which always start from an empty store.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{
		"user_strategies", "marketing_strategies", "offer_bindings",
		"daily_prices", "offers",
	} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	s.marketingCache = make(map[pricing.StrategyID]*pricing.MarketingStrategy)
	return nil
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- User pricing strategies
	CREATE TABLE IF NOT EXISTS user_strategies (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		priority INTEGER NOT NULL DEFAULT 1,
		config_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_user_strategies_active
		ON user_strategies(active);

	-- Marketing campaigns
	CREATE TABLE IF NOT EXISTS marketing_strategies (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		priority INTEGER NOT NULL DEFAULT 1,
		period_start TEXT NOT NULL,
		period_end TEXT NOT NULL,
		config_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_marketing_strategies_active
		ON marketing_strategies(active);
	CREATE INDEX IF NOT EXISTS idx_marketing_strategies_type
		ON marketing_strategies(type);
	-- For effective-date range scans (hot path)
	CREATE INDEX IF NOT EXISTS idx_marketing_strategies_period
		ON marketing_strategies(period_start, period_end);

	-- Campaign-to-offer scoping; a campaign without a binding applies to
	-- every offer
	CREATE TABLE IF NOT EXISTS offer_bindings (
		strategy_id TEXT PRIMARY KEY,
		offer_no TEXT NOT NULL
	);

	-- Daily unit price observations; a unit may have several per day and
	-- pricing always takes the minimum
	CREATE TABLE IF NOT EXISTS daily_prices (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		unit_id TEXT NOT NULL,
		day TEXT NOT NULL,
		price TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Price lookups are always unit+day (hot path)
	CREATE INDEX IF NOT EXISTS idx_daily_prices_unit_day
		ON daily_prices(unit_id, day);

	-- Offers
	CREATE TABLE IF NOT EXISTS offers (
		offer_no TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		config_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// USER STRATEGY STORE (pricing.UserStrategyStore interface)
// =============================================================================

func (s *Store) ApplicableStrategies(ctx context.Context, user pricing.UserContext) ([]*pricing.UserStrategy, error) {
	all, err := s.ActiveStrategies(ctx)
	if err != nil {
		return nil, err
	}

	var result []*pricing.UserStrategy
	for _, st := range all {
		if hasAxisFor(st, user) {
			result = append(result, st)
		}
	}
	return result, nil
}

// hasAxisFor is the axis-only pre-filter: window checks happen at
// evaluation time, so a strategy qualifies as soon as any axis targets the
// user.
func hasAxisFor(st *pricing.UserStrategy, user pricing.UserContext) bool {
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

func (s *Store) StrategyByID(ctx context.Context, id pricing.StrategyID) (*pricing.UserStrategy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var configJSON string
	err := s.db.QueryRowContext(ctx,
		"SELECT config_json FROM user_strategies WHERE id = ?", string(id),
	).Scan(&configJSON)
	if err == sql.ErrNoRows {
		return nil, pricing.ErrStrategyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user strategy: %w", err)
	}

	return s.factory.ParseUserStrategy(configJSON)
}

func (s *Store) ActiveStrategies(ctx context.Context) ([]*pricing.UserStrategy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT config_json FROM user_strategies
		WHERE active = TRUE
		ORDER BY priority DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query user strategies: %w", err)
	}
	defer rows.Close()

	var result []*pricing.UserStrategy
	for rows.Next() {
		var configJSON string
		if err := rows.Scan(&configJSON); err != nil {
			return nil, fmt.Errorf("failed to scan user strategy: %w", err)
		}
		st, err := s.factory.ParseUserStrategy(configJSON)
		if err != nil {
			return nil, err
		}
		result = append(result, st)
	}
	return result, rows.Err()
}

func (s *Store) SaveStrategy(ctx context.Context, st *pricing.UserStrategy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	configJSON, err := json.Marshal(s.factory.UserStrategyToJSON(st))
	if err != nil {
		return fmt.Errorf("failed to serialize user strategy: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO user_strategies (id, name, active, priority, config_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			active = excluded.active,
			priority = excluded.priority,
			config_json = excluded.config_json,
			updated_at = excluded.updated_at
	`, string(st.ID), st.Name, st.Active, int(st.Priority), string(configJSON), now, now)
	if err != nil {
		return fmt.Errorf("failed to save user strategy: %w", err)
	}
	return nil
}

func (s *Store) DeleteStrategy(ctx context.Context, id pricing.StrategyID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM user_strategies WHERE id = ?", string(id))
	if err != nil {
		return fmt.Errorf("failed to delete user strategy: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return pricing.ErrStrategyNotFound
	}
	return nil
}

// =============================================================================
// MARKETING STRATEGY STORE (pricing.MarketingStrategyStore interface)
// =============================================================================

// Marketing wraps the store's marketing-strategy surface so a single
// *Store can serve both strategy interfaces without method collisions.
type Marketing struct {
	s *Store
}

// Marketing returns the marketing-strategy view of the store.
func (s *Store) Marketing() *Marketing { return &Marketing{s: s} }

func (m *Marketing) EffectiveStrategies(ctx context.Context, target pricing.Day, offerNo string) ([]*pricing.MarketingStrategy, error) {
	return m.query(ctx, `
		SELECT id, config_json FROM marketing_strategies
		WHERE active = TRUE AND period_start <= ? AND period_end >= ?
		ORDER BY priority DESC, id ASC
	`, offerNo, target.String(), target.String())
}

func (m *Marketing) StrategiesInRange(ctx context.Context, from, to pricing.Day, offerNo string) ([]*pricing.MarketingStrategy, error) {
	return m.query(ctx, `
		SELECT id, config_json FROM marketing_strategies
		WHERE active = TRUE AND period_start <= ? AND period_end >= ?
		ORDER BY priority DESC, id ASC
	`, offerNo, to.String(), from.String())
}

func (m *Marketing) StrategyByID(ctx context.Context, id pricing.StrategyID) (*pricing.MarketingStrategy, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if cached, ok := m.s.marketingCache[id]; ok {
		return cached, nil
	}

	var configJSON string
	err := m.s.db.QueryRowContext(ctx,
		"SELECT config_json FROM marketing_strategies WHERE id = ?", string(id),
	).Scan(&configJSON)
	if err == sql.ErrNoRows {
		return nil, pricing.ErrStrategyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query marketing strategy: %w", err)
	}

	st, err := m.s.factory.ParseMarketingStrategy(configJSON)
	if err != nil {
		return nil, err
	}
	m.s.marketingCache[id] = st
	return st, nil
}

func (m *Marketing) ActiveStrategies(ctx context.Context) ([]*pricing.MarketingStrategy, error) {
	return m.query(ctx, `
		SELECT id, config_json FROM marketing_strategies
		WHERE active = TRUE
		ORDER BY priority DESC, id ASC
	`, "")
}

func (m *Marketing) StrategiesByType(ctx context.Context, t pricing.MarketingType) ([]*pricing.MarketingStrategy, error) {
	return m.query(ctx, `
		SELECT id, config_json FROM marketing_strategies
		WHERE active = TRUE AND type = ?
		ORDER BY priority DESC, id ASC
	`, "", string(t))
}

// query runs a marketing-strategy select, resolving each row through the
// quota cache. When offerNo is non-empty, rows bound to a different offer
// are filtered out.
func (m *Marketing) query(ctx context.Context, q string, offerNo string, args ...any) ([]*pricing.MarketingStrategy, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	rows, err := m.s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query marketing strategies: %w", err)
	}
	defer rows.Close()

	type row struct {
		id         pricing.StrategyID
		configJSON string
	}
	var loaded []row
	for rows.Next() {
		var r row
		var id string
		if err := rows.Scan(&id, &r.configJSON); err != nil {
			return nil, fmt.Errorf("failed to scan marketing strategy: %w", err)
		}
		r.id = pricing.StrategyID(id)
		loaded = append(loaded, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	bindings, err := m.s.loadBindings(ctx)
	if err != nil {
		return nil, err
	}

	var result []*pricing.MarketingStrategy
	for _, r := range loaded {
		if offerNo != "" {
			if bound, ok := bindings[r.id]; ok && bound != offerNo {
				continue
			}
		}
		st, ok := m.s.marketingCache[r.id]
		if !ok {
			st, err = m.s.factory.ParseMarketingStrategy(r.configJSON)
			if err != nil {
				return nil, err
			}
			m.s.marketingCache[r.id] = st
		}
		result = append(result, st)
	}
	return result, nil
}

func (s *Store) loadBindings(ctx context.Context) (map[pricing.StrategyID]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT strategy_id, offer_no FROM offer_bindings")
	if err != nil {
		return nil, fmt.Errorf("failed to query offer bindings: %w", err)
	}
	defer rows.Close()

	bindings := make(map[pricing.StrategyID]string)
	for rows.Next() {
		var id, offerNo string
		if err := rows.Scan(&id, &offerNo); err != nil {
			return nil, fmt.Errorf("failed to scan offer binding: %w", err)
		}
		bindings[pricing.StrategyID(id)] = offerNo
	}
	return bindings, rows.Err()
}

func (m *Marketing) SaveStrategy(ctx context.Context, st *pricing.MarketingStrategy) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	configJSON, err := json.Marshal(m.s.factory.MarketingStrategyToJSON(st))
	if err != nil {
		return fmt.Errorf("failed to serialize marketing strategy: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = m.s.db.ExecContext(ctx, `
		INSERT INTO marketing_strategies
		(id, name, type, active, priority, period_start, period_end, config_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			type = excluded.type,
			active = excluded.active,
			priority = excluded.priority,
			period_start = excluded.period_start,
			period_end = excluded.period_end,
			config_json = excluded.config_json,
			updated_at = excluded.updated_at
	`, string(st.ID), st.Name, string(st.Type), st.Active, int(st.Priority),
		st.EffectivePeriod.Start.String(), st.EffectivePeriod.End.String(),
		string(configJSON), now, now)
	if err != nil {
		return fmt.Errorf("failed to save marketing strategy: %w", err)
	}

	m.s.marketingCache[st.ID] = st
	return nil
}

func (m *Marketing) DeleteStrategy(ctx context.Context, id pricing.StrategyID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	res, err := m.s.db.ExecContext(ctx, "DELETE FROM marketing_strategies WHERE id = ?", string(id))
	if err != nil {
		return fmt.Errorf("failed to delete marketing strategy: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return pricing.ErrStrategyNotFound
	}
	if _, err := m.s.db.ExecContext(ctx, "DELETE FROM offer_bindings WHERE strategy_id = ?", string(id)); err != nil {
		return fmt.Errorf("failed to delete offer binding: %w", err)
	}
	delete(m.s.marketingCache, id)
	return nil
}

// BindOffer scopes a strategy to one offer. Unbound strategies apply to
// every offer.
func (m *Marketing) BindOffer(ctx context.Context, id pricing.StrategyID, offerNo string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	_, err := m.s.db.ExecContext(ctx, `
		INSERT INTO offer_bindings (strategy_id, offer_no) VALUES (?, ?)
		ON CONFLICT(strategy_id) DO UPDATE SET offer_no = excluded.offer_no
	`, string(id), offerNo)
	if err != nil {
		return fmt.Errorf("failed to bind offer: %w", err)
	}
	return nil
}

// PersistQuota writes the in-memory quota counters of a cached strategy
// back to its config row. Call after reservations when durability matters;
// the cache stays authoritative either way.
func (m *Marketing) PersistQuota(ctx context.Context, id pricing.StrategyID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	st, ok := m.s.marketingCache[id]
	if !ok {
		return pricing.ErrStrategyNotFound
	}

	configJSON, err := json.Marshal(m.s.factory.MarketingStrategyToJSON(st))
	if err != nil {
		return fmt.Errorf("failed to serialize marketing strategy: %w", err)
	}
	_, err = m.s.db.ExecContext(ctx, `
		UPDATE marketing_strategies SET config_json = ?, updated_at = ? WHERE id = ?
	`, string(configJSON), time.Now().UTC().Format(time.RFC3339), string(id))
	if err != nil {
		return fmt.Errorf("failed to persist quota: %w", err)
	}
	return nil
}

// =============================================================================
// PRICE STORE (pricing.PriceStore interface)
// =============================================================================

func (s *Store) MinPriceForDay(unit pricing.UnitID, day pricing.Day) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var priceStr string
	err := s.db.QueryRow(`
		SELECT price FROM daily_prices
		WHERE unit_id = ? AND day = ?
		ORDER BY CAST(price AS REAL) ASC
		LIMIT 1
	`, string(unit), day.String()).Scan(&priceStr)
	if err == sql.ErrNoRows {
		return decimal.Zero, &pricing.PriceLookupError{UnitID: unit, Day: day}
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to query price: %w", err)
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("corrupt price for %s on %s: %w", unit, day, err)
	}
	return price, nil
}

func (s *Store) SavePrices(ctx context.Context, records []pricing.DailyPriceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, r := range records {
		_, err := sqlTx.ExecContext(ctx, `
			INSERT INTO daily_prices (unit_id, day, price, created_at)
			VALUES (?, ?, ?, ?)
		`, string(r.UnitID), r.Day.String(), r.Price.String(), now)
		if err != nil {
			return fmt.Errorf("failed to save price: %w", err)
		}
	}
	return sqlTx.Commit()
}

// =============================================================================
// OFFER STORE (catalog.OfferStore interface)
// =============================================================================

const (
	offerKindHotel  = "hotel"
	offerKindHybrid = "hybrid"
)

func (s *Store) OfferByNo(ctx context.Context, offerNo string) (catalog.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var kind, configJSON string
	err := s.db.QueryRowContext(ctx,
		"SELECT kind, config_json FROM offers WHERE offer_no = ?", offerNo,
	).Scan(&kind, &configJSON)
	if err == sql.ErrNoRows {
		return nil, pricing.ErrOfferNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query offer: %w", err)
	}

	return s.parseOffer(kind, configJSON)
}

func (s *Store) ListOffers(ctx context.Context) ([]catalog.Offer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT kind, config_json FROM offers ORDER BY offer_no ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query offers: %w", err)
	}
	defer rows.Close()

	var result []catalog.Offer
	for rows.Next() {
		var kind, configJSON string
		if err := rows.Scan(&kind, &configJSON); err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		o, err := s.parseOffer(kind, configJSON)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

func (s *Store) parseOffer(kind, configJSON string) (catalog.Offer, error) {
	switch kind {
	case offerKindHotel:
		return s.factory.ParseHotelOffer(configJSON)
	case offerKindHybrid:
		return s.factory.ParseHybridOffer(configJSON)
	default:
		return nil, fmt.Errorf("unknown offer kind: %s", kind)
	}
}

func (s *Store) SaveOffer(ctx context.Context, o catalog.Offer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kind string
	var config any
	switch offer := o.(type) {
	case *catalog.HotelOffer:
		kind = offerKindHotel
		config = s.factory.HotelOfferToJSON(offer)
	case *catalog.HybridOffer:
		kind = offerKindHybrid
		config = s.factory.HybridOfferToJSON(offer)
	default:
		return fmt.Errorf("unsupported offer type %T", o)
	}

	configJSON, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to serialize offer: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO offers (offer_no, name, kind, config_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(offer_no) DO UPDATE SET
			name = excluded.name,
			kind = excluded.kind,
			config_json = excluded.config_json,
			updated_at = excluded.updated_at
	`, o.Number(), o.Title(), kind, string(configJSON), now, now)
	if err != nil {
		return fmt.Errorf("failed to save offer: %w", err)
	}
	return nil
}

func (s *Store) DeleteOffer(ctx context.Context, offerNo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM offers WHERE offer_no = ?", offerNo)
	if err != nil {
		return fmt.Errorf("failed to delete offer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return pricing.ErrOfferNotFound
	}
	return nil
}
