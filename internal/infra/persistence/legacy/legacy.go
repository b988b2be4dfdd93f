// Package legacy is the middle tier of the fallback chain: a
// Postgres-only store speaking raw SQL through sqlx. It predates the
// dual-backend record store and stays wired as the fallback for
// deployments that only provide a server connection URL.
package legacy

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"truecraft/config"
	"truecraft/internal/domain/store"

	"github.com/jmoiron/sqlx"
)

const (
	maxOpenConns    = 5
	maxIdleConns    = 2
	connMaxLifetime = 30 * time.Minute
	connectTimeout  = 10 * time.Second
)

// schema mirrors the record store's table shapes so both tiers can
// point at the same database. Create-if-absent only; no migrations.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		oauth_provider VARCHAR(50) NOT NULL,
		oauth_id VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE,
		name VARCHAR(255) NOT NULL,
		avatar_url TEXT DEFAULT '',
		profile_data JSON,
		last_login TIMESTAMPTZ DEFAULT NOW(),
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW(),
		CONSTRAINT uq_users_oauth UNIQUE (oauth_provider, oauth_id)
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT REFERENCES users(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		category VARCHAR(100) NOT NULL DEFAULT '',
		price NUMERIC(10,2) NOT NULL DEFAULT 0,
		description TEXT DEFAULT '',
		materials TEXT DEFAULT '',
		dimensions VARCHAR(255) DEFAULT '',
		weight NUMERIC(6,2) DEFAULT 0,
		stock_quantity INTEGER DEFAULT 0,
		shipping_cost NUMERIC(8,2) DEFAULT 0,
		processing_time VARCHAR(100) DEFAULT '',
		tags TEXT DEFAULT '',
		image_data TEXT DEFAULT '',
		views INTEGER DEFAULT 0,
		favorites INTEGER DEFAULT 0,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT REFERENCES users(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		location VARCHAR(255) DEFAULT '',
		specialties TEXT DEFAULT '',
		years_experience INTEGER DEFAULT 0,
		bio TEXT DEFAULT '',
		email VARCHAR(255) DEFAULT '',
		phone VARCHAR(50) DEFAULT '',
		website VARCHAR(255) DEFAULT '',
		instagram VARCHAR(255) DEFAULT '',
		facebook VARCHAR(255) DEFAULT '',
		etsy VARCHAR(255) DEFAULT '',
		education TEXT DEFAULT '',
		awards TEXT DEFAULT '',
		inspiration TEXT DEFAULT '',
		profile_image TEXT DEFAULT '',
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		customer_name VARCHAR(255) NOT NULL,
		customer_email VARCHAR(255) NOT NULL,
		rating INTEGER NOT NULL,
		comment TEXT DEFAULT '',
		approved BOOLEAN DEFAULT TRUE,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id BIGSERIAL PRIMARY KEY,
		sender_user_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
		sender_type VARCHAR(10) NOT NULL,
		sender_name VARCHAR(255) NOT NULL,
		sender_email VARCHAR(255) NOT NULL,
		product_id BIGINT REFERENCES products(id) ON DELETE CASCADE,
		subject VARCHAR(500) NOT NULL,
		message_content TEXT NOT NULL,
		timestamp TIMESTAMPTZ DEFAULT NOW(),
		is_read BOOLEAN DEFAULT FALSE,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS analytics (
		id BIGSERIAL PRIMARY KEY,
		event_type VARCHAR(100) NOT NULL,
		product_id BIGINT REFERENCES products(id) ON DELETE CASCADE,
		user_session VARCHAR(255) DEFAULT '',
		event_metadata JSON,
		timestamp TIMESTAMPTZ DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		customer_name VARCHAR(255) NOT NULL,
		customer_email VARCHAR(255) NOT NULL DEFAULT '',
		customer_phone VARCHAR(50) DEFAULT '',
		shipping_address TEXT DEFAULT '',
		total_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
		status VARCHAR(50) DEFAULT 'pending',
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id BIGSERIAL PRIMARY KEY,
		order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		product_id BIGINT REFERENCES products(id) ON DELETE SET NULL,
		quantity INTEGER NOT NULL,
		price_per_item NUMERIC(10,2) NOT NULL,
		total_price NUMERIC(10,2) NOT NULL
	)`,
}

// Store is the sqlx-backed Postgres implementation of
// store.MarketplaceStore.
type Store struct {
	db        *sqlx.DB
	logger    *slog.Logger
	available bool
}

var _ store.MarketplaceStore = (*Store)(nil)

// Connect opens the server connection, creates missing tables and
// verifies connectivity. Any failure yields an unavailable store; the
// factory falls through to the next tier.
func Connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) *Store {
	s := &Store{logger: logger}

	if cfg.Database.URL == "" {
		logger.Warn("legacy store: no connection URL configured")

		return s
	}

	db, err := sqlx.Open("postgres", cfg.Database.URL)
	if err != nil {
		logger.Warn("legacy store: open failed", slog.String("error", err.Error()))

		return s
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Warn("legacy store: ping failed", slog.String("error", err.Error()))
		_ = db.Close()

		return s
	}

	for _, ddl := range schema {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			logger.Warn("legacy store: schema creation failed", slog.String("error", err.Error()))
			_ = db.Close()

			return s
		}
	}

	s.db = db
	s.available = true

	return s
}

// Available reports whether construction reached the server.
func (s *Store) Available() bool {
	return s.available
}

// Backend names the tier for status surfaces.
func (s *Store) Backend() string {
	return "legacy/postgres"
}

// Close releases the pool. Safe on an unavailable store.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}

	return s.db.Close()
}

// withTx runs fn inside one transaction and reports success. Rollback
// on any error or panic, commit otherwise.
func (s *Store) withTx(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) bool {
	return s.withTxErr(ctx, op, fn) == nil
}

func (s *Store) withTxErr(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	if !s.available {
		return store.ErrUnavailable
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.Error("failed to begin transaction",
			slog.String("op", op), slog.String("error", err.Error()))

		return store.ErrUnavailable
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		s.logger.Error("operation failed",
			slog.String("op", op), slog.String("error", err.Error()))

		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction",
			slog.String("op", op), slog.String("error", err.Error()))

		return err
	}

	return nil
}

// sortedColumns gives a deterministic order to a partial-update map so
// generated SQL is stable.
func sortedColumns(changes map[string]any) []string {
	columns := make([]string, 0, len(changes))
	for column := range changes {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	return columns
}
