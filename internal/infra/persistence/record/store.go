// Package record implements the marketplace store on whichever backend
// the engine produced. It is the preferred tier of the fallback chain.
//
// Every public method checks the availability flag first and degrades
// to its empty/false result instead of failing: this layer serves a UI
// that must never see a panic or an unhandled error.
package record

import (
	"context"
	"log/slog"

	"truecraft/config"
	"truecraft/internal/domain/store"
	"truecraft/internal/infra/persistence/engine"
	"truecraft/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// Store is the GORM-backed implementation of store.MarketplaceStore.
type Store struct {
	db        *gorm.DB
	logger    *slog.Logger
	available bool
	backend   string
}

var _ store.MarketplaceStore = (*Store)(nil)

// Connect builds the handle, creates the schema and probes
// connectivity. A failed probe yields a Store that reports itself
// unavailable rather than an error: the factory decides what to do next.
func Connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) *Store {
	s := &Store{logger: logger, backend: cfg.Database.EffectiveMode()}

	db, err := engine.Open(&cfg.Database, logger, cfg.Env.Debug)
	if err != nil {
		logger.Warn("record store: handle construction failed", slog.String("error", err.Error()))

		return s
	}

	if err := model.Migrate(db); err != nil {
		logger.Warn("record store: schema creation failed", slog.String("error", err.Error()))

		return s
	}

	probe := engine.TestConnection(ctx, &cfg.Database)
	if !probe.Success {
		logger.Warn("record store: connectivity probe failed", slog.String("error", probe.Error))

		return s
	}

	s.db = db
	s.available = true

	return s
}

// New wraps an already-open handle. The schema must exist. Used by the
// tests and anywhere a handle is managed externally.
func New(db *gorm.DB, logger *slog.Logger) *Store {
	s := &Store{db: db, logger: logger}
	if db != nil {
		s.available = true
		s.backend = db.Dialector.Name()
	}

	return s
}

// Available reports whether construction reached the backend.
func (s *Store) Available() bool {
	return s.available
}

// Backend names the active tier and mode.
func (s *Store) Backend() string {
	return "record/" + s.backend
}

// Close releases the underlying handle. Safe on an unavailable store.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// withSession runs fn inside one bounded unit of work and reports
// success. The transaction is released on every exit path; a panic in
// fn rolls back and re-panics.
func (s *Store) withSession(ctx context.Context, op string, fn func(tx *gorm.DB) error) bool {
	return s.withSessionErr(ctx, op, fn) == nil
}

// withSessionErr is withSession for operations whose contract reports a
// descriptive error instead of a bare boolean.
func (s *Store) withSessionErr(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	if !s.available {
		return store.ErrUnavailable
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		s.logger.Error("failed to begin transaction",
			slog.String("op", op), slog.String("error", tx.Error.Error()))

		return store.ErrUnavailable
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			s.logger.Error("transaction rollback failed",
				slog.String("op", op), slog.String("error", rbErr.Error()))
		}
		s.logger.Error("operation failed",
			slog.String("op", op), slog.String("error", err.Error()))

		return err
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("failed to commit transaction",
			slog.String("op", op), slog.String("error", err.Error()))

		return err
	}

	return nil
}
