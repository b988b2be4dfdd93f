// Package engine builds the database handle for exactly one of the two
// supported backends: embedded SQLite or client-server PostgreSQL. The
// mode is an explicit configuration flag, never inferred from data.
package engine

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"truecraft/config"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	// sqliteBusyTimeout bounds how long a write waits on the file lock
	// before surfacing a busy error.
	sqliteBusyTimeout = 30 * time.Second

	// Server-mode pool limits. Idle connections are recycled instead of
	// trusted, which tolerates server-side idle-timeout disconnects.
	pgMaxOpenConns    = 10
	pgMaxIdleConns    = 5
	pgConnMaxIdleTime = 5 * time.Minute
	pgConnMaxLifetime = 30 * time.Minute
)

// Open builds a *gorm.DB for the configured backend. The embedded
// backend lazily creates its containing directory.
func Open(cfg *config.DatabaseConfig, logger *slog.Logger, debug bool) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.EffectiveMode() {
	case config.ModePostgres:
		if cfg.URL == "" {
			return nil, errors.New("postgres mode requires a connection URL")
		}
		dialector = postgres.Open(cfg.URL)
	default:
		path := cfg.EffectivePath()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.Wrap(err, "failed to create data directory")
		}
		dialector = sqlite.Open(sqliteDSN(path))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		// Per-statement implicit transactions are disabled; every store
		// operation opens its own bounded unit of work instead.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(logger, debug),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s handle", cfg.EffectiveMode())
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get underlying sql.DB")
	}

	if cfg.EffectiveMode() == config.ModeSQLite {
		// Single long-lived connection: SQLite accepts one writer, and a
		// shared connection keeps the busy-timeout pragma in effect for
		// every goroutine the host framework runs us on.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxLifetime(0)
	} else {
		sqlDB.SetMaxOpenConns(pgMaxOpenConns)
		sqlDB.SetMaxIdleConns(pgMaxIdleConns)
		sqlDB.SetConnMaxIdleTime(pgConnMaxIdleTime)
		sqlDB.SetConnMaxLifetime(pgConnMaxLifetime)
	}

	return db, nil
}

// sqliteDSN appends the pragmas the embedded backend needs: a bounded
// lock wait, WAL for cross-goroutine reads and enforced foreign keys so
// cascades actually run.
func sqliteDSN(path string) string {
	query := url.Values{}
	query.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", sqliteBusyTimeout.Milliseconds()))
	query.Add("_pragma", "journal_mode(WAL)")
	query.Add("_pragma", "foreign_keys(1)")

	return path + "?" + query.Encode()
}
