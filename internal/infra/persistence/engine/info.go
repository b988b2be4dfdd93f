package engine

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"os"
	"time"

	"truecraft/config"
)

// Info describes the active backend configuration without exposing
// credentials.
type Info struct {
	Type string `json:"type"`

	// Server mode.
	Host     string `json:"host,omitempty"`
	Port     string `json:"port,omitempty"`
	Database string `json:"database,omitempty"`

	// Embedded mode.
	Path   string `json:"path,omitempty"`
	Exists bool   `json:"exists,omitempty"`
	Size   int64  `json:"size,omitempty"`
}

// ConnectionTest reports the result of a live connectivity probe.
type ConnectionTest struct {
	Success bool   `json:"success"`
	Mode    string `json:"mode"`
	Version string `json:"version,omitempty"`
	Error   string `json:"error,omitempty"`
	Info    Info   `json:"info"`
}

// Describe returns the non-secret connection metadata for the
// configured backend.
func Describe(cfg *config.DatabaseConfig) Info {
	if cfg.EffectiveMode() == config.ModePostgres {
		info := Info{Type: "PostgreSQL", Host: "configured", Port: "", Database: ""}
		if parsed, err := url.Parse(cfg.URL); err == nil {
			info.Host = parsed.Hostname()
			info.Port = parsed.Port()
			if info.Port == "" {
				info.Port = "5432"
			}
			if len(parsed.Path) > 1 {
				info.Database = parsed.Path[1:]
			}
		}

		return info
	}

	path := cfg.EffectivePath()
	info := Info{Type: "SQLite", Path: path}
	if stat, err := os.Stat(path); err == nil {
		info.Exists = true
		info.Size = stat.Size()
	}

	return info
}

// TestConnection opens a handle, runs the version probe appropriate to
// the backend and reports success or the raw error message.
func TestConnection(ctx context.Context, cfg *config.DatabaseConfig) ConnectionTest {
	result := ConnectionTest{
		Mode: cfg.EffectiveMode(),
		Info: Describe(cfg),
	}

	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := Open(cfg, discard, false)
	if err != nil {
		result.Error = err.Error()

		return result
	}

	sqlDB, err := db.DB()
	if err != nil {
		result.Error = err.Error()

		return result
	}
	defer sqlDB.Close()

	probe := "SELECT sqlite_version()"
	if cfg.EffectiveMode() == config.ModePostgres {
		probe = "SELECT version()"
	}

	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var version string
	if err := db.WithContext(probeCtx).Raw(probe).Scan(&version).Error; err != nil {
		result.Error = err.Error()

		return result
	}

	result.Success = true
	result.Version = version
	result.Info = Describe(cfg) // refresh: the probe may have created the file

	return result
}
