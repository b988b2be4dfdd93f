package handler

import (
	"log/slog"
	"net/http"

	"truecraft/config"
	"truecraft/internal/delivery/http/response"
	"truecraft/internal/domain/store"
	"truecraft/internal/infra/persistence/engine"

	"github.com/labstack/echo/v4"
)

// StatusHandler exposes which storage tier answered at startup and lets
// operators probe the configured backend on demand.
type StatusHandler struct {
	cfg    *config.Config
	store  store.MarketplaceStore
	logger *slog.Logger
}

// NewStatusHandler is the constructor for StatusHandler, injected by Fx.
func NewStatusHandler(cfg *config.Config, marketStore store.MarketplaceStore, logger *slog.Logger) *StatusHandler {
	return &StatusHandler{cfg: cfg, store: marketStore, logger: logger}
}

// Status reports the active tier and the non-secret connection metadata.
func (h *StatusHandler) Status(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]any{
		"backend":   h.store.Backend(),
		"available": h.store.Available(),
		"mode":      h.cfg.Database.EffectiveMode(),
		"info":      engine.Describe(&h.cfg.Database),
	}, "")
}

// TestConnection runs a live connectivity probe against the configured
// backend, independent of whichever tier is currently serving.
func (h *StatusHandler) TestConnection(c echo.Context) error {
	result := engine.TestConnection(c.Request().Context(), &h.cfg.Database)
	if !result.Success {
		h.logger.Warn("connection test failed",
			slog.String("mode", result.Mode),
			slog.String("error", result.Error))
	}

	return response.Success(c, http.StatusOK, result, "")
}
