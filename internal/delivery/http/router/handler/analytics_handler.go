package handler

import (
	"log/slog"
	"net/http"

	"truecraft/internal/delivery/http/response"
	"truecraft/internal/domain/store"

	"github.com/labstack/echo/v4"
)

// AnalyticsHandler serves event intake and the aggregate summary.
type AnalyticsHandler struct {
	store  store.MarketplaceStore
	logger *slog.Logger
}

// NewAnalyticsHandler is the constructor for AnalyticsHandler, injected by Fx.
func NewAnalyticsHandler(marketStore store.MarketplaceStore, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{store: marketStore, logger: logger}
}

type logEventRequest struct {
	EventType   string         `json:"eventType" validate:"required"`
	ProductID   *int64         `json:"productId"`
	UserSession string         `json:"userSession"`
	Payload     map[string]any `json:"payload"`
}

// LogEvent records one event. Logging is best-effort end to end, so
// the endpoint acknowledges the attempt even when the store dropped it.
func (h *AnalyticsHandler) LogEvent(c echo.Context) error {
	var req logEventRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid event payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	logged := h.store.LogEvent(c.Request().Context(), store.EventInput{
		EventType:   req.EventType,
		ProductID:   req.ProductID,
		UserSession: req.UserSession,
		Payload:     req.Payload,
	})

	return response.Success(c, http.StatusAccepted, map[string]bool{"logged": logged}, "")
}

// Summary reports total events, distinct sessions and per-type counts.
func (h *AnalyticsHandler) Summary(c echo.Context) error {
	summary := h.store.GetAnalyticsSummary(c.Request().Context())

	return response.Success(c, http.StatusOK, summary, "")
}
