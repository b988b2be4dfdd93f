package handler

import (
	"log/slog"
	"net/http"

	"truecraft/internal/delivery/http/response"
	"truecraft/internal/domain/store"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ReviewHandler serves product reviews and rating summaries.
type ReviewHandler struct {
	store  store.MarketplaceStore
	logger *slog.Logger
}

// NewReviewHandler is the constructor for ReviewHandler, injected by Fx.
func NewReviewHandler(marketStore store.MarketplaceStore, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{store: marketStore, logger: logger}
}

type createReviewRequest struct {
	CustomerName  string `json:"customerName" validate:"required"`
	CustomerEmail string `json:"customerEmail" validate:"required,email"`
	Rating        int    `json:"rating" validate:"required"`
	Comment       string `json:"comment"`
}

// Create adds a review to a product. Out-of-range ratings are rejected
// with 400; the 1-5 rule lives in the store, not here.
func (h *ReviewHandler) Create(c echo.Context) error {
	productID, err := pathID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "id must be an integer")
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reviewID, err := h.store.AddReview(c.Request().Context(), store.ReviewInput{
		ProductID:     productID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Rating:        req.Rating,
		Comment:       req.Comment,
	})
	if err != nil {
		if errors.Is(err, store.ErrInvalidRating) {
			return response.BadRequest(c, "INVALID_RATING", err.Error())
		}
		if errors.Is(err, store.ErrUnavailable) {
			return response.ServiceUnavailable(c, "STORE_UNAVAILABLE", "Database unavailable")
		}

		return response.InternalServerError(c, "REVIEW_CREATE_FAILED", "Write failed")
	}

	return response.Success(c, http.StatusCreated, map[string]int64{"id": reviewID}, "Review created")
}

// List returns a product's reviews newest-first. Unapproved reviews
// appear only when explicitly requested.
func (h *ReviewHandler) List(c echo.Context) error {
	productID, err := pathID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "id must be an integer")
	}

	includeUnapproved := c.QueryParam("includeUnapproved") == "true"
	reviews := h.store.GetReviews(c.Request().Context(), productID, includeUnapproved)

	return response.Success(c, http.StatusOK, reviews, "")
}

// Rating returns the approved-review aggregate for a product.
func (h *ReviewHandler) Rating(c echo.Context) error {
	productID, err := pathID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "id must be an integer")
	}

	summary := h.store.GetAverageRating(c.Request().Context(), productID)

	return response.Success(c, http.StatusOK, summary, "")
}
