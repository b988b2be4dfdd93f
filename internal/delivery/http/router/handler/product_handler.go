// Package handler contains the HTTP handlers for the marketplace API.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"truecraft/internal/delivery/http/response"
	"truecraft/internal/domain/store"

	"github.com/labstack/echo/v4"
)

// ProductHandler serves the product catalog and its reviews.
type ProductHandler struct {
	store  store.MarketplaceStore
	logger *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(marketStore store.MarketplaceStore, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{store: marketStore, logger: logger}
}

type createProductRequest struct {
	UserID         *int64  `json:"userId"`
	Name           string  `json:"name" validate:"required"`
	Category       string  `json:"category"`
	Price          float64 `json:"price" validate:"gte=0"`
	Description    string  `json:"description"`
	Materials      string  `json:"materials"`
	Dimensions     string  `json:"dimensions"`
	Weight         float64 `json:"weight" validate:"gte=0"`
	StockQuantity  int     `json:"stockQuantity" validate:"gte=0"`
	ShippingCost   float64 `json:"shippingCost" validate:"gte=0"`
	ProcessingTime string  `json:"processingTime"`
	Tags           string  `json:"tags"`
	ImageData      string  `json:"imageData"`
}

type updateProductRequest struct {
	Name           *string  `json:"name"`
	Category       *string  `json:"category"`
	Price          *float64 `json:"price"`
	Description    *string  `json:"description"`
	Materials      *string  `json:"materials"`
	Dimensions     *string  `json:"dimensions"`
	Weight         *float64 `json:"weight"`
	StockQuantity  *int     `json:"stockQuantity"`
	ShippingCost   *float64 `json:"shippingCost"`
	ProcessingTime *string  `json:"processingTime"`
	Tags           *string  `json:"tags"`
	ImageData      *string  `json:"imageData"`
}

// List returns products newest-first, optionally filtered to one owner.
func (h *ProductHandler) List(c echo.Context) error {
	var userID *int64
	if raw := c.QueryParam("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return response.BadRequest(c, "INVALID_USER_ID", "userId must be an integer")
		}
		userID = &id
	}

	products := h.store.ListProducts(c.Request().Context(), userID)

	return response.Success(c, http.StatusOK, products, "")
}

// Create adds a new listing.
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ok := h.store.AddProduct(c.Request().Context(), store.ProductInput{
		Name:           req.Name,
		Category:       req.Category,
		Price:          req.Price,
		Description:    req.Description,
		Materials:      req.Materials,
		Dimensions:     req.Dimensions,
		Weight:         req.Weight,
		StockQuantity:  req.StockQuantity,
		ShippingCost:   req.ShippingCost,
		ProcessingTime: req.ProcessingTime,
		Tags:           req.Tags,
		ImageData:      req.ImageData,
	}, req.UserID)
	if !ok {
		return h.writeFailure(c, "PRODUCT_CREATE_FAILED")
	}

	return response.Success(c, http.StatusCreated, nil, "Product created")
}

// Update applies a partial update to one listing.
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "id must be an integer")
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product payload")
	}

	ok := h.store.UpdateProduct(c.Request().Context(), id, store.ProductUpdate{
		Name:           req.Name,
		Category:       req.Category,
		Price:          req.Price,
		Description:    req.Description,
		Materials:      req.Materials,
		Dimensions:     req.Dimensions,
		Weight:         req.Weight,
		StockQuantity:  req.StockQuantity,
		ShippingCost:   req.ShippingCost,
		ProcessingTime: req.ProcessingTime,
		Tags:           req.Tags,
		ImageData:      req.ImageData,
	})
	if !ok {
		if !h.store.Available() {
			return response.ServiceUnavailable(c, "STORE_UNAVAILABLE", "Database unavailable")
		}

		return response.NotFound(c, "PRODUCT_NOT_FOUND", "No product with that id")
	}

	return response.Success(c, http.StatusOK, nil, "Product updated")
}

// Delete removes a listing; its reviews and messages cascade away.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "id must be an integer")
	}

	if !h.store.DeleteProduct(c.Request().Context(), id) {
		if !h.store.Available() {
			return response.ServiceUnavailable(c, "STORE_UNAVAILABLE", "Database unavailable")
		}

		return response.NotFound(c, "PRODUCT_NOT_FOUND", "No product with that id")
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted")
}

// IncrementViews bumps the view counter.
func (h *ProductHandler) IncrementViews(c echo.Context) error {
	return h.increment(c, h.store.IncrementViews)
}

// IncrementFavorites bumps the favorite counter.
func (h *ProductHandler) IncrementFavorites(c echo.Context) error {
	return h.increment(c, h.store.IncrementFavorites)
}

func (h *ProductHandler) increment(c echo.Context, bump func(ctx context.Context, id int64) bool) error {
	id, err := pathID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "id must be an integer")
	}

	if !bump(c.Request().Context(), id) {
		if !h.store.Available() {
			return response.ServiceUnavailable(c, "STORE_UNAVAILABLE", "Database unavailable")
		}

		return response.NotFound(c, "PRODUCT_NOT_FOUND", "No product with that id")
	}

	return response.Success(c, http.StatusOK, nil, "")
}

func (h *ProductHandler) writeFailure(c echo.Context, code string) error {
	if !h.store.Available() {
		return response.ServiceUnavailable(c, "STORE_UNAVAILABLE", "Database unavailable")
	}

	return response.InternalServerError(c, code, "Write failed")
}

func pathID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
