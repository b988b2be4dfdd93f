package handler

import (
	"log/slog"
	"net/http"

	"truecraft/internal/delivery/http/response"
	"truecraft/internal/domain/store"

	"github.com/labstack/echo/v4"
)

// OrderHandler serves order intake and listing.
type OrderHandler struct {
	store  store.MarketplaceStore
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(marketStore store.MarketplaceStore, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{store: marketStore, logger: logger}
}

type orderItemRequest struct {
	ProductID    *int64  `json:"productId"`
	Quantity     int     `json:"quantity" validate:"gt=0"`
	PricePerItem float64 `json:"pricePerItem" validate:"gte=0"`
	TotalPrice   float64 `json:"totalPrice" validate:"gte=0"`
}

type createOrderRequest struct {
	CustomerName    string             `json:"customerName" validate:"required"`
	CustomerEmail   string             `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone   string             `json:"customerPhone"`
	ShippingAddress string             `json:"shippingAddress"`
	TotalAmount     float64            `json:"totalAmount" validate:"gte=0"`
	Items           []orderItemRequest `json:"items" validate:"dive"`
}

// Create persists an order with its line items.
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	items := make([]store.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, store.OrderItemInput{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			PricePerItem: item.PricePerItem,
			TotalPrice:   item.TotalPrice,
		})
	}

	orderID, ok := h.store.CreateOrder(c.Request().Context(), store.OrderInput{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		TotalAmount:     req.TotalAmount,
		Items:           items,
	})
	if !ok {
		if !h.store.Available() {
			return response.ServiceUnavailable(c, "STORE_UNAVAILABLE", "Database unavailable")
		}

		return response.InternalServerError(c, "ORDER_CREATE_FAILED", "Write failed")
	}

	return response.Success(c, http.StatusCreated, map[string]int64{"id": orderID}, "Order created")
}

// List returns orders newest-first with their item summaries.
func (h *OrderHandler) List(c echo.Context) error {
	orders := h.store.ListOrders(c.Request().Context())

	return response.Success(c, http.StatusOK, orders, "")
}
