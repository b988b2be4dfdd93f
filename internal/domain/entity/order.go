package entity

import "time"

// Order is a customer purchase with one or more line items.
type Order struct {
	ID              int64
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	TotalAmount     float64
	Status          string // Defaults to "pending".
	Items           []OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem is one product line within an order.
type OrderItem struct {
	ID           int64
	OrderID      int64
	ProductID    *int64
	Quantity     int
	PricePerItem float64
	TotalPrice   float64
}

// OrderSummary is the list-view projection of an order: the order row
// plus the item count and joined product names.
type OrderSummary struct {
	Order
	ItemCount    int64
	ProductNames []string
}
