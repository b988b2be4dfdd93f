// Package entity contains the core business objects of the marketplace,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Product is a single artisan listing. Monetary and weight fields are
// fixed-point in storage and surfaced as float64 at the read boundary.
type Product struct {
	ID             int64     // Auto-assigned identifier, immutable.
	UserID         *int64    // Owning user; nil for unowned listings in single-tenant mode.
	Name           string    // Listing title.
	Category       string    // Free-text category label.
	Price          float64   // Sale price, >= 0.
	Description    string    // Long-form description.
	Materials      string    // Materials used, free text.
	Dimensions     string    // Human-readable dimensions.
	Weight         float64   // Item weight, >= 0.
	StockQuantity  int       // Units in stock, >= 0.
	ShippingCost   float64   // Flat shipping cost, >= 0.
	ProcessingTime string    // Lead-time label, e.g. "3-5 days".
	Tags           string    // Comma-joined tag list.
	ImageData      string    // Opaque image reference (data URI or path).
	Views          int       // View counter, only ever incremented.
	Favorites      int       // Favorite counter, only ever incremented.
	CreatedAt      time.Time // Set once at insert, immutable.
	UpdatedAt      time.Time // Refreshed on every mutation.
}
