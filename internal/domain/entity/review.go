package entity

import "time"

// Review is customer feedback on a product. Reviews are cascade-deleted
// with their product.
type Review struct {
	ID            int64
	ProductID     int64
	CustomerName  string
	CustomerEmail string
	Rating        int // 1-5 inclusive, validated before any write.
	Comment       string
	Approved      bool // Defaults to true.
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RatingSummary is the on-demand aggregation over a product's approved
// reviews. Histogram always carries all five star keys, zero or not.
type RatingSummary struct {
	Average   float64       // 0 when there are no reviews.
	Total     int64         // Number of reviews aggregated.
	Histogram map[int]int64 // Keyed by star value 1-5.
}

// NewRatingHistogram returns a histogram with every star bucket present.
func NewRatingHistogram() map[int]int64 {
	return map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
}
