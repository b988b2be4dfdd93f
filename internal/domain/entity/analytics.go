package entity

import "time"

// AnalyticsEvent is a free-form behavioral event. Logging is
// best-effort; a failed insert never surfaces to the caller.
type AnalyticsEvent struct {
	ID          int64
	EventType   string
	ProductID   *int64
	UserSession string
	Payload     map[string]any
	Timestamp   time.Time
}

// AnalyticsSummary aggregates the event log.
type AnalyticsSummary struct {
	TotalEvents    int64
	UniqueSessions int64
	EventsByType   map[string]int64
}

// EmptyAnalyticsSummary returns a zero summary with a non-nil map so
// consumers can index it without checking.
func EmptyAnalyticsSummary() AnalyticsSummary {
	return AnalyticsSummary{EventsByType: map[string]int64{}}
}
