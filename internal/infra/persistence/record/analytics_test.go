package record

import (
	"context"
	"testing"

	"truecraft/internal/domain/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LogEvent_AggregatesIntoSummary(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	productID := addTestProduct(t, s)

	require.True(t, s.LogEvent(ctx, store.EventInput{
		EventType: "product_view", ProductID: &productID, UserSession: "sess-1",
		Payload: map[string]any{"source": "search"},
	}))
	require.True(t, s.LogEvent(ctx, store.EventInput{
		EventType: "product_view", ProductID: &productID, UserSession: "sess-2",
	}))
	require.True(t, s.LogEvent(ctx, store.EventInput{
		EventType: "search", UserSession: "sess-1",
	}))

	summary := s.GetAnalyticsSummary(ctx)
	assert.Equal(t, int64(3), summary.TotalEvents)
	assert.Equal(t, int64(2), summary.UniqueSessions)
	assert.Equal(t, int64(2), summary.EventsByType["product_view"])
	assert.Equal(t, int64(1), summary.EventsByType["search"])
}

func TestStore_LogEvent_EmptySessionCountsAsAnonymous(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.True(t, s.LogEvent(ctx, store.EventInput{EventType: "search"}))
	require.True(t, s.LogEvent(ctx, store.EventInput{EventType: "search"}))

	summary := s.GetAnalyticsSummary(ctx)
	assert.Equal(t, int64(2), summary.TotalEvents)
	assert.Equal(t, int64(1), summary.UniqueSessions)
}

func TestStore_GetAnalyticsSummary_EmptyLog(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	summary := s.GetAnalyticsSummary(ctx)
	assert.Zero(t, summary.TotalEvents)
	assert.Zero(t, summary.UniqueSessions)
	assert.NotNil(t, summary.EventsByType)
	assert.Empty(t, summary.EventsByType)
}
