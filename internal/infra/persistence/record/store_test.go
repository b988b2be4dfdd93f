package record

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"truecraft/config"
	"truecraft/internal/domain/store"
	"truecraft/internal/infra/persistence/engine"
	"truecraft/internal/infra/persistence/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.DatabaseConfig{
		Mode: config.ModeSQLite,
		Path: filepath.Join(t.TempDir(), "store.db"),
	}

	db, err := engine.Open(cfg, logger, false)
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))

	return New(db, logger)
}

func newUnavailableStore() *Store {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &Store{logger: logger, backend: "sqlite"}
}

func TestStore_Available_ReflectsConstruction(t *testing.T) {
	s := newTestStore(t)
	assert.True(t, s.Available())
	assert.Equal(t, "record/sqlite", s.Backend())

	u := newUnavailableStore()
	assert.False(t, u.Available())
}

func TestStore_Unavailable_DegradesToEmptyResults(t *testing.T) {
	ctx := context.Background()
	s := newUnavailableStore()

	assert.Empty(t, s.ListProducts(ctx, nil))
	assert.False(t, s.AddProduct(ctx, store.ProductInput{Name: "Vase"}, nil))
	assert.False(t, s.UpdateProduct(ctx, 1, store.ProductUpdate{}))
	assert.False(t, s.DeleteProduct(ctx, 1))
	assert.False(t, s.IncrementViews(ctx, 1))
	assert.Empty(t, s.ListProfiles(ctx))
	assert.False(t, s.AddProfile(ctx, store.ProfileInput{Name: "Ana"}, nil))

	id, ok := s.CreateUser(ctx, store.OAuthUserInput{OAuthProvider: "google", OAuthID: "x"})
	assert.Zero(t, id)
	assert.False(t, ok)

	user, found := s.GetUserByID(ctx, 1)
	assert.Nil(t, user)
	assert.False(t, found)

	_, err := s.AddReview(ctx, store.ReviewInput{ProductID: 1, Rating: 5})
	assert.ErrorIs(t, err, store.ErrUnavailable)

	assert.Empty(t, s.GetReviews(ctx, 1, false))

	summary := s.GetAverageRating(ctx, 1)
	assert.Zero(t, summary.Average)
	assert.Zero(t, summary.Total)

	_, err = s.SendMessage(ctx, store.MessageInput{SenderRole: "buyer"})
	assert.ErrorIs(t, err, store.ErrUnavailable)

	assert.Zero(t, s.GetUnreadMessageCount(ctx, ""))
	assert.Empty(t, s.GetConversations(ctx, "", ""))
	assert.False(t, s.MarkConversationAsRead(ctx, 1, "a@b.c"))
	assert.Empty(t, s.GetMessageThread(ctx, 1, []string{"a@b.c"}))

	orderID, ok := s.CreateOrder(ctx, store.OrderInput{CustomerName: "Bo"})
	assert.Zero(t, orderID)
	assert.False(t, ok)
	assert.Empty(t, s.ListOrders(ctx))

	assert.False(t, s.LogEvent(ctx, store.EventInput{EventType: "view"}))

	analytics := s.GetAnalyticsSummary(ctx)
	assert.Zero(t, analytics.TotalEvents)
	assert.NotNil(t, analytics.EventsByType)
}

// Invalid inputs are rejected before the availability check, so the
// caller sees the same error on every tier.
func TestStore_Unavailable_StillValidatesInput(t *testing.T) {
	ctx := context.Background()
	s := newUnavailableStore()

	_, err := s.AddReview(ctx, store.ReviewInput{ProductID: 1, Rating: 0})
	assert.ErrorIs(t, err, store.ErrInvalidRating)

	_, err = s.SendMessage(ctx, store.MessageInput{SenderRole: "admin"})
	assert.ErrorIs(t, err, store.ErrInvalidSenderRole)
}
