package demo

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"truecraft/internal/domain/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDemoStore() *Store {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStore_ReportsUnavailableButAcceptsWrites(t *testing.T) {
	ctx := context.Background()
	s := newDemoStore()

	assert.False(t, s.Available())
	assert.Equal(t, "demo", s.Backend())
	assert.Empty(t, s.ListProducts(ctx, nil))

	require.True(t, s.AddProduct(ctx, store.ProductInput{Name: "Mug", Price: 25.00}, nil))

	products := s.ListProducts(ctx, nil)
	require.Len(t, products, 1)
	assert.Equal(t, "Mug", products[0].Name)
}

func TestStore_StateIsPerInstance(t *testing.T) {
	ctx := context.Background()
	first := newDemoStore()
	second := newDemoStore()

	require.True(t, first.AddProduct(ctx, store.ProductInput{Name: "Mug"}, nil))

	assert.Len(t, first.ListProducts(ctx, nil), 1)
	assert.Empty(t, second.ListProducts(ctx, nil))
}

func TestStore_ValidationMatchesRealTiers(t *testing.T) {
	ctx := context.Background()
	s := newDemoStore()

	_, err := s.AddReview(ctx, store.ReviewInput{ProductID: 1, Rating: 6})
	assert.ErrorIs(t, err, store.ErrInvalidRating)

	_, err = s.SendMessage(ctx, store.MessageInput{SenderRole: "admin"})
	assert.ErrorIs(t, err, store.ErrInvalidSenderRole)
}

func TestStore_UpdateProduct_EmptyUpdateReportsFalse(t *testing.T) {
	ctx := context.Background()
	s := newDemoStore()

	require.True(t, s.AddProduct(ctx, store.ProductInput{Name: "Mug"}, nil))
	id := s.ListProducts(ctx, nil)[0].ID

	assert.False(t, s.UpdateProduct(ctx, id, store.ProductUpdate{}))
	assert.False(t, s.UpdateProfile(ctx, id, store.ProfileUpdate{}))
	assert.Equal(t, "Mug", s.ListProducts(ctx, nil)[0].Name)
}

func TestStore_ConversationsGroupInMemory(t *testing.T) {
	ctx := context.Background()
	s := newDemoStore()

	require.True(t, s.AddProduct(ctx, store.ProductInput{Name: "Bowl"}, nil))
	productID := s.ListProducts(ctx, nil)[0].ID

	for _, subject := range []string{"Shipping", "Shipping", "Gift wrap"} {
		_, err := s.SendMessage(ctx, store.MessageInput{
			SenderRole: "buyer", SenderName: "Bo", SenderEmail: "bo@example.com",
			ProductID: &productID, Subject: subject, Content: "body",
		})
		require.NoError(t, err)
	}

	conversations := s.GetConversations(ctx, "bo@example.com", "")
	require.Len(t, conversations, 1)
	assert.Equal(t, int64(3), conversations[0].MessageCount)
	assert.Equal(t, int64(3), conversations[0].UnreadCount)
	assert.Equal(t, "Bowl", conversations[0].ProductName)
	assert.Contains(t, conversations[0].Subjects, "Gift wrap")

	require.True(t, s.MarkConversationAsRead(ctx, productID, "bo@example.com"))
	assert.Zero(t, s.GetUnreadMessageCount(ctx, ""))
}

func TestStore_CreateUser_UpsertsInMemory(t *testing.T) {
	ctx := context.Background()
	s := newDemoStore()

	firstID, ok := s.CreateUser(ctx, store.OAuthUserInput{
		OAuthProvider: "google", OAuthID: "sub-1", Name: "Ana",
	})
	require.True(t, ok)

	secondID, ok := s.CreateUser(ctx, store.OAuthUserInput{
		OAuthProvider: "google", OAuthID: "sub-1", Name: "Ana Torres",
	})
	require.True(t, ok)
	assert.Equal(t, firstID, secondID)

	user, found := s.GetUserByID(ctx, firstID)
	require.True(t, found)
	assert.Equal(t, "Ana Torres", user.Name)
}

func TestStore_AnalyticsSummaryCountsSessions(t *testing.T) {
	ctx := context.Background()
	s := newDemoStore()

	require.True(t, s.LogEvent(ctx, store.EventInput{EventType: "view", UserSession: "a"}))
	require.True(t, s.LogEvent(ctx, store.EventInput{EventType: "view", UserSession: "b"}))
	require.True(t, s.LogEvent(ctx, store.EventInput{EventType: "search"}))

	summary := s.GetAnalyticsSummary(ctx)
	assert.Equal(t, int64(3), summary.TotalEvents)
	assert.Equal(t, int64(3), summary.UniqueSessions)
	assert.Equal(t, int64(2), summary.EventsByType["view"])
}
