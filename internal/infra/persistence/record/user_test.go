package record

import (
	"context"
	"testing"

	"truecraft/internal/domain/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateUser_InsertsThenUpdatesSameIdentity(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	firstID, ok := s.CreateUser(ctx, store.OAuthUserInput{
		OAuthProvider: "google",
		OAuthID:       "sub-123",
		Email:         "ana@example.com",
		Name:          "Ana",
		ProfileData:   map[string]any{"locale": "en"},
	})
	require.True(t, ok)
	assert.Positive(t, firstID)

	secondID, ok := s.CreateUser(ctx, store.OAuthUserInput{
		OAuthProvider: "google",
		OAuthID:       "sub-123",
		Email:         "ana@example.com",
		Name:          "Ana Torres",
		AvatarURL:     "https://example.com/ana.png",
	})
	require.True(t, ok)
	assert.Equal(t, firstID, secondID)

	user, found := s.GetUserByID(ctx, firstID)
	require.True(t, found)
	assert.Equal(t, "Ana Torres", user.Name)
	assert.Equal(t, "https://example.com/ana.png", user.AvatarURL)
	assert.Equal(t, "ana@example.com", user.Email)
	// The first login's payload survives an update that omits one.
	assert.Equal(t, "en", user.ProfileData["locale"])
}

func TestStore_CreateUser_DistinguishesProviders(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	googleID, ok := s.CreateUser(ctx, store.OAuthUserInput{
		OAuthProvider: "google", OAuthID: "sub-1", Name: "Ana",
	})
	require.True(t, ok)

	otherID, ok := s.CreateUser(ctx, store.OAuthUserInput{
		OAuthProvider: "github", OAuthID: "sub-1", Name: "Ana",
	})
	require.True(t, ok)

	assert.NotEqual(t, googleID, otherID)
}

func TestStore_GetUserByID_MissingIDIsNotAnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	user, found := s.GetUserByID(ctx, 404)
	assert.Nil(t, user)
	assert.False(t, found)
}

func TestStore_CreateUser_EmptyEmailStoredAsNull(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// Two providers without an email must not collide on the unique
	// email column: NULLs never conflict.
	firstID, ok := s.CreateUser(ctx, store.OAuthUserInput{
		OAuthProvider: "google", OAuthID: "a", Name: "A",
	})
	require.True(t, ok)

	secondID, ok := s.CreateUser(ctx, store.OAuthUserInput{
		OAuthProvider: "google", OAuthID: "b", Name: "B",
	})
	require.True(t, ok)
	assert.NotEqual(t, firstID, secondID)

	user, found := s.GetUserByID(ctx, firstID)
	require.True(t, found)
	assert.Empty(t, user.Email)
}
