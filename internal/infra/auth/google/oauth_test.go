package google

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"truecraft/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()

	cfg := &config.Config{
		GoogleOAuth: &config.GoogleOAuthConfig{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURI:  "https://app.example.com/auth/callback",
		},
	}

	provider, err := New(cfg)
	require.NoError(t, err)

	return provider
}

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := New(&config.Config{})
	assert.Error(t, err)

	_, err = New(&config.Config{GoogleOAuth: &config.GoogleOAuthConfig{}})
	assert.Error(t, err)
}

func TestProvider_AuthorizationURL_CarriesStateAndParams(t *testing.T) {
	provider := newTestProvider(t)

	rawURL, state, err := provider.AuthorizationURL()
	require.NoError(t, err)
	require.NotEmpty(t, state)

	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	query := parsed.Query()
	assert.Equal(t, "client-id", query.Get("client_id"))
	assert.Equal(t, "https://app.example.com/auth/callback", query.Get("redirect_uri"))
	assert.Equal(t, "code", query.Get("response_type"))
	assert.Equal(t, state, query.Get("state"))
	assert.Equal(t, "openid email profile", query.Get("scope"))
}

func TestProvider_StateIsSingleUse(t *testing.T) {
	provider := newTestProvider(t)

	_, state, err := provider.AuthorizationURL()
	require.NoError(t, err)

	assert.True(t, provider.consumeState(state))
	assert.False(t, provider.consumeState(state))
	assert.False(t, provider.consumeState("never-issued"))
}

func TestProvider_Exchange_ReturnsNormalizedProfile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "auth-code", r.Form.Get("code"))
		assert.Equal(t, "authorization_code", r.Form.Get("grant_type"))
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "token-123"})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "sub-1",
			"email":   "ana@example.com",
			"name":    "Ana",
			"picture": "https://example.com/ana.png",
			"locale":  "en",
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	provider := newTestProvider(t)
	provider.tokenEndpoint = server.URL + "/token"
	provider.userInfoEndpoint = server.URL + "/userinfo"

	_, state, err := provider.AuthorizationURL()
	require.NoError(t, err)

	profile, err := provider.Exchange(context.Background(), "auth-code", state)
	require.NoError(t, err)
	assert.Equal(t, "google", profile.Provider)
	assert.Equal(t, "sub-1", profile.ID)
	assert.Equal(t, "ana@example.com", profile.Email)
	assert.Equal(t, "Ana", profile.Name)
	assert.Equal(t, "https://example.com/ana.png", profile.AvatarURL)
	assert.Equal(t, "en", profile.Raw["locale"])
}

func TestProvider_Exchange_RejectsUnknownState(t *testing.T) {
	provider := newTestProvider(t)

	_, err := provider.Exchange(context.Background(), "auth-code", "forged-state")
	assert.Error(t, err)
}
