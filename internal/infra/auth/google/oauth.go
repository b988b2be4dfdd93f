// Package google implements the identity-provider collaborator against
// Google's OAuth2 endpoints.
package google

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"truecraft/config"
	"truecraft/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	authURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	tokenURL    = "https://oauth2.googleapis.com/token"
	userInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

	providerName = "google"

	// stateTTL bounds how long a login attempt may sit between the
	// redirect and the callback.
	stateTTL = 10 * time.Minute
)

// Provider implements service.IdentityProvider for Google.
type Provider struct {
	clientID     string
	clientSecret string
	redirectURI  string
	scopes       string

	tokenEndpoint    string
	userInfoEndpoint string
	client           *http.Client

	// Issued CSRF states with their expiry; single-use.
	mu     sync.Mutex
	states map[string]time.Time
}

var _ service.IdentityProvider = (*Provider)(nil)

// New builds the provider from configuration.
func New(cfg *config.Config) (*Provider, error) {
	if cfg.GoogleOAuth == nil || cfg.GoogleOAuth.ClientID == "" {
		return nil, errors.New("google oauth credentials are not configured")
	}

	scopes := cfg.GoogleOAuth.Scopes
	if scopes == "" {
		scopes = "openid email profile"
	}

	return &Provider{
		clientID:         cfg.GoogleOAuth.ClientID,
		clientSecret:     cfg.GoogleOAuth.ClientSecret,
		redirectURI:      cfg.GoogleOAuth.RedirectURI,
		scopes:           scopes,
		tokenEndpoint:    tokenURL,
		userInfoEndpoint: userInfoURL,
		client:           &http.Client{Timeout: 15 * time.Second},
		states:           make(map[string]time.Time),
	}, nil
}

// Provider returns the provider name.
func (p *Provider) Provider() string {
	return providerName
}

// AuthorizationURL builds the login URL with a fresh single-use state.
func (p *Provider) AuthorizationURL() (string, string, error) {
	state, err := p.issueState()
	if err != nil {
		return "", "", err
	}

	params := url.Values{}
	params.Set("client_id", p.clientID)
	params.Set("redirect_uri", p.redirectURI)
	params.Set("scope", p.scopes)
	params.Set("response_type", "code")
	params.Set("state", state)

	return authURL + "?" + params.Encode(), state, nil
}

// Exchange validates the state, trades the code for an access token and
// fetches the normalized user profile.
func (p *Provider) Exchange(ctx context.Context, code, state string) (*service.IdentityProfile, error) {
	if !p.consumeState(state) {
		return nil, errors.New("invalid or expired oauth state")
	}

	accessToken, err := p.exchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	return p.fetchProfile(ctx, accessToken)
}

func (p *Provider) issueState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to generate oauth state")
	}
	state := hex.EncodeToString(buf)

	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	for issued, expiry := range p.states {
		if now.After(expiry) {
			delete(p.states, issued)
		}
	}
	p.states[state] = now.Add(stateTTL)

	return state, nil
}

// consumeState removes the state whether valid or not: states are
// single-use so replays always fail.
func (p *Provider) consumeState(state string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	expiry, exists := p.states[state]
	delete(p.states, state)

	return exists && time.Now().Before(expiry)
}

func (p *Provider) exchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", p.clientID)
	form.Set("client_secret", p.clientSecret)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", p.redirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenEndpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "failed to create token exchange request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "failed to exchange code for token")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return "", errors.Errorf("token exchange failed with status %d: %s",
			resp.StatusCode, string(body))
	}

	var tokenResponse struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return "", errors.Wrap(err, "failed to decode token response")
	}

	return tokenResponse.AccessToken, nil
}

func (p *Provider) fetchProfile(ctx context.Context, accessToken string) (*service.IdentityProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoEndpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user info request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user info")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)

		return nil, errors.Errorf("user info request failed with status %d: %s",
			resp.StatusCode, string(body))
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read user info response")
	}

	var googleUser struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.Unmarshal(payload, &googleUser); err != nil {
		return nil, errors.Wrap(err, "failed to decode user info response")
	}

	var raw map[string]any
	_ = json.Unmarshal(payload, &raw)

	return &service.IdentityProfile{
		Provider:  providerName,
		ID:        googleUser.ID,
		Email:     googleUser.Email,
		Name:      googleUser.Name,
		AvatarURL: googleUser.Picture,
		Raw:       raw,
	}, nil
}
