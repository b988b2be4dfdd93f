// Package service defines the interfaces of external collaborators the
// marketplace consumes. The data layer depends on these shapes only,
// never on the providers behind them.
package service

import "context"

// IdentityProfile is the normalized user-info record an identity
// provider returns after a successful login.
type IdentityProfile struct {
	Provider  string         // Provider name, e.g. "google".
	ID        string         // Provider-scoped external id.
	Email     string         // May be empty; not every provider supplies one.
	Name      string         // Display name.
	AvatarURL string         // Profile picture URL.
	Raw       map[string]any // Full provider payload, stored verbatim.
}

// IdentityProvider exchanges an authorization code for the user's
// normalized profile. OAuth mechanics stay behind this interface.
type IdentityProvider interface {
	// AuthorizationURL builds the provider login URL with CSRF state.
	AuthorizationURL() (url string, state string, err error)

	// Exchange trades an authorization code (with its state parameter)
	// for the normalized profile.
	Exchange(ctx context.Context, code, state string) (*IdentityProfile, error)

	// Provider returns the provider name.
	Provider() string
}
