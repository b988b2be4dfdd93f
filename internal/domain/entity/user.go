package entity

import "time"

// User is an account sourced from an OAuth identity provider. The
// (OAuthProvider, OAuthID) pair uniquely identifies a user; email
// uniqueness is best-effort because not every provider supplies one.
type User struct {
	ID            int64
	OAuthProvider string // Identity provider name, e.g. "google".
	OAuthID       string // Provider-scoped external id.
	Email         string // Unique when present; may be empty.
	Name          string // Display name.
	AvatarURL     string
	ProfileData   map[string]any // Raw provider profile payload.
	LastLogin     time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
