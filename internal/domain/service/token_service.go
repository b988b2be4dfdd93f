package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims are the custom claims carried by a session token.
type SessionClaims struct {
	UserID int64
	jwt.RegisteredClaims
}

// TokenService mints and validates the signed session tokens issued
// after an identity-provider login.
type TokenService interface {
	// GenerateSessionToken creates a signed token for a user id.
	GenerateSessionToken(userID int64) (string, error)

	// ValidateSessionToken checks a token string and returns its claims.
	ValidateSessionToken(tokenString string) (*SessionClaims, error)

	// SessionDuration returns the configured token lifetime.
	SessionDuration() time.Duration
}
