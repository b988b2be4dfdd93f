// Package auth provides the session token implementation issued after
// an identity-provider login.
package auth

import (
	"time"

	"truecraft/config"
	"truecraft/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const sessionTTL = 7 * 24 * time.Hour

// jwtService signs and validates session tokens with HS256.
type jwtService struct {
	secret     string
	sessionTTL time.Duration
}

// NewJWTService builds the token service from configuration.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Session == "" {
		return nil, errors.New("session secret must be provided")
	}

	return &jwtService{
		secret:     cfg.SecretKey.Session,
		sessionTTL: sessionTTL,
	}, nil
}

func (s *jwtService) GenerateSessionToken(userID int64) (string, error) {
	now := time.Now()
	claims := service.SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

func (s *jwtService) ValidateSessionToken(tokenString string) (*service.SessionClaims, error) {
	claims := &service.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to validate session token")
	}
	if !token.Valid {
		return nil, errors.New("session token is invalid")
	}

	return claims, nil
}

func (s *jwtService) SessionDuration() time.Duration {
	return s.sessionTTL
}
