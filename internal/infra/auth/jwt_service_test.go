package auth

import (
	"testing"
	"time"

	"truecraft/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, secret string) *jwtService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Session = secret

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	cfg := &config.Config{}

	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestJWTService_GenerateAndValidateRoundTrip(t *testing.T) {
	svc := newTestService(t, "test-secret")

	token, err := svc.GenerateSessionToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.WithinDuration(t, time.Now().Add(svc.SessionDuration()),
		claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	issuer := newTestService(t, "secret-a")
	verifier := newTestService(t, "secret-b")

	token, err := issuer.GenerateSessionToken(42)
	require.NoError(t, err)

	_, err = verifier.ValidateSessionToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := newTestService(t, "test-secret")
	svc.sessionTTL = -time.Minute

	token, err := svc.GenerateSessionToken(42)
	require.NoError(t, err)

	_, err = svc.ValidateSessionToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := newTestService(t, "test-secret")

	_, err := svc.ValidateSessionToken("not-a-token")
	assert.Error(t, err)
}
