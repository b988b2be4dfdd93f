package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"truecraft/internal/delivery/http/response"
	"truecraft/internal/domain/service"
	"truecraft/internal/domain/store"

	"github.com/labstack/echo/v4"
)

// AuthHandler drives the identity-provider login flow and session
// introspection. The identity provider is optional: when no credentials
// are configured the login endpoints answer 503 and the rest of the API
// keeps working.
type AuthHandler struct {
	identity service.IdentityProvider // nil when unconfigured
	tokens   service.TokenService
	store    store.MarketplaceStore
	logger   *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(
	identity service.IdentityProvider,
	tokens service.TokenService,
	marketStore store.MarketplaceStore,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{identity: identity, tokens: tokens, store: marketStore, logger: logger}
}

// Login returns the provider authorization URL with a fresh CSRF state.
func (h *AuthHandler) Login(c echo.Context) error {
	if h.identity == nil {
		return response.ServiceUnavailable(c, "AUTH_UNCONFIGURED", "Identity provider not configured")
	}

	loginURL, state, err := h.identity.AuthorizationURL()
	if err != nil {
		h.logger.Error("build authorization url failed", slog.Any("error", err))

		return response.InternalServerError(c, "AUTH_URL_FAILED", "Could not build login URL")
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"url":      loginURL,
		"state":    state,
		"provider": h.identity.Provider(),
	}, "")
}

// Callback completes the OAuth flow: exchanges the code, upserts the
// user record and mints a session token.
func (h *AuthHandler) Callback(c echo.Context) error {
	if h.identity == nil {
		return response.ServiceUnavailable(c, "AUTH_UNCONFIGURED", "Identity provider not configured")
	}

	code := c.QueryParam("code")
	state := c.QueryParam("state")
	if code == "" || state == "" {
		return response.BadRequest(c, "MISSING_PARAMS", "code and state are required")
	}

	profile, err := h.identity.Exchange(c.Request().Context(), code, state)
	if err != nil {
		h.logger.Warn("oauth exchange failed", slog.Any("error", err))

		return response.Unauthorized(c, "AUTH_EXCHANGE_FAILED", "Login could not be completed")
	}

	userID, ok := h.store.CreateUser(c.Request().Context(), store.OAuthUserInput{
		OAuthProvider: profile.Provider,
		OAuthID:       profile.ID,
		Email:         profile.Email,
		Name:          profile.Name,
		AvatarURL:     profile.AvatarURL,
		ProfileData:   profile.Raw,
	})
	if !ok {
		return response.ServiceUnavailable(c, "STORE_UNAVAILABLE", "Database unavailable")
	}

	token, err := h.tokens.GenerateSessionToken(userID)
	if err != nil {
		h.logger.Error("mint session token failed", slog.Any("error", err))

		return response.InternalServerError(c, "TOKEN_MINT_FAILED", "Could not create session")
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"token":     token,
		"userId":    userID,
		"expiresIn": int64(h.tokens.SessionDuration().Seconds()),
	}, "Login successful")
}

// Me resolves the bearer token to the current user record.
func (h *AuthHandler) Me(c echo.Context) error {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return response.Unauthorized(c, "MISSING_TOKEN", "Bearer token required")
	}

	claims, err := h.tokens.ValidateSessionToken(token)
	if err != nil {
		return response.Unauthorized(c, "INVALID_TOKEN", "Session token is invalid or expired")
	}

	user, found := h.store.GetUserByID(c.Request().Context(), claims.UserID)
	if !found {
		if !h.store.Available() {
			return response.ServiceUnavailable(c, "STORE_UNAVAILABLE", "Database unavailable")
		}

		return response.NotFound(c, "USER_NOT_FOUND", "No user for this session")
	}

	return response.Success(c, http.StatusOK, user, "")
}
