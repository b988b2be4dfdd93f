package handler

import (
	"log/slog"
	"net/http"

	"truecraft/internal/delivery/http/response"
	"truecraft/internal/domain/store"

	"github.com/labstack/echo/v4"
)

// ProfileHandler serves artisan profiles.
type ProfileHandler struct {
	store  store.MarketplaceStore
	logger *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(marketStore store.MarketplaceStore, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{store: marketStore, logger: logger}
}

type createProfileRequest struct {
	UserID          *int64 `json:"userId"`
	Name            string `json:"name" validate:"required"`
	Location        string `json:"location"`
	Specialties     string `json:"specialties"`
	YearsExperience int    `json:"yearsExperience" validate:"gte=0"`
	Bio             string `json:"bio"`
	Email           string `json:"email" validate:"omitempty,email"`
	Phone           string `json:"phone"`
	Website         string `json:"website"`
	Instagram       string `json:"instagram"`
	Facebook        string `json:"facebook"`
	Etsy            string `json:"etsy"`
	Education       string `json:"education"`
	Awards          string `json:"awards"`
	Inspiration     string `json:"inspiration"`
	ProfileImage    string `json:"profileImage"`
}

type updateProfileRequest struct {
	Name            *string `json:"name"`
	Location        *string `json:"location"`
	Specialties     *string `json:"specialties"`
	YearsExperience *int    `json:"yearsExperience"`
	Bio             *string `json:"bio"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	Website         *string `json:"website"`
	Instagram       *string `json:"instagram"`
	Facebook        *string `json:"facebook"`
	Etsy            *string `json:"etsy"`
	Education       *string `json:"education"`
	Awards          *string `json:"awards"`
	Inspiration     *string `json:"inspiration"`
	ProfileImage    *string `json:"profileImage"`
}

// List returns profiles newest-first.
func (h *ProfileHandler) List(c echo.Context) error {
	profiles := h.store.ListProfiles(c.Request().Context())

	return response.Success(c, http.StatusOK, profiles, "")
}

// Create adds an artisan profile.
func (h *ProfileHandler) Create(c echo.Context) error {
	var req createProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ok := h.store.AddProfile(c.Request().Context(), store.ProfileInput{
		Name:            req.Name,
		Location:        req.Location,
		Specialties:     req.Specialties,
		YearsExperience: req.YearsExperience,
		Bio:             req.Bio,
		Email:           req.Email,
		Phone:           req.Phone,
		Website:         req.Website,
		Instagram:       req.Instagram,
		Facebook:        req.Facebook,
		Etsy:            req.Etsy,
		Education:       req.Education,
		Awards:          req.Awards,
		Inspiration:     req.Inspiration,
		ProfileImage:    req.ProfileImage,
	}, req.UserID)
	if !ok {
		if !h.store.Available() {
			return response.ServiceUnavailable(c, "STORE_UNAVAILABLE", "Database unavailable")
		}

		return response.InternalServerError(c, "PROFILE_CREATE_FAILED", "Write failed")
	}

	return response.Success(c, http.StatusCreated, nil, "Profile created")
}

// Update applies a partial update to one profile.
func (h *ProfileHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "id must be an integer")
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile payload")
	}

	ok := h.store.UpdateProfile(c.Request().Context(), id, store.ProfileUpdate{
		Name:            req.Name,
		Location:        req.Location,
		Specialties:     req.Specialties,
		YearsExperience: req.YearsExperience,
		Bio:             req.Bio,
		Email:           req.Email,
		Phone:           req.Phone,
		Website:         req.Website,
		Instagram:       req.Instagram,
		Facebook:        req.Facebook,
		Etsy:            req.Etsy,
		Education:       req.Education,
		Awards:          req.Awards,
		Inspiration:     req.Inspiration,
		ProfileImage:    req.ProfileImage,
	})
	if !ok {
		if !h.store.Available() {
			return response.ServiceUnavailable(c, "STORE_UNAVAILABLE", "Database unavailable")
		}

		return response.NotFound(c, "PROFILE_NOT_FOUND", "No profile with that id")
	}

	return response.Success(c, http.StatusOK, nil, "Profile updated")
}
