package handler

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"truecraft/internal/delivery/http/response"
	"truecraft/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// StudioHandler serves the seller content studio: listing copy
// generation and product image preparation.
type StudioHandler struct {
	generator service.ContentGenerator
	images    service.ImageProcessor
	logger    *slog.Logger
}

// NewStudioHandler is the constructor for StudioHandler, injected by Fx.
func NewStudioHandler(generator service.ContentGenerator, images service.ImageProcessor, logger *slog.Logger) *StudioHandler {
	return &StudioHandler{generator: generator, images: images, logger: logger}
}

type generateContentRequest struct {
	Prompt   string `json:"prompt" validate:"required"`
	Tone     string `json:"tone"`
	Audience string `json:"audience"`
	MaxWords int    `json:"maxWords" validate:"gte=0"`
}

type processImageRequest struct {
	// Data is the raw upload, base64-encoded for JSON transport.
	Data string `json:"data" validate:"required"`
}

type thumbnailRequest struct {
	Stored string `json:"stored" validate:"required"`
}

// Generate drafts listing copy from a prompt.
func (h *StudioHandler) Generate(c echo.Context) error {
	var req generateContentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid generation payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	text, err := h.generator.Generate(c.Request().Context(), req.Prompt, service.GenerationParams{
		Tone:     req.Tone,
		Audience: req.Audience,
		MaxWords: req.MaxWords,
	})
	if err != nil {
		return response.BadRequest(c, "GENERATION_FAILED", err.Error())
	}

	return response.Success(c, http.StatusOK, map[string]string{"content": text}, "")
}

// ProcessImage validates, bounds and encodes an uploaded image into its
// storable form.
func (h *StudioHandler) ProcessImage(c echo.Context) error {
	var req processImageRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid image payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	raw, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return response.BadRequest(c, "INVALID_ENCODING", "data must be base64")
	}

	stored, err := h.images.Process(raw)
	if err != nil {
		return response.BadRequest(c, "IMAGE_REJECTED", err.Error())
	}

	return response.Success(c, http.StatusOK, map[string]string{"image": stored}, "")
}

// Thumbnail produces a small preview from a stored image reference.
func (h *StudioHandler) Thumbnail(c echo.Context) error {
	var req thumbnailRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	thumb, err := h.images.Thumbnail(req.Stored)
	if err != nil {
		return response.BadRequest(c, "THUMBNAIL_FAILED", err.Error())
	}

	return response.Success(c, http.StatusOK, map[string]string{"thumbnail": thumb}, "")
}
