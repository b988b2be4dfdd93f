package service

import "context"

// GenerationParams tune a content-generation request.
type GenerationParams struct {
	Tone     string // e.g. "warm", "professional".
	Audience string // Target audience hint.
	MaxWords int    // 0 means no limit.
}

// ContentGenerator drafts marketing copy: prompt text in, generated text
// out. Implementations may be remote models or local templates; the
// store has zero dependency on this collaborator.
type ContentGenerator interface {
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, error)
}
