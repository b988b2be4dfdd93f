// Package content implements the content-generation collaborator with
// local templates. The marketplace treats generation as opaque text in,
// text out, so a deterministic template engine satisfies the contract
// without a remote model.
package content

import (
	"context"
	"strings"

	"truecraft/internal/domain/service"

	"github.com/pkg/errors"
)

// tonePrefixes open the generated copy in the requested register.
var tonePrefixes = map[string]string{
	"warm":         "Made with care and meant to be loved:",
	"professional": "Crafted to a professional standard:",
	"playful":      "Here's something a little special:",
}

const defaultTonePrefix = "Handcrafted and one of a kind:"

// TemplateGenerator implements service.ContentGenerator.
type TemplateGenerator struct{}

var _ service.ContentGenerator = (*TemplateGenerator)(nil)

// NewTemplateGenerator builds the generator.
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

// Generate renders marketing copy around the prompt. The context is
// honored so callers can cancel, although generation itself is local.
func (g *TemplateGenerator) Generate(ctx context.Context, prompt string, params service.GenerationParams) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Wrap(err, "generation cancelled")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	prefix, ok := tonePrefixes[strings.ToLower(params.Tone)]
	if !ok {
		prefix = defaultTonePrefix
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString(" ")
	sb.WriteString(prompt)
	if params.Audience != "" {
		sb.WriteString(" Perfect for ")
		sb.WriteString(params.Audience)
		sb.WriteString(".")
	}

	return truncateWords(sb.String(), params.MaxWords), nil
}

// truncateWords bounds the output; zero means no limit.
func truncateWords(text string, maxWords int) string {
	if maxWords <= 0 {
		return text
	}

	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text
	}

	return strings.Join(words[:maxWords], " ")
}
