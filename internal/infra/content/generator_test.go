package content

import (
	"context"
	"strings"
	"testing"

	"truecraft/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateGenerator_Generate_WrapsPrompt(t *testing.T) {
	g := NewTemplateGenerator()

	text, err := g.Generate(context.Background(),
		"A hand-thrown ceramic mug with a speckled glaze.",
		service.GenerationParams{Tone: "warm", Audience: "coffee lovers"})
	require.NoError(t, err)
	assert.Contains(t, text, "ceramic mug")
	assert.Contains(t, text, "coffee lovers")
	assert.True(t, strings.HasPrefix(text, "Made with care"))
}

func TestTemplateGenerator_Generate_RejectsEmptyPrompt(t *testing.T) {
	g := NewTemplateGenerator()

	_, err := g.Generate(context.Background(), "  ", service.GenerationParams{})
	assert.Error(t, err)
}

func TestTemplateGenerator_Generate_EnforcesWordLimit(t *testing.T) {
	g := NewTemplateGenerator()

	text, err := g.Generate(context.Background(),
		"one two three four five six seven eight nine ten",
		service.GenerationParams{MaxWords: 5})
	require.NoError(t, err)
	assert.Len(t, strings.Fields(text), 5)
}

func TestTemplateGenerator_Generate_HonorsCancellation(t *testing.T) {
	g := NewTemplateGenerator()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Generate(ctx, "prompt", service.GenerationParams{})
	assert.Error(t, err)
}
