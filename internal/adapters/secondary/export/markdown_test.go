package export

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
	"github.com/fredcamaral/decksmith/internal/domain/ports"
)

func fixedClockRenderer() *MarkdownRenderer {
	renderer := NewMarkdownRenderer()
	renderer.clock = func() time.Time {
		return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return renderer
}

func TestMarkdownRenderer_Render(t *testing.T) {
	t.Run("renders frontmatter and separated sections", func(t *testing.T) {
		presentation, err := entities.NewPresentation([]entities.Slide{
			{ID: "slide-1", Title: "Intro", Content: "# Intro\n\nWelcome.", SourceType: entities.SourceMarkdown},
			{
				ID:         "slide-2",
				Title:      "Details",
				Content:    "# Details\n\nLead-in text.",
				SourceType: entities.SourceMarkdown,
				Subslides: []entities.Slide{
					{ID: "slide-2-1", Title: "Numbers", Content: "## Numbers\n\nUp.", SourceType: entities.SourceMarkdown},
				},
			},
		}, entities.SourceMarkdown)
		require.NoError(t, err)

		data, err := fixedClockRenderer().Render(context.Background(), presentation)
		require.NoError(t, err)

		expected := `---
title: "Intro"
source: markdown
slides: 2
exported: 2025-03-01T12:00:00Z
generator: decksmith
---

# Intro

Welcome.

---

# Details

Lead-in text.

## Numbers

Up.
`
		assert.Equal(t, expected, string(data))
	})

	t.Run("output re-imports as the same deck shape", func(t *testing.T) {
		presentation, err := entities.NewPresentation([]entities.Slide{
			{ID: "slide-1", Title: "One", Content: "# One\n\nFirst.", SourceType: entities.SourceMarkdown},
			{ID: "slide-2", Title: "Two", Content: "# Two\n\nSecond.", SourceType: entities.SourceMarkdown},
			{ID: "slide-3", Title: "Three", Content: "# Three\n\nThird.", SourceType: entities.SourceMarkdown},
		}, entities.SourceMarkdown)
		require.NoError(t, err)

		data, err := fixedClockRenderer().Render(context.Background(), presentation)
		require.NoError(t, err)

		// One level-one heading per slide and separators between sections.
		// Slide separators sit after a blank line; the frontmatter fence
		// does not.
		assert.Equal(t, 3, strings.Count(string(data), "\n# "))
		assert.Equal(t, 2, strings.Count(string(data), "\n\n---\n\n"))
	})

	t.Run("nil presentation", func(t *testing.T) {
		_, err := fixedClockRenderer().Render(context.Background(), nil)
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		presentation, err := entities.NewPresentation([]entities.Slide{
			{ID: "slide-1", Title: "Intro", Content: "# Intro", SourceType: entities.SourceMarkdown},
		}, entities.SourceMarkdown)
		require.NoError(t, err)

		_, err = fixedClockRenderer().Render(ctx, presentation)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestMarkdownRenderer_Supports(t *testing.T) {
	renderer := NewMarkdownRenderer()

	assert.True(t, renderer.Supports(ports.FormatMarkdown))
	assert.False(t, renderer.Supports(ports.FormatPDF))
	assert.False(t, renderer.Supports(ports.FormatJSON))
	assert.Equal(t, ".md", renderer.Extension())
}
