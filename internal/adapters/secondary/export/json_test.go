package export

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
	"github.com/fredcamaral/decksmith/internal/domain/ports"
)

func TestJSONRenderer_Render(t *testing.T) {
	t.Run("round-trips through the snapshot shape", func(t *testing.T) {
		presentation := testPresentation(t)

		data, err := NewJSONRenderer().Render(context.Background(), presentation)
		require.NoError(t, err)

		var snapshot entities.PresentationSnapshot
		require.NoError(t, json.Unmarshal(data, &snapshot))

		assert.Equal(t, presentation.ID(), snapshot.ID)
		assert.Equal(t, "Quarterly Report", snapshot.Title)
		assert.Equal(t, entities.SourceMarkdown, snapshot.SourceType)
		assert.Equal(t, 2, snapshot.SlideCount)
		require.Len(t, snapshot.Slides, 2)
		assert.Equal(t, "slide-2", snapshot.Slides[1].ID)
		assert.Equal(t, "# Numbers\n\nUp and to the right.", snapshot.Slides[1].Content)
	})

	t.Run("output is indented and newline terminated", func(t *testing.T) {
		data, err := NewJSONRenderer().Render(context.Background(), testPresentation(t))
		require.NoError(t, err)

		assert.True(t, strings.HasSuffix(string(data), "}\n"))
		assert.Contains(t, string(data), "\n  \"title\"")
	})

	t.Run("nil presentation", func(t *testing.T) {
		_, err := NewJSONRenderer().Render(context.Background(), nil)
		assert.Error(t, err)
	})
}

func TestJSONRenderer_Supports(t *testing.T) {
	renderer := NewJSONRenderer()

	assert.True(t, renderer.Supports(ports.FormatJSON))
	assert.False(t, renderer.Supports(ports.FormatMarkdown))
	assert.Equal(t, ".json", renderer.Extension())
}
