package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
)

func TestNormalizer_Normalize(t *testing.T) {
	normalizer := NewNormalizer()

	t.Run("empty title defaults to Untitled Slide", func(t *testing.T) {
		slides := []entities.Slide{{Title: "", Content: "body"}}

		got := normalizer.Normalize(slides, entities.SourceNotion)

		require.Len(t, got, 1)
		assert.Equal(t, entities.DefaultSlideTitle, got[0].Title)
	})

	t.Run("whitespace title defaults too", func(t *testing.T) {
		slides := []entities.Slide{{Title: "  \t "}}

		got := normalizer.Normalize(slides, entities.SourceNotion)

		assert.Equal(t, entities.DefaultSlideTitle, got[0].Title)
	})

	t.Run("missing content stays empty string", func(t *testing.T) {
		slides := []entities.Slide{{Title: "Has Title"}}

		got := normalizer.Normalize(slides, entities.SourceMarkdown)

		assert.Equal(t, "", got[0].Content)
	})

	t.Run("document source stamped when slide carries none", func(t *testing.T) {
		slides := []entities.Slide{
			{Title: "Tagless"},
			{Title: "Tagged", SourceType: entities.SourceUpgrade},
		}

		got := normalizer.Normalize(slides, entities.SourceNotion)

		assert.Equal(t, entities.SourceNotion, got[0].SourceType)
		assert.Equal(t, entities.SourceUpgrade, got[1].SourceType, "own tag is preserved")
	})

	t.Run("ids assigned once", func(t *testing.T) {
		slides := []entities.Slide{
			{Title: "Fresh"},
			{ID: "existing-id", Title: "Existing"},
		}

		got := normalizer.Normalize(slides, entities.SourceMarkdown)

		assert.NotEmpty(t, got[0].ID)
		assert.Equal(t, "existing-id", got[1].ID)
	})

	t.Run("subslides pass through untouched", func(t *testing.T) {
		slides := []entities.Slide{
			{
				Title: "Parent",
				Subslides: []entities.Slide{
					{Title: "", Content: "nested"},
				},
			},
		}

		got := normalizer.Normalize(slides, entities.SourceMarkdown)

		require.Len(t, got[0].Subslides, 1)
		// No recursive re-normalization: the nested title stays as extracted.
		assert.Equal(t, "", got[0].Subslides[0].Title)
		assert.Equal(t, "nested", got[0].Subslides[0].Content)
	})

	t.Run("input slides are not mutated", func(t *testing.T) {
		slides := []entities.Slide{{Title: ""}}

		_ = normalizer.Normalize(slides, entities.SourceNotion)

		assert.Equal(t, "", slides[0].Title)
		assert.Empty(t, slides[0].ID)
		assert.Empty(t, slides[0].SourceType)
	})

	t.Run("order preserved", func(t *testing.T) {
		slides := []entities.Slide{
			{Title: "One"}, {Title: "Two"}, {Title: "Three"},
		}

		got := normalizer.Normalize(slides, entities.SourceMarkdown)

		require.Len(t, got, 3)
		assert.Equal(t, "One", got[0].Title)
		assert.Equal(t, "Two", got[1].Title)
		assert.Equal(t, "Three", got[2].Title)
	})

	t.Run("nil input yields nil", func(t *testing.T) {
		assert.Nil(t, normalizer.Normalize(nil, entities.SourceMarkdown))
	})
}
