package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
)

// stubExtractor is a minimal ContentExtractor for registry tests.
type stubExtractor struct {
	source entities.SourceType
	slides []entities.Slide
	err    error
}

func (s *stubExtractor) Extract(ctx context.Context, doc entities.SourceDocument) ([]entities.Slide, error) {
	return s.slides, s.err
}

func (s *stubExtractor) SourceType() entities.SourceType {
	return s.source
}

func TestRegistry_Get(t *testing.T) {
	notion := &stubExtractor{source: entities.SourceNotion}
	markdown := &stubExtractor{source: entities.SourceMarkdown}
	registry := NewRegistry(notion, markdown)

	t.Run("resolves registered extractors", func(t *testing.T) {
		got, err := registry.Get(entities.SourceNotion)
		require.NoError(t, err)
		assert.Same(t, notion, got)

		got, err = registry.Get(entities.SourceMarkdown)
		require.NoError(t, err)
		assert.Same(t, markdown, got)
	})

	t.Run("unregistered source fails explicitly", func(t *testing.T) {
		_, err := registry.Get(entities.SourceUpgrade)
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrUnsupportedSource)
	})
}

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()

	_, err := registry.Get(entities.SourceMarkdown)
	require.Error(t, err)

	extractor := &stubExtractor{source: entities.SourceMarkdown}
	registry.Register(extractor)

	got, err := registry.Get(entities.SourceMarkdown)
	require.NoError(t, err)
	assert.Same(t, extractor, got)

	// A nil extractor is ignored rather than registered.
	registry.Register(nil)
	assert.Len(t, registry.Sources(), 1)
}

func TestRegistry_ReplaceKeepsLatest(t *testing.T) {
	first := &stubExtractor{source: entities.SourceNotion}
	second := &stubExtractor{source: entities.SourceNotion}

	registry := NewRegistry(first, second)

	got, err := registry.Get(entities.SourceNotion)
	require.NoError(t, err)
	assert.Same(t, second, got)
}
