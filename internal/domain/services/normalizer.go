package services

import (
	"strings"

	"github.com/google/uuid"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
)

// Normalizer fills the gaps extractors are allowed to leave behind: missing
// titles, missing source tags, missing IDs. It is a pure mapping over the
// raw slide list; the input is never mutated.
type Normalizer struct{}

// NewNormalizer creates a content normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize returns a normalized copy of the raw slides. Every returned
// slide has a non-empty title, a source type (the document-level one unless
// the slide already carried its own), and an ID. Content stays exactly as
// extracted; an absent body is the empty string. Subslides pass through
// untouched.
func (n *Normalizer) Normalize(slides []entities.Slide, source entities.SourceType) []entities.Slide {
	if len(slides) == 0 {
		return nil
	}

	out := make([]entities.Slide, len(slides))
	for i := range slides {
		slide := slides[i].Clone()

		if strings.TrimSpace(slide.Title) == "" {
			slide.Title = entities.DefaultSlideTitle
		}

		if slide.SourceType == "" {
			slide.SourceType = source
		}

		if slide.ID == "" {
			slide.ID = uuid.NewString()
		}

		out[i] = slide
	}

	return out
}
