package entities

import (
	"errors"
	"strings"
)

// DefaultSlideTitle is the title stamped onto slides that arrive from an
// extractor without one.
const DefaultSlideTitle = "Untitled Slide"

// Slide represents a single self-contained presentation unit. Content holds
// the canonical markdown body synthesized during extraction; it may be empty
// but is never conceptually "missing".
type Slide struct {
	// ID is a unique identifier assigned during normalization
	ID string `json:"id,omitempty"`

	// Title is the slide title; never empty after normalization
	Title string `json:"title"`

	// Content is the canonical markdown body
	Content string `json:"content"`

	// SourceType records where this slide's content came from
	SourceType SourceType `json:"source_type,omitempty"`

	// Metadata is passed through the pipeline untouched
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// Subslides holds nested vertical slides for sources that support
	// nested sectioning; nil for flat sources
	Subslides []Slide `json:"subslides,omitempty"`
}

// Validate ensures the slide satisfies the post-normalization invariants.
func (s *Slide) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return errors.New("slide title cannot be empty")
	}

	if !s.SourceType.Valid() {
		return errors.New("slide source type is not a known value")
	}

	for i := range s.Subslides {
		if err := s.Subslides[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}

// IsUpgrade reports whether this is the synthetic upgrade slide appended by
// the free-tier limiter.
func (s *Slide) IsUpgrade() bool {
	return s.SourceType == SourceUpgrade
}

// HasSubslides reports whether the slide carries a nested vertical stack.
func (s *Slide) HasSubslides() bool {
	return len(s.Subslides) > 0
}

// Clone returns a deep copy of the slide, including metadata and subslides.
func (s *Slide) Clone() Slide {
	out := *s

	if s.Metadata != nil {
		out.Metadata = make(map[string]interface{}, len(s.Metadata))
		for k, v := range s.Metadata {
			out.Metadata[k] = v
		}
	}

	if s.Subslides != nil {
		out.Subslides = make([]Slide, len(s.Subslides))
		for i := range s.Subslides {
			out.Subslides[i] = s.Subslides[i].Clone()
		}
	}

	return out
}

// CloneSlides deep-copies a slide list.
func CloneSlides(slides []Slide) []Slide {
	if slides == nil {
		return nil
	}

	out := make([]Slide, len(slides))
	for i := range slides {
		out[i] = slides[i].Clone()
	}

	return out
}
