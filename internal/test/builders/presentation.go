package builders

import (
	"fmt"
	"strconv"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
)

// SlideBuilder helps build Slide entities for testing
type SlideBuilder struct {
	slide entities.Slide
}

// NewSlideBuilder creates a new slide builder with sensible defaults
func NewSlideBuilder() *SlideBuilder {
	return &SlideBuilder{
		slide: entities.Slide{
			ID:         "slide-1",
			Title:      "Test Slide",
			Content:    "# Test Slide\n\nTest content.",
			SourceType: entities.SourceMarkdown,
		},
	}
}

// WithID sets the slide ID
func (b *SlideBuilder) WithID(id int) *SlideBuilder {
	b.slide.ID = "slide-" + strconv.Itoa(id)
	return b
}

// WithTitle sets the slide title and a matching content body
func (b *SlideBuilder) WithTitle(title string) *SlideBuilder {
	b.slide.Title = title
	b.slide.Content = "# " + title + "\n\nTest content."
	return b
}

// WithContent sets the slide markdown body
func (b *SlideBuilder) WithContent(content string) *SlideBuilder {
	b.slide.Content = content
	return b
}

// WithSourceType sets where the slide's content came from
func (b *SlideBuilder) WithSourceType(source entities.SourceType) *SlideBuilder {
	b.slide.SourceType = source
	return b
}

// WithMetadata sets custom metadata
func (b *SlideBuilder) WithMetadata(key string, value interface{}) *SlideBuilder {
	if b.slide.Metadata == nil {
		b.slide.Metadata = make(map[string]interface{})
	}
	b.slide.Metadata[key] = value
	return b
}

// WithSubslide appends a nested vertical slide
func (b *SlideBuilder) WithSubslide(slide entities.Slide) *SlideBuilder {
	b.slide.Subslides = append(b.slide.Subslides, slide)
	return b
}

// Build creates the final Slide entity
func (b *SlideBuilder) Build() entities.Slide {
	return b.slide.Clone()
}

// PresentationBuilder helps build Presentation entities for testing
type PresentationBuilder struct {
	slides []entities.Slide
	source entities.SourceType
	title  string
}

// NewPresentationBuilder creates a new presentation builder with sensible defaults
func NewPresentationBuilder() *PresentationBuilder {
	return &PresentationBuilder{
		source: entities.SourceMarkdown,
	}
}

// WithTitle retitles the first slide at build time; a deck's title is
// always its first slide's title
func (b *PresentationBuilder) WithTitle(title string) *PresentationBuilder {
	b.title = title
	return b
}

// WithSource sets the deck source type
func (b *PresentationBuilder) WithSource(source entities.SourceType) *PresentationBuilder {
	b.source = source
	return b
}

// WithSlides sets the presentation slides
func (b *PresentationBuilder) WithSlides(slides []entities.Slide) *PresentationBuilder {
	b.slides = entities.CloneSlides(slides)
	return b
}

// WithSlide adds a single slide to the presentation
func (b *PresentationBuilder) WithSlide(slide entities.Slide) *PresentationBuilder {
	b.slides = append(b.slides, slide)
	return b
}

// WithSlideCount adds the specified number of default slides
func (b *PresentationBuilder) WithSlideCount(count int) *PresentationBuilder {
	for i := 0; i < count; i++ {
		n := len(b.slides) + 1
		slide := NewSlideBuilder().
			WithID(n).
			WithTitle("Slide " + strconv.Itoa(n)).
			Build()
		b.slides = append(b.slides, slide)
	}
	return b
}

// Build creates the final Presentation entity. An invalid combination
// panics; in the test fixtures this package serves, that is an immediate
// and loud failure.
func (b *PresentationBuilder) Build() *entities.Presentation {
	slides := entities.CloneSlides(b.slides)
	if b.title != "" && len(slides) > 0 {
		slides[0].Title = b.title
		slides[0].Content = "# " + b.title + "\n\nTest content."
	}

	presentation, err := entities.NewPresentation(slides, b.source)
	if err != nil {
		panic(fmt.Sprintf("builders: invalid presentation: %v", err))
	}
	return presentation
}

// Common presentation shapes for testing

// MinimalPresentation creates a single-slide presentation for basic tests
func MinimalPresentation() *entities.Presentation {
	return NewPresentationBuilder().
		WithTitle("Minimal").
		WithSlideCount(1).
		Build()
}

// LargePresentation creates a presentation with many slides for limiter and
// performance oriented tests
func LargePresentation() *entities.Presentation {
	return NewPresentationBuilder().
		WithTitle("Large Presentation").
		WithSlideCount(50).
		Build()
}

// CappedPresentation creates a presentation in the shape the free-tier
// limiter produces: capped slides followed by one upgrade slide
func CappedPresentation(capped int) *entities.Presentation {
	builder := NewPresentationBuilder().WithSlideCount(capped)
	upgrade := NewSlideBuilder().
		WithID(capped + 1).
		WithTitle("Unlock the Full Deck").
		WithSourceType(entities.SourceUpgrade).
		Build()
	return builder.WithSlide(upgrade).Build()
}
