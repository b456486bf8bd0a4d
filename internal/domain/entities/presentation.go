package entities

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Presentation is the immutable aggregate produced by one extraction run.
// It is constructed exactly once from a finalized slide list and never
// mutated afterwards; downstream consumers work from Snapshot copies.
type Presentation struct {
	id         string
	title      string
	sourceType SourceType
	slides     []Slide
	slideCount int
}

// PresentationSnapshot is the plain serializable form of a Presentation,
// handed to storage and callers. It carries data only, no behavior.
type PresentationSnapshot struct {
	ID         string     `json:"id,omitempty"`
	Title      string     `json:"title"`
	SourceType SourceType `json:"source_type"`
	SlideCount int        `json:"slide_count"`
	Slides     []Slide    `json:"slides"`
}

// NewPresentation builds a Presentation from a finalized slide list. An empty
// list is a terminal error, never a valid presentation. The slide list is
// deep-copied so later changes to the caller's slice cannot leak in. Title
// and slide count are computed here and never recomputed.
func NewPresentation(slides []Slide, source SourceType) (*Presentation, error) {
	if len(slides) == 0 {
		return nil, ErrEmptyPresentation
	}

	for i := range slides {
		if err := slides[i].Validate(); err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
	}

	copied := CloneSlides(slides)

	return &Presentation{
		id:         uuid.NewString(),
		title:      copied[0].Title,
		sourceType: source,
		slides:     copied,
		slideCount: len(copied),
	}, nil
}

// RestorePresentation rebuilds a Presentation from its snapshot form,
// keeping the recorded identity instead of minting a new one. Snapshots
// from older runs may carry an empty ID; one is assigned then.
func RestorePresentation(snapshot PresentationSnapshot) (*Presentation, error) {
	if len(snapshot.Slides) == 0 {
		return nil, ErrEmptyPresentation
	}

	for i := range snapshot.Slides {
		if err := snapshot.Slides[i].Validate(); err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
	}

	id := snapshot.ID
	if id == "" {
		id = uuid.NewString()
	}

	copied := CloneSlides(snapshot.Slides)

	return &Presentation{
		id:         id,
		title:      copied[0].Title,
		sourceType: snapshot.SourceType,
		slides:     copied,
		slideCount: len(copied),
	}, nil
}

// ID returns the presentation's unique identifier.
func (p *Presentation) ID() string {
	return p.id
}

// Title returns the derived presentation title (the first slide's title).
func (p *Presentation) Title() string {
	return p.title
}

// SourceType returns the detected source for the whole document.
func (p *Presentation) SourceType() SourceType {
	return p.sourceType
}

// SlideCount returns the number of slides, fixed at construction.
func (p *Presentation) SlideCount() int {
	return p.slideCount
}

// Slides returns a deep copy of the slide list.
func (p *Presentation) Slides() []Slide {
	return CloneSlides(p.slides)
}

// Slide returns a copy of the slide at the given 0-based index.
func (p *Presentation) Slide(index int) (Slide, error) {
	if index < 0 || index >= len(p.slides) {
		return Slide{}, fmt.Errorf("slide index %d out of range (0-%d)", index, len(p.slides)-1)
	}
	return p.slides[index].Clone(), nil
}

// Snapshot returns the plain data form handed across the persistence and
// caller boundaries.
func (p *Presentation) Snapshot() PresentationSnapshot {
	return PresentationSnapshot{
		ID:         p.id,
		Title:      p.title,
		SourceType: p.sourceType,
		SlideCount: p.slideCount,
		Slides:     CloneSlides(p.slides),
	}
}

// MarshalJSON serializes the presentation through its snapshot form.
func (p *Presentation) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Snapshot())
}
