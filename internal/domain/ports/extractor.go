package ports

import (
	"context"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
)

// ContentExtractor converts one source document into raw slides. Each
// implementation owns the markup conventions of a single source family and
// composes its own block classification, markdown synthesis, and slide
// assembly. Extraction is synchronous and side-effect-free; the context is
// carried for interface symmetry with the rest of the pipeline and checked
// only between slides.
type ContentExtractor interface {
	// Extract walks the document and produces raw slides in document order.
	// A document with no slide boundaries yields an empty slice and no error;
	// the pipeline maps that to entities.ErrNoSlides.
	Extract(ctx context.Context, doc entities.SourceDocument) ([]entities.Slide, error)

	// SourceType reports the source family this extractor handles.
	SourceType() entities.SourceType
}

// SourceDetector decides which extractor family applies to a document, or
// SourceUnknown when none does. Detection is pure: it inspects the locator
// and the raw content, and never performs I/O.
type SourceDetector interface {
	Detect(doc entities.SourceDocument) entities.SourceType
}

// ExtractorRegistry resolves a detected source type to its extractor.
type ExtractorRegistry interface {
	// Get returns the extractor for the source type, or an error wrapping
	// entities.ErrUnsupportedSource when none is registered.
	Get(source entities.SourceType) (ContentExtractor, error)
}
