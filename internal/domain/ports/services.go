package ports

import (
	"context"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
)

// ExtractionService is the sole entry point callers use to turn a source
// document into a slide deck. It never panics and never returns a raw error;
// every failure is folded into the ExtractionResult envelope.
type ExtractionService interface {
	ExtractContent(ctx context.Context, doc entities.SourceDocument) *entities.ExtractionResult
}

// PreviewRenderer renders a presentation into a self-contained HTML page for
// the local preview server.
type PreviewRenderer interface {
	RenderPage(presentation *entities.Presentation) ([]byte, error)
}

// PageImporter fetches a web page and converts its main content into a
// markdown deck source that the markdown extractor can consume.
type PageImporter interface {
	Import(ctx context.Context, url string) ([]byte, error)
}
