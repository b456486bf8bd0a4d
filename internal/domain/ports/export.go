package ports

import (
	"context"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
)

// ExportFormat identifies a deck output format.
type ExportFormat string

const (
	FormatMarkdown ExportFormat = "markdown"
	FormatJSON     ExportFormat = "json"
	FormatPDF      ExportFormat = "pdf"
)

// DeckRenderer renders a finalized presentation into one output format.
// Renderers produce bytes; writing files is the export service's job.
type DeckRenderer interface {
	Render(ctx context.Context, presentation *entities.Presentation) ([]byte, error)

	// Extension returns the file extension for this renderer (e.g. ".md").
	Extension() string

	// Supports reports whether this renderer handles the given format.
	Supports(format ExportFormat) bool
}

// ExportResult describes a completed deck export.
type ExportResult struct {
	Format     ExportFormat `json:"format"`
	OutputPath string       `json:"output_path"`
	FileSize   int64        `json:"file_size"`
	SlideCount int          `json:"slide_count"`
}

// ExportService writes a presentation to disk in the requested format.
type ExportService interface {
	Export(ctx context.Context, presentation *entities.Presentation, format ExportFormat, outputPath string) (*ExportResult, error)
}
