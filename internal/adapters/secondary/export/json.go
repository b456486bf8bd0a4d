package export

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
	"github.com/fredcamaral/decksmith/internal/domain/ports"
)

// JSONRenderer serializes a deck as indented JSON, in the same snapshot
// shape the HTTP API serves.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSON renderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render produces the JSON document for the deck.
func (r *JSONRenderer) Render(ctx context.Context, presentation *entities.Presentation) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if presentation == nil {
		return nil, fmt.Errorf("nil presentation")
	}

	data, err := json.MarshalIndent(presentation.Snapshot(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling presentation: %w", err)
	}
	return append(data, '\n'), nil
}

// Extension returns the file extension for JSON exports.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// Supports reports whether this renderer handles the given format.
func (r *JSONRenderer) Supports(format ports.ExportFormat) bool {
	return format == ports.FormatJSON
}

// Ensure JSONRenderer implements ports.DeckRenderer
var _ ports.DeckRenderer = (*JSONRenderer)(nil)
