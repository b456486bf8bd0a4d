package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
	"github.com/fredcamaral/decksmith/internal/domain/ports"
)

// MarkdownRenderer writes a deck back out as a single markdown document.
// Slide bodies are already canonical markdown, so rendering is a matter of
// joining sections with slide separators; the output re-imports as the same
// deck.
type MarkdownRenderer struct {
	clock func() time.Time
}

// NewMarkdownRenderer creates a markdown renderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{clock: time.Now}
}

// Render produces the markdown document for the deck.
func (r *MarkdownRenderer) Render(ctx context.Context, presentation *entities.Presentation) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if presentation == nil {
		return nil, fmt.Errorf("nil presentation")
	}

	var sb strings.Builder
	r.writeFrontmatter(&sb, presentation)

	slides := presentation.Slides()
	for i, slide := range slides {
		if i > 0 {
			sb.WriteString("\n---\n\n")
		}
		sb.WriteString(slideSection(slide))
		sb.WriteString("\n")
	}

	return []byte(sb.String()), nil
}

// Extension returns the file extension for markdown exports.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// Supports reports whether this renderer handles the given format.
func (r *MarkdownRenderer) Supports(format ports.ExportFormat) bool {
	return format == ports.FormatMarkdown
}

func (r *MarkdownRenderer) writeFrontmatter(sb *strings.Builder, presentation *entities.Presentation) {
	sb.WriteString("---\n")
	fmt.Fprintf(sb, "title: %q\n", presentation.Title())
	fmt.Fprintf(sb, "source: %s\n", presentation.SourceType())
	fmt.Fprintf(sb, "slides: %d\n", presentation.SlideCount())
	fmt.Fprintf(sb, "exported: %s\n", r.clock().UTC().Format(time.RFC3339))
	sb.WriteString("generator: decksmith\n")
	sb.WriteString("---\n\n")
}

// slideSection renders one slide and its vertical stack as a markdown
// section. Subslide bodies already carry their level-two headings.
func slideSection(slide entities.Slide) string {
	parts := []string{strings.TrimSpace(slide.Content)}
	for _, sub := range slide.Subslides {
		if body := strings.TrimSpace(sub.Content); body != "" {
			parts = append(parts, body)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Ensure MarkdownRenderer implements ports.DeckRenderer
var _ ports.DeckRenderer = (*MarkdownRenderer)(nil)
