package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
	"github.com/fredcamaral/decksmith/internal/domain/ports"
)

// PDFRenderer lays a deck out as an A4 portrait document, one page per
// slide. Bodies are typeset line by line from the canonical markdown:
// headings bold, fenced code in Courier, everything else Helvetica.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDF renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render produces the PDF bytes for the deck.
func (r *PDFRenderer) Render(ctx context.Context, presentation *entities.Presentation) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if presentation == nil {
		return nil, fmt.Errorf("nil presentation")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetTitle(presentation.Title(), true)

	for _, slide := range presentation.Slides() {
		r.addSlidePage(pdf, slide)
		for _, sub := range slide.Subslides {
			r.addSlidePage(pdf, sub)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("generating PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF exports.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// Supports reports whether this renderer handles the given format.
func (r *PDFRenderer) Supports(format ports.ExportFormat) bool {
	return format == ports.FormatPDF
}

func (r *PDFRenderer) addSlidePage(pdf *gofpdf.Fpdf, slide entities.Slide) {
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, slide.Title)
	pdf.Ln(15)

	inCode := false
	for _, line := range strings.Split(slide.Content, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "```"):
			inCode = !inCode
		case inCode:
			r.writeLines(pdf, "Courier", "", 10, 6, splitLongLines(line, 80))
		case trimmed == "":
			pdf.Ln(4)
		case trimmed == "# "+slide.Title:
			// The title line is already typeset as the page heading.
		case strings.HasPrefix(trimmed, "### "):
			r.writeLines(pdf, "Helvetica", "B", 12, 8, splitLongLines(strings.TrimPrefix(trimmed, "### "), 90))
		case strings.HasPrefix(trimmed, "## "):
			r.writeLines(pdf, "Helvetica", "B", 14, 9, splitLongLines(strings.TrimPrefix(trimmed, "## "), 85))
		default:
			r.writeLines(pdf, "Helvetica", "", 12, 8, splitLongLines(cleanTextForPDF(trimmed), 90))
		}
	}
}

func (r *PDFRenderer) writeLines(pdf *gofpdf.Fpdf, family, style string, size, height float64, lines []string) {
	pdf.SetFont(family, style, size)
	for _, line := range lines {
		pdf.Cell(0, height, line)
		pdf.Ln(height)
	}
}

// cleanTextForPDF strips inline markdown markers that would read as noise in
// flat PDF text. Fenced code never passes through here.
func cleanTextForPDF(text string) string {
	replacer := strings.NewReplacer("**", "", "__", "", "`", "")
	return strings.TrimSpace(replacer.Replace(text))
}

// splitLongLines word-wraps text to the given character limit so slide
// bodies fit the page width.
func splitLongLines(text string, maxChars int) []string {
	if len(text) <= maxChars {
		return []string{text}
	}

	var lines []string
	var current strings.Builder
	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && current.Len()+len(word)+1 > maxChars {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

// Ensure PDFRenderer implements ports.DeckRenderer
var _ ports.DeckRenderer = (*PDFRenderer)(nil)
