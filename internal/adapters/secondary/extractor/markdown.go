package extractor

import (
	"bytes"
	"context"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
	"github.com/fredcamaral/decksmith/internal/domain/ports"
)

// MarkdownExtractor extracts slides from literal markdown text. The source
// is parsed once with goldmark and sliced at top-level heading boundaries,
// so a hash line inside a fenced code block can never open a slide. Level-1
// headings become slides; level-2 headings inside a slide's span become its
// subslides.
type MarkdownExtractor struct {
	md goldmark.Markdown
}

// NewMarkdownExtractor creates a markdown text extractor.
func NewMarkdownExtractor() *MarkdownExtractor {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)
	return &MarkdownExtractor{md: md}
}

// SourceType identifies the extractor family.
func (e *MarkdownExtractor) SourceType() entities.SourceType {
	return entities.SourceMarkdown
}

// Extract splits the markdown document into slides. Document frontmatter is
// stripped and attached as the first slide's metadata; content before the
// first level-1 heading has no slide to belong to and is dropped.
func (e *MarkdownExtractor) Extract(ctx context.Context, doc entities.SourceDocument) ([]entities.Slide, error) {
	content := normalizeNewlines(doc.Content)
	frontmatter, remaining := extractFrontmatter(content)

	boundaries := e.headingBoundaries(remaining)
	slides := buildSlides(remaining, boundaries)

	if len(slides) > 0 && len(frontmatter) > 0 {
		slides[0].Metadata = frontmatter
	}
	return slides, nil
}

// headingBoundary is one top-level heading located in the source.
type headingBoundary struct {
	level int
	title string
	start int // byte offset of the heading's line start
}

// headingBoundaries collects level-1 and level-2 headings that are direct
// children of the document. Headings nested in quotes or lists do not split
// slides, and a heading with no text is not a boundary.
func (e *MarkdownExtractor) headingBoundaries(src []byte) []headingBoundary {
	root := e.md.Parser().Parse(text.NewReader(src))

	var boundaries []headingBoundary
	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		heading, ok := child.(*ast.Heading)
		if !ok || heading.Level > 2 {
			continue
		}
		title := nodeText(heading, src)
		if title == "" || heading.Lines().Len() == 0 {
			continue
		}
		boundaries = append(boundaries, headingBoundary{
			level: heading.Level,
			title: title,
			start: lineStart(src, heading.Lines().At(0).Start),
		})
	}
	return boundaries
}

// buildSlides slices the raw source between level-1 boundaries. The slice is
// kept verbatim, light restructuring only: the markdown the author wrote is
// the slide body.
func buildSlides(src []byte, boundaries []headingBoundary) []entities.Slide {
	var slides []entities.Slide
	for i, boundary := range boundaries {
		if boundary.level != 1 {
			continue
		}
		slides = append(slides, buildSlide(src, boundaries, i))
	}
	return slides
}

func buildSlide(src []byte, boundaries []headingBoundary, idx int) entities.Slide {
	spanEnd := spanEndOf(boundaries, idx, len(src))

	bodyEnd := spanEnd
	var subslides []entities.Slide
	for j := idx + 1; j < len(boundaries) && boundaries[j].start < spanEnd; j++ {
		if boundaries[j].level != 2 {
			continue
		}
		if len(subslides) == 0 {
			bodyEnd = boundaries[j].start
		}
		// Subslides bypass normalization, so their source tag is set here.
		subslides = append(subslides, entities.Slide{
			Title:      boundaries[j].title,
			Content:    strings.TrimSpace(string(src[boundaries[j].start:subSpanEnd(boundaries, j, spanEnd)])),
			SourceType: entities.SourceMarkdown,
		})
	}

	return entities.Slide{
		Title:     boundaries[idx].title,
		Content:   strings.TrimSpace(string(src[boundaries[idx].start:bodyEnd])),
		Subslides: subslides,
	}
}

// spanEndOf finds where the level-1 span opened at idx ends: the next
// level-1 boundary, or the end of the document.
func spanEndOf(boundaries []headingBoundary, idx int, docEnd int) int {
	for j := idx + 1; j < len(boundaries); j++ {
		if boundaries[j].level == 1 {
			return boundaries[j].start
		}
	}
	return docEnd
}

// subSpanEnd finds where the level-2 span opened at j ends: the next
// boundary of either level, capped at the parent span's end.
func subSpanEnd(boundaries []headingBoundary, j int, spanEnd int) int {
	if j+1 < len(boundaries) && boundaries[j+1].start < spanEnd {
		return boundaries[j+1].start
	}
	return spanEnd
}

// nodeText flattens the text segments under an AST node.
func nodeText(node ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			sb.Write(t.Segment.Value(src))
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

// lineStart backs up from the offset to the start of its line.
func lineStart(src []byte, offset int) int {
	for offset > 0 && src[offset-1] != '\n' {
		offset--
	}
	return offset
}

func normalizeNewlines(content []byte) []byte {
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
}

// extractFrontmatter strips a leading YAML frontmatter fence and returns the
// parsed metadata with the remaining source. Content without a complete,
// parseable fence is returned untouched.
func extractFrontmatter(content []byte) (map[string]interface{}, []byte) {
	if !bytes.HasPrefix(content, []byte("---\n")) {
		return nil, content
	}

	lines := bytes.Split(content, []byte("\n"))
	closing := -1
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			closing = i
			break
		}
	}
	if closing == -1 {
		return nil, content
	}

	var frontmatter map[string]interface{}
	block := bytes.Join(lines[1:closing], []byte("\n"))
	if err := yaml.Unmarshal(block, &frontmatter); err != nil {
		return nil, content
	}

	return frontmatter, bytes.Join(lines[closing+1:], []byte("\n"))
}

// Ensure MarkdownExtractor implements ports.ContentExtractor
var _ ports.ContentExtractor = (*MarkdownExtractor)(nil)
