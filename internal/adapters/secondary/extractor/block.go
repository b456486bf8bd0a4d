// Package extractor turns source documents into slide sequences. Each
// concrete extractor classifies the document's blocks, synthesizes a
// canonical markdown fragment per block, and assembles slides at level-1
// heading boundaries.
package extractor

import "strings"

// BlockType identifies one supported block category.
type BlockType int

const (
	// BlockSkip marks a node that contributes nothing to the slide body.
	BlockSkip BlockType = iota
	BlockHeading1
	BlockHeading2
	BlockHeading3
	BlockList
	BlockCode
	BlockQuote
	BlockDivider
	BlockImage
	BlockTable
	BlockParagraph
)

// String returns a human-readable name for the block type.
func (t BlockType) String() string {
	switch t {
	case BlockSkip:
		return "skip"
	case BlockHeading1:
		return "heading1"
	case BlockHeading2:
		return "heading2"
	case BlockHeading3:
		return "heading3"
	case BlockList:
		return "list"
	case BlockCode:
		return "code"
	case BlockQuote:
		return "quote"
	case BlockDivider:
		return "divider"
	case BlockImage:
		return "image"
	case BlockTable:
		return "table"
	case BlockParagraph:
		return "paragraph"
	default:
		return "unknown"
	}
}

// Block is one classified unit of document content, carrying everything
// markdown synthesis needs for its type.
type Block struct {
	Type     BlockType
	Text     string     // flattened text content
	Language string     // code blocks only, may be empty
	ImageURL string     // image blocks only
	ImageAlt string     // image blocks only, caption preferred over alt attribute
	Rows     [][]string // table blocks only, row-major cell text
}

// Markdown synthesizes the canonical markdown fragment for the block. A
// block that synthesizes to an empty or whitespace-only string contributes
// no fragment; callers must drop it rather than append a blank line.
func (b Block) Markdown() string {
	switch b.Type {
	case BlockHeading1:
		return "# " + strings.TrimSpace(b.Text)
	case BlockHeading2:
		return "## " + strings.TrimSpace(b.Text)
	case BlockHeading3:
		return "### " + strings.TrimSpace(b.Text)
	case BlockList:
		// The whole list block collapses to a single bullet line; nested
		// hierarchy is not recovered.
		return "- " + flattenText(b.Text)
	case BlockCode:
		return "```" + b.Language + "\n" + strings.TrimRight(b.Text, "\n") + "\n```"
	case BlockQuote:
		return quoteLines(b.Text)
	case BlockDivider:
		return "---"
	case BlockImage:
		if b.ImageURL == "" {
			return ""
		}
		return "![" + b.ImageAlt + "](" + b.ImageURL + ")"
	case BlockTable:
		return tableMarkdown(b.Rows)
	case BlockParagraph:
		text := strings.TrimSpace(b.Text)
		if text == "" || startsWithHeadingMarker(text) {
			return ""
		}
		return text
	default:
		return ""
	}
}

// flattenText collapses all runs of whitespace, including newlines, into
// single spaces.
func flattenText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// quoteLines prefixes every non-empty line of the quoted text with "> ".
func quoteLines(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lines = append(lines, "> "+trimmed)
	}
	return strings.Join(lines, "\n")
}

// tableMarkdown renders one pipe-delimited line per row with a header
// separator after the first row. Literal pipes inside cells are escaped so
// they cannot be read as column delimiters.
func tableMarkdown(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, row := range rows {
		sb.WriteString(tableRow(row))
		if i == 0 {
			sb.WriteString("\n")
			sb.WriteString(separatorRow(len(row)))
		}
		if i < len(rows)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func tableRow(cells []string) string {
	escaped := make([]string, len(cells))
	for i, cell := range cells {
		escaped[i] = strings.ReplaceAll(strings.TrimSpace(cell), "|", "\\|")
	}
	return "| " + strings.Join(escaped, " | ") + " |"
}

func separatorRow(cols int) string {
	dashes := make([]string, cols)
	for i := range dashes {
		dashes[i] = "---"
	}
	return "| " + strings.Join(dashes, " | ") + " |"
}

// startsWithHeadingMarker reports whether the text begins with a literal
// markdown ATX heading marker (1-6 hashes followed by a space).
func startsWithHeadingMarker(s string) bool {
	i := 0
	for i < len(s) && i < 6 && s[i] == '#' {
		i++
	}
	return i > 0 && i < len(s) && s[i] == ' '
}
