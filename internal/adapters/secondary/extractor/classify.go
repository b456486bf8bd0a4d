package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// classRule binds one exact CSS class token to a block type.
type classRule struct {
	class string
	typ   BlockType
}

// ClassTable is the ordered block vocabulary of one source platform. Rules
// are checked in order; heading levels are listed level 1 first so a node
// carrying several recognized classes resolves to exactly one level.
// Matching is by exact class token, never substring, so
// "sub_header" can never satisfy the "header" rule.
type ClassTable []classRule

// NotionClasses is the Notion block vocabulary. Table-of-contents blocks
// map to skip: their text would replay every heading of the page.
var NotionClasses = ClassTable{
	{"notion-header-block", BlockHeading1},
	{"notion-sub_header-block", BlockHeading2},
	{"notion-sub_sub_header-block", BlockHeading3},
	{"notion-bulleted_list-block", BlockList},
	{"notion-numbered_list-block", BlockList},
	{"notion-to_do-block", BlockList},
	{"notion-toggle-block", BlockList},
	{"notion-code-block", BlockCode},
	{"notion-quote-block", BlockQuote},
	{"notion-divider-block", BlockDivider},
	{"notion-image-block", BlockImage},
	{"notion-collection_view-block", BlockTable},
	{"notion-table-block", BlockTable},
	{"notion-table_of_contents-block", BlockSkip},
	{"notion-text-block", BlockParagraph},
}

// inlineTags are elements that never open a block of their own; a node whose
// children are all inline reads as a single paragraph.
var inlineTags = map[string]bool{
	"a": true, "abbr": true, "b": true, "br": true, "code": true,
	"em": true, "i": true, "mark": true, "s": true, "small": true,
	"span": true, "strong": true, "sub": true, "sup": true,
	"time": true, "u": true,
}

// Classifier decides which supported block type a DOM node represents.
// Native tag names are matched first, then the source's class vocabulary,
// so a real <h2> is never re-read through its class attribute.
type Classifier struct {
	classes ClassTable
}

// NewClassifier creates a classifier over the given class vocabulary.
func NewClassifier(classes ClassTable) *Classifier {
	return &Classifier{classes: classes}
}

// Classify returns the node's block. handled is false only for unrecognized
// wrapper nodes, which the caller should descend into instead of consuming;
// when handled is true the node's whole subtree is accounted for, even if
// the block is a skip.
func (c *Classifier) Classify(sel *goquery.Selection) (block Block, handled bool) {
	if block, ok := c.classifyTag(sel); ok {
		return block, true
	}
	if block, ok := c.classifyClass(sel); ok {
		return block, true
	}
	if onlyInlineChildren(sel) {
		return paragraphBlock(sel.Text()), true
	}
	return Block{Type: BlockSkip}, false
}

// classifyTag matches standard HTML block elements by tag name.
func (c *Classifier) classifyTag(sel *goquery.Selection) (Block, bool) {
	switch goquery.NodeName(sel) {
	case "h1":
		return textBlock(BlockHeading1, sel.Text()), true
	case "h2":
		return textBlock(BlockHeading2, sel.Text()), true
	case "h3":
		return textBlock(BlockHeading3, sel.Text()), true
	case "ul", "ol":
		return textBlock(BlockList, listText(sel)), true
	case "pre":
		return codeBlock(sel), true
	case "blockquote":
		return textBlock(BlockQuote, lineText(sel)), true
	case "hr":
		return Block{Type: BlockDivider}, true
	case "img", "figure":
		return imageBlock(sel), true
	case "table":
		return tableBlock(sel), true
	case "p":
		return paragraphBlock(sel.Text()), true
	}
	return Block{}, false
}

// classifyClass looks the node's class tokens up in the source vocabulary.
func (c *Classifier) classifyClass(sel *goquery.Selection) (Block, bool) {
	attr, ok := sel.Attr("class")
	if !ok {
		return Block{}, false
	}

	tokens := make(map[string]bool)
	for _, token := range strings.Fields(attr) {
		tokens[token] = true
	}

	for _, rule := range c.classes {
		if !tokens[rule.class] {
			continue
		}
		return c.buildBlock(rule.typ, sel), true
	}
	return Block{}, false
}

// buildBlock fills in the type-specific fields for a class-matched node.
func (c *Classifier) buildBlock(typ BlockType, sel *goquery.Selection) Block {
	switch typ {
	case BlockSkip:
		return Block{Type: BlockSkip}
	case BlockDivider:
		return Block{Type: BlockDivider}
	case BlockCode:
		return codeBlock(sel)
	case BlockImage:
		return imageBlock(sel)
	case BlockTable:
		return tableBlock(sel)
	case BlockQuote:
		return textBlock(BlockQuote, lineText(sel))
	case BlockParagraph:
		return paragraphBlock(sel.Text())
	default:
		return textBlock(typ, sel.Text())
	}
}

// textBlock builds a text-bearing block, degrading to skip when the node has
// no meaningful text.
func textBlock(typ BlockType, text string) Block {
	if strings.TrimSpace(text) == "" {
		return Block{Type: BlockSkip}
	}
	return Block{Type: typ, Text: text}
}

// paragraphBlock skips empty text and text that already reads as a literal
// markdown heading, which would otherwise be double-encoded.
func paragraphBlock(text string) Block {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || startsWithHeadingMarker(trimmed) {
		return Block{Type: BlockSkip}
	}
	return Block{Type: BlockParagraph, Text: text}
}

func codeBlock(sel *goquery.Selection) Block {
	text := sel.Text()
	lang := codeLanguage(sel)

	if code := sel.Find("code").First(); code.Length() > 0 {
		text = code.Text()
		if l := codeLanguage(code); l != "" {
			lang = l
		}
	}

	if strings.TrimSpace(text) == "" {
		return Block{Type: BlockSkip}
	}
	return Block{Type: BlockCode, Text: text, Language: lang}
}

// codeLanguage reads a "language-*" class token, the conventional highlight
// marker.
func codeLanguage(sel *goquery.Selection) string {
	attr, _ := sel.Attr("class")
	for _, token := range strings.Fields(attr) {
		if strings.HasPrefix(token, "language-") {
			return strings.TrimPrefix(token, "language-")
		}
	}
	return ""
}

func imageBlock(sel *goquery.Selection) Block {
	img := sel
	if goquery.NodeName(sel) != "img" {
		img = sel.Find("img").First()
	}

	url, _ := img.Attr("src")

	// Caption text wins over the image's own alt attribute.
	alt := strings.TrimSpace(sel.Find("figcaption, [class*=caption]").First().Text())
	if alt == "" {
		if attrAlt, ok := img.Attr("alt"); ok {
			alt = strings.TrimSpace(attrAlt)
		}
	}

	return Block{Type: BlockImage, ImageURL: url, ImageAlt: alt}
}

func tableBlock(sel *goquery.Selection) Block {
	var rows [][]string
	sel.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var cells []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	})

	if len(rows) == 0 {
		return Block{Type: BlockSkip}
	}
	return Block{Type: BlockTable, Rows: rows}
}

// listText joins the items of a native list with single spaces, independent
// of how the source HTML was whitespaced.
func listText(sel *goquery.Selection) string {
	var items []string
	sel.Find("li").Each(func(_ int, li *goquery.Selection) {
		if text := strings.TrimSpace(li.Text()); text != "" {
			items = append(items, text)
		}
	})
	if len(items) == 0 {
		return sel.Text()
	}
	return strings.Join(items, " ")
}

// lineText flattens a node's text, keeping one line per block-level child so
// multi-paragraph quotes keep their line structure.
func lineText(sel *goquery.Selection) string {
	children := sel.ChildrenFiltered("p, div")
	if children.Length() < 2 {
		return sel.Text()
	}

	var lines []string
	children.Each(func(_ int, child *goquery.Selection) {
		if text := strings.TrimSpace(child.Text()); text != "" {
			lines = append(lines, text)
		}
	})
	return strings.Join(lines, "\n")
}

func onlyInlineChildren(sel *goquery.Selection) bool {
	inline := true
	sel.Children().Each(func(_ int, child *goquery.Selection) {
		if !inlineTags[goquery.NodeName(child)] {
			inline = false
		}
	})
	return inline
}
