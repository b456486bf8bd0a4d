package extractor

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
	"github.com/fredcamaral/decksmith/internal/domain/ports"
)

// contentRoots are tried in priority order when locating the page's block
// sequence. The page-content container is Notion's own wrapper; main,
// article and body are the generic fallbacks.
var contentRoots = []string{".notion-page-content", "main", "article", "body"}

// NotionExtractor extracts slides from a captured Notion page by walking
// its DOM with the platform's block class vocabulary.
type NotionExtractor struct {
	classifier *Classifier
	assembler  *Assembler
}

// NewNotionExtractor creates a Notion page extractor.
func NewNotionExtractor() *NotionExtractor {
	return &NotionExtractor{
		classifier: NewClassifier(NotionClasses),
		assembler:  NewAssembler(),
	}
}

// SourceType identifies the extractor family.
func (e *NotionExtractor) SourceType() entities.SourceType {
	return entities.SourceNotion
}

// Extract parses the document HTML, collects the classified blocks under
// the content root, and assembles them into slides.
func (e *NotionExtractor) Extract(ctx context.Context, doc entities.SourceDocument) ([]entities.Slide, error) {
	page, err := goquery.NewDocumentFromReader(bytes.NewReader(doc.Content))
	if err != nil {
		return nil, fmt.Errorf("parsing page HTML: %w", err)
	}

	root := findContentRoot(page)
	if root == nil {
		return nil, nil
	}

	var blocks []Block
	root.Children().Each(func(_ int, child *goquery.Selection) {
		e.collect(child, &blocks)
	})

	return e.assembler.Assemble(blocks), nil
}

// collect classifies the node. A handled node consumes its whole subtree,
// even when it classifies as a skip; an unhandled wrapper is descended
// into so nested block sequences are still found in document order.
func (e *NotionExtractor) collect(sel *goquery.Selection, blocks *[]Block) {
	block, handled := e.classifier.Classify(sel)
	if handled {
		if block.Type != BlockSkip {
			*blocks = append(*blocks, block)
		}
		return
	}
	sel.Children().Each(func(_ int, child *goquery.Selection) {
		e.collect(child, blocks)
	})
}

func findContentRoot(page *goquery.Document) *goquery.Selection {
	for _, selector := range contentRoots {
		if sel := page.Find(selector); sel.Length() > 0 {
			return sel.First()
		}
	}
	return nil
}

// Ensure NotionExtractor implements ports.ContentExtractor
var _ ports.ContentExtractor = (*NotionExtractor)(nil)
