package webpage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fredcamaral/decksmith/internal/domain/ports"
)

// noiseSelectors are elements removed before conversion. Page chrome and
// interactive widgets contribute nothing to a deck; images stay because
// slides keep them.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "footer", "header", "aside",
	"iframe", "video", "audio",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
}

// Importer fetches a web page and converts its main content into a markdown
// deck source. The output always carries at least one level-one heading so
// the markdown extractor can find a slide boundary in it.
type Importer struct {
	fetcher *Fetcher
	logger  zerolog.Logger
}

// NewImporter creates a page importer.
func NewImporter(fetcher *Fetcher, logger zerolog.Logger) *Importer {
	return &Importer{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Import fetches the page and returns markdown ready for extraction.
func (i *Importer) Import(ctx context.Context, pageURL string) ([]byte, error) {
	html, err := i.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	title, fragment, err := extractContent(html)
	if err != nil {
		return nil, fmt.Errorf("extracting content from %s: %w", pageURL, err)
	}

	markdown, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return nil, fmt.Errorf("converting HTML to markdown: %w", err)
	}

	if title == "" {
		title = titleFromURL(pageURL)
	}
	markdown = ensureDeckHeading(markdown, title)

	i.logger.Debug().
		Str("url", pageURL).
		Str("title", title).
		Int("bytes", len(markdown)).
		Msg("page imported")

	return []byte(markdown), nil
}

// extractContent isolates the page's main content. Noise elements are
// removed first, then the best container wins: <main> is the most
// semantically precise, then <article>, then <body>.
func extractContent(html string) (title, fragment string, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", "", fmt.Errorf("parsing HTML: %w", err)
	}

	title = strings.TrimSpace(doc.Find("title").First().Text())

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	var content *goquery.Selection
	for _, tag := range []string{"main", "article", "body"} {
		if sel := doc.Find(tag); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		return "", "", errors.New("no content container found")
	}

	fragment, err = goquery.OuterHtml(content)
	if err != nil {
		return "", "", fmt.Errorf("serializing content: %w", err)
	}

	return title, fragment, nil
}

// ensureDeckHeading prepends a level-one heading when the converted markdown
// has none; without one the extractor would find no slide boundary.
func ensureDeckHeading(markdown, title string) string {
	if hasLevelOneHeading(markdown) {
		return markdown
	}
	if title == "" {
		title = "Imported Page"
	}
	return "# " + title + "\n\n" + strings.TrimLeft(markdown, "\n")
}

func hasLevelOneHeading(markdown string) bool {
	inFence := false
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if !inFence && strings.HasPrefix(line, "# ") {
			return true
		}
	}
	return false
}

// titleFromURL derives a human-readable title from the URL when the page has
// no <title>. The last path segment reads best; the host is the fallback.
func titleFromURL(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}

	segment := path.Base(strings.TrimSuffix(parsed.Path, "/"))
	if segment == "." || segment == "/" || segment == "" {
		return parsed.Host
	}

	if ext := path.Ext(segment); ext != "" {
		segment = strings.TrimSuffix(segment, ext)
	}
	segment = strings.NewReplacer("-", " ", "_", " ").Replace(segment)

	return cases.Title(language.English).String(segment)
}

// Ensure Importer implements ports.PageImporter
var _ ports.PageImporter = (*Importer)(nil)
