package services

import (
	"net/url"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
	"github.com/fredcamaral/decksmith/internal/domain/ports"
)

// notionHosts are the exact hostnames served by the Notion platform.
var notionHosts = map[string]struct{}{
	"notion.so":      {},
	"www.notion.so":  {},
	"notion.com":     {},
	"www.notion.com": {},
}

// notionHostSuffixes cover workspace subdomains and published pages.
var notionHostSuffixes = []string{".notion.site", ".notion.so", ".notion.com"}

// markdownExtensions are locator extensions treated as markdown documents.
var markdownExtensions = map[string]struct{}{
	".md":       {},
	".markdown": {},
	".mdown":    {},
	".txt":      {},
}

// htmlMarkers, found near the start of a document, mean the content is a
// rendered HTML page rather than plain text.
var htmlMarkers = []string{"<!doctype", "<html", "<head", "<body", "<div", "<article", "<main"}

// Detector classifies a source document into the extractor family that can
// handle it. Classification is pure: it reads the locator and the raw
// content, and never touches the network.
type Detector struct{}

// NewDetector creates a source detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect applies the detection rules in order: a Notion locator wins, then
// any plain-text/markdown signal from the locator or the content, otherwise
// the document is unsupported.
func (d *Detector) Detect(doc entities.SourceDocument) entities.SourceType {
	if isNotionLocator(doc.Locator) {
		return entities.SourceNotion
	}

	if indicatesMarkdown(doc.Locator, doc.Content) {
		return entities.SourceMarkdown
	}

	return entities.SourceUnknown
}

// isNotionLocator reports whether the locator points at a Notion-hosted page.
func isNotionLocator(locator string) bool {
	if locator == "" {
		return false
	}

	parsed, err := url.Parse(locator)
	if err != nil {
		return false
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return false
	}

	if _, ok := notionHosts[host]; ok {
		return true
	}

	for _, suffix := range notionHostSuffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}

	return false
}

// indicatesMarkdown reports whether the locator extension or the content
// itself marks the document as a plain-text/markdown source.
func indicatesMarkdown(locator string, content []byte) bool {
	if ext := locatorExtension(locator); ext != "" {
		if _, ok := markdownExtensions[ext]; ok {
			return true
		}
	}

	if len(content) == 0 {
		return false
	}

	if !utf8.Valid(content) {
		return false
	}

	return !looksLikeHTML(content)
}

// locatorExtension extracts a lowercase file extension from a URL or a bare
// file path.
func locatorExtension(locator string) string {
	if locator == "" {
		return ""
	}

	if parsed, err := url.Parse(locator); err == nil && parsed.Path != "" {
		return strings.ToLower(path.Ext(parsed.Path))
	}

	return strings.ToLower(path.Ext(locator))
}

// looksLikeHTML sniffs the first kilobyte for HTML structure markers.
func looksLikeHTML(content []byte) bool {
	head := content
	if len(head) > 1024 {
		head = head[:1024]
	}

	sniff := strings.ToLower(string(head))
	for _, marker := range htmlMarkers {
		if strings.Contains(sniff, marker) {
			return true
		}
	}

	return false
}

// Ensure Detector implements ports.SourceDetector
var _ ports.SourceDetector = (*Detector)(nil)
