package entities

// SourceType identifies the origin a slide or presentation was extracted from.
type SourceType string

const (
	// SourceNotion marks content extracted from a Notion page's block tree.
	SourceNotion SourceType = "notion"

	// SourceMarkdown marks content extracted from a literal markdown document.
	SourceMarkdown SourceType = "markdown"

	// SourceUpgrade marks the synthetic slide appended when the free-tier
	// limiter truncates a deck.
	SourceUpgrade SourceType = "upgrade"

	// SourceUnknown marks a document no extractor supports.
	SourceUnknown SourceType = "unknown"
)

// ParseSourceType maps a raw string onto a SourceType, returning
// SourceUnknown for anything unrecognized.
func ParseSourceType(raw string) SourceType {
	switch SourceType(raw) {
	case SourceNotion, SourceMarkdown, SourceUpgrade:
		return SourceType(raw)
	default:
		return SourceUnknown
	}
}

// Valid reports whether the source type is one of the known values.
func (s SourceType) Valid() bool {
	switch s {
	case SourceNotion, SourceMarkdown, SourceUpgrade, SourceUnknown:
		return true
	default:
		return false
	}
}

// Extractable reports whether a concrete extractor exists for this source.
// Upgrade and unknown are terminal tags, not extractable origins.
func (s SourceType) Extractable() bool {
	return s == SourceNotion || s == SourceMarkdown
}

// String implements fmt.Stringer.
func (s SourceType) String() string {
	return string(s)
}
