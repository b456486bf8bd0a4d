package entities

import "errors"

// Extraction failures are classified into a small set of sentinel errors so
// callers can branch with errors.Is and surface the right user-facing
// message. None of these ever cross the ExtractContent boundary as a raw
// error; the pipeline folds them into the ExtractionResult envelope.
var (
	// ErrUnsupportedSource means the detector recognized neither a Notion
	// page nor a markdown document. Retrying without navigating to a
	// supported page cannot succeed.
	ErrUnsupportedSource = errors.New("unsupported source: open a Notion page or a markdown document and try again")

	// ErrNoSlides means extraction ran but produced nothing: no level-1
	// headings, or every candidate slide reduced to an empty body. Distinct
	// from ErrUnsupportedSource so the user is told to add headings rather
	// than change page.
	ErrNoSlides = errors.New("no slides found: add at least one level-1 heading to split the document into slides")

	// ErrEmptyPresentation guards the Presentation constructor; an empty
	// slide list is internal misuse, not a valid state.
	ErrEmptyPresentation = errors.New("presentation must contain at least one slide")
)
