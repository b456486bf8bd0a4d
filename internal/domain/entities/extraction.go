package entities

// SourceDocument is the raw input handed to the extraction pipeline: the
// document bytes plus the URL-like locator they were loaded from. The
// locator drives source detection; the content is parsed by the selected
// extractor.
type SourceDocument struct {
	Locator string
	Content []byte
}

// ExtractionResult is the transient envelope returned to callers of the
// extraction entry point. Exactly one of the two shapes is populated:
// slides+presentation+source on success, or error(+best-effort source) on
// failure. The constructors below are the only intended way to build one.
type ExtractionResult struct {
	Slides       []Slide               `json:"slides,omitempty"`
	Presentation *PresentationSnapshot `json:"presentation,omitempty"`
	SourceType   SourceType            `json:"source_type,omitempty"`
	Error        string                `json:"error,omitempty"`
}

// SuccessResult wraps a finalized presentation into the envelope.
func SuccessResult(p *Presentation) *ExtractionResult {
	snapshot := p.Snapshot()

	return &ExtractionResult{
		Slides:       snapshot.Slides,
		Presentation: &snapshot,
		SourceType:   snapshot.SourceType,
	}
}

// FailureResult wraps an extraction failure into the envelope. The source
// type is included when detection got that far; SourceUnknown is mapped to
// the zero value so it is omitted from the serialized form.
func FailureResult(err error, source SourceType) *ExtractionResult {
	result := &ExtractionResult{Error: err.Error()}

	if source.Extractable() {
		result.SourceType = source
	}

	return result
}

// Succeeded reports whether the envelope carries a presentation rather than
// an error.
func (r *ExtractionResult) Succeeded() bool {
	return r.Error == "" && r.Presentation != nil
}
