package services

import (
	"fmt"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
	"github.com/fredcamaral/decksmith/internal/domain/ports"
)

// Registry maps each supported source type to its concrete extractor. The
// detector gates source types before they reach the registry, so a miss here
// is a wiring bug; it still fails with an explicit unsupported-source error
// rather than guessing.
type Registry struct {
	extractors map[entities.SourceType]ports.ContentExtractor
}

// NewRegistry creates a registry holding the given extractors, each keyed by
// its own reported source type.
func NewRegistry(extractors ...ports.ContentExtractor) *Registry {
	r := &Registry{
		extractors: make(map[entities.SourceType]ports.ContentExtractor, len(extractors)),
	}

	for _, e := range extractors {
		r.Register(e)
	}

	return r
}

// Register adds or replaces the extractor for its source type.
func (r *Registry) Register(extractor ports.ContentExtractor) {
	if extractor == nil {
		return
	}
	r.extractors[extractor.SourceType()] = extractor
}

// Get returns the extractor for the source type.
func (r *Registry) Get(source entities.SourceType) (ports.ContentExtractor, error) {
	extractor, ok := r.extractors[source]
	if !ok {
		return nil, fmt.Errorf("no extractor registered for source %q: %w", source, entities.ErrUnsupportedSource)
	}
	return extractor, nil
}

// Sources returns the registered source types.
func (r *Registry) Sources() []entities.SourceType {
	sources := make([]entities.SourceType, 0, len(r.extractors))
	for source := range r.extractors {
		sources = append(sources, source)
	}
	return sources
}

// Ensure Registry implements ports.ExtractorRegistry
var _ ports.ExtractorRegistry = (*Registry)(nil)
