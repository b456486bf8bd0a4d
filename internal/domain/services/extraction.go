package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
	"github.com/fredcamaral/decksmith/internal/domain/ports"
)

// entitlementTimeout bounds the single asynchronous step of the pipeline; a
// lookup slower than this counts as failed and the user is treated as not
// entitled.
const entitlementTimeout = 5 * time.Second

// ExtractionService runs the whole extraction pipeline: detect the source,
// dispatch to its extractor, normalize the raw slides, apply the free-tier
// cap, and wrap the result into an immutable presentation. Each invocation
// is independent; the service holds no per-request state.
type ExtractionService struct {
	detector     ports.SourceDetector
	registry     ports.ExtractorRegistry
	normalizer   *Normalizer
	limiter      *Limiter
	entitlements ports.EntitlementChecker
	logger       zerolog.Logger
}

// NewExtractionService wires the pipeline together.
func NewExtractionService(
	detector ports.SourceDetector,
	registry ports.ExtractorRegistry,
	normalizer *Normalizer,
	limiter *Limiter,
	entitlements ports.EntitlementChecker,
	logger zerolog.Logger,
) *ExtractionService {
	return &ExtractionService{
		detector:     detector,
		registry:     registry,
		normalizer:   normalizer,
		limiter:      limiter,
		entitlements: entitlements,
		logger:       logger,
	}
}

// ExtractContent is the sole entry point of the pipeline. It never panics
// and never returns a raw error: every failure, including an internal panic,
// is folded into the returned envelope.
func (s *ExtractionService) ExtractContent(ctx context.Context, doc entities.SourceDocument) (result *entities.ExtractionResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Str("locator", doc.Locator).Msg("extraction panicked")
			result = entities.FailureResult(fmt.Errorf("internal extraction failure: %v", r), entities.SourceUnknown)
		}
	}()

	source := s.detector.Detect(doc)
	if !source.Extractable() {
		s.logger.Debug().Str("locator", doc.Locator).Msg("no extractor family matches the document")
		return entities.FailureResult(entities.ErrUnsupportedSource, source)
	}

	extractor, err := s.registry.Get(source)
	if err != nil {
		return entities.FailureResult(err, source)
	}

	slides, err := extractor.Extract(ctx, doc)
	if err != nil {
		return entities.FailureResult(fmt.Errorf("extracting %s content: %w", source, err), source)
	}

	if len(slides) == 0 {
		return entities.FailureResult(entities.ErrNoSlides, source)
	}

	slides = s.normalizer.Normalize(slides, source)
	slides = s.limiter.Apply(slides, s.resolveEntitlement(ctx))

	presentation, err := entities.NewPresentation(slides, source)
	if err != nil {
		return entities.FailureResult(fmt.Errorf("building presentation: %w", err), source)
	}

	s.logger.Info().
		Str("source", source.String()).
		Int("slides", presentation.SlideCount()).
		Str("title", presentation.Title()).
		Msg("extraction complete")

	return entities.SuccessResult(presentation)
}

// resolveEntitlement asks the external checker for the user's entitlement,
// failing closed on every error path: a broken or slow lookup can only
// over-truncate, never unlock.
func (s *ExtractionService) resolveEntitlement(ctx context.Context) bool {
	if s.entitlements == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, entitlementTimeout)
	defer cancel()

	entitled, err := s.entitlements.HasEntitlement(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("entitlement check failed; treating user as not entitled")
		return false
	}

	return entitled
}

// Ensure ExtractionService implements ports.ExtractionService
var _ ports.ExtractionService = (*ExtractionService)(nil)
