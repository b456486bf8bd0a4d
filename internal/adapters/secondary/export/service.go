// Package export writes finalized presentations to disk. Each renderer
// produces the bytes for one format; the service picks the renderer,
// resolves the output path, and owns all filesystem work.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
	"github.com/fredcamaral/decksmith/internal/domain/ports"
)

// Service implements ports.ExportService over a set of format renderers.
type Service struct {
	renderers []ports.DeckRenderer
	logger    zerolog.Logger
}

// NewService creates an export service with the given renderers.
func NewService(logger zerolog.Logger, renderers ...ports.DeckRenderer) *Service {
	return &Service{
		renderers: renderers,
		logger:    logger,
	}
}

// Export renders the presentation in the requested format and writes it to
// outputPath. A path without an extension is treated as a directory and the
// file name is derived from the deck title.
func (s *Service) Export(ctx context.Context, presentation *entities.Presentation, format ports.ExportFormat, outputPath string) (*ports.ExportResult, error) {
	renderer := s.rendererFor(format)
	if renderer == nil {
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}

	data, err := renderer.Render(ctx, presentation)
	if err != nil {
		return nil, fmt.Errorf("rendering %s export: %w", format, err)
	}

	path := s.resolvePath(outputPath, presentation.Title(), renderer.Extension())
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}

	s.logger.Info().
		Str("format", string(format)).
		Str("path", path).
		Int("slides", presentation.SlideCount()).
		Msg("deck exported")

	return &ports.ExportResult{
		Format:     format,
		OutputPath: path,
		FileSize:   int64(len(data)),
		SlideCount: presentation.SlideCount(),
	}, nil
}

func (s *Service) rendererFor(format ports.ExportFormat) ports.DeckRenderer {
	for _, renderer := range s.renderers {
		if renderer.Supports(format) {
			return renderer
		}
	}
	return nil
}

// resolvePath turns the caller's output path into a concrete file path. An
// empty path or a path without an extension is a directory; the file name
// comes from the deck title.
func (s *Service) resolvePath(outputPath, title, extension string) string {
	if outputPath == "" {
		return slugify(title) + extension
	}
	if filepath.Ext(outputPath) == "" {
		return filepath.Join(outputPath, slugify(title)+extension)
	}
	return outputPath
}

// slugify reduces a deck title to a safe lowercase file name.
func slugify(title string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			sb.WriteRune('-')
		}
	}
	slug := strings.Trim(sb.String(), "-")
	if slug == "" {
		return "deck"
	}
	return slug
}

// Ensure Service implements ports.ExportService
var _ ports.ExportService = (*Service)(nil)
