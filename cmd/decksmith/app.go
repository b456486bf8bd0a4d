package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fredcamaral/decksmith/internal/adapters/secondary/config"
	"github.com/fredcamaral/decksmith/internal/adapters/secondary/entitlement"
	"github.com/fredcamaral/decksmith/internal/adapters/secondary/extractor"
	"github.com/fredcamaral/decksmith/internal/adapters/secondary/webpage"
	"github.com/fredcamaral/decksmith/internal/domain/entities"
	"github.com/fredcamaral/decksmith/internal/domain/services"
)

// loadConfig resolves the effective configuration for a command run. The
// working directory decides where the local decksmith.toml is looked up;
// flag overrides are collected from whatever the user actually set.
func loadConfig(cmd *cobra.Command, workingDir string) (*entities.Config, error) {
	service := services.NewConfigService(config.NewTOMLLoader(), config.NewConfigMerger())

	configFile, _ := cmd.Flags().GetString("config")

	return service.LoadConfig(cmd.Context(), workingDir, configFile, collectFlags(cmd))
}

// collectFlags maps explicitly set CLI flags into merger overrides. Flags a
// command does not declare simply report unchanged.
func collectFlags(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})

	if cmd.Flags().Changed("port") {
		v, _ := cmd.Flags().GetInt("port")
		flags["port"] = v
	}
	if cmd.Flags().Changed("host") {
		v, _ := cmd.Flags().GetString("host")
		flags["host"] = v
	}
	if cmd.Flags().Changed("max-free-slides") {
		v, _ := cmd.Flags().GetInt("max-free-slides")
		flags["max-free-slides"] = v
	}
	if cmd.Flags().Changed("licensed") {
		v, _ := cmd.Flags().GetBool("licensed")
		flags["licensed"] = v
	}
	if cmd.Flags().Changed("format") {
		v, _ := cmd.Flags().GetString("format")
		flags["format"] = v
	}
	if cmd.Flags().Changed("output") {
		v, _ := cmd.Flags().GetString("output")
		flags["output"] = v
	}
	if cmd.Flags().Changed("verbose") {
		v, _ := cmd.Flags().GetBool("verbose")
		flags["verbose"] = v
	}

	return flags
}

// newLogger builds the command logger writing human-readable lines to stderr,
// keeping stdout free for command output.
func newLogger(cfg entities.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(string(cfg.GetLevel()))
	if err != nil {
		level = zerolog.InfoLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// newExtractionService assembles the extraction pipeline from configuration.
func newExtractionService(cfg *entities.Config, logger zerolog.Logger) *services.ExtractionService {
	registry := services.NewRegistry(
		extractor.NewMarkdownExtractor(),
		extractor.NewNotionExtractor(),
	)

	return services.NewExtractionService(
		services.NewDetector(),
		registry,
		services.NewNormalizer(),
		services.NewLimiter(cfg.Limiter.GetMaxFreeSlides()),
		entitlement.NewStaticChecker(cfg.Limiter),
		logger,
	)
}

// isRemoteSource reports whether the source argument is a fetchable URL
// rather than a local path.
func isRemoteSource(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// readSource loads the deck source document. "-" stands for stdin and
// http(s) locators are fetched; anything else is read as a local file. The
// locator is kept as given so source detection can see the original URL.
func readSource(ctx context.Context, path string) (entities.SourceDocument, error) {
	if path == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return entities.SourceDocument{}, fmt.Errorf("reading stdin: %w", err)
		}
		return entities.SourceDocument{Locator: "stdin", Content: content}, nil
	}

	if isRemoteSource(path) {
		html, err := webpage.NewFetcher().Fetch(ctx, path)
		if err != nil {
			return entities.SourceDocument{}, fmt.Errorf("fetching source page: %w", err)
		}
		return entities.SourceDocument{Locator: path, Content: []byte(html)}, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return entities.SourceDocument{}, fmt.Errorf("accessing source file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return entities.SourceDocument{}, fmt.Errorf("source path is not a regular file: %s", path)
	}

	content, err := os.ReadFile(path) // #nosec G304 - path validated above
	if err != nil {
		return entities.SourceDocument{}, fmt.Errorf("reading source file: %w", err)
	}

	return entities.SourceDocument{Locator: path, Content: content}, nil
}

// extractDeck runs the pipeline over the source document and rebuilds the
// presentation from the result envelope.
func extractDeck(ctx context.Context, extraction *services.ExtractionService, path string) (*entities.Presentation, error) {
	doc, err := readSource(ctx, path)
	if err != nil {
		return nil, err
	}

	result := extraction.ExtractContent(ctx, doc)
	if !result.Succeeded() {
		return nil, fmt.Errorf("extracting slides: %s", result.Error)
	}

	deck, err := entities.RestorePresentation(*result.Presentation)
	if err != nil {
		return nil, fmt.Errorf("restoring presentation: %w", err)
	}

	return deck, nil
}
