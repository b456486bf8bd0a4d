package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/decksmith/internal/adapters/secondary/export"
	"github.com/fredcamaral/decksmith/internal/domain/ports"
)

var (
	// Convert command flags
	exportFormat string
	outputDir    string
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert a document into a deck file",
	Long: `Extract slides from the given document and write the deck to disk.
The output format is markdown unless --format says otherwise; JSON and
PDF are also available. Pass "-" as the file to read from stdin, or an
http(s) URL to extract straight from a published Notion page.

Example:
  decksmith convert notes.md
  decksmith convert https://myteam.notion.site/Launch-Plan
  decksmith convert notes.md --format pdf --output ./decks`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: markdown, json or pdf (overrides config)")
	convertCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output file or directory (overrides config)")
	convertCmd.Flags().Int("max-free-slides", 0, "Free-tier slide cap (overrides config)")
	convertCmd.Flags().Bool("licensed", false, "Treat the run as licensed, lifting the slide cap")
}

func runConvert(cmd *cobra.Command, args []string) error {
	sourcePath := args[0]

	workingDir := "."
	if sourcePath != "-" {
		workingDir = filepath.Dir(sourcePath)
	}

	cfg, err := loadConfig(cmd, workingDir)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(cfg.Logging)
	ctx := cmd.Context()

	deck, err := extractDeck(ctx, newExtractionService(cfg, logger), sourcePath)
	if err != nil {
		return err
	}

	exporter := export.NewService(logger,
		export.NewMarkdownRenderer(),
		export.NewJSONRenderer(),
		export.NewPDFRenderer(),
	)

	format := ports.ExportFormat(cfg.Export.Format)
	if format == "" {
		format = ports.FormatMarkdown
	}

	result, err := exporter.Export(ctx, deck, format, cfg.Export.OutputDir)
	if err != nil {
		return fmt.Errorf("exporting deck: %w", err)
	}

	fmt.Printf("Wrote %d slides to %s (%s, %d bytes)\n",
		result.SlideCount, result.OutputPath, result.Format, result.FileSize)
	return nil
}
