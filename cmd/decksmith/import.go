package main

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/decksmith/internal/adapters/secondary/webpage"
)

// Import command flags
var importOutput string

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import [url]",
	Short: "Import a web page as a deck source",
	Long: `Fetch a web page, reduce it to its main article content, and write the
result as a markdown file ready for decksmith serve or convert.

Example:
  decksmith import https://example.com/blog/quarterly-update
  decksmith import https://example.com/post --output notes.md`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importOutput, "output", "o", "", "Output file (default: derived from the URL)")
}

func runImport(cmd *cobra.Command, args []string) error {
	pageURL := args[0]

	cfg, err := loadConfig(cmd, ".")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(cfg.Logging)

	importer := webpage.NewImporter(webpage.NewFetcher(), logger)
	content, err := importer.Import(cmd.Context(), pageURL)
	if err != nil {
		return fmt.Errorf("importing page: %w", err)
	}

	outputPath := importOutput
	if outputPath == "" {
		outputPath = importFileName(pageURL)
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("writing deck source: %w", err)
	}

	fmt.Printf("Imported %s to %s\n", pageURL, outputPath)
	fmt.Printf("Preview it with: decksmith serve %s\n", outputPath)
	return nil
}

// importFileName derives a markdown file name from the page URL slug.
func importFileName(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Path == "" || parsed.Path == "/" {
		return "imported.md"
	}

	slug := path.Base(strings.TrimSuffix(parsed.Path, "/"))
	slug = strings.TrimSuffix(slug, path.Ext(slug))
	if slug == "" || slug == "." || slug == "/" {
		return "imported.md"
	}

	return slug + ".md"
}
