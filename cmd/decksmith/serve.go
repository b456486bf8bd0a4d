package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	httpserver "github.com/fredcamaral/decksmith/internal/adapters/primary/http"
	"github.com/fredcamaral/decksmith/internal/adapters/secondary/browser"
	"github.com/fredcamaral/decksmith/internal/adapters/secondary/renderer"
	"github.com/fredcamaral/decksmith/internal/adapters/secondary/watcher"
	"github.com/fredcamaral/decksmith/internal/domain/entities"
	"github.com/fredcamaral/decksmith/internal/domain/services"
)

var (
	// Serve command flags
	port      int
	host      string
	noBrowser bool
	noWatch   bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve [file]",
	Short: "Preview the deck extracted from a document",
	Long: `Start a local HTTP server showing the slides extracted from the given
document. The preview reloads automatically whenever the source file
changes.

Example:
  decksmith serve notes.md
  decksmith serve deck.md --port 8080 --no-browser`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Add command flags - defaults will be overridden by config loading
	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "Port to serve on (overrides config)")
	serveCmd.Flags().StringVar(&host, "host", "", "Host to bind to (overrides config)")
	serveCmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Don't open browser automatically")
	serveCmd.Flags().BoolVar(&noWatch, "no-watch", false, "Don't watch the source file for changes")
	serveCmd.Flags().Int("max-free-slides", 0, "Free-tier slide cap (overrides config)")
	serveCmd.Flags().Bool("licensed", false, "Treat the run as licensed, lifting the slide cap")
}

// validateServeArgs validates serve command arguments without starting server
func validateServeArgs(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	if args[0] == "-" {
		return errors.New("serve requires a file path, not stdin")
	}
	if isRemoteSource(args[0]) {
		return errors.New("serve requires a local file path; import the URL first")
	}
	return nil
}

// validateServeConfig validates configuration after it's loaded
func validateServeConfig(config *entities.Config) error {
	// The preview URL needs a concrete port, so the OS-assigned port 0 is
	// rejected here even though the config itself allows it.
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", config.Server.Port)
	}

	if strings.Contains(config.Server.Host, " ") || strings.Contains(config.Server.Host, "!") {
		return fmt.Errorf("invalid host: %s", config.Server.Host)
	}

	return nil
}

// serverURL returns the preview URL for the configured host and port.
func serverURL(config *entities.Config) string {
	return fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := validateServeArgs(args); err != nil {
		return err
	}
	sourcePath := args[0]

	cfg, err := loadConfig(cmd, filepath.Dir(sourcePath))
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if err := validateServeConfig(cfg); err != nil {
		return err
	}

	logger := newLogger(cfg.Logging)
	ctx := cmd.Context()

	extraction := newExtractionService(cfg, logger)
	deck, err := extractDeck(ctx, extraction, sourcePath)
	if err != nil {
		return err
	}

	htmlRenderer, err := renderer.NewHTMLRenderer()
	if err != nil {
		return fmt.Errorf("building preview renderer: %w", err)
	}

	// Probe the port up front so a busy port fails the command with a clear
	// message instead of a log line from the server goroutine.
	if err := probePort(cfg.Server.Host, cfg.Server.Port); err != nil {
		return err
	}

	server := httpserver.NewServer(htmlRenderer, &cfg.Server, logger)
	server.SetPresentation(deck)

	if err := server.Start(ctx, cfg.Server.Port, cfg.Server.Host); err != nil {
		return fmt.Errorf("starting preview server: %w", err)
	}

	var reload *services.LiveReloadService
	if !noWatch {
		fileWatcher := watcher.NewPollingWatcher(cfg.Watcher, logger)
		reload = services.NewLiveReloadService(fileWatcher, server, extraction, logger)
		if err := reload.Start(ctx, sourcePath); err != nil {
			stopServer(server, logger)
			return fmt.Errorf("starting live reload: %w", err)
		}
	}

	url := serverURL(cfg)
	fmt.Printf("Serving %d slides from %s at %s\n", deck.SlideCount(), sourcePath, url)

	if err := browser.NewLauncher().Launch(url, noBrowser); err != nil {
		logger.Warn().Err(err).Msg("could not open browser")
	}

	<-ctx.Done()

	fmt.Fprintln(os.Stderr, "Shutting down preview server...")
	if reload != nil {
		if err := reload.Stop(); err != nil {
			logger.Warn().Err(err).Msg("stopping live reload")
		}
	}
	stopServer(server, logger)

	return nil
}

// probePort checks that the configured address can be bound before the
// server goroutine races for it.
func probePort(host string, port int) error {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use or cannot be bound: %w", port, err)
	}
	if err := listener.Close(); err != nil {
		return fmt.Errorf("releasing probe listener: %w", err)
	}
	return nil
}

// stopServer shuts the preview server down, logging instead of failing when
// shutdown itself goes wrong. The command context is already cancelled at
// this point, so a fresh one carries the shutdown timeout.
func stopServer(server *httpserver.Server, logger zerolog.Logger) {
	if err := server.Stop(context.Background()); err != nil {
		logger.Error().Err(err).Msg("stopping preview server")
	}
}
