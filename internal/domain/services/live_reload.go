package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
	"github.com/fredcamaral/decksmith/internal/domain/ports"
)

// LiveReloadService couples the file watcher to the preview server: every
// change to the source file triggers a fresh extraction, swaps the deck on
// the server, and pushes a reload to connected clients. When re-extraction
// fails the stale deck stays up and clients get an error event instead.
type LiveReloadService struct {
	watcher    ports.FileWatcher
	server     ports.HTTPServer
	extraction ports.ExtractionService
	logger     zerolog.Logger

	mu          sync.Mutex
	watching    bool
	watchCancel context.CancelFunc
	sourcePath  string
}

// NewLiveReloadService creates a new live reload service.
func NewLiveReloadService(
	watcher ports.FileWatcher,
	server ports.HTTPServer,
	extraction ports.ExtractionService,
	logger zerolog.Logger,
) *LiveReloadService {
	return &LiveReloadService{
		watcher:    watcher,
		server:     server,
		extraction: extraction,
		logger:     logger,
	}
}

// Start begins watching the source file.
func (s *LiveReloadService) Start(ctx context.Context, filePath string) error {
	s.mu.Lock()
	if s.watching {
		s.mu.Unlock()
		return errors.New("already watching")
	}
	s.watching = true
	s.sourcePath = filePath
	s.mu.Unlock()

	watchCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.watchCancel = cancel
	s.mu.Unlock()

	events, err := s.watcher.Watch(watchCtx, filePath)
	if err != nil {
		cancel()
		s.mu.Lock()
		s.watching = false
		s.watchCancel = nil
		s.mu.Unlock()
		return fmt.Errorf("starting watcher: %w", err)
	}

	go s.handleEvents(watchCtx, events)

	return nil
}

// Stop stops watching. Stopping a service that is not watching is a no-op.
func (s *LiveReloadService) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.watching {
		return nil
	}

	if s.watchCancel != nil {
		s.watchCancel()
		s.watchCancel = nil
	}

	s.watching = false
	return nil
}

// IsWatching returns whether the service is currently watching.
func (s *LiveReloadService) IsWatching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watching
}

func (s *LiveReloadService) handleEvents(ctx context.Context, events <-chan ports.FileChangeEvent) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-events:
			if !ok {
				return
			}

			s.logger.Info().
				Str("path", event.Path).
				Str("type", event.Type.String()).
				Time("timestamp", event.Timestamp).
				Msg("file change detected")

			if event.Type == ports.Deleted {
				s.notifyError(event, "source file deleted")
				continue
			}

			if err := s.reloadDeck(ctx); err != nil {
				s.logger.Error().Err(err).Str("path", event.Path).Msg("reloading deck")
				s.notifyError(event, err.Error())
				continue
			}

			s.notifyReload(event)
		}
	}
}

// reloadDeck re-extracts the source file and swaps the server's deck.
func (s *LiveReloadService) reloadDeck(ctx context.Context) error {
	s.mu.Lock()
	path := s.sourcePath
	s.mu.Unlock()

	if path == "" {
		return errors.New("no source path set")
	}

	content, err := os.ReadFile(path) // #nosec G304 - watching this user-chosen path is the point
	if err != nil {
		return fmt.Errorf("reading source file: %w", err)
	}

	result := s.extraction.ExtractContent(ctx, entities.SourceDocument{
		Locator: path,
		Content: content,
	})
	if !result.Succeeded() {
		return fmt.Errorf("extracting slides: %s", result.Error)
	}

	presentation, err := entities.RestorePresentation(*result.Presentation)
	if err != nil {
		return fmt.Errorf("restoring presentation: %w", err)
	}

	s.server.SetPresentation(presentation)
	s.logger.Info().Int("slides", presentation.SlideCount()).Str("path", path).Msg("deck reloaded")

	return nil
}

func (s *LiveReloadService) notifyReload(event ports.FileChangeEvent) {
	updateEvent := ports.UpdateEvent{
		Type:      ports.EventTypeReload,
		Timestamp: event.Timestamp,
		Data: map[string]interface{}{
			"file": event.Path,
			"type": event.Type.String(),
		},
	}

	if err := s.server.NotifyClients(updateEvent); err != nil {
		s.logger.Warn().Err(err).Str("file", event.Path).Msg("notifying clients")
	}
}

func (s *LiveReloadService) notifyError(event ports.FileChangeEvent, message string) {
	updateEvent := ports.UpdateEvent{
		Type:      ports.EventTypeError,
		Timestamp: event.Timestamp,
		Data: map[string]interface{}{
			"file":    event.Path,
			"message": message,
		},
	}

	if err := s.server.NotifyClients(updateEvent); err != nil {
		s.logger.Warn().Err(err).Str("file", event.Path).Msg("notifying clients")
	}
}
