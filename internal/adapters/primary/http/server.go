// Package http serves an extracted deck as a live-reloading local preview:
// a self-contained HTML page, a small JSON API over the presentation
// snapshot, and a WebSocket channel that pushes reloads when the source
// changes.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
	"github.com/fredcamaral/decksmith/internal/domain/ports"
)

// Server implements the HTTPServer interface
type Server struct {
	server       *http.Server
	connMgr      *ConnectionManager
	renderer     ports.PreviewRenderer
	presentation *entities.Presentation
	config       *entities.ServerConfig
	logger       zerolog.Logger
	startedAt    time.Time
	mu           sync.RWMutex
	running      bool
}

// NewServer creates a new preview server.
// config must not be nil - use config.GetDefaultConfig().Server if needed
func NewServer(renderer ports.PreviewRenderer, config *entities.ServerConfig, logger zerolog.Logger) *Server {
	if config == nil {
		panic("server config cannot be nil - provide a valid ServerConfig")
	}
	return &Server{
		renderer: renderer,
		connMgr:  NewConnectionManager(),
		config:   config,
		logger:   logger,
	}
}

// SetPresentation sets the current presentation
func (s *Server) SetPresentation(p *entities.Presentation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presentation = p
}

// GetPresentation returns the current presentation
func (s *Server) GetPresentation() *entities.Presentation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.presentation
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context, port int, host string) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}

	// Start connection manager
	go s.connMgr.Run(ctx)

	router := s.setupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.GetCORSOrigins(),
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           300,
	})
	handler := c.Handler(router)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      handler,
		ReadTimeout:  s.config.GetReadTimeout(),
		WriteTimeout: s.config.GetWriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}
	s.startedAt = time.Now()
	s.running = true
	s.mu.Unlock()

	go func() {
		s.logger.Info().Str("host", host).Int("port", port).Msg("preview server starting")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("preview server error")
		}
	}()

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return errors.New("server not running")
	}

	// Close all WebSocket connections
	s.connMgr.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.GetShutdownTimeout())
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.running = false
	return nil
}

// NotifyClients sends an update event to all connected clients
func (s *Server) NotifyClients(event ports.UpdateEvent) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.running {
		return errors.New("server not running")
	}

	s.connMgr.Broadcast(event)
	return nil
}

// IsRunning returns whether the server is currently running
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() http.Handler {
	router := mux.NewRouter()

	// WebSocket endpoint
	router.HandleFunc("/ws", s.handleWebSocket)

	// API endpoints
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/presentation", s.handlePresentation).Methods(http.MethodGet)
	api.HandleFunc("/slides", s.handleSlides).Methods(http.MethodGet)
	api.HandleFunc("/slides/{index:[0-9]+}", s.handleSlide).Methods(http.MethodGet)
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	// Preview page
	router.HandleFunc("/", s.handlePreview).Methods(http.MethodGet)

	// Apply middleware in order: security -> rate limiting -> logging -> recovery
	handler := securityHeadersMiddleware(router)
	handler = rateLimitMiddleware(handler)
	handler = loggingMiddleware(handler, s.logger)
	handler = recoveryMiddleware(handler, s.logger)

	return handler
}

// Ensure Server implements ports.HTTPServer
var _ ports.HTTPServer = (*Server)(nil)
