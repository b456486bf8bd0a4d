package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
)

// ErrorResponse is the JSON body returned for failed API requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports server liveness and the loaded deck.
type HealthResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	DeckLoaded    bool   `json:"deck_loaded"`
	SlideCount    int    `json:"slide_count"`
	Connections   int    `json:"connections"`
}

// handlePreview serves the rendered deck page.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	presentation := s.GetPresentation()
	if presentation == nil {
		presentation = s.placeholderDeck()
	}

	page, err := s.renderer.RenderPage(presentation)
	if err != nil {
		s.handleError(w, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(page); err != nil {
		s.logger.Error().Err(err).Msg("writing preview page")
	}
}

// handlePresentation returns the full presentation snapshot.
func (s *Server) handlePresentation(w http.ResponseWriter, r *http.Request) {
	presentation := s.GetPresentation()
	if presentation == nil {
		s.writeError(w, "no presentation loaded", http.StatusNotFound)
		return
	}

	s.writeJSON(w, presentation.Snapshot())
}

// handleSlides returns the slide list.
func (s *Server) handleSlides(w http.ResponseWriter, r *http.Request) {
	presentation := s.GetPresentation()
	if presentation == nil {
		s.writeError(w, "no presentation loaded", http.StatusNotFound)
		return
	}

	s.writeJSON(w, presentation.Slides())
}

// handleSlide returns one slide by its 0-based index.
func (s *Server) handleSlide(w http.ResponseWriter, r *http.Request) {
	presentation := s.GetPresentation()
	if presentation == nil {
		s.writeError(w, "no presentation loaded", http.StatusNotFound)
		return
	}

	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		s.writeError(w, "invalid slide index", http.StatusBadRequest)
		return
	}

	slide, err := presentation.Slide(index)
	if err != nil {
		s.writeError(w, err.Error(), http.StatusNotFound)
		return
	}

	s.writeJSON(w, slide)
}

// handleHealth reports server and deck status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	presentation := s.GetPresentation()

	health := HealthResponse{
		Status:      "ok",
		DeckLoaded:  presentation != nil,
		Connections: s.connMgr.Count(),
	}

	s.mu.RLock()
	if !s.startedAt.IsZero() {
		health.UptimeSeconds = int64(time.Since(s.startedAt).Seconds())
	}
	s.mu.RUnlock()

	if presentation != nil {
		health.SlideCount = presentation.SlideCount()
	}

	s.writeJSON(w, health)
}

// placeholderDeck is shown until a real deck has been extracted.
func (s *Server) placeholderDeck() *entities.Presentation {
	presentation, err := entities.NewPresentation([]entities.Slide{
		{
			ID:         "placeholder",
			Title:      "No Deck Loaded",
			Content:    "# No Deck Loaded\n\nPoint decksmith at a source file to see slides here.",
			SourceType: entities.SourceMarkdown,
		},
	}, entities.SourceMarkdown)
	if err != nil {
		// A single valid slide cannot fail construction.
		s.logger.Error().Err(err).Msg("building placeholder deck")
		return nil
	}
	return presentation
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("encoding JSON response")
	}
}

// writeError writes a JSON error response with the given status.
func (s *Server) writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		s.logger.Error().Err(err).Msg("encoding error response")
	}
}

// handleError logs the error and writes a generic failure response.
func (s *Server) handleError(w http.ResponseWriter, err error, status int) {
	s.logger.Error().Err(err).Int("status", status).Msg("request failed")
	s.writeError(w, err.Error(), status)
}
