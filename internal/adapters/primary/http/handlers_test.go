package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
)

func getTestServerConfig() *entities.ServerConfig {
	return &entities.ServerConfig{
		Host:            "localhost",
		Port:            8080,
		ReadTimeout:     30,
		WriteTimeout:    30,
		ShutdownTimeout: 5,
		CORSOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
	}
}

func TestHandlePreview(t *testing.T) {
	t.Run("renders loaded deck", func(t *testing.T) {
		server, renderer := newTestServer(t)
		deck := testDeck(t)
		server.SetPresentation(deck)
		renderer.On("RenderPage", deck).Return([]byte("<html>rendered deck</html>"), nil)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		server.handlePreview(w, req)

		resp := w.Result()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "rendered deck")
		renderer.AssertExpectations(t)
	})

	t.Run("falls back to placeholder deck", func(t *testing.T) {
		server, renderer := newTestServer(t)
		renderer.On("RenderPage", mock.MatchedBy(func(p *entities.Presentation) bool {
			return p.Title() == "No Deck Loaded"
		})).Return([]byte("<html>placeholder</html>"), nil)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		server.handlePreview(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		renderer.AssertExpectations(t)
	})

	t.Run("renderer failure", func(t *testing.T) {
		server, renderer := newTestServer(t)
		server.SetPresentation(testDeck(t))
		renderer.On("RenderPage", mock.Anything).Return(nil, errors.New("template exploded"))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		server.handlePreview(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var errResp ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&errResp))
		assert.Contains(t, errResp.Error, "template exploded")
	})
}

func TestHandlePresentation(t *testing.T) {
	t.Run("no presentation loaded", func(t *testing.T) {
		server, _ := newTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/api/presentation", nil)
		w := httptest.NewRecorder()
		server.handlePresentation(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var errResp ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&errResp))
		assert.Equal(t, "no presentation loaded", errResp.Error)
	})

	t.Run("returns snapshot", func(t *testing.T) {
		server, _ := newTestServer(t)
		server.SetPresentation(testDeck(t))

		req := httptest.NewRequest(http.MethodGet, "/api/presentation", nil)
		w := httptest.NewRecorder()
		server.handlePresentation(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var snapshot entities.PresentationSnapshot
		require.NoError(t, json.NewDecoder(w.Body).Decode(&snapshot))
		assert.NotEmpty(t, snapshot.ID)
		assert.Equal(t, "Quarterly Report", snapshot.Title)
		assert.Equal(t, entities.SourceMarkdown, snapshot.SourceType)
		assert.Equal(t, 3, snapshot.SlideCount)
	})
}

func TestHandleSlides(t *testing.T) {
	t.Run("no presentation loaded", func(t *testing.T) {
		server, _ := newTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/api/slides", nil)
		w := httptest.NewRecorder()
		server.handleSlides(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns slide list", func(t *testing.T) {
		server, _ := newTestServer(t)
		server.SetPresentation(testDeck(t))

		req := httptest.NewRequest(http.MethodGet, "/api/slides", nil)
		w := httptest.NewRecorder()
		server.handleSlides(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var slides []entities.Slide
		require.NoError(t, json.NewDecoder(w.Body).Decode(&slides))
		require.Len(t, slides, 3)
		assert.Equal(t, "slide-1", slides[0].ID)
		assert.Equal(t, "Outlook", slides[2].Title)
	})
}

func TestHandleSlide(t *testing.T) {
	tests := []struct {
		name       string
		index      string
		wantStatus int
		wantTitle  string
	}{
		{name: "first slide", index: "0", wantStatus: http.StatusOK, wantTitle: "Quarterly Report"},
		{name: "last slide", index: "2", wantStatus: http.StatusOK, wantTitle: "Outlook"},
		{name: "out of range", index: "3", wantStatus: http.StatusNotFound},
		{name: "overflows int", index: "99999999999999999999", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newTestServer(t)
			server.SetPresentation(testDeck(t))

			req := httptest.NewRequest(http.MethodGet, "/api/slides/"+tt.index, nil)
			req = mux.SetURLVars(req, map[string]string{"index": tt.index})
			w := httptest.NewRecorder()
			server.handleSlide(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				var slide entities.Slide
				require.NoError(t, json.NewDecoder(w.Body).Decode(&slide))
				assert.Equal(t, tt.wantTitle, slide.Title)
			}
		})
	}

	t.Run("no presentation loaded", func(t *testing.T) {
		server, _ := newTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/api/slides/0", nil)
		req = mux.SetURLVars(req, map[string]string{"index": "0"})
		w := httptest.NewRecorder()
		server.handleSlide(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleHealth(t *testing.T) {
	t.Run("no deck", func(t *testing.T) {
		server, _ := newTestServer(t)

		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		w := httptest.NewRecorder()
		server.handleHealth(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var health HealthResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&health))
		assert.Equal(t, "ok", health.Status)
		assert.False(t, health.DeckLoaded)
		assert.Equal(t, 0, health.SlideCount)
		assert.Equal(t, int64(0), health.UptimeSeconds)
	})

	t.Run("with deck", func(t *testing.T) {
		server, _ := newTestServer(t)
		server.SetPresentation(testDeck(t))

		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		w := httptest.NewRecorder()
		server.handleHealth(w, req)

		var health HealthResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&health))
		assert.True(t, health.DeckLoaded)
		assert.Equal(t, 3, health.SlideCount)
	})
}

func TestPlaceholderDeck(t *testing.T) {
	server, _ := newTestServer(t)

	deck := server.placeholderDeck()
	require.NotNil(t, deck)
	assert.Equal(t, "No Deck Loaded", deck.Title())
	assert.Equal(t, 1, deck.SlideCount())

	slides := deck.Slides()
	assert.True(t, strings.HasPrefix(slides[0].Content, "# No Deck Loaded"))
}
