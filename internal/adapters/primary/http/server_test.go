package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
	"github.com/fredcamaral/decksmith/internal/domain/ports"
)

// MockPreviewRenderer is a mock implementation of ports.PreviewRenderer
type MockPreviewRenderer struct {
	mock.Mock
}

func (m *MockPreviewRenderer) RenderPage(presentation *entities.Presentation) ([]byte, error) {
	args := m.Called(presentation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func newTestServer(t *testing.T) (*Server, *MockPreviewRenderer) {
	t.Helper()
	renderer := new(MockPreviewRenderer)
	server := NewServer(renderer, getTestServerConfig(), zerolog.Nop())
	return server, renderer
}

func testDeck(t *testing.T) *entities.Presentation {
	t.Helper()
	presentation, err := entities.NewPresentation([]entities.Slide{
		{ID: "slide-1", Title: "Quarterly Report", Content: "# Quarterly Report\n\nWelcome.", SourceType: entities.SourceMarkdown},
		{ID: "slide-2", Title: "Numbers", Content: "# Numbers\n\n- Revenue up", SourceType: entities.SourceMarkdown},
		{ID: "slide-3", Title: "Outlook", Content: "# Outlook\n\nSteady.", SourceType: entities.SourceMarkdown},
	}, entities.SourceMarkdown)
	require.NoError(t, err)
	return presentation
}

func TestServerLifecycle(t *testing.T) {
	t.Run("start server", func(t *testing.T) {
		server, _ := newTestServer(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Port 0 lets the OS pick a free port
		err := server.Start(ctx, 0, "localhost")
		require.NoError(t, err)
		assert.True(t, server.IsRunning())

		err = server.Stop(context.Background())
		assert.NoError(t, err)
		assert.False(t, server.IsRunning())
	})

	t.Run("server already running", func(t *testing.T) {
		server, _ := newTestServer(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		err := server.Start(ctx, 0, "localhost")
		require.NoError(t, err)
		defer func() { _ = server.Stop(context.Background()) }()

		err = server.Start(ctx, 0, "localhost")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already running")
	})

	t.Run("stop server not running", func(t *testing.T) {
		server, _ := newTestServer(t)

		err := server.Stop(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not running")
	})
}

func TestSetPresentation(t *testing.T) {
	server, _ := newTestServer(t)
	assert.Nil(t, server.GetPresentation())

	deck := testDeck(t)
	server.SetPresentation(deck)
	assert.Equal(t, deck, server.GetPresentation())
}

func TestNotifyClients(t *testing.T) {
	t.Run("not running", func(t *testing.T) {
		server, _ := newTestServer(t)

		err := server.NotifyClients(ports.UpdateEvent{Type: ports.EventTypeReload, Timestamp: time.Now()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not running")
	})

	t.Run("running", func(t *testing.T) {
		server, _ := newTestServer(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		require.NoError(t, server.Start(ctx, 0, "localhost"))
		defer func() { _ = server.Stop(context.Background()) }()

		err := server.NotifyClients(ports.UpdateEvent{Type: ports.EventTypeReload, Timestamp: time.Now()})
		assert.NoError(t, err)
	})
}

func TestBroadcastMethods(t *testing.T) {
	server, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, server.Start(ctx, 0, "localhost"))
	defer func() { _ = server.Stop(context.Background()) }()

	// No clients connected; broadcasts must still be safe to call.
	assert.NotPanics(t, func() {
		server.BroadcastReload()
		server.BroadcastError("extraction failed")
	})
}

func TestServerHTTPEndpoints(t *testing.T) {
	server, renderer := newTestServer(t)
	renderer.On("RenderPage", mock.Anything).Return([]byte("<!DOCTYPE html><html><body>deck</body></html>"), nil)

	ts := httptest.NewServer(server.setupRoutes())
	defer ts.Close()

	t.Run("preview page without deck", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	})

	t.Run("presentation endpoint without deck", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/presentation")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var errResp ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
		assert.Equal(t, "no presentation loaded", errResp.Error)
	})

	t.Run("presentation endpoint with deck", func(t *testing.T) {
		server.SetPresentation(testDeck(t))

		resp, err := http.Get(ts.URL + "/api/presentation")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

		var snapshot entities.PresentationSnapshot
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&snapshot))
		assert.Equal(t, "Quarterly Report", snapshot.Title)
		assert.Equal(t, 3, snapshot.SlideCount)
		assert.Len(t, snapshot.Slides, 3)
	})

	t.Run("slides endpoint", func(t *testing.T) {
		server.SetPresentation(testDeck(t))

		resp, err := http.Get(ts.URL + "/api/slides")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var slides []entities.Slide
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&slides))
		require.Len(t, slides, 3)
		assert.Equal(t, "Numbers", slides[1].Title)
	})

	t.Run("slide by index", func(t *testing.T) {
		server.SetPresentation(testDeck(t))

		resp, err := http.Get(ts.URL + "/api/slides/2")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var slide entities.Slide
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&slide))
		assert.Equal(t, "slide-3", slide.ID)
		assert.Equal(t, "Outlook", slide.Title)
	})

	t.Run("slide index out of range", func(t *testing.T) {
		server.SetPresentation(testDeck(t))

		resp, err := http.Get(ts.URL + "/api/slides/9")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var errResp ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
		assert.Contains(t, errResp.Error, "out of range")
	})

	t.Run("non-numeric slide index misses route", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/slides/abc")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("method not allowed", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/slides", "application/json", nil)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})

	t.Run("health endpoint", func(t *testing.T) {
		server.SetPresentation(testDeck(t))

		resp, err := http.Get(ts.URL + "/api/health")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var health HealthResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
		assert.Equal(t, "ok", health.Status)
		assert.True(t, health.DeckLoaded)
		assert.Equal(t, 3, health.SlideCount)
		assert.Equal(t, 0, health.Connections)
	})

	t.Run("security headers applied", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/health")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
		assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
		assert.Contains(t, resp.Header.Get("Content-Security-Policy"), "frame-ancestors 'none'")
	})
}

func TestServerConfigValidation(t *testing.T) {
	assert.Panics(t, func() {
		NewServer(new(MockPreviewRenderer), nil, zerolog.Nop())
	})
}
