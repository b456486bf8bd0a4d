package http

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/fredcamaral/decksmith/internal/domain/ports"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512
)

// createUpgrader creates a WebSocket upgrader with proper origin validation
func (s *Server) createUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return s.isValidOrigin(r)
		},
	}
}

// WebSocketClient represents a WebSocket client connection
type WebSocketClient struct {
	id      string
	conn    *websocket.Conn
	send    chan ports.UpdateEvent
	manager *ConnectionManager
	logger  zerolog.Logger
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := s.createUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := &WebSocketClient{
		id:      uuid.New().String(),
		conn:    conn,
		send:    make(chan ports.UpdateEvent, 256),
		manager: s.connMgr,
		logger:  s.logger,
	}

	s.connMgr.register <- &Connection{
		ID:   client.id,
		Send: client.send,
	}

	go client.writePump()
	go client.readPump()

	// Send initial connection event
	event := ports.UpdateEvent{
		Type:      "connected",
		Timestamp: time.Now(),
		Data: map[string]string{
			"message": "Connected to decksmith preview",
		},
	}

	select {
	case client.send <- event:
	default:
		// Client's send channel is full
	}
}

// readPump drains the WebSocket connection. Preview clients only listen;
// inbound messages are discarded, but the pump keeps pong handling and
// close detection alive.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.manager.Unregister(c.id)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error().Err(err).Str("client", c.id).Msg("WebSocket connection error")
			}
			break
		}
	}
}

// writePump pumps messages to the WebSocket connection
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The channel has been closed
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// BroadcastReload sends a reload event to all connected clients
func (s *Server) BroadcastReload() {
	event := ports.UpdateEvent{
		Type:      ports.EventTypeReload,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"message": "Presentation updated",
		},
	}
	_ = s.NotifyClients(event)
}

// BroadcastError pushes an extraction failure to connected clients so the
// preview can surface it instead of silently keeping the stale deck.
func (s *Server) BroadcastError(message string) {
	event := ports.UpdateEvent{
		Type:      ports.EventTypeError,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"message": message,
		},
	}
	_ = s.NotifyClients(event)
}

// isValidOrigin validates WebSocket connection origins. The preview server
// is a local tool, so localhost and private-range origins are always
// allowed; anything else must match the configured CORS whitelist.
func (s *Server) isValidOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// Allow empty origin (same-origin requests)
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		s.logger.Warn().Str("origin", origin).Err(err).Msg("WebSocket connection rejected: invalid origin URL")
		return false
	}

	if isLocalOrigin(originURL) {
		return true
	}

	for _, allowedOrigin := range s.config.GetCORSOrigins() {
		if originURL.String() == allowedOrigin {
			return true
		}

		// Support wildcard subdomains (*.example.com)
		if strings.HasPrefix(allowedOrigin, "*.") {
			domain := strings.TrimPrefix(allowedOrigin, "*.")
			if strings.HasSuffix(originURL.Hostname(), domain) {
				return true
			}
		}
	}

	s.logger.Warn().
		Str("origin", originURL.String()).
		Strs("allowed_origins", s.config.GetCORSOrigins()).
		Msg("WebSocket connection rejected: origin not in whitelist")
	return false
}

// isLocalOrigin reports whether the origin is localhost or a private
// network address.
func isLocalOrigin(originURL *url.URL) bool {
	hostname := originURL.Hostname()

	switch hostname {
	case "localhost", "127.0.0.1", "0.0.0.0", "::1":
		return true
	}

	if strings.HasPrefix(hostname, "192.168.") || strings.HasPrefix(hostname, "10.") {
		return true
	}

	return isPrivateClassB(hostname)
}

// isPrivateClassB checks for 172.16.0.0 to 172.31.255.255 range
func isPrivateClassB(hostname string) bool {
	if !strings.HasPrefix(hostname, "172.") {
		return false
	}

	parts := strings.Split(hostname, ".")
	if len(parts) < 2 {
		return false
	}

	switch parts[1] {
	case "16", "17", "18", "19", "20", "21", "22", "23", "24", "25", "26", "27", "28", "29", "30", "31":
		return true
	default:
		return false
	}
}
