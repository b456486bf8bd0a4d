package ports

import (
	"context"
	"time"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
)

// HTTPServer is the preview server surface the serve command drives.
type HTTPServer interface {
	Start(ctx context.Context, port int, host string) error
	Stop(ctx context.Context) error
	SetPresentation(p *entities.Presentation)
	NotifyClients(event UpdateEvent) error
	IsRunning() bool
}

// UpdateEvent represents an event pushed to connected WebSocket clients.
type UpdateEvent struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// UpdateEvent type constants.
const (
	EventTypeReload = "reload"
	EventTypeError  = "error"
)
