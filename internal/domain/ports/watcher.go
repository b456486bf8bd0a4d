package ports

import (
	"context"
	"time"
)

// FileWatcher watches a single deck source file for changes so the preview
// server can re-extract and push reloads.
type FileWatcher interface {
	// Watch starts watching the file; the channel closes when the context is
	// cancelled or the watcher is stopped.
	Watch(ctx context.Context, path string) (<-chan FileChangeEvent, error)

	// Stop stops the watcher and releases its resources.
	Stop() error
}

// FileChangeEvent describes one observed change to the watched file.
type FileChangeEvent struct {
	Path      string
	Type      ChangeType
	Timestamp time.Time
}

// ChangeType classifies a file change.
type ChangeType int

const (
	// Modified indicates the file content or mtime changed.
	Modified ChangeType = iota
	// Deleted indicates the file disappeared from disk.
	Deleted
)

// String returns the string representation of ChangeType.
func (c ChangeType) String() string {
	switch c {
	case Modified:
		return "modified"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}
