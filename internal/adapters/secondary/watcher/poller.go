// Package watcher implements file watching by polling. Polling is less
// elegant than inotify but behaves identically across platforms and network
// mounts, which matters more for a preview loop than latency.
package watcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fredcamaral/decksmith/internal/domain/entities"
	"github.com/fredcamaral/decksmith/internal/domain/ports"
)

// PollingWatcher implements file watching using polling
type PollingWatcher struct {
	interval  time.Duration
	debounce  time.Duration
	logger    zerolog.Logger
	fileInfos map[string]FileInfo
	events    chan ports.FileChangeEvent
	mu        sync.RWMutex
	wg        sync.WaitGroup
	stopped   bool
	stopCh    chan struct{}
}

// FileInfo stores information about a file
type FileInfo struct {
	Size     int64
	ModTime  time.Time
	Checksum string
}

// NewPollingWatcher creates a new polling-based file watcher
func NewPollingWatcher(cfg entities.WatcherConfig, logger zerolog.Logger) *PollingWatcher {
	return &PollingWatcher{
		interval:  cfg.GetInterval(),
		debounce:  cfg.GetDebounce(),
		logger:    logger,
		fileInfos: make(map[string]FileInfo),
		events:    make(chan ports.FileChangeEvent, 10),
		stopCh:    make(chan struct{}),
	}
}

// Watch starts watching a file for changes
func (w *PollingWatcher) Watch(ctx context.Context, path string) (<-chan ports.FileChangeEvent, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	// Initial scan
	if err := w.scanFile(absPath); err != nil {
		return nil, fmt.Errorf("initial scan: %w", err)
	}

	// Start polling in background
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.pollLoop(ctx, absPath)
	}()

	return w.events, nil
}

// Stop stops the file watcher
func (w *PollingWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}

	w.stopped = true
	close(w.stopCh)

	// Wait for goroutines to finish
	w.wg.Wait()

	// Close events channel
	close(w.events)

	return nil
}

// scanFile scans a file and stores its info
func (w *PollingWatcher) scanFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	checksum, err := w.calculateChecksum(path)
	if err != nil {
		return fmt.Errorf("calculate checksum: %w", err)
	}

	w.mu.Lock()
	w.fileInfos[path] = FileInfo{
		Size:     info.Size(),
		ModTime:  info.ModTime(),
		Checksum: checksum,
	}
	w.mu.Unlock()

	return nil
}

// pollLoop continuously polls for file changes
func (w *PollingWatcher) pollLoop(ctx context.Context, path string) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	lastEventTime := time.Time{}

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			changed, changeType, err := w.checkForChanges(path)
			if err != nil {
				w.logger.Warn().Err(err).Str("path", path).Msg("watch error")
				continue
			}
			if !changed {
				continue
			}

			// Only send event if enough time has passed since last event
			if time.Since(lastEventTime) < w.debounce {
				continue
			}

			event := ports.FileChangeEvent{
				Path:      path,
				Type:      changeType,
				Timestamp: time.Now(),
			}

			select {
			case w.events <- event:
				lastEventTime = time.Now()
			case <-ctx.Done():
				return
			case <-w.stopCh:
				return
			}
		}
	}
}

// checkForChanges checks if a file has changed
func (w *PollingWatcher) checkForChanges(path string) (bool, ports.ChangeType, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Report the deletion once; the entry is gone on later polls.
			w.mu.Lock()
			_, existed := w.fileInfos[path]
			delete(w.fileInfos, path)
			w.mu.Unlock()
			return existed, ports.Deleted, nil
		}
		return false, ports.Modified, fmt.Errorf("stat file: %w", err)
	}

	w.mu.RLock()
	oldInfo, exists := w.fileInfos[path]
	w.mu.RUnlock()

	// Skip the checksum when size and mtime both match.
	if exists && oldInfo.Size == info.Size() && oldInfo.ModTime.Equal(info.ModTime()) {
		return false, ports.Modified, nil
	}

	checksum, err := w.calculateChecksum(path)
	if err != nil {
		return false, ports.Modified, fmt.Errorf("calculate checksum: %w", err)
	}

	if !exists {
		// File reappeared after a deletion
		w.mu.Lock()
		w.fileInfos[path] = FileInfo{
			Size:     info.Size(),
			ModTime:  info.ModTime(),
			Checksum: checksum,
		}
		w.mu.Unlock()
		return true, ports.Modified, nil
	}

	changed := oldInfo.Checksum != checksum
	if changed {
		w.mu.Lock()
		w.fileInfos[path] = FileInfo{
			Size:     info.Size(),
			ModTime:  info.ModTime(),
			Checksum: checksum,
		}
		w.mu.Unlock()
	}

	return changed, ports.Modified, nil
}

// calculateChecksum calculates SHA256 checksum of a file
func (w *PollingWatcher) calculateChecksum(path string) (string, error) {
	file, err := os.Open(path) // #nosec G304 - path is validated by caller
	if err != nil {
		return "", err
	}
	defer func() { _ = file.Close() }()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// Ensure PollingWatcher implements ports.FileWatcher
var _ ports.FileWatcher = (*PollingWatcher)(nil)
