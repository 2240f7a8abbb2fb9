// Package watcher re-runs an action when a single file changes.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/reecepbcups/jinc/logger"
)

// OnChange is called after a burst of changes to the watched file settles.
type OnChange func(ctx context.Context) error

// Watcher watches one file. The parent directory is watched rather than the
// file itself, so editors that save by renaming a temp file are still seen.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange OnChange
}

// New returns a watcher for path. A zero debounce fires on every event.
func New(path string, debounce time.Duration, onChange OnChange) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	return &Watcher{path: abs, debounce: debounce, onChange: onChange}, nil
}

// Run blocks until ctx is cancelled. Errors from onChange are logged and
// watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	log := logger.GetLogger()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	log.Info("Watching for changes", "file", w.path)

	// idle until the first event; Reset needs no drain since Go 1.23
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("Watcher stopped", "file", w.path)
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			log.Debug("File event", "op", event.Op.String(), "file", event.Name)
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Error("Watcher error", "error", err)

		case <-timer.C:
			if err := w.onChange(ctx); err != nil {
				log.Error("Rebuild failed", "file", w.path, "error", err)
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
