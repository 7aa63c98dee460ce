// =============================================================================
// CSV to JSON Converter - Source Watcher
// =============================================================================
//
// This module re-runs a conversion whenever its source file changes.
//
// WATCH STRATEGY:
//   - The parent directory is watched instead of the file itself, so editors
//     that save through a temp file and a rename are still seen
//   - Only Write and Create events for the source path count
//   - Bursts of events are collapsed by a debounce timer
//   - Conversions run one at a time on the watch loop
//
// =============================================================================

package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Logger is the subset of the converter logger the watcher needs.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// Watcher triggers a run function when the source file is written or
// re-created.
type Watcher struct {
	source   string
	debounce time.Duration
	run      func() error
	logger   Logger
	ready    chan struct{}
}

// New creates a Watcher for source. run is called after every quiet period of
// debounce following a change; its errors are logged and do not stop the
// watcher.
func New(source string, debounce time.Duration, run func() error, logger Logger) (*Watcher, error) {
	absPath, err := filepath.Abs(source)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", source, err)
	}
	if debounce <= 0 {
		debounce = time.Millisecond
	}

	return &Watcher{
		source:   absPath,
		debounce: debounce,
		run:      run,
		logger:   logger,
		ready:    make(chan struct{}),
	}, nil
}

// Ready is closed once the watch is registered.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches until ctx is cancelled. It returns nil on cancellation and an
// error only if the watch cannot be set up or the event stream breaks.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(w.source)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	close(w.ready)
	w.logger.Info("Watching %s for changes", w.source)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return fmt.Errorf("watcher event stream closed")
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("Change detected: %s", event)
			timer.Reset(w.debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher error stream closed")
			}
			w.logger.Error("Watcher error: %v", err)

		case <-timer.C:
			if err := w.run(); err != nil {
				w.logger.Error("Conversion failed: %v", err)
			}
		}
	}
}

// relevant reports whether the event is a write or create of the source.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	absPath, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return absPath == w.source
}
