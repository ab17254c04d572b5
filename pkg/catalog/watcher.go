package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"tabworks/pxtab/pkg/config"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches file-backed sources for changes and triggers
// refreshes. Changes are debounced per source, so editors that write a
// file in several bursts produce one refresh per quiet period rather
// than one per write.
type Watcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration

	// State
	mu      sync.Mutex
	sources map[string]string      // cleaned locator path -> source name
	timers  map[string]*time.Timer // pending refresh per source
	running bool
	stopped bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher creates a watcher with the given debounce delay. A zero or
// negative delay uses the default.
func NewWatcher(debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = config.DefaultCatalogDebounceDelay
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	return &Watcher{
		watcher:  fsw,
		logger:   slog.Default().With("component", "catalog.watcher"),
		debounce: debounce,
		sources:  make(map[string]string),
		timers:   make(map[string]*time.Timer),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Add registers a source's file path with the watcher.
func (w *Watcher) Add(source, locator string) error {
	path := filepath.Clean(locator)
	if err := w.watcher.Add(path); err != nil {
		return fmt.Errorf("watch %q: %w", path, err)
	}

	w.mu.Lock()
	w.sources[path] = source
	w.mu.Unlock()

	w.logger.Debug("watching file", "source", source, "path", path)
	return nil
}

// Watch processes file events and calls onChange with the affected
// source name after the debounce delay. It blocks until ctx is
// cancelled or Stop is called.
func (w *Watcher) Watch(ctx context.Context, onChange func(source string)) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	files := len(w.sources)
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.doneCh)
	}()

	w.logger.Info("file watcher started",
		"files", files,
		"debounce_ms", w.debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("file watcher stopped")
			return nil

		case <-w.stopCh:
			w.logger.Info("file watcher stopped")
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Chmod == fsnotify.Chmod {
				continue
			}

			source := w.lookup(event.Name)
			if source == "" {
				continue
			}

			w.logger.Debug("file event",
				"source", source,
				"path", event.Name,
				"op", event.Op.String(),
			)
			w.trigger(source, onChange)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("file watcher error", "error", err)
			// Keep watching
		}
	}
}

// Stop stops the watcher, cancels pending debounce timers and closes
// the underlying fsnotify watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	running := w.running
	for _, t := range w.timers {
		t.Stop()
	}
	w.mu.Unlock()

	close(w.stopCh)
	if running {
		<-w.doneCh
	}

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("close watcher: %w", err)
	}
	return nil
}

// lookup resolves an event path to its source name, or "".
func (w *Watcher) lookup(path string) string {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.sources[filepath.Clean(path)]
}

// trigger schedules the change callback for a source, restarting the
// quiet-period timer if a change is already pending.
func (w *Watcher) trigger(source string, onChange func(string)) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[source]; ok {
		t.Stop()
	}
	w.timers[source] = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.stopCh:
			return
		default:
		}
		onChange(source)
	})
}
