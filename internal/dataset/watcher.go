package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jmagar/movieboard/internal/logging"
)

// Watcher reloads a Store when its source file changes on disk. The parent
// directory is watched so editors that replace the file by rename still
// trigger a reload.
type Watcher struct {
	target   string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	reloadFn func() error

	mu    sync.Mutex
	timer *time.Timer

	reloaded chan struct{}
}

// WatcherOption customizes a Watcher.
type WatcherOption func(*Watcher)

// WithReloadFunc replaces the default store.Reload call, so callers can run
// follow-up work such as mirroring after each reload.
func WithReloadFunc(fn func() error) WatcherOption {
	return func(w *Watcher) {
		w.reloadFn = fn
	}
}

// NewWatcher creates a watcher for store's source file.
func NewWatcher(store *Store, debounce time.Duration, opts ...WatcherOption) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	target, err := filepath.Abs(store.Path())
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to resolve dataset path: %w", err)
	}

	if err := fw.Add(filepath.Dir(target)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	w := &Watcher{
		target:   target,
		debounce: debounce,
		watcher:  fw,
		reloaded: make(chan struct{}, 1),
	}
	w.reloadFn = func() error {
		_, err := store.Reload()
		return err
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Reloaded receives a value after each reload attempt triggered by the watcher.
func (w *Watcher) Reloaded() <-chan struct{} {
	return w.reloaded
}

// Run processes events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn().Err(err).Str("path", w.target).Msg("dataset watcher error")
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	name, err := filepath.Abs(event.Name)
	if err != nil || name != w.target {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	logging.Debug().Str("path", name).Str("op", event.Op.String()).Msg("dataset file changed")

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	// On failure the previous snapshot stays active.
	if err := w.reloadFn(); err != nil {
		logging.Warn().Err(err).Str("path", w.target).Msg("dataset reload after file change failed")
	}

	select {
	case w.reloaded <- struct{}{}:
	default:
	}
}
