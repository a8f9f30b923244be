package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 250 * time.Millisecond

// Watcher reports changes to a slot file made by any process, including
// this one. Bursts of file events collapse into a single notification.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *slog.Logger

	fsw       *fsnotify.Watcher
	events    chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	stopped   chan struct{}
}

// WatchOption configures a Watcher
type WatchOption func(*Watcher)

// WithDebounce sets the quiet period before a change is reported
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithWatchLogger sets the logger used by the watcher
func WithWatchLogger(logger *slog.Logger) WatchOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// Watch starts watching the slot file at path. The parent directory is
// watched so that atomic rename writes are seen. Call Close to stop.
func Watch(path string, opts ...WatchOption) (*Watcher, error) {
	w := &Watcher{
		path:     filepath.Clean(path),
		debounce: defaultDebounce,
		logger:   slog.Default(),
		events:   make(chan struct{}, 1),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create watch directory: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.fsw = fsw

	go w.loop()
	return w, nil
}

// Events delivers one value per settled change. Notifications are dropped,
// not queued, while a previous one is still unread.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		<-w.stopped
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.stopped)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			w.logger.Debug("slot changed on disk", "path", w.path)
			select {
			case w.events <- struct{}{}:
			default:
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "path", w.path, "error", err)
		}
	}
}
