package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/docvault/internal/logger"
)

// DefaultSettleDelay is how long a file must stay unchanged before it is handled.
const DefaultSettleDelay = 500 * time.Millisecond

// Handler is called with the path of a file that was created or rewritten.
// Calls are sequential and happen on the goroutine running Watch.
type Handler func(ctx context.Context, path string)

// Watcher reports new and rewritten files in a single directory.
type Watcher struct {
	dir     string
	match   func(name string) bool
	handler Handler
	delay   time.Duration
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithSettleDelay sets the quiet period before a changed file is handled.
func WithSettleDelay(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.delay = d
		}
	}
}

// NewWatcher creates a watcher for dir. match filters base names.
func NewWatcher(dir string, match func(name string) bool, handler Handler, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		dir:     dir,
		match:   match,
		handler: handler,
		delay:   DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch blocks until ctx is cancelled, calling the handler for every
// matching file that is created or written. Bursts of events for the same
// file are coalesced into one call once the file has settled.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	logger.Info("Watching %s for new documents", w.dir)

	settle := newDebouncer(w.delay, ctx.Done())
	defer settle.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if path, ok := w.handleEvent(event); ok {
				settle.touch(path)
			}

		case path := <-settle.ready:
			settle.take(path)
			logger.Debug("Handling %s", path)
			w.handler(ctx, path)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// handleEvent returns the path to handle for an event, if any.
// Only create and write events on visible matching regular files count.
func (w *Watcher) handleEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	name := filepath.Base(event.Name)
	if isHidden(name) || !w.match(name) {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return event.Name, true
}

// debouncer holds paths back until they have been quiet for delay.
// It is used from a single goroutine.
type debouncer struct {
	delay   time.Duration
	pending map[string]*time.Timer
	ready   chan string
	done    <-chan struct{}
}

func newDebouncer(delay time.Duration, done <-chan struct{}) *debouncer {
	return &debouncer{
		delay:   delay,
		pending: make(map[string]*time.Timer),
		ready:   make(chan string),
		done:    done,
	}
}

// touch starts or restarts the quiet period for path. A timer that has
// already fired is not re-armed: its path is in flight on ready and will be
// handled after the current event.
func (d *debouncer) touch(path string) {
	if t, exists := d.pending[path]; exists {
		if t.Stop() {
			t.Reset(d.delay)
		}
		return
	}
	d.pending[path] = time.AfterFunc(d.delay, func() {
		select {
		case d.ready <- path:
		case <-d.done:
		}
	})
}

// take forgets path once it has been received from ready.
func (d *debouncer) take(path string) {
	delete(d.pending, path)
}

func (d *debouncer) stop() {
	for _, t := range d.pending {
		t.Stop()
	}
}
