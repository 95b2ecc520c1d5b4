// Package watcher reports changes of the session file.
package watcher

import (
	"context"
	"iter"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/tcfview/internal/core/domain"
	"go.trai.ch/tcfview/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultDebounceWindow is the default time window for coalescing file events.
const DefaultDebounceWindow = 50 * time.Millisecond

const eventChannelBuffer = 16

var _ ports.Watcher = (*Watcher)(nil)

// Watcher watches one file through its parent directory, so that editors
// replacing the file on save keep being observed. Bursts are coalesced by a
// Debouncer into a single event carrying the last operation seen.
type Watcher struct {
	logger    ports.Logger
	window    time.Duration
	fsWatcher *fsnotify.Watcher
	path      string
	events    chan ports.WatchEvent
	debouncer *Debouncer

	mu     sync.Mutex
	lastOp ports.WatchOp
	closed bool
	done   chan struct{}
}

// NewWatcher creates a watcher that coalesces events within window.
func NewWatcher(log ports.Logger, window time.Duration) *Watcher {
	w := &Watcher{
		logger: log,
		window: window,
		events: make(chan ports.WatchEvent, eventChannelBuffer),
		done:   make(chan struct{}),
	}
	w.debouncer = NewDebouncer(window, w.emit)
	return w
}

// Start begins watching the file at path.
func (w *Watcher) Start(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", path)
	}
	w.path = abs

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", path)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrWatchFailed.Error()), "path", path)
	}
	w.fsWatcher = fsw

	go w.processEvents(ctx)
	return nil
}

// Stop stops the watcher and ends the event stream.
func (w *Watcher) Stop() error {
	w.debouncer.Stop()
	if w.fsWatcher == nil {
		w.closeEvents()
		return nil
	}
	err := w.fsWatcher.Close()
	<-w.done
	return err
}

// Events returns an iterator of coalesced change events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.done)
	defer w.closeEvents()
	defer w.debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			op, ok := convertOp(event.Op)
			if !ok {
				continue
			}
			w.mu.Lock()
			w.lastOp = op
			w.mu.Unlock()
			w.debouncer.Add(event.Name)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher: " + err.Error())
		}
	}
}

// emit is the debouncer callback.
func (w *Watcher) emit(_ []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	event := ports.WatchEvent{Path: w.path, Operation: w.lastOp}
	select {
	case w.events <- event:
	default:
		// A reload is already queued and will read the latest file.
	}
}

func (w *Watcher) closeEvents() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		w.closed = true
		close(w.events)
	}
}

// convertOp maps an fsnotify operation onto a ports.WatchOp.
func convertOp(op fsnotify.Op) (ports.WatchOp, bool) {
	switch {
	case op.Has(fsnotify.Write):
		return ports.OpWrite, true
	case op.Has(fsnotify.Create):
		return ports.OpCreate, true
	case op.Has(fsnotify.Remove):
		return ports.OpRemove, true
	case op.Has(fsnotify.Rename):
		return ports.OpRename, true
	default:
		return 0, false
	}
}
