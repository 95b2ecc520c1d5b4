package view

import (
	"errors"
	"strings"
	"sync"
	"time"

	"go.trai.ch/tcfview/internal/core/domain"
)

const (
	// DefaultMaxLines is the number of pending lines that forces a flush.
	DefaultMaxLines = 256
	// DefaultInterval is how often pending lines are flushed.
	DefaultInterval = 50 * time.Millisecond
)

// ErrBatcherClosed is returned by Add after Close.
var ErrBatcherClosed = errors.New("change batcher is closed")

// ChangeBatcher collects rendered change lines per parent. A flush hands out
// every pending line at once, grouped by parent, parents in the order they
// first changed since the previous flush. Several commits of one parent in a
// burst therefore end up next to each other.
type ChangeBatcher struct {
	maxLines int
	interval time.Duration
	emit     func([]byte)

	mu      sync.Mutex
	order   []domain.InternedString
	lines   map[domain.InternedString][]string
	pending int
	ticker  *time.Ticker
	stop    chan struct{}
	closed  bool
}

// NewChangeBatcher starts a batcher that passes flushed output to emit. Call
// Close to stop it.
func NewChangeBatcher(maxLines int, interval time.Duration, emit func([]byte)) *ChangeBatcher {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	b := &ChangeBatcher{
		maxLines: maxLines,
		interval: interval,
		emit:     emit,
		lines:    make(map[domain.InternedString][]string),
		ticker:   time.NewTicker(interval),
		stop:     make(chan struct{}),
	}
	go b.run()
	return b
}

// Add queues lines under parent and flushes once maxLines are pending.
func (b *ChangeBatcher) Add(parent domain.InternedString, lines ...string) error {
	if len(lines) == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrBatcherClosed
	}

	if _, ok := b.lines[parent]; !ok {
		b.order = append(b.order, parent)
	}
	b.lines[parent] = append(b.lines[parent], lines...)
	b.pending += len(lines)

	if b.pending >= b.maxLines {
		b.flushLocked()
		b.ticker.Reset(b.interval)
	}
	return nil
}

// Flush emits pending lines now.
func (b *ChangeBatcher) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.flushLocked()
	}
}

// Close emits pending lines and stops the ticker.
func (b *ChangeBatcher) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	close(b.stop)
	b.flushLocked()
	return nil
}

func (b *ChangeBatcher) run() {
	for {
		select {
		case <-b.ticker.C:
			b.Flush()
		case <-b.stop:
			b.ticker.Stop()
			return
		}
	}
}

// flushLocked runs emit under mu so that flushes stay ordered.
func (b *ChangeBatcher) flushLocked() {
	if b.pending == 0 {
		return
	}
	var sb strings.Builder
	for _, parent := range b.order {
		for _, line := range b.lines[parent] {
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	b.order = b.order[:0]
	clear(b.lines)
	b.pending = 0

	if b.emit != nil {
		b.emit([]byte(sb.String()))
	}
}
