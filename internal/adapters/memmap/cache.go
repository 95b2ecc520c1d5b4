// Package memmap implements the asynchronous memory map caches of execution
// contexts.
package memmap

import (
	"context"

	"go.trai.ch/tcfview/internal/core/domain"
	"go.trai.ch/tcfview/internal/core/ports"
)

var _ ports.MemoryMapCache = (*Cache)(nil)

// Cache holds the memory map of one execution context. Fetches run on their
// own goroutine and their results are posted back through the dispatcher.
// Every method other than the posted resolution must be called on the
// dispatcher thread.
type Cache struct {
	contextID  domain.InternedString
	source     ports.MemoryMapSource
	dispatcher ports.Dispatcher
	base       context.Context

	data     []domain.MemoryRegion
	err      error
	valid    bool
	inflight bool
	cancel   context.CancelFunc

	// generation is bumped by Invalidate so that fetches issued before it
	// resolve into nothing.
	generation uint64
	waiters    []func()
	fetches    int
}

// NewCache creates an empty cache for the given context.
func NewCache(
	ctx context.Context,
	contextID domain.InternedString,
	source ports.MemoryMapSource,
	dispatcher ports.Dispatcher,
) *Cache {
	return &Cache{
		contextID:  contextID,
		source:     source,
		dispatcher: dispatcher,
		base:       ctx,
	}
}

// ContextID returns the context whose memory map is cached.
func (c *Cache) ContextID() domain.InternedString { return c.contextID }

// Fetches returns how many fetches were issued.
func (c *Cache) Fetches() int { return c.fetches }

// Validate returns true when the cached memory map is current. Otherwise it
// makes sure a fetch is in flight and queues done, which then runs once the
// fetch resolves.
func (c *Cache) Validate(done func()) bool {
	if c.valid {
		return true
	}
	if done != nil {
		c.waiters = append(c.waiters, done)
	}
	if !c.inflight {
		c.issue()
	}
	return false
}

// Data returns the regions of the last resolved fetch.
func (c *Cache) Data() []domain.MemoryRegion { return c.data }

// Err returns the error of the last resolved fetch.
func (c *Cache) Err() error { return c.err }

// Invalidate drops the cached memory map. An in-flight fetch is cancelled
// and, when callers are waiting on it, re-issued.
func (c *Cache) Invalidate() {
	c.generation++
	c.valid = false
	c.data = nil
	c.err = nil
	if !c.inflight {
		return
	}
	c.cancel()
	c.inflight = false
	if len(c.waiters) > 0 {
		c.issue()
	}
}

// Close cancels an in-flight fetch and drops the waiters.
func (c *Cache) Close() {
	c.generation++
	if c.inflight {
		c.cancel()
		c.inflight = false
	}
	c.waiters = nil
}

func (c *Cache) issue() {
	ctx, cancel := context.WithCancel(c.base)
	c.cancel = cancel
	c.inflight = true
	c.fetches++

	gen := c.generation
	go func() {
		regions, err := c.source.Fetch(ctx, c.contextID)
		c.dispatcher.Post(func() { c.resolve(gen, regions, err) })
	}()
}

func (c *Cache) resolve(gen uint64, regions []domain.MemoryRegion, err error) {
	if gen != c.generation {
		return
	}
	c.cancel()
	c.inflight = false
	c.valid = true
	if err != nil {
		regions = nil
	}
	c.data = regions
	c.err = err

	waiters := c.waiters
	c.waiters = nil
	for _, done := range waiters {
		done()
	}
}
