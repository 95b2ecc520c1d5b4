package memmap

import (
	"context"

	"go.trai.ch/tcfview/internal/core/domain"
	"go.trai.ch/tcfview/internal/core/ports"
)

var _ ports.MemoryMapService = (*Service)(nil)

// Service hands out one Cache per execution context. It must be used on the
// dispatcher thread.
type Service struct {
	source     ports.MemoryMapSource
	dispatcher ports.Dispatcher
	ctx        context.Context
	cancel     context.CancelFunc
	caches     map[domain.InternedString]*Cache
}

// NewService creates a service whose fetches are cancelled when ctx is done
// or Close is called.
func NewService(ctx context.Context, source ports.MemoryMapSource, dispatcher ports.Dispatcher) *Service {
	ctx, cancel := context.WithCancel(ctx)
	return &Service{
		source:     source,
		dispatcher: dispatcher,
		ctx:        ctx,
		cancel:     cancel,
		caches:     make(map[domain.InternedString]*Cache),
	}
}

// MemoryMap returns the cache of the given context, creating it on first use.
func (s *Service) MemoryMap(contextID domain.InternedString) ports.MemoryMapCache {
	return s.Cache(contextID)
}

// Cache is MemoryMap with the concrete type.
func (s *Service) Cache(contextID domain.InternedString) *Cache {
	c, ok := s.caches[contextID]
	if !ok {
		c = NewCache(s.ctx, contextID, s.source, s.dispatcher)
		s.caches[contextID] = c
	}
	return c
}

// Forget closes and drops the cache of a context that went away.
func (s *Service) Forget(contextID domain.InternedString) {
	if c, ok := s.caches[contextID]; ok {
		c.Close()
		delete(s.caches, contextID)
	}
}

// Close cancels every in-flight fetch.
func (s *Service) Close() {
	for _, c := range s.caches {
		c.Close()
	}
	s.cancel()
}
