package ports

import (
	"context"

	"go.trai.ch/tcfview/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=memory_map.go -destination=mocks/mock_memory_map.go -package=mocks

// MemoryMapCache is the asynchronous cache of one execution context's memory
// map. All methods must be called on the dispatcher thread.
type MemoryMapCache interface {
	// Validate returns true when Data and Err are current. Otherwise it makes
	// sure a fetch is in flight and returns false; done, when non-nil, runs on
	// the dispatcher thread once the fetch resolves.
	Validate(done func()) bool
	// Data returns the regions of the last resolved fetch, nil on error.
	Data() []domain.MemoryRegion
	// Err returns the error of the last resolved fetch.
	Err() error
	// Invalidate drops the cached result; an in-flight fetch is superseded.
	Invalidate()
}

// MemoryMapService hands out the memory map cache of an execution context.
type MemoryMapService interface {
	MemoryMap(contextID domain.InternedString) MemoryMapCache
}

// MemoryMapSource is the backend that answers memory map requests. Fetch may
// block and is never called on the dispatcher thread.
type MemoryMapSource interface {
	Fetch(ctx context.Context, contextID domain.InternedString) ([]domain.MemoryRegion, error)
}
