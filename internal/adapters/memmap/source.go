package memmap

import (
	"context"
	"encoding/binary"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/tcfview/internal/core/domain"
	"go.trai.ch/tcfview/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.MemoryMapSource = (*StaticSource)(nil)

// Changes lists the contexts that differ between two session snapshots.
type Changes struct {
	Added   []string
	Removed []string
	Changed []string
}

// Empty reports whether nothing changed.
func (c Changes) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && len(c.Changed) == 0
}

type entry struct {
	spec        domain.ContextSpec
	fingerprint uint64
}

// StaticSource answers memory map requests from session context specs.
// It is safe for concurrent use.
type StaticSource struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewStaticSource creates a source serving the given contexts.
func NewStaticSource(contexts []domain.ContextSpec) *StaticSource {
	s := &StaticSource{entries: make(map[string]entry, len(contexts))}
	s.Update(contexts)
	return s
}

// Fetch returns the memory map of a context after its configured latency.
func (s *StaticSource) Fetch(ctx context.Context, contextID domain.InternedString) ([]domain.MemoryRegion, error) {
	s.mu.RLock()
	e, ok := s.entries[contextID.String()]
	s.mu.RUnlock()
	if !ok {
		return nil, zerr.With(domain.ErrMemoryMapUnavailable, "context", contextID.String())
	}

	if e.spec.Latency > 0 {
		timer := time.NewTimer(e.spec.Latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil, zerr.Wrap(ctx.Err(), "memory map fetch cancelled")
		}
	}

	if e.spec.FetchError != "" {
		err := zerr.Wrap(errors.New(e.spec.FetchError), domain.ErrFetchFailed.Error())
		return nil, zerr.With(err, "context", contextID.String())
	}
	return slices.Clone(e.spec.Regions), nil
}

// Update replaces the served contexts and reports which of them were added,
// removed or given a different memory map. Lists are in session order, with
// removed contexts sorted.
func (s *StaticSource) Update(contexts []domain.ContextSpec) Changes {
	s.mu.Lock()
	defer s.mu.Unlock()

	var changes Changes
	next := make(map[string]entry, len(contexts))
	for _, spec := range contexts {
		e := entry{spec: spec, fingerprint: Fingerprint(spec)}
		next[spec.ID] = e
		old, ok := s.entries[spec.ID]
		switch {
		case !ok:
			changes.Added = append(changes.Added, spec.ID)
		case old.fingerprint != e.fingerprint:
			changes.Changed = append(changes.Changed, spec.ID)
		}
	}
	for id := range s.entries {
		if _, ok := next[id]; !ok {
			changes.Removed = append(changes.Removed, id)
		}
	}
	slices.Sort(changes.Removed)
	s.entries = next
	return changes
}

// Fingerprint hashes the parts of a context that determine its memory map.
func Fingerprint(spec domain.ContextSpec) uint64 {
	hasher := xxhash.New()
	var buf [8]byte
	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = hasher.Write(buf[:])
	}

	_, _ = hasher.WriteString(spec.FetchError)
	_, _ = hasher.Write([]byte{0})
	for _, r := range spec.Regions {
		writeUint(r.Address)
		writeUint(r.Size)
		writeUint(r.Offset)
		writeUint(uint64(r.Flags))
		_, _ = hasher.WriteString(r.FileName)
		_, _ = hasher.Write([]byte{0})
		_, _ = hasher.WriteString(r.SectionName)
		_, _ = hasher.Write([]byte{0})
	}
	return hasher.Sum64()
}
