package model

import (
	"context"

	"go.trai.ch/tcfview/internal/core/domain"
	"go.trai.ch/tcfview/internal/core/ports"
	"go.trai.ch/tcfview/internal/engine/childset"
	"go.trai.ch/zerr"
)

// ModulesStrategy reconciles an execution context's modules against its
// memory map. Module identity is positional: the region at index i always
// binds to <parent>.Module-<i>.
type ModulesStrategy struct {
	model    *Model
	parent   domain.InternedString
	cache    ports.MemoryMapCache
	children *childset.ChildSet

	// waiting is set while a memory map fetch requested by round is
	// outstanding.
	waiting bool
	round   uint64
}

// StartDataRetrieval suspends until the memory map is available, then
// commits one module per region together with the fetch error, if any.
//
// A fetch requested by a superseded round is dropped and a fresh one is
// issued, so a result never predates the invalidation that caused the round.
func (s *ModulesStrategy) StartDataRetrieval(cs *childset.ChildSet) bool {
	if s.waiting && s.round != cs.Round() {
		s.model.logger.Debug("memory map refetch", "context", s.parent.String())
		s.cache.Invalidate()
	}
	if !s.cache.Validate(cs.Resume()) {
		s.waiting = true
		s.round = cs.Round()
		s.model.logger.Debug("memory map pending", "context", s.parent.String())
		return false
	}
	s.waiting = false

	_, span := s.model.tracer.Start(context.Background(), "reconcile.modules",
		ports.WithAttribute("parent", s.parent.String()))
	defer span.End()

	regions := s.cache.Data()
	fetchErr := s.cache.Err()
	mapping := make(map[domain.InternedString]domain.Node, len(regions))

	for i, region := range regions {
		id := domain.ChildID(s.parent, domain.ModulePrefix, i)
		node := s.lookup(id, i)
		node.Bind(region)
		if !node.Repositioned() {
			node.SetSortPosition(i)
		}
		mapping[id] = node
	}

	span.SetAttribute("children", len(mapping))
	if fetchErr != nil {
		span.RecordError(fetchErr)
		s.model.logger.Debug("memory map failed", "context", s.parent.String(), "error", fetchErr.Error())
	} else {
		s.model.logger.Debug("reconciled modules", "context", s.parent.String(), "children", len(mapping))
	}

	cs.Set(nil, fetchErr, mapping)
	return true
}

// lookup returns the registered module with the given identity, creating
// and registering it on first sight.
func (s *ModulesStrategy) lookup(id domain.InternedString, index int) *domain.ModuleNode {
	if n, ok := s.model.Node(id); ok {
		mod, ok := n.(*domain.ModuleNode)
		if !ok {
			panic(zerr.With(domain.ErrNodeExists, "id", id.String()))
		}
		return mod
	}
	mod := domain.NewModuleNode(s.parent, id, index)
	s.model.applyPosition(mod)
	s.model.Register(mod)
	return mod
}

// OnMemoryMapChanged asks every module to drop its region, then marks the
// set stale for the next access without superseding a pending round.
func (s *ModulesStrategy) OnMemoryMapChanged() {
	forEach(s.children, domain.MemoryMapListener.OnMemoryMapChanged)
	s.children.Reset()
}
