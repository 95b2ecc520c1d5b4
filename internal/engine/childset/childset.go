// Package childset implements the cache that owns a parent node's children
// and mediates their asynchronous repopulation.
//
// A ChildSet is populated lazily: Validate starts a retrieval round by
// calling the parent's Strategy. The strategy either commits a mapping with
// Set and reports true, or issues an asynchronous request and reports false.
// In the latter case it hands Resume() to the upstream source as the
// completion callback, and the round is re-run when the request resolves.
//
// Everything in this package must run on the dispatcher thread. There are no
// locks; stale rounds are recognized by a generation counter.
package childset

import (
	"cmp"
	"maps"
	"slices"

	"go.trai.ch/tcfview/internal/core/domain"
	"go.trai.ch/tcfview/internal/core/ports"
	"go.trai.ch/zerr"
)

// Strategy repopulates a ChildSet for one kind of parent.
type Strategy interface {
	// StartDataRetrieval returns false when it issued an asynchronous request
	// and must be re-invoked once that request resolves. It returns true once
	// it has committed a final mapping for this round via cs.Set.
	StartDataRetrieval(cs *ChildSet) bool
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc func(cs *ChildSet) bool

// StartDataRetrieval calls f(cs).
func (f StrategyFunc) StartDataRetrieval(cs *ChildSet) bool { return f(cs) }

// Option configures a ChildSet.
type Option func(*ChildSet)

// WithListener sets the sink for commit notifications.
func WithListener(l ports.ChildrenListener) Option {
	return func(cs *ChildSet) { cs.listener = l }
}

// WithRegistry makes the set unregister the nodes it drops.
func WithRegistry(r ports.NodeRegistry) Option {
	return func(cs *ChildSet) { cs.registry = r }
}

// WithCapacity sets the expected number of children.
func WithCapacity(n int) Option {
	return func(cs *ChildSet) { cs.capacity = n }
}

// ChildSet holds the authoritative children of one parent node.
type ChildSet struct {
	parent   domain.InternedString
	strategy Strategy
	listener ports.ChildrenListener
	registry ports.NodeRegistry
	capacity int

	nodes     map[domain.InternedString]domain.Node
	positions map[domain.InternedString]int
	err       error

	valid     bool
	pending   bool
	dirty     bool
	committed bool
	disposed  bool
	running   bool

	// generation is bumped by Invalidate; round is the generation the
	// current retrieval round started under.
	generation uint64
	round      uint64
	waiters    []func()
}

// New creates an empty, invalid ChildSet for parent.
func New(parent domain.InternedString, strategy Strategy, opts ...Option) *ChildSet {
	cs := &ChildSet{
		parent:   parent,
		strategy: strategy,
	}
	for _, opt := range opts {
		opt(cs)
	}
	cs.nodes = make(map[domain.InternedString]domain.Node, cs.capacity)
	cs.positions = make(map[domain.InternedString]int, cs.capacity)
	return cs
}

// Parent returns the identity of the owning node.
func (cs *ChildSet) Parent() domain.InternedString { return cs.parent }

// Capacity returns the expected number of children.
func (cs *ChildSet) Capacity() int { return cs.capacity }

// Valid reports whether the committed children are current.
func (cs *ChildSet) Valid() bool { return cs.valid }

// Pending reports whether a retrieval round is outstanding.
func (cs *ChildSet) Pending() bool { return cs.pending }

// Disposed reports whether Dispose was called.
func (cs *ChildSet) Disposed() bool { return cs.disposed }

// Round returns the generation the current or last retrieval round started
// under. It changes whenever Invalidate supersedes a round.
func (cs *ChildSet) Round() uint64 { return cs.round }

// Err returns the error stored by the last commit.
func (cs *ChildSet) Err() error { return cs.err }

// Len returns the number of committed children.
func (cs *ChildSet) Len() int { return len(cs.nodes) }

// Validate returns true when the committed children are current. Otherwise
// it starts a retrieval round unless one is outstanding and returns false;
// done, when non-nil, is then called exactly once after the next commit.
func (cs *ChildSet) Validate(done func()) bool {
	if cs.disposed || cs.valid {
		return true
	}
	if !cs.pending {
		cs.pending = true
		cs.start()
	}
	switch {
	case cs.valid:
		return true
	case cs.pending:
		if done != nil {
			cs.waiters = append(cs.waiters, done)
		}
	case done != nil:
		// Committed, but reset again while the round ran.
		done()
	}
	return false
}

// Resume returns the continuation for the current round. Strategies pass it
// to upstream caches as the completion callback. A continuation of a round
// that has since been superseded does nothing.
func (cs *ChildSet) Resume() func() {
	gen := cs.round
	return func() {
		if cs.disposed || !cs.pending || cs.running {
			return
		}
		if gen != cs.round {
			return
		}
		cs.run()
	}
}

// start begins a fresh round under the current generation.
func (cs *ChildSet) start() {
	cs.round = cs.generation
	cs.dirty = false
	cs.run()
}

// run drives the current round until it commits or suspends.
func (cs *ChildSet) run() {
	for {
		cs.running = true
		finished := cs.strategy.StartDataRetrieval(cs)
		cs.running = false

		if cs.disposed || !cs.pending {
			return
		}
		if cs.round != cs.generation {
			// Invalidated while the strategy ran; whatever it saw is stale.
			cs.round = cs.generation
			cs.dirty = false
			continue
		}
		if finished {
			panic(zerr.With(domain.ErrRoundNotCommitted, "parent", cs.parent.String()))
		}
		return
	}
}

// Invalidate marks the children stale. An outstanding round is superseded:
// a fresh round starts immediately, and results arriving for the old one are
// discarded.
func (cs *ChildSet) Invalidate() {
	if cs.disposed {
		return
	}
	cs.generation++
	cs.valid = false
	if cs.pending && !cs.running {
		cs.start()
	}
}

// Reset marks the children stale for the next access without superseding an
// outstanding round. A round that commits after Reset leaves the set invalid.
func (cs *ChildSet) Reset() {
	if cs.disposed {
		return
	}
	cs.dirty = true
	cs.valid = false
}

// Current returns a copy of the committed mapping. Strategies use it to
// reuse nodes whose identity survives.
func (cs *ChildSet) Current() map[domain.InternedString]domain.Node {
	return maps.Clone(cs.nodes)
}

// Nodes returns the committed children ordered by sort position, ties broken
// by identity. It returns domain.ErrNotReady while the set is not valid; the
// caller should Validate and retry from the callback.
func (cs *ChildSet) Nodes() ([]domain.Node, error) {
	if cs.disposed {
		return nil, domain.ErrChildSetDisposed
	}
	if !cs.valid {
		return nil, zerr.With(domain.ErrNotReady, "parent", cs.parent.String())
	}
	return cs.sorted(), nil
}

func (cs *ChildSet) sorted() []domain.Node {
	nodes := slices.Collect(maps.Values(cs.nodes))
	slices.SortFunc(nodes, func(a, b domain.Node) int {
		if a.SortPosition() != b.SortPosition() {
			return cmp.Compare(a.SortPosition(), b.SortPosition())
		}
		return a.ID().Compare(b.ID())
	})
	return nodes
}

// Set commits a new identity to node mapping for the current round. When
// order is non-nil, nodes that were not repositioned get sort positions in
// that order. A non-nil err is stored and exposed through Err.
//
// A Set that does not belong to the current round is discarded, and nodes it
// introduced are disposed.
func (cs *ChildSet) Set(order []domain.InternedString, err error, mapping map[domain.InternedString]domain.Node) {
	if mapping == nil {
		mapping = make(map[domain.InternedString]domain.Node)
	}
	if cs.disposed || !cs.pending || cs.round != cs.generation {
		cs.discard(mapping)
		return
	}

	if order != nil {
		pos := 0
		for _, id := range order {
			n, ok := mapping[id]
			if !ok {
				continue
			}
			if !n.Repositioned() {
				n.SetSortPosition(pos)
			}
			pos++
		}
	}

	delta := cs.diff(mapping, err)
	errChanged := !sameError(cs.err, err)
	first := !cs.committed

	cs.nodes = mapping
	cs.positions = make(map[domain.InternedString]int, len(mapping))
	for id, n := range mapping {
		cs.positions[id] = n.SortPosition()
	}
	cs.err = err
	cs.committed = true
	cs.pending = false
	cs.valid = !cs.dirty

	if cs.listener != nil && (first || errChanged || !delta.Empty()) {
		cs.listener.ChildrenChanged(delta)
	}

	waiters := cs.waiters
	cs.waiters = nil
	for _, done := range waiters {
		done()
	}
}

// diff computes the delta between the committed mapping and next, disposing
// nodes that do not survive.
func (cs *ChildSet) diff(next map[domain.InternedString]domain.Node, err error) domain.ChildDelta {
	delta := domain.ChildDelta{Parent: cs.parent, Err: err}
	for id, old := range cs.nodes {
		if n, ok := next[id]; ok && n == old {
			continue
		}
		delta.Removed = append(delta.Removed, id)
		cs.release(id, old)
	}
	for id, n := range next {
		old, ok := cs.nodes[id]
		switch {
		case !ok || old != n:
			delta.Added = append(delta.Added, id)
		case cs.positions[id] != n.SortPosition():
			delta.Changed = append(delta.Changed, id)
		}
	}
	sortIDs(delta.Added)
	sortIDs(delta.Removed)
	sortIDs(delta.Changed)
	return delta
}

func (cs *ChildSet) discard(mapping map[domain.InternedString]domain.Node) {
	for id, n := range mapping {
		if cs.nodes[id] == n {
			continue
		}
		cs.release(id, n)
	}
}

// release disposes a node and removes it from the registry if the registry
// still maps its identity to it.
func (cs *ChildSet) release(id domain.InternedString, n domain.Node) {
	n.Dispose()
	if cs.registry == nil {
		return
	}
	if current, ok := cs.registry.Node(id); ok && current == n {
		cs.registry.Unregister(id)
	}
}

// Dispose releases every child. Continuations that arrive later are ignored.
func (cs *ChildSet) Dispose() {
	if cs.disposed {
		return
	}
	cs.disposed = true
	for id, n := range cs.nodes {
		cs.release(id, n)
	}
	cs.nodes = make(map[domain.InternedString]domain.Node)
	cs.positions = make(map[domain.InternedString]int)
	cs.err = domain.ErrChildSetDisposed
	cs.pending = false
	cs.valid = false
	cs.waiters = nil
}

func sameError(a, b error) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Error() == b.Error()
}

func sortIDs(ids []domain.InternedString) {
	slices.SortFunc(ids, func(a, b domain.InternedString) int { return a.Compare(b) })
}
