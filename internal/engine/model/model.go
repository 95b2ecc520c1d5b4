// Package model owns the nodes of one debug session and the child sets of
// its parent nodes. All methods must be called on the dispatcher thread.
package model

import (
	"slices"

	"go.trai.ch/tcfview/internal/core/domain"
	"go.trai.ch/tcfview/internal/core/ports"
	"go.trai.ch/tcfview/internal/engine/childset"
	"go.trai.ch/zerr"
)

// ExpressionsID is the identity of the expression list parent.
var ExpressionsID = domain.NewInternedString(domain.ExpressionsID)

// Option configures a Model.
type Option func(*Model)

// WithListener sets the sink for child set commits.
func WithListener(l ports.ChildrenListener) Option {
	return func(m *Model) { m.listener = l }
}

// WithPositions sets manual sort positions, keyed by node identity, that are
// applied when the node is first created.
func WithPositions(positions map[string]int) Option {
	return func(m *Model) {
		for id, pos := range positions {
			m.positions[id] = pos
		}
	}
}

// parent is a node that owns a child set.
type parent struct {
	node     domain.Node
	label    string
	children *childset.ChildSet
}

// Model is the node arena of a debug session. It implements ports.NodeRegistry.
type Model struct {
	exprs    ports.ExpressionRegistry
	memmaps  ports.MemoryMapService
	tracer   ports.Tracer
	logger   ports.Logger
	listener ports.ChildrenListener

	positions map[string]int
	nodes     map[domain.InternedString]domain.Node
	exprSeq   int

	expressions *ExpressionsStrategy
	exprParent  *parent
	contexts    []*parent
	modules     map[domain.InternedString]*ModulesStrategy
	disposed    bool
}

var _ ports.NodeRegistry = (*Model)(nil)

// New creates a model with an empty expression list and no contexts.
func New(
	exprs ports.ExpressionRegistry,
	memmaps ports.MemoryMapService,
	tracer ports.Tracer,
	logger ports.Logger,
	opts ...Option,
) *Model {
	m := &Model{
		exprs:     exprs,
		memmaps:   memmaps,
		tracer:    tracer,
		logger:    logger,
		positions: make(map[string]int),
		nodes:     make(map[domain.InternedString]domain.Node),
		modules:   make(map[domain.InternedString]*ModulesStrategy),
	}
	for _, opt := range opts {
		opt(m)
	}

	node := domain.NewExpressionsNode(ExpressionsID)
	m.Register(node)
	m.expressions = &ExpressionsStrategy{model: m, parent: ExpressionsID, registry: exprs}
	cs := childset.New(ExpressionsID, m.expressions, m.childOptions(len(exprs.Expressions())+1)...)
	m.expressions.children = cs
	m.exprParent = &parent{node: node, label: "Expressions", children: cs}
	return m
}

func (m *Model) childOptions(capacity int) []childset.Option {
	opts := []childset.Option{
		childset.WithRegistry(m),
		childset.WithCapacity(capacity),
	}
	if m.listener != nil {
		opts = append(opts, childset.WithListener(m.listener))
	}
	return opts
}

// Node returns the live node with the given identity.
func (m *Model) Node(id domain.InternedString) (domain.Node, bool) {
	n, ok := m.nodes[id]
	return n, ok
}

// Register adds a node to the arena. Registering an identity twice panics.
func (m *Model) Register(node domain.Node) {
	if _, ok := m.nodes[node.ID()]; ok {
		panic(zerr.With(domain.ErrNodeExists, "id", node.ID().String()))
	}
	m.nodes[node.ID()] = node
}

// Unregister removes a node from the arena.
func (m *Model) Unregister(id domain.InternedString) {
	delete(m.nodes, id)
}

// Len returns the number of live nodes, parents included.
func (m *Model) Len() int { return len(m.nodes) }

func (m *Model) nextExpressionID(parent domain.InternedString) domain.InternedString {
	id := domain.ChildID(parent, domain.ExpressionPrefix, m.exprSeq)
	m.exprSeq++
	return id
}

// applyPosition moves a freshly created node to its configured position.
func (m *Model) applyPosition(node *domain.ModuleNode) {
	if pos, ok := m.positions[node.ID().String()]; ok {
		node.MoveTo(pos)
	}
}

// AddContext creates an execution context node whose children are the
// modules of its memory map. An id that is already live is rejected with
// domain.ErrNodeExists.
func (m *Model) AddContext(id, name string) (*domain.ContextNode, error) {
	if m.disposed {
		return nil, domain.ErrModelDisposed
	}
	cid := domain.NewInternedString(id)
	if _, ok := m.nodes[cid]; ok {
		return nil, zerr.With(domain.ErrNodeExists, "id", id)
	}
	node := domain.NewContextNode(cid, name)
	m.Register(node)

	strategy := &ModulesStrategy{model: m, parent: cid, cache: m.memmaps.MemoryMap(cid)}
	cs := childset.New(cid, strategy, m.childOptions(0)...)
	strategy.children = cs
	m.modules[cid] = strategy
	m.contexts = append(m.contexts, &parent{node: node, label: node.Name(), children: cs})

	m.logger.Debug("context added", "context", id)
	return node, nil
}

// RemoveContext disposes a context together with its modules.
func (m *Model) RemoveContext(id domain.InternedString) error {
	idx := slices.IndexFunc(m.contexts, func(p *parent) bool { return p.node.ID() == id })
	if idx < 0 {
		return zerr.With(domain.ErrNodeNotFound, "id", id.String())
	}
	p := m.contexts[idx]
	p.children.Dispose()
	p.node.Dispose()
	m.Unregister(id)
	delete(m.modules, id)
	m.contexts = slices.Delete(m.contexts, idx, idx+1)

	m.logger.Debug("context removed", "context", id.String())
	return nil
}

// Contexts returns the context identities in creation order.
func (m *Model) Contexts() []domain.InternedString {
	ids := make([]domain.InternedString, 0, len(m.contexts))
	for _, p := range m.contexts {
		ids = append(ids, p.node.ID())
	}
	return ids
}

// Children returns the child set owned by the given parent.
func (m *Model) Children(id domain.InternedString) (*childset.ChildSet, bool) {
	for _, p := range m.parents() {
		if p.node.ID() == id {
			return p.children, true
		}
	}
	return nil, false
}

func (m *Model) parents() []*parent {
	if m.disposed {
		return nil
	}
	all := make([]*parent, 0, len(m.contexts)+1)
	all = append(all, m.contexts...)
	return append(all, m.exprParent)
}

func (m *Model) modulesOf(ctxID domain.InternedString) *ModulesStrategy {
	s, ok := m.modules[ctxID]
	if !ok {
		panic(zerr.With(domain.ErrNodeNotFound, "context", ctxID.String()))
	}
	return s
}

// OnSuspended is called when the given context suspends.
func (m *Model) OnSuspended(ctxID domain.InternedString) {
	m.logger.Debug("context suspended", "context", ctxID.String())
	m.expressions.OnSuspended()
}

// OnRegistersChanged is called when register values of the context change.
func (m *Model) OnRegistersChanged(ctxID domain.InternedString) {
	m.logger.Debug("registers changed", "context", ctxID.String())
	m.expressions.OnRegisterValueChanged()
}

// OnMemoryChanged is called when target memory of the context changes.
func (m *Model) OnMemoryChanged(ctxID domain.InternedString) {
	m.logger.Debug("memory changed", "context", ctxID.String())
	m.expressions.OnMemoryChanged()
}

// OnMemoryMapChanged is called when the memory map of the context changes.
// The context's memory map cache is dropped, its modules are told to
// refresh, and the module set becomes stale for the next access.
func (m *Model) OnMemoryMapChanged(ctxID domain.InternedString) {
	m.logger.Debug("memory map changed", "context", ctxID.String())
	modules := m.modulesOf(ctxID)
	modules.cache.Invalidate()
	modules.OnMemoryMapChanged()
	m.expressions.OnMemoryMapChanged()
}

// OnExpressionsChanged is called when the session's expression list changes.
func (m *Model) OnExpressionsChanged() {
	m.exprParent.children.Invalidate()
}

// Refresh validates every child set. done runs once all of them committed.
func (m *Model) Refresh(done func()) {
	parents := m.parents()
	remaining := len(parents) + 1
	finish := func() {
		remaining--
		if remaining == 0 && done != nil {
			done()
		}
	}
	for _, p := range parents {
		if p.children.Validate(finish) {
			finish()
		}
	}
	finish()
}

// Stale reports whether a child set is neither current nor being retrieved,
// as after a commit that raced with a change. Another Refresh brings it up
// to date.
func (m *Model) Stale() bool {
	for _, p := range m.parents() {
		if !p.children.Valid() && !p.children.Pending() {
			return true
		}
	}
	return false
}

// Move gives a module node an explicit sort position that later
// reconciliations keep. The owning set is invalidated so that the move is
// reported on the next refresh.
func (m *Model) Move(id domain.InternedString, pos int) error {
	if pos < 0 {
		return zerr.With(domain.ErrInvalidPosition, "position", pos)
	}
	n, ok := m.nodes[id]
	if !ok {
		return zerr.With(domain.ErrNodeNotFound, "id", id.String())
	}
	mod, ok := n.(*domain.ModuleNode)
	if !ok {
		return zerr.With(domain.ErrNotMovable, "id", id.String())
	}

	mod.MoveTo(pos)
	m.positions[id.String()] = pos
	if cs, ok := m.Children(mod.ParentID()); ok {
		cs.Invalidate()
	}
	m.logger.Debug("module moved", "id", id.String(), "position", pos)
	return nil
}

// SetPositions replaces the configured positions. Live modules whose entry
// is new or changed move at once; the others pick theirs up when created.
// A dropped entry only affects modules created afterwards.
func (m *Model) SetPositions(positions map[string]int) {
	for id, pos := range positions {
		if old, ok := m.positions[id]; ok && old == pos {
			continue
		}
		m.positions[id] = pos
		nid := domain.NewInternedString(id)
		if _, ok := m.nodes[nid]; !ok {
			continue
		}
		if err := m.Move(nid, pos); err != nil {
			m.logger.Debug("position not applied", "id", id, "error", err.Error())
		}
	}
	for id := range m.positions {
		if _, ok := positions[id]; !ok {
			delete(m.positions, id)
		}
	}
}

// Snapshot returns the contexts followed by the expression list, each with
// its committed children in sort order.
func (m *Model) Snapshot() domain.Snapshot {
	parents := m.parents()
	snap := domain.Snapshot{Parents: make([]domain.ParentSnapshot, 0, len(parents))}
	for _, p := range parents {
		nodes, err := p.children.Nodes()
		snap.Parents = append(snap.Parents, domain.ParentSnapshot{
			ID:       p.node.ID(),
			Label:    p.label,
			Kind:     p.node.Kind(),
			Err:      p.children.Err(),
			Pending:  err != nil,
			Children: nodes,
		})
	}
	return snap
}

// Dispose releases every node. The model is unusable afterwards.
func (m *Model) Dispose() {
	if m.disposed {
		return
	}
	for _, p := range m.parents() {
		p.children.Dispose()
		p.node.Dispose()
	}
	m.disposed = true
	m.contexts = nil
	m.modules = make(map[domain.InternedString]*ModulesStrategy)
	m.nodes = make(map[domain.InternedString]domain.Node)
}

// Disposed reports whether Dispose was called.
func (m *Model) Disposed() bool { return m.disposed }
