// Package domain contains the core domain models of the debug view tree:
// nodes, their upstream records and the change notifications emitted when
// a parent's children are reconciled.
package domain

// NodeKind tags the variant of a Node.
type NodeKind uint8

const (
	// KindContext is an execution context; it owns the module children.
	KindContext NodeKind = iota
	// KindExpressions is the watch/expression list; it owns the expression children.
	KindExpressions
	// KindExpression is a single watch expression (or the empty placeholder).
	KindExpression
	// KindModule is a memory-mapped module of an execution context.
	KindModule
)

// String returns a short name for the kind.
func (k NodeKind) String() string {
	switch k {
	case KindContext:
		return "context"
	case KindExpressions:
		return "expressions"
	case KindExpression:
		return "expression"
	case KindModule:
		return "module"
	default:
		return "unknown"
	}
}

// Node is an entity of the view tree with a stable identity and an explicit
// sort position among its siblings.
type Node interface {
	// ID returns the identity assigned at creation.
	ID() InternedString
	// ParentID returns the identity of the owning parent, zero for roots.
	ParentID() InternedString
	// Kind returns the node variant.
	Kind() NodeKind
	// SortPosition returns the ordering key among siblings.
	SortPosition() int
	// SetSortPosition assigns the ordering key during reconciliation.
	SetSortPosition(pos int)
	// Repositioned reports whether the user gave the node an explicit position.
	Repositioned() bool
	// Dispose releases the node. Disposed nodes are never reused.
	Dispose()
	// Disposed reports whether Dispose was called.
	Disposed() bool
}

// SuspendListener is implemented by nodes that cache state invalidated when the session suspends.
type SuspendListener interface {
	OnSuspended()
}

// RegisterListener is implemented by nodes that depend on register values.
type RegisterListener interface {
	OnRegisterValueChanged()
}

// MemoryListener is implemented by nodes that depend on target memory contents.
type MemoryListener interface {
	OnMemoryChanged()
}

// MemoryMapListener is implemented by nodes that depend on the memory map.
type MemoryMapListener interface {
	OnMemoryMapChanged()
}

// BaseNode carries the bookkeeping shared by every Node variant.
// It is meant to be embedded.
type BaseNode struct {
	id           InternedString
	parent       InternedString
	kind         NodeKind
	sortPos      int
	repositioned bool
	disposed     bool
}

// NewBaseNode creates the shared part of a node.
func NewBaseNode(id, parent InternedString, kind NodeKind) BaseNode {
	return BaseNode{id: id, parent: parent, kind: kind}
}

// ID returns the node identity.
func (n *BaseNode) ID() InternedString { return n.id }

// ParentID returns the parent identity.
func (n *BaseNode) ParentID() InternedString { return n.parent }

// Kind returns the node variant.
func (n *BaseNode) Kind() NodeKind { return n.kind }

// SortPosition returns the ordering key among siblings.
func (n *BaseNode) SortPosition() int { return n.sortPos }

// SetSortPosition assigns the ordering key. It does not mark the node as repositioned.
func (n *BaseNode) SetSortPosition(pos int) { n.sortPos = pos }

// MoveTo records a user-chosen position. Reconciliation passes that respect
// the repositioned flag will not override it.
func (n *BaseNode) MoveTo(pos int) {
	n.sortPos = pos
	n.repositioned = true
}

// Repositioned reports whether MoveTo was called.
func (n *BaseNode) Repositioned() bool { return n.repositioned }

// Dispose marks the node as released.
func (n *BaseNode) Dispose() { n.disposed = true }

// Disposed reports whether the node was released.
func (n *BaseNode) Disposed() bool { return n.disposed }

// Mover is implemented by nodes that accept an explicit user position.
type Mover interface {
	MoveTo(pos int)
}
