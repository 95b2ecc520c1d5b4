package domain

// ContextNode is an execution context of the debug session. Its children are
// the modules of its memory map.
type ContextNode struct {
	BaseNode

	name string
}

// NewContextNode creates an execution context node.
func NewContextNode(id InternedString, name string) *ContextNode {
	return &ContextNode{
		BaseNode: NewBaseNode(id, InternedString{}, KindContext),
		name:     name,
	}
}

// Name returns the human-readable context name, or the id when unnamed.
func (n *ContextNode) Name() string {
	if n.name == "" {
		return n.ID().String()
	}
	return n.name
}

// ExpressionsNode is the watch/expression list of a debug session.
type ExpressionsNode struct {
	BaseNode
}

// NewExpressionsNode creates the expression list node.
func NewExpressionsNode(id InternedString) *ExpressionsNode {
	return &ExpressionsNode{
		BaseNode: NewBaseNode(id, InternedString{}, KindExpressions),
	}
}
