package domain

// Expression is an upstream handle for a user-defined expression registered
// with the debug session. Handles are compared by identity (==); the text may
// change in place when the user edits the expression.
type Expression interface {
	Text() string
}

// Toggleable is implemented by expressions that can be enabled or disabled.
type Toggleable interface {
	Enabled() bool
}

// ExpressionNode is a child of the expression list. A node with a nil
// expression is the empty editable placeholder used to create new expressions
// in place.
type ExpressionNode struct {
	BaseNode

	expr    Expression
	script  string
	enabled bool

	value      string
	typeName   string
	valueValid bool
	// invalidations counts how often cached value state was dropped.
	invalidations int
}

var (
	_ Node              = (*ExpressionNode)(nil)
	_ SuspendListener   = (*ExpressionNode)(nil)
	_ RegisterListener  = (*ExpressionNode)(nil)
	_ MemoryListener    = (*ExpressionNode)(nil)
	_ MemoryMapListener = (*ExpressionNode)(nil)
)

// NewExpressionNode creates a node bound to expr. The script text is captured
// at creation so that later edits of the handle can be detected. No value or
// type is resolved yet.
func NewExpressionNode(id, parent InternedString, expr Expression) *ExpressionNode {
	n := &ExpressionNode{
		BaseNode: NewBaseNode(id, parent, KindExpression),
		expr:     expr,
		enabled:  true,
	}
	if expr != nil {
		n.script = expr.Text()
	}
	return n
}

// Expression returns the backing handle, nil for the placeholder.
func (n *ExpressionNode) Expression() Expression { return n.expr }

// Script returns the expression text captured at creation.
func (n *ExpressionNode) Script() string { return n.script }

// IsPlaceholder reports whether this is the empty editable node.
func (n *ExpressionNode) IsPlaceholder() bool { return n.expr == nil }

// Matches reports whether the node still represents expr: the handle is
// identical and the captured script equals the current text.
func (n *ExpressionNode) Matches(expr Expression) bool {
	return n.expr != nil && n.expr == expr && n.script == expr.Text()
}

// Enabled reports the enabled flag propagated from the backing expression.
func (n *ExpressionNode) Enabled() bool { return n.enabled }

// SetEnabled updates the enabled flag.
func (n *ExpressionNode) SetEnabled(enabled bool) { n.enabled = enabled }

// Value returns the resolved value and type, and whether they are current.
func (n *ExpressionNode) Value() (value, typeName string, ok bool) {
	return n.value, n.typeName, n.valueValid
}

// SetValue stores a resolved value.
func (n *ExpressionNode) SetValue(value, typeName string) {
	n.value = value
	n.typeName = typeName
	n.valueValid = true
}

// Invalidations returns how many times cached value state was dropped.
func (n *ExpressionNode) Invalidations() int { return n.invalidations }

func (n *ExpressionNode) invalidateValue() {
	n.valueValid = false
	n.invalidations++
}

// OnSuspended drops the cached value.
func (n *ExpressionNode) OnSuspended() { n.invalidateValue() }

// OnRegisterValueChanged drops the cached value.
func (n *ExpressionNode) OnRegisterValueChanged() { n.invalidateValue() }

// OnMemoryChanged drops the cached value.
func (n *ExpressionNode) OnMemoryChanged() { n.invalidateValue() }

// OnMemoryMapChanged drops the cached value.
func (n *ExpressionNode) OnMemoryMapChanged() { n.invalidateValue() }
