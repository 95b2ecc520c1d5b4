// Package expressions implements the session's registry of user expressions.
package expressions

import (
	"slices"
	"strings"
	"sync"

	"go.trai.ch/tcfview/internal/core/domain"
	"go.trai.ch/tcfview/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ExpressionRegistry = (*Registry)(nil)

// Expression is a registered expression handle. Its text and enabled flag
// change in place; the handle itself is the expression's identity.
type Expression struct {
	mu      sync.RWMutex
	text    string
	enabled bool
}

// Text returns the expression script.
func (e *Expression) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text
}

// Enabled reports whether the expression is evaluated.
func (e *Expression) Enabled() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.enabled
}

func (e *Expression) spec() domain.ExpressionSpec {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return domain.ExpressionSpec{Text: e.text, Enabled: e.enabled}
}

// Registry holds expressions in registration order.
type Registry struct {
	mu   sync.RWMutex
	list []*Expression
}

// NewRegistry creates a registry holding the given expressions. Specs with
// empty text are skipped.
func NewRegistry(specs ...domain.ExpressionSpec) *Registry {
	r := &Registry{}
	for _, spec := range specs {
		if strings.TrimSpace(spec.Text) == "" {
			continue
		}
		r.list = append(r.list, &Expression{text: spec.Text, enabled: spec.Enabled})
	}
	return r
}

// Expressions returns the handles in registration order.
func (r *Registry) Expressions() []domain.Expression {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Expression, 0, len(r.list))
	for _, e := range r.list {
		out = append(out, e)
	}
	return out
}

// Len returns the number of expressions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.list)
}

// Specs returns the expressions as persistable values.
func (r *Registry) Specs() []domain.ExpressionSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.ExpressionSpec, 0, len(r.list))
	for _, e := range r.list {
		out = append(out, e.spec())
	}
	return out
}

// Add appends a new enabled or disabled expression.
func (r *Registry) Add(text string, enabled bool) (*Expression, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyExpression
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e := &Expression{text: text, enabled: enabled}
	r.list = append(r.list, e)
	return e, nil
}

// Remove deletes the expression at index.
func (r *Registry) Remove(index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check(index); err != nil {
		return err
	}
	r.list = slices.Delete(r.list, index, index+1)
	return nil
}

// Edit replaces the text of the expression at index, keeping its handle.
func (r *Registry) Edit(index int, text string) error {
	if strings.TrimSpace(text) == "" {
		return domain.ErrEmptyExpression
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check(index); err != nil {
		return err
	}
	e := r.list[index]
	e.mu.Lock()
	e.text = text
	e.mu.Unlock()
	return nil
}

// SetEnabled toggles the expression at index.
func (r *Registry) SetEnabled(index int, enabled bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check(index); err != nil {
		return err
	}
	e := r.list[index]
	e.mu.Lock()
	e.enabled = enabled
	e.mu.Unlock()
	return nil
}

// Move reorders the expression at from to index to.
func (r *Registry) Move(from, to int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check(from); err != nil {
		return err
	}
	if err := r.check(to); err != nil {
		return err
	}
	e := r.list[from]
	r.list = slices.Delete(r.list, from, from+1)
	r.list = slices.Insert(r.list, to, e)
	return nil
}

// Replace synchronizes the registry with specs. A handle survives when an
// unclaimed expression with the same text exists; its enabled flag follows
// the spec. Replace reports whether the list or any flag changed.
func (r *Registry) Replace(specs []domain.ExpressionSpec) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	claimed := make(map[*Expression]bool, len(r.list))
	next := make([]*Expression, 0, len(specs))
	changed := false
	for _, spec := range specs {
		if strings.TrimSpace(spec.Text) == "" {
			continue
		}
		idx := slices.IndexFunc(r.list, func(e *Expression) bool {
			return !claimed[e] && e.Text() == spec.Text
		})
		if idx < 0 {
			next = append(next, &Expression{text: spec.Text, enabled: spec.Enabled})
			changed = true
			continue
		}
		e := r.list[idx]
		claimed[e] = true
		e.mu.Lock()
		if e.enabled != spec.Enabled {
			e.enabled = spec.Enabled
			changed = true
		}
		e.mu.Unlock()
		next = append(next, e)
	}
	if !slices.Equal(next, r.list) {
		changed = true
	}
	r.list = next
	return changed
}

func (r *Registry) check(index int) error {
	if index < 0 || index >= len(r.list) {
		return zerr.With(domain.ErrExpressionNotFound, "index", index)
	}
	return nil
}
