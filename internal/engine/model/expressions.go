package model

import (
	"cmp"
	"context"
	"maps"
	"slices"

	"go.trai.ch/tcfview/internal/core/domain"
	"go.trai.ch/tcfview/internal/core/ports"
	"go.trai.ch/tcfview/internal/engine/childset"
)

// ExpressionsStrategy reconciles the expression list against the session's
// registered expressions, followed by one empty placeholder.
type ExpressionsStrategy struct {
	model    *Model
	parent   domain.InternedString
	registry ports.ExpressionRegistry
	children *childset.ChildSet
}

// StartDataRetrieval reconciles synchronously and never reports an error.
func (s *ExpressionsStrategy) StartDataRetrieval(cs *childset.ChildSet) bool {
	_, span := s.model.tracer.Start(context.Background(), "reconcile.expressions",
		ports.WithAttribute("parent", s.parent.String()))
	defer span.End()

	existing := expressionNodes(cs.Current())
	claimed := make(map[*domain.ExpressionNode]bool, len(existing))
	exprs := s.registry.Expressions()
	mapping := make(map[domain.InternedString]domain.Node, len(exprs)+1)
	created := 0

	pos := 0
	for _, expr := range exprs {
		var node *domain.ExpressionNode
		for _, n := range existing {
			if !claimed[n] && n.Matches(expr) {
				node = n
				break
			}
		}
		if node == nil {
			node = domain.NewExpressionNode(s.model.nextExpressionID(s.parent), s.parent, expr)
			s.model.Register(node)
			created++
		}
		claimed[node] = true

		node.SetSortPosition(pos)
		pos++
		if t, ok := expr.(domain.Toggleable); ok {
			node.SetEnabled(t.Enabled())
		}
		mapping[node.ID()] = node
	}

	var placeholder *domain.ExpressionNode
	for _, n := range existing {
		if n.IsPlaceholder() {
			placeholder = n
			break
		}
	}
	if placeholder == nil {
		placeholder = domain.NewExpressionNode(s.model.nextExpressionID(s.parent), s.parent, nil)
		s.model.Register(placeholder)
		created++
	}
	placeholder.SetSortPosition(pos)
	mapping[placeholder.ID()] = placeholder

	span.SetAttribute("children", len(mapping))
	span.SetAttribute("created", created)
	s.model.logger.Debug("reconciled expressions",
		"parent", s.parent.String(), "children", len(mapping), "created", created)

	cs.Set(nil, nil, mapping)
	return true
}

// expressionNodes returns the expression children ordered by position, then identity.
func expressionNodes(current map[domain.InternedString]domain.Node) []*domain.ExpressionNode {
	nodes := make([]*domain.ExpressionNode, 0, len(current))
	for _, id := range slices.SortedFunc(maps.Keys(current), domain.InternedString.Compare) {
		if n, ok := current[id].(*domain.ExpressionNode); ok {
			nodes = append(nodes, n)
		}
	}
	slices.SortStableFunc(nodes, func(a, b *domain.ExpressionNode) int {
		return cmp.Compare(a.SortPosition(), b.SortPosition())
	})
	return nodes
}

// OnSuspended forwards the notification to every live child.
func (s *ExpressionsStrategy) OnSuspended() {
	forEach(s.children, domain.SuspendListener.OnSuspended)
}

// OnRegisterValueChanged forwards the notification to every live child.
func (s *ExpressionsStrategy) OnRegisterValueChanged() {
	forEach(s.children, domain.RegisterListener.OnRegisterValueChanged)
}

// OnMemoryChanged forwards the notification to every live child.
func (s *ExpressionsStrategy) OnMemoryChanged() {
	forEach(s.children, domain.MemoryListener.OnMemoryChanged)
}

// OnMemoryMapChanged forwards the notification to every live child.
func (s *ExpressionsStrategy) OnMemoryMapChanged() {
	forEach(s.children, domain.MemoryMapListener.OnMemoryMapChanged)
}

// forEach calls fn on every committed child that implements T.
func forEach[T any](cs *childset.ChildSet, fn func(T)) {
	for _, n := range cs.Current() {
		if l, ok := n.(T); ok {
			fn(l)
		}
	}
}
