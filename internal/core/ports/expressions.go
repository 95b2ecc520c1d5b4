package ports

import "go.trai.ch/tcfview/internal/core/domain"

// ExpressionRegistry is the debug session's list of user-defined expressions.
//
//go:generate go run go.uber.org/mock/mockgen -source=expressions.go -destination=mocks/mock_expressions.go -package=mocks
type ExpressionRegistry interface {
	// Expressions returns the registered expression handles in registration order.
	Expressions() []domain.Expression
}
