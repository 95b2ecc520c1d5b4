package ports

import "go.trai.ch/tcfview/internal/core/domain"

// ChildrenListener receives the outcome of every child set commit. It is
// called on the dispatcher thread.
//
//go:generate go run go.uber.org/mock/mockgen -source=listener.go -destination=mocks/mock_listener.go -package=mocks
type ChildrenListener interface {
	ChildrenChanged(delta domain.ChildDelta)
}
