package ports

import "go.trai.ch/tcfview/internal/core/domain"

// LayoutStore persists user layout state between runs.
//
//go:generate go run go.uber.org/mock/mockgen -source=layout_store.go -destination=mocks/mock_layout_store.go -package=mocks
type LayoutStore interface {
	// Load returns the stored layout, or an empty layout when nothing is stored.
	Load() (*domain.Layout, error)
	// Save replaces the stored layout.
	Save(layout *domain.Layout) error
}
