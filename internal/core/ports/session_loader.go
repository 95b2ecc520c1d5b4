package ports

import "go.trai.ch/tcfview/internal/core/domain"

// SessionLoader reads a session description.
//
//go:generate go run go.uber.org/mock/mockgen -source=session_loader.go -destination=mocks/mock_session_loader.go -package=mocks
type SessionLoader interface {
	// Load reads the session file at path.
	Load(path string) (*domain.Session, error)
}
