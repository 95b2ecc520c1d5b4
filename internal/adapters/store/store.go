// Package store persists the user layout as a msgpack document.
package store

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	"go.trai.ch/tcfview/internal/core/domain"
	"go.trai.ch/tcfview/internal/core/ports"
	"go.trai.ch/zerr"
)

// EnvStatePath overrides the default location of the layout store.
const EnvStatePath = "TCFVIEW_STATE"

const fileName = "layout.mp"

var _ ports.LayoutStore = (*Store)(nil)

// Store implements ports.LayoutStore using a single msgpack file.
type Store struct {
	path string
	mu   sync.RWMutex
}

// NewStore creates a store backed by the file at path. The file is created
// on the first Save.
func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

// DefaultPath returns $TCFVIEW_STATE when set, and the tcfview directory
// under the user config directory otherwise.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvStatePath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve user config directory")
	}
	return filepath.Join(dir, "tcfview", fileName), nil
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// Load returns the stored layout. A missing or empty file yields an empty
// layout.
func (s *Store) Load() (*domain.Layout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	layout := &domain.Layout{Positions: make(map[string]int)}

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return layout, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", s.path)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", s.path)
	}
	if info.Size() == 0 {
		return layout, nil
	}

	if err := msgpack.NewDecoder(f).Decode(layout); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreDecodeFailed.Error()), "path", s.path)
	}
	if layout.Positions == nil {
		layout.Positions = make(map[string]int)
	}
	return layout, nil
}

// Save atomically replaces the stored layout.
func (s *Store) Save(layout *domain.Layout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", s.path)
	}

	f, err := os.CreateTemp(dir, "layout-*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", s.path)
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if err := msgpack.NewEncoder(f).Encode(layout); err != nil {
		_ = f.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrStoreEncodeFailed.Error()), "path", s.path)
	}
	if err := f.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", s.path)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", s.path)
	}
	return nil
}
