package store

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tcfview/internal/core/ports"
)

// NodeID is the unique identifier for the layout store Graft node.
const NodeID graft.ID = "adapter.layout_store"

func init() {
	graft.Register(graft.Node[ports.LayoutStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.LayoutStore, error) {
			path, err := DefaultPath()
			if err != nil {
				return nil, err
			}
			return NewStore(path), nil
		},
	})
}
