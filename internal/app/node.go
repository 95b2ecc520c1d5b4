package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tcfview/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/tcfview/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/tcfview/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/tcfview/internal/adapters/store"     //nolint:depguard // Wired in app layer
	"go.trai.ch/tcfview/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/tcfview/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/tcfview/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles what the entry point needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			store.NodeID,
			watcher.NodeID,
			fs.HasherNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.SessionLoader](ctx)
	if err != nil {
		return nil, err
	}

	layouts, err := graft.Dep[ports.LayoutStore](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, layouts, w, hasher, log, tracer), nil
}
