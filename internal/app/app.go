// Package app wires the session model to the command line.
package app

import (
	"context"
	"errors"
	"io"
	"os"

	"go.trai.ch/tcfview/internal/adapters/store" //nolint:depguard // Wired in app layer
	"go.trai.ch/tcfview/internal/adapters/view"  //nolint:depguard // Wired in app layer
	"go.trai.ch/tcfview/internal/core/domain"
	"go.trai.ch/tcfview/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// StoreOpener opens the layout store at an explicit path.
type StoreOpener func(path string) ports.LayoutStore

// App is the main application logic.
type App struct {
	loader    ports.SessionLoader
	store     ports.LayoutStore
	watcher   ports.Watcher
	hasher    ports.Hasher
	logger    ports.Logger
	tracer    ports.Tracer
	stdout    io.Writer
	openStore StoreOpener
}

// New creates a new App instance.
func New(
	loader ports.SessionLoader,
	layouts ports.LayoutStore,
	watcher ports.Watcher,
	hasher ports.Hasher,
	logger ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		loader:  loader,
		store:   layouts,
		watcher: watcher,
		hasher:  hasher,
		logger:  logger,
		tracer:  tracer,
		stdout:  os.Stdout,
		openStore: func(path string) ports.LayoutStore {
			return store.NewStore(path)
		},
	}
}

// WithOutput sets the writer the session tree and change stream go to.
func (a *App) WithOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithStoreOpener replaces how explicit --state paths are opened.
func (a *App) WithStoreOpener(open StoreOpener) *App {
	a.openStore = open
	return a
}

type logModer interface {
	SetJSON(enable bool)
	SetVerbose(enable bool)
}

// ConfigureLogging switches the logger to JSON output or debug level when
// the logger supports it.
func (a *App) ConfigureLogging(jsonLog, verbose bool) {
	if l, ok := a.logger.(logModer); ok {
		l.SetJSON(jsonLog)
		l.SetVerbose(verbose)
	}
}

// ViewOptions configuration for the Show and Watch methods.
type ViewOptions struct {
	// SessionPath is the session file to load.
	SessionPath string
	// Columns overrides the module columns of the session file.
	Columns []string
	// SortBy orders modules by a column.
	SortBy string
	// Descending reverses the SortBy order.
	Descending bool
	// StatePath overrides the layout store location.
	StatePath string
}

// Show loads the session, waits until every memory map has been fetched and
// prints the session tree once.
func (a *App) Show(ctx context.Context, opts ViewOptions) error {
	sess, layout, tree, err := a.prepare(opts)
	if err != nil {
		return err
	}

	rt := a.newRuntime(ctx, sess, layout)
	defer rt.close()

	loopCtx, stop := context.WithCancel(ctx)
	defer stop()
	g, gctx := errgroup.WithContext(loopCtx)

	g.Go(func() error {
		return ignoreCanceled(rt.loop.Run(gctx))
	})

	g.Go(func() error {
		defer stop()
		if err := rt.start(gctx, sess); err != nil {
			return err
		}
		return a.renderTree(gctx, rt, tree)
	})

	return g.Wait()
}

// Watch prints the session tree, then follows the session file and prints
// one line per change until ctx is cancelled.
func (a *App) Watch(ctx context.Context, opts ViewOptions) error {
	sess, layout, tree, err := a.prepare(opts)
	if err != nil {
		return err
	}

	if err := a.watcher.Start(ctx, opts.SessionPath); err != nil {
		return err
	}
	last, _ := a.hasher.ComputeFileHash(opts.SessionPath)

	rt := a.newRuntime(ctx, sess, layout)
	renderer := view.NewRenderer(a.stdout, view.WithRegistry(rt.model))

	g, gctx := errgroup.WithContext(ctx)

	// Dispatcher Routine
	g.Go(func() error {
		return ignoreCanceled(rt.loop.Run(gctx))
	})

	// Shutdown Routine
	g.Go(func() error {
		<-gctx.Done()
		return a.watcher.Stop()
	})

	// Session Routine
	g.Go(func() error {
		if err := rt.start(gctx, sess); err != nil {
			return err
		}
		if err := a.renderTree(gctx, rt, tree); err != nil {
			return err
		}
		if err := rt.loop.Do(gctx, func() { rt.relay.target = renderer }); err != nil {
			return err
		}

		for ev := range a.watcher.Events() {
			a.logger.Debug("session file changed", "path", ev.Path, "op", ev.Operation)
			if ev.Operation == ports.OpRemove || ev.Operation == ports.OpRename {
				continue
			}
			sum, err := a.hasher.ComputeFileHash(opts.SessionPath)
			if err == nil && sum == last {
				a.logger.Debug("session file unchanged", "path", opts.SessionPath)
				continue
			}
			last = sum
			a.reload(rt, opts)
		}
		return nil
	})

	err = ignoreCanceled(g.Wait())
	rt.close()
	return errors.Join(err, renderer.Close())
}

// reload reads the session file and the layout again and applies them on the
// dispatcher. A broken session file is reported and the previous state stays
// on screen; a broken layout is reported and the previous one is kept.
func (a *App) reload(rt *runtime, opts ViewOptions) {
	sess, err := a.loader.Load(opts.SessionPath)
	if err != nil {
		a.logger.Error(zerr.Wrap(err, "session reload failed"))
		return
	}
	layout, err := a.layouts(opts.StatePath).Load()
	if err != nil {
		a.logger.Error(zerr.Wrap(err, "layout reload failed"))
		layout = nil
	}
	rt.loop.Post(func() {
		changes := rt.apply(sess, layout)
		a.logger.Debug("session reloaded",
			"added", len(changes.Added), "removed", len(changes.Removed), "changed", len(changes.Changed))
	})
}

func (a *App) renderTree(ctx context.Context, rt *runtime, opts view.TreeOptions) error {
	var renderErr error
	err := rt.loop.Do(ctx, func() {
		renderErr = view.RenderTree(a.stdout, rt.model.Snapshot(), opts)
	})
	if err != nil {
		return err
	}
	return renderErr
}

// prepare loads the session file and the layout and resolves the view options.
func (a *App) prepare(opts ViewOptions) (*domain.Session, *domain.Layout, view.TreeOptions, error) {
	var tree view.TreeOptions

	sess, err := a.loader.Load(opts.SessionPath)
	if err != nil {
		return nil, nil, tree, err
	}

	layout, err := a.layouts(opts.StatePath).Load()
	if err != nil {
		return nil, nil, tree, err
	}

	tree.Columns = sess.Columns
	if len(opts.Columns) > 0 {
		if tree.Columns, err = domain.ParseColumns(opts.Columns); err != nil {
			return nil, nil, tree, err
		}
	}
	if opts.SortBy != "" {
		if tree.SortBy, err = domain.ParseColumn(opts.SortBy); err != nil {
			return nil, nil, tree, err
		}
	}
	tree.Descending = opts.Descending
	return sess, layout, tree, nil
}

// layouts returns the layout store for an explicit path, or the default one.
func (a *App) layouts(path string) ports.LayoutStore {
	if path == "" {
		return a.store
	}
	return a.openStore(path)
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
