package app

import (
	"context"
	"sync"

	"go.trai.ch/tcfview/internal/adapters/expressions" //nolint:depguard // Wired in app layer
	"go.trai.ch/tcfview/internal/adapters/memmap"      //nolint:depguard // Wired in app layer
	"go.trai.ch/tcfview/internal/core/domain"
	"go.trai.ch/tcfview/internal/core/ports"
	"go.trai.ch/tcfview/internal/engine/dispatch"
	"go.trai.ch/tcfview/internal/engine/model"
	"go.trai.ch/zerr"
)

// relay forwards commits to a listener that is attached after the first
// render. It is only touched on the dispatcher thread.
type relay struct {
	target ports.ChildrenListener
}

func (r *relay) ChildrenChanged(delta domain.ChildDelta) {
	if r.target != nil {
		r.target.ChildrenChanged(delta)
	}
}

// runtime is the live state of one session. Everything but loop belongs to
// the dispatcher thread.
type runtime struct {
	loop     *dispatch.Loop
	source   *memmap.StaticSource
	memmaps  *memmap.Service
	registry *expressions.Registry
	model    *model.Model
	relay    *relay
	layout   *domain.Layout
	logger   ports.Logger
}

func (a *App) newRuntime(ctx context.Context, sess *domain.Session, layout *domain.Layout) *runtime {
	loop := dispatch.New()
	source := memmap.NewStaticSource(sess.Contexts)
	memmaps := memmap.NewService(ctx, source, loop)
	registry := expressions.NewRegistry(expressionSpecs(sess, layout)...)
	r := &relay{}

	m := model.New(registry, memmaps, a.tracer, a.logger,
		model.WithListener(r),
		model.WithPositions(domain.MergedPositions(sess, layout)),
	)

	return &runtime{
		loop:     loop,
		source:   source,
		memmaps:  memmaps,
		registry: registry,
		model:    m,
		relay:    r,
		layout:   layout,
		logger:   a.logger,
	}
}

// start adds the session's contexts and waits until every child set is current.
func (rt *runtime) start(ctx context.Context, sess *domain.Session) error {
	ready := make(chan error, 1)
	done := sync.OnceFunc(func() { ready <- nil })

	rt.loop.Post(func() {
		for _, spec := range sess.Contexts {
			if _, err := rt.model.AddContext(spec.ID, spec.Name); err != nil {
				ready <- zerr.Wrap(err, "failed to add context")
				return
			}
		}
		rt.settle(done)
	})

	select {
	case err := <-ready:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// settle refreshes until no child set is left stale. done may be nil.
func (rt *runtime) settle(done func()) {
	rt.model.Refresh(func() {
		if rt.model.Stale() {
			rt.settle(done)
			return
		}
		if done != nil {
			done()
		}
	})
}

// apply brings the model in line with a reloaded session and layout. A nil
// layout keeps the current one. It runs on the dispatcher thread.
func (rt *runtime) apply(sess *domain.Session, layout *domain.Layout) memmap.Changes {
	if layout != nil {
		rt.layout = layout
	}
	changes := rt.source.Update(sess.Contexts)

	for _, id := range changes.Removed {
		cid := domain.NewInternedString(id)
		if err := rt.model.RemoveContext(cid); err != nil {
			rt.logger.Error(zerr.Wrap(err, "failed to remove context"))
		}
		rt.memmaps.Forget(cid)
	}

	names := make(map[string]string, len(sess.Contexts))
	for _, spec := range sess.Contexts {
		names[spec.ID] = spec.Name
	}
	for _, id := range changes.Added {
		if _, err := rt.model.AddContext(id, names[id]); err != nil {
			rt.logger.Error(zerr.Wrap(err, "failed to add context"))
		}
	}
	for _, id := range changes.Changed {
		rt.model.OnMemoryMapChanged(domain.NewInternedString(id))
	}

	if rt.registry.Replace(expressionSpecs(sess, rt.layout)) {
		rt.model.OnExpressionsChanged()
	}
	rt.model.SetPositions(domain.MergedPositions(sess, rt.layout))

	rt.settle(nil)
	return changes
}

// close releases the model and cancels outstanding fetches. The loop must
// have stopped.
func (rt *runtime) close() {
	rt.model.Dispose()
	rt.memmaps.Close()
}

// expressionSpecs lists the session's expressions followed by the ones added
// from the command line.
func expressionSpecs(sess *domain.Session, layout *domain.Layout) []domain.ExpressionSpec {
	specs := make([]domain.ExpressionSpec, 0, len(sess.Expressions)+len(layout.Expressions))
	specs = append(specs, sess.Expressions...)
	return append(specs, layout.Expressions...)
}
