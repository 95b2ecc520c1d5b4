package model_test

import (
	"context"
	"errors"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tcfview/internal/adapters/expressions"
	"go.trai.ch/tcfview/internal/adapters/memmap"
	"go.trai.ch/tcfview/internal/adapters/telemetry"
	"go.trai.ch/tcfview/internal/core/domain"
	"go.trai.ch/tcfview/internal/core/ports"
	"go.trai.ch/tcfview/internal/core/ports/mocks"
	"go.trai.ch/tcfview/internal/engine/dispatch"
	"go.trai.ch/tcfview/internal/engine/model"
	"go.uber.org/mock/gomock"
)

type expr struct {
	text    string
	enabled bool
}

func (e *expr) Text() string  { return e.text }
func (e *expr) Enabled() bool { return e.enabled }

// fakeCache is a memory map cache resolved by the test.
type fakeCache struct {
	data          []domain.MemoryRegion
	err           error
	valid         bool
	waiters       []func()
	invalidations int
}

func (c *fakeCache) Validate(done func()) bool {
	if c.valid {
		return true
	}
	if done != nil {
		c.waiters = append(c.waiters, done)
	}
	return false
}

func (c *fakeCache) Data() []domain.MemoryRegion { return c.data }
func (c *fakeCache) Err() error                  { return c.err }

func (c *fakeCache) Invalidate() {
	c.valid = false
	c.invalidations++
}

func (c *fakeCache) resolve(data []domain.MemoryRegion, err error) {
	c.data = data
	c.err = err
	c.valid = true
	waiters := c.waiters
	c.waiters = nil
	for _, w := range waiters {
		w()
	}
}

type deltaRecorder struct {
	deltas []domain.ChildDelta
}

func (r *deltaRecorder) ChildrenChanged(delta domain.ChildDelta) {
	r.deltas = append(r.deltas, delta)
}

type harness struct {
	model    *model.Model
	exprs    []domain.Expression
	caches   map[string]*fakeCache
	recorder *deltaRecorder
}

func newHarness(t *testing.T, opts ...model.Option) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &harness{
		caches:   make(map[string]*fakeCache),
		recorder: &deltaRecorder{},
	}

	registry := mocks.NewMockExpressionRegistry(ctrl)
	registry.EXPECT().Expressions().DoAndReturn(func() []domain.Expression { return h.exprs }).AnyTimes()

	memmaps := mocks.NewMockMemoryMapService(ctrl)
	memmaps.EXPECT().MemoryMap(gomock.Any()).DoAndReturn(func(id domain.InternedString) ports.MemoryMapCache {
		c := &fakeCache{}
		h.caches[id.String()] = c
		return c
	}).AnyTimes()

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	opts = append([]model.Option{model.WithListener(h.recorder)}, opts...)
	h.model = model.New(registry, memmaps, telemetry.NewNoOpTracer(), logger, opts...)
	return h
}

func (h *harness) refresh(t *testing.T) {
	t.Helper()
	done := false
	h.model.Refresh(func() { done = true })
	require.True(t, done, "refresh should complete synchronously")
}

func (h *harness) children(t *testing.T, parent domain.InternedString) []domain.Node {
	t.Helper()
	cs, ok := h.model.Children(parent)
	require.True(t, ok)
	nodes, err := cs.Nodes()
	require.NoError(t, err)
	return nodes
}

func scripts(nodes []domain.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.(*domain.ExpressionNode).Script())
	}
	return out
}

func regions(names ...string) []domain.MemoryRegion {
	out := make([]domain.MemoryRegion, 0, len(names))
	for i, name := range names {
		out = append(out, domain.MemoryRegion{
			Address:  uint64(0x1000 * (i + 1)),
			Size:     0x1000,
			Flags:    domain.FlagRead,
			FileName: "/lib/" + name,
		})
	}
	return out
}

func TestExpressions_Idempotent(t *testing.T) {
	h := newHarness(t)
	h.exprs = []domain.Expression{&expr{text: "argc"}, &expr{text: "argv[0]"}}
	h.refresh(t)

	before := h.children(t, model.ExpressionsID)
	require.Len(t, before, 3)

	h.model.OnExpressionsChanged()
	h.refresh(t)

	after := h.children(t, model.ExpressionsID)
	require.Len(t, after, 3)
	for i := range before {
		assert.Same(t, before[i], after[i])
		assert.Equal(t, before[i].SortPosition(), after[i].SortPosition())
		assert.False(t, after[i].Disposed())
	}
	assert.Len(t, h.recorder.deltas, 1, "an unchanged reconciliation emits nothing")
}

func TestExpressions_ReorderKeepsIdentity(t *testing.T) {
	h := newHarness(t)
	a, b := &expr{text: "a"}, &expr{text: "b"}
	h.exprs = []domain.Expression{a, b}
	h.refresh(t)
	before := h.children(t, model.ExpressionsID)

	h.exprs = []domain.Expression{b, a}
	h.model.OnExpressionsChanged()
	h.refresh(t)

	after := h.children(t, model.ExpressionsID)
	assert.Equal(t, []string{"b", "a", ""}, scripts(after))
	assert.Same(t, before[0], after[1])
	assert.Same(t, before[1], after[0])
	assert.Same(t, before[2], after[2], "the placeholder is reused")

	last := h.recorder.deltas[len(h.recorder.deltas)-1]
	assert.Empty(t, last.Added)
	assert.Empty(t, last.Removed)
	assert.Len(t, last.Changed, 2)
}

func TestExpressions_ScriptEditReplacesNode(t *testing.T) {
	h := newHarness(t)
	first := &expr{text: "x"}
	h.exprs = []domain.Expression{first, &expr{text: "y"}}
	h.refresh(t)
	old := h.children(t, model.ExpressionsID)[0]

	first.text = "x + 1"
	h.model.OnExpressionsChanged()
	h.refresh(t)

	nodes := h.children(t, model.ExpressionsID)
	assert.True(t, old.Disposed())
	assert.NotEqual(t, old.ID(), nodes[0].ID())
	assert.Equal(t, "x + 1", nodes[0].(*domain.ExpressionNode).Script())
	assert.Equal(t, old.SortPosition(), nodes[0].SortPosition())
	_, ok := h.model.Node(old.ID())
	assert.False(t, ok, "the edited node left the registry")

	last := h.recorder.deltas[len(h.recorder.deltas)-1]
	assert.Equal(t, []domain.InternedString{old.ID()}, last.Removed)
	assert.Equal(t, []domain.InternedString{nodes[0].ID()}, last.Added)
}

func TestExpressions_PlaceholderInvariant(t *testing.T) {
	h := newHarness(t)
	h.refresh(t)

	nodes := h.children(t, model.ExpressionsID)
	require.Len(t, nodes, 1)
	placeholder := nodes[0].(*domain.ExpressionNode)
	assert.True(t, placeholder.IsPlaceholder())
	assert.Equal(t, "Expressions.Expr-0", placeholder.ID().String())

	for _, list := range [][]domain.Expression{
		{&expr{text: "a"}},
		{&expr{text: "a"}, &expr{text: "b"}, &expr{text: "c"}},
		nil,
	} {
		h.exprs = list
		h.model.OnExpressionsChanged()
		h.refresh(t)

		nodes = h.children(t, model.ExpressionsID)
		count := 0
		for _, n := range nodes {
			if n.(*domain.ExpressionNode).IsPlaceholder() {
				count++
			}
		}
		assert.Equal(t, 1, count)
		assert.Same(t, placeholder, nodes[len(nodes)-1], "the placeholder stays last and is reused")
	}
}

func TestExpressions_EnabledPropagation(t *testing.T) {
	h := newHarness(t)
	e := &expr{text: "flag", enabled: false}
	h.exprs = []domain.Expression{e}
	h.refresh(t)

	node := h.children(t, model.ExpressionsID)[0].(*domain.ExpressionNode)
	assert.False(t, node.Enabled())

	e.enabled = true
	h.model.OnExpressionsChanged()
	h.refresh(t)
	assert.True(t, node.Enabled())
}

func TestExpressions_FanOut(t *testing.T) {
	h := newHarness(t)
	_, err := h.model.AddContext("P1", "main")
	require.NoError(t, err)
	h.exprs = []domain.Expression{&expr{text: "a"}, &expr{text: "b"}}
	h.model.Refresh(nil)
	h.caches["P1"].resolve(regions("libc.so"), nil)

	ctx := domain.NewInternedString("P1")
	h.model.OnSuspended(ctx)
	h.model.OnRegistersChanged(ctx)
	h.model.OnMemoryChanged(ctx)
	h.model.OnMemoryMapChanged(ctx)

	for _, n := range h.children(t, model.ExpressionsID) {
		assert.Equal(t, 4, n.(*domain.ExpressionNode).Invalidations(), n.ID().String())
	}
}

func TestModules_IdentityDeterminism(t *testing.T) {
	h := newHarness(t)
	_, err := h.model.AddContext("P1", "main")
	require.NoError(t, err)
	ctx := domain.NewInternedString("P1")

	h.model.Refresh(nil)
	h.caches["P1"].resolve(regions("a.so", "b.so", "c.so"), nil)

	first := h.children(t, ctx)
	ids := make([]string, 0, len(first))
	for _, n := range first {
		ids = append(ids, n.ID().String())
	}
	assert.Equal(t, []string{"P1.Module-0", "P1.Module-1", "P1.Module-2"}, ids)

	h.model.OnMemoryMapChanged(ctx)
	h.model.Refresh(nil)
	h.caches["P1"].resolve(regions("a.so", "b.so", "c.so"), nil)

	second := h.children(t, ctx)
	require.Len(t, second, 3)
	for i := range first {
		assert.Same(t, first[i], second[i])
	}
}

func TestModules_PositionalRebinding(t *testing.T) {
	h := newHarness(t)
	_, err := h.model.AddContext("P1", "")
	require.NoError(t, err)
	ctx := domain.NewInternedString("P1")

	h.model.Refresh(nil)
	h.caches["P1"].resolve(regions("a.so", "b.so"), nil)
	module0 := h.children(t, ctx)[0].(*domain.ModuleNode)
	assert.Equal(t, "a.so", module0.Column(domain.ColumnName))

	h.model.OnMemoryMapChanged(ctx)
	_, ok := module0.Region()
	assert.False(t, ok, "modules drop their region on a memory map change")

	h.model.Refresh(nil)
	h.caches["P1"].resolve(regions("b.so", "a.so"), nil)

	nodes := h.children(t, ctx)
	assert.Same(t, module0, nodes[0])
	assert.Equal(t, "b.so", module0.Column(domain.ColumnName), "identity follows the index, not the region")
}

func TestModules_SuspendsUntilFetched(t *testing.T) {
	h := newHarness(t)
	_, err := h.model.AddContext("P1", "main")
	require.NoError(t, err)
	ctx := domain.NewInternedString("P1")

	done := false
	h.model.Refresh(func() { done = true })
	assert.False(t, done)

	snap := h.model.Snapshot()
	require.Len(t, snap.Parents, 2)
	assert.Equal(t, ctx, snap.Parents[0].ID)
	assert.True(t, snap.Parents[0].Pending)
	assert.Equal(t, "main", snap.Parents[0].Label)
	assert.False(t, snap.Parents[1].Pending)

	h.caches["P1"].resolve(regions("a.so"), nil)
	assert.True(t, done)
	assert.Len(t, h.children(t, ctx), 1)
}

func TestModules_ManualRepositionSurvives(t *testing.T) {
	h := newHarness(t)
	_, err := h.model.AddContext("P1", "main")
	require.NoError(t, err)
	ctx := domain.NewInternedString("P1")

	h.model.Refresh(nil)
	h.caches["P1"].resolve(regions("a.so", "b.so", "c.so"), nil)

	moved := domain.NewInternedString("P1.Module-0")
	require.NoError(t, h.model.Move(moved, 10))
	h.refresh(t)

	last := h.recorder.deltas[len(h.recorder.deltas)-1]
	assert.Equal(t, []domain.InternedString{moved}, last.Changed)

	h.model.OnMemoryMapChanged(ctx)
	h.model.Refresh(nil)
	h.caches["P1"].resolve(regions("a.so", "b.so", "c.so", "d.so"), nil)

	nodes := h.children(t, ctx)
	require.Len(t, nodes, 4)
	assert.Equal(t, moved, nodes[3].ID())
	assert.Equal(t, 10, nodes[3].SortPosition())
}

func TestModules_ConfiguredPositions(t *testing.T) {
	h := newHarness(t, model.WithPositions(map[string]int{"P1.Module-1": -5}))
	_, err := h.model.AddContext("P1", "main")
	require.NoError(t, err)

	h.model.Refresh(nil)
	h.caches["P1"].resolve(regions("a.so", "b.so"), nil)

	nodes := h.children(t, domain.NewInternedString("P1"))
	assert.Equal(t, "P1.Module-1", nodes[0].ID().String())
	assert.True(t, nodes[0].Repositioned())
}

func TestModules_ErrorPropagation(t *testing.T) {
	h := newHarness(t)
	_, err := h.model.AddContext("P1", "main")
	require.NoError(t, err)
	ctx := domain.NewInternedString("P1")

	h.model.Refresh(nil)
	h.caches["P1"].resolve(regions("a.so"), nil)
	module0 := h.children(t, ctx)[0]

	fetchErr := errors.New("memory map not available")
	h.model.OnMemoryMapChanged(ctx)
	h.model.Refresh(nil)
	h.caches["P1"].resolve(nil, fetchErr)

	assert.Empty(t, h.children(t, ctx))
	assert.True(t, module0.Disposed())

	snap := h.model.Snapshot()
	assert.Equal(t, fetchErr, snap.Parents[0].Err)

	last := h.recorder.deltas[len(h.recorder.deltas)-1]
	assert.Equal(t, fetchErr, last.Err)
}

func TestModel_MemoryMapChangeInvalidatesCache(t *testing.T) {
	h := newHarness(t)
	_, err := h.model.AddContext("P1", "main")
	require.NoError(t, err)

	h.model.OnMemoryMapChanged(domain.NewInternedString("P1"))
	assert.Equal(t, 1, h.caches["P1"].invalidations)
}

func TestModel_StaleAfterRacingChange(t *testing.T) {
	h := newHarness(t)
	_, err := h.model.AddContext("P1", "main")
	require.NoError(t, err)
	ctx := domain.NewInternedString("P1")
	assert.True(t, h.model.Stale())

	h.model.Refresh(nil)
	assert.False(t, h.model.Stale(), "a pending round is not stale")

	h.model.OnMemoryMapChanged(ctx)
	h.caches["P1"].resolve(regions("a.so"), nil)
	assert.True(t, h.model.Stale())

	h.refresh(t)
	assert.False(t, h.model.Stale())
	assert.Len(t, h.children(t, ctx), 1)
}

func TestModel_SetPositions(t *testing.T) {
	h := newHarness(t, model.WithPositions(map[string]int{"P1.Module-2": 0}))
	_, err := h.model.AddContext("P1", "main")
	require.NoError(t, err)
	ctx := domain.NewInternedString("P1")

	h.model.Refresh(nil)
	h.caches["P1"].resolve(regions("a.so", "b.so", "c.so"), nil)

	h.model.SetPositions(map[string]int{
		"P1.Module-0": 9,
		"P1.Module-7": 1,
		"Expressions.Expr-0": 3,
	})
	h.refresh(t)

	last := h.recorder.deltas[len(h.recorder.deltas)-1]
	assert.Equal(t, []domain.InternedString{domain.NewInternedString("P1.Module-0")}, last.Changed)

	nodes := h.children(t, ctx)
	require.Len(t, nodes, 3)
	assert.Equal(t, "P1.Module-0", nodes[2].ID().String())
	assert.Equal(t, 9, nodes[2].SortPosition())

	// A dropped entry leaves the live module in place.
	assert.True(t, nodes[0].Repositioned())
	assert.Equal(t, "P1.Module-2", nodes[0].ID().String())
}

func TestModel_Move(t *testing.T) {
	h := newHarness(t)
	h.refresh(t)

	err := h.model.Move(domain.NewInternedString("P9.Module-0"), 1)
	require.ErrorContains(t, err, domain.ErrNodeNotFound.Error())

	err = h.model.Move(domain.NewInternedString("Expressions.Expr-0"), 1)
	require.ErrorContains(t, err, domain.ErrNotMovable.Error())

	err = h.model.Move(domain.NewInternedString("Expressions.Expr-0"), -1)
	require.ErrorContains(t, err, domain.ErrInvalidPosition.Error())
}

func TestModel_DuplicateContext(t *testing.T) {
	h := newHarness(t)
	_, err := h.model.AddContext("P1", "main")
	require.NoError(t, err)

	_, err = h.model.AddContext("P1", "again")
	require.ErrorContains(t, err, domain.ErrNodeExists.Error())

	_, err = h.model.AddContext(domain.ExpressionsID, "")
	require.ErrorContains(t, err, domain.ErrNodeExists.Error())

	assert.Equal(t, []domain.InternedString{domain.NewInternedString("P1")}, h.model.Contexts())
}

func TestModel_RemoveContext(t *testing.T) {
	h := newHarness(t)
	_, err := h.model.AddContext("P1", "main")
	require.NoError(t, err)
	h.model.Refresh(nil)
	h.caches["P1"].resolve(regions("a.so"), nil)
	module0 := h.children(t, domain.NewInternedString("P1"))[0]

	require.NoError(t, h.model.RemoveContext(domain.NewInternedString("P1")))

	assert.True(t, module0.Disposed())
	assert.Empty(t, h.model.Contexts())
	_, ok := h.model.Node(module0.ID())
	assert.False(t, ok)

	err = h.model.RemoveContext(domain.NewInternedString("P1"))
	require.ErrorContains(t, err, domain.ErrNodeNotFound.Error())
}

func TestModel_Dispose(t *testing.T) {
	h := newHarness(t)
	h.exprs = []domain.Expression{&expr{text: "a"}}
	h.refresh(t)
	node := h.children(t, model.ExpressionsID)[0]

	h.model.Dispose()

	assert.True(t, h.model.Disposed())
	assert.True(t, node.Disposed())
	assert.Equal(t, 0, h.model.Len())
	assert.Empty(t, h.model.Snapshot().Parents)
	_, err := h.model.AddContext("P2", "")
	require.ErrorIs(t, err, domain.ErrModelDisposed)
}

// heldFetch is one memory map request waiting for the test to answer it.
type heldFetch struct {
	reply chan []domain.MemoryRegion
}

// heldSource blocks every fetch until the test replies to it.
type heldSource struct {
	calls chan heldFetch
}

func (s *heldSource) Fetch(ctx context.Context, _ domain.InternedString) ([]domain.MemoryRegion, error) {
	f := heldFetch{reply: make(chan []domain.MemoryRegion, 1)}
	select {
	case s.calls <- f:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case r := <-f.reply:
		return r, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestModules_InvalidateSupersedesInflightFetch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		logger := mocks.NewMockLogger(ctrl)
		logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

		loop := dispatch.New()
		source := &heldSource{calls: make(chan heldFetch)}
		memmaps := memmap.NewService(t.Context(), source, loop)
		defer memmaps.Close()

		m := model.New(expressions.NewRegistry(), memmaps, telemetry.NewNoOpTracer(), logger)
		_, err := m.AddContext("P1", "main")
		require.NoError(t, err)
		ctx := domain.NewInternedString("P1")
		cs, ok := m.Children(ctx)
		require.True(t, ok)

		m.Refresh(nil)
		first := <-source.calls

		cs.Invalidate()
		second := <-source.calls

		first.reply <- regions("a.so", "b.so")
		synctest.Wait()
		loop.Drain()
		assert.True(t, cs.Pending(), "a fetch issued before Invalidate must not commit")
		assert.False(t, cs.Valid())

		second.reply <- regions("c.so")
		synctest.Wait()
		loop.Drain()

		nodes, err := cs.Nodes()
		require.NoError(t, err)
		require.Len(t, nodes, 1)
		region, bound := nodes[0].(*domain.ModuleNode).Region()
		require.True(t, bound)
		assert.Equal(t, "/lib/c.so", region.FileName)
		assert.Equal(t, 2, memmaps.Cache(ctx).Fetches())
	})
}
