package view_test

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tcfview/internal/adapters/view"
	"go.trai.ch/tcfview/internal/core/domain"
)

type registry map[domain.InternedString]domain.Node

func (r registry) Node(id domain.InternedString) (domain.Node, bool) {
	n, ok := r[id]
	return n, ok
}
func (r registry) Register(n domain.Node)             { r[n.ID()] = n }
func (r registry) Unregister(id domain.InternedString) { delete(r, id) }

func ids(names ...string) []domain.InternedString {
	out := make([]domain.InternedString, 0, len(names))
	for _, n := range names {
		out = append(out, domain.NewInternedString(n))
	}
	return out
}

func TestRenderer_ChildrenChanged(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	moved := domain.NewModuleNode(domain.NewInternedString("P1"), domain.NewInternedString("P1.Module-2"), 2)
	moved.MoveTo(7)
	reg := registry{}
	reg.Register(moved)

	var buf bytes.Buffer
	r := view.NewRenderer(&buf, view.WithRegistry(reg))

	r.ChildrenChanged(domain.ChildDelta{
		Parent:  domain.NewInternedString("P1"),
		Added:   ids("P1.Module-3"),
		Removed: ids("P1.Module-4"),
		Changed: ids("P1.Module-2", "P1.Module-9"),
	})
	require.NoError(t, r.Close())

	assert.Equal(t,
		"- P1.Module-4\n"+
			"+ P1.Module-3\n"+
			"~ P1.Module-2 @7\n"+
			"~ P1.Module-9\n",
		buf.String())
}

func TestRenderer_ErrorTransitions(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	r := view.NewRenderer(&buf)
	parent := domain.NewInternedString("P1")
	fetchErr := errors.New("memory map not available")

	r.ChildrenChanged(domain.ChildDelta{Parent: parent, Err: fetchErr})
	r.ChildrenChanged(domain.ChildDelta{Parent: parent, Err: fetchErr})
	r.ChildrenChanged(domain.ChildDelta{Parent: parent, Added: ids("P1.Module-0")})
	r.ChildrenChanged(domain.ChildDelta{Parent: parent})
	require.NoError(t, r.Close())

	assert.Equal(t,
		"✗ P1: memory map not available\n"+
			"+ P1.Module-0\n"+
			"✓ P1: recovered\n",
		buf.String())
}

func TestRenderer_BatchesUntilTick(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	synctest.Test(t, func(t *testing.T) {
		var mu sync.Mutex
		var buf bytes.Buffer
		r := view.NewRenderer(writerFunc(func(p []byte) (int, error) {
			mu.Lock()
			defer mu.Unlock()
			return buf.Write(p)
		}))
		defer func() { _ = r.Close() }()

		r.ChildrenChanged(domain.ChildDelta{Parent: domain.NewInternedString("P1"), Added: ids("P1.Module-0")})
		mu.Lock()
		assert.Empty(t, buf.String())
		mu.Unlock()

		time.Sleep(view.DefaultInterval + time.Millisecond)
		synctest.Wait()

		mu.Lock()
		assert.Equal(t, "+ P1.Module-0\n", buf.String())
		mu.Unlock()
	})
}

type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
