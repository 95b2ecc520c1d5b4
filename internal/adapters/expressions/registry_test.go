package expressions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tcfview/internal/adapters/expressions"
	"go.trai.ch/tcfview/internal/core/domain"
)

func texts(r *expressions.Registry) []string {
	var out []string
	for _, e := range r.Expressions() {
		out = append(out, e.Text())
	}
	return out
}

func TestNewRegistry_SkipsEmpty(t *testing.T) {
	r := expressions.NewRegistry(
		domain.ExpressionSpec{Text: "argc", Enabled: true},
		domain.ExpressionSpec{Text: "  "},
		domain.ExpressionSpec{Text: "argv[0]"},
	)

	assert.Equal(t, []string{"argc", "argv[0]"}, texts(r))
	assert.Equal(t, []domain.ExpressionSpec{
		{Text: "argc", Enabled: true},
		{Text: "argv[0]"},
	}, r.Specs())
}

func TestRegistry_Add(t *testing.T) {
	r := expressions.NewRegistry()

	e, err := r.Add("errno", true)
	require.NoError(t, err)
	assert.Equal(t, "errno", e.Text())
	assert.True(t, e.Enabled())
	assert.Equal(t, 1, r.Len())

	_, err = r.Add("", true)
	require.ErrorIs(t, err, domain.ErrEmptyExpression)
}

func TestRegistry_EditKeepsHandle(t *testing.T) {
	r := expressions.NewRegistry(domain.ExpressionSpec{Text: "x"})
	before := r.Expressions()[0]

	require.NoError(t, r.Edit(0, "x + 1"))
	after := r.Expressions()[0]

	assert.Same(t, before, after)
	assert.Equal(t, "x + 1", after.Text())
	require.ErrorIs(t, r.Edit(0, ""), domain.ErrEmptyExpression)
}

func TestRegistry_IndexErrors(t *testing.T) {
	r := expressions.NewRegistry(domain.ExpressionSpec{Text: "x"})

	require.ErrorContains(t, r.Remove(3), domain.ErrExpressionNotFound.Error())
	require.ErrorContains(t, r.Edit(-1, "y"), domain.ErrExpressionNotFound.Error())
	require.ErrorContains(t, r.SetEnabled(1, true), domain.ErrExpressionNotFound.Error())
	require.ErrorContains(t, r.Move(0, 1), domain.ErrExpressionNotFound.Error())
}

func TestRegistry_RemoveAndMove(t *testing.T) {
	r := expressions.NewRegistry(
		domain.ExpressionSpec{Text: "a"},
		domain.ExpressionSpec{Text: "b"},
		domain.ExpressionSpec{Text: "c"},
	)

	require.NoError(t, r.Move(0, 2))
	assert.Equal(t, []string{"b", "c", "a"}, texts(r))

	require.NoError(t, r.Remove(1))
	assert.Equal(t, []string{"b", "a"}, texts(r))

	require.NoError(t, r.SetEnabled(0, true))
	assert.True(t, r.Expressions()[0].(*expressions.Expression).Enabled())
}

func TestRegistry_Replace(t *testing.T) {
	r := expressions.NewRegistry(
		domain.ExpressionSpec{Text: "a"},
		domain.ExpressionSpec{Text: "b"},
	)
	before := r.Expressions()

	t.Run("unchanged", func(t *testing.T) {
		assert.False(t, r.Replace([]domain.ExpressionSpec{{Text: "a"}, {Text: "b"}}))
	})

	t.Run("reorder keeps handles", func(t *testing.T) {
		assert.True(t, r.Replace([]domain.ExpressionSpec{{Text: "b"}, {Text: "a"}}))
		after := r.Expressions()
		assert.Same(t, before[1], after[0])
		assert.Same(t, before[0], after[1])
	})

	t.Run("enabled flag follows", func(t *testing.T) {
		assert.True(t, r.Replace([]domain.ExpressionSpec{{Text: "b", Enabled: true}, {Text: "a"}}))
		assert.Same(t, before[1], r.Expressions()[0])
		assert.True(t, r.Expressions()[0].(*expressions.Expression).Enabled())
	})

	t.Run("duplicates get their own handles", func(t *testing.T) {
		assert.True(t, r.Replace([]domain.ExpressionSpec{{Text: "a"}, {Text: "a"}}))
		after := r.Expressions()
		require.Len(t, after, 2)
		assert.Same(t, before[0], after[0])
		assert.NotSame(t, after[0], after[1])
	})
}
