package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tcfview/internal/app"
	"go.trai.ch/tcfview/internal/core/domain"
	"go.uber.org/mock/gomock"
)

func stored() *domain.Layout {
	return &domain.Layout{
		Expressions: []domain.ExpressionSpec{
			{Text: "errno", Enabled: true},
			{Text: "argc", Enabled: true},
			{Text: "environ", Enabled: false},
		},
	}
}

func TestApp_ListExpressions(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().Load().Return(stored(), nil)

	specs, err := f.app.ListExpressions(context.Background(), app.StateOptions{})
	require.NoError(t, err)
	assert.Equal(t, stored().Expressions, specs)
}

func TestApp_ExpressionEdits(t *testing.T) {
	tests := []struct {
		name string
		edit func(a *app.App) error
		log  string
		want []domain.ExpressionSpec
	}{
		{
			name: "add",
			edit: func(a *app.App) error {
				return a.AddExpression(context.Background(), "*ptr", false, app.StateOptions{})
			},
			log: `added expression "*ptr"`,
			want: []domain.ExpressionSpec{
				{Text: "errno", Enabled: true},
				{Text: "argc", Enabled: true},
				{Text: "environ", Enabled: false},
				{Text: "*ptr", Enabled: false},
			},
		},
		{
			name: "remove",
			edit: func(a *app.App) error {
				return a.RemoveExpression(context.Background(), 1, app.StateOptions{})
			},
			log: "removed expression 1",
			want: []domain.ExpressionSpec{
				{Text: "errno", Enabled: true},
				{Text: "environ", Enabled: false},
			},
		},
		{
			name: "edit",
			edit: func(a *app.App) error {
				return a.EditExpression(context.Background(), 0, "errno + 1", app.StateOptions{})
			},
			log: "edited expression 0",
			want: []domain.ExpressionSpec{
				{Text: "errno + 1", Enabled: true},
				{Text: "argc", Enabled: true},
				{Text: "environ", Enabled: false},
			},
		},
		{
			name: "enable",
			edit: func(a *app.App) error {
				return a.EnableExpression(context.Background(), 2, true, app.StateOptions{})
			},
			log: "enabled expression 2",
			want: []domain.ExpressionSpec{
				{Text: "errno", Enabled: true},
				{Text: "argc", Enabled: true},
				{Text: "environ", Enabled: true},
			},
		},
		{
			name: "disable",
			edit: func(a *app.App) error {
				return a.EnableExpression(context.Background(), 0, false, app.StateOptions{})
			},
			log: "disabled expression 0",
			want: []domain.ExpressionSpec{
				{Text: "errno", Enabled: false},
				{Text: "argc", Enabled: true},
				{Text: "environ", Enabled: false},
			},
		},
		{
			name: "move",
			edit: func(a *app.App) error {
				return a.MoveExpression(context.Background(), 2, 0, app.StateOptions{})
			},
			log: "moved expression 2 to 0",
			want: []domain.ExpressionSpec{
				{Text: "environ", Enabled: false},
				{Text: "errno", Enabled: true},
				{Text: "argc", Enabled: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.store.EXPECT().Load().Return(stored(), nil)

			var saved *domain.Layout
			f.store.EXPECT().Save(gomock.Any()).DoAndReturn(func(l *domain.Layout) error {
				saved = l
				return nil
			})
			f.logger.EXPECT().Info(tt.log)

			require.NoError(t, tt.edit(f.app))
			require.NotNil(t, saved)
			assert.Equal(t, tt.want, saved.Expressions)
		})
	}
}

func TestApp_ExpressionEdits_Errors(t *testing.T) {
	t.Run("index out of range", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().Load().Return(stored(), nil)

		err := f.app.RemoveExpression(context.Background(), 7, app.StateOptions{})
		require.ErrorContains(t, err, domain.ErrExpressionNotFound.Error())
	})

	t.Run("empty text", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().Load().Return(stored(), nil)

		err := f.app.AddExpression(context.Background(), "  ", true, app.StateOptions{})
		require.ErrorIs(t, err, domain.ErrEmptyExpression)
	})

	t.Run("save fails", func(t *testing.T) {
		f := newFixture(t)
		f.store.EXPECT().Load().Return(stored(), nil)
		f.store.EXPECT().Save(gomock.Any()).Return(domain.ErrStoreWriteFailed)

		err := f.app.AddExpression(context.Background(), "x", true, app.StateOptions{})
		require.ErrorIs(t, err, domain.ErrStoreWriteFailed)
	})
}

func TestApp_MoveModule(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().Load().Return(&domain.Layout{}, nil)

	var saved *domain.Layout
	f.store.EXPECT().Save(gomock.Any()).DoAndReturn(func(l *domain.Layout) error {
		saved = l
		return nil
	})
	f.logger.EXPECT().Info("moved P1.Module-2 to 0")

	require.NoError(t, f.app.MoveModule(context.Background(), "P1.Module-2", 0, app.StateOptions{}))
	assert.Equal(t, map[string]int{"P1.Module-2": 0}, saved.Positions)
}

func TestApp_ResetModule(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().Load().Return(&domain.Layout{
		Positions: map[string]int{"P1.Module-2": 0, "P1.Module-3": 4},
	}, nil)

	var saved *domain.Layout
	f.store.EXPECT().Save(gomock.Any()).DoAndReturn(func(l *domain.Layout) error {
		saved = l
		return nil
	})
	f.logger.EXPECT().Info("reset P1.Module-2")

	require.NoError(t, f.app.ResetModule(context.Background(), "P1.Module-2", app.StateOptions{}))
	assert.Equal(t, map[string]int{"P1.Module-3": 4}, saved.Positions)
}

func TestApp_MoveModule_Rejects(t *testing.T) {
	f := newFixture(t)

	for _, id := range []string{"P1", "P1.Expr-0", ".Module-1", "P1.Module-x", "P1.Module--1"} {
		err := f.app.MoveModule(context.Background(), id, 1, app.StateOptions{})
		require.ErrorContains(t, err, domain.ErrNotMovable.Error(), id)
	}

	err := f.app.MoveModule(context.Background(), "P1.Module-0", -1, app.StateOptions{})
	require.ErrorContains(t, err, domain.ErrInvalidPosition.Error())
}
