package app

import (
	"context"
	"fmt"

	"go.trai.ch/tcfview/internal/adapters/expressions" //nolint:depguard // Wired in app layer
	"go.trai.ch/tcfview/internal/core/domain"
	"go.trai.ch/zerr"
)

// StateOptions selects the layout store the layout commands operate on.
type StateOptions struct {
	// StatePath overrides the layout store location.
	StatePath string
}

// ListExpressions returns the expressions stored in the layout.
func (a *App) ListExpressions(_ context.Context, opts StateOptions) ([]domain.ExpressionSpec, error) {
	layout, err := a.layouts(opts.StatePath).Load()
	if err != nil {
		return nil, err
	}
	return layout.Expressions, nil
}

// AddExpression appends an expression to the layout.
func (a *App) AddExpression(_ context.Context, text string, enabled bool, opts StateOptions) error {
	return a.editExpressions(opts, fmt.Sprintf("added expression %q", text), func(r *expressions.Registry) error {
		_, err := r.Add(text, enabled)
		return err
	})
}

// RemoveExpression deletes the expression at index.
func (a *App) RemoveExpression(_ context.Context, index int, opts StateOptions) error {
	return a.editExpressions(opts, fmt.Sprintf("removed expression %d", index), func(r *expressions.Registry) error {
		return r.Remove(index)
	})
}

// EditExpression replaces the text of the expression at index.
func (a *App) EditExpression(_ context.Context, index int, text string, opts StateOptions) error {
	return a.editExpressions(opts, fmt.Sprintf("edited expression %d", index), func(r *expressions.Registry) error {
		return r.Edit(index, text)
	})
}

// EnableExpression enables or disables the expression at index.
func (a *App) EnableExpression(_ context.Context, index int, enabled bool, opts StateOptions) error {
	verb := "disabled"
	if enabled {
		verb = "enabled"
	}
	return a.editExpressions(opts, fmt.Sprintf("%s expression %d", verb, index), func(r *expressions.Registry) error {
		return r.SetEnabled(index, enabled)
	})
}

// MoveExpression moves the expression at from to index to.
func (a *App) MoveExpression(_ context.Context, from, to int, opts StateOptions) error {
	return a.editExpressions(opts, fmt.Sprintf("moved expression %d to %d", from, to), func(r *expressions.Registry) error {
		return r.Move(from, to)
	})
}

func (a *App) editExpressions(opts StateOptions, done string, fn func(r *expressions.Registry) error) error {
	layouts := a.layouts(opts.StatePath)
	layout, err := layouts.Load()
	if err != nil {
		return err
	}

	registry := expressions.NewRegistry(layout.Expressions...)
	if err := fn(registry); err != nil {
		return err
	}
	layout.Expressions = registry.Specs()

	if err := layouts.Save(layout); err != nil {
		return err
	}
	a.logger.Info(done)
	return nil
}

// MoveModule stores a manual sort position for a module. The position is
// applied the next time the module is created.
func (a *App) MoveModule(_ context.Context, id string, pos int, opts StateOptions) error {
	if err := checkModuleID(id); err != nil {
		return err
	}
	if pos < 0 {
		return zerr.With(domain.ErrInvalidPosition, "position", pos)
	}
	return a.editPositions(opts, fmt.Sprintf("moved %s to %d", id, pos), func(positions map[string]int) {
		positions[id] = pos
	})
}

// ResetModule drops the manual sort position of a module.
func (a *App) ResetModule(_ context.Context, id string, opts StateOptions) error {
	if err := checkModuleID(id); err != nil {
		return err
	}
	return a.editPositions(opts, fmt.Sprintf("reset %s", id), func(positions map[string]int) {
		delete(positions, id)
	})
}

func (a *App) editPositions(opts StateOptions, done string, fn func(positions map[string]int)) error {
	layouts := a.layouts(opts.StatePath)
	layout, err := layouts.Load()
	if err != nil {
		return err
	}
	if layout.Positions == nil {
		layout.Positions = make(map[string]int)
	}
	fn(layout.Positions)

	if err := layouts.Save(layout); err != nil {
		return err
	}
	a.logger.Info(done)
	return nil
}

// checkModuleID accepts identities of the form <context>.Module-<index>.
func checkModuleID(id string) error {
	if _, prefix, _, ok := domain.ParseChildID(id); !ok || prefix != domain.ModulePrefix {
		return zerr.With(domain.ErrNotMovable, "id", id)
	}
	return nil
}
