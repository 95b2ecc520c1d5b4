package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tcfview/cmd/tcfview/commands"
	"go.trai.ch/tcfview/internal/app"
	"go.trai.ch/tcfview/internal/build"
	"go.trai.ch/tcfview/internal/core/domain"
)

type call struct {
	name  string
	args  []any
	state string
}

type mockApp struct {
	calls    []call
	err      error
	specs    []domain.ExpressionSpec
	view     app.ViewOptions
	jsonLog  bool
	verbose  bool
	showFunc func(ctx context.Context, opts app.ViewOptions) error
}

func (m *mockApp) record(name string, opts app.StateOptions, args ...any) error {
	m.calls = append(m.calls, call{name: name, args: args, state: opts.StatePath})
	return m.err
}

func (m *mockApp) ConfigureLogging(jsonLog, verbose bool) {
	m.jsonLog = jsonLog
	m.verbose = verbose
}

func (m *mockApp) Show(ctx context.Context, opts app.ViewOptions) error {
	m.view = opts
	if m.showFunc != nil {
		return m.showFunc(ctx, opts)
	}
	return m.record("show", app.StateOptions{StatePath: opts.StatePath})
}

func (m *mockApp) Watch(_ context.Context, opts app.ViewOptions) error {
	m.view = opts
	return m.record("watch", app.StateOptions{StatePath: opts.StatePath})
}

func (m *mockApp) ListExpressions(_ context.Context, opts app.StateOptions) ([]domain.ExpressionSpec, error) {
	return m.specs, m.record("ls", opts)
}

func (m *mockApp) AddExpression(_ context.Context, text string, enabled bool, opts app.StateOptions) error {
	return m.record("add", opts, text, enabled)
}

func (m *mockApp) RemoveExpression(_ context.Context, index int, opts app.StateOptions) error {
	return m.record("rm", opts, index)
}

func (m *mockApp) EditExpression(_ context.Context, index int, text string, opts app.StateOptions) error {
	return m.record("edit", opts, index, text)
}

func (m *mockApp) EnableExpression(_ context.Context, index int, enabled bool, opts app.StateOptions) error {
	return m.record("enable", opts, index, enabled)
}

func (m *mockApp) MoveExpression(_ context.Context, from, to int, opts app.StateOptions) error {
	return m.record("mv", opts, from, to)
}

func (m *mockApp) MoveModule(_ context.Context, id string, pos int, opts app.StateOptions) error {
	return m.record("move", opts, id, pos)
}

func (m *mockApp) ResetModule(_ context.Context, id string, opts app.StateOptions) error {
	return m.record("reset", opts, id)
}

func execute(t *testing.T, m *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(m)
	cli.SetArgs(args)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Show(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "show", "session.yaml",
			"--columns", "Name,Flags", "--sort", "Address", "--desc", "--state", "/tmp/layout.mp", "--json-log", "--verbose")
		require.NoError(t, err)

		assert.Equal(t, app.ViewOptions{
			SessionPath: "session.yaml",
			Columns:     []string{"Name", "Flags"},
			SortBy:      "Address",
			Descending:  true,
			StatePath:   "/tmp/layout.mp",
		}, m.view)
		assert.True(t, m.jsonLog)
		assert.True(t, m.verbose)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		m := &mockApp{showFunc: func(context.Context, app.ViewOptions) error {
			return errors.New("simulated error")
		}}
		_, err := execute(t, m, "show", "session.yaml")
		require.ErrorContains(t, err, "simulated error")
	})

	t.Run("requires a session file", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "show")
		require.Error(t, err)
		assert.Empty(t, m.calls)
	})
}

func TestCommands_Watch(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "watch", "session.yaml", "-c", "Name")
	require.NoError(t, err)
	require.Len(t, m.calls, 1)
	assert.Equal(t, "watch", m.calls[0].name)
	assert.Equal(t, []string{"Name"}, m.view.Columns)
	assert.False(t, m.jsonLog)
}

func TestCommands_Expr(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want call
	}{
		{"add", []string{"expr", "add", "argc"}, call{name: "add", args: []any{"argc", true}}},
		{"add disabled", []string{"expr", "add", "errno", "--disabled"}, call{name: "add", args: []any{"errno", false}}},
		{"remove", []string{"expr", "rm", "2"}, call{name: "rm", args: []any{2}}},
		{"edit", []string{"expr", "edit", "0", "argv[0]"}, call{name: "edit", args: []any{0, "argv[0]"}}},
		{"enable", []string{"expr", "enable", "1"}, call{name: "enable", args: []any{1, true}}},
		{"disable", []string{"expr", "disable", "1"}, call{name: "enable", args: []any{1, false}}},
		{"move", []string{"expr", "mv", "3", "0"}, call{name: "mv", args: []any{3, 0}}},
		{"state", []string{"expr", "rm", "0", "--state", "x.mp"}, call{name: "rm", args: []any{0}, state: "x.mp"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockApp{}
			_, err := execute(t, m, tt.args...)
			require.NoError(t, err)
			require.Len(t, m.calls, 1)
			assert.Equal(t, tt.want, m.calls[0])
		})
	}

	t.Run("rejects a non-numeric index", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "expr", "rm", "first")
		require.ErrorContains(t, err, domain.ErrExpressionNotFound.Error())
		assert.Empty(t, m.calls)
	})
}

func TestCommands_ExprList(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	m := &mockApp{specs: []domain.ExpressionSpec{
		{Text: "argc", Enabled: true},
		{Text: "errno"},
	}}
	out, err := execute(t, m, "expr", "ls")
	require.NoError(t, err)
	assert.Equal(t, "0  ● argc\n1  ○ errno\n", out)
}

func TestCommands_Move(t *testing.T) {
	t.Run("pins a module", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "move", "P1.Module-3", "0")
		require.NoError(t, err)
		assert.Equal(t, []call{{name: "move", args: []any{"P1.Module-3", 0}}}, m.calls)
	})

	t.Run("resets a module", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "move", "P1.Module-3", "--reset")
		require.NoError(t, err)
		assert.Equal(t, []call{{name: "reset", args: []any{"P1.Module-3"}}}, m.calls)
	})

	t.Run("rejects a non-numeric position", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "move", "P1.Module-3", "top")
		require.ErrorContains(t, err, domain.ErrInvalidPosition.Error())
		assert.Empty(t, m.calls)
	})

	t.Run("shows usage without a position", func(t *testing.T) {
		m := &mockApp{}
		out, err := execute(t, m, "move", "P1.Module-3")
		require.NoError(t, err)
		assert.Contains(t, out, "Usage:")
		assert.Empty(t, m.calls)
	})
}

func TestCommands_Columns(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	out, err := execute(t, &mockApp{}, "columns")
	require.NoError(t, err)
	assert.Equal(t,
		"✓ Name\n✓ File\n✓ Address\n✓ Size\n  Flags\n  Offset\n  Section\n",
		out)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Equal(t, "tcfview version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", out)
}
