// Package commands implements the CLI commands for tcfview.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/tcfview/internal/app"
	"go.trai.ch/tcfview/internal/build"
	"go.trai.ch/tcfview/internal/core/domain"
)

// CLI represents the command line interface for tcfview.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	ConfigureLogging(jsonLog, verbose bool)
	Show(ctx context.Context, opts app.ViewOptions) error
	Watch(ctx context.Context, opts app.ViewOptions) error
	ListExpressions(ctx context.Context, opts app.StateOptions) ([]domain.ExpressionSpec, error)
	AddExpression(ctx context.Context, text string, enabled bool, opts app.StateOptions) error
	RemoveExpression(ctx context.Context, index int, opts app.StateOptions) error
	EditExpression(ctx context.Context, index int, text string, opts app.StateOptions) error
	EnableExpression(ctx context.Context, index int, enabled bool, opts app.StateOptions) error
	MoveExpression(ctx context.Context, from, to int, opts app.StateOptions) error
	MoveModule(ctx context.Context, id string, pos int, opts app.StateOptions) error
	ResetModule(ctx context.Context, id string, opts app.StateOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "tcfview",
		Short:         "Inspect the memory maps and expressions of a debug session",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().String("state", "", "Path of the layout store (default: user config dir)")
	rootCmd.PersistentFlags().Bool("json-log", false, "Write logs as JSON")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		jsonLog, _ := cmd.Flags().GetBool("json-log")
		verbose, _ := cmd.Flags().GetBool("verbose")
		c.app.ConfigureLogging(jsonLog, verbose)
	}

	rootCmd.AddCommand(c.newShowCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newExprCmd())
	rootCmd.AddCommand(c.newMoveCmd())
	rootCmd.AddCommand(c.newColumnsCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func stateOptions(cmd *cobra.Command) app.StateOptions {
	state, _ := cmd.Flags().GetString("state")
	return app.StateOptions{StatePath: state}
}
