package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.trai.ch/tcfview/internal/core/domain"
	"go.trai.ch/tcfview/internal/ui/output"
	"go.trai.ch/tcfview/internal/ui/style"
	"go.trai.ch/zerr"
)

func (c *CLI) newExprCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expr",
		Short: "Manage the expressions kept in the layout store",
	}
	cmd.AddCommand(c.newExprListCmd())
	cmd.AddCommand(c.newExprAddCmd())
	cmd.AddCommand(c.newExprRemoveCmd())
	cmd.AddCommand(c.newExprEditCmd())
	cmd.AddCommand(c.newExprEnableCmd("enable", true))
	cmd.AddCommand(c.newExprEnableCmd("disable", false))
	cmd.AddCommand(c.newExprMoveCmd())
	return cmd
}

func (c *CLI) newExprListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List stored expressions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			specs, err := c.app.ListExpressions(cmd.Context(), stateOptions(cmd))
			if err != nil {
				return err
			}
			out := output.New(cmd.OutOrStdout())
			for i, spec := range specs {
				mark := output.Colorize(out, style.Circle, string(style.Slate))
				if spec.Enabled {
					mark = output.Colorize(out, style.Dot, string(style.Green))
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d  %s %s\n", i, mark, spec.Text)
			}
			return nil
		},
	}
}

func (c *CLI) newExprAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <expression>",
		Short: "Append an expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			disabled, _ := cmd.Flags().GetBool("disabled")
			return c.app.AddExpression(cmd.Context(), args[0], !disabled, stateOptions(cmd))
		},
	}
	cmd.Flags().Bool("disabled", false, "Add the expression without evaluating it")
	return cmd
}

func (c *CLI) newExprRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <index>",
		Aliases: []string{"remove"},
		Short:   "Remove an expression",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return c.app.RemoveExpression(cmd.Context(), index, stateOptions(cmd))
		},
	}
}

func (c *CLI) newExprEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <index> <expression>",
		Short: "Replace the text of an expression",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return c.app.EditExpression(cmd.Context(), index, args[1], stateOptions(cmd))
		},
	}
}

func (c *CLI) newExprEnableCmd(use string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <index>",
		Short: fmt.Sprintf("Mark an expression as %sd", use),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return c.app.EnableExpression(cmd.Context(), index, enabled, stateOptions(cmd))
		},
	}
}

func (c *CLI) newExprMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mv <from> <to>",
		Short: "Reorder an expression",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			to, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			return c.app.MoveExpression(cmd.Context(), from, to, stateOptions(cmd))
		},
	}
}

func parseIndex(arg string) (int, error) {
	index, err := strconv.Atoi(arg)
	if err != nil {
		return 0, zerr.With(domain.ErrExpressionNotFound, "index", arg)
	}
	return index, nil
}
