package commands

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.trai.ch/tcfview/internal/core/domain"
	"go.trai.ch/tcfview/internal/ui/output"
	"go.trai.ch/tcfview/internal/ui/style"
)

func (c *CLI) newColumnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "columns",
		Short: "List the module columns, defaults marked",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := output.New(cmd.OutOrStdout())
			defaults := domain.DefaultModuleColumns()
			for _, col := range domain.ModuleColumns() {
				mark := " "
				if slices.Contains(defaults, col) {
					mark = output.Colorize(out, style.Check, string(style.Green))
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, col)
			}
		},
	}
}
