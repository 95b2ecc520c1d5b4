package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/tcfview/internal/app"
)

func (c *CLI) newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <session-file>",
		Short: "Print the session tree once every memory map is fetched",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Show(cmd.Context(), viewOptions(cmd, args[0]))
		},
	}
	addViewFlags(cmd)
	return cmd
}

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <session-file>",
		Short: "Print the session tree and follow changes of the session file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Watch(cmd.Context(), viewOptions(cmd, args[0]))
		},
	}
	addViewFlags(cmd)
	return cmd
}

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("columns", "c", nil, "Module columns to show, see 'tcfview columns'")
	cmd.Flags().StringP("sort", "s", "", "Order modules by a column")
	cmd.Flags().BoolP("desc", "d", false, "Reverse the --sort order")
}

func viewOptions(cmd *cobra.Command, sessionPath string) app.ViewOptions {
	columns, _ := cmd.Flags().GetStringSlice("columns")
	sortBy, _ := cmd.Flags().GetString("sort")
	desc, _ := cmd.Flags().GetBool("desc")
	return app.ViewOptions{
		SessionPath: sessionPath,
		Columns:     columns,
		SortBy:      sortBy,
		Descending:  desc,
		StatePath:   stateOptions(cmd).StatePath,
	}
}
