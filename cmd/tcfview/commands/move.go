package commands

import (
	"strconv"

	"github.com/spf13/cobra"
	"go.trai.ch/tcfview/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newMoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <module-id> [position]",
		Short: "Pin a module to a sort position, e.g. 'move P1.Module-3 0'",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reset, _ := cmd.Flags().GetBool("reset")
			if reset {
				return c.app.ResetModule(cmd.Context(), args[0], stateOptions(cmd))
			}
			if len(args) != 2 {
				_ = cmd.Help()
				return nil
			}
			pos, err := strconv.Atoi(args[1])
			if err != nil {
				return zerr.With(domain.ErrInvalidPosition, "position", args[1])
			}
			return c.app.MoveModule(cmd.Context(), args[0], pos, stateOptions(cmd))
		},
	}
	cmd.Flags().Bool("reset", false, "Drop the pinned position of the module")
	return cmd
}
