package cli

import (
	"github.com/spf13/cobra"

	"github.com/interpretive-systems/rootcmp/internal/tui"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <refFile> <cmpFile>",
		Short: "Open the TUI and re-compare when either file changes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(tui.Config{
				RefPath:  args[0],
				CmpPath:  args[1],
				TreeName: mustGetStringFlag(cmd.Root(), "tree-name"),
			})
		},
	}
	return cmd
}
