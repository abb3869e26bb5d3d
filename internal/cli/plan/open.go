package plan

import (
	"github.com/pablasso/teco/internal/tui"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open <name>",
	Short: "Open a plan in the interactive dashboard",
	Args:  cobra.ExactArgs(1),
	RunE:  runOpen,
}

func runOpen(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	dir, err := ws.Store.Find(args[0])
	if err != nil {
		return err
	}
	return tui.Run(tui.Options{Workspace: ws, PlanDir: dir})
}
