package plan

import (
	"io"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a plan with its progress",
	Long:  `Print the plan's deadline, overall progress and every stage with its tasks and ids.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(cmd.OutOrStdout(), args[0])
	},
}

func runShow(out io.Writer, name string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	_, rec, err := loadPlan(ws, name)
	if err != nil {
		return err
	}
	renderPlan(out, rec.Plan, now(), ws.Config.Display)
	return nil
}
