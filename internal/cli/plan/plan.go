package plan

import (
	"github.com/spf13/cobra"
)

// PlanCmd is the parent command for plan-related subcommands.
var PlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Create and track thesis plans",
	Long:  `Commands for generating a staged thesis plan and recording progress on it.`,
}

func init() {
	PlanCmd.AddCommand(createCmd)
	PlanCmd.AddCommand(showCmd)
	PlanCmd.AddCommand(taskCmd)
	PlanCmd.AddCommand(stageCmd)
	PlanCmd.AddCommand(exportCmd)
	PlanCmd.AddCommand(openCmd)
}
