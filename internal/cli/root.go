package cli

import (
	"github.com/pablasso/teco/internal/cli/plan"
	"github.com/pablasso/teco/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "teco",
	Short: "Thesis plan generator and progress tracker",
	Long: `Teco turns a thesis title, a deadline and a weekly hour budget into a staged
plan with tasks, then tracks progress as tasks are checked off.`,
	Version:       version.String(),
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(deinitCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(plan.PlanCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
