package plan

import (
	"errors"
	"fmt"
	"io"

	"github.com/pablasso/teco/internal/store"
	"github.com/spf13/cobra"
)

var stageUndo bool

var stageCmd = &cobra.Command{
	Use:   "stage <name> <stage-id>",
	Short: "Mark a stage as done",
	Long: `Mark a stage as done, or open again with --undo. The stage flag is
independent of its tasks and does not change overall progress.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStage(cmd.OutOrStdout(), args[0], args[1], !stageUndo)
	},
}

func init() {
	stageCmd.Flags().BoolVar(&stageUndo, "undo", false, "Mark the stage as not done")
}

func runStage(out io.Writer, name, stageID string, done bool) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	dir, err := ws.Store.Find(name)
	if err != nil {
		return err
	}
	logger := ws.Logger.WithCommand("plan stage").WithPlan(name)

	rec, err := ws.Store.SetStageCompleted(dir, stageID, done)
	if errors.Is(err, store.ErrPlanLocked) {
		logger.Warn("plan locked", "stage", stageID)
		return fmt.Errorf("plan %s is being edited elsewhere, try again: %w", name, err)
	}
	if err != nil {
		return err
	}
	logger.Info("stage updated", "stage", stageID, "completed", done)

	stage, _ := rec.Plan.FindStage(stageID)
	if done {
		fmt.Fprintf(out, "Stage %q marked as done.\n", stage.Name)
	} else {
		fmt.Fprintf(out, "Stage %q reopened.\n", stage.Name)
	}
	if done && !stage.AllTasksCompleted() {
		fmt.Fprintf(out, "Note: %d of %d tasks are still open.\n", len(stage.Tasks)-stage.CompletedTaskCount(), len(stage.Tasks))
	}
	return nil
}
