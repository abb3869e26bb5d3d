package plan

import (
	"errors"
	"fmt"
	"io"

	"github.com/pablasso/teco/internal/plan"
	"github.com/pablasso/teco/internal/store"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task <name> <task-id>",
	Short: "Toggle a task between done and open",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTask(cmd.OutOrStdout(), args[0], args[1])
	},
}

func runTask(out io.Writer, name, taskID string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	defer ws.Close()

	dir, err := ws.Store.Find(name)
	if err != nil {
		return err
	}
	logger := ws.Logger.WithCommand("plan task").WithPlan(name)

	rec, err := ws.Store.ToggleTask(dir, taskID)
	if errors.Is(err, store.ErrPlanLocked) {
		logger.Warn("plan locked", "task", taskID)
		return fmt.Errorf("plan %s is being edited elsewhere, try again: %w", name, err)
	}
	if err != nil {
		return err
	}

	task, _, _ := rec.Plan.FindTask(taskID)
	logger.Info("task toggled", "task", taskID, "completed", task.Completed)

	state := "open"
	if task.Completed {
		state = "done"
	}
	fmt.Fprintf(out, "%s %s: %s\n", checkMark(task.Completed), task.Name, state)
	fmt.Fprintf(out, "Overall progress: %d%%\n", plan.OverallProgress(rec.Plan))
	return nil
}
