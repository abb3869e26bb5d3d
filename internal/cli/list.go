package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/pablasso/teco/internal/config"
	"github.com/pablasso/teco/internal/store"
	"github.com/pablasso/teco/internal/workspace"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved plans",
	Long:    `List every saved plan with its deadline and overall progress.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd.OutOrStdout())
	},
}

func runList(out io.Writer) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	ws, err := workspace.Open(cwd)
	if err != nil {
		return err
	}
	defer ws.Close()

	summaries, err := ws.Store.List()
	if err != nil {
		return fmt.Errorf("failed to list plans: %w", err)
	}
	ws.Logger.Debug("listed plans", "count", len(summaries))

	return writePlanTable(out, summaries, ws.Config.Display)
}

func writePlanTable(out io.Writer, summaries []store.Summary, display config.DisplayConfig) error {
	if len(summaries) == 0 {
		fmt.Fprintln(out, "No plans yet. Create one with 'teco plan create'.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTITLE\tDUE\tPROGRESS\tUPDATED")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d%% (%d/%d)\t%s\n",
			s.ID+"-"+s.Name,
			truncate(s.Title, 40),
			s.DueDate.Format(display.DateFormat),
			s.Progress,
			s.Completed,
			s.TaskCount,
			formatAge(s.UpdatedAt),
		)
	}
	return w.Flush()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// formatAge returns a human-readable relative time string.
func formatAge(t time.Time) string {
	duration := time.Since(t)

	if duration < time.Minute {
		return "just now"
	}

	minutes := int(duration.Minutes())
	if minutes < 60 {
		return fmt.Sprintf("%dm ago", minutes)
	}

	hours := int(duration.Hours())
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}

	days := hours / 24
	return fmt.Sprintf("%dd ago", days)
}
