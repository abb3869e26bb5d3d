package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pablasso/teco/internal/store"
)

var (
	deinitForce bool
)

var deinitCmd = &cobra.Command{
	Use:   "deinit",
	Short: "Remove teco from the current directory",
	Long:  "Removes the .teco/ folder with every plan and its history. This action cannot be undone.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDeinit(cmd.InOrStdin(), cmd.OutOrStdout(), deinitForce)
	},
}

func init() {
	deinitCmd.Flags().BoolVarP(&deinitForce, "force", "f", false, "Skip confirmation prompt")
}

func runDeinit(in io.Reader, out io.Writer, force bool) error {
	info, err := os.Stat(tecoDir)
	if os.IsNotExist(err) {
		return fmt.Errorf("teco is not initialized in this directory")
	}
	if err != nil {
		return fmt.Errorf("failed to check .teco directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf(".teco exists but is not a directory")
	}

	summaries, err := store.New(tecoDir).List()
	if err != nil {
		return fmt.Errorf("failed to read plans: %w", err)
	}

	if !force {
		writeDeinitPrompt(out, summaries)

		response, _ := bufio.NewReader(in).ReadString('\n')
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	if err := os.RemoveAll(tecoDir); err != nil {
		return fmt.Errorf("failed to remove .teco/: %w", err)
	}

	if err := removeFromGitignore(gitignoreEntries...); err != nil {
		return fmt.Errorf("failed to update .gitignore: %w", err)
	}

	fmt.Fprintf(out, "teco has been removed from this directory (%s deleted).\n", pluralPlans(len(summaries)))
	return nil
}

// writeDeinitPrompt lists what will be lost, unfinished plans first
// flagged with their progress.
func writeDeinitPrompt(out io.Writer, summaries []store.Summary) {
	if len(summaries) == 0 {
		fmt.Fprint(out, "This will delete .teco/ (no plans). Continue? [y/N] ")
		return
	}

	fmt.Fprintf(out, "This will delete .teco/ and %s:\n", pluralPlans(len(summaries)))
	for _, s := range summaries {
		status := fmt.Sprintf("%d%% (%d/%d tasks)", s.Progress, s.Completed, s.TaskCount)
		if s.TaskCount > 0 && s.Completed == s.TaskCount {
			status = "done"
		}
		fmt.Fprintf(out, "  %s  %s  %s\n", s.ID+"-"+s.Name, truncate(s.Title, 40), status)
	}
	fmt.Fprint(out, "Continue? [y/N] ")
}

func pluralPlans(n int) string {
	if n == 1 {
		return "1 plan"
	}
	return fmt.Sprintf("%d plans", n)
}
