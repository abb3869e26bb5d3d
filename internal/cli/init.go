package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pablasso/teco/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize teco in the current directory",
	Long:  "Creates a .teco/ folder holding plans, progress history and config.yaml.",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	if IsInitialized() {
		return fmt.Errorf("teco is already initialized in this directory")
	}

	dirs := []string{
		tecoDir,
		filepath.Join(tecoDir, "plans"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	if err := config.WriteDefault(config.Path(tecoDir)); err != nil {
		return err
	}

	if err := addToGitignore(gitignoreEntries...); err != nil {
		return fmt.Errorf("failed to update .gitignore: %w", err)
	}

	fmt.Println("Initialized teco in", tecoDir)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Review .teco/config.yaml")
	fmt.Println(`  2. Run: teco plan create --title "My thesis" --due 2026-12-01 --hours 10`)
	fmt.Println("     or just run teco for the interactive app")
	return nil
}
