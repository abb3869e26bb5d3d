package tui

import "github.com/pablasso/teco/internal/workspace"

// Options configures TUI startup behavior.
type Options struct {
	// Workspace is opened from the working directory when nil.
	Workspace *workspace.Workspace
	// PlanDir opens the dashboard of that plan instead of the home view.
	PlanDir string
}
