package cli

import (
	"fmt"
	"os"

	"github.com/pablasso/teco/internal/store"
)

const tecoDir = store.DirName

// PrerequisiteError is a failed environment check with remediation help.
type PrerequisiteError struct {
	Check   string
	Message string
	Help    string
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("%s: %s\n\n%s", e.Check, e.Message, e.Help)
}

// IsInitialized checks if teco is initialized in the current directory.
func IsInitialized() bool {
	info, err := os.Stat(tecoDir)
	return err == nil && info.IsDir()
}

// RequireInitialized returns a PrerequisiteError if teco is not initialized.
func RequireInitialized() error {
	if !IsInitialized() {
		return &PrerequisiteError{
			Check:   "Workspace",
			Message: "teco is not initialized in this directory",
			Help:    "Run 'teco init' first.",
		}
	}
	return nil
}
