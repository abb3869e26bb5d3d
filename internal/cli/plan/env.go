package plan

import (
	"os"
	"time"

	"github.com/pablasso/teco/internal/store"
	"github.com/pablasso/teco/internal/workspace"
)

// now is swapped in tests.
var now = time.Now

func openWorkspace() (*workspace.Workspace, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return workspace.Open(cwd)
}

// loadPlan resolves a plan name inside ws and reads it.
func loadPlan(ws *workspace.Workspace, name string) (string, *store.Record, error) {
	dir, err := ws.Store.Find(name)
	if err != nil {
		return "", nil, err
	}
	rec, err := ws.Store.Load(dir)
	if err != nil {
		return "", nil, err
	}
	return dir, rec, nil
}
