package views

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pablasso/teco/internal/plan"
	"github.com/pablasso/teco/internal/store"
)

var testNow = time.Date(2026, time.March, 2, 9, 0, 0, 0, time.Local)

func TestMain(m *testing.M) {
	now = func() time.Time { return testNow }
	os.Exit(m.Run())
}

// newTestStore returns a store rooted in a fresh .teco directory.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dataDir := filepath.Join(t.TempDir(), ".teco")
	if err := os.MkdirAll(filepath.Join(dataDir, "plans"), 0755); err != nil {
		t.Fatalf("failed to create plans dir: %v", err)
	}
	return store.New(dataDir)
}

// savePlan generates a plan due on the given date and stores it.
func savePlan(t *testing.T, st *store.Store, title, due string) (*store.Record, string) {
	t.Helper()
	dueDate, err := time.ParseInLocation(DueDateLayout, due, time.Local)
	if err != nil {
		t.Fatalf("bad due date: %v", err)
	}
	p := plan.NewGenerator(plan.WithClock(now)).Generate(title, dueDate, 10)
	rec, dir, err := st.Create(p, "")
	if err != nil {
		t.Fatalf("failed to create plan: %v", err)
	}
	return rec, dir
}
