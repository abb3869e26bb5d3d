package views

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pablasso/teco/internal/config"
	"github.com/pablasso/teco/internal/plan"
	"github.com/pablasso/teco/internal/tui/msgs"
)

var (
	spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	tabKey   = tea.KeyMsg{Type: tea.KeyTab}
	downKey  = tea.KeyMsg{Type: tea.KeyDown}
)

func newTestDashboard(t *testing.T) (DashboardModel, string) {
	t.Helper()
	st := newTestStore(t)
	_, dir := savePlan(t, st, "Impacto da IA", "2026-05-11")
	m := NewDashboardModel(st, dir, config.Default().Display, nil)
	if m.Record() == nil {
		t.Fatalf("failed to load plan: %v", m.loadErr)
	}
	m.SetSize(100, 40)
	return m, dir
}

// run applies msg and feeds any resulting message back once, the way
// the bubbletea runtime would.
func run(t *testing.T, m DashboardModel, msg tea.Msg) DashboardModel {
	t.Helper()
	m, cmd := m.Update(msg)
	if cmd != nil {
		m, _ = m.Update(cmd())
	}
	return m
}

func TestDashboard_Header(t *testing.T) {
	m, _ := newTestDashboard(t)
	view := stripANSI(m.View())

	for _, want := range []string{"Impacto da IA", "Due 11/05/2026", "70 days left", "0%", "(0/21 tasks)", "Overview", "Stages"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestDashboard_OverviewShowsCurrentAndUpcoming(t *testing.T) {
	m, _ := newTestDashboard(t)
	view := stripANSI(m.View())

	if !strings.Contains(view, "Current stage") || !strings.Contains(view, "Escolha do tema") {
		t.Error("expected current stage in overview")
	}
	if !strings.Contains(view, "Metodologia") {
		t.Error("expected third stage among upcoming stages")
	}
	if strings.Contains(view, "Cronograma") {
		t.Error("expected only three upcoming stages")
	}
}

func TestDashboard_TabSwitch(t *testing.T) {
	m, _ := newTestDashboard(t)

	m, _ = m.Update(tabKey)
	if m.Tab() != TabStages {
		t.Fatalf("expected stages tab, got %v", m.Tab())
	}
	if !strings.Contains(stripANSI(m.View()), "7. Apresentação") {
		t.Error("expected every stage listed on the stages tab")
	}

	m, _ = m.Update(tabKey)
	if m.Tab() != TabOverview {
		t.Errorf("expected overview tab, got %v", m.Tab())
	}
}

func TestDashboard_ExpandStage(t *testing.T) {
	m, _ := newTestDashboard(t)
	m, _ = m.Update(tabKey)

	if len(m.rows()) != 7 {
		t.Fatalf("expected 7 collapsed rows, got %d", len(m.rows()))
	}

	m, cmd := m.Update(spaceKey)
	if cmd != nil {
		t.Error("expanding a stage should not write")
	}
	if len(m.rows()) != 10 {
		t.Fatalf("expected 7 stages + 3 tasks, got %d", len(m.rows()))
	}
	if !strings.Contains(stripANSI(m.View()), "Pesquisa inicial de temas") {
		t.Error("expected tasks of expanded stage in view")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.rows()) != 7 {
		t.Errorf("expected stage to collapse, got %d rows", len(m.rows()))
	}
}

func TestDashboard_ToggleTask(t *testing.T) {
	m, dir := newTestDashboard(t)
	m, _ = m.Update(tabKey)
	m, _ = m.Update(spaceKey)
	m, _ = m.Update(downKey)

	m = run(t, m, spaceKey)

	msg, isErr := m.Message()
	if isErr || msg != "Saved" {
		t.Fatalf("expected Saved, got %q (error=%v)", msg, isErr)
	}
	if !m.Record().Plan.Stages[0].Tasks[0].Completed {
		t.Error("expected first task completed")
	}
	if got := plan.OverallProgress(m.Record().Plan); got != 5 {
		t.Errorf("expected 5%% progress, got %d", got)
	}

	onDisk, err := m.store.Load(dir)
	if err != nil {
		t.Fatalf("failed to reload plan: %v", err)
	}
	if !onDisk.Plan.Stages[0].Tasks[0].Completed {
		t.Error("expected toggle persisted to plan.json")
	}

	m = run(t, m, spaceKey)
	if m.Record().Plan.Stages[0].Tasks[0].Completed {
		t.Error("expected second toggle to reopen the task")
	}
}

func TestDashboard_CompleteStage(t *testing.T) {
	m, _ := newTestDashboard(t)
	m, _ = m.Update(tabKey)

	m = run(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})

	if !m.Record().Plan.Stages[0].Completed {
		t.Fatal("expected stage flag set")
	}
	msg, _ := m.Message()
	if !strings.Contains(msg, "3 of 3 tasks still open") {
		t.Errorf("expected open-task note, got %q", msg)
	}
	if plan.OverallProgress(m.Record().Plan) != 0 {
		t.Error("stage flag must not complete tasks")
	}

	m = run(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	if m.Record().Plan.Stages[0].Completed {
		t.Error("expected stage flag cleared")
	}
}

func TestDashboard_LockedPlan(t *testing.T) {
	m, dir := newTestDashboard(t)
	m, _ = m.Update(tabKey)
	m, _ = m.Update(spaceKey)
	m, _ = m.Update(downKey)

	lock := filepath.Join(dir, "plan.lock")
	if err := os.WriteFile(lock, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
		t.Fatalf("failed to write lock: %v", err)
	}

	m = run(t, m, spaceKey)

	msg, isErr := m.Message()
	if !isErr || !strings.Contains(msg, "edited elsewhere") {
		t.Errorf("expected lock message, got %q", msg)
	}
	if m.Record().Plan.Stages[0].Tasks[0].Completed {
		t.Error("expected task unchanged")
	}
	if !strings.Contains(stripANSI(m.View()), "edited elsewhere") {
		t.Error("expected lock message in status bar")
	}
}

func TestDashboard_NavigationBounds(t *testing.T) {
	m, _ := newTestDashboard(t)

	// Cursor only moves on the stages tab
	m, _ = m.Update(downKey)
	if m.cursor != 0 {
		t.Errorf("expected cursor unchanged on overview, got %d", m.cursor)
	}

	m, _ = m.Update(tabKey)
	for i := 0; i < 20; i++ {
		m, _ = m.Update(downKey)
	}
	if m.cursor != 6 {
		t.Errorf("expected cursor at last stage, got %d", m.cursor)
	}
}

func TestDashboard_Keys(t *testing.T) {
	m, _ := newTestDashboard(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected command from esc")
	}
	if _, ok := cmd().(msgs.GoToPlanListMsg); !ok {
		t.Error("expected GoToPlanListMsg")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected command from q")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestDashboard_MissingPlan(t *testing.T) {
	st := newTestStore(t)
	m := NewDashboardModel(st, filepath.Join(st.PlansDir(), "nope"), config.Default().Display, nil)
	m.SetSize(80, 20)

	if m.Record() != nil {
		t.Fatal("expected no record")
	}
	if !strings.Contains(stripANSI(m.View()), "Could not load plan") {
		t.Error("expected load error in view")
	}
	if _, cmd := m.Update(spaceKey); cmd != nil {
		t.Error("expected keys to be ignored without a plan")
	}
}

func TestDeadlineLabel(t *testing.T) {
	tests := map[int]string{
		-3: "3 days overdue",
		-1: "1 day overdue",
		0:  "due today",
		1:  "1 day left",
		70: "70 days left",
	}
	for days, want := range tests {
		if got := deadlineLabel(days); got != want {
			t.Errorf("deadlineLabel(%d) = %q, want %q", days, got, want)
		}
	}
}
