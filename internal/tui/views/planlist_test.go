package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pablasso/teco/internal/store"
	"github.com/pablasso/teco/internal/tui/msgs"
)

func TestNewPlanListModel_Empty(t *testing.T) {
	m := NewPlanListModel(newTestStore(t))

	if len(m.Plans()) != 0 {
		t.Errorf("expected 0 plans, got %d", len(m.Plans()))
	}
	if m.Cursor() != 0 {
		t.Errorf("expected cursor to be 0, got %d", m.Cursor())
	}
}

func TestNewPlanListModel_NonExistentDirectory(t *testing.T) {
	m := NewPlanListModel(store.New("/nonexistent/.teco"))

	if len(m.Plans()) != 0 {
		t.Errorf("expected 0 plans for nonexistent dir, got %d", len(m.Plans()))
	}
}

func TestNewPlanListModel_LoadsPlans(t *testing.T) {
	st := newTestStore(t)
	savePlan(t, st, "Impacto da IA", "2026-05-11")
	_, dir := savePlan(t, st, "Redes neurais", "2026-03-05")
	if _, err := st.ToggleTask(dir, mustFirstTaskID(t, st, dir)); err != nil {
		t.Fatalf("failed to toggle task: %v", err)
	}

	m := NewPlanListModel(st)
	if len(m.Plans()) != 2 {
		t.Fatalf("expected 2 plans, got %d", len(m.Plans()))
	}

	second := m.Plans()[1]
	if second.Completed != 1 {
		t.Errorf("expected 1 completed task, got %d", second.Completed)
	}
	if second.Name != "redes-neurais" {
		t.Errorf("expected name redes-neurais, got %s", second.Name)
	}
}

func mustFirstTaskID(t *testing.T, st *store.Store, dir string) string {
	t.Helper()
	rec, err := st.Load(dir)
	if err != nil {
		t.Fatalf("failed to load plan: %v", err)
	}
	return rec.Plan.Stages[0].Tasks[0].ID
}

func TestPlanListModel_Navigation(t *testing.T) {
	st := newTestStore(t)
	savePlan(t, st, "Primeiro", "2026-05-11")
	savePlan(t, st, "Segundo", "2026-06-11")

	m := NewPlanListModel(st)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if m.Cursor() != 0 {
		t.Errorf("expected cursor to stay at 0, got %d", m.Cursor())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if m.Cursor() != 1 {
		t.Errorf("expected cursor to stop at 1, got %d", m.Cursor())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	if m.Cursor() != 0 {
		t.Errorf("expected cursor at 0 after 'k', got %d", m.Cursor())
	}
}

func TestPlanListModel_EnterOpensPlan(t *testing.T) {
	st := newTestStore(t)
	savePlan(t, st, "Primeiro", "2026-05-11")
	_, dir := savePlan(t, st, "Segundo", "2026-06-11")

	m := NewPlanListModel(st)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command from enter")
	}

	open, ok := cmd().(msgs.OpenPlanMsg)
	if !ok {
		t.Fatalf("expected OpenPlanMsg, got %T", cmd())
	}
	if open.Dir != dir {
		t.Errorf("expected dir %s, got %s", dir, open.Dir)
	}
}

func TestPlanListModel_Keys(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want tea.Msg
	}{
		{"n opens form", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}}, msgs.GoToFormMsg{}},
		{"esc goes home", tea.KeyMsg{Type: tea.KeyEsc}, msgs.GoToHomeMsg{}},
		{"q quits", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, tea.QuitMsg{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, cmd := NewPlanListModel(newTestStore(t)).Update(tt.key)
			if cmd == nil {
				t.Fatal("expected a command")
			}
			if got := cmd(); got != tt.want {
				t.Errorf("expected %T, got %T", tt.want, got)
			}
		})
	}
}

func TestPlanListModel_EnterWithoutPlans(t *testing.T) {
	_, cmd := NewPlanListModel(newTestStore(t)).Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command when there are no plans")
	}
}

func TestPlanListModel_View(t *testing.T) {
	st := newTestStore(t)
	rec, _ := savePlan(t, st, "Impacto da IA", "2026-05-11")
	savePlan(t, st, "Atrasado", "2026-02-20")

	m := NewPlanListModel(st)
	m.SetSize(100, 20)
	view := stripANSI(m.View())

	for _, want := range []string{"Your Plans", rec.FolderName(), "70 days left", "10 days overdue", "0%"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestPlanListModel_EmptyView(t *testing.T) {
	m := NewPlanListModel(newTestStore(t))
	if m.View() != "" {
		t.Error("expected empty view before sizing")
	}

	m.SetSize(80, 20)
	view := stripANSI(m.View())
	if !strings.Contains(view, "No plans found.") {
		t.Error("expected empty-state message")
	}
	if !strings.Contains(view, "Press 'n'") {
		t.Error("expected create hint")
	}
}
