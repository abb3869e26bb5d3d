package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pablasso/teco/internal/config"
	"github.com/pablasso/teco/internal/tui/msgs"
)

func TestNewFormModel_Defaults(t *testing.T) {
	cfg := config.Default()
	cfg.Planner.DefaultHoursPerWeek = 12
	cfg.Planner.Policy = "Carry"

	m := NewFormModel(newTestStore(t), cfg, nil)

	if m.values.hours != "12" {
		t.Errorf("expected default hours 12, got %q", m.values.hours)
	}
	if m.values.policy != "carry" {
		t.Errorf("expected policy carry, got %q", m.values.policy)
	}
	if m.State() != FormEditing {
		t.Errorf("expected FormEditing, got %v", m.State())
	}
}

func TestFormValidators(t *testing.T) {
	if err := validateTitle("  "); err == nil {
		t.Error("expected blank title to fail")
	}
	if err := validateTitle("Impacto da IA"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := validateDue("11/05/2026"); err == nil {
		t.Error("expected non-ISO date to fail")
	}
	if err := validateDue(" 2026-05-11 "); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	check := hoursValidator(config.Default().Planner)
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"10", false},
		{"1", false},
		{"40", false},
		{"7.5", false},
		{"0", true},
		{"41", true},
		{"ten", true},
		{"", true},
	}
	for _, tt := range tests {
		if err := check(tt.in); (err != nil) != tt.wantErr {
			t.Errorf("hours %q: got err %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestFormModel_EscGoesHome(t *testing.T) {
	m := NewFormModel(newTestStore(t), nil, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a command from esc")
	}
	if _, ok := cmd().(msgs.GoToHomeMsg); !ok {
		t.Error("expected GoToHomeMsg")
	}
}

func TestFormModel_StartGenerating(t *testing.T) {
	m := NewFormModel(newTestStore(t), nil, nil)

	m, cmd := m.startGenerating()
	if m.State() != FormGenerating {
		t.Errorf("expected FormGenerating, got %v", m.State())
	}
	if cmd == nil {
		t.Error("expected spinner and delay commands")
	}

	// esc is ignored while the plan is being generated
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc}); cmd != nil {
		t.Error("expected esc to be ignored while generating")
	}
}

func TestFormModel_GenerateSavesPlan(t *testing.T) {
	st := newTestStore(t)
	m := NewFormModel(st, nil, nil)
	m.values.title = "  Impacto da IA na educação "
	m.values.due = "2026-05-11"
	m.values.hours = "10"
	m, _ = m.startGenerating()

	m, cmd := m.Update(generateMsg{})
	if m.Err() != nil {
		t.Fatalf("unexpected error: %v", m.Err())
	}
	if cmd == nil {
		t.Fatal("expected a command after generation")
	}

	created, ok := cmd().(msgs.PlanCreatedMsg)
	if !ok {
		t.Fatalf("expected PlanCreatedMsg, got %T", cmd())
	}
	if !strings.HasSuffix(created.Name, "-impacto-da-ia-na-educacao") {
		t.Errorf("unexpected plan name %q", created.Name)
	}

	rec, err := st.Load(created.Dir)
	if err != nil {
		t.Fatalf("failed to load created plan: %v", err)
	}
	if rec.Plan.Title != "Impacto da IA na educação" {
		t.Errorf("expected trimmed title, got %q", rec.Plan.Title)
	}
	if len(rec.Plan.Stages) != 7 {
		t.Errorf("expected 7 stages, got %d", len(rec.Plan.Stages))
	}
	if !rec.Plan.StartDate.Equal(testNow) {
		t.Errorf("expected plan to start now, got %v", rec.Plan.StartDate)
	}
}

func TestFormModel_GenerateFailure(t *testing.T) {
	m := NewFormModel(newTestStore(t), nil, nil)
	m.values.title = "X"
	m.values.due = "soon"
	m.SetSize(80, 24)

	m, cmd := m.Update(generateMsg{})
	if cmd != nil {
		t.Error("expected no command on failure")
	}
	if m.State() != FormFailed {
		t.Fatalf("expected FormFailed, got %v", m.State())
	}
	if !strings.Contains(stripANSI(m.View()), "invalid deadline") {
		t.Error("expected error in view")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected esc to leave the failed form")
	}
	if _, ok := cmd().(msgs.GoToHomeMsg); !ok {
		t.Error("expected GoToHomeMsg")
	}
}

func TestFormModel_View(t *testing.T) {
	m := NewFormModel(newTestStore(t), nil, nil)
	if m.View() != "" {
		t.Error("expected empty view before sizing")
	}

	m.SetSize(80, 30)
	view := stripANSI(m.View())
	for _, want := range []string{"New Plan", "Title", "Esc Cancel"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}
