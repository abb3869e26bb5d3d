package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/teco/internal/plan"
	"github.com/pablasso/teco/internal/store"
	"github.com/pablasso/teco/internal/tui/components"
	"github.com/pablasso/teco/internal/tui/msgs"
	"github.com/pablasso/teco/internal/tui/styles"
)

// PlanListModel is the model for the plan selection view.
type PlanListModel struct {
	store   *store.Store
	plans   []store.Summary
	loadErr error
	cursor  int
	width   int
	height  int
}

// NewPlanListModel creates a new PlanListModel and loads the plans kept in st.
func NewPlanListModel(st *store.Store) PlanListModel {
	m := PlanListModel{store: st}
	m.plans, m.loadErr = st.List()
	return m
}

// Init implements tea.Model.
func (m PlanListModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m PlanListModel) Update(msg tea.Msg) (PlanListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "n":
			return m, func() tea.Msg { return msgs.GoToFormMsg{} }
		case "esc":
			return m, func() tea.Msg { return msgs.GoToHomeMsg{} }
		case "q", "ctrl+c":
			return m, tea.Quit
		}

		if len(m.plans) == 0 {
			return m, nil
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.plans)-1 {
				m.cursor++
			}
		case "enter":
			dir := m.plans[m.cursor].Dir
			return m, func() tea.Msg { return msgs.OpenPlanMsg{Dir: dir} }
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m PlanListModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if len(m.plans) == 0 {
		return m.renderEmptyView()
	}

	return m.renderNormalView()
}

// renderNormalView renders the view when plans exist.
func (m PlanListModel) renderNormalView() string {
	var b strings.Builder

	title := styles.TitleStyle.Render("Your Plans")
	titleLine := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title)

	var planLines []string
	for i, p := range m.plans {
		planLines = append(planLines, m.formatPlanLine(i, p))
	}
	planList := strings.Join(planLines, "\n")

	statusBarHeight := 1
	contentHeight := 2 + len(m.plans)
	availableHeight := m.height - statusBarHeight

	topPadding := (availableHeight - contentHeight) / 3 // bias towards top
	if topPadding < 0 {
		topPadding = 0
	}

	b.WriteString(strings.Repeat("\n", topPadding))
	b.WriteString(titleLine)
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, planList))

	bottomPadding := availableHeight - (topPadding + contentHeight)
	if bottomPadding < 0 {
		bottomPadding = 0
	}
	b.WriteString(strings.Repeat("\n", bottomPadding))

	statusItems := []string{"↑↓ Navigate", "Enter Open", "n New plan", "Esc Back"}
	b.WriteString(components.NewStatusBar().Render(m.width, statusItems))

	return b.String()
}

// formatPlanLine formats a single plan line for display.
func (m PlanListModel) formatPlanLine(index int, p store.Summary) string {
	indicator := "○"
	if index == m.cursor {
		indicator = "●"
	}

	days := plan.DaysRemaining(&plan.Plan{DueDate: p.DueDate}, now())
	due := fmt.Sprintf("%-16s", deadlineLabel(days))

	// Format: ● id-name   days left   ■■■□□ 40%
	head := fmt.Sprintf("%s %-36s ", indicator, p.ID+"-"+p.Name)
	bar := components.NewPercent(p.Progress, 10).View()

	switch {
	case index == m.cursor:
		head = styles.SelectedStyle.Render(head)
	case p.TaskCount > 0 && p.Completed == p.TaskCount:
		head = styles.SubtleStyle.Render(head)
	}
	return head + styles.Urgency(plan.UrgencyFor(days)).Render(due) + " " + bar
}

// renderEmptyView renders the view when no plans exist.
func (m PlanListModel) renderEmptyView() string {
	var b strings.Builder

	title := styles.TitleStyle.Render("Your Plans")
	titleLine := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title)

	msg1 := "No plans found."
	if m.loadErr != nil {
		msg1 = styles.ErrorStyle.Render(fmt.Sprintf("Could not read plans: %v", m.loadErr))
	}
	msg2 := "Press 'n' to create a new plan, or Esc to go back."
	msg1Line := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, msg1)
	msg2Line := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, styles.SubtleStyle.Render(msg2))

	statusBarHeight := 1
	contentHeight := 5 // title + spacing + msg1 + spacing + msg2
	availableHeight := m.height - statusBarHeight

	topPadding := (availableHeight - contentHeight) / 3
	if topPadding < 0 {
		topPadding = 0
	}

	b.WriteString(strings.Repeat("\n", topPadding))
	b.WriteString(titleLine)
	b.WriteString("\n\n")
	b.WriteString(msg1Line)
	b.WriteString("\n\n")
	b.WriteString(msg2Line)

	bottomPadding := availableHeight - (topPadding + contentHeight)
	if bottomPadding < 0 {
		bottomPadding = 0
	}
	b.WriteString(strings.Repeat("\n", bottomPadding))

	statusItems := []string{"n New plan", "Esc Back"}
	b.WriteString(components.NewStatusBar().Render(m.width, statusItems))

	return b.String()
}

// SetSize updates the model dimensions.
func (m *PlanListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Plans returns the list of plan summaries.
func (m PlanListModel) Plans() []store.Summary {
	return m.plans
}

// Cursor returns the current cursor position.
func (m PlanListModel) Cursor() int {
	return m.cursor
}
