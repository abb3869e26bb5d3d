package views

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pablasso/teco/internal/config"
	"github.com/pablasso/teco/internal/logging"
	"github.com/pablasso/teco/internal/plan"
	"github.com/pablasso/teco/internal/store"
	"github.com/pablasso/teco/internal/tui/components"
	"github.com/pablasso/teco/internal/tui/msgs"
	"github.com/pablasso/teco/internal/tui/styles"
)

// now is the clock used for deadline math; tests replace it.
var now = time.Now

// DashboardTab selects the dashboard panel.
type DashboardTab int

const (
	TabOverview DashboardTab = iota
	TabStages
)

var tabNames = []string{"Overview", "Stages"}

// saveResultMsg carries the outcome of a store mutation.
type saveResultMsg struct {
	rec  *store.Record
	err  error
	note string
}

type dashboardKeys struct {
	Up       key.Binding
	Down     key.Binding
	Tab      key.Binding
	Toggle   key.Binding
	Complete key.Binding
	Back     key.Binding
	Quit     key.Binding
	Help     key.Binding
}

func newDashboardKeys() dashboardKeys {
	return dashboardKeys{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Tab:      key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch tab")),
		Toggle:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "expand/check")),
		Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "mark stage done")),
		Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
	}
}

// ShortHelp implements help.KeyMap.
func (k dashboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Toggle, k.Complete, k.Back, k.Help}
}

// FullHelp implements help.KeyMap.
func (k dashboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Tab},
		{k.Toggle, k.Complete},
		{k.Back, k.Quit, k.Help},
	}
}

// row is one visible line of the stages tab. task is -1 for stage rows.
type row struct {
	stage int
	task  int
}

// DashboardModel shows one plan and lets the user tick tasks off.
type DashboardModel struct {
	store    *store.Store
	dir      string
	rec      *store.Record
	loadErr  error
	display  config.DisplayConfig
	logger   *logging.Logger
	tab      DashboardTab
	expanded map[string]bool
	cursor   int
	keys     dashboardKeys
	help     help.Model
	message  string
	isError  bool
	width    int
	height   int
}

// NewDashboardModel loads the plan in dir.
func NewDashboardModel(st *store.Store, dir string, display config.DisplayConfig, logger *logging.Logger) DashboardModel {
	if logger == nil {
		logger = logging.NopLogger()
	}
	m := DashboardModel{
		store:    st,
		dir:      dir,
		display:  display,
		expanded: make(map[string]bool),
		keys:     newDashboardKeys(),
		help:     help.New(),
	}
	m.rec, m.loadErr = st.Load(dir)
	if m.rec != nil {
		logger = logger.WithPlan(m.rec.FolderName())
	}
	m.logger = logger
	return m
}

// Init implements tea.Model.
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case saveResultMsg:
		return m.applySave(msg), nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return msgs.GoToPlanListMsg{} }
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

		if m.rec == nil {
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Tab):
			m.tab = (m.tab + 1) % DashboardTab(len(tabNames))
			m.message = ""
		case key.Matches(msg, m.keys.Up):
			if m.tab == TabStages && m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.tab == TabStages && m.cursor < len(m.rows())-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			if m.tab == TabStages {
				return m.activateRow()
			}
		case key.Matches(msg, m.keys.Complete):
			if m.tab == TabStages {
				return m, m.toggleStageCmd()
			}
		}
	}
	return m, nil
}

// rows flattens stages and the tasks of expanded stages.
func (m DashboardModel) rows() []row {
	if m.rec == nil {
		return nil
	}
	var out []row
	for i, s := range m.rec.Plan.Stages {
		out = append(out, row{stage: i, task: -1})
		if m.expanded[s.ID] {
			for j := range s.Tasks {
				out = append(out, row{stage: i, task: j})
			}
		}
	}
	return out
}

func (m DashboardModel) currentRow() (row, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return row{}, false
	}
	return rows[m.cursor], true
}

func (m DashboardModel) activateRow() (DashboardModel, tea.Cmd) {
	r, ok := m.currentRow()
	if !ok {
		return m, nil
	}
	stage := m.rec.Plan.Stages[r.stage]
	if r.task < 0 {
		m.expanded[stage.ID] = !m.expanded[stage.ID]
		return m, nil
	}

	taskID := stage.Tasks[r.task].ID
	st, dir := m.store, m.dir
	return m, func() tea.Msg {
		rec, err := st.ToggleTask(dir, taskID)
		return saveResultMsg{rec: rec, err: err}
	}
}

func (m DashboardModel) toggleStageCmd() tea.Cmd {
	r, ok := m.currentRow()
	if !ok {
		return nil
	}
	stage := m.rec.Plan.Stages[r.stage]
	st, dir := m.store, m.dir
	done := !stage.Completed
	return func() tea.Msg {
		rec, err := st.SetStageCompleted(dir, stage.ID, done)
		note := ""
		if err == nil && done && !stage.AllTasksCompleted() {
			open := len(stage.Tasks) - stage.CompletedTaskCount()
			note = fmt.Sprintf("%d of %d tasks still open", open, len(stage.Tasks))
		}
		return saveResultMsg{rec: rec, err: err, note: note}
	}
}

func (m DashboardModel) applySave(msg saveResultMsg) DashboardModel {
	if msg.rec != nil {
		m.rec = msg.rec
	}
	switch {
	case errors.Is(msg.err, store.ErrPlanLocked):
		m.message, m.isError = "Plan is being edited elsewhere, try again", true
		m.logger.Warn("plan locked", "error", msg.err)
	case msg.err != nil:
		m.message, m.isError = msg.err.Error(), true
		m.logger.Error("failed to save plan", "error", msg.err)
	case msg.note != "":
		m.message, m.isError = "Saved. "+msg.note, false
	default:
		m.message, m.isError = "Saved", false
		m.logger.Debug("plan saved", "progress", plan.OverallProgress(m.rec.Plan))
	}
	return m
}

// View implements tea.Model.
func (m DashboardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.rec == nil {
		msg := styles.ErrorStyle.Render(fmt.Sprintf("Could not load plan: %v", m.loadErr))
		return lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, msg) +
			"\n" + components.NewStatusBar().Render(m.width, []string{"Esc Back", "q Quit"})
	}

	header := m.renderHeader()
	tabs := m.renderTabs()
	footer := components.NewStatusBar().WithMessage(m.message, m.isError).Render(m.width, []string{m.help.View(m.keys)})

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(tabs) - lipgloss.Height(footer) - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	if m.tab == TabOverview {
		body = m.renderOverview()
	} else {
		body = m.renderStages(bodyHeight)
	}
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, "", body, footer)
}

func (m DashboardModel) renderHeader() string {
	p := m.rec.Plan
	days := plan.DaysRemaining(p, now())

	title := styles.TitleStyle.Render(p.Title)
	due := fmt.Sprintf("Due %s  ", p.DueDate.Format(m.display.DateFormat)) +
		styles.Urgency(plan.UrgencyFor(days)).Render(deadlineLabel(days))
	bar := fmt.Sprintf("%s  (%d/%d tasks)",
		components.NewPercent(plan.OverallProgress(p), 30).View(),
		p.CompletedTaskCount(), p.TaskCount())

	return lipgloss.JoinVertical(lipgloss.Left, title, due, bar)
}

func (m DashboardModel) renderTabs() string {
	var parts []string
	for i, name := range tabNames {
		if DashboardTab(i) == m.tab {
			parts = append(parts, styles.ActiveTabStyle.Render(name))
		} else {
			parts = append(parts, styles.TabStyle.Render(name))
		}
	}
	return "\n" + lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m DashboardModel) renderOverview() string {
	p := m.rec.Plan
	var b strings.Builder

	b.WriteString(styles.SectionStyle.Render("Current stage"))
	b.WriteString("\n")
	if s, ok := plan.CurrentStage(p, now()); ok {
		fmt.Fprintf(&b, "%s  %s\n", s.Name, styles.SubtleStyle.Render(m.dateRange(s)))
	} else {
		b.WriteString(styles.SubtleStyle.Render("No stage scheduled for today"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.SectionStyle.Render("Up next"))
	b.WriteString("\n")
	upcoming := plan.UpcomingStages(p, m.display.UpcomingStages)
	if len(upcoming) == 0 {
		b.WriteString(styles.SuccessStyle.Render("Every task is done."))
		b.WriteString("\n")
	}
	for _, s := range upcoming {
		bar := components.NewProgress(s.CompletedTaskCount(), len(s.Tasks), 10).View()
		fmt.Fprintf(&b, "%-28s %s  %s\n", s.Name, bar, styles.SubtleStyle.Render(m.dateRange(s)))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%g hours/week  ·  %g hours estimated", p.HoursPerWeek, p.EstimatedHours())
	return b.String()
}

func (m DashboardModel) renderStages(height int) string {
	p := m.rec.Plan
	rows := m.rows()

	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := start + height
	if end > len(rows) {
		end = len(rows)
	}

	var lines []string
	for i := start; i < end; i++ {
		r := rows[i]
		s := p.Stages[r.stage]

		var line string
		if r.task < 0 {
			arrow := "▸"
			if m.expanded[s.ID] {
				arrow = "▾"
			}
			bar := components.NewProgress(s.CompletedTaskCount(), len(s.Tasks), 10).View()
			line = fmt.Sprintf("%s %s %d. %-26s %s  %s", arrow, checkBox(s.Completed), r.stage+1, s.Name, bar, m.dateRange(s))
		} else {
			t := s.Tasks[r.task]
			line = fmt.Sprintf("    %s %s (%gh)", checkBox(t.Completed), t.Name, t.EstimatedHours)
			if t.Completed {
				line = styles.SubtleStyle.Render(line)
			}
		}

		if i == m.cursor {
			line = styles.SelectedStyle.Render("› " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m DashboardModel) dateRange(s plan.Stage) string {
	return fmt.Sprintf("%s - %s", s.StartDate.Format(m.display.DateFormat), s.EndDate.Format(m.display.DateFormat))
}

func checkBox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// deadlineLabel describes a days-remaining value.
func deadlineLabel(days int) string {
	switch {
	case days < -1:
		return fmt.Sprintf("%d days overdue", -days)
	case days == -1:
		return "1 day overdue"
	case days == 0:
		return "due today"
	case days == 1:
		return "1 day left"
	default:
		return fmt.Sprintf("%d days left", days)
	}
}

// SetSize updates the model dimensions.
func (m *DashboardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
}

// Record returns the loaded plan record, nil if loading failed.
func (m DashboardModel) Record() *store.Record {
	return m.rec
}

// Tab returns the active tab.
func (m DashboardModel) Tab() DashboardTab {
	return m.tab
}

// Message returns the status message and whether it is an error.
func (m DashboardModel) Message() (string, bool) {
	return m.message, m.isError
}
