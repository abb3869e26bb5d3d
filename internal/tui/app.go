package tui

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pablasso/teco/internal/logging"
	"github.com/pablasso/teco/internal/tui/msgs"
	"github.com/pablasso/teco/internal/tui/styles"
	"github.com/pablasso/teco/internal/tui/views"
	"github.com/pablasso/teco/internal/workspace"
)

// Minimum terminal dimensions for the TUI.
const (
	MinTerminalWidth  = 60
	MinTerminalHeight = 15
)

// View represents the different screens in the TUI.
type View int

const (
	ViewHome View = iota
	ViewForm
	ViewPlanList
	ViewDashboard
)

// Model is the main Bubble Tea model that orchestrates all views.
type Model struct {
	currentView View
	width       int
	height      int

	home      views.HomeModel
	form      views.FormModel
	planList  views.PlanListModel
	dashboard views.DashboardModel

	// Shared state; ws is nil outside an initialized directory.
	ws     *workspace.Workspace
	logger *logging.Logger
}

// Run starts the TUI application.
func Run(opts Options) error {
	ws := opts.Workspace
	if ws == nil {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		ws, err = workspace.Open(cwd)
		if err != nil && !errors.Is(err, workspace.ErrNotInitialized) {
			return err
		}
		if ws != nil {
			defer ws.Close()
		}
	}

	m := initialModel(ws)
	if opts.PlanDir != "" && ws != nil {
		m = m.openDashboard(opts.PlanDir)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func initialModel(ws *workspace.Workspace) Model {
	m := Model{
		currentView: ViewHome,
		ws:          ws,
		logger:      logging.NopLogger(),
	}
	dataDir := ""
	if ws != nil {
		dataDir = ws.DataDir
		m.logger = ws.Logger.WithCommand("tui")
	}
	m.home = views.NewHomeModel(dataDir)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeCurrent()
		return m, nil

	case msgs.GoToHomeMsg:
		m.currentView = ViewHome
		m.home = views.NewHomeModel(m.dataDir())
		m.resizeCurrent()
		return m, nil

	case msgs.GoToFormMsg:
		if m.ws == nil {
			return m, nil
		}
		m.currentView = ViewForm
		m.form = views.NewFormModel(m.ws.Store, m.ws.Config, m.logger)
		m.resizeCurrent()
		return m, m.form.Init()

	case msgs.GoToPlanListMsg:
		if m.ws == nil {
			return m, nil
		}
		m.currentView = ViewPlanList
		m.planList = views.NewPlanListModel(m.ws.Store)
		m.resizeCurrent()
		return m, nil

	case msgs.OpenPlanMsg:
		if m.ws == nil {
			return m, nil
		}
		return m.openDashboard(msg.Dir), nil

	case msgs.PlanCreatedMsg:
		m.logger.Info("opening new plan", "plan", msg.Name)
		return m.openDashboard(msg.Dir), nil
	}

	var cmd tea.Cmd
	switch m.currentView {
	case ViewHome:
		m.home, cmd = m.home.Update(msg)
	case ViewForm:
		m.form, cmd = m.form.Update(msg)
	case ViewPlanList:
		m.planList, cmd = m.planList.Update(msg)
	case ViewDashboard:
		m.dashboard, cmd = m.dashboard.Update(msg)
	}
	return m, cmd
}

func (m Model) openDashboard(dir string) Model {
	m.currentView = ViewDashboard
	m.dashboard = views.NewDashboardModel(m.ws.Store, dir, m.ws.Config.Display, m.logger)
	m.resizeCurrent()
	return m
}

func (m Model) dataDir() string {
	if m.ws == nil {
		return ""
	}
	return m.ws.DataDir
}

// resizeCurrent passes the stored dimensions to the active view.
func (m *Model) resizeCurrent() {
	switch m.currentView {
	case ViewHome:
		m.home.SetSize(m.width, m.height)
	case ViewForm:
		m.form.SetSize(m.width, m.height)
	case ViewPlanList:
		m.planList.SetSize(m.width, m.height)
	case ViewDashboard:
		m.dashboard.SetSize(m.width, m.height)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width > 0 && m.height > 0 && (m.width < MinTerminalWidth || m.height < MinTerminalHeight) {
		return m.renderTerminalTooSmall()
	}

	switch m.currentView {
	case ViewForm:
		return m.form.View()
	case ViewPlanList:
		return m.planList.View()
	case ViewDashboard:
		return m.dashboard.View()
	default:
		return m.home.View()
	}
}

func (m Model) renderTerminalTooSmall() string {
	msg := lipgloss.JoinVertical(lipgloss.Center,
		styles.ErrorStyle.Render("Terminal too small"),
		styles.SubtleStyle.Render(fmt.Sprintf("Minimum: %dx%d", MinTerminalWidth, MinTerminalHeight)),
		styles.SubtleStyle.Render(fmt.Sprintf("Current: %dx%d", m.width, m.height)),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}
