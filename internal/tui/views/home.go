package views

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/teco/internal/tui/components"
	"github.com/pablasso/teco/internal/tui/msgs"
	"github.com/pablasso/teco/internal/tui/styles"
)

// MenuItem represents a menu option in the home view.
type MenuItem struct {
	Label       string
	Shortcut    string
	Description string
}

// MenuSection represents a group of related menu items.
type MenuSection struct {
	Title string
	Items []MenuItem
}

// HomeModel is the model for the home view landing screen.
type HomeModel struct {
	sections   []MenuSection
	cursor     int
	tecoExists bool
	width      int
	height     int
	errorMsg   string // Temporary error message to display
}

// NewHomeModel creates a new HomeModel, checking if dataDir exists.
func NewHomeModel(dataDir string) HomeModel {
	tecoExists := false
	if dataDir != "" {
		if info, err := os.Stat(dataDir); err == nil && info.IsDir() {
			tecoExists = true
		}
	}

	return HomeModel{
		sections: []MenuSection{
			{
				Title: "Plans",
				Items: []MenuItem{
					{Label: "New plan", Shortcut: "n", Description: "Generate a plan from a title and a deadline"},
					{Label: "Open plan", Shortcut: "o", Description: "Track progress on a saved plan"},
				},
			},
			{
				Title: "",
				Items: []MenuItem{
					{Label: "Quit", Shortcut: "q", Description: ""},
				},
			},
		},
		tecoExists: tecoExists,
	}
}

// Init implements tea.Model.
func (m HomeModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m HomeModel) Update(msg tea.Msg) (HomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Without .teco only quitting makes sense
		if !m.tecoExists {
			if msg.String() == "q" || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < m.totalMenuItems()-1 {
				m.cursor++
			}
		case "enter":
			return m.activate(m.shortcutAtCursor())
		case "ctrl+c":
			return m, tea.Quit
		default:
			return m.activate(msg.String())
		}
	}
	return m, nil
}

func (m HomeModel) activate(shortcut string) (HomeModel, tea.Cmd) {
	switch shortcut {
	case "n":
		m.errorMsg = ""
		return m, func() tea.Msg { return msgs.GoToFormMsg{} }
	case "o":
		m.errorMsg = ""
		return m, func() tea.Msg { return msgs.GoToPlanListMsg{} }
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

// totalMenuItems returns the total number of menu items across all sections.
func (m HomeModel) totalMenuItems() int {
	total := 0
	for _, section := range m.sections {
		total += len(section.Items)
	}
	return total
}

// shortcutAtCursor returns the shortcut key for the currently selected item.
func (m HomeModel) shortcutAtCursor() string {
	idx := 0
	for _, section := range m.sections {
		for _, item := range section.Items {
			if idx == m.cursor {
				return item.Shortcut
			}
			idx++
		}
	}
	return ""
}

// View implements tea.Model.
func (m HomeModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.tecoExists {
		return m.renderNormalView()
	}
	return m.renderNoTecoView()
}

// renderHeader returns the centered title and tagline.
func (m HomeModel) renderHeader() (titleLine, taglineLine string) {
	title := styles.TitleStyle.Render("T E C O")
	tagline := styles.SubtleStyle.Render("Thesis plans, one stage at a time")

	titleLine = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title)
	taglineLine = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tagline)
	return titleLine, taglineLine
}

func (m HomeModel) labelWidth() int {
	w := 0
	for _, section := range m.sections {
		for _, item := range section.Items {
			if n := len(item.Label); n > w {
				w = n
			}
		}
	}
	return w
}

// renderNormalView renders the home view with menu options.
func (m HomeModel) renderNormalView() string {
	var b strings.Builder

	titleLine, taglineLine := m.renderHeader()
	labelWidth := m.labelWidth()

	var menuLines []string
	cursorIdx := 0
	for sectionIdx, section := range m.sections {
		if section.Title != "" {
			menuLines = append(menuLines, styles.SectionStyle.Render(section.Title))
		}

		for _, item := range section.Items {
			mainPart := fmt.Sprintf("[%s] %-*s", item.Shortcut, labelWidth, item.Label)
			var line string
			if cursorIdx == m.cursor {
				line = styles.SelectedStyle.Render(mainPart)
			} else {
				line = styles.SubtleStyle.Render(mainPart)
			}
			if item.Description != "" {
				line += "  " + styles.SubtleStyle.Render(item.Description)
			}
			menuLines = append(menuLines, line)
			cursorIdx++
		}

		if sectionIdx < len(m.sections)-1 {
			menuLines = append(menuLines, "")
		}
	}

	menu := strings.Join(menuLines, "\n")

	// Status bar takes 1 line at bottom
	statusBarHeight := 1
	contentHeight := 2 + 2 + len(menuLines)
	if m.errorMsg != "" {
		contentHeight += 2
	}
	availableHeight := m.height - statusBarHeight

	topPadding := (availableHeight - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	b.WriteString(strings.Repeat("\n", topPadding))
	b.WriteString(titleLine)
	b.WriteString("\n")
	b.WriteString(taglineLine)
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, menu))

	if m.errorMsg != "" {
		b.WriteString("\n\n")
		errorLine := styles.ErrorStyle.Render(m.errorMsg)
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, errorLine))
	}

	bottomPadding := availableHeight - (topPadding + contentHeight)
	if bottomPadding < 0 {
		bottomPadding = 0
	}
	b.WriteString(strings.Repeat("\n", bottomPadding))

	statusItems := []string{"↑↓ Navigate", "Enter Select", "q Quit"}
	b.WriteString(components.NewStatusBar().Render(m.width, statusItems))

	return b.String()
}

// renderNoTecoView renders the view when .teco/ doesn't exist.
func (m HomeModel) renderNoTecoView() string {
	var b strings.Builder

	titleLine, taglineLine := m.renderHeader()

	warning1 := styles.ErrorStyle.Render("No .teco/ directory found.")
	warning2 := styles.SubtleStyle.Render("Run 'teco init' first to start tracking plans here.")

	statusBarHeight := 1
	contentHeight := 6
	availableHeight := m.height - statusBarHeight

	topPadding := (availableHeight - contentHeight) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	b.WriteString(strings.Repeat("\n", topPadding))
	b.WriteString(titleLine)
	b.WriteString("\n")
	b.WriteString(taglineLine)
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, warning1))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, warning2))

	bottomPadding := availableHeight - (topPadding + contentHeight)
	if bottomPadding < 0 {
		bottomPadding = 0
	}
	b.WriteString(strings.Repeat("\n", bottomPadding))

	b.WriteString(components.NewStatusBar().Render(m.width, []string{"q Quit"}))

	return b.String()
}

// SetSize updates the model dimensions.
func (m *HomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// TecoExists returns whether the .teco directory exists.
func (m HomeModel) TecoExists() bool {
	return m.tecoExists
}

// Cursor returns the current cursor position.
func (m HomeModel) Cursor() int {
	return m.cursor
}

// SetError sets an error message to display until the next navigation.
func (m *HomeModel) SetError(msg string) {
	m.errorMsg = msg
}

// Error returns the current error message.
func (m HomeModel) Error() string {
	return m.errorMsg
}
