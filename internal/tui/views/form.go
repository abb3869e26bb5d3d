package views

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/pablasso/teco/internal/config"
	"github.com/pablasso/teco/internal/logging"
	"github.com/pablasso/teco/internal/plan"
	"github.com/pablasso/teco/internal/store"
	"github.com/pablasso/teco/internal/tui/components"
	"github.com/pablasso/teco/internal/tui/msgs"
	"github.com/pablasso/teco/internal/tui/styles"
)

// DueDateLayout is the accepted deadline format.
const DueDateLayout = "2006-01-02"

// FormState is the stage of the new-plan flow.
type FormState int

const (
	FormEditing FormState = iota
	FormGenerating
	FormFailed
)

// generateMsg fires once the generation delay has elapsed.
type generateMsg struct{}

// formValues is shared by pointer with the huh fields.
type formValues struct {
	title  string
	due    string
	hours  string
	policy string
}

// FormModel collects a title, a deadline and weekly hours, then
// generates and saves a plan.
type FormModel struct {
	store   *store.Store
	cfg     *config.Config
	logger  *logging.Logger
	form    *huh.Form
	values  *formValues
	spinner spinner.Model
	state   FormState
	err     error
	width   int
	height  int
}

// NewFormModel builds the new-plan form with defaults from cfg.
func NewFormModel(st *store.Store, cfg *config.Config, logger *logging.Logger) FormModel {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.NopLogger()
	}

	policy, err := plan.ParsePolicy(cfg.Planner.Policy)
	if err != nil {
		policy = plan.PolicyIndependent
	}
	values := &formValues{
		hours:  strconv.Itoa(cfg.Planner.DefaultHoursPerWeek),
		policy: string(policy),
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	return FormModel{
		store:   st,
		cfg:     cfg,
		logger:  logger.With("view", "form"),
		form:    newPlanForm(values, cfg),
		values:  values,
		spinner: s,
	}
}

func newPlanForm(v *formValues, cfg *config.Config) *huh.Form {
	policies := make([]huh.Option[string], 0, len(plan.Policies))
	for _, p := range plan.Policies {
		policies = append(policies, huh.NewOption(string(p), string(p)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Description("What is your thesis about?").
				Value(&v.title).
				Validate(validateTitle),
			huh.NewInput().
				Key("due").
				Title("Deadline").
				Description("YYYY-MM-DD").
				Placeholder(now().AddDate(0, 3, 0).Format(DueDateLayout)).
				Value(&v.due).
				Validate(validateDue),
			huh.NewInput().
				Key("hours").
				Title("Hours per week").
				Description(fmt.Sprintf("Between %d and %d", cfg.Planner.MinHoursPerWeek, cfg.Planner.MaxHoursPerWeek)).
				Value(&v.hours).
				Validate(hoursValidator(cfg.Planner)),
			huh.NewSelect[string]().
				Key("policy").
				Title("Scheduling").
				Options(policies...).
				Value(&v.policy),
		),
	).WithShowHelp(true)
}

func validateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("title is required")
	}
	return nil
}

func validateDue(s string) error {
	if _, err := parseDue(s); err != nil {
		return errors.New("use the YYYY-MM-DD format")
	}
	return nil
}

func parseDue(s string) (time.Time, error) {
	return time.ParseInLocation(DueDateLayout, strings.TrimSpace(s), time.Local)
}

func parseHours(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func hoursValidator(pc config.PlannerConfig) func(string) error {
	return func(s string) error {
		h, err := parseHours(s)
		if err != nil {
			return errors.New("enter a number")
		}
		if h < float64(pc.MinHoursPerWeek) || h > float64(pc.MaxHoursPerWeek) {
			return fmt.Errorf("must be between %d and %d", pc.MinHoursPerWeek, pc.MaxHoursPerWeek)
		}
		return nil
	}
}

// Init implements tea.Model.
func (m FormModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update implements tea.Model.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.state != FormGenerating {
				return m, func() tea.Msg { return msgs.GoToHomeMsg{} }
			}
			return m, nil
		}
		if m.state != FormEditing {
			return m, nil
		}

	case spinner.TickMsg:
		if m.state == FormGenerating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case generateMsg:
		return m.generate()
	}

	if m.state != FormEditing {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
		if m.form.State == huh.StateCompleted {
			return m.startGenerating()
		}
	}
	return m, cmd
}

func (m FormModel) startGenerating() (FormModel, tea.Cmd) {
	m.state = FormGenerating
	tick := tea.Tick(m.cfg.Display.GenerateDelay(), func(time.Time) tea.Msg {
		return generateMsg{}
	})
	return m, tea.Batch(m.spinner.Tick, tick)
}

// generate turns the collected values into a saved plan.
func (m FormModel) generate() (FormModel, tea.Cmd) {
	due, err := parseDue(m.values.due)
	if err != nil {
		return m.fail(fmt.Errorf("invalid deadline: %w", err))
	}
	hours, err := parseHours(m.values.hours)
	if err != nil {
		return m.fail(fmt.Errorf("invalid hours: %w", err))
	}
	policy, err := plan.ParsePolicy(m.values.policy)
	if err != nil {
		return m.fail(err)
	}

	gen := plan.NewGenerator(plan.WithClock(now), plan.WithPolicy(policy))
	p := gen.Generate(strings.TrimSpace(m.values.title), due, hours)

	rec, dir, err := m.store.Create(p, "")
	if err != nil {
		m.logger.Error("failed to save plan", "error", err)
		return m.fail(err)
	}
	m.logger.Info("plan created", "plan", rec.FolderName(), "policy", string(policy))

	name := rec.FolderName()
	return m, func() tea.Msg { return msgs.PlanCreatedMsg{Dir: dir, Name: name} }
}

func (m FormModel) fail(err error) (FormModel, tea.Cmd) {
	m.state = FormFailed
	m.err = err
	return m, nil
}

// View implements tea.Model.
func (m FormModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder
	title := styles.TitleStyle.Render("New Plan")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, title))
	b.WriteString("\n")

	var body string
	var statusItems []string
	switch m.state {
	case FormGenerating:
		body = m.spinner.View() + " Generating your plan..."
		statusItems = []string{"Please wait"}
	case FormFailed:
		body = styles.ErrorStyle.Render(fmt.Sprintf("Could not create plan: %v", m.err))
		statusItems = []string{"Esc Back", "Ctrl+C Quit"}
	default:
		body = m.form.View()
		statusItems = []string{"Enter Next", "Shift+Tab Previous", "Esc Cancel"}
	}

	boxWidth := m.width - 4
	if boxWidth > 72 {
		boxWidth = 72
	}
	box := styles.BoxStyle.Width(boxWidth).Render(body)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box))

	used := lipgloss.Height(b.String())
	if pad := m.height - used - 1; pad > 0 {
		b.WriteString(strings.Repeat("\n", pad))
	}
	b.WriteString("\n")
	b.WriteString(components.NewStatusBar().Render(m.width, statusItems))

	return b.String()
}

// SetSize updates the model dimensions.
func (m *FormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// State returns the current form state.
func (m FormModel) State() FormState {
	return m.state
}

// Err returns the generation error, if any.
func (m FormModel) Err() error {
	return m.err
}
