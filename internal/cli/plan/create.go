package plan

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pablasso/teco/internal/config"
	"github.com/pablasso/teco/internal/logging"
	"github.com/pablasso/teco/internal/plan"
	"github.com/pablasso/teco/internal/workspace"
	"github.com/spf13/cobra"
)

// DueDateLayout is the accepted --due format.
const DueDateLayout = "2006-01-02"

var (
	createTitle  string
	createDue    string
	createHours  float64
	createName   string
	createPolicy string
	createDryRun bool
)

// CreateOptions holds the options for the create command.
type CreateOptions struct {
	Title    string
	Due      string
	Hours    float64
	HoursSet bool
	Name     string
	Policy   string
	DryRun   bool
}

// ValidationError reports a bad user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Generate a new thesis plan",
	Long: `Generate a staged plan from a title, a deadline and the hours you can
commit each week. Stage lengths are prorated from the effort budget.`,
	Example: `  teco plan create --title "IA na educação" --due 2026-12-01 --hours 10`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := CreateOptions{
			Title:    createTitle,
			Due:      createDue,
			Hours:    createHours,
			HoursSet: cmd.Flags().Changed("hours"),
			Name:     createName,
			Policy:   createPolicy,
			DryRun:   createDryRun,
		}
		return runCreate(cmd.OutOrStdout(), opts)
	},
}

func init() {
	createCmd.Flags().StringVarP(&createTitle, "title", "t", "", "Thesis title (required)")
	createCmd.Flags().StringVarP(&createDue, "due", "d", "", "Deadline as YYYY-MM-DD (required)")
	createCmd.Flags().Float64VarP(&createHours, "hours", "H", 0, "Hours available per week (default from config)")
	createCmd.Flags().StringVar(&createName, "name", "", "Folder name for the plan (default derived from title)")
	createCmd.Flags().StringVar(&createPolicy, "policy", "", "Proration policy: independent or carry (default from config)")
	createCmd.Flags().BoolVar(&createDryRun, "dry-run", false, "Print the plan without saving it")
	_ = createCmd.MarkFlagRequired("title")
	_ = createCmd.MarkFlagRequired("due")
}

// validateInputs checks the user's inputs against cfg and returns the
// parsed deadline and policy.
func validateInputs(opts CreateOptions, cfg *config.Config) (time.Time, plan.Policy, error) {
	if strings.TrimSpace(opts.Title) == "" {
		return time.Time{}, "", &ValidationError{Field: "title", Message: "must not be empty"}
	}

	due, err := time.ParseInLocation(DueDateLayout, strings.TrimSpace(opts.Due), time.Local)
	if err != nil {
		return time.Time{}, "", &ValidationError{Field: "due", Message: fmt.Sprintf("%q is not a date in YYYY-MM-DD form", opts.Due)}
	}

	lo, hi := float64(cfg.Planner.MinHoursPerWeek), float64(cfg.Planner.MaxHoursPerWeek)
	if opts.Hours < lo || opts.Hours > hi {
		return time.Time{}, "", &ValidationError{Field: "hours", Message: fmt.Sprintf("must be between %g and %g, got %g", lo, hi, opts.Hours)}
	}

	name := opts.Policy
	if name == "" {
		name = cfg.Planner.Policy
	}
	policy, err := plan.ParsePolicy(name)
	if err != nil {
		return time.Time{}, "", &ValidationError{Field: "policy", Message: err.Error()}
	}

	return due, policy, nil
}

func runCreate(out io.Writer, opts CreateOptions) error {
	ws, err := openWorkspace()
	if err != nil && !(opts.DryRun && errors.Is(err, workspace.ErrNotInitialized)) {
		return err
	}

	cfg := config.Default()
	logger := logging.NopLogger()
	if ws != nil {
		defer ws.Close()
		cfg = ws.Config
		logger = ws.Logger.WithCommand("plan create")
	}

	if !opts.HoursSet {
		opts.Hours = float64(cfg.Planner.DefaultHoursPerWeek)
	}

	due, policy, err := validateInputs(opts, cfg)
	if err != nil {
		return err
	}

	start := now()
	gen := plan.NewGenerator(plan.WithClock(func() time.Time { return start }), plan.WithPolicy(policy))
	p := gen.Generate(strings.TrimSpace(opts.Title), due, opts.Hours)

	if due.Before(start) {
		fmt.Fprintln(out, "Warning: the deadline has already passed; stages get their one-day minimum.")
	}

	if opts.DryRun {
		fmt.Fprintln(out, "Plan preview (dry run - nothing saved):")
		fmt.Fprintln(out)
		renderPlan(out, p, start, cfg.Display)
		return nil
	}

	rec, dir, err := ws.Store.Create(p, opts.Name)
	if err != nil {
		return err
	}
	logger.WithPlan(rec.FolderName()).Info("plan created",
		"stages", len(p.Stages),
		"tasks", p.TaskCount(),
		"policy", string(policy),
		"dir", dir,
	)

	printSuccess(out, rec.FolderName(), p, cfg.Display)
	return nil
}

func printSuccess(out io.Writer, folder string, p *plan.Plan, display config.DisplayConfig) {
	fmt.Fprintf(out, "Plan created: %s\n", folder)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %d stages, %d tasks, due %s\n", len(p.Stages), p.TaskCount(), p.DueDate.Format(display.DateFormat))
	fmt.Fprintln(out)
	for _, s := range p.Stages {
		fmt.Fprintf(out, "  %-24s %s - %s\n", s.Name, s.StartDate.Format(display.DateFormat), s.EndDate.Format(display.DateFormat))
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Run `teco plan show %s` to see the tasks.\n", folder)
}
