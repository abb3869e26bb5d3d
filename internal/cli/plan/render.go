package plan

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/pablasso/teco/internal/config"
	"github.com/pablasso/teco/internal/plan"
	"github.com/pablasso/teco/internal/tui/components"
)

const barWidth = 20

// urgencyColor maps deadline urgency to a terminal colour.
func urgencyColor(u plan.Urgency) *color.Color {
	switch u {
	case plan.UrgencyOverdue:
		return color.New(color.FgRed, color.Bold)
	case plan.UrgencyCritical:
		return color.New(color.FgRed)
	case plan.UrgencyWarning:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

// daysLabel describes a days-remaining value.
func daysLabel(days int) string {
	switch {
	case days < 0:
		n := -days
		if n == 1 {
			return "1 day overdue"
		}
		return fmt.Sprintf("%d days overdue", n)
	case days == 0:
		return "due today"
	case days == 1:
		return "1 day left"
	default:
		return fmt.Sprintf("%d days left", days)
	}
}

// progressBar renders pct (0-100) as a fixed-width bar, filled the same
// way as the TUI bar.
func progressBar(pct int) string {
	filled, _ := components.NewPercent(pct, barWidth).Split()
	return color.GreenString(strings.Repeat("█", filled)) + color.HiBlackString(strings.Repeat("░", barWidth-filled))
}

func checkMark(done bool) string {
	if done {
		return color.GreenString("[x]")
	}
	return "[ ]"
}

// renderPlan writes the full plan with progress and task ids.
func renderPlan(w io.Writer, p *plan.Plan, at time.Time, display config.DisplayConfig) {
	days := plan.DaysRemaining(p, at)
	overall := plan.OverallProgress(p)

	fmt.Fprintln(w, color.New(color.Bold).Sprint(p.Title))
	fmt.Fprintf(w, "Due %s  %s\n", p.DueDate.Format(display.DateFormat), urgencyColor(plan.UrgencyFor(days)).Sprint(daysLabel(days)))
	fmt.Fprintf(w, "%g h/week, ~%g h of estimated work\n", p.HoursPerWeek, p.EstimatedHours())
	fmt.Fprintf(w, "%s %3d%%  (%d/%d tasks)\n", progressBar(overall), overall, p.CompletedTaskCount(), p.TaskCount())

	current, hasCurrent := plan.CurrentStage(p, at)
	for i, s := range p.Stages {
		fmt.Fprintln(w)
		marker := " "
		if hasCurrent && current.ID == s.ID {
			marker = color.CyanString(">")
		}
		status := ""
		if s.Completed {
			status = color.GreenString(" (done)")
		}
		pct := int(plan.StageProgress(s)*100 + 0.5)
		fmt.Fprintf(w, "%s %d. %s%s\n", marker, i+1, color.New(color.Bold).Sprint(s.Name), status)
		fmt.Fprintf(w, "     %s - %s  %d%% of effort  %s %d%%\n",
			s.StartDate.Format(display.DateFormat),
			s.EndDate.Format(display.DateFormat),
			s.PercentageOfTotal,
			progressBar(pct), pct)
		fmt.Fprintf(w, "     %s\n", color.HiBlackString("stage "+s.ID))
		for _, t := range s.Tasks {
			fmt.Fprintf(w, "     %s %s %s %s\n", checkMark(t.Completed), t.Name, color.HiBlackString(fmt.Sprintf("(%gh)", t.EstimatedHours)), color.HiBlackString(t.ID))
		}
	}
}
