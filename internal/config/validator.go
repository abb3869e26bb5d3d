package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/pablasso/teco/internal/logging"
	"github.com/pablasso/teco/internal/plan"
)

// ValidationError is a single invalid config value.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects every invalid value found.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Validate returns all problems found in c.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError
	errs = append(errs, c.validatePlanner()...)
	errs = append(errs, c.validateLogging()...)
	errs = append(errs, c.validateDisplay()...)
	return errs
}

func (c *Config) validatePlanner() []ValidationError {
	var errs []ValidationError
	p := c.Planner

	if p.MinHoursPerWeek < 1 {
		errs = append(errs, ValidationError{
			Field:   "planner.min_hours_per_week",
			Value:   p.MinHoursPerWeek,
			Message: "must be at least 1",
		})
	}
	if p.MaxHoursPerWeek < p.MinHoursPerWeek {
		errs = append(errs, ValidationError{
			Field:   "planner.max_hours_per_week",
			Value:   p.MaxHoursPerWeek,
			Message: fmt.Sprintf("must be at least min_hours_per_week (%d)", p.MinHoursPerWeek),
		})
	}
	if p.DefaultHoursPerWeek < p.MinHoursPerWeek || p.DefaultHoursPerWeek > p.MaxHoursPerWeek {
		errs = append(errs, ValidationError{
			Field:   "planner.default_hours_per_week",
			Value:   p.DefaultHoursPerWeek,
			Message: fmt.Sprintf("must be between %d and %d", p.MinHoursPerWeek, p.MaxHoursPerWeek),
		})
	}
	if _, err := plan.ParsePolicy(p.Policy); err != nil {
		errs = append(errs, ValidationError{
			Field:   "planner.policy",
			Value:   p.Policy,
			Message: "must be one of: independent, carry",
		})
	}
	return errs
}

func (c *Config) validateLogging() []ValidationError {
	if c.Logging.Level == "" || logging.IsValidLevel(c.Logging.Level) {
		return nil
	}
	return []ValidationError{{
		Field:   "logging.level",
		Value:   c.Logging.Level,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(logging.ValidLevels(), ", ")),
	}}
}

func (c *Config) validateDisplay() []ValidationError {
	var errs []ValidationError
	d := c.Display

	// A layout without any reference-time element formats every date the same.
	ref := time.Date(2006, time.January, 2, 0, 0, 0, 0, time.UTC)
	if d.DateFormat == "" || ref.Format(d.DateFormat) == ref.AddDate(1, 1, 1).Format(d.DateFormat) {
		errs = append(errs, ValidationError{
			Field:   "display.date_format",
			Value:   d.DateFormat,
			Message: "must be a Go time layout containing a date",
		})
	}
	if d.GenerateDelayMs < 0 {
		errs = append(errs, ValidationError{
			Field:   "display.generate_delay_ms",
			Value:   d.GenerateDelayMs,
			Message: "must be non-negative",
		})
	}
	if d.UpcomingStages < 1 {
		errs = append(errs, ValidationError{
			Field:   "display.upcoming_stages",
			Value:   d.UpcomingStages,
			Message: "must be at least 1",
		})
	}
	return errs
}
