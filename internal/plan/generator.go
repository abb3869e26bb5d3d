// Package plan generates the staged work plan for an academic writing
// project and tracks progress against it.
//
// Nothing in this package performs I/O. Generation depends only on its
// inputs, the injected clock and the injected identifier source.
package plan

import (
	"math"
	"time"

	"github.com/google/uuid"
)

const day = 24 * time.Hour

// Generator builds plans from a stage catalog.
type Generator struct {
	now     func() time.Time
	newID   func() string
	catalog Catalog
	policy  Policy
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the source of "now" used for the plan start date.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithIDFunc overrides the identifier source for stages and tasks.
// The function must return a distinct value on every call.
func WithIDFunc(newID func() string) Option {
	return func(g *Generator) {
		g.newID = newID
	}
}

// WithCatalog replaces the built-in stage catalog.
func WithCatalog(c Catalog) Option {
	return func(g *Generator) {
		g.catalog = c.clone()
	}
}

// WithPolicy selects how the effort budget is split into stage spans.
func WithPolicy(p Policy) Option {
	return func(g *Generator) {
		g.policy = p
	}
}

// NewGenerator returns a Generator using the wall clock, random UUIDs,
// the default catalog and independent rounding unless overridden.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		now:     time.Now,
		newID:   uuid.NewString,
		catalog: DefaultCatalog(),
		policy:  PolicyIndependent,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds a plan with the package defaults.
func Generate(title string, dueDate time.Time, hoursPerWeek float64) *Plan {
	return NewGenerator().Generate(title, dueDate, hoursPerWeek)
}

// Generate builds a plan that starts now and is prorated against the
// hours available until dueDate. A deadline at or before now still
// yields a one-day budget; every stage spans at least one day.
//
// Stage i ends stageDays after it starts and stage i+1 starts the day
// after stage i ends.
func (g *Generator) Generate(title string, dueDate time.Time, hoursPerWeek float64) *Plan {
	startDate := g.now()

	totalDays := TotalDays(startDate, dueDate)
	totalHours := TotalHoursAvailable(totalDays, hoursPerWeek)
	spans := g.policy.stageDays(g.catalog, totalDays, totalHours, hoursPerWeek)

	stages := make([]Stage, 0, len(g.catalog))
	cursor := startDate
	for i, tmpl := range g.catalog {
		endDate := addDays(cursor, spans[i])

		tasks := make([]Task, 0, len(tmpl.Tasks))
		for _, tt := range tmpl.Tasks {
			tasks = append(tasks, Task{
				ID:             g.newID(),
				Name:           tt.Name,
				Description:    tt.Description,
				EstimatedHours: tt.EstimatedHours,
			})
		}

		stages = append(stages, Stage{
			ID:                g.newID(),
			Name:              tmpl.Name,
			Description:       tmpl.Description,
			PercentageOfTotal: tmpl.PercentageOfTotal,
			StartDate:         cursor,
			EndDate:           endDate,
			Tasks:             tasks,
		})

		cursor = addDays(endDate, 1)
	}

	return &Plan{
		Title:        title,
		StartDate:    startDate,
		DueDate:      dueDate,
		HoursPerWeek: hoursPerWeek,
		Stages:       stages,
	}
}

// TotalDays returns the whole days between start and due, floored, with
// a minimum of 1.
func TotalDays(start, due time.Time) int {
	days := int(math.Floor(float64(due.Sub(start)) / float64(day)))
	if days < 1 {
		return 1
	}
	return days
}

// TotalHoursAvailable is the effort budget: totalDays * hoursPerWeek/7,
// floored. Non-positive weekly hours give an empty budget.
func TotalHoursAvailable(totalDays int, hoursPerWeek float64) int {
	if hoursPerWeek <= 0 {
		return 0
	}
	return int(math.Floor(float64(totalDays) * hoursPerWeek / 7))
}

// addDays moves t by n calendar days, keeping its wall-clock time.
func addDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}
