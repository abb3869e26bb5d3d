package plan

import (
	"math"
	"time"
)

// Plan is the full schedule generated for one academic project.
type Plan struct {
	Title        string    `json:"title" yaml:"title"`
	StartDate    time.Time `json:"startDate" yaml:"startDate"`
	DueDate      time.Time `json:"dueDate" yaml:"dueDate"`
	HoursPerWeek float64   `json:"hoursPerWeek" yaml:"hoursPerWeek"`
	Stages       []Stage   `json:"stages" yaml:"stages"`
}

// Stage is one phase of the work with its own date range and tasks.
type Stage struct {
	ID                string    `json:"id" yaml:"id"`
	Name              string    `json:"name" yaml:"name"`
	Description       string    `json:"description" yaml:"description"`
	PercentageOfTotal int       `json:"percentageOfTotal" yaml:"percentageOfTotal"`
	StartDate         time.Time `json:"startDate" yaml:"startDate"`
	EndDate           time.Time `json:"endDate" yaml:"endDate"`
	Tasks             []Task    `json:"tasks" yaml:"tasks"`
	Completed         bool      `json:"completed" yaml:"completed"`
}

// TaskCount returns the number of tasks across all stages.
func (p *Plan) TaskCount() int {
	n := 0
	for i := range p.Stages {
		n += len(p.Stages[i].Tasks)
	}
	return n
}

// CompletedTaskCount returns the number of completed tasks across all stages.
func (p *Plan) CompletedTaskCount() int {
	n := 0
	for i := range p.Stages {
		n += p.Stages[i].CompletedTaskCount()
	}
	return n
}

// EstimatedHours sums the template estimates of every task in the plan.
func (p *Plan) EstimatedHours() float64 {
	var total float64
	for i := range p.Stages {
		for _, t := range p.Stages[i].Tasks {
			total += t.EstimatedHours
		}
	}
	return total
}

// FindStage returns a pointer into p.Stages for the given id.
func (p *Plan) FindStage(stageID string) (*Stage, bool) {
	for i := range p.Stages {
		if p.Stages[i].ID == stageID {
			return &p.Stages[i], true
		}
	}
	return nil, false
}

// FindTask returns a pointer to the task with the given id together with
// the stage that owns it.
func (p *Plan) FindTask(taskID string) (*Task, *Stage, bool) {
	for i := range p.Stages {
		stage := &p.Stages[i]
		for j := range stage.Tasks {
			if stage.Tasks[j].ID == taskID {
				return &stage.Tasks[j], stage, true
			}
		}
	}
	return nil, nil, false
}

// CompletedTaskCount returns how many of the stage's tasks are done.
func (s Stage) CompletedTaskCount() int {
	n := 0
	for _, t := range s.Tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// AllTasksCompleted reports whether every task of the stage is done.
// It is a derived view and never changes the stage's Completed flag.
// A stage without tasks is not considered complete.
func (s Stage) AllTasksCompleted() bool {
	if len(s.Tasks) == 0 {
		return false
	}
	return s.CompletedTaskCount() == len(s.Tasks)
}

// Days returns the number of days between StartDate and EndDate.
func (s Stage) Days() int {
	return int(math.Round(s.EndDate.Sub(s.StartDate).Hours() / 24))
}
