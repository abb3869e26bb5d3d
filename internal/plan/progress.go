package plan

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrTaskNotFound is returned when a task id does not exist in the plan.
	ErrTaskNotFound = errors.New("task not found")

	// ErrStageNotFound is returned when a stage id does not exist in the plan.
	ErrStageNotFound = errors.New("stage not found")
)

// Urgency classifies how close the deadline is.
type Urgency int

const (
	UrgencyNormal Urgency = iota
	UrgencyWarning
	UrgencyCritical
	UrgencyOverdue
)

func (u Urgency) String() string {
	switch u {
	case UrgencyNormal:
		return "normal"
	case UrgencyWarning:
		return "warning"
	case UrgencyCritical:
		return "critical"
	case UrgencyOverdue:
		return "overdue"
	default:
		return "unknown"
	}
}

// StageProgress returns the fraction of the stage's tasks that are done,
// in [0, 1]. A stage without tasks reports 0.
func StageProgress(s Stage) float64 {
	if len(s.Tasks) == 0 {
		return 0
	}
	return float64(s.CompletedTaskCount()) / float64(len(s.Tasks))
}

// OverallProgress returns the rounded percentage of completed tasks
// across the plan, 0 when the plan has no tasks.
func OverallProgress(p *Plan) int {
	total := p.TaskCount()
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(p.CompletedTaskCount()) / float64(total)))
}

// DaysRemaining returns ceil((dueDate - now) / 1 day). The result is
// negative once the deadline has passed.
func DaysRemaining(p *Plan, now time.Time) int {
	return int(math.Ceil(float64(p.DueDate.Sub(now)) / float64(day)))
}

// UrgencyFor maps a days-remaining value to an Urgency.
func UrgencyFor(days int) Urgency {
	switch {
	case days < 0:
		return UrgencyOverdue
	case days < 7:
		return UrgencyCritical
	case days < 14:
		return UrgencyWarning
	default:
		return UrgencyNormal
	}
}

// UpcomingStages returns up to n stages, in plan order, that still have
// unfinished tasks.
func UpcomingStages(p *Plan, n int) []Stage {
	if n <= 0 {
		return nil
	}
	var out []Stage
	for _, s := range p.Stages {
		if s.AllTasksCompleted() {
			continue
		}
		out = append(out, s)
		if len(out) == n {
			break
		}
	}
	return out
}

// CurrentStage returns the stage whose date range contains now.
func CurrentStage(p *Plan, now time.Time) (Stage, bool) {
	for _, s := range p.Stages {
		if !now.Before(s.StartDate) && !now.After(s.EndDate) {
			return s, true
		}
	}
	return Stage{}, false
}

// ToggleTaskCompletion flips the completed flag of one task. The owning
// stage's Completed flag is left untouched.
func ToggleTaskCompletion(p *Plan, taskID string) error {
	task, _, ok := p.FindTask(taskID)
	if !ok {
		return fmt.Errorf("toggle task %q: %w", taskID, ErrTaskNotFound)
	}
	task.Completed = !task.Completed
	return nil
}

// SetStageCompleted sets the manual completion flag of one stage.
func SetStageCompleted(p *Plan, stageID string, done bool) error {
	stage, ok := p.FindStage(stageID)
	if !ok {
		return fmt.Errorf("set stage %q: %w", stageID, ErrStageNotFound)
	}
	stage.Completed = done
	return nil
}

// ToggleStageCompletion flips the manual completion flag of one stage.
func ToggleStageCompletion(p *Plan, stageID string) error {
	stage, ok := p.FindStage(stageID)
	if !ok {
		return fmt.Errorf("toggle stage %q: %w", stageID, ErrStageNotFound)
	}
	stage.Completed = !stage.Completed
	return nil
}
