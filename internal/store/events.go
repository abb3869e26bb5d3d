package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
)

const eventLogFileName = "events.log"

// Event type constants for the plan history.
const (
	EventPlanCreated    = "plan_created"
	EventTaskCompleted  = "task_completed"
	EventTaskReopened   = "task_reopened"
	EventStageCompleted = "stage_completed"
	EventStageReopened  = "stage_reopened"
)

// Event is a single history entry.
type Event struct {
	ID        string                 `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	Event     string                 `json:"event"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// EventLog appends plan history events to a JSON Lines file.
type EventLog struct {
	path string
}

// NewEventLog creates an event log for the given plan directory.
func NewEventLog(planDir string) *EventLog {
	return &EventLog{
		path: filepath.Join(planDir, eventLogFileName),
	}
}

// Log appends an event to the log file. Event ids are ULIDs, so they sort
// in the order events were written by this process.
func (e *EventLog) Log(event string, data map[string]interface{}) error {
	entry := Event{
		ID:        ulid.Make().String(),
		Timestamp: time.Now(),
		Event:     event,
		Data:      data,
	}

	jsonBytes, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	jsonBytes = append(jsonBytes, '\n')

	f, err := os.OpenFile(e.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(jsonBytes)
	return err
}

// PlanCreated logs a plan_created event.
func (e *EventLog) PlanCreated(title string, stages, tasks int) error {
	return e.Log(EventPlanCreated, map[string]interface{}{
		"title":  title,
		"stages": stages,
		"tasks":  tasks,
	})
}

// TaskToggled logs task_completed or task_reopened depending on the new state.
func (e *EventLog) TaskToggled(taskID string, completed bool) error {
	event := EventTaskReopened
	if completed {
		event = EventTaskCompleted
	}
	return e.Log(event, map[string]interface{}{
		"task_id": taskID,
	})
}

// StageToggled logs stage_completed or stage_reopened depending on the new state.
func (e *EventLog) StageToggled(stageID string, completed bool) error {
	event := EventStageReopened
	if completed {
		event = EventStageCompleted
	}
	return e.Log(event, map[string]interface{}{
		"stage_id": stageID,
	})
}

// Read returns every event in the log in file order. A missing log
// yields no events.
func (e *EventLog) Read() ([]Event, error) {
	f, err := os.Open(e.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open event log: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for line := 1; scanner.Scan(); line++ {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var evt Event
		if err := json.Unmarshal(scanner.Bytes(), &evt); err != nil {
			return nil, fmt.Errorf("failed to parse event log line %d: %w", line, err)
		}
		events = append(events, evt)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read event log: %w", err)
	}
	return events, nil
}
