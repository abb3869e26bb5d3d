// Package store persists generated plans under a .teco directory.
//
// Each plan lives in its own folder, .teco/plans/<id>-<name>/, holding
// plan.json, the events.log history and a transient plan.lock.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pablasso/teco/internal/plan"
	"github.com/pablasso/teco/internal/util"
)

const (
	// DirName is the per-project data directory.
	DirName = ".teco"

	plansDir     = "plans"
	planFileName = "plan.json"
	maxNameLen   = 40
)

// ErrPlanNotFound is returned when no plan folder matches a name.
var ErrPlanNotFound = errors.New("plan not found")

// Record is the on-disk envelope around a generated plan.
type Record struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Plan      *plan.Plan `json:"plan"`
}

// FolderName returns the plan folder name, <id>-<name>.
func (r *Record) FolderName() string {
	return fmt.Sprintf("%s-%s", r.ID, r.Name)
}

// Summary is a listing entry for one stored plan.
type Summary struct {
	ID        string
	Name      string
	Title     string
	Dir       string
	DueDate   time.Time
	Progress  int
	TaskCount int
	Completed int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store reads and writes plan folders below a data directory.
type Store struct {
	root string
}

// New returns a Store rooted at the given .teco directory.
func New(root string) *Store {
	return &Store{root: root}
}

// Root returns the data directory.
func (s *Store) Root() string {
	return s.root
}

// PlansDir returns the directory holding plan folders.
func (s *Store) PlansDir() string {
	return filepath.Join(s.root, plansDir)
}

// NameFromTitle derives the base folder name for a plan title.
func NameFromTitle(title string) string {
	name := util.Slugify(title, maxNameLen)
	if name == "" {
		return "plan"
	}
	return name
}

// ResolveName checks for name collisions in the plans directory and returns
// a unique name. If baseName is not taken it is returned as-is; otherwise
// -2, -3, etc. is appended until a unique name is found.
func (s *Store) ResolveName(baseName string) (string, error) {
	entries, err := os.ReadDir(s.PlansDir())
	if err != nil {
		if os.IsNotExist(err) {
			return baseName, nil
		}
		return "", fmt.Errorf("failed to read plans directory: %w", err)
	}

	// Folder format is <id>-<name>; ids never contain hyphens.
	existingNames := make(map[string]bool)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		parts := strings.SplitN(entry.Name(), "-", 2)
		if len(parts) == 2 {
			existingNames[parts[1]] = true
		}
	}

	if !existingNames[baseName] {
		return baseName, nil
	}

	for suffix := 2; ; suffix++ {
		candidate := fmt.Sprintf("%s-%d", baseName, suffix)
		if !existingNames[candidate] {
			return candidate, nil
		}
	}
}

// Create stores a freshly generated plan. An empty name is derived from
// the plan title. It returns the record and the plan folder path.
func (s *Store) Create(p *plan.Plan, name string) (*Record, string, error) {
	id, err := util.GenerateShortID()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate plan ID: %w", err)
	}

	base := util.Slugify(name, maxNameLen)
	if base == "" {
		base = NameFromTitle(p.Title)
	}
	resolved, err := s.ResolveName(base)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve plan name: %w", err)
	}

	now := time.Now()
	rec := &Record{
		ID:        id,
		Name:      resolved,
		CreatedAt: now,
		UpdatedAt: now,
		Plan:      p,
	}

	dir := filepath.Join(s.PlansDir(), rec.FolderName())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, "", fmt.Errorf("failed to create plan folder: %w", err)
	}
	if err := writeRecord(dir, rec); err != nil {
		return nil, "", err
	}
	if err := NewEventLog(dir).PlanCreated(p.Title, len(p.Stages), p.TaskCount()); err != nil {
		return nil, "", fmt.Errorf("failed to write events.log: %w", err)
	}

	return rec, dir, nil
}

// Find locates a plan folder by name, by id, or by full <id>-<name>
// folder name. It returns the full path to the plan folder.
func (s *Store) Find(name string) (string, error) {
	entries, err := os.ReadDir(s.PlansDir())
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: no plans yet. Run 'teco plan create' first", ErrPlanNotFound)
		}
		return "", fmt.Errorf("failed to read plans directory: %w", err)
	}

	var matches []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		folder := entry.Name()
		parts := strings.SplitN(folder, "-", 2)
		if folder == name || parts[0] == name || (len(parts) == 2 && parts[1] == name) {
			matches = append(matches, folder)
		}
	}

	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s", ErrPlanNotFound, name)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("multiple plans match '%s': %v", name, matches)
	}

	return filepath.Join(s.PlansDir(), matches[0]), nil
}

// Load reads and parses plan.json from a plan directory.
func (s *Store) Load(planDir string) (*Record, error) {
	data, err := os.ReadFile(filepath.Join(planDir, planFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to read plan.json: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse plan.json: %w", err)
	}
	if rec.Plan == nil {
		return nil, fmt.Errorf("failed to parse plan.json: missing plan")
	}

	return &rec, nil
}

// Save atomically rewrites plan.json and bumps UpdatedAt.
func (s *Store) Save(planDir string, rec *Record) error {
	rec.UpdatedAt = time.Now()
	return writeRecord(planDir, rec)
}

// Update loads a plan, applies fn and saves the result while holding the
// plan lock. Nothing is written when fn fails.
func (s *Store) Update(planDir string, fn func(*Record) error) (*Record, error) {
	var rec *Record
	err := NewLock(planDir).Do(func() error {
		loaded, err := s.Load(planDir)
		if err != nil {
			return err
		}
		if err := fn(loaded); err != nil {
			return err
		}
		if err := s.Save(planDir, loaded); err != nil {
			return err
		}
		rec = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ToggleTask flips one task's completion and records it in the history.
func (s *Store) ToggleTask(planDir, taskID string) (*Record, error) {
	var completed bool
	rec, err := s.Update(planDir, func(r *Record) error {
		if err := plan.ToggleTaskCompletion(r.Plan, taskID); err != nil {
			return err
		}
		task, _, _ := r.Plan.FindTask(taskID)
		completed = task.Completed
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := NewEventLog(planDir).TaskToggled(taskID, completed); err != nil {
		return rec, fmt.Errorf("failed to write events.log: %w", err)
	}
	return rec, nil
}

// SetStageCompleted sets one stage's manual completion flag and records
// it in the history.
func (s *Store) SetStageCompleted(planDir, stageID string, done bool) (*Record, error) {
	rec, err := s.Update(planDir, func(r *Record) error {
		return plan.SetStageCompleted(r.Plan, stageID, done)
	})
	if err != nil {
		return nil, err
	}
	if err := NewEventLog(planDir).StageToggled(stageID, done); err != nil {
		return rec, fmt.Errorf("failed to write events.log: %w", err)
	}
	return rec, nil
}

// List returns a summary of every readable plan, oldest first. Folders
// without a valid plan.json are skipped.
func (s *Store) List() ([]Summary, error) {
	entries, err := os.ReadDir(s.PlansDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read plans directory: %w", err)
	}

	var summaries []Summary
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(s.PlansDir(), entry.Name())
		rec, err := s.Load(dir)
		if err != nil {
			continue
		}
		summaries = append(summaries, Summary{
			ID:        rec.ID,
			Name:      rec.Name,
			Title:     rec.Plan.Title,
			Dir:       dir,
			DueDate:   rec.Plan.DueDate,
			Progress:  plan.OverallProgress(rec.Plan),
			TaskCount: rec.Plan.TaskCount(),
			Completed: rec.Plan.CompletedTaskCount(),
			CreatedAt: rec.CreatedAt,
			UpdatedAt: rec.UpdatedAt,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.Before(summaries[j].CreatedAt)
	})
	return summaries, nil
}

// writeRecord writes plan.json through a temp file + rename.
func writeRecord(planDir string, rec *Record) error {
	planPath := filepath.Join(planDir, planFileName)
	tmpPath := fmt.Sprintf("%s.tmp.%d", planPath, os.Getpid())

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, planPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
