package plan

// Task is the smallest trackable unit of work inside a stage.
type Task struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	Description    string  `json:"description" yaml:"description"`
	EstimatedHours float64 `json:"estimatedHours" yaml:"estimatedHours"`
	Completed      bool    `json:"completed" yaml:"completed"`
}
