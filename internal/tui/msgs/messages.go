// Package msgs defines shared message types for TUI view transitions.
package msgs

// View transition messages

// GoToHomeMsg signals transition to the home view.
type GoToHomeMsg struct{}

// GoToFormMsg signals transition to the new-plan form.
type GoToFormMsg struct{}

// GoToPlanListMsg signals transition to the plan list view.
type GoToPlanListMsg struct{}

// OpenPlanMsg asks for the dashboard of the plan stored in Dir.
type OpenPlanMsg struct {
	Dir string
}

// PlanCreatedMsg is sent when a new plan has been generated and saved.
type PlanCreatedMsg struct {
	Dir  string
	Name string
}
