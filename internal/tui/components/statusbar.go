package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pablasso/teco/internal/tui/styles"
)

const separator = "  |  "

// StatusBar renders a bottom help bar showing contextual help items,
// optionally preceded by a transient message.
type StatusBar struct {
	message string
	isError bool
}

// NewStatusBar creates a new StatusBar instance.
func NewStatusBar() StatusBar {
	return StatusBar{}
}

// WithMessage returns a copy that shows msg before the help items.
func (s StatusBar) WithMessage(msg string, isError bool) StatusBar {
	s.message = msg
	s.isError = isError
	return s
}

func (s StatusBar) messageStyle() lipgloss.Style {
	if s.isError {
		return styles.ErrorStyle
	}
	return styles.SuccessStyle
}

// Render returns the status bar string for the given width and items.
func (s StatusBar) Render(width int, items []string) string {
	content := strings.Join(items, separator)

	if s.message != "" {
		msg := s.messageStyle().Render(s.message)
		if content == "" {
			content = msg
		} else {
			content = lipgloss.JoinHorizontal(lipgloss.Top, msg, separator, content)
		}
	}

	return styles.StatusBarStyle.Width(width).Render(content)
}
