package components

import (
	"fmt"
	"strings"
)

const (
	filledChar = "■"
	emptyChar  = "□"
)

// Progress renders a progress bar like: ■■■■□□□□ 50%
type Progress struct {
	Current int
	Total   int
	Width   int // character width of the bar portion
}

// NewProgress creates a new Progress instance.
func NewProgress(current, total, width int) Progress {
	return Progress{
		Current: current,
		Total:   total,
		Width:   width,
	}
}

// NewPercent creates a Progress for a value already expressed in percent.
func NewPercent(pct, width int) Progress {
	return NewProgress(pct, 100, width)
}

// Split returns how many of Width cells are filled and the rounded
// percentage. Current is clamped to [0, Total]; both values are 0 when
// Total or Width is not positive.
func (p Progress) Split() (filled, percent int) {
	if p.Total <= 0 || p.Width <= 0 {
		return 0, 0
	}

	current := p.Current
	if current < 0 {
		current = 0
	}
	if current > p.Total {
		current = p.Total
	}

	percent = (current*100*2 + p.Total) / (2 * p.Total)
	filled = (current*p.Width*2 + p.Total) / (2 * p.Total)
	return filled, percent
}

// View returns the rendered progress bar string. The percentage is
// rounded to the nearest whole number.
func (p Progress) View() string {
	if p.Total <= 0 || p.Width <= 0 {
		return ""
	}

	filled, percent := p.Split()
	bar := strings.Repeat(filledChar, filled) + strings.Repeat(emptyChar, p.Width-filled)

	return fmt.Sprintf("%s %d%%", bar, percent)
}
