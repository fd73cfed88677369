package components

import (
	"fmt"

	"github.com/theirongolddev/savr/internal/model"
	"github.com/theirongolddev/savr/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForProgress returns the bar color for a goal's state: success when
// complete, primary when on track, warning when behind.
func ColorForProgress(p model.Progress, complete bool) lipgloss.Color {
	t := theme.Active
	switch {
	case complete:
		return t.Success
	case p.IsOnTrack:
		return t.Primary
	default:
		return t.Warning
	}
}

// GoalBar renders a goal's progress bar followed by its rounded percentage.
func GoalBar(p model.Progress, complete bool, width int) string {
	t := theme.Active

	barW := width - 5 // " 100%"
	if barW < 4 {
		barW = 4
	}

	color := ColorForProgress(p, complete)
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barW),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.Border)

	pct := p.ProgressPercentage.InexactFloat64() / 100
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	pctStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	return bar.ViewAs(pct) + " " + pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100))
}

// ExpectedMarker renders a one-line ruler with a caret where the goal
// should be by now.
func ExpectedMarker(p model.Progress, width int) string {
	t := theme.Active

	barW := width - 5
	if barW < 4 {
		barW = 4
	}

	exp := p.ExpectedPercentage.InexactFloat64() / 100
	if exp < 0 {
		exp = 0
	}
	if exp > 1 {
		exp = 1
	}
	pos := int(exp * float64(barW-1))

	style := lipgloss.NewStyle().Foreground(t.TextMuted)
	return style.Render(fmt.Sprintf("%*s", pos+1, "^") + fmt.Sprintf(" expected %.0f%%", exp*100))
}
