package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/practicekit/internal/ui/theme"
)

// Meter is a labelled horizontal bar for a ratio in [0, 1].
type Meter struct {
	Label string
	Ratio float64
	Width int
}

func (m Meter) View() string {
	var out string
	if m.Label != "" {
		out = theme.Body.Render(m.Label) + "  "
	}

	const pctWidth = 6
	bar := max(m.Width-lipgloss.Width(out)-pctWidth, 4)
	filled := min(max(int(float64(bar)*m.Ratio), 0), bar)

	out += lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled))
	out += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", bar-filled))
	out += theme.Dim.Render(fmt.Sprintf("  %d%%", int(m.Ratio*100+0.5)))
	return out
}
