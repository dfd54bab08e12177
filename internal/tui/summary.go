package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/practicekit/internal/session"
	"github.com/abhisek/practicekit/internal/ui/components"
	"github.com/abhisek/practicekit/internal/ui/layout"
	"github.com/abhisek/practicekit/internal/ui/theme"
)

// SummaryScreen shows the results of a finished session.
type SummaryScreen struct {
	sum *session.Summary
}

var _ Screen = (*SummaryScreen)(nil)

func newSummaryScreen(sum *session.Summary) *SummaryScreen {
	return &SummaryScreen{sum: sum}
}

func (s *SummaryScreen) Init() tea.Cmd { return nil }

func (s *SummaryScreen) Title() string { return "Summary" }

func (s *SummaryScreen) Status() string {
	if s.sum == nil || s.sum.Grade == "" {
		return ""
	}
	return "Grade " + s.sum.Grade
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "Quit"}}
}

func (s *SummaryScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok {
		switch k.String() {
		case "enter", "esc", "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.sum
	if sum == nil {
		return ""
	}
	inner := max(width-4, 10)

	var b strings.Builder
	heading := "Session complete!"
	if sum.Expired {
		heading = "Time is up!"
	}
	b.WriteString(theme.Title.Render(heading))
	b.WriteString("\n\n")
	b.WriteString(theme.Dim.Render("Duration " + layout.FormatClock(int(sum.Duration.Seconds()))))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Questions %d   Answered %d   Correct %d\n\n",
		sum.TotalQuestions, sum.Answered, sum.TotalCorrect)

	meterWidth := min(inner, 60)
	b.WriteString(components.Meter{Label: "Accuracy", Ratio: sum.Accuracy, Width: meterWidth}.View())
	b.WriteString("\n")
	b.WriteString(components.Meter{Label: "Score   ", Ratio: sum.Score(), Width: meterWidth}.View())
	b.WriteString("\n\n")

	b.WriteString(theme.Dim.Render("Topics"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(inner, 60))))
	b.WriteString("\n")
	for _, t := range sum.Topics {
		line := fmt.Sprintf("%-36s %d/%d correct", t.Topic, t.Correct, t.Attempted)
		if t.Attempted < t.Questions {
			line += fmt.Sprintf(", %d skipped", t.Questions-t.Attempted)
		}
		style := theme.Body
		if t.Attempted > 0 && t.Correct == t.Attempted {
			style = theme.Correct
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
