package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/practicekit/internal/question"
	"github.com/abhisek/practicekit/internal/session"
	"github.com/abhisek/practicekit/internal/ui/components"
	"github.com/abhisek/practicekit/internal/ui/layout"
	"github.com/abhisek/practicekit/internal/ui/theme"
)

const maxTextWidth = 72

func (p *PracticeScreen) View(width, height int) string {
	if p.confirming {
		return renderConfirm(width)
	}

	e := p.entry()
	inner := max(width-4, 10)

	var b strings.Builder
	b.WriteString(components.Palette{Cells: paletteCells(p.sess.Palette()), Width: inner}.View())
	b.WriteString("\n\n")
	b.WriteString(theme.Dim.Render(e.Topic))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", inner)))
	b.WriteString("\n\n")

	b.WriteString(theme.Body.Bold(true).Width(min(inner, maxTextWidth)).Render(e.Question.Prompt))
	b.WriteString("\n\n")

	switch e.Question.Type {
	case question.TypeMultipleChoice:
		b.WriteString(p.choice.View())
	case question.TypeTable:
		for i, row := range e.Question.Rows {
			if i >= len(p.inputs) {
				break
			}
			fmt.Fprintf(&b, "%-14s %s\n", row.Label, p.inputs[i].View())
		}
	default:
		b.WriteString("Answer: " + p.inputs[0].View())
		b.WriteString("\n")
	}

	if e.Result != nil {
		b.WriteString("\n")
		b.WriteString(renderFeedback(e, min(inner, maxTextWidth)))
	}
	if p.notice != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(p.notice))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func renderFeedback(e session.Entry, width int) string {
	var b strings.Builder
	if e.Result.Correct {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Not quite."))
		b.WriteString(" ")
		b.WriteString(theme.Dim.Render("Answer: " + e.Result.Expected))
	}
	if e.Question.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(theme.Body.Width(width).Render(e.Question.Explanation))
	}
	b.WriteString("\n")
	return b.String()
}

func renderConfirm(width int) string {
	lines := []string{
		theme.Body.Bold(true).Render("Finish this session?"),
		theme.Dim.Render("Unanswered questions count as missed."),
		"",
		theme.Correct.Render("[Y] Finish"),
		theme.Selected.Render("[N] Keep going"),
	}
	return "\n\n" + layout.Center(strings.Join(lines, "\n"), width)
}

func paletteCells(cells []session.Cell) []components.PaletteCell {
	out := make([]components.PaletteCell, len(cells))
	for i, c := range cells {
		pc := components.PaletteCell{Current: c.Current}
		switch c.State {
		case session.Correct:
			pc.State = components.CellCorrect
		case session.Incorrect:
			pc.State = components.CellWrong
		}
		out[i] = pc
	}
	return out
}
