// Package components holds the reusable widgets of the terminal UI.
package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/practicekit/internal/ui/theme"
)

// MultiChoice is an option list with a cursor. Once Reveal is called it
// shows which option was right and which one was picked.
type MultiChoice struct {
	Labels   []string
	Selected int

	revealed bool
	chosen   int
	correct  int
}

// NewMultiChoice creates a selector over labels with the cursor on the
// first option.
func NewMultiChoice(labels []string) MultiChoice {
	return MultiChoice{Labels: labels, chosen: -1, correct: -1}
}

// Update moves the cursor on up/down and jumps to an option on 1-9.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.revealed {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Labels)-1 {
			m.Selected++
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.Labels) {
				m.Selected = i
			}
		}
	}
	return m, nil
}

// Reveal freezes the selector and marks the chosen and correct options.
// Either index may be -1.
func (m *MultiChoice) Reveal(chosen, correct int) {
	m.revealed = true
	m.chosen = chosen
	m.correct = correct
}

// Revealed reports whether Reveal was called.
func (m MultiChoice) Revealed() bool {
	return m.revealed
}

func (m MultiChoice) View() string {
	var b strings.Builder
	for i, label := range m.Labels {
		prefix := "  "
		if i == m.Selected && !m.revealed {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%d) %s", prefix, i+1, label)

		switch {
		case m.revealed && i == m.correct:
			line = theme.Correct.Render(line + "  ✓")
		case m.revealed && i == m.chosen:
			line = theme.Incorrect.Render(line + "  ✗")
		case m.revealed:
			line = theme.Dim.Render(line)
		case i == m.Selected:
			line = theme.Selected.Render(line)
		default:
			line = theme.Body.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
