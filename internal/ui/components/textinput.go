package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/practicekit/internal/ui/theme"
)

// TextInput wraps the bubbles text input with a verdict marker.
type TextInput struct {
	Model textinput.Model

	marked  bool
	correct bool
}

// NewTextInput creates a focused input.
func NewTextInput(placeholder string, limit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if limit > 0 {
		ti.CharLimit = limit
	}
	ti.Focus()
	return TextInput{Model: ti}
}

func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update forwards msg to the input unless it has been marked.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.marked {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) View() string {
	view := t.Model.View()
	if t.marked {
		if t.correct {
			view += " " + theme.Correct.Render("✓")
		} else {
			view += " " + theme.Incorrect.Render("✗")
		}
	}
	return view
}

func (t TextInput) Value() string {
	return t.Model.Value()
}

// Focus and Blur toggle keyboard input for multi-field forms.
func (t *TextInput) Focus() tea.Cmd { return t.Model.Focus() }
func (t *TextInput) Blur()          { t.Model.Blur() }

// Mark freezes the input with a verdict.
func (t *TextInput) Mark(correct bool) {
	t.marked = true
	t.correct = correct
	t.Model.Blur()
}
