package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/practicekit/internal/ui/layout"
)

// Screen is one full-window view. The App draws the frame around it.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area only.
	View(width, height int) string

	Title() string

	// Status is shown on the right of the header, e.g. the countdown.
	Status() string

	KeyHints() []layout.KeyHint
}

// replaceScreenMsg swaps the active screen, e.g. practice for summary.
type replaceScreenMsg struct {
	Screen Screen
}

// stack holds the screens; only the top one receives input.
type stack struct {
	screens []Screen
}

func (s *stack) active() Screen {
	if len(s.screens) == 0 {
		return nil
	}
	return s.screens[len(s.screens)-1]
}

func (s *stack) push(sc Screen) tea.Cmd {
	s.screens = append(s.screens, sc)
	return sc.Init()
}

func (s *stack) replace(sc Screen) tea.Cmd {
	if len(s.screens) == 0 {
		return s.push(sc)
	}
	s.screens[len(s.screens)-1] = sc
	return sc.Init()
}

func (s *stack) update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(replaceScreenMsg); ok {
		return s.replace(m.Screen)
	}
	top := s.active()
	if top == nil {
		return nil
	}
	next, cmd := top.Update(msg)
	s.screens[len(s.screens)-1] = next
	return cmd
}
