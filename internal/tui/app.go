// Package tui is the terminal front end for practice and quiz sessions.
package tui

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/practicekit/internal/session"
	"github.com/abhisek/practicekit/internal/store"
	"github.com/abhisek/practicekit/internal/ui/layout"
)

// Options configures the UI.
type Options struct {
	// Session is the running session to drive. Required.
	Session *session.Session

	// Snapshots, when set, receives a snapshot after every answer and at
	// the end so the session can be resumed.
	Snapshots store.SnapshotRepo

	Log logrus.FieldLogger
}

// App is the root Bubble Tea model.
type App struct {
	screens stack
	width   int
	height  int
}

// New creates the App with the practice screen on top.
func New(ctx context.Context, opts Options) App {
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	a := App{}
	a.screens.screens = []Screen{newPracticeScreen(ctx, opts)}
	return a
}

func (a App) Init() tea.Cmd {
	if top := a.screens.active(); top != nil {
		return top.Init()
	}
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	}
	cmd := a.screens.update(msg)
	return a, cmd
}

func (a App) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if a.width == 0 || a.height == 0 {
		return v
	}
	if layout.IsTooSmall(a.width, a.height) {
		v.SetContent(layout.RenderMinSizeMessage(a.width, a.height))
		return v
	}

	top := a.screens.active()
	if top == nil {
		return v
	}
	header := layout.RenderHeader(top.Title(), top.Status(), a.width)
	footer := layout.RenderFooter(top.KeyHints(), a.width)
	contentHeight := max(a.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	v.SetContent(layout.RenderFrame(header, top.View(a.width, contentHeight), footer, a.width, a.height))
	return v
}

// Run drives opts.Session until the user leaves. It returns the summary
// when the session was finished, or nil when the user quit early.
func Run(ctx context.Context, opts Options) (*session.Summary, error) {
	if opts.Session == nil {
		return nil, fmt.Errorf("tui: no session")
	}
	p := tea.NewProgram(New(ctx, opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return nil, fmt.Errorf("run terminal UI: %w", err)
	}
	if !opts.Session.Finished() {
		return nil, nil
	}
	return opts.Session.Finish(ctx), nil
}
