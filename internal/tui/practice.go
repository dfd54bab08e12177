package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/practicekit/internal/answer"
	"github.com/abhisek/practicekit/internal/question"
	"github.com/abhisek/practicekit/internal/session"
	"github.com/abhisek/practicekit/internal/store"
	"github.com/abhisek/practicekit/internal/ui/components"
	"github.com/abhisek/practicekit/internal/ui/layout"
)

// PracticeScreen shows one question at a time and takes answers.
type PracticeScreen struct {
	ctx   context.Context
	sess  *session.Session
	snaps store.SnapshotRepo
	log   logrus.FieldLogger

	index  int
	choice components.MultiChoice
	inputs []components.TextInput
	focus  int

	confirming bool
	notice     string
}

var _ Screen = (*PracticeScreen)(nil)

func newPracticeScreen(ctx context.Context, opts Options) *PracticeScreen {
	p := &PracticeScreen{
		ctx:   ctx,
		sess:  opts.Session,
		snaps: opts.Snapshots,
		log:   opts.Log,
	}
	p.load()
	return p
}

func (p *PracticeScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{p.focusCmd()}
	if p.sess.Timed() {
		cmds = append(cmds, tick())
	}
	return tea.Batch(cmds...)
}

func (p *PracticeScreen) Title() string {
	if t := p.sess.Title(); t != "" {
		return t
	}
	return "Practice"
}

func (p *PracticeScreen) Status() string {
	status := fmt.Sprintf("Q %d/%d", p.index+1, p.sess.Len())
	if p.sess.Timed() {
		status += "  ⏱ " + layout.FormatClock(int(p.sess.Remaining().Seconds()))
	}
	return status
}

func (p *PracticeScreen) KeyHints() []layout.KeyHint {
	if p.confirming {
		return []layout.KeyHint{
			{Key: "Y", Description: "Finish"},
			{Key: "N", Description: "Keep going"},
		}
	}
	hints := []layout.KeyHint{{Key: "←→", Description: "Move"}}
	e := p.entry()
	switch {
	case e.Result != nil:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Next"})
	case e.Question.Type == question.TypeMultipleChoice:
		hints = append(hints,
			layout.KeyHint{Key: "↑↓/1-9", Description: "Select"},
			layout.KeyHint{Key: "Enter", Description: "Submit"})
	case e.Question.Type == question.TypeTable:
		hints = append(hints,
			layout.KeyHint{Key: "Tab", Description: "Next row"},
			layout.KeyHint{Key: "Enter", Description: "Submit"})
	default:
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Submit"})
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+R", Description: "Repeat"},
		layout.KeyHint{Key: "Esc", Description: "Finish"})
}

func (p *PracticeScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if p.sess.Finished() {
			return p, nil
		}
		if p.sess.Expired() {
			return p, func() tea.Msg { return finishMsg{} }
		}
		return p, tick()

	case finishMsg:
		return p, p.finish()

	case tea.KeyPressMsg:
		return p.handleKey(msg)
	}

	// Cursor blink and paste go to the focused input.
	if len(p.inputs) > 0 {
		var cmd tea.Cmd
		p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *PracticeScreen) handleKey(msg tea.KeyPressMsg) (Screen, tea.Cmd) {
	key := msg.String()

	if p.confirming {
		switch key {
		case "y", "Y":
			p.confirming = false
			return p, p.finish()
		case "n", "N", "esc":
			p.confirming = false
		}
		return p, nil
	}

	switch key {
	case "esc":
		p.confirming = true
		return p, nil
	case "left":
		if p.sess.Prev() {
			p.load()
		}
		return p, p.focusCmd()
	case "right":
		if p.sess.Next() {
			p.load()
		}
		return p, p.focusCmd()
	case "ctrl+r":
		return p.repeat()
	case "enter":
		return p.enter()
	}

	e := p.entry()
	if e.Result != nil {
		return p, nil
	}

	var cmd tea.Cmd
	switch e.Question.Type {
	case question.TypeMultipleChoice:
		p.choice, cmd = p.choice.Update(msg)
		return p, cmd
	case question.TypeTable:
		switch key {
		case "tab", "down":
			return p, p.moveFocus(1)
		case "shift+tab", "up":
			return p, p.moveFocus(-1)
		}
	}
	p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
	return p, cmd
}

// enter submits an open question or moves on from an answered one. With
// everything answered it finishes the session.
func (p *PracticeScreen) enter() (Screen, tea.Cmd) {
	e := p.entry()
	if e.Result == nil {
		return p.submit(e)
	}
	if p.sess.NextUnanswered() {
		p.load()
		return p, p.focusCmd()
	}
	return p, p.finish()
}

func (p *PracticeScreen) submit(e session.Entry) (Screen, tea.Cmd) {
	q := e.Question
	var r question.Response
	switch q.Type {
	case question.TypeMultipleChoice:
		if p.choice.Selected < 0 || p.choice.Selected >= len(q.Options) {
			return p, nil
		}
		r.Value = q.Options[p.choice.Selected].Value
	case question.TypeTable:
		r.Cells = make(map[int]string, len(p.inputs))
		for i, in := range p.inputs {
			v := strings.TrimSpace(in.Value())
			if v == "" {
				p.notice = "Fill in every row first"
				return p, nil
			}
			r.Cells[i] = v
		}
	default:
		r.Value = strings.TrimSpace(p.inputs[0].Value())
		if r.Value == "" {
			p.notice = "Type an answer first"
			return p, nil
		}
	}

	if _, err := p.sess.Answer(p.ctx, p.index, r); err != nil {
		if errors.Is(err, session.ErrExpired) {
			return p, p.finish()
		}
		p.notice = err.Error()
		return p, nil
	}

	p.notice = ""
	p.reveal(p.entry())
	p.save()
	return p, nil
}

func (p *PracticeScreen) repeat() (Screen, tea.Cmd) {
	if _, err := p.sess.Repeat(p.index); err != nil {
		p.notice = "Cannot repeat: " + err.Error()
		return p, nil
	}
	p.load()
	p.notice = "Here is a fresh one"
	return p, p.focusCmd()
}

func (p *PracticeScreen) finish() tea.Cmd {
	sum := p.sess.Finish(p.ctx)
	p.save()
	return func() tea.Msg {
		return replaceScreenMsg{Screen: newSummaryScreen(sum)}
	}
}

func (p *PracticeScreen) save() {
	if p.snaps == nil {
		return
	}
	if err := store.SaveSession(p.ctx, p.snaps, p.sess); err != nil {
		p.log.WithError(err).WithField("session_id", p.sess.ID()).Warn("save session snapshot")
	}
}

func (p *PracticeScreen) entry() session.Entry {
	e, _ := p.sess.Entry(p.index)
	return e
}

// load rebuilds the widgets for the session's current question.
func (p *PracticeScreen) load() {
	var e session.Entry
	p.index, e = p.sess.Current()
	p.focus = 0
	p.notice = ""

	q := e.Question
	switch q.Type {
	case question.TypeMultipleChoice:
		labels := make([]string, len(q.Options))
		for i, o := range q.Options {
			labels[i] = o.Label
			if labels[i] == "" {
				labels[i] = o.Value
			}
		}
		p.choice = components.NewMultiChoice(labels)
		p.inputs = nil
	case question.TypeTable:
		p.inputs = make([]components.TextInput, len(q.Rows))
		for i := range p.inputs {
			p.inputs[i] = components.NewTextInput("?", 32)
			if i > 0 {
				p.inputs[i].Blur()
			}
		}
	default:
		p.inputs = []components.TextInput{components.NewTextInput("Type your answer...", 64)}
	}

	if e.Result != nil {
		p.reveal(e)
	}
}

// reveal shows the learner's answer against the expected one.
func (p *PracticeScreen) reveal(e session.Entry) {
	q := e.Question
	var given question.Response
	if q.UserAnswer != nil {
		given = *q.UserAnswer
	}
	switch q.Type {
	case question.TypeMultipleChoice:
		chosen := q.OptionIndex(given.Value)
		p.choice.Selected = max(chosen, 0)
		p.choice.Reveal(chosen, correctOption(q))
	case question.TypeTable:
		for i := range p.inputs {
			p.inputs[i].Model.SetValue(given.Cells[i])
			p.inputs[i].Mark(i < len(e.Result.Rows) && e.Result.Rows[i])
		}
	default:
		p.inputs[0].Model.SetValue(given.Value)
		p.inputs[0].Mark(e.Result.Correct)
	}
}

func (p *PracticeScreen) moveFocus(delta int) tea.Cmd {
	n := len(p.inputs)
	if n == 0 {
		return nil
	}
	p.inputs[p.focus].Blur()
	p.focus = (p.focus + delta + n) % n
	return p.inputs[p.focus].Focus()
}

func (p *PracticeScreen) focusCmd() tea.Cmd {
	if len(p.inputs) == 0 || p.entry().Result != nil {
		return nil
	}
	return p.inputs[p.focus].Focus()
}

func correctOption(q *question.Question) int {
	for i, o := range q.Options {
		if answer.Match(q.Answer, o.Value) {
			return i
		}
	}
	return -1
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
