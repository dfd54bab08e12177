package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/practicekit/internal/paper"
	"github.com/abhisek/practicekit/internal/question"
	"github.com/abhisek/practicekit/internal/registry"
	"github.com/abhisek/practicekit/internal/session"
	"github.com/abhisek/practicekit/internal/store"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeRecorder struct {
	answers  []session.AnswerEvent
	finishes int
}

func (r *fakeRecorder) RecordStart(context.Context, session.StartEvent) {}
func (r *fakeRecorder) RecordAnswer(_ context.Context, ev session.AnswerEvent) {
	r.answers = append(r.answers, ev)
}
func (r *fakeRecorder) RecordFinish(context.Context, *session.Summary) { r.finishes++ }

type fakeSnapshots struct {
	saved []*store.Snapshot
}

func (f *fakeSnapshots) Save(_ context.Context, snap *store.Snapshot) error {
	f.saved = append(f.saved, snap)
	return nil
}

func (f *fakeSnapshots) Latest(context.Context, string) (*store.Snapshot, error) {
	if len(f.saved) == 0 {
		return nil, nil
	}
	return f.saved[len(f.saved)-1], nil
}

func (f *fakeSnapshots) Prune(context.Context, int) error { return nil }

func testPaper(limit time.Duration) *paper.Paper {
	return &paper.Paper{
		Name:      "mixed",
		Title:     "Mixed Review",
		Grade:     "3",
		TimeLimit: limit,
		Questions: []*question.Question{
			{
				Type: question.TypeFreeText, Variant: question.VariantDefault,
				Prompt: "What is 2 + 2?", Topic: "Addition / Facts",
				Answer: question.Integer(4), Explanation: "2 + 2 = 4",
			},
			{
				Type: question.TypeMultipleChoice, Variant: question.VariantDefault,
				Prompt: "Which shape has 3 sides?", Topic: "Geometry / Shapes",
				Options: []question.Option{
					{Value: "Square", Label: "Square"},
					{Value: "Triangle", Label: "Triangle"},
					{Value: "Pentagon", Label: "Pentagon"},
				},
				Answer: question.Text("Triangle"),
			},
			{
				Type: question.TypeTable, Variant: question.VariantTable,
				Prompt: "Complete the table for y = 2x + 1.", Topic: "Functions / Tables",
				Rows:   []question.Row{{Label: "x = 1"}, {Label: "x = 2"}},
				Answer: question.Table(map[int]question.Answer{0: question.Integer(3), 1: question.Integer(5)}),
			},
		},
	}
}

type fixture struct {
	screen *PracticeScreen
	sess   *session.Session
	rec    *fakeRecorder
	snaps  *fakeSnapshots
	clock  *fakeClock
}

func newFixture(t *testing.T, limit time.Duration, reg *registry.Registry) fixture {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	rec := &fakeRecorder{}
	sess, err := session.New(context.Background(), testPaper(limit), session.Options{
		Registry: reg,
		Recorder: rec,
		Clock:    clock.Now,
	})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	snaps := &fakeSnapshots{}
	p := newPracticeScreen(context.Background(), Options{Session: sess, Snapshots: snaps})
	return fixture{screen: p, sess: sess, rec: rec, snaps: snaps, clock: clock}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

func send(scr Screen, msgs ...tea.Msg) (Screen, tea.Cmd) {
	var cmd tea.Cmd
	for _, m := range msgs {
		scr, cmd = scr.Update(m)
	}
	return scr, cmd
}

func TestPracticeScreen_FreeTextAnswer(t *testing.T) {
	f := newFixture(t, 0, nil)

	send(f.screen, keyPress('4'), specialKey(tea.KeyEnter))

	e := f.screen.entry()
	if e.Result == nil || !e.Result.Correct {
		t.Fatalf("expected a correct result, got %+v", e.Result)
	}
	if len(f.rec.answers) != 1 || f.rec.answers[0].Given != "4" {
		t.Errorf("recorded answers = %+v", f.rec.answers)
	}
	if len(f.snaps.saved) != 1 {
		t.Errorf("snapshots = %d, want 1", len(f.snaps.saved))
	}
	if !strings.Contains(f.screen.View(100, 30), "Correct!") {
		t.Error("expected feedback in view")
	}

	// Enter on an answered question moves to the next open one.
	send(f.screen, specialKey(tea.KeyEnter))
	if f.screen.index != 1 {
		t.Errorf("index = %d, want 1", f.screen.index)
	}
}

func TestPracticeScreen_EmptySubmit(t *testing.T) {
	f := newFixture(t, 0, nil)

	send(f.screen, specialKey(tea.KeyEnter))

	if f.screen.entry().Result != nil {
		t.Error("empty input must not be graded")
	}
	if f.screen.notice == "" {
		t.Error("expected a notice")
	}
}

func TestPracticeScreen_WrongAnswerShowsExpected(t *testing.T) {
	f := newFixture(t, 0, nil)

	send(f.screen, keyPress('5'), specialKey(tea.KeyEnter))

	e := f.screen.entry()
	if e.Result == nil || e.Result.Correct {
		t.Fatalf("expected an incorrect result, got %+v", e.Result)
	}
	if !strings.Contains(f.screen.View(100, 30), "Answer: 4") {
		t.Error("expected the correct answer in view")
	}

	// Answered questions ignore further typing.
	send(f.screen, keyPress('9'))
	if got := f.screen.inputs[0].Value(); got != "5" {
		t.Errorf("input = %q, want 5", got)
	}
}

func TestPracticeScreen_MultipleChoice(t *testing.T) {
	f := newFixture(t, 0, nil)

	send(f.screen, specialKey(tea.KeyRight))
	if f.screen.index != 1 {
		t.Fatalf("index = %d, want 1", f.screen.index)
	}

	send(f.screen, keyPress('3'), specialKey(tea.KeyUp))
	if f.screen.choice.Selected != 1 {
		t.Fatalf("selected = %d, want 1", f.screen.choice.Selected)
	}

	send(f.screen, specialKey(tea.KeyEnter))
	e := f.screen.entry()
	if e.Result == nil || !e.Result.Correct {
		t.Fatalf("expected a correct result, got %+v", e.Result)
	}
	if f.rec.answers[0].Given != "Triangle" {
		t.Errorf("given = %q, want Triangle", f.rec.answers[0].Given)
	}
	if !f.screen.choice.Revealed() {
		t.Error("expected options to be revealed")
	}
}

func TestPracticeScreen_Table(t *testing.T) {
	f := newFixture(t, 0, nil)
	send(f.screen, specialKey(tea.KeyRight), specialKey(tea.KeyRight))
	if f.screen.index != 2 {
		t.Fatalf("index = %d, want 2", f.screen.index)
	}

	send(f.screen, keyPress('3'), specialKey(tea.KeyEnter))
	if f.screen.entry().Result != nil {
		t.Fatal("partial table must not be graded")
	}

	send(f.screen, specialKey(tea.KeyTab), keyPress('6'), specialKey(tea.KeyEnter))
	e := f.screen.entry()
	if e.Result == nil {
		t.Fatal("expected a result")
	}
	if e.Result.Correct {
		t.Error("second row is wrong")
	}
	if len(e.Result.Rows) != 2 || !e.Result.Rows[0] || e.Result.Rows[1] {
		t.Errorf("rows = %v, want [true false]", e.Result.Rows)
	}
	if f.rec.answers[0].Given != "3; 6" {
		t.Errorf("given = %q", f.rec.answers[0].Given)
	}
}

func TestPracticeScreen_Navigation(t *testing.T) {
	f := newFixture(t, 0, nil)

	send(f.screen, specialKey(tea.KeyLeft))
	if f.screen.index != 0 {
		t.Errorf("left at start: index = %d", f.screen.index)
	}
	send(f.screen, specialKey(tea.KeyRight), specialKey(tea.KeyRight), specialKey(tea.KeyRight))
	if f.screen.index != 2 {
		t.Errorf("right at end: index = %d", f.screen.index)
	}
	send(f.screen, specialKey(tea.KeyLeft))
	if f.screen.index != 1 {
		t.Errorf("index = %d, want 1", f.screen.index)
	}
}

func TestPracticeScreen_Repeat(t *testing.T) {
	reg := registry.New("3")
	if err := reg.Register("Addition / Facts", func() *question.Question {
		return &question.Question{
			Type: question.TypeFreeText, Variant: question.VariantDefault,
			Prompt: "What is 1 + 1?", Answer: question.Integer(2),
		}
	}); err != nil {
		t.Fatal(err)
	}
	f := newFixture(t, 0, reg)

	send(f.screen, keyPress('7'), ctrl('r'))

	e := f.screen.entry()
	if e.Question.Prompt != "What is 1 + 1?" {
		t.Errorf("prompt = %q", e.Question.Prompt)
	}
	if f.screen.inputs[0].Value() != "" {
		t.Error("expected a cleared input")
	}

	send(f.screen, keyPress('2'), specialKey(tea.KeyEnter))
	if r := f.screen.entry().Result; r == nil || !r.Correct {
		t.Errorf("repeat answer result = %+v", r)
	}
}

func TestPracticeScreen_RepeatWithoutRegistry(t *testing.T) {
	f := newFixture(t, 0, nil)
	send(f.screen, ctrl('r'))
	if !strings.HasPrefix(f.screen.notice, "Cannot repeat") {
		t.Errorf("notice = %q", f.screen.notice)
	}
}

func TestPracticeScreen_FinishConfirm(t *testing.T) {
	f := newFixture(t, 0, nil)

	send(f.screen, specialKey(tea.KeyEscape))
	if !f.screen.confirming {
		t.Fatal("expected confirmation")
	}
	send(f.screen, keyPress('n'))
	if f.screen.confirming || f.sess.Finished() {
		t.Fatal("expected to keep going")
	}

	_, cmd := send(f.screen, specialKey(tea.KeyEscape), keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(replaceScreenMsg)
	if !ok {
		t.Fatalf("msg = %T, want replaceScreenMsg", cmd())
	}
	if _, ok := msg.Screen.(*SummaryScreen); !ok {
		t.Errorf("screen = %T", msg.Screen)
	}
	if !f.sess.Finished() || f.rec.finishes != 1 {
		t.Error("expected the session to be finished and recorded")
	}
}

func TestPracticeScreen_TimerExpiry(t *testing.T) {
	f := newFixture(t, time.Minute, nil)

	if !strings.Contains(f.screen.Status(), "1:00") {
		t.Errorf("status = %q", f.screen.Status())
	}

	_, cmd := f.screen.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("expected the next tick")
	}

	f.clock.Advance(2 * time.Minute)
	_, cmd = f.screen.Update(tickMsg(time.Now()))
	if _, ok := cmd().(finishMsg); !ok {
		t.Fatal("expected finish after expiry")
	}

	_, cmd = f.screen.Update(finishMsg{})
	msg := cmd().(replaceScreenMsg)
	sum := msg.Screen.(*SummaryScreen).sum
	if !sum.Expired {
		t.Error("expected an expired summary")
	}
	if sum.Duration != time.Minute {
		t.Errorf("duration = %v, want capped at 1m", sum.Duration)
	}
}

func TestPracticeScreen_AnswerAllThenFinish(t *testing.T) {
	f := newFixture(t, 0, nil)

	send(f.screen, keyPress('4'), specialKey(tea.KeyEnter), specialKey(tea.KeyEnter))
	send(f.screen, keyPress('2'), specialKey(tea.KeyEnter), specialKey(tea.KeyEnter))
	send(f.screen, keyPress('3'), specialKey(tea.KeyTab), keyPress('5'), specialKey(tea.KeyEnter))

	_, cmd := send(f.screen, specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected finish command")
	}
	msg := cmd().(replaceScreenMsg)
	sum := msg.Screen.(*SummaryScreen).sum
	if sum.TotalCorrect != 3 || sum.Answered != 3 {
		t.Errorf("summary = %+v", sum)
	}
	view := msg.Screen.View(100, 30)
	for _, want := range []string{"Session complete!", "Addition / Facts", "Geometry / Shapes"} {
		if !strings.Contains(view, want) {
			t.Errorf("summary view missing %q", want)
		}
	}
}

func TestSummaryScreen_Quit(t *testing.T) {
	s := newSummaryScreen(&session.Summary{Grade: "3", TotalQuestions: 1})
	if s.Status() != "Grade 3" {
		t.Errorf("status = %q", s.Status())
	}
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("msg = %T, want tea.QuitMsg", cmd())
	}
}

func TestApp_Routing(t *testing.T) {
	f := newFixture(t, 0, nil)
	a := New(context.Background(), Options{Session: f.sess})

	m, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	a = m.(App)
	if v := a.View(); !v.AltScreen {
		t.Error("expected alt screen")
	}

	m, _ = a.Update(replaceScreenMsg{Screen: newSummaryScreen(f.sess.Finish(context.Background()))})
	a = m.(App)
	if _, ok := a.screens.active().(*SummaryScreen); !ok {
		t.Errorf("active = %T", a.screens.active())
	}

	_, cmd := a.Update(ctrl('c'))
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}
