// Package session runs a practice or quiz session over an assembled paper:
// navigation, one-shot answering, the optional countdown, repeats and the
// closing summary.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/practicekit/internal/answer"
	"github.com/abhisek/practicekit/internal/paper"
	"github.com/abhisek/practicekit/internal/question"
	"github.com/abhisek/practicekit/internal/registry"
)

// Recorder receives session lifecycle and answer events. Implementations
// handle their own failures; the session never blocks on them.
type Recorder interface {
	RecordStart(ctx context.Context, ev StartEvent)
	RecordAnswer(ctx context.Context, ev AnswerEvent)
	RecordFinish(ctx context.Context, sum *Summary)
}

// Options configures a session.
type Options struct {
	// Registry is used by Repeat. Nil disables repeats.
	Registry *registry.Registry

	// Recorder receives events. Nil disables recording.
	Recorder Recorder

	// Clock overrides time.Now.
	Clock func() time.Time

	// TimeLimit overrides the paper's time limit when positive.
	TimeLimit time.Duration
}

// Session is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	id        string
	paperName string
	title     string
	grade     string
	timeLimit time.Duration
	startedAt time.Time

	entries  []Entry
	current  int
	shownAt  time.Time
	finished bool
	summary  *Summary

	reg      *registry.Registry
	recorder Recorder
	now      func() time.Time
}

// New starts a session over p.
func New(ctx context.Context, p *paper.Paper, opts Options) (*Session, error) {
	if p == nil || len(p.Questions) == 0 {
		return nil, fmt.Errorf("new session: paper has no questions")
	}

	s := newSession(opts)
	s.id = uuid.NewString()
	s.paperName = p.Name
	s.title = p.Title
	s.grade = p.Grade
	s.timeLimit = p.TimeLimit
	if opts.TimeLimit > 0 {
		s.timeLimit = opts.TimeLimit
	}
	s.startedAt = s.now()
	s.shownAt = s.startedAt

	topics := make([]string, len(p.Questions))
	s.entries = make([]Entry, len(p.Questions))
	for i, q := range p.Questions {
		topic := q.Topic
		if i < len(p.Resolutions) && p.Resolutions[i].Topic != "" {
			topic = p.Resolutions[i].Topic
		}
		s.entries[i] = Entry{Question: q, Topic: topic}
		topics[i] = topic
	}

	if s.recorder != nil {
		s.recorder.RecordStart(ctx, StartEvent{
			SessionID: s.id,
			PaperName: s.paperName,
			Grade:     s.grade,
			Topics:    topics,
			TimeLimit: s.timeLimit,
			StartedAt: s.startedAt,
		})
	}
	return s, nil
}

// Restore resumes a session from a snapshot taken with State.
func Restore(st State, opts Options) (*Session, error) {
	if len(st.Entries) == 0 {
		return nil, fmt.Errorf("restore session %s: no questions", st.ID)
	}
	if st.Current < 0 || st.Current >= len(st.Entries) {
		return nil, fmt.Errorf("restore session %s: %w", st.ID, ErrOutOfRange)
	}
	s := newSession(opts)
	s.id = st.ID
	s.paperName = st.PaperName
	s.title = st.Title
	s.grade = st.Grade
	s.timeLimit = st.TimeLimit
	s.startedAt = st.StartedAt
	s.current = st.Current
	s.finished = st.Finished
	s.entries = append([]Entry(nil), st.Entries...)
	s.shownAt = s.now()
	return s, nil
}

func newSession(opts Options) *Session {
	s := &Session{
		reg:      opts.Registry,
		recorder: opts.Recorder,
		now:      opts.Clock,
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// ID returns the session's UUID.
func (s *Session) ID() string { return s.id }

// Title returns the paper title.
func (s *Session) Title() string { return s.title }

// Grade returns the grade the paper was assembled for.
func (s *Session) Grade() string { return s.grade }

// Len returns the number of questions.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Index returns the current question index.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Current returns the current question index and entry.
func (s *Session) Current() (int, Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.entries[s.current]
}

// Entry returns the entry at i.
func (s *Session) Entry(i int) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.entries) {
		return Entry{}, ErrOutOfRange
	}
	return s.entries[i], nil
}

// Goto moves to question i.
func (s *Session) Goto(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.entries) {
		return ErrOutOfRange
	}
	s.moveLocked(i)
	return nil
}

// Next moves forward one question. It reports false at the last question.
func (s *Session) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current+1 >= len(s.entries) {
		return false
	}
	s.moveLocked(s.current + 1)
	return true
}

// Prev moves back one question. It reports false at the first question.
func (s *Session) Prev() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == 0 {
		return false
	}
	s.moveLocked(s.current - 1)
	return true
}

// NextUnanswered moves to the first unanswered question after the current
// one, wrapping around. It reports false when every question is answered.
func (s *Session) NextUnanswered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.entries)
	for step := 1; step <= n; step++ {
		i := (s.current + step) % n
		if s.entries[i].Result == nil {
			s.moveLocked(i)
			return true
		}
	}
	return false
}

func (s *Session) moveLocked(i int) {
	if i != s.current {
		s.current = i
		s.shownAt = s.now()
	}
}

// Answer grades r against question i and records it. Each question
// accepts one answer, and none once the time limit has passed.
func (s *Session) Answer(ctx context.Context, i int, r question.Response) (answer.Result, error) {
	s.mu.Lock()
	if err := s.checkOpenLocked(); err != nil {
		s.mu.Unlock()
		return answer.Result{}, err
	}
	if i < 0 || i >= len(s.entries) {
		s.mu.Unlock()
		return answer.Result{}, ErrOutOfRange
	}
	e := &s.entries[i]
	if err := e.Question.Respond(r); err != nil {
		s.mu.Unlock()
		return answer.Result{}, err
	}

	res := answer.Check(e.Question, r)
	e.Result = &res
	if i == s.current {
		e.Elapsed = s.now().Sub(s.shownAt)
	}
	ev := AnswerEvent{
		SessionID: s.id,
		Index:     i,
		Grade:     s.grade,
		Topic:     e.Topic,
		Variant:   e.Question.Variant,
		Type:      e.Question.Type,
		Prompt:    e.Question.Prompt,
		Expected:  res.Expected,
		Given:     answer.ResponseText(e.Question, r),
		Correct:   res.Correct,
		Elapsed:   e.Elapsed,
	}
	s.mu.Unlock()

	if s.recorder != nil {
		s.recorder.RecordAnswer(ctx, ev)
	}
	return res, nil
}

// Repeat replaces question i with a fresh draw from the same topic.
func (s *Session) Repeat(i int) (*question.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpenLocked(); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(s.entries) {
		return nil, ErrOutOfRange
	}
	if s.reg == nil {
		return nil, ErrNoRegistry
	}
	e := &s.entries[i]
	q, _, err := s.reg.Generate(e.Topic)
	if err != nil {
		return nil, fmt.Errorf("repeat %q: %w", e.Topic, err)
	}
	e.Question = q
	e.Result = nil
	e.Elapsed = 0
	e.Repeats++
	if i == s.current {
		s.shownAt = s.now()
	}
	return q, nil
}

func (s *Session) checkOpenLocked() error {
	if s.finished {
		return ErrFinished
	}
	if s.expiredLocked() {
		return ErrExpired
	}
	return nil
}

// Palette returns one cell per question in paper order.
func (s *Session) Palette() []Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	cells := make([]Cell, len(s.entries))
	for i := range s.entries {
		cells[i] = Cell{Index: i, State: s.entries[i].state(), Current: i == s.current}
	}
	return cells
}

// Timed reports whether the session has a time limit.
func (s *Session) Timed() bool {
	return s.timeLimit > 0
}

// Remaining returns the time left. Untimed sessions report zero.
func (s *Session) Remaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timeLimit <= 0 {
		return 0
	}
	left := s.timeLimit - s.now().Sub(s.startedAt)
	return max(left, 0)
}

// Expired reports whether the time limit has passed.
func (s *Session) Expired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiredLocked()
}

func (s *Session) expiredLocked() bool {
	return s.timeLimit > 0 && !s.now().Before(s.startedAt.Add(s.timeLimit))
}

// Finished reports whether Finish has been called.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// Finish closes the session and returns its summary. Later calls return
// the same summary.
func (s *Session) Finish(ctx context.Context) *Summary {
	s.mu.Lock()
	if s.finished && s.summary != nil {
		sum := s.summary
		s.mu.Unlock()
		return sum
	}
	s.finished = true
	s.summary = s.buildSummaryLocked()
	sum := s.summary
	s.mu.Unlock()

	if s.recorder != nil {
		s.recorder.RecordFinish(ctx, sum)
	}
	return sum
}

// State returns a snapshot suitable for Restore.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		ID:        s.id,
		PaperName: s.paperName,
		Title:     s.title,
		Grade:     s.grade,
		TimeLimit: s.timeLimit,
		StartedAt: s.startedAt,
		Current:   s.current,
		Finished:  s.finished,
		Entries:   append([]Entry(nil), s.entries...),
	}
}
