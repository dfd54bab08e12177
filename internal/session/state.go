package session

import (
	"errors"
	"time"

	"github.com/abhisek/practicekit/internal/answer"
	"github.com/abhisek/practicekit/internal/question"
)

var (
	// ErrAlreadyAnswered is returned when a question is answered twice.
	ErrAlreadyAnswered = question.ErrAlreadyAnswered

	// ErrOutOfRange is returned for a question index outside the paper.
	ErrOutOfRange = errors.New("question index out of range")

	// ErrExpired is returned when answering after the time limit.
	ErrExpired = errors.New("session time limit has expired")

	// ErrFinished is returned when acting on a finished session.
	ErrFinished = errors.New("session is finished")

	// ErrNoRegistry is returned by Repeat when the session has no registry
	// to draw from.
	ErrNoRegistry = errors.New("session has no registry to repeat from")
)

// CellState is a question's palette state.
type CellState int

const (
	Unanswered CellState = iota
	Correct
	Incorrect
)

func (c CellState) String() string {
	switch c {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "unanswered"
	}
}

// Cell is one palette entry.
type Cell struct {
	Index   int
	State   CellState
	Current bool
}

// Entry is the runtime state of one question in the session.
type Entry struct {
	// Question is the problem shown. It carries the learner's response once
	// answered.
	Question *question.Question `json:"question"`

	// Topic is the registry topic the question was drawn from.
	Topic string `json:"topic"`

	// Result is nil until the question is answered.
	Result *answer.Result `json:"result,omitempty"`

	// Elapsed is the time spent on the question before answering.
	Elapsed time.Duration `json:"elapsed"`

	// Repeats counts fresh redraws of this slot.
	Repeats int `json:"repeats"`
}

func (e *Entry) state() CellState {
	switch {
	case e.Result == nil:
		return Unanswered
	case e.Result.Correct:
		return Correct
	default:
		return Incorrect
	}
}

// State is the serializable form of a session, used for resuming.
type State struct {
	ID        string        `json:"id"`
	PaperName string        `json:"paper_name"`
	Title     string        `json:"title"`
	Grade     string        `json:"grade"`
	TimeLimit time.Duration `json:"time_limit"`
	StartedAt time.Time     `json:"started_at"`
	Current   int           `json:"current"`
	Finished  bool          `json:"finished"`
	Entries   []Entry       `json:"entries"`
}

// StartEvent is passed to a Recorder when a session begins.
type StartEvent struct {
	SessionID string
	PaperName string
	Grade     string
	Topics    []string
	TimeLimit time.Duration
	StartedAt time.Time
}

// AnswerEvent is passed to a Recorder for every answered question.
type AnswerEvent struct {
	SessionID string
	Index     int
	Grade     string
	Topic     string
	Variant   question.Variant
	Type      question.Type
	Prompt    string
	Expected  string
	Given     string
	Correct   bool
	Elapsed   time.Duration
}
