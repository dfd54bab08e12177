package store

import (
	"context"
	"encoding/json"
	"time"
)

// Session event actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// SessionEventData captures a session lifecycle event.
type SessionEventData struct {
	SessionID string
	Action    string
	PaperName string
	Grade     string

	// Topics is the ordered topic list (on start only).
	Topics []string

	TimeLimitSecs int

	// Totals are set on end only.
	QuestionsServed   int
	QuestionsAnswered int
	CorrectAnswers    int
	DurationSecs      int
}

// AnswerEventData captures a single answered question.
type AnswerEventData struct {
	SessionID     string
	QuestionIndex int
	Grade         string
	Topic         string
	Variant       string
	QuestionType  string
	QuestionText  string
	CorrectAnswer string
	LearnerAnswer string
	Correct       bool
	TimeMs        int64
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// TopicStat aggregates answer events for one grade and topic.
type TopicStat struct {
	Grade        string
	Topic        string
	Attempted    int
	Correct      int
	LastAnswered time.Time
}

// Accuracy returns Correct over Attempted.
func (t TopicStat) Accuracy() float64 {
	if t.Attempted == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Attempted)
}

// SessionRecord is a finished session as stored by its end event.
type SessionRecord struct {
	SessionID         string
	PaperName         string
	Grade             string
	Timestamp         time.Time
	QuestionsServed   int
	QuestionsAnswered int
	CorrectAnswers    int
	DurationSecs      int
}

// LLMUsageStats aggregates LLM request events per purpose and model.
type LLMUsageStats struct {
	Purpose      string
	Model        string
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs float64
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// TopicAccuracy returns the fraction correct and the attempt count for
	// one grade and topic.
	TopicAccuracy(ctx context.Context, grade, topic string) (float64, int, error)

	// TopicStats aggregates answers per topic, weakest first. An empty
	// grade covers every grade.
	TopicStats(ctx context.Context, grade string) ([]TopicStat, error)

	// RecentSessions returns up to limit finished sessions, newest first.
	RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error)

	// LLMUsage aggregates LLM request events per purpose and model.
	LLMUsage(ctx context.Context) ([]LLMUsageStats, error)
}

// Snapshot is a point-in-time capture of one session's state, used to
// resume it.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionID string
	Data      json.RawMessage
}

// SnapshotRepo manages session snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot. Sequence and Timestamp are filled in when
	// zero.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot for sessionID, or for any
	// session when sessionID is empty. It returns nil if none exist.
	Latest(ctx context.Context, sessionID string) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}
