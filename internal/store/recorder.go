package store

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/practicekit/internal/session"
)

// Recorder writes session events to an EventRepo. Failures are logged and
// never interrupt the session.
type Recorder struct {
	events EventRepo
	log    logrus.FieldLogger
}

var _ session.Recorder = (*Recorder)(nil)

// NewRecorder returns a Recorder writing to events.
func NewRecorder(events EventRepo, log logrus.FieldLogger) *Recorder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Recorder{events: events, log: log}
}

func (r *Recorder) RecordStart(ctx context.Context, ev session.StartEvent) {
	err := r.events.AppendSessionEvent(ctx, SessionEventData{
		SessionID:     ev.SessionID,
		Action:        ActionStart,
		PaperName:     ev.PaperName,
		Grade:         ev.Grade,
		Topics:        ev.Topics,
		TimeLimitSecs: int(ev.TimeLimit.Seconds()),
	})
	if err != nil {
		r.log.WithError(err).WithField("session_id", ev.SessionID).Warn("record session start")
	}
}

func (r *Recorder) RecordAnswer(ctx context.Context, ev session.AnswerEvent) {
	err := r.events.AppendAnswerEvent(ctx, AnswerEventData{
		SessionID:     ev.SessionID,
		QuestionIndex: ev.Index,
		Grade:         ev.Grade,
		Topic:         ev.Topic,
		Variant:       string(ev.Variant),
		QuestionType:  string(ev.Type),
		QuestionText:  ev.Prompt,
		CorrectAnswer: ev.Expected,
		LearnerAnswer: ev.Given,
		Correct:       ev.Correct,
		TimeMs:        ev.Elapsed.Milliseconds(),
	})
	if err != nil {
		r.log.WithError(err).WithFields(logrus.Fields{
			"session_id": ev.SessionID,
			"index":      ev.Index,
		}).Warn("record answer")
	}
}

func (r *Recorder) RecordFinish(ctx context.Context, sum *session.Summary) {
	err := r.events.AppendSessionEvent(ctx, SessionEventData{
		SessionID:         sum.SessionID,
		Action:            ActionEnd,
		PaperName:         sum.PaperName,
		Grade:             sum.Grade,
		QuestionsServed:   sum.TotalQuestions,
		QuestionsAnswered: sum.Answered,
		CorrectAnswers:    sum.TotalCorrect,
		DurationSecs:      int(sum.Duration.Seconds()),
	})
	if err != nil {
		r.log.WithError(err).WithField("session_id", sum.SessionID).Warn("record session end")
	}
}

// SaveSession snapshots s so it can be resumed later.
func SaveSession(ctx context.Context, repo SnapshotRepo, s *session.Session) error {
	data, err := json.Marshal(s.State())
	if err != nil {
		return err
	}
	return repo.Save(ctx, &Snapshot{SessionID: s.ID(), Data: data})
}

// LoadSession restores the latest snapshot of sessionID, or of the most
// recent session when sessionID is empty. It returns nil when there is
// nothing to resume.
func LoadSession(ctx context.Context, repo SnapshotRepo, sessionID string, opts session.Options) (*session.Session, error) {
	snap, err := repo.Latest(ctx, sessionID)
	if err != nil || snap == nil {
		return nil, err
	}
	var st session.State
	if err := json.Unmarshal(snap.Data, &st); err != nil {
		return nil, err
	}
	return session.Restore(st, opts)
}
