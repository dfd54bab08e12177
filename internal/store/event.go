package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with ent's SQL builder and the global
// sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	if data.SessionID == "" || data.Action == "" {
		return errors.New("session event needs a session id and an action")
	}
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	var topics any
	if len(data.Topics) > 0 {
		b, err := json.Marshal(data.Topics)
		if err != nil {
			return fmt.Errorf("marshal topics: %w", err)
		}
		topics = string(b)
	}

	query, args := builder().Insert(sessionEventsTable).
		Columns("sequence", "timestamp", "session_id", "action", "paper_name", "grade", "topics",
			"time_limit_secs", "questions_served", "questions_answered", "correct_answers", "duration_secs").
		Values(seqNum, toMillis(time.Now()), data.SessionID, data.Action, data.PaperName, data.Grade, topics,
			data.TimeLimitSecs, data.QuestionsServed, data.QuestionsAnswered, data.CorrectAnswers, data.DurationSecs).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	if data.SessionID == "" || data.Topic == "" {
		return errors.New("answer event needs a session id and a topic")
	}
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(answerEventsTable).
		Columns("sequence", "timestamp", "session_id", "question_index", "grade", "topic", "variant",
			"question_type", "question_text", "correct_answer", "learner_answer", "correct", "time_ms").
		Values(seqNum, toMillis(time.Now()), data.SessionID, data.QuestionIndex, data.Grade, data.Topic, data.Variant,
			data.QuestionType, data.QuestionText, data.CorrectAnswer, data.LearnerAnswer, data.Correct, data.TimeMs).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(llmEventsTable).
		Columns("sequence", "timestamp", "provider", "model", "purpose", "input_tokens", "output_tokens",
			"latency_ms", "success", "error_message").
		Values(seqNum, toMillis(time.Now()), data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
			data.LatencyMs, data.Success, data.ErrorMessage).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) TopicAccuracy(ctx context.Context, grade, topic string) (float64, int, error) {
	query, args := builder().
		Select(entsql.Count("*"), entsql.Sum("correct")).
		From(builder().Table(answerEventsTable)).
		Where(entsql.And(entsql.EQ("grade", grade), entsql.EQ("topic", topic))).
		Query()

	var (
		attempts int
		correct  sql.NullInt64
	)
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&attempts, &correct); err != nil {
		return 0, 0, fmt.Errorf("query topic accuracy: %w", err)
	}
	if attempts == 0 {
		return 0, 0, nil
	}
	return float64(correct.Int64) / float64(attempts), attempts, nil
}

func (r *eventRepo) TopicStats(ctx context.Context, grade string) ([]TopicStat, error) {
	sel := builder().
		Select("grade", "topic",
			entsql.As(entsql.Count("*"), "attempted"),
			entsql.As(entsql.Sum("correct"), "correct_count"),
			entsql.As(entsql.Max("timestamp"), "last_ms")).
		From(builder().Table(answerEventsTable)).
		GroupBy("grade", "topic")
	if grade != "" {
		sel.Where(entsql.EQ("grade", grade))
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query topic stats: %w", err)
	}
	defer rows.Close()

	var stats []TopicStat
	for rows.Next() {
		var (
			ts      TopicStat
			correct sql.NullInt64
			lastMs  sql.NullInt64
		)
		if err := rows.Scan(&ts.Grade, &ts.Topic, &ts.Attempted, &correct, &lastMs); err != nil {
			return nil, fmt.Errorf("scan topic stats: %w", err)
		}
		ts.Correct = int(correct.Int64)
		if lastMs.Valid {
			ts.LastAnswered = fromMillis(lastMs.Int64)
		}
		stats = append(stats, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate topic stats: %w", err)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		ai, aj := stats[i].Accuracy(), stats[j].Accuracy()
		if ai != aj {
			return ai < aj
		}
		if stats[i].Attempted != stats[j].Attempted {
			return stats[i].Attempted > stats[j].Attempted
		}
		return stats[i].Topic < stats[j].Topic
	})
	return stats, nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	sel := builder().
		Select("session_id", "paper_name", "grade", "timestamp",
			"questions_served", "questions_answered", "correct_answers", "duration_secs").
		From(builder().Table(sessionEventsTable)).
		Where(entsql.EQ("action", ActionEnd)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recent sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var (
			rec SessionRecord
			ms  int64
		)
		if err := rows.Scan(&rec.SessionID, &rec.PaperName, &rec.Grade, &ms,
			&rec.QuestionsServed, &rec.QuestionsAnswered, &rec.CorrectAnswers, &rec.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.Timestamp = fromMillis(ms)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

func (r *eventRepo) LLMUsage(ctx context.Context) ([]LLMUsageStats, error) {
	query, args := builder().
		Select("purpose", "model",
			entsql.As(entsql.Count("*"), "requests"),
			entsql.As(entsql.Sum("success"), "succeeded"),
			entsql.As(entsql.Sum("input_tokens"), "input"),
			entsql.As(entsql.Sum("output_tokens"), "output"),
			entsql.As(entsql.Avg("latency_ms"), "avg_latency")).
		From(builder().Table(llmEventsTable)).
		GroupBy("purpose", "model").
		OrderBy("purpose", "model").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage: %w", err)
	}
	defer rows.Close()

	var out []LLMUsageStats
	for rows.Next() {
		var (
			u                        LLMUsageStats
			succeeded, input, output sql.NullInt64
			latency                  sql.NullFloat64
		)
		if err := rows.Scan(&u.Purpose, &u.Model, &u.Requests, &succeeded, &input, &output, &latency); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		u.Failures = u.Requests - int(succeeded.Int64)
		u.InputTokens = int(input.Int64)
		u.OutputTokens = int(output.Int64)
		u.AvgLatencyMs = latency.Float64
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate LLM usage: %w", err)
	}
	return out, nil
}
