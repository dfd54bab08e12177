package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column definitions, created by ent's migration engine on Open.
// Every event table starts with the same id, sequence and timestamp columns.
// Timestamps are unix milliseconds.

const (
	sessionEventsTable = "session_events"
	answerEventsTable  = "answer_events"
	llmEventsTable     = "llm_request_events"
	snapshotsTable     = "snapshots"
)

func eventColumns(extra ...*schema.Column) []*schema.Column {
	return append([]*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
	}, extra...)
}

func eventTable(name string, cols []*schema.Column, indexed ...string) *schema.Table {
	t := &schema.Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: []*schema.Column{cols[0]},
	}
	for _, col := range append([]string{"timestamp"}, indexed...) {
		for _, c := range cols {
			if c.Name == col {
				t.Indexes = append(t.Indexes, &schema.Index{
					Name:    name + "_" + col,
					Columns: []*schema.Column{c},
				})
			}
		}
	}
	return t
}

var (
	SessionEventsTable = eventTable(sessionEventsTable, eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "paper_name", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "grade", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "topics", Type: field.TypeJSON, Nullable: true},
		&schema.Column{Name: "time_limit_secs", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "questions_served", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "questions_answered", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "correct_answers", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "duration_secs", Type: field.TypeInt, Default: 0},
	), "session_id", "action")

	AnswerEventsTable = eventTable(answerEventsTable, eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "question_index", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "grade", Type: field.TypeString},
		&schema.Column{Name: "topic", Type: field.TypeString},
		&schema.Column{Name: "variant", Type: field.TypeString},
		&schema.Column{Name: "question_type", Type: field.TypeString},
		&schema.Column{Name: "question_text", Type: field.TypeString, Size: 2048},
		&schema.Column{Name: "correct_answer", Type: field.TypeString},
		&schema.Column{Name: "learner_answer", Type: field.TypeString},
		&schema.Column{Name: "correct", Type: field.TypeBool},
		&schema.Column{Name: "time_ms", Type: field.TypeInt64, Default: 0},
	), "session_id", "topic", "grade")

	LLMRequestEventsTable = eventTable(llmEventsTable, eventColumns(
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Size: 2048, Default: ""},
	), "provider", "purpose")

	SnapshotsTable = eventTable(snapshotsTable, []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "session_id", Type: field.TypeString},
		{Name: "data", Type: field.TypeJSON},
	}, "session_id")

	// Tables lists every table the store manages.
	Tables = []*schema.Table{
		SessionEventsTable,
		AnswerEventsTable,
		LLMRequestEventsTable,
		SnapshotsTable,
	}
)
