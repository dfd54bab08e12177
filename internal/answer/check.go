package answer

import (
	"strconv"
	"strings"

	"github.com/abhisek/practicekit/internal/question"
)

// Result is the outcome of checking one response against one question.
type Result struct {
	Correct bool `json:"correct"`

	// Rows holds per-row correctness for table questions.
	Rows []bool `json:"rows,omitempty"`

	// Expected is the canonical answer in display form.
	Expected string `json:"expected"`
}

// Check grades r against q. Multiple-choice responses may name the option
// value or its 1-based position. Table questions are correct only when
// every row is.
func Check(q *question.Question, r question.Response) Result {
	res := Result{Expected: q.Answer.String()}
	switch q.Type {
	case question.TypeMultipleChoice:
		res.Correct = Match(q.Answer, resolveOption(q, r.Value))
	case question.TypeTable:
		if q.Answer.Kind != question.KindTable || len(q.Rows) == 0 {
			return res
		}
		res.Rows = make([]bool, len(q.Rows))
		res.Correct = true
		for i := range q.Rows {
			want, ok := q.Answer.Cells[i]
			res.Rows[i] = ok && Match(want, r.Cells[i])
			res.Correct = res.Correct && res.Rows[i]
		}
	default:
		res.Correct = Match(q.Answer, r.Value)
	}
	return res
}

// CorrectOptions counts the options of q that grade as correct. A
// well-formed multiple-choice question has exactly one.
func CorrectOptions(q *question.Question) int {
	n := 0
	for _, o := range q.Options {
		if Match(q.Answer, o.Value) {
			n++
		}
	}
	return n
}

// resolveOption maps a 1-based index to its option value unless the input
// already names an option.
func resolveOption(q *question.Question, in string) string {
	in = strings.TrimSpace(in)
	for _, o := range q.Options {
		if normalize(o.Value) == normalize(in) || normalize(o.Label) == normalize(in) {
			return o.Value
		}
	}
	if idx, err := strconv.Atoi(in); err == nil && idx >= 1 && idx <= len(q.Options) {
		return q.Options[idx-1].Value
	}
	return in
}

// ResponseText renders r as one line: the value, or table cells in row
// order joined by TableSeparator.
func ResponseText(q *question.Question, r question.Response) string {
	if q.Type != question.TypeTable {
		return strings.TrimSpace(r.Value)
	}
	cells := make([]string, len(q.Rows))
	for i := range q.Rows {
		cells[i] = strings.TrimSpace(r.Cells[i])
	}
	return strings.Join(cells, TableSeparator+" ")
}
