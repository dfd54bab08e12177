package question

import "errors"

// Type indicates how the learner answers a question.
type Type string

const (
	// TypeMultipleChoice means the learner picks one of Options.
	TypeMultipleChoice Type = "multiple_choice"

	// TypeFreeText means the learner types a single answer.
	TypeFreeText Type = "free_text"

	// TypeTable means the learner fills in one cell per table row.
	TypeTable Type = "table"
)

// Variant selects the validation mode for a question's answer shape.
type Variant string

const (
	VariantDefault    Variant = "default"
	VariantFraction   Variant = "fraction"
	VariantCoordinate Variant = "coordinate"
	VariantTable      Variant = "table"
)

// ParseVariant maps a wire name to a Variant. Unknown names map to
// VariantDefault.
func ParseVariant(s string) Variant {
	switch Variant(s) {
	case VariantFraction, VariantCoordinate, VariantTable:
		return Variant(s)
	default:
		return VariantDefault
	}
}

// ErrAlreadyAnswered is returned when a response is attached twice.
var ErrAlreadyAnswered = errors.New("question already answered")

// Option is one multiple-choice option.
type Option struct {
	// Value is compared against the canonical answer.
	Value string `json:"value"`

	// Label is the display text, e.g. "$3.50" for value "3.5".
	Label string `json:"label"`
}

// Row is one row of a table-input question.
type Row struct {
	// Label is the row's given part, e.g. "x = 3".
	Label string `json:"label"`
}

// Question is one generated problem instance.
type Question struct {
	// Type selects the answering mode.
	Type Type `json:"type"`

	// Variant selects the validation mode for Answer.
	Variant Variant `json:"variant"`

	// Prompt is the question body shown to the learner.
	Prompt string `json:"prompt"`

	// Topic is the label of the generator that produced this question.
	Topic string `json:"topic"`

	// Options is populated only for TypeMultipleChoice.
	Options []Option `json:"options,omitempty"`

	// Rows is populated only for TypeTable. Row i is answered by
	// Answer.Cells[i].
	Rows []Row `json:"rows,omitempty"`

	// Answer is the canonical correct answer.
	Answer Answer `json:"answer"`

	// Explanation is an optional worked solution.
	Explanation string `json:"explanation,omitempty"`

	// UserAnswer is nil until the learner responds.
	UserAnswer *Response `json:"userAnswer,omitempty"`
}

// Response is the learner's answer to a question.
type Response struct {
	// Value is the answer for multiple-choice and free-text questions.
	// For multiple-choice it may be the option value or its 1-based index.
	Value string `json:"value,omitempty"`

	// Cells holds table-input answers keyed by row index.
	Cells map[int]string `json:"cells,omitempty"`
}

// Respond attaches the learner's response. A question accepts exactly one
// response.
func (q *Question) Respond(r Response) error {
	if q.UserAnswer != nil {
		return ErrAlreadyAnswered
	}
	q.UserAnswer = &r
	return nil
}

// Answered reports whether a response has been attached.
func (q *Question) Answered() bool {
	return q.UserAnswer != nil
}

// OptionIndex returns the index of the option with the given value, or -1.
func (q *Question) OptionIndex(value string) int {
	for i, o := range q.Options {
		if o.Value == value {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy without the learner's response.
func (q *Question) Clone() *Question {
	c := *q
	c.UserAnswer = nil
	if q.Options != nil {
		c.Options = append([]Option(nil), q.Options...)
	}
	if q.Rows != nil {
		c.Rows = append([]Row(nil), q.Rows...)
	}
	c.Answer = q.Answer.clone()
	return &c
}
