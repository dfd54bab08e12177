package answer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/practicekit/internal/question"
)

func TestCheck_MultipleChoice(t *testing.T) {
	q := &question.Question{
		Type:   question.TypeMultipleChoice,
		Prompt: "A pen costs $1.25 and a pad $2.25. Total?",
		Topic:  "Money / Adding Prices",
		Options: []question.Option{
			{Value: "3", Label: "$3.00"},
			{Value: "3.5", Label: "$3.50"},
			{Value: "4", Label: "$4.00"},
			{Value: "2.5", Label: "$2.50"},
		},
		Answer: question.Number(3.5),
	}

	tests := []struct {
		input string
		want  bool
	}{
		{"3.5", true},
		{"$3.50", true},
		{"2", true},
		{"1", false},
		{"4", false},
		{"9", false},
		{"", false},
	}
	for _, tc := range tests {
		got := Check(q, question.Response{Value: tc.input})
		assert.Equal(t, tc.want, got.Correct, "input %q", tc.input)
		assert.Equal(t, "3.5", got.Expected)
	}
}

func TestCheck_FreeText(t *testing.T) {
	q := &question.Question{
		Type:    question.TypeFreeText,
		Variant: question.VariantCoordinate,
		Answer:  question.OnLine(2, 3, 12),
	}
	assert.True(t, Check(q, question.Response{Value: "(3, 2)"}).Correct)
	assert.False(t, Check(q, question.Response{Value: "(1, 1)"}).Correct)
}

func TestCheck_Table(t *testing.T) {
	q := &question.Question{
		Type:    question.TypeTable,
		Variant: question.VariantTable,
		Rows:    []question.Row{{Label: "x = 1"}, {Label: "x = 2"}, {Label: "x = 3"}},
		Answer: question.Table(map[int]question.Answer{
			0: question.Integer(3),
			1: question.Frac(5, 2),
			2: question.PointAt(3, 7),
		}),
	}

	all := Check(q, question.Response{Cells: map[int]string{0: "3", 1: "2.5", 2: "(3, 7)"}})
	assert.True(t, all.Correct)
	assert.Equal(t, []bool{true, true, true}, all.Rows)

	partial := Check(q, question.Response{Cells: map[int]string{0: "3", 2: "(7, 3)"}})
	assert.False(t, partial.Correct)
	assert.Equal(t, []bool{true, false, false}, partial.Rows)
}

func TestCheck_TableWithoutCells(t *testing.T) {
	q := &question.Question{
		Type:   question.TypeTable,
		Rows:   []question.Row{{Label: "x = 1"}},
		Answer: question.Integer(3),
	}
	assert.False(t, Check(q, question.Response{Cells: map[int]string{0: "3"}}).Correct)
}
