package generator

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/practicekit/internal/answer"
	"github.com/abhisek/practicekit/internal/question"
)

func allTemplates() map[string]Template {
	return map[string]Template{
		"add mcq":          BinaryOp{Op: Add, A: R(10, 99), B: R(10, 99)},
		"add free":         BinaryOp{Op: Add, A: R(0, 9), B: R(0, 9), Format: FreeText},
		"sub":              BinaryOp{Op: Sub, A: R(0, 20), B: R(0, 20)},
		"sub negative":     BinaryOp{Op: Sub, A: R(-20, 20), B: R(0, 20), AllowNegative: true},
		"mul":              BinaryOp{Op: Mul, A: R(0, 12), B: R(0, 12)},
		"div":              BinaryOp{Op: Div, A: R(0, 12), B: R(0, 12)},
		"div zero range":   BinaryOp{Op: Div, A: R(1, 5), B: R(0, 0)},
		"count forwards":   Counting{Start: R(0, 50), Step: R(1, 1)},
		"count backwards":  Counting{Start: R(0, 5), Step: R(1, 1), Descending: true},
		"skip count":       Counting{Start: R(0, 20), Step: R(2, 10), Terms: 5, Format: FreeText},
		"compare":          Compare{A: R(0, 3)},
		"place value":      PlaceValue{Digits: R(2, 9)},
		"place value free": PlaceValue{Digits: R(3, 4), Format: FreeText},
		"add like":         Fraction{Kind: AddLike, Den: R(2, 12)},
		"add like free":    Fraction{Kind: AddLike, Den: R(0, 3), Format: FreeText},
		"add unlike":       Fraction{Kind: AddUnlike, Den: R(2, 3)},
		"equivalent":       Fraction{Kind: Equivalent, Den: R(2, 9)},
		"of quantity":      Fraction{Kind: OfQuantity, Den: R(2, 10)},
		"money total":      Money{Kind: MoneyTotal, Cents: R(5, 500)},
		"money change":     Money{Kind: MoneyChange, Cents: R(5, 999)},
		"money multiply":   Money{Kind: MoneyMultiply, Cents: R(0, 300), Format: FreeText},
		"shape":            Shape{MaxSides: 6},
		"perimeter":        Measure{Kind: Perimeter, Side: R(1, 20), Unit: "cm"},
		"area":             Measure{Kind: Area, Side: R(0, 12)},
		"point on line":    LinearEquation{Kind: PointOnLine, Coef: R(-5, 5), Value: R(-6, 6)},
		"solve for x":      LinearEquation{Kind: SolveForX, Coef: R(-9, 9), Value: R(-10, 10)},
		"function table":   FunctionTable{Kind: LinearRule, M: R(1, 5), B: R(-3, 3), X: R(0, 5)},
		"fraction table":   FunctionTable{Kind: EquivalentFractions, Rows: 3, Den: R(2, 8)},
		"coordinate table": FunctionTable{Kind: Coordinates, Rows: 12, M: R(-2, 2), B: R(0, 4), X: R(-3, 3)},
	}
}

// canonicalResponse answers q with its own canonical answer.
func canonicalResponse(q *question.Question) (question.Response, bool) {
	switch {
	case q.Answer.Kind == question.KindLine:
		return question.Response{}, false
	case q.Type == question.TypeTable:
		cells := make(map[int]string, len(q.Answer.Cells))
		for i, c := range q.Answer.Cells {
			cells[i] = c.String()
		}
		return question.Response{Cells: cells}, true
	default:
		return question.Response{Value: q.Answer.String()}, true
	}
}

func TestTemplates_ThousandDrawsAreValid(t *testing.T) {
	for name, tmpl := range allTemplates() {
		t.Run(name, func(t *testing.T) {
			gen := tmpl.Bind(NewSeeded(42))
			for i := 0; i < 1000; i++ {
				q := gen()
				q.Topic = name
				require.NoError(t, question.Validate(q), "draw %d: %+v", i, q)

				if q.Type == question.TypeMultipleChoice {
					require.GreaterOrEqual(t, len(q.Options), 3, "draw %d", i)
					correct := 0
					for _, o := range q.Options {
						if answer.Check(q, question.Response{Value: o.Value}).Correct {
							correct++
						}
					}
					require.Equal(t, 1, correct, "draw %d: exactly one option grades correct: %+v", i, q.Options)
				}

				if r, ok := canonicalResponse(q); ok {
					require.True(t, answer.Check(q, r).Correct, "draw %d: canonical answer %q", i, q.Answer)
				}
			}
		})
	}
}

func TestBinaryOp_Deterministic(t *testing.T) {
	gen := BinaryOp{Op: Add, A: R(10, 99), B: R(10, 99), Format: FreeText}.Bind(Sequence(24, 37))
	q := gen()
	assert.Equal(t, "What is 34 + 47?", q.Prompt)
	assert.Equal(t, "81", q.Answer.String())
	assert.Equal(t, question.TypeFreeText, q.Type)
	assert.Empty(t, q.Options)
}

// operands extracts a and b from "What is a op b?".
func operands(t *testing.T, prompt string) (int, int) {
	t.Helper()
	f := strings.Fields(strings.TrimSuffix(prompt, "?"))
	require.Len(t, f, 5, prompt)
	a, err := strconv.Atoi(f[2])
	require.NoError(t, err)
	b, err := strconv.Atoi(f[4])
	require.NoError(t, err)
	return a, b
}

func TestBinaryOp_OperandRange(t *testing.T) {
	r := NewSeeded(7)
	gen := BinaryOp{Op: Add, A: R(10, 99), B: R(10, 99), Format: FreeText}.Bind(r)
	for i := 0; i < 500; i++ {
		a, b := operands(t, gen().Prompt)
		assert.True(t, a >= 10 && a <= 99 && b >= 10 && b <= 99, "operands %d, %d", a, b)
	}
}

func TestBinaryOp_ExactDivision(t *testing.T) {
	gen := BinaryOp{Op: Div, A: R(1, 12), B: R(0, 12), Format: FreeText}.Bind(NewSeeded(3))
	for i := 0; i < 500; i++ {
		q := gen()
		a, b := operands(t, q.Prompt)
		require.NotZero(t, b)
		assert.Zero(t, a%b)
		assert.Equal(t, question.FormatNumber(float64(a/b)), q.Answer.Value)
	}
}

func TestSubtraction_NonNegative(t *testing.T) {
	gen := BinaryOp{Op: Sub, A: R(0, 10), B: R(0, 10)}.Bind(NewSeeded(11))
	for i := 0; i < 500; i++ {
		q := gen()
		v, ok := answer.ParseNumber(q.Answer.Value)
		require.True(t, ok)
		assert.GreaterOrEqual(t, v, 0.0)
		for _, o := range q.Options {
			ov, _ := answer.ParseNumber(o.Value)
			assert.GreaterOrEqual(t, ov, 0.0, "option %q", o.Value)
		}
	}
}

func TestCounting_Prompt(t *testing.T) {
	gen := Counting{Start: R(0, 100), Step: R(2, 2), Terms: 4, Format: FreeText}.Bind(Sequence(0, 10))
	q := gen()
	assert.Equal(t, "What comes next? 10, 12, 14, 16, __", q.Prompt)
	assert.Equal(t, "18", q.Answer.String())
}

func TestPointOnLine_AcceptsAnyPoint(t *testing.T) {
	gen := LinearEquation{Kind: PointOnLine, Coef: R(2, 2), Value: R(3, 3)}.Bind(NewSeeded(1))
	q := gen()
	assert.Equal(t, "Give any point (x, y) on the line 2x + 2y = 12.", q.Prompt)
	assert.True(t, answer.Check(q, question.Response{Value: "(3, 3)"}).Correct)
	assert.True(t, answer.Check(q, question.Response{Value: "(6, 0)"}).Correct)
	assert.False(t, answer.Check(q, question.Response{Value: "(1, 1)"}).Correct)
}

func TestFunctionTable_Rows(t *testing.T) {
	gen := FunctionTable{Kind: LinearRule, Rows: 3, M: R(2, 2), B: R(1, 1), X: R(1, 1)}.Bind(NewSeeded(1))
	q := gen()
	assert.Equal(t, "Complete the table for y = 2x + 1.", q.Prompt)
	require.Len(t, q.Rows, 3)
	assert.Equal(t, "x = 1", q.Rows[0].Label)
	assert.Equal(t, "3; 5; 7", q.Answer.String())
}

func TestGrouped(t *testing.T) {
	tests := map[int]string{
		0:       "0",
		999:     "999",
		4732:    "4,732",
		1000000: "1,000,000",
		-12345:  "-12,345",
	}
	for n, want := range tests {
		assert.Equal(t, want, Grouped(n))
	}
}
