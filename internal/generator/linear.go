package generator

import (
	"fmt"

	"github.com/abhisek/practicekit/internal/question"
)

// LinearKind selects a linear-equation question family.
type LinearKind int

const (
	// PointOnLine asks for any point on ax + by = c.
	PointOnLine LinearKind = iota
	// SolveForX asks for x in ax + b = c.
	SolveForX
)

// LinearEquation generates linear equation questions. Coef bounds the
// coefficients (zero is re-drawn) and Value bounds the hidden solution.
type LinearEquation struct {
	Kind   LinearKind
	Coef   Range
	Value  Range
	Format Format
}

func (t LinearEquation) Bind(r Rand) Generator {
	return func() *question.Question {
		if t.Kind == SolveForX {
			return t.solve(r)
		}
		return t.pointOnLine(r)
	}
}

func (t LinearEquation) pointOnLine(r Rand) *question.Question {
	a := drawNonZero(r, t.Coef, 1)
	b := drawNonZero(r, t.Coef, 1)
	x, y := t.Value.Draw(r), t.Value.Draw(r)
	c := a*x + b*y
	line := question.Line{A: float64(a), B: float64(b), C: float64(c)}

	// Any point on the line is accepted, so there are no options to offer.
	return &question.Question{
		Type:        question.TypeFreeText,
		Variant:     question.VariantCoordinate,
		Prompt:      fmt.Sprintf("Give any point (x, y) on the line %s.", line),
		Answer:      question.OnLine(line.A, line.B, line.C),
		Explanation: fmt.Sprintf("For example (%d, %d): %d × %d + %d × %d = %d.", x, y, a, x, b, y, c),
	}
}

func (t LinearEquation) solve(r Rand) *question.Question {
	a := drawNonZero(r, t.Coef, 1)
	b := t.Coef.Draw(r)
	x := t.Value.Draw(r)
	c := a*x + b

	lhs := fmt.Sprintf("%dx", a)
	switch a {
	case 1:
		lhs = "x"
	case -1:
		lhs = "-x"
	}
	switch {
	case b > 0:
		lhs += fmt.Sprintf(" + %d", b)
	case b < 0:
		lhs += fmt.Sprintf(" - %d", -b)
	}

	q := &question.Question{
		Type:        t.Format.questionType(),
		Variant:     question.VariantDefault,
		Prompt:      fmt.Sprintf("Solve for x: %s = %d", lhs, c),
		Answer:      question.Integer(x),
		Explanation: fmt.Sprintf("x = (%d - %d) ÷ %d = %d", c, b, a, x),
	}
	if t.Format == MultipleChoice {
		q.Options = NumberOptions(r, float64(x), ints(-x, x+1, x-1, c-b), nil, nil)
	}
	return q
}
