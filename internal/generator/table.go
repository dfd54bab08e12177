package generator

import (
	"fmt"

	"github.com/abhisek/practicekit/internal/question"
)

// TableKind selects what a function table asks for.
type TableKind int

const (
	// LinearRule fills y for each x under y = mx + b.
	LinearRule TableKind = iota
	// EquivalentFractions fills equivalent fractions of a base fraction.
	EquivalentFractions
	// Coordinates fills the (x, y) point for each x under y = mx + b.
	Coordinates
)

// FunctionTable generates table-input questions with one answer cell per
// row.
type FunctionTable struct {
	Kind TableKind
	Rows int   // clamped to [2, 8]; zero means 4
	M    Range // slope
	B    Range // intercept
	X    Range // first x value
	Den  Range // base denominator for EquivalentFractions
}

func (t FunctionTable) Bind(r Rand) Generator {
	return func() *question.Question {
		rows := t.Rows
		if rows == 0 {
			rows = 4
		}
		rows = min(max(rows, 2), 8)

		if t.Kind == EquivalentFractions {
			return t.fractions(r, rows)
		}

		m := drawNonZero(r, t.M, 1)
		b := t.B.Draw(r)
		x0 := t.X.Draw(r)
		rule := ruleString(m, b)

		q := &question.Question{
			Type:    question.TypeTable,
			Variant: question.VariantTable,
			Rows:    make([]question.Row, rows),
		}
		cells := make(map[int]question.Answer, rows)
		for i := range rows {
			x := x0 + i
			y := m*x + b
			if t.Kind == Coordinates {
				q.Rows[i] = question.Row{Label: fmt.Sprintf("x = %d  →  (x, y)", x)}
				cells[i] = question.PointAt(float64(x), float64(y))
			} else {
				q.Rows[i] = question.Row{Label: fmt.Sprintf("x = %d", x)}
				cells[i] = question.Integer(y)
			}
		}
		q.Answer = question.Table(cells)
		if t.Kind == Coordinates {
			q.Prompt = fmt.Sprintf("Write the point (x, y) on %s for each x.", rule)
		} else {
			q.Prompt = fmt.Sprintf("Complete the table for %s.", rule)
		}
		q.Explanation = fmt.Sprintf("Substitute each x into %s.", rule)
		return q
	}
}

func (t FunctionTable) fractions(r Rand, rows int) *question.Question {
	d := int64(drawAtLeast(r, t.Den, 2))
	base := simplify(int64(r.IntRange(1, int(d)-1)), d)

	q := &question.Question{
		Type:        question.TypeTable,
		Variant:     question.VariantTable,
		Prompt:      fmt.Sprintf("Write a fraction equal to %s with each denominator.", base),
		Rows:        make([]question.Row, rows),
		Explanation: fmt.Sprintf("Multiply the top and bottom of %s by the same number.", base),
	}
	cells := make(map[int]question.Answer, rows)
	for i := range rows {
		k := int64(i + 2)
		q.Rows[i] = question.Row{Label: fmt.Sprintf("denominator %d", base.Den*k)}
		cells[i] = question.Frac(base.Num*k, base.Den*k)
	}
	q.Answer = question.Table(cells)
	return q
}

func ruleString(m, b int) string {
	s := "y = "
	switch m {
	case 1:
		s += "x"
	case -1:
		s += "-x"
	default:
		s += fmt.Sprintf("%dx", m)
	}
	switch {
	case b > 0:
		s += fmt.Sprintf(" + %d", b)
	case b < 0:
		s += fmt.Sprintf(" - %d", -b)
	}
	return s
}
