// Package answer decides whether a learner's response matches a canonical
// answer. Every function here is total: malformed input is incorrect, never
// an error.
package answer

import (
	"math"
	"strings"

	"github.com/abhisek/practicekit/internal/question"
)

const (
	// Precision is the number of decimal places both operands are rounded
	// to before a numeric comparison.
	Precision = 2

	// Tolerance is the largest accepted difference between two rounded
	// numeric answers.
	Tolerance = 0.02

	// epsilon absorbs float error so that 0.51 vs 0.5 lands inside
	// Tolerance.
	epsilon = 1e-9
)

// TableSeparator separates rows when a table answer is written as a single
// string, e.g. "3; 5; 7".
const TableSeparator = ";"

// Round rounds v to Precision decimal places.
func Round(v float64) float64 {
	p := math.Pow(10, Precision)
	return math.Round(v*p) / p
}

// NumbersEqual reports whether a and b agree within Tolerance after
// rounding.
func NumbersEqual(a, b float64) bool {
	return math.Abs(Round(a)-Round(b)) <= Tolerance+epsilon
}

// IsCorrect compares a raw user answer with a raw canonical answer under
// variant.
//
// Both operands are parsed as numbers when possible (integer, decimal,
// "n/d", mixed number) and compared with NumbersEqual. Otherwise they are
// compared case-insensitively after trimming. The coordinate variant
// accepts a point "(3, 2)" or a line "2x + 3y = 12" as the canonical answer.
// The table variant splits both sides on TableSeparator and requires every
// row to pass.
func IsCorrect(user, canonical string, variant question.Variant) bool {
	switch variant {
	case question.VariantCoordinate:
		a, ok := parseCoordinate(canonical)
		if !ok {
			return false
		}
		return Match(a, user)
	case question.VariantTable:
		want := strings.Split(canonical, TableSeparator)
		got := strings.Split(user, TableSeparator)
		if len(want) != len(got) {
			return false
		}
		for i := range want {
			if !valuesEqual(got[i], want[i]) && !coordinatesEqual(got[i], want[i]) {
				return false
			}
		}
		return true
	default:
		return valuesEqual(user, canonical)
	}
}

// Match reports whether the user's raw input satisfies a structured
// canonical answer. Table answers never match a single string; use Check.
func Match(a question.Answer, user string) bool {
	if strings.TrimSpace(user) == "" {
		return false
	}
	switch a.Kind {
	case question.KindText, question.KindNumber:
		return valuesEqual(user, a.Value)
	case question.KindFraction:
		if a.Fraction.Den == 0 {
			return false
		}
		got, ok := ParseNumber(user)
		if !ok {
			return false
		}
		return NumbersEqual(got, float64(a.Fraction.Num)/float64(a.Fraction.Den))
	case question.KindPoint:
		p, ok := ParsePoint(user)
		if !ok {
			return false
		}
		return NumbersEqual(p.X, a.Point.X) && NumbersEqual(p.Y, a.Point.Y)
	case question.KindLine:
		if a.Line.A == 0 && a.Line.B == 0 {
			return false
		}
		p, ok := ParsePoint(user)
		if !ok {
			return false
		}
		return a.Line.Contains(question.Point{X: Round(p.X), Y: Round(p.Y)}, Tolerance+epsilon)
	default:
		return false
	}
}

func valuesEqual(user, canonical string) bool {
	u, c := normalize(user), normalize(canonical)
	if u == "" || c == "" {
		return false
	}
	un, uok := ParseNumber(u)
	cn, cok := ParseNumber(c)
	if uok && cok {
		return NumbersEqual(un, cn)
	}
	return u == c
}

func coordinatesEqual(user, canonical string) bool {
	a, ok := parseCoordinate(canonical)
	return ok && Match(a, user)
}

func parseCoordinate(s string) (question.Answer, bool) {
	if p, ok := ParsePoint(s); ok {
		return question.PointAt(p.X, p.Y), true
	}
	if l, ok := ParseLine(s); ok {
		return question.OnLine(l.A, l.B, l.C), true
	}
	return question.Answer{}, false
}
