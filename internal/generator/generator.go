// Package generator produces randomized practice questions. Each template
// is a parameter struct bound to a randomness source; the bound Generator
// depends only on that source.
package generator

import (
	"github.com/abhisek/practicekit/internal/question"
)

// Generator returns a freshly randomized question on every call.
type Generator func() *question.Question

// Template is a parameterized question family.
type Template interface {
	Bind(r Rand) Generator
}

// Format selects how the learner answers a template's questions.
type Format int

const (
	MultipleChoice Format = iota
	FreeText
)

func (f Format) questionType() question.Type {
	if f == FreeText {
		return question.TypeFreeText
	}
	return question.TypeMultipleChoice
}

// Range is an inclusive integer operand range.
type Range struct {
	Min, Max int
}

// R is shorthand for Range{Min: lo, Max: hi}.
func R(lo, hi int) Range { return Range{Min: lo, Max: hi} }

// Draw returns a uniform value in the range.
func (rg Range) Draw(r Rand) int { return r.IntRange(rg.Min, rg.Max) }

// maxRedraws bounds re-draws when a draw is unusable, e.g. a zero divisor.
const maxRedraws = 16

// drawNonZero draws from rg, re-drawing on zero. If the range only holds
// zero it returns fallback.
func drawNonZero(r Rand, rg Range, fallback int) int {
	for i := 0; i < maxRedraws; i++ {
		if v := rg.Draw(r); v != 0 {
			return v
		}
	}
	return fallback
}

// drawAtLeast draws from rg, re-drawing while the value is below floor.
// It falls back to floor.
func drawAtLeast(r Rand, rg Range, floor int) int {
	for i := 0; i < maxRedraws; i++ {
		if v := rg.Draw(r); v >= floor {
			return v
		}
	}
	return floor
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// simplify reduces n/d to lowest terms with a positive denominator.
func simplify(n, d int64) question.Fraction {
	if d < 0 {
		n, d = -n, -d
	}
	if g := gcd(n, d); g > 1 {
		n, d = n/g, d/g
	}
	return question.Fraction{Num: n, Den: d}
}

func ints(vs ...int) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = float64(v)
	}
	return out
}
