package generator

import (
	"fmt"
	"math"
	"strings"

	"github.com/abhisek/practicekit/internal/answer"
	"github.com/abhisek/practicekit/internal/question"
)

// OptionCount is the target size of a multiple-choice option set.
const OptionCount = 4

// randomFillerAttempts bounds random filler draws before falling back to a
// deterministic walk away from the answer.
const randomFillerAttempts = 24

// optionSet accumulates options, rejecting any value equal to one already
// present. Numeric values are compared with the answer tolerance so that a
// distractor can never also grade as correct.
type optionSet struct {
	opts []question.Option
	nums []float64
	text map[string]bool
}

func newOptionSet() *optionSet {
	return &optionSet{text: make(map[string]bool)}
}

func (s *optionSet) full() bool { return len(s.opts) >= OptionCount }

func (s *optionSet) addNumber(v float64, label string) bool {
	for _, n := range s.nums {
		if answer.NumbersEqual(n, v) {
			return false
		}
	}
	s.nums = append(s.nums, v)
	s.opts = append(s.opts, question.Option{Value: question.FormatNumber(v), Label: label})
	return true
}

func (s *optionSet) addText(v string) bool {
	key := strings.ToLower(strings.TrimSpace(v))
	if key == "" || s.text[key] {
		return false
	}
	s.text[key] = true
	s.opts = append(s.opts, question.Option{Value: v, Label: v})
	return true
}

func (s *optionSet) shuffled(r Rand) []question.Option {
	r.Shuffle(len(s.opts), func(i, j int) { s.opts[i], s.opts[j] = s.opts[j], s.opts[i] })
	return s.opts
}

// NumberOptions builds a shuffled option set of OptionCount values holding
// ans exactly once. Distractors that duplicate ans or each other, or that
// fail keep, are dropped; the set is then padded with filler drawn from a
// widening range around ans. keep must accept every sufficiently large
// value. label formats each value for display; nil uses
// question.FormatNumber.
func NumberOptions(r Rand, ans float64, distractors []float64, keep func(float64) bool, label func(float64) string) []question.Option {
	if label == nil {
		label = question.FormatNumber
	}
	if keep == nil {
		keep = func(float64) bool { return true }
	}

	s := newOptionSet()
	s.addNumber(ans, label(ans))
	for _, d := range distractors {
		if s.full() {
			break
		}
		if keep(d) {
			s.addNumber(d, label(d))
		}
	}

	step := fillerStep(ans)
	width := 5
	for attempt := 0; !s.full(); attempt++ {
		var v float64
		if attempt < randomFillerAttempts {
			off := r.IntRange(1, width)
			if r.IntRange(0, 1) == 0 {
				off = -off
			}
			v = ans + float64(off)*step
		} else {
			v = ans + float64(width+attempt)*step
		}
		if (!keep(v) || !s.addNumber(v, label(v))) && width < 1<<20 {
			width *= 2
		}
	}
	return s.shuffled(r)
}

// fillerStep returns the spacing of filler values: 1 for whole numbers,
// 0.25 for quarters, 0.05 otherwise.
func fillerStep(ans float64) float64 {
	cents := int64(math.Round(ans * 100))
	switch {
	case cents%100 == 0:
		return 1
	case cents%25 == 0:
		return 0.25
	default:
		return 0.05
	}
}

// FractionOptions builds a shuffled option set for a fraction answer.
// Distractors equivalent to ans or to each other are dropped; filler
// fractions share ans's denominator and walk away from its numerator.
func FractionOptions(r Rand, ans question.Fraction, distractors []question.Fraction) []question.Option {
	s := newOptionSet()
	add := func(f question.Fraction) {
		if f.Den <= 0 || f.Num < 0 {
			return
		}
		v := float64(f.Num) / float64(f.Den)
		for _, n := range s.nums {
			if answer.NumbersEqual(n, v) {
				return
			}
		}
		s.nums = append(s.nums, v)
		s.opts = append(s.opts, question.Option{Value: f.String(), Label: f.String()})
	}

	add(ans)
	for _, d := range distractors {
		if s.full() {
			break
		}
		add(d)
	}
	den := max(ans.Den, 2)
	for k := int64(1); !s.full(); k++ {
		add(question.Fraction{Num: ans.Num + k, Den: den})
		if !s.full() && ans.Num-k > 0 {
			add(question.Fraction{Num: ans.Num - k, Den: den})
		}
	}
	return s.shuffled(r)
}

// TextOptions builds a shuffled categorical option set. Candidates are
// taken from pool in random order; the set holds ans plus up to
// OptionCount-1 distinct distractors.
func TextOptions(r Rand, ans string, pool []string) []question.Option {
	s := newOptionSet()
	s.addText(ans)

	candidates := append([]string(nil), pool...)
	r.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
	for _, c := range candidates {
		if s.full() {
			break
		}
		s.addText(c)
	}
	return s.shuffled(r)
}

// Dollars formats a dollar amount with two decimals, e.g. "$3.50".
func Dollars(v float64) string {
	return fmt.Sprintf("$%.2f", answer.Round(v))
}

// NonNegative keeps values >= 0.
func NonNegative(v float64) bool { return v >= 0 }

// Positive keeps values > 0.
func Positive(v float64) bool { return v > 0 }
