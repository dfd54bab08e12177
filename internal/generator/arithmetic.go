package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/practicekit/internal/question"
)

// Op is a binary arithmetic operation.
type Op int

const (
	Add Op = iota
	Sub
	Mul
	Div
)

// Symbol returns the operator as printed in prompts.
func (o Op) Symbol() string {
	switch o {
	case Sub:
		return "-"
	case Mul:
		return "×"
	case Div:
		return "÷"
	default:
		return "+"
	}
}

// BinaryOp asks for the result of "a op b". For Div, A is the quotient
// range and B the divisor range, so every division is exact.
type BinaryOp struct {
	Op     Op
	A, B   Range
	Format Format

	// AllowNegative permits subtraction below zero. Without it the
	// operands are swapped so the difference is non-negative.
	AllowNegative bool
}

func (t BinaryOp) Bind(r Rand) Generator {
	return func() *question.Question {
		a, b := t.A.Draw(r), t.B.Draw(r)
		var ans int
		var distractors []float64

		switch t.Op {
		case Sub:
			if !t.AllowNegative && a < b {
				a, b = b, a
			}
			ans = a - b
			distractors = ints(ans+1, b-a, ans-1, a+b, ans+10)
		case Mul:
			ans = a * b
			distractors = ints(a*(b+1), ans+1, a+b, a*(b-1), ans-1)
		case Div:
			b = drawNonZero(r, t.B, 1)
			if b < 0 {
				b = -b
			}
			ans = a
			a = ans * b
			distractors = ints(ans+1, ans-1, b, a-b, ans+b)
		default:
			ans = a + b
			distractors = ints(ans+1, ans-1, ans+10, ans-10)
		}

		q := &question.Question{
			Type:        t.Format.questionType(),
			Variant:     question.VariantDefault,
			Prompt:      fmt.Sprintf("What is %d %s %d?", a, t.Op.Symbol(), b),
			Answer:      question.Integer(ans),
			Explanation: fmt.Sprintf("%d %s %d = %d", a, t.Op.Symbol(), b, ans),
		}
		if t.Format == MultipleChoice {
			var keep func(float64) bool
			if !t.AllowNegative {
				keep = NonNegative
			}
			q.Options = NumberOptions(r, float64(ans), distractors, keep, nil)
		}
		return q
	}
}

// Counting asks for the next term of an arithmetic sequence, counting
// forwards or backwards by Step.
type Counting struct {
	Start      Range
	Step       Range
	Terms      int // terms shown before the blank; at least 3
	Descending bool
	Format     Format
}

func (t Counting) Bind(r Rand) Generator {
	return func() *question.Question {
		step := drawNonZero(r, t.Step, 1)
		if step < 0 {
			step = -step
		}
		n := max(t.Terms, 3)

		var start int
		if t.Descending {
			start = drawAtLeast(r, t.Start, step*n)
			step = -step
		} else {
			start = t.Start.Draw(r)
		}

		terms := make([]string, n)
		for i := range terms {
			terms[i] = strconv.Itoa(start + i*step)
		}
		ans := start + n*step
		last := ans - step

		q := &question.Question{
			Type:        t.Format.questionType(),
			Variant:     question.VariantDefault,
			Prompt:      fmt.Sprintf("What comes next? %s, __", strings.Join(terms, ", ")),
			Answer:      question.Integer(ans),
			Explanation: fmt.Sprintf("The numbers change by %+d each time, so %d %+d = %d.", step, last, step, ans),
		}
		if t.Format == MultipleChoice {
			q.Options = NumberOptions(r, float64(ans), ints(ans+1, ans-1, last, ans+step), NonNegative, nil)
		}
		return q
	}
}

// Compare asks which of >, < or = makes "a __ b" true.
type Compare struct {
	A Range

	// EqualOneIn makes roughly one in N draws compare equal numbers.
	// Zero means 5.
	EqualOneIn int
}

var comparisonSigns = []string{">", "<", "="}

func (t Compare) Bind(r Rand) Generator {
	return func() *question.Question {
		oneIn := t.EqualOneIn
		if oneIn <= 0 {
			oneIn = 5
		}
		a := t.A.Draw(r)
		b := a
		if r.IntRange(1, oneIn) != 1 {
			b = t.A.Draw(r)
		}

		sign := "="
		switch {
		case a > b:
			sign = ">"
		case a < b:
			sign = "<"
		}
		return &question.Question{
			Type:        question.TypeMultipleChoice,
			Variant:     question.VariantDefault,
			Prompt:      fmt.Sprintf("Which sign makes this true? %d __ %d", a, b),
			Options:     TextOptions(r, sign, comparisonSigns),
			Answer:      question.Text(sign),
			Explanation: fmt.Sprintf("%d %s %d", a, sign, b),
		}
	}
}

var placeNames = []string{
	"ones", "tens", "hundreds", "thousands",
	"ten thousands", "hundred thousands", "millions",
}

// PlaceValue asks for the value of the digit in a named place.
type PlaceValue struct {
	Digits Range // number of digits, clamped to [2, 7]
	Format Format
}

func (t PlaceValue) Bind(r Rand) Generator {
	return func() *question.Question {
		digits := min(max(t.Digits.Draw(r), 2), len(placeNames))
		pos := r.IntRange(0, digits-1)

		n, digit := 0, 0
		for i := digits - 1; i >= 0; i-- {
			d := r.IntRange(0, 9)
			if i == digits-1 || i == pos {
				d = r.IntRange(1, 9)
			}
			if i == pos {
				digit = d
			}
			n = n*10 + d
		}

		place := pow10(pos)
		ans := digit * place
		q := &question.Question{
			Type:        t.Format.questionType(),
			Variant:     question.VariantDefault,
			Prompt:      fmt.Sprintf("In %s, what is the value of the digit in the %s place?", Grouped(n), placeNames[pos]),
			Answer:      question.Integer(ans),
			Explanation: fmt.Sprintf("The %s digit is %d, worth %d × %d = %d.", placeNames[pos], digit, digit, place, ans),
		}
		if t.Format == MultipleChoice {
			q.Options = NumberOptions(r, float64(ans), ints(digit, digit*place*10, digit*place/10, n), Positive, nil)
		}
		return q
	}
}

func pow10(n int) int {
	p := 1
	for range n {
		p *= 10
	}
	return p
}

// Grouped formats n with thousands separators, e.g. 4732 as "4,732".
func Grouped(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
