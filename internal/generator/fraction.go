package generator

import (
	"fmt"

	"github.com/abhisek/practicekit/internal/question"
)

// FractionKind selects a fraction question family.
type FractionKind int

const (
	// AddLike adds two fractions with the same denominator.
	AddLike FractionKind = iota
	// AddUnlike adds two fractions with different denominators.
	AddUnlike
	// Equivalent picks the fraction equal to a given one.
	Equivalent
	// OfQuantity asks for a fraction of a whole number.
	OfQuantity
)

// Fraction generates fraction questions. Den bounds every denominator;
// values below 2 are re-drawn.
type Fraction struct {
	Kind   FractionKind
	Den    Range
	Format Format
}

func (t Fraction) Bind(r Rand) Generator {
	return func() *question.Question {
		switch t.Kind {
		case AddUnlike:
			return t.addUnlike(r)
		case Equivalent:
			return t.equivalent(r)
		case OfQuantity:
			return t.ofQuantity(r)
		default:
			return t.addLike(r)
		}
	}
}

func (t Fraction) den(r Rand) int64 {
	return int64(drawAtLeast(r, t.Den, 2))
}

func (t Fraction) addLike(r Rand) *question.Question {
	d := t.den(r)
	a := int64(r.IntRange(1, int(d)-1))
	b := int64(r.IntRange(1, int(d)-1))
	ans := simplify(a+b, d)

	q := t.fractionQuestion(
		fmt.Sprintf("What is %d/%d + %d/%d? Give your answer in simplest form.", a, d, b, d),
		ans,
		fmt.Sprintf("%d/%d + %d/%d = %d/%d = %s", a, d, b, d, a+b, d, ans),
	)
	if t.Format == MultipleChoice {
		q.Options = FractionOptions(r, ans, []question.Fraction{
			simplify(a+b, 2*d),
			simplify(a+b+1, d),
			simplify(a*b, d),
		})
	}
	return q
}

func (t Fraction) addUnlike(r Rand) *question.Question {
	d1 := t.den(r)
	d2 := t.den(r)
	for i := 0; d2 == d1 && i < maxRedraws; i++ {
		d2 = t.den(r)
	}
	if d2 == d1 {
		d2 = d1 + 1
	}
	a := int64(r.IntRange(1, int(d1)-1))
	b := int64(r.IntRange(1, int(d2)-1))
	ans := simplify(a*d2+b*d1, d1*d2)

	q := t.fractionQuestion(
		fmt.Sprintf("What is %d/%d + %d/%d? Give your answer in simplest form.", a, d1, b, d2),
		ans,
		fmt.Sprintf("%d/%d + %d/%d = %d/%d + %d/%d = %s", a, d1, b, d2, a*d2, d1*d2, b*d1, d1*d2, ans),
	)
	if t.Format == MultipleChoice {
		q.Options = FractionOptions(r, ans, []question.Fraction{
			simplify(a+b, d1+d2),
			simplify(a+b, d1*d2),
			simplify(a*d2+b*d1+1, d1*d2),
		})
	}
	return q
}

func (t Fraction) equivalent(r Rand) *question.Question {
	d := t.den(r)
	base := simplify(int64(r.IntRange(1, int(d)-1)), d)
	k := int64(r.IntRange(2, 5))
	ans := question.Fraction{Num: base.Num * k, Den: base.Den * k}

	// Equivalence is the point of the question, so it is always
	// multiple choice.
	return &question.Question{
		Type:        question.TypeMultipleChoice,
		Variant:     question.VariantFraction,
		Prompt:      fmt.Sprintf("Which fraction is equal to %s?", base),
		Answer:      question.Frac(ans.Num, ans.Den),
		Explanation: fmt.Sprintf("Multiply the top and bottom of %s by %d to get %s.", base, k, ans),
		Options: FractionOptions(r, ans, []question.Fraction{
			{Num: base.Num + k, Den: base.Den * k},
			{Num: base.Num * k, Den: base.Den + k},
			{Num: base.Num * k, Den: base.Den*k + 1},
		}),
	}
}

func (t Fraction) ofQuantity(r Rand) *question.Question {
	d := t.den(r)
	n := int64(r.IntRange(1, int(d)-1))
	k := int64(r.IntRange(1, 10))
	whole := d * k
	ans := int(n * k)

	q := &question.Question{
		Type:        t.Format.questionType(),
		Variant:     question.VariantDefault,
		Prompt:      fmt.Sprintf("What is %d/%d of %d?", n, d, whole),
		Answer:      question.Integer(ans),
		Explanation: fmt.Sprintf("%d ÷ %d = %d, and %d × %d = %d.", whole, d, k, k, n, ans),
	}
	if t.Format == MultipleChoice {
		q.Options = NumberOptions(r, float64(ans), ints(int(k), int(whole)-ans, ans+int(n), int(whole)), Positive, nil)
	}
	return q
}

func (t Fraction) fractionQuestion(prompt string, ans question.Fraction, explanation string) *question.Question {
	return &question.Question{
		Type:        t.Format.questionType(),
		Variant:     question.VariantFraction,
		Prompt:      prompt,
		Answer:      question.Frac(ans.Num, ans.Den),
		Explanation: explanation,
	}
}
