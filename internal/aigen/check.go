package aigen

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/abhisek/practicekit/internal/answer"
	"github.com/abhisek/practicekit/internal/question"
)

// SingleAnswerCheck rejects multiple-choice questions where the number of
// options that grade correct is not exactly one.
type SingleAnswerCheck struct{}

func (c *SingleAnswerCheck) Name() string { return "single-answer" }

func (c *SingleAnswerCheck) Check(q *question.Question) *question.ValidationError {
	if q.Type != question.TypeMultipleChoice {
		return nil
	}
	if n := answer.CorrectOptions(q); n != 1 {
		return &question.ValidationError{
			Validator: c.Name(),
			Message:   fmt.Sprintf("%d options grade as correct, want 1", n),
			Retryable: true,
		}
	}
	return nil
}

// ArithmeticCheck recomputes the answer when the prompt contains a single
// binary expression such as "345 + 278" or "1/2 + 1/4". Prompts without a
// recognizable expression pass.
type ArithmeticCheck struct{}

func (c *ArithmeticCheck) Name() string { return "arithmetic" }

func (c *ArithmeticCheck) Check(q *question.Question) *question.ValidationError {
	var claimed float64
	switch q.Answer.Kind {
	case question.KindNumber:
		v, ok := answer.ParseNumber(q.Answer.Value)
		if !ok {
			return nil
		}
		claimed = v
	case question.KindFraction:
		claimed = float64(q.Answer.Fraction.Num) / float64(q.Answer.Fraction.Den)
	default:
		return nil
	}

	computed, ok := compute(q.Prompt)
	if !ok || answer.NumbersEqual(computed, claimed) {
		return nil
	}
	return &question.ValidationError{
		Validator: c.Name(),
		Message:   fmt.Sprintf("computed %s but model claimed %s", question.FormatNumber(computed), q.Answer),
		Retryable: true,
	}
}

var (
	// "a/b + c/d"
	fractionExprRe = regexp.MustCompile(`(-?\d+)\s*/\s*(\d+)\s*([+\-*×÷])\s*(-?\d+)\s*/\s*(\d+)`)

	// "a + b", "a * b"; operands must not touch a slash.
	numberExprRe = regexp.MustCompile(`(?:^|[^\d/.])(-?\d+(?:\.\d+)?)\s*([+\-*×])\s*(-?\d+(?:\.\d+)?)(?:[^\d/]|$)`)

	// Division needs spaces around "/" to tell it from a fraction.
	divisionExprRe = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s+[/÷]\s+(-?\d+(?:\.\d+)?)`)
)

func compute(prompt string) (float64, bool) {
	if m := fractionExprRe.FindStringSubmatch(prompt); m != nil {
		a, okA := ratio(m[1], m[2])
		b, okB := ratio(m[4], m[5])
		if okA && okB {
			return apply(a, m[3], b)
		}
	}
	if m := numberExprRe.FindStringSubmatch(prompt); m != nil {
		return applyStrings(m[1], m[2], m[3])
	}
	if m := divisionExprRe.FindStringSubmatch(prompt); m != nil {
		return applyStrings(m[1], "/", m[2])
	}
	return 0, false
}

func ratio(num, den string) (float64, bool) {
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}

func applyStrings(a, op, b string) (float64, bool) {
	x, err1 := strconv.ParseFloat(a, 64)
	y, err2 := strconv.ParseFloat(b, 64)
	if err1 != nil || err2 != nil {
		return 0, false
	}
	return apply(x, op, y)
}

func apply(a float64, op string, b float64) (float64, bool) {
	switch op {
	case "+":
		return a + b, true
	case "-":
		return a - b, true
	case "*", "×":
		return a * b, true
	case "/", "÷":
		if b == 0 {
			return 0, false
		}
		return a / b, true
	}
	return 0, false
}
