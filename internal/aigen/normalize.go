package aigen

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/abhisek/practicekit/internal/answer"
	"github.com/abhisek/practicekit/internal/question"
)

// questionOutput is the raw model output before normalization.
type questionOutput struct {
	Prompt      string   `json:"prompt"`
	Format      string   `json:"format"`
	AnswerKind  string   `json:"answer_kind"`
	Answer      string   `json:"answer"`
	Choices     []string `json:"choices"`
	Explanation string   `json:"explanation"`
}

func invalid(msg string, args ...any) *question.ValidationError {
	return &question.ValidationError{Validator: "normalize", Message: fmt.Sprintf(msg, args...), Retryable: true}
}

// toQuestion maps the model output onto a Question. Choices are rewritten
// to canonical values so the answer matches its option exactly.
func (o questionOutput) toQuestion(topic string) (*question.Question, error) {
	q := &question.Question{
		Variant:     question.VariantDefault,
		Prompt:      strings.TrimSpace(o.Prompt),
		Topic:       topic,
		Explanation: strings.TrimSpace(o.Explanation),
	}

	ans, err := canonicalAnswer(o.AnswerKind, o.Answer)
	if err != nil {
		return nil, err
	}
	q.Answer = ans
	if ans.Kind == question.KindFraction {
		q.Variant = question.VariantFraction
	}

	switch o.Format {
	case "free_text":
		q.Type = question.TypeFreeText
	case "multiple_choice":
		q.Type = question.TypeMultipleChoice
		q.Options, err = normalizeChoices(o.AnswerKind, ans, o.Choices)
		if err != nil {
			return nil, err
		}
	default:
		return nil, invalid("unknown format %q", o.Format)
	}
	return q, nil
}

func canonicalAnswer(kind, raw string) (question.Answer, error) {
	raw = strings.TrimSpace(raw)
	switch kind {
	case "number":
		v, ok := answer.ParseNumber(raw)
		if !ok {
			return question.Answer{}, invalid("number answer %q does not parse", raw)
		}
		return question.Number(v), nil
	case "fraction":
		f, ok := parseFraction(raw)
		if !ok {
			return question.Answer{}, invalid("fraction answer %q does not parse", raw)
		}
		return question.Answer{Kind: question.KindFraction, Fraction: f}, nil
	case "text":
		if raw == "" {
			return question.Answer{}, invalid("text answer is empty")
		}
		return question.Text(raw), nil
	}
	return question.Answer{}, invalid("unknown answer kind %q", kind)
}

// normalizeChoices canonicalizes each choice like the answer and keeps the
// model's text as the label. The first choice that grades correct becomes
// the answer option; later ones are dropped, as are distractors equal to an
// earlier distractor numerically or case-insensitively.
func normalizeChoices(kind string, ans question.Answer, choices []string) ([]question.Option, error) {
	want := ans.String()
	var (
		opts    []question.Option
		numbers []float64
		texts   = make(map[string]bool, len(choices))
		found   bool
	)
	for _, c := range choices {
		label := strings.TrimSpace(c)
		if label == "" {
			continue
		}
		if answer.Match(ans, label) {
			if !found {
				found = true
				opts = append(opts, question.Option{Value: want, Label: label})
			}
			continue
		}

		value := label
		if a, err := canonicalAnswer(kind, label); err == nil {
			value = a.String()
		}
		if v, ok := answer.ParseNumber(value); ok {
			if slices.ContainsFunc(numbers, func(n float64) bool { return answer.NumbersEqual(n, v) }) {
				continue
			}
			numbers = append(numbers, v)
		}
		key := strings.ToLower(value)
		if texts[key] {
			continue
		}
		texts[key] = true
		opts = append(opts, question.Option{Value: value, Label: label})
	}
	if !found {
		return nil, invalid("answer %q is not among the choices", want)
	}
	if len(opts) < 2 {
		return nil, invalid("only %d distinct choice(s) after removing duplicates", len(opts))
	}
	return opts, nil
}

// parseFraction parses "n/d" or a whole number and reduces it.
func parseFraction(s string) (question.Fraction, bool) {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		den = "1"
	}
	n, err := strconv.ParseInt(strings.TrimSpace(num), 10, 64)
	if err != nil {
		return question.Fraction{}, false
	}
	d, err := strconv.ParseInt(strings.TrimSpace(den), 10, 64)
	if err != nil || d == 0 {
		return question.Fraction{}, false
	}
	if d < 0 {
		n, d = -n, -d
	}
	g := gcd(abs(n), d)
	return question.Fraction{Num: n / g, Den: d / g}, true
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
