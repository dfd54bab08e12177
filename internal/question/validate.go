package question

import (
	"fmt"
	"strconv"
	"strings"
)

// Validator checks a generated question for structural correctness.
// Implementations are stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier, e.g. "structural", "options".
	Name() string

	// Validate returns nil if the question passes.
	Validate(q *Question) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// MaxPromptLength bounds the prompt text.
const MaxPromptLength = 500

// DefaultValidators is the standard validator chain.
func DefaultValidators() []Validator {
	return []Validator{
		&StructuralValidator{},
		&OptionsValidator{},
		&AnswerShapeValidator{},
	}
}

// Validate runs the default validator chain. The first failure stops the
// chain.
func Validate(q *Question) error {
	for _, v := range DefaultValidators() {
		if verr := v.Validate(q); verr != nil {
			return verr
		}
	}
	return nil
}

// StructuralValidator checks required fields and enum values.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}
	if q == nil {
		return fail("question is nil")
	}
	if strings.TrimSpace(q.Prompt) == "" {
		return fail("prompt is empty")
	}
	if len(q.Prompt) > MaxPromptLength {
		return fail(fmt.Sprintf("prompt exceeds %d characters", MaxPromptLength))
	}
	if strings.TrimSpace(q.Topic) == "" {
		return fail("topic is empty")
	}
	switch q.Type {
	case TypeMultipleChoice, TypeFreeText, TypeTable:
	default:
		return fail(fmt.Sprintf("unknown question type %q", q.Type))
	}
	switch q.Variant {
	case VariantDefault, VariantFraction, VariantCoordinate, VariantTable:
	default:
		return fail(fmt.Sprintf("unknown variant %q", q.Variant))
	}
	if q.Type == TypeTable && q.Variant != VariantTable {
		return fail("table questions must use the table variant")
	}
	return nil
}

// OptionsValidator checks multiple-choice constraints: at least two
// options, no empty values, no values equal ignoring case, and the answer
// present exactly once. Numeric equivalence is checked by
// answer.CorrectOptions.
type OptionsValidator struct{}

func (v *OptionsValidator) Name() string { return "options" }

func (v *OptionsValidator) Validate(q *Question) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}
	if q.Type != TypeMultipleChoice {
		if len(q.Options) > 0 {
			return fail(fmt.Sprintf("%s question must not have options", q.Type))
		}
		return nil
	}
	if len(q.Options) < 2 {
		return fail(fmt.Sprintf("multiple choice needs at least 2 options, got %d", len(q.Options)))
	}
	switch q.Answer.Kind {
	case KindText, KindNumber, KindFraction:
	default:
		return fail(fmt.Sprintf("multiple choice answer cannot be %q", q.Answer.Kind))
	}

	want := q.Answer.String()
	seen := make(map[string]bool, len(q.Options))
	matches := 0
	for i, o := range q.Options {
		if strings.TrimSpace(o.Value) == "" {
			return fail(fmt.Sprintf("option %d is empty", i+1))
		}
		key := strings.ToLower(strings.TrimSpace(o.Value))
		if seen[key] {
			return fail(fmt.Sprintf("duplicate option %q", o.Value))
		}
		seen[key] = true
		if o.Value == want {
			matches++
		}
	}
	if matches != 1 {
		return fail(fmt.Sprintf("answer %q appears %d times in options", want, matches))
	}
	return nil
}

// AnswerShapeValidator checks that the answer matches its declared kind and
// fits the question's variant.
type AnswerShapeValidator struct{}

func (v *AnswerShapeValidator) Name() string { return "answer-shape" }

func (v *AnswerShapeValidator) Validate(q *Question) *ValidationError {
	if msg := checkShape(q.Answer); msg != "" {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}

	var msg string
	switch q.Variant {
	case VariantCoordinate:
		if q.Answer.Kind != KindPoint && q.Answer.Kind != KindLine {
			msg = fmt.Sprintf("coordinate variant needs a point or line answer, got %q", q.Answer.Kind)
		}
	case VariantTable:
		switch {
		case q.Answer.Kind != KindTable:
			msg = fmt.Sprintf("table variant needs a table answer, got %q", q.Answer.Kind)
		case len(q.Rows) == 0:
			msg = "table has no rows"
		default:
			for i := range q.Rows {
				if _, ok := q.Answer.Cells[i]; !ok {
					msg = fmt.Sprintf("row %d has no expected cell", i)
					break
				}
			}
			if msg == "" && len(q.Answer.Cells) != len(q.Rows) {
				msg = fmt.Sprintf("table has %d rows but %d cells", len(q.Rows), len(q.Answer.Cells))
			}
		}
	default:
		if q.Answer.Kind == KindTable {
			msg = fmt.Sprintf("%s variant cannot carry a table answer", q.Variant)
		}
	}
	if msg != "" {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}
	return nil
}

// checkShape returns a non-empty message when a is malformed.
func checkShape(a Answer) string {
	switch a.Kind {
	case KindText:
		if strings.TrimSpace(a.Value) == "" {
			return "text answer is empty"
		}
	case KindNumber:
		if _, err := strconv.ParseFloat(strings.TrimSpace(a.Value), 64); err != nil {
			return fmt.Sprintf("number answer %q does not parse", a.Value)
		}
	case KindFraction:
		if a.Fraction.Den == 0 {
			return "fraction answer has zero denominator"
		}
	case KindPoint:
	case KindLine:
		if a.Line.A == 0 && a.Line.B == 0 {
			return "line answer has no x or y term"
		}
	case KindTable:
		if len(a.Cells) == 0 {
			return "table answer has no cells"
		}
		for row, cell := range a.Cells {
			if cell.Kind == KindTable || cell.Kind == KindLine {
				return fmt.Sprintf("row %d cannot hold a %s answer", row, cell.Kind)
			}
			if msg := checkShape(cell); msg != "" {
				return fmt.Sprintf("row %d: %s", row, msg)
			}
		}
	case "":
		return "answer is missing"
	default:
		return fmt.Sprintf("unknown answer kind %q", a.Kind)
	}
	return ""
}
