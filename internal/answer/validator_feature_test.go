package answer

import (
	"context"
	"fmt"
	"testing"

	"github.com/cucumber/godog"

	"github.com/abhisek/practicekit/internal/question"
)

// TestValidatorFeatures runs the validator scenarios in testdata.
func TestValidatorFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "answer-validation",
		ScenarioInitializer: InitializeValidatorScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"testdata/validator.feature"},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeValidatorScenario wires steps for validator scenarios.
func InitializeValidatorScenario(ctx *godog.ScenarioContext) {
	state := &validatorState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*state = validatorState{}
		return ctx, nil
	})

	ctx.Step(`^the canonical answer "([^"]*)" with variant "([^"]*)"$`, state.givenCanonical)
	ctx.Step(`^the learner answers "([^"]*)"$`, state.whenAnswered)
	ctx.Step(`^the learner answers "([^"]*)" twice$`, state.whenAnsweredTwice)
	ctx.Step(`^the answer is (correct|incorrect)$`, state.thenVerdict)
	ctx.Step(`^both verdicts agree$`, state.thenAgree)
}

type validatorState struct {
	canonical string
	variant   question.Variant
	verdicts  []bool
}

func (s *validatorState) givenCanonical(canonical, variant string) error {
	s.canonical = canonical
	s.variant = question.ParseVariant(variant)
	return nil
}

func (s *validatorState) whenAnswered(user string) error {
	s.verdicts = append(s.verdicts, IsCorrect(user, s.canonical, s.variant))
	return nil
}

func (s *validatorState) whenAnsweredTwice(user string) error {
	if err := s.whenAnswered(user); err != nil {
		return err
	}
	return s.whenAnswered(user)
}

func (s *validatorState) thenVerdict(verdict string) error {
	if len(s.verdicts) == 0 {
		return fmt.Errorf("no answer given")
	}
	want := verdict == "correct"
	if got := s.verdicts[len(s.verdicts)-1]; got != want {
		return fmt.Errorf("IsCorrect(%q) = %v, want %v", s.canonical, got, want)
	}
	return nil
}

func (s *validatorState) thenAgree() error {
	if len(s.verdicts) != 2 {
		return fmt.Errorf("expected two verdicts, got %d", len(s.verdicts))
	}
	if s.verdicts[0] != s.verdicts[1] {
		return fmt.Errorf("verdicts differ: %v", s.verdicts)
	}
	return nil
}
