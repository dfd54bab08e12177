// Package aigen generates practice questions with a language model. Output
// is normalized into the same question.Question shape the local generators
// produce and must pass question.Validate before it is served.
package aigen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/practicekit/internal/llm"
	"github.com/abhisek/practicekit/internal/question"
)

// Config controls generation.
type Config struct {
	MaxTokens   int
	Temperature float64

	// MaxPriorQuestions bounds the "already asked" list in the prompt.
	MaxPriorQuestions int

	// Checks run after question.Validate. The first failure rejects the
	// question.
	Checks []Check
}

// DefaultConfig returns recommended defaults with the single-answer and
// arithmetic checks enabled.
func DefaultConfig() Config {
	return Config{
		MaxTokens:         512,
		Temperature:       0.7,
		MaxPriorQuestions: 8,
		Checks:            []Check{&SingleAnswerCheck{}, &ArithmeticCheck{}},
	}
}

// Check is an extra validation step for generated questions.
type Check interface {
	Name() string
	Check(q *question.Question) *question.ValidationError
}

// Input selects what to generate.
type Input struct {
	Grade string
	Topic string

	// Prior holds prompts already served, most recent last.
	Prior []string
}

// Generator produces questions from an llm.Provider.
type Generator struct {
	provider llm.Provider
	config   Config
}

// New creates a Generator.
func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, config: cfg}
}

// Provider returns the underlying provider.
func (g *Generator) Provider() llm.Provider { return g.provider }

// Generate asks the model for one question. Malformed or invalid output is
// returned as an error; the caller decides whether to fall back.
func (g *Generator) Generate(ctx context.Context, in Input) (*question.Question, error) {
	if strings.TrimSpace(in.Topic) == "" {
		return nil, fmt.Errorf("aigen: topic is required")
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(in, g.config.MaxPriorQuestions)}},
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var out questionOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse LLM response: %w", err)
	}

	q, err := out.toQuestion(in.Topic)
	if err != nil {
		return nil, err
	}
	if err := question.Validate(q); err != nil {
		return nil, err
	}
	for _, c := range g.config.Checks {
		if verr := c.Check(q); verr != nil {
			return nil, verr
		}
	}
	return q, nil
}
