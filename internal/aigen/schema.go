package aigen

import "github.com/abhisek/practicekit/internal/llm"

// QuestionSchema is the structured output requested from the model.
var QuestionSchema = &llm.Schema{
	Name:        "practice-question",
	Description: "A single math practice question with its answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"prompt": map[string]any{
				"type":        "string",
				"description": "The question shown to the learner, plain ASCII",
			},
			"format": map[string]any{
				"type": "string",
				"enum": []any{"free_text", "multiple_choice"},
			},
			"answer_kind": map[string]any{
				"type": "string",
				"enum": []any{"number", "fraction", "text"},
			},
			"answer": map[string]any{
				"type":        "string",
				"description": "The correct answer as text, e.g. \"42\", \"3/4\" or \"triangle\"",
			},
			"choices": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Exactly 4 options for multiple_choice, empty for free_text",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Short worked solution",
			},
		},
		"required":             []any{"prompt", "format", "answer_kind", "answer", "choices", "explanation"},
		"additionalProperties": false,
	},
}
