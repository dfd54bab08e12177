package llm

// ModelCost is USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD cost of the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns pricing for a model ID or friendly name, or nil if
// unknown.
func LookupCost(model string) *ModelCost {
	for _, m := range []map[string]string{anthropicModels, openaiModels, geminiModels} {
		model = resolveModel(model, m)
	}
	if c, ok := modelCosts[model]; ok {
		return &c
	}
	return nil
}

var modelCosts = map[string]ModelCost{
	"claude-haiku-4-5-20251001":   {1, 5},
	"claude-sonnet-4-20250514":    {3, 15},
	"gpt-4o":                      {2.5, 10},
	"gpt-4o-mini":                 {0.15, 0.6},
	"gemini-2.5-flash":            {0.3, 2.5},
	"gemini-2.5-pro":              {1.25, 10},
	"google/gemini-2.0-flash-exp": {0, 0},
	"google/gemini-2.5-flash":     {0.3, 2.5},
	"anthropic/claude-haiku-4.5":  {1, 5},
	"openai/gpt-4o-mini":          {0.15, 0.6},
}
