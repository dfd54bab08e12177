package aigen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write short math practice questions for school children.

Rules:
- Write one question for the given grade and topic.
- Use plain ASCII text. No LaTeX or Unicode math symbols. Write fractions as n/d and use * for multiplication.
- The prompt must be self-contained and age-appropriate.
- The answer must be correct and in simplest form: reduced fractions, no trailing zeros on decimals, at most 2 decimal places.
- Use "free_text" when the learner computes a value, "multiple_choice" for comparison or identification.
- For multiple_choice give exactly 4 distinct choices with exactly one equal to the answer. Distractors should be common mistakes.
- answer_kind is "number" for integers and decimals, "fraction" for n/d answers and "text" for words or symbols.
- Do not repeat any question from the "already asked" list.`

func buildUserMessage(in Input, maxPrior int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Grade: %s\n", in.Grade)
	fmt.Fprintf(&b, "Topic: %s\n", in.Topic)
	b.WriteString("\nAlready asked:\n")
	b.WriteString(buildPrior(in.Prior, maxPrior))
	return b.String()
}

// buildPrior lists the most recent max prompts, or "None".
func buildPrior(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}
	var b strings.Builder
	for i, p := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	return strings.TrimRight(b.String(), "\n")
}
