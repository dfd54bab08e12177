package curriculum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/practicekit/internal/answer"
	"github.com/abhisek/practicekit/internal/generator"
	"github.com/abhisek/practicekit/internal/question"
	"github.com/abhisek/practicekit/internal/registry"
)

func TestCatalog_Valid(t *testing.T) {
	require.NoError(t, Validate(Grades()))
}

func TestValidate_Rejects(t *testing.T) {
	tmpl := generator.Shape{}
	tests := map[string][]Grade{
		"empty":       nil,
		"no topics":   {{ID: "1"}},
		"duplicate":   {{ID: "1", Topics: []Topic{{"A / B", tmpl}}}, {ID: "1", Topics: []Topic{{"A / B", tmpl}}}},
		"bad name":    {{ID: "1", Topics: []Topic{{"Shapes", tmpl}}}},
		"dup topic":   {{ID: "1", Topics: []Topic{{"A / B", tmpl}, {"a / b", tmpl}}}},
		"no template": {{ID: "1", Topics: []Topic{{"A / B", nil}}}},
	}
	for name, grades := range tests {
		assert.Error(t, Validate(grades), name)
	}
}

func TestGrades_Order(t *testing.T) {
	var ids []string
	for _, g := range Grades() {
		ids = append(ids, g.ID)
	}
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "sat"}, ids)
}

func TestLookup(t *testing.T) {
	g, ok := Lookup("SAT")
	require.True(t, ok)
	assert.Equal(t, "sat", g.ID)

	_, ok = Lookup("12")
	assert.False(t, ok)

	_, err := Registry("12", generator.NewRand())
	assert.Error(t, err)
}

func TestRegistries_AllTopicsProduceValidQuestions(t *testing.T) {
	regs, err := Registries(generator.NewSeeded(99))
	require.NoError(t, err)
	require.Len(t, regs, len(Grades()))

	for grade, reg := range regs {
		for _, topic := range reg.Topics() {
			for i := 0; i < 200; i++ {
				q, res, err := reg.Generate(topic)
				require.NoError(t, err)
				require.Equal(t, registry.MatchExact, res.Match)
				require.Equal(t, topic, q.Topic)
				require.NoError(t, question.Validate(q), "grade %s topic %s: %+v", grade, topic, q)
				if q.Type == question.TypeMultipleChoice {
					assert.True(t, answer.Check(q, question.Response{Value: q.Answer.String()}).Correct)
				}
			}
		}
	}
}

func TestCountingCategoryResolves(t *testing.T) {
	reg, err := Registry("1", generator.NewSeeded(1))
	require.NoError(t, err)

	res, err := reg.Resolve("Number Sense / Counting")
	require.NoError(t, err)
	assert.Contains(t, []string{"Number Sense / Counting Forwards", "Number Sense / Counting Backwards"}, res.Topic)
	assert.NotEqual(t, registry.MatchFallback, res.Match)
}
