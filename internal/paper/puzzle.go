package paper

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/abhisek/practicekit/internal/curriculum"
	"github.com/abhisek/practicekit/internal/generator"
	"github.com/abhisek/practicekit/internal/question"
)

// PuzzleOfTheDay returns the grade's puzzle for date's calendar day. Every
// caller gets the same question for the same grade and day.
func PuzzleOfTheDay(grade string, date time.Time) (*question.Question, error) {
	g, ok := curriculum.Lookup(grade)
	if !ok {
		return nil, fmt.Errorf("unknown grade %q", grade)
	}

	r := generator.NewSeeded(daySeed(g.ID, date))
	reg, err := curriculum.Registry(g.ID, r)
	if err != nil {
		return nil, err
	}
	topic := generator.Pick(r, reg.Topics())
	q, _, err := reg.Generate(topic)
	if err != nil {
		return nil, fmt.Errorf("puzzle of the day: %w", err)
	}
	return q, nil
}

func daySeed(grade string, date time.Time) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s", grade, date.Format(time.DateOnly))
	return h.Sum64()
}
