package generator

import (
	"fmt"

	"github.com/abhisek/practicekit/internal/question"
)

type polygon struct {
	name  string
	sides int
}

var polygons = []polygon{
	{"triangle", 3},
	{"quadrilateral", 4},
	{"pentagon", 5},
	{"hexagon", 6},
	{"heptagon", 7},
	{"octagon", 8},
}

var shapeNames = []string{
	"triangle", "quadrilateral", "pentagon", "hexagon",
	"heptagon", "octagon", "circle",
}

// Shape asks the learner to name a polygon from its side count.
// MaxSides limits the polygons used; zero means all of them.
type Shape struct {
	MaxSides int
}

func (t Shape) Bind(r Rand) Generator {
	pool := polygons
	if t.MaxSides >= 3 {
		pool = nil
		for _, p := range polygons {
			if p.sides <= t.MaxSides {
				pool = append(pool, p)
			}
		}
	}
	return func() *question.Question {
		p := Pick(r, pool)
		return &question.Question{
			Type:        question.TypeMultipleChoice,
			Variant:     question.VariantDefault,
			Prompt:      fmt.Sprintf("Which shape has %d straight sides and %d corners?", p.sides, p.sides),
			Options:     TextOptions(r, p.name, shapeNames),
			Answer:      question.Text(p.name),
			Explanation: fmt.Sprintf("A %s has %d sides.", p.name, p.sides),
		}
	}
}

// MeasureKind selects a rectangle measurement.
type MeasureKind int

const (
	Perimeter MeasureKind = iota
	Area
)

// Measure asks for the perimeter or area of a rectangle.
type Measure struct {
	Kind   MeasureKind
	Side   Range
	Unit   string // e.g. "cm"; empty means "units"
	Format Format
}

func (t Measure) Bind(r Rand) Generator {
	unit := t.Unit
	if unit == "" {
		unit = "units"
	}
	return func() *question.Question {
		l := drawAtLeast(r, t.Side, 1)
		w := drawAtLeast(r, t.Side, 1)
		perimeter, area := 2*(l+w), l*w

		var ans int
		var prompt, explanation string
		var distractors []float64
		if t.Kind == Area {
			ans = area
			prompt = fmt.Sprintf("A rectangle is %d %s long and %d %s wide. What is its area in square %s?", l, unit, w, unit, unit)
			explanation = fmt.Sprintf("Area = length × width = %d × %d = %d", l, w, ans)
			distractors = ints(perimeter, l+w, ans+l, ans-w)
		} else {
			ans = perimeter
			prompt = fmt.Sprintf("A rectangle is %d %s long and %d %s wide. What is its perimeter in %s?", l, unit, w, unit, unit)
			explanation = fmt.Sprintf("Perimeter = 2 × (%d + %d) = %d", l, w, ans)
			distractors = ints(l+w, area, ans+2, ans-2)
		}

		q := &question.Question{
			Type:        t.Format.questionType(),
			Variant:     question.VariantDefault,
			Prompt:      prompt,
			Answer:      question.Integer(ans),
			Explanation: explanation,
		}
		if t.Format == MultipleChoice {
			q.Options = NumberOptions(r, float64(ans), distractors, Positive, nil)
		}
		return q
	}
}
