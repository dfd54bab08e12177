// Package curriculum holds the per-grade topic catalogs. Each topic binds a
// generator template with grade-appropriate operand ranges.
package curriculum

import (
	"fmt"
	"strings"

	"github.com/abhisek/practicekit/internal/generator"
	"github.com/abhisek/practicekit/internal/registry"
)

// Topic is one catalog entry.
type Topic struct {
	Name     string
	Template generator.Template
}

// Grade is a grade or exam level with its topics in display order.
type Grade struct {
	ID     string
	Title  string
	Topics []Topic
}

// Grades returns every grade in display order.
func Grades() []Grade {
	return append([]Grade(nil), catalog...)
}

// Lookup returns the grade with the given ID, ignoring case.
func Lookup(id string) (Grade, bool) {
	id = strings.TrimSpace(id)
	for _, g := range catalog {
		if strings.EqualFold(g.ID, id) {
			return g, true
		}
	}
	return Grade{}, false
}

// Registry builds a registry for grade whose generators draw from r.
func Registry(grade string, r generator.Rand) (*registry.Registry, error) {
	g, ok := Lookup(grade)
	if !ok {
		return nil, fmt.Errorf("unknown grade %q", grade)
	}
	reg := registry.New(g.ID)
	for _, t := range g.Topics {
		if err := reg.Register(t.Name, t.Template.Bind(r)); err != nil {
			return nil, fmt.Errorf("grade %s: %w", g.ID, err)
		}
	}
	return reg, nil
}

// Registries builds a registry for every grade, all sharing r.
func Registries(r generator.Rand) (map[string]*registry.Registry, error) {
	out := make(map[string]*registry.Registry, len(catalog))
	for _, g := range catalog {
		reg, err := Registry(g.ID, r)
		if err != nil {
			return nil, err
		}
		out[g.ID] = reg
	}
	return out, nil
}

// Validate checks a catalog: unique grade IDs, at least one topic per
// grade, topic names in "Strand / Topic" form and unique within a grade.
func Validate(grades []Grade) error {
	if len(grades) == 0 {
		return fmt.Errorf("catalog is empty")
	}
	seenGrade := make(map[string]bool)
	for _, g := range grades {
		id := strings.ToLower(g.ID)
		if id == "" {
			return fmt.Errorf("grade with empty id")
		}
		if seenGrade[id] {
			return fmt.Errorf("duplicate grade %q", g.ID)
		}
		seenGrade[id] = true
		if len(g.Topics) == 0 {
			return fmt.Errorf("grade %q has no topics", g.ID)
		}

		seenTopic := make(map[string]bool)
		for _, t := range g.Topics {
			strand, name, ok := strings.Cut(t.Name, " / ")
			if !ok || strings.TrimSpace(strand) == "" || strings.TrimSpace(name) == "" {
				return fmt.Errorf("grade %q: topic %q is not \"Strand / Topic\"", g.ID, t.Name)
			}
			key := strings.ToLower(t.Name)
			if seenTopic[key] {
				return fmt.Errorf("grade %q: duplicate topic %q", g.ID, t.Name)
			}
			seenTopic[key] = true
			if t.Template == nil {
				return fmt.Errorf("grade %q: topic %q has no template", g.ID, t.Name)
			}
		}
	}
	return nil
}
