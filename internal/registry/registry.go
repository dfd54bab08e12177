// Package registry maps topic names to question generators for one grade
// and resolves free-form category names against them.
package registry

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/abhisek/practicekit/internal/generator"
	"github.com/abhisek/practicekit/internal/question"
)

// ErrNoGenerator is returned when a registry has nothing to draw from.
var ErrNoGenerator = errors.New("no generator available")

// Match describes how a category resolved to a topic.
type Match int

const (
	MatchExact Match = iota
	MatchSubstring
	MatchKeyword
	MatchFallback
)

func (m Match) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchSubstring:
		return "substring"
	case MatchKeyword:
		return "keyword"
	default:
		return "fallback"
	}
}

// Registry holds the generators of one grade in registration order.
// It is safe for concurrent use.
type Registry struct {
	grade string

	mu    sync.RWMutex
	names []string
	gens  map[string]generator.Generator
}

// New returns an empty registry for grade.
func New(grade string) *Registry {
	return &Registry{grade: grade, gens: make(map[string]generator.Generator)}
}

// Grade returns the grade the registry serves.
func (r *Registry) Grade() string { return r.grade }

// Register adds a generator under name. Names are unique ignoring case.
func (r *Registry) Register(name string, g generator.Generator) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("register: empty topic name")
	}
	if g == nil {
		return fmt.Errorf("register %q: nil generator", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.names {
		if strings.EqualFold(n, name) {
			return fmt.Errorf("register %q: duplicate topic", name)
		}
	}
	r.names = append(r.names, name)
	r.gens[name] = g
	return nil
}

// Topics returns the topic names in registration order.
func (r *Registry) Topics() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.names...)
}

// Len returns the number of registered topics.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}

// Lookup returns the generator registered under exactly name.
func (r *Registry) Lookup(name string) (generator.Generator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.gens[name]
	return g, ok
}

// Resolution is the topic a category resolved to.
type Resolution struct {
	Category string
	Topic    string
	Match    Match
}

// Resolve maps a category to a topic. It tries, in order: a
// case-insensitive exact match; the first topic containing the category
// (or contained in it); the topic sharing the most words with the
// category; and finally the first registered topic. Ties go to the
// earlier registration. Only an empty registry fails, with ErrNoGenerator.
func (r *Registry) Resolve(category string) (Resolution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := Resolution{Category: category}
	if len(r.names) == 0 {
		return res, ErrNoGenerator
	}

	want := strings.ToLower(strings.TrimSpace(category))
	if want != "" {
		for _, n := range r.names {
			if strings.ToLower(n) == want {
				res.Topic, res.Match = n, MatchExact
				return res, nil
			}
		}
		for _, n := range r.names {
			ln := strings.ToLower(n)
			if strings.Contains(ln, want) || strings.Contains(want, ln) {
				res.Topic, res.Match = n, MatchSubstring
				return res, nil
			}
		}

		words := keywords(want)
		best, bestScore := "", 0
		for _, n := range r.names {
			if score := overlap(words, keywords(n)); score > bestScore {
				best, bestScore = n, score
			}
		}
		if bestScore > 0 {
			res.Topic, res.Match = best, MatchKeyword
			return res, nil
		}
	}

	res.Topic, res.Match = r.names[0], MatchFallback
	return res, nil
}

// Generate draws one question for category.
func (r *Registry) Generate(category string) (*question.Question, Resolution, error) {
	res, err := r.Resolve(category)
	if err != nil {
		return nil, res, err
	}
	return r.draw(res.Topic), res, nil
}

// Draw is one assembled paper slot.
type Draw struct {
	Resolution
	Question *question.Question
}

// Assemble draws one question per slot, preserving slot order.
func (r *Registry) Assemble(slots []string) ([]Draw, error) {
	draws := make([]Draw, 0, len(slots))
	for _, slot := range slots {
		q, res, err := r.Generate(slot)
		if err != nil {
			return nil, fmt.Errorf("assemble slot %q: %w", slot, err)
		}
		draws = append(draws, Draw{Resolution: res, Question: q})
	}
	return draws, nil
}

// draw runs the named generator and stamps the topic on its output.
func (r *Registry) draw(topic string) *question.Question {
	g, _ := r.Lookup(topic)
	q := g()
	q.Topic = topic
	return q
}

var stopwords = map[string]bool{
	"and": true, "the": true, "of": true, "a": true, "an": true,
	"to": true, "with": true, "in": true, "on": true,
}

// keywords splits s into lowercase words, dropping stopwords.
func keywords(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsDigit(c)
	})
	out := fields[:0]
	for _, f := range fields {
		if !stopwords[f] {
			out = append(out, strings.TrimSuffix(f, "s"))
		}
	}
	return out
}

func overlap(a, b []string) int {
	n := 0
	for _, x := range a {
		for _, y := range b {
			if x == y {
				n++
				break
			}
		}
	}
	return n
}
