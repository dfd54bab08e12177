// Package paper turns blueprints (ordered topic slots) into assembled
// question papers.
package paper

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/practicekit/internal/curriculum"
	"github.com/abhisek/practicekit/internal/question"
	"github.com/abhisek/practicekit/internal/registry"
)

// MaxQuestions bounds the size of one paper.
const MaxQuestions = 200

// Slot is one blueprint entry: a topic or category name drawn Count times.
type Slot struct {
	Topic string `yaml:"topic"`
	Count int    `yaml:"count"`
}

// Blueprint describes a paper: which topics, in which order, under what
// time limit.
type Blueprint struct {
	Name      string        `yaml:"name"`
	Title     string        `yaml:"title"`
	Grade     string        `yaml:"grade"`
	TimeLimit time.Duration `yaml:"time_limit"`
	Slots     []Slot        `yaml:"slots"`
}

// Parse decodes a single YAML blueprint document. Unknown fields are
// rejected.
func Parse(data []byte) (Blueprint, error) {
	var bp Blueprint
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&bp); err != nil {
		return Blueprint{}, fmt.Errorf("parse blueprint: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Blueprint{}, fmt.Errorf("parse blueprint: multiple documents are not supported")
		}
		return Blueprint{}, fmt.Errorf("parse blueprint: %w", err)
	}
	if err := bp.Validate(); err != nil {
		return Blueprint{}, err
	}
	return bp, nil
}

// LoadFile reads and parses a blueprint file.
func LoadFile(path string) (Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Blueprint{}, fmt.Errorf("read blueprint: %w", err)
	}
	bp, err := Parse(data)
	if err != nil {
		return Blueprint{}, fmt.Errorf("%s: %w", path, err)
	}
	return bp, nil
}

// Validate checks the blueprint's fields.
func (b *Blueprint) Validate() error {
	var errs []error
	if strings.TrimSpace(b.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if _, ok := curriculum.Lookup(b.Grade); !ok {
		errs = append(errs, fmt.Errorf("unknown grade %q", b.Grade))
	}
	if b.TimeLimit < 0 {
		errs = append(errs, errors.New("time_limit must not be negative"))
	}
	if len(b.Slots) == 0 {
		errs = append(errs, errors.New("at least one slot is required"))
	}
	total := 0
	for i, s := range b.Slots {
		total += max(s.Count, 1)
		if strings.TrimSpace(s.Topic) == "" {
			errs = append(errs, fmt.Errorf("slot %d: topic is required", i+1))
		}
		if s.Count < 0 {
			errs = append(errs, fmt.Errorf("slot %d: count must not be negative", i+1))
		}
	}
	if total > MaxQuestions {
		errs = append(errs, fmt.Errorf("%d questions exceeds the limit of %d", total, MaxQuestions))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid blueprint %q: %w", b.Name, errors.Join(errs...))
	}
	return nil
}

// Expand lists one entry per question in slot order. A zero count means
// one question.
func (b *Blueprint) Expand() []string {
	var out []string
	for _, s := range b.Slots {
		n := max(s.Count, 1)
		for range n {
			out = append(out, s.Topic)
		}
	}
	return out
}

// Paper is an assembled, ordered question sequence.
type Paper struct {
	ID        string
	Name      string
	Title     string
	Grade     string
	TimeLimit time.Duration
	Questions []*question.Question

	// Resolutions records how each slot resolved, index-aligned with
	// Questions.
	Resolutions []registry.Resolution

	// Unmatched lists slot names that only resolved through the
	// registry's last-resort fallback.
	Unmatched []string
}

// Assemble draws the blueprint's questions from reg.
func (b *Blueprint) Assemble(reg *registry.Registry) (*Paper, error) {
	draws, err := reg.Assemble(b.Expand())
	if err != nil {
		return nil, fmt.Errorf("assemble %q: %w", b.Name, err)
	}

	p := &Paper{
		ID:        uuid.NewString(),
		Name:      b.Name,
		Title:     b.Title,
		Grade:     reg.Grade(),
		TimeLimit: b.TimeLimit,
	}
	seen := make(map[string]bool)
	for _, d := range draws {
		p.Questions = append(p.Questions, d.Question)
		p.Resolutions = append(p.Resolutions, d.Resolution)
		if d.Match == registry.MatchFallback && !seen[d.Category] {
			seen[d.Category] = true
			p.Unmatched = append(p.Unmatched, d.Category)
		}
	}
	if p.Title == "" {
		p.Title = p.Name
	}
	return p, nil
}

// Practice returns an ad-hoc blueprint of count questions for one
// category.
func Practice(grade, category string, count int) Blueprint {
	return Blueprint{
		Name:  "practice",
		Title: category,
		Grade: grade,
		Slots: []Slot{{Topic: category, Count: max(count, 1)}},
	}
}
