package paper

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Library is a named set of blueprints: the built-ins plus any loaded from
// disk. Later loads replace earlier blueprints of the same name.
type Library struct {
	mu     sync.RWMutex
	byName map[string]Blueprint
}

// NewLibrary returns a library holding the built-in blueprints.
func NewLibrary() (*Library, error) {
	l := &Library{byName: make(map[string]Blueprint)}
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, fmt.Errorf("read builtin blueprints: %w", err)
	}
	for _, e := range entries {
		data, err := builtinFS.ReadFile("builtin/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("read builtin blueprint %s: %w", e.Name(), err)
		}
		bp, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("builtin %s: %w", e.Name(), err)
		}
		l.Add(bp)
	}
	return l, nil
}

// Add stores bp under its name.
func (l *Library) Add(bp Blueprint) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.byName[strings.ToLower(bp.Name)] = bp
}

// LoadDir adds every *.yaml and *.yml blueprint in dir. A missing
// directory is not an error.
func (l *Library) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read blueprint dir: %w", err)
	}
	n := 0
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		bp, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return n, err
		}
		l.Add(bp)
		n++
	}
	return n, nil
}

// Get returns the blueprint with the given name, ignoring case.
func (l *Library) Get(name string) (Blueprint, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	bp, ok := l.byName[strings.ToLower(strings.TrimSpace(name))]
	return bp, ok
}

// List returns all blueprints sorted by grade, then name.
func (l *Library) List() []Blueprint {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Blueprint, 0, len(l.byName))
	for _, bp := range l.byName {
		out = append(out, bp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Grade != out[j].Grade {
			return out[i].Grade < out[j].Grade
		}
		return out[i].Name < out[j].Name
	})
	return out
}
