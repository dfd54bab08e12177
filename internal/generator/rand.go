package generator

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Rand is the randomness source a generator draws from. Implementations
// used by shared registries must be safe for concurrent use.
type Rand interface {
	// IntRange returns a uniform integer in [lo, hi]. Reversed bounds are
	// swapped.
	IntRange(lo, hi int) int

	// Shuffle permutes n elements through swap.
	Shuffle(n int, swap func(i, j int))
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand returns a clock-seeded PCG source guarded by a mutex.
func NewRand() Rand {
	now := uint64(time.Now().UnixNano())
	return NewSeeded(now)
}

// NewSeeded returns a reproducible source. Two sources with the same seed
// produce the same stream.
func NewSeeded(seed uint64) Rand {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *lockedRand) IntRange(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return lo + l.r.IntN(hi-lo+1)
}

func (l *lockedRand) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Shuffle(n, swap)
}

// sequence replays fixed values for tests.
type sequence struct {
	mu     sync.Mutex
	values []int
	next   int
}

// Sequence returns a deterministic source that cycles through values,
// folding each into the requested range. It never reorders on Shuffle.
// With no values it always returns the low bound.
func Sequence(values ...int) Rand {
	return &sequence{values: values}
}

func (s *sequence) IntRange(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return lo
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	span := hi - lo + 1
	return lo + ((v%span)+span)%span
}

func (s *sequence) Shuffle(int, func(i, j int)) {}

// Pick returns a uniformly chosen element of items. items must be
// non-empty.
func Pick[T any](r Rand, items []T) T {
	return items[r.IntRange(0, len(items)-1)]
}
