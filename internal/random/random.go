package random

import (
	"math/rand"
	"sync"
	"time"
)

// Source is the randomness the fallback paths draw from. Tests pass a seeded
// source to get exact values.
type Source interface {
	Intn(n int) int
	Float64() float64
}

type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func New(seed int64) Source {
	return &lockedSource{rnd: rand.New(rand.NewSource(seed))}
}

func NewTimeSeeded() Source {
	return New(time.Now().UnixNano())
}

// FromSeed treats 0 as "seed from the clock".
func FromSeed(seed int64) Source {
	if seed == 0 {
		return NewTimeSeeded()
	}
	return New(seed)
}

func (s *lockedSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}

// IntRange draws uniformly from [lo, hi].
func IntRange(src Source, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return lo + src.Intn(hi-lo+1)
}

// Uniform draws from [lo, hi).
func Uniform(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Choice picks one element of values; it panics on an empty slice.
func Choice[T any](src Source, values []T) T {
	return values[src.Intn(len(values))]
}
