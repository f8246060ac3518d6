// Package rng provides the seedable random source used for centroid
// initialization and power-iteration start vectors.
//
// All randomness in the library flows through the Source interface so that
// tests can substitute a deterministic sequence instead of patching global
// state. The default implementation is a small linear congruential
// generator: cheap, reproducible, and more than good enough for picking
// start points.
package rng

// Source produces pseudo-random values. Implementations need not be safe
// for concurrent use; every computation owns its Source.
type Source interface {
	// Intn returns a pseudo-random int in [0, n). Panics if n <= 0.
	Intn(n int) int
	// Float32 returns a pseudo-random float32 in [0.0, 1.0).
	Float32() float32
}

// LCG is a linear congruential generator (Numerical Recipes constants).
type LCG struct {
	state uint64
}

// NewLCG creates a new LCG seeded with the given value.
func NewLCG(seed int64) *LCG {
	return &LCG{state: uint64(seed)}
}

func (l *LCG) next() uint64 {
	l.state = l.state*6364136223846793005 + 1442695040888963407
	return l.state
}

// Intn returns a pseudo-random int in [0, n).
func (l *LCG) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	return int((l.next() >> 33) % uint64(n))
}

// Float32 returns a pseudo-random float32 in [0.0, 1.0).
func (l *LCG) Float32() float32 {
	return float32(l.next()>>40) / float32(1<<24)
}

// Perm returns a pseudo-random permutation of [0, n) drawn from src.
func Perm(src Source, n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return p
}
