// Package testutil provides deterministic batch generators for tests and
// benchmarks.
package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/vecscope/metadata"
	"github.com/hupe1980/vecscope/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float32 returns, as a float32, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float32() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float32()
}

// NormFloat64 returns a normally distributed float64 with mean 0, stddev 1.
func (r *RNG) NormFloat64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.NormFloat64()
}

// UniformVectors generates random embedding vectors with values in [0, 1).
func (r *RNG) UniformVectors(num int, dimensions int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	vectors := make([][]float64, num)
	for i := range vectors {
		vectors[i] = make([]float64, dimensions)
		for j := range vectors[i] {
			vectors[i][j] = r.rand.Float64()
		}
	}

	return vectors
}

// GaussianBatch generates perCluster records around each of the given
// centers, with the given standard deviation. Every record carries a
// "group" metadata tag naming its generating center, which makes the
// batches convenient for insight-aggregation tests.
func (r *RNG) GaussianBatch(centers [][]float64, perCluster int, stddev float64) []model.Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	var records []model.Record
	for c, center := range centers {
		for i := 0; i < perCluster; i++ {
			emb := make([]float64, len(center))
			for j := range emb {
				emb[j] = center[j] + r.rand.NormFloat64()*stddev
			}
			records = append(records, model.Record{
				ID:        fmt.Sprintf("c%d-%d", c, i),
				Embedding: emb,
				Metadata: metadata.Metadata{
					"group": metadata.String(fmt.Sprintf("g%d", c)),
					"score": metadata.Float(r.rand.Float64()),
				},
			})
		}
	}

	return records
}
