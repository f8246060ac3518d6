package cluster

import (
	"math"
	"slices"

	"github.com/hupe1980/vecscope/distance"
	"github.com/hupe1980/vecscope/internal/rng"
	"github.com/hupe1980/vecscope/normalize"
)

// DefaultKMeansIterations is the Lloyd iteration cap when
// KMeansParams.MaxIterations is not set.
const DefaultKMeansIterations = 40

// KMeans clusters m into p.K groups using Lloyd's algorithm.
//
// Initial centroids are p.K distinct rows drawn without replacement from
// the seeded source, so a fixed seed reproduces the run. K is clamped to
// [1, n]; an empty matrix yields an empty assignment with zero inertia.
func KMeans(m *normalize.Matrix, p KMeansParams) *Assignment {
	n := m.Len()
	a := &Assignment{Algorithm: p.Algorithm()}
	if n == 0 {
		return a
	}

	k := p.K
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}

	maxIter := p.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultKMeansIterations
	}

	// Initialize centroids from k distinct rows, picked without
	// replacement. Duplicate vectors are skipped so two centroids never
	// start at the same point; if fewer distinct rows exist than k, the
	// effective cluster count silently shrinks to what is available.
	perm := rng.Perm(rng.NewLCG(p.Seed), n)
	centroids := make([][]float32, 0, k)
	for _, idx := range perm {
		v := m.Vectors[idx]
		dup := false
		for _, c := range centroids {
			if slices.Equal(c, v) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		centroids = append(centroids, append([]float32(nil), v...))
		if len(centroids) == k {
			break
		}
	}
	k = len(centroids)

	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}
	counts := make([]int, k)
	sums := make([]float64, k*m.Dim)

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		var inertia float64

		// Assignment step. Ties break to the first-encountered minimum.
		for i := 0; i < n; i++ {
			vec := m.Vectors[i]
			best := 0
			minDist := float32(math.MaxFloat32)
			for j := 0; j < k; j++ {
				if d := distance.SquaredL2(vec, centroids[j]); d < minDist {
					minDist = d
					best = j
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
			inertia += float64(minDist)
		}

		a.Iterations = iter + 1
		a.Inertia = inertia
		a.InertiaHistory = append(a.InertiaHistory, inertia)

		if !changed {
			break
		}

		// Update step. Centroids with no members are left unchanged.
		for i := range sums {
			sums[i] = 0
		}
		for i := range counts {
			counts[i] = 0
		}
		for i := 0; i < n; i++ {
			c := labels[i]
			for d, x := range m.Vectors[i] {
				sums[c*m.Dim+d] += float64(x)
			}
			counts[c]++
		}
		for j := 0; j < k; j++ {
			if counts[j] == 0 {
				continue
			}
			inv := 1.0 / float64(counts[j])
			for d := 0; d < m.Dim; d++ {
				centroids[j][d] = float32(sums[j*m.Dim+d] * inv)
			}
		}
	}

	// The loop may exit at the iteration cap right after an update step;
	// recompute inertia against the final centroids so the reported value
	// matches the returned assignment. The update step only lowers
	// within-cluster error, so this never exceeds the last history entry.
	var final float64
	for i := 0; i < n; i++ {
		final += float64(distance.SquaredL2(m.Vectors[i], centroids[labels[i]]))
	}
	a.Inertia = final

	a.Labels = labels
	a.Centroids = centroids

	return a
}
