// Package cluster provides three interchangeable clustering strategies
// over a normalized matrix: K-Means, average-linkage agglomerative, and
// DBSCAN. All three operate on the original high-dimensional vectors and
// label every row; noise is an explicit label, never an absence.
//
// Strategies are selected through the closed Params sum type so that
// adding a fourth algorithm is additive rather than a signature change.
package cluster

import "github.com/hupe1980/vecscope/normalize"

// Noise is the label of rows that no density-based cluster claims.
const Noise = -1

// Params selects and configures one clustering strategy. The set of
// implementations is closed: KMeansParams, AgglomerativeParams and
// DBSCANParams.
type Params interface {
	// Algorithm returns the strategy name for logging and diagnostics.
	Algorithm() string

	sealed()
}

// KMeansParams configures Lloyd's K-Means.
type KMeansParams struct {
	// K is the target cluster count, clamped to [1, n].
	K int
	// MaxIterations caps the Lloyd iterations. Defaults to 40 when <= 0.
	MaxIterations int
	// Seed drives centroid initialization. The same seed on the same
	// matrix reproduces the assignment exactly.
	Seed int64
}

// Algorithm implements Params.
func (KMeansParams) Algorithm() string { return "kmeans" }

func (KMeansParams) sealed() {}

// AgglomerativeParams configures average-linkage agglomerative clustering.
type AgglomerativeParams struct {
	// Target is the cluster count at which merging stops, clamped >= 1.
	Target int
}

// Algorithm implements Params.
func (AgglomerativeParams) Algorithm() string { return "agglomerative" }

func (AgglomerativeParams) sealed() {}

// DBSCANParams configures density-based clustering.
type DBSCANParams struct {
	// Eps is the Euclidean neighborhood radius. Non-positive values yield
	// an all-noise assignment.
	Eps float32
	// MinPts is the minimum neighborhood size (including the point
	// itself) for a core point. Non-positive values yield all noise.
	MinPts int
}

// Algorithm implements Params.
func (DBSCANParams) Algorithm() string { return "dbscan" }

func (DBSCANParams) sealed() {}

// Assignment is the result of one clustering run. Labels has one entry
// per matrix row; -1 marks noise. Centroids holds one mean vector per
// non-noise cluster. The remaining fields are per-algorithm diagnostics.
type Assignment struct {
	Algorithm string
	Labels    []int
	Centroids [][]float32

	// Iterations and InertiaHistory are populated by K-Means. The
	// history records inertia after every assignment step and is
	// non-increasing.
	Iterations     int
	Inertia        float64
	InertiaHistory []float64

	// NoiseCount is populated by DBSCAN.
	NoiseCount int
}

// ClusterCount returns the number of non-noise clusters.
func (a *Assignment) ClusterCount() int { return len(a.Centroids) }

// Run executes the strategy selected by params on m. It never fails:
// degenerate parameters and empty input resolve to well-defined reduced
// results.
func Run(m *normalize.Matrix, params Params) *Assignment {
	switch p := params.(type) {
	case KMeansParams:
		return KMeans(m, p)
	case AgglomerativeParams:
		return Agglomerative(m, p)
	case DBSCANParams:
		return DBSCAN(m, p)
	default:
		// Params is sealed; no other implementation exists.
		return &Assignment{Algorithm: params.Algorithm()}
	}
}

// meanOf returns the element-wise mean of the given matrix rows.
func meanOf(m *normalize.Matrix, members []int) []float32 {
	centroid := make([]float32, m.Dim)
	if len(members) == 0 {
		return centroid
	}

	sums := make([]float64, m.Dim)
	for _, row := range members {
		for j, x := range m.Vectors[row] {
			sums[j] += float64(x)
		}
	}
	inv := 1.0 / float64(len(members))
	for j := range centroid {
		centroid[j] = float32(sums[j] * inv)
	}

	return centroid
}
