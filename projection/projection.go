// Package projection reduces a normalized matrix to two dimensions for
// plotting. It extracts the top two principal components by power
// iteration with Gram-Schmidt deflation, avoiding a full eigensolver.
package projection

import (
	"github.com/hupe1980/vecscope/distance"
	"github.com/hupe1980/vecscope/internal/math32"
	"github.com/hupe1980/vecscope/internal/rng"
	"github.com/hupe1980/vecscope/model"
	"github.com/hupe1980/vecscope/normalize"
)

// Iterations is the fixed power-iteration budget per component.
const Iterations = 120

// Basis holds the projection produced for one matrix: the two dominant
// unit eigenvectors of the covariance matrix and the per-dimension mean
// used for centering. Immutable once built.
type Basis struct {
	Components [2][]float32
	Mean       []float32
}

// Project builds the PCA basis for m and maps every row to a 2D point.
// The start vectors for power iteration are drawn from src, so a fixed
// seed gives reproducible output. An empty matrix yields an empty result.
func Project(m *normalize.Matrix, src rng.Source) (*Basis, []model.Point2D) {
	if m.Len() == 0 {
		return &Basis{}, nil
	}

	d := m.Dim

	mean := math32.Mean(m.Vectors, d)
	centered := make([][]float32, m.Len())
	for i, v := range m.Vectors {
		row := make([]float32, d)
		for j := range row {
			row[j] = v[j] - mean[j]
		}
		centered[i] = row
	}

	cov := covariance(centered, d)

	first := dominantEigenvector(cov, src, nil)
	second := dominantEigenvector(cov, src, first)

	points := make([]model.Point2D, len(centered))
	for i, row := range centered {
		points[i] = model.Point2D{
			X: distance.Dot(row, first),
			Y: distance.Dot(row, second),
		}
	}

	return &Basis{Components: [2][]float32{first, second}, Mean: mean}, points
}

// Transform maps a single vector of the basis dimensionality to 2D.
func (b *Basis) Transform(v []float32) model.Point2D {
	if len(b.Mean) == 0 {
		return model.Point2D{}
	}

	centered := make([]float32, len(b.Mean))
	for j := range centered {
		x := float32(0)
		if j < len(v) {
			x = v[j]
		}
		centered[j] = x - b.Mean[j]
	}

	return model.Point2D{
		X: distance.Dot(centered, b.Components[0]),
		Y: distance.Dot(centered, b.Components[1]),
	}
}

// covariance builds the d x d covariance matrix of the centered rows.
// Only the upper triangle is computed and mirrored.
func covariance(centered [][]float32, d int) [][]float32 {
	denom := float64(len(centered) - 1)
	if len(centered) <= 1 {
		denom = 1
	}

	cov := make([][]float32, d)
	for i := range cov {
		cov[i] = make([]float32, d)
	}

	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			var sum float64
			for _, row := range centered {
				sum += float64(row[i]) * float64(row[j])
			}
			c := float32(sum / denom)
			cov[i][j] = c
			cov[j][i] = c
		}
	}

	return cov
}

// dominantEigenvector runs power iteration on cov. When deflate is
// non-nil the working vector is re-orthogonalized against it every
// iteration, which steers convergence to the next component.
func dominantEigenvector(cov [][]float32, src rng.Source, deflate []float32) []float32 {
	d := len(cov)

	v := make([]float32, d)
	for i := range v {
		v[i] = src.Float32() - 0.5
	}
	safeNormalize(v, deflate)

	next := make([]float32, d)
	for iter := 0; iter < Iterations; iter++ {
		for i := 0; i < d; i++ {
			next[i] = distance.Dot(cov[i], v)
		}
		if deflate != nil {
			proj := distance.Dot(next, deflate)
			for i := range next {
				next[i] -= proj * deflate[i]
			}
		}
		safeNormalize(next, deflate)
		copy(v, next)
	}

	return v
}

// safeNormalize L2-normalizes v in place. When the norm is near zero (the
// data has no variance left for this component) it substitutes a fixed
// unit vector instead of dividing by zero, preferring a canonical axis
// that stays orthogonal to the already-found component.
func safeNormalize(v, deflate []float32) {
	norm := math32.Norm(v)
	if norm > 1e-12 {
		math32.ScaleInPlace(v, 1/norm)
		return
	}

	for axis := range v {
		for i := range v {
			v[i] = 0
		}
		v[axis] = 1
		if deflate != nil {
			proj := distance.Dot(v, deflate)
			for i := range v {
				v[i] -= proj * deflate[i]
			}
			norm = math32.Norm(v)
			if norm <= 1e-12 {
				continue
			}
			math32.ScaleInPlace(v, 1/norm)
		}
		return
	}

	// No axis survives deflation (d == 1). Fall back to the first axis.
	for i := range v {
		v[i] = 0
	}
	if len(v) > 0 {
		v[0] = 1
	}
}
