// Package math32 provides float32 vector kernels used by the distance,
// projection and cluster packages. All accumulation is done in float64 to
// keep long reductions stable on high-dimensional inputs.
package math32

import "math"

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float32) float32 {
	var ret float64
	for i := range a {
		ret += float64(a[i]) * float64(b[i])
	}

	return float32(ret)
}

// SquaredL2 calculates the squared L2 (Euclidean) distance.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float32) float32 {
	var distance float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		distance += d * d
	}

	return float32(distance)
}

// Norm returns the L2 norm of v.
func Norm(v []float32) float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}

	return float32(math.Sqrt(sum))
}

// ScaleInPlace multiplies all elements of a by scalar.
func ScaleInPlace(a []float32, scalar float32) {
	for i := range a {
		a[i] *= scalar
	}
}

// AddInPlace adds b to a element-wise.
// Assumes vectors are the same length (caller's responsibility).
func AddInPlace(a, b []float32) {
	for i := range a {
		a[i] += b[i]
	}
}

// Mean returns the element-wise mean of the given vectors, all of length dim.
// Returns a zero vector when vectors is empty.
func Mean(vectors [][]float32, dim int) []float32 {
	mean := make([]float32, dim)
	if len(vectors) == 0 {
		return mean
	}

	sums := make([]float64, dim)
	for _, v := range vectors {
		for j := range v {
			sums[j] += float64(v[j])
		}
	}

	inv := 1.0 / float64(len(vectors))
	for j := range mean {
		mean[j] = float32(sums[j] * inv)
	}

	return mean
}

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
