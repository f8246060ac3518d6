package math32

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDot(t *testing.T) {
	assert.InDelta(t, 11.0, Dot([]float32{1, 2, 3}, []float32{3, 1, 2}), 1e-6)
	assert.Equal(t, float32(0), Dot(nil, nil))
}

func TestSquaredL2(t *testing.T) {
	assert.InDelta(t, 8.0, SquaredL2([]float32{0, 0}, []float32{2, 2}), 1e-6)
	assert.Equal(t, float32(0), SquaredL2([]float32{1, 1}, []float32{1, 1}))
}

func TestNorm(t *testing.T) {
	assert.InDelta(t, 5.0, Norm([]float32{3, 4}), 1e-6)
	assert.Equal(t, float32(0), Norm(nil))
}

func TestScaleInPlace(t *testing.T) {
	v := []float32{1, -2, 3}
	ScaleInPlace(v, 2)
	assert.Equal(t, []float32{2, -4, 6}, v)
}

func TestAddInPlace(t *testing.T) {
	a := []float32{1, 2}
	AddInPlace(a, []float32{3, 4})
	assert.Equal(t, []float32{4, 6}, a)
}

func TestMean(t *testing.T) {
	mean := Mean([][]float32{{0, 0}, {2, 4}}, 2)
	assert.Equal(t, []float32{1, 2}, mean)

	// Empty input yields a zero vector, not NaN.
	assert.Equal(t, []float32{0, 0, 0}, Mean(nil, 3))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(1.5))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(1)))
	assert.False(t, IsFinite(math.Inf(-1)))
}
