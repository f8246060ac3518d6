package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Dispatch(t *testing.T) {
	m := matrixOf(
		[]float32{0, 0}, []float32{0.2, 0}, []float32{10, 10}, []float32{10.2, 10},
	)

	tests := []struct {
		params    Params
		algorithm string
	}{
		{KMeansParams{K: 2, Seed: 1}, "kmeans"},
		{AgglomerativeParams{Target: 2}, "agglomerative"},
		{DBSCANParams{Eps: 1, MinPts: 2}, "dbscan"},
	}

	for _, tt := range tests {
		t.Run(tt.algorithm, func(t *testing.T) {
			a := Run(m, tt.params)
			require.NotNil(t, a)
			assert.Equal(t, tt.algorithm, a.Algorithm)

			// Completeness: every row gets exactly one label.
			require.Len(t, a.Labels, m.Len())
			for _, l := range a.Labels {
				assert.GreaterOrEqual(t, l, Noise)
				assert.Less(t, l, a.ClusterCount())
			}
		})
	}
}

func TestRun_EmptyMatrix(t *testing.T) {
	for _, params := range []Params{
		KMeansParams{K: 2},
		AgglomerativeParams{Target: 2},
		DBSCANParams{Eps: 1, MinPts: 2},
	} {
		a := Run(matrixOf(), params)
		assert.Empty(t, a.Labels)
		assert.Empty(t, a.Centroids)
		assert.Zero(t, a.Inertia)
		assert.Zero(t, a.NoiseCount)
	}
}
