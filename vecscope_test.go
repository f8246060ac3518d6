package vecscope

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vecscope/cluster"
	"github.com/hupe1980/vecscope/model"
	"github.com/hupe1980/vecscope/testutil"
)

func TestAnalyze_KMeansPipeline(t *testing.T) {
	ctx := context.Background()
	engine := New(WithSeed(42))

	records := testutil.NewRNG(1).GaussianBatch([][]float64{
		{0, 0, 0, 0},
		{50, 50, 50, 50},
	}, 10, 0.5)

	result, err := engine.Analyze(ctx, records, cluster.KMeansParams{K: 2})
	require.NoError(t, err)

	require.Equal(t, 20, result.Matrix.Len())
	require.Len(t, result.Records, 20)
	require.Len(t, result.Points, 20)
	require.Len(t, result.Assignment.Labels, 20)

	// The two generated blobs separate cleanly.
	first := result.Records[0].Cluster
	for i, rec := range result.Records {
		if i < 10 {
			assert.Equal(t, first, rec.Cluster)
		} else {
			assert.NotEqual(t, first, rec.Cluster)
		}
	}

	// Insights: two clusters of 10, dominated by their generating group.
	require.Len(t, result.Insights, 2)
	for _, ci := range result.Insights {
		assert.Equal(t, 10, ci.Count)
		top := ci.TopValues["group"]
		require.NotEmpty(t, top)
		assert.Equal(t, 10, top[0].Count)
	}
}

func TestAnalyze_DroppedRecordsExcluded(t *testing.T) {
	engine := New()

	records := []model.Record{
		{ID: "a", Embedding: []float64{0, 0}},
		{ID: "broken"},
		{ID: "b", Embedding: []float64{1, 1}},
	}

	result, err := engine.Analyze(context.Background(), records, cluster.KMeansParams{K: 1})
	require.NoError(t, err)

	require.Len(t, result.Records, 2)
	assert.Equal(t, "a", result.Records[0].ID)
	assert.Equal(t, "b", result.Records[1].ID)
}

func TestAnalyze_EmptyBatch(t *testing.T) {
	engine := New()

	for _, params := range []cluster.Params{
		cluster.KMeansParams{K: 3},
		cluster.AgglomerativeParams{Target: 2},
		cluster.DBSCANParams{Eps: 1, MinPts: 2},
	} {
		result, err := engine.Analyze(context.Background(), nil, params)
		require.NoError(t, err)
		assert.Empty(t, result.Records)
		assert.Empty(t, result.Points)
		assert.Empty(t, result.Insights)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	records := testutil.NewRNG(7).GaussianBatch([][]float64{
		{0, 0}, {5, 5}, {10, 0},
	}, 8, 0.3)

	a, err := New(WithSeed(99)).Analyze(context.Background(), records, cluster.KMeansParams{K: 3})
	require.NoError(t, err)
	b, err := New(WithSeed(99)).Analyze(context.Background(), records, cluster.KMeansParams{K: 3})
	require.NoError(t, err)

	assert.Equal(t, a.Points, b.Points)
	assert.Equal(t, a.Assignment.Labels, b.Assignment.Labels)
	assert.Equal(t, a.Assignment.Inertia, b.Assignment.Inertia)
}

func TestAnalyze_ParallelPlacementSameResults(t *testing.T) {
	records := testutil.NewRNG(3).GaussianBatch([][]float64{
		{0, 0}, {20, 20},
	}, 20, 0.5)

	inline, err := New(WithSeed(5), WithParallelThreshold(1000)).
		Analyze(context.Background(), records, cluster.DBSCANParams{Eps: 3, MinPts: 3})
	require.NoError(t, err)

	parallel, err := New(WithSeed(5), WithParallelThreshold(1)).
		Analyze(context.Background(), records, cluster.DBSCANParams{Eps: 3, MinPts: 3})
	require.NoError(t, err)

	assert.Equal(t, inline.Points, parallel.Points)
	assert.Equal(t, inline.Assignment.Labels, parallel.Assignment.Labels)
}

func TestAnalyze_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Analyze(ctx, nil, cluster.KMeansParams{K: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyze_DBSCANNoiseInInsights(t *testing.T) {
	records := []model.Record{
		{ID: "a", Embedding: []float64{0, 0}},
		{ID: "b", Embedding: []float64{100, 100}},
	}

	result, err := New().Analyze(context.Background(), records, cluster.DBSCANParams{Eps: 1, MinPts: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Assignment.NoiseCount)
	require.Len(t, result.Insights, 1)
	assert.Equal(t, cluster.Noise, result.Insights[0].Cluster)
	assert.Equal(t, 2, result.Insights[0].Count)
}

func TestEngine_ClusterInheritsSeed(t *testing.T) {
	engine := New(WithSeed(1234))

	records := testutil.NewRNG(2).GaussianBatch([][]float64{{0}, {10}}, 5, 0.1)
	m := engine.Normalize(records)

	a := engine.Cluster(m, cluster.KMeansParams{K: 2})
	b := cluster.KMeans(m, cluster.KMeansParams{K: 2, Seed: 1234})
	assert.Equal(t, b.Labels, a.Labels)
}
