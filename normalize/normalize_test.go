package normalize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vecscope/model"
)

func TestNormalize_DropsMalformed(t *testing.T) {
	var nz Normalizer

	m := nz.Normalize([]model.Record{
		{ID: "a", Embedding: []float64{1, 2, 3}},
		{ID: "b"}, // missing embedding
		{ID: "c", Embedding: []float64{4, 5, 6}},
		{ID: "d", Embedding: []float64{7, 8, 9}},
	})

	require.Equal(t, 3, m.Len())
	assert.Equal(t, 3, m.Dim)
	assert.Equal(t, []int{0, 2, 3}, m.IndexMap)
}

func TestNormalize_TruncatesAndPads(t *testing.T) {
	var nz Normalizer

	m := nz.Normalize([]model.Record{
		{ID: "a", Embedding: []float64{1, 2, 3}},
		{ID: "b", Embedding: []float64{4, 5}},           // padded
		{ID: "c", Embedding: []float64{6, 7, 8, 9, 10}}, // truncated
	})

	require.Equal(t, 3, m.Len())
	assert.Equal(t, []float32{4, 5, 0}, m.Vectors[1])
	assert.Equal(t, []float32{6, 7, 8}, m.Vectors[2])
}

func TestNormalize_CoercesNonFinite(t *testing.T) {
	var nz Normalizer

	m := nz.Normalize([]model.Record{
		{ID: "a", Embedding: []float64{math.NaN(), math.Inf(1), 2}},
	})

	require.Equal(t, 1, m.Len())
	assert.Equal(t, []float32{0, 0, 2}, m.Vectors[0])
}

func TestNormalize_CoercesFloat32Overflow(t *testing.T) {
	var nz Normalizer

	// Finite in float64, but beyond float32 range.
	m := nz.Normalize([]model.Record{
		{ID: "a", Embedding: []float64{1e39, 2}},
		{ID: "b", Embedding: []float64{-1e39, math.MaxFloat64, 3}},
	})

	require.Equal(t, 2, m.Len())
	assert.Equal(t, []float32{0, 2}, m.Vectors[0])
	assert.Equal(t, []float32{0, 0}, m.Vectors[1])
	for _, row := range m.Vectors {
		for _, v := range row {
			assert.False(t, math.IsInf(float64(v), 0))
			assert.False(t, math.IsNaN(float64(v)))
		}
	}
}

func TestNormalize_Empty(t *testing.T) {
	var nz Normalizer

	m := nz.Normalize(nil)
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, m.Dim)

	m = nz.Normalize([]model.Record{{ID: "a"}, {ID: "b"}})
	assert.Equal(t, 0, m.Len())
}

func TestNormalize_Idempotent(t *testing.T) {
	var nz Normalizer

	records := []model.Record{
		{ID: "a", Embedding: []float64{1, 2}},
		{ID: "b", Embedding: []float64{3, 4}},
	}

	first := nz.Normalize(records)

	// Re-normalize the already-normalized rows.
	again := make([]model.Record, first.Len())
	for i, v := range first.Vectors {
		emb := make([]float64, len(v))
		for j, x := range v {
			emb[j] = float64(x)
		}
		again[i] = model.Record{ID: records[first.IndexMap[i]].ID, Embedding: emb}
	}

	second := nz.Normalize(again)
	assert.Equal(t, first.Vectors, second.Vectors)
	assert.Equal(t, []int{0, 1}, second.IndexMap)
}
