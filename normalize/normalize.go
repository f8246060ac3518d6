// Package normalize validates and coerces a heterogeneous batch of records
// into a dense, dimensionally-consistent float32 matrix.
package normalize

import (
	"log/slog"

	"github.com/hupe1980/vecscope/internal/math32"
	"github.com/hupe1980/vecscope/model"
)

// Matrix is the dense, validated form of a record batch. All vectors have
// equal length Dim and every entry is finite. IndexMap maps matrix row to
// the originating index in the input batch; records dropped during
// normalization have no row.
//
// A Matrix is immutable once built.
type Matrix struct {
	Vectors  [][]float32
	Dim      int
	IndexMap []int
}

// Len returns the number of rows.
func (m *Matrix) Len() int { return len(m.Vectors) }

// Normalizer coerces record batches into matrices. The zero value is ready
// to use; set Logger to surface per-row coercion at debug level.
type Normalizer struct {
	Logger *slog.Logger
}

// Normalize builds a Matrix from the batch.
//
// A record is dropped when its embedding is missing or empty. The target
// dimensionality is fixed by the first surviving embedding; later
// embeddings are truncated or zero-padded to match it. Non-finite entries
// are replaced with 0. An empty batch, or a batch with no valid embedding,
// yields an empty matrix rather than an error.
func (nz *Normalizer) Normalize(records []model.Record) *Matrix {
	m := &Matrix{}

	for i, rec := range records {
		if len(rec.Embedding) == 0 {
			nz.debug("dropped record with missing embedding", "index", i, "id", rec.ID)
			continue
		}

		if m.Dim == 0 {
			// First valid embedding fixes d for the whole batch.
			m.Dim = len(rec.Embedding)
		}

		row := make([]float32, m.Dim)
		coerced := false
		for j := 0; j < m.Dim && j < len(rec.Embedding); j++ {
			// Narrow first: a finite float64 beyond float32 range
			// overflows to an infinity.
			v := float32(rec.Embedding[j])
			if !math32.IsFinite(float64(v)) {
				v = 0
				coerced = true
			}
			row[j] = v
		}
		if len(rec.Embedding) != m.Dim {
			coerced = true
		}
		if coerced {
			nz.debug("coerced embedding", "index", i, "id", rec.ID, "len", len(rec.Embedding), "dim", m.Dim)
		}

		m.Vectors = append(m.Vectors, row)
		m.IndexMap = append(m.IndexMap, i)
	}

	return m
}

func (nz *Normalizer) debug(msg string, args ...any) {
	if nz.Logger != nil {
		nz.Logger.Debug(msg, args...)
	}
}
