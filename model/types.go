// Package model defines the record types flowing through the analysis
// pipeline.
package model

import "github.com/hupe1980/vecscope/metadata"

// Record is one raw input item: a stable identifier, an embedding vector,
// and descriptive metadata. Metadata is used only for display and
// aggregation, never for clustering math.
//
// Embedding is typed []float64 because upstream providers deliver decoded
// JSON numbers; the normalizer coerces it into the dense float32 matrix the
// algorithms operate on.
type Record struct {
	ID        string
	Embedding []float64
	Metadata  metadata.Metadata
}

// Point2D is a projected plot coordinate.
type Point2D struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// EnrichedRecord joins a surviving record with its projected coordinate and
// cluster label. It exists transiently for rendering and aggregation.
type EnrichedRecord struct {
	ID       string            `json:"id"`
	Point    Point2D           `json:"point"`
	Cluster  int               `json:"cluster"` // -1 = noise/unassigned
	Metadata metadata.Metadata `json:"metadata,omitempty"`
}
