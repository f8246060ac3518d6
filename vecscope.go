package vecscope

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/vecscope/cluster"
	"github.com/hupe1980/vecscope/insight"
	"github.com/hupe1980/vecscope/internal/rng"
	"github.com/hupe1980/vecscope/model"
	"github.com/hupe1980/vecscope/normalize"
	"github.com/hupe1980/vecscope/projection"
)

// Result is the immutable output of one Analyze invocation.
type Result struct {
	// Matrix is the normalized batch the algorithms ran on. Its IndexMap
	// links rows back to the input slice; dropped records have no row.
	Matrix *normalize.Matrix
	// Basis is the PCA projection basis built for this batch.
	Basis *projection.Basis
	// Points holds one 2D coordinate per matrix row.
	Points []model.Point2D
	// Assignment holds labels, centroids and diagnostics.
	Assignment *cluster.Assignment
	// Records joins every surviving input record with its point and label.
	Records []model.EnrichedRecord
	// Insights summarizes each cluster, dominant clusters first.
	Insights []insight.ClusterInsight
}

// Engine runs the analysis pipeline: normalize, project and cluster over
// the same immutable matrix, enrich, aggregate. An Engine is stateless
// between calls and safe for concurrent use.
type Engine struct {
	logger            *Logger
	seed              int64
	parallelThreshold int
	insightOptions    insight.Options
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	o := options{
		logger:            NoopLogger(),
		seed:              1,
		parallelThreshold: DefaultParallelThreshold,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Engine{
		logger:            o.logger,
		seed:              o.seed,
		parallelThreshold: o.parallelThreshold,
		insightOptions:    o.insightOptions,
	}
}

// Analyze runs the full pipeline on one batch under the strategy selected
// by params.
//
// Malformed records, degenerate parameters and empty batches all resolve
// to reduced results, never errors; the only error returned is
// ctx.Err() when the context is cancelled between pipeline stages. A
// running stage is never interrupted, so callers wanting a timeout should
// wrap the Analyze call.
func (e *Engine) Analyze(ctx context.Context, records []model.Record, params cluster.Params) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := e.Normalize(records)
	e.logger.LogNormalize(ctx, len(records), m.Len(), m.Dim)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{Matrix: m}

	// Projection and clustering are independent consumers of the same
	// immutable matrix. Past the threshold the quadratic strategies are
	// worth taking off the calling goroutine.
	if m.Len() >= e.parallelThreshold {
		var g errgroup.Group
		g.Go(func() error {
			result.Basis, result.Points = e.Project(m)
			return nil
		})
		g.Go(func() error {
			result.Assignment = e.Cluster(m, params)
			return nil
		})
		_ = g.Wait() // stages never fail
	} else {
		result.Basis, result.Points = e.Project(m)
		result.Assignment = e.Cluster(m, params)
	}

	e.logger.LogProjection(ctx, len(result.Points))
	e.logger.LogCluster(ctx, result.Assignment.Algorithm,
		result.Assignment.ClusterCount(), result.Assignment.NoiseCount,
		result.Assignment.Iterations)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result.Records = Enrich(records, m, result.Points, result.Assignment)
	result.Insights = insight.Aggregate(result.Records, e.insightOptions)
	e.logger.LogAggregate(ctx, len(result.Insights))

	return result, nil
}

// Normalize validates and coerces the batch into a dense matrix.
func (e *Engine) Normalize(records []model.Record) *normalize.Matrix {
	nz := normalize.Normalizer{Logger: e.logger.Logger}
	return nz.Normalize(records)
}

// Project maps every matrix row to a 2D point, seeding the power
// iteration from the engine seed.
func (e *Engine) Project(m *normalize.Matrix) (*projection.Basis, []model.Point2D) {
	return projection.Project(m, rng.NewLCG(e.seed))
}

// Cluster runs the strategy selected by params. For K-Means an unset
// params.Seed inherits the engine seed.
func (e *Engine) Cluster(m *normalize.Matrix, params cluster.Params) *cluster.Assignment {
	if p, ok := params.(cluster.KMeansParams); ok && p.Seed == 0 {
		p.Seed = e.seed
		params = p
	}
	return cluster.Run(m, params)
}

// Enrich joins each surviving record with its projected point and cluster
// label. The result has one entry per matrix row, in row order.
func Enrich(records []model.Record, m *normalize.Matrix, points []model.Point2D, a *cluster.Assignment) []model.EnrichedRecord {
	enriched := make([]model.EnrichedRecord, m.Len())
	for row, orig := range m.IndexMap {
		rec := records[orig]
		er := model.EnrichedRecord{
			ID:       rec.ID,
			Cluster:  cluster.Noise,
			Metadata: rec.Metadata,
		}
		if row < len(points) {
			er.Point = points[row]
		}
		if a != nil && row < len(a.Labels) {
			er.Cluster = a.Labels[row]
		}
		enriched[row] = er
	}
	return enriched
}
