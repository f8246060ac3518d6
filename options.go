package vecscope

import "github.com/hupe1980/vecscope/insight"

// DefaultParallelThreshold is the batch size above which projection and
// clustering run on separate goroutines.
const DefaultParallelThreshold = 256

type options struct {
	logger            *Logger
	seed              int64
	parallelThreshold int
	insightOptions    insight.Options
}

// Option configures Engine behavior.
type Option func(*options)

// WithLogger configures the structured logger. If nil is passed, logging
// is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithSeed fixes the seed used for K-Means initialization and the
// projection start vectors. The default seed is 1, so runs are
// reproducible unless a caller opts into variability.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithParallelThreshold sets the batch size above which the projection
// and clustering stages run concurrently. This is a placement decision
// only; it never changes results. A threshold <= 0 restores the default.
func WithParallelThreshold(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = DefaultParallelThreshold
		}
		o.parallelThreshold = n
	}
}

// WithInsightOptions tunes the per-cluster summaries (top-K value count,
// sample size).
func WithInsightOptions(io insight.Options) Option {
	return func(o *options) {
		o.insightOptions = io
	}
}
