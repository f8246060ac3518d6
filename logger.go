package vecscope

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with vecscope-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithAlgorithm adds an algorithm field to the logger.
func (l *Logger) WithAlgorithm(algorithm string) *Logger {
	return &Logger{
		Logger: l.Logger.With("algorithm", algorithm),
	}
}

// WithBatchSize adds a batch size field to the logger.
func (l *Logger) WithBatchSize(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("batch_size", n),
	}
}

// LogNormalize logs the outcome of batch normalization.
func (l *Logger) LogNormalize(ctx context.Context, in, rows, dim int) {
	if dropped := in - rows; dropped > 0 {
		l.WarnContext(ctx, "normalization dropped records",
			"input", in,
			"rows", rows,
			"dropped", dropped,
			"dimension", dim,
		)
	} else {
		l.DebugContext(ctx, "normalization completed",
			"rows", rows,
			"dimension", dim,
		)
	}
}

// LogProjection logs a completed 2D projection.
func (l *Logger) LogProjection(ctx context.Context, points int) {
	l.DebugContext(ctx, "projection completed",
		"points", points,
	)
}

// LogCluster logs a completed clustering run.
func (l *Logger) LogCluster(ctx context.Context, algorithm string, clusters, noise, iterations int) {
	l.DebugContext(ctx, "clustering completed",
		"algorithm", algorithm,
		"clusters", clusters,
		"noise", noise,
		"iterations", iterations,
	)
}

// LogAggregate logs a completed insight aggregation.
func (l *Logger) LogAggregate(ctx context.Context, insights int) {
	l.DebugContext(ctx, "aggregation completed",
		"insights", insights,
	)
}
