package okapi

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with okapi-specific context.
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
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithModel adds the ranking model name to the logger.
func (l *Logger) WithModel(model string) *Logger {
	return &Logger{
		Logger: l.Logger.With("model", model),
	}
}

// LogBuild logs an index build.
func (l *Logger) LogBuild(ctx context.Context, documents, terms int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "index build failed",
			"documents", documents,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "index build completed",
			"documents", documents,
			"terms", terms,
		)
	}
}

// LogSearch logs a search operation.
func (l *Logger) LogSearch(ctx context.Context, model string, queryTerms, results int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"model", model,
			"query_terms", queryTerms,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "search completed",
			"model", model,
			"query_terms", queryTerms,
			"results", results,
		)
	}
}

// LogExpand logs a query expansion.
func (l *Logger) LogExpand(ctx context.Context, before, after, feedbackDocs int) {
	l.DebugContext(ctx, "query expanded",
		"terms_before", before,
		"terms_after", after,
		"feedback_docs", feedbackDocs,
	)
}

// LogMerge logs an incremental posting merge.
func (l *Logger) LogMerge(ctx context.Context, term string, entries int, version uint64) {
	l.DebugContext(ctx, "postings merged",
		"term", term,
		"entries", entries,
		"index_version", version,
	)
}
