package okapi

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordBuild is called after the index is built.
	// documents is the corpus size, err is nil if successful.
	RecordBuild(documents int, duration time.Duration, err error)

	// RecordSearch is called after each search operation.
	// model names the ranker ("probabilistic" or "vectorspace"),
	// duration is the time taken, err is nil if successful.
	RecordSearch(model string, duration time.Duration, err error)

	// RecordExpand is called after each query expansion.
	// added is the number of terms the expansion contributed.
	RecordExpand(added int, duration time.Duration)

	// RecordMerge is called after each incremental posting merge.
	RecordMerge(duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, time.Duration, error)           {}
func (NoopMetricsCollector) RecordSearch(string, time.Duration, error)       {}
func (NoopMetricsCollector) RecordExpand(int, time.Duration)                 {}
func (NoopMetricsCollector) RecordMerge(time.Duration)                       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount       atomic.Int64
	BuildErrors      atomic.Int64
	SearchCount      atomic.Int64
	SearchErrors     atomic.Int64
	SearchTotalNanos atomic.Int64
	ExpandCount      atomic.Int64
	ExpandTermsAdded atomic.Int64
	MergeCount       atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(documents int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(model string, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
	}
}

// RecordExpand implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExpand(added int, duration time.Duration) {
	b.ExpandCount.Add(1)
	b.ExpandTermsAdded.Add(int64(added))
}

// RecordMerge implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMerge(duration time.Duration) {
	b.MergeCount.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:       b.BuildCount.Load(),
		BuildErrors:      b.BuildErrors.Load(),
		SearchCount:      b.SearchCount.Load(),
		SearchErrors:     b.SearchErrors.Load(),
		SearchAvgNanos:   b.getAvgSearchNanos(),
		ExpandCount:      b.ExpandCount.Load(),
		ExpandTermsAdded: b.ExpandTermsAdded.Load(),
		MergeCount:       b.MergeCount.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSearchNanos() int64 {
	count := b.SearchCount.Load()
	if count == 0 {
		return 0
	}
	return b.SearchTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount       int64
	BuildErrors      int64
	SearchCount      int64
	SearchErrors     int64
	SearchAvgNanos   int64
	ExpandCount      int64
	ExpandTermsAdded int64
	MergeCount       int64
}
