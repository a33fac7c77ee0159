package okapi

import (
	"log/slog"

	"github.com/okapigo/okapi/analysis"
	"github.com/okapigo/okapi/blobstore"
	"github.com/okapigo/okapi/codec"
)

type options struct {
	analysis         analysis.Config
	threshold        float64
	matrixStore      blobstore.Store
	codec            codec.Codec
	compression      codec.Compression
	metricsCollector MetricsCollector
	logger           *Logger
	maxConcurrent    int64
	uploadLimit      int64
}

// Option configures Engine construction behavior.
type Option func(*options)

// WithStopwordFilter drops common English function words during text
// normalization, for documents and queries alike.
func WithStopwordFilter() Option {
	return func(o *options) {
		o.analysis.FilterStopwords = true
	}
}

// WithStemming reduces normalized tokens to their Snowball stem.
func WithStemming() Option {
	return func(o *options) {
		o.analysis.StemTokens = true
	}
}

// WithRelevanceThreshold sets the cosine similarity floor for vector-space
// results. Non-positive values keep the default.
func WithRelevanceThreshold(threshold float64) Option {
	return func(o *options) {
		o.threshold = threshold
	}
}

// WithMatrixStore persists derived term-document matrices to the given
// store so later processes with the same corpus and configuration skip the
// rebuild. The store holds no independent truth: a missing or corrupt
// artifact only costs a recomputation.
func WithMatrixStore(store blobstore.Store) Option {
	return func(o *options) {
		o.matrixStore = store
	}
}

// WithCodec configures the codec used for matrix artifacts.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression compresses matrix artifacts before they reach the store.
func WithCompression(compression codec.Compression) Option {
	return func(o *options) {
		o.compression = compression
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMaxConcurrentQueries caps how many searches may run at once. Zero or
// negative leaves concurrency unbounded.
func WithMaxConcurrentQueries(n int64) Option {
	return func(o *options) {
		o.maxConcurrent = n
	}
}

// WithUploadRateLimit throttles matrix artifact uploads to the given
// throughput. Zero or negative disables throttling.
func WithUploadRateLimit(bytesPerSec int64) Option {
	return func(o *options) {
		o.uploadLimit = bytesPerSec
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
