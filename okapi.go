package okapi

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okapigo/okapi/analysis"
	"github.com/okapigo/okapi/expand"
	"github.com/okapigo/okapi/index"
	"github.com/okapigo/okapi/matrix"
	"github.com/okapigo/okapi/rank"
	"github.com/okapigo/okapi/resource"
	"golang.org/x/sync/errgroup"
)

// Model selects a ranking model.
type Model int

const (
	// ModelProbabilistic ranks by binary-independence odds-ratio weights.
	ModelProbabilistic Model = iota
	// ModelVectorSpace ranks by TF-IDF cosine similarity.
	ModelVectorSpace
)

// String implements fmt.Stringer.
func (m Model) String() string {
	switch m {
	case ModelProbabilistic:
		return "probabilistic"
	case ModelVectorSpace:
		return "vectorspace"
	default:
		return fmt.Sprintf("model(%d)", int(m))
	}
}

// Engine is an embedded lexical retrieval engine over a fixed corpus.
//
// All methods are safe for concurrent use. The inverted index is immutable
// after construction except for MergePostings, which invalidates derived
// matrices atomically with the index change.
type Engine struct {
	opts     options
	analyzer analysis.Analyzer
	ctrl     *resource.Controller

	mu    sync.RWMutex
	idx   *index.Index
	cache *matrix.Cache
}

// New builds an engine over docs, a mapping from document name to raw text.
// The corpus is normalized and indexed once, up front; ErrInvalidDocument
// is returned if any document value is not valid text.
func New(ctx context.Context, docs map[string]string, optFns ...Option) (*Engine, error) {
	o := applyOptions(optFns)
	analyzer := analysis.New(o.analysis)

	var ctrl *resource.Controller
	if o.maxConcurrent > 0 || o.uploadLimit > 0 {
		ctrl = resource.NewController(resource.Config{
			MaxConcurrentQueries:   o.maxConcurrent,
			UploadLimitBytesPerSec: o.uploadLimit,
		})
	}

	start := time.Now()
	idx, err := index.Build(docs, analyzer)
	o.metricsCollector.RecordBuild(len(docs), time.Since(start), err)
	if err != nil {
		err = translateError(err)
		o.logger.LogBuild(ctx, len(docs), 0, err)
		return nil, err
	}
	o.logger.LogBuild(ctx, idx.DocumentCount(), len(idx.Vocabulary()), nil)

	var throttle matrix.UploadThrottle
	if ctrl != nil {
		throttle = ctrl
	}
	cache := matrix.NewCache(matrix.CacheConfig{
		Store:          o.matrixStore,
		Codec:          o.codec,
		Compression:    o.compression,
		UploadThrottle: throttle,
		Logger:         o.logger.Logger,
	})

	return &Engine{
		opts:     o,
		analyzer: analyzer,
		ctrl:     ctrl,
		idx:      idx,
		cache:    cache,
	}, nil
}

// SearchOptions carries per-search settings.
type SearchOptions struct {
	// Relevant names documents known to be relevant; the probabilistic
	// model folds them into its term weights. Ignored by the vector-space
	// model.
	Relevant []string

	// ExpandTop and ExpandWidth enable implicit relevance feedback: the
	// query is expanded with ExpandWidth correlated terms per query term,
	// drawn from the ExpandTop highest-ranked documents of a first pass,
	// and the expanded query is re-ranked. Both must be positive to take
	// effect.
	ExpandTop   int
	ExpandWidth int
}

// SearchOption mutates SearchOptions.
type SearchOption func(*SearchOptions)

// WithRelevant marks documents as known-relevant for probabilistic
// feedback.
func WithRelevant(names ...string) SearchOption {
	return func(o *SearchOptions) {
		o.Relevant = append(o.Relevant, names...)
	}
}

// WithExpansion enables implicit feedback with the given number of feedback
// documents and expansion terms per query term.
func WithExpansion(top, width int) SearchOption {
	return func(o *SearchOptions) {
		o.ExpandTop = top
		o.ExpandWidth = width
	}
}

func applySearchOptions(optFns []SearchOption) SearchOptions {
	var o SearchOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// ProbabilisticSearch ranks the corpus against query with the probabilistic
// model, most relevant first.
func (e *Engine) ProbabilisticSearch(ctx context.Context, query string, optFns ...SearchOption) (rank.Ranking, error) {
	return e.search(ctx, ModelProbabilistic, query, applySearchOptions(optFns))
}

// VectorSpaceSearch ranks the corpus against query with the vector-space
// model, most similar first. Documents below the relevance threshold are
// omitted.
func (e *Engine) VectorSpaceSearch(ctx context.Context, query string, optFns ...SearchOption) (rank.Ranking, error) {
	return e.search(ctx, ModelVectorSpace, query, applySearchOptions(optFns))
}

func (e *Engine) search(ctx context.Context, model Model, query string, o SearchOptions) (rank.Ranking, error) {
	start := time.Now()
	ranking, terms, err := e.doSearch(ctx, model, query, o)
	e.opts.metricsCollector.RecordSearch(model.String(), time.Since(start), err)
	e.opts.logger.LogSearch(ctx, model.String(), len(terms), len(ranking), err)
	return ranking, err
}

func (e *Engine) doSearch(ctx context.Context, model Model, query string, o SearchOptions) (rank.Ranking, []string, error) {
	release, err := e.acquireQuery(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer release()

	terms := e.analyzer.Analyze(query)
	if len(terms) == 0 {
		return nil, nil, ErrEmptyQuery
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	ranker, err := e.ranker(ctx, model)
	if err != nil {
		return nil, terms, err
	}

	ranking := ranker(terms, o.Relevant)
	if o.ExpandTop > 0 && o.ExpandWidth > 0 && len(ranking) > 0 {
		expanded := e.expandLocked(ctx, terms, ranking.Top(o.ExpandTop), o.ExpandWidth)
		ranking = ranker(expanded, o.Relevant)
	}
	return ranking, terms, nil
}

// ranker returns a closure scoring analyzed terms with the given model.
// Callers must hold e.mu.
func (e *Engine) ranker(ctx context.Context, model Model) (func(terms, relevant []string) rank.Ranking, error) {
	switch model {
	case ModelProbabilistic:
		p := rank.NewProbabilistic(e.idx)
		return func(terms, relevant []string) rank.Ranking {
			return p.Rank(terms, relevant)
		}, nil
	case ModelVectorSpace:
		td, err := e.termMatrixLocked(ctx)
		if err != nil {
			return nil, err
		}
		v := rank.NewVectorSpace(e.idx, td, e.opts.threshold)
		return func(terms, _ []string) rank.Ranking {
			return v.Rank(terms)
		}, nil
	default:
		return nil, fmt.Errorf("unknown model: %s", model)
	}
}

// BatchSearch ranks every query with the given model concurrently and
// returns rankings in query order. The first error cancels the remaining
// queries.
func (e *Engine) BatchSearch(ctx context.Context, model Model, queries []string, optFns ...SearchOption) ([]rank.Ranking, error) {
	o := applySearchOptions(optFns)
	rankings := make([]rank.Ranking, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	for i, query := range queries {
		i, query := i, query
		g.Go(func() error {
			ranking, err := e.search(gctx, model, query, o)
			if err != nil {
				return fmt.Errorf("query %q: %w", query, err)
			}
			rankings[i] = ranking
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rankings, nil
}

// ExpandQuery normalizes query and enlarges it with terms correlated to it
// inside the feedback documents, width terms per query term occurrence. The
// result is sorted and always contains the normalized query.
func (e *Engine) ExpandQuery(ctx context.Context, query string, feedback []string, width int) []string {
	terms := e.analyzer.Analyze(query)

	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.expandLocked(ctx, terms, feedback, width)
}

// expandLocked runs expansion against the current index. Callers must hold
// e.mu.
func (e *Engine) expandLocked(ctx context.Context, terms, feedback []string, width int) []string {
	start := time.Now()
	expanded := expand.NewExpander(e.idx).Expand(terms, feedback, width)
	e.opts.metricsCollector.RecordExpand(len(expanded)-len(terms), time.Since(start))
	e.opts.logger.LogExpand(ctx, len(terms), len(expanded), len(feedback))
	return expanded
}

// MergePostings incrementally folds posting entries for one raw term into
// the index. The term passes through the same normalization as document
// text; entries with an empty document name or a non-positive frequency are
// skipped. Derived matrices are invalidated if the index changed.
func (e *Engine) MergePostings(ctx context.Context, term string, entries []index.PostingEntry) {
	start := time.Now()

	e.mu.Lock()
	before := e.idx.Version()
	e.idx.MergePostings(term, entries)
	changed := e.idx.Version() != before
	if changed {
		e.cache.Invalidate()
	}
	version := e.idx.Version()
	e.mu.Unlock()

	e.opts.metricsCollector.RecordMerge(time.Since(start))
	if changed {
		e.opts.logger.LogMerge(ctx, term, len(entries), version)
	}
}

// Analyze exposes the engine's text normalization: the exact token stream
// indexing and querying see for the given text.
func (e *Engine) Analyze(text string) []string {
	return e.analyzer.Analyze(text)
}

// Stats reports engine state counters.
type Stats struct {
	Documents       int
	DistinctTerms   int
	IndexVersion    uint64
	InFlightQueries int64
}

// Stats returns a snapshot of engine state.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Stats{
		Documents:       e.idx.DocumentCount(),
		DistinctTerms:   len(e.idx.Vocabulary()),
		IndexVersion:    e.idx.Version(),
		InFlightQueries: e.ctrl.InFlight(),
	}
}

// termMatrixLocked returns the term-document matrix for the current index
// and analysis configuration, building or loading it on first use. The key
// embeds the index fingerprint, so engines over different corpora can share
// one store without ever loading each other's artifacts. Callers must hold
// e.mu.
func (e *Engine) termMatrixLocked(ctx context.Context) (*matrix.TermDocument, error) {
	key := fmt.Sprintf("tdm-%s-%s-v%d", e.analyzer.Config().Key(), e.idx.Fingerprint(), e.idx.Version())
	idx := e.idx
	return e.cache.Get(ctx, key, func() *matrix.TermDocument {
		return matrix.Build(idx)
	})
}

func (e *Engine) acquireQuery(ctx context.Context) (release func(), err error) {
	if e.opts.maxConcurrent <= 0 {
		return func() {}, nil
	}
	if err := e.ctrl.AcquireQuery(ctx); err != nil {
		return nil, err
	}
	return e.ctrl.ReleaseQuery, nil
}
