package rank

import (
	"math"

	"github.com/okapigo/okapi/index"
	"github.com/okapigo/okapi/matrix"
)

// DefaultRelevanceThreshold is the similarity floor below which documents
// are dropped from vector-space output. The value is empirical: cosine
// scores under 1e-2 are indistinguishable from incidental term overlap.
const DefaultRelevanceThreshold = 1e-2

// VectorSpace scores documents by cosine similarity between a TF-IDF query
// vector and the document columns of a term-document matrix.
type VectorSpace struct {
	idx       *index.Index
	td        *matrix.TermDocument
	threshold float64
}

// NewVectorSpace creates a vector-space ranker over the given index and its
// derived matrix. A non-positive threshold falls back to
// DefaultRelevanceThreshold.
func NewVectorSpace(idx *index.Index, td *matrix.TermDocument, threshold float64) *VectorSpace {
	if threshold <= 0 {
		threshold = DefaultRelevanceThreshold
	}
	return &VectorSpace{idx: idx, td: td, threshold: threshold}
}

// Threshold reports the similarity floor in effect.
func (v *VectorSpace) Threshold() float64 {
	return v.threshold
}

// Rank builds the query vector with the same (1 + log2(tf)) * idf weighting
// as the matrix columns, using within-query term frequency, and returns all
// documents whose similarity dot(q, d) / ||d|| clears the threshold, most
// similar first. Documents with a zero-norm column are excluded rather than
// divided by.
func (v *VectorSpace) Rank(query []string) Ranking {
	qtf := make(map[string]int, len(query))
	for _, term := range query {
		qtf[term]++
	}

	scores := make([]float64, v.td.DocumentCount())
	for term, tf := range qtf {
		i, ok := v.td.TermIndex(term)
		if !ok {
			continue
		}
		idf := v.td.IDF(i)
		if idf == 0 {
			continue
		}
		qw := (1 + math.Log2(float64(tf))) * idf

		ordinals, weights := v.td.Row(i)
		for k, ord := range ordinals {
			scores[ord] += qw * weights[k]
		}
	}

	ranking := make(Ranking, 0, len(scores))
	for ord, dot := range scores {
		norm := v.td.Norm(ord)
		if norm == 0 {
			continue
		}
		sim := dot / norm
		if sim <= v.threshold {
			continue
		}
		ranking = append(ranking, ScoredDocument{Name: v.idx.Name(ord), Score: sim})
	}
	sortRanking(ranking)
	return ranking
}
