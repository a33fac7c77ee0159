package rank

import (
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/okapigo/okapi/index"
)

// Probabilistic scores documents with the Robertson/Sparck-Jones odds-ratio
// relevance model over posting-list statistics, optionally biased by a set
// of known-relevant documents.
type Probabilistic struct {
	idx *index.Index
}

// NewProbabilistic creates a probabilistic ranker over the given index.
func NewProbabilistic(idx *index.Index) *Probabilistic {
	return &Probabilistic{idx: idx}
}

// Rank scores every document containing at least one query term and returns
// those with non-negative score, most relevant first. The relevant set may
// be empty; duplicate names within it are counted once, and names unknown
// to the index are ignored, so the effective set is always a subset of the
// corpus and every odds factor stays positive.
//
// With N the corpus size, n the document frequency of a query term, R the
// relevant-set size, and r the number of relevant documents containing the
// term, each distinct query term present in a document contributes
//
//	log10( (r+0.5)(N - n' - R + r + 0.5) / ((R - r + 0.5)(n - r + 0.5)) )
//
// where n' = n unless n > N/2, in which case n' = 0 — overly common terms
// are down-weighted instead of penalizing documents that lack rare terms.
func (p *Probabilistic) Rank(query []string, relevant []string) Ranking {
	n := p.idx.DocumentCount()

	relSet := roaring.New()
	relSize := 0
	seen := make(map[string]struct{}, len(relevant))
	for _, name := range relevant {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		if ord := p.idx.Ordinal(name); ord >= 0 {
			relSet.Add(uint32(ord))
			relSize++
		}
	}

	scores := make(map[uint32]float64)
	done := make(map[string]struct{}, len(query))
	for _, term := range query {
		if _, dup := done[term]; dup {
			continue
		}
		done[term] = struct{}{}

		df := p.idx.DocumentFrequency(term)
		if df == 0 {
			// Unindexed term: zero contribution, never a math error.
			continue
		}

		docs := p.idx.DocumentSet(term)
		r := int(roaring.And(docs, relSet).GetCardinality())
		w := termWeight(n, df, relSize, r)

		it := docs.Iterator()
		for it.HasNext() {
			scores[it.Next()] += w
		}
	}

	ranking := make(Ranking, 0, len(scores))
	for ord, score := range scores {
		// Only documents containing at least one query term are scored at
		// all; among those, a negative accumulated weight means the query
		// evidence argues against relevance, so the document is dropped.
		if score < 0 {
			continue
		}
		ranking = append(ranking, ScoredDocument{Name: p.idx.Name(int(ord)), Score: score})
	}
	sortRanking(ranking)
	return ranking
}

func termWeight(n, df, relSize, r int) float64 {
	// n' = df, zeroed for terms in more than half the corpus.
	dfAdj := df
	if float64(df) > float64(n)/2 {
		dfAdj = 0
	}

	// All four factors stay positive: r <= relSize and r <= df by
	// construction, and relSize only counts documents that exist in the
	// corpus, so n - dfAdj - relSize + r >= 0 by inclusion-exclusion and
	// the +0.5 offsets keep every factor off zero even with an empty
	// relevant set.
	num := (float64(r) + 0.5) * (float64(n-dfAdj-relSize+r) + 0.5)
	den := (float64(relSize-r) + 0.5) * (float64(df-r) + 0.5)
	return math.Log10(num / den)
}
