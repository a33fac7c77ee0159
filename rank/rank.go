// Package rank implements the two retrieval models: the odds-ratio
// probabilistic model and the TF-IDF cosine vector-space model.
//
// Both rankers share the output contract: documents sorted by strictly
// descending score, ties broken by document name ascending, no duplicates,
// and never more entries than the corpus has documents. Documents that do
// not clear the model's relevance bar are absent, not zero-scored.
package rank

import "sort"

// ScoredDocument pairs a document name with its score under one model. The
// score is a log-odds sum for the probabilistic model and a cosine
// similarity for the vector-space model.
type ScoredDocument struct {
	Name  string
	Score float64
}

// Ranking is an ordered retrieval result, most relevant first.
type Ranking []ScoredDocument

// Names returns the document names in ranking order.
func (r Ranking) Names() []string {
	names := make([]string, len(r))
	for i, d := range r {
		names[i] = d.Name
	}
	return names
}

// Top returns the first k document names, or all of them if the ranking is
// shorter.
func (r Ranking) Top(k int) []string {
	if k > len(r) {
		k = len(r)
	}
	return r[:k].Names()
}

// sortRanking orders by descending score with the documented tie-break:
// equal scores order by document name ascending.
func sortRanking(r Ranking) {
	sort.Slice(r, func(i, j int) bool {
		if r[i].Score != r[j].Score {
			return r[i].Score > r[j].Score
		}
		return r[i].Name < r[j].Name
	})
}
