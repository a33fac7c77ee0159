// Package expand grows queries with terms that co-occur with the original
// query inside a set of feedback documents, typically the top results of a
// first retrieval pass.
package expand

import (
	"sort"

	"github.com/okapigo/okapi/index"
)

// Expander selects expansion terms from the local vocabulary of feedback
// documents using Dice-normalized term co-occurrence.
type Expander struct {
	idx *index.Index
}

// NewExpander creates an expander over idx.
func NewExpander(idx *index.Index) *Expander {
	return &Expander{idx: idx}
}

// Expand returns the query enlarged with correlated terms and sorted. For
// every occurrence of a query term, the width vocabulary terms most strongly
// correlated with it across docs are added, so repeated query terms pull in
// their expansions repeatedly. Ties in correlation break toward the
// lexicographically smaller term. Query terms absent from the feedback
// vocabulary, a non-positive width, or an empty docs slice leave the query
// unchanged apart from sorting.
func (e *Expander) Expand(query, docs []string, width int) []string {
	out := append([]string(nil), query...)
	sort.Strings(out)
	if width <= 0 || len(query) == 0 || len(docs) == 0 {
		return out
	}

	vocab := e.idx.VocabularyOf(docs)
	if len(vocab) == 0 {
		return out
	}
	pos := make(map[string]int, len(vocab))
	for i, term := range vocab {
		pos[term] = i
	}

	// Term-frequency rows restricted to the feedback documents. The
	// co-occurrence products below are the entries of M * M^T for this
	// local matrix.
	rows := make([][]float64, len(vocab))
	self := make([]float64, len(vocab))
	for i, term := range vocab {
		row := make([]float64, len(docs))
		for j, doc := range docs {
			row[j] = float64(e.idx.Frequency(term, doc))
			self[i] += row[j] * row[j]
		}
		rows[i] = row
	}

	memo := make(map[string][]string, len(query))
	for _, term := range query {
		picked, seen := memo[term]
		if !seen {
			picked = e.correlated(term, vocab, pos, rows, self, width)
			memo[term] = picked
		}
		out = append(out, picked...)
	}
	sort.Strings(out)
	return out
}

type candidate struct {
	term string
	corr float64
}

// correlated returns up to width vocabulary terms ordered by descending
// Dice coefficient with term, excluding term itself.
func (e *Expander) correlated(term string, vocab []string, pos map[string]int, rows [][]float64, self []float64, width int) []string {
	qi, ok := pos[term]
	if !ok {
		return nil
	}

	cands := make([]candidate, 0, len(vocab)-1)
	for vi, v := range vocab {
		if vi == qi {
			continue
		}
		var cross float64
		for j := range rows[qi] {
			cross += rows[qi][j] * rows[vi][j]
		}
		var corr float64
		if denom := self[qi] + self[vi] - cross; denom != 0 {
			corr = cross / denom
		}
		cands = append(cands, candidate{term: v, corr: corr})
	}
	sort.Slice(cands, func(a, b int) bool {
		if cands[a].corr != cands[b].corr {
			return cands[a].corr > cands[b].corr
		}
		return cands[a].term < cands[b].term
	})

	if width > len(cands) {
		width = len(cands)
	}
	picked := make([]string, 0, width)
	for _, c := range cands[:width] {
		picked = append(picked, c.term)
	}
	return picked
}
