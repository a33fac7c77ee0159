// Package matrix provides the sparse term-document TF-IDF matrix consumed
// by the vector-space ranker, and a cache that memoizes it per index
// configuration.
//
// The matrix is derived data: a pure function of the index it was built
// from. It can be recomputed at any time and holds no independent truth,
// which is why cache failures only ever cost a rebuild.
package matrix

import (
	"fmt"
	"math"

	"github.com/okapigo/okapi/codec"
	"github.com/okapigo/okapi/index"
)

// TermDocument is a sparse |vocabulary| x |documents| matrix of TF-IDF
// weights. Rows are terms in lexicographic order; columns are documents
// addressed by their ordinal id. It is immutable after Build.
type TermDocument struct {
	terms     []string
	termIndex map[string]int
	idf       []float64
	rows      []row
	norms     []float64 // per-column L2 norms
	docCount  int
}

// row holds the non-zero column entries for one term.
type row struct {
	ordinals []int32
	weights  []float64
}

// Build computes the matrix from the current state of the index. The weight
// of term t in document d is (1 + log2(tf)) * log2(N/n), zero for absent
// terms.
func Build(idx *index.Index) *TermDocument {
	terms := idx.Vocabulary()
	n := idx.DocumentCount()

	td := &TermDocument{
		terms:     terms,
		termIndex: make(map[string]int, len(terms)),
		idf:       make([]float64, len(terms)),
		rows:      make([]row, len(terms)),
		norms:     make([]float64, n),
		docCount:  n,
	}

	for i, term := range terms {
		td.termIndex[term] = i

		df := idx.DocumentFrequency(term)
		if df == 0 {
			continue
		}
		idf := math.Log2(float64(n) / float64(df))
		td.idf[i] = idf

		postings := idx.PostingList(term)
		r := row{
			ordinals: make([]int32, 0, len(postings)),
			weights:  make([]float64, 0, len(postings)),
		}
		for _, p := range postings {
			ord := idx.Ordinal(p.Doc)
			if ord < 0 {
				continue
			}
			w := (1 + math.Log2(float64(p.Freq))) * idf
			r.ordinals = append(r.ordinals, int32(ord))
			r.weights = append(r.weights, w)
			td.norms[ord] += w * w
		}
		td.rows[i] = r
	}

	for i := range td.norms {
		td.norms[i] = math.Sqrt(td.norms[i])
	}
	return td
}

// Terms returns the matrix row labels in lexicographic order.
func (td *TermDocument) Terms() []string {
	out := make([]string, len(td.terms))
	copy(out, td.terms)
	return out
}

// TermIndex returns the row index for a term.
func (td *TermDocument) TermIndex(term string) (int, bool) {
	i, ok := td.termIndex[term]
	return i, ok
}

// IDF returns the inverse document frequency of the term at row i.
func (td *TermDocument) IDF(i int) float64 {
	return td.idf[i]
}

// Row returns the non-zero (document ordinal, weight) pairs of row i. The
// returned slices are shared and must not be modified.
func (td *TermDocument) Row(i int) ([]int32, []float64) {
	return td.rows[i].ordinals, td.rows[i].weights
}

// Weight returns the TF-IDF weight of the term in the document with the
// given ordinal; zero when the term is absent.
func (td *TermDocument) Weight(term string, ordinal int) float64 {
	i, ok := td.termIndex[term]
	if !ok {
		return 0
	}
	r := td.rows[i]
	for k, ord := range r.ordinals {
		if int(ord) == ordinal {
			return r.weights[k]
		}
	}
	return 0
}

// Norm returns the L2 norm of the document column with the given ordinal;
// zero for documents with no indexed terms or out-of-range ordinals.
func (td *TermDocument) Norm(ordinal int) float64 {
	if ordinal < 0 || ordinal >= len(td.norms) {
		return 0
	}
	return td.norms[ordinal]
}

// DocumentCount returns the number of columns.
func (td *TermDocument) DocumentCount() int {
	return td.docCount
}

// snapshot is the serialized form of a TermDocument. The layout is opaque to
// callers; only this package reads and writes it.
type snapshot struct {
	Terms    []string    `json:"terms"`
	IDF      []float64   `json:"idf"`
	Ordinals [][]int32   `json:"ordinals"`
	Weights  [][]float64 `json:"weights"`
	Norms    []float64   `json:"norms"`
	DocCount int         `json:"doc_count"`
}

// Encode serializes the matrix with the given codec.
func (td *TermDocument) Encode(c codec.Codec) ([]byte, error) {
	snap := snapshot{
		Terms:    td.terms,
		IDF:      td.idf,
		Ordinals: make([][]int32, len(td.rows)),
		Weights:  make([][]float64, len(td.rows)),
		Norms:    td.norms,
		DocCount: td.docCount,
	}
	for i, r := range td.rows {
		snap.Ordinals[i] = r.ordinals
		snap.Weights[i] = r.weights
	}
	return c.Marshal(snap)
}

// Decode reconstructs a matrix serialized by Encode.
func Decode(c codec.Codec, data []byte) (*TermDocument, error) {
	var snap snapshot
	if err := c.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode term-document matrix: %w", err)
	}
	if len(snap.Ordinals) != len(snap.Terms) || len(snap.Weights) != len(snap.Terms) || len(snap.IDF) != len(snap.Terms) {
		return nil, fmt.Errorf("decode term-document matrix: inconsistent row counts")
	}
	if snap.DocCount < 0 || len(snap.Norms) != snap.DocCount {
		return nil, fmt.Errorf("decode term-document matrix: %d norms for %d documents", len(snap.Norms), snap.DocCount)
	}
	for i := range snap.Ordinals {
		if len(snap.Ordinals[i]) != len(snap.Weights[i]) {
			return nil, fmt.Errorf("decode term-document matrix: row %d length mismatch", i)
		}
		for _, ord := range snap.Ordinals[i] {
			if ord < 0 || int(ord) >= snap.DocCount {
				return nil, fmt.Errorf("decode term-document matrix: ordinal %d out of range [0,%d)", ord, snap.DocCount)
			}
		}
	}

	td := &TermDocument{
		terms:     snap.Terms,
		termIndex: make(map[string]int, len(snap.Terms)),
		idf:       snap.IDF,
		rows:      make([]row, len(snap.Terms)),
		norms:     snap.Norms,
		docCount:  snap.DocCount,
	}
	for i, term := range snap.Terms {
		td.termIndex[term] = i
		td.rows[i] = row{ordinals: snap.Ordinals[i], weights: snap.Weights[i]}
	}
	return td, nil
}
