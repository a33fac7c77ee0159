// Package index implements the inverted index shared by every ranking model.
//
// The index owns the vocabulary, the per-document token multisets, and the
// per-term posting lists. It is built once per (corpus, analysis
// configuration) pair and is read-only afterwards, except for the explicit
// MergePostings operation. Document and term enumeration is always
// lexicographic so that rankings and derived matrices are reproducible
// across runs.
package index

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/RoaringBitmap/roaring/v2"
)

// ErrInvalidDocument reports a corpus value that is not valid text.
//
// Build fails with this error when a document body is not valid UTF-8.
type ErrInvalidDocument struct {
	Doc string
}

func (e *ErrInvalidDocument) Error() string {
	return fmt.Sprintf("document %q: content is not valid text", e.Doc)
}

// PostingEntry records how often a term occurs in one document. A posting
// list holds at most one entry per document and is sorted by document name.
type PostingEntry struct {
	Doc  string
	Freq int
}

// Analyzer normalizes text into an ordered token sequence. It must be the
// same analyzer, with the same configuration, for every document of one
// build and for every query issued against the resulting index.
type Analyzer interface {
	Analyze(text string) []string
}

type document struct {
	ordinal int
	tokens  []string
	freqs   map[string]int
}

// Index is an inverted index over a corpus of named documents.
type Index struct {
	analyzer Analyzer

	names      []string // sorted document names
	byName     map[string]*document
	byOrdinal  []string // ordinal -> name, dense
	vocabulary []string // sorted terms
	postings   map[string][]PostingEntry
	docSets    map[string]*roaring.Bitmap // term -> ordinals of containing docs

	version     uint64
	fingerprint string
}

// Build constructs an index over the given corpus. Every document body is
// normalized with the analyzer; a body that is not valid text fails the
// whole build with ErrInvalidDocument. Ordinal ids are assigned densely in
// lexicographic document-name order.
func Build(corpus map[string]string, analyzer Analyzer) (*Index, error) {
	names := make([]string, 0, len(corpus))
	for name := range corpus {
		names = append(names, name)
	}
	sort.Strings(names)

	idx := &Index{
		analyzer: analyzer,
		names:    names,
		byName:   make(map[string]*document, len(names)),
		postings: make(map[string][]PostingEntry),
		docSets:  make(map[string]*roaring.Bitmap),
	}

	vocab := make(map[string]struct{})
	for i, name := range names {
		body := corpus[name]
		if !utf8.ValidString(body) {
			return nil, &ErrInvalidDocument{Doc: name}
		}

		tokens := analyzer.Analyze(body)
		doc := &document{
			ordinal: i,
			tokens:  tokens,
			freqs:   make(map[string]int),
		}
		for _, tok := range tokens {
			doc.freqs[tok]++
		}
		idx.byName[name] = doc
		idx.byOrdinal = append(idx.byOrdinal, name)

		// The outer loop runs in sorted name order, so appending keeps
		// every posting list sorted by document name.
		for term, freq := range doc.freqs {
			vocab[term] = struct{}{}
			idx.postings[term] = append(idx.postings[term], PostingEntry{Doc: name, Freq: freq})
			set, ok := idx.docSets[term]
			if !ok {
				set = roaring.New()
				idx.docSets[term] = set
			}
			set.Add(uint32(i))
		}
	}

	idx.vocabulary = make([]string, 0, len(vocab))
	for term := range vocab {
		idx.vocabulary = append(idx.vocabulary, term)
	}
	sort.Strings(idx.vocabulary)

	idx.computeFingerprint()
	return idx, nil
}

// Fingerprint returns a stable digest of the index content: document
// names, vocabulary, and posting lists. Two indexes agree on it exactly
// when their contents are identical, so derived artifacts embed it in
// their cache keys and can never be applied to an index other than the one
// they were built from.
func (idx *Index) Fingerprint() string {
	return idx.fingerprint
}

func (idx *Index) computeFingerprint() {
	h := sha256.New()
	for _, name := range idx.names {
		fmt.Fprintf(h, "d\x00%s\x00", name)
	}
	for _, term := range idx.vocabulary {
		fmt.Fprintf(h, "t\x00%s\x00", term)
		for _, p := range idx.postings[term] {
			fmt.Fprintf(h, "p\x00%s\x00%d\x00", p.Doc, p.Freq)
		}
	}
	idx.fingerprint = hex.EncodeToString(h.Sum(nil))[:16]
}

// Version increments on every mutating MergePostings call. Derived
// artifacts key on it so they can never outlive the index state they were
// computed from.
func (idx *Index) Version() uint64 {
	return idx.version
}

// DocumentCount returns the number of indexed documents.
func (idx *Index) DocumentCount() int {
	return len(idx.names)
}

// DocumentNames returns all document names in lexicographic order.
func (idx *Index) DocumentNames() []string {
	out := make([]string, len(idx.names))
	copy(out, idx.names)
	return out
}

// Vocabulary returns all distinct terms in lexicographic order.
func (idx *Index) Vocabulary() []string {
	out := make([]string, len(idx.vocabulary))
	copy(out, idx.vocabulary)
	return out
}

// PostingList returns the posting list for a term, sorted by document name.
// Unknown terms yield an empty list.
func (idx *Index) PostingList(term string) []PostingEntry {
	src := idx.postings[term]
	out := make([]PostingEntry, len(src))
	copy(out, src)
	return out
}

// Documents returns the names of all documents containing the term, sorted.
func (idx *Index) Documents(term string) []string {
	src := idx.postings[term]
	out := make([]string, len(src))
	for i, p := range src {
		out[i] = p.Doc
	}
	return out
}

// DocumentSet returns the set of ordinal ids of documents containing the
// term. Unknown terms yield an empty bitmap. The returned bitmap is a copy
// and may be mutated freely.
func (idx *Index) DocumentSet(term string) *roaring.Bitmap {
	if set, ok := idx.docSets[term]; ok {
		return set.Clone()
	}
	return roaring.New()
}

// Tokens returns the token multiset of a document. Unknown documents yield
// an empty slice.
func (idx *Index) Tokens(doc string) []string {
	d, ok := idx.byName[doc]
	if !ok {
		return nil
	}
	out := make([]string, len(d.tokens))
	copy(out, d.tokens)
	return out
}

// DocumentFrequency returns the number of distinct documents containing the
// term; zero for unknown terms.
func (idx *Index) DocumentFrequency(term string) int {
	return len(idx.postings[term])
}

// DistinctTermCount returns the number of distinct terms in a document;
// zero for unknown documents.
func (idx *Index) DistinctTermCount(doc string) int {
	d, ok := idx.byName[doc]
	if !ok {
		return 0
	}
	return len(d.freqs)
}

// TotalFrequency returns the number of occurrences of a term across the
// whole corpus; zero for unknown terms.
func (idx *Index) TotalFrequency(term string) int {
	total := 0
	for _, p := range idx.postings[term] {
		total += p.Freq
	}
	return total
}

// Frequency returns the number of occurrences of a term within one
// document; zero when either key is unknown.
func (idx *Index) Frequency(term, doc string) int {
	d, ok := idx.byName[doc]
	if !ok {
		return 0
	}
	return d.freqs[term]
}

// VocabularyOf returns the sorted distinct terms occurring in the given
// documents. Unknown document names are ignored.
func (idx *Index) VocabularyOf(docs []string) []string {
	seen := make(map[string]struct{})
	for _, name := range docs {
		d, ok := idx.byName[name]
		if !ok {
			continue
		}
		for term := range d.freqs {
			seen[term] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for term := range seen {
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}

// Ordinal returns the dense ordinal id of a document, or -1 if the document
// is unknown. Ordinals are stable for the lifetime of the index.
func (idx *Index) Ordinal(doc string) int {
	d, ok := idx.byName[doc]
	if !ok {
		return -1
	}
	return d.ordinal
}

// Name returns the document name for an ordinal id, or "" if out of range.
func (idx *Index) Name(ordinal int) string {
	if ordinal < 0 || ordinal >= len(idx.byOrdinal) {
		return ""
	}
	return idx.byOrdinal[ordinal]
}
