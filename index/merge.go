package index

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// MergePostings incrementally adds frequency information for one term
// across one or more documents.
//
// The raw term is passed through the index's analyzer; a term the analyzer
// filters out entirely (a stopword, under a filtering configuration) makes
// the whole call a no-op. Malformed entries — empty document name or a
// frequency below one — are skipped individually rather than aborting the
// call. A previously unknown document materializes a token multiset of Freq
// repetitions of the term and receives the next dense ordinal; an existing
// document merges frequencies.
//
// This is a point operation, not a batch rebuild: the term's posting list is
// re-sorted after every inserted entry, costing O(postings log postings) per
// call. That is acceptable at the expected low call volume; bulk loading
// belongs in Build.
func (idx *Index) MergePostings(term string, entries []PostingEntry) {
	normalized := idx.analyzer.Analyze(term)
	if len(normalized) != 1 {
		return
	}
	term = normalized[0]

	mutated := false
	for _, entry := range entries {
		if entry.Doc == "" || entry.Freq < 1 {
			continue
		}
		idx.mergeEntry(term, entry)
		mutated = true
	}
	if mutated {
		idx.version++
		idx.computeFingerprint()
	}
}

func (idx *Index) mergeEntry(term string, entry PostingEntry) {
	doc, known := idx.byName[entry.Doc]
	if !known {
		doc = &document{
			ordinal: len(idx.byOrdinal),
			freqs:   make(map[string]int),
		}
		idx.byName[entry.Doc] = doc
		idx.byOrdinal = append(idx.byOrdinal, entry.Doc)

		at := sort.SearchStrings(idx.names, entry.Doc)
		idx.names = append(idx.names, "")
		copy(idx.names[at+1:], idx.names[at:])
		idx.names[at] = entry.Doc
	}

	for i := 0; i < entry.Freq; i++ {
		doc.tokens = append(doc.tokens, term)
	}
	doc.freqs[term] += entry.Freq

	if _, ok := idx.docSets[term]; !ok {
		at := sort.SearchStrings(idx.vocabulary, term)
		if at == len(idx.vocabulary) || idx.vocabulary[at] != term {
			idx.vocabulary = append(idx.vocabulary, "")
			copy(idx.vocabulary[at+1:], idx.vocabulary[at:])
			idx.vocabulary[at] = term
		}
		idx.docSets[term] = roaring.New()
	}
	idx.docSets[term].Add(uint32(doc.ordinal))

	list := idx.postings[term]
	merged := false
	for i := range list {
		if list[i].Doc == entry.Doc {
			list[i].Freq += entry.Freq
			merged = true
			break
		}
	}
	if !merged {
		list = append(list, entry)
	}
	// Point-wise insert with a full re-sort keeps the invariant simple;
	// documented O(n log n) cost per call.
	sort.Slice(list, func(i, j int) bool { return list[i].Doc < list[j].Doc })
	idx.postings[term] = list
}
