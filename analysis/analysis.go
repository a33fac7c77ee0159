// Package analysis turns raw text into the normalized token stream shared by
// index construction and query evaluation.
//
// The pipeline lower-cases the input, strips characters that are neither
// alphanumeric nor whitespace, splits on whitespace, and then optionally
// drops English stopwords and applies Snowball stemming. Both switches are
// explicit configuration rather than process-wide state, so analyzers with
// different settings can coexist in one process. An index must be queried
// with the same Config it was built with; Config.Key is the cache-key
// component that keeps derived artifacts separated per configuration.
package analysis

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// Config selects the normalization steps applied after tokenization.
type Config struct {
	// FilterStopwords drops common English words before stemming.
	FilterStopwords bool
	// StemTokens reduces each token to its Snowball (Porter2) stem.
	StemTokens bool
}

// Key returns a short stable identifier for the configuration, used to key
// derived artifacts such as cached term-document matrices.
func (c Config) Key() string {
	return fmt.Sprintf("sw%d-st%d", boolBit(c.FilterStopwords), boolBit(c.StemTokens))
}

func boolBit(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Analyzer normalizes text into tokens. The zero value applies no stopword
// filtering and no stemming.
type Analyzer struct {
	cfg Config
}

// New creates an Analyzer for the given configuration.
func New(cfg Config) Analyzer {
	return Analyzer{cfg: cfg}
}

// Config returns the configuration the analyzer was created with.
func (a Analyzer) Config() Config {
	return a.cfg
}

// Analyze returns the ordered token sequence for the given text. Repeated
// terms are preserved; scoring layers treat the result as a multiset.
func (a Analyzer) Analyze(text string) []string {
	fields := strings.FieldsFunc(scrub(text), unicode.IsSpace)

	tokens := make([]string, 0, len(fields))
	for _, w := range fields {
		if a.cfg.FilterStopwords {
			if _, stop := stopwords[w]; stop {
				continue
			}
		}
		if a.cfg.StemTokens {
			w = english.Stem(w, true)
		}
		if w == "" {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// scrub lower-cases the text and removes every rune that is neither
// alphanumeric nor whitespace, mirroring the cleanup applied to both corpus
// documents and queries.
func scrub(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || unicode.IsSpace(r) {
			b.WriteRune(r)
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
