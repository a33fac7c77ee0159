// Package corpus loads document collections from tagged article files of
// the form used by news-wire test collections: each document is wrapped in
// <DOC> tags with a <DOCNO> identifier and a <TEXT> body.
package corpus

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrMalformed indicates a document block missing its identifier or body.
var ErrMalformed = errors.New("corpus: malformed document")

// Corpus maps document identifiers to their raw text.
type Corpus map[string]string

// Parse reads a tagged stream and extracts every document in it. A stream
// without <DOC> wrappers is treated as a single document. Identifiers are
// whitespace-trimmed; a later document with the same identifier replaces an
// earlier one.
func Parse(r io.Reader) (Corpus, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("corpus: read: %w", err)
	}

	c := make(Corpus)
	rest := string(data)
	for {
		block, remainder, found := section(rest, "DOC")
		if !found {
			if len(c) == 0 && strings.TrimSpace(rest) != "" {
				block = rest
			} else {
				return c, nil
			}
		}

		docno, _, ok := section(block, "DOCNO")
		if !ok {
			return nil, fmt.Errorf("%w: no <DOCNO>", ErrMalformed)
		}
		text, _, ok := section(block, "TEXT")
		if !ok {
			return nil, fmt.Errorf("%w: no <TEXT> in %q", ErrMalformed, strings.TrimSpace(docno))
		}
		c[strings.TrimSpace(docno)] = text

		if !found {
			return c, nil
		}
		rest = remainder
	}
}

// FromDirectory walks root in lexical order and parses every regular file,
// merging all documents into one corpus. Files carrying no <DOCNO> markup
// at all are skipped; a file that has the markup but is missing its body
// fails the walk.
func FromDirectory(root string) (Corpus, error) {
	c := make(Corpus)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !strings.Contains(string(data), "<DOCNO>") {
			return nil
		}

		docs, err := Parse(strings.NewReader(string(data)))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for id, text := range docs {
			c[id] = text
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// section returns the content between <tag> and </tag> and everything after
// the closing tag.
func section(s, tag string) (content, remainder string, ok bool) {
	open, close := "<"+tag+">", "</"+tag+">"
	i := strings.Index(s, open)
	if i < 0 {
		return "", "", false
	}
	s = s[i+len(open):]
	j := strings.Index(s, close)
	if j < 0 {
		return "", "", false
	}
	return s[:j], s[j+len(close):], true
}
