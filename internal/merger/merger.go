// Package merger re-segments ordered per-page text documents into bounded
// chunks that never break inside a paragraph. A paragraph that alone exceeds
// the bound is split at sentence boundaries only; a single over-long sentence
// is emitted unmodified. The whole pipeline is a strict left-fold over the
// page sequence: each step threads the carry buffer (a paragraph cut by a
// page break) and the open chunk through to the next page.
package merger

import (
	"errors"
	"fmt"

	"github.com/dgallion1/pagemerge/internal/page"
)

// DefaultMaxChars is the chunk size bound used when callers pass nothing.
const DefaultMaxChars = 2000

// ErrNoPages is returned when the source yields no page documents.
// Nothing to merge is a caller usage error, not a runtime fault.
var ErrNoPages = errors.New("no page documents to merge")

// Merger folds ordered page documents into bounded chunks.
type Merger struct {
	maxChars int
}

// New returns a merger with the given chunk size bound in runes.
func New(maxChars int) (*Merger, error) {
	if maxChars <= 0 {
		return nil, fmt.Errorf("max chars must be positive, got %d", maxChars)
	}
	return &Merger{maxChars: maxChars}, nil
}

// Merge sorts pages by their trailing page number (in place) and packs their
// paragraphs into chunks. Empty pages contribute nothing. Given the same
// pages and bound, the result is exactly reproducible.
func (m *Merger) Merge(docs []page.Document) ([]page.Chunk, error) {
	if len(docs) == 0 {
		return nil, ErrNoPages
	}
	SortDocuments(docs)

	packer := NewPacker(m.maxChars)
	carry := ""
	for _, doc := range docs {
		carry = foldPage(packer, carry, doc.Text)
	}
	// The last page may still have held its final paragraph back.
	if carry != "" {
		packer.Add(carry)
	}
	return packer.Chunks(), nil
}

// foldPage is one step of the fold: the pending carry text plus one page in,
// the next carry text out. Carry is joined to the page by direct
// concatenation, no separator, so a paragraph cut mid-sentence by the page
// break re-merges into a single paragraph.
func foldPage(packer *Packer, carry, text string) string {
	merged := text
	if carry != "" {
		merged = carry + text
	}

	seg := Segment(merged)
	for _, para := range seg.Complete {
		packer.Add(para)
	}
	if seg.Trailing == "" {
		return ""
	}

	// Completeness is judged on the page's own raw text, independent of the
	// carry merge: only a trailing blank line on the page itself proves the
	// last paragraph ended.
	if EndsOnBoundary(text) {
		packer.Add(seg.Trailing)
		return ""
	}
	return seg.Trailing
}
