package merger

import "github.com/dgallion1/pagemerge/internal/page"

// separatorLen is the serialized length of the blank-line separator between
// paragraphs in a chunk.
const separatorLen = len(page.Separator)

// Packer greedily accumulates units (complete paragraphs or sentence
// fragment-groups) into bounded chunks. Only the last chunk is ever open for
// appending; earlier chunks are sealed.
type Packer struct {
	maxChars int
	chunks   []page.Chunk
}

// NewPacker returns a packer producing chunks of at most maxChars runes,
// except for single unsplittable sentence fragments.
func NewPacker(maxChars int) *Packer {
	return &Packer{maxChars: maxChars}
}

// Add routes one complete paragraph into the chunk sequence. A paragraph that
// alone exceeds the bound is first broken at sentence boundaries; every
// resulting fragment-group then follows the same per-unit packing rule, so
// the first group may still merge into the previous chunk if it fits.
func (p *Packer) Add(paragraph string) {
	if runeLen(paragraph) > p.maxChars {
		for _, group := range BreakParagraph(paragraph, p.maxChars) {
			p.place(group)
		}
		return
	}
	p.place(paragraph)
}

// place applies the per-unit rule: append to the open chunk when the unit
// still fits under the bound, otherwise seal it and open a new chunk.
func (p *Packer) place(unit string) {
	if n := len(p.chunks); n > 0 {
		last := &p.chunks[n-1]
		if last.Size+separatorLen+runeLen(unit) <= p.maxChars {
			last.Paragraphs = append(last.Paragraphs, unit)
			last.Size += separatorLen + runeLen(unit)
			return
		}
	}
	p.chunks = append(p.chunks, page.Chunk{
		Ordinal:    len(p.chunks) + 1,
		Paragraphs: []string{unit},
		Size:       runeLen(unit),
	})
}

// Chunks returns the chunk sequence packed so far.
func (p *Packer) Chunks() []page.Chunk {
	return p.chunks
}
