package page

import "strings"

// Separator joins paragraphs inside a chunk. Two newlines is also the
// paragraph-boundary convention in extracted page text.
const Separator = "\n\n"

// Document is one page of extracted text. The name carries the page order
// (a trailing number, e.g. page_0042.md).
type Document struct {
	Name string
	Text string
}

// Chunk is a bounded run of whole paragraphs, the unit of output.
// Size is the rune count of the serialized text, maintained by the packer.
type Chunk struct {
	Ordinal    int // 1-based position in the output sequence
	Paragraphs []string
	Size       int
}

// Text returns the serialized chunk: paragraphs joined by a blank line.
func (c Chunk) Text() string {
	return strings.Join(c.Paragraphs, Separator)
}
