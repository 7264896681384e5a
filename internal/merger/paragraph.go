package merger

import (
	"regexp"
	"strings"
)

// paragraphBreak is the paragraph-boundary definition: a run of two or more
// consecutive newlines. Single newlines are soft breaks inside a paragraph
// and are preserved.
var paragraphBreak = regexp.MustCompile(`\n{2,}`)

// Segments is the tagged result of segmenting page text. Trailing holds the
// last paragraph, which is only provisionally complete: whether it may be
// emitted depends on how the underlying page ended (see EndsOnBoundary).
type Segments struct {
	Complete []string
	Trailing string
}

// SplitParagraphs splits text on blank-line boundaries. Each paragraph is
// trimmed of surrounding whitespace; empty paragraphs are dropped.
func SplitParagraphs(text string) []string {
	var out []string
	for _, p := range paragraphBreak.Split(normalizeNewlines(text), -1) {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Segment splits merged page text into complete paragraphs plus the trailing
// paragraph. Input with no paragraphs yields the zero value.
func Segment(text string) Segments {
	paras := SplitParagraphs(text)
	if len(paras) == 0 {
		return Segments{}
	}
	return Segments{
		Complete: paras[:len(paras)-1],
		Trailing: paras[len(paras)-1],
	}
}

// EndsOnBoundary reports whether raw page text ends on a paragraph boundary,
// i.e. the page source contained at least one trailing blank line. Pages that
// end mid-paragraph hand their last paragraph to the next page instead.
func EndsOnBoundary(text string) bool {
	newlines := 0
	for i := len(text) - 1; i >= 0; i-- {
		switch text[i] {
		case '\n':
			newlines++
		case '\r', ' ', '\t':
			// Horizontal whitespace on a blank line still counts as blank.
		default:
			return newlines >= 2
		}
	}
	return newlines >= 2
}

func normalizeNewlines(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
