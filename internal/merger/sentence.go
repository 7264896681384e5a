package merger

import (
	"strings"
	"unicode/utf8"
)

// sentenceTerminators covers Latin, Persian and CJK sentence endings.
// Extending script coverage means extending this table, not the control flow.
var sentenceTerminators = map[rune]bool{
	'.': true,
	'!': true,
	'?': true,
	'؟': true, // Arabic/Persian question mark
	'。': true, // CJK full stop
}

// SplitSentences cuts text after each sentence terminator, keeping the
// terminator attached to the sentence it closes. Fragments are trimmed and
// empty fragments dropped.
func SplitSentences(text string) []string {
	var out []string
	var cur strings.Builder
	for _, r := range text {
		cur.WriteRune(r)
		if sentenceTerminators[r] {
			if s := strings.TrimSpace(cur.String()); s != "" {
				out = append(out, s)
			}
			cur.Reset()
		}
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		out = append(out, s)
	}
	return out
}

// BreakParagraph splits an over-long paragraph at sentence boundaries, then
// greedily regroups the sentences into space-joined groups under maxChars.
// A single sentence longer than maxChars is emitted as its own group,
// unmodified: breaking inside a sentence is never allowed, so this is the one
// place the bound may be exceeded.
func BreakParagraph(paragraph string, maxChars int) []string {
	if runeLen(paragraph) <= maxChars {
		return []string{paragraph}
	}

	var groups []string
	var buf strings.Builder
	bufLen := 0

	flush := func() {
		if bufLen > 0 {
			groups = append(groups, buf.String())
			buf.Reset()
			bufLen = 0
		}
	}

	for _, sent := range SplitSentences(paragraph) {
		n := runeLen(sent)
		if bufLen > 0 && bufLen+n+1 > maxChars {
			flush()
		}
		if bufLen > 0 {
			buf.WriteString(" ")
			bufLen++
		}
		buf.WriteString(sent)
		bufLen += n
	}
	flush()
	return groups
}

// runeLen counts Unicode code points. Sizes are measured in runes, not bytes,
// so Persian and CJK text is bounded the same way as Latin text.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
