package merger

import "testing"

func TestSplitParagraphs_Basic(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\n\n\nThird paragraph."
	paras := SplitParagraphs(input)

	want := []string{
		"First paragraph line one.\nFirst paragraph line two.",
		"Second paragraph.",
		"Third paragraph.",
	}
	if len(paras) != len(want) {
		t.Fatalf("expected %d paragraphs, got %d: %q", len(want), len(paras), paras)
	}
	for i, w := range want {
		if paras[i] != w {
			t.Errorf("paragraph[%d]: expected %q, got %q", i, w, paras[i])
		}
	}
}

func TestSplitParagraphs_TrimsAndDropsEmpty(t *testing.T) {
	paras := SplitParagraphs("  padded  \n\n\n\n\n\nnext\n\n")
	if len(paras) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d: %q", len(paras), paras)
	}
	if paras[0] != "padded" {
		t.Errorf("expected trimmed paragraph, got %q", paras[0])
	}
	if paras[1] != "next" {
		t.Errorf("expected %q, got %q", "next", paras[1])
	}
}

func TestSplitParagraphs_EmptyInput(t *testing.T) {
	if paras := SplitParagraphs(""); len(paras) != 0 {
		t.Errorf("expected no paragraphs for empty input, got %q", paras)
	}
	if paras := SplitParagraphs("\n\n   \n\n"); len(paras) != 0 {
		t.Errorf("expected no paragraphs for blank input, got %q", paras)
	}
}

func TestSplitParagraphs_CRLF(t *testing.T) {
	paras := SplitParagraphs("one\r\n\r\ntwo")
	if len(paras) != 2 {
		t.Fatalf("expected 2 paragraphs for CRLF input, got %d: %q", len(paras), paras)
	}
}

func TestSegment_TaggedResult(t *testing.T) {
	seg := Segment("alpha\n\nbeta\n\ngamma")
	if len(seg.Complete) != 2 {
		t.Fatalf("expected 2 complete paragraphs, got %d", len(seg.Complete))
	}
	if seg.Complete[0] != "alpha" || seg.Complete[1] != "beta" {
		t.Errorf("unexpected complete paragraphs: %q", seg.Complete)
	}
	if seg.Trailing != "gamma" {
		t.Errorf("expected trailing %q, got %q", "gamma", seg.Trailing)
	}
}

func TestSegment_SingleParagraph(t *testing.T) {
	seg := Segment("only one")
	if len(seg.Complete) != 0 {
		t.Errorf("expected no complete paragraphs, got %q", seg.Complete)
	}
	if seg.Trailing != "only one" {
		t.Errorf("expected trailing %q, got %q", "only one", seg.Trailing)
	}
}

func TestSegment_Empty(t *testing.T) {
	seg := Segment("")
	if len(seg.Complete) != 0 || seg.Trailing != "" {
		t.Errorf("expected zero value for empty input, got %+v", seg)
	}
}

func TestEndsOnBoundary(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"paragraph\n\n", true},
		{"paragraph\n\n\n", true},
		{"paragraph\n \t\n", true},
		{"paragraph\r\n\r\n", true},
		{"paragraph\n", false},
		{"paragraph", false},
		{"paragraph\n   ", false},
		{"", false},
		{"\n\n", true},
	}
	for _, c := range cases {
		if got := EndsOnBoundary(c.text); got != c.want {
			t.Errorf("EndsOnBoundary(%q): expected %v, got %v", c.text, c.want, got)
		}
	}
}
