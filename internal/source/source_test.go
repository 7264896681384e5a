package source

import (
	"context"
	"path/filepath"
	"testing"
)

func TestForPath_Directory(t *testing.T) {
	src, err := ForPath(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := src.(*DirSource); !ok {
		t.Errorf("expected *DirSource, got %T", src)
	}
}

func TestForPath_ByExtension(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		want string
	}{
		{"book.pdf", "*source.PDFSource"},
		{"report.docx", "*source.DOCXSource"},
		{"index.html", "*source.HTMLSource"},
		{"readme.md", "*source.MarkdownSource"},
		{"dump.txt", "*source.TextSource"},
	}
	for _, c := range cases {
		writeFile(t, dir, c.name, "content")
		src, err := ForPath(filepath.Join(dir, c.name))
		if err != nil {
			t.Errorf("%s: unexpected error: %v", c.name, err)
			continue
		}
		var got string
		switch src.(type) {
		case *PDFSource:
			got = "*source.PDFSource"
		case *DOCXSource:
			got = "*source.DOCXSource"
		case *HTMLSource:
			got = "*source.HTMLSource"
		case *MarkdownSource:
			got = "*source.MarkdownSource"
		case *TextSource:
			got = "*source.TextSource"
		}
		if got != c.want {
			t.Errorf("%s: expected %s, got %T", c.name, c.want, src)
		}
	}
}

func TestForPath_Unsupported(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "image.png", "binary")
	if _, err := ForPath(filepath.Join(dir, "image.png")); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestForPath_Missing(t *testing.T) {
	if _, err := ForPath(filepath.Join(t.TempDir(), "ghost.md")); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestIsSupportedExtension(t *testing.T) {
	for _, name := range []string{"a.pdf", "b.DOCX", "c.md", "d.txt", "e.htm"} {
		if !IsSupportedExtension(name) {
			t.Errorf("expected %q to be supported", name)
		}
	}
	for _, name := range []string{"a.png", "b.csv", "c"} {
		if IsSupportedExtension(name) {
			t.Errorf("expected %q to be unsupported", name)
		}
	}
}

func TestTextSource_FormFeedPages(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dump.txt", "page one text\f page two text\fpage three")

	src := &TextSource{Path: filepath.Join(dir, "dump.txt")}
	docs, err := src.Pages(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(docs))
	}
	if docs[0].Name != "page_0001.md" || docs[2].Name != "page_0003.md" {
		t.Errorf("unexpected page names: %q, %q", docs[0].Name, docs[2].Name)
	}
	if docs[1].Text != " page two text" {
		t.Errorf("expected raw page text preserved, got %q", docs[1].Text)
	}
}

func TestTextSource_SinglePage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "dump.txt", "just one page\n\n")

	src := &TextSource{Path: filepath.Join(dir, "dump.txt")}
	docs, err := src.Pages(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 || docs[0].Text != "just one page\n\n" {
		t.Errorf("expected one page, got %+v", docs)
	}
}
