package emit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/pagemerge/internal/page"
)

func TestWriteAll_SequentialNumbering(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 3)

	chunks := []page.Chunk{
		{Ordinal: 1, Paragraphs: []string{"first"}},
		{Ordinal: 2, Paragraphs: []string{"second", "still second"}},
		{Ordinal: 3, Paragraphs: []string{"third"}},
	}
	n, err := w.WriteAll(chunks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 chunks written, got %d", n)
	}

	want := map[string]string{
		"chunk_001.md": "first",
		"chunk_002.md": "second\n\nstill second",
		"chunk_003.md": "third",
	}
	for name, content := range want {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if string(data) != content {
			t.Errorf("%s: expected %q, got %q", name, content, string(data))
		}
	}
}

func TestWriteAll_NoStrayTempFiles(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 3)

	if _, err := w.WriteAll([]page.Chunk{{Ordinal: 1, Paragraphs: []string{"only"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 file, got %d", len(entries))
	}
}

func TestWriteAll_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "chunks")
	w := NewWriter(dir, 3)

	if _, err := w.WriteAll([]page.Chunk{{Ordinal: 1, Paragraphs: []string{"x"}}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "chunk_001.md")); err != nil {
		t.Errorf("expected chunk file in created dir: %v", err)
	}
}

func TestWriteAll_EmptySequence(t *testing.T) {
	w := NewWriter(t.TempDir(), 3)
	n, err := w.WriteAll(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 chunks written, got %d", n)
	}
}

func TestFileName_PadWidth(t *testing.T) {
	cases := []struct {
		pad     int
		ordinal int
		want    string
	}{
		{3, 1, "chunk_001.md"},
		{3, 42, "chunk_042.md"},
		{3, 1000, "chunk_1000.md"},
		{4, 7, "chunk_0007.md"},
		{0, 5, "chunk_005.md"}, // falls back to default width
	}
	for _, c := range cases {
		w := NewWriter("out", c.pad)
		if got := w.FileName(c.ordinal); got != c.want {
			t.Errorf("FileName(%d) with pad %d: expected %q, got %q", c.ordinal, c.pad, got, c.want)
		}
	}
}
