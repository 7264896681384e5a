// Package emit persists finished chunks as sequentially numbered documents.
package emit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dgallion1/pagemerge/internal/page"
)

// DefaultPadWidth is the zero-padding width for chunk file names
// (chunk_001.md, chunk_002.md, ...).
const DefaultPadWidth = 3

// Writer writes chunk documents into a destination directory.
type Writer struct {
	dir      string
	padWidth int
}

// NewWriter returns a writer targeting dir. A non-positive padWidth falls
// back to DefaultPadWidth.
func NewWriter(dir string, padWidth int) *Writer {
	if padWidth <= 0 {
		padWidth = DefaultPadWidth
	}
	return &Writer{dir: dir, padWidth: padWidth}
}

// WriteAll persists every chunk in document order, numbered from 1 with no
// gaps, and returns the count written. Each chunk is written whole to a temp
// file in the destination directory and renamed into place, so a crash
// mid-run never leaves a truncated chunk file behind.
func (w *Writer) WriteAll(chunks []page.Chunk) (int, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir: %w", err)
	}
	written := 0
	for _, c := range chunks {
		if err := w.writeAtomic(w.FileName(c.Ordinal), c.Text()); err != nil {
			return written, fmt.Errorf("write chunk %d: %w", c.Ordinal, err)
		}
		written++
	}
	return written, nil
}

// FileName returns the output file name for a chunk ordinal.
func (w *Writer) FileName(ordinal int) string {
	return fmt.Sprintf("chunk_%0*d.md", w.padWidth, ordinal)
}

// Dir returns the destination directory.
func (w *Writer) Dir() string {
	return w.dir
}

func (w *Writer) writeAtomic(name, text string) error {
	tmp, err := os.CreateTemp(w.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, filepath.Join(w.dir, name)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
