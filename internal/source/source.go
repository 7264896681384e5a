// Package source materializes ordered page documents from the supported
// inputs: a directory of per-page text files, or a single PDF, DOCX, HTML or
// Markdown document split into page text. How the text was produced upstream
// (OCR, layout analysis) is out of scope; sources only hand raw page text to
// the merger.
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/pagemerge/internal/page"
)

// Source yields the ordered collection of named page documents to merge.
type Source interface {
	Pages(ctx context.Context) ([]page.Document, error)
}

// SupportedExtensions lists single-file source types this service can handle.
// A directory path is always accepted and read as per-page files.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".docx":     true,
	".html":     true,
	".htm":      true,
	".md":       true,
	".markdown": true,
	".txt":      true,
	".text":     true,
}

// Options tunes source construction.
type Options struct {
	// PDFFallbackPdftotext enables the pdftotext subprocess fallback when
	// library extraction fails.
	PDFFallbackPdftotext bool
}

// ForPath returns the appropriate source for a path with default options.
func ForPath(path string) (Source, error) {
	return ForPathWith(path, Options{PDFFallbackPdftotext: true})
}

// ForPathWith returns the appropriate source for a path.
func ForPathWith(path string, opts Options) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat source: %w", err)
	}
	if info.IsDir() {
		return &DirSource{Dir: path}, nil
	}

	if !IsSupportedExtension(path) {
		return nil, fmt.Errorf("unsupported source type: %s", filepath.Ext(path))
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return &PDFSource{Path: path, FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXSource{Path: path}, nil
	case ".html", ".htm":
		return &HTMLSource{Path: path}, nil
	case ".md", ".markdown":
		return &MarkdownSource{Path: path}, nil
	default:
		return &TextSource{Path: path}, nil
	}
}

// IsSupportedExtension checks whether a file extension is a known source type.
func IsSupportedExtension(path string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(path))]
}
