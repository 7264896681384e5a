package source

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/dgallion1/pagemerge/internal/page"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFSource extracts per-page text from a PDF. It tries the Go library
// first, then falls back to pdftotext if available. Page text is handed over
// untrimmed: a PDF page break frequently cuts a paragraph, and the merger's
// carry logic depends on seeing that.
type PDFSource struct {
	Path              string
	FallbackPdftotext bool
}

func (s *PDFSource) Pages(ctx context.Context) ([]page.Document, error) {
	texts, err := extractPDFPages(s.Path)
	if err != nil && s.FallbackPdftotext {
		texts, err = extractPdftotext(ctx, s.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	docs := make([]page.Document, 0, len(texts))
	for i, text := range texts {
		docs = append(docs, page.Document{
			Name: fmt.Sprintf("page_%04d.md", i+1),
			Text: text,
		})
	}
	return docs, nil
}

func extractPDFPages(path string) ([]string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var texts []string
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		p := reader.Page(i)
		if p.V.IsNull() {
			texts = append(texts, "")
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			texts = append(texts, "")
			continue
		}
		texts = append(texts, text)
	}
	return texts, nil
}

func extractPdftotext(ctx context.Context, path string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}
	// pdftotext separates pages with form feeds.
	return strings.Split(string(out), "\f"), nil
}
