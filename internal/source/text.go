package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dgallion1/pagemerge/internal/page"
)

// TextSource reads a single plain-text file. Form feeds mark page breaks
// (the separator pdftotext and most extractors emit); a file without form
// feeds is one page.
type TextSource struct {
	Path string
}

func (s *TextSource) Pages(ctx context.Context) ([]page.Document, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read text source: %w", err)
	}

	var docs []page.Document
	for i, text := range strings.Split(string(data), "\f") {
		docs = append(docs, page.Document{
			Name: fmt.Sprintf("page_%04d.md", i+1),
			Text: text,
		})
	}
	return docs, nil
}
