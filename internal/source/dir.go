package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/pagemerge/internal/page"
)

// pageFileExtensions are the per-page file types read from a pages directory.
var pageFileExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
	".text":     true,
}

// DirSource reads a directory of per-page text files (1.md, 2.md, ...),
// the contract the upstream extraction step writes into. File names carry
// the page order; the merger resolves it.
type DirSource struct {
	Dir string
}

func (s *DirSource) Pages(ctx context.Context) ([]page.Document, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("read pages dir: %w", err)
	}

	var docs []page.Document
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !pageFileExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.Dir, name))
		if err != nil {
			return nil, fmt.Errorf("read page %s: %w", name, err)
		}
		docs = append(docs, page.Document{Name: name, Text: string(data)})
	}
	return docs, nil
}
