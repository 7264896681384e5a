package source

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/pagemerge/internal/page"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownSource flattens a single Markdown document into one page of plain
// text with blank-line paragraph conventions. Headings become their own
// paragraphs. A whole document always ends complete, so the page text
// carries a trailing paragraph boundary.
type MarkdownSource struct {
	Path string
}

func (s *MarkdownSource) Pages(ctx context.Context) ([]page.Document, error) {
	src, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read markdown source: %w", err)
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var paras []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if t := blockText(n, src); t != "" {
			paras = append(paras, t)
		}
	}

	return []page.Document{{
		Name: filepath.Base(s.Path),
		Text: strings.Join(paras, page.Separator) + page.Separator,
	}}, nil
}

// blockText gets the text content of a goldmark node. Nodes with children
// render through their inlines; leaf blocks (code fences) render their raw
// lines.
func blockText(n ast.Node, src []byte) string {
	if t, ok := n.(*ast.Text); ok {
		s := string(t.Value(src))
		if t.HardLineBreak() || t.SoftLineBreak() {
			s += "\n"
		}
		return s
	}

	var buf bytes.Buffer
	if !n.HasChildren() {
		if n.Type() == ast.TypeBlock {
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(src))
			}
		}
		return strings.TrimSpace(buf.String())
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		s := blockText(c, src)
		if s == "" {
			continue
		}
		if buf.Len() > 0 && c.Type() == ast.TypeBlock {
			buf.WriteByte('\n')
		}
		buf.WriteString(s)
	}
	return strings.TrimSpace(buf.String())
}
