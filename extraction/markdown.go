package extraction

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"legalease-backend/models"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor converts Markdown to plain text by walking the goldmark
// AST. Headings stay on their own line so the section detector can pick them
// up downstream. Markdown has no pages; the document becomes one page.
type MarkdownExtractor struct{}

// ExtractPages parses the file and renders block-level text in order.
func (e *MarkdownExtractor) ExtractPages(path string) ([]models.Page, error) {
	if _, err := statSource(path); err != nil {
		return nil, err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read markdown: %w", err)
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var buf strings.Builder
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		t := blockText(n, src)
		if t == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(t)
	}

	if buf.Len() == 0 {
		return nil, nil
	}

	return []models.Page{{
		Text:       buf.String(),
		PageNumber: 1,
		Metadata: models.PageMetadata{
			Source:         path,
			PageCount:      1,
			ExtractionTime: time.Now(),
		},
	}}, nil
}

// blockText gets the text content of a goldmark AST node. Leaf blocks carry
// their own source lines; container blocks (lists, quotes) are recursed.
func blockText(n ast.Node, src []byte) string {
	if h, ok := n.(*ast.Heading); ok {
		return strings.TrimSpace(string(h.Text(src)))
	}

	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	if lines.Len() == 0 {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			t := blockText(c, src)
			if t == "" {
				continue
			}
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(t)
		}
	}
	return strings.TrimSpace(buf.String())
}
