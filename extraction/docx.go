package extraction

import (
	"fmt"
	"os"
	"strings"
	"time"

	"legalease-backend/models"

	"github.com/fumiama/go-docx"
)

// DOCXExtractor extracts paragraph text from .docx files. DOCX has no page
// concept at the XML level, so the whole document becomes a single page.
type DOCXExtractor struct{}

// ExtractPages parses the document and joins its paragraphs with blank lines.
func (e *DOCXExtractor) ExtractPages(path string) ([]models.Page, error) {
	info, err := statSource(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer f.Close()

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var buf strings.Builder
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := paragraphText(para)
		if text == "" {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(text)
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

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
