package extraction

import (
	"fmt"
	"time"

	"legalease-backend/models"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFExtractor extracts embedded text from PDF files, one Page per PDF page.
type PDFExtractor struct{}

// ExtractPages reads the PDF at path and returns its pages in order. Pages
// whose text cannot be decoded are skipped rather than failing the document.
func (e *PDFExtractor) ExtractPages(path string) ([]models.Page, error) {
	if _, err := statSource(path); err != nil {
		return nil, err
	}

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	now := time.Now()
	numPages := reader.NumPage()

	var pages []models.Page
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages = append(pages, models.Page{
			Text:       text,
			PageNumber: i,
			Metadata: models.PageMetadata{
				Source:         path,
				PageCount:      numPages,
				ExtractionTime: now,
			},
		})
	}

	return pages, nil
}
