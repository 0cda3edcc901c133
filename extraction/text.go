package extraction

import (
	"fmt"
	"os"
	"strings"
	"time"

	"legalease-backend/models"
)

// TextExtractor handles plain text files. Form feeds are honored as page
// separators; otherwise the file is a single page.
type TextExtractor struct{}

// ExtractPages reads the file and splits it on form-feed characters.
func (e *TextExtractor) ExtractPages(path string) ([]models.Page, error) {
	if _, err := statSource(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read text file: %w", err)
	}

	rawPages := strings.Split(string(data), "\f")
	now := time.Now()

	var pages []models.Page
	for i, raw := range rawPages {
		pages = append(pages, models.Page{
			Text:       raw,
			PageNumber: i + 1,
			Metadata: models.PageMetadata{
				Source:         path,
				PageCount:      len(rawPages),
				ExtractionTime: now,
			},
		})
	}

	return pages, nil
}
