package service

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"legalease-backend/models"
)

// ErrExtractionFailed indicates the source file is missing or unreadable.
var ErrExtractionFailed = errors.New("failed to extract document text")

// PageExtractor abstracts the external text-extraction collaborator.
type PageExtractor interface {
	ExtractPages(path string) ([]models.Page, error)
}

// DocumentService turns a source document into a document ID and an ordered
// chunk list: extraction, cleaning, section detection, chunking, and
// per-chunk metadata assembly.
type DocumentService struct {
	chunker *Chunker
}

// NewDocumentService creates a document service using the given chunker.
func NewDocumentService(chunker *Chunker) *DocumentService {
	if chunker == nil {
		chunker = NewChunker(DefaultChunkerConfig())
	}
	return &DocumentService{chunker: chunker}
}

// Process extracts, sections and chunks the document at sourcePath. When
// documentID is empty, a deterministic ID is derived from the source bytes.
// A missing or unreadable source fails with ErrExtractionFailed; any other
// processing fault returns the ID with an empty chunk list so callers can
// distinguish "no content" from a hard fault.
func (s *DocumentService) Process(extractor PageExtractor, sourcePath, documentID string) (string, []models.Chunk, error) {
	if documentID == "" {
		data, err := os.ReadFile(sourcePath)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}
		sum := md5.Sum(data)
		documentID = "doc_" + hex.EncodeToString(sum[:])[:12]
	} else if _, err := os.Stat(sourcePath); err != nil {
		return documentID, nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	pages, err := extractor.ExtractPages(sourcePath)
	if err != nil {
		log.Printf("Warning: failed to extract pages from %s: %v", sourcePath, err)
		return documentID, nil, nil
	}

	var all []models.Chunk
	pageCount := 0

	for _, page := range pages {
		cleaned := Clean(page.Text)
		if cleaned == "" {
			continue
		}
		pageCount++

		for _, section := range DetectSections(cleaned) {
			if strings.TrimSpace(section.Text) == "" {
				continue
			}
			for _, chunk := range s.chunker.ChunkText(section.Text, section.Title, page.PageNumber) {
				if chunk.Text == "" {
					continue
				}
				chunk.DocumentID = documentID
				chunk.ChunkIndex = len(all)
				chunk.Metadata = map[string]interface{}{
					"document_id":        documentID,
					"file_path":          sourcePath,
					"section_start_line": section.StartLine,
					"section_end_line":   section.EndLine,
					"source":             page.Metadata.Source,
					"page_count":         page.Metadata.PageCount,
					"extraction_time":    page.Metadata.ExtractionTime.Format(time.RFC3339),
				}
				all = append(all, chunk)
			}
		}
	}

	log.Printf("Processed document %s: %d chunks from %d pages", documentID, len(all), pageCount)
	return documentID, all, nil
}

// CalculateStats summarizes a processed chunk list.
func (s *DocumentService) CalculateStats(chunks []models.Chunk) models.DocumentStats {
	if len(chunks) == 0 {
		return models.DocumentStats{}
	}

	totalChars := 0
	pages := make(map[int]struct{})
	sections := make(map[string]struct{})
	var sectionList []string

	for _, chunk := range chunks {
		totalChars += chunk.ChunkSize
		pages[chunk.PageNumber] = struct{}{}
		if chunk.Section != "" {
			if _, seen := sections[chunk.Section]; !seen {
				sections[chunk.Section] = struct{}{}
				sectionList = append(sectionList, chunk.Section)
			}
		}
	}

	return models.DocumentStats{
		TotalChunks:      len(chunks),
		TotalCharacters:  totalChars,
		TotalPages:       len(pages),
		TotalSections:    len(sectionList),
		AverageChunkSize: float64(totalChars) / float64(len(chunks)),
		Sections:         sectionList,
	}
}
