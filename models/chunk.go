package models

import "time"

// PageMetadata carries extraction metadata for a single page
type PageMetadata struct {
	Source         string    `json:"source"`
	PageCount      int       `json:"page_count"`
	ExtractionTime time.Time `json:"extraction_time"`
}

// Page is the raw text of one document page as returned by an extractor.
// Pages are transient: they exist only while a document is being processed.
type Page struct {
	Text       string       `json:"text"`
	PageNumber int          `json:"page_number"`
	Metadata   PageMetadata `json:"metadata"`
}

// Section is a contiguous span of a page's cleaned text with a detected title
type Section struct {
	Title     string `json:"section_title"`
	Text      string `json:"text"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// Chunk is the retrievable unit stored in the vector index.
// Chunks are immutable once created and addressed by (DocumentID, ChunkIndex).
type Chunk struct {
	DocumentID        string                 `json:"document_id"`
	ChunkIndex        int                    `json:"chunk_index"`
	Text              string                 `json:"text"`
	Section           string                 `json:"section"`
	PageNumber        int                    `json:"page_number"`
	ChunkSize         int                    `json:"chunk_size"`
	StartChar         int                    `json:"start_char,omitempty"`
	EndChar           int                    `json:"end_char,omitempty"`
	IsCompleteSection bool                   `json:"is_complete_section"`
	Metadata          map[string]interface{} `json:"metadata,omitempty"`
}

// ScoredChunk is a chunk returned by similarity search with its score
type ScoredChunk struct {
	Chunk
	Score float64 `json:"similarity_score"`
}

// DocumentStats summarizes a processed document
type DocumentStats struct {
	TotalChunks      int      `json:"total_chunks"`
	TotalCharacters  int      `json:"total_characters"`
	TotalPages       int      `json:"total_pages"`
	TotalSections    int      `json:"total_sections"`
	AverageChunkSize float64  `json:"average_chunk_size"`
	Sections         []string `json:"sections_list"`
}

// IndexStats aggregates stored chunks across all documents
type IndexStats struct {
	TotalDocuments int `json:"total_documents"`
	TotalChunks    int `json:"total_chunks"`
}
