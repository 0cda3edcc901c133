package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"legalease-backend/models"
)

// ChunkerConfig controls chunking behavior. Sizes are in characters.
type ChunkerConfig struct {
	ChunkSize    int
	ChunkOverlap int
	MinChunkSize int
}

// DefaultChunkerConfig returns the defaults used in production: large enough
// for retrieval granularity, small enough to keep prompts economical.
func DefaultChunkerConfig() ChunkerConfig {
	return ChunkerConfig{
		ChunkSize:    1000,
		ChunkOverlap: 200,
		MinChunkSize: 100,
	}
}

// Chunker splits section text into overlapping chunks with
// sentence-boundary snapping.
type Chunker struct {
	cfg ChunkerConfig
}

// NewChunker creates a chunker, filling non-positive config values with
// defaults.
func NewChunker(cfg ChunkerConfig) *Chunker {
	def := DefaultChunkerConfig()
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = def.ChunkSize
	}
	if cfg.ChunkOverlap <= 0 {
		cfg.ChunkOverlap = def.ChunkOverlap
	}
	if cfg.MinChunkSize <= 0 {
		cfg.MinChunkSize = def.MinChunkSize
	}
	if cfg.ChunkOverlap >= cfg.ChunkSize {
		cfg.ChunkOverlap = cfg.ChunkSize / 5
	}
	return &Chunker{cfg: cfg}
}

// ChunkText splits text into overlapping chunks. Text that fits in a single
// chunk is emitted whole with IsCompleteSection set. Otherwise a window of
// ChunkSize characters slides forward by ChunkSize-ChunkOverlap, snapping
// each proposed boundary back to the last sentence terminator followed by
// whitespace within the trailing ChunkOverlap window. Trimmed fragments
// shorter than MinChunkSize are dropped. All sizes and offsets count runes,
// not bytes, so multi-byte text is never cut mid-character.
func (c *Chunker) ChunkText(text, sectionTitle string, pageNumber int) []models.Chunk {
	runes := []rune(text)
	if len(runes) <= c.cfg.ChunkSize {
		trimmed := strings.TrimSpace(text)
		return []models.Chunk{{
			Text:              trimmed,
			Section:           sectionTitle,
			PageNumber:        pageNumber,
			ChunkSize:         utf8.RuneCountInString(trimmed),
			IsCompleteSection: true,
		}}
	}

	var chunks []models.Chunk
	start := 0

	for start < len(runes) {
		end := start + c.cfg.ChunkSize
		if end < len(runes) {
			if snapped := c.snapToSentence(runes, end); snapped > start {
				end = snapped
			}
		} else {
			end = len(runes)
		}

		piece := strings.TrimSpace(string(runes[start:end]))
		if size := utf8.RuneCountInString(piece); size >= c.cfg.MinChunkSize {
			chunks = append(chunks, models.Chunk{
				Text:       piece,
				Section:    sectionTitle,
				PageNumber: pageNumber,
				ChunkSize:  size,
				StartChar:  start,
				EndChar:    end,
			})
		}

		// Forward progress is guaranteed even when the sentence snap pushed
		// end backward: start advances by at least ChunkSize-ChunkOverlap.
		next := start + c.cfg.ChunkSize - c.cfg.ChunkOverlap
		if end > next {
			next = end
		}
		start = next
	}

	return chunks
}

// snapToSentence returns the position just past the last sentence terminator
// followed by whitespace within [end-ChunkOverlap, end), or -1 if none.
func (c *Chunker) snapToSentence(runes []rune, end int) int {
	lo := end - c.cfg.ChunkOverlap
	if lo < 0 {
		lo = 0
	}
	for i := end - 1; i >= lo; i-- {
		r := runes[i]
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			return i + 1
		}
	}
	return -1
}
