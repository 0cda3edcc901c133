package service

import (
	"context"
	"fmt"

	"legalease-backend/models"
)

// chunkStore is the persistence surface the index needs. Implemented by
// repository.ChunkRepository.
type chunkStore interface {
	Upsert(ctx context.Context, documentID string, chunks []models.Chunk, embeddings [][]float64) error
	Search(ctx context.Context, embedding []float64, documentID string, limit int, minScore float64) ([]models.ScoredChunk, error)
	FetchAll(ctx context.Context, documentID string) ([]models.Chunk, error)
	Delete(ctx context.Context, documentID string) (int64, error)
	Stats(ctx context.Context) (models.IndexStats, error)
}

// VectorIndexService exposes the vector store at the text level: callers
// hand it chunks and query strings, and it handles embedding internally.
type VectorIndexService struct {
	embedder Embedder
	store    chunkStore
}

// NewVectorIndexService creates a new vector index service
func NewVectorIndexService(embedder Embedder, store chunkStore) *VectorIndexService {
	return &VectorIndexService{embedder: embedder, store: store}
}

// Upsert embeds and stores all chunks of a document. If any chunk fails to
// embed, nothing is written.
func (s *VectorIndexService) Upsert(ctx context.Context, documentID string, chunks []models.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	embeddings := make([][]float64, 0, len(chunks))
	for i, chunk := range chunks {
		embedding, err := s.embedder.EmbedDocument(ctx, chunk.Text)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}
		embeddings = append(embeddings, embedding)
	}

	if err := s.store.Upsert(ctx, documentID, chunks, embeddings); err != nil {
		return fmt.Errorf("failed to store chunks: %w", err)
	}
	return nil
}

// SimilaritySearch embeds the query text and returns the most similar
// chunks, optionally scoped to one document.
func (s *VectorIndexService) SimilaritySearch(
	ctx context.Context,
	query string,
	documentID string,
	limit int,
	minScore float64,
) ([]models.ScoredChunk, error) {
	embedding, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	results, err := s.store.Search(ctx, embedding, documentID, limit, minScore)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}
	return results, nil
}

// FetchAll returns every chunk of a document in chunk order.
func (s *VectorIndexService) FetchAll(ctx context.Context, documentID string) ([]models.Chunk, error) {
	chunks, err := s.store.FetchAll(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document chunks: %w", err)
	}
	return chunks, nil
}

// Delete removes all stored chunks of a document. Returns the number removed.
func (s *VectorIndexService) Delete(ctx context.Context, documentID string) (int64, error) {
	deleted, err := s.store.Delete(ctx, documentID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete document: %w", err)
	}
	return deleted, nil
}

// Stats reports totals across all stored documents.
func (s *VectorIndexService) Stats(ctx context.Context) (models.IndexStats, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return models.IndexStats{}, fmt.Errorf("failed to get index stats: %w", err)
	}
	return stats, nil
}
