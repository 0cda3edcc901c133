package repository

import (
	"context"
	"fmt"
	"strings"

	"legalease-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChunkRepository handles database operations for document chunks stored
// with pgvector embeddings.
type ChunkRepository struct {
	db *pgxpool.Pool
}

// NewChunkRepository creates a new chunk repository
func NewChunkRepository(db *pgxpool.Pool) *ChunkRepository {
	return &ChunkRepository{db: db}
}

// formatVector formats an embedding vector as a string for pgx
func formatVector(embedding []float64) string {
	if len(embedding) == 0 {
		return "[]"
	}
	var parts []string
	for _, v := range embedding {
		parts = append(parts, fmt.Sprintf("%.6f", v))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

const upsertChunkSQL = `
	INSERT INTO document_chunks (
		id, document_id, chunk_index, text, section, page_number,
		chunk_size, metadata, embedding
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::vector)
	ON CONFLICT (document_id, chunk_index) DO UPDATE SET
		text = EXCLUDED.text,
		section = EXCLUDED.section,
		page_number = EXCLUDED.page_number,
		chunk_size = EXCLUDED.chunk_size,
		metadata = EXCLUDED.metadata,
		embedding = EXCLUDED.embedding`

// Upsert stores chunks with their embeddings, keyed by (document_id,
// chunk_index) so re-processing the same document overwrites prior chunks.
// The whole batch runs in one transaction: a failure on any item fails all.
func (r *ChunkRepository) Upsert(ctx context.Context, documentID string, chunks []models.Chunk, embeddings [][]float64) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("chunks and embeddings length mismatch: %d vs %d", len(chunks), len(embeddings))
	}

	for i, embedding := range embeddings {
		if len(embedding) != 768 {
			return fmt.Errorf("embedding %d must be 768 dimensions, got %d", i, len(embedding))
		}
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for i, chunk := range chunks {
		batch.Queue(upsertChunkSQL,
			uuid.New(),
			documentID,
			chunk.ChunkIndex,
			chunk.Text,
			chunk.Section,
			chunk.PageNumber,
			chunk.ChunkSize,
			chunk.Metadata,
			formatVector(embeddings[i]),
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range chunks {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to upsert chunk: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	return tx.Commit(ctx)
}

// Search performs cosine similarity search over stored chunks, optionally
// scoped to one document. Results are ordered by descending similarity and
// filtered to score >= minScore.
func (r *ChunkRepository) Search(
	ctx context.Context,
	embedding []float64,
	documentID string,
	limit int,
	minScore float64,
) ([]models.ScoredChunk, error) {
	if len(embedding) != 768 {
		return nil, fmt.Errorf("embedding must be 768 dimensions, got %d", len(embedding))
	}

	vectorStr := formatVector(embedding)

	query := `
		SELECT
			document_id,
			chunk_index,
			text,
			section,
			page_number,
			chunk_size,
			metadata,
			1 - (embedding <=> $1::vector) AS score
		FROM document_chunks
		WHERE ($2 = '' OR document_id = $2)
			AND 1 - (embedding <=> $1::vector) >= $3
		ORDER BY embedding <=> $1::vector
		LIMIT $4`

	rows, err := r.db.Query(ctx, query, vectorStr, documentID, minScore, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer rows.Close()

	var results []models.ScoredChunk
	for rows.Next() {
		var sc models.ScoredChunk
		err := rows.Scan(
			&sc.DocumentID,
			&sc.ChunkIndex,
			&sc.Text,
			&sc.Section,
			&sc.PageNumber,
			&sc.ChunkSize,
			&sc.Metadata,
			&sc.Score,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		results = append(results, sc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chunks: %w", err)
	}

	return results, nil
}

// FetchAll retrieves every chunk of a document ordered by chunk_index.
func (r *ChunkRepository) FetchAll(ctx context.Context, documentID string) ([]models.Chunk, error) {
	query := `
		SELECT document_id, chunk_index, text, section, page_number, chunk_size, metadata
		FROM document_chunks
		WHERE document_id = $1
		ORDER BY chunk_index ASC`

	rows, err := r.db.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query document chunks: %w", err)
	}
	defer rows.Close()

	var chunks []models.Chunk
	for rows.Next() {
		var chunk models.Chunk
		err := rows.Scan(
			&chunk.DocumentID,
			&chunk.ChunkIndex,
			&chunk.Text,
			&chunk.Section,
			&chunk.PageNumber,
			&chunk.ChunkSize,
			&chunk.Metadata,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chunks: %w", err)
	}

	return chunks, nil
}

// Delete removes all chunks of a document. Returns the number removed.
func (r *ChunkRepository) Delete(ctx context.Context, documentID string) (int64, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM document_chunks WHERE document_id = $1", documentID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete document chunks: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Stats aggregates stored chunks grouped by document.
func (r *ChunkRepository) Stats(ctx context.Context) (models.IndexStats, error) {
	var stats models.IndexStats
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(DISTINCT document_id), COUNT(*) FROM document_chunks",
	).Scan(&stats.TotalDocuments, &stats.TotalChunks)
	if err != nil {
		return models.IndexStats{}, fmt.Errorf("failed to query index stats: %w", err)
	}
	return stats, nil
}
