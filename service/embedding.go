package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// Embedder abstracts the external embedding collaborator. Vectors are
// 768-dimensional and L2-normalized; identical input yields identical output.
type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float64, error)
	EmbedDocument(ctx context.Context, text string) ([]float64, error)
}

// ErrEmbeddingFailed indicates the embedding API could not produce a vector.
var ErrEmbeddingFailed = errors.New("failed to generate embedding")

const (
	embeddingAPI        = "https://generativelanguage.googleapis.com/v1beta/models/gemini-embedding-001:embedContent"
	embeddingDimensions = 768
	maxRetries          = 3
	initialBackoff      = time.Second

	embeddingCachePrefix = "emb:"
	embeddingCacheTTL    = 24 * time.Hour
)

// EmbeddingRequest represents an embedding API request
type EmbeddingRequest struct {
	Model                string       `json:"model"`
	Content              ContentInput `json:"content"`
	TaskType             string       `json:"task_type,omitempty"`
	OutputDimensionality int          `json:"output_dimensionality,omitempty"`
}

// ContentInput represents content for embedding
type ContentInput struct {
	Parts []PartInput `json:"parts"`
}

// PartInput represents a part of content
type PartInput struct {
	Text string `json:"text"`
}

// EmbeddingResponse represents an embedding API response
type EmbeddingResponse struct {
	Embedding EmbeddingData `json:"embedding"`
}

// EmbeddingData contains the embedding values
type EmbeddingData struct {
	Values []float64 `json:"values"`
}

// GeminiEmbedder generates embeddings via the Gemini embedding API, with an
// optional Redis-backed cache. Embedding is deterministic per model version,
// so cached vectors stay valid for the cache TTL.
type GeminiEmbedder struct {
	apiKey     string
	httpClient *http.Client
	cache      *redis.Client
}

// NewGeminiEmbedder creates an embedder. A nil cache client disables caching.
func NewGeminiEmbedder(apiKey string, cache *redis.Client) *GeminiEmbedder {
	return &GeminiEmbedder{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cache:      cache,
	}
}

// EmbedQuery embeds text for use as a retrieval query.
func (e *GeminiEmbedder) EmbedQuery(ctx context.Context, text string) ([]float64, error) {
	return e.embed(ctx, text, "RETRIEVAL_QUERY")
}

// EmbedDocument embeds chunk text for storage.
func (e *GeminiEmbedder) EmbedDocument(ctx context.Context, text string) ([]float64, error) {
	return e.embed(ctx, text, "RETRIEVAL_DOCUMENT")
}

func (e *GeminiEmbedder) embed(ctx context.Context, text, taskType string) ([]float64, error) {
	if e.apiKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY not set", ErrEmbeddingFailed)
	}

	cacheKey := embeddingCacheKey(text, taskType)
	if cached, ok := e.cacheGet(ctx, cacheKey); ok {
		return cached, nil
	}

	reqBody := EmbeddingRequest{
		Model: "models/gemini-embedding-001",
		Content: ContentInput{
			Parts: []PartInput{{Text: text}},
		},
		TaskType:             taskType,
		OutputDimensionality: embeddingDimensions,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	backoff := initialBackoff
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(backoff)
			backoff *= 2
		}

		req, err := http.NewRequestWithContext(ctx, "POST", embeddingAPI, bytes.NewBuffer(jsonData))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-goog-api-key", e.apiKey)

		resp, err := e.httpClient.Do(req)
		if err != nil {
			if attempt == maxRetries-1 {
				return nil, fmt.Errorf("failed to send request after %d attempts: %w", maxRetries, err)
			}
			continue
		}

		if resp.StatusCode == http.StatusOK {
			var apiResp EmbeddingResponse
			decodeErr := json.NewDecoder(resp.Body).Decode(&apiResp)
			resp.Body.Close()
			if decodeErr != nil {
				if attempt == maxRetries-1 {
					return nil, fmt.Errorf("failed to decode response: %w", decodeErr)
				}
				continue
			}

			embedding := normalize(apiResp.Embedding.Values)
			e.cacheSet(ctx, cacheKey, embedding)
			return embedding, nil
		}

		resp.Body.Close()

		// Don't retry on 400 or 401 errors
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("API error: %d", resp.StatusCode)
		}
		if attempt == maxRetries-1 {
			return nil, fmt.Errorf("API error after %d attempts: %d", maxRetries, resp.StatusCode)
		}
	}

	return nil, ErrEmbeddingFailed
}

func normalize(embedding []float64) []float64 {
	norm := 0.0
	for _, v := range embedding {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range embedding {
			embedding[i] /= norm
		}
	}
	return embedding
}

func embeddingCacheKey(text, taskType string) string {
	sum := sha256.Sum256([]byte(taskType + "\x00" + text))
	return embeddingCachePrefix + hex.EncodeToString(sum[:])
}

func (e *GeminiEmbedder) cacheGet(ctx context.Context, key string) ([]float64, bool) {
	if e.cache == nil {
		return nil, false
	}
	data, err := e.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Warning: embedding cache read failed: %v", err)
		}
		return nil, false
	}
	var embedding []float64
	if err := json.Unmarshal(data, &embedding); err != nil {
		return nil, false
	}
	return embedding, true
}

func (e *GeminiEmbedder) cacheSet(ctx context.Context, key string, embedding []float64) {
	if e.cache == nil {
		return
	}
	data, err := json.Marshal(embedding)
	if err != nil {
		return
	}
	if err := e.cache.Set(ctx, key, data, embeddingCacheTTL).Err(); err != nil {
		log.Printf("Warning: embedding cache write failed: %v", err)
	}
}
