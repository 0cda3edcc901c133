package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestEmbedRequiresAPIKey(t *testing.T) {
	e := NewGeminiEmbedder("", nil)
	_, err := e.EmbedQuery(context.Background(), "some text")
	if !errors.Is(err, ErrEmbeddingFailed) {
		t.Errorf("expected ErrEmbeddingFailed, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	got := normalize([]float64{3, 4})

	norm := 0.0
	for _, v := range got {
		norm += v * v
	}
	if math.Abs(norm-1) > 1e-9 {
		t.Errorf("normalized vector has norm %f", math.Sqrt(norm))
	}
	if math.Abs(got[0]-0.6) > 1e-9 || math.Abs(got[1]-0.8) > 1e-9 {
		t.Errorf("normalize([3 4]) = %v", got)
	}

	zero := normalize([]float64{0, 0, 0})
	for i, v := range zero {
		if v != 0 {
			t.Errorf("zero vector changed at %d: %f", i, v)
		}
	}
}

func TestEmbeddingCacheKey(t *testing.T) {
	k1 := embeddingCacheKey("hello", "RETRIEVAL_QUERY")
	k2 := embeddingCacheKey("hello", "RETRIEVAL_QUERY")
	k3 := embeddingCacheKey("hello", "RETRIEVAL_DOCUMENT")
	k4 := embeddingCacheKey("other", "RETRIEVAL_QUERY")

	if k1 != k2 {
		t.Error("cache key is not deterministic")
	}
	if k1 == k3 {
		t.Error("task type should change the cache key")
	}
	if k1 == k4 {
		t.Error("text should change the cache key")
	}
}

func TestEmbeddingCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	e := NewGeminiEmbedder("key", client)

	ctx := context.Background()
	key := embeddingCacheKey("clause text", "RETRIEVAL_DOCUMENT")

	if _, ok := e.cacheGet(ctx, key); ok {
		t.Fatal("cache hit before set")
	}

	want := []float64{0.1, 0.2, 0.3}
	e.cacheSet(ctx, key, want)

	got, ok := e.cacheGet(ctx, key)
	if !ok {
		t.Fatal("cache miss after set")
	}
	if len(got) != len(want) {
		t.Fatalf("cached vector length = %d", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cached[%d] = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestEmbeddingCacheExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	e := NewGeminiEmbedder("key", client)

	ctx := context.Background()
	key := embeddingCacheKey("expiring", "RETRIEVAL_QUERY")
	e.cacheSet(ctx, key, []float64{1})

	mr.FastForward(embeddingCacheTTL + time.Second)

	if _, ok := e.cacheGet(ctx, key); ok {
		t.Error("cache entry should expire after TTL")
	}
}

func TestEmbeddingCacheDisabledWithoutClient(t *testing.T) {
	e := NewGeminiEmbedder("key", nil)
	ctx := context.Background()

	e.cacheSet(ctx, "emb:none", []float64{1})
	if _, ok := e.cacheGet(ctx, "emb:none"); ok {
		t.Error("nil cache client should never hit")
	}
}
