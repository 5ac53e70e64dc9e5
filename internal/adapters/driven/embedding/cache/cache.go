// Package cache wraps an embedding service with an in-memory cache so
// repeated texts, common during re-indexing, are only embedded once.
package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/praxis-labs/praxis-cli/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default cache behaviour.
const (
	DefaultExpiration = 24 * time.Hour
	cleanupInterval   = time.Hour
)

// EmbeddingService caches embeddings from an inner service. Entries are
// keyed by model and text, so swapping models never serves stale vectors.
type EmbeddingService struct {
	inner driven.EmbeddingService
	cache *gocache.Cache
}

// NewEmbeddingService wraps inner with a cache using the given TTL.
// A zero TTL uses DefaultExpiration.
func NewEmbeddingService(inner driven.EmbeddingService, ttl time.Duration) *EmbeddingService {
	if ttl == 0 {
		ttl = DefaultExpiration
	}
	return &EmbeddingService{
		inner: inner,
		cache: gocache.New(ttl, cleanupInterval),
	}
}

// Embed returns a cached embedding when available, delegating to the
// inner service on a miss. Errors are never cached.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	key := s.inner.ModelName() + "\x00" + text
	if cached, found := s.cache.Get(key); found {
		return cached.([]float32), nil
	}

	embedding, err := s.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, embedding, gocache.DefaultExpiration)
	return embedding, nil
}

// Dimensions returns the inner service's vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.inner.Dimensions()
}

// ModelName returns the inner service's model name.
func (s *EmbeddingService) ModelName() string {
	return s.inner.ModelName()
}
