// Package ratelimit wraps an embedding service with a client-side rate
// limiter, keeping bulk indexing under provider quotas.
package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/praxis-labs/praxis-cli/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// DefaultRequestsPerSecond matches typical provider free-tier limits.
const DefaultRequestsPerSecond = 10

// EmbeddingService throttles calls to an inner embedding service.
type EmbeddingService struct {
	inner   driven.EmbeddingService
	limiter *rate.Limiter
}

// NewEmbeddingService wraps inner with a limiter allowing rps requests
// per second with a burst of the same size. A non-positive rps uses
// DefaultRequestsPerSecond.
func NewEmbeddingService(inner driven.EmbeddingService, rps float64) *EmbeddingService {
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &EmbeddingService{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Embed waits for limiter capacity, then delegates. Context cancellation
// during the wait is returned to the caller.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}
	return s.inner.Embed(ctx, text)
}

// Dimensions returns the inner service's vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.inner.Dimensions()
}

// ModelName returns the inner service's model name.
func (s *EmbeddingService) ModelName() string {
	return s.inner.ModelName()
}
