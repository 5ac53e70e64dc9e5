package driven

import (
	"context"

	"github.com/praxis-labs/praxis-cli/internal/core/domain"
)

// VectorStore persists contrast examples with embeddings and performs
// similarity search, domain-scoped deletion, and counting.
//
// Implementations upsert on the (domain, id) natural key and must guarantee
// that a Search never observes a partially written record. Construction with
// missing connection parameters fails with domain.ErrAdapterConfig; transient
// backend failures during calls propagate unretried.
type VectorStore interface {
	// Index embeds and upserts the given examples, keyed by (domain, id).
	// It returns the number of examples processed, not deduplicated.
	Index(ctx context.Context, examples []domain.ContrastExample) (int, error)

	// Search embeds the query and returns the top limit candidates within
	// the optional domain/category filters, ordered by cosine similarity
	// descending. A non-positive limit returns every match. Each result
	// carries its Similarity score. Ties keep the underlying storage
	// order; an empty store yields an empty slice.
	Search(ctx context.Context, query, domainName, category string, limit int) ([]domain.ContrastExample, error)

	// DeleteDomain removes all examples for a domain and returns the number
	// removed. A domain with zero examples returns 0, never an error.
	DeleteDomain(ctx context.Context, domainName string) (int, error)

	// Count returns the number of indexed examples, optionally filtered by
	// domain ("" counts everything).
	Count(ctx context.Context, domainName string) (int, error)

	// Close releases resources.
	Close() error
}
