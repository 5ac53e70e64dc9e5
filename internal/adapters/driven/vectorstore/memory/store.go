// Package memory provides an in-memory vector store using brute-force
// cosine similarity. Useful for tests and single-shot CLI runs where
// persistence is not needed.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/praxis-labs/praxis-cli/internal/adapters/driven/vectorstore/record"
	"github.com/praxis-labs/praxis-cli/internal/core/domain"
	"github.com/praxis-labs/praxis-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// entry pairs an example with its embedding. Entries keep insertion order,
// which is the documented tie-break for equal similarities.
type entry struct {
	example domain.ContrastExample
	vector  []float32
}

// Store is an in-memory vector store.
type Store struct {
	mu       sync.RWMutex
	embedder driven.EmbeddingService
	entries  []entry
}

// New creates an in-memory store. The embedder is required.
func New(embedder driven.EmbeddingService) (*Store, error) {
	if embedder == nil {
		return nil, fmt.Errorf("%w: memory store requires an embedding service", domain.ErrAdapterConfig)
	}
	return &Store{embedder: embedder}, nil
}

// Index embeds and upserts examples keyed by (domain, id). An existing
// record keeps its position so storage order stays stable across updates.
func (s *Store) Index(ctx context.Context, examples []domain.ContrastExample) (int, error) {
	indexed := 0
	for i := range examples {
		e := examples[i]
		vec, err := s.embedder.Embed(ctx, e.EmbeddingText())
		if err != nil {
			return indexed, fmt.Errorf("embedding example %s/%s: %w", e.Domain, e.ID, err)
		}

		e.Embedding = nil
		e.Similarity = 0

		s.mu.Lock()
		replaced := false
		for j := range s.entries {
			if s.entries[j].example.Domain == e.Domain && s.entries[j].example.ID == e.ID {
				s.entries[j] = entry{example: e, vector: vec}
				replaced = true
				break
			}
		}
		if !replaced {
			s.entries = append(s.entries, entry{example: e, vector: vec})
		}
		s.mu.Unlock()

		indexed++
	}
	return indexed, nil
}

// Search returns the top limit examples by cosine similarity within the
// optional domain/category filters. Ties keep insertion order.
func (s *Store) Search(ctx context.Context, query, domainName, category string, limit int) ([]domain.ContrastExample, error) {
	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]domain.ContrastExample, 0, len(s.entries))
	for i := range s.entries {
		e := s.entries[i].example
		if domainName != "" && e.Domain != domainName {
			continue
		}
		if category != "" && e.Category != category {
			continue
		}
		e.Similarity = record.Cosine(queryVec, s.entries[i].vector)
		results = append(results, e)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// DeleteDomain removes all examples for a domain.
func (s *Store) DeleteDomain(_ context.Context, domainName string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[:0]
	removed := 0
	for _, en := range s.entries {
		if en.example.Domain == domainName {
			removed++
			continue
		}
		kept = append(kept, en)
	}
	s.entries = kept
	return removed, nil
}

// Count returns the number of indexed examples, optionally per domain.
func (s *Store) Count(_ context.Context, domainName string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if domainName == "" {
		return len(s.entries), nil
	}
	count := 0
	for i := range s.entries {
		if s.entries[i].example.Domain == domainName {
			count++
		}
	}
	return count, nil
}

// Close releases resources. The memory store holds none.
func (s *Store) Close() error { return nil }
