// Package vectorstore constructs the configured vector store backend.
package vectorstore

import (
	"fmt"

	"github.com/praxis-labs/praxis-cli/internal/adapters/driven/vectorstore/memory"
	"github.com/praxis-labs/praxis-cli/internal/adapters/driven/vectorstore/postgres"
	"github.com/praxis-labs/praxis-cli/internal/adapters/driven/vectorstore/sqlite"
	"github.com/praxis-labs/praxis-cli/internal/core/domain"
	"github.com/praxis-labs/praxis-cli/internal/core/ports/driven"
)

// New builds a vector store from configuration. The config is validated
// first so backend constructors only see well-formed input.
func New(cfg domain.StoreConfig, embedder driven.EmbeddingService) (driven.VectorStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Kind {
	case domain.StoreMemory:
		return memory.New(embedder)
	case domain.StoreSQLite:
		return sqlite.New(cfg.Path, embedder)
	case domain.StorePostgres:
		return postgres.New(cfg.DSN, cfg.Table, embedder)
	default:
		return nil, fmt.Errorf("%w: unknown store kind %q", domain.ErrAdapterConfig, cfg.Kind)
	}
}
