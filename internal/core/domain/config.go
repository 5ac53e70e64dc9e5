package domain

import "fmt"

// StoreKind enumerates the recognised vector store backends.
type StoreKind string

const (
	StoreMemory   StoreKind = "memory"
	StoreSQLite   StoreKind = "sqlite"
	StorePostgres StoreKind = "postgres"
)

// StoreConfig selects and configures a vector store backend.
// Exactly the fields for the selected kind are required; validation
// rejects missing fields at construction rather than on first use.
type StoreConfig struct {
	Kind StoreKind `toml:"kind"`

	// Path is the SQLite database file. Required for StoreSQLite.
	Path string `toml:"path"`

	// DSN is the Postgres connection string. Required for StorePostgres.
	DSN string `toml:"dsn"`

	// Table overrides the examples table name. Optional.
	Table string `toml:"table"`
}

// Validate checks the configuration for the selected backend kind.
func (c StoreConfig) Validate() error {
	switch c.Kind {
	case StoreMemory:
		return nil
	case StoreSQLite:
		if c.Path == "" {
			return fmt.Errorf("%w: sqlite store requires path", ErrAdapterConfig)
		}
		return nil
	case StorePostgres:
		if c.DSN == "" {
			return fmt.Errorf("%w: postgres store requires dsn", ErrAdapterConfig)
		}
		return nil
	case "":
		return fmt.Errorf("%w: store kind is required", ErrAdapterConfig)
	default:
		return fmt.Errorf("%w: unknown store kind %q", ErrAdapterConfig, c.Kind)
	}
}

// EmbeddingProviderKind enumerates the recognised embedding providers.
type EmbeddingProviderKind string

const (
	EmbeddingOpenAI EmbeddingProviderKind = "openai"
	EmbeddingOllama EmbeddingProviderKind = "ollama"
)

// EmbeddingConfig configures the embedding capability.
type EmbeddingConfig struct {
	Provider EmbeddingProviderKind `toml:"provider"`

	// Model is provider-specific. Defaults are chosen per provider.
	Model string `toml:"model"`

	// BaseURL overrides the provider endpoint (Azure, local proxies,
	// Ollama hosts).
	BaseURL string `toml:"base_url"`

	// APIKey authenticates against hosted providers. Usually supplied
	// via the OPENAI_API_KEY environment variable instead.
	APIKey string `toml:"api_key"`

	// CacheSize > 0 enables embedding memoization.
	CacheSize int `toml:"cache_size"`

	// RequestsPerSecond > 0 enables client-side rate limiting.
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// Config is the engine configuration loaded from the TOML config file.
type Config struct {
	// DomainsPath is the root directory holding one subdirectory per domain.
	DomainsPath string `toml:"domains_path"`

	// DomainsEnabled restricts the visible domains. Empty means all.
	DomainsEnabled []string `toml:"domains_enabled"`

	// TokenBudget is the default context assembly budget.
	TokenBudget int `toml:"token_budget"`

	Store     StoreConfig     `toml:"store"`
	Embedding EmbeddingConfig `toml:"embedding"`
}

// Validate checks the whole engine configuration.
func (c Config) Validate() error {
	if c.DomainsPath == "" {
		return fmt.Errorf("%w: domains_path is required", ErrInvalidInput)
	}
	return c.Store.Validate()
}
