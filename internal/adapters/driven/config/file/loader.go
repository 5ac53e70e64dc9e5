// Package file loads praxis configuration from a TOML file, applying
// defaults and environment overrides for secrets.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/praxis-labs/praxis-cli/internal/core/domain"
)

// Default configuration values.
const (
	DefaultTokenBudget = 8000
	configFileName     = "config.toml"
	praxisDirName      = ".praxis"
)

// fileConfig mirrors the TOML layout. Zero values mean "use default".
type fileConfig struct {
	Domains struct {
		Path    string   `toml:"path"`
		Enabled []string `toml:"enabled"`
	} `toml:"domains"`

	Context struct {
		TokenBudget int `toml:"token_budget"`
	} `toml:"context"`

	Store struct {
		Kind  string `toml:"kind"`
		Path  string `toml:"path"`
		DSN   string `toml:"dsn"`
		Table string `toml:"table"`
	} `toml:"store"`

	Embedding struct {
		Provider          string  `toml:"provider"`
		Model             string  `toml:"model"`
		BaseURL           string  `toml:"base_url"`
		APIKey            string  `toml:"api_key"`
		CacheSize         int     `toml:"cache_size"`
		RequestsPerSecond float64 `toml:"requests_per_second"`
	} `toml:"embedding"`
}

// DefaultPath returns ~/.praxis/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, praxisDirName, configFileName), nil
}

// Load reads configuration from path. A missing file yields pure
// defaults rather than an error, so first runs work without setup.
// The OpenAI key falls back to the OPENAI_API_KEY environment variable
// so it never has to live in the file.
func Load(path string) (domain.Config, error) {
	var fc fileConfig

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return domain.Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &fc); err != nil {
			return domain.Config{}, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg := domain.Config{
		DomainsPath:    fc.Domains.Path,
		DomainsEnabled: fc.Domains.Enabled,
		TokenBudget:    fc.Context.TokenBudget,
		Store: domain.StoreConfig{
			Kind:  domain.StoreKind(fc.Store.Kind),
			Path:  fc.Store.Path,
			DSN:   fc.Store.DSN,
			Table: fc.Store.Table,
		},
		Embedding: domain.EmbeddingConfig{
			Provider:          domain.EmbeddingProviderKind(fc.Embedding.Provider),
			Model:             fc.Embedding.Model,
			BaseURL:           fc.Embedding.BaseURL,
			APIKey:            fc.Embedding.APIKey,
			CacheSize:         fc.Embedding.CacheSize,
			RequestsPerSecond: fc.Embedding.RequestsPerSecond,
		},
	}

	applyDefaults(&cfg)

	if cfg.Embedding.APIKey == "" {
		cfg.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	return cfg, nil
}

func applyDefaults(cfg *domain.Config) {
	if cfg.DomainsPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.DomainsPath = filepath.Join(home, praxisDirName, "domains")
		}
	}
	if cfg.TokenBudget <= 0 {
		cfg.TokenBudget = DefaultTokenBudget
	}
	if cfg.Store.Kind == "" {
		cfg.Store.Kind = domain.StoreSQLite
	}
	if cfg.Store.Kind == domain.StoreSQLite && cfg.Store.Path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.Store.Path = filepath.Join(home, praxisDirName, "praxis.db")
		}
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = domain.EmbeddingOpenAI
	}
}
