// Command praxis manages domain expertise packs and assembles analysis
// contexts from them.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/praxis-labs/praxis-cli/internal/adapters/driven/config/file"
	embeddingcache "github.com/praxis-labs/praxis-cli/internal/adapters/driven/embedding/cache"
	"github.com/praxis-labs/praxis-cli/internal/adapters/driven/embedding/ollama"
	"github.com/praxis-labs/praxis-cli/internal/adapters/driven/embedding/openai"
	"github.com/praxis-labs/praxis-cli/internal/adapters/driven/embedding/ratelimit"
	generator "github.com/praxis-labs/praxis-cli/internal/adapters/driven/generator/openai"
	"github.com/praxis-labs/praxis-cli/internal/adapters/driven/tokenizer/approx"
	"github.com/praxis-labs/praxis-cli/internal/adapters/driven/tokenizer/tiktoken"
	"github.com/praxis-labs/praxis-cli/internal/adapters/driven/vectorstore"
	"github.com/praxis-labs/praxis-cli/internal/adapters/driving/cli"
	"github.com/praxis-labs/praxis-cli/internal/core/domain"
	"github.com/praxis-labs/praxis-cli/internal/core/ports/driven"
	"github.com/praxis-labs/praxis-cli/internal/core/services"
	"github.com/praxis-labs/praxis-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	// A .env in the working directory may carry OPENAI_API_KEY.
	_ = godotenv.Load()

	cli.SetVersion(version)
	cli.SetInitializer(buildServices)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildServices wires adapters into the core services from the config
// file at configPath, or the default location when empty.
func buildServices(configPath string) (*cli.Services, error) {
	if configPath == "" {
		var err error
		configPath, err = file.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := file.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	embedder, err := buildEmbedder(cfg.Embedding)
	if err != nil {
		return nil, err
	}

	store, err := vectorstore.New(cfg.Store, embedder)
	if err != nil {
		return nil, err
	}

	tokenizer, err := buildTokenizer()
	if err != nil {
		return nil, err
	}

	domains := services.NewDomainService(cfg.DomainsPath, cfg.DomainsEnabled)

	// Watch domain files for the life of the process so cached domains
	// never go stale mid-command. Failure only loses auto-invalidation.
	if _, err := services.NewDomainWatcher(cfg.DomainsPath, domains); err != nil {
		logger.Warn("Domain watching disabled: %v", err)
	}

	contexts := services.NewContextService(domains, store, tokenizer, cfg.TokenBudget)

	svcs := &cli.Services{
		Domain:  domains,
		Context: contexts,
		Index:   services.NewIndexService(domains, store),
	}

	// Analysis needs a hosted model; leave it unset without a key.
	if cfg.Embedding.Provider == domain.EmbeddingOpenAI && cfg.Embedding.APIKey != "" {
		gen, err := generator.NewGenerator(generator.Config{
			APIKey:  cfg.Embedding.APIKey,
			BaseURL: cfg.Embedding.BaseURL,
		})
		if err == nil {
			svcs.Analysis = services.NewAnalysisService(contexts, gen)
		}
	}

	return svcs, nil
}

// buildEmbedder constructs the configured provider and stacks the cache
// and rate limit decorators around it.
func buildEmbedder(cfg domain.EmbeddingConfig) (driven.EmbeddingService, error) {
	var embedder driven.EmbeddingService

	switch cfg.Provider {
	case domain.EmbeddingOpenAI:
		svc, err := openai.NewEmbeddingService(openai.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
		if err != nil {
			return nil, err
		}
		embedder = svc
	case domain.EmbeddingOllama:
		embedder = ollama.NewEmbeddingService(ollama.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	default:
		return nil, fmt.Errorf("%w: unknown embedding provider %q", domain.ErrAdapterConfig, cfg.Provider)
	}

	if cfg.RequestsPerSecond > 0 {
		embedder = ratelimit.NewEmbeddingService(embedder, cfg.RequestsPerSecond)
	}
	if cfg.CacheSize > 0 {
		embedder = embeddingcache.NewEmbeddingService(embedder, 0)
	}
	return embedder, nil
}

// buildTokenizer prefers exact BPE counting and falls back to the
// offline estimator when the encoding data cannot be loaded.
func buildTokenizer() (driven.Tokenizer, error) {
	tok, err := tiktoken.New()
	if err != nil {
		logger.Warn("Exact tokenizer unavailable, using estimate: %v", err)
		return approx.New(), nil
	}
	return tok, nil
}
