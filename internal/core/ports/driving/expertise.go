package driving

import (
	"context"

	"github.com/praxis-labs/praxis-cli/internal/core/domain"
)

// DomainService loads and caches per-domain knowledge.
type DomainService interface {
	// Load returns the cached domain, loading it on first access.
	Load(name string) (*domain.Domain, error)

	// Principles returns the raw tier-1 principles text, "" if absent.
	Principles(name string) (string, error)

	// Rubric returns the rubric for a task, nil when none matches.
	Rubric(name, task string) (*domain.Rubric, error)

	// Framework returns deep-reference text on demand, uncached.
	Framework(name, frameworkID string) (string, bool, error)

	// Validate reports a domain's structural health.
	Validate(name string) (domain.ValidationResult, error)

	// ListDomains returns the available domain names, sorted.
	ListDomains() ([]string, error)

	// Invalidate drops a domain from the cache so the next access re-reads
	// its files. Reload does the same and loads eagerly.
	Invalidate(name string)
	Reload(name string) (*domain.Domain, error)
}

// ContextService assembles bounded analysis contexts.
type ContextService interface {
	// PrepareContext builds a token-budgeted bundle of principles, rubric
	// and examples for the given task and query.
	PrepareContext(ctx context.Context, domainName, task, query string, tokenBudget int) (*domain.AnalysisContext, error)
}

// AnalysisService runs a model analysis over an assembled context.
type AnalysisService interface {
	// Analyze prepares a context for the task and asks the generator to
	// analyze the subject against it.
	Analyze(ctx context.Context, domainName, task, subject string, tokenBudget int) (string, error)
}

// IndexService maintains the vector store from on-disk example files.
type IndexService interface {
	// IndexDomain parses and indexes every example file of a domain.
	// Per-file failures are reported, not fatal.
	IndexDomain(ctx context.Context, name string) (domain.IndexReport, error)

	// Search retrieves the closest indexed examples for a query.
	// An empty category matches all categories.
	Search(ctx context.Context, query, domainName, category string, limit int) ([]domain.ContrastExample, error)

	// ClearDomain removes all indexed examples for a domain.
	ClearDomain(ctx context.Context, name string) (int, error)

	// Count reports indexed examples, "" for all domains.
	Count(ctx context.Context, name string) (int, error)
}
