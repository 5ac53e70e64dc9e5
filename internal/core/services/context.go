package services

import (
	"context"
	"fmt"
	"time"

	"github.com/praxis-labs/praxis-cli/internal/core/domain"
	"github.com/praxis-labs/praxis-cli/internal/core/ports/driven"
	"github.com/praxis-labs/praxis-cli/internal/core/ports/driving"
	"github.com/praxis-labs/praxis-cli/internal/logger"
)

// Ensure ContextService implements the interface.
var _ driving.ContextService = (*ContextService)(nil)

// Example sizing. The example count is planned from an average size
// before retrieval, then the actual token cost is measured.
const (
	examplesTokenCap = 4000
	avgExampleTokens = 600
)

// ContextService assembles analysis contexts from the three knowledge
// tiers: principles always, the task rubric when one matches, and as
// many retrieved examples as the remaining budget affords.
type ContextService struct {
	domains       driving.DomainService
	store         driven.VectorStore
	tokenizer     driven.Tokenizer
	defaultBudget int
}

// NewContextService creates a context service. defaultBudget is used
// when a call passes a non-positive budget.
func NewContextService(
	domains driving.DomainService,
	store driven.VectorStore,
	tokenizer driven.Tokenizer,
	defaultBudget int,
) *ContextService {
	return &ContextService{
		domains:       domains,
		store:         store,
		tokenizer:     tokenizer,
		defaultBudget: defaultBudget,
	}
}

// PrepareContext builds the bundle for one analysis. Principles and the
// rubric are included whole and never truncated, so the measured total
// can exceed the budget; callers get the honest count either way.
func (s *ContextService) PrepareContext(
	ctx context.Context, domainName, task, query string, tokenBudget int,
) (*domain.AnalysisContext, error) {
	defer logger.Timing("prepare context", time.Now())

	if tokenBudget <= 0 {
		tokenBudget = s.defaultBudget
	}
	logger.Section("Context Assembly")
	logger.Debug("Domain: %s, task: %q, budget: %d", domainName, task, tokenBudget)

	principles, err := s.domains.Principles(domainName)
	if err != nil {
		return nil, err
	}
	used := s.tokenizer.Count(principles)

	rubric, err := s.domains.Rubric(domainName, task)
	if err != nil {
		return nil, err
	}
	if rubric != nil {
		used += s.tokenizer.Count(rubric.Render())
		logger.Debug("Rubric matched: %s", rubric.ID)
	}

	remaining := tokenBudget - used
	if remaining < 0 {
		remaining = 0
	}
	examplesBudget := remaining
	if examplesBudget > examplesTokenCap {
		examplesBudget = examplesTokenCap
	}
	maxExamples := examplesBudget / avgExampleTokens
	if maxExamples < 1 {
		maxExamples = 1
	}
	logger.Debug("Tier budget: %d used, %d for examples, fetching up to %d",
		used, examplesBudget, maxExamples)

	// Store failures surface to the caller; retry policy lives there.
	examples, err := s.store.Search(ctx, query, domainName, "", maxExamples)
	if err != nil {
		return nil, fmt.Errorf("retrieving examples: %w", err)
	}

	total := used
	for i := range examples {
		total += s.tokenizer.Count(examples[i].Render())
	}

	return &domain.AnalysisContext{
		Principles: principles,
		Rubric:     rubric,
		Examples:   examples,
		TokenCount: total,
	}, nil
}
