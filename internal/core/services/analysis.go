package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/praxis-labs/praxis-cli/internal/core/domain"
	"github.com/praxis-labs/praxis-cli/internal/core/ports/driven"
	"github.com/praxis-labs/praxis-cli/internal/core/ports/driving"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// maxResponseTokens caps the generated analysis length.
const maxResponseTokens = 2000

// AnalysisService feeds an assembled expertise context and a subject to
// a text generator.
type AnalysisService struct {
	contexts  driving.ContextService
	generator driven.TextGenerator
}

// NewAnalysisService creates an analysis service.
func NewAnalysisService(contexts driving.ContextService, generator driven.TextGenerator) *AnalysisService {
	return &AnalysisService{contexts: contexts, generator: generator}
}

// Analyze assembles a context for the task, retrieving examples similar
// to the subject, and generates an analysis of the subject against it.
func (s *AnalysisService) Analyze(ctx context.Context, domainName, task, subject string, tokenBudget int) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", fmt.Errorf("%w: subject is empty", domain.ErrInvalidInput)
	}

	bundle, err := s.contexts.PrepareContext(ctx, domainName, task, subject, tokenBudget)
	if err != nil {
		return "", err
	}

	prompt := buildPrompt(bundle, task, subject)
	return s.generator.Generate(ctx, prompt, maxResponseTokens)
}

// buildPrompt lays the tiers out in a fixed order ending with the
// subject, so the model reads the standards before the material.
func buildPrompt(bundle *domain.AnalysisContext, task, subject string) string {
	var b strings.Builder

	b.WriteString("You are an expert reviewer. Apply the following domain expertise.\n")
	if bundle.Principles != "" {
		b.WriteString("\n# PRINCIPLES\n\n")
		b.WriteString(bundle.Principles)
	}
	if bundle.Rubric != nil {
		b.WriteString("\n# RUBRIC\n\n")
		b.WriteString(bundle.Rubric.Render())
	}
	for i := range bundle.Examples {
		fmt.Fprintf(&b, "\n# EXAMPLE %d\n\n", i+1)
		b.WriteString(bundle.Examples[i].Render())
	}

	if task != "" {
		fmt.Fprintf(&b, "\nTask: %s\n", task)
	}
	b.WriteString("\n# SUBJECT\n\n")
	b.WriteString(subject)
	b.WriteString("\n\nAnalyze the subject against the principles")
	if bundle.Rubric != nil {
		b.WriteString(", score it on the rubric")
	}
	b.WriteString(" and point to the closest examples.\n")

	return b.String()
}
