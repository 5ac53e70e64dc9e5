package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxis-labs/praxis-cli/internal/core/domain"
)

func newContextFixture(t *testing.T, store *recordingStore, defaultBudget int) (*ContextService, *DomainService) {
	t.Helper()
	root := writeTestDomain(t, t.TempDir(), "code-review")
	domains := NewDomainService(root, nil)
	return NewContextService(domains, store, charTokenizer{}, defaultBudget), domains
}

func TestPrepareContext_IncludesAllTiers(t *testing.T) {
	example := domain.ContrastExample{
		ID:            "architecture/layering",
		Domain:        "code-review",
		WeakContent:   "w",
		WeakReasons:   []string{"r"},
		StrongContent: "s",
		StrongReasons: []string{"r"},
		Similarity:    0.9,
	}
	store := &recordingStore{results: []domain.ContrastExample{example}}
	svc, domains := newContextFixture(t, store, 8000)

	result, err := svc.PrepareContext(context.Background(), "code-review", "code-review", "layering query", 8000)
	require.NoError(t, err)

	dom, err := domains.Load("code-review")
	require.NoError(t, err)

	assert.Equal(t, dom.PrinciplesText, result.Principles)
	require.NotNil(t, result.Rubric)
	assert.Equal(t, "code-review", result.Rubric.ID)
	require.Len(t, result.Examples, 1)
	assert.Equal(t, "layering query", store.searchQuery)
	assert.Equal(t, "code-review", store.searchDomain)

	// The measured total is principles plus rubric plus each example's
	// rendered form, one token per byte under the test tokenizer.
	want := len(dom.PrinciplesText) + len(result.Rubric.Render()) + len(example.Render())
	assert.Equal(t, want, result.TokenCount)
}

func TestPrepareContext_ExampleCountFromBudget(t *testing.T) {
	store := &recordingStore{}
	svc, domains := newContextFixture(t, store, 8000)

	dom, err := domains.Load("code-review")
	require.NoError(t, err)
	used := len(dom.PrinciplesText) + len(dom.Rubrics[0].Render())

	t.Run("remaining budget divided by average size", func(t *testing.T) {
		budget := used + 1800
		_, err := svc.PrepareContext(context.Background(), "code-review", "code-review", "q", budget)
		require.NoError(t, err)
		assert.Equal(t, 3, store.searchLimit)
	})

	t.Run("examples budget is capped", func(t *testing.T) {
		budget := used + 100000
		_, err := svc.PrepareContext(context.Background(), "code-review", "code-review", "q", budget)
		require.NoError(t, err)
		// Cap of 4000 tokens at 600 apiece.
		assert.Equal(t, 6, store.searchLimit)
	})

	t.Run("floor of one example", func(t *testing.T) {
		_, err := svc.PrepareContext(context.Background(), "code-review", "code-review", "q", 10)
		require.NoError(t, err)
		assert.Equal(t, 1, store.searchLimit)
	})

	t.Run("non-positive budget uses default", func(t *testing.T) {
		_, err := svc.PrepareContext(context.Background(), "code-review", "code-review", "q", 0)
		require.NoError(t, err)
		wantRemaining := 8000 - used
		if wantRemaining > examplesTokenCap {
			wantRemaining = examplesTokenCap
		}
		assert.Equal(t, wantRemaining/avgExampleTokens, store.searchLimit)
	})
}

func TestPrepareContext_NoRubricMatch(t *testing.T) {
	store := &recordingStore{}
	svc, domains := newContextFixture(t, store, 8000)

	result, err := svc.PrepareContext(context.Background(), "code-review", "unknown-task", "q", 8000)
	require.NoError(t, err)

	assert.Nil(t, result.Rubric)

	dom, err := domains.Load("code-review")
	require.NoError(t, err)
	assert.Equal(t, len(dom.PrinciplesText), result.TokenCount)
}

func TestPrepareContext_StoreFailurePropagates(t *testing.T) {
	searchErr := fmt.Errorf("%w: connection refused", domain.ErrBackendUnavailable)
	store := &recordingStore{searchErr: searchErr}
	svc, _ := newContextFixture(t, store, 8000)

	result, err := svc.PrepareContext(context.Background(), "code-review", "code-review", "q", 8000)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBackendUnavailable))
	assert.Nil(t, result)
}

func TestPrepareContext_UnknownDomain(t *testing.T) {
	store := &recordingStore{}
	svc, _ := newContextFixture(t, store, 8000)

	_, err := svc.PrepareContext(context.Background(), "missing", "task", "q", 8000)
	assert.True(t, errors.Is(err, domain.ErrDomainNotFound))
}
