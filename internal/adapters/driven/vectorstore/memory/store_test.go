package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxis-labs/praxis-cli/internal/core/domain"
)

// fakeEmbedder returns fixed vectors keyed by markers in the text.
type fakeEmbedder struct {
	byMarker map[string][]float32
	fallback []float32
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	for marker, vec := range f.byMarker {
		if strings.Contains(text, marker) {
			return vec, nil
		}
	}
	return f.fallback, nil
}

func (f *fakeEmbedder) Dimensions() int { return len(f.fallback) }

func (f *fakeEmbedder) ModelName() string { return "fake" }

func newTestStore(t *testing.T, embedder *fakeEmbedder) *Store {
	t.Helper()
	store, err := New(embedder)
	require.NoError(t, err)
	return store
}

func TestNew_RequiresEmbedder(t *testing.T) {
	_, err := New(nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAdapterConfig)
}

func TestSearch_EmptyStore(t *testing.T) {
	store := newTestStore(t, &fakeEmbedder{fallback: []float32{1, 0}})
	ctx := context.Background()

	tests := []struct {
		query    string
		domain   string
		category string
		limit    int
	}{
		{"anything", "", "", 5},
		{"", "d", "c", 0},
		{"q", "missing", "", 100},
	}

	for _, tt := range tests {
		results, err := store.Search(ctx, tt.query, tt.domain, tt.category, tt.limit)
		require.NoError(t, err)
		assert.Empty(t, results)
	}
}

func TestIndex_UpsertReplacesByNaturalKey(t *testing.T) {
	store := newTestStore(t, &fakeEmbedder{fallback: []float32{1, 0}})
	ctx := context.Background()

	n, err := store.Index(ctx, []domain.ContrastExample{
		{ID: "e1", Domain: "d", WeakContent: "first version"},
		{ID: "e1", Domain: "d", WeakContent: "second version"},
	})
	require.NoError(t, err)
	// Count of processed examples, not deduplicated records.
	assert.Equal(t, 2, n)

	count, err := store.Count(ctx, "d")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	results, err := store.Search(ctx, "q", "d", "", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "second version", results[0].WeakContent)
}

func TestDeleteDomain_LeavesOtherDomains(t *testing.T) {
	store := newTestStore(t, &fakeEmbedder{fallback: []float32{1, 0}})
	ctx := context.Background()

	_, err := store.Index(ctx, []domain.ContrastExample{
		{ID: "e1", Domain: "copywriting"},
		{ID: "e2", Domain: "code-review"},
	})
	require.NoError(t, err)

	removed, err := store.DeleteDomain(ctx, "copywriting")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	count, err := store.Count(ctx, "copywriting")
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = store.Count(ctx, "code-review")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Deleting an absent domain is a no-op, not an error.
	removed, err = store.DeleteDomain(ctx, "never-indexed")
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestSearch_OrderedBySimilarityDescending(t *testing.T) {
	embedder := &fakeEmbedder{
		byMarker: map[string][]float32{
			"marker-exact":      {1, 0},
			"marker-diagonal":   {1, 1},
			"marker-orthogonal": {0, 1},
			"the query":         {1, 0},
		},
		fallback: []float32{0, 0},
	}
	store := newTestStore(t, embedder)
	ctx := context.Background()

	_, err := store.Index(ctx, []domain.ContrastExample{
		{ID: "orth", Domain: "d", WeakContent: "marker-orthogonal"},
		{ID: "diag", Domain: "d", WeakContent: "marker-diagonal"},
		{ID: "exact", Domain: "d", WeakContent: "marker-exact"},
	})
	require.NoError(t, err)

	results, err := store.Search(ctx, "the query", "d", "", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Hand-computed cosines against [1,0]: exact=1, diag=sqrt(2)/2, orth=0.
	assert.Equal(t, "exact", results[0].ID)
	assert.Equal(t, "diag", results[1].ID)
	assert.Equal(t, "orth", results[2].ID)
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-9)
	assert.InDelta(t, 0.7071, results[1].Similarity, 1e-4)
	assert.InDelta(t, 0.0, results[2].Similarity, 1e-9)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Similarity, results[i].Similarity)
	}
}

func TestSearch_FiltersAndLimit(t *testing.T) {
	store := newTestStore(t, &fakeEmbedder{fallback: []float32{1, 0}})
	ctx := context.Background()

	_, err := store.Index(ctx, []domain.ContrastExample{
		{ID: "e1", Domain: "d1", Category: "headlines"},
		{ID: "e2", Domain: "d1", Category: "ctas"},
		{ID: "e3", Domain: "d2", Category: "headlines"},
	})
	require.NoError(t, err)

	results, err := store.Search(ctx, "q", "d1", "headlines", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "e1", results[0].ID)

	results, err = store.Search(ctx, "q", "", "", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// Non-positive limit returns every match.
	results, err = store.Search(ctx, "q", "", "", 0)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestSearch_TiesKeepInsertionOrder(t *testing.T) {
	store := newTestStore(t, &fakeEmbedder{fallback: []float32{1, 0}})
	ctx := context.Background()

	_, err := store.Index(ctx, []domain.ContrastExample{
		{ID: "first", Domain: "d"},
		{ID: "second", Domain: "d"},
		{ID: "third", Domain: "d"},
	})
	require.NoError(t, err)

	results, err := store.Search(ctx, "q", "d", "", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, []string{"first", "second", "third"},
		[]string{results[0].ID, results[1].ID, results[2].ID})
}
