package vectorstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxis-labs/praxis-cli/internal/core/domain"
)

type fakeEmbedder struct{}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func (f *fakeEmbedder) Dimensions() int { return 3 }

func (f *fakeEmbedder) ModelName() string { return "fake" }

func TestNew_MemoryBackend(t *testing.T) {
	store, err := New(domain.StoreConfig{Kind: domain.StoreMemory}, &fakeEmbedder{})
	require.NoError(t, err)
	defer store.Close()

	count, err := store.Count(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestNew_SQLiteBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "praxis.db")
	store, err := New(domain.StoreConfig{Kind: domain.StoreSQLite, Path: path}, &fakeEmbedder{})
	require.NoError(t, err)
	defer store.Close()

	count, err := store.Count(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  domain.StoreConfig
	}{
		{"unknown kind", domain.StoreConfig{Kind: "redis"}},
		{"empty kind", domain.StoreConfig{}},
		{"sqlite without path", domain.StoreConfig{Kind: domain.StoreSQLite}},
		{"postgres without dsn", domain.StoreConfig{Kind: domain.StorePostgres}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, &fakeEmbedder{})
			assert.True(t, errors.Is(err, domain.ErrAdapterConfig))
		})
	}
}
