package ratelimit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	calls int
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	f.calls++
	return []float32{1}, nil
}

func (f *fakeEmbedder) Dimensions() int { return 1 }

func (f *fakeEmbedder) ModelName() string { return "fake" }

func TestEmbed_DelegatesWithinBurst(t *testing.T) {
	inner := &fakeEmbedder{}
	svc := NewEmbeddingService(inner, 100)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Embed(ctx, "text")
		require.NoError(t, err)
	}
	assert.Equal(t, 5, inner.calls)
}

func TestEmbed_CancelledContext(t *testing.T) {
	// Rate of one per second with the single burst token already spent,
	// so the second call must block and observe the cancellation.
	inner := &fakeEmbedder{}
	svc := NewEmbeddingService(inner, 1)

	_, err := svc.Embed(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = svc.Embed(ctx, "second")
	assert.Error(t, err)
	assert.Equal(t, 1, inner.calls)
}
