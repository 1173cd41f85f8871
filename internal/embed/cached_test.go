package embed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingEmbedder struct {
	inner *StaticEmbedder
	calls int
}

func (c *countingEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	c.calls++
	return c.inner.EmbedDocuments(ctx, texts)
}

func (c *countingEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	c.calls++
	return c.inner.EmbedQuery(ctx, text)
}

func (c *countingEmbedder) Dimensions() int  { return c.inner.Dimensions() }
func (c *countingEmbedder) ModelName() string { return c.inner.ModelName() }
func (c *countingEmbedder) Close() error      { return nil }

func TestCachedEmbedder_QueryCacheHit(t *testing.T) {
	inner := &countingEmbedder{inner: NewStaticEmbedder()}
	cached := NewCachedEmbedder(inner, 10)

	_, err := cached.EmbedQuery(context.Background(), "actor isolation")
	require.NoError(t, err)
	_, err = cached.EmbedQuery(context.Background(), "actor isolation")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
}

func TestCachedEmbedder_DocumentsPartialHit(t *testing.T) {
	inner := &countingEmbedder{inner: NewStaticEmbedder()}
	cached := NewCachedEmbedder(inner, 10)

	_, err := cached.EmbedDocuments(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)

	_, err = cached.EmbedDocuments(context.Background(), []string{"a", "c"})
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}
