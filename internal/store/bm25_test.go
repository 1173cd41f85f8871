package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBM25_EmptyQueryReturnsNoResults(t *testing.T) {
	b := NewBM25Index()
	require.NoError(t, b.Fit([]Document{{ID: "a", Text: "swift concurrency actor"}}))
	assert.Empty(t, b.Score("", 10))
	assert.Empty(t, b.Score("   ", 10))
}

func TestBM25_ScoresDescendingAndPositive(t *testing.T) {
	b := NewBM25Index()
	require.NoError(t, b.Fit([]Document{
		{ID: "a", Text: "actor isolation sendable data race"},
		{ID: "b", Text: "swiftui view state binding"},
		{ID: "c", Text: "actor actor actor sendable"},
	}))

	results := b.Score("actor sendable", 10)
	require.NotEmpty(t, results)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
	for _, r := range results {
		assert.Positive(t, r.Score)
		assert.NotEqual(t, "b", r.ID)
	}
}

func TestBM25_TopKTruncates(t *testing.T) {
	b := NewBM25Index()
	docs := make([]Document, 0, 20)
	for i := 0; i < 20; i++ {
		docs = append(docs, Document{ID: string(rune('a' + i)), Text: "concurrency swift actor"})
	}
	require.NoError(t, b.Fit(docs))
	assert.Len(t, b.Score("concurrency", 5), 5)
}

func TestBM25_SaveLoadRoundTrip(t *testing.T) {
	b := NewBM25Index()
	require.NoError(t, b.Fit([]Document{
		{ID: "a", Text: "actor isolation"},
		{ID: "b", Text: "swiftui binding"},
	}))

	path := filepath.Join(t.TempDir(), "bm25.gob")
	require.NoError(t, b.Save(path))

	reloaded := NewBM25Index()
	require.NoError(t, reloaded.Load(path))
	assert.Equal(t, b.Count(), reloaded.Count())
	assert.Equal(t, b.Score("actor", 10), reloaded.Score("actor", 10))
	_ = os.Remove(path)
}

func TestBM25_EmptyCorpus(t *testing.T) {
	b := NewBM25Index()
	require.NoError(t, b.Fit(nil))
	assert.Empty(t, b.Score("anything", 10))
	assert.Equal(t, 0, b.Count())
}
