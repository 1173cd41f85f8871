package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unit(dims int, hot int) []float32 {
	v := make([]float32, dims)
	v[hot] = 1.0
	return v
}

func TestHNSWStore_UpsertAndQuery(t *testing.T) {
	s := NewHNSWStore(DefaultVectorStoreConfig(4))
	require.NoError(t, s.Upsert(
		[]string{"a", "b"},
		[][]float32{unit(4, 0), unit(4, 1)},
		[]string{"doc a", "doc b"},
		[]map[string]string{{"skill": "x"}, {"skill": "y"}},
	))
	assert.Equal(t, 2, s.Count())

	results, err := s.Query(unit(4, 0), 2, nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "a", results[0].ID)
	assert.Equal(t, "doc a", results[0].Document)
}

func TestHNSWStore_DimensionMismatch(t *testing.T) {
	s := NewHNSWStore(DefaultVectorStoreConfig(4))
	err := s.Upsert([]string{"a"}, [][]float32{{1, 2}}, []string{"d"}, []map[string]string{{}})
	assert.Error(t, err)
}

func TestHNSWStore_FilterRestrictsResults(t *testing.T) {
	s := NewHNSWStore(DefaultVectorStoreConfig(4))
	require.NoError(t, s.Upsert(
		[]string{"a", "b"},
		[][]float32{unit(4, 0), unit(4, 0)},
		[]string{"doc a", "doc b"},
		[]map[string]string{{"skill": "x"}, {"skill": "y"}},
	))

	results, err := s.Query(unit(4, 0), 5, Equals("skill", "y"))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "b", results[0].ID)
}

func TestHNSWStore_UpsertReplacesExisting(t *testing.T) {
	s := NewHNSWStore(DefaultVectorStoreConfig(4))
	require.NoError(t, s.Upsert([]string{"a"}, [][]float32{unit(4, 0)}, []string{"v1"}, []map[string]string{{}}))
	require.NoError(t, s.Upsert([]string{"a"}, [][]float32{unit(4, 1)}, []string{"v2"}, []map[string]string{{}}))
	assert.Equal(t, 1, s.Count())

	got, err := s.Get([]string{"a"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "v2", got[0].Document)
}

func TestHNSWStore_DeleteByFilter(t *testing.T) {
	s := NewHNSWStore(DefaultVectorStoreConfig(4))
	require.NoError(t, s.Upsert(
		[]string{"a", "b"},
		[][]float32{unit(4, 0), unit(4, 1)},
		[]string{"doc a", "doc b"},
		[]map[string]string{{"skill": "x"}, {"skill": "y"}},
	))
	require.NoError(t, s.Delete(Equals("skill", "x")))
	assert.Equal(t, 1, s.Count())
	got, _ := s.Get([]string{"a", "b"})
	assert.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestHNSWStore_EmptyGraphQuery(t *testing.T) {
	s := NewHNSWStore(DefaultVectorStoreConfig(4))
	results, err := s.Query(unit(4, 0), 5, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestHNSWStore_SaveLoadRoundTrip(t *testing.T) {
	s := NewHNSWStore(DefaultVectorStoreConfig(4))
	require.NoError(t, s.Upsert([]string{"a"}, [][]float32{unit(4, 0)}, []string{"doc a"}, []map[string]string{{"skill": "x"}}))

	dir := t.TempDir() + "/vecs.hnsw"
	require.NoError(t, s.Save(dir))

	reloaded := NewHNSWStore(DefaultVectorStoreConfig(4))
	require.NoError(t, reloaded.Load(dir))
	assert.Equal(t, 1, reloaded.Count())
	got, err := reloaded.Get([]string{"a"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "doc a", got[0].Document)
}
