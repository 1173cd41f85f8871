package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_KeepsOnlyCloseSkills(t *testing.T) {
	r := NewRegistry()
	r.Put(&Fingerprint{Name: "swift-concurrency", Embedding: []float32{1, 0, 0}})
	r.Put(&Fingerprint{Name: "swiftui", Embedding: []float32{0.9, 0.1, 0}})
	r.Put(&Fingerprint{Name: "unrelated", Embedding: []float32{0, 0, 1}})

	matched := r.Match([]float32{1, 0, 0})
	require.NotEmpty(t, matched)
	assert.Contains(t, matched, "swift-concurrency")
	assert.NotContains(t, matched, "unrelated")
}

func TestMatch_EmptyRegistryReturnsNil(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Match([]float32{1, 0}))
}

func TestMatch_CapsAtEight(t *testing.T) {
	r := NewRegistry()
	for i := 0; i < 12; i++ {
		r.Put(&Fingerprint{Name: string(rune('a' + i)), Embedding: []float32{1, 0}})
	}
	matched := r.Match([]float32{1, 0})
	assert.LessOrEqual(t, len(matched), 8)
}

func TestFingerprint_TextFormat(t *testing.T) {
	f := Fingerprint{Name: "swiftui", Description: "UI framework", Domains: []string{"ui", "state"}}
	assert.Equal(t, "swiftui: UI framework. Domains: ui, state", f.Text())
}

func TestRegistry_PutReplacesAndCounts(t *testing.T) {
	r := NewRegistry()
	r.Put(&Fingerprint{Name: "a", ChunkCount: 1})
	r.Put(&Fingerprint{Name: "a", ChunkCount: 5})
	assert.Equal(t, 1, r.Count())
	got, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, 5, got.ChunkCount)
}
