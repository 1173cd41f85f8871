package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuse_MonotoneNonIncreasing(t *testing.T) {
	semantic := []RankedID{{ID: "a", Rank: 0}, {ID: "b", Rank: 1}, {ID: "c", Rank: 2}}
	bm25 := []RankedID{{ID: "b", Rank: 0}, {ID: "a", Rank: 1}}

	out := Fuse(semantic, bm25)
	require.Len(t, out, 3)
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].RRFScore, out[i].RRFScore)
	}
}

func TestFuse_OnlyListPresenceCounted(t *testing.T) {
	// "a" appears only in semantic at rank 0; its score must be exactly
	// 1/(60+0+1), with no contribution from the list it's absent from.
	out := Fuse([]RankedID{{ID: "a", Rank: 0}}, nil)
	require.Len(t, out, 1)
	assert.InDelta(t, 1.0/61.0, out[0].RRFScore, 1e-9)
	assert.True(t, out[0].InSemantic)
	assert.False(t, out[0].InBM25)
}

func TestFuse_BothListsSum(t *testing.T) {
	out := Fuse([]RankedID{{ID: "a", Rank: 2}}, []RankedID{{ID: "a", Rank: 0}})
	require.Len(t, out, 1)
	expected := 1.0/float64(RRFConstant+2+1) + 1.0/float64(RRFConstant+0+1)
	assert.InDelta(t, expected, out[0].RRFScore, 1e-9)
}

func TestFuse_EmptyInputsYieldEmpty(t *testing.T) {
	assert.Empty(t, Fuse(nil, nil))
}

func TestFuse_TiesBreakByChunkID(t *testing.T) {
	out := Fuse([]RankedID{{ID: "z", Rank: 0}, {ID: "a", Rank: 0}}, nil)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ChunkID)
}
