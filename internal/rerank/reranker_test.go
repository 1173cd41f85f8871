package rerank

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoOpReranker_PreservesOrder(t *testing.T) {
	r := NoOpReranker{}
	scores, err := r.Predict(context.Background(), "q", []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, scores, 3)
	for i := 1; i < len(scores); i++ {
		assert.Greater(t, scores[i-1], scores[i])
	}
}

func TestNoOpReranker_Available(t *testing.T) {
	assert.True(t, NoOpReranker{}.Available(context.Background()))
}

func TestNoOpReranker_EmptyPassages(t *testing.T) {
	scores, err := NoOpReranker{}.Predict(context.Background(), "q", nil)
	require.NoError(t, err)
	assert.Empty(t, scores)
}
