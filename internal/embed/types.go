// Package embed implements the EmbeddingProvider contract: mapping text
// to fixed-dimensionality vectors in two modes, document and query.
package embed

import (
	"context"
	"math"
)

// Remote providers batch at 128 items per call; local providers batch at
// 64. Batching exists for throughput, not correctness.
const (
	RemoteBatchSize = 128
	LocalBatchSize  = 64

	// StaticDimensions is the vector width produced by the static,
	// dependency-free embedder.
	StaticDimensions = 256
)

// Embedder is the EmbeddingProvider contract. All vectors returned by a
// given Embedder have identical dimensionality; embedding failures are
// exceptional and are not retried by callers.
type Embedder interface {
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
	ModelName() string
	Close() error
}

// normalizeVector L2-normalizes v in place and returns it, so cosine
// distance over stored vectors reduces to a dot product.
func normalizeVector(v []float32) []float32 {
	var sumSquares float64
	for _, x := range v {
		sumSquares += float64(x) * float64(x)
	}
	if sumSquares == 0 {
		return v
	}
	inv := float32(1.0 / math.Sqrt(sumSquares))
	for i := range v {
		v[i] *= inv
	}
	return v
}
