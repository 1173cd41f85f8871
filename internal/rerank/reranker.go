// Package rerank implements the optional Reranker contract: scoring a
// batch of (query, passage) pairs with a cross-encoder.
package rerank

import "context"

// Reranker is the cross-encoder contract. Predict returns one score per
// passage, in the same order as passages.
type Reranker interface {
	Predict(ctx context.Context, query string, passages []string) ([]float64, error)
	Available(ctx context.Context) bool
	Close() error
}

// NoOpReranker is used when reranking is disabled or unavailable. It
// assigns strictly decreasing scores that preserve the input order,
// so a caller that always re-sorts by score sees no change.
type NoOpReranker struct{}

var _ Reranker = NoOpReranker{}

// Predict assigns decreasing synthetic scores preserving passage order.
func (NoOpReranker) Predict(_ context.Context, _ string, passages []string) ([]float64, error) {
	scores := make([]float64, len(passages))
	for i := range passages {
		scores[i] = 1.0 - float64(i)*0.01
	}
	return scores, nil
}

// Available always reports true; NoOpReranker has no external dependency.
func (NoOpReranker) Available(_ context.Context) bool { return true }

// Close is a no-op.
func (NoOpReranker) Close() error { return nil }
