// Package store holds the engine's two persistent indices: a lexical
// BM25Index and an approximate-nearest-neighbour VectorStore.
package store

import "fmt"

// Document is a BM25-indexed unit: an id and the text it was scored on.
type Document struct {
	ID   string
	Text string
}

// BM25Result is one scored hit from BM25Index.Score.
type BM25Result struct {
	ID    string
	Score float64
}

// BM25Index is the lexical half of hybrid retrieval.
type BM25Index interface {
	Fit(docs []Document) error
	Score(query string, topK int) []BM25Result
	Count() int
	Save(path string) error
	Load(path string) error
}

// VectorResult is one hit from VectorStore.Query: the id, cosine
// distance, the stored document text, and its metadata.
type VectorResult struct {
	ID       string
	Distance float32
	Document string
	Metadata map[string]string
}

// Filter restricts VectorStore.Query to records whose metadata matches.
// A field present with a single value is an equality filter; a field
// present with multiple values is an IN filter.
type Filter map[string][]string

// Equals builds a single-value equality filter.
func Equals(field, value string) Filter {
	return Filter{field: {value}}
}

// In builds a multi-value membership filter.
func In(field string, values []string) Filter {
	if len(values) == 0 {
		return nil
	}
	return Filter{field: values}
}

// Matches reports whether metadata satisfies every field in f.
func (f Filter) Matches(metadata map[string]string) bool {
	for field, allowed := range f {
		got, ok := metadata[field]
		if !ok {
			return false
		}
		found := false
		for _, v := range allowed {
			if v == got {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// VectorStoreConfig configures a VectorStore's dimensionality and ANN
// parameters.
type VectorStoreConfig struct {
	Dimensions int
	M          int
	EfSearch   int
}

// DefaultVectorStoreConfig returns the HNSW defaults used when a config
// field is left zero.
func DefaultVectorStoreConfig(dimensions int) VectorStoreConfig {
	return VectorStoreConfig{Dimensions: dimensions, M: 16, EfSearch: 20}
}

// VectorStore is the semantic half of hybrid retrieval. It persists a
// vector, the document text it was embedded from, and arbitrary string
// metadata, keyed by chunk id.
type VectorStore interface {
	Upsert(ids []string, vectors [][]float32, documents []string, metadatas []map[string]string) error
	Delete(where Filter) error
	Count() int
	Query(vector []float32, nResults int, where Filter) ([]VectorResult, error)
	Get(ids []string) ([]VectorResult, error)
	Save(path string) error
	Load(path string) error
	Close() error
}

// ErrDimensionMismatch reports a vector whose length disagrees with the
// store's configured dimensionality.
type ErrDimensionMismatch struct {
	Expected int
	Got      int
}

func (e ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("vector dimension mismatch: expected %d, got %d", e.Expected, e.Got)
}
