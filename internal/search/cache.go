package search

import (
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the query cache (no eviction is mandated; an
// LRU cap keeps memory bounded without changing externally observable
// behaviour beyond occasional recomputation).
const DefaultCacheSize = 1024

// cacheEntry stores a cached response alongside the embedding of the
// query that produced it, so a later semantic lookup never needs to
// re-embed every cached query to compute a similarity.
type cacheEntry struct {
	embedding []float32
	response  Response
}

// Cache is the QueryCache: exact match on query string, or cosine-argmax
// semantic match against previously cached query embeddings.
type Cache struct {
	byQuery    *lru.Cache[string, cacheEntry]
	similarity float64
}

// NewCache returns a Cache requiring similarity >= minSimilarity for a
// semantic hit.
func NewCache(minSimilarity float64) *Cache {
	c, _ := lru.New[string, cacheEntry](DefaultCacheSize)
	return &Cache{byQuery: c, similarity: minSimilarity}
}

// LookupExact returns a cached response for the literal query string,
// with no embedding involved.
func (c *Cache) LookupExact(query string) (Response, bool) {
	entry, ok := c.byQuery.Get(query)
	if !ok {
		return Response{}, false
	}
	resp := entry.response
	resp.FromCache = true
	return resp, true
}

// LookupSemantic takes the cosine argmax of queryEmbedding against every
// cached query's stored embedding — never re-embedding the cached
// queries themselves — and returns a hit when the best similarity is at
// least the cache's configured threshold.
func (c *Cache) LookupSemantic(queryEmbedding []float32) (Response, bool) {
	var best cacheEntry
	bestScore := -1.0
	found := false
	for _, key := range c.byQuery.Keys() {
		entry, ok := c.byQuery.Peek(key)
		if !ok {
			continue
		}
		score := cosine(queryEmbedding, entry.embedding)
		if score > bestScore {
			bestScore = score
			best = entry
			found = true
		}
	}

	if found && bestScore >= c.similarity {
		resp := best.response
		resp.FromCache = true
		return resp, true
	}
	return Response{}, false
}

// Store records response under the literal query string, alongside the
// embedding used to reach it. Stored responses always carry
// FromCache == false; Lookup sets it true only on return.
func (c *Cache) Store(query string, queryEmbedding []float32, response Response) {
	response.FromCache = false
	c.byQuery.Add(query, cacheEntry{embedding: queryEmbedding, response: response})
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
