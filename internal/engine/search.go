package engine

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/Viniciuscarvalho/maestro/internal/concept"
	"github.com/Viniciuscarvalho/maestro/internal/maerr"
	"github.com/Viniciuscarvalho/maestro/internal/search"
	"github.com/Viniciuscarvalho/maestro/internal/store"
)

// Search runs the five-stage hybrid retrieval pipeline: cache lookup,
// query expansion, skill-fingerprint pruning, hybrid retrieval with RRF
// fusion, optional reranking, then truncation to topK.
func (e *Engine) Search(ctx context.Context, query string, topK int) (search.Response, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	if topK <= 0 {
		topK = e.cfg.TopK
	}

	// S0 — auto-index.
	if !e.indexed {
		if _, err := e.indexLocked(ctx, nil, false); err != nil {
			return search.Response{}, err
		}
	}

	// S1 — cache lookup. Cache failures are swallowed: a lookup error
	// simply falls through to the full pipeline.
	if e.cfg.CacheEnabled {
		if resp, hit := e.cache.LookupExact(query); hit {
			return resp, nil
		}
	}

	var cacheQueryVector []float32
	if e.cfg.CacheEnabled {
		if vec, err := e.embedder.EmbedQuery(ctx, query); err == nil {
			cacheQueryVector = vec
			if resp, hit := e.cache.LookupSemantic(vec); hit {
				return resp, nil
			}
		}
	}

	// S2 — query expansion.
	expanded := e.graph.Expand(query, concept.DefaultExpandOptions())
	searchQuery := query
	if len(expanded) > 0 {
		searchQuery = query + " " + strings.Join(expanded, " ")
	}

	// S3 — skill fingerprint pruning.
	queryVector, err := e.embedder.EmbedQuery(ctx, searchQuery)
	if err != nil {
		return search.Response{}, maerr.Wrap(maerr.ErrCodeEmbeddingFailed, err)
	}
	matchedSkills := e.fingerprints.Match(queryVector)

	// S4 — hybrid retrieval.
	candidateCount := 2 * topK
	if e.cfg.RerankerEnabled {
		candidateCount = e.cfg.RerankerCandidates
	}

	var filter store.Filter
	if len(matchedSkills) > 0 {
		filter = store.In("skill", matchedSkills)
	}

	vectorHits, err := e.vectorStore.Query(queryVector, candidateCount, filter)
	if err != nil {
		e.logger.Warn("vector store query failed; degrading to lexical-only", "error", err)
		vectorHits = nil
	}

	semanticRanks := make([]search.RankedID, len(vectorHits))
	for i, hit := range vectorHits {
		semanticRanks[i] = search.RankedID{ID: hit.ID, Rank: i}
	}

	bm25Results := e.bm25.Score(searchQuery, candidateCount)
	bm25Ranks := make([]search.RankedID, len(bm25Results))
	for i, r := range bm25Results {
		bm25Ranks[i] = search.RankedID{ID: r.ID, Rank: i}
	}

	// S5 — Reciprocal Rank Fusion.
	fused := search.Fuse(semanticRanks, bm25Ranks)

	ids := make([]string, len(fused))
	for i, f := range fused {
		ids[i] = f.ChunkID
	}
	records, err := e.vectorStore.Get(ids)
	if err != nil {
		return search.Response{}, maerr.Wrap(maerr.ErrCodeVectorStoreUnavail, err)
	}
	byID := make(map[string]store.VectorResult, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	results := make([]search.Result, 0, len(fused))
	for _, f := range fused {
		rec, ok := byID[f.ChunkID]
		if !ok {
			continue // chunk missing from the store: a race with re-indexing
		}
		results = append(results, toResult(f, rec))
	}

	// S6 — reranking.
	if e.cfg.RerankerEnabled && e.reranker.Available(ctx) && len(results) > 0 {
		if reranked, ok := e.rerankResults(ctx, query, results); ok {
			results = reranked
		}
	}

	// S7 — truncate.
	if len(results) > topK {
		results = results[:topK]
	}

	resp := search.Response{
		Query:         query,
		Results:       results,
		SkillsUsed:    distinctSkills(results),
		TimeMS:        time.Since(start).Milliseconds(),
		FromCache:     false,
		ExpandedTerms: expanded,
	}

	if e.cfg.CacheEnabled {
		e.cache.Store(query, cacheQueryVector, resp)
	}
	return resp, nil
}

func (e *Engine) rerankResults(ctx context.Context, query string, results []search.Result) ([]search.Result, bool) {
	passages := make([]string, len(results))
	for i, r := range results {
		passages[i] = r.Text
	}
	scores, err := e.reranker.Predict(ctx, query, passages)
	if err != nil {
		e.logger.Warn("reranking failed; keeping RRF ordering", "error", err)
		return nil, false
	}

	for i := range results {
		score := scores[i]
		results[i].RerankScore = &score
		results[i].FinalScore = score
	}
	sort.SliceStable(results, func(i, j int) bool {
		return *results[i].RerankScore > *results[j].RerankScore
	})
	return results, true
}

func toResult(f search.Fused, rec store.VectorResult) search.Result {
	var domains []string
	_ = json.Unmarshal([]byte(rec.Metadata["domains"]), &domains)

	return search.Result{
		ChunkID:      f.ChunkID,
		Skill:        rec.Metadata["skill"],
		File:         rec.Metadata["file"],
		FilePath:     rec.Metadata["file_path"],
		Section:      rec.Metadata["section"],
		Text:         rec.Document,
		Domains:      domains,
		FinalScore:   f.RRFScore,
		SemanticRank: f.SemanticRank,
		BM25Rank:     f.BM25Rank,
	}
}

func distinctSkills(results []search.Result) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range results {
		if !seen[r.Skill] {
			seen[r.Skill] = true
			out = append(out, r.Skill)
		}
	}
	return out
}
