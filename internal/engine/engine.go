package engine

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync"

	"github.com/Viniciuscarvalho/maestro/internal/concept"
	"github.com/Viniciuscarvalho/maestro/internal/config"
	"github.com/Viniciuscarvalho/maestro/internal/embed"
	"github.com/Viniciuscarvalho/maestro/internal/fingerprint"
	"github.com/Viniciuscarvalho/maestro/internal/rerank"
	"github.com/Viniciuscarvalho/maestro/internal/search"
	"github.com/Viniciuscarvalho/maestro/internal/store"
)

// Engine orchestrates indexing and search. It runs in a single logical
// thread per process: indexing and search are mutually exclusive from
// the caller's point of view, serialised behind mu so a read never
// observes a partial index swap between the BM25 index and the vector
// store.
type Engine struct {
	mu sync.Mutex

	cfg          *config.Config
	embedder     embed.Embedder
	vectorStore  store.VectorStore
	bm25         store.BM25Index
	graph        *concept.Graph
	fingerprints *fingerprint.Registry
	cache        *search.Cache
	reranker     rerank.Reranker
	logger       *slog.Logger

	indexed bool
}

// New wires an Engine from its collaborators. graph defaults to
// concept.DefaultGraph() if nil; reranker defaults to a no-op if nil.
func New(cfg *config.Config, embedder embed.Embedder, vectorStore store.VectorStore, bm25 store.BM25Index, graph *concept.Graph, reranker rerank.Reranker, logger *slog.Logger) *Engine {
	if graph == nil {
		graph = concept.DefaultGraph()
	}
	if reranker == nil {
		reranker = rerank.NoOpReranker{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		cfg:          cfg,
		embedder:     embedder,
		vectorStore:  vectorStore,
		bm25:         bm25,
		graph:        graph,
		fingerprints: fingerprint.NewRegistry(),
		cache:        search.NewCache(cfg.CacheSimilarity),
		reranker:     reranker,
		logger:       logger,
		indexed:      indexMetaExists(cfg),
	}
}

func indexMetaExists(cfg *config.Config) bool {
	_, err := os.Stat(cfg.IndexMetaPath())
	return err == nil
}

// Status reports whether the engine has been indexed and current counts.
// When the fingerprint registry is empty but a persisted index exists
// (an engine reopened over an earlier index), SkillCount is read from the
// index-meta document.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()

	skillCount := e.fingerprints.Count()
	if skillCount == 0 && e.indexed {
		if data, err := os.ReadFile(e.cfg.IndexMetaPath()); err == nil {
			var meta IndexMeta
			if json.Unmarshal(data, &meta) == nil {
				skillCount = len(meta.Skills)
			}
		}
	}

	return Status{
		Indexed:          e.indexed,
		SkillCount:       skillCount,
		ChunkCount:       e.vectorStore.Count(),
		FingerprintCount: e.fingerprints.Count(),
	}
}

// Clear removes all indexed chunks, fingerprints, and the BM25 corpus.
func (e *Engine) Clear() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.vectorStore.Delete(nil); err != nil {
		return err
	}
	if err := e.bm25.Fit(nil); err != nil {
		return err
	}
	e.fingerprints.Clear()
	e.cache = search.NewCache(e.cfg.CacheSimilarity)
	e.indexed = false
	_ = os.Remove(e.cfg.IndexMetaPath())
	return nil
}

func (e *Engine) saveIndexMeta() error {
	skills := make([]string, 0, e.fingerprints.Count())
	chunkCount := 0
	for _, f := range e.fingerprints.All() {
		skills = append(skills, f.Name)
		chunkCount += f.ChunkCount
	}
	meta := IndexMeta{Skills: skills, ChunkCount: chunkCount}

	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(e.cfg.VectorDBPath, 0o755); err != nil {
		return err
	}
	return os.WriteFile(e.cfg.IndexMetaPath(), data, 0o644)
}
