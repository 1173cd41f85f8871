package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Viniciuscarvalho/maestro/internal/concept"
	"github.com/Viniciuscarvalho/maestro/internal/config"
	"github.com/Viniciuscarvalho/maestro/internal/embed"
	"github.com/Viniciuscarvalho/maestro/internal/logging"
	"github.com/Viniciuscarvalho/maestro/internal/rerank"
	"github.com/Viniciuscarvalho/maestro/internal/store"
)

// Build wires an Engine from a loaded Config: the embedder (local static,
// optionally LRU-cached, or remote), the HNSW vector store and BM25
// index (loaded from VectorDBPath if present), the concept graph, the
// optional reranker, and file-backed structured logging. The returned
// cleanup function flushes logs and persists the vector store; callers
// should defer it.
func Build(cfg *config.Config) (*Engine, func() error, error) {
	logCfg := logging.DefaultConfig()
	if cfg.LogPath != "" {
		logCfg.FilePath = cfg.LogPath
	}
	logCfg.Level = cfg.LogLevel
	logCfg.WriteToStderr = false
	logger, stopLogging, err := logging.Setup(logCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logging: %w", err)
	}

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		stopLogging()
		return nil, nil, fmt.Errorf("build embedder: %w", err)
	}

	if err := os.MkdirAll(cfg.VectorDBPath, 0o755); err != nil {
		stopLogging()
		return nil, nil, fmt.Errorf("create vectordb dir: %w", err)
	}

	vectorStore := store.NewHNSWStore(store.DefaultVectorStoreConfig(embedder.Dimensions()))
	vectorPath := filepath.Join(cfg.VectorDBPath, "vectors.hnsw")
	if _, err := os.Stat(vectorPath); err == nil {
		if err := vectorStore.Load(vectorPath); err != nil {
			logger.Warn("failed to load existing vector store; starting empty", "error", err)
		}
	}

	bm25 := store.NewBM25Index()
	bm25Path := filepath.Join(cfg.VectorDBPath, "bm25.gob")
	if _, err := os.Stat(bm25Path); err == nil {
		if err := bm25.Load(bm25Path); err != nil {
			logger.Warn("failed to load existing bm25 index; starting empty", "error", err)
		}
	}

	var reranker rerank.Reranker
	if cfg.RerankerEnabled && cfg.RerankerEndpoint != "" {
		reranker = rerank.NewRemoteReranker(rerank.RemoteConfig{Endpoint: cfg.RerankerEndpoint})
	}

	e := New(cfg, embedder, vectorStore, bm25, concept.DefaultGraph(), reranker, logger)

	cleanup := func() error {
		var errs []error
		if err := vectorStore.Save(vectorPath); err != nil {
			errs = append(errs, err)
		}
		if err := bm25.Save(bm25Path); err != nil {
			errs = append(errs, err)
		}
		if err := vectorStore.Close(); err != nil {
			errs = append(errs, err)
		}
		stopLogging()
		if len(errs) > 0 {
			return fmt.Errorf("engine cleanup: %v", errs)
		}
		return nil
	}
	return e, cleanup, nil
}

func buildEmbedder(cfg *config.Config) (embed.Embedder, error) {
	var base embed.Embedder
	switch cfg.EmbeddingProvider {
	case "remote":
		base = embed.NewRemoteEmbedder(embed.RemoteConfig{
			Endpoint:   cfg.RemoteEndpoint,
			Model:      cfg.RemoteModel,
			Dimensions: embed.StaticDimensions,
		})
	default:
		base = embed.NewStaticEmbedder()
	}
	return embed.NewCachedEmbedder(base, 4096), nil
}
