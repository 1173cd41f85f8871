package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Viniciuscarvalho/maestro/internal/chunk"
	"github.com/Viniciuscarvalho/maestro/internal/concept"
	"github.com/Viniciuscarvalho/maestro/internal/fingerprint"
	"github.com/Viniciuscarvalho/maestro/internal/maerr"
	"github.com/Viniciuscarvalho/maestro/internal/store"
)

// Index (re)builds the BM25 index, vector store, and fingerprint
// registry from the configured (or explicit) skill directories. A
// failing file's read/decode error is collected into Errors rather than
// aborting the run.
func (e *Engine) Index(ctx context.Context, paths []string, force bool) (IndexStats, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.indexLocked(ctx, paths, force)
}

// indexLocked is Index's body, callable while e.mu is already held (used by
// Search's auto-index step).
func (e *Engine) indexLocked(ctx context.Context, paths []string, force bool) (IndexStats, error) {
	start := time.Now()
	stats := IndexStats{}

	skills, err := discoverSkills(e.cfg.SkillPaths, paths)
	if err != nil {
		return stats, maerr.Wrap(maerr.ErrCodeCorpusIO, fmt.Errorf("discover skills: %w", err))
	}

	if force {
		if err := e.vectorStore.Delete(nil); err != nil {
			return stats, maerr.Wrap(maerr.ErrCodeVectorStoreUnavail, fmt.Errorf("clear vector store: %w", err))
		}
		e.fingerprints.Clear()
	}

	chunker := chunk.New(chunk.Options{MaxTokens: e.cfg.ChunkMaxTokens, OverlapTokens: e.cfg.ChunkOverlap})

	var allChunks []chunk.Chunk
	seenFiles := make(map[string]bool)

	for _, skill := range skills {
		files, err := discoverMarkdownFiles(skill.path)
		if err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("%s: %v", skill.path, err))
			continue
		}

		var skillChunks []chunk.Chunk
		for _, file := range files {
			raw, err := readFile(file)
			if err != nil {
				stats.Errors = append(stats.Errors, fmt.Sprintf("%s: %v", file, err))
				continue
			}
			seenFiles[file] = true
			skillChunks = append(skillChunks, chunker.Chunk(raw, skill.name, relName(skill.path, file), file, skill.domains)...)
		}

		if len(skillChunks) == 0 {
			continue
		}
		allChunks = append(allChunks, skillChunks...)

		var skillText strings.Builder
		for _, c := range skillChunks {
			skillText.WriteString(c.Text)
			skillText.WriteByte('\n')
		}
		e.logger.Debug("concepts extracted", "skill", skill.name, "concepts", concept.ExtractConcepts(skillText.String()))

		fp := &fingerprint.Fingerprint{
			Name:        skill.name,
			Description: skill.description,
			Domains:     skill.domains,
			ChunkCount:  len(skillChunks),
		}
		e.fingerprints.Put(fp)
	}

	stats.SkillCount = e.fingerprints.Count()
	stats.FileCount = len(seenFiles)
	stats.ChunkCount = len(allChunks)

	if err := e.embedAndStoreChunks(ctx, allChunks); err != nil {
		return stats, maerr.Wrap(maerr.ErrCodeEmbeddingFailed, fmt.Errorf("embed chunks: %w", err))
	}
	if err := e.embedFingerprints(ctx); err != nil {
		return stats, maerr.Wrap(maerr.ErrCodeEmbeddingFailed, fmt.Errorf("embed fingerprints: %w", err))
	}

	docs := make([]store.Document, len(allChunks))
	for i, c := range allChunks {
		docs[i] = store.Document{ID: c.ID, Text: c.Text}
	}
	if err := e.bm25.Fit(docs); err != nil {
		return stats, maerr.Wrap(maerr.ErrCodeInternal, fmt.Errorf("fit bm25: %w", err))
	}

	stats.FingerprintCount = e.fingerprints.Count()
	if err := e.saveIndexMeta(); err != nil {
		return stats, fmt.Errorf("save index meta: %w", err)
	}

	e.indexed = true
	stats.Duration = time.Since(start)
	return stats, nil
}

// embedAndStoreChunks embeds chunks in document mode in batches of 64,
// whatever the embedder in use, and upserts each batch into the vector
// store. Cancellation of ctx is checked before each batch.
func (e *Engine) embedAndStoreChunks(ctx context.Context, chunks []chunk.Chunk) error {
	const batchSize = 64
	for start := 0; start < len(chunks); start += batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := start + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.ContextualText
		}
		vectors, err := e.embedder.EmbedDocuments(ctx, texts)
		if err != nil {
			return err
		}

		ids := make([]string, len(batch))
		documents := make([]string, len(batch))
		metadatas := make([]map[string]string, len(batch))
		for i, c := range batch {
			ids[i] = c.ID
			documents[i] = c.Text
			metadatas[i] = chunkMetadata(c)
		}
		if err := e.vectorStore.Upsert(ids, vectors, documents, metadatas); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) embedFingerprints(ctx context.Context) error {
	for _, fp := range e.fingerprints.All() {
		vec, err := e.embedder.EmbedDocuments(ctx, []string{fp.Text()})
		if err != nil {
			return err
		}
		fp.Embedding = vec[0]
	}
	return nil
}

func chunkMetadata(c chunk.Chunk) map[string]string {
	domainsJSON, _ := json.Marshal(c.Domains)
	return map[string]string{
		"skill":     c.Skill,
		"file":      c.File,
		"file_path": c.FilePath,
		"section":   c.Section,
		"domains":   string(domainsJSON),
	}
}
