package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Viniciuscarvalho/maestro/internal/config"
)

func newBootstrapConfig(t *testing.T) *config.Config {
	t.Helper()

	root := t.TempDir()
	skillDir := filepath.Join(root, "skills", "docker")
	require.NoError(t, os.MkdirAll(skillDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(skillDir, "SKILL.md"), []byte(dockerSkill), 0o644))

	cfg := config.Default()
	cfg.SkillPaths = []string{filepath.Join(root, "skills")}
	cfg.VectorDBPath = filepath.Join(root, "data")
	cfg.LogPath = filepath.Join(root, "maestro.log")
	return cfg
}

func TestBuild_WiresEmbedderStoreAndBM25(t *testing.T) {
	cfg := newBootstrapConfig(t)

	e, cleanup, err := Build(cfg)
	require.NoError(t, err)
	defer cleanup()

	assert.NotNil(t, e)
	assert.False(t, e.Status().Indexed)
}

func TestBuild_CleanupPersistsVectorStoreAndBM25(t *testing.T) {
	cfg := newBootstrapConfig(t)

	e, cleanup, err := Build(cfg)
	require.NoError(t, err)

	_, err = e.Index(context.Background(), nil, false)
	require.NoError(t, err)
	require.NoError(t, cleanup())

	assert.FileExists(t, filepath.Join(cfg.VectorDBPath, "vectors.hnsw"))
	assert.FileExists(t, filepath.Join(cfg.VectorDBPath, "bm25.gob"))
}

func TestBuild_ReopensPersistedIndex(t *testing.T) {
	cfg := newBootstrapConfig(t)

	e1, cleanup1, err := Build(cfg)
	require.NoError(t, err)
	_, err = e1.Index(context.Background(), nil, false)
	require.NoError(t, err)
	require.NoError(t, cleanup1())

	e2, cleanup2, err := Build(cfg)
	require.NoError(t, err)
	defer cleanup2()

	assert.True(t, e2.Status().Indexed)
	assert.Equal(t, 1, e2.Status().SkillCount)
}

func TestBuild_RemoteEmbeddingProviderWithUnreachableEndpointStillBuilds(t *testing.T) {
	cfg := newBootstrapConfig(t)
	cfg.EmbeddingProvider = "remote"
	cfg.RemoteEndpoint = "http://127.0.0.1:9/embed"

	e, cleanup, err := Build(cfg)
	require.NoError(t, err)
	defer cleanup()

	assert.NotNil(t, e)
}
