package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().TopK, cfg.TopK)
}

func TestLoad_MergesYAMLOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("top_k: 12\nreranker_enabled: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.TopK)
	assert.True(t, cfg.RerankerEnabled)
	assert.Equal(t, Default().ChunkMaxTokens, cfg.ChunkMaxTokens)
}

func TestValidate_RejectsUnknownProvider(t *testing.T) {
	cfg := Default()
	cfg.EmbeddingProvider = "bogus"
	assert.Error(t, cfg.Validate())
}

func TestValidate_RemoteRequiresEndpoint(t *testing.T) {
	cfg := Default()
	cfg.EmbeddingProvider = "remote"
	cfg.RemoteEndpoint = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_DefaultsPassValidation(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
