// Package config loads and validates Maestro's YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Viniciuscarvalho/maestro/internal/maerr"
)

// Config is Maestro's complete configuration, mirroring spec.md §6's
// recognised keys.
type Config struct {
	SkillPaths        []string `yaml:"skill_paths"`
	VectorDBPath      string   `yaml:"vectordb_path"`
	EmbeddingProvider string   `yaml:"embedding_provider"` // "local" | "remote"
	LocalModel        string   `yaml:"local_model"`
	RemoteModel       string   `yaml:"remote_model"`
	RemoteEndpoint    string   `yaml:"remote_endpoint"`
	RerankerEnabled   bool     `yaml:"reranker_enabled"`
	RerankerEndpoint  string   `yaml:"reranker_endpoint"`
	RerankerCandidates int     `yaml:"reranker_candidates"`
	TopK              int      `yaml:"top_k"`
	MinRelevance      float64  `yaml:"min_relevance"`
	ChunkMaxTokens    int      `yaml:"chunk_max_tokens"`
	ChunkOverlap      int      `yaml:"chunk_overlap"`
	CacheEnabled      bool     `yaml:"cache_enabled"`
	CacheSimilarity   float64  `yaml:"cache_similarity"`
	LogLevel          string   `yaml:"log_level"`
	LogPath           string   `yaml:"log_path"`
}

// Default returns Maestro's zero-config defaults.
func Default() *Config {
	return &Config{
		SkillPaths:         []string{"skills"},
		VectorDBPath:       DefaultDataDir(),
		EmbeddingProvider:  "local",
		LocalModel:         "static",
		RemoteModel:        "",
		RemoteEndpoint:     "",
		RerankerEnabled:    false,
		RerankerCandidates: 20,
		TopK:               7,
		MinRelevance:       0.0,
		ChunkMaxTokens:     400,
		ChunkOverlap:       50,
		CacheEnabled:       true,
		CacheSimilarity:    0.92,
		LogLevel:           "info",
	}
}

// DefaultDataDir returns ~/.maestro, falling back to the temp directory if
// the home directory is unavailable.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".maestro")
	}
	return filepath.Join(home, ".maestro")
}

// Load reads and merges a YAML config file over Default(). A missing file
// is not an error; Default() is returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, maerr.Wrap(maerr.ErrCodeConfigNotFound, fmt.Errorf("read config %s: %w", path, err))
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, maerr.Wrap(maerr.ErrCodeConfigInvalid, fmt.Errorf("parse config %s: %w", path, err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, maerr.Wrap(maerr.ErrCodeConfigInvalid, err)
	}
	return cfg, nil
}

// Validate reports invalid configuration values.
func (c *Config) Validate() error {
	if c.EmbeddingProvider != "local" && c.EmbeddingProvider != "remote" {
		return fmt.Errorf("embedding_provider must be \"local\" or \"remote\", got %q", c.EmbeddingProvider)
	}
	if c.EmbeddingProvider == "remote" && c.RemoteEndpoint == "" {
		return fmt.Errorf("remote_endpoint is required when embedding_provider is \"remote\"")
	}
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.TopK)
	}
	if c.ChunkMaxTokens <= 0 {
		return fmt.Errorf("chunk_max_tokens must be positive, got %d", c.ChunkMaxTokens)
	}
	if c.CacheSimilarity < 0 || c.CacheSimilarity > 1 {
		return fmt.Errorf("cache_similarity must be in [0,1], got %f", c.CacheSimilarity)
	}
	return nil
}

// IndexMetaPath is the index-meta JSON document's path under VectorDBPath.
func (c *Config) IndexMetaPath() string {
	return filepath.Join(c.VectorDBPath, "index_meta.json")
}
