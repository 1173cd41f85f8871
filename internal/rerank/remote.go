package rerank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RemoteConfig configures a RemoteReranker.
type RemoteConfig struct {
	Endpoint string
	Timeout  time.Duration
}

// DefaultRemoteConfig returns a conservative timeout.
func DefaultRemoteConfig() RemoteConfig {
	return RemoteConfig{Timeout: 10 * time.Second}
}

// RemoteReranker calls an HTTP cross-encoder service's /rerank endpoint.
type RemoteReranker struct {
	client *http.Client
	cfg    RemoteConfig
}

var _ Reranker = (*RemoteReranker)(nil)

// NewRemoteReranker returns a RemoteReranker.
func NewRemoteReranker(cfg RemoteConfig) *RemoteReranker {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultRemoteConfig().Timeout
	}
	return &RemoteReranker{client: &http.Client{Timeout: cfg.Timeout}, cfg: cfg}
}

type rerankRequest struct {
	Query    string   `json:"query"`
	Passages []string `json:"passages"`
}

type rerankResponse struct {
	Scores []float64 `json:"scores"`
}

// Predict scores every (query, passage) pair via the remote service. Any
// failure is returned to the caller, which per the engine's error policy
// must fall back to the unreranked ordering rather than propagate it.
func (r *RemoteReranker) Predict(ctx context.Context, query string, passages []string) ([]float64, error) {
	if len(passages) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(rerankRequest{Query: query, Passages: passages})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.Endpoint+"/rerank", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("reranker returned %d: %s", resp.StatusCode, string(msg))
	}

	var decoded rerankResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	if len(decoded.Scores) != len(passages) {
		return nil, fmt.Errorf("reranker returned %d scores for %d passages", len(decoded.Scores), len(passages))
	}
	return decoded.Scores, nil
}

// Available performs a lightweight health check.
func (r *RemoteReranker) Available(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.cfg.Endpoint+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Close releases idle connections.
func (r *RemoteReranker) Close() error {
	r.client.CloseIdleConnections()
	return nil
}
