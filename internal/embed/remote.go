package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RemoteConfig configures a RemoteEmbedder.
type RemoteConfig struct {
	Endpoint   string // base URL of the embedding provider
	Model      string
	Dimensions int
	Timeout    time.Duration
	MaxRetries int
}

// DefaultRemoteConfig fills in conservative defaults.
func DefaultRemoteConfig() RemoteConfig {
	return RemoteConfig{Timeout: 30 * time.Second, MaxRetries: 3}
}

// RemoteEmbedder calls an HTTP embedding provider's /embed endpoint,
// batching document requests at RemoteBatchSize per call.
type RemoteEmbedder struct {
	client *http.Client
	cfg    RemoteConfig
}

var _ Embedder = (*RemoteEmbedder)(nil)

// NewRemoteEmbedder returns a RemoteEmbedder. It performs no network call
// until Embed* is invoked.
func NewRemoteEmbedder(cfg RemoteConfig) *RemoteEmbedder {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultRemoteConfig().Timeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultRemoteConfig().MaxRetries
	}
	return &RemoteEmbedder{
		client: &http.Client{Timeout: cfg.Timeout},
		cfg:    cfg,
	}
}

type embedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// EmbedDocuments embeds texts in document mode, batching at RemoteBatchSize.
func (e *RemoteEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += RemoteBatchSize {
		end := start + RemoteBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := e.callWithRetry(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("remote embed batch [%d:%d]: %w", start, end, err)
		}
		out = append(out, batch...)
	}
	return out, nil
}

// EmbedQuery embeds a single query string.
func (e *RemoteEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	batch, err := e.callWithRetry(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(batch) == 0 {
		return nil, fmt.Errorf("remote embed: empty response")
	}
	return batch[0], nil
}

func (e *RemoteEmbedder) callWithRetry(ctx context.Context, texts []string) ([][]float32, error) {
	var lastErr error
	delay := time.Second
	for attempt := 0; attempt <= e.cfg.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		vectors, err := e.call(ctx, texts)
		if err == nil {
			return vectors, nil
		}
		lastErr = err
		if attempt >= e.cfg.MaxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return nil, lastErr
}

func (e *RemoteEmbedder) call(ctx context.Context, texts []string) ([][]float32, error) {
	body, err := json.Marshal(embedRequest{Model: e.cfg.Model, Input: texts})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.Endpoint+"/embed", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("remote embedder returned %d: %s", resp.StatusCode, string(msg))
	}

	var decoded embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	return decoded.Embeddings, nil
}

// Dimensions returns the configured vector width.
func (e *RemoteEmbedder) Dimensions() int { return e.cfg.Dimensions }

// ModelName returns the configured remote model identifier.
func (e *RemoteEmbedder) ModelName() string { return e.cfg.Model }

// Close releases idle connections.
func (e *RemoteEmbedder) Close() error {
	e.client.CloseIdleConnections()
	return nil
}
