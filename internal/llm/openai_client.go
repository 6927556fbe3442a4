// ABOUTME: OpenAI embedding client with batching, retry, and order reassembly
// ABOUTME: Uses text-embedding-3-small by default (configurable)
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/fikalabs/pantry/internal/core"
	"github.com/fikalabs/pantry/internal/util"
)

const (
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = string(openai.SmallEmbedding3)
	// DefaultBatchSize bounds how many inputs go into one provider call
	DefaultBatchSize = 64
	// DefaultBatchDelay paces successive provider calls within one Embed
	DefaultBatchDelay = 200 * time.Millisecond
)

// ClientConfig holds configuration for the OpenAI embedding client
type ClientConfig struct {
	APIKey         string
	BaseURL        string // override for Azure/compatible endpoints and tests
	EmbeddingModel string
	BatchSize      int
	BatchDelay     time.Duration
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// Client wraps the OpenAI API client with batching and retry logic
type Client struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	batchSize  int
	batchDelay time.Duration
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates an embedding client. A missing API key is a
// configuration error: the operation cannot start without it.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, &core.ConfigError{Field: "OPENAI_API_KEY", Reason: "embedding provider API key is required"}
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = DefaultEmbeddingModel
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.BatchDelay < 0 {
		cfg.BatchDelay = DefaultBatchDelay
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 2 * time.Second
	}

	apiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		client:     openai.NewClientWithConfig(apiConfig),
		model:      openai.EmbeddingModel(cfg.EmbeddingModel),
		batchSize:  cfg.BatchSize,
		batchDelay: cfg.BatchDelay,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}, nil
}

// Embed converts texts into vectors, one per input, in input order.
// Inputs are split into provider-sized batches; a failure in any batch fails
// the whole call with no partial results.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	vectors := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += c.batchSize {
		end := start + c.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		if start > 0 && c.batchDelay > 0 {
			select {
			case <-time.After(c.batchDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		batch, err := c.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, batch...)
	}

	return vectors, nil
}

// EmbedQuery embeds a single query string
func (c *Client) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// embedBatch issues one provider call with retry and reassembles the response
// in request order using the per-item index: the provider only guarantees
// order via that index, not by array position.
func (c *Client) embedBatch(ctx context.Context, batch []string) ([][]float32, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(util.CalculateBackoff(c.retryDelay, attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.client.CreateEmbeddings(callCtx, openai.EmbeddingRequestStrings{
			Input: batch,
			Model: c.model,
		})
		cancel()

		if err != nil {
			lastErr = err
			continue
		}

		vectors, err := reorderByIndex(resp.Data, len(batch))
		if err != nil {
			lastErr = err
			continue
		}
		return vectors, nil
	}

	return nil, providerError(c.maxRetries+1, lastErr)
}

// reorderByIndex places each returned embedding at its request index
func reorderByIndex(data []openai.Embedding, want int) ([][]float32, error) {
	if len(data) != want {
		return nil, fmt.Errorf("expected %d embeddings, got %d", want, len(data))
	}

	vectors := make([][]float32, want)
	for _, d := range data {
		if d.Index < 0 || d.Index >= want {
			return nil, fmt.Errorf("embedding index %d out of range [0,%d)", d.Index, want)
		}
		if vectors[d.Index] != nil {
			return nil, fmt.Errorf("duplicate embedding index %d", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	for i, v := range vectors {
		if v == nil {
			return nil, fmt.Errorf("missing embedding for index %d", i)
		}
	}
	return vectors, nil
}

// providerError wraps the final failure as a typed EmbeddingProviderError,
// carrying the HTTP status when the provider returned one
func providerError(attempts int, err error) error {
	status := 0
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatusCode
	}
	return &core.EmbeddingProviderError{
		StatusCode: status,
		Detail:     fmt.Sprintf("embedding call failed after %d attempts: %v", attempts, err),
		Err:        err,
	}
}
