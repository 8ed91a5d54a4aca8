package embedding

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/types"
)

// OllamaEmbedder implements Embedder against a local Ollama server. With an
// all-minilm model it produces the 384-dimensional vectors the catalog's
// default index definitions expect, with no API key required.
type OllamaEmbedder struct {
	client *ollama.LLM
	config EmbedderConfig
}

// NewOllamaEmbedder creates a new Ollama-backed embedder.
func NewOllamaEmbedder(cfg EmbedderConfig) (*OllamaEmbedder, error) {
	opts := []ollama.Option{
		ollama.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
	}

	client, err := ollama.New(opts...)
	if err != nil {
		return nil, types.WrapError(types.EMBEDDER_UNAVAILABLE,
			"failed to create Ollama embedding client", err)
	}

	return &OllamaEmbedder{
		client: client,
		config: cfg,
	}, nil
}

// Embed generates an embedding vector for a single text.
func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates embeddings for multiple texts.
func (e *OllamaEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	raw, err := e.client.CreateEmbedding(ctx, texts)
	if err != nil {
		return nil, types.WrapRetryableError(types.EMBEDDING_FAILED,
			"embedding request failed", err)
	}
	if len(raw) != len(texts) {
		return nil, types.NewError(types.EMBEDDING_EMPTY_RESPONSE,
			fmt.Sprintf("expected %d embeddings, got %d", len(texts), len(raw)))
	}

	vectors := make([][]float64, len(raw))
	for i, v := range raw {
		if len(v) != e.config.Dimensions {
			return nil, types.NewError(types.EMBEDDING_DIM_MISMATCH,
				fmt.Sprintf("model returned %d dimensions, index expects %d",
					len(v), e.config.Dimensions))
		}
		vectors[i] = toFloat64(v)
	}
	return vectors, nil
}

// Dimensions returns the configured vector dimension.
func (e *OllamaEmbedder) Dimensions() int {
	return e.config.Dimensions
}

// Model returns the embedding model name.
func (e *OllamaEmbedder) Model() string {
	return e.config.Model
}

// Health probes the Ollama endpoint with a short input.
func (e *OllamaEmbedder) Health(ctx context.Context) types.HealthStatus {
	if _, err := e.client.CreateEmbedding(ctx, []string{"ping"}); err != nil {
		return types.Unhealthy(fmt.Sprintf("embedding probe failed: %v", err))
	}
	return types.Healthy("embedding endpoint reachable")
}
