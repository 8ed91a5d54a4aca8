package embedding

import (
	"context"
	"fmt"
	"os"

	"github.com/tmc/langchaingo/llms/openai"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/types"
)

// OpenAIEmbedder implements Embedder using the OpenAI embeddings API, or any
// OpenAI-compatible endpoint via BaseURL.
type OpenAIEmbedder struct {
	client *openai.LLM
	config EmbedderConfig
}

// NewOpenAIEmbedder creates a new OpenAI-backed embedder.
func NewOpenAIEmbedder(cfg EmbedderConfig) (*OpenAIEmbedder, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, types.NewError(types.EMBEDDER_INVALID_CONFIG,
			"OpenAI embedder requires api_key (or OPENAI_API_KEY environment variable)")
	}

	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithEmbeddingModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, types.WrapError(types.EMBEDDER_UNAVAILABLE,
			"failed to create OpenAI embedding client", err)
	}

	return &OpenAIEmbedder{
		client: client,
		config: cfg,
	}, nil
}

// Embed generates an embedding vector for a single text.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates embeddings for multiple texts in one request.
func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
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
func (e *OpenAIEmbedder) Dimensions() int {
	return e.config.Dimensions
}

// Model returns the embedding model name.
func (e *OpenAIEmbedder) Model() string {
	return e.config.Model
}

// Health probes the embedding endpoint with a short input.
func (e *OpenAIEmbedder) Health(ctx context.Context) types.HealthStatus {
	if _, err := e.client.CreateEmbedding(ctx, []string{"ping"}); err != nil {
		return types.Unhealthy(fmt.Sprintf("embedding probe failed: %v", err))
	}
	return types.Healthy("embedding endpoint reachable")
}

// toFloat64 widens a float32 vector to the float64 representation stored
// in the graph.
func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}
