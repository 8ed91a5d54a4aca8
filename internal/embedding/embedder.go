// Package embedding provides the embedding provider contract for the
// catalog: text in, fixed-dimension vector out. Inference itself is an
// external collaborator reached over an API.
package embedding

import (
	"context"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/types"
)

// Embedder generates embedding vectors from text content.
// Implementations must be thread-safe for concurrent access and must return
// vectors of a fixed dimension for the lifetime of the process; vector
// indices bake the dimension into their definition.
type Embedder interface {
	// Embed generates an embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float64, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)

	// Dimensions returns the dimensionality of embedding vectors.
	Dimensions() int

	// Model returns the name of the embedding model being used.
	Model() string

	// Health returns the health status of the embedder.
	Health(ctx context.Context) types.HealthStatus
}

// EmbedderConfig holds configuration for embedding providers.
type EmbedderConfig struct {
	// Provider specifies which embedder implementation to use.
	// Options: "openai", "ollama", "mock"
	Provider string `mapstructure:"provider" yaml:"provider"`

	// Model is the specific embedding model to use.
	// For OpenAI: "text-embedding-3-small" (1536 dims).
	// For Ollama: "all-minilm" (384 dims) or any local embedding model.
	Model string `mapstructure:"model" yaml:"model"`

	// APIKey is the API key for the embedding provider.
	// Can also be provided via environment variable (e.g., OPENAI_API_KEY).
	APIKey string `mapstructure:"api_key" yaml:"api_key"`

	// BaseURL overrides the provider endpoint, e.g. for OpenAI-compatible
	// servers. Empty uses the provider default.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Dimensions is the expected vector dimension. Responses with a
	// different dimension are rejected rather than silently indexed.
	Dimensions int `mapstructure:"dimensions" yaml:"dimensions"`
}

// Validate checks if the EmbedderConfig is valid.
func (c *EmbedderConfig) Validate() error {
	if c.Provider == "" {
		return types.NewError(types.EMBEDDER_INVALID_CONFIG, "embedder provider cannot be empty")
	}
	if c.Model == "" {
		return types.NewError(types.EMBEDDER_INVALID_CONFIG, "embedder model cannot be empty")
	}
	if c.Dimensions <= 0 {
		return types.NewError(types.EMBEDDER_INVALID_CONFIG, "embedder dimensions must be positive")
	}
	return nil
}

// DefaultEmbedderConfig returns a default configuration: a local Ollama
// all-minilm endpoint producing 384-dimensional vectors, matching the
// catalog's index definitions.
func DefaultEmbedderConfig() EmbedderConfig {
	return EmbedderConfig{
		Provider:   "ollama",
		Model:      "all-minilm",
		BaseURL:    "",
		Dimensions: 384,
	}
}
