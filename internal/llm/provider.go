package llm

import (
	"context"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/types"
)

// ChatModel is the text-completion collaborator. Implementations must be
// safe for concurrent use; each call is stateless.
type ChatModel interface {
	// Name returns the provider name (e.g., "groq", "openai", "ollama")
	Name() string

	// Complete sends a completion request and returns the full response.
	// This is a blocking call that waits for the entire response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// Health checks the health status of the provider and its connectivity
	Health(ctx context.Context) types.HealthStatus
}

// ProviderConfig holds configuration for a chat model provider.
type ProviderConfig struct {
	// Provider selects the implementation: "groq", "openai", "ollama", "mock".
	Provider string `mapstructure:"provider" yaml:"provider"`

	// Model is the model identifier, e.g. "llama-3.3-70b-versatile".
	Model string `mapstructure:"model" yaml:"model"`

	// APIKey authenticates against the provider. Falls back to the
	// provider's conventional environment variable when empty.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`

	// BaseURL overrides the endpoint for OpenAI-compatible servers.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Temperature controls sampling randomness.
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`

	// MaxTokens caps the response length. Zero uses the provider default.
	MaxTokens int `mapstructure:"max_tokens" yaml:"max_tokens"`
}

// Validate checks if the ProviderConfig is valid.
func (c *ProviderConfig) Validate() error {
	if c.Provider == "" {
		return types.NewError(types.LLM_INVALID_CONFIG, "llm provider cannot be empty")
	}
	if c.Model == "" {
		return types.NewError(types.LLM_INVALID_CONFIG, "llm model cannot be empty")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return types.NewError(types.LLM_INVALID_CONFIG, "temperature must be in [0,2]")
	}
	return nil
}

// DefaultProviderConfig returns the default chat model configuration:
// Groq's llama-3.3-70b-versatile with low temperature, suited to factual
// librarian answers.
func DefaultProviderConfig() ProviderConfig {
	return ProviderConfig{
		Provider:    "groq",
		Model:       "llama-3.3-70b-versatile",
		Temperature: 0.2,
	}
}
