package embedding

import (
	"fmt"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/types"
)

// CreateEmbedder creates an embedder based on the provided configuration.
//
// Supported provider types:
//   - "ollama": local Ollama server (no API key, all-minilm = 384 dims) - DEFAULT
//   - "openai": OpenAI Embeddings API or compatible endpoint (requires API key)
//   - "mock":   deterministic hash-based embedder for tests
//
// Callers should fail fast if the embedder cannot be created - vector
// search is not available without one.
func CreateEmbedder(config EmbedderConfig) (Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Provider {
	case "ollama":
		return NewOllamaEmbedder(config)
	case "openai":
		return NewOpenAIEmbedder(config)
	case "mock":
		return NewMockEmbedder().WithDimensions(config.Dimensions), nil
	default:
		return nil, types.NewError(types.EMBEDDER_INVALID_CONFIG,
			fmt.Sprintf("unknown embedder provider %q - must be 'ollama', 'openai' or 'mock'",
				config.Provider))
	}
}
