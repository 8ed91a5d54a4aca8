package llm

import (
	"fmt"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/types"
)

// NewChatModel creates a chat model based on the provided configuration.
//
// Supported provider types:
//   - "groq":   Groq's OpenAI-compatible API (GROQ_API_KEY) - DEFAULT
//   - "openai": OpenAI chat API or compatible endpoint (OPENAI_API_KEY)
//   - "ollama": local Ollama server, no key required
//   - "mock":   scripted model for tests
func NewChatModel(cfg ProviderConfig) (ChatModel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case "groq":
		return NewGroqChatModel(cfg)
	case "openai":
		return NewOpenAIChatModel(cfg)
	case "ollama":
		return NewOllamaChatModel(cfg)
	case "mock":
		return NewMockChatModel(), nil
	default:
		return nil, types.NewError(types.LLM_INVALID_CONFIG,
			fmt.Sprintf("unknown llm provider %q - must be 'groq', 'openai', 'ollama' or 'mock'",
				cfg.Provider))
	}
}
