package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/types"
)

// OllamaChatModel implements ChatModel against a local Ollama server.
// No API key required.
type OllamaChatModel struct {
	client *ollama.LLM
	config ProviderConfig
}

// NewOllamaChatModel creates an Ollama-backed chat model.
func NewOllamaChatModel(cfg ProviderConfig) (*OllamaChatModel, error) {
	opts := []ollama.Option{
		ollama.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
	}

	client, err := ollama.New(opts...)
	if err != nil {
		return nil, types.WrapError(types.LLM_INVALID_CONFIG,
			"failed to create ollama client", err)
	}

	return &OllamaChatModel{
		client: client,
		config: cfg,
	}, nil
}

// Name returns the provider name.
func (p *OllamaChatModel) Name() string {
	return "ollama"
}

// Complete sends a completion request and returns the full response.
func (p *OllamaChatModel) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, types.WrapError(types.LLM_COMPLETION_FAILED, "invalid request", err)
	}

	content, err := generateContent(ctx, p.client, req, p.config)
	if err != nil {
		return nil, types.WrapRetryableError(types.LLM_COMPLETION_FAILED,
			"ollama completion failed", err)
	}

	return &CompletionResponse{Content: content, Model: p.config.Model}, nil
}

// Health probes the provider with a one-token completion.
func (p *OllamaChatModel) Health(ctx context.Context) types.HealthStatus {
	probe := CompletionRequest{
		Messages:  []Message{NewUserMessage("ping")},
		MaxTokens: 1,
	}
	if _, err := generateContent(ctx, p.client, probe, p.config); err != nil {
		return types.Unhealthy(fmt.Sprintf("completion probe failed: %v", err))
	}
	return types.Healthy("ollama reachable")
}
