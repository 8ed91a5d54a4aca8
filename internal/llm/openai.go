package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/types"
)

// groqBaseURL is Groq's OpenAI-compatible endpoint.
const groqBaseURL = "https://api.groq.com/openai/v1"

// OpenAIChatModel implements ChatModel against the OpenAI chat API or any
// OpenAI-compatible endpoint. The "groq" provider is this client pointed at
// Groq's endpoint with GROQ_API_KEY as the key fallback.
type OpenAIChatModel struct {
	client *openai.LLM
	name   string
	config ProviderConfig
}

// NewOpenAIChatModel creates an OpenAI-backed chat model.
func NewOpenAIChatModel(cfg ProviderConfig) (*OpenAIChatModel, error) {
	return newOpenAICompatible(cfg, "openai", cfg.BaseURL, "OPENAI_API_KEY")
}

// NewGroqChatModel creates a chat model against Groq's OpenAI-compatible API.
func NewGroqChatModel(cfg ProviderConfig) (*OpenAIChatModel, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = groqBaseURL
	}
	return newOpenAICompatible(cfg, "groq", baseURL, "GROQ_API_KEY")
}

func newOpenAICompatible(cfg ProviderConfig, name, baseURL, keyEnv string) (*OpenAIChatModel, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(keyEnv)
	}
	if apiKey == "" {
		return nil, types.NewError(types.LLM_AUTH_FAILED,
			fmt.Sprintf("%s provider requires api_key (or %s environment variable)", name, keyEnv))
	}

	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(cfg.Model),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, types.WrapError(types.LLM_INVALID_CONFIG,
			fmt.Sprintf("failed to create %s client", name), err)
	}

	return &OpenAIChatModel{
		client: client,
		name:   name,
		config: cfg,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIChatModel) Name() string {
	return p.name
}

// Complete sends a completion request and returns the full response.
func (p *OpenAIChatModel) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, types.WrapError(types.LLM_COMPLETION_FAILED, "invalid request", err)
	}

	content, err := generateContent(ctx, p.client, req, p.config)
	if err != nil {
		return nil, types.WrapRetryableError(types.LLM_COMPLETION_FAILED,
			fmt.Sprintf("%s completion failed", p.name), err)
	}

	return &CompletionResponse{Content: content, Model: p.config.Model}, nil
}

// Health probes the provider with a one-token completion.
func (p *OpenAIChatModel) Health(ctx context.Context) types.HealthStatus {
	probe := CompletionRequest{
		Messages:  []Message{NewUserMessage("ping")},
		MaxTokens: 1,
	}
	if _, err := generateContent(ctx, p.client, probe, p.config); err != nil {
		return types.Unhealthy(fmt.Sprintf("completion probe failed: %v", err))
	}
	return types.Healthy(fmt.Sprintf("%s reachable", p.name))
}

// generateContent converts the request to langchaingo message content and
// runs a single generation.
func generateContent(ctx context.Context, model llms.Model, req CompletionRequest, cfg ProviderConfig) (string, error) {
	messages := make([]llms.MessageContent, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, llms.TextParts(toChatMessageType(m.Role), m.Content))
	}

	opts := []llms.CallOption{
		llms.WithTemperature(temperatureFor(req, cfg)),
	}
	if max := maxTokensFor(req, cfg); max > 0 {
		opts = append(opts, llms.WithMaxTokens(max))
	}

	resp, err := model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return resp.Choices[0].Content, nil
}

func toChatMessageType(r Role) llms.ChatMessageType {
	switch r {
	case RoleSystem:
		return llms.ChatMessageTypeSystem
	case RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}

func temperatureFor(req CompletionRequest, cfg ProviderConfig) float64 {
	if req.Temperature > 0 {
		return req.Temperature
	}
	return cfg.Temperature
}

func maxTokensFor(req CompletionRequest, cfg ProviderConfig) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return cfg.MaxTokens
}
