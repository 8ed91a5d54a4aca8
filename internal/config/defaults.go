package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/agent"
	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/embedding"
	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/graph"
	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/llm"
)

// DefaultConfigPath is where the CLI looks for configuration when --config
// is not given.
const DefaultConfigPath = "graphrag.yaml"

// DefaultConfig returns the configuration used when no file is present:
// local Neo4j, local Ollama embeddings, Groq chat completions with the key
// taken from the environment.
func DefaultConfig() *Config {
	return &Config{
		Graph:    graph.DefaultConfig(),
		Embedder: embedding.DefaultEmbedderConfig(),
		LLM:      llm.DefaultProviderConfig(),
		Agent: AgentConfig{
			VerifyMode: agent.VerifyModeRewrite,
		},
		Server: ServerConfig{
			Address:         ":8000",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// WriteDefault writes the default configuration as YAML to path, creating
// parent directories as needed. Fails if the file already exists.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
