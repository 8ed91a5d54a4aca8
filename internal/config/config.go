// Package config holds the root configuration of the graphrag service and
// its YAML loader. Component configs live next to the components they
// configure and are composed here.
package config

import (
	"time"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/agent"
	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/embedding"
	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/graph"
	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/llm"
)

// Config is the root configuration of the graphrag service.
type Config struct {
	Graph    graph.GraphClientConfig  `mapstructure:"graph" yaml:"graph" validate:"required"`
	Embedder embedding.EmbedderConfig `mapstructure:"embedder" yaml:"embedder" validate:"required"`
	LLM      llm.ProviderConfig       `mapstructure:"llm" yaml:"llm" validate:"required"`
	Agent    AgentConfig              `mapstructure:"agent" yaml:"agent"`
	Server   ServerConfig             `mapstructure:"server" yaml:"server"`
	Logging  LoggingConfig            `mapstructure:"logging" yaml:"logging"`
}

// AgentConfig configures the question-answering pipeline.
type AgentConfig struct {
	// VerifyMode selects the verification step behavior: "rewrite" or
	// "stamp".
	VerifyMode agent.VerifyMode `mapstructure:"verify_mode" yaml:"verify_mode" validate:"omitempty,oneof=rewrite stamp"`
}

// ServerConfig configures the HTTP boundary.
type ServerConfig struct {
	Address         string        `mapstructure:"address" yaml:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// LoggingConfig configures slog output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"omitempty,oneof=text json"`
}
