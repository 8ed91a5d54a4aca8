package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/agent"
	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/catalog"
	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/config"
	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/embedding"
	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/graph"
	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/llm"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "graphrag",
	Short: "Question answering over a book catalog stored in Neo4j",
	Long: `graphrag answers natural-language questions about a book catalog by
combining vector similarity search over books, authors, and genres with the
relationships of the underlying property graph.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI with the given base context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath,
		"path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")

	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(embedCmd)
	rootCmd.AddCommand(initCmd)
}

// loadConfig loads the configured file, falling back to defaults when the
// default path does not exist.
func loadConfig() (*config.Config, error) {
	loader := config.NewConfigLoader(config.NewValidator())
	if configPath == config.DefaultConfigPath {
		return loader.LoadWithDefaults(configPath)
	}
	return loader.Load(configPath)
}

// newLogger builds the process logger from config; --verbose forces debug.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// buildCatalog connects the graph client, builds the embedder, and wires
// both into a catalog. The returned cleanup closes the graph connection.
func buildCatalog(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*catalog.Catalog, func(), error) {
	client, err := graph.NewNeo4jClient(cfg.Graph)
	if err != nil {
		return nil, nil, err
	}
	if err := client.Connect(ctx); err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := client.Close(context.Background()); err != nil {
			logger.Warn("failed to close graph connection", "error", err)
		}
	}

	embedder, err := embedding.CreateEmbedder(cfg.Embedder)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return catalog.New(client, embedder, logger), cleanup, nil
}

// buildLibrarian assembles the full answering pipeline on top of a catalog.
func buildLibrarian(cfg *config.Config, cat *catalog.Catalog, logger *slog.Logger) (*agent.Librarian, error) {
	model, err := llm.NewChatModel(cfg.LLM)
	if err != nil {
		return nil, err
	}
	verifier, err := agent.NewVerifier(cfg.Agent.VerifyMode, model, logger)
	if err != nil {
		return nil, err
	}
	return agent.NewLibrarian(cat, model, verifier, logger), nil
}
