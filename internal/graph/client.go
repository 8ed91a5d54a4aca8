// Package graph provides the graph store adapter for the book catalog.
// It exposes a small GraphClient interface over a Neo4j labeled property
// graph; query execution and index internals belong to the store.
package graph

import (
	"context"
	"time"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/types"
)

// GraphClient provides an interface for graph database operations.
// Implementations must be thread-safe for concurrent access.
type GraphClient interface {
	// Connect establishes a connection to the graph database.
	Connect(ctx context.Context) error

	// Close releases all resources and closes the database connection.
	Close(ctx context.Context) error

	// Health returns the current health status of the graph database connection.
	Health(ctx context.Context) types.HealthStatus

	// Query executes a Cypher read query with the given parameters.
	// Returns QueryResult containing the ordered result set or an error.
	Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error)

	// Execute runs a Cypher write statement (schema DDL, property updates)
	// with the given parameters.
	Execute(ctx context.Context, cypher string, params map[string]any) (QueryResult, error)
}

// QueryResult represents the result of a Cypher query execution.
type QueryResult struct {
	// Records contains the result rows as maps of column name to value,
	// in the order the store returned them.
	Records []map[string]any

	// Columns contains the names of the columns in the result set.
	Columns []string

	// Summary contains metadata about the query execution.
	Summary QuerySummary
}

// QuerySummary provides metadata about query execution.
type QuerySummary struct {
	// ExecutionTime is the duration of query execution.
	ExecutionTime time.Duration

	// PropertiesSet is the number of properties set by a write statement.
	PropertiesSet int
}

// GraphClientConfig contains configuration options for graph database clients.
type GraphClientConfig struct {
	// URI is the connection URI for the graph database.
	// For Neo4j, use:
	//   - "bolt://host:port" for unencrypted connections
	//   - "bolt+s://host:port" for TLS encrypted connections
	//   - "neo4j://" or "neo4j+s://" for routing
	URI string `mapstructure:"uri" yaml:"uri"`

	// Username for authentication.
	Username string `mapstructure:"username" yaml:"username"`

	// Password for authentication.
	Password string `mapstructure:"password" yaml:"password"`

	// Database name to connect to. Empty string uses the default database.
	Database string `mapstructure:"database" yaml:"database"`

	// MaxConnectionPoolSize limits the number of connections in the pool.
	// Zero or negative values use the driver default.
	MaxConnectionPoolSize int `mapstructure:"max_connection_pool_size" yaml:"max_connection_pool_size"`

	// ConnectionTimeout is the maximum time to wait for a connection.
	ConnectionTimeout time.Duration `mapstructure:"connection_timeout" yaml:"connection_timeout"`

	// MaxTransactionRetryTime is the maximum time to retry failed transactions.
	MaxTransactionRetryTime time.Duration `mapstructure:"max_transaction_retry_time" yaml:"max_transaction_retry_time"`
}

// DefaultConfig returns a GraphClientConfig with sensible defaults.
func DefaultConfig() GraphClientConfig {
	return GraphClientConfig{
		URI:                     "bolt://localhost:7687",
		Username:                "neo4j",
		Password:                "password",
		Database:                "",
		MaxConnectionPoolSize:   50,
		ConnectionTimeout:       30 * time.Second,
		MaxTransactionRetryTime: 30 * time.Second,
	}
}

// Validate checks if the configuration is valid.
func (c GraphClientConfig) Validate() error {
	if c.URI == "" {
		return types.NewError(types.GRAPH_INVALID_CONFIG, "URI cannot be empty")
	}
	if c.Username == "" {
		return types.NewError(types.GRAPH_INVALID_CONFIG, "Username cannot be empty")
	}
	if c.Password == "" {
		return types.NewError(types.GRAPH_INVALID_CONFIG, "Password cannot be empty")
	}
	if c.ConnectionTimeout <= 0 {
		return types.NewError(types.GRAPH_INVALID_CONFIG, "ConnectionTimeout must be positive")
	}
	if c.MaxTransactionRetryTime <= 0 {
		return types.NewError(types.GRAPH_INVALID_CONFIG, "MaxTransactionRetryTime must be positive")
	}
	return nil
}
