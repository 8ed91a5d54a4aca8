package graph

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/types"
)

// Neo4jClient implements GraphClient for Neo4j graph databases.
// It provides connection pooling, automatic connect retries, and health
// monitoring. Session and transaction handling is delegated to the driver,
// which is safe for concurrent use.
type Neo4jClient struct {
	config GraphClientConfig
	driver neo4j.DriverWithContext
}

// NewNeo4jClient creates a new Neo4j client with the given configuration.
// The client must be connected via Connect() before use.
func NewNeo4jClient(config GraphClientConfig) (*Neo4jClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Neo4jClient{
		config: config,
	}, nil
}

// Connect establishes a connection to the Neo4j database.
// Uses exponential backoff for connection retries.
func (c *Neo4jClient) Connect(ctx context.Context) error {
	auth := neo4j.BasicAuth(c.config.Username, c.config.Password, "")

	driverConfig := func(config *neo4j.Config) {
		config.MaxConnectionPoolSize = c.config.MaxConnectionPoolSize
		config.ConnectionAcquisitionTimeout = c.config.ConnectionTimeout
		config.MaxTransactionRetryTime = c.config.MaxTransactionRetryTime
		// Encryption is controlled by URI scheme (bolt:// vs bolt+s://)
	}

	var driver neo4j.DriverWithContext
	var lastErr error
	maxRetries := 5
	baseDelay := 100 * time.Millisecond

	for attempt := 0; attempt < maxRetries; attempt++ {
		var err error
		driver, err = neo4j.NewDriverWithContext(c.config.URI, auth, driverConfig)
		if err == nil {
			err = driver.VerifyConnectivity(ctx)
			if err == nil {
				c.driver = driver
				return nil
			}
		}

		lastErr = err

		if ctx.Err() != nil {
			return types.WrapError(types.GRAPH_CONNECTION_FAILED,
				"connection attempt cancelled", ctx.Err())
		}

		// Backoff delay: baseDelay * 2^attempt, capped at the connection timeout
		delay := baseDelay * time.Duration(math.Pow(2, float64(attempt)))
		if delay > c.config.ConnectionTimeout {
			delay = c.config.ConnectionTimeout
		}

		select {
		case <-time.After(delay):
			continue
		case <-ctx.Done():
			return types.WrapError(types.GRAPH_CONNECTION_FAILED,
				"connection attempt cancelled", ctx.Err())
		}
	}

	return types.WrapError(types.GRAPH_CONNECTION_FAILED,
		fmt.Sprintf("failed to connect after %d attempts", maxRetries), lastErr)
}

// Close releases all resources and closes the database connection.
func (c *Neo4jClient) Close(ctx context.Context) error {
	if c.driver == nil {
		return nil
	}

	if err := c.driver.Close(ctx); err != nil {
		return types.WrapError(types.GRAPH_CONNECTION_CLOSED,
			"failed to close driver", err)
	}

	c.driver = nil
	return nil
}

// Health returns the current health status of the Neo4j connection.
func (c *Neo4jClient) Health(ctx context.Context) types.HealthStatus {
	if c.driver == nil {
		return types.Unhealthy("driver not initialized")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := c.driver.VerifyConnectivity(healthCtx); err != nil {
		return types.Unhealthy(fmt.Sprintf("connectivity check failed: %v", err))
	}

	return types.Healthy("connected to Neo4j")
}

// Query executes a Cypher read query with the given parameters.
func (c *Neo4jClient) Query(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	if c.driver == nil {
		return QueryResult{}, types.NewError(types.GRAPH_CONNECTION_CLOSED,
			"driver not connected")
	}

	startTime := time.Now()

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.config.Database,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return c.runInTx(ctx, tx, cypher, params)
	})

	if err != nil {
		return QueryResult{}, types.WrapError(types.GRAPH_QUERY_FAILED,
			"query execution failed", err)
	}

	queryResult := result.(QueryResult)
	queryResult.Summary.ExecutionTime = time.Since(startTime)

	return queryResult, nil
}

// Execute runs a Cypher write statement with the given parameters.
func (c *Neo4jClient) Execute(ctx context.Context, cypher string, params map[string]any) (QueryResult, error) {
	if c.driver == nil {
		return QueryResult{}, types.NewError(types.GRAPH_CONNECTION_CLOSED,
			"driver not connected")
	}

	startTime := time.Now()

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.config.Database,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return c.runInTx(ctx, tx, cypher, params)
	})

	if err != nil {
		return QueryResult{}, types.WrapError(types.GRAPH_QUERY_FAILED,
			"write execution failed", err)
	}

	queryResult := result.(QueryResult)
	queryResult.Summary.ExecutionTime = time.Since(startTime)

	return queryResult, nil
}

// runInTx runs a statement inside a managed transaction and collects the result.
func (c *Neo4jClient) runInTx(ctx context.Context, tx neo4j.ManagedTransaction, cypher string, params map[string]any) (any, error) {
	neoResult, err := tx.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}

	records, err := neoResult.Collect(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := neoResult.Consume(ctx)
	if err != nil {
		return nil, err
	}

	return convertNeo4jResult(records, summary), nil
}

// convertNeo4jResult converts Neo4j records and summary to our QueryResult format.
func convertNeo4jResult(records []*neo4j.Record, summary neo4j.ResultSummary) QueryResult {
	result := QueryResult{
		Records: make([]map[string]any, 0, len(records)),
		Columns: []string{},
	}

	if len(records) > 0 {
		result.Columns = records[0].Keys
	}

	for _, record := range records {
		recordMap := make(map[string]any)
		for i, key := range record.Keys {
			recordMap[key] = record.Values[i]
		}
		result.Records = append(result.Records, recordMap)
	}

	if summary != nil && summary.Counters() != nil {
		result.Summary = QuerySummary{
			PropertiesSet: summary.Counters().PropertiesSet(),
		}
	}

	return result
}
