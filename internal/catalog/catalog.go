package catalog

import (
	"context"
	"log/slog"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/embedding"
	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/graph"
	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/types"
)

// Catalog combines the graph store and the embedding provider into the
// retrieval and aggregation engines. Both dependencies are injected at
// construction, opened and closed by the caller, and shared read-only
// across requests; Catalog itself holds no per-request state, so one
// instance serves concurrent requests safely.
type Catalog struct {
	client   graph.GraphClient
	embedder embedding.Embedder
	logger   *slog.Logger
}

// New creates a Catalog over an already-connected graph client and a ready
// embedder. A nil logger falls back to slog.Default().
func New(client graph.GraphClient, embedder embedding.Embedder, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{
		client:   client,
		embedder: embedder,
		logger:   logger,
	}
}

// Health aggregates the health of the catalog's collaborators: degraded
// when one of the two is down, unhealthy when both are.
func (c *Catalog) Health(ctx context.Context) types.HealthStatus {
	graphHealth := c.client.Health(ctx)
	embedderHealth := c.embedder.Health(ctx)

	switch {
	case graphHealth.IsHealthy() && embedderHealth.IsHealthy():
		return types.Healthy("graph store and embedder reachable")
	case !graphHealth.IsHealthy() && !embedderHealth.IsHealthy():
		return types.Unhealthy("graph store and embedder unreachable")
	case !graphHealth.IsHealthy():
		return types.Degraded("graph store unreachable: " + graphHealth.Message)
	default:
		return types.Degraded("embedder unreachable: " + embedderHealth.Message)
	}
}
