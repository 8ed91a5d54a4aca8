package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/graph"
	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/types"
)

func pendingBook(id, title, author, genre, year string, pages int64) map[string]any {
	return map[string]any{
		"id":     id,
		"title":  title,
		"author": author,
		"genre":  genre,
		"year":   year,
		"pages":  pages,
	}
}

func TestPopulateEmbeddings(t *testing.T) {
	cat, client, _ := newTestCatalog(t)

	client.StubResult("b.embedding IS NULL", graph.QueryResult{Records: []map[string]any{
		pendingBook("4:abc:1", "The Quantum Key", "Mara Olsen", "Sci-Fi", "2019", 310),
		pendingBook("4:abc:2", "Edge of Tomorrow", "Leo Harding", "Sci-Fi", "2020", 336),
	}})
	client.StubResult("(n:Author)", graph.QueryResult{Records: []map[string]any{
		{"id": "4:abc:3", "name": "Mara Olsen"},
	}})
	// No pending genres.

	result, err := cat.PopulateEmbeddings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PopulateResult{Books: 2, Authors: 1, Genres: 0}, result)
	assert.Equal(t, 3, result.Total())

	writes := client.CallsTo("Execute")
	require.Len(t, writes, 3)
	for _, w := range writes {
		assert.Contains(t, w.Cypher, "SET n.embedding = $embedding")
		vector, ok := w.Params["embedding"].([]float64)
		require.True(t, ok)
		assert.Len(t, vector, 8)
	}
	assert.Equal(t, "4:abc:1", writes[0].Params["id"])
	assert.Contains(t, writes[0].Cypher, "(n:Book)")
	assert.Contains(t, writes[2].Cypher, "(n:Author)")
}

func TestPopulateEmbeddings_NothingPendingWritesNothing(t *testing.T) {
	cat, client, embedder := newTestCatalog(t)

	result, err := cat.PopulateEmbeddings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PopulateResult{}, result)
	assert.Empty(t, client.CallsTo("Execute"))
	assert.Empty(t, embedder.Calls())
}

func TestPopulateEmbeddings_EmbedderFailure(t *testing.T) {
	cat, client, embedder := newTestCatalog(t)

	client.StubResult("b.embedding IS NULL", graph.QueryResult{Records: []map[string]any{
		pendingBook("4:abc:1", "The Quantum Key", "Mara Olsen", "Sci-Fi", "2019", 310),
	}})
	embedder.SetEmbedError(errors.New("model unreachable"))

	_, err := cat.PopulateEmbeddings(context.Background())
	require.Error(t, err)
	assert.Equal(t, types.POPULATE_FAILED, types.CodeOf(err))
	assert.Empty(t, client.CallsTo("Execute"))
}

func TestPopulateEmbeddings_WriteFailure(t *testing.T) {
	cat, client, _ := newTestCatalog(t)

	client.StubResult("b.embedding IS NULL", graph.QueryResult{Records: []map[string]any{
		pendingBook("4:abc:1", "The Quantum Key", "Mara Olsen", "Sci-Fi", "2019", 310),
	}})
	client.SetExecuteError(errors.New("write conflict"))

	_, err := cat.PopulateEmbeddings(context.Background())
	require.Error(t, err)
	assert.Equal(t, types.POPULATE_FAILED, types.CodeOf(err))
}

func TestBookContextText(t *testing.T) {
	tests := []struct {
		name   string
		record map[string]any
		want   string
	}{
		{
			name:   "all attributes",
			record: pendingBook("1", "The Quantum Key", "Mara Olsen", "Sci-Fi", "2019", 310),
			want:   "The Quantum Key by Mara Olsen (2019) - Sci-Fi - 310 pages",
		},
		{
			name:   "missing author and genre",
			record: map[string]any{"title": "Orphan Work", "year": "1999", "pages": int64(120)},
			want:   "Orphan Work (1999) - 120 pages",
		},
		{
			name:   "title only",
			record: map[string]any{"title": "Bare"},
			want:   "Bare",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bookContextText(tt.record))
		})
	}
}

func TestEnsureIndexes(t *testing.T) {
	cat, client, _ := newTestCatalog(t)

	require.NoError(t, cat.EnsureIndexes(context.Background()))

	calls := client.CallsTo("Execute")
	require.Len(t, calls, 3)
	for i, index := range []string{BookIndex, AuthorIndex, GenreIndex} {
		assert.Contains(t, calls[i].Cypher, "CREATE VECTOR INDEX "+index+" IF NOT EXISTS")
		assert.Contains(t, calls[i].Cypher, "`vector.dimensions`: 8")
		assert.Contains(t, calls[i].Cypher, "'cosine'")
	}
}

func TestEnsureIndexes_Failure(t *testing.T) {
	cat, client, _ := newTestCatalog(t)
	client.SetExecuteError(errors.New("procedure not found"))

	err := cat.EnsureIndexes(context.Background())
	require.Error(t, err)
	assert.Equal(t, types.GRAPH_INDEX_FAILED, types.CodeOf(err))
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name     string
		graph    types.HealthStatus
		embedder types.HealthStatus
		want     types.HealthState
	}{
		{"both healthy", types.Healthy("ok"), types.Healthy("ok"), types.HealthStateHealthy},
		{"graph down", types.Unhealthy("refused"), types.Healthy("ok"), types.HealthStateDegraded},
		{"embedder down", types.Healthy("ok"), types.Unhealthy("refused"), types.HealthStateDegraded},
		{"both down", types.Unhealthy("refused"), types.Unhealthy("refused"), types.HealthStateUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, client, embedder := newTestCatalog(t)
			client.SetHealthStatus(tt.graph)
			embedder.SetHealthStatus(tt.embedder)

			status := cat.Health(context.Background())
			assert.Equal(t, tt.want, status.State)
			if tt.want != types.HealthStateHealthy {
				assert.True(t, strings.Contains(status.Message, "graph") ||
					strings.Contains(status.Message, "embedder"))
			}
		})
	}
}
