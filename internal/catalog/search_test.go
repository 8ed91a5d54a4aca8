package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/embedding"
	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/graph"
	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/types"
)

// hitRecord builds one store record in the shape the lookup queries return.
func hitRecord(title, author, genre, year string, pages int64, score float64) map[string]any {
	return map[string]any{
		"title":  title,
		"author": author,
		"genre":  genre,
		"year":   year,
		"pages":  pages,
		"score":  score,
	}
}

func newTestCatalog(t *testing.T) (*Catalog, *graph.MockGraphClient, *embedding.MockEmbedder) {
	t.Helper()
	client := graph.NewMockGraphClient()
	embedder := embedding.NewMockEmbedder().WithDimensions(8)
	return New(client, embedder, nil), client, embedder
}

func assertRanked(t *testing.T, hits []SearchHit) {
	t.Helper()
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score,
			"hits must be in descending score order")
	}
}

func assertUniqueTitles(t *testing.T, hits []SearchHit) {
	t.Helper()
	seen := make(map[string]bool)
	for _, h := range hits {
		assert.False(t, seen[h.Title], "duplicate title %q", h.Title)
		seen[h.Title] = true
	}
}

func TestSearch_MergesSortsAndTags(t *testing.T) {
	cat, client, _ := newTestCatalog(t)

	client.StubResult(BookIndex, graph.QueryResult{Records: []map[string]any{
		hitRecord("The Quantum Key", "Mara Olsen", "Sci-Fi", "2019", 310, 0.91),
	}})
	client.StubResult(AuthorIndex, graph.QueryResult{Records: []map[string]any{
		hitRecord("Love Beyond Walls", "Samira Haddad", "Romance", "2021", 280, 0.84),
	}})
	client.StubResult(GenreIndex, graph.QueryResult{Records: []map[string]any{
		hitRecord("Edge of Tomorrow", "Leo Harding", "Sci-Fi", "2020", 336, 0.88),
	}})

	hits, err := cat.Search(context.Background(), "quantum science fiction", DefaultSearchOptions())
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assertRanked(t, hits)
	assert.Equal(t, "The Quantum Key", hits[0].Title)
	assert.Equal(t, SourceBookMatch, hits[0].Source)
	assert.Equal(t, "Edge of Tomorrow", hits[1].Title)
	assert.Equal(t, SourceGenreMatch, hits[1].Source)
	assert.Equal(t, "Love Beyond Walls", hits[2].Title)
	assert.Equal(t, SourceAuthorMatch, hits[2].Source)
}

func TestSearch_DedupKeepsHighestScoringSource(t *testing.T) {
	cat, client, _ := newTestCatalog(t)

	// The same book reachable via its own embedding and via its genre:
	// only the higher-scoring instance survives.
	client.StubResult(BookIndex, graph.QueryResult{Records: []map[string]any{
		hitRecord("Mapping the Stars", "Iris Vale", "Sci-Fi", "2018", 402, 0.81),
	}})
	client.StubResult(GenreIndex, graph.QueryResult{Records: []map[string]any{
		hitRecord("Mapping the Stars", "Iris Vale", "Sci-Fi", "2018", 402, 0.89),
	}})

	hits, err := cat.Search(context.Background(), "star maps", DefaultSearchOptions())
	require.NoError(t, err)
	require.Len(t, hits, 1)

	assert.Equal(t, "Mapping the Stars", hits[0].Title)
	assert.Equal(t, SourceGenreMatch, hits[0].Source)
	assert.Equal(t, 0.89, hits[0].Score)
}

func TestSearch_ThresholdMonotonicity(t *testing.T) {
	cat, client, _ := newTestCatalog(t)

	client.StubResult(BookIndex, graph.QueryResult{Records: []map[string]any{
		hitRecord("A", "a", "g", "2020", 100, 0.95),
		hitRecord("B", "b", "g", "2020", 100, 0.80),
		hitRecord("C", "c", "g", "2020", 100, 0.65),
		hitRecord("D", "d", "g", "2020", 100, 0.40),
	}})

	ctx := context.Background()
	var previous []SearchHit
	for _, threshold := range []float64{0.3, 0.5, 0.7, 0.9, 1.1} {
		hits, err := cat.Search(ctx, "letters", SearchOptions{Limit: 10, Threshold: threshold})
		require.NoError(t, err)

		if previous != nil {
			assert.LessOrEqual(t, len(hits), len(previous),
				"raising the threshold must never increase the result count")
			// Every hit at the higher threshold was present at the lower one.
			for _, h := range hits {
				assert.Contains(t, previous, h)
			}
		}
		for _, h := range hits {
			assert.GreaterOrEqual(t, h.Score, threshold)
		}
		previous = hits
	}
}

func TestSearch_LimitInvariant(t *testing.T) {
	cat, client, _ := newTestCatalog(t)

	records := make([]map[string]any, 0, 9)
	for _, title := range []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"} {
		records = append(records, hitRecord(title, "x", "g", "2020", 100, 0.9))
	}
	client.StubResult(BookIndex, graph.QueryResult{Records: records})

	for _, limit := range []int{1, 3, 9, 50} {
		hits, err := cat.Search(context.Background(), "alphabet",
			SearchOptions{Limit: limit, Threshold: 0.5})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(hits), limit)
	}
}

func TestSearch_DefaultLimitApplied(t *testing.T) {
	cat, client, _ := newTestCatalog(t)

	records := make([]map[string]any, 0, 12)
	for i := 0; i < 12; i++ {
		records = append(records, hitRecord(string(rune('A'+i)), "x", "g", "2020", 100, 0.9))
	}
	// Spread across two indices so the merged candidate set exceeds the
	// default limit.
	client.StubResult(BookIndex, graph.QueryResult{Records: records[:6]})
	client.StubResult(AuthorIndex, graph.QueryResult{Records: records[6:]})

	hits, err := cat.Search(context.Background(), "alphabet", SearchOptions{Threshold: 0.5})
	require.NoError(t, err)
	assert.Len(t, hits, DefaultLimit)
}

func TestSearch_EmptyResultIsNotAnError(t *testing.T) {
	cat, _, _ := newTestCatalog(t)

	hits, err := cat.Search(context.Background(), "anything", DefaultSearchOptions())
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearch_EmbedderFailureFailsWholeCall(t *testing.T) {
	cat, _, embedder := newTestCatalog(t)
	embedder.SetEmbedError(errors.New("model unreachable"))

	_, err := cat.Search(context.Background(), "anything", DefaultSearchOptions())
	require.Error(t, err)
	assert.Equal(t, types.SEARCH_FAILED, types.CodeOf(err))
}

func TestSearch_LookupFailureReturnsNoPartialResults(t *testing.T) {
	cat, client, _ := newTestCatalog(t)

	client.StubResult(BookIndex, graph.QueryResult{Records: []map[string]any{
		hitRecord("The Quantum Key", "Mara Olsen", "Sci-Fi", "2019", 310, 0.91),
	}})
	client.StubError(GenreIndex, errors.New("index missing"))

	hits, err := cat.Search(context.Background(), "quantum", DefaultSearchOptions())
	require.Error(t, err)
	assert.Equal(t, types.SEARCH_FAILED, types.CodeOf(err))
	assert.Nil(t, hits)
}

func TestSearch_QueriesAllThreeIndices(t *testing.T) {
	cat, client, embedder := newTestCatalog(t)

	_, err := cat.Search(context.Background(), "who wrote The Storm?", DefaultSearchOptions())
	require.NoError(t, err)

	// One embedding call for the query text.
	require.Len(t, embedder.Calls(), 1)

	queried := make(map[string]bool)
	for _, call := range client.CallsTo("Query") {
		if idx, ok := call.Params["index"].(string); ok {
			queried[idx] = true
			assert.Equal(t, PerIndexTopK, call.Params["k"])
		}
	}
	assert.Equal(t, map[string]bool{
		BookIndex:   true,
		AuthorIndex: true,
		GenreIndex:  true,
	}, queried)
}

func TestSearch_ScenarioWhoWroteTheStorm(t *testing.T) {
	cat, client, _ := newTestCatalog(t)

	client.StubResult(BookIndex, graph.QueryResult{Records: []map[string]any{
		hitRecord("Storm Chaser", "Leo Harding", "Adventure", "2017", 288, 0.83),
		hitRecord("Children of the Storm", "Julian Ross", "Drama", "2015", 352, 0.79),
	}})

	hits, err := cat.Search(context.Background(), "Who wrote The Storm?", DefaultSearchOptions())
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, "Storm Chaser", hits[0].Title)
	assert.Equal(t, "Leo Harding", hits[0].Author)
	assert.Equal(t, "Children of the Storm", hits[1].Title)
	assert.Equal(t, "Julian Ross", hits[1].Author)
	assertRanked(t, hits)
}

func TestSearch_ScenarioBooksAboutSpace(t *testing.T) {
	cat, client, _ := newTestCatalog(t)

	client.StubResult(BookIndex, graph.QueryResult{Records: []map[string]any{
		hitRecord("Edge of Tomorrow", "Leo Harding", "Sci-Fi", "2020", 336, 0.92),
		hitRecord("Mapping the Stars", "Iris Vale", "Sci-Fi", "2018", 402, 0.88),
		hitRecord("The Quantum Key", "Mara Olsen", "Sci-Fi", "2019", 310, 0.85),
	}})
	client.StubResult(GenreIndex, graph.QueryResult{Records: []map[string]any{
		hitRecord("The Memory Paradox", "Nadia Flores", "Sci-Fi", "2021", 298, 0.81),
		hitRecord("Reborn Skies", "Owen Tate", "Sci-Fi", "2022", 274, 0.77),
		// Duplicate of a book-index hit at a lower score.
		hitRecord("Edge of Tomorrow", "Leo Harding", "Sci-Fi", "2020", 336, 0.76),
	}})

	hits, err := cat.Search(context.Background(), "books about space",
		SearchOptions{Limit: 10, Threshold: 0.7})
	require.NoError(t, err)

	require.Len(t, hits, 5)
	assertRanked(t, hits)
	assertUniqueTitles(t, hits)
	assert.Equal(t, "Edge of Tomorrow", hits[0].Title)
	assert.Equal(t, SourceBookMatch, hits[0].Source)
}
