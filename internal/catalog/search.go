package catalog

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/types"
)

// Per-index lookup queries. Each calls one similarity index and joins the
// matched node to its full display record. The joins are inner MATCHes:
// a book missing its WROTE or BELONGS_TO edge drops out of the result
// rather than surfacing a partial row.
const (
	bookSearchCypher = `
CALL db.index.vector.queryNodes($index, $k, $embedding)
YIELD node, score
MATCH (node)<-[:WROTE]-(a:Author)
MATCH (node)-[:BELONGS_TO]->(g:Genre)
RETURN node.title AS title, toString(node.year) AS year, node.pages AS pages,
       a.name AS author, g.name AS genre, score
ORDER BY score DESC`

	authorSearchCypher = `
CALL db.index.vector.queryNodes($index, $k, $embedding)
YIELD node, score
MATCH (node)-[:WROTE]->(b:Book)
MATCH (b)-[:BELONGS_TO]->(g:Genre)
RETURN b.title AS title, toString(b.year) AS year, b.pages AS pages,
       node.name AS author, g.name AS genre, score
ORDER BY score DESC`

	genreSearchCypher = `
CALL db.index.vector.queryNodes($index, $k, $embedding)
YIELD node, score
MATCH (node)<-[:BELONGS_TO]-(b:Book)
MATCH (b)<-[:WROTE]-(a:Author)
RETURN b.title AS title, toString(b.year) AS year, b.pages AS pages,
       a.name AS author, node.name AS genre, score
ORDER BY score DESC`
)

// indexLookup binds one similarity index to its join query and source tag.
type indexLookup struct {
	index  string
	source string
	cypher string
}

// searchPlan is the fixed fan-out of a hybrid search: one lookup per node
// kind, concatenated in this order before sorting.
var searchPlan = []indexLookup{
	{BookIndex, SourceBookMatch, bookSearchCypher},
	{AuthorIndex, SourceAuthorMatch, authorSearchCypher},
	{GenreIndex, SourceGenreMatch, genreSearchCypher},
}

// Search runs a hybrid similarity search for the query text: one embedding
// call, three concurrent index lookups, then a single-threaded
// merge/sort/dedup/threshold/truncate pass.
//
// An empty result is a normal outcome, not an error. A failure of the
// embedder or of any one lookup fails the whole call; no partial results
// are returned.
func (c *Catalog) Search(ctx context.Context, query string, opts SearchOptions) ([]SearchHit, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	queryVector, err := c.embedder.Embed(ctx, query)
	if err != nil {
		return nil, types.WrapError(types.SEARCH_FAILED,
			"failed to embed query text", err)
	}

	// Fan out one goroutine per index. The lookups are read-only with no
	// ordering dependency on each other; the Wait below is a full barrier
	// before any merging happens.
	resultSets := make([][]SearchHit, len(searchPlan))
	g, gctx := errgroup.WithContext(ctx)
	for i, lookup := range searchPlan {
		g.Go(func() error {
			hits, err := c.runLookup(gctx, lookup, queryVector)
			if err != nil {
				return err
			}
			resultSets[i] = hits
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, types.WrapError(types.SEARCH_FAILED,
			"index lookup failed", err)
	}

	merged := make([]SearchHit, 0, len(searchPlan)*PerIndexTopK)
	for _, hits := range resultSets {
		merged = append(merged, hits...)
	}

	// Stable sort keeps concatenation order for equal scores, which makes
	// the final ordering deterministic for deterministic store responses.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})

	// Dedup by title after sorting: the first occurrence is the
	// highest-scoring one, so a book matched by several indices is
	// attributed to its best match.
	seen := make(map[string]struct{}, len(merged))
	results := make([]SearchHit, 0, limit)
	for _, hit := range merged {
		if _, dup := seen[hit.Title]; dup {
			continue
		}
		seen[hit.Title] = struct{}{}

		if hit.Score < opts.Threshold {
			continue
		}

		results = append(results, hit)
		if len(results) == limit {
			break
		}
	}

	c.logger.Debug("hybrid search complete",
		"query", query,
		"candidates", len(merged),
		"results", len(results),
		"limit", limit,
		"threshold", opts.Threshold)

	return results, nil
}

// runLookup executes one index lookup and converts its records to tagged
// hits. The per-index top-K is fixed at PerIndexTopK regardless of the
// caller's limit.
func (c *Catalog) runLookup(ctx context.Context, lookup indexLookup, queryVector []float64) ([]SearchHit, error) {
	params := map[string]any{
		"index":     lookup.index,
		"k":         PerIndexTopK,
		"embedding": queryVector,
	}

	result, err := c.client.Query(ctx, lookup.cypher, params)
	if err != nil {
		return nil, err
	}

	hits := make([]SearchHit, 0, len(result.Records))
	for _, record := range result.Records {
		hits = append(hits, SearchHit{
			Title:  asString(record["title"]),
			Author: asString(record["author"]),
			Genre:  asString(record["genre"]),
			Year:   asString(record["year"]),
			Pages:  asInt64(record["pages"]),
			Score:  asFloat64(record["score"]),
			Source: lookup.source,
		})
	}
	return hits, nil
}
