package catalog

import (
	"context"
	"fmt"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/types"
)

// Vector index names, one per node kind. The three indices are independent;
// hybrid search queries all of them concurrently.
const (
	BookIndex   = "book_index"
	AuthorIndex = "author_index"
	GenreIndex  = "genre_index"
)

// indexDDL is the vector index definition template. The dimension is baked
// into the index at creation time; the embedding provider must keep
// producing vectors of that dimension for the index's lifetime.
const indexDDL = `
CREATE VECTOR INDEX %s IF NOT EXISTS
FOR (n:%s) ON (n.embedding)
OPTIONS {indexConfig: {
  ` + "`vector.dimensions`" + `: %d,
  ` + "`vector.similarity_function`" + `: 'cosine'
}}`

// EnsureIndexes creates the three per-label vector indices if they do not
// already exist. Safe to run on every startup.
func (c *Catalog) EnsureIndexes(ctx context.Context) error {
	definitions := []struct {
		index string
		label string
	}{
		{BookIndex, LabelBook},
		{AuthorIndex, LabelAuthor},
		{GenreIndex, LabelGenre},
	}

	dims := c.embedder.Dimensions()
	for _, def := range definitions {
		ddl := fmt.Sprintf(indexDDL, def.index, def.label, dims)
		if _, err := c.client.Execute(ctx, ddl, nil); err != nil {
			return types.WrapError(types.GRAPH_INDEX_FAILED,
				fmt.Sprintf("failed to create vector index %s", def.index), err)
		}
		c.logger.Debug("ensured vector index",
			"index", def.index,
			"label", def.label,
			"dimensions", dims)
	}

	return nil
}
