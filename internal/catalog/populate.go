package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/types"
)

// Selection queries for nodes that still need an embedding. Only nodes with
// a null embedding are selected, which makes population idempotent: a
// second run over the same data selects nothing and writes nothing.
const (
	pendingBooksCypher = `
MATCH (b:Book)
WHERE b.embedding IS NULL
OPTIONAL MATCH (b)<-[:WROTE]-(a:Author)
OPTIONAL MATCH (b)-[:BELONGS_TO]->(g:Genre)
RETURN elementId(b) AS id, b.title AS title, toString(b.year) AS year,
       b.pages AS pages, a.name AS author, g.name AS genre`

	pendingNamedCypher = `
MATCH (n:%s)
WHERE n.embedding IS NULL
RETURN elementId(n) AS id, n.name AS name`

	writeEmbeddingCypher = `
MATCH (n:%s)
WHERE elementId(n) = $id
SET n.embedding = $embedding`
)

// PopulateEmbeddings generates and stores embeddings for all nodes that do
// not have one yet. Book embeddings are built from a rich context string
// (title, author, year, genre, page count) so that a topic query can reach
// a book through any of its attributes; author and genre embeddings use the
// bare name. Populated vectors are never regenerated.
func (c *Catalog) PopulateEmbeddings(ctx context.Context) (PopulateResult, error) {
	var result PopulateResult

	books, err := c.populateBooks(ctx)
	if err != nil {
		return result, err
	}
	result.Books = books

	authors, err := c.populateNamed(ctx, LabelAuthor)
	if err != nil {
		return result, err
	}
	result.Authors = authors

	genres, err := c.populateNamed(ctx, LabelGenre)
	if err != nil {
		return result, err
	}
	result.Genres = genres

	c.logger.Info("embedding population complete",
		"books", result.Books,
		"authors", result.Authors,
		"genres", result.Genres)

	return result, nil
}

// populateBooks embeds all books with a null embedding.
func (c *Catalog) populateBooks(ctx context.Context) (int, error) {
	pending, err := c.client.Query(ctx, pendingBooksCypher, nil)
	if err != nil {
		return 0, types.WrapError(types.POPULATE_FAILED,
			"failed to select books pending embedding", err)
	}
	if len(pending.Records) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(pending.Records))
	texts := make([]string, 0, len(pending.Records))
	for _, record := range pending.Records {
		ids = append(ids, asString(record["id"]))
		texts = append(texts, bookContextText(record))
	}

	vectors, err := c.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, types.WrapError(types.POPULATE_FAILED,
			"failed to embed book context texts", err)
	}

	return c.writeEmbeddings(ctx, LabelBook, ids, vectors)
}

// populateNamed embeds all Author or Genre nodes with a null embedding,
// using the node name as embedding text.
func (c *Catalog) populateNamed(ctx context.Context, label string) (int, error) {
	cypher := fmt.Sprintf(pendingNamedCypher, label)
	pending, err := c.client.Query(ctx, cypher, nil)
	if err != nil {
		return 0, types.WrapError(types.POPULATE_FAILED,
			fmt.Sprintf("failed to select %s nodes pending embedding", label), err)
	}
	if len(pending.Records) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(pending.Records))
	texts := make([]string, 0, len(pending.Records))
	for _, record := range pending.Records {
		ids = append(ids, asString(record["id"]))
		texts = append(texts, asString(record["name"]))
	}

	vectors, err := c.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, types.WrapError(types.POPULATE_FAILED,
			fmt.Sprintf("failed to embed %s names", label), err)
	}

	return c.writeEmbeddings(ctx, label, ids, vectors)
}

// writeEmbeddings stores one vector per node id.
func (c *Catalog) writeEmbeddings(ctx context.Context, label string, ids []string, vectors [][]float64) (int, error) {
	cypher := fmt.Sprintf(writeEmbeddingCypher, label)
	for i, id := range ids {
		params := map[string]any{
			"id":        id,
			"embedding": vectors[i],
		}
		if _, err := c.client.Execute(ctx, cypher, params); err != nil {
			return i, types.WrapError(types.POPULATE_FAILED,
				fmt.Sprintf("failed to store %s embedding", label), err)
		}
	}
	return len(ids), nil
}

// bookContextText builds the embedding text for a book from its display
// record. Optional attributes are skipped when absent.
func bookContextText(record map[string]any) string {
	parts := []string{asString(record["title"])}

	if author := asString(record["author"]); author != "" {
		parts = append(parts, "by "+author)
	}
	if year := asString(record["year"]); year != "" {
		parts = append(parts, "("+year+")")
	}
	if genre := asString(record["genre"]); genre != "" {
		parts = append(parts, "- "+genre)
	}
	if pages := asInt64(record["pages"]); pages > 0 {
		parts = append(parts, fmt.Sprintf("- %d pages", pages))
	}

	return strings.Join(parts, " ")
}
