package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/types"
)

// Stats returns the full-label node counts of the catalog: three
// independent count queries, no joins.
func (c *Catalog) Stats(ctx context.Context) (Stats, error) {
	var stats Stats

	counts := []struct {
		label string
		dest  *int64
	}{
		{LabelBook, &stats.Books},
		{LabelAuthor, &stats.Authors},
		{LabelGenre, &stats.Genres},
	}

	for _, count := range counts {
		cypher := fmt.Sprintf("MATCH (n:%s) RETURN count(n) AS count", count.label)
		result, err := c.client.Query(ctx, cypher, nil)
		if err != nil {
			return Stats{}, types.WrapError(types.AGGREGATE_FAILED,
				fmt.Sprintf("failed to count %s nodes", count.label), err)
		}
		if len(result.Records) > 0 {
			*count.dest = asInt64(result.Records[0]["count"])
		}
	}

	return stats, nil
}

// Count returns the number of books matching the given filters. Filters
// combine conjunctively; with no filters set it degenerates to a plain
// book count. Zero matches is a normal result, not an error.
func (c *Catalog) Count(ctx context.Context, filters CountFilters) (int64, error) {
	cypher, params := buildCountQuery(filters)

	result, err := c.client.Query(ctx, cypher, params)
	if err != nil {
		return 0, types.WrapError(types.AGGREGATE_FAILED,
			"filtered book count failed", err)
	}

	if len(result.Records) == 0 {
		return 0, nil
	}
	return asInt64(result.Records[0]["count"]), nil
}

// buildCountQuery assembles the conjunctive count query. Author and genre
// filters join through the WROTE and BELONGS_TO relationships with
// case-insensitive substring matches; year compares as a string and pages
// as an exact integer.
func buildCountQuery(filters CountFilters) (string, map[string]any) {
	var sb strings.Builder
	params := make(map[string]any)

	sb.WriteString("MATCH (b:Book)\n")

	if filters.Author != nil {
		sb.WriteString("MATCH (b)<-[:WROTE]-(a:Author) WHERE toLower(a.name) CONTAINS toLower($author)\n")
		params["author"] = *filters.Author
	}
	if filters.Genre != nil {
		sb.WriteString("MATCH (b)-[:BELONGS_TO]->(g:Genre) WHERE toLower(g.name) CONTAINS toLower($genre)\n")
		params["genre"] = *filters.Genre
	}

	var conditions []string
	if filters.Year != nil {
		conditions = append(conditions, "toString(b.year) = $year")
		params["year"] = *filters.Year
	}
	if filters.Pages != nil {
		conditions = append(conditions, "b.pages = $pages")
		params["pages"] = *filters.Pages
	}
	if len(conditions) > 0 {
		sb.WriteString("WITH b\nWHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
		sb.WriteString("\n")
	}

	sb.WriteString("RETURN count(DISTINCT b) AS count")
	return sb.String(), params
}
