package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/andolsitayssir/multi-agent-GraphRAG/internal/catalog"
)

// CatalogEngine is the slice of the catalog the agent's tools need.
// *catalog.Catalog satisfies it.
type CatalogEngine interface {
	Search(ctx context.Context, query string, opts catalog.SearchOptions) ([]catalog.SearchHit, error)
	Stats(ctx context.Context) (catalog.Stats, error)
}

const noResultsText = "No relevant books found."

// Toolset holds the agent's deterministic tools. Tool output is computed
// before any chat-model call and is the factual ground truth the model
// phrases; the model never invents results.
type Toolset struct {
	engine CatalogEngine
}

// NewToolset wraps a catalog engine as the agent's toolset.
func NewToolset(engine CatalogEngine) *Toolset {
	return &Toolset{engine: engine}
}

// SearchBooks runs a hybrid search and formats the hits as a line-per-book
// list, one match reason per line. An empty result formats as a fixed
// sentence rather than an empty string.
func (t *Toolset) SearchBooks(ctx context.Context, query string) (string, error) {
	hits, err := t.engine.Search(ctx, query, catalog.DefaultSearchOptions())
	if err != nil {
		return "", err
	}
	if len(hits) == 0 {
		return noResultsText, nil
	}

	var sb strings.Builder
	sb.WriteString("Found the following items:\n")
	for _, hit := range hits {
		fmt.Fprintf(&sb, "- %s by %s (%s) - %d pages (Genre: %s) [Match: %s]\n",
			hit.Title, hit.Author, hit.Year, hit.Pages, hit.Genre, hit.Source)
	}
	return sb.String(), nil
}

// DatabaseStats formats the full-label node counts as one sentence.
func (t *Toolset) DatabaseStats(ctx context.Context) (string, error) {
	stats, err := t.engine.Stats(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("The database contains %d books, %d authors, and %d genres.",
		stats.Books, stats.Authors, stats.Genres), nil
}
