// Package catalog implements the book-catalog retrieval core: hybrid
// vector search over the labeled property graph, embedding population,
// and aggregate statistics. All operations are read-only at query time;
// the graph itself is owned and populated by an external ingestion process.
package catalog

// Node labels and relationship types of the catalog graph schema.
// Author -[:WROTE]-> Book, Book -[:BELONGS_TO]-> Genre.
const (
	LabelBook   = "Book"
	LabelAuthor = "Author"
	LabelGenre  = "Genre"

	RelWrote     = "WROTE"
	RelBelongsTo = "BELONGS_TO"
)

// Match sources identify which similarity index produced a hit. The tag is
// surfaced to callers as the match reason and is the only indicator of why
// a result was returned.
const (
	SourceBookMatch   = "Book Match"
	SourceAuthorMatch = "Author Match"
	SourceGenreMatch  = "Genre Match"
)

// Search defaults. The per-index top-K is fixed independently of the
// caller's limit: each index contributes up to PerIndexTopK candidates and
// the merged list is trimmed afterwards, trading budget control for recall.
const (
	DefaultLimit     = 10
	DefaultThreshold = 0.7
	PerIndexTopK     = 10
)

// SearchHit is one ranked result of a hybrid search. Request-scoped;
// nothing here is persisted.
type SearchHit struct {
	Title  string  `json:"book"`
	Author string  `json:"author"`
	Genre  string  `json:"genre"`
	Year   string  `json:"year,omitempty"`
	Pages  int64   `json:"pages,omitempty"`
	Score  float64 `json:"score"`
	Source string  `json:"reason"`
}

// SearchOptions controls result shaping for a hybrid search.
type SearchOptions struct {
	// Limit caps the merged result list. Values <= 0 fall back to
	// DefaultLimit.
	Limit int

	// Threshold is the minimum similarity score a hit must meet. The
	// underlying similarity function is cosine-like and unbounded; values
	// outside [0,1] are tolerated on both sides.
	Threshold float64
}

// DefaultSearchOptions returns the default limit and threshold.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		Limit:     DefaultLimit,
		Threshold: DefaultThreshold,
	}
}

// CountFilters holds the optional criteria of a filtered book count.
// Pointer fields distinguish "absent" from zero values: a set Pages pointer
// to 0 counts books with zero pages rather than disabling the filter.
// Filters combine conjunctively.
type CountFilters struct {
	// Author restricts to books whose author name contains this value,
	// case-insensitively.
	Author *string

	// Genre restricts to books whose genre name contains this value,
	// case-insensitively.
	Genre *string

	// Year restricts by exact string-compared publication year.
	Year *string

	// Pages restricts by exact page count.
	Pages *int64
}

// Empty reports whether no filter is set.
func (f CountFilters) Empty() bool {
	return f.Author == nil && f.Genre == nil && f.Year == nil && f.Pages == nil
}

// Stats holds the full-label node counts of the catalog.
type Stats struct {
	Books   int64 `json:"books"`
	Authors int64 `json:"authors"`
	Genres  int64 `json:"genres"`
}

// PopulateResult reports how many nodes received embeddings in one
// population run. Already-embedded nodes are never touched, so a second
// run over the same data reports zeros.
type PopulateResult struct {
	Books   int
	Authors int
	Genres  int
}

// Total returns the total number of nodes embedded.
func (r PopulateResult) Total() int {
	return r.Books + r.Authors + r.Genres
}
