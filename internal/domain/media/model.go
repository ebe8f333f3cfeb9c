package media

// ContentType mirrors the session content type at the provider boundary.
type ContentType string

const (
	ContentTypeMovie ContentType = "movie"
	ContentTypeTV    ContentType = "tv"
)

// Offer is one way to watch a title through a platform.
type Offer struct {
	Logo string `json:"logo"`
	Name string `json:"name"`
}

// Record is the normalized, write-once cache entry for one title, keyed by
// the provider's id. Volatile upstream fields (ratings, vote counts, raw
// popularity) are dropped at normalization time.
type Record struct {
	ID          string                      `json:"id"`
	Type        ContentType                 `json:"type"`
	Title       string                      `json:"title"`
	Overview    string                      `json:"overview"`
	PosterPath  string                      `json:"poster_path"`
	ReleaseDate string                      `json:"release_date"`
	GenreIDs    []int64                     `json:"genre_ids"`
	TrailerURL  string                      `json:"trailerURL,omitempty"`
	Providers   map[string]map[string]Offer `json:"providers,omitempty"`
}

// DiscoverQuery carries one provider discovery call. SortBy is already a
// provider sort key; translating logical orders happens upstream.
type DiscoverQuery struct {
	Type      ContentType
	Genres    string
	Languages string
	Platform  string
	Region    string
	SortBy    string
	Page      int
}
