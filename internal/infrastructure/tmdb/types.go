package tmdb

// Raw wire shapes for the endpoints the adapter consumes. Fields the
// normalizer drops (ratings, vote counts, popularity) are never decoded.

type discoverResponse struct {
	Page    int       `json:"page"`
	Results []summary `json:"results"`
}

type summary struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	GenreIDs     []int64 `json:"genre_ids"`
}

type genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type video struct {
	Key      string `json:"key"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

type videosPayload struct {
	Results []video `json:"results"`
}

type watchOffer struct {
	ProviderID   int64  `json:"provider_id"`
	LogoPath     string `json:"logo_path"`
	ProviderName string `json:"provider_name"`
}

type regionOffers struct {
	Buy      []watchOffer `json:"buy"`
	Rent     []watchOffer `json:"rent"`
	Flatrate []watchOffer `json:"flatrate"`
}

type providersPayload struct {
	Results map[string]regionOffers `json:"results"`
}

type movieDetail struct {
	ID             int64            `json:"id"`
	Title          string           `json:"title"`
	Overview       string           `json:"overview"`
	PosterPath     string           `json:"poster_path"`
	ReleaseDate    string           `json:"release_date"`
	Genres         []genre          `json:"genres"`
	Videos         videosPayload    `json:"videos"`
	WatchProviders providersPayload `json:"watch/providers"`
}
