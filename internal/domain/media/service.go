package media

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"swipehub/session-api/internal/utils/platformerrors"
)

const (
	imageBaseURL = "https://image.tmdb.org/t/p/original"
	trailerSite  = "YouTube"
	trailerType  = "Trailer"
)

// Summary is one entry of a provider discovery page.
type Summary struct {
	ID           int64
	Title        string
	Name         string
	Overview     string
	PosterPath   string
	ReleaseDate  string
	FirstAirDate string
	GenreIDs     []int64
}

// Genre is a provider genre object from a detail payload.
type Genre struct {
	ID   int64
	Name string
}

// Video is one entry of a detail payload's video list.
type Video struct {
	Key      string
	Site     string
	Type     string
	Official bool
}

// DetailOffer is one watch offer inside a region's offer lists.
type DetailOffer struct {
	ProviderID   int64
	LogoPath     string
	ProviderName string
}

// RegionOffers groups the three offer categories the provider reports.
type RegionOffers struct {
	Buy      []DetailOffer
	Rent     []DetailOffer
	Flatrate []DetailOffer
}

// Detail is the full provider record for a movie, including trailer
// candidates and per-region offers.
type Detail struct {
	ID          int64
	Title       string
	Overview    string
	PosterPath  string
	ReleaseDate string
	Genres      []Genre
	Videos      []Video
	Offers      map[string]RegionOffers
}

// Provider is the upstream content source.
type Provider interface {
	Discover(ctx context.Context, query DiscoverQuery) ([]Summary, error)
	MovieDetail(ctx context.Context, id string) (*Detail, error)
}

// Repository persists normalized records. Create must tolerate concurrent
// attempts for the same id; the derivation is identical, so first write wins.
type Repository interface {
	GetByID(ctx context.Context, id string) (*Record, error)
	Create(ctx context.Context, record *Record) error
}

// Service fills the media cache from provider data and hands deck ids to
// the pagination engine.
type Service struct {
	provider Provider
	repo     Repository
	log      zerolog.Logger
}

func NewService(provider Provider, repo Repository, log zerolog.Logger) *Service {
	return &Service{
		provider: provider,
		repo:     repo,
		log:      log.With().Str("component", "media-service").Logger(),
	}
}

// Discover fetches one discovery page and returns the media ids in provider
// order, caching each title on first sight.
func (s *Service) Discover(ctx context.Context, query DiscoverQuery) ([]string, error) {
	summaries, err := s.provider.Discover(ctx, query)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "discover page")
	}

	ids := make([]string, 0, len(summaries))
	for _, summary := range summaries {
		record, err := s.GetOrCreate(ctx, query.Type, summary)
		if err != nil {
			return nil, err
		}
		ids = append(ids, record.ID)
	}
	return ids, nil
}

// GetOrCreate returns the cached record for a summary's id, normalizing and
// persisting it on first reference. Existing records are returned unchanged;
// the cache is write-once.
func (s *Service) GetOrCreate(ctx context.Context, contentType ContentType, summary Summary) (*Record, error) {
	id := strconv.FormatInt(summary.ID, 10)

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "look up cached record")
	}
	if existing != nil {
		return existing, nil
	}

	var record *Record
	switch contentType {
	case ContentTypeMovie:
		detail, err := s.provider.MovieDetail(ctx, id)
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "fetch movie detail")
		}
		record = normalizeMovie(id, detail)
	default:
		record = normalizeSeries(id, summary)
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "persist record")
	}
	s.log.Debug().Str("media_id", id).Str("type", string(contentType)).Msg("cached new media record")
	return record, nil
}

func normalizeMovie(id string, detail *Detail) *Record {
	genreIDs := make([]int64, 0, len(detail.Genres))
	for _, genre := range detail.Genres {
		genreIDs = append(genreIDs, genre.ID)
	}

	// The last qualifying video wins; the scan order is the provider's, so
	// the pick is deterministic for a given payload.
	trailerURL := ""
	for _, video := range detail.Videos {
		if video.Official && video.Site == trailerSite && video.Type == trailerType {
			trailerURL = "https://www.youtube.com/watch?v=" + video.Key
		}
	}

	providers := make(map[string]map[string]Offer, len(detail.Offers))
	for region, offers := range detail.Offers {
		flattened := map[string]Offer{}
		for _, group := range [][]DetailOffer{offers.Buy, offers.Rent, offers.Flatrate} {
			for _, offer := range group {
				flattened[strconv.FormatInt(offer.ProviderID, 10)] = Offer{
					Logo: imageBaseURL + offer.LogoPath,
					Name: offer.ProviderName,
				}
			}
		}
		providers[region] = flattened
	}

	return &Record{
		ID:          id,
		Type:        ContentTypeMovie,
		Title:       detail.Title,
		Overview:    detail.Overview,
		PosterPath:  detail.PosterPath,
		ReleaseDate: detail.ReleaseDate,
		GenreIDs:    genreIDs,
		TrailerURL:  trailerURL,
		Providers:   providers,
	}
}

func normalizeSeries(id string, summary Summary) *Record {
	posterPath := summary.PosterPath
	if posterPath != "" {
		posterPath = imageBaseURL + posterPath
	}
	return &Record{
		ID:          id,
		Type:        ContentTypeTV,
		Title:       summary.Name,
		Overview:    summary.Overview,
		PosterPath:  posterPath,
		ReleaseDate: summary.FirstAirDate,
		GenreIDs:    summary.GenreIDs,
	}
}
