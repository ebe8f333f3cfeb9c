package media

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	summaries   []Summary
	details     map[string]*Detail
	detailCalls []string
	discoverErr error
	detailErr   error
}

func (f *fakeProvider) Discover(_ context.Context, _ DiscoverQuery) ([]Summary, error) {
	if f.discoverErr != nil {
		return nil, f.discoverErr
	}
	return f.summaries, nil
}

func (f *fakeProvider) MovieDetail(_ context.Context, id string) (*Detail, error) {
	f.detailCalls = append(f.detailCalls, id)
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	detail, ok := f.details[id]
	if !ok {
		return &Detail{}, nil
	}
	return detail, nil
}

type memRepo struct {
	records map[string]*Record
	creates int
}

func newMemRepo() *memRepo {
	return &memRepo{records: map[string]*Record{}}
}

func (m *memRepo) GetByID(_ context.Context, id string) (*Record, error) {
	record, ok := m.records[id]
	if !ok {
		return nil, nil
	}
	return record, nil
}

func (m *memRepo) Create(_ context.Context, record *Record) error {
	m.creates++
	if _, ok := m.records[record.ID]; ok {
		return nil
	}
	m.records[record.ID] = record
	return nil
}

func TestDiscoverCachesMoviesOnce(t *testing.T) {
	provider := &fakeProvider{
		summaries: []Summary{{ID: 550}, {ID: 551}, {ID: 550}},
		details: map[string]*Detail{
			"550": {ID: 550, Title: "Fight Club"},
			"551": {ID: 551, Title: "The Matrix"},
		},
	}
	repo := newMemRepo()
	svc := NewService(provider, repo, zerolog.Nop())

	ids, err := svc.Discover(context.Background(), DiscoverQuery{Type: ContentTypeMovie, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"550", "551", "550"}, ids)

	// The repeated id hits the cache instead of a second detail fetch.
	assert.Equal(t, []string{"550", "551"}, provider.detailCalls)
	assert.Equal(t, "Fight Club", repo.records["550"].Title)
}

func TestGetOrCreateReturnsExistingUnchanged(t *testing.T) {
	provider := &fakeProvider{details: map[string]*Detail{"550": {ID: 550, Title: "Fresh Title"}}}
	repo := newMemRepo()
	repo.records["550"] = &Record{ID: "550", Type: ContentTypeMovie, Title: "Stored Title"}
	svc := NewService(provider, repo, zerolog.Nop())

	record, err := svc.GetOrCreate(context.Background(), ContentTypeMovie, Summary{ID: 550})
	require.NoError(t, err)
	assert.Equal(t, "Stored Title", record.Title)
	assert.Empty(t, provider.detailCalls)
}

func TestNormalizeMovieTrailerSelection(t *testing.T) {
	tests := []struct {
		name   string
		videos []Video
		want   string
	}{
		{
			"last qualifying wins",
			[]Video{
				{Key: "first", Site: "YouTube", Type: "Trailer", Official: true},
				{Key: "second", Site: "YouTube", Type: "Trailer", Official: true},
			},
			"https://www.youtube.com/watch?v=second",
		},
		{
			"unofficial skipped",
			[]Video{
				{Key: "official", Site: "YouTube", Type: "Trailer", Official: true},
				{Key: "fanmade", Site: "YouTube", Type: "Trailer", Official: false},
			},
			"https://www.youtube.com/watch?v=official",
		},
		{
			"teasers and other sites skipped",
			[]Video{
				{Key: "teaser", Site: "YouTube", Type: "Teaser", Official: true},
				{Key: "vimeo", Site: "Vimeo", Type: "Trailer", Official: true},
			},
			"",
		},
		{"no videos", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := normalizeMovie("550", &Detail{Videos: tt.videos})
			assert.Equal(t, tt.want, record.TrailerURL)
		})
	}
}

func TestNormalizeMovieFlattensOffers(t *testing.T) {
	detail := &Detail{
		ID:          550,
		Title:       "Fight Club",
		Overview:    "An insomniac office worker.",
		PosterPath:  "/poster.jpg",
		ReleaseDate: "1999-10-15",
		Genres:      []Genre{{ID: 18, Name: "Drama"}, {ID: 53, Name: "Thriller"}},
		Offers: map[string]RegionOffers{
			"DE": {
				Buy:      []DetailOffer{{ProviderID: 2, LogoPath: "/apple.jpg", ProviderName: "Apple TV"}},
				Rent:     []DetailOffer{{ProviderID: 2, LogoPath: "/apple.jpg", ProviderName: "Apple TV"}},
				Flatrate: []DetailOffer{{ProviderID: 8, LogoPath: "/netflix.jpg", ProviderName: "Netflix"}},
			},
		},
	}

	record := normalizeMovie("550", detail)
	assert.Equal(t, "550", record.ID)
	assert.Equal(t, ContentTypeMovie, record.Type)
	assert.Equal(t, []int64{18, 53}, record.GenreIDs)
	// The movie poster path stays provider-relative.
	assert.Equal(t, "/poster.jpg", record.PosterPath)

	offers := record.Providers["DE"]
	require.Len(t, offers, 2)
	assert.Equal(t, Offer{Logo: "https://image.tmdb.org/t/p/original/netflix.jpg", Name: "Netflix"}, offers["8"])
	assert.Equal(t, Offer{Logo: "https://image.tmdb.org/t/p/original/apple.jpg", Name: "Apple TV"}, offers["2"])
}

func TestNormalizeSeriesAliasesFields(t *testing.T) {
	summary := Summary{
		ID:           1399,
		Name:         "Game of Thrones",
		Overview:     "Noble families vie for control.",
		PosterPath:   "/got.jpg",
		FirstAirDate: "2011-04-17",
		GenreIDs:     []int64{10765, 18},
	}

	record := normalizeSeries("1399", summary)
	assert.Equal(t, ContentTypeTV, record.Type)
	assert.Equal(t, "Game of Thrones", record.Title)
	assert.Equal(t, "2011-04-17", record.ReleaseDate)
	assert.Equal(t, "https://image.tmdb.org/t/p/original/got.jpg", record.PosterPath)
	assert.Equal(t, []int64{10765, 18}, record.GenreIDs)
	assert.Empty(t, record.TrailerURL)
}

func TestNormalizeSeriesEmptyPoster(t *testing.T) {
	record := normalizeSeries("1399", Summary{ID: 1399, Name: "Untitled"})
	assert.Empty(t, record.PosterPath)
}

func TestDiscoverSeriesSkipsDetailFetch(t *testing.T) {
	provider := &fakeProvider{
		summaries: []Summary{{ID: 1399, Name: "Game of Thrones", FirstAirDate: "2011-04-17"}},
	}
	repo := newMemRepo()
	svc := NewService(provider, repo, zerolog.Nop())

	ids, err := svc.Discover(context.Background(), DiscoverQuery{Type: ContentTypeTV, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"1399"}, ids)
	assert.Empty(t, provider.detailCalls)
	assert.Equal(t, "Game of Thrones", repo.records["1399"].Title)
}

func TestDiscoverPropagatesProviderError(t *testing.T) {
	provider := &fakeProvider{discoverErr: assert.AnError}
	svc := NewService(provider, newMemRepo(), zerolog.Nop())

	_, err := svc.Discover(context.Background(), DiscoverQuery{Type: ContentTypeMovie, Page: 1})
	assert.Error(t, err)
}
