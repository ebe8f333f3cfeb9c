package tmdb

import (
	"context"
	"fmt"
	"strconv"

	"resty.dev/v3"

	"swipehub/session-api/internal/domain/media"
	"swipehub/session-api/internal/utils/platformerrors"
)

// Client wraps the TMDB discovery and detail endpoint families.
type Client struct {
	client  *resty.Client
	baseURL string
	apiKey  string
}

func NewClient(client *resty.Client, baseURL, apiKey string) *Client {
	return &Client{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// Discover fetches one page of candidates for the query's content type.
// The movie and tv catalogs take differently named platform/region params.
func (c *Client) Discover(ctx context.Context, query media.DiscoverQuery) ([]media.Summary, error) {
	params := map[string]string{
		"api_key":                c.apiKey,
		"with_original_language": query.Languages,
		"with_genres":            query.Genres,
		"sort_by":                query.SortBy,
		"page":                   strconv.Itoa(query.Page),
	}

	path := "/discover/tv"
	if query.Type == media.ContentTypeMovie {
		path = "/discover/movie"
		params["with_watch_providers"] = query.Platform
		params["watch_region"] = query.Region
	} else {
		params["with_ott_providers"] = query.Platform
		params["ott_region"] = query.Region
	}

	var body discoverResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&body).
		Get(c.baseURL + path)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal, "discover request failed", err)
	}
	if resp.IsError() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			fmt.Sprintf("discover request failed with status %d", resp.StatusCode()), nil)
	}

	summaries := make([]media.Summary, 0, len(body.Results))
	for _, result := range body.Results {
		summaries = append(summaries, media.Summary{
			ID:           result.ID,
			Title:        result.Title,
			Name:         result.Name,
			Overview:     result.Overview,
			PosterPath:   result.PosterPath,
			ReleaseDate:  result.ReleaseDate,
			FirstAirDate: result.FirstAirDate,
			GenreIDs:     result.GenreIDs,
		})
	}
	return summaries, nil
}

// MovieDetail fetches the full record for a movie, with trailer candidates
// and watch offers appended in the same response.
func (c *Client) MovieDetail(ctx context.Context, id string) (*media.Detail, error) {
	var body movieDetail
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"api_key":            c.apiKey,
			"append_to_response": "videos,watch/providers",
		}).
		SetResult(&body).
		Get(c.baseURL + "/movie/" + id)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal, "detail request failed", err)
	}
	if resp.IsError() {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			fmt.Sprintf("detail request failed with status %d", resp.StatusCode()), nil)
	}

	detail := &media.Detail{
		ID:          body.ID,
		Title:       body.Title,
		Overview:    body.Overview,
		PosterPath:  body.PosterPath,
		ReleaseDate: body.ReleaseDate,
		Offers:      map[string]media.RegionOffers{},
	}
	for _, genre := range body.Genres {
		detail.Genres = append(detail.Genres, media.Genre{ID: genre.ID, Name: genre.Name})
	}
	for _, video := range body.Videos.Results {
		detail.Videos = append(detail.Videos, media.Video{
			Key:      video.Key,
			Site:     video.Site,
			Type:     video.Type,
			Official: video.Official,
		})
	}
	for region, offers := range body.WatchProviders.Results {
		detail.Offers[region] = media.RegionOffers{
			Buy:      mapOffers(offers.Buy),
			Rent:     mapOffers(offers.Rent),
			Flatrate: mapOffers(offers.Flatrate),
		}
	}
	return detail, nil
}

func mapOffers(offers []watchOffer) []media.DetailOffer {
	mapped := make([]media.DetailOffer, 0, len(offers))
	for _, offer := range offers {
		mapped = append(mapped, media.DetailOffer{
			ProviderID:   offer.ProviderID,
			LogoPath:     offer.LogoPath,
			ProviderName: offer.ProviderName,
		})
	}
	return mapped
}
