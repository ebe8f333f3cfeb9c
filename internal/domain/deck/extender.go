package deck

import (
	"context"

	"github.com/rs/zerolog"

	"swipehub/session-api/internal/domain/media"
	"swipehub/session-api/internal/domain/session"
)

// MaxDeckSize caps how many media ids a session ever accumulates,
// excluding the sentinel.
const MaxDeckSize = 300

// shortPageThreshold: a page contributing fewer new unique ids than this
// marks the end of the deck.
const shortPageThreshold = 20

// Source produces one page of deduplicated-at-cache media ids.
type Source interface {
	Discover(ctx context.Context, query media.DiscoverQuery) ([]string, error)
}

// Extender converts a session's configuration and current deck into the
// next provider query and appends freshly discovered ids.
type Extender struct {
	source Source
	log    zerolog.Logger
}

func NewExtender(source Source, log zerolog.Logger) *Extender {
	return &Extender{
		source: source,
		log:    log.With().Str("component", "deck-extender").Logger(),
	}
}

// Extend appends the next page of ids to the deck. Once the deck has ended
// the call is an idempotent no-op; once the cap is reached the deck ends
// without a provider call.
func (e *Extender) Extend(ctx context.Context, cfg session.Config, current session.Deck) (session.Deck, error) {
	if current.Ended {
		return current, nil
	}
	if current.Len() >= MaxDeckSize {
		current.Ended = true
		return current, nil
	}

	query := buildQuery(cfg, PageFor(current.Len()))
	ids, err := e.source.Discover(ctx, query)
	if err != nil {
		return current, err
	}

	added := 0
	for _, id := range ids {
		if current.Contains(id) {
			continue
		}
		if current.Len() >= MaxDeckSize {
			current.Ended = true
			break
		}
		current.Items = append(current.Items, id)
		added++
	}
	if added < shortPageThreshold {
		current.Ended = true
	}

	e.log.Debug().
		Int("page", query.Page).
		Int("added", added).
		Int("deck_len", current.Len()).
		Bool("ended", current.Ended).
		Msg("deck extended")
	return current, nil
}

// PageFor computes the provider page for a deck of the given length: the
// 10-wide band, rounded up to the next even number, floored at the
// provider's minimum page of 1.
func PageFor(deckLen int) int {
	band := (deckLen + 9) / 10
	page := band
	if band%2 != 0 {
		page = band + 1
	}
	if page < 1 {
		page = 1
	}
	return page
}

func buildQuery(cfg session.Config, page int) media.DiscoverQuery {
	contentType := media.ContentTypeTV
	if cfg.Type == session.ContentTypeMovie {
		contentType = media.ContentTypeMovie
	}
	return media.DiscoverQuery{
		Type:      contentType,
		Genres:    cfg.Categories,
		Languages: cfg.Languages,
		Platform:  cfg.Platform,
		Region:    cfg.Region,
		SortBy:    ProviderSort(cfg.Type, cfg.Order),
		Page:      page,
	}
}

// ProviderSort maps a session's logical order to the provider sort key for
// the content type. The series catalog has no revenue sort, so Revenue
// falls back to popularity there. Unknown orders pass through unchanged.
func ProviderSort(contentType session.ContentType, order string) string {
	if contentType == session.ContentTypeMovie {
		switch order {
		case session.OrderPopularity:
			return "popularity.desc"
		case session.OrderRelease:
			return "primary_release_date.desc"
		case session.OrderRevenue:
			return "revenue.desc"
		}
		return order
	}
	switch order {
	case session.OrderPopularity:
		return "popularity.desc"
	case session.OrderRelease:
		return "first_air_date.desc"
	case session.OrderRevenue:
		return "popularity.desc"
	}
	return order
}
