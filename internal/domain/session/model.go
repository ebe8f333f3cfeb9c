package session

import (
	"encoding/json"
	"fmt"
	"time"
)

// ContentType selects which upstream catalog a session browses.
type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeSeries ContentType = "series"
)

// Logical sort orders a creator can pick. Mapping to provider sort keys
// happens in the pagination engine.
const (
	OrderPopularity = "Popularity"
	OrderRelease    = "Release"
	OrderRevenue    = "Revenue"
)

// Config is the immutable part of a session, fixed at creation.
type Config struct {
	Type       ContentType `json:"type"`
	Categories string      `json:"categories"`
	Languages  string      `json:"languages"`
	Platform   string      `json:"platform"`
	Region     string      `json:"region"`
	Order      string      `json:"order"`
	Creator    string      `json:"creator"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// MemberState tracks one username inside a session.
type MemberState struct {
	JoinedAt time.Time         `json:"joinedAt"`
	IsActive bool              `json:"isActive"`
	Swipes   map[string]string `json:"swipes"`
}

// Activity is the mutable part of a session.
type Activity struct {
	IsValid bool                   `json:"isValid"`
	Deck    Deck                   `json:"mediaOrder"`
	Members map[string]MemberState `json:"users"`
}

// Session is the aggregate stored under a 6-character code. Version backs
// the store's optimistic concurrency check; it never leaves the server.
type Session struct {
	ID       string   `json:"-"`
	Config   Config   `json:"sessionInfo"`
	Activity Activity `json:"sessionActivity"`
	Version  int64    `json:"-"`
}

// MaxMembers caps how many distinct usernames a session ever admits.
const MaxMembers = 8

// Claims are the verified identity facts bound into an issued token.
// Downstream operations trust these over anything in a request body.
type Claims struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
	IsCreator bool   `json:"isCreator"`
}

// Subject is the composite principal string backing an issued token.
func (c Claims) Subject() string {
	return fmt.Sprintf("%s|%s|%t", c.SessionID, c.UserID, c.IsCreator)
}

// DeckSentinel is the wire value marking the end of a deck. Clients render
// it as the "no more content" card.
const DeckSentinel = "null"

// Deck is the ordered sequence of media ids a session has discovered.
// Internally the sentinel is a flag, not a list element, so ids and the
// end-of-deck marker cannot be confused; the wire shape stays a flat list
// with the sentinel as its final entry.
type Deck struct {
	Items []string
	Ended bool
}

// Len reports how many media ids the deck holds, excluding the sentinel.
func (d Deck) Len() int {
	return len(d.Items)
}

// Contains reports whether an id is already in the deck.
func (d Deck) Contains(id string) bool {
	for _, item := range d.Items {
		if item == id {
			return true
		}
	}
	return false
}

// MarshalJSON renders the deck as a flat id list with a single trailing
// sentinel once the deck has ended.
func (d Deck) MarshalJSON() ([]byte, error) {
	items := d.Items
	if d.Ended {
		items = append(append([]string{}, d.Items...), DeckSentinel)
	}
	if items == nil {
		items = []string{}
	}
	return json.Marshal(items)
}

// UnmarshalJSON restores a deck from its wire shape, folding any sentinel
// entry back into the Ended flag.
func (d *Deck) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	d.Items = d.Items[:0]
	d.Ended = false
	for _, item := range items {
		if item == DeckSentinel {
			d.Ended = true
			continue
		}
		d.Items = append(d.Items, item)
	}
	return nil
}
