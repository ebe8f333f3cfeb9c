package session

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"swipehub/session-api/internal/utils/platformerrors"
	"swipehub/session-api/internal/utils/sessioncode"
)

// Store is the authoritative session record keeper. Update runs its
// callback under a single-writer discipline for the session key, so
// concurrent mutations of the same record cannot lose writes. Update must
// return a NOT_FOUND error when no record exists under the id.
type Store interface {
	Create(ctx context.Context, sess *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Exists(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, id string, fn func(*Session) error) error
}

// TokenIssuer mints tokens binding claims to a principal and revokes the
// principal when a member leaves.
type TokenIssuer interface {
	Issue(ctx context.Context, claims Claims) (string, error)
	Revoke(ctx context.Context, claims Claims) error
}

// DeckExtender appends the next page of discovered media ids to a deck.
type DeckExtender interface {
	Extend(ctx context.Context, cfg Config, current Deck) (Deck, error)
}

// Notifier raises side-channel alerts for faults that need human eyes.
type Notifier interface {
	Alert(ctx context.Context, caller string, err error)
}

// Service orchestrates the session lifecycle.
type Service struct {
	store       Store
	issuer      TokenIssuer
	deck        DeckExtender
	notifier    Notifier
	log         zerolog.Logger
	seedTimeout time.Duration
}

func NewService(store Store, issuer TokenIssuer, deck DeckExtender, notifier Notifier, seedTimeout time.Duration, log zerolog.Logger) *Service {
	return &Service{
		store:       store,
		issuer:      issuer,
		deck:        deck,
		notifier:    notifier,
		log:         log.With().Str("component", "session-service").Logger(),
		seedTimeout: seedTimeout,
	}
}

// CreateResult is returned to the creator of a new session.
type CreateResult struct {
	Token     string
	SessionID string
	UserID    string
}

// JoinResult is returned to a member entering an existing session.
type JoinResult struct {
	Token     string
	IsCreator bool
}

// Create registers a new session with the caller as its sole active member
// and kicks off the initial deck seed in the background.
func (s *Service) Create(ctx context.Context, username string, cfg Config) (*CreateResult, error) {
	if !ValidUsername(username) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "username is not valid", nil)
	}

	code, err := sessioncode.Generate(ctx, s.store)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "generate session code")
	}

	now := time.Now().UTC()
	cfg.Creator = username
	cfg.CreatedAt = now

	sess := &Session{
		ID:     code,
		Config: cfg,
		Activity: Activity{
			IsValid: true,
			Members: map[string]MemberState{
				username: {
					JoinedAt: now,
					IsActive: true,
					Swipes:   map[string]string{},
				},
			},
		},
	}

	if err := s.store.Create(ctx, sess); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "persist session")
	}

	token, err := s.issuer.Issue(ctx, Claims{SessionID: code, UserID: username, IsCreator: true})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "issue creator token")
	}

	// The first page is seeded as a side effect of creation, the way a
	// record-created trigger would fire. Creation does not wait for it.
	go func() {
		seedCtx, cancel := context.WithTimeout(context.Background(), s.seedTimeout)
		defer cancel()
		if err := s.SeedDeck(seedCtx, code); err != nil {
			s.log.Error().Err(err).Str("session_id", code).Msg("initial deck seed failed")
			s.notifier.Alert(seedCtx, "SeedDeck", err)
		}
	}()

	return &CreateResult{Token: token, SessionID: code, UserID: username}, nil
}

// Join admits a username into an existing session, re-admitting known
// members regardless of the cap.
func (s *Service) Join(ctx context.Context, username, sessionID string) (*JoinResult, error) {
	if !ValidUsername(username) || !ValidSessionCode(sessionID) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain,
			platformerrors.ErrorTypeValidation, "username or session id is not valid", nil)
	}

	var isCreator bool
	err := s.store.Update(ctx, sessionID, func(sess *Session) error {
		if !sess.Activity.IsValid {
			return platformerrors.NewError(ctx, platformerrors.LayerDomain,
				platformerrors.ErrorTypeSessionEnded, "session has ended", nil)
		}

		member, known := sess.Activity.Members[username]
		if !known && len(sess.Activity.Members) >= MaxMembers {
			return platformerrors.NewError(ctx, platformerrors.LayerDomain,
				platformerrors.ErrorTypeSessionFull, "session is full", nil)
		}

		isCreator = sess.Config.Creator == username

		if member.Swipes == nil {
			member.Swipes = map[string]string{}
		}
		member.JoinedAt = time.Now().UTC()
		member.IsActive = true
		if sess.Activity.Members == nil {
			sess.Activity.Members = map[string]MemberState{}
		}
		sess.Activity.Members[username] = member
		return nil
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "join session")
	}

	token, err := s.issuer.Issue(ctx, Claims{SessionID: sessionID, UserID: username, IsCreator: isCreator})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "issue member token")
	}

	return &JoinResult{Token: token, IsCreator: isCreator}, nil
}

// Leave ends the session for everyone when the creator goes, or deactivates
// a single member otherwise. The caller's principal is revoked either way.
func (s *Service) Leave(ctx context.Context, claims Claims) error {
	err := s.store.Update(ctx, claims.SessionID, func(sess *Session) error {
		if claims.IsCreator {
			sess.Activity.IsValid = false
			return nil
		}
		member, ok := sess.Activity.Members[claims.UserID]
		if !ok {
			return nil
		}
		member.IsActive = false
		sess.Activity.Members[claims.UserID] = member
		return nil
	})
	if err != nil && !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "leave session")
	}

	if err := s.issuer.Revoke(ctx, claims); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "revoke principal")
	}
	return nil
}

// MoreCards extends the session deck by one provider page. The extension
// runs inside the store's per-session writer lock so racing calls cannot
// clobber each other's appends.
func (s *Service) MoreCards(ctx context.Context, claims Claims) error {
	err := s.store.Update(ctx, claims.SessionID, func(sess *Session) error {
		if !sess.Activity.IsValid {
			return platformerrors.NewError(ctx, platformerrors.LayerDomain,
				platformerrors.ErrorTypeSessionEnded, "session has ended", nil)
		}
		deck, err := s.deck.Extend(ctx, sess.Config, sess.Activity.Deck)
		if err != nil {
			return err
		}
		sess.Activity.Deck = deck
		return nil
	})
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "extend deck")
	}
	return nil
}

// SeedDeck populates the first page for a freshly created session.
func (s *Service) SeedDeck(ctx context.Context, sessionID string) error {
	err := s.store.Update(ctx, sessionID, func(sess *Session) error {
		deck, err := s.deck.Extend(ctx, sess.Config, sess.Activity.Deck)
		if err != nil {
			return err
		}
		sess.Activity.Deck = deck
		return nil
	})
	if err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "seed deck")
	}
	return nil
}
