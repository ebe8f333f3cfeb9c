package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/redis/go-redis/v9"

	domain "swipehub/session-api/internal/domain/session"
	"swipehub/session-api/internal/utils/platformerrors"
)

const (
	keyPrefix  = "session:"
	lockPrefix = "session-lock:"
)

// record is the persisted wire shape of a session.
type record struct {
	SessionInfo     domain.Config   `json:"sessionInfo"`
	SessionActivity domain.Activity `json:"sessionActivity"`
	Version         int64           `json:"version"`
}

// Repository stores sessions in Redis. Mutations run under a redsync mutex
// scoped to the session key, giving a single-writer discipline that a bare
// read-then-write would not: concurrent joins or deck extensions against
// the same session serialize instead of losing updates.
type Repository struct {
	client     redis.UniversalClient
	locks      *redsync.Redsync
	ttl        time.Duration
	lockExpiry time.Duration
}

func NewRepository(client redis.UniversalClient, locks *redsync.Redsync, ttl, lockExpiry time.Duration) *Repository {
	return &Repository{
		client:     client,
		locks:      locks,
		ttl:        ttl,
		lockExpiry: lockExpiry,
	}
}

func (r *Repository) key(id string) string {
	return keyPrefix + id
}

func (r *Repository) Create(ctx context.Context, sess *domain.Session) error {
	data, err := json.Marshal(record{
		SessionInfo:     sess.Config,
		SessionActivity: sess.Activity,
		Version:         sess.Version,
	})
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to encode session", err)
	}

	ok, err := r.client.SetNX(ctx, r.key(sess.ID), data, r.ttl).Result()
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to store session", err)
	}
	if !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "session code already taken", nil)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (*domain.Session, error) {
	val, err := r.client.Get(ctx, r.key(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to load session", err)
	}
	return decode(ctx, id, []byte(val))
}

func (r *Repository) Exists(ctx context.Context, id string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(id)).Result()
	if err != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to check session", err)
	}
	return n > 0, nil
}

// Update applies fn to the session under its writer lock and persists the
// result with a bumped version. A missing record yields NOT_FOUND.
func (r *Repository) Update(ctx context.Context, id string, fn func(*domain.Session) error) error {
	mutex := r.locks.NewMutex(lockPrefix+id, redsync.WithExpiry(r.lockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to lock session", err)
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	val, err := r.client.Get(ctx, r.key(id)).Result()
	if err == redis.Nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound, "session does not exist", nil)
	}
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to load session", err)
	}

	sess, err := decode(ctx, id, []byte(val))
	if err != nil {
		return err
	}

	if err := fn(sess); err != nil {
		return err
	}

	sess.Version++
	data, err := json.Marshal(record{
		SessionInfo:     sess.Config,
		SessionActivity: sess.Activity,
		Version:         sess.Version,
	})
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to encode session", err)
	}

	if err := r.client.Set(ctx, r.key(id), data, r.ttl).Err(); err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to store session", err)
	}
	return nil
}

func decode(ctx context.Context, id string, data []byte) (*domain.Session, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to decode session", err)
	}
	return &domain.Session{
		ID:       id,
		Config:   rec.SessionInfo,
		Activity: rec.SessionActivity,
		Version:  rec.Version,
	}, nil
}
