package principal

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"swipehub/session-api/internal/utils/platformerrors"
)

const keyPrefix = "principal:"

// Repository tracks live principals behind issued tokens. A token only
// verifies while its principal record exists; deleting it on leave is the
// revocation mechanism.
type Repository struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRepository(client redis.UniversalClient, ttl time.Duration) *Repository {
	return &Repository{client: client, ttl: ttl}
}

func (r *Repository) Put(ctx context.Context, subject string) error {
	if err := r.client.Set(ctx, keyPrefix+subject, "1", r.ttl).Err(); err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to store principal", err)
	}
	return nil
}

func (r *Repository) Exists(ctx context.Context, subject string) (bool, error) {
	n, err := r.client.Exists(ctx, keyPrefix+subject).Result()
	if err != nil {
		return false, platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to check principal", err)
	}
	return n > 0, nil
}

func (r *Repository) Delete(ctx context.Context, subject string) error {
	if err := r.client.Del(ctx, keyPrefix+subject).Err(); err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to delete principal", err)
	}
	return nil
}
