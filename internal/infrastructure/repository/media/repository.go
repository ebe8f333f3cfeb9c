package media

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "swipehub/session-api/internal/domain/media"
	"swipehub/session-api/internal/infrastructure/database/entities"
	"swipehub/session-api/internal/utils/platformerrors"
)

// Repository handles media record persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Record, error) {
	var entity entities.MediaRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to get media record by id",
			err,
		)
	}
	record, err := mapEntity(entity)
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to decode media record",
			err,
		)
	}
	return record, nil
}

// Create inserts a record, ignoring a concurrent insert of the same id.
// Both writers derive the identical row, so whichever lands first wins.
func (r *Repository) Create(ctx context.Context, record *domain.Record) error {
	genreIDs, err := json.Marshal(record.GenreIDs)
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to encode genre ids", err)
	}
	providers, err := json.Marshal(record.Providers)
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError, "failed to encode providers", err)
	}

	entity := entities.MediaRecord{
		ID:          record.ID,
		ContentType: string(record.Type),
		Title:       record.Title,
		Overview:    record.Overview,
		PosterPath:  record.PosterPath,
		ReleaseDate: record.ReleaseDate,
		TrailerURL:  record.TrailerURL,
		GenreIDs:    datatypes.JSON(genreIDs),
		Providers:   datatypes.JSON(providers),
	}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity).Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create media record",
			err,
		)
	}
	return nil
}

func mapEntity(entity entities.MediaRecord) (*domain.Record, error) {
	record := &domain.Record{
		ID:          entity.ID,
		Type:        domain.ContentType(entity.ContentType),
		Title:       entity.Title,
		Overview:    entity.Overview,
		PosterPath:  entity.PosterPath,
		ReleaseDate: entity.ReleaseDate,
		TrailerURL:  entity.TrailerURL,
	}
	if len(entity.GenreIDs) > 0 {
		if err := json.Unmarshal(entity.GenreIDs, &record.GenreIDs); err != nil {
			return nil, err
		}
	}
	if len(entity.Providers) > 0 {
		if err := json.Unmarshal(entity.Providers, &record.Providers); err != nil {
			return nil, err
		}
	}
	return record, nil
}
