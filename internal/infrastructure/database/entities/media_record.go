package entities

import (
	"time"

	"gorm.io/datatypes"
)

// MediaRecord is the persisted normalized media cache entry. Rows are
// written once and never updated.
type MediaRecord struct {
	ID          string         `gorm:"type:varchar(32);primaryKey"`
	ContentType string         `gorm:"type:varchar(8);not null"`
	Title       string         `gorm:"type:varchar(512)"`
	Overview    string         `gorm:"type:text"`
	PosterPath  string         `gorm:"type:varchar(512)"`
	ReleaseDate string         `gorm:"type:varchar(16)"`
	TrailerURL  string         `gorm:"type:varchar(512)"`
	GenreIDs    datatypes.JSON `gorm:"type:jsonb"`
	Providers   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
}

func (MediaRecord) TableName() string {
	return "media_records"
}
