package recipe

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	SourceURL    = "url"
	SourceText   = "text"
	SourceImage  = "image"
	SourceManual = "manual"
)

type Recipe struct {
	ID         uuid.UUID  `gorm:"primary_key;type:char(36)"`
	Name       string     `gorm:"not null"`
	UserID     uuid.UUID  `gorm:"type:char(36);not null;index"`
	SourceType string     `gorm:"type:varchar(16);not null"`
	SourceURL  string     `gorm:"type:text"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime"`
	DeletedAt  *time.Time `gorm:"index"`
}

// Image rows are kept in insertion order; the first one per recipe is
// the cover image shown in the feed.
type Image struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	RecipeID  uuid.UUID `gorm:"type:char(36);not null;index"`
	URL       string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
