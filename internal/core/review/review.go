package review

import (
	"time"

	"github.com/gofrs/uuid"
)

// Review is keyed by the activity event that announced it: every
// cooking_review event has exactly one review row.
type Review struct {
	ID              uuid.UUID  `gorm:"primary_key;type:char(36)"`
	ActivityEventID int64      `gorm:"not null;uniqueIndex"`
	RecipeID        uuid.UUID  `gorm:"type:char(36);not null;index"`
	UserID          uuid.UUID  `gorm:"type:char(36);not null;index"`
	Rating          int        `gorm:"not null"`
	Text            string     `gorm:"type:text"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
	DeletedAt       *time.Time `gorm:"index"`
}

type Image struct {
	ID       uuid.UUID `gorm:"primary_key;type:char(36)"`
	ReviewID uuid.UUID `gorm:"type:char(36);not null;index"`
	URL      string    `gorm:"type:text;not null"`
	Index    int       `gorm:"column:idx;not null"`
}
