package activity

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	TypeRecipeImport  = "recipe_import"
	TypeCookingReview = "cooking_review"
)

// Event is the append-only source of truth for the feed. The ID is a
// snowflake, so it is unique and time-ordered. Only the denormalized
// counters mutate after creation.
type Event struct {
	ID           int64      `gorm:"primary_key;autoIncrement:false"`
	Type         string     `gorm:"type:varchar(32);not null;index"`
	ActorID      uuid.UUID  `gorm:"type:char(36);not null;index"`
	RecipeID     *uuid.UUID `gorm:"type:char(36);index"`
	LikeCount    int64      `gorm:"not null;default:0"`
	CommentCount int64      `gorm:"not null;default:0"`
	CreatedAt    time.Time  `gorm:"index"`
}

// Like is one viewer's like on one event, unique per pair.
type Like struct {
	ID              uuid.UUID `gorm:"primary_key;type:char(36)"`
	ActivityEventID int64     `gorm:"not null;uniqueIndex:uniq_activity_user"`
	UserID          uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_activity_user"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}
