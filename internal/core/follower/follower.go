package follower

import (
	"time"

	"github.com/gofrs/uuid"
)

// Follower is a directed edge: FollowerID follows UserID.
type Follower struct {
	ID         uuid.UUID  `gorm:"primary_key;type:char(36)"`
	UserID     uuid.UUID  `gorm:"type:char(36);not null;uniqueIndex:uniq_user_follower"`
	FollowerID uuid.UUID  `gorm:"type:char(36);not null;uniqueIndex:uniq_user_follower"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
	DeletedAt  *time.Time `gorm:"index"`
}
