package user

import (
	"time"

	"github.com/gofrs/uuid"
)

type User struct {
	ID        uuid.UUID  `gorm:"primary_key;type:char(36)"`
	Name      string     `gorm:"not null"`
	Username  string     `gorm:"unique;not null"`
	Image     string     `gorm:"type:text"`
	Password  string     `gorm:"not null"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
	DeletedAt *time.Time `gorm:"index"`
}
