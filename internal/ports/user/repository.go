package user

import (
	"context"

	"forkful/internal/core/user"
)

// UserRepository is the outbound port for user storage.
type UserRepository interface {
	Create(user *user.User) (*user.User, error)
	FindByUsername(username string) (*user.User, error)
	ListByIDs(ctx context.Context, ids []string) ([]*user.User, error)
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

type UserDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Image    string `json:"image"`
}
