package auth

import (
	"context"

	"clubfloor/internal/domain"
)

// UserStore covers only the methods the auth service uses.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}
