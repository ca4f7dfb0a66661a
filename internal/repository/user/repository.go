package user

import (
	"context"

	"handmade-market/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetRole(ctx context.Context, id string, role domain.Role) error
	List(ctx context.Context) ([]domain.User, error)
}
