package favorite

import (
	"context"

	"handmade-market/internal/domain"
)

type Repository interface {
	Add(ctx context.Context, fav domain.Favorite) (*domain.Favorite, error)
	Remove(ctx context.Context, userID, productID string) error
	Get(ctx context.Context, userID, productID string) (*domain.Favorite, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error)
}
