package review

import (
	"context"

	"handmade-market/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, rev domain.Review) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)
	AverageRating(ctx context.Context, productID string) (float64, int, error)
}
