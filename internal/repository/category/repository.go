package category

import (
	"context"

	"handmade-market/internal/domain"
)

type Repository interface {
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}
