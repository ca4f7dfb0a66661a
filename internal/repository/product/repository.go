package product

import (
	"context"

	"handmade-market/internal/domain"
)

// ListFilter narrows public product listings.
type ListFilter struct {
	CategoryID string
	Search     string
}

type Repository interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	SetStatus(ctx context.Context, id string, status domain.ProductStatus) error
	Delete(ctx context.Context, id string) error
	ListApproved(ctx context.Context, filter ListFilter) ([]domain.Product, error)
	ListByVendor(ctx context.Context, vendorID string) ([]domain.Product, error)
	ListByStatus(ctx context.Context, status domain.ProductStatus) ([]domain.Product, error)
}
