package cartline

import (
	"context"

	"handmade-market/internal/domain"
)

// Snapshot carries the display fields copied onto a cart line when the first
// unit is added.
type Snapshot struct {
	Title      string
	PriceCents int64
	Currency   string
	ImageURL   string
}

// Repository pairs every cart-line mutation with the inverse stock mutation
// in a single transaction, so stock + sum(quantities) is conserved for each
// product no matter which call site triggers the change.
type Repository interface {
	AddOrIncrement(ctx context.Context, userID, productID string, snap Snapshot) (*domain.CartLine, error)
	Decrement(ctx context.Context, userID, productID string) (*domain.CartLine, error)
	Remove(ctx context.Context, userID, productID string) error
	RemoveAll(ctx context.Context, userID string) (int, error)
	Get(ctx context.Context, userID, productID string) (*domain.CartLine, error)
	ListByUser(ctx context.Context, userID string) ([]domain.CartLine, error)
}
