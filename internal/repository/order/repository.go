package order

import (
	"context"

	"handmade-market/internal/domain"
)

// PlaceInput captures checkout parameters; the order's lines come from the
// user's current cart inside the placement transaction.
type PlaceInput struct {
	UserID        string
	PaymentMethod domain.PaymentMethod
	Address       string
}

type Repository interface {
	Place(ctx context.Context, in PlaceInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListByVendor(ctx context.Context, vendorID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	SetStatus(ctx context.Context, id string, from, to domain.OrderStatus) error
	Cancel(ctx context.Context, id string) error
}
