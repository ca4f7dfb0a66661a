package cart

import (
	"context"
	"errors"
	"strings"

	"handmade-market/internal/domain"
	"handmade-market/internal/repository/cartline"
)

// Service is the single entry point for cart/stock reconciliation. Every
// quantity change goes through here and through the paired transactional
// primitives in the cartline repository; no other code path may touch a
// product's stock on behalf of a cart.
type Service struct {
	lines    lineRepo
	products productRepo
}

type lineRepo interface {
	AddOrIncrement(ctx context.Context, userID, productID string, snap cartline.Snapshot) (*domain.CartLine, error)
	Decrement(ctx context.Context, userID, productID string) (*domain.CartLine, error)
	Remove(ctx context.Context, userID, productID string) error
	RemoveAll(ctx context.Context, userID string) (int, error)
	ListByUser(ctx context.Context, userID string) ([]domain.CartLine, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(lines cartline.Repository, products productRepo) *Service {
	return &Service{lines: lines, products: products}
}

// AddOrIncrement reserves one unit of the product into the user's cart.
// Returns domain.ErrOutOfStock with no side effects when stock is exhausted,
// and domain.ErrNotFound for missing or unapproved products.
func (s *Service) AddOrIncrement(ctx context.Context, userID, productID string) (*domain.CartLine, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(productID) == "" {
		return nil, domain.ErrNotFound
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Status != domain.ProductApproved {
		return nil, domain.ErrNotFound
	}

	snap := snapshotFromProduct(*product)
	line, err := s.lines.AddOrIncrement(ctx, userID, productID, snap)
	if errors.Is(err, domain.ErrConcurrentModification) {
		line, err = s.lines.AddOrIncrement(ctx, userID, productID, snap)
	}
	return line, err
}

// Decrement returns one unit to stock. A quantity-1 line is left untouched
// and domain.ErrMinimumQuantity is returned; removal is explicit via
// RemoveLine.
func (s *Service) Decrement(ctx context.Context, userID, productID string) (*domain.CartLine, error) {
	line, err := s.lines.Decrement(ctx, userID, productID)
	if errors.Is(err, domain.ErrConcurrentModification) {
		line, err = s.lines.Decrement(ctx, userID, productID)
	}
	return line, err
}

// RemoveLine deletes the line and restores its full remaining quantity.
// Removing a non-existent line is a NotFound no-op with no stock mutation.
func (s *Service) RemoveLine(ctx context.Context, userID, productID string) error {
	err := s.lines.Remove(ctx, userID, productID)
	if errors.Is(err, domain.ErrConcurrentModification) {
		err = s.lines.Remove(ctx, userID, productID)
	}
	return err
}

// RemoveAllLines empties the cart with per-line stock restoration. Used for
// cart abandonment; order placement clears the cart without restoration
// through the order repository instead.
func (s *Service) RemoveAllLines(ctx context.Context, userID string) (int, error) {
	removed, err := s.lines.RemoveAll(ctx, userID)
	if errors.Is(err, domain.ErrConcurrentModification) {
		removed, err = s.lines.RemoveAll(ctx, userID)
	}
	return removed, err
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.CartLine, error) {
	return s.lines.ListByUser(ctx, userID)
}

// snapshotFromProduct copies the display fields onto the cart line at
// add-time. The copy is intentional: the line keeps showing what the user saw
// when they added it, even if the vendor edits the product later.
func snapshotFromProduct(p domain.Product) cartline.Snapshot {
	return cartline.Snapshot{
		Title:      p.Title,
		PriceCents: p.PriceCents,
		Currency:   p.Currency,
		ImageURL:   p.ImageURL,
	}
}
