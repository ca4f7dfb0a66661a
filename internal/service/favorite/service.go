package favorite

import (
	"context"
	"errors"

	"handmade-market/internal/domain"
)

type Service struct {
	repo     favRepo
	products productRepo
	cart     cartService
}

type favRepo interface {
	Add(ctx context.Context, fav domain.Favorite) (*domain.Favorite, error)
	Remove(ctx context.Context, userID, productID string) error
	Get(ctx context.Context, userID, productID string) (*domain.Favorite, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type cartService interface {
	AddOrIncrement(ctx context.Context, userID, productID string) (*domain.CartLine, error)
}

func New(repo favRepo, products productRepo, cart cartService) *Service {
	return &Service{repo: repo, products: products, cart: cart}
}

// Toggle bookmarks the product, or removes the bookmark if one exists.
// Returns the favorite when added, nil when removed.
func (s *Service) Toggle(ctx context.Context, userID, productID string) (*domain.Favorite, error) {
	if _, err := s.repo.Get(ctx, userID, productID); err == nil {
		if err := s.repo.Remove(ctx, userID, productID); err != nil {
			return nil, err
		}
		return nil, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Status != domain.ProductApproved {
		return nil, domain.ErrNotFound
	}
	return s.repo.Add(ctx, domain.Favorite{
		UserID:     userID,
		ProductID:  productID,
		Title:      product.Title,
		PriceCents: product.PriceCents,
		Currency:   product.Currency,
		ImageURL:   product.ImageURL,
	})
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Favorite, error) {
	return s.repo.ListByUser(ctx, userID)
}

// MoveToCart runs the same reconciliation as a direct add-to-cart; the
// favorite is removed only after the unit was reserved, so an out-of-stock
// rejection leaves the bookmark in place.
func (s *Service) MoveToCart(ctx context.Context, userID, productID string) (*domain.CartLine, error) {
	if _, err := s.repo.Get(ctx, userID, productID); err != nil {
		return nil, err
	}
	line, err := s.cart.AddOrIncrement(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Remove(ctx, userID, productID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return line, nil
}
