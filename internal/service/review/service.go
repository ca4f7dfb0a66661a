package review

import (
	"context"
	"strings"

	"handmade-market/internal/domain"
	reviewrepo "handmade-market/internal/repository/review"
)

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// Service validates and stores product reviews.
type Service struct {
	repo     reviewrepo.Repository
	products productRepo
}

func New(repo reviewrepo.Repository, products productRepo) *Service {
	return &Service{repo: repo, products: products}
}

// Summary aggregates ratings for a product listing.
type Summary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Create stores the user's review. One review per user per product; a second
// attempt surfaces domain.ErrAlreadyExists.
func (s *Service) Create(ctx context.Context, userID, productID string, rating int, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.Invalid("rating must be between 1 and 5")
	}
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.ProductApproved {
		return nil, domain.ErrNotFound
	}
	return s.repo.Create(ctx, domain.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
	})
}

func (s *Service) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	return s.repo.ListByProduct(ctx, productID)
}

func (s *Service) Summarize(ctx context.Context, productID string) (Summary, error) {
	avg, count, err := s.repo.AverageRating(ctx, productID)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Average: avg, Count: count}, nil
}
