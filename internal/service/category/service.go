package category

import (
	"context"
	"strings"

	"handmade-market/internal/domain"
	categoryrepo "handmade-market/internal/repository/category"
)

// Service manages the flat category list used for product browsing.
type Service struct {
	repo categoryrepo.Repository
}

func New(repo categoryrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Upsert creates a category or refreshes its display name by key.
func (s *Service) Upsert(ctx context.Context, key, name string) (*domain.Category, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	name = strings.TrimSpace(name)
	if key == "" {
		return nil, domain.Invalid("category key required")
	}
	if name == "" {
		return nil, domain.Invalid("category name required")
	}
	return s.repo.Upsert(ctx, domain.Category{Key: key, Name: name})
}

func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}
