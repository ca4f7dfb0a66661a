package product

import (
	"context"
	"strings"

	"handmade-market/internal/domain"
	productrepo "handmade-market/internal/repository/product"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput mirrors the vendor product form.
type CreateInput struct {
	CategoryID  string `json:"categoryId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents"`
	Currency    string `json:"currency"`
	Stock       int    `json:"stock"`
	ImageURL    string `json:"imageUrl"`
}

func (in CreateInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return domain.Invalid("title required")
	}
	if in.PriceCents <= 0 {
		return domain.Invalid("price must be positive")
	}
	if in.Stock < 0 {
		return domain.Invalid("stock cannot be negative")
	}
	if strings.TrimSpace(in.Currency) == "" {
		return domain.Invalid("currency required")
	}
	return nil
}

// Create registers a vendor's product. New products always start pending and
// stay invisible to customers until an admin approves them.
func (s *Service) Create(ctx context.Context, vendorID string, in CreateInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, domain.Product{
		VendorID:    vendorID,
		CategoryID:  in.CategoryID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		PriceCents:  in.PriceCents,
		Currency:    strings.ToUpper(strings.TrimSpace(in.Currency)),
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
	})
}

// Update rewrites the display fields of a product owned by the vendor.
// Price/title edits do not touch existing cart or order snapshots.
func (s *Service) Update(ctx context.Context, vendorID, productID string, in CreateInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if existing.VendorID != vendorID {
		return nil, domain.ErrForbidden
	}
	existing.CategoryID = in.CategoryID
	existing.Title = strings.TrimSpace(in.Title)
	existing.Description = in.Description
	existing.PriceCents = in.PriceCents
	existing.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	existing.ImageURL = in.ImageURL
	return s.repo.Update(ctx, *existing)
}

func (s *Service) Delete(ctx context.Context, vendorID, productID string) error {
	existing, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if existing.VendorID != vendorID {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, productID)
}

// GetApproved is the public product page lookup; non-approved products are
// indistinguishable from missing ones.
func (s *Service) GetApproved(ctx context.Context, productID string) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.ProductApproved {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *Service) ListApproved(ctx context.Context, categoryID, search string) ([]domain.Product, error) {
	return s.repo.ListApproved(ctx, productrepo.ListFilter{CategoryID: categoryID, Search: search})
}

func (s *Service) ListByVendor(ctx context.Context, vendorID string) ([]domain.Product, error) {
	return s.repo.ListByVendor(ctx, vendorID)
}

func (s *Service) ListPending(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListByStatus(ctx, domain.ProductPending)
}

// Decide applies the admin moderation decision. Only pending products can
// be decided; a decision is final.
func (s *Service) Decide(ctx context.Context, productID string, approve bool) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.ProductPending {
		return nil, domain.ErrInvalidTransition
	}

	status := domain.ProductRejected
	if approve {
		status = domain.ProductApproved
	}
	if err := s.repo.SetStatus(ctx, productID, status); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, productID)
}
