package chat

import (
	"context"
	"strings"

	"handmade-market/internal/domain"
	chatrepo "handmade-market/internal/repository/chat"
)

type vendorRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Vendor, error)
	GetByUser(ctx context.Context, userID string) (*domain.Vendor, error)
}

// Service manages customer-to-vendor conversations. Each (customer, vendor)
// pair has at most one chat.
type Service struct {
	repo    chatrepo.Repository
	vendors vendorRepo
}

func New(repo chatrepo.Repository, vendors vendorRepo) *Service {
	return &Service{repo: repo, vendors: vendors}
}

// Start opens (or returns the existing) chat between the customer and the
// vendor's shop.
func (s *Service) Start(ctx context.Context, customerID, vendorID string) (*domain.Chat, error) {
	if strings.TrimSpace(customerID) == "" || strings.TrimSpace(vendorID) == "" {
		return nil, domain.Invalid("customer and vendor ids required")
	}
	v, err := s.vendors.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if v.Status != domain.VendorApproved {
		return nil, domain.ErrNotFound
	}
	if v.UserID == customerID {
		return nil, domain.Invalid("cannot open a chat with your own shop")
	}
	return s.repo.Ensure(ctx, customerID, vendorID)
}

// Send appends a message after checking the sender participates in the chat.
func (s *Service) Send(ctx context.Context, chatID, senderID, body string) (*domain.ChatMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, domain.Invalid("message body required")
	}
	c, err := s.repo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, c, senderID); err != nil {
		return nil, err
	}
	return s.repo.AppendMessage(ctx, chatID, senderID, body)
}

// Messages returns the chat history oldest first.
func (s *Service) Messages(ctx context.Context, chatID, userID string) ([]domain.ChatMessage, error) {
	c, err := s.repo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, c, userID); err != nil {
		return nil, err
	}
	return s.repo.ListMessages(ctx, chatID)
}

// ListForCustomer returns chats the user opened as a customer.
func (s *Service) ListForCustomer(ctx context.Context, userID string) ([]domain.Chat, error) {
	return s.repo.ListByCustomer(ctx, userID)
}

// ListForVendor returns chats addressed to the user's shop.
func (s *Service) ListForVendor(ctx context.Context, userID string) ([]domain.Chat, error) {
	v, err := s.vendors.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByVendor(ctx, v.ID)
}

// authorize permits the customer and the vendor's owning user, nobody else.
func (s *Service) authorize(ctx context.Context, c *domain.Chat, userID string) error {
	if c.CustomerID == userID {
		return nil
	}
	v, err := s.vendors.GetByID(ctx, c.VendorID)
	if err != nil {
		return err
	}
	if v.UserID != userID {
		return domain.ErrForbidden
	}
	return nil
}
