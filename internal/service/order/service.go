package order

import (
	"context"
	"fmt"
	"strings"

	"handmade-market/internal/domain"
	orderrepo "handmade-market/internal/repository/order"
)

type Service struct {
	repo     orderRepo
	notifier notifier
}

type orderRepo interface {
	Place(ctx context.Context, in orderrepo.PlaceInput) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	ListByVendor(ctx context.Context, vendorID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	SetStatus(ctx context.Context, id string, from, to domain.OrderStatus) error
	Cancel(ctx context.Context, id string) error
}

type notifier interface {
	Notify(ctx context.Context, userID, title, body string)
}

func New(repo orderrepo.Repository, notifier notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

// PlaceInput mirrors the checkout form.
type PlaceInput struct {
	PaymentMethod string `json:"paymentMethod"`
	Address       string `json:"address"`
}

// Place creates an order from the user's current cart. The cart is cleared
// without stock restoration: the reserved units are consumed by the order.
func (s *Service) Place(ctx context.Context, userID string, in PlaceInput) (*domain.Order, error) {
	address := strings.TrimSpace(in.Address)
	if address == "" {
		return nil, domain.Invalid("address required")
	}
	method := domain.PaymentMethod(strings.ToLower(strings.TrimSpace(in.PaymentMethod)))
	switch method {
	case domain.PaymentCash, domain.PaymentCard:
	default:
		return nil, domain.Invalid("unsupported payment method")
	}

	order, err := s.repo.Place(ctx, orderrepo.PlaceInput{
		UserID:        userID,
		PaymentMethod: method,
		Address:       address,
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, userID, "Order placed", fmt.Sprintf("Order %s was placed.", order.ID))
	return order, nil
}

// Get returns the order only to its owner; admins pass admin=true.
func (s *Service) Get(ctx context.Context, userID, orderID string, admin bool) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !admin && order.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListForVendor(ctx context.Context, vendorID string) ([]domain.Order, error) {
	return s.repo.ListByVendor(ctx, vendorID)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListAll(ctx)
}

// Advance moves an order one step along pending -> on_the_way -> completed.
// Transitions are forward-only and never touch stock.
func (s *Service) Advance(ctx context.Context, orderID string, to domain.OrderStatus) (*domain.Order, error) {
	var from domain.OrderStatus
	switch to {
	case domain.OrderOnTheWay:
		from = domain.OrderPending
	case domain.OrderCompleted:
		from = domain.OrderOnTheWay
	default:
		return nil, domain.ErrInvalidTransition
	}

	if err := s.repo.SetStatus(ctx, orderID, from, to); err != nil {
		return nil, err
	}
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, order.UserID, "Order updated", fmt.Sprintf("Order %s is now %s.", order.ID, statusLabel(to)))
	return order, nil
}

// Cancel aborts a pending order, restoring each line's quantity to stock.
// Only the owner may cancel (admins pass admin=true); anything past pending
// is final.
func (s *Service) Cancel(ctx context.Context, userID, orderID string, admin bool) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !admin && order.UserID != userID {
		return nil, domain.ErrNotFound
	}

	if err := s.repo.Cancel(ctx, orderID); err != nil {
		return nil, err
	}
	cancelled, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, cancelled.UserID, "Order cancelled", fmt.Sprintf("Order %s was cancelled and its items returned to stock.", cancelled.ID))
	return cancelled, nil
}

func (s *Service) notify(ctx context.Context, userID, title, body string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, userID, title, body)
}

func statusLabel(st domain.OrderStatus) string {
	if st == domain.OrderOnTheWay {
		return "on the way"
	}
	return string(st)
}
