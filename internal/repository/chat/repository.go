package chat

import (
	"context"

	"handmade-market/internal/domain"
)

type Repository interface {
	Ensure(ctx context.Context, customerID, vendorID string) (*domain.Chat, error)
	GetByID(ctx context.Context, id string) (*domain.Chat, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Chat, error)
	ListByVendor(ctx context.Context, vendorID string) ([]domain.Chat, error)
	AppendMessage(ctx context.Context, chatID, senderID, body string) (*domain.ChatMessage, error)
	ListMessages(ctx context.Context, chatID string) ([]domain.ChatMessage, error)
}
