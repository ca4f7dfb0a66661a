package domain

import "time"

// Chat is the single conversation between a customer and a vendor.
type Chat struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customerId"`
	VendorID   string    `json:"vendorId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ChatMessage ordering is (created_at, id) ascending.
type ChatMessage struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chatId"`
	SenderID  string    `json:"senderId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}
