package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"handmade-market/internal/domain"
)

type stubChatRepo struct {
	chats    map[string]*domain.Chat
	messages map[string][]domain.ChatMessage
	nextID   int
}

func newStubChatRepo() *stubChatRepo {
	return &stubChatRepo{
		chats:    map[string]*domain.Chat{},
		messages: map[string][]domain.ChatMessage{},
	}
}

func (r *stubChatRepo) Ensure(_ context.Context, customerID, vendorID string) (*domain.Chat, error) {
	for _, c := range r.chats {
		if c.CustomerID == customerID && c.VendorID == vendorID {
			return c, nil
		}
	}
	r.nextID++
	c := &domain.Chat{
		ID:         fmt.Sprintf("chat-%d", r.nextID),
		CustomerID: customerID,
		VendorID:   vendorID,
		CreatedAt:  time.Now(),
	}
	r.chats[c.ID] = c
	return c, nil
}

func (r *stubChatRepo) GetByID(_ context.Context, id string) (*domain.Chat, error) {
	c, ok := r.chats[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (r *stubChatRepo) ListByCustomer(_ context.Context, customerID string) ([]domain.Chat, error) {
	var out []domain.Chat
	for _, c := range r.chats {
		if c.CustomerID == customerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubChatRepo) ListByVendor(_ context.Context, vendorID string) ([]domain.Chat, error) {
	var out []domain.Chat
	for _, c := range r.chats {
		if c.VendorID == vendorID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubChatRepo) AppendMessage(_ context.Context, chatID, senderID, body string) (*domain.ChatMessage, error) {
	r.nextID++
	m := domain.ChatMessage{
		ID:        fmt.Sprintf("msg-%d", r.nextID),
		ChatID:    chatID,
		SenderID:  senderID,
		Body:      body,
		CreatedAt: time.Now(),
	}
	r.messages[chatID] = append(r.messages[chatID], m)
	return &m, nil
}

func (r *stubChatRepo) ListMessages(_ context.Context, chatID string) ([]domain.ChatMessage, error) {
	return r.messages[chatID], nil
}

type stubVendorRepo struct {
	vendors map[string]*domain.Vendor
}

func (r *stubVendorRepo) GetByID(_ context.Context, id string) (*domain.Vendor, error) {
	v, ok := r.vendors[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (r *stubVendorRepo) GetByUser(_ context.Context, userID string) (*domain.Vendor, error) {
	for _, v := range r.vendors {
		if v.UserID == userID {
			return v, nil
		}
	}
	return nil, domain.ErrNotFound
}

func approvedVendor() *stubVendorRepo {
	return &stubVendorRepo{vendors: map[string]*domain.Vendor{
		"v1": {ID: "v1", UserID: "owner", ShopName: "Clay & Thread", Status: domain.VendorApproved},
	}}
}

func TestStartReturnsSameChatForPair(t *testing.T) {
	svc := New(newStubChatRepo(), approvedVendor())

	first, err := svc.Start(context.Background(), "cust", "v1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	second, err := svc.Start(context.Background(), "cust", "v1")
	if err != nil {
		t.Fatalf("start again: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("expected the same chat, got %q and %q", first.ID, second.ID)
	}
}

func TestStartRejectsUnapprovedVendor(t *testing.T) {
	vendors := &stubVendorRepo{vendors: map[string]*domain.Vendor{
		"v1": {ID: "v1", UserID: "owner", Status: domain.VendorPending},
	}}
	svc := New(newStubChatRepo(), vendors)

	if _, err := svc.Start(context.Background(), "cust", "v1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStartRejectsOwnShop(t *testing.T) {
	svc := New(newStubChatRepo(), approvedVendor())

	if _, err := svc.Start(context.Background(), "owner", "v1"); err == nil {
		t.Error("expected error opening chat with own shop")
	}
}

func TestSendAllowsBothParticipantsOnly(t *testing.T) {
	repo := newStubChatRepo()
	svc := New(repo, approvedVendor())

	c, err := svc.Start(context.Background(), "cust", "v1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := svc.Send(context.Background(), c.ID, "cust", "is this mug dishwasher safe?"); err != nil {
		t.Errorf("customer send: %v", err)
	}
	if _, err := svc.Send(context.Background(), c.ID, "owner", "hand wash only"); err != nil {
		t.Errorf("vendor owner send: %v", err)
	}
	if _, err := svc.Send(context.Background(), c.ID, "stranger", "hello"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("stranger send: expected ErrForbidden, got %v", err)
	}

	msgs, err := svc.Messages(context.Background(), c.ID, "cust")
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
}

func TestSendRejectsEmptyBody(t *testing.T) {
	repo := newStubChatRepo()
	svc := New(repo, approvedVendor())

	c, err := svc.Start(context.Background(), "cust", "v1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.Send(context.Background(), c.ID, "cust", "   "); err == nil {
		t.Error("expected error for blank message")
	}
}

func TestMessagesHiddenFromNonParticipants(t *testing.T) {
	repo := newStubChatRepo()
	svc := New(repo, approvedVendor())

	c, err := svc.Start(context.Background(), "cust", "v1")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.Messages(context.Background(), c.ID, "stranger"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestListForVendorResolvesShopByOwner(t *testing.T) {
	repo := newStubChatRepo()
	svc := New(repo, approvedVendor())

	if _, err := svc.Start(context.Background(), "cust", "v1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	chats, err := svc.ListForVendor(context.Background(), "owner")
	if err != nil {
		t.Fatalf("list for vendor: %v", err)
	}
	if len(chats) != 1 {
		t.Errorf("expected 1 chat, got %d", len(chats))
	}
}
