package chat

import (
	"context"
	"errors"

	"handmade-market/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const chatColumns = `id::text, customer_id::text, vendor_id::text, created_at`

// Ensure returns the existing conversation for the pair, creating it on
// first contact.
func (r *postgresRepo) Ensure(ctx context.Context, customerID, vendorID string) (*domain.Chat, error) {
	const q = `
INSERT INTO chats (customer_id, vendor_id)
VALUES ($1, $2)
ON CONFLICT (customer_id, vendor_id) DO UPDATE SET customer_id = EXCLUDED.customer_id
RETURNING ` + chatColumns + `
`
	var c domain.Chat
	if err := r.pool.QueryRow(ctx, q, customerID, vendorID).Scan(&c.ID, &c.CustomerID, &c.VendorID, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Chat, error) {
	var c domain.Chat
	err := r.pool.QueryRow(ctx, `SELECT `+chatColumns+` FROM chats WHERE id = $1`, id).Scan(&c.ID, &c.CustomerID, &c.VendorID, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.Chat, error) {
	return r.list(ctx, `SELECT `+chatColumns+` FROM chats WHERE customer_id = $1 ORDER BY created_at DESC`, customerID)
}

func (r *postgresRepo) ListByVendor(ctx context.Context, vendorID string) ([]domain.Chat, error) {
	return r.list(ctx, `SELECT `+chatColumns+` FROM chats WHERE vendor_id = $1 ORDER BY created_at DESC`, vendorID)
}

func (r *postgresRepo) AppendMessage(ctx context.Context, chatID, senderID, body string) (*domain.ChatMessage, error) {
	const q = `
INSERT INTO chat_messages (chat_id, sender_id, body)
VALUES ($1, $2, $3)
RETURNING id::text, chat_id::text, sender_id::text, body, created_at
`
	var m domain.ChatMessage
	if err := r.pool.QueryRow(ctx, q, chatID, senderID, body).Scan(&m.ID, &m.ChatID, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMessages returns messages oldest-first; ties on created_at are broken
// by id so the order is stable.
func (r *postgresRepo) ListMessages(ctx context.Context, chatID string) ([]domain.ChatMessage, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id::text, chat_id::text, sender_id::text, body, created_at
FROM chat_messages
WHERE chat_id = $1
ORDER BY created_at ASC, id ASC
`, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.Chat, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []domain.Chat
	for rows.Next() {
		var c domain.Chat
		if err := rows.Scan(&c.ID, &c.CustomerID, &c.VendorID, &c.CreatedAt); err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}
