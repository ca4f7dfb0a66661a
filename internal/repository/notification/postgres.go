package notification

import (
	"context"

	"handmade-market/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, n domain.Notification) (*domain.Notification, error) {
	const q = `
INSERT INTO notifications (user_id, title, body)
VALUES ($1, $2, NULLIF($3, ''))
RETURNING id::text, user_id::text, title, COALESCE(body, ''), read, created_at
`
	var out domain.Notification
	if err := r.pool.QueryRow(ctx, q, n.UserID, n.Title, n.Body).Scan(
		&out.ID, &out.UserID, &out.Title, &out.Body, &out.Read, &out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id::text, user_id::text, title, COALESCE(body, ''), read, created_at
FROM notifications
WHERE user_id = $1
ORDER BY created_at DESC
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Body, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

func (r *postgresRepo) MarkRead(ctx context.Context, userID, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
