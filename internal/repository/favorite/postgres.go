package favorite

import (
	"context"
	"errors"

	"handmade-market/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const favColumns = `id::text, user_id::text, product_id::text, title, price_cents, currency, COALESCE(image_url, ''), created_at`

func (r *postgresRepo) Add(ctx context.Context, fav domain.Favorite) (*domain.Favorite, error) {
	const q = `
INSERT INTO favorites (user_id, product_id, title, price_cents, currency, image_url)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
RETURNING ` + favColumns + `
`
	var out domain.Favorite
	err := r.pool.QueryRow(ctx, q, fav.UserID, fav.ProductID, fav.Title, fav.PriceCents, fav.Currency, fav.ImageURL).Scan(
		&out.ID,
		&out.UserID,
		&out.ProductID,
		&out.Title,
		&out.PriceCents,
		&out.Currency,
		&out.ImageURL,
		&out.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Remove(ctx context.Context, userID, productID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM favorites WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Get(ctx context.Context, userID, productID string) (*domain.Favorite, error) {
	var out domain.Favorite
	err := r.pool.QueryRow(ctx, `
SELECT `+favColumns+`
FROM favorites
WHERE user_id = $1 AND product_id = $2
`, userID, productID).Scan(
		&out.ID,
		&out.UserID,
		&out.ProductID,
		&out.Title,
		&out.PriceCents,
		&out.Currency,
		&out.ImageURL,
		&out.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+favColumns+`
FROM favorites
WHERE user_id = $1
ORDER BY created_at DESC
`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Favorite
	for rows.Next() {
		var fav domain.Favorite
		if err := rows.Scan(
			&fav.ID,
			&fav.UserID,
			&fav.ProductID,
			&fav.Title,
			&fav.PriceCents,
			&fav.Currency,
			&fav.ImageURL,
			&fav.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, fav)
	}
	return result, rows.Err()
}
