package review

import (
	"context"
	"errors"

	"handmade-market/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, rev domain.Review) (*domain.Review, error) {
	const q = `
INSERT INTO reviews (user_id, product_id, rating, comment)
VALUES ($1, $2, $3, NULLIF($4, ''))
RETURNING id::text, user_id::text, product_id::text, rating, COALESCE(comment, ''), created_at
`
	var out domain.Review
	err := r.pool.QueryRow(ctx, q, rev.UserID, rev.ProductID, rev.Rating, rev.Comment).Scan(
		&out.ID, &out.UserID, &out.ProductID, &out.Rating, &out.Comment, &out.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, domain.ErrAlreadyExists
			case "23503":
				return nil, domain.ErrNotFound
			}
		}
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id::text, user_id::text, product_id::text, rating, COALESCE(comment, ''), created_at
FROM reviews
WHERE product_id = $1
ORDER BY created_at DESC
`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Review
	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(&rev.ID, &rev.UserID, &rev.ProductID, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, rev)
	}
	return result, rows.Err()
}

func (r *postgresRepo) AverageRating(ctx context.Context, productID string) (float64, int, error) {
	var avg float64
	var count int
	err := r.pool.QueryRow(ctx, `
SELECT COALESCE(AVG(rating), 0), COUNT(*)
FROM reviews
WHERE product_id = $1
`, productID).Scan(&avg, &count)
	if err != nil {
		return 0, 0, err
	}
	return avg, count, nil
}
