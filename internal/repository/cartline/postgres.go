package cartline

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

const lineColumns = `id::text, user_id::text, product_id::text, quantity, title, price_cents, currency, COALESCE(image_url, ''), created_at`

// AddOrIncrement reserves one unit of stock and adds it to the user's cart
// line. The stock decrement is conditional (stock > 0), so concurrent calls
// can never drive stock negative or lose a decrement; the losing caller sees
// ErrOutOfStock.
func (r *postgresRepo) AddOrIncrement(ctx context.Context, userID, productID string, snap Snapshot) (*domain.CartLine, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, mapPgError(err)
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
UPDATE products
SET stock = stock - 1
WHERE id = $1 AND status = 'approved' AND stock > 0
`, productID)
	if err != nil {
		return nil, mapPgError(err)
	}
	if cmd.RowsAffected() == 0 {
		var stock int
		var status string
		err := tx.QueryRow(ctx, `SELECT stock, status FROM products WHERE id = $1`, productID).Scan(&stock, &status)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if err != nil {
			return nil, mapPgError(err)
		}
		if status != string(domain.ProductApproved) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrOutOfStock
	}

	var line domain.CartLine
	err = tx.QueryRow(ctx, `
INSERT INTO cart_lines (user_id, product_id, quantity, title, price_cents, currency, image_url)
VALUES ($1, $2, 1, $3, $4, $5, NULLIF($6, ''))
ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = cart_lines.quantity + 1
RETURNING `+lineColumns+`
`, userID, productID, snap.Title, snap.PriceCents, snap.Currency, snap.ImageURL).Scan(
		&line.ID,
		&line.UserID,
		&line.ProductID,
		&line.Quantity,
		&line.Title,
		&line.PriceCents,
		&line.Currency,
		&line.ImageURL,
		&line.CreatedAt,
	)
	if err != nil {
		return nil, mapPgError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapPgError(err)
	}
	return &line, nil
}

// Decrement returns one unit from the cart line to stock. A quantity-1 line
// is never decremented to zero; deletion goes through Remove.
func (r *postgresRepo) Decrement(ctx context.Context, userID, productID string) (*domain.CartLine, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, mapPgError(err)
	}
	defer tx.Rollback(ctx)

	var quantity int
	err = tx.QueryRow(ctx, `
SELECT quantity
FROM cart_lines
WHERE user_id = $1 AND product_id = $2
FOR UPDATE
`, userID, productID).Scan(&quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, mapPgError(err)
	}
	if quantity <= 1 {
		return nil, domain.ErrMinimumQuantity
	}

	var line domain.CartLine
	err = tx.QueryRow(ctx, `
UPDATE cart_lines
SET quantity = quantity - 1
WHERE user_id = $1 AND product_id = $2
RETURNING `+lineColumns+`
`, userID, productID).Scan(
		&line.ID,
		&line.UserID,
		&line.ProductID,
		&line.Quantity,
		&line.Title,
		&line.PriceCents,
		&line.Currency,
		&line.ImageURL,
		&line.CreatedAt,
	)
	if err != nil {
		return nil, mapPgError(err)
	}

	if _, err := tx.Exec(ctx, `UPDATE products SET stock = stock + 1 WHERE id = $1`, productID); err != nil {
		return nil, mapPgError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapPgError(err)
	}
	return &line, nil
}

// Remove deletes the line and restores its entire remaining quantity to
// stock. Removing a missing line is a NotFound no-op with no stock mutation.
func (r *postgresRepo) Remove(ctx context.Context, userID, productID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return mapPgError(err)
	}
	defer tx.Rollback(ctx)

	var quantity int
	err = tx.QueryRow(ctx, `
DELETE FROM cart_lines
WHERE user_id = $1 AND product_id = $2
RETURNING quantity
`, userID, productID).Scan(&quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return mapPgError(err)
	}

	if _, err := tx.Exec(ctx, `UPDATE products SET stock = stock + $1 WHERE id = $2`, quantity, productID); err != nil {
		return mapPgError(err)
	}

	return mapPgError(tx.Commit(ctx))
}

// RemoveAll applies Remove semantics to every line the user owns: each
// deleted line's quantity goes back to its product's stock. Returns the
// number of removed lines.
func (r *postgresRepo) RemoveAll(ctx context.Context, userID string) (int, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, mapPgError(err)
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
WITH removed AS (
	DELETE FROM cart_lines
	WHERE user_id = $1
	RETURNING product_id, quantity
)
UPDATE products p
SET stock = p.stock + r.quantity
FROM removed r
WHERE p.id = r.product_id
`, userID)
	if err != nil {
		return 0, mapPgError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, mapPgError(err)
	}
	return int(cmd.RowsAffected()), nil
}

func (r *postgresRepo) Get(ctx context.Context, userID, productID string) (*domain.CartLine, error) {
	var line domain.CartLine
	err := r.pool.QueryRow(ctx, `
SELECT `+lineColumns+`
FROM cart_lines
WHERE user_id = $1 AND product_id = $2
`, userID, productID).Scan(
		&line.ID,
		&line.UserID,
		&line.ProductID,
		&line.Quantity,
		&line.Title,
		&line.PriceCents,
		&line.Currency,
		&line.ImageURL,
		&line.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, mapPgError(err)
	}
	return &line, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.CartLine, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+lineColumns+`
FROM cart_lines
WHERE user_id = $1
ORDER BY created_at ASC
`, userID)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(
			&line.ID,
			&line.UserID,
			&line.ProductID,
			&line.Quantity,
			&line.Title,
			&line.PriceCents,
			&line.Currency,
			&line.ImageURL,
			&line.CreatedAt,
		); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err)
	}
	return lines, nil
}

// mapPgError translates retryable Postgres failures (serialization conflict,
// deadlock) into domain.ErrConcurrentModification.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return domain.ErrConcurrentModification
		}
	}
	return err
}
