package order

import (
	"context"
	"errors"
	"io"
	"log"

	"handmade-market/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const orderColumns = `id::text, user_id::text, total_cents, currency, payment_method, address, status, created_at`

// Place snapshots the user's cart into an order and clears the cart. Stock is
// not restored here: the reserved units are consumed by the order. Cart lines
// are locked for the duration so a concurrent cart mutation cannot slip
// between the snapshot and the delete.
func (r *postgresRepo) Place(ctx context.Context, in PlaceInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
SELECT product_id::text, quantity, title, price_cents, currency, COALESCE(image_url, '')
FROM cart_lines
WHERE user_id = $1
ORDER BY created_at ASC
FOR UPDATE
`, in.UserID)
	if err != nil {
		return nil, err
	}

	var lines []domain.OrderLine
	var totalCents int64
	currency := ""
	for rows.Next() {
		var line domain.OrderLine
		var lineCurrency string
		if err := rows.Scan(&line.ProductID, &line.Quantity, &line.Title, &line.PriceCents, &lineCurrency, &line.ImageURL); err != nil {
			rows.Close()
			return nil, err
		}
		totalCents += line.PriceCents * int64(line.Quantity)
		if currency == "" {
			currency = lineCurrency
		}
		lines = append(lines, line)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}

	var order domain.Order
	err = tx.QueryRow(ctx, `
INSERT INTO orders (user_id, total_cents, currency, payment_method, address, status)
VALUES ($1, $2, $3, $4, $5, 'pending')
RETURNING `+orderColumns+`
`, in.UserID, totalCents, currency, in.PaymentMethod, in.Address).Scan(
		&order.ID,
		&order.UserID,
		&order.TotalCents,
		&order.Currency,
		&order.PaymentMethod,
		&order.Address,
		&order.Status,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	for i := range lines {
		line := &lines[i]
		line.OrderID = order.ID
		err = tx.QueryRow(ctx, `
INSERT INTO order_lines (order_id, product_id, title, price_cents, quantity, image_url)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
RETURNING id::text
`, line.OrderID, line.ProductID, line.Title, line.PriceCents, line.Quantity, line.ImageURL).Scan(&line.ID)
		if err != nil {
			return nil, err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE user_id = $1`, in.UserID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	order.Lines = lines
	r.logger.Printf("order repo: placed id=%s user_id=%s lines=%d total=%d", order.ID, order.UserID, len(lines), totalCents)
	return &order, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var order domain.Order
	err := r.pool.QueryRow(ctx, `
SELECT `+orderColumns+`
FROM orders
WHERE id = $1
`, id).Scan(
		&order.ID,
		&order.UserID,
		&order.TotalCents,
		&order.Currency,
		&order.PaymentMethod,
		&order.Address,
		&order.Status,
		&order.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	lines, err := r.fetchLines(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Lines = lines
	return &order, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`
	return r.list(ctx, q, userID)
}

// ListByVendor returns orders containing at least one line for a product the
// vendor currently owns.
func (r *postgresRepo) ListByVendor(ctx context.Context, vendorID string) ([]domain.Order, error) {
	const q = `
SELECT DISTINCT o.id::text, o.user_id::text, o.total_cents, o.currency, o.payment_method, o.address, o.status, o.created_at
FROM orders o
JOIN order_lines l ON l.order_id = o.id
JOIN products p ON p.id = l.product_id
WHERE p.vendor_id = $1
ORDER BY o.created_at DESC
`
	return r.list(ctx, q, vendorID)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	const q = `
SELECT ` + orderColumns + `
FROM orders
ORDER BY created_at DESC
`
	return r.list(ctx, q)
}

// SetStatus moves the order from one status to another, guarded on the
// current value so two admins cannot race past a transition.
func (r *postgresRepo) SetStatus(ctx context.Context, id string, from, to domain.OrderStatus) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE orders
SET status = $1
WHERE id = $2 AND status = $3
`, to, id, from)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrInvalidTransition
	}
	r.logger.Printf("order repo: status id=%s %s -> %s", id, from, to)
	return nil
}

// Cancel flips a pending order to cancelled and restores each line's
// quantity to its product's stock, all in one transaction. Products deleted
// since placement simply have nothing to restore.
func (r *postgresRepo) Cancel(ctx context.Context, id string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var status domain.OrderStatus
	err = tx.QueryRow(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	if status != domain.OrderPending {
		return domain.ErrInvalidTransition
	}

	if _, err := tx.Exec(ctx, `
UPDATE products p
SET stock = p.stock + l.quantity
FROM order_lines l
WHERE l.order_id = $1 AND p.id = l.product_id
`, id); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `UPDATE orders SET status = 'cancelled' WHERE id = $1`, id); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	r.logger.Printf("order repo: cancelled id=%s", id)
	return nil
}

func (r *postgresRepo) fetchLines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id::text, order_id::text, product_id::text, title, price_cents, quantity, COALESCE(image_url, '')
FROM order_lines
WHERE order_id = $1
`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.Title, &line.PriceCents, &line.Quantity, &line.ImageURL); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.TotalCents,
			&order.Currency,
			&order.PaymentMethod,
			&order.Address,
			&order.Status,
			&order.CreatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}
