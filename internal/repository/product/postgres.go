package product

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

const productColumns = `id::text, vendor_id::text, COALESCE(category_id::text, ''), title, COALESCE(description, ''), price_cents, currency, stock, status, COALESCE(image_url, ''), created_at`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(
		&p.ID,
		&p.VendorID,
		&p.CategoryID,
		&p.Title,
		&p.Description,
		&p.PriceCents,
		&p.Currency,
		&p.Stock,
		&p.Status,
		&p.ImageURL,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (vendor_id, category_id, title, description, price_cents, currency, stock, status, image_url)
VALUES ($1, NULLIF($2, '')::uuid, $3, NULLIF($4, ''), $5, $6, $7, 'pending', NULLIF($8, ''))
RETURNING ` + productColumns + `
`
	created, err := scanProduct(r.pool.QueryRow(ctx, q,
		p.VendorID, p.CategoryID, p.Title, p.Description, p.PriceCents, p.Currency, p.Stock, p.ImageURL))
	if err != nil {
		r.logger.Printf("product repo: create vendor_id=%s error=%v", p.VendorID, err)
		return nil, err
	}
	r.logger.Printf("product repo: created id=%s vendor_id=%s", created.ID, created.VendorID)
	return created, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return p, nil
}

// Update rewrites the vendor-editable fields. Stock and status are mutated
// only through their dedicated paths (cart reconciliation, SetStatus).
func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET category_id = NULLIF($2, '')::uuid,
    title = $3,
    description = NULLIF($4, ''),
    price_cents = $5,
    currency = $6,
    image_url = NULLIF($7, '')
WHERE id = $1
RETURNING ` + productColumns + `
`
	updated, err := scanProduct(r.pool.QueryRow(ctx, q,
		p.ID, p.CategoryID, p.Title, p.Description, p.PriceCents, p.Currency, p.ImageURL))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update id=%s error=%v", p.ID, err)
		return nil, err
	}
	return updated, nil
}

func (r *postgresRepo) SetStatus(ctx context.Context, id string, status domain.ProductStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE products SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		r.logger.Printf("product repo: set status id=%s status=%s error=%v", id, status, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("product repo: set status id=%s status=%s", id, status)
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) ListApproved(ctx context.Context, filter ListFilter) ([]domain.Product, error) {
	q := `
SELECT ` + productColumns + `
FROM products
WHERE status = 'approved'
`
	args := []interface{}{}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		q += ` AND category_id = $1`
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		if len(args) == 1 {
			q += ` AND title ILIKE $1`
		} else {
			q += ` AND title ILIKE $2`
		}
	}
	q += ` ORDER BY created_at DESC`
	return r.list(ctx, q, args...)
}

func (r *postgresRepo) ListByVendor(ctx context.Context, vendorID string) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE vendor_id = $1
ORDER BY created_at DESC
`
	return r.list(ctx, q, vendorID)
}

func (r *postgresRepo) ListByStatus(ctx context.Context, status domain.ProductStatus) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE status = $1
ORDER BY created_at ASC
`
	return r.list(ctx, q, status)
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}
