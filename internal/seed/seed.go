package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	Title       string
	Description string
	CategoryKey string
	PriceCents  int64
	Currency    string
	Stock       int
	ImageURL    string
}

// Apply inserts demo data for manual testing. It is idempotent: users and
// categories upsert on their natural keys, products insert only when absent.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	adminID, err := ensureUser(ctx, pool, "admin@handmade.local", "Admin-Pass1", "Greta", "Holm", "admin")
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	_ = adminID

	makerID, err := ensureUser(ctx, pool, "maker@handmade.local", "Maker-Pass1", "Iris", "Falk", "vendor")
	if err != nil {
		return fmt.Errorf("ensure maker: %w", err)
	}
	if _, err := ensureUser(ctx, pool, "customer@handmade.local", "Buyer-Pass1", "Sam", "Oda", "customer"); err != nil {
		return fmt.Errorf("ensure customer: %w", err)
	}

	vendorID, err := ensureVendor(ctx, pool, makerID, "Iris Falk Ceramics", "Small-batch stoneware fired in Bergen.")
	if err != nil {
		return fmt.Errorf("ensure vendor: %w", err)
	}

	categories := map[string]string{
		"ceramics":  "Ceramics",
		"textiles":  "Textiles",
		"woodwork":  "Woodwork",
		"jewellery": "Jewellery",
	}
	categoryIDs := map[string]string{}
	for key, name := range categories {
		id, err := ensureCategory(ctx, pool, key, name)
		if err != nil {
			return fmt.Errorf("ensure category %s: %w", key, err)
		}
		categoryIDs[key] = id
	}

	products := []productSeed{
		{
			Title:       "Stoneware mug",
			Description: "Wheel-thrown mug with matte glaze, holds 350ml",
			CategoryKey: "ceramics",
			PriceCents:  2400,
			Currency:    "USD",
			Stock:       12,
		},
		{
			Title:       "Linen tote bag",
			Description: "Hand-sewn tote from washed European linen",
			CategoryKey: "textiles",
			PriceCents:  3900,
			Currency:    "USD",
			Stock:       8,
		},
		{
			Title:       "Walnut serving board",
			Description: "Oiled walnut board, one-of-a-kind grain",
			CategoryKey: "woodwork",
			PriceCents:  6500,
			Currency:    "USD",
			Stock:       3,
		},
	}

	for _, p := range products {
		if err := ensureProduct(ctx, pool, vendorID, categoryIDs[p.CategoryKey], p); err != nil {
			return fmt.Errorf("ensure product %s: %w", p.Title, err)
		}
	}

	return nil
}

func ensureUser(ctx context.Context, pool *pgxpool.Pool, email, password, first, last, role string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	const q = `
INSERT INTO users (email, password_hash, first_name, last_name, role)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, email, string(hashed), first, last, role).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureVendor(ctx context.Context, pool *pgxpool.Pool, userID, shopName, bio string) (string, error) {
	const q = `
INSERT INTO vendors (user_id, shop_name, bio, status)
VALUES ($1, $2, $3, 'approved')
ON CONFLICT (user_id) DO UPDATE SET shop_name = EXCLUDED.shop_name, bio = EXCLUDED.bio
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, userID, shopName, bio).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureCategory(ctx context.Context, pool *pgxpool.Pool, key, name string) (string, error) {
	const q = `
INSERT INTO categories (key, name)
VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET name = EXCLUDED.name
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, key, name).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func ensureProduct(ctx context.Context, pool *pgxpool.Pool, vendorID, categoryID string, p productSeed) error {
	// Products have no natural unique key, so skip when the vendor already
	// lists one with the same title.
	const q = `
INSERT INTO products (vendor_id, category_id, title, description, price_cents, currency, stock, status, image_url)
SELECT $1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, 'approved', NULLIF($8, '')
WHERE NOT EXISTS (
    SELECT 1 FROM products WHERE vendor_id = $1 AND title = $3
)
`
	_, err := pool.Exec(ctx, q, vendorID, categoryID, p.Title, p.Description, p.PriceCents, p.Currency, p.Stock, p.ImageURL)
	return err
}
