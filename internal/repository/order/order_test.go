package order

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"handmade-market/internal/domain"
	"handmade-market/internal/migrate"
	productrepo "handmade-market/internal/repository/product"
)

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func setup(ctx context.Context, t *testing.T) (*pgxpool.Pool, string) {
	t.Helper()
	pool := testPool(ctx, t)
	t.Cleanup(pool.Close)
	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE cart_lines, favorites, order_lines, orders, reviews, chat_messages, chats, notifications, products, categories, vendors, tokens, users RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}

	var userID string
	err := pool.QueryRow(ctx, `INSERT INTO users (email, password_hash) VALUES (gen_random_uuid()::text || '@test', 'x') RETURNING id::text`).Scan(&userID)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	return pool, userID
}

// reservedProduct inserts an approved product whose stock already had qty
// units moved into the user's cart.
func reservedProduct(ctx context.Context, t *testing.T, pool *pgxpool.Pool, userID, title string, stockLeft, qty int, priceCents int64) string {
	t.Helper()
	var ownerID, vendorID, productID string
	err := pool.QueryRow(ctx, `INSERT INTO users (email, password_hash, role) VALUES (gen_random_uuid()::text || '@shop', 'x', 'vendor') RETURNING id::text`).Scan(&ownerID)
	if err != nil {
		t.Fatalf("insert owner: %v", err)
	}
	err = pool.QueryRow(ctx, `INSERT INTO vendors (user_id, shop_name, status) VALUES ($1, 'Test Shop', 'approved') RETURNING id::text`, ownerID).Scan(&vendorID)
	if err != nil {
		t.Fatalf("insert vendor: %v", err)
	}
	err = pool.QueryRow(ctx,
		`INSERT INTO products (vendor_id, title, price_cents, currency, stock, status) VALUES ($1, $2, $3, 'USD', $4, 'approved') RETURNING id::text`,
		vendorID, title, priceCents, stockLeft).Scan(&productID)
	if err != nil {
		t.Fatalf("insert product: %v", err)
	}
	if qty > 0 {
		_, err = pool.Exec(ctx,
			`INSERT INTO cart_lines (user_id, product_id, quantity, title, price_cents, currency) VALUES ($1, $2, $3, $4, $5, 'USD')`,
			userID, productID, qty, title, priceCents)
		if err != nil {
			t.Fatalf("insert cart line: %v", err)
		}
	}
	return productID
}

func stockOf(ctx context.Context, t *testing.T, pool *pgxpool.Pool, productID string) int {
	t.Helper()
	var stock int
	if err := pool.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1`, productID).Scan(&stock); err != nil {
		t.Fatalf("read stock: %v", err)
	}
	return stock
}

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestPostgres_PlaceConsumesCart(t *testing.T) {
	ctx := context.Background()
	pool, userID := setup(ctx, t)
	productID := reservedProduct(ctx, t, pool, userID, "Stoneware mug", 3, 2, 2400)

	repo := NewPostgres(pool, logDiscard())
	placed, err := repo.Place(ctx, PlaceInput{UserID: userID, PaymentMethod: domain.PaymentCard, Address: "12 Main St"})
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if placed.Status != domain.OrderPending {
		t.Fatalf("expected pending order, got %s", placed.Status)
	}
	if placed.TotalCents != 4800 {
		t.Fatalf("expected total 4800, got %d", placed.TotalCents)
	}
	if len(placed.Lines) != 1 || placed.Lines[0].Quantity != 2 {
		t.Fatalf("unexpected lines %+v", placed.Lines)
	}

	// The reservation is consumed, not released.
	if got := stockOf(ctx, t, pool, productID); got != 3 {
		t.Fatalf("stock changed on placement: %d", got)
	}
	var remaining int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM cart_lines WHERE user_id = $1`, userID).Scan(&remaining); err != nil {
		t.Fatalf("count cart lines: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("cart not cleared: %d lines left", remaining)
	}
}

func TestPostgres_LinesFrozenAfterProductEdit(t *testing.T) {
	ctx := context.Background()
	pool, userID := setup(ctx, t)
	productID := reservedProduct(ctx, t, pool, userID, "Indigo scarf", 4, 2, 5200)

	repo := NewPostgres(pool, logDiscard())
	placed, err := repo.Place(ctx, PlaceInput{UserID: userID, PaymentMethod: domain.PaymentCard, Address: "12 Main St"})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	products := productrepo.NewPostgres(pool, logDiscard())
	edited, err := products.GetByID(ctx, productID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	edited.Title = "Indigo scarf (new dye lot)"
	edited.PriceCents = 9900
	if _, err := products.Update(ctx, *edited); err != nil {
		t.Fatalf("update product: %v", err)
	}

	// The order keeps the values captured at purchase time.
	got, err := repo.GetByID(ctx, placed.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if len(got.Lines) != 1 {
		t.Fatalf("unexpected lines %+v", got.Lines)
	}
	line := got.Lines[0]
	if line.Title != "Indigo scarf" || line.PriceCents != 5200 || line.Quantity != 2 {
		t.Fatalf("line changed after product edit: %+v", line)
	}
	if got.TotalCents != 10400 {
		t.Fatalf("total changed after product edit: %d", got.TotalCents)
	}
}

func TestPostgres_PlaceEmptyCart(t *testing.T) {
	ctx := context.Background()
	pool, userID := setup(ctx, t)

	repo := NewPostgres(pool, logDiscard())
	if _, err := repo.Place(ctx, PlaceInput{UserID: userID, PaymentMethod: domain.PaymentCash, Address: "12 Main St"}); !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestPostgres_CancelRestoresStock(t *testing.T) {
	ctx := context.Background()
	pool, userID := setup(ctx, t)
	productID := reservedProduct(ctx, t, pool, userID, "Walnut board", 1, 2, 6500)

	repo := NewPostgres(pool, logDiscard())
	placed, err := repo.Place(ctx, PlaceInput{UserID: userID, PaymentMethod: domain.PaymentCash, Address: "12 Main St"})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	if err := repo.Cancel(ctx, placed.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if got := stockOf(ctx, t, pool, productID); got != 3 {
		t.Fatalf("expected stock 3 after cancel, got %d", got)
	}
	cancelled, err := repo.GetByID(ctx, placed.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cancelled.Status != domain.OrderCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}

	// A cancelled order cannot be cancelled or advanced again.
	if err := repo.Cancel(ctx, placed.ID); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestPostgres_SetStatusGuardsTransition(t *testing.T) {
	ctx := context.Background()
	pool, userID := setup(ctx, t)
	reservedProduct(ctx, t, pool, userID, "Linen tote", 5, 1, 3900)

	repo := NewPostgres(pool, logDiscard())
	placed, err := repo.Place(ctx, PlaceInput{UserID: userID, PaymentMethod: domain.PaymentCard, Address: "12 Main St"})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	// Skipping a step is rejected.
	if err := repo.SetStatus(ctx, placed.ID, domain.OrderOnTheWay, domain.OrderCompleted); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	if err := repo.SetStatus(ctx, placed.ID, domain.OrderPending, domain.OrderOnTheWay); err != nil {
		t.Fatalf("advance to on_the_way: %v", err)
	}
	if err := repo.SetStatus(ctx, placed.ID, domain.OrderOnTheWay, domain.OrderCompleted); err != nil {
		t.Fatalf("advance to completed: %v", err)
	}

	if err := repo.SetStatus(ctx, "00000000-0000-0000-0000-000000000000", domain.OrderPending, domain.OrderOnTheWay); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
