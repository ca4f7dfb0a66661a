package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"handmade-market/internal/domain"
	"handmade-market/internal/service/order"
	"handmade-market/internal/service/product"
	"handmade-market/internal/service/vendor"
)

type stubCartService struct {
	line *domain.CartLine
	err  error
}

func (s *stubCartService) AddOrIncrement(_ context.Context, _, _ string) (*domain.CartLine, error) {
	return s.line, s.err
}

func (s *stubCartService) Decrement(_ context.Context, _, _ string) (*domain.CartLine, error) {
	return s.line, s.err
}

func (s *stubCartService) RemoveLine(_ context.Context, _, _ string) error {
	return s.err
}

func (s *stubCartService) RemoveAllLines(_ context.Context, _ string) (int, error) {
	return 2, s.err
}

func (s *stubCartService) List(_ context.Context, _ string) ([]domain.CartLine, error) {
	if s.line == nil {
		return nil, s.err
	}
	return []domain.CartLine{*s.line}, s.err
}

type stubProductService struct {
	product *domain.Product
	err     error
}

func (s *stubProductService) Create(_ context.Context, _ string, _ product.CreateInput) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubProductService) Update(_ context.Context, _, _ string, _ product.CreateInput) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubProductService) Delete(_ context.Context, _, _ string) error {
	return s.err
}

func (s *stubProductService) GetApproved(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubProductService) ListApproved(_ context.Context, _, _ string) ([]domain.Product, error) {
	if s.product == nil {
		return nil, s.err
	}
	return []domain.Product{*s.product}, s.err
}

func (s *stubProductService) ListByVendor(_ context.Context, _ string) ([]domain.Product, error) {
	return nil, s.err
}

func (s *stubProductService) ListPending(_ context.Context) ([]domain.Product, error) {
	return nil, s.err
}

func (s *stubProductService) Decide(_ context.Context, _ string, _ bool) (*domain.Product, error) {
	return s.product, s.err
}

type stubVendorService struct {
	vendor *domain.Vendor
	err    error
}

func (s *stubVendorService) Apply(_ context.Context, _ string, _ vendor.ApplyInput) (*domain.Vendor, error) {
	return s.vendor, s.err
}

func (s *stubVendorService) GetByUser(_ context.Context, _ string) (*domain.Vendor, error) {
	return s.vendor, s.err
}

func (s *stubVendorService) GetApproved(_ context.Context, _ string) (*domain.Vendor, error) {
	return s.vendor, s.err
}

func (s *stubVendorService) ListPending(_ context.Context) ([]domain.Vendor, error) {
	return nil, s.err
}

func (s *stubVendorService) List(_ context.Context) ([]domain.Vendor, error) {
	return nil, s.err
}

func (s *stubVendorService) Decide(_ context.Context, _ string, _ bool) (*domain.Vendor, error) {
	return s.vendor, s.err
}

type stubOrderService struct {
	order *domain.Order
	err   error
}

func (s *stubOrderService) Place(_ context.Context, _ string, _ order.PlaceInput) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) Get(_ context.Context, _, _ string, _ bool) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) ListMine(_ context.Context, _ string) ([]domain.Order, error) {
	return nil, s.err
}

func (s *stubOrderService) ListForVendor(_ context.Context, _ string) ([]domain.Order, error) {
	return nil, s.err
}

func (s *stubOrderService) ListAll(_ context.Context) ([]domain.Order, error) {
	return nil, s.err
}

func (s *stubOrderService) Advance(_ context.Context, _ string, _ domain.OrderStatus) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) Cancel(_ context.Context, _, _ string, _ bool) (*domain.Order, error) {
	return s.order, s.err
}

func postJSON(router http.Handler, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAddToCart_OK(t *testing.T) {
	line := &domain.CartLine{ProductID: "p1", Quantity: 2, Title: "Linen tote"}
	router := newTestRouter(Deps{Cart: &stubCartService{line: line}})

	rec := doRequest(router, http.MethodPost, "/me/cart/p1", "customer-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got domain.CartLine
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", got.Quantity)
	}
}

func TestAddToCart_OutOfStock(t *testing.T) {
	router := newTestRouter(Deps{Cart: &stubCartService{err: domain.ErrOutOfStock}})

	rec := doRequest(router, http.MethodPost, "/me/cart/p1", "customer-token")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	router := newTestRouter(Deps{Cart: &stubCartService{err: domain.ErrNotFound}})

	rec := doRequest(router, http.MethodPost, "/me/cart/missing", "customer-token")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDecrement_MinimumQuantity(t *testing.T) {
	router := newTestRouter(Deps{Cart: &stubCartService{err: domain.ErrMinimumQuantity}})

	rec := doRequest(router, http.MethodPost, "/me/cart/p1/decrement", "customer-token")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestAddToCart_ConflictAfterRetries(t *testing.T) {
	router := newTestRouter(Deps{Cart: &stubCartService{err: domain.ErrConcurrentModification}})

	rec := doRequest(router, http.MethodPost, "/me/cart/p1", "customer-token")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	router := newTestRouter(Deps{Orders: &stubOrderService{err: domain.ErrEmptyCart}})

	rec := postJSON(router, "/me/orders", "customer-token", `{"paymentMethod":"cash","address":"12 Main St"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestPlaceOrder_ValidationError(t *testing.T) {
	router := newTestRouter(Deps{Orders: &stubOrderService{err: domain.Invalid("address required")}})

	rec := postJSON(router, "/me/orders", "customer-token", `{"paymentMethod":"cash"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPlaceOrder_Created(t *testing.T) {
	placed := &domain.Order{ID: "ord-1", Status: domain.OrderPending}
	router := newTestRouter(Deps{Orders: &stubOrderService{order: placed}})

	rec := postJSON(router, "/me/orders", "customer-token", `{"paymentMethod":"card","address":"12 Main St"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAdvanceOrder_InvalidTransition(t *testing.T) {
	router := newTestRouter(Deps{Orders: &stubOrderService{err: domain.ErrInvalidTransition}})

	rec := postJSON(router, "/admin/orders/ord-1/status", "admin-token", `{"status":"completed"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestListProducts_Public(t *testing.T) {
	p := &domain.Product{ID: "p1", Title: "Stoneware mug", Status: domain.ProductApproved}
	router := newTestRouter(Deps{Products: &stubProductService{product: p}})

	rec := doRequest(router, http.MethodGet, "/products?search=mug", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Results []domain.Product `json:"results"`
		Total   int              `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 1 || len(body.Results) != 1 {
		t.Fatalf("expected a single result, got %+v", body)
	}
}

func TestCreateProduct_RequiresApprovedShop(t *testing.T) {
	pending := &domain.Vendor{ID: "v1", Status: domain.VendorPending}
	router := newTestRouter(Deps{
		Vendors:  &stubVendorService{vendor: pending},
		Products: &stubProductService{},
	})

	rec := postJSON(router, "/vendor/products", "vendor-token", `{"title":"Mug","priceCents":1500,"currency":"USD","stock":3}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestCreateProduct_Created(t *testing.T) {
	approved := &domain.Vendor{ID: "v1", Status: domain.VendorApproved}
	created := &domain.Product{ID: "p1", Title: "Mug", Status: domain.ProductPending}
	router := newTestRouter(Deps{
		Vendors:  &stubVendorService{vendor: approved},
		Products: &stubProductService{product: created},
	})

	rec := postJSON(router, "/vendor/products", "vendor-token", `{"title":"Mug","priceCents":1500,"currency":"USD","stock":3}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSignup_Created(t *testing.T) {
	router := newTestRouter(Deps{})

	rec := postJSON(router, "/auth/signup", "", `{"email":"c@example.com","password":"Sturdy-Pass1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	router := newTestRouter(Deps{})

	rec := postJSON(router, "/auth/login", "", `{"email":"c@example.com","password":"nope"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
