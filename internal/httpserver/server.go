package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"handmade-market/internal/domain"
	"handmade-market/internal/service/auth"
	"handmade-market/internal/service/order"
	"handmade-market/internal/service/product"
	"handmade-market/internal/service/review"
	"handmade-market/internal/service/vendor"
)

// AuthService is the slice of the auth service the router needs.
type AuthService interface {
	Signup(ctx context.Context, in auth.SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	Logout(ctx context.Context, token string) error
	AccessTTLSeconds() int
}

type ProductService interface {
	Create(ctx context.Context, vendorID string, in product.CreateInput) (*domain.Product, error)
	Update(ctx context.Context, vendorID, productID string, in product.CreateInput) (*domain.Product, error)
	Delete(ctx context.Context, vendorID, productID string) error
	GetApproved(ctx context.Context, productID string) (*domain.Product, error)
	ListApproved(ctx context.Context, categoryID, search string) ([]domain.Product, error)
	ListByVendor(ctx context.Context, vendorID string) ([]domain.Product, error)
	ListPending(ctx context.Context) ([]domain.Product, error)
	Decide(ctx context.Context, productID string, approve bool) (*domain.Product, error)
}

type CartService interface {
	AddOrIncrement(ctx context.Context, userID, productID string) (*domain.CartLine, error)
	Decrement(ctx context.Context, userID, productID string) (*domain.CartLine, error)
	RemoveLine(ctx context.Context, userID, productID string) error
	RemoveAllLines(ctx context.Context, userID string) (int, error)
	List(ctx context.Context, userID string) ([]domain.CartLine, error)
}

type FavoriteService interface {
	Toggle(ctx context.Context, userID, productID string) (*domain.Favorite, error)
	List(ctx context.Context, userID string) ([]domain.Favorite, error)
	MoveToCart(ctx context.Context, userID, productID string) (*domain.CartLine, error)
}

type OrderService interface {
	Place(ctx context.Context, userID string, in order.PlaceInput) (*domain.Order, error)
	Get(ctx context.Context, userID, orderID string, admin bool) (*domain.Order, error)
	ListMine(ctx context.Context, userID string) ([]domain.Order, error)
	ListForVendor(ctx context.Context, vendorID string) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	Advance(ctx context.Context, orderID string, to domain.OrderStatus) (*domain.Order, error)
	Cancel(ctx context.Context, userID, orderID string, admin bool) (*domain.Order, error)
}

type VendorService interface {
	Apply(ctx context.Context, userID string, in vendor.ApplyInput) (*domain.Vendor, error)
	GetByUser(ctx context.Context, userID string) (*domain.Vendor, error)
	GetApproved(ctx context.Context, vendorID string) (*domain.Vendor, error)
	ListPending(ctx context.Context) ([]domain.Vendor, error)
	List(ctx context.Context) ([]domain.Vendor, error)
	Decide(ctx context.Context, vendorID string, approve bool) (*domain.Vendor, error)
}

type CategoryService interface {
	Upsert(ctx context.Context, key, name string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

type ChatService interface {
	Start(ctx context.Context, customerID, vendorID string) (*domain.Chat, error)
	Send(ctx context.Context, chatID, senderID, body string) (*domain.ChatMessage, error)
	Messages(ctx context.Context, chatID, userID string) ([]domain.ChatMessage, error)
	ListForCustomer(ctx context.Context, userID string) ([]domain.Chat, error)
	ListForVendor(ctx context.Context, userID string) ([]domain.Chat, error)
}

type NotificationService interface {
	List(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
}

type ReviewService interface {
	Create(ctx context.Context, userID, productID string, rating int, comment string) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)
	Summarize(ctx context.Context, productID string) (review.Summary, error)
}

// Deps carries the services the router exposes.
type Deps struct {
	Auth          AuthService
	Products      ProductService
	Cart          CartService
	Favorites     FavoriteService
	Orders        OrderService
	Vendors       VendorService
	Categories    CategoryService
	Chats         ChatService
	Notifications NotificationService
	Reviews       ReviewService
}

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
	db         *pgxpool.Pool
}

// New builds a Server with the marketplace routes.
func New(addr string, logger *log.Logger, db *pgxpool.Pool, deps Deps, allowedOrigins []string) *Server {
	router := buildRouter(logger, db, deps, allowedOrigins)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
		db:         db,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
