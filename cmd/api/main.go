package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"handmade-market/internal/config"
	"handmade-market/internal/db"
	"handmade-market/internal/httpserver"
	cartlinerepo "handmade-market/internal/repository/cartline"
	categoryrepo "handmade-market/internal/repository/category"
	chatrepo "handmade-market/internal/repository/chat"
	favoriterepo "handmade-market/internal/repository/favorite"
	notificationrepo "handmade-market/internal/repository/notification"
	orderrepo "handmade-market/internal/repository/order"
	productrepo "handmade-market/internal/repository/product"
	reviewrepo "handmade-market/internal/repository/review"
	tokenrepo "handmade-market/internal/repository/token"
	userrepo "handmade-market/internal/repository/user"
	vendorrepo "handmade-market/internal/repository/vendor"
	authsvc "handmade-market/internal/service/auth"
	cartsvc "handmade-market/internal/service/cart"
	categorysvc "handmade-market/internal/service/category"
	chatsvc "handmade-market/internal/service/chat"
	favoritesvc "handmade-market/internal/service/favorite"
	notificationsvc "handmade-market/internal/service/notification"
	ordersvc "handmade-market/internal/service/order"
	productsvc "handmade-market/internal/service/product"
	reviewsvc "handmade-market/internal/service/review"
	vendorsvc "handmade-market/internal/service/vendor"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	userRepo := userrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartLineRepo := cartlinerepo.NewPostgres(dbpool)
	favoriteRepo := favoriterepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	vendorRepo := vendorrepo.NewPostgres(dbpool)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	chatRepo := chatrepo.NewPostgres(dbpool)
	notificationRepo := notificationrepo.NewPostgres(dbpool)
	reviewRepo := reviewrepo.NewPostgres(dbpool)

	notificationService := notificationsvc.New(notificationRepo, logger)
	authService := authsvc.New(userRepo, tokenRepo, logger)
	productService := productsvc.New(productRepo)
	cartService := cartsvc.New(cartLineRepo, productRepo)
	favoriteService := favoritesvc.New(favoriteRepo, productRepo, cartService)
	orderService := ordersvc.New(orderRepo, notificationService)
	vendorService := vendorsvc.New(vendorRepo, userRepo, notificationService)
	categoryService := categorysvc.New(categoryRepo)
	chatService := chatsvc.New(chatRepo, vendorRepo)
	reviewService := reviewsvc.New(reviewRepo, productRepo)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Auth:          authService,
		Products:      productService,
		Cart:          cartService,
		Favorites:     favoriteService,
		Orders:        orderService,
		Vendors:       vendorService,
		Categories:    categoryService,
		Chats:         chatService,
		Notifications: notificationService,
		Reviews:       reviewService,
	}, parseOrigins(cfg.AllowedOrigins))

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

// parseOrigins splits ALLOWED_ORIGINS; "*" or empty means allow all.
func parseOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "*" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
