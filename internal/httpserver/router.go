package httpserver

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"handmade-market/internal/domain"
)

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, allowedOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = allowedOrigins
	}
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := handlers{logger: logger, deps: deps}

	router.POST("/auth/signup", h.signup)
	router.POST("/auth/login", h.login)

	router.GET("/categories", h.listCategories)
	router.GET("/products", h.listProducts)
	router.GET("/products/:id", h.getProduct)
	router.GET("/products/:id/reviews", h.listReviews)
	router.GET("/products/:id/rating", h.productRating)
	router.GET("/vendors/:id", h.getVendor)

	authed := router.Group("/", requireAuth(deps.Auth))
	{
		authed.POST("/auth/logout", h.logout)
		authed.GET("/me", h.me)

		authed.GET("/me/cart", h.listCart)
		authed.POST("/me/cart/:productID", h.addToCart)
		authed.POST("/me/cart/:productID/decrement", h.decrementCartLine)
		authed.DELETE("/me/cart/:productID", h.removeCartLine)
		authed.DELETE("/me/cart", h.clearCart)

		authed.GET("/me/favorites", h.listFavorites)
		authed.POST("/me/favorites/:productID", h.toggleFavorite)
		authed.POST("/me/favorites/:productID/move-to-cart", h.moveFavoriteToCart)

		authed.POST("/me/orders", h.placeOrder)
		authed.GET("/me/orders", h.listMyOrders)
		authed.GET("/me/orders/:id", h.getOrder)
		authed.POST("/me/orders/:id/cancel", h.cancelOrder)

		authed.POST("/products/:id/reviews", h.createReview)

		authed.POST("/me/chats", h.startChat)
		authed.GET("/me/chats", h.listMyChats)
		authed.GET("/chats/:id/messages", h.listChatMessages)
		authed.POST("/chats/:id/messages", h.sendChatMessage)

		authed.GET("/me/notifications", h.listNotifications)
		authed.POST("/me/notifications/:id/read", h.markNotificationRead)

		authed.POST("/me/vendor", h.applyVendor)
		authed.GET("/me/vendor", h.myVendor)
	}

	vendorOnly := router.Group("/vendor", requireAuth(deps.Auth), requireRole(domain.RoleVendor))
	{
		vendorOnly.GET("/products", h.listVendorProducts)
		vendorOnly.POST("/products", h.createProduct)
		vendorOnly.PUT("/products/:id", h.updateProduct)
		vendorOnly.DELETE("/products/:id", h.deleteProduct)
		vendorOnly.GET("/orders", h.listVendorOrders)
		vendorOnly.GET("/chats", h.listVendorChats)
	}

	admin := router.Group("/admin", requireAuth(deps.Auth), requireRole(domain.RoleAdmin))
	{
		admin.GET("/products/pending", h.listPendingProducts)
		admin.POST("/products/:id/approve", h.approveProduct)
		admin.POST("/products/:id/reject", h.rejectProduct)

		admin.GET("/vendors", h.listVendors)
		admin.GET("/vendors/pending", h.listPendingVendors)
		admin.POST("/vendors/:id/approve", h.approveVendor)
		admin.POST("/vendors/:id/reject", h.rejectVendor)

		admin.GET("/orders", h.listAllOrders)
		admin.POST("/orders/:id/status", h.advanceOrder)

		admin.POST("/categories", h.upsertCategory)
	}

	return router
}
