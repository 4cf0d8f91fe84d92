package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tanawit/petnest-backend/config"
	"github.com/tanawit/petnest-backend/internal/app/controller"
	"github.com/tanawit/petnest-backend/internal/app/model"
	apperrors "github.com/tanawit/petnest-backend/internal/errors"
	"github.com/tanawit/petnest-backend/internal/middleware"
	"github.com/tanawit/petnest-backend/internal/storage"
	"github.com/tanawit/petnest-backend/internal/ws"
	"github.com/tanawit/petnest-backend/pkg/logger"
)

type Router struct {
	authController     *controller.AuthController
	productController  *controller.ProductController
	cartController     *controller.CartController
	orderController    *controller.OrderController
	favoriteController *controller.FavoriteController
	addressController  *controller.AddressController
	reviewController   *controller.ReviewController
	authMiddleware     *middleware.AuthMiddleware
	hub                *ws.Hub
	store              *storage.LocalStorage
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	favoriteController *controller.FavoriteController,
	addressController *controller.AddressController,
	reviewController *controller.ReviewController,
	authMiddleware *middleware.AuthMiddleware,
	hub *ws.Hub,
	store *storage.LocalStorage,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		productController:  productController,
		cartController:     cartController,
		orderController:    orderController,
		favoriteController: favoriteController,
		addressController:  addressController,
		reviewController:   reviewController,
		authMiddleware:     authMiddleware,
		hub:                hub,
		store:              store,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered in handler", nil, map[string]interface{}{
			"panic": recovered,
			"path":  c.Request.URL.Path,
		})
		apperrors.InternalError(c, "")
	}))
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "PetNest API is running",
		})
	})

	// Serve uploaded product images
	router.Static("/uploads", r.store.Dir())

	admin := string(model.RoleAdmin)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.GET("/line", r.authController.LineLogin)
			auth.GET("/line/callback", r.authController.LineCallback)
			auth.POST("/line/token", r.authController.LineToken)
			auth.POST("/admin/register", r.authController.AdminRegister)
			auth.POST("/admin/login", r.authController.AdminLogin)
			auth.GET("/profile", r.authMiddleware.Authenticate(), r.authController.Profile)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.GetProducts)
			products.GET("/popular", r.productController.GetPopularProducts)
			products.GET("/export",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(admin),
				r.productController.ExportProducts,
			)
			products.GET("/:id", r.productController.GetProduct)

			products.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(admin),
				r.productController.CreateProduct,
			)
			products.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(admin),
				r.productController.UpdateProduct,
			)
			products.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(admin),
				r.productController.DeleteProduct,
			)
		}

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddItem)
			cart.POST("/reduce", r.cartController.ReduceItem)
			cart.POST("/checkout", r.cartController.Checkout)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.GET("",
				r.authMiddleware.RequireRole(admin),
				r.orderController.GetOrders,
			)
			orders.GET("/me", r.orderController.GetMyOrders)
			orders.GET("/code/:code", r.orderController.GetOrderByCode)
			orders.GET("/:id", r.orderController.GetOrder)

			orders.PUT("/:id",
				r.authMiddleware.RequireRole(admin),
				r.orderController.UpdateOrder,
			)
			orders.PUT("/:id/tracking",
				r.authMiddleware.RequireRole(admin),
				r.orderController.SetTracking,
			)
			orders.DELETE("/:id",
				r.authMiddleware.RequireRole(admin),
				r.orderController.DeleteOrder,
			)
		}

		favorites := v1.Group("/favorites")
		favorites.Use(r.authMiddleware.Authenticate())
		{
			favorites.GET("", r.favoriteController.GetFavorites)
			favorites.POST("", r.favoriteController.AddFavorite)
			favorites.GET("/:id/check", r.favoriteController.CheckFavorite)
			favorites.DELETE("/:id", r.favoriteController.RemoveFavorite)
			favorites.DELETE("/:id/force", r.favoriteController.ForceRemoveFavorite)
		}

		addresses := v1.Group("/addresses")
		addresses.Use(r.authMiddleware.Authenticate())
		{
			addresses.GET("", r.addressController.GetAddresses)
			addresses.POST("", r.addressController.CreateAddress)
			addresses.PUT("/:id", r.addressController.UpdateAddress)
			addresses.DELETE("/:id", r.addressController.DeleteAddress)
		}

		reviews := v1.Group("/reviews")
		{
			reviews.GET("", r.reviewController.GetReviews)
			reviews.GET("/order/:id", r.reviewController.GetReviewByOrder)
			reviews.GET("/me", r.authMiddleware.Authenticate(), r.reviewController.GetMyReviews)
			reviews.POST("", r.authMiddleware.Authenticate(), r.reviewController.CreateReview)
		}

		// Admin dashboards subscribe to order status events
		v1.GET("/ws/orders",
			r.authMiddleware.Authenticate(),
			r.authMiddleware.RequireRole(admin),
			ws.ServeWS(r.hub),
		)
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
