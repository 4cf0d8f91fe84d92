package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tanawit/petnest-backend/config"
	"github.com/tanawit/petnest-backend/internal/app/controller"
	"github.com/tanawit/petnest-backend/internal/app/repository"
	"github.com/tanawit/petnest-backend/internal/app/service"
	"github.com/tanawit/petnest-backend/internal/db"
	"github.com/tanawit/petnest-backend/internal/middleware"
	"github.com/tanawit/petnest-backend/internal/router"
	"github.com/tanawit/petnest-backend/internal/scheduler"
	"github.com/tanawit/petnest-backend/internal/storage"
	"github.com/tanawit/petnest-backend/internal/ws"
	"github.com/tanawit/petnest-backend/pkg/line"
	"github.com/tanawit/petnest-backend/pkg/logger"
	"github.com/tanawit/petnest-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting PetNest Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis is optional: logout blacklist and the popular cache degrade
	// gracefully without it
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, continuing without it", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer redis.Close()
	}

	// Local image store
	store, err := storage.NewLocalStorage(cfg.Upload.Dir, cfg.Upload.MaxSizeBytes)
	if err != nil {
		logger.Fatal("Failed to initialize upload storage", err)
	}

	// LINE Login client
	lineClient, err := line.NewClient(line.Config{
		ChannelID:     cfg.Line.ChannelID,
		ChannelSecret: cfg.Line.ChannelSecret,
		CallbackURL:   cfg.Line.CallbackURL,
		AuthorizeURL:  cfg.Line.AuthorizeURL,
		TokenURL:      cfg.Line.TokenURL,
		ProfileURL:    cfg.Line.ProfileURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize LINE client", err)
	}

	// WebSocket hub for order status events
	hub := ws.NewHub()
	go hub.Run()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	addressRepo := repository.NewAddressRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	optionRepo := repository.NewProductOptionRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	favoriteRepo := repository.NewFavoriteRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())

	// Initialize services
	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(userRepo, userService, lineClient, cfg.JWT)
	productService := service.NewProductService(productRepo, optionRepo)
	orderService := service.NewOrderService(orderRepo, productService, hub)
	cartService := service.NewCartService(
		cartRepo, productRepo, addressRepo, userRepo,
		orderService, productService, cfg.Checkout,
	)
	favoriteService := service.NewFavoriteService(favoriteRepo, productRepo)
	addressService := service.NewAddressService(addressRepo)
	reviewService := service.NewReviewService(reviewRepo, orderRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService, userService, cfg.Line)
	productController := controller.NewProductController(productService, store)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	favoriteController := controller.NewFavoriteController(favoriteService)
	addressController := controller.NewAddressController(addressService)
	reviewController := controller.NewReviewController(reviewService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Popular products cache refresher
	popularScheduler := scheduler.NewPopularProductsScheduler(productService)
	if err := popularScheduler.Start(); err != nil {
		logger.Warn("Popular products scheduler disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer popularScheduler.Stop()
	}

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		cartController,
		orderController,
		favoriteController,
		addressController,
		reviewController,
		authMiddleware,
		hub,
		store,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
