package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tanawit/petnest-backend/internal/app/service"
	"github.com/tanawit/petnest-backend/pkg/logger"
	"github.com/tanawit/petnest-backend/pkg/redis"
)

const (
	// PopularProductsCacheKey is shared with the product controller.
	PopularProductsCacheKey = "cache:popular_products"
	popularProductsLimit    = 10
	popularProductsCacheTTL = 30 * time.Minute
)

// PopularProductsScheduler keeps the popular-products cache warm.
type PopularProductsScheduler struct {
	cron           *cron.Cron
	productService service.ProductService
}

func NewPopularProductsScheduler(productService service.ProductService) *PopularProductsScheduler {
	return &PopularProductsScheduler{
		cron:           cron.New(),
		productService: productService,
	}
}

// Start registers the refresh job (every 15 minutes) and primes the
// cache once immediately.
func (s *PopularProductsScheduler) Start() error {
	_, err := s.cron.AddFunc("*/15 * * * *", s.refresh)
	if err != nil {
		logger.Error("Failed to add cron job for popular products refresh", err)
		return err
	}

	s.cron.Start()
	logger.Info("Popular products scheduler started (every 15 minutes)", nil)

	go s.refresh()
	return nil
}

func (s *PopularProductsScheduler) Stop() {
	logger.Info("Stopping popular products scheduler...", nil)
	s.cron.Stop()
}

func (s *PopularProductsScheduler) refresh() {
	if redis.GetClient() == nil {
		return
	}

	logger.Debug("Refreshing popular products cache", nil)

	products, err := s.productService.GetPopular(popularProductsLimit)
	if err != nil {
		logger.Error("Failed to load popular products for cache", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redis.SetJSON(ctx, PopularProductsCacheKey, products, popularProductsCacheTTL); err != nil {
		logger.Error("Failed to write popular products cache", err)
		return
	}

	logger.Info("Popular products cache refreshed", map[string]interface{}{
		"count": len(products),
	})
}
