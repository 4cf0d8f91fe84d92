package db

import (
	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/pkg/logger"
	"github.com/tanawit/petnest-backend/pkg/util"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Address{},
		&model.Product{},
		&model.ProductOption{},
		&model.CartItem{},
		&model.FavoriteItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Review{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// SeedAdmin creates the initial admin account when none exists.
func SeedAdmin(email, password string) error {
	if email == "" || password == "" {
		logger.Info("Admin seed skipped, no credentials configured")
		return nil
	}

	var count int64
	if err := DB.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Admin account already exists, skipping seed", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return err
	}

	admin := model.User{
		Email:        &email,
		PasswordHash: hash,
		DisplayName:  "Administrator",
		Role:         model.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		logger.Error("Failed to seed admin account", err)
		return err
	}

	logger.Info("Admin account seeded", map[string]interface{}{
		"email": email,
	})
	return nil
}
