package repository

import (
	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/pkg/logger"
	"gorm.io/gorm"
)

type FavoriteRepository interface {
	Create(favorite *model.FavoriteItem) error
	FindByUserID(userID uint) ([]model.FavoriteItem, error)
	FindByUserAndProduct(userID, productID uint) (*model.FavoriteItem, error)
	Delete(id uint) error
	// DeleteByUserAndProduct removes the row directly without loading it
	// first, returning the number of rows removed. Zero is not an error.
	DeleteByUserAndProduct(userID, productID uint) (int64, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(favorite *model.FavoriteItem) error {
	logger.Debug("Creating favorite in database", map[string]interface{}{
		"user_id":    favorite.UserID,
		"product_id": favorite.ProductID,
	})

	if err := r.db.Create(favorite).Error; err != nil {
		logger.Error("Failed to create favorite in database", err, map[string]interface{}{
			"user_id":    favorite.UserID,
			"product_id": favorite.ProductID,
		})
		return err
	}

	return nil
}

func (r *favoriteRepository) FindByUserID(userID uint) ([]model.FavoriteItem, error) {
	logger.Debug("Finding favorites by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var favorites []model.FavoriteItem
	err := r.db.Where("user_id = ?", userID).
		Preload("Product").
		Preload("Product.Options").
		Find(&favorites).Error
	if err != nil {
		logger.Error("Failed to find favorites by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Favorites found by user ID in database", map[string]interface{}{
		"user_id": userID,
		"count":   len(favorites),
	})
	return favorites, nil
}

func (r *favoriteRepository) FindByUserAndProduct(userID, productID uint) (*model.FavoriteItem, error) {
	var favorite model.FavoriteItem
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		First(&favorite).Error
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *favoriteRepository) Delete(id uint) error {
	logger.Debug("Deleting favorite from database", map[string]interface{}{
		"favorite_id": id,
	})

	if err := r.db.Delete(&model.FavoriteItem{}, id).Error; err != nil {
		logger.Error("Failed to delete favorite from database", err, map[string]interface{}{
			"favorite_id": id,
		})
		return err
	}

	return nil
}

func (r *favoriteRepository) DeleteByUserAndProduct(userID, productID uint) (int64, error) {
	logger.Debug("Force deleting favorite from database", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	result := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.FavoriteItem{})
	if result.Error != nil {
		logger.Error("Failed to force delete favorite from database", result.Error, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
