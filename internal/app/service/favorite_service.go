package service

import (
	"errors"

	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/internal/app/repository"
	"github.com/tanawit/petnest-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrFavoriteNotFound = errors.New("favorite not found")

type FavoriteService interface {
	GetFavorites(userID uint) ([]model.FavoriteItem, error)
	Add(userID, productID uint) error
	Remove(userID, productID uint) error
	// ForceRemove deletes the row directly without checking that the
	// product still exists. Returns whether anything was removed.
	ForceRemove(userID, productID uint) (bool, error)
	Check(userID, productID uint) (bool, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	productRepo  repository.ProductRepository
}

func NewFavoriteService(
	favoriteRepo repository.FavoriteRepository,
	productRepo repository.ProductRepository,
) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		productRepo:  productRepo,
	}
}

func (s *favoriteService) GetFavorites(userID uint) ([]model.FavoriteItem, error) {
	logger.Debug("Fetching user favorites", map[string]interface{}{
		"user_id": userID,
	})
	return s.favoriteRepo.FindByUserID(userID)
}

// Add puts a product in the user's favorites. Adding the same product
// twice is a no-op, not an error.
func (s *favoriteService) Add(userID, productID uint) error {
	logger.Info("Adding product to favorites", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	_, err := s.favoriteRepo.FindByUserAndProduct(userID, productID)
	if err == nil {
		logger.Info("Product already in favorites, nothing to do", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.favoriteRepo.Create(&model.FavoriteItem{
		UserID:    userID,
		ProductID: productID,
	})
}

func (s *favoriteService) Remove(userID, productID uint) error {
	logger.Info("Removing product from favorites", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	favorite, err := s.favoriteRepo.FindByUserAndProduct(userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFavoriteNotFound
		}
		return err
	}

	return s.favoriteRepo.Delete(favorite.ID)
}

// ForceRemove is the fallback path for stale favorites whose product
// was deleted: it skips the product lookup entirely.
func (s *favoriteService) ForceRemove(userID, productID uint) (bool, error) {
	logger.Info("Force removing product from favorites", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	affected, err := s.favoriteRepo.DeleteByUserAndProduct(userID, productID)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (s *favoriteService) Check(userID, productID uint) (bool, error) {
	_, err := s.favoriteRepo.FindByUserAndProduct(userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
