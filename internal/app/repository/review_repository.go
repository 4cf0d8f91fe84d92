package repository

import (
	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/pkg/logger"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *model.Review) error
	FindAll() ([]model.Review, error)
	FindByID(id uint) (*model.Review, error)
	FindByOrderID(orderID uint) (*model.Review, error)
	FindByUserID(userID uint) ([]model.Review, error)
	Update(review *model.Review) error
	Delete(id uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.Review) error {
	logger.Debug("Creating review in database", map[string]interface{}{
		"user_id":  review.UserID,
		"order_id": review.OrderID,
		"rating":   review.Rating,
	})

	if err := r.db.Create(review).Error; err != nil {
		logger.Error("Failed to create review in database", err, map[string]interface{}{
			"user_id":  review.UserID,
			"order_id": review.OrderID,
		})
		return err
	}

	return nil
}

func (r *reviewRepository) FindAll() ([]model.Review, error) {
	logger.Debug("Finding all reviews in database")

	var reviews []model.Review
	err := r.db.Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		logger.Error("Failed to find all reviews in database", err)
		return nil, err
	}

	return reviews, nil
}

func (r *reviewRepository) FindByID(id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByOrderID(orderID uint) (*model.Review, error) {
	var review model.Review
	err := r.db.Where("order_id = ?", orderID).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByUserID(userID uint) ([]model.Review, error) {
	logger.Debug("Finding reviews by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var reviews []model.Review
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		logger.Error("Failed to find reviews by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	return reviews, nil
}

func (r *reviewRepository) Update(review *model.Review) error {
	logger.Debug("Updating review in database", map[string]interface{}{
		"review_id": review.ID,
	})

	if err := r.db.Save(review).Error; err != nil {
		logger.Error("Failed to update review in database", err, map[string]interface{}{
			"review_id": review.ID,
		})
		return err
	}

	return nil
}

func (r *reviewRepository) Delete(id uint) error {
	logger.Debug("Deleting review from database", map[string]interface{}{
		"review_id": id,
	})

	if err := r.db.Delete(&model.Review{}, id).Error; err != nil {
		logger.Error("Failed to delete review from database", err, map[string]interface{}{
			"review_id": id,
		})
		return err
	}

	return nil
}
