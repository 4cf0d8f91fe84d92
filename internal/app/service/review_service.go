package service

import (
	"errors"

	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/internal/app/repository"
	"github.com/tanawit/petnest-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("order already has a review")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
)

type ReviewService interface {
	Create(userID, orderID uint, rating int, comment string) (*model.Review, error)
	GetAll() ([]model.Review, error)
	GetByUserID(userID uint) ([]model.Review, error)
	GetByOrderID(orderID uint) (*model.Review, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	orderRepo  repository.OrderRepository
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	orderRepo repository.OrderRepository,
) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		orderRepo:  orderRepo,
	}
}

// Create records a review for an order and flips the order's reviewed
// flag. The flag update is best-effort: the review stands even when
// the flag write fails.
func (s *reviewService) Create(userID, orderID uint, rating int, comment string) (*model.Review, error) {
	logger.Info("Creating review", map[string]interface{}{
		"user_id":  userID,
		"order_id": orderID,
		"rating":   rating,
	})

	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if _, err := s.reviewRepo.FindByOrderID(orderID); err == nil {
		logger.Warn("Rejected duplicate review for order", map[string]interface{}{
			"order_id": orderID,
		})
		return nil, ErrReviewAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &model.Review{
		UserID:  userID,
		OrderID: orderID,
		Rating:  rating,
		Comment: comment,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		logger.Error("Failed to create review", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	order.IsReviewed = true
	if err := s.orderRepo.Update(order); err != nil {
		logger.Error("Failed to flag order as reviewed", err, map[string]interface{}{
			"order_id": orderID,
		})
	}

	return review, nil
}

func (s *reviewService) GetAll() ([]model.Review, error) {
	return s.reviewRepo.FindAll()
}

func (s *reviewService) GetByUserID(userID uint) ([]model.Review, error) {
	return s.reviewRepo.FindByUserID(userID)
}

func (s *reviewService) GetByOrderID(orderID uint) (*model.Review, error) {
	review, err := s.reviewRepo.FindByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}
