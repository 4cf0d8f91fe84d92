package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tanawit/petnest-backend/internal/app/service"
	apperrors "github.com/tanawit/petnest-backend/internal/errors"
	"github.com/tanawit/petnest-backend/internal/middleware"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

type CreateReviewRequest struct {
	OrderID uint   `json:"order_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// CreateReview records a review for an order
// POST /api/v1/reviews
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid review payload", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid review data")
		return
	}

	review, err := ctrl.reviewService.Create(userID, req.OrderID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrReviewAlreadyExists):
			apperrors.Conflict(c, apperrors.ReviewAlreadyExists, "Order already has a review")
		case errors.Is(err, service.ErrInvalidRating):
			apperrors.BadRequest(c, apperrors.ReviewInvalidRating, "Rating must be between 1 and 5")
		default:
			log.Error("Failed to create review", err, map[string]interface{}{
				"user_id":  userID,
				"order_id": req.OrderID,
			})
			apperrors.InternalError(c, "Failed to create review")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"review": review,
	})
}

// GetReviews lists all reviews
// GET /api/v1/reviews
func (ctrl *ReviewController) GetReviews(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	reviews, err := ctrl.reviewService.GetAll()
	if err != nil {
		log.Error("Failed to list reviews", err)
		apperrors.InternalError(c, "Failed to list reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// GetMyReviews lists the authenticated user's reviews
// GET /api/v1/reviews/me
func (ctrl *ReviewController) GetMyReviews(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	reviews, err := ctrl.reviewService.GetByUserID(userID)
	if err != nil {
		apperrors.InternalError(c, "Failed to list reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// GetReviewByOrder returns the review of one order
// GET /api/v1/reviews/order/:id
func (ctrl *ReviewController) GetReviewByOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c)
	if !ok {
		return
	}

	review, err := ctrl.reviewService.GetByOrderID(orderID)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			apperrors.NotFound(c, apperrors.ReviewNotFound, "Review not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch review")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"review": review,
	})
}
