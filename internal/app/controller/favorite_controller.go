package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tanawit/petnest-backend/internal/app/service"
	apperrors "github.com/tanawit/petnest-backend/internal/errors"
	"github.com/tanawit/petnest-backend/internal/middleware"
)

type FavoriteController struct {
	favoriteService service.FavoriteService
}

func NewFavoriteController(favoriteService service.FavoriteService) *FavoriteController {
	return &FavoriteController{
		favoriteService: favoriteService,
	}
}

type FavoriteRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetFavorites returns the user's favorites with product data
// GET /api/v1/favorites
func (ctrl *FavoriteController) GetFavorites(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	favorites, err := ctrl.favoriteService.GetFavorites(userID)
	if err != nil {
		log.Error("Failed to fetch favorites", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch favorites")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"favorites": favorites,
		"count":     len(favorites),
	})
}

// AddFavorite adds a product to favorites (duplicate is a no-op)
// POST /api/v1/favorites
func (ctrl *FavoriteController) AddFavorite(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	if err := ctrl.favoriteService.Add(userID, req.ProductID); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to add favorite", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": req.ProductID,
		})
		apperrors.InternalError(c, "Failed to add favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product added to favorites",
	})
}

// RemoveFavorite removes a product from favorites
// DELETE /api/v1/favorites/:id
func (ctrl *FavoriteController) RemoveFavorite(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	productID, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.favoriteService.Remove(userID, productID); err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrFavoriteNotFound):
			apperrors.NotFound(c, apperrors.FavoriteNotFound, "Favorite not found")
		default:
			log.Error("Failed to remove favorite", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			apperrors.InternalError(c, "Failed to remove favorite")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product removed from favorites",
	})
}

// ForceRemoveFavorite deletes the favorite row without validating the
// product. Used to clean up favorites of deleted products.
// DELETE /api/v1/favorites/:id/force
func (ctrl *FavoriteController) ForceRemoveFavorite(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	productID, ok := parseIDParam(c)
	if !ok {
		return
	}

	removed, err := ctrl.favoriteService.ForceRemove(userID, productID)
	if err != nil {
		log.Error("Failed to force remove favorite", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		apperrors.InternalError(c, "Failed to remove favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"removed": removed,
	})
}

// CheckFavorite reports whether a product is in the user's favorites
// GET /api/v1/favorites/:id/check
func (ctrl *FavoriteController) CheckFavorite(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	productID, ok := parseIDParam(c)
	if !ok {
		return
	}

	isFavorite, err := ctrl.favoriteService.Check(userID, productID)
	if err != nil {
		apperrors.InternalError(c, "Failed to check favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"is_favorite": isFavorite,
	})
}
