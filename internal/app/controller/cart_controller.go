package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tanawit/petnest-backend/internal/app/service"
	apperrors "github.com/tanawit/petnest-backend/internal/errors"
	"github.com/tanawit/petnest-backend/internal/middleware"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{
		cartService: cartService,
	}
}

type CartItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required"`
}

type ReduceCartItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required"`
	RemoveAll bool   `json:"remove_all"`
}

type CheckoutRequest struct {
	Discount float64 `json:"discount"`
}

// GetCart returns the user's cart joined with live product data
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	lines, err := ctrl.cartService.GetCart(userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch cart")
		return
	}

	var total float64
	for _, line := range lines {
		total += line.Price * float64(line.Quantity)
	}

	c.JSON(http.StatusOK, gin.H{
		"items": lines,
		"count": len(lines),
		"total": total,
	})
}

// AddItem adds one unit of a product option to the cart
// POST /api/v1/cart
func (ctrl *CartController) AddItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid add to cart request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	err := ctrl.cartService.AddItem(userID, req.ProductID, req.Size)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrProductOptionNotFound):
			apperrors.NotFound(c, apperrors.ProductOptionMissing, "Product option not found")
		case errors.Is(err, service.ErrProductOutOfStock):
			// Out of stock reads as not found to the storefront
			apperrors.NotFound(c, apperrors.ProductOutOfStock, "Product is out of stock")
		default:
			log.Error("Failed to add item to cart", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": req.ProductID,
			})
			apperrors.InternalError(c, "Failed to add item to cart")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart",
	})
}

// ReduceItem removes one unit or the whole line
// POST /api/v1/cart/reduce
func (ctrl *CartController) ReduceItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req ReduceCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	err := ctrl.cartService.ReduceItem(userID, req.ProductID, req.Size, req.RemoveAll)
	if err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
			return
		}
		log.Error("Failed to reduce cart item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": req.ProductID,
		})
		apperrors.InternalError(c, "Failed to reduce cart item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item reduced",
	})
}

// Checkout converts the cart into an order
// POST /api/v1/cart/checkout
func (ctrl *CartController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	order, err := ctrl.cartService.Checkout(userID, req.Discount)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.NotFound(c, apperrors.UserNotFound, "User not found")
		case errors.Is(err, service.ErrNoDefaultAddress):
			apperrors.BadRequest(c, apperrors.AddressNotFound, "No default address configured")
		case errors.Is(err, service.ErrCartEmpty):
			apperrors.BadRequest(c, apperrors.CartEmpty, "Cart is empty")
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrProductOptionNotFound):
			apperrors.NotFound(c, apperrors.ProductOptionMissing, "Product option not found")
		case errors.Is(err, service.ErrInsufficientStock):
			apperrors.BadRequest(c, apperrors.OrderStockShortfall, "Insufficient stock")
		default:
			log.Error("Checkout failed", err, map[string]interface{}{
				"user_id": userID,
			})
			apperrors.ParseAndRespond(c, err, "order")
		}
		return
	}

	log.Info("Checkout succeeded", map[string]interface{}{
		"user_id":    userID,
		"order_code": order.OrderCode,
	})

	c.JSON(http.StatusCreated, gin.H{
		"order": order,
	})
}
