package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/internal/app/service"
	apperrors "github.com/tanawit/petnest-backend/internal/errors"
	"github.com/tanawit/petnest-backend/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type UpdateOrderRequest struct {
	Status   *string  `json:"status"`
	Discount *float64 `json:"discount"`
}

type TrackingRequest struct {
	TrackingNumber string `json:"tracking_number" binding:"required"`
}

// GetOrders lists all orders, optionally by status (admin)
// GET /api/v1/orders?status=
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	orders, err := ctrl.orderService.GetAll(c.Query("status"))
	if err != nil {
		log.Error("Failed to list orders", err)
		apperrors.InternalError(c, "Failed to list orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrder returns one order by ID
// GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetByID(id)
	if err != nil {
		ctrl.respondOrderError(c, err)
		return
	}

	if !ctrl.mayAccess(c, order) {
		apperrors.Forbidden(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// GetOrderByCode returns one order by its ORD code
// GET /api/v1/orders/code/:code
func (ctrl *OrderController) GetOrderByCode(c *gin.Context) {
	order, err := ctrl.orderService.GetByCode(c.Param("code"))
	if err != nil {
		ctrl.respondOrderError(c, err)
		return
	}

	if !ctrl.mayAccess(c, order) {
		apperrors.Forbidden(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// GetMyOrders lists the authenticated user's orders
// GET /api/v1/orders/me
func (ctrl *OrderController) GetMyOrders(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	orders, err := ctrl.orderService.GetByUserID(userID)
	if err != nil {
		log.Error("Failed to list user orders", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to list orders")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// UpdateOrder changes status and/or discount (admin)
// PUT /api/v1/orders/:id
func (ctrl *OrderController) UpdateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	update := service.OrderUpdate{Discount: req.Discount}
	if req.Status != nil {
		status := model.OrderStatus(*req.Status)
		update.Status = &status
	}

	order, err := ctrl.orderService.Update(id, update)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrOrderCancelled):
			apperrors.BadRequest(c, apperrors.OrderCancelled, "Cancelled orders cannot change status")
		case errors.Is(err, service.ErrInvalidOrderStatus):
			apperrors.BadRequest(c, apperrors.OrderStatusInvalid, "Invalid order status")
		default:
			log.Error("Failed to update order", err, map[string]interface{}{
				"order_id": id,
			})
			apperrors.InternalError(c, "Failed to update order")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// SetTracking records the tracking number and marks the order shipped (admin)
// PUT /api/v1/orders/:id/tracking
func (ctrl *OrderController) SetTracking(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req TrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Tracking number is required")
		return
	}

	order, err := ctrl.orderService.SetTrackingNumber(id, req.TrackingNumber)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		case errors.Is(err, service.ErrOrderCancelled):
			apperrors.BadRequest(c, apperrors.OrderCancelled, "Cancelled orders cannot be shipped")
		default:
			log.Error("Failed to set tracking number", err, map[string]interface{}{
				"order_id": id,
			})
			apperrors.InternalError(c, "Failed to set tracking number")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// DeleteOrder removes an order (admin)
// DELETE /api/v1/orders/:id
func (ctrl *OrderController) DeleteOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.orderService.Delete(id); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
			return
		}
		log.Error("Failed to delete order", err, map[string]interface{}{
			"order_id": id,
		})
		apperrors.InternalError(c, "Failed to delete order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order deleted",
	})
}

func (ctrl *OrderController) respondOrderError(c *gin.Context, err error) {
	log := middleware.GetLoggerFromContext(c)

	if errors.Is(err, service.ErrOrderNotFound) {
		apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
		return
	}
	log.Error("Failed to fetch order", err)
	apperrors.InternalError(c, "Failed to fetch order")
}

// mayAccess allows admins to read any order and users their own.
func (ctrl *OrderController) mayAccess(c *gin.Context, order *model.Order) bool {
	role, _ := middleware.GetUserRole(c)
	if role == model.RoleAdmin {
		return true
	}
	userID, _ := middleware.GetUserID(c)
	return order.UserID == userID
}
