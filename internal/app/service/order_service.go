package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/internal/app/repository"
	"github.com/tanawit/petnest-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderCancelled     = errors.New("order is cancelled and cannot change status")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

const orderCodePrefix = "ORD"

// OrderEventPublisher receives order status change notifications.
// Implementations must not block; a nil publisher disables publishing.
type OrderEventPublisher interface {
	PublishOrderStatus(orderID uint, orderCode string, status model.OrderStatus)
}

// OrderUpdate carries the mutable fields of an order. Nil means
// "leave unchanged".
type OrderUpdate struct {
	Status   *model.OrderStatus
	Discount *float64
}

type OrderService interface {
	Create(order *model.Order) (*model.Order, error)
	GenerateOrderCode() string
	GetAll(status string) ([]model.Order, error)
	GetByID(id uint) (*model.Order, error)
	GetByCode(code string) (*model.Order, error)
	GetByUserID(userID uint) ([]model.Order, error)
	Update(id uint, update OrderUpdate) (*model.Order, error)
	SetTrackingNumber(id uint, trackingNumber string) (*model.Order, error)
	Delete(id uint) error
}

type orderService struct {
	orderRepo      repository.OrderRepository
	productService ProductService
	publisher      OrderEventPublisher
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productService ProductService,
	publisher OrderEventPublisher,
) OrderService {
	return &orderService{
		orderRepo:      orderRepo,
		productService: productService,
		publisher:      publisher,
	}
}

func (s *orderService) Create(order *model.Order) (*model.Order, error) {
	logger.Info("Creating order", map[string]interface{}{
		"order_code": order.OrderCode,
		"user_id":    order.UserID,
		"total":      order.TotalPrice,
	})

	if err := s.orderRepo.Create(order); err != nil {
		logger.Error("Failed to create order", err, map[string]interface{}{
			"order_code": order.OrderCode,
			"user_id":    order.UserID,
		})
		return nil, err
	}

	s.publish(order)
	return order, nil
}

// GenerateOrderCode derives the next sequential ORD##### code from the
// most recent order. Two concurrent checkouts can read the same latest
// order and produce the same code; the unique index on order_code then
// fails the second insert. That race is a known property of the flow.
func (s *orderService) GenerateOrderCode() string {
	latest, err := s.orderRepo.FindLatest()
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to read latest order for code generation", err)
		}
		return fmt.Sprintf("%s%05d", orderCodePrefix, 1)
	}

	seq, ok := parseOrderCode(latest.OrderCode)
	if !ok {
		logger.Warn("Latest order code is not sequential, falling back to timestamp", map[string]interface{}{
			"order_code": latest.OrderCode,
		})
		return fmt.Sprintf("%s%d", orderCodePrefix, time.Now().UnixMilli())
	}

	return fmt.Sprintf("%s%05d", orderCodePrefix, seq+1)
}

func parseOrderCode(code string) (int, bool) {
	if !strings.HasPrefix(code, orderCodePrefix) {
		return 0, false
	}
	seq, err := strconv.Atoi(strings.TrimPrefix(code, orderCodePrefix))
	if err != nil || seq < 0 {
		return 0, false
	}
	return seq, true
}

func (s *orderService) GetAll(status string) ([]model.Order, error) {
	orders, err := s.orderRepo.FindAll()
	if err != nil {
		return nil, err
	}

	if status == "" {
		return orders, nil
	}

	filtered := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if string(o.Status) == status {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

func (s *orderService) GetByID(id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetByCode(code string) (*model.Order, error) {
	order, err := s.orderRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetByUserID(userID uint) ([]model.Order, error) {
	return s.orderRepo.FindByUserID(userID)
}

func (s *orderService) Update(id uint, update OrderUpdate) (*model.Order, error) {
	logger.Info("Updating order", map[string]interface{}{
		"order_id": id,
	})

	order, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	statusChanged := false
	if update.Status != nil && *update.Status != order.Status {
		if !isValidStatus(*update.Status) {
			return nil, ErrInvalidOrderStatus
		}
		// Cancelled is terminal.
		if order.Status == model.OrderStatusCancelled {
			logger.Warn("Rejected status change on cancelled order", map[string]interface{}{
				"order_id":   id,
				"order_code": order.OrderCode,
			})
			return nil, ErrOrderCancelled
		}
		if *update.Status == model.OrderStatusCancelled {
			s.restoreStockForOrder(order)
		}
		order.Status = *update.Status
		statusChanged = true
	}

	if update.Discount != nil {
		discount := *update.Discount
		if discount < 0 {
			discount = 0
		}
		if discount > order.Subtotal {
			discount = order.Subtotal
		}
		order.Discount = discount
		order.TotalPrice = order.Subtotal + order.Shipping - discount
	}

	if err := s.orderRepo.Update(order); err != nil {
		logger.Error("Failed to update order", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}

	if statusChanged {
		s.publish(order)
	}
	return order, nil
}

// SetTrackingNumber records the shipment tracking number and moves the
// order to Shipped as a side effect, matching the storefront flow
// where entering a tracking number means the parcel left the shop.
func (s *orderService) SetTrackingNumber(id uint, trackingNumber string) (*model.Order, error) {
	logger.Info("Setting order tracking number", map[string]interface{}{
		"order_id": id,
	})

	order, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if order.Status == model.OrderStatusCancelled {
		return nil, ErrOrderCancelled
	}

	order.TrackingNumber = trackingNumber
	order.Status = model.OrderStatusShipped

	if err := s.orderRepo.Update(order); err != nil {
		logger.Error("Failed to set tracking number", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}

	s.publish(order)
	return order, nil
}

func (s *orderService) Delete(id uint) error {
	logger.Info("Deleting order", map[string]interface{}{
		"order_id": id,
	})

	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.orderRepo.Delete(id)
}

// restoreStockForOrder puts each item's quantity back. Best-effort:
// a failed item is logged and the loop continues so one bad row does
// not block the cancellation.
func (s *orderService) restoreStockForOrder(order *model.Order) {
	for _, item := range order.Items {
		if err := s.productService.RestoreStock(item.ProductID, item.Size, item.Quantity); err != nil {
			logger.Error("Failed to restore stock for cancelled order item", err, map[string]interface{}{
				"order_id":   order.ID,
				"product_id": item.ProductID,
				"size":       item.Size,
				"quantity":   item.Quantity,
			})
		}
	}
}

func (s *orderService) publish(order *model.Order) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishOrderStatus(order.ID, order.OrderCode, order.Status)
}

func isValidStatus(status model.OrderStatus) bool {
	switch status {
	case model.OrderStatusPending, model.OrderStatusShipped,
		model.OrderStatusDelivered, model.OrderStatusCancelled:
		return true
	}
	return false
}
