package repository

import (
	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/pkg/logger"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *model.Order) error
	FindAll() ([]model.Order, error)
	FindByID(id uint) (*model.Order, error)
	FindByCode(code string) (*model.Order, error)
	FindByUserID(userID uint) ([]model.Order, error)
	FindLatest() (*model.Order, error)
	Update(order *model.Order) error
	Delete(id uint) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *model.Order) error {
	logger.Debug("Creating order in database", map[string]interface{}{
		"order_code": order.OrderCode,
		"user_id":    order.UserID,
		"items":      len(order.Items),
	})

	if err := r.db.Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"order_code": order.OrderCode,
			"user_id":    order.UserID,
		})
		return err
	}

	logger.Debug("Order created in database", map[string]interface{}{
		"order_id":   order.ID,
		"order_code": order.OrderCode,
	})
	return nil
}

func (r *orderRepository) FindAll() ([]model.Order, error) {
	logger.Debug("Finding all orders in database")

	var orders []model.Order
	err := r.db.Preload("Items").
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find all orders in database", err)
		return nil, err
	}

	logger.Debug("Orders found in database", map[string]interface{}{
		"count": len(orders),
	})
	return orders, nil
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	logger.Debug("Finding order by ID in database", map[string]interface{}{
		"order_id": id,
	})

	var order model.Order
	err := r.db.Preload("Items").
		Preload("Items.Product").
		First(&order, id).Error
	if err != nil {
		logger.Error("Failed to find order by ID in database", err, map[string]interface{}{
			"order_id": id,
		})
		return nil, err
	}

	return &order, nil
}

func (r *orderRepository) FindByCode(code string) (*model.Order, error) {
	logger.Debug("Finding order by code in database", map[string]interface{}{
		"order_code": code,
	})

	var order model.Order
	err := r.db.Preload("Items").
		Preload("Items.Product").
		Where("order_code = ?", code).
		First(&order).Error
	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepository) FindByUserID(userID uint) ([]model.Order, error) {
	logger.Debug("Finding orders by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var orders []model.Order
	err := r.db.Preload("Items").
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to find orders by user ID in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	return orders, nil
}

// FindLatest returns the most recently created order. Used by order
// code generation; returns gorm.ErrRecordNotFound on an empty table.
func (r *orderRepository) FindLatest() (*model.Order, error) {
	var order model.Order
	err := r.db.Order("created_at DESC, id DESC").First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Update(order *model.Order) error {
	logger.Debug("Updating order in database", map[string]interface{}{
		"order_id": order.ID,
		"status":   order.Status,
	})

	if err := r.db.Save(order).Error; err != nil {
		logger.Error("Failed to update order in database", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return err
	}

	return nil
}

func (r *orderRepository) Delete(id uint) error {
	logger.Debug("Deleting order from database", map[string]interface{}{
		"order_id": id,
	})

	if err := r.db.Delete(&model.Order{}, id).Error; err != nil {
		logger.Error("Failed to delete order from database", err, map[string]interface{}{
			"order_id": id,
		})
		return err
	}

	return nil
}
