package repository

import (
	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductOptionRepository interface {
	Create(option *model.ProductOption) error
	FindByID(id uint) (*model.ProductOption, error)
	FindByProductAndSize(productID uint, size string) (*model.ProductOption, error)
	Update(option *model.ProductOption) error
	IncrementPurchases(productID uint, amount int) error
	Delete(id uint) error
}

type productOptionRepository struct {
	db *gorm.DB
}

func NewProductOptionRepository(db *gorm.DB) ProductOptionRepository {
	return &productOptionRepository{db: db}
}

func (r *productOptionRepository) Create(option *model.ProductOption) error {
	logger.Debug("Creating product option in database", map[string]interface{}{
		"product_id": option.ProductID,
		"size":       option.Size,
	})

	if err := r.db.Create(option).Error; err != nil {
		logger.Error("Failed to create product option in database", err, map[string]interface{}{
			"product_id": option.ProductID,
			"size":       option.Size,
		})
		return err
	}

	return nil
}

func (r *productOptionRepository) FindByID(id uint) (*model.ProductOption, error) {
	var option model.ProductOption
	if err := r.db.First(&option, id).Error; err != nil {
		return nil, err
	}
	return &option, nil
}

func (r *productOptionRepository) FindByProductAndSize(productID uint, size string) (*model.ProductOption, error) {
	logger.Debug("Finding product option by product and size in database", map[string]interface{}{
		"product_id": productID,
		"size":       size,
	})

	var option model.ProductOption
	err := r.db.Where("product_id = ? AND size = ?", productID, size).
		First(&option).Error
	if err != nil {
		return nil, err
	}

	return &option, nil
}

func (r *productOptionRepository) Update(option *model.ProductOption) error {
	logger.Debug("Updating product option in database", map[string]interface{}{
		"option_id": option.ID,
		"stock":     option.Stock,
	})

	if err := r.db.Save(option).Error; err != nil {
		logger.Error("Failed to update product option in database", err, map[string]interface{}{
			"option_id": option.ID,
		})
		return err
	}

	return nil
}

// IncrementPurchases bumps the parent product's purchase counter in a
// single atomic UPDATE.
func (r *productOptionRepository) IncrementPurchases(productID uint, amount int) error {
	logger.Debug("Incrementing product purchase counter in database", map[string]interface{}{
		"product_id": productID,
		"amount":     amount,
	})

	err := r.db.Model(&model.Product{}).
		Where("id = ?", productID).
		UpdateColumn("total_purchases", gorm.Expr("total_purchases + ?", amount)).Error
	if err != nil {
		logger.Error("Failed to increment product purchase counter in database", err, map[string]interface{}{
			"product_id": productID,
		})
		return err
	}

	return nil
}

func (r *productOptionRepository) Delete(id uint) error {
	logger.Debug("Deleting product option from database", map[string]interface{}{
		"option_id": id,
	})

	if err := r.db.Delete(&model.ProductOption{}, id).Error; err != nil {
		logger.Error("Failed to delete product option from database", err, map[string]interface{}{
			"option_id": id,
		})
		return err
	}

	return nil
}
