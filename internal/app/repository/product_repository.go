package repository

import (
	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/pkg/logger"
	"gorm.io/gorm"
)

// ProductSearchFilter narrows product listings. Zero values mean
// "no constraint" for that field.
type ProductSearchFilter struct {
	Keyword    string
	Category   string
	AnimalType string
	MinPrice   float64
	MaxPrice   float64
	HasMin     bool
	HasMax     bool
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	Search(filter ProductSearchFilter) ([]model.Product, error)
	FindPopular(limit int) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":     product.Name,
		"category": product.Category,
		"options":  len(product.Options),
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (r *productRepository) FindAll() ([]model.Product, error) {
	logger.Debug("Finding all products in database")

	var products []model.Product
	err := r.db.Preload("Options").Find(&products).Error
	if err != nil {
		logger.Error("Failed to find all products in database", err)
		return nil, err
	}

	logger.Debug("Products found in database", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	logger.Debug("Finding product by ID in database", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	err := r.db.Preload("Options").First(&product, id).Error
	if err != nil {
		logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	return &product, nil
}

func (r *productRepository) Search(filter ProductSearchFilter) ([]model.Product, error) {
	logger.Debug("Searching products in database", map[string]interface{}{
		"keyword":     filter.Keyword,
		"category":    filter.Category,
		"animal_type": filter.AnimalType,
	})

	query := r.db.Model(&model.Product{}).Preload("Options")

	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.AnimalType != "" {
		query = query.Where("animal_type = ?", filter.AnimalType)
	}
	if filter.HasMin || filter.HasMax {
		// A product matches when any of its options falls in the band.
		sub := r.db.Model(&model.ProductOption{}).
			Select("product_id").
			Where("deleted_at IS NULL")
		if filter.HasMin {
			sub = sub.Where("price >= ?", filter.MinPrice)
		}
		if filter.HasMax {
			sub = sub.Where("price < ?", filter.MaxPrice)
		}
		query = query.Where("id IN (?)", sub)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to search products in database", err, map[string]interface{}{
			"keyword": filter.Keyword,
		})
		return nil, err
	}

	logger.Debug("Product search completed in database", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindPopular(limit int) ([]model.Product, error) {
	logger.Debug("Finding popular products in database", map[string]interface{}{
		"limit": limit,
	})

	var products []model.Product
	err := r.db.Preload("Options").
		Order("total_purchases DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		logger.Error("Failed to find popular products in database", err)
		return nil, err
	}

	return products, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
	})

	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}

	return nil
}

func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	if err := r.db.Delete(&model.Product{}, id).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	return nil
}
