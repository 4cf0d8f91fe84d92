package service

import (
	"errors"
	"fmt"

	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/internal/app/repository"
	"github.com/tanawit/petnest-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrProductOptionNotFound = errors.New("product option not found")
	ErrDuplicateOptionSize   = errors.New("duplicate option size")
	ErrInvalidOption         = errors.New("invalid option payload")
	ErrInsufficientStock     = errors.New("insufficient stock")
)

// ProductInput is the admin create/update payload.
type ProductInput struct {
	Name        string
	About       string
	Description string
	Category    string
	AnimalType  string
	ImageURL    string
	Status      *bool
	Options     []OptionInput
}

type OptionInput struct {
	Size  string
	Price float64
	Stock int
}

// PriceBucket names a price band used by product search.
// Bands: lt100, 100to500, 500to1000, gte1000.
type PriceBucket string

const (
	BucketUnder100  PriceBucket = "lt100"
	Bucket100To500  PriceBucket = "100to500"
	Bucket500To1000 PriceBucket = "500to1000"
	BucketOver1000  PriceBucket = "gte1000"
)

type ProductSearchOptions struct {
	Keyword    string
	Category   string
	AnimalType string
	Bucket     PriceBucket
}

type ProductService interface {
	Create(input ProductInput) (*model.Product, error)
	GetAll() ([]model.Product, error)
	GetByID(id uint) (*model.Product, error)
	Search(opts ProductSearchOptions) ([]model.Product, error)
	GetPopular(limit int) ([]model.Product, error)
	Update(id uint, input ProductInput) (*model.Product, error)
	Delete(id uint) error
	ReduceStock(productID uint, size string, quantity int) error
	RestoreStock(productID uint, size string, quantity int) error
	IncrementPurchases(productID uint, amount int)
}

type productService struct {
	productRepo repository.ProductRepository
	optionRepo  repository.ProductOptionRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	optionRepo repository.ProductOptionRepository,
) ProductService {
	return &productService{
		productRepo: productRepo,
		optionRepo:  optionRepo,
	}
}

func (s *productService) Create(input ProductInput) (*model.Product, error) {
	logger.Info("Creating product", map[string]interface{}{
		"name":     input.Name,
		"category": input.Category,
		"options":  len(input.Options),
	})

	options, err := buildOptions(input.Options)
	if err != nil {
		logger.Warn("Rejected product creation: invalid options", map[string]interface{}{
			"name": input.Name,
		})
		return nil, err
	}

	status := true
	if input.Status != nil {
		status = *input.Status
	}

	product := &model.Product{
		Name:        input.Name,
		About:       input.About,
		Description: input.Description,
		Category:    input.Category,
		AnimalType:  input.AnimalType,
		ImageURL:    input.ImageURL,
		Status:      status,
		Options:     options,
	}

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": input.Name,
		})
		return nil, err
	}

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return product, nil
}

func (s *productService) GetAll() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *productService) GetByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) Search(opts ProductSearchOptions) ([]model.Product, error) {
	logger.Debug("Searching products", map[string]interface{}{
		"keyword":     opts.Keyword,
		"category":    opts.Category,
		"animal_type": opts.AnimalType,
		"bucket":      opts.Bucket,
	})

	filter := repository.ProductSearchFilter{
		Keyword:    opts.Keyword,
		Category:   opts.Category,
		AnimalType: opts.AnimalType,
	}

	switch opts.Bucket {
	case BucketUnder100:
		filter.MaxPrice, filter.HasMax = 100, true
	case Bucket100To500:
		filter.MinPrice, filter.HasMin = 100, true
		filter.MaxPrice, filter.HasMax = 500, true
	case Bucket500To1000:
		filter.MinPrice, filter.HasMin = 500, true
		filter.MaxPrice, filter.HasMax = 1000, true
	case BucketOver1000:
		filter.MinPrice, filter.HasMin = 1000, true
	}

	products, err := s.productRepo.Search(filter)
	if err != nil {
		return nil, err
	}

	// Search covers the storefront, so inactive products stay hidden.
	active := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.Status {
			active = append(active, p)
		}
	}
	return active, nil
}

func (s *productService) GetPopular(limit int) ([]model.Product, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.productRepo.FindPopular(limit)
}

func (s *productService) Update(id uint, input ProductInput) (*model.Product, error) {
	logger.Info("Updating product", map[string]interface{}{
		"product_id": id,
	})

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.About != "" {
		product.About = input.About
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.Category != "" {
		product.Category = input.Category
	}
	if input.AnimalType != "" {
		product.AnimalType = input.AnimalType
	}
	if input.ImageURL != "" {
		product.ImageURL = input.ImageURL
	}
	if input.Status != nil {
		product.Status = *input.Status
	}

	if len(input.Options) > 0 {
		options, err := buildOptions(input.Options)
		if err != nil {
			return nil, err
		}
		// Replace the option set: retire rows whose size disappeared,
		// update survivors in place so their IDs are stable.
		existing := make(map[string]*model.ProductOption, len(product.Options))
		for i := range product.Options {
			existing[product.Options[i].Size] = &product.Options[i]
		}
		for _, opt := range options {
			if cur, ok := existing[opt.Size]; ok {
				cur.Price = opt.Price
				cur.Stock = opt.Stock
				if err := s.optionRepo.Update(cur); err != nil {
					return nil, err
				}
				delete(existing, opt.Size)
				continue
			}
			opt.ProductID = product.ID
			created := opt
			if err := s.optionRepo.Create(&created); err != nil {
				return nil, err
			}
		}
		for _, leftover := range existing {
			if err := s.optionRepo.Delete(leftover.ID); err != nil {
				return nil, err
			}
		}
		product.Options = nil
	}

	if err := s.productRepo.Update(product); err != nil {
		logger.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	return s.productRepo.FindByID(id)
}

func (s *productService) Delete(id uint) error {
	logger.Info("Deleting product", map[string]interface{}{
		"product_id": id,
	})

	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	return s.productRepo.Delete(id)
}

// ReduceStock decrements the stock of one product option. The check
// and the write are separate statements on a loaded row, so concurrent
// decrements of the same option can lose an update; callers accept
// that window.
func (s *productService) ReduceStock(productID uint, size string, quantity int) error {
	logger.Debug("Reducing product stock", map[string]interface{}{
		"product_id": productID,
		"size":       size,
		"quantity":   quantity,
	})

	option, err := s.optionRepo.FindByProductAndSize(productID, size)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductOptionNotFound
		}
		return err
	}

	if option.Stock < quantity {
		logger.Warn("Cannot reduce stock below zero", map[string]interface{}{
			"product_id": productID,
			"size":       size,
			"stock":      option.Stock,
			"requested":  quantity,
		})
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientStock, option.Stock, quantity)
	}

	option.Stock -= quantity
	if err := s.optionRepo.Update(option); err != nil {
		logger.Error("Failed to persist stock reduction", err, map[string]interface{}{
			"product_id": productID,
			"size":       size,
		})
		return err
	}

	return nil
}

// RestoreStock adds quantity back to an option. Used on order
// cancellation.
func (s *productService) RestoreStock(productID uint, size string, quantity int) error {
	logger.Debug("Restoring product stock", map[string]interface{}{
		"product_id": productID,
		"size":       size,
		"quantity":   quantity,
	})

	option, err := s.optionRepo.FindByProductAndSize(productID, size)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductOptionNotFound
		}
		return err
	}

	option.Stock += quantity
	return s.optionRepo.Update(option)
}

// IncrementPurchases bumps the popularity counter. Best-effort: a
// failure is logged and never propagated.
func (s *productService) IncrementPurchases(productID uint, amount int) {
	if err := s.optionRepo.IncrementPurchases(productID, amount); err != nil {
		logger.Error("Failed to increment purchase counter", err, map[string]interface{}{
			"product_id": productID,
			"amount":     amount,
		})
	}
}

func buildOptions(inputs []OptionInput) ([]model.ProductOption, error) {
	if len(inputs) == 0 {
		return nil, ErrInvalidOption
	}

	seen := make(map[string]bool, len(inputs))
	options := make([]model.ProductOption, 0, len(inputs))
	for _, in := range inputs {
		if in.Size == "" || in.Price < 0 || in.Stock < 0 {
			return nil, ErrInvalidOption
		}
		if seen[in.Size] {
			return nil, ErrDuplicateOptionSize
		}
		seen[in.Size] = true
		options = append(options, model.ProductOption{
			Size:  in.Size,
			Price: in.Price,
			Stock: in.Stock,
		})
	}
	return options, nil
}
