package service

import (
	"errors"
	"time"

	"github.com/tanawit/petnest-backend/config"
	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/internal/app/repository"
	"github.com/tanawit/petnest-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrCartEmpty         = errors.New("cart is empty")
	ErrProductOutOfStock = errors.New("product is out of stock")
	ErrNoDefaultAddress  = errors.New("no default address")
)

type CartService interface {
	GetCart(userID uint) ([]model.CartLine, error)
	AddItem(userID, productID uint, size string) error
	ReduceItem(userID, productID uint, size string, removeAll bool) error
	ClearCart(userID uint) error
	Checkout(userID uint, discount float64) (*model.Order, error)
}

type cartService struct {
	cartRepo     repository.CartRepository
	productRepo  repository.ProductRepository
	addressRepo  repository.AddressRepository
	userRepo     repository.UserRepository
	orderService OrderService
	products     ProductService
	checkoutCfg  config.CheckoutConfig
}

func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	addressRepo repository.AddressRepository,
	userRepo repository.UserRepository,
	orderService OrderService,
	products ProductService,
	checkoutCfg config.CheckoutConfig,
) CartService {
	return &cartService{
		cartRepo:     cartRepo,
		productRepo:  productRepo,
		addressRepo:  addressRepo,
		userRepo:     userRepo,
		orderService: orderService,
		products:     products,
		checkoutCfg:  checkoutCfg,
	}
}

// GetCart returns the cart joined with live product data. Lines whose
// product or option no longer resolves are logged and dropped rather
// than failing the whole view.
func (s *cartService) GetCart(userID uint) ([]model.CartLine, error) {
	logger.Debug("Fetching user cart", map[string]interface{}{
		"user_id": userID,
	})

	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	lines := make([]model.CartLine, 0, len(items))
	for _, item := range items {
		if item.Product == nil {
			logger.Warn("Dropping cart line: product no longer exists", map[string]interface{}{
				"user_id":    userID,
				"product_id": item.ProductID,
			})
			continue
		}
		option := item.Product.Option(item.Size)
		if option == nil {
			logger.Warn("Dropping cart line: product option no longer exists", map[string]interface{}{
				"user_id":    userID,
				"product_id": item.ProductID,
				"size":       item.Size,
			})
			continue
		}
		lines = append(lines, model.CartLine{
			ProductID:   item.ProductID,
			Name:        item.Product.Name,
			Description: item.Product.Description,
			Size:        item.Size,
			Price:       option.Price,
			Quantity:    item.Quantity,
			ImageURL:    item.Product.ImageURL,
		})
	}

	logger.Info("User cart fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(lines),
	})
	return lines, nil
}

// AddItem puts one unit of (product, size) into the cart. An existing
// line is incremented. Stock exhaustion reads as "not found" to the
// storefront.
func (s *cartService) AddItem(userID, productID uint, size string) error {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"size":       size,
	})

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return ErrProductNotFound
		}
		return err
	}

	option := product.Option(size)
	if option == nil {
		logger.Warn("Cannot add to cart: product option not found", map[string]interface{}{
			"product_id": productID,
			"size":       size,
		})
		return ErrProductOptionNotFound
	}

	if option.Stock <= 0 {
		logger.Warn("Cannot add to cart: option out of stock", map[string]interface{}{
			"product_id": productID,
			"size":       size,
		})
		return ErrProductOutOfStock
	}

	existing, err := s.cartRepo.FindByUserProductSize(userID, productID, size)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return s.cartRepo.Create(&model.CartItem{
			UserID:    userID,
			ProductID: productID,
			Size:      size,
			Quantity:  1,
		})
	}

	if existing.Quantity >= option.Stock {
		logger.Warn("Cannot add to cart: cart already holds all available stock", map[string]interface{}{
			"product_id": productID,
			"size":       size,
			"stock":      option.Stock,
			"in_cart":    existing.Quantity,
		})
		return ErrProductOutOfStock
	}

	existing.Quantity++
	return s.cartRepo.Update(existing)
}

// ReduceItem removes one unit, or the whole line when removeAll is set
// or the quantity reaches zero.
func (s *cartService) ReduceItem(userID, productID uint, size string, removeAll bool) error {
	logger.Info("Reducing cart item", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"size":       size,
		"remove_all": removeAll,
	})

	item, err := s.cartRepo.FindByUserProductSize(userID, productID, size)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}

	if removeAll || item.Quantity <= 1 {
		return s.cartRepo.Delete(item.ID)
	}

	item.Quantity--
	return s.cartRepo.Update(item)
}

func (s *cartService) ClearCart(userID uint) error {
	return s.cartRepo.DeleteByUserID(userID)
}

// Checkout turns the cart into an order. The steps run in a fixed
// sequence without a wrapping transaction: once the order row exists
// it stays, even if a later stock decrement fails. Any failure before
// the order is created leaves the cart untouched and creates nothing.
func (s *cartService) Checkout(userID uint, discount float64) (*model.Order, error) {
	logger.Info("Starting checkout", map[string]interface{}{
		"user_id":  userID,
		"discount": discount,
	})

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	address, err := s.findDefaultAddress(userID)
	if err != nil {
		return nil, err
	}

	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		logger.Warn("Checkout rejected: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrCartEmpty
	}

	var (
		orderItems    []model.OrderItem
		subtotal      float64
		totalQuantity int
	)
	for _, item := range items {
		if item.Product == nil {
			return nil, ErrProductNotFound
		}
		option := item.Product.Option(item.Size)
		if option == nil {
			return nil, ErrProductOptionNotFound
		}
		orderItems = append(orderItems, model.OrderItem{
			ProductID: item.ProductID,
			Size:      item.Size,
			Quantity:  item.Quantity,
			Price:     option.Price,
		})
		subtotal += option.Price * float64(item.Quantity)
		totalQuantity += item.Quantity
	}

	shipping := s.checkoutCfg.ShippingFee
	if discount < 0 {
		discount = 0
	}
	if discount > subtotal {
		discount = subtotal
	}
	totalPrice := subtotal + shipping - discount

	order := &model.Order{
		OrderCode:     s.orderService.GenerateOrderCode(),
		UserID:        userID,
		AddressID:     address.ID,
		Items:         orderItems,
		Subtotal:      subtotal,
		Discount:      discount,
		Shipping:      shipping,
		TotalPrice:    totalPrice,
		TotalQuantity: totalQuantity,
		Status:        model.OrderStatusPending,
		OrderDate:     time.Now(),
		IsReviewed:    false,
	}

	created, err := s.orderService.Create(order)
	if err != nil {
		logger.Error("Checkout failed: could not create order", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	// The order is durable from here on. A stock decrement failure
	// propagates to the caller but the order row remains.
	for _, item := range created.Items {
		if err := s.products.ReduceStock(item.ProductID, item.Size, item.Quantity); err != nil {
			logger.Error("Checkout stock decrement failed after order creation", err, map[string]interface{}{
				"order_id":   created.ID,
				"order_code": created.OrderCode,
				"product_id": item.ProductID,
				"size":       item.Size,
			})
			return nil, err
		}
		s.products.IncrementPurchases(item.ProductID, item.Quantity)
	}

	if err := s.cartRepo.DeleteByUserID(userID); err != nil {
		logger.Error("Failed to clear cart after checkout", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": created.ID,
		})
		return nil, err
	}

	logger.Info("Checkout completed", map[string]interface{}{
		"user_id":    userID,
		"order_id":   created.ID,
		"order_code": created.OrderCode,
		"total":      created.TotalPrice,
	})
	return created, nil
}

func (s *cartService) findDefaultAddress(userID uint) (*model.Address, error) {
	addresses, err := s.addressRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	for i := range addresses {
		if addresses[i].IsDefault {
			return &addresses[i], nil
		}
	}
	logger.Warn("Checkout rejected: user has no default address", map[string]interface{}{
		"user_id": userID,
	})
	return nil, ErrNoDefaultAddress
}
