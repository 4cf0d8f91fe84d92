package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanawit/petnest-backend/config"
	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/internal/app/repository"
	"github.com/tanawit/petnest-backend/internal/db"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (CartService, ProductService, *model.User, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	optionRepo := repository.NewProductOptionRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	addressRepo := repository.NewAddressRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)

	productService := NewProductService(productRepo, optionRepo)
	orderService := NewOrderService(orderRepo, productService, nil)
	cartService := NewCartService(
		cartRepo, productRepo, addressRepo, userRepo,
		orderService, productService,
		config.CheckoutConfig{ShippingFee: 20},
	)

	lineID := "U1234567890"
	user := &model.User{
		LineID:      &lineID,
		DisplayName: "Test User",
		Role:        model.RoleUser,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:       "Salmon Dog Treats",
		Category:   "food",
		AnimalType: "dog",
		Status:     true,
		Options: []model.ProductOption{
			{Size: "S", Price: 100, Stock: 5},
			{Size: "L", Price: 180, Stock: 1},
		},
	}
	testDB.Create(product)

	return cartService, productService, user, product, testDB
}

func createDefaultAddress(t *testing.T, testDB *gorm.DB, userID uint) *model.Address {
	address := &model.Address{
		UserID:    userID,
		Name:      "Test",
		Phone:     "0812345678",
		Address:   "1 Test Road",
		IsDefault: true,
	}
	require.NoError(t, testDB.Create(address).Error)
	return address
}

func TestCartService_GetCart_Empty(t *testing.T) {
	cartService, _, user, _, _ := setupCartServiceTest(t)

	lines, err := cartService.GetCart(user.ID)
	assert.NoError(t, err)
	assert.Len(t, lines, 0)
}

func TestCartService_AddItem(t *testing.T) {
	cartService, _, user, product, _ := setupCartServiceTest(t)

	err := cartService.AddItem(user.ID, product.ID, "S")
	assert.NoError(t, err)

	lines, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, 100.0, lines[0].Price)
}

func TestCartService_AddItem_MergesExistingLine(t *testing.T) {
	cartService, _, user, product, _ := setupCartServiceTest(t)

	require.NoError(t, cartService.AddItem(user.ID, product.ID, "S"))
	require.NoError(t, cartService.AddItem(user.ID, product.ID, "S"))

	lines, _ := cartService.GetCart(user.ID)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestCartService_AddItem_SizesAreSeparateLines(t *testing.T) {
	cartService, _, user, product, _ := setupCartServiceTest(t)

	require.NoError(t, cartService.AddItem(user.ID, product.ID, "S"))
	require.NoError(t, cartService.AddItem(user.ID, product.ID, "L"))

	lines, _ := cartService.GetCart(user.ID)
	assert.Len(t, lines, 2)
}

func TestCartService_AddItem_ProductNotFound(t *testing.T) {
	cartService, _, user, _, _ := setupCartServiceTest(t)

	err := cartService.AddItem(user.ID, 9999, "S")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_AddItem_OptionNotFound(t *testing.T) {
	cartService, _, user, product, _ := setupCartServiceTest(t)

	err := cartService.AddItem(user.ID, product.ID, "XL")
	assert.ErrorIs(t, err, ErrProductOptionNotFound)
}

func TestCartService_AddItem_OutOfStock(t *testing.T) {
	cartService, _, user, product, _ := setupCartServiceTest(t)

	// The L option has one unit; a second add would exceed stock
	require.NoError(t, cartService.AddItem(user.ID, product.ID, "L"))
	err := cartService.AddItem(user.ID, product.ID, "L")
	assert.ErrorIs(t, err, ErrProductOutOfStock)
}

func TestCartService_AddItem_ZeroStock(t *testing.T) {
	cartService, _, user, _, testDB := setupCartServiceTest(t)

	product := &model.Product{
		Name:     "Sold Out Toy",
		Category: "toys",
		Status:   true,
		Options:  []model.ProductOption{{Size: "M", Price: 50, Stock: 0}},
	}
	testDB.Create(product)

	err := cartService.AddItem(user.ID, product.ID, "M")
	assert.ErrorIs(t, err, ErrProductOutOfStock)
}

func TestCartService_ReduceItem(t *testing.T) {
	cartService, _, user, product, _ := setupCartServiceTest(t)

	require.NoError(t, cartService.AddItem(user.ID, product.ID, "S"))
	require.NoError(t, cartService.AddItem(user.ID, product.ID, "S"))

	err := cartService.ReduceItem(user.ID, product.ID, "S", false)
	assert.NoError(t, err)

	lines, _ := cartService.GetCart(user.ID)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)

	// Reducing the last unit removes the line
	err = cartService.ReduceItem(user.ID, product.ID, "S", false)
	assert.NoError(t, err)

	lines, _ = cartService.GetCart(user.ID)
	assert.Len(t, lines, 0)
}

func TestCartService_ReduceItem_RemoveAll(t *testing.T) {
	cartService, _, user, product, _ := setupCartServiceTest(t)

	require.NoError(t, cartService.AddItem(user.ID, product.ID, "S"))
	require.NoError(t, cartService.AddItem(user.ID, product.ID, "S"))
	require.NoError(t, cartService.AddItem(user.ID, product.ID, "S"))

	err := cartService.ReduceItem(user.ID, product.ID, "S", true)
	assert.NoError(t, err)

	lines, _ := cartService.GetCart(user.ID)
	assert.Len(t, lines, 0)
}

func TestCartService_ReduceItem_NotFound(t *testing.T) {
	cartService, _, user, product, _ := setupCartServiceTest(t)

	err := cartService.ReduceItem(user.ID, product.ID, "S", false)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestCartService_Checkout(t *testing.T) {
	cartService, productService, user, product, testDB := setupCartServiceTest(t)
	createDefaultAddress(t, testDB, user.ID)

	require.NoError(t, cartService.AddItem(user.ID, product.ID, "S"))
	require.NoError(t, cartService.AddItem(user.ID, product.ID, "S"))

	order, err := cartService.Checkout(user.ID, 0)
	require.NoError(t, err)

	assert.Equal(t, "ORD00001", order.OrderCode)
	assert.Equal(t, 200.0, order.Subtotal)
	assert.Equal(t, 20.0, order.Shipping)
	assert.Equal(t, 220.0, order.TotalPrice)
	assert.Equal(t, 2, order.TotalQuantity)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 100.0, order.Items[0].Price)

	// Stock decremented
	updated, err := productService.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Option("S").Stock)
	assert.Equal(t, 2, updated.TotalPurchases)

	// Cart cleared
	lines, _ := cartService.GetCart(user.ID)
	assert.Len(t, lines, 0)
}

func TestCartService_Checkout_SequentialOrderCodes(t *testing.T) {
	cartService, _, user, product, testDB := setupCartServiceTest(t)
	createDefaultAddress(t, testDB, user.ID)

	require.NoError(t, cartService.AddItem(user.ID, product.ID, "S"))
	first, err := cartService.Checkout(user.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "ORD00001", first.OrderCode)

	require.NoError(t, cartService.AddItem(user.ID, product.ID, "S"))
	second, err := cartService.Checkout(user.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "ORD00002", second.OrderCode)
}

func TestCartService_Checkout_DiscountClamped(t *testing.T) {
	cartService, _, user, product, testDB := setupCartServiceTest(t)
	createDefaultAddress(t, testDB, user.ID)

	require.NoError(t, cartService.AddItem(user.ID, product.ID, "S"))

	// Discount above the subtotal is clamped down to it
	order, err := cartService.Checkout(user.ID, 500)
	require.NoError(t, err)
	assert.Equal(t, 100.0, order.Subtotal)
	assert.Equal(t, 100.0, order.Discount)
	assert.Equal(t, 20.0, order.TotalPrice)
}

func TestCartService_Checkout_NegativeDiscountIgnored(t *testing.T) {
	cartService, _, user, product, testDB := setupCartServiceTest(t)
	createDefaultAddress(t, testDB, user.ID)

	require.NoError(t, cartService.AddItem(user.ID, product.ID, "S"))

	order, err := cartService.Checkout(user.ID, -50)
	require.NoError(t, err)
	assert.Equal(t, 0.0, order.Discount)
	assert.Equal(t, 120.0, order.TotalPrice)
}

func TestCartService_Checkout_EmptyCart(t *testing.T) {
	cartService, _, user, _, testDB := setupCartServiceTest(t)
	createDefaultAddress(t, testDB, user.ID)

	_, err := cartService.Checkout(user.ID, 0)
	assert.ErrorIs(t, err, ErrCartEmpty)

	// Nothing was created
	var count int64
	testDB.Model(&model.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCartService_Checkout_NoDefaultAddress(t *testing.T) {
	cartService, _, user, product, testDB := setupCartServiceTest(t)

	require.NoError(t, cartService.AddItem(user.ID, product.ID, "S"))

	_, err := cartService.Checkout(user.ID, 0)
	assert.ErrorIs(t, err, ErrNoDefaultAddress)

	// Cart untouched, no order created
	lines, _ := cartService.GetCart(user.ID)
	assert.Len(t, lines, 1)
	var count int64
	testDB.Model(&model.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCartService_Checkout_RetiredProductFails(t *testing.T) {
	cartService, _, user, product, testDB := setupCartServiceTest(t)
	createDefaultAddress(t, testDB, user.ID)

	require.NoError(t, cartService.AddItem(user.ID, product.ID, "S"))

	// Product retired between add and checkout
	require.NoError(t, testDB.Delete(product).Error)

	_, err := cartService.Checkout(user.ID, 0)
	assert.ErrorIs(t, err, ErrProductNotFound)

	// No order created, cart line still there
	var orders int64
	testDB.Model(&model.Order{}).Count(&orders)
	assert.Equal(t, int64(0), orders)
	var lines int64
	testDB.Model(&model.CartItem{}).Where("user_id = ?", user.ID).Count(&lines)
	assert.Equal(t, int64(1), lines)
}

func TestCartService_Checkout_RetiredSizeFails(t *testing.T) {
	cartService, _, user, product, testDB := setupCartServiceTest(t)
	createDefaultAddress(t, testDB, user.ID)

	require.NoError(t, cartService.AddItem(user.ID, product.ID, "S"))

	// The size sold in the cart no longer exists
	require.NoError(t, testDB.
		Where("product_id = ? AND size = ?", product.ID, "S").
		Delete(&model.ProductOption{}).Error)

	_, err := cartService.Checkout(user.ID, 0)
	assert.ErrorIs(t, err, ErrProductOptionNotFound)

	var orders int64
	testDB.Model(&model.Order{}).Count(&orders)
	assert.Equal(t, int64(0), orders)
	var lines int64
	testDB.Model(&model.CartItem{}).Where("user_id = ?", user.ID).Count(&lines)
	assert.Equal(t, int64(1), lines)
}

func TestCartService_Checkout_UserNotFound(t *testing.T) {
	cartService, _, _, _, _ := setupCartServiceTest(t)

	_, err := cartService.Checkout(9999, 0)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
