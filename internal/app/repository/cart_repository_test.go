package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/internal/db"
	"gorm.io/gorm"
)

func setupCartTest(t *testing.T) (*gorm.DB, CartRepository, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewCartRepository(testDB)

	// Create test user
	lineID := "U1234567890"
	user := &model.User{
		LineID:      &lineID,
		DisplayName: "Test User",
		Role:        model.RoleUser,
	}
	testDB.Create(user)

	// Create test product with two size options
	product := &model.Product{
		Name:       "Salmon Dog Treats",
		Category:   "food",
		AnimalType: "dog",
		Status:     true,
		Options: []model.ProductOption{
			{Size: "S", Price: 100, Stock: 10},
			{Size: "L", Price: 180, Stock: 5},
		},
	}
	testDB.Create(product)

	return testDB, repo, user, product
}

func TestCartRepository_Create(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cartItem := &model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Size:      "S",
		Quantity:  2,
	}

	err := repo.Create(cartItem)
	assert.NoError(t, err)
	assert.NotZero(t, cartItem.ID)
}

func TestCartRepository_FindByUserID(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	// Same product in two sizes stays two separate lines
	repo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Size: "S", Quantity: 2})
	repo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Size: "L", Quantity: 1})

	items, err := repo.FindByUserID(user.ID)
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	require.NotNil(t, items[0].Product)
	assert.Len(t, items[0].Product.Options, 2)
}

func TestCartRepository_FindByID(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cartItem := &model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Size:      "S",
		Quantity:  3,
	}
	repo.Create(cartItem)

	found, err := repo.FindByID(cartItem.ID)
	require.NoError(t, err)
	assert.Equal(t, cartItem.ID, found.ID)
	assert.Equal(t, 3, found.Quantity)
	assert.NotNil(t, found.Product)
}

func TestCartRepository_FindByUserProductSize(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	repo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Size: "S", Quantity: 2})
	repo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Size: "L", Quantity: 1})

	found, err := repo.FindByUserProductSize(user.ID, product.ID, "L")
	require.NoError(t, err)
	assert.Equal(t, "L", found.Size)
	assert.Equal(t, 1, found.Quantity)

	// Unknown size is a record-not-found, not a match
	_, err = repo.FindByUserProductSize(user.ID, product.ID, "XL")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCartRepository_Update(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cartItem := &model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Size:      "S",
		Quantity:  2,
	}
	repo.Create(cartItem)

	cartItem.Quantity = 5
	err := repo.Update(cartItem)
	assert.NoError(t, err)

	updated, _ := repo.FindByID(cartItem.ID)
	assert.Equal(t, 5, updated.Quantity)
}

func TestCartRepository_Delete(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cartItem := &model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Size:      "S",
		Quantity:  2,
	}
	repo.Create(cartItem)

	err := repo.Delete(cartItem.ID)
	assert.NoError(t, err)

	_, err = repo.FindByID(cartItem.ID)
	assert.Error(t, err)
}

func TestCartRepository_DeleteByUserID(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	repo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Size: "S", Quantity: 1})
	repo.Create(&model.CartItem{UserID: user.ID, ProductID: product.ID, Size: "L", Quantity: 2})

	err := repo.DeleteByUserID(user.ID)
	assert.NoError(t, err)

	items, _ := repo.FindByUserID(user.ID)
	assert.Len(t, items, 0)
}
