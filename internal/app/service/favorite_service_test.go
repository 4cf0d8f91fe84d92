package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/internal/app/repository"
	"github.com/tanawit/petnest-backend/internal/db"
	"gorm.io/gorm"
)

func setupFavoriteServiceTest(t *testing.T) (FavoriteService, *model.User, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	favoriteRepo := repository.NewFavoriteRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	favoriteService := NewFavoriteService(favoriteRepo, productRepo)

	lineID := "U1234567890"
	user := &model.User{LineID: &lineID, DisplayName: "Test User", Role: model.RoleUser}
	testDB.Create(user)

	product := &model.Product{
		Name:     "Salmon Dog Treats",
		Category: "food",
		Status:   true,
		Options:  []model.ProductOption{{Size: "S", Price: 100, Stock: 5}},
	}
	testDB.Create(product)

	return favoriteService, user, product, testDB
}

func TestFavoriteService_Add(t *testing.T) {
	favoriteService, user, product, _ := setupFavoriteServiceTest(t)

	err := favoriteService.Add(user.ID, product.ID)
	assert.NoError(t, err)

	favorites, err := favoriteService.GetFavorites(user.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, product.ID, favorites[0].ProductID)
	require.NotNil(t, favorites[0].Product)
	assert.Equal(t, "Salmon Dog Treats", favorites[0].Product.Name)
}

func TestFavoriteService_Add_DuplicateIsNoOp(t *testing.T) {
	favoriteService, user, product, _ := setupFavoriteServiceTest(t)

	require.NoError(t, favoriteService.Add(user.ID, product.ID))
	err := favoriteService.Add(user.ID, product.ID)
	assert.NoError(t, err)

	favorites, _ := favoriteService.GetFavorites(user.ID)
	assert.Len(t, favorites, 1)
}

func TestFavoriteService_Add_ProductNotFound(t *testing.T) {
	favoriteService, user, _, _ := setupFavoriteServiceTest(t)

	err := favoriteService.Add(user.ID, 9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestFavoriteService_Remove(t *testing.T) {
	favoriteService, user, product, _ := setupFavoriteServiceTest(t)

	require.NoError(t, favoriteService.Add(user.ID, product.ID))

	err := favoriteService.Remove(user.ID, product.ID)
	assert.NoError(t, err)

	favorites, _ := favoriteService.GetFavorites(user.ID)
	assert.Len(t, favorites, 0)
}

func TestFavoriteService_Remove_NotFavorited(t *testing.T) {
	favoriteService, user, product, _ := setupFavoriteServiceTest(t)

	err := favoriteService.Remove(user.ID, product.ID)
	assert.ErrorIs(t, err, ErrFavoriteNotFound)
}

func TestFavoriteService_ForceRemove(t *testing.T) {
	favoriteService, user, product, testDB := setupFavoriteServiceTest(t)

	require.NoError(t, favoriteService.Add(user.ID, product.ID))

	// Force removal works even when the product row is gone
	require.NoError(t, testDB.Delete(&model.Product{}, product.ID).Error)

	removed, err := favoriteService.ForceRemove(user.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = favoriteService.ForceRemove(user.ID, product.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestFavoriteService_Check(t *testing.T) {
	favoriteService, user, product, _ := setupFavoriteServiceTest(t)

	found, err := favoriteService.Check(user.ID, product.ID)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, favoriteService.Add(user.ID, product.ID))

	found, err = favoriteService.Check(user.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, found)
}
