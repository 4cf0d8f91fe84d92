package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/internal/db"
	"gorm.io/gorm"
)

func setupProductTest(t *testing.T) (*gorm.DB, ProductRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	return testDB, NewProductRepository(testDB)
}

func seedCatalog(t *testing.T, repo ProductRepository) {
	products := []model.Product{
		{
			Name:        "Salmon Dog Treats",
			Description: "Freeze-dried salmon bites",
			Category:    "food",
			AnimalType:  "dog",
			Status:      true,
			Options: []model.ProductOption{
				{Size: "S", Price: 90, Stock: 10},
				{Size: "L", Price: 250, Stock: 4},
			},
		},
		{
			Name:        "Cat Climbing Tower",
			Description: "Three level sisal tower",
			Category:    "furniture",
			AnimalType:  "cat",
			Status:      true,
			Options: []model.ProductOption{
				{Size: "M", Price: 1200, Stock: 2},
			},
		},
		{
			Name:        "Dog Raincoat",
			Description: "Waterproof coat with hood",
			Category:    "clothing",
			AnimalType:  "dog",
			Status:      true,
			Options: []model.ProductOption{
				{Size: "M", Price: 350, Stock: 7},
			},
		},
	}
	for i := range products {
		require.NoError(t, repo.Create(&products[i]))
	}
}

func TestProductRepository_Create(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := &model.Product{
		Name:       "Salmon Dog Treats",
		Category:   "food",
		AnimalType: "dog",
		Status:     true,
		Options: []model.ProductOption{
			{Size: "S", Price: 90, Stock: 10},
		},
	}

	err := repo.Create(product)
	assert.NoError(t, err)
	assert.NotZero(t, product.ID)
	require.Len(t, product.Options, 1)
	assert.Equal(t, product.ID, product.Options[0].ProductID)
}

func TestProductRepository_FindByID(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)
	seedCatalog(t, repo)

	all, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, all, 3)

	found, err := repo.FindByID(all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, all[0].Name, found.Name)
	assert.NotEmpty(t, found.Options)

	_, err = repo.FindByID(99999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProductRepository_Search_Keyword(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)
	seedCatalog(t, repo)

	// Keyword matches names and descriptions
	results, err := repo.Search(ProductSearchFilter{Keyword: "salmon"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Salmon Dog Treats", results[0].Name)

	results, err = repo.Search(ProductSearchFilter{Keyword: "waterproof"})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestProductRepository_Search_CategoryAndAnimal(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)
	seedCatalog(t, repo)

	results, err := repo.Search(ProductSearchFilter{AnimalType: "dog"})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = repo.Search(ProductSearchFilter{Category: "furniture", AnimalType: "cat"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Cat Climbing Tower", results[0].Name)

	results, err = repo.Search(ProductSearchFilter{Category: "furniture", AnimalType: "dog"})
	require.NoError(t, err)
	assert.Len(t, results, 0)
}

func TestProductRepository_Search_PriceBand(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)
	seedCatalog(t, repo)

	// Under 100: only the small treats option qualifies
	results, err := repo.Search(ProductSearchFilter{MaxPrice: 100, HasMax: true})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Salmon Dog Treats", results[0].Name)

	// 100 to 500: treats (L option) and the raincoat
	results, err = repo.Search(ProductSearchFilter{MinPrice: 100, MaxPrice: 500, HasMin: true, HasMax: true})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// 1000 and up
	results, err = repo.Search(ProductSearchFilter{MinPrice: 1000, HasMin: true})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Cat Climbing Tower", results[0].Name)
}

func TestProductRepository_FindPopular(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)
	seedCatalog(t, repo)

	all, err := repo.FindAll()
	require.NoError(t, err)

	optionRepo := NewProductOptionRepository(testDB)
	require.NoError(t, optionRepo.IncrementPurchases(all[1].ID, 5))
	require.NoError(t, optionRepo.IncrementPurchases(all[2].ID, 2))

	popular, err := repo.FindPopular(2)
	require.NoError(t, err)
	require.Len(t, popular, 2)
	assert.Equal(t, all[1].ID, popular[0].ID)
	assert.Equal(t, all[2].ID, popular[1].ID)
}

func TestProductRepository_Delete(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)
	seedCatalog(t, repo)

	all, _ := repo.FindAll()
	err := repo.Delete(all[0].ID)
	assert.NoError(t, err)

	_, err = repo.FindByID(all[0].ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
