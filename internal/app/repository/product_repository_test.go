package repository

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadcart/threadcart-backend/internal/app/model"
	"github.com/threadcart/threadcart-backend/internal/db"
	"gorm.io/gorm"
)

func setupProductTest(t *testing.T) (*gorm.DB, ProductRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewProductRepository(testDB)

	products := []model.Product{
		{
			Name:     "Cotton Tee",
			Category: model.CategoryMen,
			Price:    decimal.NewFromFloat(19.99),
			Season:   model.SeasonAllSeason,
			Fabric:   "Cotton",
			Brand:    "Basics",
		},
		{
			Name:     "Linen Dress",
			Category: model.CategoryWomen,
			Price:    decimal.NewFromFloat(49.50),
			Season:   model.SeasonSummer,
			Fabric:   "Linen",
			Brand:    "Solstice",
		},
		{
			Name:     "Wool Coat",
			Category: model.CategoryWomen,
			Price:    decimal.NewFromFloat(129.00),
			Season:   model.SeasonWinter,
			Fabric:   "Wool",
			Brand:    "Northway",
		},
	}
	for i := range products {
		require.NoError(t, testDB.Create(&products[i]).Error)
	}

	return testDB, repo
}

func TestProductRepository_FindAll(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	products, err := repo.FindAll()
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestProductRepository_FindWithFilter_Category(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	category := model.CategoryWomen
	products, err := repo.FindWithFilter(ProductFilter{Category: &category})
	require.NoError(t, err)
	assert.Len(t, products, 2)
	for _, p := range products {
		assert.Equal(t, model.CategoryWomen, p.Category)
	}
}

func TestProductRepository_FindWithFilter_FabricCaseInsensitive(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	products, err := repo.FindWithFilter(ProductFilter{Fabric: "wOoL"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Wool Coat", products[0].Name)
}

func TestProductRepository_FindWithFilter_PriceRange(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	min := decimal.NewFromFloat(30.00)
	max := decimal.NewFromFloat(100.00)
	products, err := repo.FindWithFilter(ProductFilter{PriceMin: &min, PriceMax: &max})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Linen Dress", products[0].Name)
}

func TestProductRepository_FindWithFilter_Conjunction(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	// Category matches two products but the season narrows it to one
	category := model.CategoryWomen
	season := model.SeasonWinter
	products, err := repo.FindWithFilter(ProductFilter{Category: &category, Season: &season})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Wool Coat", products[0].Name)
}

func TestProductRepository_FindWithFilter_SortByPrice(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	products, err := repo.FindWithFilter(ProductFilter{
		SortBy:        ProductSortPrice,
		SortAscending: true,
	})
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "Cotton Tee", products[0].Name)
	assert.Equal(t, "Wool Coat", products[2].Name)
}

func TestProductRepository_FindByID(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	all, err := repo.FindAll()
	require.NoError(t, err)
	require.NotEmpty(t, all)

	found, err := repo.FindByID(all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, all[0].Name, found.Name)
}

func TestProductRepository_FindByID_NotFound(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	_, err := repo.FindByID(99999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProductRepository_UpdateReviewScore(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	all, err := repo.FindAll()
	require.NoError(t, err)
	require.NotEmpty(t, all)

	err = repo.UpdateReviewScore(all[0].ID, 4.5)
	require.NoError(t, err)

	updated, err := repo.FindByID(all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, updated.ReviewScore)
}

func TestProductRepository_Delete(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	all, err := repo.FindAll()
	require.NoError(t, err)
	require.NotEmpty(t, all)

	err = repo.Delete(all[0].ID)
	require.NoError(t, err)

	_, err = repo.FindByID(all[0].ID)
	assert.Error(t, err)
}
