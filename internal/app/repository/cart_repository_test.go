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

func setupCartTest(t *testing.T) (*gorm.DB, CartRepository, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewCartRepository(testDB)

	// Create test user
	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hash",
		Name:         "Test User",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	// Create test product
	product := &model.Product{
		Name:          "Test Product",
		Price:         decimal.NewFromFloat(25.99),
		Category:      model.CategoryMen,
		StockQuantity: 10,
	}
	testDB.Create(product)

	return testDB, repo, user, product
}

func TestCartRepository_GetOrCreate(t *testing.T) {
	testDB, repo, user, _ := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)
	assert.NotZero(t, cart.ID)
	assert.Equal(t, user.ID, cart.UserID)

	// Second call returns the same cart
	again, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)
}

func TestCartRepository_CreateItem(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)

	item := &model.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Quantity:  2,
	}

	err = repo.CreateItem(item)
	assert.NoError(t, err)
	assert.NotZero(t, item.ID)
}

func TestCartRepository_CreateItem_DuplicateProduct(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)

	err = repo.CreateItem(&model.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	// The composite unique index rejects a second line for the same product
	err = repo.CreateItem(&model.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1})
	assert.Error(t, err)
}

func TestCartRepository_FindByUserID(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)

	require.NoError(t, repo.CreateItem(&model.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 2}))

	found, err := repo.FindByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, found.ID)
	require.Len(t, found.Items, 1)
	assert.Equal(t, product.ID, found.Items[0].ProductID)
	assert.Equal(t, product.Name, found.Items[0].Product.Name)
}

func TestCartRepository_FindItem(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)

	item := &model.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 3}
	require.NoError(t, repo.CreateItem(item))

	found, err := repo.FindItem(cart.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)
	assert.Equal(t, 3, found.Quantity)
}

func TestCartRepository_UpdateItem(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)

	item := &model.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 2}
	require.NoError(t, repo.CreateItem(item))

	item.Quantity = 5
	err = repo.UpdateItem(item)
	assert.NoError(t, err)

	updated, _ := repo.FindItemByID(item.ID)
	assert.Equal(t, 5, updated.Quantity)
}

func TestCartRepository_UpdateQuantities(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	product2 := &model.Product{
		Name:     "Second Product",
		Price:    decimal.NewFromFloat(10.00),
		Category: model.CategoryWomen,
	}
	testDB.Create(product2)

	cart, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)

	item1 := &model.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1}
	item2 := &model.CartItem{CartID: cart.ID, ProductID: product2.ID, Quantity: 1}
	require.NoError(t, repo.CreateItem(item1))
	require.NoError(t, repo.CreateItem(item2))

	err = repo.UpdateQuantities(cart.ID, map[uint]int{
		item1.ID: 4,
		item2.ID: 7,
	})
	require.NoError(t, err)

	updated1, _ := repo.FindItemByID(item1.ID)
	updated2, _ := repo.FindItemByID(item2.ID)
	assert.Equal(t, 4, updated1.Quantity)
	assert.Equal(t, 7, updated2.Quantity)
}

func TestCartRepository_UpdateQuantities_ZeroDeletes(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)

	item := &model.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 3}
	require.NoError(t, repo.CreateItem(item))

	err = repo.UpdateQuantities(cart.ID, map[uint]int{
		item.ID: 0,
	})
	require.NoError(t, err)

	_, err = repo.FindItemByID(item.ID)
	assert.Error(t, err)
}

func TestCartRepository_UpdateQuantities_RollsBackOnMissingItem(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)

	item := &model.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1}
	require.NoError(t, repo.CreateItem(item))

	err = repo.UpdateQuantities(cart.ID, map[uint]int{
		item.ID: 9,
		99999:   2,
	})
	assert.Error(t, err)

	// The valid update must not have been applied
	unchanged, _ := repo.FindItemByID(item.ID)
	assert.Equal(t, 1, unchanged.Quantity)
}

func TestCartRepository_DeleteItem(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)

	item := &model.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 2}
	require.NoError(t, repo.CreateItem(item))

	err = repo.DeleteItem(item.ID)
	assert.NoError(t, err)

	_, err = repo.FindItemByID(item.ID)
	assert.Error(t, err)
}

func TestCartRepository_ClearItems(t *testing.T) {
	testDB, repo, user, product := setupCartTest(t)
	defer db.CleanupTestDB(testDB)

	cart, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)

	require.NoError(t, repo.CreateItem(&model.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: 1}))

	err = repo.ClearItems(cart.ID)
	assert.NoError(t, err)

	found, _ := repo.FindByUserID(user.ID)
	assert.Len(t, found.Items, 0)
}
