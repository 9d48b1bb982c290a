package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadcart/threadcart-backend/internal/app/model"
	"github.com/threadcart/threadcart-backend/internal/app/repository"
	"github.com/threadcart/threadcart-backend/internal/db"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (CartService, *model.User, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartService := NewCartService(cartRepo, productRepo)

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
		Price:         decimal.NewFromFloat(20.00),
		Category:      model.CategoryMen,
		StockQuantity: 10,
	}
	testDB.Create(product)

	return cartService, user, product, testDB
}

func TestCartService_GetUserCart(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	// Initially empty
	summary, err := cartService.GetUserCart(user.ID)
	require.NoError(t, err)
	assert.Len(t, summary.Cart.Items, 0)
	assert.True(t, summary.Total.IsZero())

	// Add item
	_, err = cartService.AddToCart(user.ID, product.ID, 2)
	require.NoError(t, err)

	// Get cart
	summary, err = cartService.GetUserCart(user.ID)
	require.NoError(t, err)
	require.Len(t, summary.Cart.Items, 1)
	assert.Equal(t, 2, summary.Cart.Items[0].Quantity)
	assert.True(t, summary.Total.Equal(decimal.NewFromFloat(40.00)))
}

func TestCartService_GetUserCart_TotalFollowsCurrentPrice(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, product.ID, 2)
	require.NoError(t, err)

	// Reprice the product; the cart total must follow
	require.NoError(t, testDB.Model(product).
		Update("price", decimal.NewFromFloat(35.00)).Error)

	summary, err := cartService.GetUserCart(user.ID)
	require.NoError(t, err)
	assert.True(t, summary.Total.Equal(decimal.NewFromFloat(70.00)))
}

func TestCartService_AddToCart_Success(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	merged, err := cartService.AddToCart(user.ID, product.ID, 3)
	assert.NoError(t, err)
	assert.False(t, merged)

	summary, _ := cartService.GetUserCart(user.ID)
	require.Len(t, summary.Cart.Items, 1)
	assert.Equal(t, 3, summary.Cart.Items[0].Quantity)
}

func TestCartService_AddToCart_ProductNotFound(t *testing.T) {
	cartService, user, _, _ := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, 9999, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_AddToCart_NonPositiveQuantityDefaultsToOne(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, product.ID, 0)
	require.NoError(t, err)

	summary, _ := cartService.GetUserCart(user.ID)
	require.Len(t, summary.Cart.Items, 1)
	assert.Equal(t, 1, summary.Cart.Items[0].Quantity)

	// A negative quantity also counts as one more
	_, err = cartService.AddToCart(user.ID, product.ID, -2)
	require.NoError(t, err)

	summary, _ = cartService.GetUserCart(user.ID)
	require.Len(t, summary.Cart.Items, 1)
	assert.Equal(t, 2, summary.Cart.Items[0].Quantity)
}

func TestCartService_AddToCart_InsufficientStock(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, product.ID, 100)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestCartService_AddToCart_MergesExistingItem(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	merged, err := cartService.AddToCart(user.ID, product.ID, 2)
	require.NoError(t, err)
	assert.False(t, merged)

	// Adding the same product again merges into one line
	merged, err = cartService.AddToCart(user.ID, product.ID, 3)
	require.NoError(t, err)
	assert.True(t, merged)

	summary, _ := cartService.GetUserCart(user.ID)
	require.Len(t, summary.Cart.Items, 1)
	assert.Equal(t, 5, summary.Cart.Items[0].Quantity)
}

func TestCartService_UpdateQuantities_Success(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t)

	product2 := &model.Product{
		Name:          "Second Product",
		Price:         decimal.NewFromFloat(15.00),
		Category:      model.CategoryWomen,
		StockQuantity: 10,
	}
	testDB.Create(product2)

	_, err := cartService.AddToCart(user.ID, product.ID, 1)
	require.NoError(t, err)
	_, err = cartService.AddToCart(user.ID, product2.ID, 1)
	require.NoError(t, err)

	summary, _ := cartService.GetUserCart(user.ID)
	require.Len(t, summary.Cart.Items, 2)

	err = cartService.UpdateQuantities(user.ID, map[uint]int{
		summary.Cart.Items[0].ID: 4,
		summary.Cart.Items[1].ID: 6,
	})
	require.NoError(t, err)

	summary, _ = cartService.GetUserCart(user.ID)
	assert.Equal(t, 4, summary.Cart.Items[0].Quantity)
	assert.Equal(t, 6, summary.Cart.Items[1].Quantity)
}

func TestCartService_UpdateQuantities_RejectsWholeBatchOnBadItem(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, product.ID, 2)
	require.NoError(t, err)

	summary, _ := cartService.GetUserCart(user.ID)
	require.Len(t, summary.Cart.Items, 1)

	err = cartService.UpdateQuantities(user.ID, map[uint]int{
		summary.Cart.Items[0].ID: 8,
		99999:                    3,
	})
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	// The valid change must not have been applied
	summary, _ = cartService.GetUserCart(user.ID)
	assert.Equal(t, 2, summary.Cart.Items[0].Quantity)
}

func TestCartService_UpdateQuantities_ZeroDeletesItem(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, product.ID, 2)
	require.NoError(t, err)

	summary, _ := cartService.GetUserCart(user.ID)
	require.Len(t, summary.Cart.Items, 1)

	err = cartService.UpdateQuantities(user.ID, map[uint]int{
		summary.Cart.Items[0].ID: 0,
	})
	require.NoError(t, err)

	summary, _ = cartService.GetUserCart(user.ID)
	assert.Len(t, summary.Cart.Items, 0)
}

func TestCartService_RemoveFromCart_Success(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, product.ID, 2)
	require.NoError(t, err)

	summary, _ := cartService.GetUserCart(user.ID)
	require.Len(t, summary.Cart.Items, 1)

	err = cartService.RemoveFromCart(user.ID, summary.Cart.Items[0].ID)
	assert.NoError(t, err)

	summary, _ = cartService.GetUserCart(user.ID)
	assert.Len(t, summary.Cart.Items, 0)
}

func TestCartService_RemoveFromCart_OtherUsersItemLooksMissing(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t)

	other := &model.User{
		Email:        "other@example.com",
		PasswordHash: "hash",
		Name:         "Other User",
		Role:         model.RoleUser,
	}
	testDB.Create(other)

	_, err := cartService.AddToCart(user.ID, product.ID, 2)
	require.NoError(t, err)

	summary, _ := cartService.GetUserCart(user.ID)
	require.Len(t, summary.Cart.Items, 1)

	err = cartService.RemoveFromCart(other.ID, summary.Cart.Items[0].ID)
	assert.ErrorIs(t, err, ErrCartItemNotFound)

	// The owner's item is untouched
	summary, _ = cartService.GetUserCart(user.ID)
	assert.Len(t, summary.Cart.Items, 1)
}

func TestCartService_ClearCart(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, product.ID, 2)
	require.NoError(t, err)

	err = cartService.ClearCart(user.ID)
	assert.NoError(t, err)

	summary, _ := cartService.GetUserCart(user.ID)
	assert.Len(t, summary.Cart.Items, 0)
}
