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

func setupPaymentServiceTest(t *testing.T) (PaymentService, OrderService, CartService, *model.User, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	paymentRepo := repository.NewPaymentRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)

	paymentService := NewPaymentService(paymentRepo, orderRepo)
	orderService := NewOrderService(orderRepo, cartRepo, productRepo)
	cartService := NewCartService(cartRepo, productRepo)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hash",
		Name:         "Test User",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:          "Test Product",
		Price:         decimal.NewFromFloat(20.00),
		Category:      model.CategoryMen,
		StockQuantity: 10,
	}
	testDB.Create(product)

	return paymentService, orderService, cartService, user, product, testDB
}

func placeOrder(t *testing.T, orderService OrderService, cartService CartService, userID, productID uint) *model.Order {
	t.Helper()
	_, err := cartService.AddToCart(userID, productID, 2)
	require.NoError(t, err)
	order, err := orderService.Checkout(userID)
	require.NoError(t, err)
	return order
}

func TestPaymentService_PayForOrder_Success(t *testing.T) {
	paymentService, orderService, cartService, user, product, _ := setupPaymentServiceTest(t)

	order := placeOrder(t, orderService, cartService, user.ID, product.ID)

	payment, err := paymentService.PayForOrder(user.ID, order.ID, "card")
	require.NoError(t, err)
	assert.NotZero(t, payment.ID)
	assert.True(t, payment.Amount.Equal(order.TotalPrice))
	assert.Equal(t, model.PaymentStatusCompleted, payment.Status)

	// Payment confirms the order
	confirmed, err := orderService.GetOrderByID(user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, confirmed.Status)
}

func TestPaymentService_PayForOrder_Duplicate(t *testing.T) {
	paymentService, orderService, cartService, user, product, _ := setupPaymentServiceTest(t)

	order := placeOrder(t, orderService, cartService, user.ID, product.ID)

	_, err := paymentService.PayForOrder(user.ID, order.ID, "card")
	require.NoError(t, err)

	_, err = paymentService.PayForOrder(user.ID, order.ID, "card")
	assert.ErrorIs(t, err, ErrPaymentAlreadyExists)
}

func TestPaymentService_PayForOrder_OtherUsersOrderLooksMissing(t *testing.T) {
	paymentService, orderService, cartService, user, product, testDB := setupPaymentServiceTest(t)

	other := &model.User{
		Email:        "other@example.com",
		PasswordHash: "hash",
		Name:         "Other User",
		Role:         model.RoleUser,
	}
	testDB.Create(other)

	order := placeOrder(t, orderService, cartService, user.ID, product.ID)

	_, err := paymentService.PayForOrder(other.ID, order.ID, "card")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestPaymentService_GetPaymentForOrder(t *testing.T) {
	paymentService, orderService, cartService, user, product, _ := setupPaymentServiceTest(t)

	order := placeOrder(t, orderService, cartService, user.ID, product.ID)

	_, err := paymentService.GetPaymentForOrder(user.ID, order.ID)
	assert.ErrorIs(t, err, ErrPaymentNotFound)

	created, err := paymentService.PayForOrder(user.ID, order.ID, "card")
	require.NoError(t, err)

	payment, err := paymentService.GetPaymentForOrder(user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, payment.ID)
}
