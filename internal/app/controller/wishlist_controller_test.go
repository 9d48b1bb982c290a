package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadcart/threadcart-backend/internal/app/model"
	"github.com/threadcart/threadcart-backend/internal/app/repository"
	"github.com/threadcart/threadcart-backend/internal/app/service"
	"github.com/threadcart/threadcart-backend/internal/db"
	"gorm.io/gorm"
)

func setupWishlistControllerTest(t *testing.T) (*WishlistController, *gin.Engine, *gorm.DB, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	wishlistRepo := repository.NewWishlistRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo)
	wishlistController := NewWishlistController(wishlistService)

	user := &model.User{
		Email:        "test@example.com",
		PasswordHash: "hash",
		Name:         "Test User",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	product := &model.Product{
		Name:     "Floral Print Skirt",
		Price:    decimal.NewFromFloat(29.99),
		Category: model.CategoryGirls,
	}
	testDB.Create(product)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return wishlistController, router, testDB, user, product
}

func postWishlistItem(t *testing.T, router *gin.Engine, productID uint) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(map[string]interface{}{
		"product_id": productID,
	})
	req := httptest.NewRequest(http.MethodPost, "/wishlist/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestWishlistController_AddToWishlist_Success(t *testing.T) {
	controller, router, _, user, product := setupWishlistControllerTest(t)

	router.POST("/wishlist/items", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToWishlist(c)
	})

	w := postWishlistItem(t, router, product.ID)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["added"])
}

func TestWishlistController_AddToWishlist_Idempotent(t *testing.T) {
	controller, router, testDB, user, product := setupWishlistControllerTest(t)

	router.POST("/wishlist/items", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToWishlist(c)
	})

	postWishlistItem(t, router, product.ID)
	w := postWishlistItem(t, router, product.ID)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, false, response["added"])

	var count int64
	testDB.Model(&model.WishlistItem{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestWishlistController_AddToWishlist_ProductNotFound(t *testing.T) {
	controller, router, _, user, _ := setupWishlistControllerTest(t)

	router.POST("/wishlist/items", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToWishlist(c)
	})

	w := postWishlistItem(t, router, 9999)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWishlistController_RemoveFromWishlist(t *testing.T) {
	controller, router, _, user, product := setupWishlistControllerTest(t)

	router.POST("/wishlist/items", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToWishlist(c)
	})
	router.DELETE("/wishlist/items/:product_id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.RemoveFromWishlist(c)
	})

	postWishlistItem(t, router, product.ID)

	req := httptest.NewRequest(http.MethodDelete, "/wishlist/items/"+itoa(product.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["removed"])

	// Removing again reports nothing removed
	req = httptest.NewRequest(http.MethodDelete, "/wishlist/items/"+itoa(product.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, false, response["removed"])
}

func TestWishlistController_CheckWishlistItem(t *testing.T) {
	controller, router, _, user, product := setupWishlistControllerTest(t)

	router.POST("/wishlist/items", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToWishlist(c)
	})
	router.GET("/wishlist/items/:product_id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CheckWishlistItem(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/wishlist/items/"+itoa(product.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, false, response["wishlisted"])

	postWishlistItem(t, router, product.ID)

	req = httptest.NewRequest(http.MethodGet, "/wishlist/items/"+itoa(product.ID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["wishlisted"])
}

func TestWishlistController_GetWishlist(t *testing.T) {
	controller, router, _, user, product := setupWishlistControllerTest(t)

	router.POST("/wishlist/items", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.AddToWishlist(c)
	})
	router.GET("/wishlist", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.GetWishlist(c)
	})

	postWishlistItem(t, router, product.ID)

	req := httptest.NewRequest(http.MethodGet, "/wishlist", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	wishlist := response["wishlist"].(map[string]interface{})
	items := wishlist["items"].([]interface{})
	assert.Len(t, items, 1)
}
