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

func setupProductControllerTest(t *testing.T) (*ProductController, *gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	productService := service.NewProductService(productRepo)
	productController := NewProductController(productService)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return productController, router, testDB
}

func seedCatalog(t *testing.T, testDB *gorm.DB) {
	t.Helper()
	products := []model.Product{
		{
			Name:          "Classic Cotton Tee",
			Price:         decimal.NewFromFloat(19.99),
			Category:      model.CategoryMen,
			Season:        model.SeasonSummer,
			Fabric:        "Cotton",
			Brand:         "ThreadBasics",
			StockQuantity: 50,
		},
		{
			Name:          "Wool Winter Coat",
			Price:         decimal.NewFromFloat(149.99),
			Category:      model.CategoryWomen,
			Season:        model.SeasonWinter,
			Fabric:        "Wool",
			Brand:         "NorthLoom",
			StockQuantity: 10,
		},
		{
			Name:          "Linen Summer Dress",
			Price:         decimal.NewFromFloat(59.99),
			Category:      model.CategoryWomen,
			Season:        model.SeasonSummer,
			Fabric:        "Linen",
			Brand:         "ThreadBasics",
			StockQuantity: 25,
		},
	}
	for i := range products {
		require.NoError(t, testDB.Create(&products[i]).Error)
	}
}

func listProducts(t *testing.T, router *gin.Engine, url string) []interface{} {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response["products"].([]interface{})
}

func TestProductController_GetProducts_All(t *testing.T) {
	controller, router, testDB := setupProductControllerTest(t)
	seedCatalog(t, testDB)

	router.GET("/products", controller.GetProducts)

	products := listProducts(t, router, "/products")
	assert.Len(t, products, 3)
}

func TestProductController_GetProducts_FilterConjunction(t *testing.T) {
	controller, router, testDB := setupProductControllerTest(t)
	seedCatalog(t, testDB)

	router.GET("/products", controller.GetProducts)

	products := listProducts(t, router, "/products?category=Women&season=Winter")
	require.Len(t, products, 1)
	product := products[0].(map[string]interface{})
	assert.Equal(t, "Wool Winter Coat", product["name"])
}

func TestProductController_GetProducts_PriceRange(t *testing.T) {
	controller, router, testDB := setupProductControllerTest(t)
	seedCatalog(t, testDB)

	router.GET("/products", controller.GetProducts)

	products := listProducts(t, router, "/products?price_min=30&price_max=100")
	require.Len(t, products, 1)
	product := products[0].(map[string]interface{})
	assert.Equal(t, "Linen Summer Dress", product["name"])
}

func TestProductController_GetProducts_MalformedPriceIgnored(t *testing.T) {
	controller, router, testDB := setupProductControllerTest(t)
	seedCatalog(t, testDB)

	router.GET("/products", controller.GetProducts)

	// A bad price bound is dropped, not an error
	products := listProducts(t, router, "/products?price_min=cheap")
	assert.Len(t, products, 3)
}

func TestProductController_GetProducts_SortByPrice(t *testing.T) {
	controller, router, testDB := setupProductControllerTest(t)
	seedCatalog(t, testDB)

	router.GET("/products", controller.GetProducts)

	products := listProducts(t, router, "/products?sort_by=price&order=asc")
	require.Len(t, products, 3)
	first := products[0].(map[string]interface{})
	assert.Equal(t, "Classic Cotton Tee", first["name"])
}

func TestProductController_GetProduct_Success(t *testing.T) {
	controller, router, testDB := setupProductControllerTest(t)

	product := &model.Product{
		Name:     "Fleece Hoodie",
		Price:    decimal.NewFromFloat(39.99),
		Category: model.CategoryBoys,
	}
	require.NoError(t, testDB.Create(product).Error)

	router.GET("/products/:id", controller.GetProduct)

	req := httptest.NewRequest(http.MethodGet, "/products/"+itoa(product.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	payload := response["product"].(map[string]interface{})
	assert.Equal(t, "Fleece Hoodie", payload["name"])
}

func TestProductController_GetProduct_NotFound(t *testing.T) {
	controller, router, _ := setupProductControllerTest(t)

	router.GET("/products/:id", controller.GetProduct)

	req := httptest.NewRequest(http.MethodGet, "/products/9999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductController_CreateProduct_Success(t *testing.T) {
	controller, router, testDB := setupProductControllerTest(t)

	router.POST("/products", controller.CreateProduct)

	body, _ := json.Marshal(map[string]interface{}{
		"category":       "Men",
		"name":           "Denim Overalls",
		"price":          "49.99",
		"stock_quantity": 15,
		"season":         "All Season",
		"fabric":         "Denim",
		"brand":          "ThreadBasics",
	})
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var created model.Product
	require.NoError(t, testDB.Where("name = ?", "Denim Overalls").First(&created).Error)
	assert.True(t, created.Price.Equal(decimal.NewFromFloat(49.99)))
	assert.Equal(t, 15, created.StockQuantity)
}

func TestProductController_CreateProduct_MissingName(t *testing.T) {
	controller, router, _ := setupProductControllerTest(t)

	router.POST("/products", controller.CreateProduct)

	body, _ := json.Marshal(map[string]interface{}{
		"category": "Men",
		"price":    "49.99",
	})
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductController_UpdateProduct_Success(t *testing.T) {
	controller, router, testDB := setupProductControllerTest(t)

	product := &model.Product{
		Name:     "Fleece Hoodie",
		Price:    decimal.NewFromFloat(39.99),
		Category: model.CategoryBoys,
	}
	require.NoError(t, testDB.Create(product).Error)

	router.PUT("/products/:id", controller.UpdateProduct)

	body, _ := json.Marshal(map[string]interface{}{
		"category": "Boys",
		"name":     "Fleece Hoodie",
		"price":    "34.99",
	})
	req := httptest.NewRequest(http.MethodPut, "/products/"+itoa(product.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated model.Product
	require.NoError(t, testDB.First(&updated, product.ID).Error)
	assert.True(t, updated.Price.Equal(decimal.NewFromFloat(34.99)))
}

func TestProductController_DeleteProduct_Success(t *testing.T) {
	controller, router, testDB := setupProductControllerTest(t)

	product := &model.Product{
		Name:     "Fleece Hoodie",
		Price:    decimal.NewFromFloat(39.99),
		Category: model.CategoryBoys,
	}
	require.NoError(t, testDB.Create(product).Error)

	router.DELETE("/products/:id", controller.DeleteProduct)

	req := httptest.NewRequest(http.MethodDelete, "/products/"+itoa(product.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	testDB.Model(&model.Product{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
