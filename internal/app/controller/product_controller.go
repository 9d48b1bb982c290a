package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/threadcart/threadcart-backend/internal/app/model"
	"github.com/threadcart/threadcart-backend/internal/app/repository"
	"github.com/threadcart/threadcart-backend/internal/app/service"
	apperrors "github.com/threadcart/threadcart-backend/internal/errors"
	"github.com/threadcart/threadcart-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
	}
}

type ProductRequest struct {
	Category      model.ProductCategory `json:"category" binding:"required"`
	Name          string                `json:"name" binding:"required"`
	Price         decimal.Decimal       `json:"price" binding:"required"`
	StockQuantity int                   `json:"stock_quantity"`
	Dimensions    string                `json:"dimensions"`
	Weight        string                `json:"weight"`
	Offers        string                `json:"offers"`
	ImageURL      string                `json:"image_url"`
	Images        []string              `json:"images"`
	Season        model.ProductSeason   `json:"season"`
	Fabric        string                `json:"fabric"`
	Texture       string                `json:"texture"`
	Brand         string                `json:"brand"`
}

// parseProductFilter builds a catalog filter from query parameters.
// Malformed numeric values are ignored rather than rejected.
func parseProductFilter(c *gin.Context) repository.ProductFilter {
	var filter repository.ProductFilter

	if v := c.Query("category"); v != "" {
		category := model.ProductCategory(v)
		filter.Category = &category
	}
	if v := c.Query("season"); v != "" {
		season := model.ProductSeason(v)
		filter.Season = &season
	}
	filter.Fabric = c.Query("fabric")
	filter.Brand = c.Query("brand")
	filter.Search = c.Query("search")

	if v := c.Query("price_min"); v != "" {
		if min, err := decimal.NewFromString(v); err == nil {
			filter.PriceMin = &min
		}
	}
	if v := c.Query("price_max"); v != "" {
		if max, err := decimal.NewFromString(v); err == nil {
			filter.PriceMax = &max
		}
	}

	switch c.Query("sort_by") {
	case "price":
		filter.SortBy = repository.ProductSortPrice
	case "popularity":
		filter.SortBy = repository.ProductSortPopularity
	case "rating":
		filter.SortBy = repository.ProductSortRating
	case "newest", "created_at":
		filter.SortBy = repository.ProductSortCreatedAt
	}
	filter.SortAscending = c.Query("order") == "asc"

	if v := c.Query("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if v := c.Query("offset"); v != "" {
		if offset, err := strconv.Atoi(v); err == nil && offset > 0 {
			filter.Offset = offset
		}
	}

	return filter
}

// GetProducts lists catalog products with optional filters
// GET /api/v1/products
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := parseProductFilter(c)

	products, err := ctrl.productService.GetProducts(filter)
	if err != nil {
		log.Error("Failed to get products", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns a single product with its reviews
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	product, err := ctrl.productService.GetProductByID(uint(productID))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to get product", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// CreateProduct adds a new product to the catalog
// POST /api/v1/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product request", map[string]interface{}{
			"error": err.Error(),
		})
		if fields := apperrors.BindingFields(err); fields != nil {
			apperrors.RespondWithValidationError(c, fields)
			return
		}
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return
	}

	product := &model.Product{
		Category:      req.Category,
		Name:          req.Name,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Dimensions:    req.Dimensions,
		Weight:        req.Weight,
		Offers:        req.Offers,
		ImageURL:      req.ImageURL,
		Images:        req.Images,
		Season:        req.Season,
		Fabric:        req.Fabric,
		Texture:       req.Texture,
		Brand:         req.Brand,
	}

	if err := ctrl.productService.CreateProduct(product); err != nil {
		log.Error("Failed to create product", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create product")
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

// UpdateProduct updates an existing product
// PUT /api/v1/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid product request", map[string]interface{}{
			"error": err.Error(),
		})
		if fields := apperrors.BindingFields(err); fields != nil {
			apperrors.RespondWithValidationError(c, fields)
			return
		}
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return
	}

	product, err := ctrl.productService.GetProductByID(uint(productID))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to get product for update", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update product")
		return
	}

	product.Category = req.Category
	product.Name = req.Name
	product.Price = req.Price
	product.StockQuantity = req.StockQuantity
	product.Dimensions = req.Dimensions
	product.Weight = req.Weight
	product.Offers = req.Offers
	product.ImageURL = req.ImageURL
	product.Images = req.Images
	product.Season = req.Season
	product.Fabric = req.Fabric
	product.Texture = req.Texture
	product.Brand = req.Brand

	if err := ctrl.productService.UpdateProduct(product); err != nil {
		log.Error("Failed to update product", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update product")
		return
	}

	log.Info("Product updated", map[string]interface{}{
		"product_id": product.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct removes a product from the catalog
// DELETE /api/v1/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	if err := ctrl.productService.DeleteProduct(uint(productID)); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": productID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete product")
		return
	}

	log.Info("Product deleted", map[string]interface{}{
		"product_id": productID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}
