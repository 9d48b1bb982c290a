package repository

import (
	"github.com/shopspring/decimal"

	"github.com/threadcart/threadcart-backend/internal/app/model"
	"github.com/threadcart/threadcart-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductSort string

const (
	ProductSortPrice      ProductSort = "price"
	ProductSortCreatedAt  ProductSort = "created_at"
	ProductSortPopularity ProductSort = "popularity"
	ProductSortRating     ProductSort = "rating"
)

// ProductFilter narrows the catalog listing. Nil or zero-valued fields are
// not applied; set fields combine with AND.
type ProductFilter struct {
	Category      *model.ProductCategory
	Season        *model.ProductSeason
	Fabric        string
	Brand         string
	Search        string
	PriceMin      *decimal.Decimal
	PriceMax      *decimal.Decimal
	SortBy        ProductSort
	SortAscending bool
	Limit         int
	Offset        int
}

type ProductRepository interface {
	Create(product *model.Product) error
	BulkCreate(products []model.Product, batchSize int) error
	FindAll() ([]model.Product, error)
	FindWithFilter(filter ProductFilter) ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindByIDWithReviews(id uint) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
	UpdateReviewScore(id uint, score float64) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":     product.Name,
		"category": product.Category,
		"brand":    product.Brand,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name":     product.Name,
			"category": product.Category,
			"brand":    product.Brand,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (r *productRepository) BulkCreate(products []model.Product, batchSize int) error {
	logger.Debug("Bulk creating products in database", map[string]interface{}{
		"count":      len(products),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(products, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create products in database", err, map[string]interface{}{
			"count": len(products),
		})
		return err
	}

	logger.Debug("Products bulk created in database", map[string]interface{}{
		"count": len(products),
	})
	return nil
}

func (r *productRepository) FindAll() ([]model.Product, error) {
	return r.FindWithFilter(ProductFilter{})
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"category":  filter.Category,
		"season":    filter.Season,
		"fabric":    filter.Fabric,
		"brand":     filter.Brand,
		"search":    filter.Search,
		"price_min": filter.PriceMin,
		"price_max": filter.PriceMax,
		"sort_by":   filter.SortBy,
		"limit":     filter.Limit,
		"offset":    filter.Offset,
	})

	query := r.db.Model(&model.Product{})

	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	if filter.Season != nil {
		query = query.Where("season = ?", *filter.Season)
	}

	if filter.Fabric != "" {
		query = query.Where("LOWER(fabric) LIKE LOWER(?)", "%"+filter.Fabric+"%")
	}

	if filter.Brand != "" {
		query = query.Where("LOWER(brand) LIKE LOWER(?)", "%"+filter.Brand+"%")
	}

	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
	}

	if filter.PriceMin != nil {
		query = query.Where("price >= ?", *filter.PriceMin)
	}

	if filter.PriceMax != nil {
		query = query.Where("price <= ?", *filter.PriceMax)
	}

	direction := "DESC"
	if filter.SortAscending {
		direction = "ASC"
	}
	switch filter.SortBy {
	case ProductSortPrice:
		query = query.Order("price " + direction)
	case ProductSortPopularity:
		query = query.Order("buy_count " + direction)
	case ProductSortRating:
		query = query.Order("review_score " + direction)
	case ProductSortCreatedAt:
		query = query.Order("created_at " + direction)
	default:
		query = query.Order("created_at DESC")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err, map[string]interface{}{
			"category": filter.Category,
			"season":   filter.Season,
		})
		return nil, err
	}

	logger.Debug("Products found with filter", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	logger.Debug("Finding product by ID in database", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	err := r.db.First(&product, id).Error
	if err != nil {
		logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	logger.Debug("Product found by ID in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return &product, nil
}

func (r *productRepository) FindByIDWithReviews(id uint) (*model.Product, error) {
	logger.Debug("Finding product by ID with reviews in database", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	err := r.db.Preload("Reviews", func(db *gorm.DB) *gorm.DB {
		return db.Preload("User").Order("reviews.created_at DESC")
	}).First(&product, id).Error
	if err != nil {
		logger.Error("Failed to find product by ID with reviews in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	logger.Debug("Product with reviews found by ID in database", map[string]interface{}{
		"product_id":   product.ID,
		"review_count": len(product.Reviews),
	})
	return &product, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})

	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
			"name":       product.Name,
		})
		return err
	}

	logger.Debug("Product updated in database", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	if err := r.db.Delete(&model.Product{}, id).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Debug("Product deleted from database", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func (r *productRepository) UpdateReviewScore(id uint, score float64) error {
	logger.Debug("Updating product review score in database", map[string]interface{}{
		"product_id":   id,
		"review_score": score,
	})

	if err := r.db.Model(&model.Product{}).Where("id = ?", id).
		Update("review_score", score).Error; err != nil {
		logger.Error("Failed to update product review score in database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	logger.Debug("Product review score updated in database", map[string]interface{}{
		"product_id":   id,
		"review_score": score,
	})
	return nil
}
