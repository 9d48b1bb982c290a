package db

import (
	"github.com/shopspring/decimal"

	"github.com/threadcart/threadcart-backend/internal/app/model"
	"github.com/threadcart/threadcart-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Profile{},
		&model.Seller{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Wishlist{},
		&model.WishlistItem{},
		&model.Order{},
		&model.OrderedItem{},
		&model.Review{},
		&model.Payment{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedInitialData(); err != nil {
		logger.Error("Failed to seed initial data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedInitialData()
}

func seedInitialData() error {
	logger.Info("Seeding initial data...")

	if err := seedProducts(); err != nil {
		logger.Error("Failed to seed products", err)
		return err
	}

	logger.Info("Initial data seeded successfully")
	return nil
}

// seedProducts creates a small starter catalog so the storefront is
// browsable on a fresh install. Skipped when products already exist.
func seedProducts() error {
	var count int64
	if err := DB.Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Products already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding product catalog...")

	products := []model.Product{
		{
			Name:          "Classic Cotton Tee",
			Category:      model.CategoryMen,
			Price:         decimal.NewFromFloat(19.99),
			StockQuantity: 120,
			Season:        model.SeasonAllSeason,
			Fabric:        "Cotton",
			Texture:       "Soft",
			Brand:         "ThreadCart Basics",
		},
		{
			Name:          "Linen Summer Dress",
			Category:      model.CategoryWomen,
			Price:         decimal.NewFromFloat(49.50),
			StockQuantity: 60,
			Season:        model.SeasonSummer,
			Fabric:        "Linen",
			Texture:       "Light",
			Brand:         "Solstice",
		},
		{
			Name:          "Wool Winter Coat",
			Category:      model.CategoryWomen,
			Price:         decimal.NewFromFloat(129.00),
			StockQuantity: 25,
			Season:        model.SeasonWinter,
			Fabric:        "Wool",
			Texture:       "Heavy",
			Brand:         "Northway",
		},
		{
			Name:          "Denim Overalls",
			Category:      model.CategoryToddler,
			Price:         decimal.NewFromFloat(24.75),
			StockQuantity: 80,
			Season:        model.SeasonAllSeason,
			Fabric:        "Denim",
			Texture:       "Sturdy",
			Brand:         "Little Stitch",
		},
		{
			Name:          "Fleece Hoodie",
			Category:      model.CategoryBoys,
			Price:         decimal.NewFromFloat(32.00),
			StockQuantity: 95,
			Season:        model.SeasonWinter,
			Fabric:        "Fleece",
			Texture:       "Plush",
			Brand:         "ThreadCart Basics",
		},
		{
			Name:          "Floral Print Skirt",
			Category:      model.CategoryGirls,
			Price:         decimal.NewFromFloat(27.25),
			StockQuantity: 70,
			Season:        model.SeasonSummer,
			Fabric:        "Cotton",
			Texture:       "Soft",
			Brand:         "Solstice",
		},
	}

	totalInserted := 0
	for _, product := range products {
		if err := DB.Create(&product).Error; err != nil {
			logger.Error("Failed to create product", err, map[string]interface{}{
				"product": product.Name,
			})
			return err
		}
		totalInserted++
	}

	logger.Info("Product catalog seeded successfully", map[string]interface{}{
		"total_products": totalInserted,
	})

	return nil
}
