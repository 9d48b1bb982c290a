package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/threadcart/threadcart-backend/config"
	"github.com/threadcart/threadcart-backend/internal/app/model"
	"github.com/threadcart/threadcart-backend/internal/app/repository"
	"github.com/threadcart/threadcart-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports a product catalog from an XLSX export. Expected columns:
// category, name, price, stock, season, fabric, texture, brand,
// dimensions, weight, offers, image_url
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	productRepo := repository.NewProductRepository(db.GetDB())

	// Seed the dedupe set with the existing catalog so re-running an
	// import does not duplicate rows.
	existing, err := productRepo.FindAll()
	if err != nil {
		log.Fatal("Failed to load existing catalog:", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, p := range existing {
		seen[p.Name+"|"+p.Brand] = true
	}
	fmt.Printf("Existing products in catalog: %d\n", len(existing))

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, skipped, err := readProductsFromXLSX(filePath, seen)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Products to import: %d (skipped %d rows)\n", len(products), skipped)

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := productRepo.BulkCreate(products, batchSize); err != nil {
		log.Fatal("Failed to bulk create products:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total products imported: %d\n", len(products))
}

func readProductsFromXLSX(filePath string, seen map[string]bool) ([]model.Product, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, 0, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("no data found in XLSX file")
	}

	var products []model.Product // dedupe on name+brand via seen
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 4 {
			skipped++
			continue
		}

		category := parseCategory(strings.TrimSpace(row[0]))
		name := strings.TrimSpace(row[1])
		if category == "" || name == "" {
			skipped++
			continue
		}

		price, err := decimal.NewFromString(strings.TrimSpace(row[2]))
		if err != nil || price.IsNegative() {
			skipped++
			continue
		}

		stock, err := strconv.Atoi(strings.TrimSpace(row[3]))
		if err != nil || stock < 0 {
			stock = 0
		}

		product := model.Product{
			Category:      category,
			Name:          name,
			Price:         price,
			StockQuantity: stock,
			Season:        model.SeasonAllSeason,
		}

		if len(row) > 4 {
			if season := parseSeason(strings.TrimSpace(row[4])); season != "" {
				product.Season = season
			}
		}
		if len(row) > 5 {
			product.Fabric = strings.TrimSpace(row[5])
		}
		if len(row) > 6 {
			product.Texture = strings.TrimSpace(row[6])
		}
		if len(row) > 7 {
			product.Brand = strings.TrimSpace(row[7])
		}
		if len(row) > 8 {
			product.Dimensions = strings.TrimSpace(row[8])
		}
		if len(row) > 9 {
			product.Weight = strings.TrimSpace(row[9])
		}
		if len(row) > 10 {
			product.Offers = strings.TrimSpace(row[10])
		}
		if len(row) > 11 {
			product.ImageURL = strings.TrimSpace(row[11])
		}

		key := name + "|" + product.Brand
		if seen[key] {
			skipped++
			continue
		}
		seen[key] = true

		products = append(products, product)
	}

	return products, skipped, nil
}

func parseCategory(s string) model.ProductCategory {
	switch strings.ToLower(s) {
	case "boys":
		return model.CategoryBoys
	case "girls":
		return model.CategoryGirls
	case "men":
		return model.CategoryMen
	case "women":
		return model.CategoryWomen
	case "toddler":
		return model.CategoryToddler
	}
	return ""
}

func parseSeason(s string) model.ProductSeason {
	switch strings.ToLower(s) {
	case "summer":
		return model.SeasonSummer
	case "winter":
		return model.SeasonWinter
	case "all season", "all-season", "all":
		return model.SeasonAllSeason
	}
	return ""
}
