package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/tanawit/petnest-backend/config"
	"github.com/tanawit/petnest-backend/internal/app/model"
	"github.com/tanawit/petnest-backend/internal/app/repository"
	"github.com/tanawit/petnest-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports a product catalog from an XLSX workbook. One row per product
// option; consecutive rows with the same product name are grouped into
// one product. Expected columns:
// Name | About | Description | Category | AnimalType | Size | Price | Stock
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

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initial admin account from environment
	if err := db.SeedAdmin(os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD")); err != nil {
		log.Fatal("Failed to seed admin account:", err)
	}

	productRepo := repository.NewProductRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	products, err := readProductsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total products to import: %d\n", len(products))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	imported := 0
	for i := range products {
		if err := productRepo.Create(&products[i]); err != nil {
			log.Printf("Failed to import product %q: %v", products[i].Name, err)
			continue
		}
		imported++
	}

	fmt.Println("Import completed.")
	fmt.Printf("Products imported: %d/%d\n", imported, len(products))
}

func readProductsFromXLSX(filePath string) ([]model.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("workbook has no data rows")
	}

	var products []model.Product
	var current *model.Product

	// Skip the header row
	for i, row := range rows[1:] {
		if len(row) < 8 {
			log.Printf("Skipping row %d: expected 8 columns, got %d", i+2, len(row))
			continue
		}

		name := row[0]
		if name == "" {
			continue
		}

		price, err := strconv.ParseFloat(row[6], 64)
		if err != nil {
			log.Printf("Skipping row %d: invalid price %q", i+2, row[6])
			continue
		}
		stock, err := strconv.Atoi(row[7])
		if err != nil {
			log.Printf("Skipping row %d: invalid stock %q", i+2, row[7])
			continue
		}

		option := model.ProductOption{
			Size:  row[5],
			Price: price,
			Stock: stock,
		}

		if current == nil || current.Name != name {
			products = append(products, model.Product{
				Name:        name,
				About:       row[1],
				Description: row[2],
				Category:    row[3],
				AnimalType:  row[4],
				Status:      true,
			})
			current = &products[len(products)-1]
		}
		current.Options = append(current.Options, option)
	}

	return products, nil
}
