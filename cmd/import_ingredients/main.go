package main

import (
	"context"
	"encoding/csv"
	"flag"
	"log"
	"os"

	"github.com/pageza/feastly/backend/config"
	"github.com/pageza/feastly/backend/internal/database"
	"github.com/pageza/feastly/backend/internal/service"
)

// Loads the ingredient catalog from a CSV of "name,measurement_unit"
// rows. Existing names are left untouched.
func main() {
	path := flag.String("file", "data/ingredients.csv", "Path to the ingredients CSV file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2
	rows, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to parse CSV: %v", err)
	}

	records := make([][2]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, [2]string{row[0], row[1]})
	}

	catalog := service.NewCatalogService(db)
	created, err := catalog.ImportIngredients(context.Background(), records)
	if err != nil {
		log.Fatalf("Failed to import ingredients: %v", err)
	}
	log.Printf("Imported %d ingredients (%d rows in file)", created, len(records))
}
