package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	stockadapters "stockdata_backend/internal/feature/stocks/adapters"
	"stockdata_backend/internal/feature/stocks/adapters/csvsource"
	stockusecase "stockdata_backend/internal/feature/stocks/usecase"
	platformdb "stockdata_backend/internal/platform/db"
)

func main() {
	path := flag.String("file", "stock_data.csv", "path to the CSV file to import")
	flag.Parse()

	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	db := platformdb.OpenDB()
	repo := stockadapters.NewStockRepository(db)
	source := csvsource.NewFileSource(*path)
	uc := stockusecase.NewImportUsecase(source, repo)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	n, err := uc.ImportAll(ctx)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("import ok: %d records", n)
}
