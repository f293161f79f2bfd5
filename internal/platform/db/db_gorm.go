// Package db はGORMによるデータベース接続の初期化を提供します。
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stockdata_backend/internal/feature/stocks/adapters"
)

// Config はデータベース接続設定です。
type Config struct {
	// URL はPostgresの接続URLです。空の場合はSQLiteにフォールバックします。
	URL string
	// SQLitePath はフォールバック時のSQLiteファイルパスです。
	SQLitePath string
}

// LoadConfig は環境変数から接続設定を読み込みます。
func LoadConfig() Config {
	cfg := Config{
		URL:        os.Getenv("DATABASE_URL"),
		SQLitePath: os.Getenv("SQLITE_PATH"),
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "./stocks.db"
	}
	return cfg
}

// OpenFunc はDSNからgorm.DBを開く関数です。テストで差し替え可能にします。
type OpenFunc func(dsn string) (*gorm.DB, error)

// Opener はConfigに応じて接続先DSNとオープナーを返します。
// DATABASE_URLが設定されていればPostgres、なければローカルSQLiteです。
func Opener(cfg Config) (dsn string, open OpenFunc) {
	if cfg.URL != "" {
		return cfg.URL, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), &gorm.Config{})
		}
	}
	return cfg.SQLitePath, func(dsn string) (*gorm.DB, error) {
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}

// ConnectWithRetry は接続に成功するまで3秒間隔でリトライします。
// コンテナ起動直後などDBがまだ受け付けない状況への対策です。
func ConnectWithRetry(dsn string, timeout time.Duration, open OpenFunc) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %v: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// OpenDB は環境変数の設定でデータベースを開きます。
// RUN_MIGRATIONS=false を指定しない限り、stocksテーブルを自動マイグレーションします。
func OpenDB() *gorm.DB {
	cfg := LoadConfig()
	dsn, open := Opener(cfg)

	db, err := ConnectWithRetry(dsn, 60*time.Second, open)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if os.Getenv("RUN_MIGRATIONS") != "false" {
		if err := db.AutoMigrate(&adapters.StockModel{}); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
