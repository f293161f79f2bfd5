package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"stockdata_backend/internal/app/router"
	stockadapters "stockdata_backend/internal/feature/stocks/adapters"
	stockhandler "stockdata_backend/internal/feature/stocks/transport/handler"
	stockusecase "stockdata_backend/internal/feature/stocks/usecase"
	"stockdata_backend/internal/platform/cache"
	platformdb "stockdata_backend/internal/platform/db"
	platformredis "stockdata_backend/internal/platform/redis"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	// db
	db := platformdb.OpenDB()

	// Redis（無くてもキャッシュ無しで起動する）
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	stockRepo := stockadapters.NewStockRepository(db)

	// Redisキャッシュでラップ
	cachedRepo := cache.NewCachingStockRepository(rdb, cacheTTL(), stockRepo, "stocks")

	// Usecase
	stocksUC := stockusecase.NewStocksUsecase(cachedRepo)

	// Handler
	stocksH := stockhandler.NewStockHandler(stocksUC)

	// ルータ生成（CORSはルート登録前に適用する）
	r := router.NewRouter(stocksH, corsMiddleware())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

// cacheTTL はSTOCK_CACHE_TTL（time.ParseDuration形式）を読み込みます。デフォルトは5分です。
func cacheTTL() time.Duration {
	raw := os.Getenv("STOCK_CACHE_TTL")
	if raw == "" {
		return 5 * time.Minute
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("[WARN] invalid STOCK_CACHE_TTL %q; using default", raw)
		return 5 * time.Minute
	}
	return d
}

// corsMiddleware はALLOWED_ORIGINS（カンマ区切り）からCORS設定を組み立てます。
// 未設定の場合は全オリジン許可のデフォルト設定を使います。
func corsMiddleware() gin.HandlerFunc {
	allowed := os.Getenv("ALLOWED_ORIGINS")
	if allowed == "" {
		return cors.Default()
	}
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = strings.Split(allowed, ",")
	cfg.AllowCredentials = true
	return cors.New(cfg)
}
