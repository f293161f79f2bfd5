// Package router はアプリケーションの全ルートを定義します。
package router

import (
	"github.com/gin-gonic/gin"

	stockhandler "stockdata_backend/internal/feature/stocks/transport/handler"
	platformhandler "stockdata_backend/internal/platform/http/handler"
)

// NewRouter は全エンドポイントを登録したginルータを生成します。
// CORS等のミドルウェアはルート登録前に適用する必要があるため、ここで受け取ります。
func NewRouter(stocks *stockhandler.StockHandler, middlewares ...gin.HandlerFunc) *gin.Engine {
	r := gin.Default()
	r.Use(middlewares...)

	// 導通確認用
	r.GET("/healthz", platformhandler.Health)

	// 株価レコードのCRUD
	r.GET("/stocks", stocks.List)
	r.POST("/stocks", stocks.Create)
	r.GET("/stocks/:id", stocks.Get)
	r.PUT("/stocks/:id", stocks.Update)
	r.DELETE("/stocks/:id", stocks.Delete)

	return r
}
