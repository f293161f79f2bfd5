// Package handler はstocksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"stockdata_backend/internal/api"
	"stockdata_backend/internal/feature/stocks/domain/entity"
	"stockdata_backend/internal/feature/stocks/transport/http/dto"
	"stockdata_backend/internal/feature/stocks/usecase"
)

// dateLayout は date フィールドのワイヤ形式です。
const dateLayout = "2006-01-02"

// StocksUsecase は株価レコード操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type StocksUsecase interface {
	ListStocks(ctx context.Context, skip, limit int) ([]entity.Stock, error)
	GetStock(ctx context.Context, id uint) (entity.Stock, error)
	CreateStock(ctx context.Context, draft entity.Stock) (entity.Stock, error)
	UpdateStock(ctx context.Context, id uint, patch entity.StockPatch) (entity.Stock, error)
	DeleteStock(ctx context.Context, id uint) (entity.Stock, error)
}

// StockHandler は株価レコードのHTTPリクエストを処理します。
type StockHandler struct {
	uc StocksUsecase
}

// NewStockHandler は指定されたusecaseでStockHandlerの新しいインスタンスを生成します。
func NewStockHandler(uc StocksUsecase) *StockHandler {
	return &StockHandler{uc: uc}
}

// List は株価レコードの一覧をページネーション付きで返します。
//
// エンドポイント例:
// GET /stocks?skip=0&limit=20
func (h *StockHandler) List(c *gin.Context) {
	// 文字列を整数に変換。不正な値は0になり、usecase側でデフォルトに丸められる。
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	stocks, err := h.uc.ListStocks(c.Request.Context(), skip, limit)
	if err != nil {
		slog.Error("failed to list stocks", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list stocks"})
		return
	}

	out := make([]dto.StockResponse, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, toResponse(s))
	}
	c.JSON(http.StatusOK, out)
}

// Get はIDで単一の株価レコードを返します。
//
// GET /stocks/:id
func (h *StockHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	stock, err := h.uc.GetStock(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrStockNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "stock not found"})
			return
		}
		slog.Error("failed to get stock", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to get stock"})
		return
	}
	c.JSON(http.StatusOK, toResponse(stock))
}

// Create は新しい株価レコードを作成します。
// - リクエストJSONをCreateStockRequestにバインド
// - 必須フィールド欠落・型不一致・日付不正は422を返却（ストアには到達しない）
// - 成功時は採番済みIDを含むレコードと201を返却
//
// POST /stocks
func (h *StockHandler) Create(c *gin.Context) {
	var req dto.CreateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create stock validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "invalid request body"})
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "date must be in YYYY-MM-DD format"})
		return
	}

	draft := entity.Stock{
		Date:      date,
		TradeCode: req.TradeCode,
		High:      ptrToNull(req.High),
		Low:       ptrToNull(req.Low),
		Open:      ptrToNull(req.Open),
		Close:     ptrToNull(req.Close),
		Volume:    req.Volume,
	}

	created, err := h.uc.CreateStock(c.Request.Context(), draft)
	if err != nil {
		slog.Error("failed to create stock", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create stock"})
		return
	}
	c.JSON(http.StatusCreated, toResponse(created))
}

// Update は指定されたキーのみを差し替える部分更新です。
// - 対象レコードが存在しない場合は404
// - 型不一致・日付不正・空のtrade_codeは422
//
// PUT /stocks/:id
func (h *StockHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update stock validation failed", "id", id, "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "invalid request body"})
		return
	}

	patch := entity.StockPatch{
		High:   req.High,
		Low:    req.Low,
		Open:   req.Open,
		Close:  req.Close,
		Volume: req.Volume,
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "date must be in YYYY-MM-DD format"})
			return
		}
		patch.Date = &date
	}
	if req.TradeCode != nil {
		if *req.TradeCode == "" {
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "trade_code must not be empty"})
			return
		}
		patch.TradeCode = req.TradeCode
	}

	updated, err := h.uc.UpdateStock(c.Request.Context(), id, patch)
	if err != nil {
		if errors.Is(err, usecase.ErrStockNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "stock not found"})
			return
		}
		slog.Error("failed to update stock", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update stock"})
		return
	}
	c.JSON(http.StatusOK, toResponse(updated))
}

// Delete はレコードを削除し、削除された値をそのまま返します。
// 呼び出し側が何を消したか確認できるようにするためです。
//
// DELETE /stocks/:id
func (h *StockHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.uc.DeleteStock(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrStockNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "stock not found"})
			return
		}
		slog.Error("failed to delete stock", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to delete stock"})
		return
	}
	c.JSON(http.StatusOK, toResponse(deleted))
}

// parseID はパスパラメータのIDをパースします。不正な場合は422を書き込みfalseを返します。
func parseID(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "invalid stock id"})
		return 0, false
	}
	return uint(id64), true
}

func toResponse(s entity.Stock) dto.StockResponse {
	return dto.StockResponse{
		ID:        s.ID,
		Date:      s.Date.UTC().Format(dateLayout),
		TradeCode: s.TradeCode,
		High:      nullToPtr(s.High),
		Low:       nullToPtr(s.Low),
		Open:      nullToPtr(s.Open),
		Close:     nullToPtr(s.Close),
		Volume:    s.Volume,
	}
}

func nullToPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func ptrToNull(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
