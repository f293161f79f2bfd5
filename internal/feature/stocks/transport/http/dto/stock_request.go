// Package dto はstocksフィーチャーのHTTPトランスポート層のDTOを定義します。
package dto

import "github.com/shopspring/decimal"

// CreateStockRequest は POST /stocks のリクエストボディです。
// 価格・出来高はNULL許容のためポインタで受けます。
// dateはISO形式（YYYY-MM-DD）の文字列で、handler側でパースされます。
type CreateStockRequest struct {
	Date      string           `json:"date" binding:"required"`
	TradeCode string           `json:"trade_code" binding:"required"`
	High      *decimal.Decimal `json:"high"`
	Low       *decimal.Decimal `json:"low"`
	Open      *decimal.Decimal `json:"open"`
	Close     *decimal.Decimal `json:"close"`
	Volume    *int64           `json:"volume"`
}

// UpdateStockRequest は PUT /stocks/:id のリクエストボディです。
// 指定されたキーのみ更新する部分更新のため、全フィールドがポインタです。
// キー省略とnull指定は同一視され、どちらも「変更しない」を意味します。
type UpdateStockRequest struct {
	Date      *string          `json:"date"`
	TradeCode *string          `json:"trade_code"`
	High      *decimal.Decimal `json:"high"`
	Low       *decimal.Decimal `json:"low"`
	Open      *decimal.Decimal `json:"open"`
	Close     *decimal.Decimal `json:"close"`
	Volume    *int64           `json:"volume"`
}
