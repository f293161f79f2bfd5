package dto

import "github.com/shopspring/decimal"

func init() {
	// 価格を引用符付き文字列ではなくJSON数値として出力する。
	// decimalは10進の桁をそのまま書き出すため丸めは発生しない。
	decimal.MarshalJSONWithoutQuotes = true
}

// StockResponse は株価レコードのレスポンスDTOです。
// NULLの価格・出来高はJSONのnullとして出力されます。
type StockResponse struct {
	ID        uint             `json:"id"`
	Date      string           `json:"date"`       // YYYY-MM-DD
	TradeCode string           `json:"trade_code"` // 銘柄コード
	High      *decimal.Decimal `json:"high"`
	Low       *decimal.Decimal `json:"low"`
	Open      *decimal.Decimal `json:"open"`
	Close     *decimal.Decimal `json:"close"`
	Volume    *int64           `json:"volume"`
}
