// Package entity はstocksフィーチャーのドメインモデルを定義します。
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock は1銘柄・1営業日分の株価レコードを表します。
// 価格は丸め誤差を避けるためfloatではなくdecimalで保持します。
// 同じ（Date, TradeCode）の組に対する重複レコードは許容されます。
type Stock struct {
	ID        uint                // ストアが採番する一意なID
	Date      time.Time           // 取引日（日付部分のみ有効）
	TradeCode string              // 銘柄コード
	High      decimal.NullDecimal // 高値（NULL可）
	Low       decimal.NullDecimal // 安値（NULL可）
	Open      decimal.NullDecimal // 始値（NULL可）
	Close     decimal.NullDecimal // 終値（NULL可）
	Volume    *int64              // 出来高（NULL可）
}

// StockPatch は部分更新で差し替えるフィールドの集合を表します。
// nilのフィールドは既存の値を維持します。
type StockPatch struct {
	Date      *time.Time
	TradeCode *string
	High      *decimal.Decimal
	Low       *decimal.Decimal
	Open      *decimal.Decimal
	Close     *decimal.Decimal
	Volume    *int64
}
