// Package usecase は株価レコード操作のビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrStockNotFound は指定されたIDのレコードが存在しない場合に返されます。
	// 検証エラーやストア障害とは区別される「不在シグナル」であり、
	// 呼び出し側（handler）は404として扱います。
	ErrStockNotFound = errors.New("stock not found")
)
