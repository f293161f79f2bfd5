package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"stockdata_backend/internal/feature/stocks/domain/entity"
)

const importBatchSize = 500 // 1回のINSERTで書き込む件数

// StockSource は取り込み元（CSVファイル等）を抽象化します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type StockSource interface {
	ReadAll(ctx context.Context) ([]entity.Stock, error)
}

// BulkStockRepository は一括挿入をサポートする永続化レイヤーを抽象化します。
type BulkStockRepository interface {
	InsertBatch(ctx context.Context, stocks []entity.Stock) error
}

// ImportUsecase は取り込み元から株価レコードを読み込み、
// データベースに一括で永続化するユースケースを定義します。
type ImportUsecase struct {
	source StockSource
	stocks BulkStockRepository
}

// NewImportUsecase は新しい ImportUsecase を作成します。
func NewImportUsecase(source StockSource, stocks BulkStockRepository) *ImportUsecase {
	return &ImportUsecase{source: source, stocks: stocks}
}

// ImportAll は取り込み元の全レコードをバッチ単位で挿入し、挿入済み件数を返します。
// 途中のバッチで失敗した場合、それまでに挿入された件数とエラーを返します。
func (iu *ImportUsecase) ImportAll(ctx context.Context) (int, error) {
	rows, err := iu.source.ReadAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read source: %w", err)
	}

	inserted := 0
	for start := 0; start < len(rows); start += importBatchSize {
		end := start + importBatchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := iu.stocks.InsertBatch(ctx, rows[start:end]); err != nil {
			return inserted, fmt.Errorf("failed to insert batch at row %d: %w", start, err)
		}
		inserted += end - start
		slog.Info("imported batch", "inserted", inserted, "total", len(rows))
	}
	return inserted, nil
}
