package usecase

import (
	"context"

	"stockdata_backend/internal/feature/stocks/domain/entity"
)

const (
	// DefaultLimit は一覧取得のデフォルト返却件数です。
	DefaultLimit = 20
	// MaxLimit は一覧取得の最大返却件数です。
	MaxLimit = 100
)

// StockRepository は株価レコードの永続化レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type StockRepository interface {
	// List はID昇順でskip件読み飛ばし、最大limit件を返します。
	// 範囲外のskipはエラーではなく空のスライスになります。
	List(ctx context.Context, skip, limit int) ([]entity.Stock, error)
	// Get はIDによる単一レコードの取得です。不在時はErrStockNotFoundを返します。
	Get(ctx context.Context, id uint) (entity.Stock, error)
	// Create はIDを採番して永続化し、採番済みのレコードを返します。
	Create(ctx context.Context, draft entity.Stock) (entity.Stock, error)
	// Update はpatchに含まれるフィールドのみ差し替えます。不在時はErrStockNotFoundを返します。
	Update(ctx context.Context, id uint, patch entity.StockPatch) (entity.Stock, error)
	// Delete はレコードを削除し、削除された値を返します。不在時はErrStockNotFoundを返します。
	Delete(ctx context.Context, id uint) (entity.Stock, error)
}

// stocksUsecase は株価レコードCRUDのユースケースを定義します。
type stocksUsecase struct {
	stocks StockRepository
}

// NewStocksUsecase はstocksUsecaseの新しいインスタンスを生成します。
func NewStocksUsecase(stocks StockRepository) *stocksUsecase {
	return &stocksUsecase{stocks: stocks}
}

// ListStocks はページネーションパラメータを正規化して一覧を取得します。
// 負のskipは0に、0以下またはMaxLimit超のlimitはDefaultLimitに丸められます。
func (su *stocksUsecase) ListStocks(ctx context.Context, skip, limit int) ([]entity.Stock, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	return su.stocks.List(ctx, skip, limit)
}

// GetStock は指定されたIDのレコードを取得します。
func (su *stocksUsecase) GetStock(ctx context.Context, id uint) (entity.Stock, error) {
	return su.stocks.Get(ctx, id)
}

// CreateStock はドラフトを永続化し、ID採番済みのレコードを返します。
// 構造的な検証はhandler側で完了している前提です。
func (su *stocksUsecase) CreateStock(ctx context.Context, draft entity.Stock) (entity.Stock, error) {
	return su.stocks.Create(ctx, draft)
}

// UpdateStock は指定されたフィールドのみを部分更新します。
func (su *stocksUsecase) UpdateStock(ctx context.Context, id uint, patch entity.StockPatch) (entity.Stock, error) {
	return su.stocks.Update(ctx, id, patch)
}

// DeleteStock はレコードを削除し、削除された値を返します。
func (su *stocksUsecase) DeleteStock(ctx context.Context, id uint) (entity.Stock, error) {
	return su.stocks.Delete(ctx, id)
}
