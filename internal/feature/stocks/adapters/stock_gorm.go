// Package adapters はstocksフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"stockdata_backend/internal/feature/stocks/domain/entity"
	"stockdata_backend/internal/feature/stocks/usecase"
)

// stockGorm はStockRepositoryインターフェースのGORM実装です。
// デプロイ環境ではPostgres、ローカル開発とテストではSQLiteを想定しています。
type stockGorm struct {
	db *gorm.DB
}

var _ usecase.StockRepository = (*stockGorm)(nil)
var _ usecase.BulkStockRepository = (*stockGorm)(nil)

// NewStockRepository は指定されたDB接続でstockGormリポジトリの新しいインスタンスを生成します。
func NewStockRepository(db *gorm.DB) *stockGorm {
	return &stockGorm{db: db}
}

// StockModel は stocks テーブルの1行を表します。
// 価格カラムはnumeric型で、NULLを許容します。
type StockModel struct {
	ID        uint      `gorm:"primaryKey"`
	Date      time.Time `gorm:"type:date;not null;index"`
	TradeCode string    `gorm:"size:50;not null;index"`

	High   decimal.NullDecimal `gorm:"type:numeric"`
	Low    decimal.NullDecimal `gorm:"type:numeric"`
	Open   decimal.NullDecimal `gorm:"type:numeric"`
	Close  decimal.NullDecimal `gorm:"type:numeric"`
	Volume *int64              `gorm:"type:bigint"`
}

func (StockModel) TableName() string {
	return "stocks"
}

func toModel(e entity.Stock) StockModel {
	return StockModel{
		ID:        e.ID,
		Date:      e.Date,
		TradeCode: e.TradeCode,
		High:      e.High,
		Low:       e.Low,
		Open:      e.Open,
		Close:     e.Close,
		Volume:    e.Volume,
	}
}

func toEntity(m StockModel) entity.Stock {
	return entity.Stock{
		ID:        m.ID,
		Date:      m.Date,
		TradeCode: m.TradeCode,
		High:      m.High,
		Low:       m.Low,
		Open:      m.Open,
		Close:     m.Close,
		Volume:    m.Volume,
	}
}

// applyPatch はpatchでnilでないフィールドのみをモデルに反映します。
func applyPatch(m *StockModel, p entity.StockPatch) {
	if p.Date != nil {
		m.Date = *p.Date
	}
	if p.TradeCode != nil {
		m.TradeCode = *p.TradeCode
	}
	if p.High != nil {
		m.High = decimal.NullDecimal{Decimal: *p.High, Valid: true}
	}
	if p.Low != nil {
		m.Low = decimal.NullDecimal{Decimal: *p.Low, Valid: true}
	}
	if p.Open != nil {
		m.Open = decimal.NullDecimal{Decimal: *p.Open, Valid: true}
	}
	if p.Close != nil {
		m.Close = decimal.NullDecimal{Decimal: *p.Close, Valid: true}
	}
	if p.Volume != nil {
		m.Volume = p.Volume
	}
}

// List はID昇順でskip件読み飛ばし、最大limit件を返します。
func (r *stockGorm) List(ctx context.Context, skip, limit int) ([]entity.Stock, error) {
	var rows []StockModel
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Stock, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// Get はIDによる単一レコードの取得です。
func (r *stockGorm) Get(ctx context.Context, id uint) (entity.Stock, error) {
	var m StockModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.Stock{}, usecase.ErrStockNotFound
		}
		return entity.Stock{}, err
	}
	return toEntity(m), nil
}

// Create はIDを採番して永続化し、採番済みのレコードを返します。
// （date, trade_code）の重複チェックは行いません。
func (r *stockGorm) Create(ctx context.Context, draft entity.Stock) (entity.Stock, error) {
	m := toModel(draft)
	m.ID = 0 // 採番はストアの責務
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return entity.Stock{}, err
	}
	return toEntity(m), nil
}

// Update はpatchに含まれるフィールドのみ差し替え、更新後のレコードを返します。
// レコードが存在しない場合は何も変更せずErrStockNotFoundを返します。
func (r *stockGorm) Update(ctx context.Context, id uint, patch entity.StockPatch) (entity.Stock, error) {
	var m StockModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.Stock{}, usecase.ErrStockNotFound
		}
		return entity.Stock{}, err
	}

	applyPatch(&m, patch)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return entity.Stock{}, err
	}
	return toEntity(m), nil
}

// Delete はレコードを削除し、削除された値を返します。
// レコードが存在しない場合は何も変更せずErrStockNotFoundを返します。
func (r *stockGorm) Delete(ctx context.Context, id uint) (entity.Stock, error) {
	var m StockModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.Stock{}, usecase.ErrStockNotFound
		}
		return entity.Stock{}, err
	}

	if err := r.db.WithContext(ctx).Delete(&StockModel{}, id).Error; err != nil {
		return entity.Stock{}, err
	}
	return toEntity(m), nil
}

// InsertBatch はレコードをまとめて挿入します。CSV一括取り込み用です。
func (r *stockGorm) InsertBatch(ctx context.Context, stocks []entity.Stock) error {
	if len(stocks) == 0 {
		return nil
	}
	ms := make([]StockModel, 0, len(stocks))
	for _, e := range stocks {
		m := toModel(e)
		m.ID = 0
		ms = append(ms, m)
	}
	return r.db.WithContext(ctx).Create(&ms).Error
}
