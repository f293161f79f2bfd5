package usecase_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"stockdata_backend/internal/feature/stocks/domain/entity"
	"stockdata_backend/internal/feature/stocks/usecase"
)

// ErrDB はモックと期待値の間で共有されるセンチネルエラーです。
var ErrDB = errors.New("database error")

// mockStockRepository はStockRepositoryインターフェースのモック実装です。
type mockStockRepository struct {
	ListFunc   func(ctx context.Context, skip, limit int) ([]entity.Stock, error)
	GetFunc    func(ctx context.Context, id uint) (entity.Stock, error)
	CreateFunc func(ctx context.Context, draft entity.Stock) (entity.Stock, error)
	UpdateFunc func(ctx context.Context, id uint, patch entity.StockPatch) (entity.Stock, error)
	DeleteFunc func(ctx context.Context, id uint) (entity.Stock, error)
	ListCalls  int
}

func (m *mockStockRepository) List(ctx context.Context, skip, limit int) ([]entity.Stock, error) {
	m.ListCalls++
	if m.ListFunc != nil {
		return m.ListFunc(ctx, skip, limit)
	}
	return nil, errors.New("ListFunc is not implemented")
}

func (m *mockStockRepository) Get(ctx context.Context, id uint) (entity.Stock, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return entity.Stock{}, errors.New("GetFunc is not implemented")
}

func (m *mockStockRepository) Create(ctx context.Context, draft entity.Stock) (entity.Stock, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, draft)
	}
	return entity.Stock{}, errors.New("CreateFunc is not implemented")
}

func (m *mockStockRepository) Update(ctx context.Context, id uint, patch entity.StockPatch) (entity.Stock, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, patch)
	}
	return entity.Stock{}, errors.New("UpdateFunc is not implemented")
}

func (m *mockStockRepository) Delete(ctx context.Context, id uint) (entity.Stock, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return entity.Stock{}, errors.New("DeleteFunc is not implemented")
}

// TestStocksUsecase_ListStocks はページネーションパラメータの正規化とリポジトリ呼び出しをテストします。
func TestStocksUsecase_ListStocks(t *testing.T) {
	ctx := context.Background()
	expectedStocks := []entity.Stock{
		{ID: 1, Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), TradeCode: "ABC"},
	}

	testCases := []struct {
		name          string
		inputSkip     int
		inputLimit    int
		expectedSkip  int // モックに渡されるべきskip
		expectedLimit int // モックに渡されるべきlimit
	}{
		{
			name:          "success: all parameters specified",
			inputSkip:     40,
			inputLimit:    50,
			expectedSkip:  40,
			expectedLimit: 50,
		},
		{
			name:          "success: default value used when limit is 0",
			inputSkip:     0,
			inputLimit:    0,
			expectedSkip:  0,
			expectedLimit: usecase.DefaultLimit,
		},
		{
			name:          "success: default value used when limit exceeds max",
			inputSkip:     0,
			inputLimit:    usecase.MaxLimit + 1,
			expectedSkip:  0,
			expectedLimit: usecase.DefaultLimit,
		},
		{
			name:          "success: negative skip clamped to zero",
			inputSkip:     -5,
			inputLimit:    10,
			expectedSkip:  0,
			expectedLimit: 10,
		},
		{
			name:          "success: negative limit uses default",
			inputSkip:     3,
			inputLimit:    -1,
			expectedSkip:  3,
			expectedLimit: usecase.DefaultLimit,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &mockStockRepository{
				ListFunc: func(ctx context.Context, skip, limit int) ([]entity.Stock, error) {
					if skip != tc.expectedSkip {
						t.Errorf("expected skip %d, got %d", tc.expectedSkip, skip)
					}
					if limit != tc.expectedLimit {
						t.Errorf("expected limit %d, got %d", tc.expectedLimit, limit)
					}
					return expectedStocks, nil
				},
			}

			su := usecase.NewStocksUsecase(mockRepo)
			stocks, err := su.ListStocks(ctx, tc.inputSkip, tc.inputLimit)

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(stocks, expectedStocks) {
				t.Errorf("expected %v, got %v", expectedStocks, stocks)
			}
			if mockRepo.ListCalls != 1 {
				t.Errorf("expected 1 List call, got %d", mockRepo.ListCalls)
			}
		})
	}
}

// TestStocksUsecase_ListStocks_RepositoryError はリポジトリのエラーがそのまま伝播することを検証します。
func TestStocksUsecase_ListStocks_RepositoryError(t *testing.T) {
	mockRepo := &mockStockRepository{
		ListFunc: func(ctx context.Context, skip, limit int) ([]entity.Stock, error) {
			return nil, ErrDB
		},
	}

	su := usecase.NewStocksUsecase(mockRepo)
	_, err := su.ListStocks(context.Background(), 0, 10)

	if !errors.Is(err, ErrDB) {
		t.Errorf("expected ErrDB, got %v", err)
	}
}

// TestStocksUsecase_GetStock はGetの委譲と不在シグナルの伝播をテストします。
func TestStocksUsecase_GetStock(t *testing.T) {
	ctx := context.Background()
	expected := entity.Stock{ID: 7, TradeCode: "ABC"}

	t.Run("success", func(t *testing.T) {
		mockRepo := &mockStockRepository{
			GetFunc: func(ctx context.Context, id uint) (entity.Stock, error) {
				if id != 7 {
					t.Errorf("expected id 7, got %d", id)
				}
				return expected, nil
			},
		}
		su := usecase.NewStocksUsecase(mockRepo)

		got, err := su.GetStock(ctx, 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(got, expected) {
			t.Errorf("expected %v, got %v", expected, got)
		}
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := &mockStockRepository{
			GetFunc: func(ctx context.Context, id uint) (entity.Stock, error) {
				return entity.Stock{}, usecase.ErrStockNotFound
			},
		}
		su := usecase.NewStocksUsecase(mockRepo)

		_, err := su.GetStock(ctx, 999)
		if !errors.Is(err, usecase.ErrStockNotFound) {
			t.Errorf("expected ErrStockNotFound, got %v", err)
		}
	})
}

// TestStocksUsecase_CreateStock はドラフトがそのままリポジトリへ渡ることをテストします。
func TestStocksUsecase_CreateStock(t *testing.T) {
	high := decimal.NewFromFloat(10.0)
	draft := entity.Stock{
		Date:      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		TradeCode: "ABC",
		High:      decimal.NullDecimal{Decimal: high, Valid: true},
	}

	mockRepo := &mockStockRepository{
		CreateFunc: func(ctx context.Context, got entity.Stock) (entity.Stock, error) {
			if !reflect.DeepEqual(got, draft) {
				t.Errorf("expected draft %v, got %v", draft, got)
			}
			created := got
			created.ID = 1
			return created, nil
		},
	}

	su := usecase.NewStocksUsecase(mockRepo)
	created, err := su.CreateStock(context.Background(), draft)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected assigned id 1, got %d", created.ID)
	}
}

// TestStocksUsecase_UpdateStock は部分更新パッチの委譲と不在シグナルをテストします。
func TestStocksUsecase_UpdateStock(t *testing.T) {
	ctx := context.Background()
	closePrice := decimal.NewFromFloat(10.5)
	patch := entity.StockPatch{Close: &closePrice}

	t.Run("success", func(t *testing.T) {
		mockRepo := &mockStockRepository{
			UpdateFunc: func(ctx context.Context, id uint, got entity.StockPatch) (entity.Stock, error) {
				if id != 1 {
					t.Errorf("expected id 1, got %d", id)
				}
				if got.Close == nil || !got.Close.Equal(closePrice) {
					t.Errorf("expected close patch %v, got %v", closePrice, got.Close)
				}
				if got.Date != nil || got.TradeCode != nil || got.High != nil {
					t.Error("unexpected fields set in patch")
				}
				return entity.Stock{ID: 1, TradeCode: "ABC", Close: decimal.NullDecimal{Decimal: closePrice, Valid: true}}, nil
			},
		}
		su := usecase.NewStocksUsecase(mockRepo)

		updated, err := su.UpdateStock(ctx, 1, patch)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !updated.Close.Valid || !updated.Close.Decimal.Equal(closePrice) {
			t.Errorf("expected updated close %v, got %v", closePrice, updated.Close)
		}
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := &mockStockRepository{
			UpdateFunc: func(ctx context.Context, id uint, got entity.StockPatch) (entity.Stock, error) {
				return entity.Stock{}, usecase.ErrStockNotFound
			},
		}
		su := usecase.NewStocksUsecase(mockRepo)

		_, err := su.UpdateStock(ctx, 999, patch)
		if !errors.Is(err, usecase.ErrStockNotFound) {
			t.Errorf("expected ErrStockNotFound, got %v", err)
		}
	})
}

// TestStocksUsecase_DeleteStock は削除された値の返却と不在シグナルをテストします。
func TestStocksUsecase_DeleteStock(t *testing.T) {
	ctx := context.Background()
	deleted := entity.Stock{ID: 1, TradeCode: "ABC"}

	t.Run("success returns deleted record", func(t *testing.T) {
		mockRepo := &mockStockRepository{
			DeleteFunc: func(ctx context.Context, id uint) (entity.Stock, error) {
				return deleted, nil
			},
		}
		su := usecase.NewStocksUsecase(mockRepo)

		got, err := su.DeleteStock(ctx, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(got, deleted) {
			t.Errorf("expected %v, got %v", deleted, got)
		}
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := &mockStockRepository{
			DeleteFunc: func(ctx context.Context, id uint) (entity.Stock, error) {
				return entity.Stock{}, usecase.ErrStockNotFound
			},
		}
		su := usecase.NewStocksUsecase(mockRepo)

		_, err := su.DeleteStock(ctx, 999)
		if !errors.Is(err, usecase.ErrStockNotFound) {
			t.Errorf("expected ErrStockNotFound, got %v", err)
		}
	})
}
