// Package csvsource はCSVファイルから株価レコードを読み込むStockSource実装を提供します。
package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"stockdata_backend/internal/feature/stocks/domain/entity"
	"stockdata_backend/internal/feature/stocks/usecase"
)

// dateLayout はCSV内の日付形式です。
const dateLayout = "2006-01-02"

// expectedHeader は1行目に要求するヘッダーです。列順も固定です。
var expectedHeader = []string{"date", "trade_code", "high", "low", "open", "close", "volume"}

// fileSource はローカルCSVファイルを読むStockSource実装です。
type fileSource struct {
	path string
}

var _ usecase.StockSource = (*fileSource)(nil)

// NewFileSource は指定されたパスのCSVを読むfileSourceを生成します。
func NewFileSource(path string) *fileSource {
	return &fileSource{path: path}
}

// ReadAll はCSV全行をパースして返します。
// 不正な行があった場合は行番号付きのエラーで中断します。
func (s *fileSource) ReadAll(ctx context.Context) ([]entity.Stock, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	var out []entity.Stock
	line := 1 // ヘッダーが1行目
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line+1, err)
		}
		line++

		stock, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		out = append(out, stock)
	}
	return out, nil
}

func validateHeader(header []string) error {
	if len(header) != len(expectedHeader) {
		return fmt.Errorf("unexpected header %v (want %v)", header, expectedHeader)
	}
	for i, col := range header {
		if strings.ToLower(strings.TrimSpace(col)) != expectedHeader[i] {
			return fmt.Errorf("unexpected header column %q at position %d (want %q)", col, i, expectedHeader[i])
		}
	}
	return nil
}

func parseRow(record []string) (entity.Stock, error) {
	date, err := time.Parse(dateLayout, strings.TrimSpace(record[0]))
	if err != nil {
		return entity.Stock{}, fmt.Errorf("invalid date %q: %w", record[0], err)
	}

	tradeCode := strings.TrimSpace(record[1])
	if tradeCode == "" {
		return entity.Stock{}, fmt.Errorf("trade_code must not be empty")
	}

	stock := entity.Stock{Date: date, TradeCode: tradeCode}

	prices := []struct {
		name string
		raw  string
		dst  *decimal.NullDecimal
	}{
		{"high", record[2], &stock.High},
		{"low", record[3], &stock.Low},
		{"open", record[4], &stock.Open},
		{"close", record[5], &stock.Close},
	}
	for _, p := range prices {
		d, err := parsePrice(p.raw)
		if err != nil {
			return entity.Stock{}, fmt.Errorf("invalid %s %q: %w", p.name, p.raw, err)
		}
		*p.dst = d
	}

	volume, err := parseVolume(record[6])
	if err != nil {
		return entity.Stock{}, fmt.Errorf("invalid volume %q: %w", record[6], err)
	}
	stock.Volume = volume

	return stock, nil
}

// parsePrice は価格セルをパースします。空セルはNULL扱いです。
func parsePrice(raw string) (decimal.NullDecimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}

// parseVolume は出来高セルをパースします。
// 元データには "1,234,567" のような桁区切りが含まれるため除去します。空セルはNULL扱いです。
func parseVolume(raw string) (*int64, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
