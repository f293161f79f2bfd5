// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stockdata_backend/internal/feature/stocks/domain/entity"
	"stockdata_backend/internal/feature/stocks/usecase"
)

// CachingStockRepository はStockRepositoryをRedisキャッシュでデコレートします。
// 読み取り（List/Get）はリードスルー、書き込み（Create/Update/Delete）は
// 名前空間全体を無効化します。Redisがnilの場合は透過的にバイパスします。
type CachingStockRepository struct {
	inner     usecase.StockRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.StockRepository = (*CachingStockRepository)(nil)

// NewCachingStockRepository はStockRepositoryをRedisキャッシュでデコレートします。
// ttlが0以下の場合は5分、namespaceが空の場合は"stocks"を使用します。
func NewCachingStockRepository(rdb *redis.Client, ttl time.Duration, inner usecase.StockRepository, namespace string) *CachingStockRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "stocks"
	}
	return &CachingStockRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// List は一覧をキャッシュ経由で取得します。キャッシュミス時はDBから取得して格納します。
func (c *CachingStockRepository) List(ctx context.Context, skip, limit int) ([]entity.Stock, error) {
	if c.rdb == nil {
		return c.inner.List(ctx, skip, limit)
	}

	key := c.listKey(skip, limit)

	// 1) キャッシュ確認
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Stock
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// 壊れたキャッシュエントリは削除
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) DBへフォールバック
	out, err := c.inner.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}

	// 3) キャッシュへ格納（ベストエフォート）
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Get は単一レコードをキャッシュ経由で取得します。不在シグナルはキャッシュしません。
func (c *CachingStockRepository) Get(ctx context.Context, id uint) (entity.Stock, error) {
	if c.rdb == nil {
		return c.inner.Get(ctx, id)
	}

	key := c.idKey(id)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Stock
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.Get(ctx, id)
	if err != nil {
		return entity.Stock{}, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Create はレコードを作成し、関連するキャッシュを無効化します。
func (c *CachingStockRepository) Create(ctx context.Context, draft entity.Stock) (entity.Stock, error) {
	created, err := c.inner.Create(ctx, draft)
	if err != nil {
		return entity.Stock{}, err
	}
	c.invalidate(ctx)
	return created, nil
}

// Update はレコードを部分更新し、関連するキャッシュを無効化します。
// 不在時（ErrStockNotFound）は何も変更されていないため無効化しません。
func (c *CachingStockRepository) Update(ctx context.Context, id uint, patch entity.StockPatch) (entity.Stock, error) {
	updated, err := c.inner.Update(ctx, id, patch)
	if err != nil {
		if !errors.Is(err, usecase.ErrStockNotFound) {
			// ストア側の失敗。変更の有無が不明なので安全側に倒して無効化する。
			c.invalidate(ctx)
		}
		return entity.Stock{}, err
	}
	c.invalidate(ctx)
	return updated, nil
}

// Delete はレコードを削除し、関連するキャッシュを無効化します。
func (c *CachingStockRepository) Delete(ctx context.Context, id uint) (entity.Stock, error) {
	deleted, err := c.inner.Delete(ctx, id)
	if err != nil {
		if !errors.Is(err, usecase.ErrStockNotFound) {
			c.invalidate(ctx)
		}
		return entity.Stock{}, err
	}
	c.invalidate(ctx)
	return deleted, nil
}

// listKey は一覧クエリ用のキャッシュキーを生成します。
func (c *CachingStockRepository) listKey(skip, limit int) string {
	return fmt.Sprintf("%s:list:%d:%d", c.namespace, skip, limit)
}

// idKey は単一レコード用のキャッシュキーを生成します。
func (c *CachingStockRepository) idKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}

// invalidate は名前空間配下の全キーをSCANで削除します（ベストエフォート）。
func (c *CachingStockRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.deleteByPattern(ctx, c.namespace+":*")
}

// deleteByPattern はパターンに一致する全キャッシュキーをSCANで削除します。
func (c *CachingStockRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
