package datalayer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"time"

	"YjsonAPI/internal/db"
	"YjsonAPI/internal/logger"
	"YjsonAPI/internal/schema"
)

const countCacheTTL = time.Minute

// Count возвращает полное число объектов под фильтрами. Значение
// кэшируется в Redis по хэшу (тип ресурса + фильтры): COUNT по большим
// таблицам дорог, а meta.count нужен каждому запросу коллекции.
func (d *Postgres) Count(ctx context.Context, res *schema.Resource, filters any) (int, error) {
	key := countCacheKey(res.Type, filters)

	// 1. Попытка достать из Redis
	if db.RDB != nil {
		if cached, err := db.RDB.Get(ctx, key).Result(); err == nil {
			if n, convErr := strconv.Atoi(cached); convErr == nil {
				return n, nil
			}
		}
	}

	// 2. Считаем в базе
	sb, err := BuildCountQuery(res, filters, d.Filter)
	if err != nil {
		return 0, err
	}
	sqlStr, args, err := sb.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := d.Pool.QueryRow(ctx, sqlStr, args...).Scan(&count); err != nil {
		return 0, err
	}

	// 3. Сохраняем в Redis; промах кэша не фатален
	if db.RDB != nil {
		if err := db.RDB.Set(ctx, key, strconv.Itoa(count), countCacheTTL).Err(); err != nil {
			logger.Warn("count_cache_store_failed", map[string]any{
				"resource": res.Type,
				"error":    err.Error(),
			})
		}
	}

	return count, nil
}

func countCacheKey(typeName string, filters any) string {
	h := sha256.New()
	h.Write([]byte(typeName))
	if filters != nil {
		if enc, err := json.Marshal(filters); err == nil {
			h.Write(enc)
		}
	}
	return "count:" + typeName + ":" + hex.EncodeToString(h.Sum(nil))[:16]
}
