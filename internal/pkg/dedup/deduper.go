package dedup

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"berbagi/internal/pkg/logger"
)

// Deduper claims one-shot keys in Redis. It fails open: when Redis is not
// reachable every key is treated as first-seen and the caller falls back to
// its own uniqueness guarantees.
type Deduper struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func NewDeduper(rdb *redis.Client, prefix string, ttl time.Duration) *Deduper {
	return &Deduper{
		rdb:    rdb,
		ttl:    ttl,
		prefix: prefix,
	}
}

// AcquireOnce returns true the first time key is seen within the TTL.
func (d *Deduper) AcquireOnce(ctx context.Context, key string) bool {
	if d == nil || d.rdb == nil {
		return true
	}

	fullKey := d.prefix + ":" + key
	ok, err := d.rdb.SetNX(ctx, fullKey, 1, d.ttl).Result()
	if err != nil {
		logger.Warn("Redis dedup check failed, allowing processing",
			zap.String("key", fullKey),
			zap.Error(err),
		)
		return true
	}

	if !ok {
		logger.Debug("Skipped duplicated key", zap.String("key", fullKey))
	}
	return ok
}

// Release forgets key so a later attempt can acquire it again. Used when the
// work guarded by AcquireOnce failed.
func (d *Deduper) Release(ctx context.Context, key string) {
	if d == nil || d.rdb == nil {
		return
	}
	if err := d.rdb.Del(ctx, d.prefix+":"+key).Err(); err != nil {
		logger.Warn("Redis dedup release failed", zap.String("key", key), zap.Error(err))
	}
}
