package stats

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRecorder stores event counters in Redis.
//
// Totals are cumulative hashes; per-minute buckets expire after a TTL so
// the key space stays bounded. A nil RedisRecorder or nil client records
// nothing, which lets callers wire it unconditionally.
type RedisRecorder struct {
	rdb *redis.Client

	prefix string
	// ttl applies only to time-bucketed keys; totals never expire.
	ttl time.Duration
}

// RedisOption configures a RedisRecorder.
type RedisOption func(*RedisRecorder)

// WithPrefix overrides the key prefix (default "txsignals:stats").
func WithPrefix(prefix string) RedisOption {
	return func(r *RedisRecorder) {
		r.prefix = strings.Trim(prefix, ":")
	}
}

// WithTTL overrides the per-minute bucket TTL (default 24h).
func WithTTL(d time.Duration) RedisOption {
	return func(r *RedisRecorder) { r.ttl = d }
}

// NewRedisRecorder creates a recorder backed by the given client.
func NewRedisRecorder(rdb *redis.Client, opts ...RedisOption) *RedisRecorder {
	r := &RedisRecorder{
		rdb:    rdb,
		prefix: "txsignals:stats",
		ttl:    24 * time.Hour,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record increments the total and per-minute counters for the event kind.
func (r *RedisRecorder) Record(ctx context.Context, ev Event) error {
	if r == nil || r.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	totalKey := r.prefix + ":total"
	bucketKey := fmt.Sprintf("%s:minute:%s", r.prefix, at.UTC().Format("200601021504"))

	pipe := r.rdb.Pipeline()
	pipe.HIncrBy(ctx, totalKey, ev.Kind, 1)
	pipe.HIncrBy(ctx, bucketKey, ev.Kind, 1)
	if r.ttl > 0 {
		pipe.Expire(ctx, bucketKey, r.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record stats event: %w", err)
	}
	return nil
}
