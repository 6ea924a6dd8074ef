// Package rate implements a per-key fixed-window limiter with a redis and an
// in-process backend.
package rate

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	rdb "github.com/redis/go-redis/v9"
)

type Result struct {
	Allowed     bool
	Limit       int64
	Remaining   int64
	RetryAfter  time.Duration
	WindowTTL   time.Duration
	CurrentHits int64
}

type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

func windowKey(prefix, key string, winStart time.Time) string {
	return fmt.Sprintf("%s%s:%d", prefix, strings.ReplaceAll(key, " ", "_"), winStart.Unix())
}

func result(max, hits int64, ttl, window time.Duration) Result {
	remaining := max - hits
	if remaining < 0 {
		remaining = 0
	}
	res := Result{
		Allowed:     hits <= max,
		Limit:       max,
		Remaining:   remaining,
		CurrentHits: hits,
		WindowTTL:   ttl,
	}
	if !res.Allowed {
		// Retry after: resto de la ventana
		res.RetryAfter = ttl
		if res.RetryAfter <= 0 {
			res.RetryAfter = time.Duration(math.Ceil(window.Seconds())) * time.Second
		}
	}
	return res
}

// RedisLimiter: fixed window sencillo (INCR + EXPIRE), compartido entre réplicas.
type RedisLimiter struct {
	Client *rdb.Client
	Prefix string
	Max    int64
	Window time.Duration

	now func() time.Time
}

func NewRedisLimiter(client *rdb.Client, prefix string, max int, window time.Duration) *RedisLimiter {
	if prefix == "" {
		prefix = "rl:"
	}
	return &RedisLimiter{
		Client: client,
		Prefix: prefix,
		Max:    int64(max),
		Window: window,
		now:    time.Now,
	}
}

// Allow hace INCR + EXPIRE NX + TTL en un MULTI: el primer hit fija la
// expiración y ninguna key queda sin TTL.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	now := l.now().UTC()
	redisKey := windowKey(l.Prefix, key, now.Truncate(l.Window))

	pipe := l.Client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, l.Window)
	ttl := pipe.TTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("rate redis: %w", err)
	}
	return result(l.Max, incr.Val(), ttl.Val(), l.Window), nil
}

// Ping is used by the readiness probe.
func (l *RedisLimiter) Ping(ctx context.Context) error {
	return l.Client.Ping(ctx).Err()
}

// MemoryLimiter keeps the window counters in process (single replica).
type MemoryLimiter struct {
	Max    int64
	Window time.Duration

	mu    sync.Mutex
	store *gocache.Cache
	now   func() time.Time
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		Max:    int64(max),
		Window: window,
		store:  gocache.New(window, 2*window),
		now:    time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	now := l.now().UTC()
	winStart := now.Truncate(l.Window)
	ttl := winStart.Add(l.Window).Sub(now)
	k := windowKey("", key, winStart)

	l.mu.Lock()
	defer l.mu.Unlock()

	hits := int64(1)
	if err := l.store.Add(k, hits, ttl); err != nil {
		n, err := l.store.IncrementInt64(k, 1)
		if err != nil {
			return Result{}, fmt.Errorf("rate memory: %w", err)
		}
		hits = n
	}
	return result(l.Max, hits, ttl, l.Window), nil
}
