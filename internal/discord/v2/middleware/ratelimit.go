package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/othership-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/othership-bot/internal/repositories"
)

// RateLimitConfig configures rate limiting behavior
type RateLimitConfig struct {
	// MaxRequests is the maximum number of requests allowed per window.
	// Zero disables limiting.
	MaxRequests int

	// Window is the time window for rate limiting
	Window time.Duration

	// KeyFunc extracts the rate limit key from context
	KeyFunc func(*core.InteractionContext) string

	// Store for tracking rate limits (if nil, uses in-memory)
	Store RateLimitStore

	Logger *zap.Logger
}

// RateLimitStore tracks rate limit data
type RateLimitStore interface {
	// Increment increments the counter for a key and returns the new count
	Increment(ctx context.Context, key string, window time.Duration) (int, error)
}

// defaultKeyFunc uses user ID as the rate limit key
func defaultKeyFunc(ctx *core.InteractionContext) string {
	return ctx.UserID
}

// RateLimitMiddleware applies rate limiting. A failing store lets the
// request through.
func RateLimitMiddleware(config *RateLimitConfig) core.Middleware {
	if config.KeyFunc == nil {
		config.KeyFunc = defaultKeyFunc
	}
	if config.Store == nil {
		config.Store = NewMemoryRateLimitStore(nil)
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	message := fmt.Sprintf("You're doing that too fast! Please wait up to %v and try again.", config.Window)

	return func(next core.Handler) core.Handler {
		return core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
			key := config.KeyFunc(ctx)
			if key == "" || config.MaxRequests <= 0 {
				return next.Handle(ctx)
			}

			count, err := config.Store.Increment(ctx.Context, key, config.Window)
			if err != nil {
				config.Logger.Warn("rate limit store failed", zap.String("key", key), zap.Error(err))
				return next.Handle(ctx)
			}
			if count > config.MaxRequests {
				return nil, core.NewHandlerError(nil, message, core.ErrorCodeRateLimited)
			}
			return next.Handle(ctx)
		})
	}
}

// UserRateLimitMiddleware applies per-user rate limiting
func UserRateLimitMiddleware(maxRequests int, window time.Duration, store RateLimitStore, logger *zap.Logger) core.Middleware {
	return RateLimitMiddleware(&RateLimitConfig{
		MaxRequests: maxRequests,
		Window:      window,
		Store:       store,
		Logger:      logger,
	})
}

// MemoryRateLimitStore is an in-memory fixed window store
type MemoryRateLimitStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	clock   repositories.TimeProvider
}

type bucket struct {
	count   int
	resetAt time.Time
}

// NewMemoryRateLimitStore creates a new in-memory store
func NewMemoryRateLimitStore(clock repositories.TimeProvider) *MemoryRateLimitStore {
	if clock == nil {
		clock = repositories.RealTime()
	}
	return &MemoryRateLimitStore{
		buckets: make(map[string]*bucket),
		clock:   clock,
	}
}

// Increment increments the counter for a key
func (s *MemoryRateLimitStore) Increment(_ context.Context, key string, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	for k, b := range s.buckets {
		if !now.Before(b.resetAt) {
			delete(s.buckets, k)
		}
	}

	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{resetAt: now.Add(window)}
		s.buckets[key] = b
	}
	b.count++
	return b.count, nil
}

// RedisRateLimitStore shares fixed window counters between bot processes
type RedisRateLimitStore struct {
	client redis.UniversalClient
}

// NewRedisRateLimitStore creates a store keeping counters in redis
func NewRedisRateLimitStore(client redis.UniversalClient) *RedisRateLimitStore {
	if client == nil {
		panic("Redis client cannot be nil")
	}
	return &RedisRateLimitStore{client: client}
}

// Increment bumps the window counter, starting the expiry on first use
func (s *RedisRateLimitStore) Increment(ctx context.Context, key string, window time.Duration) (int, error) {
	k := fmt.Sprintf("ratelimit:%s", key)

	count, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment rate limit: %w", err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, k, window).Err(); err != nil {
			return 0, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}
	return int(count), nil
}
