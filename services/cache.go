package services

import (
	"context"
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"securecheck-api/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	cachePrefix       = "securecheck:"
	cachePingAttempts = 5
	cachePingBackoff  = 2 * time.Second
)

// CacheService is a best-effort cache in front of the store. With no
// client every Get misses and every Set is dropped, so callers never branch
// on availability.
type CacheService struct {
	client *redis.Client
	logger *zap.Logger
}

// NewCacheService pings redis a few times before giving up. On failure it
// still returns a usable, disabled cache alongside the error.
func NewCacheService(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*CacheService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("cache")

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	var lastErr error
	for i := 0; i < cachePingAttempts; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		lastErr = client.Ping(pingCtx).Err()
		cancel()
		if lastErr == nil {
			return &CacheService{client: client, logger: logger}, nil
		}
		logger.Warn("redis ping failed", zap.Int("attempt", i+1), zap.Int("of", cachePingAttempts), zap.Error(lastErr))

		select {
		case <-ctx.Done():
			client.Close()
			return DisabledCache(), ctx.Err()
		case <-time.After(cachePingBackoff):
		}
	}

	client.Close()
	return DisabledCache(), fmt.Errorf("redis ping failed after %d attempts: %w", cachePingAttempts, lastErr)
}

func DisabledCache() *CacheService {
	return &CacheService{logger: zap.NewNop()}
}

func (s *CacheService) Available() bool {
	return s != nil && s.client != nil
}

// Get decodes the cached value into dest and reports whether there was one.
// Redis errors are logged and treated as a miss.
func (s *CacheService) Get(ctx context.Context, key string, dest any) bool {
	if !s.Available() {
		return false
	}
	val, err := s.client.Get(ctx, cachePrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := decodeCacheValue(val, dest); err != nil {
		s.logger.Warn("cache entry undecodable", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *CacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !s.Available() || ttl <= 0 {
		return nil
	}
	data, err := encodeCacheValue(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cachePrefix+key, data, ttl).Err()
}

// encodeCacheValue prefers a value's own binary encoding, which types such as
// gateway.ResultSet use to keep their dynamic values intact, and falls back
// to JSON.
func encodeCacheValue(value any) ([]byte, error) {
	if m, ok := value.(encoding.BinaryMarshaler); ok {
		return m.MarshalBinary()
	}
	return json.Marshal(value)
}

func decodeCacheValue(data []byte, dest any) error {
	if u, ok := dest.(encoding.BinaryUnmarshaler); ok {
		return u.UnmarshalBinary(data)
	}
	return json.Unmarshal(data, dest)
}

func (s *CacheService) Delete(ctx context.Context, key string) error {
	if !s.Available() {
		return nil
	}
	return s.client.Del(ctx, cachePrefix+key).Err()
}

// Purge drops every entry this service owns, for use after the log store
// changes underneath it. It reports how many keys were removed.
func (s *CacheService) Purge(ctx context.Context) (int, error) {
	if !s.Available() {
		return 0, nil
	}
	n := 0
	iter := s.client.Scan(ctx, 0, cachePrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return n, err
		}
		n++
	}
	return n, iter.Err()
}

func (s *CacheService) Close() error {
	if !s.Available() {
		return nil
	}
	return s.client.Close()
}
