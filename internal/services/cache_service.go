package services

import (
	"context"
	"time"

	"cityride/pkg/cache"
	"cityride/pkg/logger"
)

// CacheService is the thin caching layer the repositories use for hot reads
// (active trips). A cache failure is never an error for the caller; reads
// fall through to the database and writes are best effort.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration)
	Delete(ctx context.Context, keys ...string)
}

type redisCacheService struct {
	cache  *cache.RedisCache
	logger *logger.Logger
}

func NewRedisCacheService(redisCache *cache.RedisCache, log *logger.Logger) CacheService {
	return &redisCacheService{
		cache:  redisCache,
		logger: log.WithField("component", "cache"),
	}
}

func (s *redisCacheService) Get(ctx context.Context, key string, dest interface{}) bool {
	err := s.cache.Get(ctx, key, dest)
	if err != nil {
		if !cache.IsMiss(err) {
			s.logger.WithError(err).Warnf("cache get failed for %s", key)
		}
		return false
	}
	return true
}

func (s *redisCacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		s.logger.WithError(err).Warnf("cache set failed for %s", key)
	}
}

func (s *redisCacheService) Delete(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.WithError(err).Warnf("cache delete failed")
	}
}

// noopCacheService is used when Redis is not configured.
type noopCacheService struct{}

func NewNoopCacheService() CacheService {
	return noopCacheService{}
}

func (noopCacheService) Get(ctx context.Context, key string, dest interface{}) bool { return false }
func (noopCacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
}
func (noopCacheService) Delete(ctx context.Context, keys ...string) {}
