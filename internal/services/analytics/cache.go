package analytics

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"delphi/internal/adapters/redis"
	"delphi/internal/domain/analytics"
	"delphi/internal/metrics"
	"delphi/pkg/errors"
	"delphi/pkg/logger"
)

// CacheConfig contains configuration for result caching
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// DefaultCacheConfig returns default configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: true,
		TTL:     3 * time.Minute,
	}
}

// CachedService decorates the heaviest read operations with a redis-backed
// result cache. Keys are derived from operation name plus parameters; the
// window still moves with the clock, so the TTL bounds how stale a cached
// window can get. A redis outage degrades to direct computation.
type CachedService struct {
	*Service

	config CacheConfig
	redis  *redis.Client
	log    *logger.Logger
}

// NewCachedService wraps the service with the result cache
func NewCachedService(svc *Service, config CacheConfig, redisClient *redis.Client) *CachedService {
	return &CachedService{
		Service: svc,
		config:  config,
		redis:   redisClient,
		log:     logger.Get().With("component", "analytics_cache"),
	}
}

// TokenSentimentStats serves the stats from cache when a fresh entry exists
func (c *CachedService) TokenSentimentStats(ctx context.Context, p analytics.StatsParams) (*analytics.TokenSentimentStats, error) {
	const op = "token_sentiment_stats"
	if !c.usable() {
		return c.Service.TokenSentimentStats(ctx, p)
	}

	key := cacheKey(op, p)
	var cached analytics.TokenSentimentStats
	if c.lookup(ctx, op, key, &cached) {
		return &cached, nil
	}

	start := time.Now()
	result, err := c.Service.TokenSentimentStats(ctx, p)
	metrics.RecordEngineQuery(op, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	c.store(ctx, op, key, result)

	return result, nil
}

// MostDiscussedTokens serves the ranking from cache when a fresh entry exists
func (c *CachedService) MostDiscussedTokens(ctx context.Context, p analytics.MostDiscussedParams) (*analytics.MostDiscussed, error) {
	const op = "most_discussed_tokens"
	if !c.usable() {
		return c.Service.MostDiscussedTokens(ctx, p)
	}

	key := cacheKey(op, p)
	var cached analytics.MostDiscussed
	if c.lookup(ctx, op, key, &cached) {
		return &cached, nil
	}

	start := time.Now()
	result, err := c.Service.MostDiscussedTokens(ctx, p)
	metrics.RecordEngineQuery(op, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	c.store(ctx, op, key, result)

	return result, nil
}

// NetworkTokenMatrix serves the matrix from cache when a fresh entry exists
func (c *CachedService) NetworkTokenMatrix(ctx context.Context, p analytics.MatrixParams) (*analytics.Matrix, error) {
	const op = "network_token_matrix"
	if !c.usable() {
		return c.Service.NetworkTokenMatrix(ctx, p)
	}

	key := cacheKey(op, p)
	var cached analytics.Matrix
	if c.lookup(ctx, op, key, &cached) {
		return &cached, nil
	}

	start := time.Now()
	result, err := c.Service.NetworkTokenMatrix(ctx, p)
	metrics.RecordEngineQuery(op, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	c.store(ctx, op, key, result)

	return result, nil
}

// GlobalSentimentTrends serves the trends from cache when a fresh entry exists
func (c *CachedService) GlobalSentimentTrends(ctx context.Context, p analytics.GlobalTrendsParams) (*analytics.GlobalTrends, error) {
	const op = "global_sentiment_trends"
	if !c.usable() {
		return c.Service.GlobalSentimentTrends(ctx, p)
	}

	key := cacheKey(op, p)
	var cached analytics.GlobalTrends
	if c.lookup(ctx, op, key, &cached) {
		return &cached, nil
	}

	start := time.Now()
	result, err := c.Service.GlobalSentimentTrends(ctx, p)
	metrics.RecordEngineQuery(op, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	c.store(ctx, op, key, result)

	return result, nil
}

func (c *CachedService) usable() bool {
	return c.config.Enabled && c.redis != nil
}

// lookup reports whether dest was filled from cache.
func (c *CachedService) lookup(ctx context.Context, op, key string, dest interface{}) bool {
	err := c.redis.Get(ctx, key, dest)
	switch {
	case err == nil:
		metrics.RecordCacheRequest(op, "hit")
		return true
	case errors.Is(err, errors.ErrCacheMiss):
		metrics.RecordCacheRequest(op, "miss")
	default:
		metrics.RecordCacheRequest(op, "error")
		c.log.Warnw("Cache lookup failed", "operation", op, "error", err)
	}
	return false
}

func (c *CachedService) store(ctx context.Context, op, key string, value interface{}) {
	if err := c.redis.Set(ctx, key, value, c.config.TTL); err != nil {
		c.log.Warnw("Cache store failed", "operation", op, "error", err)
	}
}

// cacheKey derives a stable key from the operation and its parameters.
func cacheKey(op string, params interface{}) string {
	data, _ := json.Marshal(params)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("delphi:analytics:%s:%x", op, sum[:16])
}
