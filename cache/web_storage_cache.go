package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	listpane_errors "github.com/dev-mohitbeniwal/listpane/errors"
	logger "github.com/dev-mohitbeniwal/listpane/logging"
	"github.com/dev-mohitbeniwal/listpane/metrics"
)

// item is the stored representation of a cached value.
type item struct {
	ExpiresAt int64           `json:"expiresAt"` // unix milliseconds
	Value     json.RawMessage `json:"value"`
}

// WebStorageCache stores JSON values under a namespace with a fixed timeout.
// A timeout of 0 disables the cache: nothing is stored and every read misses.
type WebStorageCache struct {
	namespace   string
	timeoutSecs int
	scope       Scope
	storage     Storage
	now         func() time.Time
}

func New(namespace string, timeoutSecs int, scope Scope, storage Storage) *WebStorageCache {
	if timeoutSecs < 0 {
		timeoutSecs = 0
	}
	return &WebStorageCache{
		namespace:   namespace,
		timeoutSecs: timeoutSecs,
		scope:       scope,
		storage:     storage,
		now:         time.Now,
	}
}

// NewForScope picks the storage for scope: the shared session storage, or Redis
// for the persistent scope. A persistent cache without a Redis client is a
// configuration error.
func NewForScope(namespace string, timeoutSecs int, scope Scope, client redis.Cmdable) (*WebStorageCache, error) {
	switch scope {
	case ScopePersistent:
		if client == nil {
			return nil, listpane_errors.NewConfigError(
				fmt.Sprintf("cache %q uses the persistent scope but Redis is not configured", namespace))
		}
		return New(namespace, timeoutSecs, scope, NewRedisStorage(client)), nil
	default:
		return New(namespace, timeoutSecs, ScopeSession, SessionStorage()), nil
	}
}

// WithClock replaces the clock used for expiry decisions.
func (c *WebStorageCache) WithClock(now func() time.Time) *WebStorageCache {
	c.now = now
	return c
}

func (c *WebStorageCache) Namespace() string { return c.namespace }
func (c *WebStorageCache) TimeoutSecs() int  { return c.timeoutSecs }
func (c *WebStorageCache) Scope() Scope      { return c.scope }
func (c *WebStorageCache) Enabled() bool     { return c.timeoutSecs > 0 }

func (c *WebStorageCache) storageKey(key string) string {
	return fmt.Sprintf("%s:%s", c.namespace, key)
}

// GetItem decodes the value stored under key into dest. It returns false on a
// miss, on an expired entry (which is removed) and on storage or decode
// failures, which are logged and treated as misses.
func (c *WebStorageCache) GetItem(ctx context.Context, key string, dest any) bool {
	if !c.Enabled() {
		return false
	}

	storageKey := c.storageKey(key)
	raw, ok, err := c.storage.Get(ctx, storageKey)
	if err != nil {
		logger.Warn("Failed to read from cache", zap.Error(err), zap.String("cacheKey", storageKey))
		metrics.CacheMiss(c.namespace)
		return false
	}
	if !ok {
		logger.Debug("Cache miss", zap.String("cacheKey", storageKey))
		metrics.CacheMiss(c.namespace)
		return false
	}

	var it item
	if err := json.Unmarshal(raw, &it); err != nil {
		logger.Warn("Discarding unreadable cache entry", zap.Error(err), zap.String("cacheKey", storageKey))
		c.remove(ctx, storageKey)
		metrics.CacheMiss(c.namespace)
		return false
	}

	if !c.now().Before(time.UnixMilli(it.ExpiresAt)) {
		logger.Debug("Cache entry expired", zap.String("cacheKey", storageKey))
		c.remove(ctx, storageKey)
		metrics.CacheExpired(c.namespace)
		return false
	}

	if err := json.Unmarshal(it.Value, dest); err != nil {
		logger.Warn("Failed to decode cached value", zap.Error(err), zap.String("cacheKey", storageKey))
		metrics.CacheMiss(c.namespace)
		return false
	}

	logger.Debug("Cache hit", zap.String("cacheKey", storageKey))
	metrics.CacheHit(c.namespace)
	return true
}

// SetItem stores value under key until now + timeout.
func (c *WebStorageCache) SetItem(ctx context.Context, key string, value any) error {
	if !c.Enabled() {
		return nil
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	ttl := time.Duration(c.timeoutSecs) * time.Second
	raw, err := json.Marshal(item{
		ExpiresAt: c.now().Add(ttl).UnixMilli(),
		Value:     encoded,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal cache item: %w", err)
	}

	storageKey := c.storageKey(key)
	if err := c.storage.Set(ctx, storageKey, raw, ttl); err != nil {
		return fmt.Errorf("failed to cache %s: %w", storageKey, err)
	}

	logger.Debug("Cached item", zap.String("cacheKey", storageKey), zap.Int("timeoutSecs", c.timeoutSecs))
	return nil
}

func (c *WebStorageCache) RemoveItem(ctx context.Context, key string) error {
	return c.storage.Delete(ctx, c.storageKey(key))
}

func (c *WebStorageCache) remove(ctx context.Context, storageKey string) {
	if err := c.storage.Delete(ctx, storageKey); err != nil {
		logger.Warn("Failed to evict cache entry", zap.Error(err), zap.String("cacheKey", storageKey))
	}
}
