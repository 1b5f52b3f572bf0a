package httputil

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cabinext/cabinext/pkg/cache"
	"github.com/cabinext/cabinext/pkg/observability"
)

// JSONCache stores JSON-marshalable values in a byte [cache.Cache].
//
// Corrupt entries are reported as misses. Every lookup is reported to the
// observability cache hooks under the configured key type.
type JSONCache struct {
	backend cache.Cache
	ttl     time.Duration
	keyType string
	prefix  string

	attempts int
	delay    time.Duration
}

// NewJSONCache wraps backend. A nil backend behaves like [cache.NullCache].
// keyType is reported to observability hooks (e.g. "catalog").
func NewJSONCache(backend cache.Cache, keyType string, ttl time.Duration) *JSONCache {
	if backend == nil {
		backend = cache.NewNullCache()
	}
	return &JSONCache{
		backend:  backend,
		ttl:      ttl,
		keyType:  keyType,
		attempts: DefaultAttempts,
		delay:    DefaultDelay,
	}
}

// WithRetry returns a copy of c whose [JSONCache.Cached] fetches use the
// given retry policy.
func (c *JSONCache) WithRetry(attempts int, delay time.Duration) *JSONCache {
	cp := *c
	cp.attempts = attempts
	cp.delay = delay
	return &cp
}

// TTL returns the time-to-live applied by Set.
// A TTL of 0 means entries never expire.
func (c *JSONCache) TTL() time.Duration { return c.ttl }

// Get looks key up and unmarshals the entry into v.
//
//   - (true, nil): hit, v populated
//   - (false, nil): miss or corrupt entry, v unchanged
//   - (false, err): backend failure
func (c *JSONCache) Get(ctx context.Context, key string, v any) (bool, error) {
	data, hit, err := c.backend.Get(ctx, c.prefix+key)
	if err != nil {
		return false, err
	}
	if !hit || json.Unmarshal(data, v) != nil {
		observability.Cache().OnCacheMiss(ctx, c.keyType)
		return false, nil
	}
	observability.Cache().OnCacheHit(ctx, c.keyType)
	return true, nil
}

// Set marshals v and stores it under key with the cache TTL.
func (c *JSONCache) Set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := c.backend.Set(ctx, c.prefix+key, data, c.ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, c.keyType, len(data))
	return nil
}

// Namespace returns a view of the cache that prefixes every key.
// Namespaces chain: c.Namespace("a:").Namespace("b:") uses "a:b:".
func (c *JSONCache) Namespace(prefix string) *JSONCache {
	cp := *c
	cp.prefix = c.prefix + prefix
	return &cp
}

// Cached returns the value stored under key, or runs fetch with retry and
// stores the result. A failed store is not reported. With refresh the lookup is skipped and the entry
// overwritten. fetch must populate v.
func (c *JSONCache) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) (hit bool, err error) {
	if !refresh {
		if ok, _ := c.Get(ctx, key, v); ok {
			return true, nil
		}
	}
	if err := Retry(ctx, c.attempts, c.delay, fetch); err != nil {
		return false, err
	}
	_ = c.Set(ctx, key, v)
	return false, nil
}
