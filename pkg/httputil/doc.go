// Package httputil provides the HTTP plumbing shared by catalog clients.
//
// # Retry
//
// [Retry] re-runs an operation when it fails with a [RetryableError]:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses (see [RetryableStatus])
//
// The delay doubles after each attempt. [RetryWithBackoff] uses the default
// policy of 3 attempts starting at 1 second. Other errors (bad requests,
// malformed responses) are returned immediately.
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetchWall(ctx)
//	})
//
// # Caching
//
// [JSONCache] layers JSON encoding, key namespacing and observability
// reporting over any [cache.Cache] backend. [JSONCache.Cached] combines a
// lookup, a retried fetch and a store:
//
//	c := httputil.NewJSONCache(backend, cache.KeyTypeCatalog, 24*time.Hour)
//	_, err := c.Cached(ctx, key, false, &resp, func() error {
//	    return client.fetch(ctx, &resp)
//	})
package httputil
