// Package observability lets the binary watch the room pipeline without the
// libraries depending on a metrics or tracing backend.
//
// Libraries emit events through [Pipeline], [Cache] and [HTTP]. Until the
// binary installs its own implementation with [SetPipelineHooks],
// [SetCacheHooks] or [SetHTTPHooks], every event goes to a no-op:
//
//	start := time.Now()
//	observability.Pipeline().OnFetchStart(ctx, "top", 120)
//	mods, err := client.GenerateWall(ctx, 120, layout.Top)
//	observability.Pipeline().OnFetchComplete(ctx, "top", 120, mods.Count(), time.Since(start), err)
//
// [LogHooks] writes every event to a charmbracelet logger at debug level and
// is what the cabinext CLI installs under --verbose.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks observes the fetch, compose and render stages of a room run.
// wall is the orientation name ("left", "top" or "right").
type PipelineHooks interface {
	OnFetchStart(ctx context.Context, wall string, lengthUnits float64)
	OnFetchComplete(ctx context.Context, wall string, lengthUnits float64, modules int, took time.Duration, err error)

	OnComposeStart(ctx context.Context, modules int)
	OnComposeComplete(ctx context.Context, took time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, took time.Duration, err error)
}

// CacheHooks observes lookups against the catalog, layout and artifact
// caches. keyType is one of the cache.KeyType constants.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, bytes int)
}

// HTTPHooks observes calls made to the catalog service.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, status int, took time.Duration)
	// OnError is called when no response was received at all.
	OnError(ctx context.Context, method, host, path string, err error)
}

// NopPipeline discards pipeline events. Embed it to implement only a few.
type NopPipeline struct{}

func (NopPipeline) OnFetchStart(context.Context, string, float64)                               {}
func (NopPipeline) OnFetchComplete(context.Context, string, float64, int, time.Duration, error) {}
func (NopPipeline) OnComposeStart(context.Context, int)                                         {}
func (NopPipeline) OnComposeComplete(context.Context, time.Duration, error)                     {}
func (NopPipeline) OnRenderStart(context.Context, []string)                                     {}
func (NopPipeline) OnRenderComplete(context.Context, []string, time.Duration, error)            {}

// NopCache discards cache events.
type NopCache struct{}

func (NopCache) OnCacheHit(context.Context, string)      {}
func (NopCache) OnCacheMiss(context.Context, string)     {}
func (NopCache) OnCacheSet(context.Context, string, int) {}

// NopHTTP discards HTTP events.
type NopHTTP struct{}

func (NopHTTP) OnRequest(context.Context, string, string, string)                      {}
func (NopHTTP) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NopHTTP) OnError(context.Context, string, string, string, error)                 {}

// registry is swapped as a whole so readers never see a half-installed set.
type registry struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var current atomic.Pointer[registry]

func init() { Reset() }

func update(set func(r *registry)) {
	for {
		old := current.Load()
		next := *old
		set(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// SetPipelineHooks installs h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(r *registry) { r.pipeline = h })
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

// Pipeline, Cache and HTTP return the installed hooks.
func Pipeline() PipelineHooks { return current.Load().pipeline }
func Cache() CacheHooks       { return current.Load().cache }
func HTTP() HTTPHooks         { return current.Load().http }

// Reset puts every category back to its no-op. Tests call it in cleanup.
func Reset() {
	current.Store(&registry{pipeline: NopPipeline{}, cache: NopCache{}, http: NopHTTP{}})
}
