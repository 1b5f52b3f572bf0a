package pipeline

import (
	"cmp"
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/cabinext/cabinext/pkg/cache"
	"github.com/cabinext/cabinext/pkg/catalog"
	"github.com/cabinext/cabinext/pkg/errors"
	"github.com/cabinext/cabinext/pkg/layout"
	"github.com/cabinext/cabinext/pkg/observability"
	"github.com/cabinext/cabinext/pkg/render"
	"github.com/cabinext/cabinext/pkg/render/sink"
	"github.com/cabinext/cabinext/pkg/room"
)

// Runner executes the pipeline with caching.
//
// The Runner keeps no per-run state, so multiple goroutines can share one
// Runner with different options.
type Runner struct {
	Fetcher catalog.WallFetcher
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
}

// NewRunner creates a runner. fetcher may be nil when every run supplies
// its modules inline. A nil cache disables caching and a nil keyer uses
// cache.DefaultKeyer.
func NewRunner(fetcher catalog.WallFetcher, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Fetcher: fetcher,
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
	}
}

// Execute runs fetch → compose → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{ID: uuid.NewString()}
	logger := r.Logger.With("run", result.ID[:8])

	// Stage 1: Fetch
	opts.report(StageFetch)
	fetchStart := time.Now()
	modules, err := r.Fetch(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.FetchTime = time.Since(fetchStart)
	for _, m := range modules {
		result.Stats.ModuleCount += m.Len()
	}
	logger.Info("fetched modules",
		"modules", result.Stats.ModuleCount,
		"duration", result.Stats.FetchTime)

	// Stage 2: Compose
	opts.report(StageCompose)
	composeStart := time.Now()
	l, hit, err := r.ComposeWithCacheInfo(ctx, opts, modules)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.ComposeTime = time.Since(composeStart)
	result.CacheInfo.LayoutHit = hit
	logger.Info("composed room",
		"width", l.Extent.Width,
		"height", l.Extent.Height,
		"cached", hit,
		"duration", result.Stats.ComposeTime)

	// Stage 3: Render
	opts.report(StageRender)
	renderStart := time.Now()
	rendered, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, err
	}
	result.LayoutHash = rendered.LayoutHash
	result.Scene = rendered.Scene
	result.Artifacts = rendered.Artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = rendered.Hit
	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", rendered.Hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Fetch returns the module lists of all three walls. Walls listed in
// opts.Modules are taken as is; the others are fetched concurrently. The
// first failure cancels the remaining fetches.
func (r *Runner) Fetch(ctx context.Context, opts Options) (room.ModulesByWall, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	walls := layout.Orientations
	got := make([]room.WallModules, len(walls))

	if r.Fetcher == nil {
		for _, o := range walls {
			if _, ok := opts.Modules[o]; !ok {
				return nil, errors.New(errors.ErrCodeInvalidConfig,
					"no catalog configured and no modules given for the %s wall", o)
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, o := range walls {
		if mods, ok := opts.Modules[o]; ok {
			got[i] = mods
			continue
		}
		g.Go(func() error {
			mods, err := r.fetchWall(gctx, o, opts.Length(o), opts.Refresh)
			if err != nil {
				return err
			}
			got[i] = mods
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	modules := make(room.ModulesByWall, len(walls))
	for i, o := range walls {
		modules[o] = got[i]
	}
	return modules, nil
}

func (r *Runner) fetchWall(ctx context.Context, o layout.Orientation, length float64, refresh bool) (room.WallModules, error) {
	hooks := observability.Pipeline()
	hooks.OnFetchStart(ctx, o.String(), length)
	start := time.Now()

	mods, err := r.Fetcher.GenerateWall(ctx, o, length, refresh)

	hooks.OnFetchComplete(ctx, o.String(), length, mods.Len(), time.Since(start), err)
	if err != nil {
		return room.WallModules{}, errors.Wrap(cmp.Or(errors.GetCode(err), errors.ErrCodeNetwork), err, "fetch %s wall", o)
	}
	r.Logger.Debug("fetched wall", "wall", o, "length", length,
		"bases", len(mods.Bases), "uppers", len(mods.Uppers))
	return mods, nil
}

// ComposeWithCacheInfo composes the room from modules and reports whether
// the result came from the cache.
func (r *Runner) ComposeWithCacheInfo(ctx context.Context, opts Options, modules room.ModulesByWall) (*room.Layout, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	cfg, err := opts.engineConfig()
	if err != nil {
		return nil, false, err
	}

	key := r.Keyer.LayoutKey(opts.LayoutKeyOpts(cfg, modules))
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var l room.Layout
			if err := json.Unmarshal(data, &l); err == nil {
				observability.Cache().OnCacheHit(ctx, cache.KeyTypeLayout)
				return &l, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, cache.KeyTypeLayout)
	}

	count := 0
	for _, m := range modules {
		count += m.Len()
	}
	hooks := observability.Pipeline()
	hooks.OnComposeStart(ctx, count)
	start := time.Now()

	left, top, right := opts.Walls()
	l, err := room.Compose(cfg, left, top, right, modules)

	hooks.OnComposeComplete(ctx, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(l); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
			r.Logger.Warn("layout cache write failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, cache.KeyTypeLayout, len(data))
		}
	}
	return l, false, nil
}

// Compose is ComposeWithCacheInfo without the cache hit info.
func (r *Runner) Compose(ctx context.Context, opts Options, modules room.ModulesByWall) (*room.Layout, error) {
	l, _, err := r.ComposeWithCacheInfo(ctx, opts, modules)
	return l, err
}

// Rendered is the output of the render stage.
type Rendered struct {
	LayoutHash string
	Scene      render.Scene
	Artifacts  map[string][]byte
	Hit        bool // every artifact came from cache
}

// RenderWithCacheInfo builds the scene for l and writes every requested
// format, reusing cached artifacts where possible.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l *room.Layout, opts Options) (Rendered, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Rendered{}, err
	}

	layoutHash, err := cache.HashJSON(l)
	if err != nil {
		return Rendered{}, errors.Wrap(errors.ErrCodeInternal, err, "hash layout")
	}
	res := Rendered{
		LayoutHash: layoutHash,
		Scene:      render.Build(l, opts.RenderOptions()),
		Artifacts:  make(map[string][]byte, len(opts.Formats)),
		Hit:        true,
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, cache.KeyTypeArtifact)
				res.Artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, cache.KeyTypeArtifact)
		}
		res.Hit = false

		data, err := sink.Render(res.Scene, format)
		if err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return Rendered{}, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		res.Artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("artifact cache write failed", "format", format, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, cache.KeyTypeArtifact, len(data))
		}
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	return res, nil
}

// Render is RenderWithCacheInfo returning only the artifacts.
func (r *Runner) Render(ctx context.Context, l *room.Layout, opts Options) (map[string][]byte, error) {
	res, err := r.RenderWithCacheInfo(ctx, l, opts)
	return res.Artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
