// Package config loads room files.
//
// A room file is TOML. Everything is optional except the wall lengths, which
// may also come from CLI flags:
//
//	title = "Galley kitchen"
//	unit  = "in"
//	scale = 5
//
//	[walls]
//	left  = 96
//	top   = 120
//	right = 96
//
//	[catalog]
//	url     = "http://127.0.0.1:8000/api"
//	timeout = "10s"
//
//	[cache]
//	backend    = "redis"
//	redis_addr = "localhost:6379"
//	prefix     = "staging:"
//
//	[[modules.top.bases]]
//	name  = "B36"
//	width = 36
//	depth = 24
//
// Walls listed under [modules] are used as is and never fetched. An
// [engine] table overrides individual engine constants; keys it leaves out
// keep their defaults, converted to the room's unit.
//
// Environment variables override the file: CABINEXT_CATALOG_URL,
// CABINEXT_REDIS_ADDR, CABINEXT_CACHE and CABINEXT_ADDR.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/cabinext/cabinext/pkg/cache"
	"github.com/cabinext/cabinext/pkg/catalog"
	"github.com/cabinext/cabinext/pkg/errors"
	"github.com/cabinext/cabinext/pkg/layout"
	"github.com/cabinext/cabinext/pkg/pipeline"
	"github.com/cabinext/cabinext/pkg/room"
	"github.com/cabinext/cabinext/pkg/units"
)

// Environment variables read by [Config.ApplyEnv].
const (
	EnvCatalogURL = "CABINEXT_CATALOG_URL"
	EnvRedisAddr  = "CABINEXT_REDIS_ADDR"
	EnvCache      = "CABINEXT_CACHE"
	EnvAddr       = "CABINEXT_ADDR"
)

// DefaultAddr is the HTTP server's listen address.
const DefaultAddr = ":8080"

// Duration is a time.Duration written as a Go duration string ("10s").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Walls holds the three wall lengths in the room's unit.
type Walls struct {
	Left  float64 `toml:"left"`
	Top   float64 `toml:"top"`
	Right float64 `toml:"right"`
}

// Catalog configures the catalog client.
type Catalog struct {
	URL      string   `toml:"url"`
	Timeout  Duration `toml:"timeout"`
	Attempts int      `toml:"attempts"`
}

// Cache configures the cache backend.
type Cache struct {
	Backend       string   `toml:"backend"` // none, file or redis
	Dir           string   `toml:"dir"`
	TTL           Duration `toml:"ttl"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`

	// Prefix namespaces every key, so several deployments can share one
	// redis database.
	Prefix string `toml:"prefix"`
}

// Render holds default render settings.
type Render struct {
	Formats          []string `toml:"formats"`
	Grid             float64  `toml:"grid"`
	HideLabels       bool     `toml:"hide_labels"`
	HideMeasurements bool     `toml:"hide_measurements"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
}

// Config is a parsed room file.
type Config struct {
	Title   string                                 `toml:"title"`
	Unit    units.Unit                             `toml:"unit"`
	Scale   float64                                `toml:"scale"`
	Walls   Walls                                  `toml:"walls"`
	Engine  *layout.Config                         `toml:"engine"`
	Modules map[layout.Orientation]room.WallModules `toml:"modules"`
	Catalog Catalog                                `toml:"catalog"`
	Cache   Cache                                  `toml:"cache"`
	Render  Render                                 `toml:"render"`
	Server  Server                                 `toml:"server"`
}

// Default returns the configuration used when no room file is given.
func Default() *Config {
	return &Config{
		Unit:  units.DefaultUnit,
		Scale: float64(units.DefaultScale),
		Catalog: Catalog{
			URL:     catalog.DefaultBaseURL,
			Timeout: Duration{catalog.DefaultTimeout},
		},
		Cache: Cache{
			Backend: cache.BackendFile,
			TTL:     Duration{catalog.DefaultCacheTTL},
		},
		Server: Server{Addr: DefaultAddr},
	}
}

// Load reads and parses a room file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read room file")
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return cfg, nil
}

// Parse decodes a room file on top of [Default] and validates it.
func Parse(data []byte) (*Config, error) {
	// The unit decides the defaults of the [engine] table, so read it first.
	var head struct {
		Unit units.Unit `toml:"unit"`
	}
	if _, err := toml.Decode(string(data), &head); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse room file")
	}

	cfg := Default()
	unit := cfg.Unit
	if head.Unit != "" {
		u, err := units.ParseUnit(string(head.Unit))
		if err != nil {
			return nil, err
		}
		unit = u
	}
	engine, err := layout.DefaultConfig().WithUnit(unit)
	if err != nil {
		return nil, err
	}
	cfg.Engine = &engine

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse room file")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q in room file", undecoded[0].String())
	}
	cfg.Unit = unit // normalized spelling
	if !md.IsDefined("engine") {
		cfg.Engine = nil
	}

	cfg.normalizeModules()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalizeModules sets IsBase from the list each module is in.
func (c *Config) normalizeModules() {
	for o, mods := range c.Modules {
		for i := range mods.Bases {
			mods.Bases[i].IsBase = true
		}
		for i := range mods.Uppers {
			mods.Uppers[i].IsBase = false
		}
		c.Modules[o] = mods
	}
}

// ApplyEnv overrides fields from environment variables. getenv is usually
// os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvCatalogURL); v != "" {
		c.Catalog.URL = v
	}
	if v := getenv(EnvRedisAddr); v != "" {
		c.Cache.RedisAddr = v
		if getenv(EnvCache) == "" {
			c.Cache.Backend = cache.BackendRedis
		}
	}
	if v := getenv(EnvCache); v != "" {
		c.Cache.Backend = v
	}
	if v := getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
}

// Validate checks the parts of the file that do not depend on flags. Wall
// lengths are checked by the pipeline, since flags may still supply them.
func (c *Config) Validate() error {
	if !c.Unit.Valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown length unit %q", c.Unit)
	}
	if err := units.Scale(c.Scale).Validate(); err != nil {
		return err
	}
	for _, w := range []struct {
		name string
		v    float64
	}{{"left wall length", c.Walls.Left}, {"top wall length", c.Walls.Top}, {"right wall length", c.Walls.Right}} {
		if err := errors.ValidateNonNegative(w.name, w.v); err != nil {
			return err
		}
	}
	if c.Engine != nil {
		if err := c.Engine.Validate(); err != nil {
			return err
		}
	}
	for o, mods := range c.Modules {
		if !o.Valid() {
			return errors.New(errors.ErrCodeInvalidOrientation, "modules given for unknown wall %q", o)
		}
		for _, m := range append(append([]layout.Module{}, mods.Bases...), mods.Uppers...) {
			if err := errors.ValidateModuleName(m.Name); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s wall", o)
			}
			if err := m.Validate(); err != nil {
				return errors.Wrap(errors.GetCode(err), err, "%s wall module %s", o, m.Name)
			}
		}
	}
	switch c.Cache.Backend {
	case "", cache.BackendNone, cache.BackendFile, cache.BackendRedis:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (must be none, file or redis)", c.Cache.Backend)
	}
	return pipeline.ValidateFormats(c.Render.Formats)
}

// PipelineOptions converts the file into pipeline options.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Title:          c.Title,
		Unit:           c.Unit,
		Scale:          units.Scale(c.Scale),
		Left:           c.Walls.Left,
		Top:            c.Walls.Top,
		Right:          c.Walls.Right,
		Modules:        room.ModulesByWall(c.Modules),
		Engine:         c.Engine,
		Formats:        c.Render.Formats,
		NoLabels:       c.Render.HideLabels,
		NoMeasurements: c.Render.HideMeasurements,
		GridUnits:      c.Render.Grid,
	}
}

// CacheOptions converts the [cache] table into backend options.
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		Redis: cache.RedisConfig{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
		},
	}
}

// CatalogConfig converts the [catalog] table into client settings. The
// caller attaches the cache and logger.
func (c *Config) CatalogConfig() catalog.Config {
	return catalog.Config{
		BaseURL:  c.Catalog.URL,
		Timeout:  c.Catalog.Timeout.Duration,
		CacheTTL: c.Cache.TTL.Duration,
		Keyer:    c.Keyer(),
		Attempts: c.Catalog.Attempts,
	}
}

// Keyer returns the cache keyer for the [cache] table: nil (the default
// keyer) unless a prefix is set.
func (c *Config) Keyer() cache.Keyer {
	if c.Cache.Prefix == "" {
		return nil
	}
	return cache.NewScopedKeyer(nil, c.Cache.Prefix)
}
