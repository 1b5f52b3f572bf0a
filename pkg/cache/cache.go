// Package cache stores catalog responses and rendered artifacts.
//
// Three backends implement [Cache]:
//
//   - [NullCache] never stores anything (caching disabled)
//   - [FileCache] keeps entries as JSON files, used by the CLI
//   - [RedisCache] shares entries between server replicas
//
// Keys are built by a [Keyer] so that every backend sees the same
// namespaced, hashed key layout:
//
//	k := cache.NewDefaultKeyer()
//	key := k.CatalogKey(cache.CatalogKeyOpts{Orientation: "top", LengthUnits: 120})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
//
// Get reports a miss with hit == false and a nil error. Backends treat
// corrupt or expired entries as misses.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Key type names reported to observability hooks.
const (
	KeyTypeCatalog  = "catalog"
	KeyTypeLayout   = "layout"
	KeyTypeArtifact = "artifact"
)

// Default entry lifetimes per key type.
const (
	TTLCatalog  = 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// CatalogKeyOpts identifies one generateWall request. Module lists are
// keyed by (length, orientation) and the service they came from.
type CatalogKeyOpts struct {
	BaseURL     string  `json:"base_url"`
	Orientation string  `json:"orientation"`
	LengthUnits float64 `json:"length"`
}

// LayoutKeyOpts identifies a composed room.
type LayoutKeyOpts struct {
	Unit    string  `json:"unit"`
	Scale   float64 `json:"scale"`
	Left    float64 `json:"left"`
	Top     float64 `json:"top"`
	Right   float64 `json:"right"`
	Config  string  `json:"config"`  // hash of the engine config
	Modules string  `json:"modules"` // hash of the module lists
}

// ArtifactKeyOpts identifies one rendering of a composed room.
type ArtifactKeyOpts struct {
	Format       string  `json:"format"`
	Grid         float64 `json:"grid,omitempty"`
	Labels       bool    `json:"labels"`
	Measurements bool    `json:"measurements"`
	Title        string  `json:"title,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	CatalogKey(opts CatalogKeyOpts) string
	LayoutKey(opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key options with SHA-256 under a type prefix.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// CatalogKey returns "catalog:<hash>".
func (DefaultKeyer) CatalogKey(opts CatalogKeyOpts) string {
	return hashKey(KeyTypeCatalog, opts)
}

// LayoutKey returns "layout:<hash>".
func (DefaultKeyer) LayoutKey(opts LayoutKeyOpts) string {
	return hashKey(KeyTypeLayout, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey(KeyTypeArtifact, layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
