// Package pipeline runs the fetch → compose → render pipeline for a room.
//
// The CLI and the HTTP server both go through this package so that module
// fetching, caching and rendering behave the same at every entry point.
//
// # Stages
//
//  1. Fetch: obtain the bases and uppers of the left, top and right walls,
//     concurrently, from a [catalog.WallFetcher] (or inline lists)
//  2. Compose: place and measure every wall with [room.Compose]
//  3. Render: build a [render.Scene] and write it in each requested format
//
// The engine is only called once all three module lists are present and
// valid. A failed fetch aborts the run and leaves the other fetches
// cancelled.
//
// # Usage
//
//	client, _ := catalog.NewClient(catalog.Config{})
//	runner := pipeline.NewRunner(client, nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Left: 96, Top: 120, Right: 96,
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cabinext/cabinext/pkg/cache"
	"github.com/cabinext/cabinext/pkg/errors"
	"github.com/cabinext/cabinext/pkg/layout"
	"github.com/cabinext/cabinext/pkg/render"
	"github.com/cabinext/cabinext/pkg/render/sink"
	"github.com/cabinext/cabinext/pkg/room"
	"github.com/cabinext/cabinext/pkg/units"
)

// Default values shared by the CLI and the server.
const (
	// DefaultGridUnits is the room grid spacing when a grid is requested
	// without an explicit step (one foot, in inches).
	DefaultGridUnits = 12.0
)

// Stage names a step of Runner.Execute, reported through Options.Progress.
type Stage string

const (
	StageFetch   Stage = "fetch"
	StageCompose Stage = "compose"
	StageRender  Stage = "render"
)

// Options configures one pipeline run. It doubles as the JSON body of the
// server's room endpoints.
type Options struct {
	Title string      `json:"title,omitempty"`
	Unit  units.Unit  `json:"unit,omitempty"`
	Scale units.Scale `json:"scale,omitempty"`

	// Wall lengths in Unit. The right wall's corner offset is always the
	// top wall's length.
	Left  float64 `json:"left"`
	Top   float64 `json:"top"`
	Right float64 `json:"right"`

	// Modules supplies module lists inline. Walls present here are not
	// fetched.
	Modules room.ModulesByWall `json:"modules,omitempty"`

	// Engine overrides the engine constants; nil uses layout.DefaultConfig
	// converted to Unit.
	Engine *layout.Config `json:"engine,omitempty"`

	Formats        []string `json:"formats,omitempty"`
	NoMeasurements bool     `json:"no_measurements,omitempty"`
	NoLabels       bool     `json:"no_labels,omitempty"`
	GridUnits      float64  `json:"grid,omitempty"` // 0 disables the grid
	Refresh        bool     `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	// Progress, if set, is called as Execute enters each stage.
	Progress func(Stage) `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// ID identifies this run in logs and API responses.
	ID string

	// Layout is the composed room.
	Layout *room.Layout

	// LayoutHash fingerprints Layout and keys the artifact cache.
	LayoutHash string

	// Scene is the render view model the artifacts were written from.
	Scene render.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ModuleCount int
	FetchTime   time.Duration
	ComposeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	LayoutHit bool // composed room came from cache
	RenderHit bool // every artifact came from cache
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !sink.ValidFormat(format) {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, json, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Unit == "" {
		o.Unit = units.DefaultUnit
	}
	if !o.Unit.Valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown length unit %q", o.Unit)
	}
	if o.Scale == 0 {
		o.Scale = units.DefaultScale
	}
	if err := o.Scale.Validate(); err != nil {
		return err
	}
	for _, w := range []struct {
		name string
		v    float64
	}{{"left wall length", o.Left}, {"top wall length", o.Top}, {"right wall length", o.Right}} {
		if err := errors.ValidatePositive(w.name, w.v); err != nil {
			return err
		}
	}

	cfg, err := o.engineConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{sink.FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.GridUnits < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "grid spacing must not be negative, got %v", o.GridUnits)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// engineConfig returns the engine constants expressed in o.Unit.
func (o *Options) engineConfig() (layout.Config, error) {
	if o.Engine != nil {
		cfg := *o.Engine
		if cfg.Unit == "" {
			cfg.Unit = o.Unit
		}
		if cfg.Unit != o.Unit {
			return layout.Config{}, errors.New(errors.ErrCodeInvalidConfig,
				"engine unit %q does not match room unit %q", cfg.Unit, o.Unit)
		}
		return cfg, nil
	}
	return layout.DefaultConfig().WithUnit(o.Unit)
}

// Walls returns the three wall descriptors. The right wall's corner offset
// is set to the top wall's length.
func (o *Options) Walls() (left, top, right layout.Wall) {
	left = layout.Wall{Orientation: layout.Left, LengthUnits: o.Left, Scale: o.Scale}
	top = layout.Wall{Orientation: layout.Top, LengthUnits: o.Top, Scale: o.Scale}
	right = layout.Wall{Orientation: layout.Right, LengthUnits: o.Right, Scale: o.Scale, CornerOffsetUnits: o.Top}
	return left, top, right
}

// Length returns the configured length of wall o.
func (o *Options) Length(or layout.Orientation) float64 {
	switch or {
	case layout.Left:
		return o.Left
	case layout.Top:
		return o.Top
	case layout.Right:
		return o.Right
	}
	return 0
}

// RenderOptions returns the scene options for this run.
func (o *Options) RenderOptions() render.Options {
	title := o.Title
	if title == "" {
		title = fmt.Sprintf("Room %v × %v × %v %s", o.Left, o.Top, o.Right, o.Unit)
	}
	return render.Options{
		Title:        title,
		Measurements: !o.NoMeasurements,
		Labels:       !o.NoLabels,
		GridUnits:    o.GridUnits,
	}
}

// LayoutKeyOpts returns cache key options for a composed room.
func (o *Options) LayoutKeyOpts(cfg layout.Config, modules room.ModulesByWall) cache.LayoutKeyOpts {
	cfgHash, _ := cache.HashJSON(cfg)
	modHash, _ := cache.HashJSON(modules)
	return cache.LayoutKeyOpts{
		Unit:    string(o.Unit),
		Scale:   float64(o.Scale),
		Left:    o.Left,
		Top:     o.Top,
		Right:   o.Right,
		Config:  cfgHash,
		Modules: modHash,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:       format,
		Title:        o.Title,
		Grid:         o.GridUnits,
		Labels:       !o.NoLabels,
		Measurements: !o.NoMeasurements,
	}
}

func (o *Options) report(s Stage) {
	if o.Progress != nil {
		o.Progress(s)
	}
}
