// Package room composes the left, top and right walls into one room.
//
// All three walls share the coordinate space produced by [layout.PlaceWall]:
// the origin is the inside corner between the left and top walls, and the
// right wall's line sits at the top wall's length. [Compose] checks that the
// three descriptors agree with each other, places every wall and attaches a
// dimension annotation to each wall and each module.
package room

import (
	"github.com/cabinext/cabinext/pkg/errors"
	"github.com/cabinext/cabinext/pkg/layout"
	"github.com/cabinext/cabinext/pkg/units"
)

// WallModules is the catalog's module lists for one wall, in catalog order.
type WallModules struct {
	Bases  []layout.Module `json:"bases" toml:"bases"`
	Uppers []layout.Module `json:"uppers" toml:"uppers"`
}

// Len returns the total number of modules.
func (w WallModules) Len() int { return len(w.Bases) + len(w.Uppers) }

// ModulesByWall keys module lists by orientation. A missing wall has no
// modules.
type ModulesByWall map[layout.Orientation]WallModules

// WallPlan is a placed wall plus its annotations. BaseMeasurements and
// UpperMeasurements are parallel to Bases and Uppers.
type WallPlan struct {
	layout.WallLayout
	Measurement       layout.Annotation   `json:"measurement"`
	BaseMeasurements  []layout.Annotation `json:"base_measurements"`
	UpperMeasurements []layout.Annotation `json:"upper_measurements"`
}

// Extent is the advisory canvas size. Translating room coordinates by
// (OriginX, OriginY) leaves room for the outward wall measurements.
type Extent struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	OriginX float64 `json:"origin_x"`
	OriginY float64 `json:"origin_y"`
}

// Layout is the composed room.
type Layout struct {
	Config layout.Config `json:"config"`
	Scale  units.Scale   `json:"scale"`
	Left   WallPlan      `json:"left"`
	Top    WallPlan      `json:"top"`
	Right  WallPlan      `json:"right"`
	Extent Extent        `json:"extent"`
}

// Walls returns the three wall plans in drawing order (left, top, right).
func (l *Layout) Walls() []*WallPlan {
	return []*WallPlan{&l.Left, &l.Top, &l.Right}
}

// Wall returns the plan for orientation o, or nil if o is unknown.
func (l *Layout) Wall(o layout.Orientation) *WallPlan {
	switch o {
	case layout.Left:
		return &l.Left
	case layout.Top:
		return &l.Top
	case layout.Right:
		return &l.Right
	}
	return nil
}

// ModuleCount returns the number of placed modules across all walls.
func (l *Layout) ModuleCount() int {
	n := 0
	for _, w := range l.Walls() {
		n += len(w.Bases) + len(w.Uppers)
	}
	return n
}

// Compose validates the three wall descriptors against each other and
// builds the room layout.
//
// The walls must carry the Left, Top and Right orientations respectively and
// share one scale. The right wall's corner offset must equal the top wall's
// length: a missing offset is INVALID_CONFIG and a different one is
// CORNER_OFFSET_MISMATCH.
func Compose(cfg layout.Config, left, top, right layout.Wall, modules ModulesByWall) (*Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkWalls(left, top, right); err != nil {
		return nil, err
	}

	l := &Layout{Config: cfg, Scale: top.Scale}
	for _, w := range []layout.Wall{left, top, right} {
		plan, err := planWall(cfg, w, modules[w.Orientation])
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "%s wall", w.Orientation)
		}
		*l.Wall(w.Orientation) = plan
	}

	l.Extent = extent(cfg, left, top, right)
	return l, nil
}

func checkWalls(left, top, right layout.Wall) error {
	want := []struct {
		w layout.Wall
		o layout.Orientation
	}{
		{left, layout.Left},
		{top, layout.Top},
		{right, layout.Right},
	}
	for _, p := range want {
		if p.w.Orientation != p.o {
			return errors.New(errors.ErrCodeInvalidOrientation,
				"%s wall descriptor has orientation %q", p.o, p.w.Orientation)
		}
	}

	if left.Scale != top.Scale || right.Scale != top.Scale {
		return errors.New(errors.ErrCodeInvalidConfig,
			"walls must share one scale, got left %v, top %v, right %v",
			float64(left.Scale), float64(top.Scale), float64(right.Scale))
	}

	if right.CornerOffsetUnits == 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"right wall requires a corner offset equal to the top wall length (%v)", top.LengthUnits)
	}
	if right.CornerOffsetUnits != top.LengthUnits {
		return errors.New(errors.ErrCodeCornerOffsetMismatch,
			"right wall corner offset %v does not match top wall length %v",
			right.CornerOffsetUnits, top.LengthUnits)
	}
	return nil
}

func planWall(cfg layout.Config, w layout.Wall, mods WallModules) (WallPlan, error) {
	wl, err := layout.PlaceWall(cfg, w, mods.Bases, mods.Uppers)
	if err != nil {
		return WallPlan{}, err
	}

	plan := WallPlan{WallLayout: wl}
	plan.Measurement, err = layout.Measure(cfg, w.Scale, wl.Rect, w.Orientation, layout.ClassWall)
	if err != nil {
		return WallPlan{}, err
	}
	if plan.BaseMeasurements, err = measureRun(cfg, w, wl.Bases, layout.ClassBase); err != nil {
		return WallPlan{}, err
	}
	if plan.UpperMeasurements, err = measureRun(cfg, w, wl.Uppers, layout.ClassUpper); err != nil {
		return WallPlan{}, err
	}
	return plan, nil
}

// measureRun annotates each placed module of one run with class. Right-wall
// modules hang inward of the wall line, so their wall-side edge is x+width.
func measureRun(cfg layout.Config, w layout.Wall, run []layout.PlacedModule, class layout.ReferenceClass) ([]layout.Annotation, error) {
	out := make([]layout.Annotation, 0, len(run))
	for _, p := range run {
		r := p.Rect
		if w.Orientation == layout.Right {
			r.X = r.Right()
		}
		a, err := layout.Measure(cfg, w.Scale, r, w.Orientation, class)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func extent(cfg layout.Config, left, top, right layout.Wall) Extent {
	margin := cfg.CanvasMarginPx
	return Extent{
		Width:   top.LengthPx() + 2*margin,
		Height:  max(left.LengthPx(), right.LengthPx()) + margin,
		OriginX: margin,
		OriginY: margin,
	}
}
