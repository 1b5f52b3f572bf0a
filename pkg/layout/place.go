package layout

import (
	"fmt"

	"github.com/cabinext/cabinext/pkg/errors"
	"github.com/cabinext/cabinext/pkg/units"
)

// PlaceWall computes the wall rectangle and the rectangles of its base and
// upper modules.
//
// Modules are laid out contiguously along the wall's long axis. On the top
// wall they run left to right in catalog order, starting after the base or
// upper lead-in. On the side walls they run top to bottom in reverse catalog
// order starting at y = 0, so that the visual order matches the catalog's
// logical left-to-right order for someone facing the wall.
//
// Bases and uppers are placed independently and may overlap across the
// wall. Empty module lists give empty (non-nil) slices. A placed module's
// IsBase follows the list it was passed in, whatever the input flag says.
//
// PlaceWall returns a configuration error if cfg, w or any module is invalid.
func PlaceWall(cfg Config, w Wall, bases, uppers []Module) (WallLayout, error) {
	if err := cfg.Validate(); err != nil {
		return WallLayout{}, err
	}
	if err := w.Validate(); err != nil {
		return WallLayout{}, err
	}
	if err := validateModules("base", bases); err != nil {
		return WallLayout{}, err
	}
	if err := validateModules("upper", uppers); err != nil {
		return WallLayout{}, err
	}

	ax, _ := w.Orientation.axis()
	wall := wallRect(cfg, w, ax)

	var baseStart, upperStart float64
	if ax.leadIn {
		baseStart = w.Scale.ToPx(cfg.BaseLeadInUnits)
		upperStart = w.Scale.ToPx(cfg.UpperLeadInUnits)
	}

	return WallLayout{
		Wall:   w,
		Rect:   wall,
		Bases:  placeRun(ax, wall, w.Scale, bases, baseStart, true),
		Uppers: placeRun(ax, wall, w.Scale, uppers, upperStart, false),
	}, nil
}

func wallRect(cfg Config, w Wall, ax axis) Rect {
	length := w.LengthPx()
	if !ax.vertical {
		return Rect{Width: length, Height: cfg.WallThicknessPx}
	}
	var x float64
	if ax.cornerOrigin {
		x = w.Scale.ToPx(w.CornerOffsetUnits)
	}
	return Rect{X: x, Width: cfg.WallThicknessPx, Height: length}
}

// placeRun walks mods and accumulates position along the long axis from
// start. Each module advances the cursor by its pixel width.
func placeRun(ax axis, wall Rect, s units.Scale, mods []Module, start float64, isBase bool) []PlacedModule {
	out := make([]PlacedModule, 0, len(mods))
	pos := start
	for i := range mods {
		idx := i
		if ax.reverse {
			idx = len(mods) - 1 - i
		}
		m := mods[idx]
		m.IsBase = isBase
		along, across := s.ToPx(m.Width), s.ToPx(m.Depth)

		var r Rect
		if ax.vertical {
			x := wall.X
			if ax.hangInward {
				x = wall.X - across
			}
			r = Rect{X: x, Y: pos, Width: across, Height: along}
		} else {
			r = Rect{X: pos, Y: wall.Y, Width: along, Height: across}
		}

		out = append(out, PlacedModule{Module: m, Rect: r, Index: idx})
		pos += along
	}
	return out
}

func validateModules(kind string, mods []Module) error {
	for i, m := range mods {
		if err := m.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDimension, err,
				"%s module %d (%s)", kind, i, displayName(m))
		}
	}
	return nil
}

func displayName(m Module) string {
	if m.Name == "" {
		return fmt.Sprintf("%gx%g", m.Width, m.Depth)
	}
	return m.Name
}
