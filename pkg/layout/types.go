package layout

import (
	"strings"

	"github.com/cabinext/cabinext/pkg/errors"
	"github.com/cabinext/cabinext/pkg/units"
)

// Module is a rectangular cabinet as delivered by the catalog service.
// Width runs along the wall, Depth perpendicular to it. Both are in length
// units, not pixels.
type Module struct {
	Name   string  `json:"name" toml:"name"`
	Width  float64 `json:"width" toml:"width"`
	Depth  float64 `json:"depth" toml:"depth"`
	IsBase bool    `json:"isBase" toml:"is_base"`
}

// Validate enforces width > 0 and depth > 0.
func (m Module) Validate() error {
	if err := errors.ValidatePositive("module width", m.Width); err != nil {
		return err
	}
	return errors.ValidatePositive("module depth", m.Depth)
}

// IsFiller reports whether m is a filler strip. Fillers carry names
// starting with "F" and are drawn without a label.
func (m Module) IsFiller() bool { return strings.HasPrefix(m.Name, "F") }

// IsCorner reports whether m is a corner cabinet (BC33, BC36, UC24).
func (m Module) IsCorner() bool {
	return strings.HasPrefix(m.Name, "BC") || strings.HasPrefix(m.Name, "UC")
}

// Wall describes one wall of the room.
//
// CornerOffsetUnits positions the right wall's line and is required only for
// Right; zero means "not supplied".
type Wall struct {
	Orientation       Orientation `json:"orientation" toml:"orientation"`
	LengthUnits       float64     `json:"length" toml:"length"`
	Scale             units.Scale `json:"scale" toml:"scale"`
	CornerOffsetUnits float64     `json:"corner_offset,omitempty" toml:"corner_offset"`
}

// Validate checks orientation, length, scale and the corner offset rule.
func (w Wall) Validate() error {
	ax, err := w.Orientation.axis()
	if err != nil {
		return err
	}
	if err := errors.ValidatePositive(w.Orientation.String()+" wall length", w.LengthUnits); err != nil {
		return err
	}
	if err := w.Scale.Validate(); err != nil {
		return err
	}
	if ax.cornerOrigin {
		if w.CornerOffsetUnits == 0 {
			return errors.New(errors.ErrCodeInvalidConfig,
				"%s wall requires a corner offset (the top wall's length)", w.Orientation)
		}
		if err := errors.ValidatePositive("corner offset", w.CornerOffsetUnits); err != nil {
			return err
		}
	}
	return nil
}

// LengthPx returns the wall length in pixels.
func (w Wall) LengthPx() float64 { return w.Scale.ToPx(w.LengthUnits) }

// Rect is an axis-aligned rectangle in pixels (a Placement).
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the rectangle's right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the rectangle's bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// CenterX returns the horizontal center point of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center point of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Translate returns r moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// Segment is a line drawn as a degenerate rectangle: either Width or Height
// is zero, matching the renderer's line primitive.
type Segment struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Vertical reports whether the segment runs along y.
func (s Segment) Vertical() bool { return s.Width == 0 }

// Length returns the segment's extent along its direction.
func (s Segment) Length() float64 { return s.Width + s.Height }

// End returns the far end point of the segment.
func (s Segment) End() (x, y float64) { return s.X + s.Width, s.Y + s.Height }

// Translate returns s moved by (dx, dy).
func (s Segment) Translate(dx, dy float64) Segment {
	s.X += dx
	s.Y += dy
	return s
}

// Label is the text of a measurement and the top-left corner of its box.
type Label struct {
	Text   string  `json:"text"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Annotation is the geometry of one dimension marking: the main line
// parallel to the measured edge, two leaders joining the edge's ends to the
// main line, and the label.
type Annotation struct {
	Orientation Orientation    `json:"orientation"`
	Class       ReferenceClass `json:"class"`
	MainLine    Segment        `json:"main_line"`
	LeaderA     Segment        `json:"leader_a"`
	LeaderB     Segment        `json:"leader_b"`
	Label       Label          `json:"label"`
	LengthUnits float64        `json:"length_units"`
}

// Translate returns a moved by (dx, dy).
func (a Annotation) Translate(dx, dy float64) Annotation {
	a.MainLine = a.MainLine.Translate(dx, dy)
	a.LeaderA = a.LeaderA.Translate(dx, dy)
	a.LeaderB = a.LeaderB.Translate(dx, dy)
	a.Label.X += dx
	a.Label.Y += dy
	return a
}

// PlacedModule pairs a module with its rectangle. Index is the module's
// position in the catalog list, which differs from its position in the
// placement slice on vertical walls.
type PlacedModule struct {
	Module Module `json:"module"`
	Rect   Rect   `json:"rect"`
	Index  int    `json:"index"`
}

// WallLayout is the result of [PlaceWall]. Bases and Uppers are in drawing
// order and are never nil.
type WallLayout struct {
	Wall   Wall           `json:"wall"`
	Rect   Rect           `json:"rect"`
	Bases  []PlacedModule `json:"bases"`
	Uppers []PlacedModule `json:"uppers"`
}
