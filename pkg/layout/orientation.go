package layout

import (
	"strings"

	"github.com/cabinext/cabinext/pkg/errors"
)

// Orientation identifies which wall of the room a placement or measurement
// belongs to.
type Orientation string

const (
	Left  Orientation = "left"
	Top   Orientation = "top"
	Right Orientation = "right"
)

// Orientations lists the walls in drawing order.
var Orientations = []Orientation{Left, Top, Right}

// axis maps wall-relative directions onto canvas axes for one orientation.
// Placement and measurement both read from this table.
type axis struct {
	vertical     bool    // the wall's long axis runs along y
	reverse      bool    // catalog order is laid out back to front
	outward      float64 // sign of the perpendicular pointing out of the room
	hangInward   bool    // modules sit on the low-x side of the wall line
	cornerOrigin bool    // wall line starts at the corner offset instead of 0
	leadIn       bool    // modules start after the corner lead-in
}

var axes = map[Orientation]axis{
	Left:  {vertical: true, reverse: true, outward: -1},
	Top:   {outward: -1, leadIn: true},
	Right: {vertical: true, reverse: true, outward: 1, hangInward: true, cornerOrigin: true},
}

// ParseOrientation accepts an orientation name in any letter case.
func ParseOrientation(s string) (Orientation, error) {
	o := Orientation(strings.ToLower(strings.TrimSpace(s)))
	if !o.Valid() {
		return "", errors.New(errors.ErrCodeInvalidOrientation,
			"unknown orientation %q (must be one of: left, top, right)", s)
	}
	return o, nil
}

// Valid reports whether o is one of Left, Top or Right.
func (o Orientation) Valid() bool {
	_, ok := axes[o]
	return ok
}

// Vertical reports whether the wall runs along the y axis.
func (o Orientation) Vertical() bool {
	return axes[o].vertical
}

func (o Orientation) String() string { return string(o) }

func (o Orientation) axis() (axis, error) {
	ax, ok := axes[o]
	if !ok {
		return axis{}, errors.New(errors.ErrCodeInvalidOrientation,
			"unknown orientation %q (must be one of: left, top, right)", string(o))
	}
	return ax, nil
}

// ReferenceClass selects how far a measurement line sits from what it
// measures. Base lines are closest, wall lines farthest, so nested
// annotations never collide.
type ReferenceClass string

const (
	ClassBase  ReferenceClass = "base"
	ClassUpper ReferenceClass = "upper"
	ClassWall  ReferenceClass = "wall"
)

// ParseReferenceClass accepts a class name in any letter case.
func ParseReferenceClass(s string) (ReferenceClass, error) {
	c := ReferenceClass(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case ClassBase, ClassUpper, ClassWall:
		return c, nil
	}
	return "", errors.New(errors.ErrCodeInvalidReferenceClass,
		"unknown reference class %q (must be one of: base, upper, wall)", s)
}

// ClassFor returns the reference class for a module.
func ClassFor(m Module) ReferenceClass {
	if m.IsBase {
		return ClassBase
	}
	return ClassUpper
}
