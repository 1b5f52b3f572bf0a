package layout

import (
	"math"

	"github.com/cabinext/cabinext/pkg/errors"
	"github.com/cabinext/cabinext/pkg/units"
)

// Measure computes the dimension annotation for r as seen from the wall
// identified by o.
//
// The main line runs parallel to the measured edge, offset outward by the
// distance configured for class:
//
//	Left:  vertical at x - offset, spanning y..y+height
//	Top:   horizontal at y - offset, spanning x..x+width
//	Right: vertical at x + offset, spanning y..y+height
//
// Leaders connect both ends of the measured edge to the main line. The label
// reads the edge length converted back to units (e.g. "120 in"); it is
// centred along the main line and sits entirely on its outward side.
func Measure(cfg Config, s units.Scale, r Rect, o Orientation, class ReferenceClass) (Annotation, error) {
	ax, err := o.axis()
	if err != nil {
		return Annotation{}, err
	}
	offset, err := cfg.Offset(class)
	if err != nil {
		return Annotation{}, err
	}
	if err := s.Validate(); err != nil {
		return Annotation{}, err
	}
	if err := validateRect(r); err != nil {
		return Annotation{}, err
	}

	a := Annotation{Orientation: o, Class: class}
	label := Label{Width: cfg.LabelWidthPx, Height: cfg.LabelFontSize}

	var lengthPx float64
	if ax.vertical {
		lineX := r.X + ax.outward*offset
		leaderX := math.Min(r.X, lineX)
		a.MainLine = Segment{X: lineX, Y: r.Y, Height: r.Height}
		a.LeaderA = Segment{X: leaderX, Y: r.Y, Width: offset}
		a.LeaderB = Segment{X: leaderX, Y: r.Bottom(), Width: offset}
		lengthPx = r.Height

		label.X = lineX
		if ax.outward < 0 {
			label.X = lineX - label.Width
		}
		label.Y = r.CenterY() - label.Height/2
	} else {
		lineY := r.Y + ax.outward*offset
		leaderY := math.Min(r.Y, lineY)
		a.MainLine = Segment{X: r.X, Y: lineY, Width: r.Width}
		a.LeaderA = Segment{X: r.X, Y: leaderY, Height: offset}
		a.LeaderB = Segment{X: r.Right(), Y: leaderY, Height: offset}
		lengthPx = r.Width

		label.X = r.CenterX() - label.Width/2
		label.Y = lineY
		if ax.outward < 0 {
			label.Y = lineY - label.Height
		}
	}

	a.LengthUnits = s.FromPx(lengthPx)
	label.Text = units.Format(a.LengthUnits, cfg.Unit)
	a.Label = label
	return a, nil
}

func validateRect(r Rect) error {
	for _, v := range []float64{r.X, r.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New(errors.ErrCodeInvalidDimension, "rectangle origin must be finite, got (%v, %v)", r.X, r.Y)
		}
	}
	if err := errors.ValidateNonNegative("rectangle width", r.Width); err != nil {
		return err
	}
	return errors.ValidateNonNegative("rectangle height", r.Height)
}
