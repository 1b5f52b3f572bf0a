// Package units converts between length units and canvas pixels.
//
// Every length the catalog hands out (wall lengths, cabinet widths and depths)
// is expressed in a [Unit]. The engine works in pixels, and a single [Scale]
// (pixels per unit) bridges the two. Converting a length to pixels and back
// with the same scale is exact for the values the catalog produces.
//
//	s := units.Scale(5)         // 5 px per inch
//	px := s.ToPx(36)            // 180
//	units.Format(s.FromPx(600), units.Inch) // "120 in"
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cabinext/cabinext/pkg/errors"
)

// Unit is a length unit used for wall and cabinet dimensions.
type Unit string

const (
	Inch Unit = "in"
	Foot Unit = "ft"
)

// DefaultUnit is the unit used when none is configured.
const DefaultUnit = Inch

// DefaultScale matches the default canvas density: 5 pixels per inch.
const DefaultScale Scale = 5

// inchesPer maps each unit to its length in inches.
var inchesPer = map[Unit]float64{
	Inch: 1,
	Foot: 12,
}

// ParseUnit accepts the short and long spellings of a unit.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in", "inch", "inches", `"`:
		return Inch, nil
	case "ft", "foot", "feet", "'":
		return Foot, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unknown length unit %q (must be 'in' or 'ft')", s)
}

// Valid reports whether u is a known unit.
func (u Unit) Valid() bool {
	_, ok := inchesPer[u]
	return ok
}

// Convert expresses v, given in from, in the unit to.
func Convert(v float64, from, to Unit) (float64, error) {
	f, ok := inchesPer[from]
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "unknown length unit %q", from)
	}
	t, ok := inchesPer[to]
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidConfig, "unknown length unit %q", to)
	}
	if from == to {
		return v, nil
	}
	return v * f / t, nil
}

// Scale is the number of canvas pixels per length unit.
type Scale float64

// Validate rejects zero, negative and non-finite scales.
func (s Scale) Validate() error {
	return errors.ValidatePositive("scale (px per unit)", float64(s))
}

// ToPx converts a length in units to pixels.
func (s Scale) ToPx(v float64) float64 { return v * float64(s) }

// FromPx converts a pixel length back to units.
func (s Scale) FromPx(px float64) float64 { return px / float64(s) }

// Format renders a length as "<value> <unit>" using the shortest
// representation that round-trips, e.g. "120 in" or "40.5 in".
func Format(v float64, u Unit) string {
	if v == 0 {
		v = 0 // normalize -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + string(u)
}

// ParseLength parses a length such as "120", "120in", "10 ft" or `10'`.
// A bare number is interpreted in def. The result is expressed in def.
func ParseLength(s string, def Unit) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New(errors.ErrCodeInvalidInput, "length cannot be empty")
	}

	i := len(s)
	for i > 0 && !isNumeric(s[i-1]) {
		i--
	}
	num, suffix := strings.TrimSpace(s[:i]), strings.TrimSpace(s[i:])

	v, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid length %q", s)
	}
	if suffix == "" {
		return v, nil
	}

	u, err := ParseUnit(suffix)
	if err != nil {
		return 0, err
	}
	return Convert(v, u, def)
}

func isNumeric(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.'
}

// String implements fmt.Stringer.
func (s Scale) String() string {
	return fmt.Sprintf("%gpx/unit", float64(s))
}
