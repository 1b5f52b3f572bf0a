package layout

import (
	"github.com/cabinext/cabinext/pkg/errors"
	"github.com/cabinext/cabinext/pkg/units"
)

// Default engine constants.
const (
	DefaultWallThicknessPx  = 5.0
	DefaultBaseLeadInUnits  = 36.0 // corner base cabinet (BC36)
	DefaultUpperLeadInUnits = 24.0 // corner upper cabinet (UC24)
	DefaultBaseOffsetPx     = 10.0
	DefaultUpperOffsetPx    = 20.0
	DefaultWallOffsetPx     = 200.0
	DefaultLabelFontSize    = 20.0
	DefaultLabelWidthPx     = 60.0
	DefaultCanvasMarginPx   = 300.0
)

// Config holds every tunable constant used by the calculators.
// Lead-ins are in Unit; offsets and label metrics are in pixels.
type Config struct {
	Unit             units.Unit `json:"unit" toml:"unit"`
	WallThicknessPx  float64    `json:"wall_thickness_px" toml:"wall_thickness_px"`
	BaseLeadInUnits  float64    `json:"base_lead_in" toml:"base_lead_in"`
	UpperLeadInUnits float64    `json:"upper_lead_in" toml:"upper_lead_in"`
	BaseOffsetPx     float64    `json:"base_offset_px" toml:"base_offset_px"`
	UpperOffsetPx    float64    `json:"upper_offset_px" toml:"upper_offset_px"`
	WallOffsetPx     float64    `json:"wall_offset_px" toml:"wall_offset_px"`
	LabelFontSize    float64    `json:"label_font_size" toml:"label_font_size"`
	LabelWidthPx     float64    `json:"label_width_px" toml:"label_width_px"`
	CanvasMarginPx   float64    `json:"canvas_margin_px" toml:"canvas_margin_px"`
}

// DefaultConfig returns the planner's defaults, expressed in inches.
func DefaultConfig() Config {
	return Config{
		Unit:             units.DefaultUnit,
		WallThicknessPx:  DefaultWallThicknessPx,
		BaseLeadInUnits:  DefaultBaseLeadInUnits,
		UpperLeadInUnits: DefaultUpperLeadInUnits,
		BaseOffsetPx:     DefaultBaseOffsetPx,
		UpperOffsetPx:    DefaultUpperOffsetPx,
		WallOffsetPx:     DefaultWallOffsetPx,
		LabelFontSize:    DefaultLabelFontSize,
		LabelWidthPx:     DefaultLabelWidthPx,
		CanvasMarginPx:   DefaultCanvasMarginPx,
	}
}

// WithUnit returns a copy of c expressed in u. Lead-ins are converted so
// they keep covering the same physical span; pixel values are unchanged.
func (c Config) WithUnit(u units.Unit) (Config, error) {
	base, err := units.Convert(c.BaseLeadInUnits, c.Unit, u)
	if err != nil {
		return Config{}, err
	}
	upper, err := units.Convert(c.UpperLeadInUnits, c.Unit, u)
	if err != nil {
		return Config{}, err
	}
	c.Unit = u
	c.BaseLeadInUnits = base
	c.UpperLeadInUnits = upper
	return c, nil
}

// Validate checks every field. Measurement offsets must strictly increase
// from base to upper to wall.
func (c Config) Validate() error {
	if !c.Unit.Valid() {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown length unit %q", c.Unit)
	}

	positive := []struct {
		name string
		v    float64
	}{
		{"wall thickness", c.WallThicknessPx},
		{"base offset", c.BaseOffsetPx},
		{"upper offset", c.UpperOffsetPx},
		{"wall offset", c.WallOffsetPx},
		{"label font size", c.LabelFontSize},
		{"label width", c.LabelWidthPx},
	}
	for _, p := range positive {
		if err := errors.ValidatePositive(p.name, p.v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid engine config")
		}
	}

	nonNegative := []struct {
		name string
		v    float64
	}{
		{"base lead-in", c.BaseLeadInUnits},
		{"upper lead-in", c.UpperLeadInUnits},
		{"canvas margin", c.CanvasMarginPx},
	}
	for _, p := range nonNegative {
		if err := errors.ValidateNonNegative(p.name, p.v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid engine config")
		}
	}

	if !(c.BaseOffsetPx < c.UpperOffsetPx && c.UpperOffsetPx < c.WallOffsetPx) {
		return errors.New(errors.ErrCodeInvalidConfig,
			"measurement offsets must increase base < upper < wall, got %v / %v / %v",
			c.BaseOffsetPx, c.UpperOffsetPx, c.WallOffsetPx)
	}
	return nil
}

// Offset returns the measurement-line distance for class.
func (c Config) Offset(class ReferenceClass) (float64, error) {
	switch class {
	case ClassBase:
		return c.BaseOffsetPx, nil
	case ClassUpper:
		return c.UpperOffsetPx, nil
	case ClassWall:
		return c.WallOffsetPx, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidReferenceClass,
		"unknown reference class %q (must be one of: base, upper, wall)", string(class))
}
