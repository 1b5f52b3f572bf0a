package layout

import (
	"testing"

	"github.com/cabinext/cabinext/pkg/errors"
	"github.com/cabinext/cabinext/pkg/units"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"UnknownUnit", func(c *Config) { c.Unit = "cm" }},
		{"ZeroThickness", func(c *Config) { c.WallThicknessPx = 0 }},
		{"NegativeLeadIn", func(c *Config) { c.BaseLeadInUnits = -1 }},
		{"ZeroLabelWidth", func(c *Config) { c.LabelWidthPx = 0 }},
		{"OffsetsEqual", func(c *Config) { c.UpperOffsetPx = c.BaseOffsetPx }},
		{"OffsetsInverted", func(c *Config) { c.WallOffsetPx = 15 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestConfigWithUnit(t *testing.T) {
	cfg, err := DefaultConfig().WithUnit(units.Foot)
	if err != nil {
		t.Fatalf("WithUnit() error = %v", err)
	}
	if cfg.Unit != units.Foot {
		t.Errorf("Unit = %s, want ft", cfg.Unit)
	}
	if cfg.BaseLeadInUnits != 3 || cfg.UpperLeadInUnits != 2 {
		t.Errorf("lead-ins = %v / %v, want 3 / 2", cfg.BaseLeadInUnits, cfg.UpperLeadInUnits)
	}
	if cfg.WallOffsetPx != DefaultWallOffsetPx {
		t.Errorf("pixel values must not change, wall offset = %v", cfg.WallOffsetPx)
	}

	if _, err := DefaultConfig().WithUnit("cm"); err == nil {
		t.Error("WithUnit(cm) expected error")
	}
}

func TestConfigOffset(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		class ReferenceClass
		want  float64
	}{
		{ClassBase, 10},
		{ClassUpper, 20},
		{ClassWall, 200},
	}
	for _, tt := range tests {
		got, err := cfg.Offset(tt.class)
		if err != nil {
			t.Fatalf("Offset(%s) error = %v", tt.class, err)
		}
		if got != tt.want {
			t.Errorf("Offset(%s) = %v, want %v", tt.class, got, tt.want)
		}
	}
	if _, err := cfg.Offset("module"); !errors.Is(err, errors.ErrCodeInvalidReferenceClass) {
		t.Errorf("Offset(module) error = %v, want INVALID_REFERENCE_CLASS", err)
	}
}
