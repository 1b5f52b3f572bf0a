package units

import (
	"math"
	"testing"

	"github.com/cabinext/cabinext/pkg/errors"
)

func TestScaleRoundTrip(t *testing.T) {
	samples := []float64{0, 3.5, 9, 12, 24, 24.5, 36, 120, 180}
	scales := []Scale{1, 5, 10, 2.5}
	for _, s := range scales {
		for _, v := range samples {
			if got := s.FromPx(s.ToPx(v)); got != v {
				t.Errorf("scale %v: FromPx(ToPx(%v)) = %v", s, v, got)
			}
		}
	}
}

func TestScaleValidate(t *testing.T) {
	tests := []struct {
		scale   Scale
		wantErr bool
	}{
		{5, false},
		{0.25, false},
		{0, true},
		{-5, true},
		{Scale(math.NaN()), true},
	}
	for _, tt := range tests {
		err := tt.scale.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Scale(%v).Validate() error = %v, wantErr %v", float64(tt.scale), err, tt.wantErr)
		}
		if err != nil && !errors.IsConfig(err) {
			t.Errorf("Scale(%v).Validate() should be a configuration error, got %v", float64(tt.scale), err)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		v    float64
		u    Unit
		want string
	}{
		{120, Inch, "120 in"},
		{40.5, Inch, "40.5 in"},
		{10, Foot, "10 ft"},
		{0, Inch, "0 in"},
		{math.Copysign(0, -1), Inch, "0 in"},
	}
	for _, tt := range tests {
		if got := Format(tt.v, tt.u); got != tt.want {
			t.Errorf("Format(%v, %q) = %q, want %q", tt.v, tt.u, got, tt.want)
		}
	}
}

func TestConvert(t *testing.T) {
	got, err := Convert(10, Foot, Inch)
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if got != 120 {
		t.Errorf("10ft = %v in, want 120", got)
	}

	got, err = Convert(36, Inch, Foot)
	if err != nil {
		t.Fatalf("Convert error: %v", err)
	}
	if got != 3 {
		t.Errorf("36in = %v ft, want 3", got)
	}

	if _, err := Convert(1, Unit("cm"), Inch); err == nil {
		t.Error("unknown unit should fail")
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		input   string
		def     Unit
		want    float64
		wantErr bool
	}{
		{"120", Inch, 120, false},
		{"120in", Inch, 120, false},
		{"10ft", Inch, 120, false},
		{"10 feet", Inch, 120, false},
		{"10'", Inch, 120, false},
		{"24in", Foot, 2, false},
		{"40.5", Inch, 40.5, false},
		{"", Inch, 0, true},
		{"abc", Inch, 0, true},
		{"12cm", Inch, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLength(tt.input, tt.def)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLength(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLength(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseUnit(t *testing.T) {
	for _, s := range []string{"in", "IN", "inches", "ft", "feet"} {
		u, err := ParseUnit(s)
		if err != nil {
			t.Errorf("ParseUnit(%q) error: %v", s, err)
		}
		if !u.Valid() {
			t.Errorf("ParseUnit(%q) = %q, not valid", s, u)
		}
	}
	if _, err := ParseUnit("yd"); err == nil {
		t.Error("ParseUnit(yd) should fail")
	}
}
