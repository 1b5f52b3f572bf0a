package layout

import (
	"testing"

	"github.com/cabinext/cabinext/pkg/errors"
)

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in      string
		want    Orientation
		wantErr bool
	}{
		{"left", Left, false},
		{"Top", Top, false},
		{" RIGHT ", Right, false},
		{"bottom", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseOrientation(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOrientation(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, errors.ErrCodeInvalidOrientation) {
				t.Errorf("error code = %s, want INVALID_ORIENTATION", errors.GetCode(err))
			}
			if got != tt.want {
				t.Errorf("ParseOrientation(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestOrientationVertical(t *testing.T) {
	if !Left.Vertical() || Top.Vertical() || !Right.Vertical() {
		t.Error("Left and Right must be vertical, Top horizontal")
	}
	if Orientation("diagonal").Vertical() {
		t.Error("unknown orientation reported as vertical")
	}
}

func TestParseReferenceClass(t *testing.T) {
	for _, s := range []string{"base", "Upper", "WALL"} {
		if _, err := ParseReferenceClass(s); err != nil {
			t.Errorf("ParseReferenceClass(%q) error = %v", s, err)
		}
	}
	if _, err := ParseReferenceClass("module"); !errors.Is(err, errors.ErrCodeInvalidReferenceClass) {
		t.Errorf("ParseReferenceClass(module) error = %v", err)
	}
}

func TestModuleHelpers(t *testing.T) {
	tests := []struct {
		m          Module
		wantClass  ReferenceClass
		wantFiller bool
		wantCorner bool
	}{
		{Module{Name: "BC36", Width: 36, Depth: 24, IsBase: true}, ClassBase, false, true},
		{Module{Name: "F3", Width: 3, Depth: 24, IsBase: true}, ClassBase, true, false},
		{Module{Name: "UC24", Width: 24, Depth: 12}, ClassUpper, false, true},
		{Module{Name: "W30", Width: 30, Depth: 12}, ClassUpper, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.m.Name, func(t *testing.T) {
			if got := ClassFor(tt.m); got != tt.wantClass {
				t.Errorf("ClassFor = %s, want %s", got, tt.wantClass)
			}
			if got := tt.m.IsFiller(); got != tt.wantFiller {
				t.Errorf("IsFiller = %v, want %v", got, tt.wantFiller)
			}
			if got := tt.m.IsCorner(); got != tt.wantCorner {
				t.Errorf("IsCorner = %v, want %v", got, tt.wantCorner)
			}
		})
	}
}
