package layout

import (
	"reflect"
	"testing"

	"github.com/cabinext/cabinext/pkg/errors"
	"github.com/cabinext/cabinext/pkg/units"
)

func base(name string, width float64) Module {
	return Module{Name: name, Width: width, Depth: 24, IsBase: true}
}

func upper(name string, width float64) Module {
	return Module{Name: name, Width: width, Depth: 12}
}

func TestPlaceWallTop(t *testing.T) {
	w := Wall{Orientation: Top, LengthUnits: 120, Scale: 5}
	got, err := PlaceWall(DefaultConfig(), w, []Module{{Width: 36, Depth: 24, IsBase: true}}, nil)
	if err != nil {
		t.Fatalf("PlaceWall() error = %v", err)
	}

	if want := (Rect{X: 0, Y: 0, Width: 600, Height: 5}); got.Rect != want {
		t.Errorf("wall rect = %+v, want %+v", got.Rect, want)
	}
	if len(got.Bases) != 1 {
		t.Fatalf("len(Bases) = %d, want 1", len(got.Bases))
	}
	if want := (Rect{X: 180, Y: 0, Width: 180, Height: 120}); got.Bases[0].Rect != want {
		t.Errorf("base rect = %+v, want %+v", got.Bases[0].Rect, want)
	}
	if got.Uppers == nil || len(got.Uppers) != 0 {
		t.Errorf("Uppers = %#v, want empty non-nil slice", got.Uppers)
	}
}

func TestPlaceWallTopContiguous(t *testing.T) {
	w := Wall{Orientation: Top, LengthUnits: 240, Scale: 5}
	bases := []Module{base("B24", 24), base("F3", 3), base("SB36", 36), base("B18", 18)}
	uppers := []Module{upper("W30", 30), upper("W15", 15)}

	got, err := PlaceWall(DefaultConfig(), w, bases, uppers)
	if err != nil {
		t.Fatalf("PlaceWall() error = %v", err)
	}

	tests := []struct {
		name  string
		run   []PlacedModule
		start float64
		mods  []Module
	}{
		{"Bases", got.Bases, 36 * 5, bases},
		{"Uppers", got.Uppers, 24 * 5, uppers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.run) != len(tt.mods) {
				t.Fatalf("len = %d, want %d", len(tt.run), len(tt.mods))
			}
			if tt.run[0].Rect.X != tt.start {
				t.Errorf("first x = %v, want %v", tt.run[0].Rect.X, tt.start)
			}
			for i, p := range tt.run {
				if p.Module != tt.mods[i] || p.Index != i {
					t.Errorf("[%d] = %s (index %d), want catalog order", i, p.Module.Name, p.Index)
				}
				if p.Rect.Y != 0 {
					t.Errorf("[%d] y = %v, want 0", i, p.Rect.Y)
				}
				if i > 0 && tt.run[i-1].Rect.Right() != p.Rect.X {
					t.Errorf("[%d] gap: prev right %v != x %v", i, tt.run[i-1].Rect.Right(), p.Rect.X)
				}
			}
		})
	}
}

func TestPlaceWallSides(t *testing.T) {
	bases := []Module{base("BC36", 36), base("B30", 30), base("F2", 2)}

	tests := []struct {
		name     string
		wall     Wall
		wantWall Rect
		wantX    float64
	}{
		{
			name:     "Left",
			wall:     Wall{Orientation: Left, LengthUnits: 96, Scale: 5},
			wantWall: Rect{X: 0, Y: 0, Width: 5, Height: 480},
			wantX:    0,
		},
		{
			name:     "Right",
			wall:     Wall{Orientation: Right, LengthUnits: 96, Scale: 5, CornerOffsetUnits: 120},
			wantWall: Rect{X: 600, Y: 0, Width: 5, Height: 480},
			wantX:    600 - 24*5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlaceWall(DefaultConfig(), tt.wall, bases, nil)
			if err != nil {
				t.Fatalf("PlaceWall() error = %v", err)
			}
			if got.Rect != tt.wantWall {
				t.Errorf("wall rect = %+v, want %+v", got.Rect, tt.wantWall)
			}

			wantNames := []string{"F2", "B30", "BC36"}
			y := 0.0
			for i, p := range got.Bases {
				if p.Module.Name != wantNames[i] {
					t.Errorf("[%d] name = %s, want %s", i, p.Module.Name, wantNames[i])
				}
				if p.Index != len(bases)-1-i {
					t.Errorf("[%d] index = %d, want %d", i, p.Index, len(bases)-1-i)
				}
				if p.Rect.Y != y {
					t.Errorf("[%d] y = %v, want %v", i, p.Rect.Y, y)
				}
				if p.Rect.X != tt.wantX {
					t.Errorf("[%d] x = %v, want %v", i, p.Rect.X, tt.wantX)
				}
				if p.Rect.Width != 24*5 || p.Rect.Height != p.Module.Width*5 {
					t.Errorf("[%d] size = %vx%v, want %vx%v", i, p.Rect.Width, p.Rect.Height, 24*5, p.Module.Width*5)
				}
				y = p.Rect.Bottom()
			}
		})
	}
}

func TestPlaceWallIndependentRuns(t *testing.T) {
	w := Wall{Orientation: Left, LengthUnits: 100, Scale: 2}
	got, err := PlaceWall(DefaultConfig(), w, []Module{base("B30", 30)}, []Module{upper("W12", 12), upper("W18", 18)})
	if err != nil {
		t.Fatalf("PlaceWall() error = %v", err)
	}
	if got.Bases[0].Rect.Y != 0 || got.Uppers[0].Rect.Y != 0 {
		t.Errorf("runs share an accumulator: base y %v, upper y %v", got.Bases[0].Rect.Y, got.Uppers[0].Rect.Y)
	}
	if got.Uppers[1].Rect.Y != 36 {
		t.Errorf("second upper y = %v, want 36", got.Uppers[1].Rect.Y)
	}
}

func TestPlaceWallIdempotent(t *testing.T) {
	w := Wall{Orientation: Right, LengthUnits: 144, Scale: 5, CornerOffsetUnits: 180}
	bases := []Module{base("BC36", 36), base("B24", 24)}
	uppers := []Module{upper("UC24", 24), upper("W30", 30)}

	a, err := PlaceWall(DefaultConfig(), w, bases, uppers)
	if err != nil {
		t.Fatalf("PlaceWall() error = %v", err)
	}
	b, err := PlaceWall(DefaultConfig(), w, bases, uppers)
	if err != nil {
		t.Fatalf("PlaceWall() error = %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("PlaceWall not idempotent:\n%+v\n%+v", a, b)
	}
}

func TestPlaceWallUnitConfig(t *testing.T) {
	cfg, err := DefaultConfig().WithUnit(units.Foot)
	if err != nil {
		t.Fatalf("WithUnit() error = %v", err)
	}
	// 10 ft wall at 60 px/ft: the base lead-in is still 36 in = 3 ft = 180 px.
	w := Wall{Orientation: Top, LengthUnits: 10, Scale: 60}
	got, err := PlaceWall(cfg, w, []Module{{Name: "B36", Width: 3, Depth: 2, IsBase: true}}, nil)
	if err != nil {
		t.Fatalf("PlaceWall() error = %v", err)
	}
	if want := (Rect{X: 180, Y: 0, Width: 180, Height: 120}); got.Bases[0].Rect != want {
		t.Errorf("base rect = %+v, want %+v", got.Bases[0].Rect, want)
	}
}

func TestPlaceWallErrors(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		wall   Wall
		bases  []Module
		wantIs errors.Code
	}{
		{
			name:   "UnknownOrientation",
			cfg:    DefaultConfig(),
			wall:   Wall{Orientation: "bottom", LengthUnits: 120, Scale: 5},
			wantIs: errors.ErrCodeInvalidOrientation,
		},
		{
			name:   "ZeroLength",
			cfg:    DefaultConfig(),
			wall:   Wall{Orientation: Top, LengthUnits: 0, Scale: 5},
			wantIs: errors.ErrCodeInvalidDimension,
		},
		{
			name:   "NegativeScale",
			cfg:    DefaultConfig(),
			wall:   Wall{Orientation: Left, LengthUnits: 120, Scale: -1},
			wantIs: errors.ErrCodeInvalidDimension,
		},
		{
			name:   "RightWithoutCornerOffset",
			cfg:    DefaultConfig(),
			wall:   Wall{Orientation: Right, LengthUnits: 120, Scale: 5},
			wantIs: errors.ErrCodeInvalidConfig,
		},
		{
			name:   "ZeroWidthModule",
			cfg:    DefaultConfig(),
			wall:   Wall{Orientation: Top, LengthUnits: 120, Scale: 5},
			bases:  []Module{{Name: "B0", Width: 0, Depth: 24, IsBase: true}},
			wantIs: errors.ErrCodeInvalidDimension,
		},
		{
			name:   "BadConfig",
			cfg:    Config{Unit: units.Inch},
			wall:   Wall{Orientation: Top, LengthUnits: 120, Scale: 5},
			wantIs: errors.ErrCodeInvalidConfig,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PlaceWall(tt.cfg, tt.wall, tt.bases, nil)
			if err == nil {
				t.Fatal("PlaceWall() expected error, got nil")
			}
			if !errors.Is(err, tt.wantIs) {
				t.Errorf("PlaceWall() error = %v, want code %s", err, tt.wantIs)
			}
			if !errors.IsConfig(err) {
				t.Errorf("IsConfig(%v) = false, want true", err)
			}
		})
	}
}

func TestPlaceWallEmpty(t *testing.T) {
	for _, o := range Orientations {
		t.Run(string(o), func(t *testing.T) {
			w := Wall{Orientation: o, LengthUnits: 120, Scale: 5, CornerOffsetUnits: 120}
			got, err := PlaceWall(DefaultConfig(), w, nil, []Module{})
			if err != nil {
				t.Fatalf("PlaceWall() error = %v", err)
			}
			if got.Bases == nil || got.Uppers == nil {
				t.Errorf("empty runs must be non-nil, got %#v / %#v", got.Bases, got.Uppers)
			}
		})
	}
}

func TestPlaceWallRunSetsIsBase(t *testing.T) {
	w := Wall{Orientation: Left, LengthUnits: 96, Scale: 5}
	bases := []Module{{Name: "B30", Width: 30, Depth: 24}}
	uppers := []Module{{Name: "W30", Width: 30, Depth: 12, IsBase: true}}

	got, err := PlaceWall(DefaultConfig(), w, bases, uppers)
	if err != nil {
		t.Fatalf("PlaceWall() error = %v", err)
	}
	if !got.Bases[0].Module.IsBase {
		t.Error("module placed as a base should have IsBase set")
	}
	if got.Uppers[0].Module.IsBase {
		t.Error("module placed as an upper should not have IsBase set")
	}
	if ClassFor(got.Bases[0].Module) != ClassBase || ClassFor(got.Uppers[0].Module) != ClassUpper {
		t.Error("ClassFor disagrees with the run the module was placed in")
	}
	if bases[0].IsBase || !uppers[0].IsBase {
		t.Error("PlaceWall modified its input")
	}
}
