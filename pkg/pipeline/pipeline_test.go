package pipeline

import (
	"context"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/cabinext/cabinext/pkg/cache"
	"github.com/cabinext/cabinext/pkg/errors"
	"github.com/cabinext/cabinext/pkg/layout"
	"github.com/cabinext/cabinext/pkg/room"
	"github.com/cabinext/cabinext/pkg/units"
)

// fakeFetcher serves fixed module lists and counts calls per wall.
type fakeFetcher struct {
	mu      sync.Mutex
	calls   map[layout.Orientation]int
	modules room.ModulesByWall
	fail    map[layout.Orientation]error
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		calls: map[layout.Orientation]int{},
		modules: room.ModulesByWall{
			layout.Left: {
				Bases:  []layout.Module{{Name: "B24", Width: 24, Depth: 24, IsBase: true}},
				Uppers: []layout.Module{{Name: "W30", Width: 30, Depth: 12}},
			},
			layout.Top: {
				Bases: []layout.Module{{Name: "B36", Width: 36, Depth: 24, IsBase: true}},
			},
			layout.Right: {
				Bases: []layout.Module{{Name: "SB30", Width: 30, Depth: 24, IsBase: true}},
			},
		},
	}
}

func (f *fakeFetcher) GenerateWall(_ context.Context, o layout.Orientation, _ float64, _ bool) (room.WallModules, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[o]++
	if err := f.fail[o]; err != nil {
		return room.WallModules{}, err
	}
	return f.modules[o], nil
}

func (f *fakeFetcher) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func roomOptions() Options {
	return Options{Left: 96, Top: 120, Right: 96}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"json", false},
		{"pdf", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}

	if err := ValidateFormats(nil); err != nil {
		t.Errorf("empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := roomOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}

	if opts.Unit != units.Inch {
		t.Errorf("Unit = %q, want in", opts.Unit)
	}
	if opts.Scale != units.DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, units.DefaultScale)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "svg" {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should be defaulted")
	}

	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call error: %v", err)
	}
}

func TestOptionsValidation(t *testing.T) {
	footCfg, _ := layout.DefaultConfig().WithUnit(units.Foot)

	tests := []struct {
		name   string
		modify func(*Options)
		code   errors.Code
	}{
		{"ZeroLeft", func(o *Options) { o.Left = 0 }, errors.ErrCodeInvalidDimension},
		{"NegativeTop", func(o *Options) { o.Top = -1 }, errors.ErrCodeInvalidDimension},
		{"UnknownUnit", func(o *Options) { o.Unit = "cm" }, errors.ErrCodeInvalidConfig},
		{"BadFormat", func(o *Options) { o.Formats = []string{"svg", "pdf"} }, errors.ErrCodeInvalidFormat},
		{"NegativeGrid", func(o *Options) { o.GridUnits = -12 }, errors.ErrCodeInvalidConfig},
		{"EngineUnitMismatch", func(o *Options) { o.Engine = &footCfg }, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := roomOptions()
			tt.modify(&opts)
			err := opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestOptionsWalls(t *testing.T) {
	opts := roomOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	left, top, right := opts.Walls()

	if left.Orientation != layout.Left || top.Orientation != layout.Top || right.Orientation != layout.Right {
		t.Errorf("orientations = %s/%s/%s", left.Orientation, top.Orientation, right.Orientation)
	}
	if right.CornerOffsetUnits != top.LengthUnits {
		t.Errorf("right corner offset = %v, want %v", right.CornerOffsetUnits, top.LengthUnits)
	}
	if opts.Length(layout.Right) != 96 || opts.Length("floor") != 0 {
		t.Error("Length() returned unexpected values")
	}
}

func TestExecuteProgress(t *testing.T) {
	r := NewRunner(newFakeFetcher(), nil, nil, nil)

	var stages []Stage
	opts := roomOptions()
	opts.Progress = func(s Stage) { stages = append(stages, s) }
	if _, err := r.Execute(context.Background(), opts); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	want := []Stage{StageFetch, StageCompose, StageRender}
	if !slices.Equal(stages, want) {
		t.Errorf("stages = %v, want %v", stages, want)
	}
}

func TestExecute(t *testing.T) {
	f := newFakeFetcher()
	r := NewRunner(f, nil, nil, nil)

	opts := roomOptions()
	opts.Formats = []string{"svg", "json"}
	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if res.ID == "" || res.LayoutHash == "" {
		t.Error("missing run ID or layout hash")
	}
	if res.Stats.ModuleCount != 4 {
		t.Errorf("ModuleCount = %d, want 4", res.Stats.ModuleCount)
	}
	if f.total() != 3 {
		t.Errorf("fetch calls = %d, want 3", f.total())
	}

	base := res.Layout.Top.Bases[0].Rect
	want := layout.Rect{X: 180, Y: 0, Width: 180, Height: 120}
	if base != want {
		t.Errorf("top base rect = %+v, want %+v", base, want)
	}

	svg := string(res.Artifacts["svg"])
	if !strings.HasPrefix(svg, "<svg") || !strings.Contains(svg, ">B36</text>") {
		t.Errorf("unexpected SVG:\n%s", svg)
	}
	if len(res.Artifacts["json"]) == 0 {
		t.Error("missing json artifact")
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Error("null cache should never hit")
	}
}

func TestExecuteInlineModules(t *testing.T) {
	f := newFakeFetcher()
	opts := roomOptions()
	opts.Modules = f.modules

	// No fetcher at all: every wall is inline.
	res, err := NewRunner(nil, nil, nil, nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.Layout.ModuleCount() != 4 {
		t.Errorf("ModuleCount() = %d, want 4", res.Layout.ModuleCount())
	}

	// Partially inline: only the missing wall is fetched.
	opts = roomOptions()
	opts.Modules = room.ModulesByWall{layout.Left: {}, layout.Top: {}}
	if _, err := NewRunner(f, nil, nil, nil).Execute(context.Background(), opts); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if f.calls[layout.Right] != 1 || f.calls[layout.Left] != 0 {
		t.Errorf("calls = %v, want only right", f.calls)
	}
}

func TestExecuteWithoutFetcher(t *testing.T) {
	opts := roomOptions()
	opts.Modules = room.ModulesByWall{layout.Left: {}}
	_, err := NewRunner(nil, nil, nil, nil).Execute(context.Background(), opts)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestExecuteFetchError(t *testing.T) {
	f := newFakeFetcher()
	f.fail = map[layout.Orientation]error{
		layout.Right: errors.New(errors.ErrCodeNotFound, "no modules for 96 in"),
	}

	_, err := NewRunner(f, nil, nil, nil).Execute(context.Background(), roomOptions())
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("code = %s, want NOT_FOUND", errors.GetCode(err))
	}
	if !strings.Contains(err.Error(), "right wall") {
		t.Errorf("error %q should name the wall", err)
	}
}

func TestExecuteRejectsInvalidModules(t *testing.T) {
	f := newFakeFetcher()
	f.modules[layout.Top] = room.WallModules{
		Bases: []layout.Module{{Name: "B36", Width: -36, Depth: 24, IsBase: true}},
	}

	_, err := NewRunner(f, nil, nil, nil).Execute(context.Background(), roomOptions())
	if !errors.Is(err, errors.ErrCodeInvalidDimension) {
		t.Errorf("error = %v, want INVALID_DIMENSION", err)
	}
}

func TestExecuteCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(newFakeFetcher(), c, nil, nil)
	ctx := context.Background()

	first, err := r.Execute(ctx, roomOptions())
	if err != nil {
		t.Fatalf("first Execute() error: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss")
	}

	second, err := r.Execute(ctx, roomOptions())
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run cache info = %+v, want hits", second.CacheInfo)
	}
	if string(first.Artifacts["svg"]) != string(second.Artifacts["svg"]) {
		t.Error("cached artifact differs from rendered one")
	}
	if first.LayoutHash != second.LayoutHash {
		t.Error("layout hash changed between runs")
	}

	refresh := roomOptions()
	refresh.Refresh = true
	third, err := r.Execute(ctx, refresh)
	if err != nil {
		t.Fatalf("refresh Execute() error: %v", err)
	}
	if third.CacheInfo.LayoutHit || third.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := roomOptions()
	opts.NoLabels = true
	opts.GridUnits = 12

	k := opts.ArtifactKeyOpts("png")
	if k.Format != "png" || k.Labels || !k.Measurements || k.Grid != 12 {
		t.Errorf("ArtifactKeyOpts() = %+v", k)
	}

	keyer := cache.NewDefaultKeyer()
	a := keyer.ArtifactKey("h", opts.ArtifactKeyOpts("svg"))
	opts.NoLabels = false
	b := keyer.ArtifactKey("h", opts.ArtifactKeyOpts("svg"))
	if a == b {
		t.Error("label toggle should change the artifact key")
	}
}
