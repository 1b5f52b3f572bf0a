package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/cabinext/cabinext/pkg/config"
	"github.com/cabinext/cabinext/pkg/errors"
	"github.com/cabinext/cabinext/pkg/layout"
	"github.com/cabinext/cabinext/pkg/observability"
	"github.com/cabinext/cabinext/pkg/units"
)

func newTestCLI(env map[string]string) *CLI {
	c := New(&bytes.Buffer{}, log.InfoLevel)
	c.getenv = func(k string) string { return env[k] }
	return c
}

func TestRootCommand(t *testing.T) {
	root := newTestCLI(nil).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"plan", "wall", "measure", "place", "serve", "cache", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("missing %q command, have %v", want, names)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("missing --config flag")
	}
}

func TestSetLogLevel(t *testing.T) {
	t.Cleanup(observability.Reset)

	c := newTestCLI(nil)
	c.SetLogLevel(LogInfo)
	if _, ok := observability.Pipeline().(*observability.LogHooks); ok {
		t.Error("info level should not register log hooks")
	}

	c.SetLogLevel(LogDebug)
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
	if _, ok := observability.Pipeline().(*observability.LogHooks); !ok {
		t.Error("debug level should register log hooks")
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"SVG, png,,json", []string{"svg", "png", "json"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestApplyPlanFlags(t *testing.T) {
	opts := config.Default().PipelineOptions()
	err := applyPlanFlags(&opts, planFlags{
		left:     "8ft",
		top:      "120",
		right:    "96in",
		formats:  "png,svg",
		grid:     12,
		noLabels: true,
	})
	if err != nil {
		t.Fatalf("applyPlanFlags() error: %v", err)
	}

	if opts.Left != 96 || opts.Top != 120 || opts.Right != 96 {
		t.Errorf("walls = %v/%v/%v, want 96/120/96", opts.Left, opts.Top, opts.Right)
	}
	if !slices.Equal(opts.Formats, []string{"png", "svg"}) {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.GridUnits != 12 || !opts.NoLabels || opts.NoMeasurements {
		t.Errorf("render flags not applied: %+v", opts)
	}
	if opts.Unit != units.Inch || opts.Scale != units.DefaultScale {
		t.Errorf("unit/scale = %s/%v", opts.Unit, opts.Scale)
	}
}

func TestApplyPlanFlagsErrors(t *testing.T) {
	tests := []struct {
		name  string
		flags planFlags
		code  errors.Code
	}{
		{"MissingWalls", planFlags{}, errors.ErrCodeInvalidDimension},
		{"BadLength", planFlags{left: "eight", top: "120", right: "96"}, errors.ErrCodeInvalidInput},
		{"BadUnit", planFlags{left: "8m", top: "120", right: "96"}, errors.ErrCodeInvalidConfig},
		{"BadFormat", planFlags{left: "96", top: "120", right: "96", formats: "pdf"}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := config.Default().PipelineOptions()
			err := applyPlanFlags(&opts, tt.flags)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room.toml")
	data := "unit = \"ft\"\n[walls]\ntop = 10\n[catalog]\nurl = \"http://file/api\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c := newTestCLI(map[string]string{
		configEnv:            path,
		config.EnvCatalogURL: "http://env/api",
	})
	cfg, err := c.loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Unit != units.Foot || cfg.Walls.Top != 10 {
		t.Errorf("room file not loaded: %+v", cfg)
	}
	if cfg.Catalog.URL != "http://env/api" {
		t.Errorf("env override not applied: %q", cfg.Catalog.URL)
	}

	engine, err := engineConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if engine.Unit != units.Foot || engine.BaseLeadInUnits != 3 {
		t.Errorf("engine not converted to feet: %+v", engine)
	}

	c.configPath = filepath.Join(t.TempDir(), "missing.toml")
	if _, err := c.loadConfig(); err == nil {
		t.Error("expected error for a missing --config file")
	}
}

func TestWallTable(t *testing.T) {
	wl, err := layout.PlaceWall(layout.DefaultConfig(),
		layout.Wall{Orientation: layout.Top, LengthUnits: 120, Scale: 5},
		[]layout.Module{{Name: "B36", Width: 36, Depth: 24, IsBase: true}},
		[]layout.Module{{Name: "W30", Width: 30, Depth: 12}})
	if err != nil {
		t.Fatal(err)
	}

	out := wallTable(wl, units.Inch)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("table has %d lines, want 3:\n%s", len(lines), out)
	}
	for _, want := range []string{"NAME", "B36", "W30", "36 in", "180"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestCabinetCount(t *testing.T) {
	if got := cabinetCount(1); got != "1 cabinet" {
		t.Errorf("cabinetCount(1) = %q", got)
	}
	if got := cabinetCount(7); got != "7 cabinets" {
		t.Errorf("cabinetCount(7) = %q", got)
	}
}
