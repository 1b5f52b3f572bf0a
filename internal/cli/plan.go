package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cabinext/cabinext/pkg/errors"
	"github.com/cabinext/cabinext/pkg/pipeline"
	"github.com/cabinext/cabinext/pkg/units"
)

// planFlags holds the flag values of the plan command. Lengths stay strings
// until the room's unit is known.
type planFlags struct {
	left, top, right string
	scale            float64
	formats          string
	output           string
	title            string
	grid             float64
	noLabels         bool
	noMeasurements   bool
	refresh          bool
	noCache          bool
}

// planCommand creates the plan command: fetch, compose and render a room.
func (c *CLI) planCommand() *cobra.Command {
	var f planFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Lay out and render a room",
		Long: `Fetch the cabinets for the left, top and right walls from the catalog,
place and measure them, and write the rendered room.

Wall lengths come from the room file or from flags. Flags accept a bare number
in the room's unit (set in the room file, inches by default) or an explicit
unit that is converted: 120, 120in, 10ft.`,
		Example: `  cabinext plan --left 96 --top 10ft --right 96
  cabinext plan -c kitchen.toml -f svg,png -o kitchen`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlan(cmd, f)
		},
	}

	cmd.Flags().StringVar(&f.left, "left", "", "left wall length")
	cmd.Flags().StringVar(&f.top, "top", "", "top wall length")
	cmd.Flags().StringVar(&f.right, "right", "", "right wall length")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "pixels per unit")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output formats, comma separated (svg, png, json)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "room", "output path without extension")
	cmd.Flags().StringVar(&f.title, "title", "", "drawing title")
	cmd.Flags().Float64Var(&f.grid, "grid", 0, "draw a grid every N units (0 disables)")
	cmd.Flags().BoolVar(&f.noLabels, "no-labels", false, "omit cabinet names")
	cmd.Flags().BoolVar(&f.noMeasurements, "no-measurements", false, "omit dimension annotations")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "bypass cached catalog responses and artifacts")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")

	return cmd
}

var stageMessages = map[pipeline.Stage]string{
	pipeline.StageFetch:   "Fetching walls...",
	pipeline.StageCompose: "Placing cabinets...",
	pipeline.StageRender:  "Rendering...",
}

func (c *CLI) runPlan(cmd *cobra.Command, f planFlags) error {
	ctx := cmd.Context()
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	opts := cfg.PipelineOptions()
	if err := applyPlanFlags(&opts, f); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, f.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	sw := startStopwatch(loggerFromContext(ctx))
	sp := startSpinner(ctx, stageMessages[pipeline.StageFetch])
	opts.Progress = func(s pipeline.Stage) { sp.Update(stageMessages[s]) }
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		sp.Fail("Planning failed: " + errors.UserMessage(err))
		return err
	}
	sp.Stop()

	printSuccess("Planned %s", StyleHighlight.Render(fmt.Sprintf("%v × %v × %v %s", opts.Left, opts.Top, opts.Right, opts.Unit)))
	printStats(res.Stats.ModuleCount, res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit)

	for _, format := range opts.Formats {
		path := f.output + "." + format
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		if err := os.WriteFile(path, res.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	sw.done("wrote files", "files", len(opts.Formats), "run", res.ID[:8])
	return nil
}

// applyPlanFlags overrides file values with the flags that were set.
func applyPlanFlags(opts *pipeline.Options, f planFlags) error {
	if opts.Unit == "" {
		opts.Unit = units.DefaultUnit
	}

	for _, l := range []struct {
		flag string
		dst  *float64
	}{{f.left, &opts.Left}, {f.top, &opts.Top}, {f.right, &opts.Right}} {
		if l.flag == "" {
			continue
		}
		v, err := units.ParseLength(l.flag, opts.Unit)
		if err != nil {
			return err
		}
		*l.dst = v
	}

	if f.scale != 0 {
		opts.Scale = units.Scale(f.scale)
	}
	if f.formats != "" || len(opts.Formats) == 0 {
		opts.Formats = parseFormats(f.formats)
	}
	if f.title != "" {
		opts.Title = f.title
	}
	if f.grid != 0 {
		opts.GridUnits = f.grid
	}
	opts.NoLabels = opts.NoLabels || f.noLabels
	opts.NoMeasurements = opts.NoMeasurements || f.noMeasurements
	opts.Refresh = f.refresh
	return opts.ValidateAndSetDefaults()
}
