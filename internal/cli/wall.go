package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cabinext/cabinext/pkg/layout"
	"github.com/cabinext/cabinext/pkg/units"
)

// wallCommand creates the wall command: fetch and place a single wall.
func (c *CLI) wallCommand() *cobra.Command {
	var (
		cornerOffset string
		refresh      bool
		noCache      bool
	)

	cmd := &cobra.Command{
		Use:   "wall <left|top|right> <length>",
		Short: "Fetch and place the cabinets of one wall",
		Long: `Fetch the module lists for one wall from the catalog and print where
each cabinet lands, in pixels and in the room's unit.

The right wall needs the top wall's length as --corner-offset.`,
		Example: `  cabinext wall top 120
  cabinext wall right 96in --corner-offset 10ft`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return []string{"left", "top", "right"}, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			o, err := layout.ParseOrientation(args[0])
			if err != nil {
				return err
			}
			w := layout.Wall{Orientation: o, Scale: units.Scale(cfg.Scale)}
			if w.LengthUnits, err = units.ParseLength(args[1], cfg.Unit); err != nil {
				return err
			}
			if o == layout.Right {
				w.CornerOffsetUnits = cfg.Walls.Top
				if cornerOffset != "" {
					if w.CornerOffsetUnits, err = units.ParseLength(cornerOffset, cfg.Unit); err != nil {
						return err
					}
				}
			}

			engine, err := engineConfig(cfg)
			if err != nil {
				return err
			}
			// Validate before calling the catalog.
			if err := w.Validate(); err != nil {
				return err
			}

			cc, err := c.openCache(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer cc.Close()
			client, err := c.newCatalog(cfg, cc)
			if err != nil {
				return err
			}

			mods, ok := cfg.Modules[o]
			if !ok {
				if mods, err = client.GenerateWall(ctx, o, w.LengthUnits, refresh); err != nil {
					return err
				}
			}
			wl, err := layout.PlaceWall(engine, w, mods.Bases, mods.Uppers)
			if err != nil {
				return err
			}

			printSuccess("%s wall, %s, %d bases, %d uppers",
				strings.ToUpper(o.String()[:1])+o.String()[1:],
				units.Format(w.LengthUnits, cfg.Unit), len(wl.Bases), len(wl.Uppers))
			fmt.Println(wallTable(wl, cfg.Unit))
			return nil
		},
	}

	cmd.Flags().StringVar(&cornerOffset, "corner-offset", "", "top wall length, for the right wall")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cached catalog response")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}

// wallTable renders placed modules in drawing order.
func wallTable(wl layout.WallLayout, u units.Unit) string {
	header := []string{"#", "NAME", "KIND", "WIDTH", "DEPTH", "X", "Y", "W", "H"}
	rows := [][]string{header}
	add := func(kind string, run []layout.PlacedModule) {
		for _, p := range run {
			rows = append(rows, []string{
				strconv.Itoa(p.Index),
				p.Module.Name,
				kind,
				units.Format(p.Module.Width, u),
				units.Format(p.Module.Depth, u),
				px(p.Rect.X), px(p.Rect.Y), px(p.Rect.Width), px(p.Rect.Height),
			})
		}
	}
	add("base", wl.Bases)
	add("upper", wl.Uppers)

	widths := make([]int, len(header))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			st := lipgloss.NewStyle().Width(widths[i] + 2)
			switch {
			case r == 0:
				st = st.Inherit(StyleDim)
			case i == 1:
				st = st.Inherit(StyleHighlight)
			}
			cells[i] = st.Render(cell)
		}
		b.WriteString("  " + strings.Join(cells, ""))
		if r < len(rows)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
