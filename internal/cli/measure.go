package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cabinext/cabinext/pkg/layout"
	"github.com/cabinext/cabinext/pkg/units"
)

// measureCommand creates the measure command: annotate one rectangle.
func (c *CLI) measureCommand() *cobra.Command {
	var (
		orientation string
		class       string
		rect        layout.Rect
		scale       float64
	)

	cmd := &cobra.Command{
		Use:   "measure",
		Short: "Compute the dimension annotation of a rectangle",
		Long: `Compute the main line, leaders and label that annotate a rectangle on
the given wall. Coordinates are canvas pixels.`,
		Example: `  cabinext measure --wall top --class wall --width 600 --height 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			o, err := layout.ParseOrientation(orientation)
			if err != nil {
				return err
			}
			rc, err := layout.ParseReferenceClass(class)
			if err != nil {
				return err
			}
			s := units.Scale(cfg.Scale)
			if scale != 0 {
				s = units.Scale(scale)
			}
			engine, err := engineConfig(cfg)
			if err != nil {
				return err
			}

			a, err := layout.Measure(engine, s, rect, o, rc)
			if err != nil {
				return err
			}

			printSuccess("%s", StyleHighlight.Render(a.Label.Text))
			printKeyValue("main line", segment(a.MainLine))
			printKeyValue("leader a", segment(a.LeaderA))
			printKeyValue("leader b", segment(a.LeaderB))
			printKeyValue("label", fmt.Sprintf("x=%s y=%s %s×%s", px(a.Label.X), px(a.Label.Y), px(a.Label.Width), px(a.Label.Height)))
			return nil
		},
	}

	cmd.Flags().StringVar(&orientation, "wall", "top", "wall orientation (left, top, right)")
	cmd.Flags().StringVar(&class, "class", "wall", "reference class (base, upper, wall)")
	cmd.Flags().Float64Var(&rect.X, "x", 0, "rectangle x in pixels")
	cmd.Flags().Float64Var(&rect.Y, "y", 0, "rectangle y in pixels")
	cmd.Flags().Float64Var(&rect.Width, "width", 0, "rectangle width in pixels")
	cmd.Flags().Float64Var(&rect.Height, "height", 0, "rectangle height in pixels")
	cmd.Flags().Float64Var(&scale, "scale", 0, "pixels per unit (default from room file)")
	return cmd
}

func segment(s layout.Segment) string {
	x2, y2 := s.End()
	return fmt.Sprintf("(%s, %s) → (%s, %s)", px(s.X), px(s.Y), px(x2), px(y2))
}
