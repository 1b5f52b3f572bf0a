package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cabinext/cabinext/pkg/catalog"
)

// placeCommand creates the place command, which asks the catalog to place
// an ad-hoc cabinet.
func (c *CLI) placeCommand() *cobra.Command {
	var req catalog.PlaceRequest

	cmd := &cobra.Command{
		Use:     "place <name>",
		Short:   "Place an ad-hoc cabinet through the catalog service",
		Example: `  cabinext place B18 --width 18 --height 34.5 --depth 24 --x 40 --y 40`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			client, err := c.newCatalog(cfg, nil)
			if err != nil {
				return err
			}

			req.Cabinet.Name = args[0]
			placed, err := client.PlaceCabinet(cmd.Context(), req)
			if err != nil {
				return err
			}

			printSuccess("Placed %s", StyleHighlight.Render(placed.Name))
			printKeyValue("position", fmt.Sprintf("%s, %s", px(placed.PositionX), px(placed.PositionY)))
			printKeyValue("size", fmt.Sprintf("%s × %s", px(placed.Width), px(placed.Height)))
			return nil
		},
	}

	cmd.Flags().Float64Var(&req.Cabinet.Width, "width", 0, "cabinet width")
	cmd.Flags().Float64Var(&req.Cabinet.Height, "height", 0, "cabinet height")
	cmd.Flags().Float64Var(&req.Cabinet.Depth, "depth", 0, "cabinet depth")
	cmd.Flags().Float64Var(&req.X, "x", 0, "x position")
	cmd.Flags().Float64Var(&req.Y, "y", 0, "y position")
	return cmd
}
