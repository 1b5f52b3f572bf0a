package cli

import (
	"github.com/spf13/cobra"

	"github.com/cabinext/cabinext/internal/server"
	"github.com/cabinext/cabinext/pkg/pipeline"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the planner over HTTP. The listen address comes from --addr,
$CABINEXT_ADDR or the room file, in that order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			cc, err := c.openCache(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			client, err := c.newCatalog(cfg, cc)
			if err != nil {
				cc.Close()
				return err
			}
			// Requests from different users must not supersede each other,
			// so the server fetches without a tracker.
			runner := pipeline.NewRunner(client, cc, cfg.Keyer(), c.Logger)
			defer runner.Close()

			engine, err := engineConfig(cfg)
			if err != nil {
				return err
			}

			srv := server.New(server.Config{
				Addr:   cfg.Server.Addr,
				Runner: runner,
				Placer: client,
				Engine: &engine,
				Logger: c.Logger,
			})
			printInfo("Catalog %s", StyleLink.Render(client.BaseURL()))
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
