package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cabinext/cabinext/pkg/buildinfo"
	"github.com/cabinext/cabinext/pkg/cache"
	"github.com/cabinext/cabinext/pkg/catalog"
	"github.com/cabinext/cabinext/pkg/config"
	"github.com/cabinext/cabinext/pkg/layout"
	"github.com/cabinext/cabinext/pkg/observability"
	"github.com/cabinext/cabinext/pkg/pipeline"
	"github.com/cabinext/cabinext/pkg/render/sink"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "cabinext"

	// configEnv names a room file used when --config is not given.
	configEnv = "CABINEXT_CONFIG"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	getenv     func(string) string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		getenv: os.Getenv,
	}
}

// SetLogLevel updates the logger's level. At debug level every pipeline,
// cache and HTTP event is logged as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		observability.NewLogHooks(c.Logger).Register()
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "CabineXt lays out and measures cabinet walls",
		Long:         `CabineXt places base and upper cabinets along the left, top and right walls of a room, annotates every wall and cabinet with its dimension, and renders the result as SVG, PNG or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "room file (TOML); defaults to $"+configEnv)

	// Register all subcommands
	root.AddCommand(c.planCommand())
	root.AddCommand(c.wallCommand())
	root.AddCommand(c.measureCommand())
	root.AddCommand(c.placeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration and Factories
// =============================================================================

// loadConfig reads the room file named by --config (or $CABINEXT_CONFIG),
// falling back to defaults, and applies environment overrides.
func (c *CLI) loadConfig() (*config.Config, error) {
	path := c.configPath
	if path == "" {
		path = c.getenv(configEnv)
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		c.Logger.Debug("loaded room file", "path", path)
	}
	cfg.ApplyEnv(c.getenv)
	return cfg, nil
}

// openCache opens the configured backend, or a null cache when noCache is
// set. A file cache that cannot be created degrades to no caching.
func (c *CLI) openCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	opts := cfg.CacheOptions()
	cc, err := cache.Open(ctx, opts)
	if err != nil {
		if opts.Backend == cache.BackendRedis {
			return nil, err
		}
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cc, nil
}

// newCatalog builds a catalog client on top of c.
func (c *CLI) newCatalog(cfg *config.Config, cc cache.Cache) (*catalog.Client, error) {
	clientCfg := cfg.CatalogConfig()
	clientCfg.Cache = cc
	clientCfg.Logger = c.Logger
	return catalog.NewClient(clientCfg)
}

// newRunner creates a pipeline runner for CLI use. Fetches go through a
// tracker so each wall has at most one request in flight.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.openCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	client, err := c.newCatalog(cfg, cc)
	if err != nil {
		cc.Close()
		return nil, err
	}
	return pipeline.NewRunner(catalog.NewTracker(client), cc, cfg.Keyer(), c.Logger), nil
}

// engineConfig returns the room file's engine constants, or the defaults
// converted to the room's unit.
func engineConfig(cfg *config.Config) (layout.Config, error) {
	if cfg.Engine != nil {
		return *cfg.Engine, nil
	}
	return layout.DefaultConfig().WithUnit(cfg.Unit)
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{sink.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}
