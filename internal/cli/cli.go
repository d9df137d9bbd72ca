package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/rokucommunity/release-dashboard/pkg/buildinfo"
	"github.com/rokucommunity/release-dashboard/pkg/cache"
	"github.com/rokucommunity/release-dashboard/pkg/config"
	"github.com/rokucommunity/release-dashboard/pkg/httputil"
	"github.com/rokucommunity/release-dashboard/pkg/integrations/github"
	"github.com/rokucommunity/release-dashboard/pkg/observability"
	"github.com/rokucommunity/release-dashboard/pkg/projects"
	"github.com/rokucommunity/release-dashboard/pkg/status"
)

// appName is the binary name used in help text.
const appName = config.AppName

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
	noCache    bool
	verbose    bool
}

// New creates a new CLI instance writing logs to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Track which RokuCommunity projects need a release",
		Long:         `release-dashboard checks every RokuCommunity project on GitHub, compares the dependency versions each one was last released with against their current versions, and shows which projects need a new release and in what order.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				observability.NewLogHooks(c.Logger).Register()
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/release-dashboard/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the HTTP response cache")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.statusCommand())
	root.AddCommand(c.dashboardCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.projectsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Wiring
// =============================================================================

// loadConfig reads the configuration named by --config.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	if c.noCache {
		cfg.Cache.Backend = config.BackendNone
	}
	return cfg, nil
}

func loadRegistry(cfg config.Config) (*projects.Registry, error) {
	if cfg.Registry == "" {
		return projects.Default(), nil
	}
	return projects.Load(cfg.Registry)
}

// app bundles everything a command needs to collect statuses.
type app struct {
	cfg       config.Config
	store     cache.Store
	github    *github.Client
	collector *status.Collector
}

func (a *app) Close() error { return a.store.Close() }

// newApp loads the configuration and wires the store, GitHub client and
// collector. The caller must Close the result.
func (c *CLI) newApp(ctx context.Context) (*app, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	reg, err := loadRegistry(cfg)
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}

	logger := loggerFromContext(ctx)
	store, err := cache.Open(ctx, cfg.Cache)
	if err != nil {
		return nil, err
	}
	logger.Debug("cache opened", "backend", cfg.Cache.Backend)

	gh := github.NewClient(store, github.Config{
		UserAgent: cfg.HTTP.UserAgent,
		Retries:   cfg.HTTP.Retries,
	},
		httputil.WithHTTPClient(&http.Client{Timeout: cfg.HTTP.Timeout}),
		httputil.WithLogger(logger),
	)

	return &app{
		cfg:    cfg,
		store:  store,
		github: gh,
		collector: status.NewCollector(reg, gh,
			status.WithConcurrency(cfg.HTTP.Concurrency),
			status.WithLogger(logger),
		),
	}, nil
}
