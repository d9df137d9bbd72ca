package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rokucommunity/release-dashboard/pkg/cache"
	"github.com/rokucommunity/release-dashboard/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the HTTP response cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached HTTP responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			store, err := cache.Open(cmd.Context(), cfg.Cache)
			if err != nil {
				return err
			}
			defer store.Close()

			count, err := store.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", count)
			printDetail("Backend: %s", describeCache(cfg.Cache))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached responses are stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fmt.Println(describeCache(cfg.Cache))
			return nil
		},
	}
}

// describeCache names the location of the configured store.
func describeCache(cfg config.Cache) string {
	switch cfg.Backend {
	case config.BackendFile, "":
		dir, err := cfg.CacheDir()
		if err != nil {
			return "file (unknown directory)"
		}
		return dir
	case config.BackendRedis:
		return fmt.Sprintf("redis://%s/%d (prefix %q)", cfg.Redis.Addr, cfg.Redis.DB, cfg.Redis.Prefix)
	case config.BackendMongo:
		return fmt.Sprintf("mongo %s.%s", cfg.Mongo.Database, cfg.Mongo.Collection)
	default:
		return cfg.Backend
	}
}
