package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rokucommunity/release-dashboard/internal/server"
)

// serveCommand creates the HTTP API command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr string
		ttl  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve release status over HTTP",
		Long: `Serve the dashboard API:

  GET /healthz              liveness check
  GET /api/projects         registry projects
  GET /api/projects/order   release tiers
  GET /api/status           release state (?project=key, ?refresh=true)
  GET /api/graph.svg        dependency graph (?format=dot, ?status=false)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := c.newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if addr == "" {
				addr = a.cfg.Server.Addr
			}
			srv := server.New(a.collector,
				server.WithLogger(loggerFromContext(ctx)),
				server.WithStatusTTL(ttl),
			)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().DurationVar(&ttl, "ttl", server.DefaultStatusTTL, "how long collected statuses are reused")
	return cmd
}
