package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apierrors "github.com/rokucommunity/release-dashboard/pkg/errors"
	"github.com/rokucommunity/release-dashboard/pkg/render"
	"github.com/rokucommunity/release-dashboard/pkg/status"
)

// graphOptions holds flags for the graph command.
type graphOptions struct {
	output   string
	format   string
	noStatus bool
	detailed bool
}

// graphCommand creates the graph rendering command.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOptions

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the project dependency graph",
		Long: `Render the registry as a dependency graph. Each project is colored by its
release state unless --no-status is given.`,
		Example: `  release-dashboard graph -o releases.svg
  release-dashboard graph --format dot --no-status`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apierrors.ValidateFormat(opts.format, "svg", "dot"); err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := c.newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			var statuses []*status.ProjectStatus
			if !opts.noStatus {
				statuses, err = collect(ctx, a.collector, opts.output != "")
				if err != nil {
					return err
				}
			}

			dot := render.ToDOT(a.collector.Registry(), statuses, render.Options{Detailed: opts.detailed})
			out := []byte(dot)
			if opts.format == "svg" {
				if out, err = render.RenderSVG(ctx, dot); err != nil {
					return err
				}
			}

			if opts.output == "" {
				_, err := os.Stdout.Write(out)
				return err
			}
			if err := os.WriteFile(opts.output, out, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", opts.output, err)
			}
			printSuccess("Wrote %s", opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "svg", "output format: svg or dot")
	cmd.Flags().BoolVar(&opts.noStatus, "no-status", false, "skip fetching release data")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", true, "include versions and state in node labels")
	return cmd
}
