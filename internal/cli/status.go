package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rokucommunity/release-dashboard/pkg/status"
)

// statusOptions holds flags for the status command.
type statusOptions struct {
	jsonOut  bool
	project  string
	outdated bool
}

// statusCommand creates the status command.
func (c *CLI) statusCommand() *cobra.Command {
	var opts statusOptions

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which projects need a release",
		Long: `Fetch every registry project from GitHub and report its release state.

A project needs a release when it has commits since its latest release, when
a dependency it was released with has a newer version, or when it has never
been released. Projects are listed in release order.`,
		Example: `  release-dashboard status
  release-dashboard status --outdated
  release-dashboard status --project brighterscript@master --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStatus(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print statuses as JSON")
	cmd.Flags().StringVarP(&opts.project, "project", "p", "", "only show this project key (name@releaseLine)")
	cmd.Flags().BoolVar(&opts.outdated, "outdated", false, "only show projects that need a release")
	return cmd
}

func (c *CLI) runStatus(ctx context.Context, opts statusOptions) error {
	a, err := c.newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if opts.project != "" {
		if _, ok := a.collector.Registry().Get(opts.project); !ok {
			return fmt.Errorf("unknown project %q", opts.project)
		}
	}

	statuses, err := collect(ctx, a.collector, !opts.jsonOut)
	if err != nil {
		return err
	}
	statuses = filterStatuses(statuses, opts.project, opts.outdated)

	if opts.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	fmt.Println(statusTable(statuses))
	upToDate, updates, failed := summary(statuses)
	switch {
	case failed > 0:
		printWarning("%d up to date, %d need a release, %d failed", upToDate, updates, failed)
	case updates > 0:
		printInfo("%d up to date, %d need a release", upToDate, updates)
	default:
		printSuccess("All %d projects are up to date", upToDate)
	}
	return nil
}

// collect runs the collector, showing a spinner when interactive is set.
func collect(ctx context.Context, collector *status.Collector, interactive bool) ([]*status.ProjectStatus, error) {
	prog := newProgress(loggerFromContext(ctx))
	if !interactive {
		statuses, err := collector.Collect(ctx, nil)
		if err != nil {
			return nil, err
		}
		prog.done(fmt.Sprintf("Collected %d projects", len(statuses)))
		return statuses, nil
	}

	spinner := newSpinner(ctx, "Fetching release data...")
	spinner.Start()
	statuses, err := collector.Collect(ctx, func(done, total int, s *status.ProjectStatus) {
		spinner.SetMessage("Fetched %d/%d %s", done, total, s.Key())
	})
	switch {
	case err != nil && spinner.Cancelled():
		spinner.StopWithError("Cancelled")
		return nil, err
	case err != nil:
		spinner.StopWithError("Failed to fetch release data")
		return nil, err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Collected %d projects (%s)", len(statuses), prog.elapsed()))
	return statuses, nil
}

// filterStatuses keeps statuses matching key (when set) and, with
// onlyOutdated, those that need a release.
func filterStatuses(statuses []*status.ProjectStatus, key string, onlyOutdated bool) []*status.ProjectStatus {
	out := make([]*status.ProjectStatus, 0, len(statuses))
	for _, s := range statuses {
		if key != "" && s.Key() != key {
			continue
		}
		if onlyOutdated && !s.UpdateRequired {
			continue
		}
		out = append(out, s)
	}
	return out
}
