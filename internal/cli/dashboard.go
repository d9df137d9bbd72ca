package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rokucommunity/release-dashboard/pkg/status"
)

// dashboardCommand creates the interactive dashboard command.
func (c *CLI) dashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Browse release status interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := c.newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			collect := func(ctx context.Context) ([]*status.ProjectStatus, error) {
				return a.collector.Collect(ctx, nil)
			}
			m, err := tea.NewProgram(NewDashboardModel(ctx, collect), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil {
				return fmt.Errorf("dashboard: %w", err)
			}
			if dm, ok := m.(DashboardModel); ok && dm.Err != nil {
				return dm.Err
			}
			return nil
		},
	}
}
