package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// projectsCommand creates the registry listing command.
func (c *CLI) projectsCommand() *cobra.Command {
	var order bool

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List registry projects",
		Long: `List the projects in the registry with their dependencies. With --order the
projects are grouped into release tiers: every project in a tier depends only
on projects in earlier tiers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			reg, err := loadRegistry(cfg)
			if err != nil {
				return fmt.Errorf("load registry: %w", err)
			}

			if order {
				for i, tier := range reg.ReleaseOrder() {
					fmt.Println(StyleTitle.Render(fmt.Sprintf("Tier %d", i+1)))
					for _, key := range tier {
						fmt.Println("  " + key)
					}
				}
				return nil
			}

			for _, p := range reg.Projects() {
				printKeyValue(p.Key(), p.RepoURL())
				if deps := reg.DependencyKeys(p.Key()); len(deps) > 0 {
					printDetail("%s %s", iconArrow, strings.Join(deps, ", "))
				}
			}
			printInfo("%d projects", reg.Len())
			return nil
		},
	}

	cmd.Flags().BoolVar(&order, "order", false, "group projects into release tiers")
	return cmd
}
