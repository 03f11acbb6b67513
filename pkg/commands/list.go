package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/storyreader/pkg/commands/options"
	"tableflip.dev/storyreader/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	so := &options.SiteOptions{}
	var showPath bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "list the stories of a site in reading order",
		Example: `
storyreader list
storyreader list --paths
storyreader list --json --site ./public
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(so, "stderr")
			if err != nil {
				return output.HandleError(err)
			}
			l := list.List{
				Source:      e.src,
				CatalogPath: e.cfg.Catalog,
				JSON:        output.JSON,
				ShowPath:    showPath,
				Out:         cmd.OutOrStdout(),
			}
			return output.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddSiteArgs(cmd, so)
	options.AddOutputArg(cmd, output)
	cmd.Flags().BoolVar(&showPath, "paths", false, "Show the site path of each story.")

	topLevel.AddCommand(cmd)
}
