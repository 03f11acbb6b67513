package commands

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"tableflip.dev/storyreader/pkg/catalog"
	"tableflip.dev/storyreader/pkg/commands/options"
	"tableflip.dev/storyreader/pkg/runner/read"
)

func addRead(topLevel *cobra.Command) {
	so := &options.SiteOptions{}
	i := &options.InteractiveOptions{}
	var (
		plain bool
		width int
	)

	cmd := &cobra.Command{
		Use:   "read [story]",
		Short: "print one story as Markdown",
		Example: `
storyreader read chapter-3
storyreader read -i
storyreader read chapter-3 --plain > chapter-3.md
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if i.Interactive {
				return cobra.NoArgs(cmd, args)
			}
			if len(args) != 1 {
				return errors.New("expected a story id, or -i to choose one")
			}
			return nil
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return storyCompletions(so, toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(so, "stderr")
			if err != nil {
				return err
			}

			var id string
			if i.Interactive {
				cat, err := catalog.Load(cmd.Context(), e.src, e.cfg.Catalog)
				if err != nil {
					return err
				}
				story, err := pickStory(cmd, cat.Stories())
				if err != nil {
					return err
				}
				id = story.ID
			} else {
				id = args[0]
			}

			style := "light"
			if termenv.HasDarkBackground() {
				style = "dark"
			}
			r := read.Read{
				Source:      e.src,
				Fetcher:     e.fetcher,
				CatalogPath: e.cfg.Catalog,
				ID:          id,
				Pretty:      !plain && isatty.IsTerminal(os.Stdout.Fd()),
				Style:       style,
				Width:       width,
				Out:         cmd.OutOrStdout(),
			}
			return r.Do(cmd.Context())
		},
	}

	options.AddSiteArgs(cmd, so)
	options.InteractiveArgs(cmd, i)
	cmd.Flags().BoolVar(&plain, "plain", false, "Print raw Markdown even on a terminal.")
	cmd.Flags().IntVarP(&width, "width", "w", 80, "Wrap styled output at this many columns.")

	topLevel.AddCommand(cmd)
}
