package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/storyreader/pkg/commands/options"
	"tableflip.dev/storyreader/pkg/prefs"
	"tableflip.dev/storyreader/pkg/reader"
	"tableflip.dev/storyreader/pkg/runner/ui"
	"tableflip.dev/storyreader/pkg/tui"
)

func addUI(topLevel *cobra.Command) {
	so := &options.SiteOptions{}
	ro := &options.ReaderOptions{}

	cmd := &cobra.Command{
		Use:   "ui [story]",
		Short: "open the story reader",
		Example: `
storyreader ui
storyreader ui chapter-3
storyreader ui --site https://example.com/stories/
`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return storyCompletions(so, toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(so, "")
			if err != nil {
				return err
			}
			defer func() { _ = e.log.Sync() }()

			store := e.readerPrefs(!ro.NoPersist)

			fragment := ""
			if len(args) > 0 {
				fragment = reader.Fragment(args[0])
			}

			i := ui.UI{
				Deps: tui.Deps{
					Source:  e.src,
					Fetcher: e.fetcher,
					Prefs:   prefs.New(store, e.log),
					Reader:  e.readerOptions(),
					Log:     e.log,
				},
				Options: tui.Options{
					Fragment:       fragment,
					SearchDebounce: e.cfg.SearchDebounce,
					Scramble:       e.cfg.TitleScramble && !ro.NoScramble,
				},
				Store: store,
				Log:   e.log,
			}
			return i.Do(cmd.Context())
		},
	}

	options.AddSiteArgs(cmd, so)
	options.AddReaderArgs(cmd, ro)

	topLevel.AddCommand(cmd)
}
