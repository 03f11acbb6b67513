package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/storyreader/pkg/commands/options"
	"tableflip.dev/storyreader/pkg/runner/info"
	"tableflip.dev/storyreader/pkg/site"
)

func addInfo(topLevel *cobra.Command) {
	so := &options.SiteOptions{}

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the site and where preferences are stored.",
		Example: `
storyreader info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := loadConfig(so)
			if err != nil {
				return err
			}
			s := info.Info{Config: cfg, Out: cmd.OutOrStdout()}
			// An unreachable site is reported, not fatal.
			if src, err := site.New(cfg.Site); err == nil {
				s.Source = src
			}
			err = s.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddSiteArgs(cmd, so)

	topLevel.AddCommand(cmd)
}
