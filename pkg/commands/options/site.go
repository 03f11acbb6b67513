package options

import (
	"github.com/spf13/cobra"
)

// SiteOptions overrides where stories are read from.
type SiteOptions struct {
	Site    string
	Catalog string
}

func AddSiteArgs(cmd *cobra.Command, o *SiteOptions) {
	cmd.Flags().StringVarP(&o.Site, "site", "s", "",
		"Story site: a URL or a local directory. Overrides the config file.")
	cmd.Flags().StringVar(&o.Catalog, "catalog", "",
		"Catalog path within the site. Overrides the config file.")
}

// ReaderOptions tunes the interactive reader.
type ReaderOptions struct {
	NoPersist  bool
	NoScramble bool
}

func AddReaderArgs(cmd *cobra.Command, o *ReaderOptions) {
	cmd.Flags().BoolVar(&o.NoPersist, "no-persist", false,
		"Keep preferences in memory for this session only.")
	cmd.Flags().BoolVar(&o.NoScramble, "no-scramble", false,
		"Swap titles instantly instead of animating them.")
}
