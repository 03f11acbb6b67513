package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/storyreader/pkg/commands/options"
	runner "tableflip.dev/storyreader/pkg/runner/serve"
	"tableflip.dev/storyreader/pkg/serve"
)

func addServe(topLevel *cobra.Command) {
	so := &options.SiteOptions{}
	var (
		addr  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "serve a local story site over HTTP",
		Example: `
storyreader serve ./public
storyreader serve --addr :9000
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) > 0 {
				so.Site = args[0]
			}
			e, err := loadEnv(so, "stderr")
			if err != nil {
				return err
			}
			defer func() { _ = e.log.Sync() }()

			srv := serve.New(serve.Config{Addr: addr, CatalogPath: e.cfg.Catalog}, e.src, e.fetcher, e.log)
			s := runner.Serve{Server: srv}
			if watch {
				s.Watch = 200 * time.Millisecond
			}
			return s.Do(cmd.Context())
		},
	}

	options.AddSiteArgs(cmd, so)
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "Address to listen on.")
	cmd.Flags().BoolVar(&watch, "watch", true, "Drop cached stories when files in a local site change.")

	topLevel.AddCommand(cmd)
}
