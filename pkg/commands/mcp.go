package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/storyreader/pkg/commands/options"
	"tableflip.dev/storyreader/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	so := &options.SiteOptions{}
	var (
		transport string
		addr      string
		path      string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that lets assistants list, search and read the
stories of a site through the Model Context Protocol.`,
		Example: `
storyreader mcp --transport stdio
storyreader mcp --site https://example.com/stories/ --addr 127.0.0.1:0
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			t := mcp.Transport(strings.ToLower(strings.TrimSpace(transport)))
			if t != mcp.TransportHTTP && t != mcp.TransportStdio {
				return fmt.Errorf("unsupported transport %q (expected http or stdio)", transport)
			}
			e, err := loadEnv(so, "stderr")
			if err != nil {
				return err
			}
			defer func() { _ = e.log.Sync() }()

			r := mcp.Runner{
				Source:      e.src,
				Fetcher:     e.fetcher,
				CatalogPath: e.cfg.Catalog,
				Version:     version,
				Transport:   t,
				Addr:        addr,
				Path:        path,
				Listening: func(url string) {
					e.log.Infow("mcp listening", "url", url)
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), url)
				},
			}
			return r.Do(cmd.Context())
		},
	}

	options.AddSiteArgs(cmd, so)
	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportHTTP), "Transport to use: http or stdio.")
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "Address the HTTP transport listens on.")
	cmd.Flags().StringVar(&path, "path", "/mcp", "HTTP endpoint path.")

	topLevel.AddCommand(cmd)
}
