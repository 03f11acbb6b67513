package commands

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/storyreader/pkg/catalog"
	"tableflip.dev/storyreader/pkg/commands/options"
	"tableflip.dev/storyreader/pkg/site"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(storyreader completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(storyreader completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// storyCompletions lists the story ids starting with toComplete. A site
// that is slow or unreachable yields no suggestions.
func storyCompletions(so *options.SiteOptions, toComplete string) []string {
	cfg, err := loadConfig(so)
	if err != nil {
		return nil
	}
	src, err := site.New(cfg.Site)
	if err != nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	cat, err := catalog.Load(ctx, src, cfg.Catalog)
	if err != nil {
		return nil
	}
	ids := make([]string, 0, cat.Len())
	for _, s := range cat.Stories() {
		if strings.HasPrefix(s.ID, toComplete) {
			ids = append(ids, s.ID)
		}
	}
	return ids
}
