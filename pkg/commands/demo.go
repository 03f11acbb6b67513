package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/storyreader/pkg/runner/demo"
)

func addDemo(topLevel *cobra.Command) {
	var force bool

	cmd := &cobra.Command{
		Use:   "demo [dir]",
		Short: "write a sample story site",
		Example: `
storyreader demo ./sample
storyreader ui --site ./sample
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			d := demo.Demo{Dir: ".", Force: force, Out: cmd.OutOrStdout()}
			if len(args) > 0 {
				d.Dir = args[0]
			}
			return d.Do(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Replace files that already exist.")

	topLevel.AddCommand(cmd)
}
