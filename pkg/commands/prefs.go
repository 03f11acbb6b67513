package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/storyreader/pkg/commands/options"
	runner "tableflip.dev/storyreader/pkg/runner/prefs"
)

func addPrefs(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "show or change saved reader preferences",
		Long: fmt.Sprintf("Preferences are shared by every reader on this machine.\n\nKeys: %s",
			strings.Join(runner.Known, ", ")),
		Example: `
storyreader prefs get
storyreader prefs set fontSize 2
storyreader prefs set sidebarState -i
storyreader prefs reset
`,
	}

	cmd.AddCommand(prefsCommand(runner.Get), prefsCommand(runner.Set), prefsCommand(runner.Reset))
	topLevel.AddCommand(cmd)
}

func prefsCommand(action runner.Action) *cobra.Command {
	i := &options.InteractiveOptions{}
	cmd := &cobra.Command{
		Use:       string(action),
		ValidArgs: runner.Known,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := loadConfig(nil)
			if err != nil {
				return err
			}
			e := &env{cfg: cfg}
			store, err := e.openPrefs(true)
			if err != nil {
				return err
			}

			p := runner.Prefs{
				Store:  store,
				Font:   cfg.Font,
				Action: action,
				Out:    cmd.OutOrStdout(),
			}
			if len(args) > 0 {
				p.Key = args[0]
			}
			if len(args) > 1 {
				p.Value = args[1]
			}
			if action == runner.Set && i.Interactive {
				check := p
				p.Value, err = promptValue(cmd, p.Key, func(v string) error {
					check.Value = v
					return check.Validate()
				})
				if err != nil {
					return err
				}
			}
			return p.Do(cmd.Context())
		},
	}

	switch action {
	case runner.Get:
		cmd.Use = "get [key]"
		cmd.Short = "print one or all preferences"
		cmd.Args = cobra.MaximumNArgs(1)
	case runner.Set:
		cmd.Use = "set key value"
		cmd.Short = "save a preference"
		cmd.Args = func(cmd *cobra.Command, args []string) error {
			if i.Interactive {
				return cobra.ExactArgs(1)(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		}
		options.InteractiveArgs(cmd, i)
	case runner.Reset:
		cmd.Short = "forget every preference"
		cmd.Args = cobra.NoArgs
	}
	return cmd
}
