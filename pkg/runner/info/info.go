// Package info reports where the reader finds its site, configuration and
// preferences.
package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/storyreader/pkg/catalog"
	"tableflip.dev/storyreader/pkg/config"
	"tableflip.dev/storyreader/pkg/site"
)

type Info struct {
	Config *config.Config
	Source site.Source
	Out    io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}
	if n.Config == nil {
		return errors.New("can not report, no configuration")
	}

	if override := os.Getenv("STORYREADER_CONFIG_PATH"); override != "" {
		fmt.Fprintln(out, "STORYREADER_CONFIG_PATH found on env, using", override)
	} else {
		fmt.Fprintln(out, "STORYREADER_CONFIG_PATH env var not set")
	}

	fmt.Fprintln(out, "Site:        ", n.Config.Site)
	fmt.Fprintln(out, "Catalog:     ", n.Config.Catalog)
	fmt.Fprintln(out, "Preferences: ", n.Config.PrefsPath)
	if n.Config.LogFile != "" {
		fmt.Fprintln(out, "Log file:    ", n.Config.LogFile)
	}

	if n.Source == nil {
		return nil
	}
	cat, err := catalog.Load(ctx, n.Source, n.Config.Catalog)
	if err != nil {
		fmt.Fprintln(out, "Stories:      unavailable:", err)
		return nil
	}
	fmt.Fprintln(out, "Stories:     ", cat.Len())
	return nil
}
