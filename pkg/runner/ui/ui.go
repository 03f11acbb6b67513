package ui

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"tableflip.dev/storyreader/pkg/prefs"
	"tableflip.dev/storyreader/pkg/tui"
)

// UI runs the interactive reader.
type UI struct {
	Deps    tui.Deps
	Options tui.Options
	// Store is watched for changes made by other reader instances when it
	// lives on disk.
	Store prefs.Store
	Log   *zap.SugaredLogger
}

func (d *UI) Do(ctx context.Context) error {
	if d.Deps.Source == nil || d.Deps.Fetcher == nil {
		return errors.New("can not start the reader, no site")
	}
	if d.Log == nil {
		d.Log = zap.NewNop().Sugar()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if disk, ok := d.Store.(*prefs.Disk); ok && d.Options.Watch == nil {
		events, err := disk.Watch(ctx)
		if err != nil {
			d.Log.Warnw("preference watch unavailable", "path", disk.BasePath(), "error", err)
		} else {
			d.Options.Watch = events
		}
	}

	return tui.Run(ctx, d.Deps, d.Options)
}
