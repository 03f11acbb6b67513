package serve

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"tableflip.dev/storyreader/pkg/debounce"
	"tableflip.dev/storyreader/pkg/site"
)

// WatchSite purges the content cache once files under a local site stop
// changing for quiet, so edits show up on the next request. Remote sites
// are not watched. The watcher stops with ctx.
func (s *Server) WatchSite(ctx context.Context, quiet time.Duration) error {
	dir, ok := s.src.(*site.Dir)
	if !ok {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("serve: create watcher: %w", err)
	}

	// fsnotify does not recurse.
	err = filepath.WalkDir(dir.Root(), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
	if err != nil {
		_ = watcher.Close()
		return fmt.Errorf("serve: watch %s: %w", dir.Root(), err)
	}

	purge := debounce.New(quiet, func(name string) {
		s.fetcher.Purge()
		s.log.Infow("site changed, cache purged", "last", name)
	})

	go func() {
		defer func() { _ = watcher.Close() }()
		defer purge.Cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Events may have been lost; don't hold back what we have.
				s.log.Warnw("site watch", "error", err)
				purge.Flush()
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&fsnotify.Create != 0 {
					if fi, err := os.Stat(evt.Name); err == nil && fi.IsDir() {
						_ = watcher.Add(evt.Name)
					}
				}
				purge.Trigger(evt.Name)
			}
		}
	}()
	return nil
}
