// Package serve runs the local site server until the context ends.
package serve

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/storyreader/pkg/serve"
)

const shutdownTimeout = 5 * time.Second

// Serve runs Server in the foreground.
type Serve struct {
	Server *serve.Server
	// Watch, when positive, purges cached stories this long after local
	// site files stop changing.
	Watch time.Duration
}

func (s *Serve) Do(ctx context.Context) error {
	if s.Server == nil {
		return errors.New("can not serve, no server")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if s.Watch > 0 {
		if err := s.Server.WatchSite(ctx, s.Watch); err != nil {
			return err
		}
	}

	errc := make(chan error, 1)
	go func() { errc <- s.Server.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Server.Shutdown(sctx); err != nil {
		return err
	}
	return <-errc
}
