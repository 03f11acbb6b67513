package serve

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/storyreader/pkg/content"
	"tableflip.dev/storyreader/pkg/serve"
	"tableflip.dev/storyreader/pkg/site"
)

func TestServeStopsWithContext(t *testing.T) {
	src, err := site.NewDir(t.TempDir())
	if err != nil {
		t.Fatalf("site: %v", err)
	}
	f, err := content.NewFetcher(src, 1, nil)
	if err != nil {
		t.Fatalf("fetcher: %v", err)
	}
	s := Serve{Server: serve.New(serve.Config{Addr: "127.0.0.1:0"}, src, f, nil), Watch: 10 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Do(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}
