package content

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tableflip.dev/storyreader/pkg/site"
)

// FetchError is a failure to retrieve a content document. Status is the
// non-success status code, or 0 for network-level failures.
type FetchError struct {
	Path   string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("HTTP error! status: %d", e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.Path, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// prefetchLimit bounds concurrent warm-up fetches.
const prefetchLimit = 4

// Fetcher retrieves story documents from a site and extracts their
// content. Successful extractions are kept in an LRU cache keyed by path.
type Fetcher struct {
	src   site.Source
	cache *lru.Cache[string, string]
	log   *zap.SugaredLogger
}

// NewFetcher returns a fetcher over src caching up to size fragments.
func NewFetcher(src site.Source, size int, log *zap.SugaredLogger) (*Fetcher, error) {
	if size <= 0 {
		size = 1
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("content: create cache: %w", err)
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Fetcher{src: src, cache: cache, log: log}, nil
}

// Fetch returns the extracted HTML fragment for path.
func (f *Fetcher) Fetch(ctx context.Context, path string) (string, error) {
	if frag, ok := f.cache.Get(path); ok {
		return frag, nil
	}
	raw, err := site.Read(ctx, f.src, path)
	if err != nil {
		return "", &FetchError{Path: path, Status: site.StatusOf(err), Err: err}
	}
	frag := Extract(string(raw))
	f.cache.Add(path, frag)
	return frag, nil
}

// Cached reports whether path is already in the cache.
func (f *Fetcher) Cached(path string) bool {
	return f.cache.Contains(path)
}

// Purge drops every cached fragment.
func (f *Fetcher) Purge() {
	f.cache.Purge()
}

// Prefetch warms the cache for paths concurrently. Failures are logged and
// do not stop the other fetches; the first one is returned.
func (f *Fetcher) Prefetch(ctx context.Context, paths ...string) error {
	var g errgroup.Group
	g.SetLimit(prefetchLimit)
	for _, p := range paths {
		if p == "" || f.cache.Contains(p) {
			continue
		}
		p := p
		g.Go(func() error {
			if _, err := f.Fetch(ctx, p); err != nil {
				f.log.Debugw("prefetch failed", "path", p, "error", err)
				return err
			}
			return nil
		})
	}
	return g.Wait()
}
