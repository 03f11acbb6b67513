// Package site abstracts where a story website's resources live: a remote
// static host reached over HTTP, or a directory on disk.
package site

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"
)

// Source opens site resources by their site-relative path
// (e.g. "stories.json", "stories/ch1.html").
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	String() string
}

// StatusError reports a resource that answered with a non-success status.
type StatusError struct {
	Path   string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("site: %s: HTTP error! status: %d", e.Path, e.Status)
}

// StatusOf returns the status carried by err, or 0 when err is not a
// StatusError (network failures, parse errors).
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

// Read opens name and reads it fully.
func Read(ctx context.Context, src Source, name string) ([]byte, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("site: read %s: %w", name, err)
	}
	return b, nil
}

// New picks an HTTP source for http(s) URLs and a directory source otherwise.
func New(location string) (Source, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTP(location, nil)
	}
	return NewDir(location)
}

// HTTP fetches resources relative to a base URL.
type HTTP struct {
	base   *url.URL
	client *http.Client
}

// NewHTTP returns an HTTP source. A nil client gets a 15s timeout default.
func NewHTTP(base string, client *http.Client) (*HTTP, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("site: parse base url: %w", err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTP{base: u, client: client}, nil
}

func (h *HTTP) String() string { return h.base.String() }

// Open issues a GET for name resolved against the base URL.
func (h *HTTP) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	ref, err := url.Parse(strings.TrimPrefix(name, "/"))
	if err != nil {
		return nil, fmt.Errorf("site: parse path %q: %w", name, err)
	}
	target := h.base.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("site: build request: %w", err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("site: get %s: %w", name, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &StatusError{Path: name, Status: resp.StatusCode}
	}
	return resp.Body, nil
}

// Dir serves resources from a local directory. Missing files are reported
// as a 404 StatusError so callers treat both sources alike.
type Dir struct {
	root string
	fsys fs.FS
}

// NewDir returns a directory source rooted at root.
func NewDir(root string) (*Dir, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("site: open directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("site: %s is not a directory", root)
	}
	return &Dir{root: root, fsys: os.DirFS(root)}, nil
}

func (d *Dir) String() string { return d.root }

// Root is the directory this source reads from.
func (d *Dir) Root() string { return d.root }

// Open reads name relative to the root directory.
func (d *Dir) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean := path.Clean(strings.TrimPrefix(name, "/"))
	if i := strings.IndexAny(clean, "?#"); i >= 0 {
		clean = clean[:i]
	}
	if !fs.ValidPath(clean) {
		return nil, &StatusError{Path: name, Status: http.StatusBadRequest}
	}
	f, err := d.fsys.Open(clean)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &StatusError{Path: name, Status: http.StatusNotFound}
		}
		return nil, fmt.Errorf("site: open %s: %w", name, err)
	}
	if info, err := f.Stat(); err == nil && info.IsDir() {
		f.Close()
		return nil, &StatusError{Path: name, Status: http.StatusNotFound}
	}
	return f, nil
}
