package site

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestHTTPOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/site/stories.json":
			_, _ = w.Write([]byte(`{"stories":[]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src, err := NewHTTP(srv.URL+"/site", srv.Client())
	if err != nil {
		t.Fatalf("new http: %v", err)
	}

	b, err := Read(context.Background(), src, "stories.json")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != `{"stories":[]}` {
		t.Fatalf("unexpected body %q", b)
	}

	_, err = Read(context.Background(), src, "stories/missing.html")
	if got := StatusOf(err); got != http.StatusNotFound {
		t.Fatalf("expected 404, got %d (%v)", got, err)
	}
}

func TestHTTPNetworkFailureHasNoStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	src, err := NewHTTP(url, nil)
	if err != nil {
		t.Fatalf("new http: %v", err)
	}
	_, err = Read(context.Background(), src, "stories.json")
	if err == nil {
		t.Fatalf("expected error from closed server")
	}
	if StatusOf(err) != 0 {
		t.Fatalf("network failure should not carry a status: %v", err)
	}
}

func TestDirOpen(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "stories"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "stories", "ch1.html"), []byte("<p>hi</p>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	src, err := New(root)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, ok := src.(*Dir); !ok {
		t.Fatalf("expected directory source, got %T", src)
	}

	b, err := Read(context.Background(), src, "/stories/ch1.html")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "<p>hi</p>" {
		t.Fatalf("unexpected body %q", b)
	}

	_, err = Read(context.Background(), src, "stories/nope.html")
	var se *StatusError
	if !errors.As(err, &se) || se.Status != http.StatusNotFound {
		t.Fatalf("expected 404 status error, got %v", err)
	}

	_, err = Read(context.Background(), src, "stories")
	if StatusOf(err) != http.StatusNotFound {
		t.Fatalf("directories should read as not found, got %v", err)
	}
}
