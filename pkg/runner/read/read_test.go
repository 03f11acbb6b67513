package read

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"tableflip.dev/storyreader/pkg/content"
	"tableflip.dev/storyreader/pkg/site"
)

type fakeSource map[string]string

func (f fakeSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	body, ok := f[name]
	if !ok {
		return nil, &site.StatusError{Path: name, Status: http.StatusNotFound}
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func (f fakeSource) String() string { return "fake" }

func newRead(t *testing.T, id string, out io.Writer) *Read {
	t.Helper()
	src := fakeSource{
		"stories.json":      `{"stories":[{"id":"home","title":"Home"},{"id":"ch1","title":"Chapter One"}]}`,
		"stories/home.html": `<html><body><div class="story-content"><h2>Arrival</h2><p>It <em>began</em> here.</p></div></body></html>`,
	}
	f, err := content.NewFetcher(src, 2, nil)
	if err != nil {
		t.Fatalf("fetcher: %v", err)
	}
	return &Read{Source: src, Fetcher: f, ID: id, Out: out}
}

func TestReadPlainMarkdown(t *testing.T) {
	var out bytes.Buffer
	if err := newRead(t, "home", &out).Do(context.Background()); err != nil {
		t.Fatalf("read: %v", err)
	}
	got := out.String()
	for _, want := range []string{"# Home", "## Arrival", "_began_"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestReadPretty(t *testing.T) {
	var out bytes.Buffer
	r := newRead(t, "home", &out)
	r.Pretty = true
	r.Style = "notty"
	r.Width = 60
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(out.String(), "Arrival") {
		t.Fatalf("expected rendered heading:\n%s", out.String())
	}
}

func TestReadFailures(t *testing.T) {
	if err := newRead(t, "nope", io.Discard).Do(context.Background()); err == nil || !strings.Contains(err.Error(), "nope") {
		t.Fatalf("expected unknown story error, got %v", err)
	}

	err := newRead(t, "ch1", io.Discard).Do(context.Background())
	var fe *content.FetchError
	if !errors.As(err, &fe) || fe.Status != http.StatusNotFound {
		t.Fatalf("expected 404 fetch error, got %v", err)
	}
}
