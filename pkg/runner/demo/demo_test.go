package demo

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tableflip.dev/storyreader/pkg/catalog"
	"tableflip.dev/storyreader/pkg/content"
	"tableflip.dev/storyreader/pkg/site"
)

func TestDemoWritesReadableSite(t *testing.T) {
	dir := t.TempDir()
	out := new(bytes.Buffer)
	d := Demo{Dir: dir, Out: out}
	if err := d.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !strings.Contains(out.String(), "wrote 4 stories") {
		t.Fatalf("unexpected output %q", out.String())
	}

	src, err := site.NewDir(dir)
	if err != nil {
		t.Fatalf("site: %v", err)
	}
	cat, err := catalog.Load(context.Background(), src, catalog.DefaultPath)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if cat.Len() != 4 || cat.Stories()[0].ID != "home" {
		t.Fatalf("unexpected catalog %+v", cat.Stories())
	}

	f, err := content.NewFetcher(src, 8, nil)
	if err != nil {
		t.Fatalf("fetcher: %v", err)
	}
	for _, st := range cat.Stories() {
		html, err := f.Fetch(context.Background(), st.ContentPath())
		if err != nil {
			t.Fatalf("fetch %s: %v", st.ID, err)
		}
		if strings.Contains(html, "menu") {
			t.Fatalf("expected %s to extract past the nav, got %q", st.ID, html)
		}
	}
	if _, err := f.Fetch(context.Background(), "stories/404.html"); err != nil {
		t.Fatalf("expected a not found page: %v", err)
	}
}

func TestDemoRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	d := Demo{Dir: dir, Out: new(bytes.Buffer)}
	if err := d.Do(context.Background()); err != nil {
		t.Fatalf("first Do: %v", err)
	}
	if err := d.Do(context.Background()); err == nil || !strings.Contains(err.Error(), "--force") {
		t.Fatalf("expected an overwrite error, got %v", err)
	}
	d.Force = true
	if err := d.Do(context.Background()); err != nil {
		t.Fatalf("forced Do: %v", err)
	}
}
