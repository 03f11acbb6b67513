package printers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/storyreader/pkg/catalog"
)

func TestStories(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = orig }()

	var buf bytes.Buffer
	pp := PrettyPrint{ShowPath: true, Active: "b", Out: &buf}
	pp.TitleWithCount("site", 2)
	pp.Stories(catalog.Story{ID: "a", Title: "Alpha"}, catalog.Story{ID: "b", Title: "Beta", Path: "x/b.html"})

	out := buf.String()
	for _, want := range []string{"site - 2 stories", "1.", "Alpha", "stories/a.html", "▸ 2.", "x/b.html"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in\n%s", want, out)
		}
	}
}

func TestStoriesEmpty(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = orig }()

	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.TitleWithCount("site", 1)
	pp.Stories()
	if out := buf.String(); !strings.Contains(out, "1 story") || !strings.Contains(out, "none") {
		t.Fatalf("unexpected output %q", out)
	}
}
