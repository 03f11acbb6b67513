// Package demo writes a small sample story site to disk.
package demo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"tableflip.dev/storyreader/pkg/catalog"
)

type page struct {
	story catalog.Story
	body  string
}

func staticDemo() []page {
	return []page{
		{catalog.Story{ID: "home", Title: "Home"},
			`<h1>Welcome</h1>
<p>This is a sample site. Use <strong>[</strong> and <strong>]</strong> to move between stories.</p>`},
		{catalog.Story{ID: "the-lighthouse", Title: "The Lighthouse"},
			`<h1>The Lighthouse</h1>
<p>The keeper counted the flashes every night, and every night there was one too many.</p>
<p>On the ninth night he climbed the stairs to find out why.</p>`},
		{catalog.Story{ID: "salt-roads", Title: "Salt Roads"},
			`<h1>Salt Roads</h1>
<p>Nobody remembered who paved the first road with salt. Everyone remembered who tried to sweep it away.</p>
<blockquote><p>Roads remember feet.</p></blockquote>`},
		{catalog.Story{ID: "afterword", Title: "Afterword", Path: "extras/afterword.html"},
			`<h2>Afterword</h2>
<ul><li>Stories are listed in <code>stories.json</code>.</li><li>Each one lives at <code>stories/&lt;id&gt;.html</code> unless it names a path.</li></ul>`},
	}
}

const notFound = `<h1>404</h1>
<p>That story is not in this collection.</p>`

func wrap(title, body string) string {
	return fmt.Sprintf(`<!doctype html>
<html><head><meta charset="utf-8"><title>%s</title></head>
<body><nav>menu</nav><div id="content">
%s
</div></body></html>
`, title, body)
}

// Demo writes the sample site into Dir. Existing files are only replaced
// when Force is set.
type Demo struct {
	Dir   string
	Force bool
	Out   io.Writer
}

func (d *Demo) Do(ctx context.Context) error {
	if d.Dir == "" {
		return errors.New("can not write demo, no directory")
	}
	out := d.Out
	if out == nil {
		out = color.Output
	}

	pages := staticDemo()
	files := make(map[string]string, len(pages)+2)
	doc := struct {
		Stories []catalog.Story `json:"stories"`
	}{}
	for _, p := range pages {
		doc.Stories = append(doc.Stories, p.story)
		files[p.story.ContentPath()] = wrap(p.story.Title, p.body)
	}
	files["stories/404.html"] = wrap("Not Found", notFound)

	idx, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	files[catalog.DefaultPath] = string(idx) + "\n"

	if !d.Force {
		for name := range files {
			if _, err := os.Stat(filepath.Join(d.Dir, filepath.FromSlash(name))); err == nil {
				return fmt.Errorf("%s already exists, use --force to replace it", name)
			}
		}
	}

	for name, body := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		p := filepath.Join(d.Dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			return err
		}
	}

	green := color.New(color.FgGreen)
	_, _ = green.Fprintf(out, "wrote %d stories to %s\n", len(pages), d.Dir)
	return nil
}
