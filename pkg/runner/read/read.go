// Package read prints one story to the terminal.
package read

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"

	"tableflip.dev/storyreader/pkg/catalog"
	"tableflip.dev/storyreader/pkg/content"
	"tableflip.dev/storyreader/pkg/site"
)

// Read fetches a story's content and prints it as Markdown, styled with
// glamour when Pretty is set.
type Read struct {
	Source      site.Source
	Fetcher     *content.Fetcher
	CatalogPath string
	ID          string

	Pretty bool
	Style  string
	Width  int
	Out    io.Writer
}

func (r *Read) Do(ctx context.Context) error {
	if r.Source == nil || r.Fetcher == nil {
		return errors.New("can not read, no site")
	}
	out := r.Out
	if out == nil {
		out = color.Output
	}

	cat, err := catalog.Load(ctx, r.Source, r.CatalogPath)
	if err != nil {
		return err
	}
	story, ok := cat.Lookup(r.ID)
	if !ok {
		return fmt.Errorf("no story %q in %s", r.ID, r.Source)
	}

	html, err := r.Fetcher.Fetch(ctx, story.ContentPath())
	if err != nil {
		return fmt.Errorf("failed to load story %q: %w", story.ID, err)
	}
	md, err := content.Markdown(html)
	if err != nil {
		return fmt.Errorf("convert story %q: %w", story.ID, err)
	}

	if !r.Pretty {
		_, err = fmt.Fprintf(out, "# %s\n\n%s\n", story.Title, md)
		return err
	}

	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(r.style())}
	if r.Width > 0 {
		opts = append(opts, glamour.WithWordWrap(r.Width))
	}
	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return err
	}
	rendered, err := renderer.Render("# " + story.Title + "\n\n" + md)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}

func (r *Read) style() string {
	if r.Style == "" {
		return "dark"
	}
	return r.Style
}
