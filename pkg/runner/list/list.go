// Package list prints a site's story catalog.
package list

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/storyreader/pkg/catalog"
	"tableflip.dev/storyreader/pkg/printers"
	"tableflip.dev/storyreader/pkg/site"
)

// List prints the catalog as a table, or as JSON.
type List struct {
	Source      site.Source
	CatalogPath string
	JSON        bool
	ShowPath    bool
	Out         io.Writer
}

type row struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

func (l *List) Do(ctx context.Context) error {
	if l.Source == nil {
		return errors.New("can not list, no site")
	}
	out := l.Out
	if out == nil {
		out = color.Output
	}

	cat, err := catalog.Load(ctx, l.Source, l.CatalogPath)
	if err != nil {
		return err
	}

	if l.JSON {
		rows := make([]row, 0, cat.Len())
		for _, s := range cat.Stories() {
			rows = append(rows, row{ID: s.ID, Title: s.Title, Path: s.ContentPath()})
		}
		b, err := json.Marshal(rows)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}

	pp := printers.PrettyPrint{ShowPath: l.ShowPath, Out: out}
	pp.NewLine()
	pp.TitleWithCount(l.Source.String(), cat.Len())
	pp.Stories(cat.Stories()...)
	return nil
}
