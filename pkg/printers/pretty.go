package printers

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/storyreader/pkg/catalog"
)

type PrettyPrint struct {
	ShowPath bool
	// Active marks one story id in listings.
	Active string
	Out    io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " story")
	default:
		_, _ = c.Fprintln(pp.out(), " stories")
	}
}

// Stories prints one row per story in catalog order.
func (pp *PrettyPrint) Stories(stories ...catalog.Story) {
	if len(stories) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Faint)
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	for i, s := range stories {
		marker := " "
		title := s.Title
		if s.ID == pp.Active {
			marker = "▸"
			title = bold.Sprint(title)
		}
		row := []interface{}{fmt.Sprintf("%s %d.", marker, i+1), y.Sprint(s.ID), title}
		if pp.ShowPath {
			row = append(row, color.New(color.Faint).Sprint(s.ContentPath()))
		}
		tbl.AddRow(row...)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out(), "")
}
