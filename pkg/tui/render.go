package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/storyreader/pkg/content"
)

const (
	// minColumn is the narrowest reading column the font size may produce.
	minColumn = 20
	// restMeasure is the share of the pane, in percent, the column takes at
	// the base size. The rest is margin that smaller fonts give back.
	restMeasure = 85
)

// markdownRenderer converts extracted story HTML into styled terminal text.
// Renderers are rebuilt only when the wrap width changes.
type markdownRenderer struct {
	style string
	wrap  int
	r     *glamour.TermRenderer
}

func newMarkdownRenderer(style string) *markdownRenderer {
	return &markdownRenderer{style: style}
}

// Render returns html as terminal text wrapped at width. When glamour
// fails the plain Markdown is wrapped instead.
func (mr *markdownRenderer) Render(html string, width int) string {
	md, err := content.Markdown(html)
	if err != nil {
		return wordwrap.String(html, width)
	}
	if mr.r == nil || mr.wrap != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(mr.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return wordwrap.String(md, width)
		}
		mr.r, mr.wrap = r, width
	}
	out, err := mr.r.Render(md)
	if err != nil {
		return wordwrap.String(md, width)
	}
	return strings.TrimRight(out, "\n")
}

// readingColumn maps a font size onto a column width: a larger font means
// fewer characters per line, a smaller one spends the margins.
func readingColumn(available int, base, size float64) int {
	if available <= minColumn {
		return max(available, 1)
	}
	if base <= 0 || size <= 0 {
		return available
	}
	rest := float64(available * restMeasure / 100)
	w := int(math.Round(rest * base / size))
	if w < minColumn {
		w = minColumn
	}
	if w > available {
		w = available
	}
	return w
}
