package theme

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme centralizes Lip Gloss styles for the reader UI.
type Theme struct {
	Header  HeaderTheme
	Sidebar SidebarTheme
	Content ContentTheme
	Footer  FooterTheme

	// Scramble colors glyphs of the title animation along a gradient from
	// ScrambleFrom (just started) to ScrambleTo (about to settle).
	ScrambleFrom colorful.Color
	ScrambleTo   colorful.Color
}

// HeaderTheme styles the title bar and prev/next buttons.
type HeaderTheme struct {
	Title       lipgloss.Style
	NavEnabled  lipgloss.Style
	NavDisabled lipgloss.Style
	Bar         lipgloss.Style
}

// SidebarTheme styles the story list.
type SidebarTheme struct {
	Frame    lipgloss.Style
	Item     lipgloss.Style
	Active   lipgloss.Style
	Cursor   lipgloss.Style
	Rail     lipgloss.Style
	Search   lipgloss.Style
	NoResult lipgloss.Style
}

// ContentTheme styles the reading pane and its loading/error states.
type ContentTheme struct {
	Frame        lipgloss.Style
	Dimmed       lipgloss.Style
	Loading      lipgloss.Style
	ErrorTitle   lipgloss.Style
	ErrorMessage lipgloss.Style
	ErrorAction  lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
}

// Default returns the built-in theme.
func Default() Theme {
	accent := lipgloss.Color("212")
	muted := lipgloss.Color("244")

	from, _ := colorful.Hex("#5A56E0")
	to, _ := colorful.Hex("#EE6FF8")

	return Theme{
		Header: HeaderTheme{
			Title:       lipgloss.NewStyle().Bold(true).Foreground(accent),
			NavEnabled:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			NavDisabled: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
			Bar: lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("238")),
		},
		Sidebar: SidebarTheme{
			Frame: lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderRight(true).
				BorderForeground(lipgloss.Color("238")).
				PaddingRight(1),
			Item:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			Active:   lipgloss.NewStyle().Foreground(accent).Bold(true),
			Cursor:   lipgloss.NewStyle().Reverse(true),
			Rail:     lipgloss.NewStyle().Foreground(muted),
			Search:   lipgloss.NewStyle().Foreground(accent),
			NoResult: lipgloss.NewStyle().Foreground(muted).Italic(true),
		},
		Content: ContentTheme{
			Frame:        lipgloss.NewStyle().PaddingLeft(1),
			Dimmed:       lipgloss.NewStyle().Faint(true),
			Loading:      lipgloss.NewStyle().Foreground(muted),
			ErrorTitle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
			ErrorMessage: lipgloss.NewStyle(),
			ErrorAction:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(muted),
		},
		ScrambleFrom: from,
		ScrambleTo:   to,
	}
}

// ScrambleStyle returns the style of a scrambling glyph at progress p in
// [0, 1].
func (t Theme) ScrambleStyle(p float64) lipgloss.Style {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	c := t.ScrambleFrom.BlendLab(t.ScrambleTo, p)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
}
