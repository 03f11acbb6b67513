package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/storyreader/pkg/reader"
)

const (
	sidebarWidth  = 30
	railWidth     = 3
	headerHeight  = 2
	footerHeight  = 1
	navLabelWidth = 18
)

func (m *Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	return w, h
}

func (m *Model) sidebarWidth() int {
	sb := m.scr.sidebar
	switch {
	case !sb.Visible:
		return 0
	case sb.Collapsed:
		return railWidth
	}
	w, _ := m.size()
	if sb.Overlay && w-sidebarWidth < minColumn {
		return w
	}
	return min(sidebarWidth, w)
}

func (m *Model) contentWidth() int {
	w, _ := m.size()
	return w - m.sidebarWidth()
}

// layout sizes the viewport and re-renders the content pane.
func (m *Model) layout() {
	_, h := m.size()
	inner := max(m.contentWidth()-m.theme.Content.Frame.GetHorizontalFrameSize(), 1)
	m.viewport.Width = inner
	m.viewport.Height = max(h-headerHeight-footerHeight, 1)

	switch m.scr.pane {
	case paneContent:
		col := readingColumn(inner, m.ctrl.Options().Font.Base, m.scr.fontSize)
		m.viewport.SetContent(m.markdown.Render(m.scr.html, col))
		if m.scr.html != m.lastHTML {
			m.viewport.GotoTop()
			m.lastHTML = m.scr.html
		}
	case paneError:
		m.viewport.SetContent(m.errorText(inner))
		m.viewport.GotoTop()
		m.lastHTML = ""
	}
}

func (m *Model) errorText(width int) string {
	e := m.scr.err
	var b strings.Builder
	b.WriteString(m.theme.Content.ErrorTitle.Render(e.Title))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Content.ErrorMessage.Render(wordwrap.String(e.Message, width)))
	if e.Action != reader.ActionNone {
		keys := "enter"
		switch e.Action {
		case reader.ActionHome:
			keys = "enter/h"
		case reader.ActionReload:
			keys = "enter/r"
		}
		b.WriteString("\n\n")
		b.WriteString(m.theme.Content.ErrorAction.Render(fmt.Sprintf("[%s] %s", keys, e.Action)))
	}
	return b.String()
}

// View implements tea.Model.
func (m *Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		m.viewBody(),
		m.viewFooter(),
	)
}

func (m *Model) viewHeader() string {
	w, _ := m.size()
	nav := m.viewNav()
	title := truncate.StringWithTail(m.viewTitle(), uint(max(w-lipgloss.Width(nav)-2, 1)), "…")
	gap := max(w-lipgloss.Width(title)-lipgloss.Width(nav), 1)
	return m.theme.Header.Bar.Width(w).Render(title + strings.Repeat(" ", gap) + nav)
}

func (m *Model) viewTitle() string {
	if m.titleCells == nil {
		return m.theme.Header.Title.Render(m.scr.title)
	}
	var b strings.Builder
	for _, c := range m.titleCells {
		if c.Rune == 0 {
			continue
		}
		if c.Scrambling {
			b.WriteString(m.theme.ScrambleStyle(c.Progress).Render(string(c.Rune)))
			continue
		}
		b.WriteString(m.theme.Header.Title.Render(string(c.Rune)))
	}
	return b.String()
}

func (m *Model) viewNav() string {
	if !m.ready {
		return ""
	}
	prev, next := m.ctrl.Nav()
	label := func(b reader.NavButton, arrow, fallback string, left bool) string {
		text := fallback
		if b.Enabled {
			if s, ok := m.ctrl.Catalog().Lookup(b.Target); ok {
				text = truncate.StringWithTail(s.Title, navLabelWidth, "…")
			}
		}
		if left {
			text = arrow + " " + text
		} else {
			text = text + " " + arrow
		}
		if b.Enabled {
			return m.theme.Header.NavEnabled.Render(text)
		}
		return m.theme.Header.NavDisabled.Render(text)
	}
	return label(prev, "‹", "prev", true) + "  " + label(next, "›", "next", false)
}

func (m *Model) viewBody() string {
	_, h := m.size()
	height := max(h-headerHeight-footerHeight, 1)
	sidebar := m.viewSidebar(height)
	body := m.viewContent(height)
	if sidebar == "" {
		return body
	}
	if body == "" {
		return sidebar
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, body)
}

func (m *Model) viewContent(height int) string {
	width := m.contentWidth()
	if width <= 0 {
		return ""
	}
	var body string
	if m.scr.pane == paneLoading {
		body = m.spinner.View() + " " + m.theme.Content.Loading.Render("Loading…")
	} else {
		body = m.viewport.View()
	}
	if m.scr.sidebar.Overlay {
		body = m.theme.Content.Dimmed.Render(body)
	}
	return m.theme.Content.Frame.Width(width).Height(height).Render(body)
}

func (m *Model) viewSidebar(height int) string {
	w := m.sidebarWidth()
	if w == 0 {
		return ""
	}
	frame := m.theme.Sidebar.Frame.Width(w - 1).Height(height).MaxHeight(height)
	shown := m.scr.shown()

	if m.scr.sidebar.Collapsed {
		lines := make([]string, 0, len(shown))
		for _, it := range shown {
			if it.ID == m.scr.active {
				lines = append(lines, m.theme.Sidebar.Active.Render("•"))
				continue
			}
			lines = append(lines, m.theme.Sidebar.Rail.Render("·"))
		}
		return frame.Render(strings.Join(lines, "\n"))
	}

	inner := max(w-frame.GetHorizontalFrameSize(), 1)
	var lines []string
	if m.searching || m.search.Value() != "" {
		m.search.Width = max(inner-lipgloss.Width(m.search.Prompt)-1, 1)
		lines = append(lines, m.search.View())
	} else {
		lines = append(lines, m.theme.Sidebar.Rail.Render("/ search"))
	}
	lines = append(lines, "")

	if len(shown) == 0 {
		lines = append(lines, m.theme.Sidebar.NoResult.Render("no matches"))
		return frame.Render(strings.Join(lines, "\n"))
	}

	avail := max(height-len(lines), 1)
	start := 0
	if m.cursor >= avail {
		start = m.cursor - avail + 1
	}
	for i := start; i < len(shown) && i-start < avail; i++ {
		it := shown[i]
		prefix, style := "  ", m.theme.Sidebar.Item
		if it.ID == m.scr.active {
			prefix, style = "▸ ", m.theme.Sidebar.Active
		}
		text := prefix + truncate.StringWithTail(it.Title, uint(max(inner-2, 1)), "…")
		if i == m.cursor {
			style = style.Inherit(m.theme.Sidebar.Cursor)
		}
		lines = append(lines, style.Render(text))
	}
	return frame.Render(strings.Join(lines, "\n"))
}

func (m *Model) viewFooter() string {
	w, _ := m.size()
	status := m.theme.Footer.Status.Render(m.status())
	helpView := truncate.StringWithTail(m.help.View(m.keys), uint(max(w-lipgloss.Width(status)-1, 1)), "…")
	gap := max(w-lipgloss.Width(helpView)-lipgloss.Width(status), 1)
	return m.theme.Footer.Help.Render(helpView) + strings.Repeat(" ", gap) + status
}

func (m *Model) status() string {
	parts := []string{fmt.Sprintf("font %+d", m.scr.fontLevel)}
	if cat := m.ctrl.Catalog(); cat != nil {
		if i := cat.Index(m.scr.active); i >= 0 {
			parts = append(parts, fmt.Sprintf("%d/%d", i+1, cat.Len()))
		}
	}
	return strings.Join(parts, "  ")
}
