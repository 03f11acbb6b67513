package tui

import "tableflip.dev/storyreader/pkg/reader"

type pane int

const (
	paneLoading pane = iota
	paneContent
	paneError
)

// screen is the reader.View of the terminal UI. It only records what the
// controller asked for; Model turns the recorded state into frames and
// commands after each controller call.
type screen struct {
	items   []reader.SidebarItem
	visible map[string]bool
	active  string

	prev, next reader.NavButton

	title    string
	docTitle string

	pane pane
	html string
	err  reader.ErrorView

	fontLevel int
	fontSize  float64

	sidebar reader.SidebarView

	// set when the corresponding state changed since the last sync
	titleDirty   bool
	contentDirty bool
	activeDirty  bool
}

var _ reader.View = (*screen)(nil)

func (s *screen) SetSidebarItems(items []reader.SidebarItem) {
	s.items = items
	s.visible = nil
}

func (s *screen) SetActive(id string) {
	s.active = id
	s.activeDirty = true
}

func (s *screen) SetNav(prev, next reader.NavButton) {
	s.prev, s.next = prev, next
}

func (s *screen) SetTitle(title, documentTitle string) {
	if title != s.title || documentTitle != s.docTitle {
		s.titleDirty = true
	}
	s.title, s.docTitle = title, documentTitle
}

func (s *screen) ShowLoading() {
	s.pane = paneLoading
	s.contentDirty = true
}

func (s *screen) ShowContent(html string) {
	s.pane = paneContent
	s.html = html
	s.contentDirty = true
}

func (s *screen) ShowError(e reader.ErrorView) {
	s.pane = paneError
	s.err = e
	s.contentDirty = true
}

func (s *screen) SetFontSize(level int, size float64) {
	if level != s.fontLevel || size != s.fontSize {
		s.contentDirty = true
	}
	s.fontLevel, s.fontSize = level, size
}

func (s *screen) SetSidebar(v reader.SidebarView) {
	if v != s.sidebar {
		s.contentDirty = true
	}
	s.sidebar = v
}

func (s *screen) FilterSidebar(visible map[string]bool) {
	s.visible = visible
}

// shown lists the sidebar items that pass the current filter.
func (s *screen) shown() []reader.SidebarItem {
	if s.visible == nil {
		return s.items
	}
	out := make([]reader.SidebarItem, 0, len(s.items))
	for _, it := range s.items {
		if s.visible[it.ID] {
			out = append(out, it)
		}
	}
	return out
}
