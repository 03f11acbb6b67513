package reader

import (
	"math"
	"strings"
)

func (c *Controller) updateSidebarActive(id string) {
	c.view.SetActive(id)
}

func (c *Controller) updateNavButtons(id string) {
	c.prev, c.next = NavButton{}, NavButton{}
	if s, ok := c.catalog.Prev(id); ok {
		c.prev = NavButton{Enabled: true, Target: s.ID}
	}
	if s, ok := c.catalog.Next(id); ok {
		c.next = NavButton{Enabled: true, Target: s.ID}
	}
	c.view.SetNav(c.prev, c.next)
}

func (c *Controller) updatePageTitle(title string) {
	doc := title
	if c.opts.TitleSuffix != "" {
		doc = title + " | " + c.opts.TitleSuffix
	}
	c.view.SetTitle(title, doc)
}

// Search filters the sidebar to stories whose title contains term,
// ignoring case. The empty term shows everything. It returns how many
// entries remain visible.
func (c *Controller) Search(term string) int {
	c.term = term
	needle := strings.ToLower(term)
	stories := c.catalog.Stories()
	visible := make(map[string]bool, len(stories))
	count := 0
	for _, s := range stories {
		match := strings.Contains(strings.ToLower(s.Title), needle)
		visible[s.ID] = match
		if match {
			count++
		}
	}
	c.view.FilterSidebar(visible)
	return count
}

// SearchTerm is the term of the last Search.
func (c *Controller) SearchTerm() string { return c.term }

// AdjustFontSize moves the font level by delta within the configured
// range, applies it and saves it. It returns the new level.
func (c *Controller) AdjustFontSize(delta int) int {
	c.state.FontLevel = clampAdd(c.state.FontLevel, delta, c.opts.Font.Min, c.opts.Font.Max)
	c.applyFontSize()
	c.prefs.SetFontLevel(c.state.FontLevel)
	return c.state.FontLevel
}

// ResetFontSize returns to the default level.
func (c *Controller) ResetFontSize() int {
	c.state.FontLevel = c.opts.Font.Clamp(0)
	c.applyFontSize()
	c.prefs.SetFontLevel(c.state.FontLevel)
	return c.state.FontLevel
}

// FontSize is the effective size of the current level.
func (c *Controller) FontSize() float64 {
	return c.opts.Font.Size(c.state.FontLevel)
}

func (c *Controller) applyFontSize() {
	c.view.SetFontSize(c.state.FontLevel, c.opts.Font.Size(c.state.FontLevel))
}

// clampAdd returns level+delta clamped into [lo, hi] without overflowing.
func clampAdd(level, delta, lo, hi int) int {
	switch {
	case delta > 0 && level > math.MaxInt-delta:
		return hi
	case delta < 0 && level < math.MinInt-delta:
		return lo
	}
	v := level + delta
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// LoadPreferences restores the saved font level and wide-layout sidebar
// mode. Missing or unreadable preferences leave the defaults in place.
func (c *Controller) LoadPreferences() {
	if level, ok := c.prefs.FontLevel(); ok {
		c.state.FontLevel = c.opts.Font.Clamp(level)
	}
	c.applyFontSize()
	c.state.Sidebar.Collapsed = c.prefs.SidebarCollapsed()
	c.applySidebar()
}

// ReloadPreferences re-reads preferences changed by another process. Only
// values that differ from the session are applied.
func (c *Controller) ReloadPreferences() {
	if level, ok := c.prefs.FontLevel(); ok {
		level = c.opts.Font.Clamp(level)
		if level != c.state.FontLevel {
			c.state.FontLevel = level
			c.applyFontSize()
		}
	}
	if collapsed := c.prefs.SidebarCollapsed(); collapsed != c.state.Sidebar.Collapsed {
		c.state.Sidebar.Collapsed = collapsed
		c.applySidebar()
	}
}

// SetViewportWidth records the layout width. Crossing the breakpoint
// switches between the sliding sidebar and the collapsible rail; an open
// overlay does not survive the switch to the wide layout.
func (c *Controller) SetViewportWidth(width int) {
	c.width = width
	if c.Wide() {
		c.state.Sidebar.Open = false
	}
	c.applySidebar()
}

// Wide reports whether the wide layout is in use. An unknown width counts
// as wide.
func (c *Controller) Wide() bool {
	return c.width <= 0 || c.width >= c.opts.Breakpoint
}

// ToggleSidebar slides the sidebar on or off in the narrow layout, and
// collapses or expands the rail in the wide one. Only the wide mode is
// saved.
func (c *Controller) ToggleSidebar() {
	if !c.Wide() {
		if c.state.Sidebar.Open {
			c.CloseSidebar()
		} else {
			c.OpenSidebar()
		}
		return
	}
	c.state.Sidebar.Collapsed = !c.state.Sidebar.Collapsed
	c.prefs.SetSidebarCollapsed(c.state.Sidebar.Collapsed)
	c.applySidebar()
}

// OpenSidebar shows the sidebar: with an overlay when narrow, expanded
// when wide.
func (c *Controller) OpenSidebar() {
	if c.Wide() {
		if c.state.Sidebar.Collapsed {
			c.state.Sidebar.Collapsed = false
			c.prefs.SetSidebarCollapsed(false)
		}
	} else {
		c.state.Sidebar.Open = true
	}
	c.applySidebar()
}

// CloseSidebar hides the narrow-layout sidebar and its overlay. It reports
// whether anything changed; the wide layout has nothing to close.
func (c *Controller) CloseSidebar() bool {
	if c.Wide() || !c.state.Sidebar.Open {
		return false
	}
	c.state.Sidebar.Open = false
	c.applySidebar()
	return true
}

// Escape closes an open sidebar overlay, reporting whether it did.
func (c *Controller) Escape() bool {
	return c.CloseSidebar()
}

func (c *Controller) applySidebar() {
	if c.Wide() {
		c.view.SetSidebar(SidebarView{Visible: true, Collapsed: c.state.Sidebar.Collapsed})
		return
	}
	open := c.state.Sidebar.Open
	c.view.SetSidebar(SidebarView{Visible: open, Overlay: open})
}
