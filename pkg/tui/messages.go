package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/storyreader/pkg/catalog"
	"tableflip.dev/storyreader/pkg/prefs"
	"tableflip.dev/storyreader/pkg/reader"
)

// frameInterval paces the title animation at roughly 60fps.
const frameInterval = time.Second / 60

type catalogMsg struct {
	cat *catalog.Catalog
	err error
}

type contentMsg struct {
	req  reader.Request
	html string
	err  error
}

type prefetchMsg struct {
	paths []string
	err   error
}

type searchMsg struct {
	tag  uint64
	term string
}

type scrambleMsg struct {
	gen uint64
}

type prefsMsg struct {
	key    string
	closed bool
}

func loadCatalogCmd(ctx context.Context, ctrl *reader.Controller) tea.Cmd {
	return func() tea.Msg {
		cat, err := ctrl.LoadCatalog(ctx)
		return catalogMsg{cat: cat, err: err}
	}
}

func fetchCmd(ctx context.Context, ctrl *reader.Controller, req reader.Request) tea.Cmd {
	return func() tea.Msg {
		html, err := ctrl.Load(ctx, req)
		return contentMsg{req: req, html: html, err: err}
	}
}

func prefetchCmd(ctx context.Context, ctrl *reader.Controller, paths []string) tea.Cmd {
	if len(paths) == 0 {
		return nil
	}
	return func() tea.Msg {
		return prefetchMsg{paths: paths, err: ctrl.Prefetch(ctx, paths)}
	}
}

func searchCmd(delay time.Duration, tag uint64, term string) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return searchMsg{tag: tag, term: term}
	})
}

func scrambleCmd(gen uint64) tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return scrambleMsg{gen: gen}
	})
}

func waitForPrefs(events <-chan prefs.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return prefsMsg{closed: true}
		}
		return prefsMsg{key: ev.Key}
	}
}
