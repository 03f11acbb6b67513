package reader

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// FragmentPrefix marks the routing key in a location fragment.
const FragmentPrefix = "#/"

// ParseFragment extracts the story id from a location fragment such as
// "#/ch1". Missing or empty fragments resolve to HomeID.
func ParseFragment(fragment string) string {
	id := strings.TrimSpace(fragment)
	id = strings.TrimPrefix(id, "#")
	id = strings.TrimPrefix(id, "/")
	if decoded, err := url.PathUnescape(id); err == nil {
		id = decoded
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return HomeID
	}
	return id
}

// Fragment formats the location fragment for id.
func Fragment(id string) string {
	return FragmentPrefix + url.PathEscape(id)
}

// Request is one content load. Only the most recently issued request may
// change what the content pane shows.
type Request struct {
	Generation uint64
	ID         string
	Path       string
	NotFound   bool
}

// Route resolves fragment and loads its story, blocking until the content
// is displayed.
func (c *Controller) Route(ctx context.Context, fragment string) error {
	return c.run(ctx, c.Begin(fragment))
}

// Navigate loads the story with id.
func (c *Controller) Navigate(ctx context.Context, id string) error {
	return c.run(ctx, c.BeginNavigate(id))
}

// Prev navigates to the previous story. It is a no-op when the button is
// disabled.
func (c *Controller) Prev(ctx context.Context) error {
	if !c.prev.Enabled || c.prev.Target == "" {
		return nil
	}
	return c.Navigate(ctx, c.prev.Target)
}

// Next navigates to the next story. It is a no-op when the button is
// disabled.
func (c *Controller) Next(ctx context.Context) error {
	if !c.next.Enabled || c.next.Target == "" {
		return nil
	}
	return c.Navigate(ctx, c.next.Target)
}

func (c *Controller) run(ctx context.Context, req Request) error {
	html, err := c.Load(ctx, req)
	c.Complete(req, html, err)
	return err
}

// Begin performs the synchronous part of routing fragment: it updates
// state, sidebar, nav buttons and title, shows the loading state, and
// returns the request whose content must be fetched with Load.
func (c *Controller) Begin(fragment string) Request {
	return c.BeginNavigate(ParseFragment(fragment))
}

// BeginNavigate is Begin for an already resolved id.
func (c *Controller) BeginNavigate(id string) Request {
	c.gen++
	req := Request{Generation: c.gen, ID: id}

	c.state.CurrentID = id
	c.pushHistory(id)

	if story, ok := c.catalog.Lookup(id); ok {
		c.updateSidebarActive(id)
		c.updateNavButtons(id)
		c.updatePageTitle(story.Title)
		req.Path = story.ContentPath()
	} else {
		c.log.Infow("story not found", "id", id)
		c.updateSidebarActive("")
		c.prev, c.next = NavButton{}, NavButton{}
		c.view.SetNav(c.prev, c.next)
		c.updatePageTitle("Story Not Found")
		req.Path = c.opts.NotFoundPath
		req.NotFound = true
	}

	c.view.ShowLoading()
	return req
}

// Load fetches the content for req. It touches no session state and may
// run on any goroutine.
func (c *Controller) Load(ctx context.Context, req Request) (string, error) {
	if c.fetcher == nil {
		return "", fmt.Errorf("reader: no fetcher configured")
	}
	return c.fetcher.Fetch(ctx, req.Path)
}

// Complete applies the outcome of req. Results of superseded requests are
// discarded and Complete reports false.
func (c *Controller) Complete(req Request, html string, err error) bool {
	if req.Generation != c.gen {
		c.log.Debugw("discarding stale content", "id", req.ID, "generation", req.Generation, "latest", c.gen)
		return false
	}
	if err == nil {
		c.view.ShowContent(html)
		return true
	}

	if req.NotFound {
		c.log.Warnw("not-found page failed to load", "id", req.ID, "error", err)
		c.view.ShowError(ErrorView{
			Title:   "Story not found",
			Message: fmt.Sprintf("There is no story called %q.", req.ID),
			Action:  ActionHome,
		})
		return true
	}

	c.log.Errorw("error loading story", "id", req.ID, "path", req.Path, "error", err)
	c.view.ShowError(ErrorView{
		Title:   "Error",
		Message: "Failed to load story: " + err.Error(),
		Action:  ActionHome,
	})
	return true
}

// Generation is the token of the latest issued request.
func (c *Controller) Generation() uint64 { return c.gen }

// AdjacentPaths lists the content paths of the stories around the current
// one, for prefetching.
func (c *Controller) AdjacentPaths() []string {
	var paths []string
	if s, ok := c.catalog.Prev(c.state.CurrentID); ok {
		paths = append(paths, s.ContentPath())
	}
	if s, ok := c.catalog.Next(c.state.CurrentID); ok {
		paths = append(paths, s.ContentPath())
	}
	return paths
}

// Prefetch warms the fetcher's cache with the adjacent stories when the
// fetcher supports it.
func (c *Controller) Prefetch(ctx context.Context, paths []string) error {
	p, ok := c.fetcher.(Prefetcher)
	if !ok || len(paths) == 0 {
		return nil
	}
	return p.Prefetch(ctx, paths...)
}

const maxHistory = 64

func (c *Controller) pushHistory(id string) {
	if n := len(c.history); n > 0 && c.history[n-1] == id {
		return
	}
	c.history = append(c.history, id)
	if len(c.history) > maxHistory {
		c.history = c.history[len(c.history)-maxHistory:]
	}
}

// Back pops the history and returns the id to revisit. ok is false when
// there is nowhere to go back to.
func (c *Controller) Back() (id string, ok bool) {
	if len(c.history) < 2 {
		return "", false
	}
	c.history = c.history[:len(c.history)-1]
	id = c.history[len(c.history)-1]
	// BeginNavigate pushes it again.
	c.history = c.history[:len(c.history)-1]
	return id, true
}
