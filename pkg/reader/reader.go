// Package reader owns the reading session: the loaded catalog, the story
// on display, and every piece of UI state derived from them. Rendering is
// delegated to a View so the same controller drives the terminal UI and
// tests.
package reader

import (
	"context"

	"go.uber.org/zap"

	"tableflip.dev/storyreader/pkg/catalog"
	"tableflip.dev/storyreader/pkg/config"
	"tableflip.dev/storyreader/pkg/prefs"
	"tableflip.dev/storyreader/pkg/site"
)

// HomeID is the story shown when the location has no fragment.
const HomeID = "home"

// SidebarItem is one navigation entry, bound to a story id.
type SidebarItem struct {
	ID       string
	Title    string
	Fragment string
}

// NavButton is the state of a prev/next button. A disabled button carries
// no target.
type NavButton struct {
	Enabled bool
	Target  string
}

// Action is the affordance offered by an error view.
type Action int

const (
	ActionNone Action = iota
	// ActionReload restarts the session (catalog failures).
	ActionReload
	// ActionHome navigates to the home story.
	ActionHome
)

func (a Action) String() string {
	switch a {
	case ActionReload:
		return "Try Again"
	case ActionHome:
		return "Go to Home"
	}
	return ""
}

// ErrorView is the content pane's error state.
type ErrorView struct {
	Title   string
	Message string
	Action  Action
}

// SidebarView is what the view should draw for the sidebar.
type SidebarView struct {
	Visible   bool
	Collapsed bool
	Overlay   bool
}

// View is the rendering surface. Implementations only draw; every
// decision is made by the Controller. ShowLoading, ShowContent and
// ShowError are mutually exclusive states of the content pane.
type View interface {
	SetSidebarItems(items []SidebarItem)
	SetActive(id string)
	SetNav(prev, next NavButton)
	SetTitle(title, documentTitle string)
	ShowLoading()
	ShowContent(html string)
	ShowError(e ErrorView)
	SetFontSize(level int, size float64)
	SetSidebar(s SidebarView)
	FilterSidebar(visible map[string]bool)
}

// Fetcher retrieves extracted story content by site path. It must be safe
// to call from a goroutine other than the one driving the Controller.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (string, error)
}

// Prefetcher is implemented by fetchers that can warm a cache.
type Prefetcher interface {
	Prefetch(ctx context.Context, paths ...string) error
}

// SidebarState holds the sidebar flags. Open applies to narrow layouts,
// Collapsed to wide ones.
type SidebarState struct {
	Open      bool
	Collapsed bool
}

// State is the single application state of a session.
type State struct {
	Stories   []catalog.Story
	CurrentID string
	FontLevel int
	Sidebar   SidebarState
}

// Options configures a Controller.
type Options struct {
	CatalogPath  string
	NotFoundPath string
	Font         config.FontConfig
	Breakpoint   int
	TitleSuffix  string
}

// OptionsFromConfig maps the reader settings out of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		CatalogPath:  cfg.Catalog,
		NotFoundPath: cfg.NotFound,
		Font:         cfg.Font,
		Breakpoint:   cfg.Breakpoint,
		TitleSuffix:  cfg.TitleSuffix,
	}
}

// Controller is the router and view controller of a session. All methods
// except LoadCatalog and Load must be called from one goroutine.
type Controller struct {
	opts    Options
	src     site.Source
	fetcher Fetcher
	view    View
	prefs   *prefs.Preferences
	log     *zap.SugaredLogger

	catalog *catalog.Catalog
	state   State

	prev, next NavButton

	gen     uint64
	width   int
	history []string
	term    string
}

// New wires a controller. prefs and log may be nil.
func New(src site.Source, fetcher Fetcher, view View, p *prefs.Preferences, opts Options, log *zap.SugaredLogger) *Controller {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if p == nil {
		p = prefs.New(nil, log)
	}
	if opts.CatalogPath == "" {
		opts.CatalogPath = catalog.DefaultPath
	}
	if opts.NotFoundPath == "" {
		opts.NotFoundPath = "stories/404.html"
	}
	if opts.Font == (config.FontConfig{}) {
		opts.Font = config.Default().Font
	}
	return &Controller{
		opts:    opts,
		src:     src,
		fetcher: fetcher,
		view:    view,
		prefs:   p,
		log:     log,
		state:   State{CurrentID: HomeID},
	}
}

// State returns a snapshot of the application state.
func (c *Controller) State() State {
	s := c.state
	s.Stories = c.catalog.Stories()
	return s
}

// Options returns the effective options, defaults filled in.
func (c *Controller) Options() Options { return c.opts }

// Catalog returns the loaded catalog, nil before Ready succeeds.
func (c *Controller) Catalog() *catalog.Catalog { return c.catalog }

// Nav returns the current prev/next button state.
func (c *Controller) Nav() (prev, next NavButton) { return c.prev, c.next }

// Start loads the catalog, restores preferences and routes fragment. It is
// the synchronous form of LoadCatalog + Ready + Route.
func (c *Controller) Start(ctx context.Context, fragment string) error {
	c.view.ShowLoading()
	cat, err := c.LoadCatalog(ctx)
	if err := c.Ready(cat, err); err != nil {
		return err
	}
	return c.Route(ctx, fragment)
}

// LoadCatalog fetches the catalog without touching session state, so it
// may run off the controller goroutine.
func (c *Controller) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	return catalog.Load(ctx, c.src, c.opts.CatalogPath)
}

// Ready installs a loaded catalog, or shows the startup error view when
// err is set. Startup failure is terminal; there is no automatic retry.
func (c *Controller) Ready(cat *catalog.Catalog, err error) error {
	if err != nil {
		c.log.Errorw("initialization error", "error", err)
		c.view.ShowError(ErrorView{
			Title:   "Failed to load stories",
			Message: "Please check your internet connection or try again later.\nError: " + err.Error(),
			Action:  ActionReload,
		})
		return err
	}
	c.catalog = cat
	c.populateSidebar()
	c.LoadPreferences()
	return nil
}

func (c *Controller) populateSidebar() {
	stories := c.catalog.Stories()
	items := make([]SidebarItem, 0, len(stories))
	for _, s := range stories {
		items = append(items, SidebarItem{ID: s.ID, Title: s.Title, Fragment: Fragment(s.ID)})
	}
	c.view.SetSidebarItems(items)
	c.log.Infow("catalog loaded", "stories", len(items), "source", c.src.String())
}
