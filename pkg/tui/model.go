// Package tui is the Bubble Tea front end of the reader. It implements
// reader.View and turns key presses into controller calls; every fetch runs
// as a tea.Cmd and re-enters through Update.
package tui

import (
	"context"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"tableflip.dev/storyreader/pkg/debounce"
	"tableflip.dev/storyreader/pkg/prefs"
	"tableflip.dev/storyreader/pkg/reader"
	"tableflip.dev/storyreader/pkg/scramble"
	"tableflip.dev/storyreader/pkg/site"
	"tableflip.dev/storyreader/pkg/tui/theme"
)

// Deps are the collaborators the UI drives.
type Deps struct {
	Source  site.Source
	Fetcher reader.Fetcher
	Prefs   *prefs.Preferences
	Reader  reader.Options
	Log     *zap.SugaredLogger
}

// Options tune the terminal front end.
type Options struct {
	// Fragment is the initial location, e.g. "#/ch1".
	Fragment string
	// SearchDebounce is the quiet period before a search term is applied.
	SearchDebounce time.Duration
	// Scramble animates title changes.
	Scramble bool
	// GlamourStyle is a glamour standard style name. Empty picks dark or
	// light from the terminal background.
	GlamourStyle string
	// Rand drives the title animation; nil seeds from the clock.
	Rand *rand.Rand
	// Watch delivers preference changes made by other instances.
	Watch <-chan prefs.Event
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx  context.Context
	ctrl *reader.Controller
	scr  *screen
	deps Deps
	opts Options
	log  *zap.SugaredLogger

	keys     keyMap
	theme    theme.Theme
	help     help.Model
	spinner  spinner.Model
	viewport viewport.Model
	search   textinput.Model

	searching bool
	gate      debounce.Gate

	scrambler  *scramble.Scrambler
	titleCells []scramble.Cell
	lastTitle  string

	ready    bool
	cursor   int
	width    int
	height   int
	lastHTML string
	markdown *markdownRenderer
}

// New builds the model and its controller.
func New(ctx context.Context, deps Deps, opts Options) *Model {
	if deps.Log == nil {
		deps.Log = zap.NewNop().Sugar()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.GlamourStyle == "" {
		opts.GlamourStyle = "dark"
	}

	scr := &screen{}
	ctrl := reader.New(deps.Source, deps.Fetcher, scr, deps.Prefs, deps.Reader, deps.Log)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ti := textinput.New()
	ti.Placeholder = "search"
	ti.Prompt = "/ "
	ti.CharLimit = 128

	m := &Model{
		ctx:       ctx,
		ctrl:      ctrl,
		scr:       scr,
		deps:      deps,
		opts:      opts,
		log:       deps.Log,
		keys:      defaultKeys(),
		theme:     theme.Default(),
		help:      help.New(),
		spinner:   sp,
		viewport:  viewport.New(80, 20),
		search:    ti,
		scrambler: scramble.New(opts.Rand),
		markdown:  newMarkdownRenderer(opts.GlamourStyle),
	}
	scr.ShowLoading()
	return m
}

// Controller exposes the session controller.
func (m *Model) Controller() *reader.Controller { return m.ctrl }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		loadCatalogCmd(m.ctx, m.ctrl),
		waitForPrefs(m.opts.Watch),
	)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.ctrl.SetViewportWidth(msg.Width)
		m.scr.contentDirty = true
		return m, m.sync()

	case catalogMsg:
		if err := m.ctrl.Ready(msg.cat, msg.err); err != nil {
			return m, m.sync()
		}
		m.ready = true
		return m, tea.Batch(m.begin(m.ctrl.Begin(m.opts.Fragment)), m.sync())

	case contentMsg:
		var cmd tea.Cmd
		if m.ctrl.Complete(msg.req, msg.html, msg.err) && msg.err == nil {
			cmd = prefetchCmd(m.ctx, m.ctrl, m.ctrl.AdjacentPaths())
		}
		return m, tea.Batch(cmd, m.sync())

	case prefetchMsg:
		if msg.err != nil {
			m.log.Debugw("prefetch incomplete", "paths", msg.paths, "error", msg.err)
		}
		return m, nil

	case searchMsg:
		if m.gate.Settled(msg.tag) {
			m.ctrl.Search(msg.term)
			m.clampCursor()
		}
		return m, nil

	case scrambleMsg:
		cells, ok := m.scrambler.Frame(msg.gen)
		if !ok {
			if msg.gen == m.scrambler.Generation() {
				m.titleCells = nil
			}
			return m, nil
		}
		m.titleCells = cells
		if m.scrambler.State() == scramble.Complete {
			m.titleCells = nil
			return m, nil
		}
		return m, scrambleCmd(msg.gen)

	case prefsMsg:
		if msg.closed {
			return m, nil
		}
		m.log.Debugw("preferences changed", "key", msg.key)
		m.ctrl.ReloadPreferences()
		return m, tea.Batch(m.sync(), waitForPrefs(m.opts.Watch))

	case spinner.TickMsg:
		if m.scr.pane != paneLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		// A click beside the overlay dismisses it.
		if m.scr.sidebar.Overlay && m.scr.sidebar.Visible &&
			msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft &&
			msg.X >= m.sidebarWidth() && m.ctrl.CloseSidebar() {
			return m, m.sync()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case !m.ready:
		if key.Matches(msg, m.keys.Reload) || (key.Matches(msg, m.keys.Open) && m.scr.pane == paneError) {
			cmd = m.restart()
		}

	case key.Matches(msg, m.keys.Prev):
		if prev, _ := m.ctrl.Nav(); prev.Enabled {
			cmd = m.navigate(prev.Target)
		}

	case key.Matches(msg, m.keys.Next):
		if _, next := m.ctrl.Nav(); next.Enabled {
			cmd = m.navigate(next.Target)
		}

	case key.Matches(msg, m.keys.Escape):
		if !m.ctrl.Escape() && m.ctrl.SearchTerm() != "" {
			m.search.SetValue("")
			m.gate.Next()
			m.ctrl.Search("")
			m.clampCursor()
		}

	case key.Matches(msg, m.keys.Sidebar):
		m.ctrl.ToggleSidebar()

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		if !m.ctrl.Wide() || m.scr.sidebar.Collapsed {
			m.ctrl.OpenSidebar()
		}
		cmd = m.search.Focus()

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.Open):
		cmd = m.open()

	case key.Matches(msg, m.keys.FontUp):
		m.ctrl.AdjustFontSize(1)

	case key.Matches(msg, m.keys.FontDown):
		m.ctrl.AdjustFontSize(-1)

	case key.Matches(msg, m.keys.FontReset):
		m.ctrl.ResetFontSize()

	case key.Matches(msg, m.keys.Reload):
		cmd = m.reload()

	case key.Matches(msg, m.keys.Home):
		cmd = m.navigate(reader.HomeID)

	case key.Matches(msg, m.keys.Back):
		if id, ok := m.ctrl.Back(); ok {
			cmd = m.navigate(id)
		}

	default:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, tea.Batch(cmd, m.sync())
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.gate.Next()
			m.ctrl.Search("")
			m.clampCursor()
		}
		return m, m.sync()

	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		// Apply now; a pending debounced pass for the same term is dropped.
		m.gate.Next()
		m.ctrl.Search(m.search.Value())
		m.cursor = 0
		return m, m.sync()
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if term := m.search.Value(); term != before {
		cmd = tea.Batch(cmd, searchCmd(m.opts.SearchDebounce, m.gate.Next(), term))
	}
	return m, cmd
}

// begin schedules the fetch of a request issued by the controller.
func (m *Model) begin(req reader.Request) tea.Cmd {
	return fetchCmd(m.ctx, m.ctrl, req)
}

func (m *Model) navigate(id string) tea.Cmd {
	return m.begin(m.ctrl.BeginNavigate(id))
}

// open follows the error view's affordance, or the highlighted sidebar
// entry.
func (m *Model) open() tea.Cmd {
	if m.scr.pane == paneError {
		switch m.scr.err.Action {
		case reader.ActionHome:
			return m.navigate(reader.HomeID)
		case reader.ActionReload:
			return m.restart()
		}
	}
	shown := m.scr.shown()
	if m.cursor < 0 || m.cursor >= len(shown) {
		return nil
	}
	cmd := m.navigate(shown[m.cursor].ID)
	m.ctrl.CloseSidebar()
	return cmd
}

// reload fetches the current story again, bypassing the cache.
func (m *Model) reload() tea.Cmd {
	if p, ok := m.deps.Fetcher.(interface{ Purge() }); ok {
		p.Purge()
	}
	return m.navigate(m.ctrl.State().CurrentID)
}

// restart repeats startup after a catalog failure.
func (m *Model) restart() tea.Cmd {
	m.scr.ShowLoading()
	return tea.Batch(m.spinner.Tick, loadCatalogCmd(m.ctx, m.ctrl))
}

func (m *Model) moveCursor(delta int) {
	n := len(m.scr.shown())
	if n == 0 {
		m.cursor = 0
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
}

func (m *Model) clampCursor() { m.moveCursor(0) }

func (m *Model) cursorToActive() {
	for i, it := range m.scr.shown() {
		if it.ID == m.scr.active {
			m.cursor = i
			return
		}
	}
}

// sync turns what the controller drew since the last call into frame
// state and commands.
func (m *Model) sync() tea.Cmd {
	var cmds []tea.Cmd
	if m.scr.activeDirty {
		m.scr.activeDirty = false
		m.cursorToActive()
	}
	if m.scr.titleDirty {
		m.scr.titleDirty = false
		cmds = append(cmds, tea.SetWindowTitle(m.scr.docTitle), m.animateTitle())
	}
	if m.scr.contentDirty {
		m.scr.contentDirty = false
		m.layout()
		if m.scr.pane == paneLoading {
			cmds = append(cmds, m.spinner.Tick)
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) animateTitle() tea.Cmd {
	old := m.lastTitle
	m.lastTitle = m.scr.title
	if !m.opts.Scramble {
		m.scrambler.Cancel()
		m.titleCells = nil
		return nil
	}
	gen, _ := m.scrambler.SetText(old, m.scr.title)
	if m.scrambler.State() != scramble.Animating {
		m.titleCells = nil
		return nil
	}
	return scrambleCmd(gen)
}
