package prefs

import (
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Keys under which reader preferences are stored.
const (
	KeyFontSize     = "fontSize"
	KeySidebarState = "sidebarState"
)

const (
	sidebarCollapsed = "collapsed"
	sidebarExpanded  = "expanded"
)

// Preferences is the best-effort view of a Store: reads and writes that
// fail are logged and otherwise ignored, because remembering a preference
// is an enhancement and never a reason to stop reading.
type Preferences struct {
	store Store
	log   *zap.SugaredLogger
}

// New wraps store. A nil store behaves as an always-empty memory store.
func New(store Store, log *zap.SugaredLogger) *Preferences {
	if store == nil {
		store = NewMemory()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Preferences{store: store, log: log}
}

// FontLevel returns the saved font level. ok is false when nothing usable
// is stored.
func (p *Preferences) FontLevel() (level int, ok bool) {
	raw, err := p.store.Get(KeyFontSize)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			p.log.Warnw("read font size preference", "error", err)
		}
		return 0, false
	}
	level, err = strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		p.log.Warnw("ignoring malformed font size preference", "value", raw, "error", err)
		return 0, false
	}
	return level, true
}

// SetFontLevel saves level.
func (p *Preferences) SetFontLevel(level int) {
	if err := p.store.Set(KeyFontSize, strconv.Itoa(level)); err != nil {
		p.log.Warnw("save font size preference", "level", level, "error", err)
	}
}

// SidebarCollapsed reports whether the wide-layout sidebar was left
// collapsed.
func (p *Preferences) SidebarCollapsed() bool {
	raw, err := p.store.Get(KeySidebarState)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			p.log.Warnw("read sidebar preference", "error", err)
		}
		return false
	}
	return strings.TrimSpace(raw) == sidebarCollapsed
}

// SetSidebarCollapsed saves the wide-layout sidebar mode.
func (p *Preferences) SetSidebarCollapsed(collapsed bool) {
	v := sidebarExpanded
	if collapsed {
		v = sidebarCollapsed
	}
	if err := p.store.Set(KeySidebarState, v); err != nil {
		p.log.Warnw("save sidebar preference", "state", v, "error", err)
	}
}

// Reset forgets every reader preference.
func (p *Preferences) Reset() {
	for _, k := range []string{KeyFontSize, KeySidebarState} {
		if err := p.store.Remove(k); err != nil {
			p.log.Warnw("remove preference", "key", k, "error", err)
		}
	}
}

// Raw exposes the underlying store for the prefs command.
func (p *Preferences) Raw() Store { return p.store }
