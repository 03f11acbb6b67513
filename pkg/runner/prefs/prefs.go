// Package prefs inspects and edits saved reader preferences.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/storyreader/pkg/config"
	"tableflip.dev/storyreader/pkg/prefs"
)

// Action selects what Prefs does.
type Action string

const (
	Get   Action = "get"
	Set   Action = "set"
	Reset Action = "reset"
)

// Known lists the preference keys the reader understands.
var Known = []string{prefs.KeyFontSize, prefs.KeySidebarState}

// Prefs runs one preference action against Store. Unlike the reader, it
// reports storage failures.
type Prefs struct {
	Store  prefs.Store
	Font   config.FontConfig
	Action Action
	Key    string
	Value  string
	Out    io.Writer
}

func (p *Prefs) Do(ctx context.Context) error {
	if p.Store == nil {
		return errors.New("can not manage preferences, no store")
	}
	if p.Out == nil {
		p.Out = color.Output
	}
	switch p.Action {
	case Get:
		return p.get()
	case Set:
		return p.set()
	case Reset:
		for _, k := range Known {
			if err := p.Store.Remove(k); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown preferences action %q", p.Action)
}

func (p *Prefs) get() error {
	keys := Known
	if p.Key != "" {
		if err := known(p.Key); err != nil {
			return err
		}
		keys = []string{p.Key}
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint, color.Italic)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Key"), bold.Sprint("Value"))
	for _, k := range keys {
		v, err := p.Store.Get(k)
		switch {
		case errors.Is(err, prefs.ErrNotFound):
			tbl.AddRow(k, faint.Sprint("unset"))
		case err != nil:
			return err
		default:
			tbl.AddRow(k, v)
		}
	}
	_, err := fmt.Fprintln(p.Out, tbl)
	return err
}

// Validate checks Key and Value for a Set without touching the store.
func (p *Prefs) Validate() error {
	if err := known(p.Key); err != nil {
		return err
	}
	switch p.Key {
	case prefs.KeyFontSize:
		level, err := strconv.Atoi(p.Value)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", p.Key, err)
		}
		if p.Font != (config.FontConfig{}) && p.Font.Clamp(level) != level {
			return fmt.Errorf("%s must be within [%d, %d]", p.Key, p.Font.Min, p.Font.Max)
		}
	case prefs.KeySidebarState:
		if p.Value != "collapsed" && p.Value != "expanded" {
			return fmt.Errorf("%s must be collapsed or expanded", p.Key)
		}
	}
	return nil
}

func (p *Prefs) set() error {
	if err := p.Validate(); err != nil {
		return err
	}
	return p.Store.Set(p.Key, p.Value)
}

func known(key string) error {
	for _, k := range Known {
		if k == key {
			return nil
		}
	}
	return fmt.Errorf("unknown preference %q", key)
}
