package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
)

// Run starts the reader UI on the alternate screen and blocks until it
// exits or ctx is cancelled.
func Run(ctx context.Context, deps Deps, opts Options) error {
	if opts.GlamourStyle == "" {
		opts.GlamourStyle = "light"
		if termenv.HasDarkBackground() {
			opts.GlamourStyle = "dark"
		}
	}
	m := New(ctx, deps, opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
