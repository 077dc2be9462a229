// Package app bootstraps the poller and the Bubble Tea program.
package app

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/glazewm-top/internal/backend"
	"github.com/atomicstack/glazewm-top/internal/config"
	"github.com/atomicstack/glazewm-top/internal/ui"
	"github.com/atomicstack/glazewm-top/internal/wm"
)

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg config.App) error {
	client, err := buildClient(cfg)
	if err != nil {
		return err
	}

	poller := backend.NewPoller(client, backend.DefaultPolicy(cfg.RefreshRate))
	defer poller.Stop()

	model := ui.NewModel(poller, ui.Options{
		Width:   cfg.Width,
		Height:  cfg.Height,
		Quiet:   cfg.Quiet,
		Compact: cfg.Compact,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// buildClient picks the demo data source or resolves the real binary. A
// missing binary fails fast with a remediation hint instead of retrying
// forever against nothing.
func buildClient(cfg config.App) (wm.Client, error) {
	if cfg.Demo {
		return wm.NewDemoClient(), nil
	}
	path, err := wm.LookupBinary(cfg.GlazeWMPath)
	if err != nil {
		return nil, fmt.Errorf("%w (install GlazeWM or point --glazewm-path at the binary)", err)
	}
	return wm.NewCLIClient(path, cfg.QueryTimeout), nil
}
