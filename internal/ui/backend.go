package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/glazewm-top/internal/backend"
	"github.com/atomicstack/glazewm-top/internal/logging/events"
	"github.com/atomicstack/glazewm-top/internal/wm"
)

func waitForPollEvent(p *backend.Poller) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-p.Events()
		if !ok {
			return pollDoneMsg{}
		}
		return pollEventMsg{event: evt}
	}
}

type pollEventMsg struct {
	event backend.Event
}

type pollDoneMsg struct{}

func (m *Model) handlePollEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(pollEventMsg)
	if !ok {
		return nil
	}
	m.applyPollEvent(eventMsg.event)
	if m.poller != nil {
		return waitForPollEvent(m.poller)
	}
	return nil
}

func (m *Model) handlePollDoneMsg(tea.Msg) tea.Cmd {
	m.poller = nil
	return nil
}

// applyPollEvent folds one poll result into the store. Successful snapshots
// clear every warning; failures keep the last good snapshot on screen and
// only flag it.
func (m *Model) applyPollEvent(evt backend.Event) {
	m.loading = false

	if evt.Snapshot != nil {
		m.store.Apply(evt.Snapshot)
		m.store.SetDegraded(false)
		m.store.SetWarning("")
		m.errMsg = ""
		events.UI.Snapshot(len(evt.Snapshot.Monitors), evt.Snapshot.WindowCount())
		return
	}

	if evt.Err == nil {
		return
	}

	m.store.MarkStale()
	m.store.SetDegraded(evt.State == backend.StateDegraded)

	var mapErr *wm.MapError
	if errors.As(evt.Err, &mapErr) && mapErr.Kind == wm.MapInvariant {
		// Inconsistent focus state: keep rendering the previous snapshot
		// and surface the rejection until a valid one arrives.
		m.store.SetWarning(mapErr.Error())
		return
	}
	m.errMsg = evt.Err.Error()
}
