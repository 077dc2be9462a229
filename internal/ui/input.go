package ui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/glazewm-top/internal/logging/events"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if key.Type == tea.KeyCtrlC {
		return m.quit("ctrl+c")
	}

	if m.filtering {
		return m.handleFilterKey(key)
	}

	switch key.String() {
	case "q", "esc":
		return m.quit(key.String())
	case "r":
		if m.poller != nil {
			m.poller.Refresh()
		}
		return nil
	case "tab", "m":
		mode := m.renderer.ToggleMode()
		events.UI.ModeToggle(mode.String())
		return nil
	case "/":
		m.filtering = true
		return nil
	}
	return nil
}

// handleFilterKey edits the window filter. Esc abandons it, enter keeps the
// current text and leaves edit mode.
func (m *Model) handleFilterKey(key tea.KeyMsg) tea.Cmd {
	switch key.Type {
	case tea.KeyEsc:
		m.filtering = false
		m.filter = ""
		events.Filter.Cleared()
		return nil
	case tea.KeyEnter:
		m.filtering = false
		return nil
	case tea.KeyBackspace, tea.KeyCtrlH:
		if m.filter == "" {
			m.filtering = false
			return nil
		}
		runes := []rune(m.filter)
		m.filter = string(runes[:len(runes)-1])
		events.Filter.Backspace(m.filter)
		return nil
	case tea.KeyCtrlU:
		m.filter = ""
		events.Filter.Cleared()
		return nil
	case tea.KeySpace:
		m.filter += " "
		return nil
	case tea.KeyRunes:
		if key.Alt {
			return nil
		}
		for _, r := range key.Runes {
			if unicode.IsControl(r) {
				return nil
			}
		}
		m.filter += string(key.Runes)
		events.Filter.Append(m.filter)
		return nil
	}
	return nil
}

func (m *Model) quit(reason string) tea.Cmd {
	events.App.Exit(reason)
	if m.poller != nil {
		m.poller.Stop()
	}
	return tea.Quit
}
