package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeRunes(h *Harness, s string) {
	for _, r := range s {
		h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func enterFilterMode(h *Harness) {
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
}

func TestSlashEntersFilterMode(t *testing.T) {
	h := newHarness(t, Options{})
	h.Send(snapshotEvent(testSnapshot()))

	enterFilterMode(h)
	if !h.Model().filtering {
		t.Fatalf("/ should enter filter editing")
	}
	if !strings.Contains(plainView(h), "/█") {
		t.Fatalf("filter prompt with cursor should be visible:\n%s", plainView(h))
	}
}

func TestFilterTyping(t *testing.T) {
	h := newHarness(t, Options{})
	h.Send(snapshotEvent(testSnapshot()))

	enterFilterMode(h)
	typeRunes(h, "chr")
	if got := h.Model().filter; got != "chr" {
		t.Fatalf("expected filter %q, got %q", "chr", got)
	}
	if !strings.Contains(plainView(h), "/chr█") {
		t.Fatalf("prompt should echo the filter text:\n%s", plainView(h))
	}
}

func TestFilterEnterKeepsTextAndLeavesEditMode(t *testing.T) {
	h := newHarness(t, Options{})
	h.Send(snapshotEvent(testSnapshot()))

	enterFilterMode(h)
	typeRunes(h, "chrome")
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})

	m := h.Model()
	if m.filtering {
		t.Fatalf("enter should leave edit mode")
	}
	if m.filter != "chrome" {
		t.Fatalf("enter should keep the filter, got %q", m.filter)
	}
	view := plainView(h)
	if !strings.Contains(view, "/chrome") || strings.Contains(view, "█") {
		t.Fatalf("prompt should remain without cursor:\n%s", view)
	}
}

func TestFilterEscAbandons(t *testing.T) {
	h := newHarness(t, Options{})
	h.Send(snapshotEvent(testSnapshot()))

	enterFilterMode(h)
	typeRunes(h, "chrome")
	h.Send(tea.KeyMsg{Type: tea.KeyEsc})

	m := h.Model()
	if m.filtering || m.filter != "" {
		t.Fatalf("esc should abandon the filter, got filtering=%v filter=%q", m.filtering, m.filter)
	}
}

func TestFilterBackspace(t *testing.T) {
	h := newHarness(t, Options{})
	h.Send(snapshotEvent(testSnapshot()))

	enterFilterMode(h)
	typeRunes(h, "ab")
	h.Send(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := h.Model().filter; got != "a" {
		t.Fatalf("backspace should drop one rune, got %q", got)
	}
	h.Send(tea.KeyMsg{Type: tea.KeyBackspace})
	h.Send(tea.KeyMsg{Type: tea.KeyBackspace})
	if h.Model().filtering {
		t.Fatalf("backspace on an empty filter should leave edit mode")
	}
}

func TestFilterCtrlUClears(t *testing.T) {
	h := newHarness(t, Options{})
	h.Send(snapshotEvent(testSnapshot()))

	enterFilterMode(h)
	typeRunes(h, "chrome")
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlU})
	m := h.Model()
	if m.filter != "" {
		t.Fatalf("ctrl+u should clear the filter, got %q", m.filter)
	}
	if !m.filtering {
		t.Fatalf("ctrl+u should stay in edit mode")
	}
}

func TestFilterSpaceAndAltRunes(t *testing.T) {
	h := newHarness(t, Options{})
	h.Send(snapshotEvent(testSnapshot()))

	enterFilterMode(h)
	typeRunes(h, "a")
	h.Send(tea.KeyMsg{Type: tea.KeySpace})
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'b'}, Alt: true})
	if got := h.Model().filter; got != "a " {
		t.Fatalf("alt-modified runes should be ignored, got %q", got)
	}
}

func TestQuitKeysDisabledWhileFiltering(t *testing.T) {
	h := newHarness(t, Options{})
	h.Send(snapshotEvent(testSnapshot()))

	enterFilterMode(h)
	m := h.Model()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd != nil {
		t.Fatalf("q while filtering should edit the filter, not quit")
	}
	if m.filter != "q" {
		t.Fatalf("q should append to the filter, got %q", m.filter)
	}
}

func TestCtrlCQuitsEvenWhileFiltering(t *testing.T) {
	m := NewModel(nil, Options{Width: 80, Height: 24})
	m.filtering = true
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("ctrl+c must always quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("ctrl+c must produce a quit message")
	}
}
