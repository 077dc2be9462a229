package ui

import (
	"strings"
	"testing"
)

func TestViewEmptyWithoutDimensions(t *testing.T) {
	m := NewModel(nil, Options{})
	if got := m.View(); got != "" {
		t.Fatalf("view without dimensions should be empty, got %q", got)
	}
}

func TestFooterHiddenWhenQuiet(t *testing.T) {
	h := NewHarness(NewModel(nil, Options{Width: 80, Height: 24, Quiet: true}))
	h.Send(snapshotEvent(testSnapshot()))
	if strings.Contains(plainView(h), "q quit") {
		t.Fatalf("quiet mode should hide the footer")
	}

	loud := newHarness(t, Options{})
	loud.Send(snapshotEvent(testSnapshot()))
	if !strings.Contains(plainView(loud), "q quit  r refresh  tab mode  / filter") {
		t.Fatalf("footer hint row missing:\n%s", plainView(loud))
	}
}

func TestViewNeverExceedsHeight(t *testing.T) {
	h := NewHarness(NewModel(nil, Options{Width: 40, Height: 8}))
	h.Send(snapshotEvent(testSnapshot()))
	if got := len(strings.Split(h.View(), "\n")); got > 8 {
		t.Fatalf("view has %d lines for height 8", got)
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("short", 10); got != "short" {
		t.Fatalf("text within width must pass through, got %q", got)
	}
	if got := truncateText("abcdefgh", 5); got != "abcd…" {
		t.Fatalf("expected ellipsis truncation, got %q", got)
	}
	if got := truncateText("abcdefgh", 1); got != "a" {
		t.Fatalf("single cell keeps the first rune, got %q", got)
	}
	if got := truncateText("anything", 0); got != "anything" {
		t.Fatalf("zero width disables truncation, got %q", got)
	}
}

func TestLimitHeightKeepsLastLine(t *testing.T) {
	lines := []styledLine{
		{text: "header"},
		{text: "body 1"},
		{text: "body 2"},
		{text: "body 3"},
		{text: "footer"},
	}
	trimmed := limitHeight(lines, 3, 40)
	if len(trimmed) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(trimmed))
	}
	if trimmed[0].text != "header" || trimmed[2].text != "footer" {
		t.Fatalf("trimming should keep the first lines and the last one: %+v", trimmed)
	}
}
