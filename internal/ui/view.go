package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/glazewm-top/internal/logging/events"
	"github.com/atomicstack/glazewm-top/internal/wm"
)

type styledLine struct {
	text  string
	style *lipgloss.Style
	// raw lines may carry ANSI escapes from the renderer; they are already
	// width-clipped and must not be re-truncated rune-wise.
	raw bool
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	lines := make([]styledLine, 0, m.height)
	lines = append(lines, styledLine{text: m.headerLine(), style: styles.Header})
	banners := m.bannerLines()
	lines = append(lines, banners...)

	bodyHeight := m.height - len(lines) - m.bottomRows()
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	if snap := m.store.Current(); snap == nil {
		loading := fmt.Sprintf("%s waiting for window manager data", m.spinner.View())
		if m.errMsg != "" {
			loading = fmt.Sprintf("%s retrying: %s", m.spinner.View(), m.errMsg)
		}
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: loading, style: styles.Loading})
		for len(lines) < m.height-m.bottomRows() {
			lines = append(lines, styledLine{})
		}
	} else {
		frame, _ := m.renderer.Render(snap, wm.Size{Width: m.width, Height: bodyHeight}, m.filter)
		for _, line := range frame.Lines {
			lines = append(lines, styledLine{text: line, raw: true})
		}
	}

	if m.filtering || m.filter != "" {
		prompt := fmt.Sprintf("/%s", m.filter)
		if m.filtering {
			prompt += "█"
		}
		lines = append(lines, styledLine{text: prompt, style: styles.FilterPrompt})
	}
	if !m.quiet {
		lines = append(lines, styledLine{text: "q quit  r refresh  tab mode  / filter", style: styles.Footer})
	}

	lines = limitHeight(lines, m.height, m.width)
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

func (m *Model) headerLine() string {
	snap := m.store.Current()
	if snap == nil {
		return "glazewm-top"
	}
	updated := m.store.LastUpdated().Format("15:04:05")
	return fmt.Sprintf("glazewm-top  %d monitors  %d windows  updated %s  [%s]",
		len(snap.Monitors), snap.WindowCount(), updated, m.renderer.Mode())
}

// bannerLines surfaces degraded state, consistency warnings, staleness, and
// the last error, in that order of severity.
func (m *Model) bannerLines() []styledLine {
	var lines []styledLine
	if m.store.Degraded() {
		lines = append(lines, styledLine{text: " DEGRADED: window manager unreachable ", style: styles.Degraded})
	}
	if warning := m.store.Warning(); warning != "" {
		lines = append(lines, styledLine{text: fmt.Sprintf("Warning: %s", warning), style: styles.Warning})
	}
	if m.store.Stale() && !m.store.Degraded() {
		lines = append(lines, styledLine{text: fmt.Sprintf("stale since %s", m.store.LastUpdated().Format("15:04:05")), style: styles.Stale})
	}
	if m.errMsg != "" && m.store.Current() != nil {
		lines = append(lines, styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error})
	}
	return lines
}

func (m *Model) bottomRows() int {
	rows := 0
	if m.filtering || m.filter != "" {
		rows++
	}
	if !m.quiet {
		rows++
	}
	return rows
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.renderer.Invalidate()
	events.UI.Resize(m.width, m.height)
	return nil
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, lines[len(lines)-1])
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		if !line.raw {
			line.text = truncateText(line.text, width)
		}
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if !line.raw && line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
