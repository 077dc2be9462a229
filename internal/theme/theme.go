package theme

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Header        *lipgloss.Style
	Footer        *lipgloss.Style
	Loading       *lipgloss.Style
	Error         *lipgloss.Style
	Warning       *lipgloss.Style
	Stale         *lipgloss.Style
	Degraded      *lipgloss.Style
	Monitor       *lipgloss.Style
	MonitorActive *lipgloss.Style
	Workspace     *lipgloss.Style
	WorkspaceFoc  *lipgloss.Style
	Window        *lipgloss.Style
	WindowFocused *lipgloss.Style
	WindowHidden  *lipgloss.Style
	Filter        *lipgloss.Style
	FilterPrompt  *lipgloss.Style
	FilterMatch   *lipgloss.Style
}

var defaultStyles = Styles{
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Loading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Warning: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	),
	Stale: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	Degraded: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true).Reverse(true),
	),
	Monitor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	MonitorActive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Workspace: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	WorkspaceFoc: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Window: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	WindowFocused: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	WindowHidden: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterMatch: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Underline(true),
	),
}

var plainStyles = func() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Header:        &plain,
		Footer:        &plain,
		Loading:       &plain,
		Error:         &plain,
		Warning:       &plain,
		Stale:         &plain,
		Degraded:      &plain,
		Monitor:       &plain,
		MonitorActive: &plain,
		Workspace:     &plain,
		WorkspaceFoc:  &plain,
		Window:        &plain,
		WindowFocused: &plain,
		WindowHidden:  &plain,
		Filter:        &plain,
		FilterPrompt:  &plain,
		FilterMatch:   &plain,
	}
}()

// Default exposes the standard style set. NO_COLOR disables all styling.
func Default() *Styles {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return &plainStyles
	}
	return &defaultStyles
}

// Plain returns an unstyled set, used by golden tests to keep output stable.
func Plain() *Styles {
	return &plainStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
