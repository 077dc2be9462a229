package wm

import (
	"fmt"
	"time"
)

// Point is a position in pixel space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size holds pixel dimensions.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect combines a position and a size.
type Rect struct {
	Position Point `json:"position"`
	Size     Size  `json:"size"`
}

// NewRect builds a Rect from raw coordinates.
func NewRect(x, y, width, height int) Rect {
	return Rect{Position: Point{X: x, Y: y}, Size: Size{Width: width, Height: height}}
}

func (r Rect) Right() int  { return r.Position.X + r.Size.Width }
func (r Rect) Bottom() int { return r.Position.Y + r.Size.Height }

// Contains reports whether the point falls inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Position.X && p.X < r.Right() && p.Y >= r.Position.Y && p.Y < r.Bottom()
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d, %d) %dx%d", r.Position.X, r.Position.Y, r.Size.Width, r.Size.Height)
}

// TilingDirection is the axis along which a workspace partitions its windows.
type TilingDirection string

const (
	TilingHorizontal TilingDirection = "horizontal"
	TilingVertical   TilingDirection = "vertical"
)

// ParseTilingDirection maps the upstream string onto a direction, defaulting
// to horizontal for values it does not recognise.
func ParseTilingDirection(raw string) TilingDirection {
	if raw == string(TilingVertical) {
		return TilingVertical
	}
	return TilingHorizontal
}

// WindowStateKind enumerates the tiling states glazewm reports.
type WindowStateKind int

const (
	WindowTiling WindowStateKind = iota
	WindowFloating
	WindowFullscreen
	WindowMinimized
	WindowUnknown
)

// WindowState carries the parsed state plus the original string when the
// value was not recognised, so upstream schema drift stays visible.
type WindowState struct {
	Kind WindowStateKind
	Raw  string
}

// ParseWindowState converts the upstream state.type string.
func ParseWindowState(raw string) WindowState {
	switch raw {
	case "tiling":
		return WindowState{Kind: WindowTiling}
	case "floating":
		return WindowState{Kind: WindowFloating}
	case "fullscreen":
		return WindowState{Kind: WindowFullscreen}
	case "minimized":
		return WindowState{Kind: WindowMinimized}
	default:
		return WindowState{Kind: WindowUnknown, Raw: raw}
	}
}

func (s WindowState) String() string {
	switch s.Kind {
	case WindowTiling:
		return "tiling"
	case WindowFloating:
		return "floating"
	case WindowFullscreen:
		return "fullscreen"
	case WindowMinimized:
		return "minimized"
	default:
		if s.Raw != "" {
			return s.Raw
		}
		return "unknown"
	}
}

// DisplayStateKind enumerates visibility states.
type DisplayStateKind int

const (
	DisplayShown DisplayStateKind = iota
	DisplayHiding
	DisplayHidden
	DisplayUnknown
)

// DisplayState mirrors WindowState: parsed kind plus the raw fallback.
type DisplayState struct {
	Kind DisplayStateKind
	Raw  string
}

// ParseDisplayState converts the upstream displayState string.
func ParseDisplayState(raw string) DisplayState {
	switch raw {
	case "shown":
		return DisplayState{Kind: DisplayShown}
	case "hiding":
		return DisplayState{Kind: DisplayHiding}
	case "hidden":
		return DisplayState{Kind: DisplayHidden}
	default:
		return DisplayState{Kind: DisplayUnknown, Raw: raw}
	}
}

// Visible reports whether the entity is currently on screen. Unknown states
// count as visible so new upstream values do not make windows vanish.
func (d DisplayState) Visible() bool {
	return d.Kind == DisplayShown || d.Kind == DisplayUnknown
}

func (d DisplayState) String() string {
	switch d.Kind {
	case DisplayShown:
		return "shown"
	case DisplayHiding:
		return "hiding"
	case DisplayHidden:
		return "hidden"
	default:
		if d.Raw != "" {
			return d.Raw
		}
		return "unknown"
	}
}

// Window is an immutable view of one managed window.
type Window struct {
	ID          string
	Title       string
	ProcessName string
	Geometry    Rect
	TilingSize  *float64
	State       WindowState
	Display     DisplayState
	HasFocus    bool
}

// DisplayName combines process and title for list-style rendering.
func (w Window) DisplayName() string {
	if w.Title == "" {
		return w.ProcessName
	}
	if w.ProcessName == "" {
		return w.Title
	}
	return fmt.Sprintf("%s: %s", w.ProcessName, w.Title)
}

// StateIndicator returns the short marker used by the compact view.
func (w Window) StateIndicator() string {
	if w.Display.Kind == DisplayHidden || w.Display.Kind == DisplayHiding {
		return "[H]"
	}
	switch w.State.Kind {
	case WindowMinimized:
		return "[M]"
	case WindowFloating, WindowFullscreen:
		return "[F]"
	default:
		return "[T]"
	}
}

// Tiled reports whether the window participates in the tiling partition.
// Unknown states tile so schema drift degrades gracefully.
func (w Window) Tiled() bool {
	if !w.Display.Visible() {
		return false
	}
	switch w.State.Kind {
	case WindowTiling, WindowUnknown:
		return true
	default:
		return false
	}
}

// Floats reports whether the window is positioned at its own anchor instead
// of the tiling partition.
func (w Window) Floats() bool {
	if !w.Display.Visible() {
		return false
	}
	return w.State.Kind == WindowFloating || w.State.Kind == WindowFullscreen
}

// OffScreen reports whether the window belongs in the hidden summary rather
// than the spatial layout.
func (w Window) OffScreen() bool {
	return !w.Display.Visible() || w.State.Kind == WindowMinimized
}

// Workspace is an ordered group of windows on one monitor.
type Workspace struct {
	ID       string
	Name     string
	Tiling   TilingDirection
	Display  DisplayState
	HasFocus bool
	Windows  []Window
}

func (ws Workspace) WindowCount() int { return len(ws.Windows) }

// FocusedWindow returns the focused window in this workspace, if any.
func (ws Workspace) FocusedWindow() *Window {
	for i := range ws.Windows {
		if ws.Windows[i].HasFocus {
			return &ws.Windows[i]
		}
	}
	return nil
}

// Monitor is one physical display with its ordered workspaces.
type Monitor struct {
	ID          string
	Geometry    Rect
	DPI         int
	ScaleFactor float64
	HasFocus    bool
	Workspaces  []Workspace
}

// ActiveWorkspace returns the focused workspace on this monitor, if any.
func (m Monitor) ActiveWorkspace() *Workspace {
	for i := range m.Workspaces {
		if m.Workspaces[i].HasFocus {
			return &m.Workspaces[i]
		}
	}
	return nil
}

// TotalWindowCount sums windows across all workspaces.
func (m Monitor) TotalWindowCount() int {
	total := 0
	for _, ws := range m.Workspaces {
		total += len(ws.Windows)
	}
	return total
}

// Snapshot is one complete, validated view of the window manager state.
// It is constructed by the mapper in a single pass and never mutated.
type Snapshot struct {
	Monitors   []Monitor
	CapturedAt time.Time
}

// FocusedMonitor returns the monitor with focus, if any.
func (s *Snapshot) FocusedMonitor() *Monitor {
	for i := range s.Monitors {
		if s.Monitors[i].HasFocus {
			return &s.Monitors[i]
		}
	}
	return nil
}

// FocusedWindow returns the single focused window, if any.
func (s *Snapshot) FocusedWindow() *Window {
	for i := range s.Monitors {
		for j := range s.Monitors[i].Workspaces {
			if w := s.Monitors[i].Workspaces[j].FocusedWindow(); w != nil {
				return w
			}
		}
	}
	return nil
}

// WindowCount sums windows across all monitors.
func (s *Snapshot) WindowCount() int {
	total := 0
	for _, m := range s.Monitors {
		total += m.TotalWindowCount()
	}
	return total
}

// HiddenWindowCount counts windows excluded from spatial layout.
func (s *Snapshot) HiddenWindowCount() int {
	total := 0
	for _, m := range s.Monitors {
		for _, ws := range m.Workspaces {
			for _, w := range ws.Windows {
				if w.OffScreen() {
					total++
				}
			}
		}
	}
	return total
}

// Validate enforces the cross-entity focus invariants. A snapshot that fails
// validation must be discarded wholesale.
func (s *Snapshot) Validate() error {
	focusedWindows := 0
	for _, m := range s.Monitors {
		for _, ws := range m.Workspaces {
			for _, w := range ws.Windows {
				if w.HasFocus {
					focusedWindows++
				}
			}
		}
	}
	if focusedWindows > 1 {
		return invariantError(fmt.Sprintf("%d windows report focus, expected at most one", focusedWindows))
	}

	if len(s.Monitors) > 0 {
		focusedMonitors := 0
		for _, m := range s.Monitors {
			if m.HasFocus {
				focusedMonitors++
			}
		}
		if focusedMonitors != 1 {
			return invariantError(fmt.Sprintf("%d monitors report focus, expected exactly one", focusedMonitors))
		}
	}

	for _, m := range s.Monitors {
		if len(m.Workspaces) == 0 {
			continue
		}
		focused := 0
		for _, ws := range m.Workspaces {
			if ws.HasFocus {
				focused++
			}
		}
		if focused != 1 {
			return invariantError(fmt.Sprintf("monitor %s has %d focused workspaces, expected exactly one", m.ID, focused))
		}
	}
	return nil
}
