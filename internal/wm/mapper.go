package wm

import (
	"encoding/json"
	"fmt"
	"time"
)

// MapErrorKind classifies mapping failures.
type MapErrorKind int

const (
	// MapTopLevel covers malformed JSON and envelope failures.
	MapTopLevel MapErrorKind = iota
	// MapMissingField marks a required identity or geometry field absent.
	MapMissingField
	// MapInvariant marks a structurally valid payload whose focus state
	// violates the domain invariants.
	MapInvariant
)

// MapError describes why a candidate snapshot was rejected. Mapping is
// all-or-nothing: any MapError means the previous snapshot stays in place.
type MapError struct {
	Kind   MapErrorKind
	Path   string
	Detail string
}

func (e *MapError) Error() string {
	switch e.Kind {
	case MapMissingField:
		return fmt.Sprintf("missing required field %s", e.Path)
	case MapInvariant:
		return fmt.Sprintf("invariant violation: %s", e.Detail)
	default:
		return fmt.Sprintf("malformed payload: %s", e.Detail)
	}
}

func topLevelError(detail string) *MapError {
	return &MapError{Kind: MapTopLevel, Detail: detail}
}

func missingFieldError(path string) *MapError {
	return &MapError{Kind: MapMissingField, Path: path}
}

func invariantError(detail string) *MapError {
	return &MapError{Kind: MapInvariant, Detail: detail}
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Success bool            `json:"success"`
	Error   *string         `json:"error"`
}

// Raw wire structures. Required identity and geometry fields are pointers so
// their absence is detectable; everything else defaults.

type rawMonitor struct {
	Type        string            `json:"type"`
	ID          *string           `json:"id"`
	X           *int              `json:"x"`
	Y           *int              `json:"y"`
	Width       *int              `json:"width"`
	Height      *int              `json:"height"`
	ScaleFactor float64           `json:"scaleFactor"`
	DPI         int               `json:"dpi"`
	HasFocus    bool              `json:"hasFocus"`
	Children    []json.RawMessage `json:"children"`
}

type rawWorkspace struct {
	ID              *string           `json:"id"`
	Name            string            `json:"name"`
	HasFocus        bool              `json:"hasFocus"`
	IsDisplayed     *bool             `json:"isDisplayed"`
	DisplayState    string            `json:"displayState"`
	TilingDirection string            `json:"tilingDirection"`
	Children        []json.RawMessage `json:"children"`
}

type rawWindow struct {
	ID           *string         `json:"id"`
	Title        string          `json:"title"`
	ProcessName  string          `json:"processName"`
	X            *int            `json:"x"`
	Y            *int            `json:"y"`
	Width        *int            `json:"width"`
	Height       *int            `json:"height"`
	TilingSize   *float64        `json:"tilingSize"`
	State        *rawWindowState `json:"state"`
	DisplayState string          `json:"displayState"`
	HasFocus     bool            `json:"hasFocus"`
}

type rawWindowState struct {
	Type string `json:"type"`
}

type typeProbe struct {
	Type string `json:"type"`
}

// MapSnapshot converts one monitors payload and one windows payload into a
// validated Snapshot. The monitors payload provides the structural hierarchy;
// the windows payload is a flat list overlaid by id on top of it so per-window
// fields come from the fresher of the two queries. Both envelopes must report
// success, and any missing required field or invariant violation rejects the
// whole snapshot.
func MapSnapshot(monitorsRaw, windowsRaw json.RawMessage) (*Snapshot, error) {
	monData, err := decodeEnvelope(monitorsRaw)
	if err != nil {
		return nil, err
	}
	winData, err := decodeEnvelope(windowsRaw)
	if err != nil {
		return nil, err
	}

	var monitorsPayload struct {
		Monitors []rawMonitor `json:"monitors"`
	}
	if err := json.Unmarshal(monData, &monitorsPayload); err != nil {
		return nil, topLevelError(fmt.Sprintf("decoding monitors data: %v", err))
	}

	snap := &Snapshot{Monitors: make([]Monitor, 0, len(monitorsPayload.Monitors))}
	for i, raw := range monitorsPayload.Monitors {
		monitor, err := mapMonitor(raw, fmt.Sprintf("data.monitors[%d]", i))
		if err != nil {
			return nil, err
		}
		snap.Monitors = append(snap.Monitors, monitor)
	}

	if err := overlayWindows(snap, winData); err != nil {
		return nil, err
	}

	if err := snap.Validate(); err != nil {
		return nil, err
	}
	snap.CapturedAt = time.Now()
	return snap, nil
}

func decodeEnvelope(raw json.RawMessage) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, topLevelError(fmt.Sprintf("decoding response: %v", err))
	}
	if !env.Success {
		detail := "success is false"
		if env.Error != nil && *env.Error != "" {
			detail = *env.Error
		}
		return nil, topLevelError(detail)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, missingFieldError("data")
	}
	return env.Data, nil
}

func mapMonitor(raw rawMonitor, path string) (Monitor, error) {
	if raw.ID == nil {
		return Monitor{}, missingFieldError(path + ".id")
	}
	geometry, err := mapGeometry(raw.X, raw.Y, raw.Width, raw.Height, path)
	if err != nil {
		return Monitor{}, err
	}
	monitor := Monitor{
		ID:          *raw.ID,
		Geometry:    geometry,
		DPI:         raw.DPI,
		ScaleFactor: raw.ScaleFactor,
		HasFocus:    raw.HasFocus,
	}
	for i, child := range raw.Children {
		childPath := fmt.Sprintf("%s.children[%d]", path, i)
		var probe typeProbe
		if err := json.Unmarshal(child, &probe); err != nil {
			return Monitor{}, topLevelError(fmt.Sprintf("decoding %s: %v", childPath, err))
		}
		if probe.Type != "workspace" {
			continue
		}
		var rawWS rawWorkspace
		if err := json.Unmarshal(child, &rawWS); err != nil {
			return Monitor{}, topLevelError(fmt.Sprintf("decoding %s: %v", childPath, err))
		}
		workspace, err := mapWorkspace(rawWS, childPath)
		if err != nil {
			return Monitor{}, err
		}
		monitor.Workspaces = append(monitor.Workspaces, workspace)
	}
	return monitor, nil
}

func mapWorkspace(raw rawWorkspace, path string) (Workspace, error) {
	if raw.ID == nil {
		return Workspace{}, missingFieldError(path + ".id")
	}
	workspace := Workspace{
		ID:       *raw.ID,
		Name:     raw.Name,
		Tiling:   ParseTilingDirection(raw.TilingDirection),
		Display:  workspaceDisplay(raw),
		HasFocus: raw.HasFocus,
	}
	for i, child := range raw.Children {
		childPath := fmt.Sprintf("%s.children[%d]", path, i)
		var probe typeProbe
		if err := json.Unmarshal(child, &probe); err != nil {
			return Workspace{}, topLevelError(fmt.Sprintf("decoding %s: %v", childPath, err))
		}
		if probe.Type != "window" {
			continue
		}
		var rawWin rawWindow
		if err := json.Unmarshal(child, &rawWin); err != nil {
			return Workspace{}, topLevelError(fmt.Sprintf("decoding %s: %v", childPath, err))
		}
		window, err := mapWindow(rawWin, childPath)
		if err != nil {
			return Workspace{}, err
		}
		workspace.Windows = append(workspace.Windows, window)
	}
	return workspace, nil
}

// workspaceDisplay prefers an explicit displayState string and falls back to
// the older isDisplayed boolean.
func workspaceDisplay(raw rawWorkspace) DisplayState {
	if raw.DisplayState != "" {
		return ParseDisplayState(raw.DisplayState)
	}
	if raw.IsDisplayed != nil && !*raw.IsDisplayed {
		return DisplayState{Kind: DisplayHidden}
	}
	return DisplayState{Kind: DisplayShown}
}

func mapWindow(raw rawWindow, path string) (Window, error) {
	if raw.ID == nil {
		return Window{}, missingFieldError(path + ".id")
	}
	geometry, err := mapGeometry(raw.X, raw.Y, raw.Width, raw.Height, path)
	if err != nil {
		return Window{}, err
	}
	state := WindowState{Kind: WindowUnknown}
	if raw.State != nil {
		state = ParseWindowState(raw.State.Type)
	}
	return Window{
		ID:          *raw.ID,
		Title:       raw.Title,
		ProcessName: raw.ProcessName,
		Geometry:    geometry,
		TilingSize:  raw.TilingSize,
		State:       state,
		Display:     ParseDisplayState(raw.DisplayState),
		HasFocus:    raw.HasFocus,
	}, nil
}

func mapGeometry(x, y, width, height *int, path string) (Rect, error) {
	switch {
	case x == nil:
		return Rect{}, missingFieldError(path + ".x")
	case y == nil:
		return Rect{}, missingFieldError(path + ".y")
	case width == nil:
		return Rect{}, missingFieldError(path + ".width")
	case height == nil:
		return Rect{}, missingFieldError(path + ".height")
	}
	return NewRect(*x, *y, *width, *height), nil
}

// overlayWindows refreshes per-window fields from the flat windows payload.
// Windows absent from the monitors hierarchy are ignored; the hierarchy is
// the structural source of truth.
func overlayWindows(snap *Snapshot, winData json.RawMessage) error {
	var windowsPayload struct {
		Windows []rawWindow `json:"windows"`
	}
	if err := json.Unmarshal(winData, &windowsPayload); err != nil {
		return topLevelError(fmt.Sprintf("decoding windows data: %v", err))
	}

	index := make(map[string]*Window)
	for i := range snap.Monitors {
		for j := range snap.Monitors[i].Workspaces {
			ws := &snap.Monitors[i].Workspaces[j]
			for k := range ws.Windows {
				index[ws.Windows[k].ID] = &ws.Windows[k]
			}
		}
	}

	for i, raw := range windowsPayload.Windows {
		path := fmt.Sprintf("data.windows[%d]", i)
		window, err := mapWindow(raw, path)
		if err != nil {
			return err
		}
		target, ok := index[window.ID]
		if !ok {
			continue
		}
		*target = window
	}
	return nil
}
