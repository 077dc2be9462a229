package wm

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
)

// DemoClient serves canned payloads so the UI can be exercised without a
// running glazewm. Window focus rotates on every poll.
type DemoClient struct {
	tick atomic.Int64
}

// NewDemoClient builds a demo backend.
func NewDemoClient() *DemoClient {
	return &DemoClient{}
}

// Query returns the demo payload for the requested kind. The monitors query
// advances the tick; the windows query reuses the latest monitors tick so a
// monitors-then-windows pair always agrees on focus.
func (c *DemoClient) Query(_ context.Context, kind QueryKind) (json.RawMessage, error) {
	tick := c.tick.Load()
	if kind == QueryMonitors {
		tick = c.tick.Add(1) - 1
	} else if tick > 0 {
		tick--
	}
	focused := int(tick % 4)
	switch kind {
	case QueryMonitors:
		return demoMonitorsPayload(focused), nil
	case QueryWindows:
		return demoWindowsPayload(focused), nil
	default:
		return nil, &QueryError{Kind: QueryIO, Command: string(kind), Err: fmt.Errorf("unknown query kind %q", kind)}
	}
}

func demoWindow(id, title, process string, x, y, w, h int, state string, focused, displayed bool) map[string]any {
	displayState := "shown"
	if !displayed {
		displayState = "hidden"
	}
	return map[string]any{
		"type":         "window",
		"id":           id,
		"title":        title,
		"processName":  process,
		"x":            x,
		"y":            y,
		"width":        w,
		"height":       h,
		"state":        map[string]any{"type": state},
		"hasFocus":     focused,
		"displayState": displayState,
	}
}

func demoWindows(focused int) []map[string]any {
	return []map[string]any{
		demoWindow("demo-window-1", "Visual Studio Code - glazewm-top", "Code", 0, 0, 960, 1040, "tiling", focused == 0, true),
		demoWindow("demo-window-2", "Firefox - Documentation", "firefox", 960, 0, 960, 1040, "tiling", focused == 1, true),
		demoWindow("demo-window-3", "Terminal - go test", "wezterm-gui", 0, 0, 1920, 1040, "tiling", false, false),
		demoWindow("demo-window-4", "Discord - #general", "Discord", 1920, 0, 1280, 1400, "tiling", focused == 2, true),
		demoWindow("demo-window-5", "Spotify - Currently Playing", "Spotify", 3200, 0, 1280, 1400, "floating", focused == 3, true),
	}
}

func demoMonitorsPayload(focused int) json.RawMessage {
	windows := demoWindows(focused)
	payload := map[string]any{
		"success": true,
		"error":   nil,
		"data": map[string]any{
			"monitors": []map[string]any{
				{
					"type":        "monitor",
					"id":          "demo-monitor-1",
					"x":           0,
					"y":           0,
					"width":       1920,
					"height":      1080,
					"scaleFactor": 1.0,
					"dpi":         96,
					"hasFocus":    true,
					"children": []map[string]any{
						{
							"type":            "workspace",
							"id":              "demo-workspace-1",
							"name":            "Development",
							"hasFocus":        true,
							"isDisplayed":     true,
							"tilingDirection": "horizontal",
							"children":        windows[0:2],
						},
						{
							"type":            "workspace",
							"id":              "demo-workspace-2",
							"name":            "Testing",
							"hasFocus":        false,
							"isDisplayed":     false,
							"tilingDirection": "horizontal",
							"children":        windows[2:3],
						},
					},
				},
				{
					"type":        "monitor",
					"id":          "demo-monitor-2",
					"x":           1920,
					"y":           0,
					"width":       2560,
					"height":      1440,
					"scaleFactor": 1.25,
					"dpi":         120,
					"hasFocus":    false,
					"children": []map[string]any{
						{
							"type":            "workspace",
							"id":              "demo-workspace-3",
							"name":            "Communication",
							"hasFocus":        true,
							"isDisplayed":     true,
							"tilingDirection": "horizontal",
							"children":        windows[3:5],
						},
					},
				},
			},
		},
	}
	return mustMarshal(payload)
}

func demoWindowsPayload(focused int) json.RawMessage {
	payload := map[string]any{
		"success": true,
		"error":   nil,
		"data": map[string]any{
			"windows": demoWindows(focused),
		},
	}
	return mustMarshal(payload)
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
