package testutil

import (
	"encoding/json"
	"testing"
)

// Envelope wraps data in the CLI's response shape.
func Envelope(t *testing.T, data interface{}) json.RawMessage {
	t.Helper()
	return MustMarshal(t, map[string]interface{}{
		"data":    data,
		"success": true,
		"error":   nil,
	})
}

// FailedEnvelope builds an unsuccessful response carrying an error message.
func FailedEnvelope(t *testing.T, message string) json.RawMessage {
	t.Helper()
	return MustMarshal(t, map[string]interface{}{
		"data":    nil,
		"success": false,
		"error":   message,
	})
}

// MonitorsPayload builds a complete monitors query response.
func MonitorsPayload(t *testing.T, monitors ...map[string]interface{}) json.RawMessage {
	t.Helper()
	return Envelope(t, map[string]interface{}{"monitors": monitors})
}

// WindowsPayload builds a complete windows query response from the flat list.
func WindowsPayload(t *testing.T, windows ...map[string]interface{}) json.RawMessage {
	t.Helper()
	return Envelope(t, map[string]interface{}{"windows": windows})
}

// Monitor builds a monitor node with workspace children.
func Monitor(id string, x, y, width, height int, focused bool, workspaces ...map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"type":        "monitor",
		"id":          id,
		"x":           x,
		"y":           y,
		"width":       width,
		"height":      height,
		"scaleFactor": 1.0,
		"dpi":         96,
		"hasFocus":    focused,
		"children":    workspaces,
	}
}

// Workspace builds a workspace node with window children.
func Workspace(id, name string, focused bool, windows ...map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"type":            "workspace",
		"id":              id,
		"name":            name,
		"hasFocus":        focused,
		"displayState":    "shown",
		"tilingDirection": "horizontal",
		"children":        windows,
	}
}

// Window builds a tiled, shown window node.
func Window(id, process, title string, x, y, width, height int, focused bool) map[string]interface{} {
	return map[string]interface{}{
		"type":         "window",
		"id":           id,
		"title":        title,
		"processName":  process,
		"x":            x,
		"y":            y,
		"width":        width,
		"height":       height,
		"state":        map[string]interface{}{"type": "tiling"},
		"displayState": "shown",
		"hasFocus":     focused,
	}
}

// With overrides or adds fields on a node builder result.
func With(node map[string]interface{}, overrides map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(node)+len(overrides))
	for k, v := range node {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Without removes a field, for exercising missing-field handling.
func Without(node map[string]interface{}, field string) map[string]interface{} {
	out := make(map[string]interface{}, len(node))
	for k, v := range node {
		if k == field {
			continue
		}
		out[k] = v
	}
	return out
}

func MustMarshal(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return data
}
